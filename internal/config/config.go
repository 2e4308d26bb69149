// Package config loads surface configuration from the environment, with an
// optional .env file. A missing token is a valid state: surfaces run in demo
// mode without one.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// HFToken and HFProvider form the pass-through credential. HFProvider
	// optionally pins a routing provider.
	HFToken    string
	HFProvider string
	HFBaseURL  string

	TelegramToken string
	ListenAddr    string

	// PresetFile optionally extends the built-in model table.
	PresetFile string

	DefaultModel    string
	DefaultWidth    int
	DefaultHeight   int
	DefaultSteps    int
	DefaultGuidance float64

	LogLevel  string
	LogFormat string
}

// Load reads configuration from the environment. The .env file is optional.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HFToken:       os.Getenv("HF_TOKEN"),
		HFProvider:    os.Getenv("HF_PROVIDER"),
		HFBaseURL:     os.Getenv("HF_BASE_URL"),
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		ListenAddr:    getenv("LISTEN_ADDR", ":8080"),
		PresetFile:    os.Getenv("PRESET_FILE"),
		DefaultModel:  os.Getenv("DEFAULT_MODEL"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		LogFormat:     getenv("LOG_FORMAT", "text"),
	}

	cfg.DefaultWidth = getint("DEFAULT_WIDTH", 768)
	cfg.DefaultHeight = getint("DEFAULT_HEIGHT", 768)
	cfg.DefaultSteps = getint("DEFAULT_STEPS", 0)
	cfg.DefaultGuidance = getfloat("DEFAULT_GUIDANCE", 7.5)

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return fallback
}

func getfloat(key string, fallback float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return f
	}
	return fallback
}
