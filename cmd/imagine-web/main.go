package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/imagine-dev/imagine"
	"github.com/imagine-dev/imagine/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	initLogger(cfg.LogLevel, cfg.LogFormat)

	imagine.ConfigureRouter(cfg.HFBaseURL)
	if cfg.PresetFile != "" {
		if err := imagine.LoadPresets(cfg.PresetFile); err != nil {
			slog.Error("load presets", "path", cfg.PresetFile, "error", err)
			os.Exit(1)
		}
	}

	if cfg.HFToken == "" {
		slog.Warn("no HF_TOKEN configured, running in demo mode")
	}

	srv := newServer(cfg)
	slog.Info("listening", "addr", cfg.ListenAddr)
	if err := srv.run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func initLogger(level, format string) {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
