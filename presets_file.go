package imagine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Schema for preset files: a flat object of model id -> bounds.
const presetFileSchema = `{
  "type": "object",
  "minProperties": 1,
  "additionalProperties": {
    "type": "object",
    "required": ["max_steps", "max_size"],
    "properties": {
      "max_steps": {"type": "integer", "minimum": 1},
      "max_size": {"type": "integer", "minimum": 384},
      "default_steps": {"type": "integer", "minimum": 1}
    },
    "additionalProperties": false
  }
}`

type presetFileEntry struct {
	MaxSteps     int `json:"max_steps"`
	MaxSize      int `json:"max_size"`
	DefaultSteps int `json:"default_steps"`
}

// ParsePresets validates raw JSON against the preset schema and returns the
// declared presets without registering them.
func ParsePresets(raw []byte) (map[string]ModelPreset, error) {
	if err := validatePresetJSON(raw); err != nil {
		return nil, fmt.Errorf("preset file: %w", err)
	}
	var entries map[string]presetFileEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("preset file: %w", err)
	}
	out := make(map[string]ModelPreset, len(entries))
	for model, e := range entries {
		p := ModelPreset{MaxSteps: e.MaxSteps, MaxSize: e.MaxSize, DefaultSteps: e.DefaultSteps}
		if p.DefaultSteps == 0 || p.DefaultSteps > p.MaxSteps {
			p.DefaultSteps = p.MaxSteps
		}
		out[model] = p
	}
	return out, nil
}

// LoadPresets reads a preset file and registers every entry in the default
// table, replacing entries that already exist.
func LoadPresets(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	presets, err := ParsePresets(raw)
	if err != nil {
		return err
	}
	for model, p := range presets {
		if err := RegisterPreset(model, p); err != nil {
			return err
		}
	}
	return nil
}

func validatePresetJSON(raw []byte) error {
	if len(raw) == 0 {
		return fmt.Errorf("empty json")
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("presets.json", bytes.NewReader([]byte(presetFileSchema))); err != nil {
		return fmt.Errorf("schema resource: %w", err)
	}
	s, err := c.Compile("presets.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse json: %w", err)
	}
	return s.Validate(doc)
}
