package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/animator/pkg/domain"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of a general settings file.
//
//	general:
//	  duration: { enter: 0.25, exit: 0.15, stagger: 0.025 }
//	presets:
//	  card: { manager: stagger, combine: true }
type FileConfig struct {
	General map[string]any            `yaml:"general" json:"general"`
	Presets map[string]map[string]any `yaml:"presets" json:"presets"`
}

// Config is a decoded general settings file.
type Config struct {
	General domain.SettingsPartial
	Presets map[string]domain.SettingsPartial
}

// Preset returns the named preset and whether it exists.
func (c *Config) Preset(name string) (domain.SettingsPartial, bool) {
	if c == nil {
		return domain.SettingsPartial{}, false
	}
	p, ok := c.Presets[name]
	return p, ok
}

// Unmarshal decodes data as JSON when path has a .json extension, YAML otherwise.
func Unmarshal(path string, data []byte, v any) error {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// LoadFile reads a general settings file (YAML or JSON).
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	return Parse(path, data)
}

// Parse decodes a general settings file already read into memory.
// The path is only used to pick the format and for error messages.
func Parse(path string, data []byte) (*Config, error) {
	var fc FileConfig
	if err := Unmarshal(path, data, &fc); err != nil {
		return nil, err
	}

	cfg := &Config{Presets: make(map[string]domain.SettingsPartial, len(fc.Presets))}

	general, err := Decode(fc.General)
	if err != nil {
		return nil, fmt.Errorf("general: %w", err)
	}
	cfg.General = general

	for name, raw := range fc.Presets {
		p, err := Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("preset %s: %w", name, err)
		}
		cfg.Presets[name] = p
	}

	return cfg, nil
}
