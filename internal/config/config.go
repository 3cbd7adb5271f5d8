// Package config loads the local profile from ~/.gymtap/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Weight units the CLI can render.
const (
	UnitLbs = "lbs"
	UnitKg  = "kg"
)

// Config is the local profile: who the user is and where the tag reader
// device lives. An empty TagDevice means this machine has no reader.
type Config struct {
	UserID      string `yaml:"user_id"`
	DisplayName string `yaml:"display_name"`
	WeightUnit  string `yaml:"weight_unit"`
	TagDevice   string `yaml:"tag_device"`
}

// DefaultPath returns the path to the config file.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".gymtap", "config.yaml"), nil
}

// Load reads the config at path. A missing file yields the defaults; a
// present but unreadable one is an error.
func Load(path string) (*Config, error) {
	cfg := &Config{WeightUnit: UnitLbs}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.WeightUnit == "" {
		cfg.WeightUnit = UnitLbs
	}
	if cfg.WeightUnit != UnitLbs && cfg.WeightUnit != UnitKg {
		return nil, fmt.Errorf("unknown weight unit %q (want lbs or kg)", cfg.WeightUnit)
	}
	return cfg, nil
}

// Save writes the config to path, creating the directory if needed.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create gymtap directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
