// Package config loads server configuration from an optional YAML
// file with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// File is the config file name looked up in the working directory.
const File = "archadvisor.yaml"

// Config holds all tunable server settings. Zero values fall back to
// defaults at load time.
type Config struct {
	// OutputDir is where ADR files are written when a tool call does
	// not name a directory.
	OutputDir string `yaml:"output_dir"`

	// HistoryPath is the review archive database file.
	HistoryPath string `yaml:"history_path"`

	// HistoryDisabled turns the archive off entirely.
	HistoryDisabled bool `yaml:"history_disabled"`

	// ExtraDataDir is an optional directory of additional practice
	// JSON files loaded on top of the embedded catalog. Ids must not
	// collide with the embedded set.
	ExtraDataDir string `yaml:"extra_data_dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		OutputDir:   "adrs",
		HistoryPath: filepath.Join(home, ".archadvisor", "history.db"),
	}
}

// Load resolves the effective configuration: defaults, then the YAML
// file if present, then environment overrides. A missing file is not
// an error; a malformed one is.
func Load() (Config, error) {
	return load(File)
}

func load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// defaults apply
	default:
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	if v := os.Getenv("ARCHADVISOR_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("ARCHADVISOR_HISTORY_PATH"); v != "" {
		cfg.HistoryPath = v
	}
	if v := os.Getenv("ARCHADVISOR_HISTORY_DISABLED"); v == "1" || v == "true" {
		cfg.HistoryDisabled = true
	}
	if v := os.Getenv("ARCHADVISOR_EXTRA_DATA_DIR"); v != "" {
		cfg.ExtraDataDir = v
	}
	return cfg, nil
}
