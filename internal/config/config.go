// Package config loads Janus's small per-user configuration file,
// ~/.janusrc.yaml: REPL prompt color, history file path, and a list of
// prelude files to :load automatically at startup.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the parsed contents of ~/.janusrc.yaml.
type Config struct {
	PromptColor string   `yaml:"prompt_color"`
	HistoryFile string   `yaml:"history_file"`
	Prelude     []string `yaml:"prelude"`
}

// defaults mirrors the REPL's own fallbacks so a missing or
// partially-specified file behaves exactly like no file at all.
func defaults() *Config {
	return &Config{
		PromptColor: "cyan",
		HistoryFile: filepath.Join(os.TempDir(), ".janus_history"),
	}
}

// Path returns the default location Load reads from: ~/.janusrc.yaml.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".janusrc.yaml"), nil
}

// Load reads and parses the config file at path. A missing file is not
// an error: Load returns the defaults (cyan prompt, history file in the
// temp directory, no prelude), matching the loader
// package's tolerant-missing-file convention.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
