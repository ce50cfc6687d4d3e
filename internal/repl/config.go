package repl

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds REPL configuration, loadable from flare.yaml in the
// working directory or ~/.flare.yaml.
type Config struct {
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history_file"`
	Color       bool   `yaml:"color"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Prompt:      "?> ",
		HistoryFile: filepath.Join(os.TempDir(), ".flare_history"),
		Color:       true,
	}
}

// LoadConfig reads the first config file found, falling back to the
// defaults when none exists. A malformed file is an error; a missing one
// is not.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	paths := []string{"flare.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".flare.yaml"))
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
		break
	}

	if cfg.Prompt == "" {
		cfg.Prompt = "?> "
	}
	if cfg.HistoryFile == "" {
		cfg.HistoryFile = filepath.Join(os.TempDir(), ".flare_history")
	}
	return cfg, nil
}
