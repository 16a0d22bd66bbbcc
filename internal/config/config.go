package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

const (
	DefaultPrompt  = "tinysh> "
	DefaultMaxJobs = 16
)

type Config struct {
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history_file"`
	HomeDir     string `yaml:"home_dir"`
	MaxJobs     int    `yaml:"max_jobs"`
	Verbose     bool   `yaml:"verbose"`
}

// Load reads the configuration file and fills in defaults for anything
// it does not set. A missing file is not an error; it yields the
// defaults.
func Load(file string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(file)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	if cfg.HomeDir == "" {
		cfg.HomeDir, err = os.UserHomeDir()
		if err != nil {
			return nil, err
		}
	}
	if cfg.HistoryFile == "" {
		cfg.HistoryFile = filepath.Join(cfg.HomeDir, ".tinysh_history")
	}
	if cfg.Prompt == "" {
		cfg.Prompt = DefaultPrompt
	}
	if cfg.MaxJobs < 1 {
		cfg.MaxJobs = DefaultMaxJobs
	}

	return cfg, nil
}
