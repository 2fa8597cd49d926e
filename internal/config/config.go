package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/logging"
)

// FileName is the configuration file looked up in the working directory.
const FileName = ".cml-refactor.yaml"

// Config holds the tool settings.
type Config struct {
	Log logging.Config `yaml:"log,omitempty"`
	// Write applies edits to the documents instead of listing them.
	Write bool `yaml:"write,omitempty"`
	// Document is used when a command names no document.
	Document string `yaml:"document,omitempty"`
}

// Load reads FileName from dir. A missing file yields the defaults.
func Load(dir string) (*Config, error) {
	cfg, err := LoadFile(filepath.Join(dir, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		cfg = &Config{}
		applyDefaults(cfg)

		return cfg, nil
	}

	return cfg, err
}

// LoadFile reads and parses a configuration file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML configuration data.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = logging.DefaultLevel
	}
}
