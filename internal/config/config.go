// Package config loads the instrpatch YAML configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Engine EngineConfig `yaml:"engine"`
	Log    LogConfig    `yaml:"log"`
	Output OutputConfig `yaml:"output"`
}

// EngineConfig holds the patch engine policy constants. These are tuned
// empirically; changing them changes which drifted patches are accepted, so
// treat overrides as a compatibility decision.
type EngineConfig struct {
	SearchRadius  int `yaml:"search_radius"`   // nearby anchor search window, in lines
	MaxHunks      int `yaml:"max_hunks"`       // reject patches with more hunks than this
	MaxDocumentKB int `yaml:"max_document_kb"` // reject instructions larger than this
}

// LogConfig configures the structured log file
type LogConfig struct {
	Path        string `yaml:"path"`        // empty disables logging
	Development bool   `yaml:"development"` // readable encoder instead of production JSON
}

// OutputConfig configures terminal output
type OutputConfig struct {
	Color *bool `yaml:"color"` // nil = default true
}

// MaxDocumentBytes returns the document size cap in bytes.
func (e *EngineConfig) MaxDocumentBytes() int {
	return e.MaxDocumentKB * 1024
}

// GetColor returns whether colored output is enabled. Defaults to true.
func (o *OutputConfig) GetColor() bool {
	if o.Color == nil {
		return true
	}
	return *o.Color
}

// Default returns the built-in configuration used when no config file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Engine.SearchRadius == 0 {
		cfg.Engine.SearchRadius = 80
	}
	if cfg.Engine.MaxHunks == 0 {
		cfg.Engine.MaxHunks = 300
	}
	if cfg.Engine.MaxDocumentKB == 0 {
		cfg.Engine.MaxDocumentKB = 1024
	}
}
