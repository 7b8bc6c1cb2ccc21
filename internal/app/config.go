package app

import "errors"

// Config holds everything an App instance needs to run one compilation.
type Config struct {
	SchemaPath    string
	OutDir        string
	WriteManifest bool
	LogFormat     string
	LogLevel      string
}

// NewConfig applies defaults and validates the configuration.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.SchemaPath == "" {
		return nil, errors.New("a schema path is required")
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "."
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return &cfg, nil
}
