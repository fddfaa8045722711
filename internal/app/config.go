package app

import (
	"errors"
	"time"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	AddonPath string // directory containing addon.hcl and module sources

	LogFormat string
	LogLevel  string

	Watch    bool
	Debounce time.Duration
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.AddonPath == "" {
		return nil, errors.New("AddonPath is a required configuration field and cannot be empty")
	}

	return &cfg, nil
}
