package engine

import (
	"errors"
	"fmt"
	"time"
)

// Config holds everything an Engine needs to run one pass.
type Config struct {
	// DocsPath is the root directory of the declaration sources. Required.
	DocsPath string

	LogFormat string // "text" or "json"
	LogLevel  string // "debug", "info", "warn", "error"

	// Workers is the executor pool size.
	Workers int

	// ExampleTimeout bounds each adapter invocation.
	ExampleTimeout time.Duration
}

// NewConfig validates a raw config and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.DocsPath == "" {
		return nil, errors.New("DocsPath is a required configuration field and cannot be empty")
	}

	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid LogFormat %q: must be \"text\" or \"json\"", cfg.LogFormat)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid LogLevel %q", cfg.LogLevel)
	}

	if cfg.Workers < 1 {
		cfg.Workers = 10
	}
	if cfg.ExampleTimeout <= 0 {
		cfg.ExampleTimeout = 10 * time.Second
	}

	return &cfg, nil
}
