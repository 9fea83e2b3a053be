// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all abook configuration.
type Config struct {
	Shell Shell `yaml:"shell"`
	Log   Log   `yaml:"log"`
}

// Shell holds interactive prompt settings.
type Shell struct {
	Prompt   string `yaml:"prompt"`
	PageSize int    `yaml:"page_size"` // Records per page for "show all"
	Plain    bool   `yaml:"plain"`     // Never start the terminal UI
}

// Log holds diagnostic logging settings.
type Log struct {
	Level string `yaml:"level"` // "debug" | "info" | "warn" | "error"
	File  string `yaml:"file"`  // Empty means stderr in plain mode, discarded in the TUI
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Shell: Shell{
			Prompt:   ">>> ",
			PageSize: 5,
		},
		Log: Log{
			Level: "warn",
		},
	}
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if c.Shell.PageSize <= 0 {
		return fmt.Errorf("config: shell.page_size must be positive, got %d", c.Shell.PageSize)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
		// valid
	default:
		return fmt.Errorf("config: log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: ABOOK_PROMPT, ABOOK_PAGE_SIZE, ABOOK_LOG_LEVEL, ABOOK_LOG_FILE.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv("ABOOK_PROMPT"); ok {
		c.Shell.Prompt = v
	}
	if v := os.Getenv("ABOOK_PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid ABOOK_PAGE_SIZE %q: %w", v, err)
		}
		c.Shell.PageSize = n
	}
	if v := os.Getenv("ABOOK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("ABOOK_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Shell *rawShell `yaml:"shell"`
	Log   *rawLog   `yaml:"log"`
}

type rawShell struct {
	Prompt   *string `yaml:"prompt"`
	PageSize *int    `yaml:"page_size"`
	Plain    *bool   `yaml:"plain"`
}

type rawLog struct {
	Level *string `yaml:"level"`
	File  *string `yaml:"file"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Shell != nil {
		if layer.Shell.Prompt != nil {
			c.Shell.Prompt = *layer.Shell.Prompt
		}
		if layer.Shell.PageSize != nil {
			c.Shell.PageSize = *layer.Shell.PageSize
		}
		if layer.Shell.Plain != nil {
			c.Shell.Plain = *layer.Shell.Plain
		}
	}
	if layer.Log != nil {
		if layer.Log.Level != nil {
			c.Log.Level = *layer.Log.Level
		}
		if layer.Log.File != nil {
			c.Log.File = *layer.Log.File
		}
	}
}
