package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/gyeh/kdigstats/internal/discover"
)

// Config holds all runtime configuration for a kdigstats run.
type Config struct {
	DSN         string
	InputDir    string
	Recursive   bool
	Pattern     string // regexp applied to file base names
	Extension   string
	Workers     int
	LogFormat   string // "text" or "json"
	Verbose     bool
	OutPath     string // export target
	FilePath    string // summarize source
	MetricsFile string
}

// yamlConfig is the on-disk YAML structure. Pointers distinguish "absent"
// from zero values.
type yamlConfig struct {
	Extension *string `yaml:"extension"`
	Pattern   *string `yaml:"pattern"`
	Recursive *bool   `yaml:"recursive"`
	Workers   *int    `yaml:"workers"`
	LogFormat *string `yaml:"log_format"`
}

// Flag names that a config file may provide defaults for.
const (
	FlagExtension = "ext"
	FlagPattern   = "pattern"
	FlagRecursive = "recursive"
	FlagWorkers   = "workers"
	FlagLogFormat = "log-format"
)

// LoadFromFile reads a YAML config file and merges its values into Config.
// isSet reports whether a flag was given explicitly; such values are kept.
// A nil isSet lets the file override everything.
func (c *Config) LoadFromFile(path string, isSet func(flag string) bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if isSet == nil {
		isSet = func(string) bool { return false }
	}

	if yc.Extension != nil && !isSet(FlagExtension) {
		c.Extension = *yc.Extension
	}
	if yc.Pattern != nil && !isSet(FlagPattern) {
		c.Pattern = *yc.Pattern
	}
	if yc.Recursive != nil && !isSet(FlagRecursive) {
		c.Recursive = *yc.Recursive
	}
	if yc.Workers != nil && !isSet(FlagWorkers) {
		c.Workers = *yc.Workers
	}
	if yc.LogFormat != nil && !isSet(FlagLogFormat) {
		c.LogFormat = *yc.LogFormat
	}
	return c.validateLogFormat()
}

func (c *Config) validateLogFormat() error {
	switch c.LogFormat {
	case "", "text", "json":
		return nil
	}
	return fmt.Errorf("unknown log format %q (want text or json)", c.LogFormat)
}

// Validate checks the input directory and filename pattern.
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("--input is required")
	}
	info, err := os.Stat(c.InputDir)
	if err != nil {
		return fmt.Errorf("input path does not exist: %s", c.InputDir)
	}
	if !info.IsDir() {
		return fmt.Errorf("input path is not a directory: %s", c.InputDir)
	}
	if c.Workers < 0 {
		return fmt.Errorf("--workers must not be negative")
	}
	if _, err := c.DiscoverOptions(); err != nil {
		return err
	}
	return c.validateLogFormat()
}

// ValidateWithDSN checks both input and DSN fields.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn or KDIGSTATS_DB_URL is required")
	}
	return nil
}

// DiscoverOptions builds the file discovery options, compiling Pattern.
func (c *Config) DiscoverOptions() (discover.Options, error) {
	opts := discover.Options{
		Recursive: c.Recursive,
		Extension: c.Extension,
	}
	if c.Pattern != "" {
		re, err := regexp.Compile(c.Pattern)
		if err != nil {
			return opts, fmt.Errorf("invalid --pattern: %w", err)
		}
		opts.Pattern = re
	}
	return opts, nil
}
