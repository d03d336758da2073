// Package config loads timereport settings from defaults, an optional YAML
// file and the environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/time-butler/timereport/pkg/timereport"
	"github.com/time-butler/timereport/pkg/timereport/parser"
	"github.com/time-butler/timereport/pkg/timereport/store"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings.
const (
	EnvStore     = "TIMEREPORT_STORE"
	EnvOnCorrupt = "TIMEREPORT_ON_CORRUPT"
	EnvEncodings = "TIMEREPORT_ENCODINGS"
	EnvLogLevel  = "LOGLEVEL"
)

// Config holds all timereport settings.
type Config struct {
	// Store is the archive path.
	Store string `yaml:"store"`
	// OnCorrupt is the policy for an unreadable archive: fallback, backup or fail.
	OnCorrupt string `yaml:"on_corrupt"`
	// Encodings are tried in order when decoding input files.
	Encodings []string `yaml:"encodings"`
	// LogLevel is a zerolog level name.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Store:     timereport.DefaultStorePath,
		OnCorrupt: string(store.PolicyFallback),
		Encodings: append([]string(nil), parser.DefaultEncodings...),
		LogLevel:  "info",
	}
}

// Load reads path over the defaults and applies environment overrides.
// An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvStore); v != "" {
		c.Store = v
	}
	if v := os.Getenv(EnvOnCorrupt); v != "" {
		c.OnCorrupt = v
	}
	if v := os.Getenv(EnvEncodings); v != "" {
		c.Encodings = nil
		for _, enc := range strings.Split(v, ",") {
			if enc = strings.TrimSpace(enc); enc != "" {
				c.Encodings = append(c.Encodings, enc)
			}
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// Save writes c to path as YAML.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Options converts c into processor options.
func (c Config) Options() (timereport.Options, error) {
	policy, err := store.ParseCorruptPolicy(c.OnCorrupt)
	if err != nil {
		return timereport.Options{}, err
	}
	opts := timereport.DefaultOptions()
	opts.OnCorrupt = policy
	if c.Store != "" {
		opts.StorePath = c.Store
	}
	if len(c.Encodings) > 0 {
		opts.Encodings = c.Encodings
	}
	return opts, nil
}
