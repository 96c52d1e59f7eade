// Package config loads pageutil settings from a TOML file.
// Values missing from the file keep their defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	defaultTimeout       = 30 * time.Second
	defaultUserAgent     = "pageutil/1.0 (https://github.com/gaurav-prasanna/pageutil)"
	defaultMaxImageBytes = 5 * 1024 * 1024
	defaultLogLevel      = "info"
)

// Config holds settings shared by the fetcher, the image lookup and the CLI.
type Config struct {
	// Timeout bounds a whole request, including reading the body.
	Timeout       Duration `toml:"timeout"`
	UserAgent     string   `toml:"user_agent"`
	DecodeCharset bool     `toml:"decode_charset"`
	MaxImageBytes int64    `toml:"max_image_bytes"`
	LogLevel      string   `toml:"log_level"`
	LogJSON       bool     `toml:"log_json"`
}

// Duration is a time.Duration that decodes from a TOML string like "10s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", string(b), err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Timeout:       Duration{defaultTimeout},
		UserAgent:     defaultUserAgent,
		MaxImageBytes: defaultMaxImageBytes,
		LogLevel:      defaultLogLevel,
	}
}

// Load reads the TOML file at path on top of Default.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decoding config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that numeric settings are usable.
func (c Config) Validate() error {
	if c.Timeout.Duration < 0 {
		return errors.New("timeout must not be negative")
	}
	if c.MaxImageBytes <= 0 {
		return errors.New("max_image_bytes must be positive")
	}
	return nil
}
