package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata" // timezone works without a system zoneinfo

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// Config holds defaults for the command-line flags.
//
// File location: ~/.config/certcheck/config.yml (or $XDG_CONFIG_HOME/certcheck/config.yml,
// or $CERTCHECK_CONFIG).
type Config struct {
	CertsDir              string        `yaml:"certs_dir,omitempty"`
	Verbose               bool          `yaml:"verbose"`
	Color                 string        `yaml:"color"` // "auto", "always", "never"
	Workers               int           `yaml:"workers"`
	Timeout               time.Duration `yaml:"timeout"`
	Parser                string        `yaml:"parser"` // "native", "openssl"
	OpenSSLPath           string        `yaml:"openssl_path,omitempty"`
	Timezone              string        `yaml:"timezone,omitempty"`
	WarnUnknownExtensions bool          `yaml:"warn_unknown_extensions"`
	LogFile               string        `yaml:"log_file,omitempty"`
	LogLevel              string        `yaml:"log_level,omitempty"`
}

func Default() Config {
	return Config{
		Color:                 "auto",
		Workers:               0, // one per CPU at run time
		Timeout:               10 * time.Second,
		Parser:                "native",
		WarnUnknownExtensions: true,
		LogLevel:              "INFO",
	}
}

func Path() (string, error) {
	if p := strings.TrimSpace(os.Getenv("CERTCHECK_CONFIG")); p != "" {
		return homedir.Expand(p)
	}
	base := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME"))
	if base == "" {
		home, err := homedir.Dir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "certcheck", "config.yml"), nil
}

// Load reads config.yml if present. If missing, returns Default() with nil error.
// On a malformed file it returns Default() and the error, so callers can warn
// and carry on.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFile(path)
}

// LoadFile is Load for an explicit path.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}

	if cfg.CertsDir, err = homedir.Expand(cfg.CertsDir); err != nil {
		return Default(), err
	}
	if cfg.LogFile, err = homedir.Expand(cfg.LogFile); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate checks enumerated and numeric fields.
func (c Config) Validate() error {
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("color must be auto, always or never, got %q", c.Color)
	}
	switch c.Parser {
	case "native", "openssl":
	default:
		return fmt.Errorf("parser must be native or openssl, got %q", c.Parser)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative, got %s", c.Timeout)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location is the time zone used to render local certificate dates.
func (c Config) Location() (*time.Location, error) {
	if strings.TrimSpace(c.Timezone) == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone: %w", err)
	}
	return loc, nil
}
