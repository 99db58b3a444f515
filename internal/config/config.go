package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all client settings. It is immutable after Load.
type Config struct {
	// APIURL is the base URL of the portal API.
	APIURL string `yaml:"api_url"`

	// RequestTimeout bounds every API request (duration string).
	RequestTimeout string `yaml:"request_timeout"`

	// PollInterval is how often list screens refresh (duration string).
	PollInterval string `yaml:"poll_interval"`

	// ClockInterval is how often elapsed-time displays re-render
	// (duration string).
	ClockInterval string `yaml:"clock_interval"`

	// TimeZone names the zone used to interpret schedule strings from the
	// server. Empty means the system local zone.
	TimeZone string `yaml:"time_zone"`

	// SessionPath is the session database location.
	SessionPath string `yaml:"session_path"`
}

// RequestTimeoutDuration parses the request timeout as a Duration.
func (c *Config) RequestTimeoutDuration() (time.Duration, error) {
	return time.ParseDuration(c.RequestTimeout)
}

// PollIntervalDuration returns the list refresh interval as a Duration.
func (c *Config) PollIntervalDuration() (time.Duration, error) {
	return time.ParseDuration(c.PollInterval)
}

// ClockIntervalDuration returns the clock tick interval as a Duration.
func (c *Config) ClockIntervalDuration() (time.Duration, error) {
	return time.ParseDuration(c.ClockInterval)
}

// Location resolves the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// Load reads configuration in layers: defaults, then the config file (the
// given path, or ~/.terpdesk.yaml when path is empty), then .env, then
// environment overrides. The file being absent is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".terpdesk.yaml")
		}
	}
	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	// .env in the working directory feeds the env overrides below.
	_ = godotenv.Load()

	applyEnvOverrides(cfg)

	if cfg.SessionPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		cfg.SessionPath = filepath.Join(home, ".terpdesk", "session.db")
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}
