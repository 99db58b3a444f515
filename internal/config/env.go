package config

import "os"

// envOverrides maps environment variables to config field setters.
var envOverrides = []struct {
	envVar string
	apply  func(*Config, string)
}{
	{
		envVar: "TERPDESK_API_URL",
		apply: func(c *Config, v string) {
			c.APIURL = v
		},
	},
	{
		envVar: "TERPDESK_POLL_INTERVAL",
		apply: func(c *Config, v string) {
			c.PollInterval = v
		},
	},
	{
		envVar: "TERPDESK_REQUEST_TIMEOUT",
		apply: func(c *Config, v string) {
			c.RequestTimeout = v
		},
	},
	{
		envVar: "TERPDESK_TIME_ZONE",
		apply: func(c *Config, v string) {
			c.TimeZone = v
		},
	},
	{
		envVar: "TERPDESK_SESSION_PATH",
		apply: func(c *Config, v string) {
			c.SessionPath = v
		},
	},
}

// applyEnvOverrides modifies config in place with environment variable values.
func applyEnvOverrides(cfg *Config) {
	for _, override := range envOverrides {
		if val := os.Getenv(override.envVar); val != "" {
			override.apply(cfg, val)
		}
	}
}
