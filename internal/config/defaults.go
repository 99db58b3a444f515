package config

const (
	DefaultRequestTimeout = "30s"
	DefaultPollInterval   = "60s"
	DefaultClockInterval  = "1s"
)

// DefaultConfig returns a Config with all default values applied.
// APIURL has no default; it must come from the file or environment.
func DefaultConfig() *Config {
	return &Config{
		RequestTimeout: DefaultRequestTimeout,
		PollInterval:   DefaultPollInterval,
		ClockInterval:  DefaultClockInterval,
	}
}
