package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// ValidationError contains details about what failed validation.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config.%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// validateConfig checks all config values for validity.
// Returns nil if valid, or joined errors for all validation failures.
func validateConfig(cfg *Config) error {
	var errs []error

	if cfg.APIURL == "" {
		errs = append(errs, &ValidationError{
			Field:   "api_url",
			Value:   cfg.APIURL,
			Message: "must be set (file or TERPDESK_API_URL)",
		})
	} else if u, err := url.Parse(cfg.APIURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, &ValidationError{
			Field:   "api_url",
			Value:   cfg.APIURL,
			Message: "must be an http(s) URL",
		})
	}

	for _, d := range []struct {
		field string
		value string
	}{
		{"request_timeout", cfg.RequestTimeout},
		{"poll_interval", cfg.PollInterval},
		{"clock_interval", cfg.ClockInterval},
	} {
		if _, err := time.ParseDuration(d.value); err != nil {
			errs = append(errs, &ValidationError{
				Field:   d.field,
				Value:   d.value,
				Message: fmt.Sprintf("invalid duration: %v", err),
			})
		}
	}

	if cfg.TimeZone != "" {
		if _, err := time.LoadLocation(cfg.TimeZone); err != nil {
			errs = append(errs, &ValidationError{
				Field:   "time_zone",
				Value:   cfg.TimeZone,
				Message: "unknown time zone",
			})
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
