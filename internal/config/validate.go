package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"
)

// Validate checks the structural validity of a Config and reports every
// problem at once.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Version == "" {
		errs = append(errs, errors.New("config: version field is required"))
	} else if cfg.Version != "1" {
		errs = append(errs, fmt.Errorf("config: unsupported version %q (supported: \"1\")", cfg.Version))
	}

	errs = append(errs, validateAPI(cfg.API)...)

	if _, err := ParseLevel(cfg.Log.Level); err != nil {
		errs = append(errs, err)
	}

	if ep := cfg.Telemetry.OTLPEndpoint; ep != "" {
		if err := validateURL("telemetry.otlp_endpoint", ep); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func validateAPI(api APIConfig) []error {
	var errs []error

	if api.Host != "" && api.BaseURL != "" {
		errs = append(errs, errors.New("config: api.host and api.base_url are mutually exclusive"))
	}
	if api.BaseURL != "" {
		if err := validateURL("api.base_url", api.BaseURL); err != nil {
			errs = append(errs, err)
		}
	}

	timeout, err := time.ParseDuration(api.Timeout)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("config: api.timeout: %w", err))
	case timeout <= 0:
		errs = append(errs, fmt.Errorf("config: api.timeout must be positive, got %s", timeout))
	}

	if api.PageLimit < 0 {
		errs = append(errs, fmt.Errorf("config: api.page_limit must not be negative, got %d", api.PageLimit))
	}

	return errs
}

func validateURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("config: %s: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("config: %s scheme must be http or https, got %q", field, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("config: %s must include a host", field)
	}
	return nil
}

// ParseLevel maps a level name onto slog.Level. Empty means warn.
func ParseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelWarn, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("config: log.level: %w", err)
	}
	return lvl, nil
}
