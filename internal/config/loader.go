package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// envPattern matches ${VAR} and ${VAR:-default} expressions.
var envPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-((?:[^}\\]|\\.)*))?\}`)

// Environment variables that override file settings.
const (
	EnvAPIHost = "DADJOKE_API_HOST"
	EnvStore   = "DADJOKE_STORE"
)

const (
	defaultTimeout  = "15s"
	defaultLogLevel = "warn"
)

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Version: "1",
		API: APIConfig{
			Timeout: defaultTimeout,
		},
		Log: LogConfig{
			Level: defaultLogLevel,
		},
	}
}

// Load reads a YAML configuration file, expands environment variables,
// and parses it over Default().
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	expanded, err := expandEnv(raw)
	if err != nil {
		return nil, fmt.Errorf("config: expanding variables in %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(expanded, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyEnv overlays DADJOKE_* variables onto cfg. lookup is usually
// os.LookupEnv. An API host from the environment replaces both the file's
// host and base_url.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) {
	if host, ok := lookup(EnvAPIHost); ok && host != "" {
		cfg.API.Host = host
		cfg.API.BaseURL = ""
	}
	if path, ok := lookup(EnvStore); ok && path != "" {
		cfg.Store.Path = path
	}
}

// expandEnv replaces ${VAR} and ${VAR:-default} patterns in raw YAML bytes.
// Returns an error listing all unresolved variables (no default, no env value).
func expandEnv(raw []byte) ([]byte, error) {
	var errs []error

	result := envPattern.ReplaceAllFunc(raw, func(match []byte) []byte {
		subs := envPattern.FindSubmatch(match)
		name := string(subs[1])
		hasDefault := len(subs) > 2 && subs[2] != nil
		defaultVal := ""
		if hasDefault {
			defaultVal = string(subs[2])
		}

		value, ok := os.LookupEnv(name)
		if ok {
			return []byte(value)
		}

		if hasDefault {
			return []byte(defaultVal)
		}

		errs = append(errs, fmt.Errorf("unresolved variable: %s", name))
		return match
	})

	return result, errors.Join(errs...)
}
