// Package config handles YAML configuration loading, environment variable
// expansion, and validation for dadjoke.
package config

// Config is the top-level configuration structure.
type Config struct {
	// Version is the config format version. Currently only "1" is supported.
	Version string `yaml:"version"`

	API       APIConfig       `yaml:"api"`
	Store     StoreConfig     `yaml:"store"`
	Log       LogConfig       `yaml:"log"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// APIConfig configures the joke search client.
type APIConfig struct {
	// Host is the API hostname, e.g. "icanhazdadjoke.com". A value with a
	// scheme is used verbatim as the base URL.
	Host string `yaml:"host,omitempty"`

	// BaseURL overrides Host with a full URL such as "http://127.0.0.1:8080".
	BaseURL string `yaml:"base_url,omitempty"`

	// Timeout bounds every request. Default: "15s".
	Timeout string `yaml:"timeout"`

	// PageLimit is sent as the page size when positive.
	PageLimit int `yaml:"page_limit,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"user_agent,omitempty"`
}

// StoreConfig locates the record file.
type StoreConfig struct {
	// Path is the record file. Default: $XDG_DATA_HOME/dadjoke/jokes.txt.
	Path string `yaml:"path"`
}

// LogConfig controls the stderr logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error. Default: warn.
	Level string `yaml:"level"`
}

// MetricsConfig controls the Prometheus textfile output.
type MetricsConfig struct {
	// Textfile is written after every command when set.
	Textfile string `yaml:"textfile,omitempty"`
}

// TelemetryConfig controls trace export.
type TelemetryConfig struct {
	// OTLPEndpoint is a full OTLP/HTTP traces URL. Empty disables export.
	OTLPEndpoint string `yaml:"otlp_endpoint,omitempty"`
}
