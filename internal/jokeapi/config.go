package jokeapi

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultHost is the public icanhazdadjoke API.
	DefaultHost      = "icanhazdadjoke.com"
	defaultTimeout   = "15s"
	defaultUserAgent = "dadjoke (https://github.com/flemzord/dadjoke)"
)

// Config holds the client settings.
type Config struct {
	// BaseURL is the API root, without the /search path.
	// Default: "https://icanhazdadjoke.com"
	BaseURL string

	// Timeout bounds every request as a duration string.
	// Default: "15s"
	Timeout string

	// UserAgent is sent on every request. The public API asks clients to
	// identify themselves.
	UserAgent string

	// PageLimit is sent as the "limit" query parameter when positive.
	// 0 leaves the page size to the API.
	PageLimit int
}

// BaseURLFromHost turns a configured host into a base URL. A value that
// already carries a scheme is used as-is, so a local test double such as
// "http://127.0.0.1:8080" can be targeted.
func BaseURLFromHost(host string) string {
	host = strings.TrimSpace(host)
	if host == "" {
		host = DefaultHost
	}
	if strings.Contains(host, "://") {
		return strings.TrimRight(host, "/")
	}
	return "https://" + strings.TrimRight(host, "/")
}

// defaults fills in zero-value fields.
func (c *Config) defaults() {
	if c.BaseURL == "" {
		c.BaseURL = BaseURLFromHost(DefaultHost)
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Timeout == "" {
		c.Timeout = defaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
}

// parsedTimeout parses Timeout as a time.Duration.
func (c *Config) parsedTimeout() (time.Duration, error) {
	return time.ParseDuration(c.Timeout)
}

// validate checks the fields after defaults have been applied.
func (c *Config) validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("jokeapi: invalid base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("jokeapi: base_url scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("jokeapi: base_url must include a host")
	}
	if c.PageLimit < 0 {
		return fmt.Errorf("jokeapi: page_limit must not be negative, got %d", c.PageLimit)
	}
	timeout, err := c.parsedTimeout()
	if err != nil {
		return fmt.Errorf("jokeapi: invalid timeout %q: %w", c.Timeout, err)
	}
	if timeout <= 0 {
		return fmt.Errorf("jokeapi: timeout must be positive, got %s", timeout)
	}
	return nil
}
