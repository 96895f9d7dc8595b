package config

import (
	"os"
	"path/filepath"

	"github.com/flemzord/dadjoke/internal/jokeapi"
)

// ResolvePath searches for a config file in standard locations and
// reports whether one exists.
// Search order: $XDG_CONFIG_HOME/dadjoke/dadjoke.yaml → ~/.config/dadjoke/dadjoke.yaml → ./dadjoke.yaml
func ResolvePath() (string, bool) {
	var candidates []string

	if xdg, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok {
		candidates = append(candidates, filepath.Join(xdg, "dadjoke", "dadjoke.yaml"))
	} else if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "dadjoke", "dadjoke.yaml"))
	}

	candidates = append(candidates, "dadjoke.yaml")

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// DefaultDataDir returns the default persistent data directory.
// Uses $XDG_DATA_HOME/dadjoke if set, otherwise ~/.local/share/dadjoke (XDG Base Directory layout).
func DefaultDataDir() string {
	if dir, ok := os.LookupEnv("XDG_DATA_HOME"); ok {
		return filepath.Join(dir, "dadjoke")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "dadjoke")
}

// StorePath returns the configured record file or the default one.
func (c *Config) StorePath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	return filepath.Join(DefaultDataDir(), "jokes.txt")
}

// BaseURL returns the API base URL: base_url when set, otherwise one
// derived from host.
func (c *Config) BaseURL() string {
	if c.API.BaseURL != "" {
		return c.API.BaseURL
	}
	return jokeapi.BaseURLFromHost(c.API.Host)
}
