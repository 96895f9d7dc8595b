package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dadjoke.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_KeepsDefaultsForUnsetFields(t *testing.T) {
	path := writeConfig(t, `
version: "1"
store:
  path: /tmp/jokes.txt
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Store.Path != "/tmp/jokes.txt" {
		t.Errorf("Store.Path = %q", cfg.Store.Path)
	}
	if cfg.API.Timeout != "15s" {
		t.Errorf("API.Timeout = %q, want default 15s", cfg.API.Timeout)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want default warn", cfg.Log.Level)
	}
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("DADJOKE_TEST_HOST", "jokes.internal")

	path := writeConfig(t, `
version: "1"
api:
  host: ${DADJOKE_TEST_HOST}
  timeout: ${DADJOKE_TEST_TIMEOUT:-3s}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.API.Host != "jokes.internal" {
		t.Errorf("API.Host = %q", cfg.API.Host)
	}
	if cfg.API.Timeout != "3s" {
		t.Errorf("API.Timeout = %q, want 3s", cfg.API.Timeout)
	}
	if got := cfg.BaseURL(); got != "https://jokes.internal" {
		t.Errorf("BaseURL() = %q", got)
	}
}

func TestLoad_UnresolvedVariable(t *testing.T) {
	path := writeConfig(t, `
version: "1"
api:
  host: ${DADJOKE_TEST_SURELY_UNSET}
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for unresolved variable")
	}
	if !strings.Contains(err.Error(), "DADJOKE_TEST_SURELY_UNSET") {
		t.Errorf("error should name the variable: %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "version: [1\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvAPIHost: "http://127.0.0.1:9999",
		EnvStore:   "/var/lib/dadjoke/jokes.txt",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	cfg.API.BaseURL = "https://from-file.example"
	ApplyEnv(cfg, lookup)

	if cfg.API.BaseURL != "" {
		t.Errorf("API.BaseURL = %q, want cleared by env host", cfg.API.BaseURL)
	}
	if got := cfg.BaseURL(); got != "http://127.0.0.1:9999" {
		t.Errorf("BaseURL() = %q", got)
	}
	if got := cfg.StorePath(); got != "/var/lib/dadjoke/jokes.txt" {
		t.Errorf("StorePath() = %q", got)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("Validate() after ApplyEnv: %v", err)
	}
}

func TestApplyEnv_Unset(t *testing.T) {
	cfg := Default()
	ApplyEnv(cfg, func(string) (string, bool) { return "", false })

	if got := cfg.BaseURL(); got != "https://icanhazdadjoke.com" {
		t.Errorf("BaseURL() = %q", got)
	}
}

func TestStorePath_DefaultUsesXDGDataHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	if got, want := Default().StorePath(), filepath.Join(dir, "dadjoke", "jokes.txt"); got != want {
		t.Errorf("StorePath() = %q, want %q", got, want)
	}
}

func TestResolvePath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	if _, ok := ResolvePath(); ok {
		// ./dadjoke.yaml in the package directory would also match.
		if _, err := os.Stat("dadjoke.yaml"); err != nil {
			t.Fatal("ResolvePath() found a file that does not exist")
		}
	}

	want := filepath.Join(dir, "dadjoke", "dadjoke.yaml")
	if err := os.MkdirAll(filepath.Dir(want), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(want, []byte("version: \"1\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, ok := ResolvePath()
	if !ok || got != want {
		t.Errorf("ResolvePath() = (%q, %v), want (%q, true)", got, ok, want)
	}
}
