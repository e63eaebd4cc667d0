package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/wopp/pkg/errors"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg, err := Load(Options{EnvFile: filepath.Join(dir, "missing.env"), Getenv: envMap(nil)})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoad_Layers(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "config.toml", `
req_dir = "deps"
req_pattern = "*.in"
cache_ttl = "1h"
timeout = "5s"
redis_url = "redis://file:6379/0"
`)
	envFile := writeFile(t, dir, ".env", "WOPP_REQ_PATTERN=requirements-*.txt\nWOPP_TIMEOUT=20s\n")

	cfg, err := Load(Options{
		File:    file,
		EnvFile: envFile,
		Getenv: envMap(map[string]string{
			EnvTimeout: "30s",
			EnvNoCache: "true",
		}),
	})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	want := Config{
		ReqDir:     "deps",
		ReqPattern: "requirements-*.txt",
		CacheTTL:   time.Hour,
		Timeout:    30 * time.Second,
		NoCache:    true,
		RedisURL:   "redis://file:6379/0",
	}
	if cfg != want {
		t.Errorf("Load() = %+v, want %+v", cfg, want)
	}
}

func TestLoad_ConfigFromEnvVar(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "wopp.toml", `pypi_url = "https://mirror.example/pypi"`)

	cfg, err := Load(Options{EnvFile: filepath.Join(dir, ".env"), Getenv: envMap(map[string]string{EnvConfig: file})})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.PyPIURL != "https://mirror.example/pypi" {
		t.Errorf("PyPIURL = %q", cfg.PyPIURL)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	noEnv := filepath.Join(dir, "none.env")

	tests := []struct {
		name string
		opts Options
	}{
		{"missing explicit file", Options{File: filepath.Join(dir, "nope.toml"), EnvFile: noEnv}},
		{"bad toml", Options{File: writeFile(t, dir, "bad.toml", "req_dir = "), EnvFile: noEnv}},
		{"unknown key", Options{File: writeFile(t, dir, "unknown.toml", `colour = "blue"`), EnvFile: noEnv}},
		{"bad duration", Options{EnvFile: noEnv, Getenv: envMap(map[string]string{EnvCacheTTL: "soon"})}},
		{"bad bool", Options{EnvFile: noEnv, Getenv: envMap(map[string]string{EnvNoCache: "maybe"})}},
		{"bad pattern", Options{EnvFile: noEnv, Getenv: envMap(map[string]string{EnvReqPattern: "../*.txt"})}},
		{"zero timeout", Options{EnvFile: noEnv, Getenv: envMap(map[string]string{EnvTimeout: "0s"})}},
		{"bad pypi url", Options{EnvFile: noEnv, Getenv: envMap(map[string]string{EnvPyPIURL: "ftp://mirror"})}},
	}

	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.opts.Getenv == nil {
				tt.opts.Getenv = envMap(nil)
			}
			_, err := Load(tt.opts)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Load() error = %v, want %s", err, errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	f, err := DefaultFile()
	if err != nil {
		t.Skip("no user config dir on this platform")
	}
	if !strings.HasSuffix(f, filepath.Join("wopp", "config.toml")) {
		t.Errorf("DefaultFile() = %s", f)
	}
}

func TestConfig_String(t *testing.T) {
	s := Default().String()
	for _, want := range []string{`req_dir = "."`, `req_pattern = "requirements*.txt"`} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}

func TestConfig_FieldsFallback(t *testing.T) {
	s := Default().fields()
	for _, want := range []string{"ReqDir:.", "ReqPattern:requirements*.txt"} {
		if !strings.Contains(s, want) {
			t.Errorf("fields() = %q, missing %q", s, want)
		}
	}
	if strings.Contains(s, "req_dir =") {
		t.Errorf("fields() = %q, want Go field syntax", s)
	}
}
