package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/frontier/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Search.Frontier != "queue" || cfg.Server.Addr != ":8080" {
		t.Errorf("Load without file = %+v, want defaults", cfg)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
dataset = "/data/large"
log_level = "debug"

[cache]
backend = "redis"
redis_addr = "cache:6379"
redis_db = 2
ttl = "1h"

[search]
timeout = "45s"
frontier = "stack"

[server]
request_timeout = "3s"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Dataset != "/data/large" || cfg.LogLevel != "debug" {
		t.Errorf("top level = %q, %q", cfg.Dataset, cfg.LogLevel)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.RedisAddr != "cache:6379" || cfg.Cache.RedisDB != 2 {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Cache.TTL.Duration != time.Hour {
		t.Errorf("cache.ttl = %v, want 1h", cfg.Cache.TTL)
	}
	if cfg.Search.Timeout.Duration != 45*time.Second || cfg.Search.Frontier != "stack" {
		t.Errorf("search = %+v", cfg.Search)
	}
	// Unset keys keep their defaults.
	if cfg.Server.Addr != ":8080" || cfg.Server.RequestTimeout.Duration != 3*time.Second {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Cache.Prefix != "frontier:" {
		t.Errorf("cache.prefix = %q, want default", cfg.Cache.Prefix)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", `dataset = `},
		{"unknown key", `colour = "blue"`},
		{"bad duration", "[search]\ntimeout = \"soon\""},
		{"bad frontier", "[search]\nfrontier = \"priority\""},
		{"bad backend", "[cache]\nbackend = \"memcached\""},
		{"bad level", `log_level = "loud"`},
		{"negative ttl", "[cache]\nttl = \"-1h\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	cfg := Default()
	cfg.Dataset = "/srv/imdb.db"
	cfg.Search.Timeout = Duration{time.Minute}
	if err := Write(path, cfg); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Errorf("Load(Write(cfg)) = %+v, want %+v", got, cfg)
	}
}

func TestPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_CACHE_HOME", "/xdg/cache")
	if got := Path(); got != filepath.Join("/xdg/config", "frontier", "config.toml") {
		t.Errorf("Path() = %s", got)
	}
	if got := DefaultCacheDir(); got != filepath.Join("/xdg/cache", "frontier") {
		t.Errorf("DefaultCacheDir() = %s", got)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandHome("~/data"); got != filepath.Join(home, "data") {
		t.Errorf("expandHome(~/data) = %s", got)
	}
	if got := expandHome("/abs/~x"); got != "/abs/~x" {
		t.Errorf("expandHome should leave other paths alone, got %s", got)
	}
}
