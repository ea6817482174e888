// Package config loads the frontier configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/frontier/config.toml
// (~/.config/frontier/config.toml when XDG_CONFIG_HOME is unset). A missing
// file is not an error: every field has a default. Command-line flags
// override whatever the file sets.
//
//	dataset   = "~/data/imdb/large"
//	log_level = "info"
//
//	[cache]
//	backend = "file"   # file, redis or none
//	ttl     = "168h"
//
//	[search]
//	timeout  = "30s"
//	frontier = "queue" # queue or stack
//
//	[server]
//	addr            = ":8080"
//	request_timeout = "10s"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/frontier/pkg/errors"
)

// AppName names the configuration and cache directories.
const AppName = "frontier"

// Duration is a time.Duration written as a string such as "30s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config is the whole configuration file.
type Config struct {
	// Dataset is the default dataset location: a CSV directory, a SQLite
	// file or a MongoDB URI.
	Dataset  string `toml:"dataset"`
	LogLevel string `toml:"log_level"`

	Cache  CacheConfig  `toml:"cache"`
	Search SearchConfig `toml:"search"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects where dataset snapshots are kept.
type CacheConfig struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"`
	TTL       Duration `toml:"ttl"`
	RedisAddr string   `toml:"redis_addr"`
	RedisDB   int      `toml:"redis_db"`
	Prefix    string   `toml:"prefix"`
}

// SearchConfig bounds and tunes path searches.
type SearchConfig struct {
	// Timeout limits one search; zero means no limit.
	Timeout  Duration `toml:"timeout"`
	Frontier string   `toml:"frontier"`
}

// ServerConfig configures "frontier serve".
type ServerConfig struct {
	Addr           string   `toml:"addr"`
	RequestTimeout Duration `toml:"request_timeout"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		LogLevel: "info",
		Cache: CacheConfig{
			Backend:   "file",
			Dir:       DefaultCacheDir(),
			TTL:       Duration{7 * 24 * time.Hour},
			RedisAddr: "localhost:6379",
			Prefix:    AppName + ":",
		},
		Search: SearchConfig{
			Frontier: "queue",
		},
		Server: ServerConfig{
			Addr:           ":8080",
			RequestTimeout: Duration{10 * time.Second},
		},
	}
}

// Load reads path on top of the defaults. An empty path means [Path]; a
// missing file at the default path yields the defaults, while a missing
// file named explicitly is an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = Path()
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) && !explicit {
		return Default(), nil
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}

	cfg.Dataset = expandHome(cfg.Dataset)
	cfg.Cache.Dir = expandHome(cfg.Cache.Dir)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated fields and ranges.
func (c Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "log_level must be debug, info, warn or error, got %q", c.LogLevel)
	}
	switch c.Cache.Backend {
	case "file", "redis", "none":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend must be file, redis or none, got %q", c.Cache.Backend)
	}
	if c.Cache.Backend == "file" && c.Cache.Dir == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.dir is required for the file backend")
	}
	if c.Cache.Backend == "redis" && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
	}
	if c.Cache.RedisDB < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_db must not be negative")
	}
	if c.Cache.TTL.Duration < 0 || c.Search.Timeout.Duration < 0 || c.Server.RequestTimeout.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "durations must not be negative")
	}
	switch c.Search.Frontier {
	case "queue", "stack":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "search.frontier must be queue or stack, got %q", c.Search.Frontier)
	}
	return nil
}

// Path returns the default configuration file location.
func Path() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", AppName+".toml")
	}
	return filepath.Join(home, ".config", AppName, "config.toml")
}

// DefaultCacheDir returns the cache directory following XDG
// (~/.cache/frontier when XDG_CACHE_HOME is unset).
func DefaultCacheDir() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppName)
	}
	return filepath.Join(home, ".cache", AppName)
}

// Write encodes cfg as TOML to path, creating parent directories.
func Write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return fmt.Errorf("encode config: %w", err)
	}
	return f.Close()
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
