// Package config loads umlayout's TOML configuration file.
//
// A file has three optional sections; every key is optional and unknown
// keys are rejected:
//
//	[layout]
//	horizontal_gap = 40
//	vertical_gap = 60
//	max_crossing_reduction_passes = 8
//	non_hierarchy_gap = 80
//	margin = 20
//	max_width = 1200
//
//	[cache]
//	enabled = true
//	backend = "file"            # or "redis"
//	dir = "/home/me/.cache/umlayout"
//	redis_url = "redis://localhost:6379/0"
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
//
// Values not present in the file keep their defaults from [Default].
package config

import (
	"bytes"
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/umlayout/pkg/errors"
	"github.com/matzehuels/umlayout/pkg/layout"
)

// FileName is the name looked up by Find.
const FileName = "umlayout.toml"

const (
	DefaultCacheTTL   = 24 * time.Hour
	DefaultServerAddr = ":8080"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config is the whole configuration file.
type Config struct {
	Layout layout.Config `toml:"layout"`
	Cache  CacheConfig   `toml:"cache"`
	Server ServerConfig  `toml:"server"`
}

// CacheConfig controls the layout cache of the CLI and the server.
type CacheConfig struct {
	Enabled  bool     `toml:"enabled"`
	Backend  string   `toml:"backend"`
	Dir      string   `toml:"dir"`       // file backend
	RedisURL string   `toml:"redis_url"` // redis backend
	TTL      Duration `toml:"ttl"`
}

// ServerConfig controls `umlayout serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a Go duration string ("90m").
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
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Layout: layout.DefaultConfig(),
		Cache: CacheConfig{
			Enabled: true,
			Backend: BackendFile,
			Dir:     DefaultCacheDir(),
			TTL:     Duration{DefaultCacheTTL},
		},
		Server: ServerConfig{Addr: DefaultServerAddr},
	}
}

// DefaultCacheDir returns the per-user cache directory for umlayout, falling
// back to the system temp directory.
func DefaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "umlayout")
	}
	return filepath.Join(os.TempDir(), "umlayout-cache")
}

// Find returns the first existing configuration file among ./umlayout.toml
// and the per-user config directory, or "" if there is none.
func Find() string {
	candidates := []string{FileName}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "umlayout", FileName))
	}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// Load reads and validates the file at path on top of Default.
func Load(path string) (Config, error) {
	if err := errors.ValidatePath(path); err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return Config{}, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInternal, err, "read config %s", path)
	}
	return Parse(data)
}

// Parse decodes TOML data on top of Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slices.Sort(keys)
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl must be >= 0, got %s", c.Cache.TTL)
	}
	switch {
	case !c.Cache.Enabled:
	case c.Cache.Backend == BackendFile:
		if err := errors.ValidateDir(c.Cache.Dir); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "cache dir")
		}
	case c.Cache.Backend == BackendRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache backend redis needs redis_url")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (want %s or %s)", c.Cache.Backend, BackendFile, BackendRedis)
	}
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server addr must not be empty")
	}
	return nil
}

// Write encodes c as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
