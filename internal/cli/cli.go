package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/umlayout/pkg/buildinfo"
	"github.com/matzehuels/umlayout/pkg/cache"
	"github.com/matzehuels/umlayout/pkg/config"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "umlayout"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is set by the persistent --config flag.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "umlayout arranges UML diagrams into tidy layers",
		Long: `umlayout computes positions for the shapes of a UML class diagram and
routes its connectors. Generalizations and realizations are drawn as layers
with parents above children; everything else is placed in rows below.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ./"+config.FileName+" or the user config dir)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig reads the file named by --config, or the first file found by
// config.Find. Without either it returns the defaults.
func (c *CLI) loadConfig() (config.Config, error) {
	path := c.configPath
	if path == "" {
		path = config.Find()
	}
	if path == "" {
		c.Logger.Debug("no config file, using defaults")
		return config.Default(), nil
	}
	c.Logger.Debug("loading config", "path", path)
	return config.Load(path)
}

// =============================================================================
// Cache Factory
// =============================================================================

// newCache opens the configured cache backend, or a NullCache when caching
// is off. An unreachable backend degrades to NullCache with a warning.
func (c *CLI) newCache(ctx context.Context, cfg config.CacheConfig, noCache bool) cache.Cache {
	if noCache || !cfg.Enabled {
		return cache.NewNullCache()
	}
	store, err := openCache(ctx, cfg)
	if err != nil {
		c.Logger.Warn("cache disabled", "backend", cfg.Backend, "err", err)
		return cache.NewNullCache()
	}
	return store
}

// openCache opens the configured backend regardless of cfg.Enabled.
func openCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, error) {
	if cfg.Backend == config.BackendRedis {
		return cache.NewRedisCache(ctx, cfg.RedisURL, appName+":")
	}
	return cache.NewFileCache(cfg.Dir)
}

// cacheLocation describes where cfg stores layouts.
func cacheLocation(cfg config.CacheConfig) string {
	if cfg.Backend == config.BackendRedis {
		return cfg.RedisURL
	}
	return cfg.Dir
}

// newKeyer scopes cache keys to the running version so upgrades never
// serve layouts computed by older builds.
func newKeyer() cache.Keyer {
	return cache.NewScopedKeyer(nil, buildinfo.Version+":")
}
