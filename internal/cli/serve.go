package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/umlayout/pkg/config"
	"github.com/matzehuels/umlayout/pkg/server"
)

// serveCommand creates the serve command for the HTTP layout service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout service",
		Long: `Run the HTTP layout service.

Endpoints:
  POST /v1/layout   lay out the diagram document in the request body
  GET  /healthz     report service health and version

Spacing can be overridden per request with the query parameters
horizontal_gap, vertical_gap, non_hierarchy_gap, margin, max_width and passes.
The server stops gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			store := c.newCache(cmd.Context(), cfg.Cache, noCache)
			defer store.Close()

			srv := server.New(server.Options{
				Logger:   c.Logger,
				Layout:   cfg.Layout,
				Cache:    store,
				Keyer:    newKeyer(),
				CacheTTL: cfg.Cache.TTL.Duration,
			})

			printInfo("Listening on %s", cfg.Server.Addr)
			printKeyValue("cache", cacheLabel(cfg.Cache, noCache))
			return srv.ListenAndServe(cmd.Context(), cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: config server.addr, else "+config.DefaultServerAddr+")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// cacheLabel describes where layouts are cached.
func cacheLabel(cfg config.CacheConfig, noCache bool) string {
	switch {
	case noCache || !cfg.Enabled:
		return "disabled"
	default:
		return cacheLocation(cfg)
	}
}
