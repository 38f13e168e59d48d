package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/umlayout/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear [diagram.json]",
		Short: "Remove cached layouts",
		Long: `Remove cached layouts.

Without arguments every cached layout is removed. With a diagram document only
the entry for that document under the configured [layout] settings is removed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			store, err := openCache(cmd.Context(), cfg.Cache)
			if err != nil {
				return fmt.Errorf("open cache %s: %w", cacheLocation(cfg.Cache), err)
			}
			defer store.Close()

			if len(args) == 1 {
				data, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("read %s: %w", args[0], err)
				}
				key := newKeyer().LayoutKey(cache.Hash(data), cfg.Layout)
				if err := store.Delete(cmd.Context(), key); err != nil {
					return fmt.Errorf("delete cached layout: %w", err)
				}
				printSuccess("Removed cached layout for %s", args[0])
				return nil
			}

			clearer, ok := store.(cache.Clearer)
			if !ok {
				return fmt.Errorf("cache backend %q cannot be cleared", cfg.Cache.Backend)
			}
			n, err := clearer.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			if n == 0 {
				printInfo("Cache is empty")
			} else {
				printSuccess("Cleared %d cached layouts", n)
			}
			printDetail("Location: %s", cacheLocation(cfg.Cache))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory (or Redis URL)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), cacheLocation(cfg.Cache))
			return nil
		},
	}
}
