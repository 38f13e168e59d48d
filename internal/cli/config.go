package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/umlayout/pkg/config"
)

// configCommand creates the config command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect umlayout configuration",
	}
	cmd.AddCommand(c.configShowCommand())
	return cmd
}

// configShowCommand prints the effective configuration as TOML. The output
// is a valid config file.
func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration as TOML.

The configuration is read from --config, else ./` + config.FileName + `, else the
user config directory. Missing keys take their defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return cfg.Write(cmd.OutOrStdout())
		},
	}
}
