package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wopp/internal/config"
)

// configCommand creates the command that prints the effective configuration.
func (c *CLI) configCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after applying the config file, .env and
WOPP_* environment variables, in config file format.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file := c.configFile()
			if file != "" {
				fmt.Fprintln(stdout, StyleDim.Render("# "+file))
			}
			fmt.Fprint(stdout, c.cfg.String())
			return nil
		},
	}
}

// configFile returns the config file path Load consults.
func (c *CLI) configFile() string {
	if c.Config.File != "" {
		return c.Config.File
	}
	getenv := c.Config.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if f := getenv(config.EnvConfig); f != "" {
		return f
	}
	f, _ := config.DefaultFile()
	return f
}
