// Package cli implements the brainstorm-api command line.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/tinngotrung-dedicate/Brainstorm-Web/infrastructure/config"
)

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brainstorm-api",
		Short: "Collaborative brainstorm workspace backend",
		Long: `Serves the brainstorm workspace API: groups, topics, SWOT entries and
ideas, live updates over server-sent events, and topic presence.

Configuration is read from defaults, then the YAML file named by
CONFIG_FILE, then environment variables. Flags override all three.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewServeCommand(config.LoadConfig))
	cmd.AddCommand(NewSnapshotCommand(config.LoadConfig))

	return cmd
}

// configLoader is swapped out in tests.
type configLoader func() (*config.Config, error)
