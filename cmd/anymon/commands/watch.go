package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch files and restart configured tasks on change",
		Long: "Watch files and restart configured tasks on change.\n\n" +
			"While running, type rs or restart to restart every task, status to print\n" +
			"task states, and quit, q or exit to stop.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Watch(cmd.Context(), options(cmd))
		},
	}
}

func (c *CLI) newDebugCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "debug",
		Short: "Print the loaded configuration and effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Debug(cmd.Context(), options(cmd))
		},
	}
}
