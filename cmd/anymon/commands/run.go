package commands

import (
	"strings"

	"github.com/spf13/cobra"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run COMMAND [ARGS...]",
		Short: "Run a command once, without a shell",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Run(cmd.Context(), strings.Join(args, " "))
		},
	}
	// Flags after the command belong to the command.
	cmd.Flags().SetInterspersed(false)
	return cmd
}
