// Package commands implements the CLI commands for anymon.
package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.trai.ch/anymon/internal/app"
	"go.trai.ch/anymon/internal/build"
	"go.trai.ch/anymon/internal/core/domain"
	"go.trai.ch/anymon/internal/ui/style"
)

// CLI represents the command line interface for anymon.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, command string) error
	Watch(ctx context.Context, opts app.Options) error
	Debug(ctx context.Context, opts app.Options) error
	ConfigureOutput(opts app.OutputOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "anymon",
		Short:         "A language-agnostic file watcher that restarts anything on change",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), style.Prefix+" no command specified. See --help.")
			return nil
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.StringArray("watch", nil, "Path to watch, repeatable (defaults to the working directory)")
	flags.String("config", "", "Config file, TOML only (defaults to ./"+domain.DefaultConfigFile+" when present)")
	flags.Uint64("debounce", uint64(domain.DefaultDebounce.Milliseconds()), "Debounce window in milliseconds")
	flags.Uint64("kill-timeout", uint64(domain.DefaultKillTimeout.Milliseconds()), "Time to wait for a stopped process in milliseconds")
	flags.Bool("no-shell-fallback", false, "Never run commands through /bin/sh -c")
	flags.Bool("log-json", false, "Write log lines as JSON")
	flags.String("color", "auto", "Color output: auto, always, or never")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		jsonLogs, _ := cmd.Flags().GetBool("log-json")
		color, _ := cmd.Flags().GetString("color")
		return c.app.ConfigureOutput(app.OutputOptions{JSON: jsonLogs, Color: color})
	}

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newDebugCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// options collects the shared flags. Only flags set on the command line
// become overrides, so config values win over flag defaults.
func options(cmd *cobra.Command) app.Options {
	flags := cmd.Flags()

	var opts app.Options
	opts.ConfigPath, _ = flags.GetString("config")

	if flags.Changed("watch") {
		opts.Overrides.Roots, _ = flags.GetStringArray("watch")
	}
	if flags.Changed("debounce") {
		opts.Overrides.Debounce = millis(flags, "debounce")
	}
	if flags.Changed("kill-timeout") {
		opts.Overrides.KillTimeout = millis(flags, "kill-timeout")
	}
	if flags.Changed("no-shell-fallback") {
		disabled, _ := flags.GetBool("no-shell-fallback")
		enabled := !disabled
		opts.Overrides.ShellFallback = &enabled
	}

	return opts
}

func millis(flags *pflag.FlagSet, name string) *time.Duration {
	ms, _ := flags.GetUint64(name)
	d := domain.Millis(ms)
	return &d
}
