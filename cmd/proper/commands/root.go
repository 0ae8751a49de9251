// Package commands implements the CLI commands for proper.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/proper/internal/app"
	"go.trai.ch/proper/internal/build"
	"go.trai.ch/proper/internal/tui"
)

// CLI represents the command line interface for proper.
type CLI struct {
	app      *app.App
	progress *tui.Feed
	rootCmd  *cobra.Command
}

// Option configures a CLI.
type Option func(*CLI)

// WithProgress enables the --progress view, rendered from feed.
func WithProgress(feed *tui.Feed) Option {
	return func(c *CLI) {
		c.progress = feed
	}
}

// New creates a new CLI instance with the given app.
func New(a *app.App, opts ...Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "proper [packages...]",
		Short:         "Install git-hosted Elm packages at exact tagged versions",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	// Registered before the version flag so that -v stays with --verbose.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print progress for every dependency")
	rootCmd.PersistentFlags().Bool("progress", false, "Render a live progress view while installing")

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}
	for _, opt := range opts {
		opt(c)
	}

	// Without a subcommand the root behaves like install.
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return c.install(cmd, args)
	}

	rootCmd.AddCommand(c.newInstallCmd())
	rootCmd.AddCommand(c.newVerifyCmd())
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

// SetOut redirects command output. Used for testing.
func (c *CLI) SetOut(w io.Writer) {
	c.rootCmd.SetOut(w)
}
