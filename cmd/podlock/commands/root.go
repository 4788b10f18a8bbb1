// Package commands implements the CLI commands for the podlock tool.
package commands

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// Version is the tool version, overridden at build time.
var Version = "dev"

// CLI represents the command line interface for podlock.
type CLI struct {
	rootCmd *cobra.Command
	log     *slog.Logger
	verbose bool
}

// New creates a new CLI instance.
func New() *CLI {
	c := &CLI{}

	rootCmd := &cobra.Command{
		Use:   "podlock",
		Short: "Inspect and verify Podfile.lock documents",
		Long: `podlock reads, formats and diffs CocoaPods Podfile.lock documents.

It understands the canonical section layout written by pod install and can
tell whether a dependency manifest drifted from what the lock recorded.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			c.log = newLogger(cmd.ErrOrStderr(), c.verbose)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")

	c.rootCmd = rootCmd
	rootCmd.AddCommand(c.newShowCmd())
	rootCmd.AddCommand(c.newDiffCmd())
	rootCmd.AddCommand(c.newFmtCmd())

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

// SetOut sets the writer for command output. Used for testing.
func (c *CLI) SetOut(w io.Writer) {
	c.rootCmd.SetOut(w)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
