package cmd

import (
	"errors"
	"os"

	"github.com/abdul-hamid-achik/testanything/packages/output"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "testanything",
		Short: "Render test results as TAP.",
		Long: `testanything turns test-result documents into Test Anything Protocol
streams. Results can be rendered as one complete stream or replayed
line by line, the way a running test suite would emit them.

Suite documents may be YAML, JSON or a SQLite database.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newStreamCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := newRootCmd().Execute(); err != nil {
		var exitErr *exitError
		if !errors.As(err, &exitErr) || exitErr.err != nil {
			output.NewConsoleFormatter(output.WithWriter(os.Stderr)).FormatError(err)
		}
		os.Exit(exitCode(err))
	}
}
