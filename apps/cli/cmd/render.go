package cmd

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/abdul-hamid-achik/testanything/packages/core/config"
	"github.com/abdul-hamid-achik/testanything/packages/source"
	"github.com/spf13/cobra"
)

func newRenderCmd() *cobra.Command {
	var (
		flags sourceFlags
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a suite document as one TAP stream",
		Long: `Render a suite document as a complete TAP stream: the plan line
followed by every result and its diagnostics, written in a single call.

Exits with status 1 when the suite contains failing tests.

Examples:
  testanything render results.yaml
  testanything render report.json --query report.suites.0
  testanything render results.db --suite nightly --summary
  testanything render results.yaml --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags.configPath, flags.overrides())
			if err != nil {
				return err
			}
			if !watch {
				return renderFile(cmd, cfg, args[0])
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			console := newConsole(cmd, cfg)
			report := func(err error) {
				var exitErr *exitError
				if errors.As(err, &exitErr) && exitErr.err == nil {
					return
				}
				console.FormatError(err)
			}

			if err := renderFile(cmd, cfg, args[0]); err != nil {
				report(err)
			}
			return watchFile(ctx, cmd.ErrOrStderr(), args[0], func() {
				if err := renderFile(cmd, cfg, args[0]); err != nil {
					report(err)
				}
			}, report)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-render whenever the file changes")

	return cmd
}

// renderFile loads path and prints the whole stream
func renderFile(cmd *cobra.Command, cfg *config.Config, path string) error {
	suite, err := source.LoadFile(cmd.Context(), path, loadOptions(cfg)...)
	if err != nil {
		return withExitCode(ExitParseError, err)
	}

	out, release, err := openOutput(cmd, cfg)
	if err != nil {
		return err
	}
	defer release()

	if _, err := suite.Print(out); err != nil {
		return withExitCode(ExitOutputError, err)
	}

	if cfg.GetSummary() {
		newConsole(cmd, cfg).FormatSuite(suite)
	}

	if _, failed := suite.Counts(); failed > 0 {
		return withExitCode(ExitTestFailure, nil)
	}
	return nil
}
