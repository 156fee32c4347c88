package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/abdul-hamid-achik/testanything/packages/core/config"
	"github.com/abdul-hamid-achik/testanything/packages/replay"
	"github.com/abdul-hamid-achik/testanything/packages/source"
	"github.com/abdul-hamid-achik/testanything/packages/tap"
	"github.com/spf13/cobra"
)

type streamFlags struct {
	sourceFlags
	rate     float64
	rateSet  bool // --rate or TESTANYTHING_RATE given, even as 0
	bail     bool
	announce bool
}

func (f *streamFlags) overrides() *config.Config {
	c := f.sourceFlags.overrides()
	if f.rateSet {
		c.Rate = config.Float64Ptr(f.rate)
	}
	if f.bail {
		c.Bail = config.BoolPtr(true)
	}
	if f.announce {
		c.Announce = config.BoolPtr(true)
	}
	return c
}

func newStreamCmd() *cobra.Command {
	var flags streamFlags

	cmd := &cobra.Command{
		Use:   "stream <file>",
		Short: "Replay a suite document line by line",
		Long: `Replay a suite document as an incremental TAP stream. The plan comes
first, then each result is written as soon as it is reached, optionally
paced to a fixed rate. With --bail the stream ends with a bail out line
after the first failing test. Ctrl+C ends the stream with
"Bail out! interrupted".

Exits with status 1 when a failing test was emitted or the stream bailed out.

Examples:
  testanything stream results.yaml
  testanything stream results.yaml --rate 5 --announce
  testanything stream results.db --suite nightly --bail`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.rateSet = cmd.Flags().Changed("rate") || os.Getenv("TESTANYTHING_RATE") != ""
			if flags.rateSet && flags.rate < 0 {
				return withExitCode(ExitUsageError, errors.New("--rate must not be negative"))
			}

			cfg, err := loadConfig(flags.configPath, flags.overrides())
			if err != nil {
				return err
			}
			if cfg.GetRate() < 0 {
				return withExitCode(ExitConfigError, errors.New("rate must not be negative"))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return streamFile(ctx, cmd, cfg, args[0])
		},
	}

	flags.register(cmd)
	cmd.Flags().Float64VarP(&flags.rate, "rate", "r", getEnvFloat("TESTANYTHING_RATE", 0), "Results per second, 0 for unlimited (env: TESTANYTHING_RATE)")
	cmd.Flags().BoolVarP(&flags.bail, "bail", "b", getEnvBool("TESTANYTHING_BAIL", false), "Bail out after the first failing test (env: TESTANYTHING_BAIL)")
	cmd.Flags().BoolVar(&flags.announce, "announce", false, "Write the suite name as a diagnostic banner after the plan")

	return cmd
}

func streamFile(ctx context.Context, cmd *cobra.Command, cfg *config.Config, path string) error {
	suite, err := source.LoadFile(ctx, path, loadOptions(cfg)...)
	if err != nil {
		return withExitCode(ExitParseError, err)
	}

	out, release, err := openOutput(cmd, cfg)
	if err != nil {
		return err
	}
	defer release()

	writer := tap.NewWriter(suite.Name(), tap.WithWriter(out))
	streamer := replay.NewStreamer(
		replay.WithRate(cfg.GetRate()),
		replay.WithBail(cfg.GetBail()),
		replay.WithAnnounce(cfg.GetAnnounce()),
	)

	sum, err := streamer.Run(ctx, writer, suite)

	console := newConsole(cmd, cfg)
	if sum.BailedOut {
		console.FormatBailOut(sum.Emitted, suite.Len())
	}
	if err != nil {
		var writeErr *tap.WriteError
		if errors.As(err, &writeErr) {
			return withExitCode(ExitOutputError, err)
		}
		return withExitCode(ExitTestFailure, err)
	}
	if cfg.GetSummary() {
		console.FormatSuite(suite)
	}

	if sum.Failed > 0 || sum.BailedOut {
		return withExitCode(ExitTestFailure, nil)
	}
	return nil
}
