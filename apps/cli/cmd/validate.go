package cmd

import (
	"fmt"

	"github.com/abdul-hamid-achik/testanything/packages/core/config"
	"github.com/abdul-hamid-achik/testanything/packages/output"
	"github.com/abdul-hamid-achik/testanything/packages/source"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "validate <file|directory>...",
		Short: "Check suite documents against the schema",
		Long: `Check YAML and JSON suite documents against the suite schema and
make sure every test carries a pass/fail status. SQLite databases are
checked by loading every suite they contain.

Examples:
  testanything validate results.yaml
  testanything validate ./reports/`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := collectFiles(args)
			if err != nil {
				return withExitCode(ExitUsageError, err)
			}
			if len(files) == 0 {
				return withExitCode(ExitUsageError, fmt.Errorf("no suite files found"))
			}

			cfg := &config.Config{NoColor: config.BoolPtr(noColor)}
			stdout := output.NewConsoleFormatter(output.WithWriter(cmd.OutOrStdout()), output.WithNoColor(cfg.GetNoColor()))
			stderr := newConsole(cmd, cfg)

			hasErrors := false
			for _, file := range files {
				if err := validateFile(cmd, file); err != nil {
					stderr.FormatError(fmt.Errorf("%s: %w", file, err))
					hasErrors = true
					continue
				}
				stdout.FormatValid(file)
			}

			if hasErrors {
				return withExitCode(ExitParseError, nil)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", getEnvBool("TESTANYTHING_NO_COLOR", false), "Disable colored output (env: TESTANYTHING_NO_COLOR)")

	return cmd
}

func validateFile(cmd *cobra.Command, path string) error {
	format, err := source.DetectFormat(path)
	if err != nil {
		return err
	}

	if format != source.FormatSQLite {
		if err := source.ValidateFile(path); err != nil {
			return err
		}
		_, err := source.LoadFile(cmd.Context(), path)
		return err
	}

	suites, err := source.ListSQLiteSuites(cmd.Context(), path)
	if err != nil {
		return err
	}
	for _, name := range suites {
		if _, err := source.LoadSQLite(cmd.Context(), path, name); err != nil {
			return fmt.Errorf("suite %q: %w", name, err)
		}
	}
	return nil
}
