package cmd

import (
	"fmt"

	"github.com/abdul-hamid-achik/testanything/packages/output"
	"github.com/abdul-hamid-achik/testanything/packages/source"
	"github.com/abdul-hamid-achik/testanything/packages/tap"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var (
		query   string
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "list <file|directory>...",
		Short: "List the tests in suite documents",
		Long: `List the tests defined in suite documents with their TAP numbers.
For SQLite databases, every stored suite is listed.

Examples:
  testanything list results.yaml
  testanything list ./reports/`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := collectFiles(args)
			if err != nil {
				return withExitCode(ExitUsageError, err)
			}
			if len(files) == 0 {
				return withExitCode(ExitUsageError, fmt.Errorf("no suite files found"))
			}

			console := output.NewConsoleFormatter(output.WithWriter(cmd.ErrOrStderr()), output.WithNoColor(noColor))
			for _, file := range files {
				if err := listFile(cmd, file, query); err != nil {
					console.FormatWarning("skipping %s: %v", file, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", getEnvString("TESTANYTHING_QUERY", ""), "gjson path selecting the suite inside a JSON document (env: TESTANYTHING_QUERY)")

	cmd.Flags().BoolVar(&noColor, "no-color", getEnvBool("TESTANYTHING_NO_COLOR", false), "Disable colored output (env: TESTANYTHING_NO_COLOR)")

	return cmd
}

func listFile(cmd *cobra.Command, path, query string) error {
	format, err := source.DetectFormat(path)
	if err != nil {
		return err
	}

	if format != source.FormatSQLite {
		suite, err := source.LoadFile(cmd.Context(), path, source.WithQuery(query))
		if err != nil {
			return err
		}
		printSuite(cmd, path, suite)
		return nil
	}

	names, err := source.ListSQLiteSuites(cmd.Context(), path)
	if err != nil {
		return err
	}
	for _, name := range names {
		suite, err := source.LoadSQLite(cmd.Context(), path, name)
		if err != nil {
			return fmt.Errorf("suite %q: %w", name, err)
		}
		printSuite(cmd, path, suite)
	}
	return nil
}

func printSuite(cmd *cobra.Command, path string, suite tap.Suite) {
	header := path
	if suite.Name() != "" {
		header = fmt.Sprintf("%s (%s)", path, suite.Name())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%s:\n", header)
	for i, r := range suite.Tests() {
		fmt.Fprintf(cmd.OutOrStdout(), "  %d. %s [%s]\n", i+1, r.Name(), tap.StatusSymbol(r.Passed()))
	}
}
