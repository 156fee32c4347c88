package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdul-hamid-achik/testanything/packages/core/config"
	"github.com/abdul-hamid-achik/testanything/packages/source"
	"github.com/abdul-hamid-achik/testanything/packages/tap"
	"github.com/spf13/cobra"
)

// exampleSuite is the suite written by init
func exampleSuite() tap.Suite {
	return tap.NewSuite(tap.SuiteOptions{
		Name: "Example",
		Tests: []tap.Result{
			tap.Pass("Panda Bamboo"),
			tap.Fail("Curry Noodle", "Tree", "Flower"),
		},
	})
}

func newInitCmd() *cobra.Command {
	var (
		force  bool
		dir    string
		sqlite bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an example config and suite document",
		Long: `Initialize a testanything project in the current directory.

This creates:
  - .testanything.json  - Configuration file with defaults
  - example.tap.yaml    - Example suite document
  - suite.schema.json   - JSON schema for suite documents
  - example.db          - Example SQLite suite store (with --sqlite)

Examples:
  testanything init
  testanything init --sqlite --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				cwd, err := os.Getwd()
				if err != nil {
					return err
				}
				dir = cwd
			}

			configFile := filepath.Join(dir, config.ConfigFilenames[0])
			exampleFile := filepath.Join(dir, "example.tap.yaml")
			schemaFile := filepath.Join(dir, "suite.schema.json")
			dbFile := filepath.Join(dir, "example.db")

			targets := []string{configFile, exampleFile, schemaFile}
			if sqlite {
				targets = append(targets, dbFile)
			}
			if !force {
				for _, f := range targets {
					if _, err := os.Stat(f); err == nil {
						return withExitCode(ExitUsageError, fmt.Errorf("file already exists: %s (use --force to overwrite)", f))
					}
				}
			}

			if err := config.DefaultConfig().SaveConfig(configFile); err != nil {
				return fmt.Errorf("failed to create config file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)

			exampleYAML, err := source.MarshalYAML(exampleSuite())
			if err != nil {
				return err
			}
			if err := os.WriteFile(exampleFile, exampleYAML, 0644); err != nil {
				return fmt.Errorf("failed to create example file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", exampleFile)

			if err := os.WriteFile(schemaFile, source.Schema(), 0644); err != nil {
				return fmt.Errorf("failed to create schema file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", schemaFile)

			if sqlite {
				if force {
					_ = os.Remove(dbFile)
				}
				if err := source.SaveSQLite(cmd.Context(), dbFile, exampleSuite()); err != nil {
					return fmt.Errorf("failed to create example database: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", dbFile)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\nRun 'testanything render %s' to see the TAP stream.\n", filepath.Base(exampleFile))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing files")
	cmd.Flags().StringVar(&dir, "dir", "", "Directory to initialize (default: current directory)")
	cmd.Flags().BoolVar(&sqlite, "sqlite", false, "Also create an example SQLite suite store")

	return cmd
}
