package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/abdul-hamid-achik/testanything/packages/core/config"
	"github.com/abdul-hamid-achik/testanything/packages/output"
	"github.com/abdul-hamid-achik/testanything/packages/source"
	"github.com/spf13/cobra"
)

// sourceFlags are shared by every command that loads a suite
type sourceFlags struct {
	configPath string
	query      string
	suite      string
	outputFile string
	noValidate bool
	summary    bool
	verbose    bool
	noColor    bool
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", getEnvString("TESTANYTHING_CONFIG", ""), "Path to config file (env: TESTANYTHING_CONFIG)")
	cmd.Flags().StringVarP(&f.query, "query", "q", getEnvString("TESTANYTHING_QUERY", ""), "gjson path selecting the suite inside a JSON document (env: TESTANYTHING_QUERY)")
	cmd.Flags().StringVarP(&f.suite, "suite", "s", getEnvString("TESTANYTHING_SUITE", ""), "Suite name to read from a SQLite database (env: TESTANYTHING_SUITE)")
	cmd.Flags().StringVar(&f.outputFile, "output-file", getEnvString("TESTANYTHING_OUTPUT_FILE", ""), "Write TAP to file (default: stdout) (env: TESTANYTHING_OUTPUT_FILE)")
	cmd.Flags().BoolVar(&f.noValidate, "no-validate", getEnvBool("TESTANYTHING_NO_VALIDATE", false), "Skip schema validation of YAML and JSON documents (env: TESTANYTHING_NO_VALIDATE)")
	cmd.Flags().BoolVar(&f.summary, "summary", getEnvBool("TESTANYTHING_SUMMARY", false), "Print a pass/fail summary to stderr (env: TESTANYTHING_SUMMARY)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "List failing tests in the summary")
	cmd.Flags().BoolVar(&f.noColor, "no-color", getEnvBool("TESTANYTHING_NO_COLOR", false), "Disable colored output (env: TESTANYTHING_NO_COLOR)")
}

// overrides returns the config values set on the command line
func (f *sourceFlags) overrides() *config.Config {
	c := &config.Config{
		OutputFile: f.outputFile,
		Query:      f.query,
		Suite:      f.suite,
	}
	if f.noValidate {
		c.Validate = config.BoolPtr(false)
	}
	if f.summary {
		c.Summary = config.BoolPtr(true)
	}
	if f.verbose {
		c.Verbose = config.BoolPtr(true)
	}
	if f.noColor {
		c.NoColor = config.BoolPtr(true)
	}
	return c
}

func loadConfig(path string, overrides *config.Config) (*config.Config, error) {
	fileConfig, err := config.LoadConfig(path)
	if err != nil {
		return nil, withExitCode(ExitConfigError, fmt.Errorf("failed to load config: %w", err))
	}
	return fileConfig.Merge(overrides), nil
}

func loadOptions(cfg *config.Config) []source.LoadOption {
	return []source.LoadOption{
		source.WithQuery(cfg.Query),
		source.WithSuite(cfg.Suite),
		source.WithValidation(cfg.GetValidate()),
	}
}

func newConsole(cmd *cobra.Command, cfg *config.Config) *output.ConsoleFormatter {
	return output.NewConsoleFormatter(
		output.WithWriter(cmd.ErrOrStderr()),
		output.WithVerbose(cfg.GetVerbose()),
		output.WithNoColor(cfg.GetNoColor()),
	)
}

// openOutput returns the TAP destination and a func that releases it
func openOutput(cmd *cobra.Command, cfg *config.Config) (io.Writer, func(), error) {
	if cfg.OutputFile == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}
	f, err := os.Create(cfg.OutputFile)
	if err != nil {
		return nil, nil, withExitCode(ExitOutputError, fmt.Errorf("cannot create output file: %w", err))
	}
	return f, func() { _ = f.Close() }, nil
}

func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
