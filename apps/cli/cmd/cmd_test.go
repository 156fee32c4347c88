package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abdul-hamid-achik/testanything/packages/source"
	"github.com/abdul-hamid-achik/testanything/packages/tap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleDoc = `name: Example
tests:
  - name: Panda Bamboo
    passed: true
  - name: Curry Noodle
    passed: false
    diagnostics: [Tree, Flower]
`

const exampleTAP = "1..2\nok 1 Panda Bamboo\nnot ok 2 Curry Noodle\n# Tree\n# Flower\n"

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// emptyConfig keeps tests independent of any config file in the working directory
func emptyConfig(t *testing.T) string {
	return writeFile(t, t.TempDir(), "config.json", "{}")
}

func TestRender(t *testing.T) {
	path := writeFile(t, t.TempDir(), "suite.yaml", exampleDoc)

	stdout, _, err := execute(t, "render", path, "--config", emptyConfig(t))
	assert.Equal(t, exampleTAP, stdout)
	assert.Equal(t, ExitTestFailure, exitCode(err))
}

func TestRender_AllPassing(t *testing.T) {
	path := writeFile(t, t.TempDir(), "suite.json", `{"tests": [{"name": "Panda", "passed": true}]}`)

	stdout, _, err := execute(t, "render", path, "--config", emptyConfig(t))
	require.NoError(t, err)
	assert.Equal(t, "1..1\nok 1 Panda\n", stdout)
}

func TestRender_EmptySuite(t *testing.T) {
	path := writeFile(t, t.TempDir(), "suite.yaml", "name: nothing\n")

	stdout, _, err := execute(t, "render", path, "--config", emptyConfig(t))
	require.NoError(t, err)
	assert.Equal(t, "1..0\n", stdout)
}

func TestRender_Summary(t *testing.T) {
	path := writeFile(t, t.TempDir(), "suite.yaml", exampleDoc)

	stdout, stderr, err := execute(t, "render", path, "--config", emptyConfig(t), "--summary", "--no-color", "-v")
	assert.Equal(t, ExitTestFailure, exitCode(err))
	assert.Equal(t, exampleTAP, stdout)
	assert.Contains(t, stderr, "✗ 2 Curry Noodle")
	assert.Contains(t, stderr, "Tests: 1 passed, 1 failed, 2 total")
}

func TestRender_OutputFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "suite.yaml", exampleDoc)
	outFile := filepath.Join(dir, "out.tap")

	stdout, _, err := execute(t, "render", path, "--config", emptyConfig(t), "--output-file", outFile)
	assert.Equal(t, ExitTestFailure, exitCode(err))
	assert.Empty(t, stdout)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Equal(t, exampleTAP, string(data))
}

func TestRender_JSONQuery(t *testing.T) {
	path := writeFile(t, t.TempDir(), "report.json",
		`{"runs": [{"suite": {"name": "x", "tests": [{"name": "a", "passed": true, "diagnostics": ["fine"]}]}}]}`)

	stdout, _, err := execute(t, "render", path, "--config", emptyConfig(t), "--query", "runs.0.suite")
	require.NoError(t, err)
	assert.Equal(t, "1..1\nok 1 a\n# fine\n", stdout)
}

func TestRender_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")
	require.NoError(t, source.SaveSQLite(context.Background(), path, exampleSuite()))

	stdout, _, err := execute(t, "render", path, "--config", emptyConfig(t), "--suite", "Example")
	assert.Equal(t, ExitTestFailure, exitCode(err))
	assert.Equal(t, exampleTAP, stdout)
}

func TestRender_SQLiteSuiteSelection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.db")
	require.NoError(t, source.SaveSQLite(context.Background(), path, exampleSuite()))

	// the only stored suite is used when --suite is omitted
	stdout, _, err := execute(t, "render", path, "--config", emptyConfig(t))
	assert.Equal(t, ExitTestFailure, exitCode(err))
	assert.Equal(t, exampleTAP, stdout)

	stdout, _, err = execute(t, "render", path, "--config", emptyConfig(t), "--suite", "Nope")
	assert.Equal(t, ExitParseError, exitCode(err))
	assert.ErrorIs(t, err, source.ErrSuiteNotFound)
	assert.Empty(t, stdout)
}

func TestRender_MissingSQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typo.db")

	for _, command := range []string{"render", "stream"} {
		_, _, err := execute(t, command, path, "--config", emptyConfig(t))
		assert.Equal(t, ExitParseError, exitCode(err), command)
	}

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "database file must not be created")
}

func TestRender_InvalidDocument(t *testing.T) {
	path := writeFile(t, t.TempDir(), "suite.yaml", "tests:\n  - name: Panda\n")

	stdout, _, err := execute(t, "render", path, "--config", emptyConfig(t))
	assert.Equal(t, ExitParseError, exitCode(err))
	assert.Empty(t, stdout)

	// without schema validation the missing status is still a construction error
	_, _, err = execute(t, "render", path, "--config", emptyConfig(t), "--no-validate")
	assert.ErrorIs(t, err, tap.ErrMissingStatus)
	assert.Equal(t, ExitParseError, exitCode(err))
}

func TestRender_BadConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "suite.yaml", exampleDoc)
	cfg := writeFile(t, dir, "config.json", "{not json")

	_, _, err := execute(t, "render", path, "--config", cfg)
	assert.Equal(t, ExitConfigError, exitCode(err))
}

func TestRender_ConfigFileSettings(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "report.json", `{"inner": {"tests": [{"name": "a", "passed": true}]}}`)
	cfg := writeFile(t, dir, "config.json", `{"query": "inner", "summary": true, "noColor": true}`)

	stdout, stderr, err := execute(t, "render", path, "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "1..1\nok 1 a\n", stdout)
	assert.Contains(t, stderr, "Tests: 1 passed, 1 total")
}

func TestStream(t *testing.T) {
	path := writeFile(t, t.TempDir(), "suite.yaml", exampleDoc)

	stdout, _, err := execute(t, "stream", path, "--config", emptyConfig(t))
	assert.Equal(t, ExitTestFailure, exitCode(err))
	assert.Equal(t, exampleTAP, stdout)
}

func TestStream_BailAndAnnounce(t *testing.T) {
	path := writeFile(t, t.TempDir(), "suite.yaml", exampleDoc+"  - name: Never\n    passed: true\n")

	stdout, stderr, err := execute(t, "stream", path, "--config", emptyConfig(t), "--bail", "--announce", "--no-color")
	assert.Equal(t, ExitTestFailure, exitCode(err))

	expected := []string{
		"1..3",
		"# ",
		"# Example",
		"# ",
		"ok 1 Panda Bamboo",
		"not ok 2 Curry Noodle",
		"# Tree",
		"# Flower",
		"Bail out! Curry Noodle",
	}
	assert.Equal(t, strings.Join(expected, "\n")+"\n", stdout)
	assert.Contains(t, stderr, "Bailed out after 2 of 3 tests")
}

func TestStream_NegativeRate(t *testing.T) {
	path := writeFile(t, t.TempDir(), "suite.yaml", exampleDoc)

	stdout, _, err := execute(t, "stream", path, "--config", emptyConfig(t), "--rate", "-1")
	assert.Equal(t, ExitUsageError, exitCode(err))
	assert.Empty(t, stdout)

	t.Setenv("TESTANYTHING_RATE", "-2")
	stdout, _, err = execute(t, "stream", path, "--config", emptyConfig(t))
	assert.Equal(t, ExitUsageError, exitCode(err))
	assert.Empty(t, stdout)
}

func TestStream_NegativeRateInConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "suite.yaml", exampleDoc)
	cfg := writeFile(t, dir, "config.json", `{"rate": -3}`)

	stdout, _, err := execute(t, "stream", path, "--config", cfg)
	assert.Equal(t, ExitConfigError, exitCode(err))
	assert.Empty(t, stdout)
}

func TestStreamFlags_ZeroRateOverridesConfig(t *testing.T) {
	cfgPath := writeFile(t, t.TempDir(), "config.json", `{"rate": 1000}`)

	unset := streamFlags{}
	cfg, err := loadConfig(cfgPath, unset.overrides())
	require.NoError(t, err)
	assert.Equal(t, 1000.0, cfg.GetRate())

	explicit := streamFlags{rate: 0, rateSet: true}
	cfg, err = loadConfig(cfgPath, explicit.overrides())
	require.NoError(t, err)
	assert.Zero(t, cfg.GetRate())
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.yaml", exampleDoc)

	stdout, _, err := execute(t, "validate", good, "--no-color")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Valid: "+good)

	writeFile(t, dir, "bad.json", `{"tests": [{"name": "a"}]}`)
	writeFile(t, dir, "notes.txt", "ignored")

	stdout, stderr, err := execute(t, "validate", dir, "--no-color")
	assert.Equal(t, ExitParseError, exitCode(err))
	assert.Contains(t, stdout, "Valid: "+good)
	assert.Contains(t, stderr, "bad.json")
	assert.NotContains(t, stdout+stderr, "notes.txt")
}

func TestValidate_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")
	require.NoError(t, source.SaveSQLite(context.Background(), path, exampleSuite()))

	stdout, _, err := execute(t, "validate", path, "--no-color")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Valid: "+path)
}

func TestValidate_NoFiles(t *testing.T) {
	_, _, err := execute(t, "validate", t.TempDir())
	assert.Equal(t, ExitUsageError, exitCode(err))
}

func TestList(t *testing.T) {
	path := writeFile(t, t.TempDir(), "suite.yaml", exampleDoc)

	stdout, _, err := execute(t, "list", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "(Example):")
	assert.Contains(t, stdout, "  1. Panda Bamboo [ok]\n")
	assert.Contains(t, stdout, "  2. Curry Noodle [not ok]\n")
}

func TestList_ReportsUnreadableFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.yaml", exampleDoc)
	bad := writeFile(t, dir, "bad.json", "{")

	stdout, stderr, err := execute(t, "list", good, bad, "--no-color")
	require.NoError(t, err)
	assert.Contains(t, stdout, "  1. Panda Bamboo [ok]\n")
	assert.Contains(t, stderr, "warning: skipping "+bad)
}

func TestInit(t *testing.T) {
	dir := t.TempDir()

	stdout, _, err := execute(t, "init", "--dir", dir, "--sqlite")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Created: "+filepath.Join(dir, ".testanything.json"))

	schema, err := os.ReadFile(filepath.Join(dir, "suite.schema.json"))
	require.NoError(t, err)
	assert.Equal(t, source.Schema(), schema)

	rendered, _, err := execute(t, "render", filepath.Join(dir, "example.tap.yaml"), "--config", filepath.Join(dir, ".testanything.json"))
	assert.Equal(t, ExitTestFailure, exitCode(err))
	assert.Equal(t, exampleTAP, rendered)

	rendered, _, err = execute(t, "render", filepath.Join(dir, "example.db"), "--config", emptyConfig(t), "--suite", "Example")
	assert.Equal(t, ExitTestFailure, exitCode(err))
	assert.Equal(t, exampleTAP, rendered)

	_, _, err = execute(t, "init", "--dir", dir)
	assert.Equal(t, ExitUsageError, exitCode(err))

	_, _, err = execute(t, "init", "--dir", dir, "--sqlite", "--force")
	require.NoError(t, err)
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "testanything version dev")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, exitCode(nil))
	assert.Equal(t, ExitTestFailure, exitCode(errors.New("plain")))
	assert.Equal(t, ExitOutputError, exitCode(withExitCode(ExitOutputError, errors.New("disk"))))
	assert.Equal(t, "exit status 1", withExitCode(ExitTestFailure, nil).Error())
}
