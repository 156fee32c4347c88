package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abdul-hamid-achik/testanything/packages/tap"
)

// Format identifies the encoding of a suite document
type Format string

const (
	FormatYAML   Format = "yaml"
	FormatJSON   Format = "json"
	FormatSQLite Format = "sqlite"
)

// Options controls how a file is loaded
type Options struct {
	// Query is a gjson path selecting the suite inside a JSON document
	Query string
	// Suite selects the suite name in a SQLite database
	Suite string
	// Validate checks YAML and JSON documents against the schema first
	Validate bool
}

type LoadOption func(*Options)

func WithQuery(q string) LoadOption {
	return func(o *Options) {
		o.Query = q
	}
}

func WithSuite(name string) LoadOption {
	return func(o *Options) {
		o.Suite = name
	}
}

func WithValidation(v bool) LoadOption {
	return func(o *Options) {
		o.Validate = v
	}
}

// DetectFormat returns the format implied by a file extension
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("unsupported suite file %s: expected .yaml, .yml, .json, .db, .sqlite or .sqlite3", path)
	}
}

// IsSuiteFile reports whether path has a supported extension
func IsSuiteFile(path string) bool {
	_, err := DetectFormat(path)
	return err == nil
}

// LoadFile reads a suite from path, choosing the decoder by extension
func LoadFile(ctx context.Context, path string, opts ...LoadOption) (tap.Suite, error) {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}

	format, err := DetectFormat(path)
	if err != nil {
		return tap.Suite{}, err
	}

	if format == FormatSQLite {
		return LoadSQLite(ctx, path, o.Suite)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return tap.Suite{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if format == FormatJSON && o.Query != "" {
		data, err = selectJSON(data, o.Query)
		if err != nil {
			return tap.Suite{}, fmt.Errorf("%s: %w", path, err)
		}
	}

	if o.Validate {
		if err := Validate(data, format); err != nil {
			return tap.Suite{}, fmt.Errorf("%s: %w", path, err)
		}
	}

	var suite tap.Suite
	switch format {
	case FormatYAML:
		suite, err = ParseYAML(data)
	case FormatJSON:
		suite, err = ParseJSON(data, "")
	}
	if err != nil {
		return tap.Suite{}, fmt.Errorf("%s: %w", path, err)
	}
	return suite, nil
}

// buildResult turns one decoded test entry into a tap.Result. index is 0-based.
func buildResult(index int, name string, passed *bool, diagnostics []string) (tap.Result, error) {
	r, err := tap.NewResult(tap.ResultOptions{
		Name:        name,
		Passed:      passed,
		Diagnostics: diagnostics,
	})
	if err != nil {
		return tap.Result{}, fmt.Errorf("test %d (%q): %w", index+1, name, err)
	}
	return r, nil
}
