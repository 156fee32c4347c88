package source

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var suiteSchema []byte

// Schema returns the JSON schema suite documents are validated against
func Schema() []byte {
	return suiteSchema
}

// ValidationError lists every schema violation found in a document
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "schema validation failed: " + strings.Join(e.Problems, "; ")
}

// Validate checks a YAML or JSON document against the suite schema
func Validate(data []byte, format Format) error {
	var documentLoader gojsonschema.JSONLoader
	switch format {
	case FormatJSON:
		documentLoader = gojsonschema.NewBytesLoader(data)
	case FormatYAML:
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("invalid YAML: %w", err)
		}
		if doc == nil {
			doc = map[string]any{}
		}
		documentLoader = gojsonschema.NewGoLoader(doc)
	default:
		return fmt.Errorf("schema validation does not apply to %s sources", format)
	}

	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(suiteSchema), documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return &ValidationError{Problems: problems}
}

// ValidateFile validates the document at path. SQLite sources are
// checked by loading them, since they carry no document to validate.
func ValidateFile(path string) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}
	if format == FormatSQLite {
		return fmt.Errorf("schema validation does not apply to %s sources", format)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Validate(data, format)
}
