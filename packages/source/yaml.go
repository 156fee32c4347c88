package source

import (
	"fmt"

	"github.com/abdul-hamid-achik/testanything/packages/tap"
	"gopkg.in/yaml.v3"
)

type yamlDocument struct {
	Name  string     `yaml:"name"`
	Tests []yamlTest `yaml:"tests"`
}

type yamlTest struct {
	Name        string   `yaml:"name"`
	Passed      *bool    `yaml:"passed"`
	Diagnostics []string `yaml:"diagnostics,omitempty"`
}

// ParseYAML decodes a YAML suite document
func ParseYAML(data []byte) (tap.Suite, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return tap.Suite{}, fmt.Errorf("invalid YAML: %w", err)
	}

	tests := make([]tap.Result, 0, len(doc.Tests))
	for i, t := range doc.Tests {
		r, err := buildResult(i, t.Name, t.Passed, t.Diagnostics)
		if err != nil {
			return tap.Suite{}, err
		}
		tests = append(tests, r)
	}

	return tap.NewSuite(tap.SuiteOptions{Name: doc.Name, Tests: tests}), nil
}

// MarshalYAML encodes a suite as a YAML document
func MarshalYAML(s tap.Suite) ([]byte, error) {
	doc := yamlDocument{Name: s.Name()}
	for _, r := range s.Tests() {
		doc.Tests = append(doc.Tests, yamlTest{
			Name:        r.Name(),
			Passed:      tap.Bool(r.Passed()),
			Diagnostics: r.Diagnostics(),
		})
	}
	return yaml.Marshal(doc)
}
