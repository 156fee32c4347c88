package source

import (
	"errors"
	"fmt"

	"github.com/abdul-hamid-achik/testanything/packages/tap"
	"github.com/tidwall/gjson"
)

var ErrInvalidJSON = errors.New("invalid JSON")

// selectJSON returns the raw JSON found at query
func selectJSON(data []byte, query string) ([]byte, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	result := gjson.GetBytes(data, query)
	if !result.Exists() {
		return nil, fmt.Errorf("query %q matched nothing", query)
	}
	return []byte(result.Raw), nil
}

// ParseJSON decodes a JSON suite document. When query is non-empty it is
// a gjson path selecting the suite object inside a larger document.
func ParseJSON(data []byte, query string) (tap.Suite, error) {
	if !gjson.ValidBytes(data) {
		return tap.Suite{}, ErrInvalidJSON
	}

	doc := gjson.ParseBytes(data)
	if query != "" {
		doc = doc.Get(query)
		if !doc.Exists() {
			return tap.Suite{}, fmt.Errorf("query %q matched nothing", query)
		}
	}
	if !doc.IsObject() {
		return tap.Suite{}, fmt.Errorf("suite document must be an object, got %s", doc.Type)
	}

	entries := doc.Get("tests")
	if entries.Exists() && !entries.IsArray() {
		return tap.Suite{}, fmt.Errorf("tests must be an array")
	}

	var tests []tap.Result
	for i, entry := range entries.Array() {
		name := entry.Get("name").String()
		passed, err := jsonBool(entry.Get("passed"))
		if err != nil {
			return tap.Suite{}, fmt.Errorf("test %d (%q): %w", i+1, name, err)
		}
		diags, err := jsonStrings(entry.Get("diagnostics"))
		if err != nil {
			return tap.Suite{}, fmt.Errorf("test %d (%q): %w", i+1, name, err)
		}
		r, err := buildResult(i, name, passed, diags)
		if err != nil {
			return tap.Suite{}, err
		}
		tests = append(tests, r)
	}

	return tap.NewSuite(tap.SuiteOptions{Name: doc.Get("name").String(), Tests: tests}), nil
}

// jsonBool returns nil when the value is absent or null
func jsonBool(v gjson.Result) (*bool, error) {
	switch v.Type {
	case gjson.True:
		return tap.Bool(true), nil
	case gjson.False:
		return tap.Bool(false), nil
	case gjson.Null:
		return nil, nil
	default:
		return nil, fmt.Errorf("passed must be a boolean, got %s", v.Raw)
	}
}

// jsonStrings decodes an array of strings. Absent or null is nil.
func jsonStrings(v gjson.Result) ([]string, error) {
	if v.Type == gjson.Null {
		return nil, nil
	}
	if !v.IsArray() {
		return nil, fmt.Errorf("diagnostics must be an array of strings, got %s", v.Raw)
	}
	var out []string
	for _, item := range v.Array() {
		if item.Type != gjson.String {
			return nil, fmt.Errorf("diagnostics must be an array of strings, got item %s", item.Raw)
		}
		out = append(out, item.String())
	}
	return out, nil
}
