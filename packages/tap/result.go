package tap

import "slices"

// Result is the outcome of a single test. It is immutable once built.
type Result struct {
	name        string
	passed      bool
	diagnostics []string
}

// ResultOptions configures a Result. Passed must be set; Name and
// Diagnostics are optional.
type ResultOptions struct {
	Name        string
	Passed      *bool
	Diagnostics []string
}

// NewResult builds a Result from opts. It returns ErrMissingStatus when
// opts.Passed is nil.
func NewResult(opts ResultOptions) (Result, error) {
	if opts.Passed == nil {
		return Result{}, ErrMissingStatus
	}
	return Result{
		name:        opts.Name,
		passed:      *opts.Passed,
		diagnostics: slices.Clone(opts.Diagnostics),
	}, nil
}

// MustResult is like NewResult but panics when opts.Passed is nil.
func MustResult(opts ResultOptions) Result {
	r, err := NewResult(opts)
	if err != nil {
		panic(err)
	}
	return r
}

// Pass builds a passing Result.
func Pass(name string, diagnostics ...string) Result {
	return MustResult(ResultOptions{Name: name, Passed: Bool(true), Diagnostics: diagnostics})
}

// Fail builds a failing Result.
func Fail(name string, diagnostics ...string) Result {
	return MustResult(ResultOptions{Name: name, Passed: Bool(false), Diagnostics: diagnostics})
}

// Bool returns a pointer to b, for use in ResultOptions.
func Bool(b bool) *bool {
	return &b
}

func (r Result) Name() string { return r.name }

func (r Result) Passed() bool { return r.passed }

// Diagnostics returns a copy of the result's diagnostic lines.
func (r Result) Diagnostics() []string {
	return slices.Clone(r.diagnostics)
}

// Equal reports whether r and other have the same name, status and diagnostics.
func (r Result) Equal(other Result) bool {
	return r.name == other.name &&
		r.passed == other.passed &&
		slices.Equal(r.diagnostics, other.diagnostics)
}
