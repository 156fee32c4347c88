package tap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusSymbol(t *testing.T) {
	assert.Equal(t, "ok", StatusSymbol(true))
	assert.Equal(t, "not ok", StatusSymbol(false))
}

func TestStatusLine(t *testing.T) {
	tests := []struct {
		name     string
		result   Result
		ordinal  int
		expected string
	}{
		{"passing", Pass("Panda", "Doing fine"), 42, "ok 42 Panda"},
		{"failing", Fail("Panda", "Doing fine"), 42, "not ok 42 Panda"},
		{"empty name", Pass(""), 1, "ok 1 "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusLine(tt.result, tt.ordinal))
		})
	}
}

func TestDiagnosticLine(t *testing.T) {
	assert.Equal(t, "# Doing fine", DiagnosticLine("Doing fine"))
	assert.Equal(t, "# ", DiagnosticLine(""))

	// no escaping is applied
	assert.Equal(t, "# a # b\nc", DiagnosticLine("a # b\nc"))
}

func TestPlanAndBailOutLines(t *testing.T) {
	assert.Equal(t, "1..6", PlanLine(1, 6))
	assert.Equal(t, "1..0", PlanLine(1, 0))
	assert.Equal(t, "Bail out! core breach", BailOutLine("core breach"))
	assert.Equal(t, "Bail out! ", BailOutLine(""))
}

func TestRenderResult(t *testing.T) {
	t.Run("keeps diagnostic order", func(t *testing.T) {
		r := Fail("Curry Noodle", "Tree", "Flower", "Tree")
		assert.Equal(t, []string{"not ok 7 Curry Noodle", "# Tree", "# Flower", "# Tree"}, RenderResult(r, 7))
	})

	t.Run("no diagnostics", func(t *testing.T) {
		assert.Equal(t, []string{"ok 1 Panda"}, RenderResult(Pass("Panda"), 1))
	})
}
