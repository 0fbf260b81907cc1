package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"movehlir/internal/diag"
)

func TestWarningFilterSuppressesCategory(t *testing.T) {
	env := diag.NewEnv()
	env.PushWarningFilterScope(diag.NewWarningFilter(diag.UnusedItemDeadCode))

	env.AddDiag(diag.UnusedItemDeadCode, diag.Label{Pos: diag.Position{Filename: "f", Line: 1, Column: 1}, Message: "dead"})
	assert.Empty(t, env.Diagnostics())

	env.PopWarningFilterScope()
	env.AddDiag(diag.UnusedItemDeadCode, diag.Label{Pos: diag.Position{Filename: "f", Line: 1, Column: 1}, Message: "dead"})
	assert.Len(t, env.Diagnostics(), 1)
	assert.False(t, env.HasErrors())
}

func TestAddErrorCountsAsHardError(t *testing.T) {
	env := diag.NewEnv()
	env.AddError("boom", diag.Position{Filename: "f", Line: 2, Column: 3})
	assert.True(t, env.HasErrors())
	assert.Equal(t, diag.LevelError, env.Diagnostics()[0].Level)
}

func TestFormatIncludesSourceLine(t *testing.T) {
	env := diag.NewEnv()
	env.AddDiag(diag.UnusedItemStructField, diag.Label{
		Pos:     diag.Position{Filename: "f.hlir", Line: 2, Column: 5},
		Message: "Unused field 'b' of struct 'Foo'",
	})

	src := diag.NewSourceSet(map[string]string{"f.hlir": "line one\n  has a field\nline three"})
	out := diag.FormatAll(env, src)
	assert.Contains(t, out, "Unused field 'b' of struct 'Foo'")
	assert.Contains(t, out, "has a field")
	assert.Contains(t, out, "f.hlir:2:5")
}
