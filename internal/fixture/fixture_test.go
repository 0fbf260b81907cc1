package fixture_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movehlir/internal/fixture"
	"movehlir/internal/tast"
)

const addModule = `
module source addr::math {
  fun add(a: u64, b: u64): u64 {
    (binop + u64 (move a#0#0) (move b#1#0))
  }
}
`

func TestParseModuleShape(t *testing.T) {
	prog, err := fixture.Parse("add.hlir", addModule)
	require.NoError(t, err)
	require.Len(t, prog.Modules, 1)

	m := prog.Modules[0]
	assert.Equal(t, "addr", m.Ident.Address)
	assert.Equal(t, "math", string(m.Ident.Name))
	assert.True(t, m.IsSourceModule)
	require.Len(t, m.Functions, 1)

	f := m.Functions[0]
	assert.Equal(t, "add", string(f.Name))
	assert.IsType(t, tast.VisInternal{}, f.Visibility)
	require.Len(t, f.Signature.Params, 2)
	assert.Equal(t, "a", f.Signature.Params[0].V.Name)
	assert.Equal(t, 0, f.Signature.Params[0].V.ID)
	assert.Equal(t, "b", f.Signature.Params[1].V.Name)
	assert.Equal(t, 1, f.Signature.Params[1].V.ID)

	body, ok := f.Body.(tast.FBDefined)
	require.True(t, ok)
	require.Len(t, body.Seq, 1)

	tail, ok := body.Seq[0].(tast.SeqExp)
	require.True(t, ok)
	binop, ok := tail.E.Un.(tast.EBinopExp)
	require.True(t, ok)
	assert.Equal(t, tast.OpAdd, binop.Op)

	lhs, ok := binop.LHS.Un.(tast.EMove)
	require.True(t, ok)
	assert.Equal(t, "a", lhs.V.Name)
}

func TestParseLiteralWidths(t *testing.T) {
	src := `
module source addr::lits {
  fun lits(): u64 {
    let [x#0#0: u64]: u64 = 1u64;
    (move x#0#0)
  }
}
`
	prog, err := fixture.Parse("lits.hlir", src)
	require.NoError(t, err)
	body := prog.Modules[0].Functions[0].Body.(tast.FBDefined)
	bind, ok := body.Seq[0].(tast.SeqBind)
	require.True(t, ok)
	val := bind.E.Un.(tast.EValue)
	assert.Equal(t, tast.VU64{V: 1}, val.V)
}

func TestParseErrorReportsLocation(t *testing.T) {
	_, err := fixture.Parse("bad.hlir", "module source addr::broken {")
	require.Error(t, err)
	msg := fixture.FormatParseError("module source addr::broken {", err)
	assert.Contains(t, msg, "bad.hlir")
}
