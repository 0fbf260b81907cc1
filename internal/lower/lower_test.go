package lower_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movehlir/internal/diag"
	"movehlir/internal/fixture"
	"movehlir/internal/hast"
	"movehlir/internal/lower"
)

func lowerSource(t *testing.T, src string) (hast.Program, *diag.Env) {
	t.Helper()
	prog, err := fixture.Parse("test.hlir", src)
	require.NoError(t, err)
	env := diag.NewEnv()
	out := lower.Program(env, prog)
	return out, env
}

func TestProgramLowersBinopToReturn(t *testing.T) {
	src := `
module source addr::math {
  fun add(a: u64, b: u64): u64 {
    (binop + u64 (move a#0#0) :: u64 (move b#1#0) :: u64)
  }
}
`
	out, env := lowerSource(t, src)
	assert.False(t, env.HasErrors())

	printed := hast.Print(&out)
	assert.Contains(t, printed, "fun add(a#0#0: u64, b#1#0: u64): u64")
	assert.Contains(t, printed, "return (move a#0#0 + move b#1#0)")
}

func TestUnusedStructFieldIsFlagged(t *testing.T) {
	src := `
module source addr::s {
  struct Foo { a: u64, b: u64 }
  fun get_a(x: &addr::s::Foo): &u64 {
    (borrow (copy x#0#0) :: &addr::s::Foo . a) :: &u64
  }
}
`
	_, env := lowerSource(t, src)

	var found bool
	for _, d := range env.Diagnostics() {
		if d.Category == diag.UnusedItemStructField {
			assert.Contains(t, d.Primary().Message, "'b'")
			found = true
		}
	}
	assert.True(t, found, "expected an unused-field diagnostic for 'b'")
}

func TestIfElseInsertsFreezeOnMutRefBranch(t *testing.T) {
	src := `
module source addr::s2 {
  struct Foo { a: u64 }
  fun pick(cond: bool, x: &mut addr::s2::Foo): &addr::s2::Foo {
    (if (move cond#0#0) :: bool
      (borrow_tmp mut (move x#1#0) :: &mut addr::s2::Foo) :: &mut addr::s2::Foo
      (borrow_tmp (move x#1#0) :: &mut addr::s2::Foo) :: &addr::s2::Foo) :: &addr::s2::Foo
  }
}
`
	out, env := lowerSource(t, src)
	assert.False(t, env.HasErrors())

	printed := hast.Print(&out)
	assert.Contains(t, printed, "fun pick(")
	assert.Contains(t, printed, "freeze(")
}
