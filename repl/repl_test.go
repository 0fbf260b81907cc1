package repl_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"movehlir/repl"
)

func TestStartLowersOneBlockAndPrintsResult(t *testing.T) {
	in := strings.NewReader(`module source addr::m {
  fun id(a: u64): u64 {
    (move a#0#0) :: u64
  }
}

`)
	var out bytes.Buffer

	repl.Start(in, &out)

	got := out.String()
	assert.Contains(t, got, repl.PROMPT)
	assert.Contains(t, got, "fun id(a#0#0: u64): u64")
}

func TestStartReportsParseErrors(t *testing.T) {
	in := strings.NewReader("module source addr::broken {\n\n")
	var out bytes.Buffer

	repl.Start(in, &out)

	assert.Contains(t, out.String(), "syntax error")
}
