package fixture

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"

	"movehlir/internal/tast"
)

// parser is built once at init time; grammar and lexer are both fixed. The
// lookahead is large because a `let [...]` item is first tried as a bare
// declaration, which consumes the whole lvalue list before it can fail.
var parser = participle.MustBuild[gProgram](
	participle.Lexer(FixtureLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(1024),
)

// Parse reads one fixture source file and builds the tast.Program it
// describes. filename is only used for diagnostic positions.
func Parse(filename, source string) (tast.Program, error) {
	gp, err := parser.ParseString(filename, source)
	if err != nil {
		return tast.Program{}, err
	}
	return build(gp)
}

// FormatParseError renders a participle parse error as a caret-style
// message pointing at the offending source line, the same presentation the
// teacher's CLI uses for Move surface-syntax errors.
func FormatParseError(source string, err error) string {
	pe, ok := err.(participle.Error)
	if !ok {
		return fmt.Sprintf("unexpected error: %s", err)
	}

	pos := pe.Position()
	lines := strings.Split(source, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		return fmt.Sprintf("syntax error at unknown location: %s", err)
	}

	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", max(pos.Column-1, 0)) + "^"

	var sb strings.Builder
	fmt.Fprintf(&sb, "syntax error in %s at line %d, column %d:\n", pos.Filename, pos.Line, pos.Column)
	sb.WriteString(line)
	sb.WriteString("\n")
	sb.WriteString(caret)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "→ %s\n", pe.Message())
	return sb.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
