package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// SourceSet resolves a diagnostic's Position back to the line it points at,
// so Format can render Rust-like context snippets. The lowering pass itself
// never reads source text; only the CLI/LSP front ends that print Diagnostic
// values need this, mirroring how ErrorReporter is handed (filename, source)
// separately from the errors it formats.
type SourceSet map[string][]string

// NewSourceSet splits each file's contents into lines for lookup by Format.
func NewSourceSet(files map[string]string) SourceSet {
	s := make(SourceSet, len(files))
	for name, src := range files {
		s[name] = strings.Split(src, "\n")
	}
	return s
}

func (s SourceSet) line(pos Position) (string, bool) {
	lines, ok := s[pos.Filename]
	if !ok || pos.Line <= 0 || pos.Line > len(lines) {
		return "", false
	}
	return lines[pos.Line-1], true
}

// Format renders a diagnostic Rust-compiler style: a colored header line,
// a `--> file:line:col` location, the offending source line with a `^^^`
// marker underneath, then one indented line per secondary label.
func Format(d Diagnostic, src SourceSet) string {
	var out strings.Builder

	levelColor := levelColorFunc(d.Level)
	dim := color.New(color.Faint).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	primary := d.Primary()
	out.WriteString(fmt.Sprintf("%s: %s\n", levelColor(string(d.Level)), primary.Message))

	width := lineNumberWidth(primary.Pos.Line)
	indent := strings.Repeat(" ", width)
	out.WriteString(fmt.Sprintf("%s%s %s\n", indent, dim("-->"), primary.Pos.String()))
	out.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

	if line, ok := src.line(primary.Pos); ok {
		out.WriteString(fmt.Sprintf("%s %s %s\n",
			bold(fmt.Sprintf("%*d", width, primary.Pos.Line)), dim("│"), line))
		out.WriteString(fmt.Sprintf("%s %s %s\n", indent, dim("│"), marker(primary.Pos.Column, d.Level)))
	}

	for _, label := range d.Labels[1:] {
		out.WriteString(fmt.Sprintf("%s %s %s %s\n", indent, dim("│"), dim("note:"), label.Message))
		if line, ok := src.line(label.Pos); ok {
			out.WriteString(fmt.Sprintf("%s %s   %s %s\n", indent, dim("│"), dim(label.Pos.String()), line))
		}
	}

	out.WriteString("\n")
	return out.String()
}

// FormatAll renders every diagnostic in e in emission order.
func FormatAll(e *Env, src SourceSet) string {
	var out strings.Builder
	for _, d := range e.Diagnostics() {
		out.WriteString(Format(d, src))
	}
	return out.String()
}

func levelColorFunc(l Level) func(...interface{}) string {
	switch l {
	case LevelError:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case LevelWarning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case LevelNote:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

func marker(column int, level Level) string {
	spaces := strings.Repeat(" ", maxInt(0, column-1))
	markerColor := levelColorFunc(level)
	return spaces + markerColor("^^^")
}

func lineNumberWidth(line int) int {
	width := len(fmt.Sprintf("%d", line))
	if width < 3 {
		width = 3
	}
	return width
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
