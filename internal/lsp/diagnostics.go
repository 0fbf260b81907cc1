package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"movehlir/internal/diag"
)

// convertDiagnostics translates lowering diagnostics into the LSP wire
// format. Positions convert from the pass's 1-based line/column to LSP's
// 0-based Range; a label with no meaningful span gets a small fixed-width
// range so it is still visible in an editor gutter.
func convertDiagnostics(diags []diag.Diagnostic) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(diags))
	for _, d := range diags {
		primary := d.Primary()
		out = append(out, protocol.Diagnostic{
			Range:    rangeFor(primary.Pos),
			Severity: ptrSeverity(severityOf(d.Level)),
			Source:   ptrString("movehlir"),
			Message:  primary.Message,
		})
	}
	return out
}

func rangeFor(pos diag.Position) protocol.Range {
	line := uint32(0)
	if pos.Line > 0 {
		line = uint32(pos.Line - 1)
	}
	col := uint32(0)
	if pos.Column > 0 {
		col = uint32(pos.Column - 1)
	}
	return protocol.Range{
		Start: protocol.Position{Line: line, Character: col},
		End:   protocol.Position{Line: line, Character: col + 1},
	}
}

func severityOf(l diag.Level) protocol.DiagnosticSeverity {
	switch l {
	case diag.LevelError:
		return protocol.DiagnosticSeverityError
	case diag.LevelWarning:
		return protocol.DiagnosticSeverityWarning
	case diag.LevelNote:
		return protocol.DiagnosticSeverityInformation
	default:
		return protocol.DiagnosticSeverityError
	}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity { return &s }
func ptrString(s string) *string                                           { return &s }
