package lower

import "movehlir/internal/hast"

// divergent is a structural predicate over a single statement: does this
// statement guarantee control never falls through to whatever follows it?
//
// The While case is deliberately conservative: a while loop is only
// considered divergent if its body's last statement is an Abort or Return
// — not a Break or Continue, and not "the loop's condition is a constant
// true with no way out." A `while (true) { foo(); }` with no abort/return
// tail is therefore NOT treated as divergent here, even though it
// trivially never terminates. This mirrors an explicitly flagged
// "wholly unsatisfactory" choice in the pass this was distilled from, and
// is preserved on purpose rather than fixed, to stay compatible with
// downstream diagnostics tuned against it.
func divergent(s hast.Statement) bool {
	switch st := s.(type) {
	case hast.SCommand:
		switch st.C.(type) {
		case hast.CAbort, hast.CReturn, hast.CBreak, hast.CContinue:
			return true
		default:
			return false
		}
	case hast.SIfElse:
		return lastDivergent(st.IfBlock) && lastDivergent(st.ElseBlock)
	case hast.SWhile:
		last, ok := lastStatement(st.Body)
		if !ok {
			return false
		}
		cmd, ok := last.(hast.SCommand)
		if !ok {
			return false
		}
		switch cmd.C.(type) {
		case hast.CAbort, hast.CReturn:
			return true
		default:
			return false
		}
	case hast.SLoop:
		return !st.HasBreak
	default:
		return false
	}
}

func lastStatement(b hast.Block) (hast.Statement, bool) {
	if len(b) == 0 {
		return nil, false
	}
	return b[len(b)-1], true
}

// lastDivergent reports whether b's last statement diverges; an empty
// block never diverges.
func lastDivergent(b hast.Block) bool {
	last, ok := lastStatement(b)
	return ok && divergent(last)
}
