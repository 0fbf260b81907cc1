package lower

import (
	"movehlir/internal/diag"
	"movehlir/internal/hast"
	"movehlir/internal/tast"
)

func boolType() hast.Type {
	return hast.TSingle{Ty: hast.STBase{Base: hast.TyBool{}}}
}

func boolExp(v bool) *hast.Exp {
	return &hast.Exp{Ty: hast.TSingle{Ty: hast.STBase{Base: hast.TyBool{}}}, Un: hast.EValue{V: tast.VBool{V: v}}}
}

func unitExp(c hast.UnitCase) *hast.Exp {
	return &hast.Exp{Ty: hast.TUnit{}, Un: hast.EUnit{Case: c}}
}

func implicitUnitExp() *hast.Exp { return unitExp(hast.UnitImplicit) }
func trailingUnitExp() *hast.Exp { return unitExp(hast.UnitTrailing) }

func command(c hast.Command) hast.Statement { return hast.SCommand{C: c} }

// isStatementOnly reports whether e is one of the T-AST forms that may
// only ever be lowered via statement(): encountering one of
// these in tail/value position means delegating to statement and
// reporting None, except Assign/Mutate which report a synthetic unit.
func isStatementOnly(un tast.UnannotatedExp_) bool {
	switch un.(type) {
	case tast.EReturn, tast.EAbort, tast.EGive, tast.EContinue, tast.EAssign, tast.EMutate:
		return true
	default:
		return false
	}
}

// isUnitStatement reports whether e is one of the two statement-only forms
// that are themselves typed as unit (Assign/Mutate), as opposed to the
// ones that diverge (Return/Abort/Give/Continue).
func isUnitStatement(un tast.UnannotatedExp_) bool {
	switch un.(type) {
	case tast.EAssign, tast.EMutate:
		return true
	default:
		return false
	}
}

func isBinop(un tast.UnannotatedExp_) bool {
	_, ok := un.(tast.EBinopExp)
	return ok
}

// trailingUnit reports whether seq's last item is an expression-statement
// wrapping a Unit node carrying the trailing-`;` flag.
func trailingUnit(seq []tast.SequenceItem) bool {
	if len(seq) == 0 {
		return false
	}
	last, ok := seq[len(seq)-1].(tast.SeqExp)
	if !ok {
		return false
	}
	u, ok := last.E.Un.(tast.EUnit)
	return ok && u.Trailing
}

const deadErrMsg = "Unreachable code"

// emitUnreachable records a DeadCode diagnostic at e's position, used when
// a value-position expression is found to be statically unreachable
// because an earlier sibling diverges.
func emitUnreachable(ctx *Context, e *tast.Exp) {
	ctx.Env.AddDiag(diag.UnusedItemDeadCode, diag.Label{Pos: e.Pos, Message: deadErrMsg})
}

// emitTrailingSemicolonError records the three-label TrailingSemi
// diagnostic for an expression followed by a stray trailing semicolon.
func emitTrailingSemicolonError(ctx *Context, terminalPos, semiPos diag.Position) {
	ctx.Env.AddDiag(diag.UnusedItemTrailingSemi,
		diag.Label{Pos: semiPos, Message: "Invalid trailing ';'"},
		diag.Label{Pos: terminalPos, Message: "Any code after this expression will not be reached"},
		diag.Label{Pos: terminalPos, Message: "A trailing ';' implicitly adds a '()' value after the expression; since the expression above will never return, this implicit value is unreachable"},
	)
}
