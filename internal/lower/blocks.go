package lower

import (
	"movehlir/internal/diag"
	"movehlir/internal/hast"
	"movehlir/internal/tast"
)

// blockPosition records which of tail(), value(), or statement() a block's
// final sequence item should be lowered through — the three diverge for
// EWhile/ELoop finals (trailing vs. implicit unit, DeadCode diagnostics on
// a no-break loop), so a block's own position must reach the final item
// unchanged rather than always being treated as tail.
type blockPosition int

const (
	blockTail blockPosition = iota
	blockValue
	blockStatement
)

// lowerBlockSeq lowers a block's statement sequence, regardless of the
// position the block itself sits in: every non-final item runs purely for
// its side effects via statement(), and the final item (if any) determines
// the block's result, lowered through whichever of tail()/value()/
// statement() matches pos. tail(), value(), and statement() all delegate
// an EBlock here, passing their own position through.
//
// The one position-independent diagnostic this pass owns — the
// "invalid trailing ';'" case — fires here too: when the final item is the
// Unit{trailing} node the type checker synthesizes for a bare trailing `;`,
// and the statement immediately before it already diverges, that implicit
// `()` can never run, so it is reported and not lowered: the block's result
// is nil (unreachable), whatever its position.
func lowerBlockSeq(ctx *Context, outerBlock *hast.Block, expectedTy *hast.Type, pos blockPosition, seq []tast.SequenceItem) *hast.Exp {
	var prevPos diag.Position
	prevDivergent := false

	for i, item := range seq {
		last := i == len(seq)-1
		switch it := item.(type) {
		case tast.SeqDeclare:
			declareBindList(ctx, it.Binds)
			prevDivergent = false

		case tast.SeqBind:
			ty := type_(it.Ty)
			before := len(*outerBlock)
			rv := value(ctx, outerBlock, &ty, it.E)
			declareBindList(ctx, it.Binds)
			if rv != nil {
				makeAssignments(ctx, outerBlock, it.Binds, rv)
			}
			prevDivergent = len(*outerBlock) > before && divergent((*outerBlock)[len(*outerBlock)-1])
			prevPos = it.E.Pos

		case tast.SeqExp:
			if !last {
				before := len(*outerBlock)
				statement(ctx, outerBlock, it.E)
				prevDivergent = len(*outerBlock) > before && divergent((*outerBlock)[len(*outerBlock)-1])
				prevPos = it.E.Pos
				continue
			}
			if u, ok := it.E.Un.(tast.EUnit); ok && u.Trailing && prevDivergent {
				emitTrailingSemicolonError(ctx, prevPos, it.E.Pos)
				return nil
			}
			switch pos {
			case blockValue:
				return value(ctx, outerBlock, expectedTy, it.E)
			case blockStatement:
				statement(ctx, outerBlock, it.E)
				return nil
			default:
				return tail(ctx, outerBlock, expectedTy, it.E)
			}
		}
	}
	return implicitUnitExp()
}
