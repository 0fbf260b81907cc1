package lower

import (
	"movehlir/internal/hast"
	"movehlir/internal/tast"
)

// tail lowers e in tail position: the position a function body, or an
// if/else branch, ends in. The control-flow-bearing forms get their own
// handling (matching value()'s, since an if/else or loop's own tail-ness
// is about what its *branches* sit in, not the construct itself); every
// other shape falls through to value(), which already ends by freezing its
// result to expectedTy.
func tail(ctx *Context, block *hast.Block, expectedTy *hast.Type, e *tast.Exp) *hast.Exp {
	un := e.Un

	if isStatementOnly(un) {
		statement(ctx, block, e)
		if isUnitStatement(un) {
			return implicitUnitExp()
		}
		return nil
	}

	switch x := un.(type) {
	case tast.EIfElse:
		return lowerIfElse(ctx, block, expectedTy, e, x)

	case tast.EWhile:
		statement(ctx, block, e)
		return trailingUnitExp()

	case tast.ELoop:
		if x.HasBreak {
			return lowerLoopBreak(ctx, block, expectedTy, e, x, true)
		}
		statement(ctx, block, e)
		return nil

	case tast.EBlock:
		return lowerBlockSeq(ctx, block, expectedTy, blockTail, x.Seq)

	default:
		return value(ctx, block, expectedTy, e)
	}
}

// lowerIfElse is shared by tail() and value(): both branches are always
// lowered in tail position relative to the if/else itself, with their
// results captured through a shared pair of binders so the construct can
// still be used as a single expression afterward.
func lowerIfElse(ctx *Context, block *hast.Block, expectedTy *hast.Type, e *tast.Exp, x tast.EIfElse) *hast.Exp {
	bt := boolType()
	cond := value(ctx, block, &bt, x.Cond)
	if cond == nil {
		return nil
	}

	rty := expectedTy
	if rty == nil {
		t := type_(e.Ty)
		rty = &t
	}

	var ifBlock, elseBlock hast.Block
	ifVal := tail(ctx, &ifBlock, rty, x.If)
	elseVal := tail(ctx, &elseBlock, rty, x.Else)

	binders, useExpr := makeBinders(ctx, *rty)
	boundIf := bindValueInBlock(ctx, binders, *rty, &ifBlock, ifVal)
	boundElse := bindValueInBlock(ctx, binders, *rty, &elseBlock, elseVal)

	*block = append(*block, hast.SIfElse{Cond: cond, IfBlock: ifBlock, ElseBlock: elseBlock})

	if !boundIf && !boundElse {
		return nil
	}
	return useExpr
}

// lowerLoopBreak is shared by tail() and value() for Loop{has_break: true}.
// tailPosition only matters when the loop's result type is Unit and no
// `give` ever bound a value: in tail position that yields the explicit
// trailing-unit marker, in value position it yields the binder expression
// (which is Implicit-unit for an empty binder set) directly.
func lowerLoopBreak(ctx *Context, block *hast.Block, expectedTy *hast.Type, e *tast.Exp, x tast.ELoop, tailPosition bool) *hast.Exp {
	rty := expectedTy
	if rty == nil {
		t := type_(e.Ty)
		rty = &t
	}

	binders, useExpr := makeBinders(ctx, *rty)
	nv := translateVar(x.Name)
	ctx.recordNamedBlockBinders(nv, binders)
	ctx.recordNamedBlockType(nv, *rty)

	var bodyBlock hast.Block
	statement(ctx, &bodyBlock, x.Body)

	*block = append(*block, hast.SLoop{Name: nv, HasBreak: true, Body: bodyBlock})

	if tailPosition && len(binders) == 0 {
		return trailingUnitExp()
	}
	return useExpr
}
