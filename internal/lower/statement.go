package lower

import (
	"movehlir/internal/diag"
	"movehlir/internal/hast"
	"movehlir/internal/tast"
)

const unusedLoopBreakMsg = "Unused 'give' value"

// statement lowers e purely for its side effects, discarding whatever
// value it would otherwise produce. The control-flow-bearing forms get
// their own handling (each recursing back into statement() for their own
// sub-blocks, never tail() or value(), since nothing here needs to capture
// a result); everything else falls through to valueStatement.
func statement(ctx *Context, block *hast.Block, e *tast.Exp) {
	switch x := e.Un.(type) {
	case tast.EIfElse:
		statementIfElse(ctx, block, x)

	case tast.EWhile:
		statementWhile(ctx, block, x)

	case tast.ELoop:
		statementLoop(ctx, block, e, x)

	case tast.EBlock:
		lowerBlockSeq(ctx, block, nil, blockStatement, x.Seq)

	case tast.EReturn:
		rt := ctx.signature.ReturnType
		val := value(ctx, block, &rt, x.E)
		if val != nil {
			*block = append(*block, command(hast.CReturn{FromUser: true, E: val}))
		}

	case tast.EAbort:
		val := value(ctx, block, nil, x.E)
		if val != nil {
			*block = append(*block, command(hast.CAbort{E: val}))
		}

	case tast.EGive:
		statementGive(ctx, block, x)

	case tast.EContinue:
		*block = append(*block, command(hast.CContinue{Name: translateVar(x.Name)}))

	case tast.EAssign:
		rv := value(ctx, block, nil, x.RHS)
		if rv != nil {
			makeAssignments(ctx, block, x.LValues, rv)
		}

	case tast.EMutate:
		lhs := value(ctx, block, nil, x.LHS)
		rhs := value(ctx, block, nil, x.RHS)
		if lhs != nil && rhs != nil {
			*block = append(*block, command(hast.CMutate{LHS: lhs, RHS: rhs}))
		}

	default:
		valueStatement(ctx, block, e)
	}
}

// valueStatement lowers any expression in statement position by falling
// back to plain value lowering and discarding the result.
func valueStatement(ctx *Context, block *hast.Block, e *tast.Exp) {
	result := value(ctx, block, nil, e)
	makeIgnoreAndPop(block, result)
}

func statementIfElse(ctx *Context, block *hast.Block, x tast.EIfElse) {
	bt := boolType()
	cond := value(ctx, block, &bt, x.Cond)
	if cond == nil {
		return
	}
	var ifBlock, elseBlock hast.Block
	statement(ctx, &ifBlock, x.If)
	statement(ctx, &elseBlock, x.Else)
	*block = append(*block, hast.SIfElse{Cond: cond, IfBlock: ifBlock, ElseBlock: elseBlock})
}

func statementWhile(ctx *Context, block *hast.Block, x tast.EWhile) {
	bt := boolType()
	var condBlock hast.Block
	condExp := value(ctx, &condBlock, &bt, x.Cond)
	var bodyBlock hast.Block
	statement(ctx, &bodyBlock, x.Body)
	if condExp == nil {
		return
	}
	*block = append(*block, hast.SWhile{Name: translateVar(x.Name), Cond: condBlock, CondExp: condExp, Body: bodyBlock})
}

// statementLoop lowers a Loop unconditionally through the binder machinery
// regardless of has_break, since the type checker still assigns the
// construct a type even when it never breaks. When it does break and those
// binders go unused — nothing in statement position can read them — this
// emits the LoopBreakValue diagnostic and pops the discarded result.
func statementLoop(ctx *Context, block *hast.Block, e *tast.Exp, x tast.ELoop) {
	rty := type_(e.Ty)
	binders, useExpr := makeBinders(ctx, rty)
	nv := translateVar(x.Name)
	ctx.recordNamedBlockBinders(nv, binders)
	ctx.recordNamedBlockType(nv, rty)

	var bodyBlock hast.Block
	statement(ctx, &bodyBlock, x.Body)

	*block = append(*block, hast.SLoop{Name: nv, HasBreak: x.HasBreak, Body: bodyBlock})

	if x.HasBreak && len(binders) > 0 {
		ctx.Env.AddDiag(diag.UnusedItemLoopBreakValue, diag.Label{Pos: e.Pos, Message: unusedLoopBreakMsg})
		makeIgnoreAndPop(block, useExpr)
	}
}

// statementGive lowers `give 'name value`: bind value into the named
// loop's binders (registered when that Loop was itself lowered) and break
// out of it. An empty binder set (the loop's result type is Unit) still
// needs value's side effects discarded via IgnoreAndPop — it is not simply
// dropped — and the break is unconditional either way.
func statementGive(ctx *Context, block *hast.Block, x tast.EGive) {
	nv := translateVar(x.Name)
	binders := ctx.lookupNamedBlockBinders(nv)
	ty := ctx.lookupNamedBlockType(nv)

	val := value(ctx, block, &ty, x.E)

	if len(binders) == 0 {
		makeIgnoreAndPop(block, val)
	} else {
		bindValueInBlock(ctx, binders, ty, block, val)
	}
	*block = append(*block, command(hast.CBreak{Name: nv}))
}
