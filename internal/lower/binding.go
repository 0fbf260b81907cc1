package lower

import (
	"movehlir/internal/hast"
	"movehlir/internal/tast"
)

// makeBinders synthesizes fresh temporaries matching ty: none for Unit,
// one for a Single type, one per component for a Multiple (tuple) type.
// The returned expression references the binders via a Move with the
// InferredLastUsage annotation, since the binders exist solely to be read
// back immediately after being assigned.
func makeBinders(ctx *Context, ty hast.Type) ([]hast.LValue, *hast.Exp) {
	switch t := ty.(type) {
	case hast.TUnit:
		return nil, implicitUnitExp()
	case hast.TSingle:
		lv, e := makeTemp(ctx, t.Ty)
		return []hast.LValue{lv}, e
	case hast.TMultiple:
		lvs := make([]hast.LValue, len(t.Tys))
		vars := make([]*hast.Exp, len(t.Tys))
		for i, st := range t.Tys {
			lv, e := makeTemp(ctx, st)
			lvs[i] = lv
			vars[i] = e
		}
		return lvs, &hast.Exp{Ty: ty, Un: hast.EMultiple{Elems: vars}}
	default:
		panic("lower: ICE unknown Type in makeBinders")
	}
}

func makeTemp(ctx *Context, ty hast.SingleType) (hast.LValue, *hast.Exp) {
	v := ctx.newTempVar()
	ctx.bindLocal(v, ty)
	lv := hast.LVar{V: v, Ty: ty}
	e := &hast.Exp{Ty: hast.TSingle{Ty: ty}, Un: hast.EMove{Annotation: hast.InferredLastUsage, V: v}}
	return lv, e
}

// bindExp unconditionally binds e to a fresh temp (or temps), appending
// the assignment into block and returning the binder-referencing
// expression.
func bindExp(ctx *Context, block *hast.Block, e *hast.Exp) *hast.Exp {
	lvs, expr := makeBinders(ctx, e.Ty)
	bindValueInBlock(ctx, lvs, e.Ty, block, e)
	return expr
}

// bindValueInBlock freezes value to bindersType if needed and, if still
// reachable, appends Assign(binders, value) to block. Every binder lvalue
// must be a Var — makeBinders never produces anything else, so violating
// this is an ICE.
func bindValueInBlock(ctx *Context, binders []hast.LValue, bindersType hast.Type, block *hast.Block, value *hast.Exp) bool {
	for _, lv := range binders {
		if _, ok := lv.(hast.LVar); !ok {
			panic("lower: ICE non-Var binder lvalue")
		}
	}
	real := maybeFreeze(ctx, block, &bindersType, value)
	if real == nil {
		return false
	}
	*block = append(*block, command(hast.CAssign{LValues: binders, E: real}))
	return true
}

// maybeBindExp binds e only if it actually has binders to assign into;
// an expression typed Unit with nothing hoisted is left as a bare
// IgnoreAndPop instead of manufacturing a throwaway binder.
func maybeBindExp(ctx *Context, block *hast.Block, e *hast.Exp) *hast.Exp {
	if e == nil {
		return nil
	}
	lvs, expr := makeBinders(ctx, e.Ty)
	if len(lvs) == 0 {
		makeIgnoreAndPop(block, e)
		return nil
	}
	bindValueInBlock(ctx, lvs, e.Ty, block, e)
	return expr
}

// makeIgnoreAndPop discards e's value in statement position. A trivial
// Unit (an EUnit or EValue node typed Unit) needs no instruction at all;
// anything else is wrapped so a stack-based backend knows how many slots
// to discard.
func makeIgnoreAndPop(block *hast.Block, e *hast.Exp) {
	if e == nil {
		return
	}
	switch t := e.Ty.(type) {
	case hast.TUnit:
		switch e.Un.(type) {
		case hast.EUnit, hast.EValue:
			return
		default:
			*block = append(*block, command(hast.CIgnoreAndPop{PopNum: 0, E: e}))
		}
	case hast.TSingle:
		*block = append(*block, command(hast.CIgnoreAndPop{PopNum: 1, E: e}))
	case hast.TMultiple:
		*block = append(*block, command(hast.CIgnoreAndPop{PopNum: len(t.Tys), E: e}))
	default:
		panic("lower: ICE unknown Type in makeIgnoreAndPop")
	}
}

// valueItem pairs a T-AST expression with its (optional) expected type,
// the unit valueEvaluationOrder and value_list operate over.
type valueItem struct {
	E          *tast.Exp
	ExpectedTy *hast.Type
}

// valueEvaluationOrder lowers a list of expressions so that their source
// left-to-right side effects are preserved even though each one may hoist
// its own statements. This is the crux evaluation-order
// algorithm: walking the list in reverse lets a later expression's
// lowering decide, before an earlier one is even visited, whether the
// earlier one's result must be committed to a temporary first.
func valueEvaluationOrder(ctx *Context, block *hast.Block, items []valueItem) []*hast.Exp {
	n := len(items)
	values := make([]*hast.Exp, n)
	blocks := make([]hast.Block, n)
	needsBinding := false

	for i := n - 1; i >= 0; i-- {
		it := items[i]
		var newStmts hast.Block
		e := value(ctx, &newStmts, it.ExpectedTy, it.E)
		if needsBinding {
			e = maybeBindExp(ctx, &newStmts, e)
		}
		if e == nil {
			values[i] = implicitUnitExp()
		} else {
			values[i] = e
		}
		if len(newStmts) > 0 {
			needsBinding = true
		}
		blocks[i] = newStmts
	}

	for i := 0; i < n; i++ {
		*block = append(*block, blocks[i]...)
	}
	return values
}
