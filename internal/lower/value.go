package lower

import (
	"sort"

	"movehlir/internal/hast"
	"movehlir/internal/tast"
)

// value lowers e in value position: the position any subexpression that
// genuinely needs a value sits in (a call argument, an operand, a pack
// field). It is the one entry point responsible for the uniform
// end-of-lowering freeze to expectedTy — every other
// position (tail, statement) either delegates here or constructs its own
// result through the binder machinery, which already freezes against the
// type it chose for the binders.
func value(ctx *Context, block *hast.Block, expectedTy *hast.Type, e *tast.Exp) *hast.Exp {
	return maybeFreeze(ctx, block, expectedTy, valueInner(ctx, block, expectedTy, e))
}

func valueInner(ctx *Context, block *hast.Block, expectedTy *hast.Type, e *tast.Exp) *hast.Exp {
	un := e.Un

	if isStatementOnly(un) {
		statement(ctx, block, e)
		if isUnitStatement(un) {
			return implicitUnitExp()
		}
		emitUnreachable(ctx, e)
		return nil
	}

	if isBinop(un) {
		return processBinops(ctx, block, expectedTy, e)
	}

	switch x := un.(type) {
	case tast.EIfElse:
		return lowerIfElse(ctx, block, expectedTy, e, x)

	case tast.EWhile:
		statement(ctx, block, e)
		return implicitUnitExp()

	case tast.ELoop:
		if x.HasBreak {
			return lowerLoopBreak(ctx, block, expectedTy, e, x, false)
		}
		emitUnreachable(ctx, e)
		statement(ctx, block, e)
		return nil

	case tast.EBlock:
		return lowerBlockSeq(ctx, block, expectedTy, blockValue, x.Seq)

	case tast.EValue:
		return &hast.Exp{Ty: type_(e.Ty), Un: hast.EValue{V: processValue(x.V)}}

	case tast.EUnit:
		c := hast.UnitFromUser
		if x.Trailing {
			c = hast.UnitTrailing
		}
		return unitExp(c)

	case tast.EMove:
		return &hast.Exp{Ty: type_(e.Ty), Un: hast.EMove{Annotation: x.Annotation, V: translateVar(x.V)}}

	case tast.ECopy:
		return &hast.Exp{Ty: type_(e.Ty), Un: hast.ECopy{FromUser: x.FromUser, V: translateVar(x.V)}}

	case tast.EConstant:
		return &hast.Exp{Ty: type_(e.Ty), Un: hast.EConstant{Name: x.Name}}

	case tast.EModuleCall:
		return lowerModuleCall(ctx, block, type_(e.Ty), x)

	case tast.EBuiltin:
		if assert, ok := x.Fn.(tast.BAssert); ok {
			return lowerAssert(ctx, block, assert, x.Args)
		}
		return lowerBuiltin(ctx, block, x.Fn, x.Args)

	case tast.EVector:
		return lowerVector(ctx, block, e, x)

	case tast.EPack:
		return lowerPack(ctx, block, x)

	case tast.EDereference:
		inner := value(ctx, block, nil, x.E)
		if inner == nil {
			return nil
		}
		return &hast.Exp{Ty: type_(e.Ty), Un: hast.EDereference{E: inner}}

	case tast.EUnaryExp:
		argTy := type_(e.Ty)
		inner := value(ctx, block, &argTy, x.E)
		if inner == nil {
			return nil
		}
		return &hast.Exp{Ty: type_(e.Ty), Un: hast.EUnaryExp{Op: x.Op, E: inner}}

	case tast.EBorrow:
		base := value(ctx, block, nil, x.Base)
		if base == nil {
			return nil
		}
		if sn, ok := structName(base.Ty); ok {
			ctx.markFieldUsed(sn, x.Field)
		}
		return &hast.Exp{Ty: type_(e.Ty), Un: hast.EBorrow{Mut: x.Mut, Base: base, Field: x.Field}}

	case tast.ETempBorrow:
		base := value(ctx, block, nil, x.Base)
		if base == nil {
			return nil
		}
		bound := bindExp(ctx, block, base)
		mv, ok := bound.Un.(hast.EMove)
		if !ok {
			panic("lower: ICE temp-borrow base did not bind to a fresh Move")
		}
		return &hast.Exp{Ty: type_(e.Ty), Un: hast.EBorrowLocal{Mut: x.Mut, V: mv.V}}

	case tast.EBorrowLocal:
		return &hast.Exp{Ty: type_(e.Ty), Un: hast.EBorrowLocal{Mut: x.Mut, V: translateVar(x.V)}}

	case tast.ECast:
		target := baseType(x.Ty)
		if !isNumericCastTarget(target) {
			panic("lower: ICE cast target is not an integer type")
		}
		inner := value(ctx, block, nil, x.E)
		if inner == nil {
			return nil
		}
		return &hast.Exp{Ty: hast.TSingle{Ty: hast.STBase{Base: target}}, Un: hast.ECast{E: inner, Ty: target}}

	case tast.EAnnotate:
		t := type_(x.Ty)
		return value(ctx, block, &t, x.E)

	case tast.EExpList:
		items := make([]valueItem, len(x.Items))
		for i, it := range x.Items {
			items[i] = valueItem{E: it}
		}
		vals := valueEvaluationOrder(ctx, block, items)
		tys := make([]hast.SingleType, len(vals))
		for i, v := range vals {
			tys[i] = expectedTypes(v.Ty)[0]
		}
		return &hast.Exp{Ty: hast.TMultiple{Tys: tys}, Un: hast.EMultiple{Elems: vals}}

	case tast.ESpec:
		return &hast.Exp{Ty: type_(e.Ty), Un: hast.ESpec{ID: x.ID}}

	case tast.EUnresolvedError:
		if !ctx.Env.HasErrors() {
			panic("lower: ICE UnresolvedError reached lowering with no prior errors")
		}
		return &hast.Exp{Ty: type_(e.Ty), Un: hast.EUnresolvedError{}}

	case tast.EUse:
		panic("lower: ICE EUse reached lowering (should have been expanded by name resolution)")

	default:
		panic("lower: ICE unknown/unreachable UnannotatedExp_ in value()")
	}
}

// valueList lowers a builtin/call argument list, which T-AST always
// represents as either Unit (no arguments), a single bare expression, or an
// ExpList. Multi-argument lists go through valueEvaluationOrder so their
// left-to-right side effects survive any hoisting a later argument forces
// on an earlier one; each item's expected type comes from
// the corresponding component of ty when ty decomposes that far.
func valueList(ctx *Context, block *hast.Block, ty *hast.Type, args *tast.Exp) []*hast.Exp {
	if args == nil {
		return nil
	}
	if _, ok := args.Un.(tast.EUnit); ok {
		return []*hast.Exp{}
	}
	if el, ok := args.Un.(tast.EExpList); ok {
		var expected []hast.SingleType
		if ty != nil {
			expected = expectedTypes(*ty)
		}
		items := make([]valueItem, len(el.Items))
		for i, it := range el.Items {
			var et *hast.Type
			if i < len(expected) {
				t := hast.Type(hast.TSingle{Ty: expected[i]})
				et = &t
			}
			items[i] = valueItem{E: it, ExpectedTy: et}
		}
		return valueEvaluationOrder(ctx, block, items)
	}
	return []*hast.Exp{value(ctx, block, ty, args)}
}

// extractArgs decomposes an args expression the same way valueList does,
// without lowering anything — used by assert! desugaring, which needs to
// pick the two arguments apart before deciding how to lower each.
func extractArgs(args *tast.Exp) []*tast.Exp {
	if args == nil {
		return nil
	}
	if _, ok := args.Un.(tast.EUnit); ok {
		return nil
	}
	if el, ok := args.Un.(tast.EExpList); ok {
		return el.Items
	}
	return []*tast.Exp{args}
}

// lowerAssert desugars assert!(cond, code) into an if/else that aborts with
// code on the false path. The bool-first form evaluates
// code eagerly, alongside cond, before branching; the abort-on-false form
// lowers code lazily, directly inside the else branch, so it only ever
// runs when the assertion actually fails.
func lowerAssert(ctx *Context, block *hast.Block, b tast.BAssert, args *tast.Exp) *hast.Exp {
	items := extractArgs(args)
	if len(items) != 2 {
		panic("lower: ICE assert! builtin did not receive exactly 2 arguments")
	}
	condArg, codeArg := items[0], items[1]

	bt := boolType()
	cond := value(ctx, block, &bt, condArg)
	if cond == nil {
		return nil
	}

	var elseBlock hast.Block
	var codeExp *hast.Exp
	if b.BoolFirst {
		codeExp = value(ctx, block, nil, codeArg)
	} else {
		codeExp = value(ctx, &elseBlock, nil, codeArg)
	}
	if codeExp != nil {
		elseBlock = append(elseBlock, command(hast.CAbort{E: codeExp}))
	}

	*block = append(*block, hast.SIfElse{Cond: cond, IfBlock: hast.Block{}, ElseBlock: elseBlock})
	return implicitUnitExp()
}

func lowerModuleCall(ctx *Context, block *hast.Block, resultTy hast.Type, x tast.EModuleCall) *hast.Exp {
	expected := typeFromSingles(singleTypes(x.ParamTypes))
	args := valueList(ctx, block, &expected, x.Args)
	return &hast.Exp{
		Ty: resultTy,
		Un: hast.EModuleCall{Module: x.Module, Name: x.Name, TyArgs: baseTypes(x.TyArgs), Args: args},
	}
}

func lowerVector(ctx *Context, block *hast.Block, e *tast.Exp, x tast.EVector) *hast.Exp {
	elemBt := baseType(x.ElemTy)
	elemTy := hast.Type(hast.TSingle{Ty: hast.STBase{Base: elemBt}})
	items := make([]valueItem, len(x.Elems))
	for i, el := range x.Elems {
		items[i] = valueItem{E: el, ExpectedTy: &elemTy}
	}
	vals := valueEvaluationOrder(ctx, block, items)
	return &hast.Exp{Ty: type_(e.Ty), Un: hast.EVector{ElemTy: elemBt, Elems: vals}}
}

// lowerPack lowers a struct-pack expression. Field initializers are always
// evaluated in source (textual) order, but the resulting H-AST PackField
// list must come out in the struct's declared field order, since that is
// the order a backend expects.
//
// When source order already matches declared order, valueEvaluationOrder's
// ordinary hoisting (binding an earlier expression to a temp only when a
// later one forces it) is enough, since the list it returns is never
// reindexed. But once any field's declared index differs from its source
// position, the field list gets permuted after evaluation — so every field
// must be committed to a temp unconditionally, regardless of whether a
// later expression hoists anything, or permuting inline expressions would
// reorder their side effects along with them.
func lowerPack(ctx *Context, block *hast.Block, x tast.EPack) *hast.Exp {
	for _, f := range x.Fields {
		ctx.markFieldUsed(x.Struct, f.Field)
	}

	reorder := false
	for i, f := range x.Fields {
		if f.DeclIndex != i {
			reorder = true
			break
		}
	}

	var vals []*hast.Exp
	if reorder {
		vals = make([]*hast.Exp, len(x.Fields))
		for i, f := range x.Fields {
			ft := hast.Type(hast.TSingle{Ty: hast.STBase{Base: baseType(f.Ty)}})
			v := value(ctx, block, &ft, f.E)
			vals[i] = bindExp(ctx, block, v)
		}
	} else {
		items := make([]valueItem, len(x.Fields))
		for i, f := range x.Fields {
			ft := hast.Type(hast.TSingle{Ty: hast.STBase{Base: baseType(f.Ty)}})
			items[i] = valueItem{E: f.E, ExpectedTy: &ft}
		}
		vals = valueEvaluationOrder(ctx, block, items)
	}

	type entry struct {
		idx int
		f   tast.PackField
		v   *hast.Exp
	}
	entries := make([]entry, len(x.Fields))
	for i, f := range x.Fields {
		entries[i] = entry{f.DeclIndex, f, vals[i]}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].idx < entries[j].idx })

	outFields := make([]hast.PackField, len(entries))
	for i, en := range entries {
		outFields[i] = hast.PackField{Field: en.f.Field, Ty: baseType(en.f.Ty), E: en.v}
	}

	resultTy := hast.TSingle{Ty: hast.STBase{Base: hast.TyApply{
		Module: x.Module, Name: x.Struct, TyArgs: baseTypes(x.TyArgs),
	}}}
	return &hast.Exp{
		Ty: resultTy,
		Un: hast.EPack{Module: x.Module, Struct: x.Struct, TyArgs: baseTypes(x.TyArgs), Fields: outFields},
	}
}

// processValue passes a literal through unchanged; an uninferred numeric
// literal reaching lowering is an ICE since type inference must have
// already picked its concrete width.
func processValue(v tast.Value_) tast.Value_ {
	if _, ok := v.(tast.VInferredNum); ok {
		panic("lower: ICE uninferred numeric literal reached lowering")
	}
	return v
}
