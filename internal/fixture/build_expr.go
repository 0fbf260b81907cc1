package fixture

import (
	"fmt"

	"movehlir/internal/tast"
)

// expr builds one tast.Exp from its parsed fixture form. Every alternative
// resolves a result type by, in order: an explicit trailing `:: type`
// annotation, a handful of forms whose type is mechanically derivable from
// their own shape (a literal's suffix, a pack's struct application, a cast's
// target, a binop's operand/comparison type), and otherwise Unit — callers
// that actually depend on a precise value type for one of those remaining
// forms are expected to supply the annotation explicitly.
func (b *builder) expr(g *gExpr) (*tast.Exp, error) {
	var override tast.Type
	if g.TyAnnot != nil {
		t, err := b.typ(g.TyAnnot)
		if err != nil {
			return nil, err
		}
		override = t
	}
	resolve := func(natural tast.Type) tast.Type {
		if override != nil {
			return override
		}
		if natural != nil {
			return natural
		}
		return tast.TUnit{}
	}

	switch {
	case g.Lit != nil:
		val, bty, err := b.literal(g.Lit)
		if err != nil {
			return nil, err
		}
		var natural tast.Type
		if bty != nil {
			natural = singleToType(tast.STBase{Base: bty})
		}
		return &tast.Exp{Ty: resolve(natural), Pos: pos(g.Pos), Un: tast.EValue{V: val}}, nil

	case g.Unit != "":
		return &tast.Exp{Ty: resolve(nil), Pos: pos(g.Pos), Un: tast.EUnit{Trailing: g.Unit == "unit_trailing"}}, nil

	case g.Var != nil:
		v, err := b.varOf(g.Var.V)
		if err != nil {
			return nil, err
		}
		var un tast.UnannotatedExp_
		if g.Var.Kind == "move" {
			un = tast.EMove{Annotation: tast.FromUser, V: v}
		} else {
			un = tast.ECopy{FromUser: true, V: v}
		}
		return &tast.Exp{Ty: resolve(nil), Pos: pos(g.Pos), Un: un}, nil

	case g.Const != nil:
		un := tast.EConstant{
			Module: tast.ModuleIdent{Address: g.Const.Address, Name: g.Const.Module},
			Name:   tast.ConstantName(g.Const.Name),
		}
		return &tast.Exp{Ty: resolve(nil), Pos: pos(g.Pos), Un: un}, nil

	case g.Builtin != nil:
		return b.builtinExpr(g, resolve)

	case g.Assert != nil:
		cond, err := b.expr(g.Assert.Cond)
		if err != nil {
			return nil, err
		}
		code, err := b.expr(g.Assert.Code)
		if err != nil {
			return nil, err
		}
		un := tast.EBuiltin{
			Fn:   tast.BAssert{BoolFirst: g.Assert.Kind == "bool_first"},
			Args: packArgs([]*tast.Exp{cond, code}),
		}
		return &tast.Exp{Ty: resolve(nil), Pos: pos(g.Pos), Un: un}, nil

	case g.Call != nil:
		return b.callExpr(g, resolve)

	case g.Vector != nil:
		elemTy, err := b.baseType(g.Vector.ElemTy)
		if err != nil {
			return nil, err
		}
		elems, err := b.exprs(g.Vector.Elems)
		if err != nil {
			return nil, err
		}
		un := tast.EVector{ElemTy: elemTy, Elems: elems}
		return &tast.Exp{Ty: resolve(nil), Pos: pos(g.Pos), Un: un}, nil

	case g.Pack != nil:
		return b.packExpr(g, resolve)

	case g.Deref != nil && g.Deref.Kw == "deref":
		inner, err := b.expr(g.Deref.E)
		if err != nil {
			return nil, err
		}
		return &tast.Exp{Ty: resolve(nil), Pos: pos(g.Pos), Un: tast.EDereference{E: inner}}, nil

	case g.Not != nil || g.Deref != nil:
		u := g.Not
		if u == nil {
			u = g.Deref
		}
		inner, err := b.expr(u.E)
		if err != nil {
			return nil, err
		}
		un := tast.EUnaryExp{Op: tast.OpNot, E: inner}
		return &tast.Exp{Ty: resolve(singleToType(tast.STBase{Base: tast.TyBool{}})), Pos: pos(g.Pos), Un: un}, nil

	case g.Binop != nil:
		return b.binopExpr(g, resolve)

	case g.Borrow != nil:
		base, err := b.expr(g.Borrow.Base)
		if err != nil {
			return nil, err
		}
		un := tast.EBorrow{Mut: g.Borrow.Mut, Base: base, Field: g.Borrow.Field}
		return &tast.Exp{Ty: resolve(nil), Pos: pos(g.Pos), Un: un}, nil

	case g.BorrowT != nil:
		base, err := b.expr(g.BorrowT.Base)
		if err != nil {
			return nil, err
		}
		un := tast.ETempBorrow{Mut: g.BorrowT.Mut, Base: base}
		return &tast.Exp{Ty: resolve(nil), Pos: pos(g.Pos), Un: un}, nil

	case g.BorrowL != nil:
		v, err := b.varOf(g.BorrowL.V)
		if err != nil {
			return nil, err
		}
		un := tast.EBorrowLocal{Mut: g.BorrowL.Mut, V: v}
		return &tast.Exp{Ty: resolve(nil), Pos: pos(g.Pos), Un: un}, nil

	case g.Cast != nil:
		inner, err := b.expr(g.Cast.E)
		if err != nil {
			return nil, err
		}
		target, err := b.baseType(g.Cast.Ty)
		if err != nil {
			return nil, err
		}
		un := tast.ECast{E: inner, Ty: target}
		return &tast.Exp{Ty: resolve(singleToType(tast.STBase{Base: target})), Pos: pos(g.Pos), Un: un}, nil

	case g.Annot != nil:
		inner, err := b.expr(g.Annot.E)
		if err != nil {
			return nil, err
		}
		ty, err := b.typ(g.Annot.Ty)
		if err != nil {
			return nil, err
		}
		un := tast.EAnnotate{E: inner, Ty: ty}
		return &tast.Exp{Ty: resolve(ty), Pos: pos(g.Pos), Un: un}, nil

	case g.Tuple != nil:
		items, err := b.exprs(g.Tuple.Items)
		if err != nil {
			return nil, err
		}
		return &tast.Exp{Ty: resolve(nil), Pos: pos(g.Pos), Un: tast.EExpList{Items: items}}, nil

	case g.If != nil:
		cond, err := b.expr(g.If.Cond)
		if err != nil {
			return nil, err
		}
		then, err := b.expr(g.If.Then)
		if err != nil {
			return nil, err
		}
		els, err := b.expr(g.If.Else)
		if err != nil {
			return nil, err
		}
		un := tast.EIfElse{Cond: cond, If: then, Else: els}
		return &tast.Exp{Ty: resolve(nil), Pos: pos(g.Pos), Un: un}, nil

	case g.While != nil:
		name, err := b.varOf(g.While.Name)
		if err != nil {
			return nil, err
		}
		cond, err := b.expr(g.While.Cond)
		if err != nil {
			return nil, err
		}
		body, err := b.expr(g.While.Body)
		if err != nil {
			return nil, err
		}
		un := tast.EWhile{Name: name, Cond: cond, Body: body}
		return &tast.Exp{Ty: resolve(nil), Pos: pos(g.Pos), Un: un}, nil

	case g.Loop != nil:
		name, err := b.varOf(g.Loop.Name)
		if err != nil {
			return nil, err
		}
		body, err := b.expr(g.Loop.Body)
		if err != nil {
			return nil, err
		}
		un := tast.ELoop{Name: name, Body: body, HasBreak: g.Loop.HasBreak}
		return &tast.Exp{Ty: resolve(nil), Pos: pos(g.Pos), Un: un}, nil

	case g.Give != nil:
		name, err := b.varOf(g.Give.Name)
		if err != nil {
			return nil, err
		}
		val, err := b.expr(g.Give.E)
		if err != nil {
			return nil, err
		}
		return &tast.Exp{Ty: resolve(nil), Pos: pos(g.Pos), Un: tast.EGive{Name: name, E: val}}, nil

	case g.Cont != nil:
		name, err := b.varOf(g.Cont.Name)
		if err != nil {
			return nil, err
		}
		return &tast.Exp{Ty: resolve(nil), Pos: pos(g.Pos), Un: tast.EContinue{Name: name}}, nil

	case g.Ret != nil:
		val, err := b.expr(g.Ret.E)
		if err != nil {
			return nil, err
		}
		return &tast.Exp{Ty: resolve(nil), Pos: pos(g.Pos), Un: tast.EReturn{E: val}}, nil

	case g.Abort != nil:
		val, err := b.expr(g.Abort.E)
		if err != nil {
			return nil, err
		}
		return &tast.Exp{Ty: resolve(nil), Pos: pos(g.Pos), Un: tast.EAbort{E: val}}, nil

	case g.Assign != nil:
		lvs, err := b.lvalues(g.Assign.LValues)
		if err != nil {
			return nil, err
		}
		rhs, err := b.expr(g.Assign.RHS)
		if err != nil {
			return nil, err
		}
		return &tast.Exp{Ty: resolve(nil), Pos: pos(g.Pos), Un: tast.EAssign{LValues: lvs, RHS: rhs}}, nil

	case g.Mutate != nil:
		lhs, err := b.expr(g.Mutate.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := b.expr(g.Mutate.RHS)
		if err != nil {
			return nil, err
		}
		return &tast.Exp{Ty: resolve(nil), Pos: pos(g.Pos), Un: tast.EMutate{LHS: lhs, RHS: rhs}}, nil

	case g.Block != nil:
		seq, err := b.seqItems(g.Block.Items)
		if err != nil {
			return nil, err
		}
		return &tast.Exp{Ty: resolve(nil), Pos: pos(g.Pos), Un: tast.EBlock{Seq: seq}}, nil
	}
	return nil, fmt.Errorf("fixture: empty expression at %s", pos(g.Pos))
}

func (b *builder) exprs(gs []*gExpr) ([]*tast.Exp, error) {
	out := make([]*tast.Exp, len(gs))
	for i, g := range gs {
		e, err := b.expr(g)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

// packArgs wraps a builtin/call argument list the way T-AST always
// represents one: no arguments is Unit, one is bare, more than one is an
// ExpList. The wrapper's own Ty is never read by the lowering pass, which
// decomposes Args by matching on Un before lowering each item with its own
// type.
func packArgs(items []*tast.Exp) *tast.Exp {
	switch len(items) {
	case 0:
		return &tast.Exp{Ty: tast.TUnit{}, Un: tast.EUnit{}}
	case 1:
		return items[0]
	default:
		return &tast.Exp{Ty: tast.TUnit{}, Un: tast.EExpList{Items: items}}
	}
}

func (b *builder) builtinExpr(g *gExpr, resolve func(tast.Type) tast.Type) (*tast.Exp, error) {
	bg := g.Builtin
	bty, err := b.baseType(bg.Ty)
	if err != nil {
		return nil, err
	}
	args, err := b.exprs(bg.Args)
	if err != nil {
		return nil, err
	}
	var fn tast.Builtin_
	switch bg.Name {
	case "move_to":
		fn = tast.BMoveTo{BaseTy: bty}
	case "move_from":
		fn = tast.BMoveFrom{BaseTy: bty}
	case "borrow_global":
		fn = tast.BBorrowGlobal{Mut: false, BaseTy: bty}
	case "borrow_global_mut":
		fn = tast.BBorrowGlobal{Mut: true, BaseTy: bty}
	case "exists":
		fn = tast.BExists{BaseTy: bty}
	case "freeze":
		fn = tast.BFreeze{BaseTy: bty}
	default:
		return nil, fmt.Errorf("fixture: unknown builtin %q", bg.Name)
	}
	un := tast.EBuiltin{Fn: fn, Args: packArgs(args)}
	return &tast.Exp{Ty: resolve(nil), Pos: pos(g.Pos), Un: un}, nil
}

func (b *builder) callExpr(g *gExpr, resolve func(tast.Type) tast.Type) (*tast.Exp, error) {
	cg := g.Call
	var tyArgs []tast.BaseType
	for _, a := range cg.TyArgs {
		at, err := b.baseType(a)
		if err != nil {
			return nil, err
		}
		tyArgs = append(tyArgs, at)
	}
	var params []tast.SingleType
	for _, p := range cg.Params {
		st, err := b.singleType(p)
		if err != nil {
			return nil, err
		}
		params = append(params, st)
	}
	args, err := b.exprs(cg.Args)
	if err != nil {
		return nil, err
	}
	un := tast.EModuleCall{
		Module:     tast.ModuleIdent{Address: cg.Address, Name: cg.Module},
		Name:       tast.FunctionName(cg.Name),
		TyArgs:     tyArgs,
		ParamTypes: params,
		Args:       packArgs(args),
	}
	return &tast.Exp{Ty: resolve(nil), Pos: pos(g.Pos), Un: un}, nil
}

func (b *builder) packExpr(g *gExpr, resolve func(tast.Type) tast.Type) (*tast.Exp, error) {
	pg := g.Pack
	var tyArgs []tast.BaseType
	for _, a := range pg.TyArgs {
		at, err := b.baseType(a)
		if err != nil {
			return nil, err
		}
		tyArgs = append(tyArgs, at)
	}
	fields := make([]tast.PackField, len(pg.Fields))
	for i, pf := range pg.Fields {
		idx, err := parseIndex(pf.DeclIndex)
		if err != nil {
			return nil, err
		}
		ft, err := b.baseType(pf.Ty)
		if err != nil {
			return nil, err
		}
		fe, err := b.expr(pf.E)
		if err != nil {
			return nil, err
		}
		fields[i] = tast.PackField{DeclIndex: idx, ExpIndex: i, Field: pf.Field, Ty: ft, E: fe}
	}
	un := tast.EPack{
		Module: tast.ModuleIdent{Address: pg.Address, Name: pg.Module},
		Struct: tast.StructName(pg.Struct),
		TyArgs: tyArgs,
		Fields: fields,
	}
	natural := singleToType(tast.STBase{Base: tast.TyApply{
		Module: un.Module, Name: un.Struct, TyArgs: tyArgs,
	}})
	return &tast.Exp{Ty: resolve(natural), Pos: pos(g.Pos), Un: un}, nil
}

func (b *builder) binopExpr(g *gExpr, resolve func(tast.Type) tast.Type) (*tast.Exp, error) {
	bg := g.Binop
	opType, err := b.typ(bg.OpType)
	if err != nil {
		return nil, err
	}
	lhs, err := b.expr(bg.LHS)
	if err != nil {
		return nil, err
	}
	rhs, err := b.expr(bg.RHS)
	if err != nil {
		return nil, err
	}
	op := tast.BinOp(bg.Op)
	un := tast.EBinopExp{LHS: lhs, Op: op, OpType: opType, RHS: rhs}

	var natural tast.Type
	switch op {
	case tast.OpEq, tast.OpNeq, tast.OpLt, tast.OpGt, tast.OpLe, tast.OpGe, tast.OpAnd, tast.OpOr:
		natural = singleToType(tast.STBase{Base: tast.TyBool{}})
	default:
		natural = opType
	}
	return &tast.Exp{Ty: resolve(natural), Pos: pos(g.Pos), Un: un}, nil
}

func parseIndex(s string) (int, error) {
	var n int
	_, err := fmt.Sscanf(s, "%d", &n)
	return n, err
}
