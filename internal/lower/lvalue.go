package lower

import (
	"sort"

	"movehlir/internal/hast"
	"movehlir/internal/tast"
)

// declareBindList registers every named binding in binds as a local,
// without producing any H-AST. Used for a bare `let x: T;` declaration,
// which has no initializer to assign, and for a `let` with an initializer,
// before its assignment is emitted.
func declareBindList(ctx *Context, binds []tast.LValue) {
	for _, b := range binds {
		declareBind(ctx, b)
	}
}

func declareBind(ctx *Context, lv tast.LValue) {
	switch l := lv.(type) {
	case tast.LIgnore:
	case tast.LVar:
		ctx.bindLocal(translateVar(l.V), singleType(l.Ty))
	case tast.LUnpack:
		for _, f := range l.Fields {
			declareBind(ctx, f.LV)
		}
	case tast.LBorrowUnpack:
		for _, f := range l.Fields {
			declareBind(ctx, f.LV)
		}
	default:
		panic("lower: ICE unknown LValue in declareBind")
	}
}

// makeAssignments lowers `assigns = rvalue`: it resolves each lvalue's
// expected component type against rvalue's (already-lowered) type, emits
// the Assign command, then appends every lvalue's after-block (the
// post-assignment field-borrow assignments a BorrowUnpack needs) in order.
func makeAssignments(ctx *Context, block *hast.Block, assigns []tast.LValue, rvalue *hast.Exp) {
	lvs := make([]hast.LValue, len(assigns))
	afters := make([]hast.Block, len(assigns))
	for i, a := range assigns {
		ty := hast.TypeAtIndex(rvalue.Ty, i)
		lv, after := assign(ctx, a, ty)
		lvs[i] = lv
		afters[i] = after
	}
	*block = append(*block, command(hast.CAssign{LValues: lvs, E: rvalue}))
	for _, after := range afters {
		*block = append(*block, after...)
	}
}

// assign translates one T-AST lvalue against its expected (single)
// rvalue type, returning the H-AST lvalue plus any statements that must
// run after the enclosing Assign command.
func assign(ctx *Context, ta tast.LValue, rvalueTy hast.SingleType) (hast.LValue, hast.Block) {
	switch l := ta.(type) {
	case tast.LIgnore:
		return hast.LIgnore{}, nil

	case tast.LVar:
		return hast.LVar{V: translateVar(l.V), Ty: singleType(l.Ty)}, nil

	case tast.LUnpack:
		for _, f := range l.Fields {
			ctx.markFieldUsed(l.Struct, f.Field)
		}
		ordered := assignFields(ctx, l.Module, l.Struct, l.Fields)
		outFields := make([]hast.UnpackField, len(ordered))
		var afterAll hast.Block
		for i, f := range ordered {
			lv, after := assign(ctx, f.LV, hast.STBase{Base: baseType(f.Ty)})
			outFields[i] = hast.UnpackField{Field: f.Field, Ty: baseType(f.Ty), LV: lv}
			afterAll = append(afterAll, after...)
		}
		return hast.LUnpack{Module: l.Module, Struct: l.Struct, Fields: outFields}, afterAll

	case tast.LBorrowUnpack:
		for _, f := range l.Fields {
			ctx.markFieldUsed(l.Struct, f.Field)
		}
		tmpLv, tmpExpr := makeTemp(ctx, rvalueTy)
		ordered := assignFields(ctx, l.Module, l.Struct, l.Fields)
		var afterAll hast.Block
		for _, f := range ordered {
			fieldBaseTy := baseType(f.Ty)
			borrowExp := &hast.Exp{
				Ty: hast.TSingle{Ty: hast.STRef{Mut: l.Mut, Inner: fieldBaseTy}},
				Un: hast.EBorrow{Mut: l.Mut, Base: tmpExpr, Field: f.Field},
			}
			makeAssignments(ctx, &afterAll, []tast.LValue{f.LV}, borrowExp)
		}
		return tmpLv, afterAll

	default:
		panic("lower: ICE unknown LValue in assign")
	}
}

// assignFields reorders an unpack pattern's textual field list into declared
// order. If the struct's field-index table is missing, it falls back to
// the fields' textual order — only tolerated when the environment already
// holds errors.
func assignFields(ctx *Context, mident tast.ModuleIdent, sname tast.StructName, fields []tast.UnpackField) []tast.UnpackField {
	fi, ok := ctx.fields(mident, sname)
	type entry struct {
		idx int
		f   tast.UnpackField
	}
	entries := make([]entry, len(fields))
	for i, f := range fields {
		idx := i
		if ok {
			if di, found := fi.index[f.Field]; found {
				idx = di
			} else if !ctx.Env.HasErrors() {
				panic("lower: ICE unknown field " + f.Field + " on " + string(sname))
			}
		} else if !ctx.Env.HasErrors() {
			panic("lower: ICE missing field index table for " + string(sname))
		}
		entries[i] = entry{idx, f}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].idx < entries[j].idx })
	out := make([]tast.UnpackField, len(entries))
	for i, e := range entries {
		out[i] = e.f
	}
	return out
}
