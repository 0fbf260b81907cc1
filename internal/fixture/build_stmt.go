package fixture

import (
	"fmt"

	"movehlir/internal/tast"
)

func (b *builder) seqItems(gs []*gSeqItem) ([]tast.SequenceItem, error) {
	out := make([]tast.SequenceItem, len(gs))
	for i, g := range gs {
		switch {
		case g.Declare != nil:
			binds, err := b.lvalues(g.Declare.Binds)
			if err != nil {
				return nil, err
			}
			out[i] = tast.SeqDeclare{Binds: binds}

		case g.Bind != nil:
			binds, err := b.lvalues(g.Bind.Binds)
			if err != nil {
				return nil, err
			}
			ty, err := b.typ(g.Bind.Ty)
			if err != nil {
				return nil, err
			}
			e, err := b.expr(g.Bind.E)
			if err != nil {
				return nil, err
			}
			out[i] = tast.SeqBind{Binds: binds, Ty: ty, E: e}

		case g.Tail != nil:
			e, err := b.expr(g.Tail)
			if err != nil {
				return nil, err
			}
			out[i] = tast.SeqExp{E: e}

		default:
			return nil, fmt.Errorf("fixture: empty sequence item at %s", pos(g.Pos))
		}
	}
	return out, nil
}

func (b *builder) lvalues(gs []*gLValue) ([]tast.LValue, error) {
	out := make([]tast.LValue, len(gs))
	for i, g := range gs {
		lv, err := b.lvalue(g)
		if err != nil {
			return nil, err
		}
		out[i] = lv
	}
	return out, nil
}

func (b *builder) lvalue(g *gLValue) (tast.LValue, error) {
	switch {
	case g.Ignore != "":
		return tast.LIgnore{}, nil

	case g.Var != nil:
		v, err := b.varOf(g.Var.V)
		if err != nil {
			return nil, err
		}
		st, err := b.singleType(g.Var.Ty)
		if err != nil {
			return nil, err
		}
		return tast.LVar{V: v, Ty: st}, nil

	case g.Unpack != nil:
		ug := g.Unpack
		tyArgs, err := b.baseTypes(ug.TyArgs)
		if err != nil {
			return nil, err
		}
		fields, err := b.unpackFields(ug.Fields)
		if err != nil {
			return nil, err
		}
		return tast.LUnpack{
			Module: tast.ModuleIdent{Address: ug.Address, Name: ug.Module},
			Struct: tast.StructName(ug.Struct),
			TyArgs: tyArgs,
			Fields: fields,
		}, nil

	case g.BorrowUnpack != nil:
		ug := g.BorrowUnpack
		tyArgs, err := b.baseTypes(ug.TyArgs)
		if err != nil {
			return nil, err
		}
		fields, err := b.unpackFields(ug.Fields)
		if err != nil {
			return nil, err
		}
		return tast.LBorrowUnpack{
			Mut:    ug.Mut,
			Module: tast.ModuleIdent{Address: ug.Address, Name: ug.Module},
			Struct: tast.StructName(ug.Struct),
			TyArgs: tyArgs,
			Fields: fields,
		}, nil
	}
	return nil, fmt.Errorf("fixture: empty lvalue")
}

func (b *builder) unpackFields(gs []*gUnpackField) ([]tast.UnpackField, error) {
	out := make([]tast.UnpackField, len(gs))
	for i, g := range gs {
		ty, err := b.baseType(g.Ty)
		if err != nil {
			return nil, err
		}
		lv, err := b.lvalue(g.LV)
		if err != nil {
			return nil, err
		}
		out[i] = tast.UnpackField{Field: g.Field, Ty: ty, LV: lv}
	}
	return out, nil
}

func (b *builder) baseTypes(gs []*gBaseTy) ([]tast.BaseType, error) {
	out := make([]tast.BaseType, len(gs))
	for i, g := range gs {
		t, err := b.baseType(g)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}
