package lower

import (
	"movehlir/internal/hast"
	"movehlir/internal/tast"
)

// lowerBuiltin translates one of the non-assert builtin forms. assert!
// never reaches here: it is fully desugared to an if/else inside value()
// itself, since unlike the others it produces control
// flow rather than a single call node.
func lowerBuiltin(ctx *Context, block *hast.Block, tb tast.Builtin_, args *tast.Exp) *hast.Exp {
	switch b := tb.(type) {
	case tast.BMoveTo:
		bt := baseType(b.BaseTy)
		expected := hast.Type(hast.TMultiple{Tys: []hast.SingleType{
			hast.STRef{Mut: false, Inner: hast.TySigner{}},
			hast.STBase{Base: bt},
		}})
		exps := valueList(ctx, block, &expected, args)
		return &hast.Exp{Ty: hast.TUnit{}, Un: hast.EBuiltin{Fn: hast.BMoveTo{BaseTy: bt}, Args: exps}}

	case tast.BMoveFrom:
		bt := baseType(b.BaseTy)
		expected := hast.Type(hast.TSingle{Ty: hast.STBase{Base: hast.TyAddress{}}})
		exps := valueList(ctx, block, &expected, args)
		return &hast.Exp{Ty: hast.TSingle{Ty: hast.STBase{Base: bt}}, Un: hast.EBuiltin{Fn: hast.BMoveFrom{BaseTy: bt}, Args: exps}}

	case tast.BBorrowGlobal:
		bt := baseType(b.BaseTy)
		expected := hast.Type(hast.TSingle{Ty: hast.STBase{Base: hast.TyAddress{}}})
		exps := valueList(ctx, block, &expected, args)
		retTy := hast.TSingle{Ty: hast.STRef{Mut: b.Mut, Inner: bt}}
		return &hast.Exp{Ty: retTy, Un: hast.EBuiltin{Fn: hast.BBorrowGlobal{Mut: b.Mut, BaseTy: bt}, Args: exps}}

	case tast.BExists:
		bt := baseType(b.BaseTy)
		expected := hast.Type(hast.TSingle{Ty: hast.STBase{Base: hast.TyAddress{}}})
		exps := valueList(ctx, block, &expected, args)
		return &hast.Exp{Ty: hast.TSingle{Ty: hast.STBase{Base: hast.TyBool{}}}, Un: hast.EBuiltin{Fn: hast.BExists{BaseTy: bt}, Args: exps}}

	case tast.BFreeze:
		// freeze() the builtin behaves exactly like the compiler-inserted
		// Freeze node: lower the single argument with no expected type,
		// then wrap it directly — there is no separate Builtin call shape
		// for it at the H-AST level.
		inner := value(ctx, block, nil, args)
		if inner == nil {
			return nil
		}
		return freezePoint(inner)

	default:
		panic("lower: ICE lowerBuiltin reached with Assert (should be desugared by the caller)")
	}
}
