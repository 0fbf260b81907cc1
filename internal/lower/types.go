package lower

import (
	"movehlir/internal/hast"
	"movehlir/internal/tast"
)

// baseType translates a T-AST base type. An unresolved type variable or an
// unresolved module application is an ICE: by the time the T-AST reaches
// this pass, type inference must already have run to completion.
func baseType(bt tast.BaseType) hast.BaseType {
	switch t := bt.(type) {
	case tast.TyU8:
		return hast.TyU8{}
	case tast.TyU16:
		return hast.TyU16{}
	case tast.TyU32:
		return hast.TyU32{}
	case tast.TyU64:
		return hast.TyU64{}
	case tast.TyU128:
		return hast.TyU128{}
	case tast.TyU256:
		return hast.TyU256{}
	case tast.TyBool:
		return hast.TyBool{}
	case tast.TyAddress:
		return hast.TyAddress{}
	case tast.TySigner:
		return hast.TySigner{}
	case tast.TyApply:
		args := make([]hast.BaseType, len(t.TyArgs))
		for i, a := range t.TyArgs {
			args[i] = baseType(a)
		}
		return hast.TyApply{Module: t.Module, Name: t.Name, TyArgs: args}
	case tast.TyParam:
		return hast.TyParam{Name: t.Name, Index: t.Index}
	case tast.TyVar:
		panic("lower: ICE unresolved type variable reached lowering")
	case tast.TyUnresolvedApply:
		panic("lower: ICE unresolved module application reached lowering: " + string(t.Name))
	default:
		panic("lower: ICE unknown BaseType")
	}
}

func baseTypes(bts []tast.BaseType) []hast.BaseType {
	out := make([]hast.BaseType, len(bts))
	for i, t := range bts {
		out[i] = baseType(t)
	}
	return out
}

func singleType(st tast.SingleType) hast.SingleType {
	switch t := st.(type) {
	case tast.STBase:
		return hast.STBase{Base: baseType(t.Base)}
	case tast.STRef:
		return hast.STRef{Mut: t.Mut, Inner: baseType(t.Inner)}
	default:
		panic("lower: ICE unknown SingleType")
	}
}

func singleTypes(sts []tast.SingleType) []hast.SingleType {
	out := make([]hast.SingleType, len(sts))
	for i, t := range sts {
		out[i] = singleType(t)
	}
	return out
}

func type_(ty tast.Type) hast.Type {
	switch t := ty.(type) {
	case tast.TUnit:
		return hast.TUnit{}
	case tast.TSingle:
		return hast.TSingle{Ty: singleType(t.Ty)}
	case tast.TMultiple:
		return hast.TMultiple{Tys: singleTypes(t.Tys)}
	default:
		panic("lower: ICE unknown Type")
	}
}

// expectedTypes decomposes a tuple-shaped Type into its per-component
// SingleTypes, used when lowering Assign's lvalue list and a ModuleCall's
// parameter types against its argument list.
func expectedTypes(ty hast.Type) []hast.SingleType {
	switch t := ty.(type) {
	case hast.TUnit:
		return nil
	case hast.TSingle:
		return []hast.SingleType{t.Ty}
	case hast.TMultiple:
		return t.Tys
	default:
		panic("lower: ICE unknown Type in expectedTypes")
	}
}

// typeFromSingles is the inverse of expectedTypes: Unit for an empty list,
// Single for one element, Multiple otherwise.
func typeFromSingles(sts []hast.SingleType) hast.Type {
	switch len(sts) {
	case 0:
		return hast.TUnit{}
	case 1:
		return hast.TSingle{Ty: sts[0]}
	default:
		return hast.TMultiple{Tys: sts}
	}
}

// structName extracts the struct name a reference/base type points at, if
// any, used by Borrow lowering to find which struct's used_fields set to
// update.
func structName(ty hast.Type) (tast.StructName, bool) {
	single, ok := ty.(hast.TSingle)
	if !ok {
		return "", false
	}
	var base hast.BaseType
	switch s := single.Ty.(type) {
	case hast.STBase:
		base = s.Base
	case hast.STRef:
		base = s.Inner
	default:
		return "", false
	}
	apply, ok := base.(hast.TyApply)
	if !ok {
		return "", false
	}
	return apply.Name, true
}

// isNumericCastTarget reports whether bt is one of the integer types a
// Cast node may target.
func isNumericCastTarget(bt hast.BaseType) bool {
	switch bt.(type) {
	case hast.TyU8, hast.TyU16, hast.TyU32, hast.TyU64, hast.TyU128, hast.TyU256:
		return true
	default:
		return false
	}
}
