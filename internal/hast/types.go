package hast

import "movehlir/internal/tast"

// BaseType mirrors tast.BaseType's primitive/struct/type-param shapes; the
// lowering pass only ever translates these, it never invents new ones.
type BaseType interface{ isBaseType() }

type (
	TyU8      struct{}
	TyU16     struct{}
	TyU32     struct{}
	TyU64     struct{}
	TyU128    struct{}
	TyU256    struct{}
	TyBool    struct{}
	TyAddress struct{}
	TySigner  struct{}
	TyApply   struct {
		Module tast.ModuleIdent
		Name   tast.StructName
		TyArgs []BaseType
	}
	TyParam struct {
		Name  string
		Index int
	}
)

func (TyU8) isBaseType()      {}
func (TyU16) isBaseType()     {}
func (TyU32) isBaseType()     {}
func (TyU64) isBaseType()     {}
func (TyU128) isBaseType()    {}
func (TyU256) isBaseType()    {}
func (TyBool) isBaseType()    {}
func (TyAddress) isBaseType() {}
func (TySigner) isBaseType()  {}
func (TyApply) isBaseType()   {}
func (TyParam) isBaseType()   {}

// SingleType adds reference-ness.
type SingleType interface{ isSingleType() }

type (
	STBase struct{ Base BaseType }
	STRef  struct {
		Mut   bool
		Inner BaseType
	}
)

func (STBase) isSingleType() {}
func (STRef) isSingleType()  {}

// Type is Unit, a single value, or a fixed-arity tuple.
type Type interface{ isType() }

type (
	TUnit     struct{}
	TSingle   struct{ Ty SingleType }
	TMultiple struct{ Tys []SingleType }
)

func (TUnit) isType()     {}
func (TSingle) isType()   {}
func (TMultiple) isType() {}

// TypeAtIndex returns the SingleType of the i-th component of t, treating
// TUnit as having no components and TSingle as having exactly one. Used by
// makeAssignments to look up each lvalue's expected type.
func TypeAtIndex(t Type, i int) SingleType {
	switch tt := t.(type) {
	case TSingle:
		if i != 0 {
			panic("hast: ICE type_at_index out of range for Single")
		}
		return tt.Ty
	case TMultiple:
		return tt.Tys[i]
	default:
		panic("hast: ICE type_at_index on Unit")
	}
}

// Arity returns the number of SingleType components t carries.
func Arity(t Type) int {
	switch tt := t.(type) {
	case TUnit:
		return 0
	case TSingle:
		return 1
	case TMultiple:
		return len(tt.Tys)
	default:
		panic("hast: ICE unknown Type")
	}
}

// FreezeSingle demotes a &mut reference to &, passing everything else
// through unchanged.
func FreezeSingle(s SingleType) SingleType {
	if r, ok := s.(STRef); ok && r.Mut {
		return STRef{Mut: false, Inner: r.Inner}
	}
	return s
}

// FreezeType applies FreezeSingle to a Type's single component; Unit and
// Multiple pass through unchanged, matching freeze_ty's deliberate
// asymmetry in the original (only Single ever needs top-level freezing
// since Multiple freezing happens component-wise on the bound binders).
func FreezeType(t Type) Type {
	if single, ok := t.(TSingle); ok {
		return TSingle{Ty: FreezeSingle(single.Ty)}
	}
	return t
}
