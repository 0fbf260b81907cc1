package lower

import (
	"reflect"

	"movehlir/internal/hast"
)

type freezeKind int

const (
	freezeNotNeeded freezeKind = iota
	freezePointKind
	freezeSubKind
)

type freezeDecision struct {
	Kind freezeKind
	Bits []bool // only meaningful for freezeSubKind
}

// needsFreezeSingle is true only for the exact (&mut T, &T) pattern — not
// a general reference-subtyping check.
func needsFreezeSingle(actual, expected hast.SingleType) bool {
	a, ok := actual.(hast.STRef)
	if !ok || !a.Mut {
		return false
	}
	e, ok := expected.(hast.STRef)
	if !ok || e.Mut {
		return false
	}
	return reflect.DeepEqual(a.Inner, e.Inner)
}

// needsFreeze decides whether/how actual must be coerced to expected.
func needsFreeze(ctx *Context, actual, expected hast.Type) freezeDecision {
	switch a := actual.(type) {
	case hast.TUnit:
		if _, ok := expected.(hast.TUnit); ok {
			return freezeDecision{Kind: freezeNotNeeded}
		}
	case hast.TSingle:
		if e, ok := expected.(hast.TSingle); ok {
			if needsFreezeSingle(a.Ty, e.Ty) {
				return freezeDecision{Kind: freezePointKind}
			}
			return freezeDecision{Kind: freezeNotNeeded}
		}
	case hast.TMultiple:
		if e, ok := expected.(hast.TMultiple); ok {
			if len(a.Tys) != len(e.Tys) {
				panic("lower: ICE needs_freeze arity mismatch")
			}
			bits := make([]bool, len(a.Tys))
			any := false
			for i := range a.Tys {
				if needsFreezeSingle(a.Tys[i], e.Tys[i]) {
					bits[i] = true
					any = true
				}
			}
			if any {
				return freezeDecision{Kind: freezeSubKind, Bits: bits}
			}
			return freezeDecision{Kind: freezeNotNeeded}
		}
	}
	if !ctx.Env.HasErrors() {
		panic("lower: ICE needs_freeze type mismatch with no prior errors")
	}
	return freezeDecision{Kind: freezeNotNeeded}
}

func freezePoint(e *hast.Exp) *hast.Exp {
	return &hast.Exp{Ty: hast.FreezeType(e.Ty), Un: hast.EFreeze{E: e}}
}

// freeze applies needsFreeze's decision to e, appending any hoisted
// statements into block.
func freeze(ctx *Context, block *hast.Block, expected hast.Type, e *hast.Exp) *hast.Exp {
	decision := needsFreeze(ctx, e.Ty, expected)
	switch decision.Kind {
	case freezeNotNeeded:
		return e
	case freezePointKind:
		return freezePoint(e)
	case freezeSubKind:
		bound := bindExp(ctx, block, e)
		multiple, ok := bound.Un.(hast.EMultiple)
		if !ok {
			panic("lower: ICE needs_freeze sub-freeze on non-Multiple binder")
		}
		elems := make([]*hast.Exp, len(multiple.Elems))
		tys := make([]hast.SingleType, len(multiple.Elems))
		for i, el := range multiple.Elems {
			if decision.Bits[i] {
				elems[i] = freezePoint(el)
			} else {
				elems[i] = el
			}
			tys[i] = expectedTypes(elems[i].Ty)[0]
		}
		return &hast.Exp{Ty: hast.TMultiple{Tys: tys}, Un: hast.EMultiple{Elems: elems}}
	default:
		panic("lower: ICE unknown freeze decision")
	}
}

// maybeFreeze is freeze's nil-safe wrapper: an unreachable expression or
// a caller with no expected type passes through untouched.
func maybeFreeze(ctx *Context, block *hast.Block, expected *hast.Type, e *hast.Exp) *hast.Exp {
	if e == nil || expected == nil {
		return e
	}
	return freeze(ctx, block, *expected, e)
}
