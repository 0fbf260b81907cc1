// Package tast defines the typed abstract syntax tree the lowering pass
// consumes: a fully resolved, fully type-checked tree in which every name
// has been bound and every type has been inferred. Name resolution and type
// inference themselves are out of scope; this package only carries their
// results.
package tast

import "movehlir/internal/diag"

// Var is a T-AST variable: a name, a scope-depth id, and a color used to
// disambiguate shadowed bindings that share a name and depth. Two Vars are
// the same binding iff all three fields are equal.
type Var struct {
	Name  string
	ID    int
	Color int
	Pos   diag.Position
}
