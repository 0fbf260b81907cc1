package hast

import "movehlir/internal/tast"

// BinOp/UnaryOp are carried through unchanged from the T-AST.
type BinOp = tast.BinOp
type UnaryOp = tast.UnaryOp

// UnitCase records why a Unit node exists: Implicit is
// synthesized by the pass itself, Trailing comes from a trailing `;` that
// survived the trailing-unit policy, FromUser is an explicit `()` written
// by the programmer.
type UnitCase int

const (
	UnitImplicit UnitCase = iota
	UnitTrailing
	UnitFromUser
)

// MoveAnnotation records why a Move node was produced.
type MoveAnnotation = tast.MoveOrCopyAnnotation

const (
	FromUser          = tast.FromUser
	InferredNoCopy    = tast.InferredNoCopy
	InferredLastUsage = tast.InferredLastUsage
)

// Builtin_ mirrors tast.Builtin_ minus Assert, which is always fully
// desugared away by the time H-AST exists and therefore
// has no H-AST representation, and minus Freeze, which lowers to an
// EFreeze expression instead of a builtin call.
type Builtin_ interface{ isBuiltin() }

type (
	BMoveTo       struct{ BaseTy BaseType }
	BMoveFrom     struct{ BaseTy BaseType }
	BBorrowGlobal struct {
		Mut    bool
		BaseTy BaseType
	}
	BExists struct{ BaseTy BaseType }
)

func (BMoveTo) isBuiltin()       {}
func (BMoveFrom) isBuiltin()     {}
func (BBorrowGlobal) isBuiltin() {}
func (BExists) isBuiltin()       {}

// Exp is one H-AST expression: a type plus an UnannotatedExp_. Exp values
// are immutable once constructed; the lowering pass builds new ones rather
// than mutating in place.
type Exp struct {
	Ty Type
	Un UnannotatedExp_
}

// UnannotatedExp_ is the closed set of H-AST expression shapes.
type UnannotatedExp_ interface{ isExp() }

type (
	EValue  struct{ V tast.Value_ }
	EUnit   struct{ Case UnitCase }
	EMove   struct {
		Annotation MoveAnnotation
		V          Var
	}
	ECopy struct {
		FromUser bool
		V        Var
	}
	EConstant struct{ Name tast.ConstantName }

	EModuleCall struct {
		Module tast.ModuleIdent
		Name   tast.FunctionName
		TyArgs []BaseType
		Args   []*Exp
	}
	EBuiltin struct {
		Fn   Builtin_
		Args []*Exp
	}
	EVector struct {
		ElemTy BaseType
		Elems  []*Exp
	}
	EPack struct {
		Module tast.ModuleIdent
		Struct tast.StructName
		TyArgs []BaseType
		// Fields are always in declared order at the H-AST level.
		Fields []PackField
	}
	EDereference struct{ E *Exp }
	EUnaryExp    struct {
		Op UnaryOp
		E  *Exp
	}
	EBinopExp struct {
		LHS *Exp
		Op  BinOp
		RHS *Exp
	}
	EBorrow struct {
		Mut   bool
		Base  *Exp
		Field string
	}
	EBorrowLocal struct {
		Mut bool
		V   Var
	}
	ECast struct {
		E  *Exp
		Ty BaseType
	}
	EFreeze struct{ E *Exp }
	// EMultiple is a fully-evaluated tuple of values, used for multi-value
	// returns and binder references.
	EMultiple struct{ Elems []*Exp }
	EExpList  struct{ Items []*Exp }

	ESpec            struct{ ID string }
	EUnresolvedError struct{}
)

func (EValue) isExp()           {}
func (EUnit) isExp()            {}
func (EMove) isExp()            {}
func (ECopy) isExp()            {}
func (EConstant) isExp()        {}
func (EModuleCall) isExp()      {}
func (EBuiltin) isExp()         {}
func (EVector) isExp()          {}
func (EPack) isExp()            {}
func (EDereference) isExp()     {}
func (EUnaryExp) isExp()        {}
func (EBinopExp) isExp()        {}
func (EBorrow) isExp()          {}
func (EBorrowLocal) isExp()     {}
func (ECast) isExp()            {}
func (EFreeze) isExp()          {}
func (EMultiple) isExp()        {}
func (EExpList) isExp()         {}
func (ESpec) isExp()            {}
func (EUnresolvedError) isExp() {}

// PackField is one field initializer, always in the struct's declared
// order by the time it reaches H-AST.
type PackField struct {
	Field string
	Ty    BaseType
	E     *Exp
}
