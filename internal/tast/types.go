package tast

// ModuleIdent identifies a module by address+name; the lowering pass treats
// it as an opaque, comparable key into struct-field-index maps and import
// tables.
type ModuleIdent struct {
	Address string
	Name    string
}

// StructName and FunctionName are interned symbols, kept as plain strings
// since the pass never needs more than equality and display.
type StructName string
type FunctionName string
type ConstantName string

// BaseType is the innermost type layer: primitives, struct applications,
// and type parameters. An unresolved Var or an Apply with no resolved
// module is an ICE at lowering time — type inference must have already
// run.
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

	// TyApply is a struct or type-parameter application: Module/Name are
	// empty for a type parameter (TyParam is used instead in that case).
	TyApply struct {
		Module   ModuleIdent
		Name     StructName
		TyArgs   []BaseType
	}

	// TyParam is a reference to a generic type parameter by index.
	TyParam struct {
		Name  string
		Index int
	}

	// TyVar is an unresolved type variable. Its presence at lowering time
	// is an ICE: type inference is assumed complete by this point.
	TyVar struct{ ID int }

	// TyUnresolvedApply denotes an Apply whose module could not be
	// resolved; also an ICE if reached.
	TyUnresolvedApply struct{ Name StructName }
)

func (TyU8) isBaseType()                {}
func (TyU16) isBaseType()               {}
func (TyU32) isBaseType()               {}
func (TyU64) isBaseType()               {}
func (TyU128) isBaseType()              {}
func (TyU256) isBaseType()              {}
func (TyBool) isBaseType()              {}
func (TyAddress) isBaseType()           {}
func (TySigner) isBaseType()            {}
func (TyApply) isBaseType()             {}
func (TyParam) isBaseType()             {}
func (TyVar) isBaseType()               {}
func (TyUnresolvedApply) isBaseType()   {}

// SingleType adds reference-ness on top of a BaseType.
type SingleType interface{ isSingleType() }

type (
	STBase SingleTypeBase
	STRef  struct {
		Mut   bool
		Inner BaseType
	}
)

// SingleTypeBase wraps a bare (non-reference) BaseType as a SingleType.
type SingleTypeBase struct{ Base BaseType }

func (STBase) isSingleType() {}
func (STRef) isSingleType()  {}

// Type is the outermost layer: unit, a single value, or a fixed-arity
// tuple (used for multi-value returns and expression lists).
type Type interface{ isType() }

type (
	TUnit     struct{}
	TSingle   struct{ Ty SingleType }
	TMultiple struct{ Tys []SingleType }
)

func (TUnit) isType()     {}
func (TSingle) isType()   {}
func (TMultiple) isType() {}
