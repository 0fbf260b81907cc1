package hast

import "movehlir/internal/tast"

// Block is an ordered sequence of statements.
type Block []Statement

// Statement is one H-AST statement: a command, or one of the three
// control-flow constructs that survive lowering as block-structured
// (non-SSA) control flow.
type Statement interface{ isStatement() }

type (
	SCommand struct{ C Command }
	SIfElse  struct {
		Cond     *Exp
		IfBlock  Block
		ElseBlock Block
	}
	SWhile struct {
		Name  Var
		Cond  Block
		CondExp *Exp
		Body  Block
	}
	SLoop struct {
		Name     Var
		HasBreak bool
		Body     Block
	}
)

func (SCommand) isStatement() {}
func (SIfElse) isStatement()  {}
func (SWhile) isStatement()   {}
func (SLoop) isStatement()    {}

// Command is a statement-only operation: the only place control-flow
// sinks (return/abort/break/continue) are legal.
type Command interface{ isCommand() }

type (
	CAssign struct {
		LValues []LValue
		E       *Exp
	}
	CMutate struct {
		LHS *Exp
		RHS *Exp
	}
	CReturn struct {
		FromUser bool
		E        *Exp
	}
	CAbort    struct{ E *Exp }
	CBreak    struct{ Name Var }
	CContinue struct{ Name Var }
	// CIgnoreAndPop discards a value-producing expression's result in
	// statement position; PopNum records how many stack slots (0 for a
	// non-trivial Unit, 1 for Single, len(Tys) for Multiple) a bytecode
	// backend would need to pop — the lowering pass computes it from the
	// expression's type but never interprets it itself.
	CIgnoreAndPop struct {
		PopNum int
		E      *Exp
	}
)

func (CAssign) isCommand()      {}
func (CMutate) isCommand()      {}
func (CReturn) isCommand()      {}
func (CAbort) isCommand()       {}
func (CBreak) isCommand()       {}
func (CContinue) isCommand()    {}
func (CIgnoreAndPop) isCommand() {}

// LValue is an H-AST assignment target.
type LValue interface{ isLValue() }

type (
	LIgnore struct{}
	LVar    struct {
		V  Var
		Ty SingleType
	}
	// LUnpack destructures a struct value directly (as opposed to
	// LBorrowUnpack, which does not exist at this level: borrow-unpack
	// patterns are fully expanded by the lowering pass into a temp plus a
	// Borrow per field, so by the time an LValue reaches H-AST, any
	// remaining Unpack always binds by value).
	LUnpack struct {
		Module tast.ModuleIdent
		Struct tast.StructName
		Fields []UnpackField
	}
)

func (LIgnore) isLValue() {}
func (LVar) isLValue()    {}
func (LUnpack) isLValue() {}

// UnpackField is one field pattern inside an LUnpack, always in the
// struct's declared field order.
type UnpackField struct {
	Field string
	Ty    BaseType
	LV    LValue
}
