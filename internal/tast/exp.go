package tast

import "movehlir/internal/diag"

// BinOp names a binary operator; the lowering pass treats all of these
// uniformly except And/Or, which get short-circuit expansion.
type BinOp string

const (
	OpAdd BinOp = "+"
	OpSub BinOp = "-"
	OpMul BinOp = "*"
	OpDiv BinOp = "/"
	OpMod BinOp = "%"
	OpEq  BinOp = "=="
	OpNeq BinOp = "!="
	OpLt  BinOp = "<"
	OpGt  BinOp = ">"
	OpLe  BinOp = "<="
	OpGe  BinOp = ">="
	OpAnd BinOp = "&&"
	OpOr  BinOp = "||"
	OpXor BinOp = "^"
	OpBAnd BinOp = "&"
	OpBOr  BinOp = "|"
	OpShl  BinOp = "<<"
	OpShr  BinOp = ">>"
)

// UnaryOp names a unary operator.
type UnaryOp string

const (
	OpNot UnaryOp = "!"
)

// MoveOrCopyAnnotation records why a Move/Copy node was produced, mirroring
// the annotation the type checker leaves so the lowering pass can tell a
// user-written `move`/`copy` from one it must infer itself.
type MoveOrCopyAnnotation int

const (
	FromUser MoveOrCopyAnnotation = iota
	InferredNoCopy
	InferredLastUsage
)

// Value_ is a literal value.
type Value_ interface{ isValue() }

type (
	VAddress    struct{ Addr string }
	VU8         struct{ V uint8 }
	VU16        struct{ V uint16 }
	VU32        struct{ V uint32 }
	VU64        struct{ V uint64 }
	VU128       struct{ V string } // decimal text; too wide for a Go int
	VU256       struct{ V string }
	VBool       struct{ V bool }
	VBytearray  struct{ V []byte }
	VInferredNum struct{ V string } // ICE if reached during lowering
)

func (VAddress) isValue()     {}
func (VU8) isValue()          {}
func (VU16) isValue()         {}
func (VU32) isValue()         {}
func (VU64) isValue()         {}
func (VU128) isValue()        {}
func (VU256) isValue()        {}
func (VBool) isValue()        {}
func (VBytearray) isValue()   {}
func (VInferredNum) isValue() {}

// Builtin_ names a builtin function call form.
type Builtin_ interface{ isBuiltin() }

type (
	BMoveTo      struct{ BaseTy BaseType }
	BMoveFrom    struct{ BaseTy BaseType }
	BBorrowGlobal struct {
		Mut    bool
		BaseTy BaseType
	}
	BExists struct{ BaseTy BaseType }
	BFreeze struct{ BaseTy BaseType }
	// BAssert's BoolFirst field distinguishes the two surface forms: "bool-first"
	// (true) vs "abort-on-false" (false); the
	// abort-on-false form defers lowering its code argument so it is only
	// ever evaluated on the false path.
	BAssert struct{ BoolFirst bool }
)

func (BMoveTo) isBuiltin()       {}
func (BMoveFrom) isBuiltin()     {}
func (BBorrowGlobal) isBuiltin() {}
func (BExists) isBuiltin()       {}
func (BFreeze) isBuiltin()       {}
func (BAssert) isBuiltin()       {}

// UnitCase records why a Unit node exists, carried through from the T-AST
// so the lowering pass can distinguish a user-written `()` from a bare
// trailing `;` in a sequence.
type UnitCase int

const (
	UnitImplicit UnitCase = iota
	UnitTrailing
	UnitFromUser
)

// Exp is one typed expression node: a type plus an UnannotatedExp_.
type Exp struct {
	Ty  Type
	Pos diag.Position
	Un  UnannotatedExp_
}

// UnannotatedExp_ is the closed set of T-AST expression shapes the
// lowering pass matches on.
type UnannotatedExp_ interface{ isExp() }

type (
	EValue struct{ V Value_ }
	EUnit  struct{ Trailing bool }

	EMove struct {
		Annotation MoveOrCopyAnnotation
		V          Var
	}
	ECopy struct {
		FromUser bool
		V        Var
	}
	EConstant struct {
		Module ModuleIdent
		Name   ConstantName
	}
	EUse struct{ V Var } // ICE if reached: name resolution should expand these away

	EModuleCall struct {
		Module ModuleIdent
		Name   FunctionName
		TyArgs []BaseType
		// ParamTypes is the resolved callee's parameter-type list, carried
		// over from type-checking since this pass does no name resolution
		// of its own and cannot look the callee back up.
		ParamTypes []SingleType
		Args       *Exp // an ExpList, a single bare argument, or Unit
	}
	EBuiltin struct {
		Fn   Builtin_
		Args *Exp
	}
	EVector struct {
		ElemTy BaseType
		Elems  []*Exp
	}
	EPack struct {
		Module ModuleIdent
		Struct StructName
		TyArgs []BaseType
		// Fields are given in source (textual) order; each entry carries
		// the field's declared index so the lowering pass can detect and
		// correct for reordering.
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
		// OpType is the operand type shared by both sides (e.g. u64 for
		// `a < b`, even though the binop's own result type is bool); the
		// RPN lowering uses it as the expected type when lowering each
		// leaf.
		OpType Type
		RHS    *Exp
	}
	EBorrow struct {
		Mut    bool
		Base   *Exp
		Field  string
	}
	ETempBorrow struct {
		Mut  bool
		Base *Exp
	}
	EBorrowLocal struct {
		Mut bool
		V   Var
	}
	ECast struct {
		E  *Exp
		Ty BaseType
	}
	EAnnotate struct {
		E  *Exp
		Ty Type
	}
	EExpList struct{ Items []*Exp }

	EIfElse struct {
		Cond *Exp
		If   *Exp
		Else *Exp
	}
	EWhile struct {
		Name Var
		Cond *Exp
		Body *Exp
	}
	ELoop struct {
		Name     Var
		Body     *Exp
		HasBreak bool
	}
	EBlock struct{ Seq []SequenceItem }

	// Statement-only forms: reachable in tail/value
	// position only via delegation to statement().
	EReturn   struct{ E *Exp }
	EAbort    struct{ E *Exp }
	EGive     struct {
		Name Var
		E    *Exp
	}
	EContinue struct{ Name Var }
	EAssign   struct {
		LValues []LValue
		RHS     *Exp
	}
	EMutate struct {
		LHS *Exp
		RHS *Exp
	}

	ESpec           struct{ ID string }
	EUnresolvedError struct{}
)

func (EValue) isExp()           {}
func (EUnit) isExp()            {}
func (EMove) isExp()            {}
func (ECopy) isExp()            {}
func (EConstant) isExp()        {}
func (EUse) isExp()             {}
func (EModuleCall) isExp()      {}
func (EBuiltin) isExp()         {}
func (EVector) isExp()          {}
func (EPack) isExp()            {}
func (EDereference) isExp()     {}
func (EUnaryExp) isExp()        {}
func (EBinopExp) isExp()        {}
func (EBorrow) isExp()          {}
func (ETempBorrow) isExp()      {}
func (EBorrowLocal) isExp()     {}
func (ECast) isExp()            {}
func (EAnnotate) isExp()        {}
func (EExpList) isExp()         {}
func (EIfElse) isExp()          {}
func (EWhile) isExp()           {}
func (ELoop) isExp()            {}
func (EBlock) isExp()           {}
func (EReturn) isExp()          {}
func (EAbort) isExp()           {}
func (EGive) isExp()            {}
func (EContinue) isExp()        {}
func (EAssign) isExp()          {}
func (EMutate) isExp()          {}
func (ESpec) isExp()            {}
func (EUnresolvedError) isExp() {}

// PackField is one field initializer inside a struct-pack expression,
// carrying both its declared (struct-definition) index and its source
// (textual) position among the pack's arguments.
type PackField struct {
	DeclIndex int
	ExpIndex  int
	Field     string
	Ty        BaseType
	E         *Exp
}

// SequenceItem is one element of a block's statement list.
type SequenceItem interface{ isSeqItem() }

type (
	SeqDeclare struct{ Binds []LValue }
	SeqBind    struct {
		Binds []LValue
		Ty    Type
		E     *Exp
	}
	SeqExp struct{ E *Exp }
)

func (SeqDeclare) isSeqItem() {}
func (SeqBind) isSeqItem()    {}
func (SeqExp) isSeqItem()     {}

// LValue is a T-AST assignment target.
type LValue interface{ isLValue() }

type (
	LIgnore struct{}
	LVar    struct {
		V  Var
		Ty SingleType
	}
	LUnpack struct {
		Module ModuleIdent
		Struct StructName
		TyArgs []BaseType
		Fields []UnpackField
	}
	LBorrowUnpack struct {
		Mut    bool
		Module ModuleIdent
		Struct StructName
		TyArgs []BaseType
		Fields []UnpackField
	}
)

func (LIgnore) isLValue()       {}
func (LVar) isLValue()          {}
func (LUnpack) isLValue()       {}
func (LBorrowUnpack) isLValue() {}

// UnpackField is one field pattern inside an Unpack/BorrowUnpack lvalue.
type UnpackField struct {
	Field string
	Ty    BaseType
	LV    LValue
}
