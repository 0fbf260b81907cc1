package fixture

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// This file is the participle struct-tag grammar for the fixture notation,
// built the same way as grammar/shared.go: a field per alternative, tried in
// declaration order, each disambiguated by its own leading keyword token so
// the PEG-style matcher rarely has to backtrack past more than one token. The
// exception is the pair of `let` sequence items (gDeclare and gBind), which
// share everything up to the closing "]" and differ only in the token after
// it; parse.go gives the parser enough lookahead to back out of gDeclare.

type gProgram struct {
	Pos     lexer.Position
	Modules []*gModule `@@*`
	Scripts []*gScript `@@*`
}

type gModule struct {
	Pos       lexer.Position
	Source    bool          `"module" [ @"source" ]`
	Address   string        `@Ident "::"`
	Name      string        `@Ident "{"`
	Structs   []*gStruct    `@@*`
	Constants []*gConstant  `@@*`
	Functions []*gFunction  `@@* "}"`
}

type gScript struct {
	Pos       lexer.Position
	Constants []*gConstant `"script" "{" @@*`
	Main      *gFunction   `@@ "}"`
}

// A native struct is written with an empty body: "struct native Foo {}".
type gStruct struct {
	Pos        lexer.Position
	Native     bool      `"struct" [ @"native" ]`
	Name       string    `@Ident`
	Abilities  []string  `[ "has" @Ident { "," @Ident } ]`
	TypeParams []string  `[ "<" @Ident { "," @Ident } ">" ]`
	Fields     []*gField `"{" @@* "}"`
}

type gField struct {
	Name string    `@Ident ":"`
	Ty   *gBaseTy  `@@ [ "," ]`
}

type gConstant struct {
	Pos  lexer.Position
	Name string `"const" @Ident ":"`
	Ty   *gType `@@ "="`
	E    *gExpr `@@ ";"`
}

type gFunction struct {
	Pos        lexer.Position
	Vis        string         `[ @("pub"|"friend"|"package") ]`
	Entry      bool           `[ @"entry" ]`
	Name       string         `"fun" @Ident`
	TypeParams []string       `[ "<" @Ident { "," @Ident } ">" ]`
	Params     []*gParam      `"(" [ @@ { "," @@ } ] ")"`
	Ret        *gType         `[ ":" @@ ]`
	Native     bool           `( @"native" ";"`
	Body       *gBlock        `| @@ )`
}

type gParam struct {
	Name string    `@Ident ":"`
	Ty   *gSingle  `@@`
}

// --- types ---

type gBaseTy struct {
	Pos   lexer.Position
	Prim  string     `  @("u8"|"u16"|"u32"|"u64"|"u128"|"u256"|"bool"|"address"|"signer")`
	Param *gTyParam  `| @@`
	Apply *gTyApply  `| @@`
}

type gTyParam struct {
	Name  string `"%" @Ident "#"`
	Index string `@Number`
}

type gTyApply struct {
	Address string      `@Ident "::"`
	Module  string       `@Ident "::"`
	Name    string       `@Ident`
	Args    []*gBaseTy   `[ "<" @@ { "," @@ } ">" ]`
}

type gRef struct {
	Mut   bool     `"&" [ @"mut" ]`
	Inner *gBaseTy `@@`
}

type gSingle struct {
	Ref  *gRef    `  @@`
	Base *gBaseTy `| @@`
}

type gTuple struct {
	Items []*gSingle `"(" @@ { "," @@ } ")"`
}

type gType struct {
	Unit   string   `  @"unit"`
	Tuple  *gTuple  `| @@`
	Single *gSingle `| @@`
}

// --- variables ---

type gVar struct {
	Name  string `@Ident "#"`
	ID    string `@Number "#"`
	Color string `@Number`
}

// --- literals ---

type gLit struct {
	Bool  string `  @("true"|"false")`
	Addr  string `| @Address`
	Bytes string `| @Bytearray`
	Num   string `| @Number`
}

// --- expressions ---

// gExpr is tried in declaration order; every paren-led alternative begins
// with a distinct keyword right after "(", so only one ever matches past the
// second token. The one shared shape is gUnaryForm: "(deref e)" and "(not e)"
// both land in Deref, and the builder tells them apart by Kw. The optional
// trailing `:: type` annotation applies to whichever alternative matched.
type gExpr struct {
	Pos     lexer.Position
	Lit     *gLit         `( @@`
	Unit    string        `| @("unit"|"unit_trailing")`
	Var     *gVarExpr     `| @@`
	Const   *gConstRef    `| @@`
	Builtin *gBuiltin     `| @@`
	Assert  *gAssert      `| @@`
	Call    *gCall        `| @@`
	Vector  *gVector      `| @@`
	Pack    *gPack        `| @@`
	Deref   *gUnaryForm   `| @@`
	Not     *gUnaryForm   `| @@`
	Binop   *gBinop       `| @@`
	Borrow  *gBorrow      `| @@`
	BorrowT *gBorrowTmp   `| @@`
	BorrowL *gBorrowLocal `| @@`
	Cast    *gCast        `| @@`
	Annot   *gAnnotate    `| @@`
	Tuple   *gTupleExpr   `| @@`
	If      *gIf          `| @@`
	While   *gWhile       `| @@`
	Loop    *gLoop        `| @@`
	Give    *gGive        `| @@`
	Cont    *gContinue    `| @@`
	Ret     *gReturn      `| @@`
	Abort   *gAbort       `| @@`
	Assign  *gAssign      `| @@`
	Mutate  *gMutate      `| @@`
	Block   *gBlock       `| @@ )`
	TyAnnot *gType        `[ "::" @@ ]`
}

type gVarExpr struct {
	Kind string `"(" @("move"|"copy")`
	V    *gVar  `@@ ")"`
}

type gConstRef struct {
	Address string `"(" "const" @Ident "::"`
	Module  string `@Ident "::"`
	Name    string `@Ident ")"`
}

type gBuiltin struct {
	Name string     `"(" "builtin" @("move_to"|"move_from"|"borrow_global_mut"|"borrow_global"|"exists"|"freeze")`
	Ty   *gBaseTy   `@@`
	Args []*gExpr   `"(" [ @@ { "," @@ } ] ")" ")"`
}

type gAssert struct {
	Kind string `"(" "assert" @("bool_first"|"abort_false")`
	Cond *gExpr `@@`
	Code *gExpr `@@ ")"`
}

type gCall struct {
	Address string      `"(" "call" @Ident "::"`
	Module  string      `@Ident "::"`
	Name    string      `@Ident`
	TyArgs  []*gBaseTy  `[ "<" @@ { "," @@ } ">" ]`
	Params  []*gSingle  `"params" "(" [ @@ { "," @@ } ] ")"`
	Args    []*gExpr    `"(" [ @@ { "," @@ } ] ")" ")"`
}

type gVector struct {
	ElemTy *gBaseTy `"(" "vector" "<" @@ ">"`
	Elems  []*gExpr `"[" [ @@ { "," @@ } ] "]" ")"`
}

type gPack struct {
	Address string          `"(" "pack" @Ident "::"`
	Module  string          `@Ident "::"`
	Struct  string          `@Ident`
	TyArgs  []*gBaseTy      `[ "<" @@ { "," @@ } ">" ]`
	Fields  []*gPackField   `"{" [ @@ { "," @@ } ] "}" ")"`
}

type gPackField struct {
	DeclIndex string   `@Number "."`
	Field     string   `@Ident "="`
	Ty        *gBaseTy `@@`
	E         *gExpr   `@@`
}

type gUnaryForm struct {
	Kw string `"(" @("deref"|"not")`
	E  *gExpr `@@ ")"`
}

type gBinop struct {
	Op     string `"(" "binop" @("+"|"-"|"*"|"/"|"%"|"=="|"!="|"<="|">="|"<"|">"|"&&"|"||"|"^"|"&"|"|"|"<<"|">>")`
	OpType *gType `@@`
	LHS    *gExpr `@@`
	RHS    *gExpr `@@ ")"`
}

type gBorrow struct {
	Mut   bool   `"(" "borrow" [ @"mut" ]`
	Base  *gExpr `@@ "."`
	Field string `@Ident ")"`
}

type gBorrowTmp struct {
	Mut  bool   `"(" "borrow_tmp" [ @"mut" ]`
	Base *gExpr `@@ ")"`
}

type gBorrowLocal struct {
	Mut bool  `"(" "borrow_local" [ @"mut" ]`
	V   *gVar `@@ ")"`
}

type gCast struct {
	E  *gExpr   `"(" "cast" @@`
	Ty *gBaseTy `@@ ")"`
}

type gAnnotate struct {
	E  *gExpr `"(" "annotate" @@ ":"`
	Ty *gType `@@ ")"`
}

type gTupleExpr struct {
	Items []*gExpr `"(" "tuple" @@* ")"`
}

type gIf struct {
	Cond *gExpr `"(" "if" @@`
	Then *gExpr `@@`
	Else *gExpr `@@ ")"`
}

type gWhile struct {
	Name *gVar  `"(" "while" @@`
	Cond *gExpr `@@`
	Body *gExpr `@@ ")"`
}

type gLoop struct {
	Name     *gVar  `"(" "loop" @@`
	HasBreak bool   `[ @"break" ]`
	Body     *gExpr `@@ ")"`
}

type gGive struct {
	Name *gVar  `"(" "give" @@`
	E    *gExpr `@@ ")"`
}

type gContinue struct {
	Name *gVar `"(" "continue" @@ ")"`
}

type gReturn struct {
	E *gExpr `"(" "return" @@ ")"`
}

type gAbort struct {
	E *gExpr `"(" "abort" @@ ")"`
}

type gAssign struct {
	LValues []*gLValue `"(" "assign" "[" @@ { "," @@ } "]"`
	RHS     *gExpr     `@@ ")"`
}

type gMutate struct {
	LHS *gExpr `"(" "mutate" @@`
	RHS *gExpr `@@ ")"`
}

type gLValue struct {
	Ignore       string             `  @"_"`
	BorrowUnpack *gBorrowUnpackLV   `| @@`
	Unpack       *gUnpackLV         `| @@`
	Var          *gVarLValue        `| @@`
}

type gVarLValue struct {
	V  *gVar    `@@ ":"`
	Ty *gSingle `@@`
}

type gUnpackLV struct {
	Address string          `"(" "unpack" @Ident "::"`
	Module  string          `@Ident "::"`
	Struct  string          `@Ident`
	TyArgs  []*gBaseTy      `[ "<" @@ { "," @@ } ">" ]`
	Fields  []*gUnpackField `"{" [ @@ { "," @@ } ] "}" ")"`
}

type gBorrowUnpackLV struct {
	Mut     bool            `"(" "borrow_unpack" [ @"mut" ]`
	Address string          `@Ident "::"`
	Module  string          `@Ident "::"`
	Struct  string          `@Ident`
	TyArgs  []*gBaseTy      `[ "<" @@ { "," @@ } ">" ]`
	Fields  []*gUnpackField `"{" [ @@ { "," @@ } ] "}" ")"`
}

type gUnpackField struct {
	Field string    `@Ident ":"`
	Ty    *gBaseTy  `@@ "="`
	LV    *gLValue  `@@`
}

// --- sequences ---

type gBlock struct {
	Items []*gSeqItem `"{" @@* "}"`
}

type gSeqItem struct {
	Pos     lexer.Position
	Declare *gDeclare `  @@`
	Bind    *gBind    `| @@`
	Tail    *gExpr    `| @@ [ ";" ]`
}

type gDeclare struct {
	Binds []*gLValue `"let" "[" @@ { "," @@ } "]" ";"`
}

type gBind struct {
	Binds []*gLValue `"let" "[" @@ { "," @@ } "]" ":"`
	Ty    *gType     `@@ "="`
	E     *gExpr     `@@ ";"`
}
