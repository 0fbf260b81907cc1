package hast

import "movehlir/internal/tast"

// Visibility mirrors tast.Visibility with Package already folded into
// Friend; there is no VisPackage at the H-AST level.
type Visibility interface{ isVisibility() }

type (
	VisInternal struct{}
	VisPublic   struct{}
	VisFriend   struct{}
)

func (VisInternal) isVisibility() {}
func (VisPublic) isVisibility()   {}
func (VisFriend) isVisibility()   {}

// FunctionSignature is the lowered function shape; return type drives
// `return` lowering inside the body.
type FunctionSignature struct {
	TypeParams []string
	Params     []Param
	ReturnType Type
}

type Param struct {
	V  Var
	Ty SingleType
}

// FunctionBody is Native (nothing to lower) or Defined, carrying the
// function's full local-type map (named bindings plus every temporary
// introduced during lowering) and its lowered block.
type FunctionBody interface{ isFunctionBody() }

type (
	FBNative  struct{}
	FBDefined struct {
		Locals map[Var]SingleType
		Block  Block
	}
)

func (FBNative) isFunctionBody()  {}
func (FBDefined) isFunctionBody() {}

// Function is one lowered function.
type Function struct {
	Name       tast.FunctionName
	Visibility Visibility
	Entry      bool
	Signature  FunctionSignature
	Body       FunctionBody
}

// StructField is one lowered field, always in declared order.
type StructField struct {
	Name string
	Ty   BaseType
}

// Struct is one lowered struct; Fields is nil for a native struct.
type Struct struct {
	Name       tast.StructName
	Abilities  []string
	TypeParams []string
	Fields     []StructField
}

// Constant is lowered as a nullary function; its
// declared type and body survive as Ty/Fn for callers that want to
// treat a constant as a constant rather than re-invoke it as a function.
type Constant struct {
	Name tast.ConstantName
	Ty   Type
	Fn   Function
}

// Module is one lowered module.
type Module struct {
	Ident     tast.ModuleIdent
	Structs   []Struct
	Constants []Constant
	Functions []Function
}

// Script is a lowered script: a single `main` function plus any
// script-local constants.
type Script struct {
	Constants []Constant
	Main      Function
}

// Program is the full lowering-pass output.
type Program struct {
	Modules []Module
	Scripts []Script
}
