package hast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"movehlir/internal/hast"
	"movehlir/internal/tast"
)

func TestPrintRendersModuleStructAndFunction(t *testing.T) {
	v := hast.Var("r#0#0")
	prog := &hast.Program{
		Modules: []hast.Module{
			{
				Ident: tast.ModuleIdent{Address: "addr", Name: "m"},
				Structs: []hast.Struct{
					{Name: "Foo", Fields: []hast.StructField{{Name: "a", Ty: hast.TyU64{}}}},
				},
				Functions: []hast.Function{
					{
						Name:       "id",
						Visibility: hast.VisPublic{},
						Signature: hast.FunctionSignature{
							Params:     []hast.Param{{V: v, Ty: hast.STBase{Base: hast.TyU64{}}}},
							ReturnType: hast.TSingle{Ty: hast.STBase{Base: hast.TyU64{}}},
						},
						Body: hast.FBDefined{
							Block: hast.Block{
								hast.SCommand{C: hast.CReturn{E: &hast.Exp{
									Ty: hast.TSingle{Ty: hast.STBase{Base: hast.TyU64{}}},
									Un: hast.EMove{V: v},
								}}},
							},
						},
					},
				},
			},
		},
	}

	out := hast.Print(prog)
	assert.Contains(t, out, "MODULE addr::m")
	assert.Contains(t, out, "struct Foo {")
	assert.Contains(t, out, "a: u64")
	assert.Contains(t, out, "fun id(r#0#0: u64): u64 public")
	assert.Contains(t, out, "return move r#0#0")
}
