package lower

import (
	"movehlir/internal/diag"
	"movehlir/internal/tast"
)

// reportUnusedFields sweeps one source module's structs after it has been
// fully lowered, flagging any field that no pack, unpack, or borrow
// anywhere in the module ever touched. Only source modules are swept:
// a dependency's unused
// fields are not this program's business. Struct field declarations carry
// no position of their own, so the diagnostic points at the struct's.
func reportUnusedFields(ctx *Context, m tast.Module) {
	for _, s := range m.Structs {
		if s.Fields == nil {
			continue
		}
		for _, f := range s.Fields {
			if ctx.isFieldUsed(s.Name, f.Name) {
				continue
			}
			ctx.Env.AddDiag(diag.UnusedItemStructField, diag.Label{
				Pos:     s.Pos,
				Message: "Unused field '" + f.Name + "' of struct '" + string(s.Name) + "'. Consider removing or prefixing with an underscore: '_" + f.Name + "'",
			})
		}
	}
}
