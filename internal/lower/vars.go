package lower

import (
	"strconv"

	"movehlir/internal/hast"
	"movehlir/internal/tast"
)

// translateVar mangles a T-AST variable into its H-AST symbol: distinct
// (name, id, color) triples always produce distinct strings, since id and
// color are rendered as decimal integers delimited by "#" and a name may
// not itself contain "#" (enforced upstream, by the surface grammar that
// produced the T-AST — outside this pass's remit).
func translateVar(v tast.Var) hast.Var {
	return hast.Var(v.Name + hast.NameDelim + strconv.Itoa(v.ID) + hast.NameDelim + strconv.Itoa(v.Color))
}

// newTempVar allocates and mangles a fresh temporary symbol.
func (c *Context) newTempVar() hast.Var {
	return hast.Var(hast.TempPrefix + hast.NameDelim + strconv.Itoa(c.newTemp()))
}
