// Package lower implements the HLIR lowering pass: a tree transducer from
// movehlir/internal/tast to movehlir/internal/hast. The pass is a pair of
// mutually recursive tree walks keyed on tail/value/statement position
// (see tail.go, value.go, statement.go), backed by a temporary-binding
// discipline (binding.go) and a structural freeze pass (freeze.go).
package lower

import (
	"movehlir/internal/diag"
	"movehlir/internal/hast"
	"movehlir/internal/tast"
	"movehlir/internal/uniquemap"
)

// structKey identifies one struct's field-index table.
type structKey struct {
	Module tast.ModuleIdent
	Struct tast.StructName
}

// fieldIndex is a struct's declared field order, keyed by field name.
type fieldIndex struct {
	order []string
	index map[string]int
}

// Context is the per-function (and per-module, for used-fields) state the
// lowering pass threads through every call. It mirrors move-compiler's
// hlir::translate::Context.
type Context struct {
	Env *diag.Env

	// structs maps (module, struct) to its declared field order. Built
	// once for the whole program and never mutated afterward.
	structs map[structKey]fieldIndex

	// functionLocals accumulates every named local and temporary
	// introduced while lowering the current function. Reset at function
	// entry; extracted (and swapped out) at function exit.
	functionLocals *uniquemap.Map[hast.Var, hast.SingleType]

	// signature is the current function's lowered signature, used by
	// `return` lowering to determine the expected type. nil outside a
	// function body.
	signature *hast.FunctionSignature

	tmpCounter int

	// namedBlockBinders/Types record, for each labeled loop currently in
	// scope, the lvalues `give` assigns into and the loop's result type.
	namedBlockBinders *uniquemap.Map[hast.Var, []hast.LValue]
	namedBlockTypes   *uniquemap.Map[hast.Var, hast.Type]

	// usedFields accumulates, per struct, which fields were referenced by
	// a pack, unpack, or borrow anywhere in the current module. Reset at
	// module entry; read only by the post-module unused-fields sweep.
	usedFields map[tast.StructName]map[string]bool
}

// NewContext builds a Context for lowering an entire program. structs
// should contain every struct in the program (including from precompiled
// dependencies), since a pack/unpack in any source module may reference a
// struct declared anywhere.
func NewContext(env *diag.Env, program tast.Program) *Context {
	c := &Context{
		Env:     env,
		structs: map[structKey]fieldIndex{},
	}
	for _, m := range program.Modules {
		for _, s := range m.Structs {
			c.structs[structKey{Module: m.Ident, Struct: s.Name}] = buildFieldIndex(s)
		}
	}
	return c
}

func buildFieldIndex(s tast.Struct) fieldIndex {
	fi := fieldIndex{index: map[string]int{}}
	order := make([]tast.StructField, len(s.Fields))
	copy(order, s.Fields)
	// Fields are expected to already be declaration-ordered by Index, but
	// the pass never trusts that and always re-sorts.
	sortFieldsByIndex(order)
	for _, f := range order {
		fi.index[f.Name] = f.Index
		fi.order = append(fi.order, f.Name)
	}
	return fi
}

func sortFieldsByIndex(fields []tast.StructField) {
	for i := 1; i < len(fields); i++ {
		for j := i; j > 0 && fields[j].Index < fields[j-1].Index; j-- {
			fields[j], fields[j-1] = fields[j-1], fields[j]
		}
	}
}

// fields looks up a struct's field-index table. A missing
// entry is only tolerated when the environment already holds errors.
func (c *Context) fields(mident tast.ModuleIdent, sname tast.StructName) (fieldIndex, bool) {
	fi, ok := c.structs[structKey{Module: mident, Struct: sname}]
	if !ok && !c.Env.HasErrors() {
		panic("lower: ICE missing struct field index for " + string(sname))
	}
	return fi, ok
}

// hasEmptyLocals reports whether functionLocals is empty, asserted true at
// function entry.
func (c *Context) hasEmptyLocals() bool {
	return c.functionLocals == nil || c.functionLocals.IsEmpty()
}

// enterFunction resets per-function state. Must be paired with
// exitFunction on every exit path.
func (c *Context) enterFunction(sig *hast.FunctionSignature) {
	if !c.hasEmptyLocals() || c.tmpCounter != 0 {
		panic("lower: ICE function entry with non-empty locals or nonzero temp counter")
	}
	c.functionLocals = uniquemap.New[hast.Var, hast.SingleType]()
	c.signature = sig
	c.namedBlockBinders = uniquemap.New[hast.Var, []hast.LValue]()
	c.namedBlockTypes = uniquemap.New[hast.Var, hast.Type]()
}

// extractFunctionLocals swaps out the accumulated local-type map and
// resets the temp counter, returning the map for embedding into the
// function's H-AST body.
func (c *Context) extractFunctionLocals() map[hast.Var]hast.SingleType {
	out := map[hast.Var]hast.SingleType{}
	c.functionLocals.Each(func(v hast.Var, t hast.SingleType) {
		out[v] = t
	})
	c.tmpCounter = 0
	return out
}

// exitFunction clears all per-function ambient state.
func (c *Context) exitFunction() {
	c.signature = nil
	c.functionLocals = nil
	c.namedBlockBinders = nil
	c.namedBlockTypes = nil
}

// newTemp allocates a fresh temporary counter value.
func (c *Context) newTemp() int {
	k := c.tmpCounter
	c.tmpCounter++
	return k
}

// bindLocal records v's type in the current function's local map. Collision
// (the same H-AST symbol bound twice) is an ICE: it means variable
// mangling failed to keep two distinct T-AST bindings apart.
func (c *Context) bindLocal(v hast.Var, ty hast.SingleType) {
	c.functionLocals.MustAdd(v, ty, "lower: ICE duplicate local symbol "+string(v))
}

func (c *Context) recordNamedBlockBinders(name hast.Var, binders []hast.LValue) {
	c.namedBlockBinders.MustAdd(name, binders, "lower: ICE reused named block label "+string(name))
}

func (c *Context) recordNamedBlockType(name hast.Var, ty hast.Type) {
	c.namedBlockTypes.MustAdd(name, ty, "lower: ICE reused named block label "+string(name))
}

func (c *Context) lookupNamedBlockBinders(name hast.Var) []hast.LValue {
	b, ok := c.namedBlockBinders.Get(name)
	if !ok {
		panic("lower: ICE unregistered named block " + string(name))
	}
	return b
}

func (c *Context) lookupNamedBlockType(name hast.Var) hast.Type {
	t, ok := c.namedBlockTypes.Get(name)
	if !ok {
		panic("lower: ICE unregistered named block " + string(name))
	}
	return t
}

// enterModule resets the per-module used-fields accumulator.
func (c *Context) enterModule() {
	c.usedFields = map[tast.StructName]map[string]bool{}
}

func (c *Context) markFieldUsed(sname tast.StructName, field string) {
	if c.usedFields == nil {
		return
	}
	set, ok := c.usedFields[sname]
	if !ok {
		set = map[string]bool{}
		c.usedFields[sname] = set
	}
	set[field] = true
}

func (c *Context) isFieldUsed(sname tast.StructName, field string) bool {
	set, ok := c.usedFields[sname]
	return ok && set[field]
}
