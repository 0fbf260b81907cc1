package lower

import (
	"movehlir/internal/diag"
	"movehlir/internal/hast"
	"movehlir/internal/tast"
)

// Program lowers an entire typed program to H-AST. This is the pass's only
// exported entry point; env accumulates every
// diagnostic emitted along the way, including the post-module unused-field
// sweep.
func Program(env *diag.Env, prog tast.Program) hast.Program {
	ctx := NewContext(env, prog)

	out := hast.Program{
		Modules: make([]hast.Module, len(prog.Modules)),
		Scripts: make([]hast.Script, len(prog.Scripts)),
	}
	for i, m := range prog.Modules {
		out.Modules[i] = module(ctx, m)
	}
	for i, s := range prog.Scripts {
		out.Scripts[i] = script(ctx, s)
	}
	return out
}

func module(ctx *Context, m tast.Module) hast.Module {
	ctx.enterModule()
	ctx.Env.PushWarningFilterScope(m.WarningFilter)
	defer ctx.Env.PopWarningFilterScope()

	out := hast.Module{
		Ident:     m.Ident,
		Structs:   make([]hast.Struct, len(m.Structs)),
		Constants: make([]hast.Constant, len(m.Constants)),
		Functions: make([]hast.Function, len(m.Functions)),
	}
	for i, s := range m.Structs {
		out.Structs[i] = structDef(s)
	}
	for i, c := range m.Constants {
		out.Constants[i] = constant(ctx, c)
	}
	for i, f := range m.Functions {
		out.Functions[i] = function(ctx, f)
	}

	if m.IsSourceModule {
		reportUnusedFields(ctx, m)
	}
	return out
}

func script(ctx *Context, s tast.Script) hast.Script {
	out := hast.Script{
		Constants: make([]hast.Constant, len(s.Constants)),
	}
	for i, c := range s.Constants {
		out.Constants[i] = constant(ctx, c)
	}
	out.Main = function(ctx, s.Main)
	return out
}

func structDef(s tast.Struct) hast.Struct {
	out := hast.Struct{
		Name:       s.Name,
		Abilities:  s.Abilities,
		TypeParams: s.TypeParams,
	}
	if s.Fields == nil {
		return out
	}
	ordered := make([]tast.StructField, len(s.Fields))
	copy(ordered, s.Fields)
	sortFieldsByIndex(ordered)
	out.Fields = make([]hast.StructField, len(ordered))
	for i, f := range ordered {
		out.Fields[i] = hast.StructField{Name: f.Name, Ty: baseType(f.Ty)}
	}
	return out
}

// constant lowers a module-level constant as a nullary function whose body
// is the constant's initializer: this gives a
// constant the exact same binder/temp/freeze treatment any other function
// body gets, without a separate evaluator.
func constant(ctx *Context, c tast.Constant) hast.Constant {
	rty := type_(c.Ty)
	fn := tast.Function{
		Name:       tast.FunctionName(c.Name),
		Visibility: tast.VisInternal{},
		Signature:  tast.FunctionSignature{ReturnType: c.Ty},
		Body: tast.FBDefined{
			Seq: []tast.SequenceItem{tast.SeqExp{E: c.E}},
			Pos: c.Pos,
		},
		Pos: c.Pos,
	}
	return hast.Constant{Name: c.Name, Ty: rty, Fn: function(ctx, fn)}
}

func function(ctx *Context, f tast.Function) hast.Function {
	sig := functionSignature(f.Signature)
	out := hast.Function{
		Name:       f.Name,
		Visibility: visibility(f.Visibility),
		Entry:      f.Entry,
		Signature:  sig,
	}
	switch b := f.Body.(type) {
	case tast.FBNative:
		out.Body = hast.FBNative{}
	case tast.FBDefined:
		out.Body = functionBodyDefined(ctx, &sig, f.Signature.Params, b)
	default:
		panic("lower: ICE unknown FunctionBody")
	}
	return out
}

func functionSignature(sig tast.FunctionSignature) hast.FunctionSignature {
	params := make([]hast.Param, len(sig.Params))
	for i, p := range sig.Params {
		params[i] = hast.Param{V: translateVar(p.V), Ty: singleType(p.Ty)}
	}
	return hast.FunctionSignature{
		TypeParams: sig.TypeParams,
		Params:     params,
		ReturnType: type_(sig.ReturnType),
	}
}

// functionBodyDefined lowers one function's statement sequence in tail
// position against its declared return type, synthesizing a trailing
// Return for whatever value the body falls off the end with. Every
// parameter is registered as a local before anything else is lowered, and
// entry/exit bracket the function's ambient Context state precisely once.
func functionBodyDefined(ctx *Context, sig *hast.FunctionSignature, params []tast.Param, b tast.FBDefined) hast.FunctionBody {
	ctx.enterFunction(sig)
	defer ctx.exitFunction()

	for _, p := range params {
		ctx.bindLocal(translateVar(p.V), singleType(p.Ty))
	}

	var block hast.Block
	rty := sig.ReturnType
	result := lowerBlockSeq(ctx, &block, &rty, blockTail, b.Seq)
	if result != nil {
		block = append(block, command(hast.CReturn{FromUser: false, E: result}))
	}

	locals := ctx.extractFunctionLocals()
	return hast.FBDefined{Locals: locals, Block: block}
}

func visibility(v tast.Visibility) hast.Visibility {
	switch v.(type) {
	case tast.VisInternal:
		return hast.VisInternal{}
	case tast.VisPublic:
		return hast.VisPublic{}
	case tast.VisFriend, tast.VisPackage:
		return hast.VisFriend{}
	default:
		panic("lower: ICE unknown Visibility")
	}
}
