package fixture

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"movehlir/internal/diag"
	"movehlir/internal/tast"
)

// build turns a parsed fixture tree into the tast.Program the lowering pass
// consumes. Every declaration in the fixture notation spells out its module
// path in full (no name resolution runs here, mirroring the pass itself),
// so building never needs a symbol table: each gExpr variant carries
// everything its tast.Exp counterpart needs directly.
type builder struct{}

func build(gp *gProgram) (tast.Program, error) {
	b := &builder{}
	prog := tast.Program{}
	for _, gm := range gp.Modules {
		m, err := b.module(gm)
		if err != nil {
			return tast.Program{}, err
		}
		prog.Modules = append(prog.Modules, m)
	}
	for _, gs := range gp.Scripts {
		s, err := b.script(gs)
		if err != nil {
			return tast.Program{}, err
		}
		prog.Scripts = append(prog.Scripts, s)
	}
	return prog, nil
}

func pos(p lexer.Position) diag.Position {
	return diag.Position{Filename: p.Filename, Offset: p.Offset, Line: p.Line, Column: p.Column}
}

func (b *builder) module(gm *gModule) (tast.Module, error) {
	out := tast.Module{
		Ident:          tast.ModuleIdent{Address: gm.Address, Name: gm.Name},
		IsSourceModule: gm.Source,
	}
	for _, gs := range gm.Structs {
		s, err := b.structDef(gs)
		if err != nil {
			return tast.Module{}, err
		}
		out.Structs = append(out.Structs, s)
	}
	for _, gc := range gm.Constants {
		c, err := b.constant(gc)
		if err != nil {
			return tast.Module{}, err
		}
		out.Constants = append(out.Constants, c)
	}
	for _, gf := range gm.Functions {
		f, err := b.function(gf)
		if err != nil {
			return tast.Module{}, err
		}
		out.Functions = append(out.Functions, f)
	}
	return out, nil
}

func (b *builder) script(gs *gScript) (tast.Script, error) {
	out := tast.Script{Pos: pos(gs.Pos)}
	for _, gc := range gs.Constants {
		c, err := b.constant(gc)
		if err != nil {
			return tast.Script{}, err
		}
		out.Constants = append(out.Constants, c)
	}
	main, err := b.function(gs.Main)
	if err != nil {
		return tast.Script{}, err
	}
	out.Main = main
	return out, nil
}

func (b *builder) structDef(gs *gStruct) (tast.Struct, error) {
	out := tast.Struct{
		Name:       tast.StructName(gs.Name),
		Abilities:  gs.Abilities,
		TypeParams: gs.TypeParams,
		Pos:        pos(gs.Pos),
	}
	if gs.Native {
		return out, nil
	}
	for i, gf := range gs.Fields {
		ty, err := b.baseType(gf.Ty)
		if err != nil {
			return tast.Struct{}, err
		}
		out.Fields = append(out.Fields, tast.StructField{Index: i, Name: gf.Name, Ty: ty})
	}
	return out, nil
}

func (b *builder) constant(gc *gConstant) (tast.Constant, error) {
	ty, err := b.typ(gc.Ty)
	if err != nil {
		return tast.Constant{}, err
	}
	e, err := b.expr(gc.E)
	if err != nil {
		return tast.Constant{}, err
	}
	return tast.Constant{Name: tast.ConstantName(gc.Name), Ty: ty, E: e, Pos: pos(gc.Pos)}, nil
}

func (b *builder) function(gf *gFunction) (tast.Function, error) {
	var params []tast.Param
	for i, gp := range gf.Params {
		st, err := b.singleType(gp.Ty)
		if err != nil {
			return tast.Function{}, err
		}
		params = append(params, tast.Param{V: tast.Var{Name: gp.Name, ID: i, Color: 0}, Ty: st})
	}
	var ret tast.Type = tast.TUnit{}
	if gf.Ret != nil {
		t, err := b.typ(gf.Ret)
		if err != nil {
			return tast.Function{}, err
		}
		ret = t
	}
	out := tast.Function{
		Name:       tast.FunctionName(gf.Name),
		Visibility: visibilityOf(gf.Vis),
		Entry:      gf.Entry,
		Signature:  tast.FunctionSignature{TypeParams: gf.TypeParams, Params: params, ReturnType: ret},
		Pos:        pos(gf.Pos),
	}
	if gf.Native {
		out.Body = tast.FBNative{}
		return out, nil
	}
	seq, err := b.seqItems(gf.Body.Items)
	if err != nil {
		return tast.Function{}, err
	}
	out.Body = tast.FBDefined{Seq: seq, Pos: pos(gf.Pos)}
	return out, nil
}

func visibilityOf(v string) tast.Visibility {
	switch v {
	case "pub":
		return tast.VisPublic{}
	case "friend":
		return tast.VisFriend{}
	case "package":
		return tast.VisPackage{}
	default:
		return tast.VisInternal{}
	}
}

// --- types ---

func (b *builder) baseType(g *gBaseTy) (tast.BaseType, error) {
	switch {
	case g.Prim != "":
		switch g.Prim {
		case "u8":
			return tast.TyU8{}, nil
		case "u16":
			return tast.TyU16{}, nil
		case "u32":
			return tast.TyU32{}, nil
		case "u64":
			return tast.TyU64{}, nil
		case "u128":
			return tast.TyU128{}, nil
		case "u256":
			return tast.TyU256{}, nil
		case "bool":
			return tast.TyBool{}, nil
		case "address":
			return tast.TyAddress{}, nil
		case "signer":
			return tast.TySigner{}, nil
		}
		return nil, fmt.Errorf("fixture: unknown primitive type %q", g.Prim)
	case g.Param != nil:
		idx, err := strconv.Atoi(g.Param.Index)
		if err != nil {
			return nil, err
		}
		return tast.TyParam{Name: g.Param.Name, Index: idx}, nil
	case g.Apply != nil:
		var args []tast.BaseType
		for _, a := range g.Apply.Args {
			at, err := b.baseType(a)
			if err != nil {
				return nil, err
			}
			args = append(args, at)
		}
		return tast.TyApply{
			Module: tast.ModuleIdent{Address: g.Apply.Address, Name: g.Apply.Module},
			Name:   tast.StructName(g.Apply.Name),
			TyArgs: args,
		}, nil
	}
	return nil, fmt.Errorf("fixture: empty base type")
}

func (b *builder) singleType(g *gSingle) (tast.SingleType, error) {
	if g.Ref != nil {
		inner, err := b.baseType(g.Ref.Inner)
		if err != nil {
			return nil, err
		}
		return tast.STRef{Mut: g.Ref.Mut, Inner: inner}, nil
	}
	base, err := b.baseType(g.Base)
	if err != nil {
		return nil, err
	}
	return tast.STBase{Base: base}, nil
}

func (b *builder) typ(g *gType) (tast.Type, error) {
	switch {
	case g.Unit != "":
		return tast.TUnit{}, nil
	case g.Tuple != nil:
		var tys []tast.SingleType
		for _, it := range g.Tuple.Items {
			st, err := b.singleType(it)
			if err != nil {
				return nil, err
			}
			tys = append(tys, st)
		}
		return tast.TMultiple{Tys: tys}, nil
	case g.Single != nil:
		st, err := b.singleType(g.Single)
		if err != nil {
			return nil, err
		}
		return tast.TSingle{Ty: st}, nil
	}
	return nil, fmt.Errorf("fixture: empty type")
}

func singleToType(st tast.SingleType) tast.Type { return tast.TSingle{Ty: st} }

// --- variables ---

func (b *builder) varOf(g *gVar) (tast.Var, error) {
	id, err := strconv.Atoi(g.ID)
	if err != nil {
		return tast.Var{}, err
	}
	color, err := strconv.Atoi(g.Color)
	if err != nil {
		return tast.Var{}, err
	}
	return tast.Var{Name: g.Name, ID: id, Color: color}, nil
}

// --- literals ---

func (b *builder) literal(g *gLit) (tast.Value_, tast.BaseType, error) {
	switch {
	case g.Bool != "":
		return tast.VBool{V: g.Bool == "true"}, tast.TyBool{}, nil
	case g.Addr != "":
		return tast.VAddress{Addr: strings.TrimPrefix(g.Addr, "@")}, tast.TyAddress{}, nil
	case g.Bytes != "":
		raw := strings.TrimSuffix(strings.TrimPrefix(g.Bytes, `x"`), `"`)
		bs, err := hex.DecodeString(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("fixture: invalid bytearray literal %q: %w", g.Bytes, err)
		}
		return tast.VBytearray{V: bs}, tast.TyU8{}, nil
	case g.Num != "":
		return parseNumber(g.Num)
	}
	return nil, nil, fmt.Errorf("fixture: empty literal")
}

// parseNumber splits a numeric literal's optional width suffix (u8..u256)
// off its digits. No suffix means the literal's width was never inferred —
// an intentional hook for exercising the pass's own ICE on an uninferred
// numeric value, not a format this builder treats as an
// error.
func parseNumber(s string) (tast.Value_, tast.BaseType, error) {
	for _, suf := range []string{"u256", "u128", "u64", "u32", "u16", "u8"} {
		if strings.HasSuffix(s, suf) {
			digits := strings.TrimSuffix(s, suf)
			switch suf {
			case "u8":
				n, err := strconv.ParseUint(digits, 0, 8)
				return tast.VU8{V: uint8(n)}, tast.TyU8{}, err
			case "u16":
				n, err := strconv.ParseUint(digits, 0, 16)
				return tast.VU16{V: uint16(n)}, tast.TyU16{}, err
			case "u32":
				n, err := strconv.ParseUint(digits, 0, 32)
				return tast.VU32{V: uint32(n)}, tast.TyU32{}, err
			case "u64":
				n, err := strconv.ParseUint(digits, 0, 64)
				return tast.VU64{V: n}, tast.TyU64{}, err
			case "u128":
				return tast.VU128{V: digits}, tast.TyU128{}, nil
			case "u256":
				return tast.VU256{V: digits}, tast.TyU256{}, nil
			}
		}
	}
	return tast.VInferredNum{V: s}, nil, nil
}
