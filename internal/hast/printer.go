package hast

import (
	"fmt"
	"sort"
	"strings"
)

// Printer renders a Program as indented text for inspection and for the
// CLI/REPL front ends; it is not a serialization format the pass itself
// reads back in.
type Printer struct {
	indent int
	output strings.Builder
}

func NewPrinter() *Printer {
	return &Printer{}
}

// Print renders program in full.
func Print(program *Program) string {
	p := NewPrinter()
	p.printProgram(program)
	return p.output.String()
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.output.WriteString("  ")
	}
}

func (p *Printer) writeLine(format string, args ...interface{}) {
	p.writeIndent()
	p.output.WriteString(fmt.Sprintf(format, args...))
	p.output.WriteString("\n")
}

func (p *Printer) printProgram(program *Program) {
	for _, m := range program.Modules {
		p.printModule(m)
		p.writeLine("")
	}
	for _, s := range program.Scripts {
		p.printScript(s)
		p.writeLine("")
	}
}

func (p *Printer) printModule(m Module) {
	p.writeLine("MODULE %s::%s", m.Ident.Address, m.Ident.Name)
	p.indent++
	for _, s := range m.Structs {
		p.printStruct(s)
	}
	for _, c := range m.Constants {
		p.printConstant(c)
	}
	for _, f := range m.Functions {
		p.printFunction(f)
	}
	p.indent--
}

func (p *Printer) printScript(s Script) {
	p.writeLine("SCRIPT")
	p.indent++
	for _, c := range s.Constants {
		p.printConstant(c)
	}
	p.printFunction(s.Main)
	p.indent--
}

func (p *Printer) printStruct(s Struct) {
	p.writeLine("struct %s {", s.Name)
	p.indent++
	for _, f := range s.Fields {
		p.writeLine("%s: %s", f.Name, typeString(f.Ty))
	}
	p.indent--
	p.writeLine("}")
}

func (p *Printer) printConstant(c Constant) {
	p.writeLine("const %s: %s", c.Name, typeStringT(c.Ty))
	p.printFunctionBody(c.Fn.Body)
}

func (p *Printer) printFunction(f Function) {
	params := make([]string, len(f.Signature.Params))
	for i, param := range f.Signature.Params {
		params[i] = fmt.Sprintf("%s: %s", param.V, singleTypeString(param.Ty))
	}
	p.writeLine("fun %s(%s): %s %s", f.Name, strings.Join(params, ", "),
		typeStringT(f.Signature.ReturnType), visibilityString(f.Visibility))
	p.printFunctionBody(f.Body)
}

func (p *Printer) printFunctionBody(body FunctionBody) {
	switch b := body.(type) {
	case FBNative:
		p.writeLine("  native")
	case FBDefined:
		p.indent++
		if len(b.Locals) > 0 {
			p.writeLine("locals:")
			p.indent++
			names := make([]string, 0, len(b.Locals))
			for v := range b.Locals {
				names = append(names, string(v))
			}
			sort.Strings(names)
			for _, n := range names {
				p.writeLine("%s: %s", n, singleTypeString(b.Locals[Var(n)]))
			}
			p.indent--
		}
		p.printBlock(b.Block)
		p.indent--
	}
}

func (p *Printer) printBlock(block Block) {
	for _, stmt := range block {
		p.printStatement(stmt)
	}
}

func (p *Printer) printStatement(s Statement) {
	switch st := s.(type) {
	case SCommand:
		p.writeLine("%s", commandString(st.C))
	case SIfElse:
		p.writeLine("if (%s) {", expString(st.Cond))
		p.indent++
		p.printBlock(st.IfBlock)
		p.indent--
		p.writeLine("} else {")
		p.indent++
		p.printBlock(st.ElseBlock)
		p.indent--
		p.writeLine("}")
	case SWhile:
		p.writeLine("while %s {", st.Name)
		p.indent++
		p.printBlock(st.Cond)
		if st.CondExp != nil {
			p.writeLine("// cond: %s", expString(st.CondExp))
		}
		p.printBlock(st.Body)
		p.indent--
		p.writeLine("}")
	case SLoop:
		p.writeLine("loop %s (has_break=%v) {", st.Name, st.HasBreak)
		p.indent++
		p.printBlock(st.Body)
		p.indent--
		p.writeLine("}")
	}
}

func commandString(c Command) string {
	switch cc := c.(type) {
	case CAssign:
		lvs := make([]string, len(cc.LValues))
		for i, lv := range cc.LValues {
			lvs[i] = lvalueString(lv)
		}
		return fmt.Sprintf("%s = %s", strings.Join(lvs, ", "), expString(cc.E))
	case CMutate:
		return fmt.Sprintf("*%s = %s", expString(cc.LHS), expString(cc.RHS))
	case CReturn:
		return fmt.Sprintf("return %s", expString(cc.E))
	case CAbort:
		return fmt.Sprintf("abort %s", expString(cc.E))
	case CBreak:
		return fmt.Sprintf("break %s", cc.Name)
	case CContinue:
		return fmt.Sprintf("continue %s", cc.Name)
	case CIgnoreAndPop:
		return fmt.Sprintf("pop(%d) %s", cc.PopNum, expString(cc.E))
	default:
		return "<?command>"
	}
}

func lvalueString(lv LValue) string {
	switch v := lv.(type) {
	case LIgnore:
		return "_"
	case LVar:
		return string(v.V)
	default:
		return "<?lvalue>"
	}
}

func expString(e *Exp) string {
	if e == nil {
		return "<none>"
	}
	switch ex := e.Un.(type) {
	case EValue:
		return fmt.Sprintf("%v", ex.V)
	case EUnit:
		return "()"
	case EMove:
		return fmt.Sprintf("move %s", ex.V)
	case ECopy:
		return fmt.Sprintf("copy %s", ex.V)
	case EConstant:
		return string(ex.Name)
	case EModuleCall:
		return fmt.Sprintf("%s::%s(...)", ex.Module.Name, ex.Name)
	case EBuiltin:
		return "builtin(...)"
	case EVector:
		return "vector[...]"
	case EPack:
		return fmt.Sprintf("%s{...}", ex.Struct)
	case EDereference:
		return fmt.Sprintf("*%s", expString(ex.E))
	case EUnaryExp:
		return fmt.Sprintf("%s%s", ex.Op, expString(ex.E))
	case EBinopExp:
		return fmt.Sprintf("(%s %s %s)", expString(ex.LHS), ex.Op, expString(ex.RHS))
	case EBorrow:
		return fmt.Sprintf("&%s.%s", expString(ex.Base), ex.Field)
	case EBorrowLocal:
		return fmt.Sprintf("&%s", ex.V)
	case ECast:
		return fmt.Sprintf("(%s as %s)", expString(ex.E), typeString(ex.Ty))
	case EFreeze:
		return fmt.Sprintf("freeze(%s)", expString(ex.E))
	case EMultiple:
		parts := make([]string, len(ex.Elems))
		for i, el := range ex.Elems {
			parts[i] = expString(el)
		}
		return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
	case EExpList:
		parts := make([]string, len(ex.Items))
		for i, it := range ex.Items {
			parts[i] = expString(it)
		}
		return strings.Join(parts, ", ")
	default:
		return "<?exp>"
	}
}

func visibilityString(v Visibility) string {
	switch v.(type) {
	case VisPublic:
		return "public"
	case VisFriend:
		return "friend"
	default:
		return "internal"
	}
}

func typeString(t BaseType) string {
	switch tt := t.(type) {
	case TyU8:
		return "u8"
	case TyU16:
		return "u16"
	case TyU32:
		return "u32"
	case TyU64:
		return "u64"
	case TyU128:
		return "u128"
	case TyU256:
		return "u256"
	case TyBool:
		return "bool"
	case TyAddress:
		return "address"
	case TySigner:
		return "signer"
	case TyApply:
		return string(tt.Name)
	case TyParam:
		return tt.Name
	default:
		return "<?type>"
	}
}

func singleTypeString(s SingleType) string {
	switch ss := s.(type) {
	case STBase:
		return typeString(ss.Base)
	case STRef:
		if ss.Mut {
			return "&mut " + typeString(ss.Inner)
		}
		return "&" + typeString(ss.Inner)
	default:
		return "<?single>"
	}
}

func typeStringT(t Type) string {
	switch tt := t.(type) {
	case TUnit:
		return "()"
	case TSingle:
		return singleTypeString(tt.Ty)
	case TMultiple:
		parts := make([]string, len(tt.Tys))
		for i, s := range tt.Tys {
			parts[i] = singleTypeString(s)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	default:
		return "<?type>"
	}
}
