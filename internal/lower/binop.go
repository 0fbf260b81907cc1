package lower

import (
	"movehlir/internal/diag"
	"movehlir/internal/hast"
	"movehlir/internal/tast"
)

// pn is one element of the postfix (reverse-Polish) sequence produced by
// the forward pass of processBinops.
type pn interface{ isPn() }

type pnOp struct {
	Op        tast.BinOp
	OperandTy hast.Type
	ResultTy  hast.Type
	Pos       diag.Position
}

// pnVal is a fully-lowered leaf: its own hoisted statements plus its
// value expression (nil if the leaf turned out unreachable).
type pnVal struct {
	Block hast.Block
	Exp   *hast.Exp
}

func (pnOp) isPn()  {}
func (pnVal) isPn() {}

type binopWorkItem struct {
	E  *tast.Exp
	Ty hast.Type
}

// processBinops lowers a (possibly deep) tree of binary operators using an
// explicit stack instead of direct recursion, so stack usage stays linear
// in tree size, and expands short-circuit && / || into guarded conditionals
// except when the right-hand operand (the side that may be skipped) is a
// side-effect-free leaf.
func processBinops(ctx *Context, block *hast.Block, resultTy *hast.Type, e *tast.Exp) *hast.Exp {
	rty := type_(e.Ty)
	if resultTy != nil {
		rty = *resultTy
	}

	workQueue := []binopWorkItem{{E: e, Ty: rty}}
	var pnStack []pn

	for len(workQueue) > 0 {
		item := workQueue[len(workQueue)-1]
		workQueue = workQueue[:len(workQueue)-1]

		if binop, ok := item.E.Un.(tast.EBinopExp); ok {
			operandTy := hast.FreezeType(type_(binop.OpType))
			pnStack = append(pnStack, pnOp{
				Op:        binop.Op,
				OperandTy: operandTy,
				ResultTy:  type_(item.E.Ty),
				Pos:       item.E.Pos,
			})
			workQueue = append(workQueue, binopWorkItem{E: binop.RHS, Ty: operandTy})
			workQueue = append(workQueue, binopWorkItem{E: binop.LHS, Ty: operandTy})
			continue
		}

		var leafBlock hast.Block
		leafTy := item.Ty
		ex := value(ctx, &leafBlock, &leafTy, item.E)
		pnStack = append(pnStack, pnVal{Block: leafBlock, Exp: ex})
	}

	var valueStack []pnVal
	pop := func() pnVal {
		v := valueStack[len(valueStack)-1]
		valueStack = valueStack[:len(valueStack)-1]
		return v
	}

	for i := len(pnStack) - 1; i >= 0; i-- {
		switch p := pnStack[i].(type) {
		case pnVal:
			valueStack = append(valueStack, p)
		case pnOp:
			switch p.Op {
			case tast.OpAnd:
				test := pop()
				ifBranch := pop()
				if test.Exp != nil && simpleBoolBinopArg(ifBranch) {
					blk := concatBlocks(test.Block, ifBranch.Block)
					valueStack = append(valueStack, pnVal{Block: blk, Exp: maybeMakeBinop(test.Exp, p.Op, ifBranch.Exp, p.ResultTy)})
				} else {
					elseBranch := pnVal{Exp: boolExp(false)}
					valueStack = append(valueStack, makeBooleanBinop(ctx, test, ifBranch, elseBranch))
				}
			case tast.OpOr:
				test := pop()
				elseBranch := pop()
				if test.Exp != nil && simpleBoolBinopArg(elseBranch) {
					blk := concatBlocks(test.Block, elseBranch.Block)
					valueStack = append(valueStack, pnVal{Block: blk, Exp: maybeMakeBinop(test.Exp, p.Op, elseBranch.Exp, p.ResultTy)})
				} else {
					ifBranch := pnVal{Exp: boolExp(true)}
					valueStack = append(valueStack, makeBooleanBinop(ctx, test, ifBranch, elseBranch))
				}
			default:
				lhs := pop()
				rhs := pop()
				blk := concatBlocks(lhs.Block, rhs.Block)
				e := maybeMakeBinop(lhs.Exp, p.Op, rhs.Exp, p.ResultTy)
				valueStack = append(valueStack, pnVal{Block: blk, Exp: e})
			}
		}
	}

	if len(valueStack) != 1 {
		panic("lower: ICE processBinops left more than one value on the stack")
	}
	final := valueStack[0]
	*block = append(*block, final.Block...)
	return final.Exp
}

func concatBlocks(a, b hast.Block) hast.Block {
	out := make(hast.Block, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

func maybeMakeBinop(lhs *hast.Exp, op tast.BinOp, rhs *hast.Exp, resultTy hast.Type) *hast.Exp {
	if lhs == nil || rhs == nil {
		return nil
	}
	return &hast.Exp{Ty: resultTy, Un: hast.EBinopExp{LHS: lhs, Op: op, RHS: rhs}}
}

// simpleBoolBinopArg reports whether a pnVal is cheap/pure enough to
// inline directly into a short-circuit fast path without hoisting: no
// statements, and a value expression that is a Value/Constant/Move/Copy/
// UnresolvedError leaf.
func simpleBoolBinopArg(v pnVal) bool {
	if len(v.Block) != 0 {
		return false
	}
	if v.Exp == nil {
		return true
	}
	switch v.Exp.Un.(type) {
	case hast.EValue, hast.EConstant, hast.EMove, hast.ECopy, hast.EUnresolvedError:
		return true
	default:
		return false
	}
}

// makeBooleanBinop expands a short-circuit && / || into an if/else over
// fresh bool binders, test being the (already-lowered) condition and
// ifBranch/elseBranch the two arms.
func makeBooleanBinop(ctx *Context, test, ifBranch, elseBranch pnVal) pnVal {
	boolTy := hast.TSingle{Ty: hast.STBase{Base: hast.TyBool{}}}
	binders, useExpr := makeBinders(ctx, boolTy)

	ifBlock := ifBranch.Block
	boundIf := bindValueInBlock(ctx, binders, boolTy, &ifBlock, ifBranch.Exp)

	elseBlock := elseBranch.Block
	boundElse := bindValueInBlock(ctx, binders, boolTy, &elseBlock, elseBranch.Exp)

	if !boundIf && !boundElse {
		panic("lower: ICE boolean binop processing failure: neither branch bound a value")
	}

	if test.Exp == nil {
		return pnVal{Block: test.Block, Exp: nil}
	}

	resultBlock := append(hast.Block{}, test.Block...)
	resultBlock = append(resultBlock, command0IfElse(test.Exp, ifBlock, elseBlock))
	return pnVal{Block: resultBlock, Exp: useExpr}
}

func command0IfElse(cond *hast.Exp, ifBlock, elseBlock hast.Block) hast.Statement {
	return hast.SIfElse{Cond: cond, IfBlock: ifBlock, ElseBlock: elseBlock}
}
