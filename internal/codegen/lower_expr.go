package codegen

import (
	"github.com/llir/llvm/ir"
	irconstant "github.com/llir/llvm/ir/constant"
	irenum "github.com/llir/llvm/ir/enum"
	irtypes "github.com/llir/llvm/ir/types"
	irvalue "github.com/llir/llvm/ir/value"

	"github.com/philang/phi/internal/ast"
	"github.com/philang/phi/internal/types"
)

// lowerExpr dispatches over every expression kind, returning the SSA
// value it evaluates to — the generalization of the teacher's
// expression-compiling switch (which emitted OP_* bytecode) to builder
// calls against the current block.
func (g *Generator) lowerExpr(e ast.Expr) irvalue.Value {
	switch n := e.(type) {
	case *ast.IntLiteral:
		ty := g.llvmType(n.Type(), g.cur.gmap)
		return irconstant.NewInt(ty.(*irtypes.IntType), n.Value)
	case *ast.FloatLiteral:
		ty := g.llvmType(n.Type(), g.cur.gmap)
		return irconstant.NewFloat(ty.(*irtypes.FloatType), n.Value)
	case *ast.BoolLiteral:
		if n.Value {
			return irconstant.True
		}
		return irconstant.False
	case *ast.CharLiteral:
		return irconstant.NewInt(irtypes.I8, int64(n.Value))
	case *ast.StrLiteral:
		return g.stringConstant(n.Value)
	case *ast.RangeExpr:
		return g.lowerRangeExpr(n)
	case *ast.TupleExpr:
		return g.lowerTupleExpr(n)
	case *ast.ArrayExpr:
		return g.lowerArrayExpr(n)
	case *ast.DeclRef:
		return g.lowerDeclRef(n)
	case *ast.FunCall:
		return g.lowerFunCall(n)
	case *ast.MethodCall:
		return g.lowerMethodCall(n)
	case *ast.BinaryExpr:
		return g.lowerBinaryExpr(n)
	case *ast.UnaryExpr:
		return g.lowerUnaryExpr(n)
	case *ast.AdtInit:
		return g.lowerAdtInit(n)
	case *ast.EnumInit:
		return g.lowerEnumInit(n)
	case *ast.FieldAccess:
		return g.cur.block.NewLoad(g.llvmType(n.Type(), g.cur.gmap), g.lvalueAddr(n))
	case *ast.TupleIndex:
		base := g.lowerExpr(n.Base)
		return g.cur.block.NewExtractValue(base, uint64(n.Index))
	case *ast.ArrayIndex:
		return g.cur.block.NewLoad(g.llvmType(n.Type(), g.cur.gmap), g.lvalueAddr(n))
	case *ast.MatchExpr:
		return g.lowerMatchExpr(n)
	case *ast.AssignExpr:
		return g.lowerAssignExpr(n)
	case *ast.IntrinsicCall:
		return g.lowerIntrinsicCall(n)
	default:
		return irconstant.NewInt(irtypes.I64, 0)
	}
}

func (g *Generator) lowerRangeExpr(n *ast.RangeExpr) irvalue.Value {
	start := g.lowerExpr(n.Start)
	end := g.lowerExpr(n.End)
	ty := irtypes.NewStruct(irtypes.I64, irtypes.I64)
	agg := irvalue.Value(irconstant.NewUndef(ty))
	agg = g.cur.block.NewInsertValue(agg, start, 0)
	agg = g.cur.block.NewInsertValue(agg, end, 1)
	return agg
}

func (g *Generator) lowerTupleExpr(n *ast.TupleExpr) irvalue.Value {
	ty := g.llvmType(n.Type(), g.cur.gmap)
	agg := irvalue.Value(irconstant.NewUndef(ty))
	for i, el := range n.Elems {
		v := g.lowerExpr(el)
		agg = g.cur.block.NewInsertValue(agg, v, uint64(i))
	}
	return agg
}

// lowerArrayExpr materializes a fixed-size literal into a stack-allocated
// backing array, live for the rest of the enclosing function, and
// returns the {ptr, i64} slice struct the Array type lowers to.
func (g *Generator) lowerArrayExpr(n *ast.ArrayExpr) irvalue.Value {
	arrTy := n.Type()
	elemTy := g.llvmType(arrTy.Elem, g.cur.gmap)
	n64 := int64(len(n.Elems))
	backing := g.cur.block.NewAlloca(elemTy)
	backing.NElems = irconstant.NewInt(irtypes.I64, n64)
	for i, el := range n.Elems {
		v := g.lowerExpr(el)
		idx := irconstant.NewInt(irtypes.I64, int64(i))
		gep := g.cur.block.NewGetElementPtr(elemTy, backing, idx)
		g.cur.block.NewStore(v, gep)
	}
	sliceTy := irtypes.NewStruct(irtypes.NewPointer(elemTy), irtypes.I64)
	agg := irvalue.Value(irconstant.NewUndef(sliceTy))
	agg = g.cur.block.NewInsertValue(agg, backing, 0)
	agg = g.cur.block.NewInsertValue(agg, irconstant.NewInt(irtypes.I64, n64), 1)
	return agg
}

func (g *Generator) lowerDeclRef(n *ast.DeclRef) irvalue.Value {
	if addr, ok := g.cur.locals[n.Decl]; ok {
		return g.cur.block.NewLoad(g.llvmType(n.Type(), g.cur.gmap), addr)
	}
	return irconstant.NewInt(irtypes.I64, 0)
}

// lvalueAddr returns the address an l-value expression names, for
// AssignExpr's target and for reading through a pointer-backed field.
func (g *Generator) lvalueAddr(e ast.Expr) irvalue.Value {
	switch n := e.(type) {
	case *ast.DeclRef:
		return g.cur.locals[n.Decl]
	case *ast.FieldAccess:
		base := g.lowerExpr(n.Base)
		zero := irconstant.NewInt(irtypes.I32, 0)
		idx := irconstant.NewInt(irtypes.I32, int64(n.Index))
		return g.cur.block.NewGetElementPtr(elemTypeOf(base), base, zero, idx)
	case *ast.ArrayIndex:
		slice := g.lowerExpr(n.Base)
		ptr := g.cur.block.NewExtractValue(slice, 0)
		idx := g.lowerExpr(n.Index)
		return g.cur.block.NewGetElementPtr(elemTypeOfPtr(ptr), ptr, idx)
	default:
		return nil
	}
}

func elemTypeOf(ptr irvalue.Value) irtypes.Type {
	pt, ok := ptr.Type().(*irtypes.PointerType)
	if !ok {
		return irtypes.Void
	}
	return pt.ElemType
}

func elemTypeOfPtr(ptr irvalue.Value) irtypes.Type {
	return elemTypeOf(ptr)
}

func (g *Generator) lowerBinaryExpr(n *ast.BinaryExpr) irvalue.Value {
	if n.Op == ast.OpAnd || n.Op == ast.OpOr {
		return g.lowerShortCircuit(n)
	}
	l := g.lowerExpr(n.Left)
	r := g.lowerExpr(n.Right)
	lt := n.Left.Type()
	isFloat := lt != nil && lt.Kind == types.KindBuiltin && lt.Builtin.IsFloat()
	isUnsigned := lt != nil && lt.Kind == types.KindBuiltin && lt.Builtin.IsUnsignedInt()
	b := g.cur.block
	switch n.Op {
	case ast.OpAdd:
		if isFloat {
			return b.NewFAdd(l, r)
		}
		return b.NewAdd(l, r)
	case ast.OpSub:
		if isFloat {
			return b.NewFSub(l, r)
		}
		return b.NewSub(l, r)
	case ast.OpMul:
		if isFloat {
			return b.NewFMul(l, r)
		}
		return b.NewMul(l, r)
	case ast.OpDiv:
		if isFloat {
			return b.NewFDiv(l, r)
		}
		if isUnsigned {
			return b.NewUDiv(l, r)
		}
		return b.NewSDiv(l, r)
	case ast.OpMod:
		if isFloat {
			return b.NewFRem(l, r)
		}
		if isUnsigned {
			return b.NewURem(l, r)
		}
		return b.NewSRem(l, r)
	case ast.OpEq:
		if isFloat {
			return b.NewFCmp(irenum.FPredOEQ, l, r)
		}
		return b.NewICmp(irenum.IPredEQ, l, r)
	case ast.OpNe:
		if isFloat {
			return b.NewFCmp(irenum.FPredONE, l, r)
		}
		return b.NewICmp(irenum.IPredNE, l, r)
	case ast.OpLt:
		if isFloat {
			return b.NewFCmp(irenum.FPredOLT, l, r)
		}
		return b.NewICmp(intCmpPred(irenum.IPredSLT, irenum.IPredULT, isUnsigned), l, r)
	case ast.OpLe:
		if isFloat {
			return b.NewFCmp(irenum.FPredOLE, l, r)
		}
		return b.NewICmp(intCmpPred(irenum.IPredSLE, irenum.IPredULE, isUnsigned), l, r)
	case ast.OpGt:
		if isFloat {
			return b.NewFCmp(irenum.FPredOGT, l, r)
		}
		return b.NewICmp(intCmpPred(irenum.IPredSGT, irenum.IPredUGT, isUnsigned), l, r)
	case ast.OpGe:
		if isFloat {
			return b.NewFCmp(irenum.FPredOGE, l, r)
		}
		return b.NewICmp(intCmpPred(irenum.IPredSGE, irenum.IPredUGE, isUnsigned), l, r)
	default:
		return l
	}
}

func intCmpPred(signed, unsigned irenum.IPred, isUnsigned bool) irenum.IPred {
	if isUnsigned {
		return unsigned
	}
	return signed
}

// lowerShortCircuit lowers && / || through two blocks and a phi, the
// minimal control-flow shape short-circuit evaluation requires (the
// right operand must not execute when the left already decides it).
func (g *Generator) lowerShortCircuit(n *ast.BinaryExpr) irvalue.Value {
	l := g.lowerExpr(n.Left)
	startBlk := g.cur.block
	rhsBlk := g.cur.freshBlock("sc.rhs")
	mergeBlk := g.cur.freshBlock("sc.end")
	if n.Op == ast.OpAnd {
		g.cur.block.NewCondBr(l, rhsBlk, mergeBlk)
	} else {
		g.cur.block.NewCondBr(l, mergeBlk, rhsBlk)
	}
	g.cur.block = rhsBlk
	r := g.lowerExpr(n.Right)
	rhsEndBlk := g.cur.block
	g.cur.block.NewBr(mergeBlk)
	g.cur.block = mergeBlk
	phi := g.cur.block.NewPhi(ir.NewIncoming(l, startBlk), ir.NewIncoming(r, rhsEndBlk))
	return phi
}

func (g *Generator) lowerUnaryExpr(n *ast.UnaryExpr) irvalue.Value {
	v := g.lowerExpr(n.Operand)
	switch n.Op {
	case ast.OpNeg:
		ot := n.Operand.Type()
		if ot != nil && ot.Kind == types.KindBuiltin && ot.Builtin.IsFloat() {
			return g.cur.block.NewFNeg(v)
		}
		zero := irconstant.NewInt(v.Type().(*irtypes.IntType), 0)
		return g.cur.block.NewSub(zero, v)
	case ast.OpNot:
		return g.cur.block.NewXor(v, irconstant.True)
	default:
		return v
	}
}

// lowerAdtInit heap-allocates a struct value, stores each field (filling
// unspecified fields from the struct's default initializer, re-lowered
// at this call site), and returns the resulting pointer.
func (g *Generator) lowerAdtInit(n *ast.AdtInit) irvalue.Value {
	sd := n.Decl
	adtArgs := appliedArgs(n.Type())
	st := g.adtType(sd, adtArgs)
	ptr := g.heapAlloc(st, int64(sizeOfAdt(sd, adtArgs)))

	values := make(map[string]ast.Expr, len(n.Fields))
	for _, f := range n.Fields {
		values[f.Name] = f.Value
	}
	zero := irconstant.NewInt(irtypes.I32, 0)
	for _, fd := range sd.Fields {
		fieldExpr, ok := values[fd.Name]
		if !ok {
			fieldExpr = fd.Initializer
		}
		v := g.lowerExpr(fieldExpr)
		idx := irconstant.NewInt(irtypes.I32, int64(fd.Index))
		gep := g.cur.block.NewGetElementPtr(st, ptr, zero, idx)
		g.cur.block.NewStore(v, gep)
	}
	return ptr
}

// lowerEnumInit heap-allocates an enum value, storing the variant's
// dense discriminant in field 0 and bitcasting the payload slot (field
// 1) to the payload's concrete type before storing it, if any.
func (g *Generator) lowerEnumInit(n *ast.EnumInit) irvalue.Value {
	ed := n.Decl
	adtArgs := appliedArgs(n.Type())
	st := g.adtType(ed, adtArgs)
	ptr := g.heapAlloc(st, int64(sizeOfAdt(ed, adtArgs)))

	zero := irconstant.NewInt(irtypes.I32, 0)
	tagIdx := irconstant.NewInt(irtypes.I32, 0)
	tagGep := g.cur.block.NewGetElementPtr(st, ptr, zero, tagIdx)
	g.cur.block.NewStore(irconstant.NewInt(irtypes.I32, int64(n.Target.Index)), tagGep)

	if n.Payload != nil {
		v := g.lowerExpr(n.Payload)
		payloadIdx := irconstant.NewInt(irtypes.I32, 1)
		payloadGep := g.cur.block.NewGetElementPtr(st, ptr, zero, payloadIdx)
		cast := g.cur.block.NewBitCast(payloadGep, irtypes.NewPointer(v.Type()))
		g.cur.block.NewStore(v, cast)
	}
	return ptr
}

func appliedArgs(t *types.Type) []*types.Type {
	if t == nil {
		return nil
	}
	if t.Kind == types.KindApplied {
		return t.Args
	}
	return nil
}

func (g *Generator) lowerAssignExpr(n *ast.AssignExpr) irvalue.Value {
	addr := g.lvalueAddr(n.Target)
	v := g.lowerExpr(n.Value)
	if n.Op != ast.AssignPlain {
		elemTy := elemTypeOf(addr)
		cur := g.cur.block.NewLoad(elemTy, addr)
		tt := n.Target.Type()
		isFloat := tt != nil && tt.Kind == types.KindBuiltin && tt.Builtin.IsFloat()
		b := g.cur.block
		switch n.Op {
		case ast.AssignAdd:
			if isFloat {
				v = b.NewFAdd(cur, v)
			} else {
				v = b.NewAdd(cur, v)
			}
		case ast.AssignSub:
			if isFloat {
				v = b.NewFSub(cur, v)
			} else {
				v = b.NewSub(cur, v)
			}
		case ast.AssignMul:
			if isFloat {
				v = b.NewFMul(cur, v)
			} else {
				v = b.NewMul(cur, v)
			}
		case ast.AssignDiv:
			if isFloat {
				v = b.NewFDiv(cur, v)
			} else {
				v = b.NewSDiv(cur, v)
			}
		}
	}
	g.cur.block.NewStore(v, addr)
	return v
}
