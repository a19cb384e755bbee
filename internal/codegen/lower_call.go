package codegen

import (
	irconstant "github.com/llir/llvm/ir/constant"
	irtypes "github.com/llir/llvm/ir/types"
	irvalue "github.com/llir/llvm/ir/value"

	"github.com/philang/phi/internal/ast"
	"github.com/philang/phi/internal/diagnostics"
	"github.com/philang/phi/internal/types"
)

// lowerFunCall enqueues the callee's concrete instantiation right here
// at the call site rather than relying on a separate discovery walk —
// Phase 1/2/4 are fused (§DESIGN.md): the first call site to reach a
// given (decl, type-args) pair is what actually schedules its body for
// emission, and enqueueFun's own g.seen guard makes every later call to
// the same instantiation a no-op lookup.
func (g *Generator) lowerFunCall(n *ast.FunCall) irvalue.Value {
	if ref, ok := n.Callee.(*ast.DeclRef); ok && ref.Decl == nil && n.ResolvedFun == nil && ref.Name == "println" {
		return g.lowerPrintln(n.Args)
	}
	if n.ResolvedFun == nil {
		callee := g.lowerExpr(n.Callee)
		args := make([]irvalue.Value, len(n.Args))
		for i, a := range n.Args {
			args[i] = g.lowerExpr(a)
		}
		return g.cur.block.NewCall(callee, args...)
	}
	var typeArgs []*types.Type
	if len(n.ResolvedFun.TypeParams) > 0 {
		typeArgs = g.resolveCallTypeArgs(n.ResolvedFun.TypeParams, n.ResolvedFun.Params, n.Args, n.ResolvedFun.Resolved, n.Type())
		if anyContainsGeneric(typeArgs) {
			g.sink.Add(diagnostics.Internal(n.Pos(), "could not recover type arguments for call to %q", n.ResolvedFun.Name))
			typeArgs = nil
		}
	}
	mangled := g.enqueueFun(n.ResolvedFun, typeArgs)
	fn := g.funcs[mangled]
	args := make([]irvalue.Value, len(n.Args))
	for i, a := range n.Args {
		args[i] = g.lowerExpr(a)
	}
	if fn == nil {
		return irconstant.NewInt(irtypes.I64, 0)
	}
	return g.cur.block.NewCall(fn, args...)
}

func (g *Generator) lowerMethodCall(n *ast.MethodCall) irvalue.Value {
	md := n.Resolved
	// Base.Type() is already a pointer-shaped Adt/Applied/Ptr/Ref, matching
	// the ABI where self is always passed as a bare pointer to the struct.
	baseAddr := g.lowerExpr(n.Base)

	var adtArgs []*types.Type
	if bt := n.Base.Type(); bt != nil {
		switch bt.Kind {
		case types.KindApplied:
			adtArgs = bt.Args
		case types.KindPtr, types.KindRef:
			if bt.Pointee != nil && bt.Pointee.Kind == types.KindApplied {
				adtArgs = bt.Pointee.Args
			}
		}
	}
	var methodArgs []*types.Type
	if len(md.TypeParams) > 0 {
		out := map[types.Decl]*types.Type{}
		for i, p := range md.Params {
			if i < len(n.Args) {
				matchGeneric(p.Resolved, n.Args[i].Type(), out)
			}
		}
		if md.Resolved != nil {
			matchGeneric(md.Resolved.Result, n.Type(), out)
		}
		methodArgs = make([]*types.Type, len(md.TypeParams))
		for i, tp := range md.TypeParams {
			methodArgs[i] = out[tp]
		}
	}
	if anyContainsGeneric(adtArgs) || anyContainsGeneric(methodArgs) {
		g.sink.Add(diagnostics.Internal(n.Pos(), "could not recover type arguments for call to %q", md.Name))
		adtArgs, methodArgs = nil, nil
	}
	mangled := g.enqueueMethod(md, adtArgs, methodArgs)
	fn := g.funcs[mangled]

	args := make([]irvalue.Value, 0, len(n.Args)+1)
	args = append(args, baseAddr)
	for _, a := range n.Args {
		args = append(args, g.lowerExpr(a))
	}
	if fn == nil {
		return irconstant.NewInt(irtypes.I64, 0)
	}
	return g.cur.block.NewCall(fn, args...)
}

// lowerIntrinsicCall lowers panic/assert/unreachable/typeOf per §4.5's
// intrinsics table: panic and a failed assert print a message then call
// abort(); unreachable calls abort() directly; typeOf returns its
// argument's static type name as a string constant, resolved entirely
// at compile time.
func (g *Generator) lowerIntrinsicCall(n *ast.IntrinsicCall) irvalue.Value {
	switch n.Kind {
	case ast.IntrinsicPanic:
		msg := g.lowerExpr(n.Args[0])
		g.callPrintf(g.stringConstant("Panic: %s\n"), msg)
		g.cur.block.NewCall(g.abortFn)
		g.cur.block.NewUnreachable()
		return irconstant.NewInt(irtypes.I64, 0)
	case ast.IntrinsicAssert:
		cond := g.lowerExpr(n.Args[0])
		failBlk := g.cur.freshBlock("assert.fail")
		okBlk := g.cur.freshBlock("assert.ok")
		g.cur.block.NewCondBr(cond, okBlk, failBlk)
		g.cur.block = failBlk
		g.callPrintf(g.stringConstant("assertion failed\n"))
		g.cur.block.NewCall(g.abortFn)
		g.cur.block.NewUnreachable()
		g.cur.block = okBlk
		return irconstant.NewInt(irtypes.I64, 0)
	case ast.IntrinsicUnreachable:
		g.cur.block.NewCall(g.abortFn)
		g.cur.block.NewUnreachable()
		return irconstant.NewInt(irtypes.I64, 0)
	case ast.IntrinsicTypeOf:
		t := n.Args[0].Type()
		name := "<unknown>"
		if t != nil {
			name = t.String()
		}
		return g.stringConstant(name)
	default:
		return irconstant.NewInt(irtypes.I64, 0)
	}
}

func (g *Generator) callPrintf(args ...irvalue.Value) {
	g.cur.block.NewCall(g.printfFn, args...)
}

// lowerPrintln picks a printf format string from the first argument's
// static type (§4.5/println: "%lld\n" int, "%g\n" float, "%s\n" string,
// "%d\n" bool); a multi-argument call treats arg-0 as an explicit
// format string passed straight through to printf.
func (g *Generator) lowerPrintln(argExprs []ast.Expr) irvalue.Value {
	if len(argExprs) > 1 {
		fmtV := g.lowerExpr(argExprs[0])
		rest := make([]irvalue.Value, 0, len(argExprs))
		rest = append(rest, fmtV)
		for _, a := range argExprs[1:] {
			rest = append(rest, g.lowerExpr(a))
		}
		g.callPrintf(rest...)
		return irconstant.NewInt(irtypes.I64, 0)
	}
	if len(argExprs) == 0 {
		g.callPrintf(g.stringConstant("\n"))
		return irconstant.NewInt(irtypes.I64, 0)
	}
	arg := argExprs[0]
	v := g.lowerExpr(arg)
	t := arg.Type()
	format := "%lld\n"
	if t != nil && t.Kind == types.KindBuiltin {
		switch {
		case t.Builtin.IsFloat():
			format = "%g\n"
		case t.Builtin == types.String:
			format = "%s\n"
		case t.Builtin == types.Bool:
			format = "%d\n"
		case t.Builtin.IsUnsignedInt():
			format = "%llu\n"
		}
	}
	g.callPrintf(g.stringConstant(format), v)
	return irconstant.NewInt(irtypes.I64, 0)
}
