package codegen

import (
	irconstant "github.com/llir/llvm/ir/constant"
	irenum "github.com/llir/llvm/ir/enum"
	irtypes "github.com/llir/llvm/ir/types"
	irvalue "github.com/llir/llvm/ir/value"

	"github.com/philang/phi/internal/ast"
	"github.com/philang/phi/internal/types"
)

// lowerMatchExpr lowers a match expression as a linear chain of
// test/body blocks terminating in a shared merge block that loads the
// arm's stored result — the "linear slow-path" half of §4.5's dual
// strategy; a pure-variant-pattern match over a single enum could take
// the switch fast path instead, left as a possible future optimization
// since the linear form is always correct.
func (g *Generator) lowerMatchExpr(n *ast.MatchExpr) irvalue.Value {
	scrVal := g.lowerExpr(n.Scrutinee)
	void := n.Type() == nil || n.Type().Kind == types.KindBuiltin && n.Type().Builtin == types.Null
	resultTy := g.llvmType(n.Type(), g.cur.gmap)
	var resultAlloca irvalue.Value
	if !void {
		resultAlloca = g.cur.block.NewAlloca(resultTy)
	}
	mergeBlk := g.cur.freshBlock("match.end")

	for i, arm := range n.Arms {
		bodyBlk := g.cur.freshBlock("match.body")
		var nextBlk = mergeBlk
		if i != len(n.Arms)-1 {
			nextBlk = g.cur.freshBlock("match.test")
		}

		cond := g.testPattern(arm.Pattern, scrVal, n.Scrutinee.Type())
		if cond == nil {
			g.cur.block.NewBr(bodyBlk)
		} else {
			g.cur.block.NewCondBr(cond, bodyBlk, nextBlk)
		}

		g.cur.block = bodyBlk
		g.bindPattern(arm.Pattern, scrVal, n.Scrutinee.Type())
		g.lowerBlock(arm.Body)
		if g.cur.block.Term == nil {
			if !void && arm.Result != nil {
				v := g.lowerExpr(arm.Result)
				g.cur.block.NewStore(v, resultAlloca)
			}
			g.cur.block.NewBr(mergeBlk)
		}

		g.cur.block = nextBlk
	}

	g.cur.block = mergeBlk
	if void {
		// Void matches skip the PHI/load entirely (§4.5) — there is no
		// result to merge, only control flow.
		return nil
	}
	return g.cur.block.NewLoad(resultTy, resultAlloca)
}

// testPattern returns the condition an arm's guard must satisfy, or nil
// if the pattern always matches (Wildcard, or a variant binding with no
// further constraint).
func (g *Generator) testPattern(p ast.Pattern, scrVal irvalue.Value, scrType *types.Type) irvalue.Value {
	switch pat := p.(type) {
	case *ast.WildcardPattern:
		return nil
	case *ast.LiteralPattern:
		lit := g.lowerExpr(pat.Value)
		if pat.Value.Type() != nil && pat.Value.Type().Kind == types.KindBuiltin && pat.Value.Type().Builtin.IsFloat() {
			return g.cur.block.NewFCmp(irenum.FPredOEQ, scrVal, lit)
		}
		return g.cur.block.NewICmp(irenum.IPredEQ, scrVal, lit)
	case *ast.VariantPattern:
		zero := irconstant.NewInt(irtypes.I32, 0)
		tagIdx := irconstant.NewInt(irtypes.I32, 0)
		st := g.adtType(pat.Resolved.Parent, appliedArgs(scrType))
		tagGep := g.cur.block.NewGetElementPtr(st, scrVal, zero, tagIdx)
		tag := g.cur.block.NewLoad(irtypes.I32, tagGep)
		want := irconstant.NewInt(irtypes.I32, int64(pat.Resolved.Index))
		return g.cur.block.NewICmp(irenum.IPredEQ, tag, want)
	case *ast.AlternationPattern:
		if len(pat.Patterns) == 0 {
			return nil
		}
		return g.testPattern(pat.Patterns[0], scrVal, scrType)
	default:
		return nil
	}
}

// bindPattern materializes a VariantPattern's payload bindings into
// fresh allocas so the arm body can reference them as ordinary locals.
// Each binding's own Resolved field already carries its concrete,
// gmap-substituted type from inference's bindVariantPayload, so no
// re-substitution is needed here.
func (g *Generator) bindPattern(p ast.Pattern, scrVal irvalue.Value, scrType *types.Type) {
	pat, ok := p.(*ast.VariantPattern)
	if !ok || len(pat.Bindings) == 0 {
		return
	}
	st := g.adtType(pat.Resolved.Parent, appliedArgs(scrType))
	zero := irconstant.NewInt(irtypes.I32, 0)
	payloadIdx := irconstant.NewInt(irtypes.I32, 1)
	payloadGep := g.cur.block.NewGetElementPtr(st, scrVal, zero, payloadIdx)

	if len(pat.Bindings) == 1 {
		llTy := g.llvmType(pat.Bindings[0].Resolved, g.cur.gmap)
		cast := g.cur.block.NewBitCast(payloadGep, irtypes.NewPointer(llTy))
		alloca := g.cur.block.NewAlloca(llTy)
		g.cur.block.NewStore(g.cur.block.NewLoad(llTy, cast), alloca)
		g.cur.locals[pat.Bindings[0]] = alloca
		return
	}

	elemTypes := make([]irtypes.Type, len(pat.Bindings))
	for i, b := range pat.Bindings {
		elemTypes[i] = g.llvmType(b.Resolved, g.cur.gmap)
	}
	llTupleTy := irtypes.NewStruct(elemTypes...)
	cast := g.cur.block.NewBitCast(payloadGep, irtypes.NewPointer(llTupleTy))
	tuple := g.cur.block.NewLoad(llTupleTy, cast)
	for i, b := range pat.Bindings {
		elemV := g.cur.block.NewExtractValue(tuple, uint64(i))
		alloca := g.cur.block.NewAlloca(elemV.Type())
		g.cur.block.NewStore(elemV, alloca)
		g.cur.locals[b] = alloca
	}
}
