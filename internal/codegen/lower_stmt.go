package codegen

import (
	"github.com/llir/llvm/ir"
	irconstant "github.com/llir/llvm/ir/constant"
	irenum "github.com/llir/llvm/ir/enum"
	irtypes "github.com/llir/llvm/ir/types"
	irvalue "github.com/llir/llvm/ir/value"

	"github.com/philang/phi/internal/ast"
	"github.com/philang/phi/internal/diagnostics"
	"github.com/philang/phi/internal/types"
)

// emitFunBody lowers one instantiation's body into fn, generalizing
// vm.Compiler's per-function locals/scope bookkeeping to SSA allocas.
// self is nil for a plain function.
func (g *Generator) emitFunBody(fn *ir.Func, params []*ast.ParamDecl, self *ast.SelfDecl, body *ast.BlockStmt, gmap map[types.Decl]*types.Type) {
	entry := fn.NewBlock("entry")
	fc := newFuncCtx(fn, entry, gmap)
	prevCur := g.cur
	g.cur = fc

	offset := 0
	if self != nil {
		fc.locals[self] = fn.Params[0]
		offset = 1
	}
	for i, p := range params {
		ty := g.llvmType(p.Resolved, gmap)
		alloca := fc.block.NewAlloca(ty)
		fc.block.NewStore(fn.Params[i+offset], alloca)
		fc.locals[p] = alloca
	}

	g.lowerBlock(body)
	if fc.block.Term == nil {
		g.runDefers()
		fc.block.NewRet(nil)
	}
	g.cur = prevCur
}

func (g *Generator) lowerBlock(b *ast.BlockStmt) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		g.lowerStmt(s)
		if g.cur.block.Term != nil {
			return
		}
	}
}

func (g *Generator) lowerStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.BlockStmt:
		g.lowerBlock(st)
	case *ast.VarDeclStmt:
		g.lowerVarDecl(st.Decl)
	case *ast.ExprStmt:
		g.lowerExpr(st.Expr)
	case *ast.ReturnStmt:
		g.lowerReturn(st)
	case *ast.IfStmt:
		g.lowerIf(st)
	case *ast.WhileStmt:
		g.lowerWhile(st)
	case *ast.ForRangeStmt:
		g.lowerForRange(st)
	case *ast.BreakStmt:
		g.lowerBreak(st)
	case *ast.ContinueStmt:
		g.lowerContinue(st)
	case *ast.DeferStmt:
		g.cur.defers = append(g.cur.defers, st.Expr)
	}
}

func (g *Generator) lowerVarDecl(d *ast.VarDecl) {
	ty := g.llvmType(d.Resolved, g.cur.gmap)
	alloca := g.cur.block.NewAlloca(ty)
	if d.Initializer != nil {
		v := g.lowerExpr(d.Initializer)
		g.cur.block.NewStore(v, alloca)
	}
	g.cur.locals[d] = alloca
}

// runDefers executes the enclosing function's deferred expressions in
// LIFO order, the ordering P8 requires on every exit path.
func (g *Generator) runDefers() {
	for i := len(g.cur.defers) - 1; i >= 0; i-- {
		g.lowerExpr(g.cur.defers[i])
	}
}

func (g *Generator) lowerReturn(st *ast.ReturnStmt) {
	if st.Value != nil {
		v := g.lowerExpr(st.Value)
		g.runDefers()
		g.cur.block.NewRet(v)
		return
	}
	g.runDefers()
	g.cur.block.NewRet(nil)
}

func (g *Generator) lowerIf(st *ast.IfStmt) {
	cond := g.lowerExpr(st.Cond)
	thenBlk := g.cur.freshBlock("if.then")
	mergeBlk := g.cur.freshBlock("if.end")
	elseBlk := mergeBlk
	hasElse := st.Else != nil
	if hasElse {
		elseBlk = g.cur.freshBlock("if.else")
	}
	g.cur.block.NewCondBr(cond, thenBlk, elseBlk)

	g.cur.block = thenBlk
	g.lowerBlock(st.Then)
	if g.cur.block.Term == nil {
		g.cur.block.NewBr(mergeBlk)
	}

	if hasElse {
		g.cur.block = elseBlk
		g.lowerStmt(st.Else)
		if g.cur.block.Term == nil {
			g.cur.block.NewBr(mergeBlk)
		}
	}

	g.cur.block = mergeBlk
}

func (g *Generator) lowerWhile(st *ast.WhileStmt) {
	condBlk := g.cur.freshBlock("while.cond")
	bodyBlk := g.cur.freshBlock("while.body")
	endBlk := g.cur.freshBlock("while.end")

	g.cur.block.NewBr(condBlk)
	g.cur.block = condBlk
	cond := g.lowerExpr(st.Cond)
	g.cur.block.NewCondBr(cond, bodyBlk, endBlk)

	g.cur.block = bodyBlk
	g.cur.pushLoop(condBlk, endBlk)
	g.lowerBlock(st.Body)
	g.cur.popLoop()
	if g.cur.block.Term == nil {
		g.cur.block.NewBr(condBlk)
	}

	g.cur.block = endBlk
}

func (g *Generator) lowerForRange(st *ast.ForRangeStmt) {
	var startV, endV irvalue.Value
	inclusive := false
	if re, ok := st.Range.(*ast.RangeExpr); ok {
		startV = g.lowerExpr(re.Start)
		endV = g.lowerExpr(re.End)
		inclusive = re.Inclusive
	} else {
		rv := g.lowerExpr(st.Range)
		startV = g.cur.block.NewExtractValue(rv, 0)
		endV = g.cur.block.NewExtractValue(rv, 1)
	}

	ty := g.llvmType(st.Var.Resolved, g.cur.gmap)
	idxAlloca := g.cur.block.NewAlloca(ty)
	g.cur.block.NewStore(startV, idxAlloca)
	g.cur.locals[st.Var] = idxAlloca

	condBlk := g.cur.freshBlock("for.cond")
	bodyBlk := g.cur.freshBlock("for.body")
	incBlk := g.cur.freshBlock("for.inc")
	endBlk := g.cur.freshBlock("for.end")

	g.cur.block.NewBr(condBlk)
	g.cur.block = condBlk
	cur := g.cur.block.NewLoad(ty, idxAlloca)
	pred := irenum.IPredSLT
	if inclusive {
		pred = irenum.IPredSLE
	}
	cond := g.cur.block.NewICmp(pred, cur, endV)
	g.cur.block.NewCondBr(cond, bodyBlk, endBlk)

	g.cur.block = bodyBlk
	g.cur.pushLoop(incBlk, endBlk)
	g.lowerBlock(st.Body)
	g.cur.popLoop()
	if g.cur.block.Term == nil {
		g.cur.block.NewBr(incBlk)
	}

	g.cur.block = incBlk
	cur2 := g.cur.block.NewLoad(ty, idxAlloca)
	one := irconstant.NewInt(ty.(*irtypes.IntType), 1)
	next := g.cur.block.NewAdd(cur2, one)
	g.cur.block.NewStore(next, idxAlloca)
	g.cur.block.NewBr(condBlk)

	g.cur.block = endBlk
}

func (g *Generator) lowerBreak(st *ast.BreakStmt) {
	lc, ok := g.cur.currentLoop()
	if !ok {
		g.sink.Add(diagnostics.New(diagnostics.KindBreakOutsideLoop, st.Pos(), "break outside any loop"))
		return
	}
	g.cur.block.NewBr(lc.breakTarget)
}

func (g *Generator) lowerContinue(st *ast.ContinueStmt) {
	lc, ok := g.cur.currentLoop()
	if !ok {
		g.sink.Add(diagnostics.New(diagnostics.KindBreakOutsideLoop, st.Pos(), "continue outside any loop"))
		return
	}
	g.cur.block.NewBr(lc.continueTarget)
}
