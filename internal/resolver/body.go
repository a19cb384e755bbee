package resolver

import (
	"github.com/philang/phi/internal/ast"
	"github.com/philang/phi/internal/diagnostics"
	"github.com/philang/phi/internal/symbols"
	"github.com/philang/phi/internal/token"
)

// resolveBody walks item's body/bodies (Pass 2), binding every DeclRef
// and remaining TypeRef, and enforcing return/break/continue validity.
func (r *Resolver) resolveBody(item ast.Decl) {
	switch d := item.(type) {
	case *ast.FunDecl:
		g := r.enterTypeParamScope(d.TypeParams)
		fg := r.table.EnterFunction()
		for _, p := range d.Params {
			r.defineOrReport(symbols.NsLocal, p.Name, p)
		}
		if d.Body != nil {
			r.walkBlock(d.Body)
		}
		fg.Release()
		g.Release()

	case *ast.StructDecl:
		for _, m := range d.Methods {
			r.resolveMethodBody(m, d.TypeParams)
		}

	case *ast.EnumDecl:
		for _, m := range d.Methods {
			r.resolveMethodBody(m, d.TypeParams)
		}
	}
}

func (r *Resolver) resolveMethodBody(m *ast.MethodDecl, parentParams []*ast.TypeParamDecl) {
	g := r.enterTypeParamScope(append(append([]*ast.TypeParamDecl{}, parentParams...), m.TypeParams...))
	fg := r.table.EnterFunction()
	if !m.IsStatic {
		r.defineOrReport(symbols.NsLocal, "self", m.Self())
	}
	for _, p := range m.Params {
		r.defineOrReport(symbols.NsLocal, p.Name, p)
	}
	if m.Body != nil {
		r.walkBlock(m.Body)
	}
	fg.Release()
	g.Release()
}

func (r *Resolver) walkBlock(b *ast.BlockStmt) {
	g := r.table.Enter()
	defer g.Release()
	for _, s := range b.Stmts {
		r.walkStmt(s)
	}
}

// walkStmt dispatches via the ast.StmtVisitor double-dispatch interface,
// exercising the visitor machinery the AST package defines.
func (r *Resolver) walkStmt(s ast.Stmt) {
	s.Accept((*stmtWalker)(r))
}

// walkExpr dispatches via ast.ExprVisitor.
func (r *Resolver) walkExpr(e ast.Expr) {
	e.Accept((*exprWalker)(r))
}

// stmtWalker adapts *Resolver to ast.StmtVisitor without exposing those
// methods on Resolver's own method set.
type stmtWalker Resolver

func (w *stmtWalker) r() *Resolver { return (*Resolver)(w) }

func (w *stmtWalker) VisitBlockStmt(s *ast.BlockStmt) { w.r().walkBlock(s) }

func (w *stmtWalker) VisitVarDeclStmt(s *ast.VarDeclStmt) {
	r := w.r()
	if s.Decl.Initializer != nil {
		r.walkExpr(s.Decl.Initializer)
	}
	if s.Decl.Annotation != nil {
		r.resolveTypeExpr(s.Decl.Annotation)
	}
	r.defineOrReport(symbols.NsLocal, s.Decl.Name, s.Decl)
}

func (w *stmtWalker) VisitExprStmt(s *ast.ExprStmt) { w.r().walkExpr(s.Expr) }

func (w *stmtWalker) VisitReturnStmt(s *ast.ReturnStmt) {
	r := w.r()
	if !r.table.InFunction() {
		r.errorf(diagnostics.KindUnsupported, s.Pos(), "return outside of function")
	}
	if s.Value != nil {
		r.walkExpr(s.Value)
	}
}

func (w *stmtWalker) VisitIfStmt(s *ast.IfStmt) {
	r := w.r()
	r.walkExpr(s.Cond)
	r.walkBlock(s.Then)
	if s.Else != nil {
		r.walkStmt(s.Else)
	}
}

func (w *stmtWalker) VisitWhileStmt(s *ast.WhileStmt) {
	r := w.r()
	r.walkExpr(s.Cond)
	lg := r.table.EnterLoop()
	r.walkBlock(s.Body)
	lg.Release()
}

func (w *stmtWalker) VisitForRangeStmt(s *ast.ForRangeStmt) {
	r := w.r()
	r.walkExpr(s.Range)
	lg := r.table.EnterLoop()
	g := r.table.Enter()
	r.defineOrReport(symbols.NsLocal, s.Var.Name, s.Var)
	for _, st := range s.Body.Stmts {
		r.walkStmt(st)
	}
	g.Release()
	lg.Release()
}

func (w *stmtWalker) VisitBreakStmt(s *ast.BreakStmt) {
	r := w.r()
	if !r.table.InLoop() {
		r.errorf(diagnostics.KindBreakOutsideLoop, s.Pos(), "break outside of loop")
	}
}

func (w *stmtWalker) VisitContinueStmt(s *ast.ContinueStmt) {
	r := w.r()
	if !r.table.InLoop() {
		r.errorf(diagnostics.KindBreakOutsideLoop, s.Pos(), "continue outside of loop")
	}
}

func (w *stmtWalker) VisitDeferStmt(s *ast.DeferStmt) { w.r().walkExpr(s.Expr) }

// exprWalker adapts *Resolver to ast.ExprVisitor.
type exprWalker Resolver

func (w *exprWalker) r() *Resolver { return (*Resolver)(w) }

func (w *exprWalker) VisitIntLiteral(*ast.IntLiteral) any     { return nil }
func (w *exprWalker) VisitFloatLiteral(*ast.FloatLiteral) any { return nil }
func (w *exprWalker) VisitBoolLiteral(*ast.BoolLiteral) any   { return nil }
func (w *exprWalker) VisitCharLiteral(*ast.CharLiteral) any   { return nil }
func (w *exprWalker) VisitStrLiteral(*ast.StrLiteral) any     { return nil }

func (w *exprWalker) VisitRangeExpr(e *ast.RangeExpr) any {
	r := w.r()
	r.walkExpr(e.Start)
	r.walkExpr(e.End)
	return nil
}

func (w *exprWalker) VisitTupleExpr(e *ast.TupleExpr) any {
	for _, el := range e.Elems {
		w.r().walkExpr(el)
	}
	return nil
}

func (w *exprWalker) VisitArrayExpr(e *ast.ArrayExpr) any {
	for _, el := range e.Elems {
		w.r().walkExpr(el)
	}
	return nil
}

func (w *exprWalker) VisitDeclRef(e *ast.DeclRef) any {
	r := w.r()
	if sym, ok := r.table.Lookup(symbols.NsLocal, e.Name); ok {
		e.Decl = sym.Decl.(ast.ValueDecl)
		return nil
	}
	// Not a local: leave Decl nil. A bare function-name reference used
	// as a value (not immediately called) is resolved by FunCall's own
	// lookup when this DeclRef is a call callee; otherwise it is an
	// unresolved-name error.
	if _, ok := r.table.Lookup(symbols.NsFunction, e.Name); ok {
		return nil
	}
	pool := append(r.table.Names(symbols.NsLocal), r.table.Names(symbols.NsFunction)...)
	d := r.errorf(diagnostics.KindUnresolvedName, e.Pos(), "unknown name %q", e.Name)
	if best, ok := symbols.Suggest(e.Name, pool); ok {
		d.WithNote(token.NoPos, "did you mean %q?", best)
	}
	return nil
}

func (w *exprWalker) VisitFunCall(e *ast.FunCall) any {
	r := w.r()
	if ref, ok := e.Callee.(*ast.DeclRef); ok {
		if sym, ok := r.table.Lookup(symbols.NsFunction, ref.Name); ok {
			e.ResolvedFun = sym.Decl.(*ast.FunDecl)
		} else if ref.Name == "println" {
			// println has no FunDecl anywhere: codegen detects this exact
			// shape (unresolved DeclRef named "println", no ResolvedFun) at
			// the call site itself, so resolution leaves it untouched rather
			// than reporting an unresolved-name error.
		} else {
			r.walkExpr(e.Callee)
		}
	} else {
		r.walkExpr(e.Callee)
	}
	for _, ta := range e.TypeArgs {
		r.resolveTypeExpr(ta)
	}
	for _, a := range e.Args {
		r.walkExpr(a)
	}
	return nil
}

func (w *exprWalker) VisitMethodCall(e *ast.MethodCall) any {
	r := w.r()
	r.walkExpr(e.Base)
	for _, ta := range e.TypeArgs {
		r.resolveTypeExpr(ta)
	}
	for _, a := range e.Args {
		r.walkExpr(a)
	}
	return nil
}

func (w *exprWalker) VisitBinaryExpr(e *ast.BinaryExpr) any {
	r := w.r()
	r.walkExpr(e.Left)
	r.walkExpr(e.Right)
	return nil
}

func (w *exprWalker) VisitUnaryExpr(e *ast.UnaryExpr) any {
	w.r().walkExpr(e.Operand)
	return nil
}

func (w *exprWalker) VisitAdtInit(e *ast.AdtInit) any {
	r := w.r()
	if e.TypeRef != nil {
		r.resolveTypeExpr(e.TypeRef)
		if tr, ok := e.TypeRef.(*ast.TypeRef); ok {
			if sd, ok := tr.Decl.(*ast.StructDecl); ok {
				e.Decl = sd
			}
		}
	}
	for _, f := range e.Fields {
		r.walkExpr(f.Value)
	}
	return nil
}

func (w *exprWalker) VisitEnumInit(e *ast.EnumInit) any {
	r := w.r()
	if e.TypeRef != nil {
		r.resolveTypeExpr(e.TypeRef)
		if tr, ok := e.TypeRef.(*ast.TypeRef); ok {
			if ed, ok := tr.Decl.(*ast.EnumDecl); ok {
				e.Decl = ed
				if vd, ok := ed.VariantByName(e.Variant); ok {
					e.Target = vd
				} else {
					r.errorf(diagnostics.KindUnresolvedName, e.Pos(), "%q is not a variant of enum %q", e.Variant, ed.Name)
				}
			}
		}
	}
	if e.Payload != nil {
		r.walkExpr(e.Payload)
	}
	return nil
}

func (w *exprWalker) VisitFieldAccess(e *ast.FieldAccess) any {
	w.r().walkExpr(e.Base)
	return nil
}

func (w *exprWalker) VisitTupleIndex(e *ast.TupleIndex) any {
	w.r().walkExpr(e.Base)
	return nil
}

func (w *exprWalker) VisitArrayIndex(e *ast.ArrayIndex) any {
	r := w.r()
	r.walkExpr(e.Base)
	r.walkExpr(e.Index)
	return nil
}

func (w *exprWalker) VisitMatchExpr(e *ast.MatchExpr) any {
	r := w.r()
	r.walkExpr(e.Scrutinee)
	for _, arm := range e.Arms {
		g := r.table.Enter()
		r.walkPattern(arm.Pattern)
		if arm.Body != nil {
			for _, st := range arm.Body.Stmts {
				r.walkStmt(st)
			}
		}
		if arm.Result != nil {
			r.walkExpr(arm.Result)
		}
		g.Release()
	}
	return nil
}

func (w *exprWalker) VisitAssignExpr(e *ast.AssignExpr) any {
	r := w.r()
	r.walkExpr(e.Target)
	r.walkExpr(e.Value)
	return nil
}

func (w *exprWalker) VisitIntrinsicCall(e *ast.IntrinsicCall) any {
	r := w.r()
	for _, a := range e.Args {
		r.walkExpr(a)
	}
	return nil
}

// walkPattern binds VariantPattern's payload bindings as fresh locals
// and resolves the variant name against the pattern's enum (determined
// during inference, when the scrutinee's type is known) — name
// resolution here only validates LiteralPattern's inner expression and
// leaves rejecting AlternationPattern to the checker per the spec's
// documented ambiguity (this pass still walks into it so any
// DeclRefs inside its sub-patterns are at least visited, consistent with
// the rest of the resolver's "collect and continue" propagation policy).
func (r *Resolver) walkPattern(p ast.Pattern) {
	switch pat := p.(type) {
	case *ast.WildcardPattern:
	case *ast.LiteralPattern:
		r.walkExpr(pat.Value)
	case *ast.VariantPattern:
		for _, b := range pat.Bindings {
			r.defineOrReport(symbols.NsLocal, b.Name, b)
		}
	case *ast.AlternationPattern:
		for _, sub := range pat.Patterns {
			r.walkPattern(sub)
		}
	}
}
