package infer

import (
	"github.com/philang/phi/internal/ast"
	"github.com/philang/phi/internal/diagnostics"
	"github.com/philang/phi/internal/types"
)

// stmtInferrer adapts *Engine to ast.StmtVisitor.
type stmtInferrer Engine

func (w *stmtInferrer) e() *Engine { return (*Engine)(w) }

func (w *stmtInferrer) VisitBlockStmt(s *ast.BlockStmt) { w.e().inferBlock(s) }

// VisitVarDeclStmt types the local: an explicit annotation wins and the
// initializer (if any) must unify with it; otherwise the initializer's
// inferred type is the local's type directly.
func (w *stmtInferrer) VisitVarDeclStmt(s *ast.VarDeclStmt) {
	e := w.e()
	d := s.Decl
	if d.Annotation != nil {
		d.Resolved = e.typeExprToType(d.Annotation)
		if d.Initializer != nil {
			e.unify(d.Initializer.Pos(), d.Resolved, e.inferExpr(d.Initializer))
		}
		return
	}
	if d.Initializer != nil {
		d.Resolved = e.inferExpr(d.Initializer)
		return
	}
	d.Resolved = e.fresh(types.DomainAny)
}

func (w *stmtInferrer) VisitExprStmt(s *ast.ExprStmt) { w.e().inferExpr(s.Expr) }

// VisitReturnStmt unifies the returned expression's type (or null, for a
// bare return) against the enclosing function's declared return type.
func (w *stmtInferrer) VisitReturnStmt(s *ast.ReturnStmt) {
	e := w.e()
	if s.Value != nil {
		e.unify(s.Pos(), e.currentReturn, e.inferExpr(s.Value))
		return
	}
	e.unify(s.Pos(), e.currentReturn, e.arena.Builtin(types.Null))
}

func (w *stmtInferrer) VisitIfStmt(s *ast.IfStmt) {
	e := w.e()
	e.unify(s.Cond.Pos(), e.arena.Builtin(types.Bool), e.inferExpr(s.Cond))
	e.inferBlock(s.Then)
	if s.Else != nil {
		e.inferStmt(s.Else)
	}
}

func (w *stmtInferrer) VisitWhileStmt(s *ast.WhileStmt) {
	e := w.e()
	e.unify(s.Cond.Pos(), e.arena.Builtin(types.Bool), e.inferExpr(s.Cond))
	e.inferBlock(s.Body)
}

// VisitForRangeStmt types the loop variable as the range expression's
// element type; Phi's only range-producing expression is RangeExpr,
// whose operand type IS the element type (no separate `range<T>` wrapper
// carries the element statically, since RangeExpr's own static type is
// the builtin `range` marker used only by codegen's two-word lowering).
func (w *stmtInferrer) VisitForRangeStmt(s *ast.ForRangeStmt) {
	e := w.e()
	elem := e.fresh(types.DomainInt)
	if r, ok := s.Range.(*ast.RangeExpr); ok {
		e.unify(r.Pos(), elem, e.inferExpr(r.Start))
		e.unify(r.Pos(), elem, e.inferExpr(r.End))
	} else {
		e.unify(s.Range.Pos(), e.arena.Builtin(types.RangeBuiltin), e.inferExpr(s.Range))
	}
	s.Var.Resolved = elem
	e.inferBlock(s.Body)
}

func (w *stmtInferrer) VisitBreakStmt(s *ast.BreakStmt) {}

func (w *stmtInferrer) VisitContinueStmt(s *ast.ContinueStmt) {}

func (w *stmtInferrer) VisitDeferStmt(s *ast.DeferStmt) { w.e().inferExpr(s.Expr) }

// inferPattern binds pat's variables against scrutinee's type.
// LiteralPattern requires its value to match the scrutinee exactly;
// VariantPattern requires the scrutinee to be the matching enum and
// binds each payload name to the variant's payload type (or, for a
// tuple payload bound by multiple names, to the tuple's elements
// positionally); AlternationPattern is left untyped, its rejection
// deferred to the checker per the spec's documented ambiguity.
func (e *Engine) inferPattern(p ast.Pattern, scrutinee *types.Type) {
	switch pat := p.(type) {
	case *ast.WildcardPattern:
	case *ast.LiteralPattern:
		e.unify(pat.Pos(), scrutinee, e.inferExpr(pat.Value))
	case *ast.VariantPattern:
		decl, adtArgs := unwrapAdt(scrutinee)
		ed, ok := decl.(*ast.EnumDecl)
		if !ok {
			e.errorf(diagnostics.KindUnifyError, pat.Pos(), "%s is not an enum", scrutinee.String())
			e.abort()
		}
		vd, ok := ed.VariantByName(pat.VariantName)
		if !ok {
			e.errorf(diagnostics.KindUnresolvedName, pat.Pos(), "%q is not a variant of %q", pat.VariantName, ed.Name)
			e.abort()
		}
		pat.Resolved = vd
		gmap := make(map[types.Decl]*types.Type, len(ed.TypeParams))
		for i, tp := range ed.TypeParams {
			if i < len(adtArgs) {
				gmap[tp] = adtArgs[i]
			}
		}
		e.bindVariantPayload(pat, vd, gmap)
	case *ast.AlternationPattern:
		for _, sub := range pat.Patterns {
			e.inferPattern(sub, scrutinee)
		}
	}
}

func (e *Engine) bindVariantPayload(pat *ast.VariantPattern, vd *ast.VariantDecl, gmap map[types.Decl]*types.Type) {
	if vd.Payload == nil {
		if len(pat.Bindings) != 0 {
			e.errorf(diagnostics.KindArityMismatch, pat.Pos(), "variant %q carries no payload", vd.Name)
		}
		return
	}
	payloadType := substGenerics(vd.Resolved, gmap)
	if len(pat.Bindings) == 1 {
		pat.Bindings[0].Resolved = payloadType
		return
	}
	if payloadType.Kind == types.KindTuple && len(payloadType.Elems) == len(pat.Bindings) {
		for i, b := range pat.Bindings {
			b.Resolved = payloadType.Elems[i]
		}
		return
	}
	e.errorf(diagnostics.KindArityMismatch, pat.Pos(), "variant %q payload arity mismatch: %d binding(s)", vd.Name, len(pat.Bindings))
}
