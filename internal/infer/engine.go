// Package infer implements Phi's Algorithm W type inference: constraint
// generation via a structural AST walk, solved incrementally through
// internal/typesystem's unifier, with a single accumulated substitution
// and a per-expression side-table mirroring the teacher's
// Analyzer{TypeMap, GlobalSubst}. Grounded on
// funvibe-funxy/internal/analyzer/inference.go's InferenceContext shape
// and the inference_calls.go/inference_control.go rule families, trimmed
// to Phi's closed type set (no traits, no witnesses, no row types).
package infer

import (
	"github.com/philang/phi/internal/ast"
	"github.com/philang/phi/internal/diagnostics"
	"github.com/philang/phi/internal/token"
	"github.com/philang/phi/internal/types"
	"github.com/philang/phi/internal/typesystem"
)

// Engine carries the state of one inference run: the type arena it mints
// fresh variables from, the accumulated substitution, the diagnostic
// sink, and the expression side-table later applied and written back
// into the AST during finalization.
type Engine struct {
	arena *types.Arena
	sink  *diagnostics.Sink

	subst    typesystem.Subst
	typeMap  map[ast.Expr]*types.Type
	freshVars []*types.Type

	currentReturn *types.Type // declared return type of the function/method being walked
}

func New(arena *types.Arena, sink *diagnostics.Sink) *Engine {
	return &Engine{
		arena:   arena,
		sink:    sink,
		subst:   typesystem.NewSubst(),
		typeMap: make(map[ast.Expr]*types.Type),
	}
}

// abortItem is the panic value used to unwind out of a single top-level
// item's inference on the first unification failure, per the spec's
// failure semantics: inference does not recover within an item, but
// later items are still attempted.
type abortItem struct{}

// Infer runs inference over every item in mod, isolating failures per
// item (§4.3 "Failure semantics"), then defaults any Var left unsolved
// and writes every result back into the AST.
func (e *Engine) Infer(mod *ast.Module) {
	for _, item := range mod.Items {
		e.declareHeaderTypes(item)
	}
	for _, item := range mod.Items {
		e.inferItemSafe(item)
	}
	e.defaultDomains()
	e.finalize()
}

func (e *Engine) inferItemSafe(item ast.Decl) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(abortItem); ok {
				return
			}
			panic(r)
		}
	}()
	e.inferItem(item)
}

func (e *Engine) inferItem(item ast.Decl) {
	switch d := item.(type) {
	case *ast.FunDecl:
		e.inferFunBody(d.Params, d.Body, d.Resolved)
	case *ast.StructDecl:
		for _, m := range d.Methods {
			e.inferMethodBody(m)
		}
	case *ast.EnumDecl:
		for _, m := range d.Methods {
			e.inferMethodBody(m)
		}
	}
}

func (e *Engine) inferFunBody(params []*ast.ParamDecl, body *ast.BlockStmt, funType *types.Type) {
	if body == nil {
		return
	}
	savedReturn := e.currentReturn
	e.currentReturn = funType.Result
	e.inferBlock(body)
	e.currentReturn = savedReturn
}

func (e *Engine) inferMethodBody(m *ast.MethodDecl) {
	if m.Body == nil {
		return
	}
	savedReturn := e.currentReturn
	e.currentReturn = m.Resolved.Result
	e.inferBlock(m.Body)
	e.currentReturn = savedReturn
}

// fresh mints a new unification variable and records it for the final
// domain-defaulting pass.
func (e *Engine) fresh(domain types.Domain) *types.Type {
	v := e.arena.Fresh(domain)
	e.freshVars = append(e.freshVars, v)
	return v
}

// unify unifies a and b under the engine's current substitution,
// composing any newly discovered bindings into it. On failure it reports
// a UnifyError diagnostic and aborts the enclosing item.
func (e *Engine) unify(pos token.Position, a, b *types.Type) {
	a = typesystem.Apply(e.subst, a)
	b = typesystem.Apply(e.subst, b)
	s, err := typesystem.Unify(a, b)
	if err != nil {
		ue, _ := err.(*typesystem.UnifyError)
		msg := "cannot unify %s with %s"
		if ue != nil && ue.OccursVar {
			msg = "occurs check failed unifying %s with %s"
		} else if ue != nil && ue.DomainFail {
			msg = "%s does not admit %s"
		}
		e.sink.Addf(diagnostics.KindUnifyError, pos, msg, a.String(), b.String())
		panic(abortItem{})
	}
	e.subst = typesystem.Compose(s, e.subst)
}

func (e *Engine) errorf(kind diagnostics.Kind, pos token.Position, format string, args ...interface{}) {
	e.sink.Addf(kind, pos, format, args...)
}

func (e *Engine) abort() {
	panic(abortItem{})
}

// record types an expression in the side-table, per the teacher's
// TypeMap convention.
func (e *Engine) record(expr ast.Expr, t *types.Type) *types.Type {
	e.typeMap[expr] = t
	return t
}

// inferExpr dispatches through ast.ExprVisitor and records the result.
func (e *Engine) inferExpr(expr ast.Expr) *types.Type {
	t, _ := expr.Accept((*exprInferrer)(e)).(*types.Type)
	return e.record(expr, t)
}

// inferBlock opens no scope of its own (scoping was the resolver's job);
// it simply walks statements in order.
func (e *Engine) inferBlock(b *ast.BlockStmt) {
	for _, s := range b.Stmts {
		e.inferStmt(s)
	}
}

func (e *Engine) inferStmt(s ast.Stmt) {
	s.Accept((*stmtInferrer)(e))
}
