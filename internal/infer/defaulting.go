package infer

import (
	"github.com/philang/phi/internal/ast"
	"github.com/philang/phi/internal/types"
	"github.com/philang/phi/internal/typesystem"
)

// defaultDomains binds every Var left unsolved after the walk to its
// domain's default concrete type (§4.3 Domain Defaulting), letting
// `let x = 1` type-check without an annotation.
func (e *Engine) defaultDomains() {
	for _, v := range e.freshVars {
		resolved := typesystem.Apply(e.subst, v)
		if resolved.Kind != types.KindVar {
			continue
		}
		switch resolved.VarDomain {
		case types.DomainInt:
			e.subst[resolved.VarID] = e.arena.Builtin(types.I32)
		case types.DomainFloat:
			e.subst[resolved.VarID] = e.arena.Builtin(types.F32)
		}
	}
}

// finalize applies the final substitution to every side-table entry and
// writes the result back onto its AST node (§4.3 "Finalization applies
// σ to the side-table and writes each result back into the AST").
func (e *Engine) finalize() {
	for expr, t := range e.typeMap {
		if t == nil {
			continue
		}
		expr.SetType(typesystem.Apply(e.subst, t))
	}
}

// ResolvedType exposes the finalized type of any expression this engine
// walked, for callers (the checker, the code generator) that need to
// read it back out without re-deriving it.
func (e *Engine) ResolvedType(expr ast.Expr) (*types.Type, bool) {
	t, ok := e.typeMap[expr]
	if !ok {
		return nil, false
	}
	return typesystem.Apply(e.subst, t), true
}
