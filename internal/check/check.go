// Package check implements Phi's post-inference type checker: a
// defensive sweep that assumes every node already carries a resolved
// type and validates structural rules inference does not encode
// directly (§4.4). Grounded on the teacher's analyzer validation
// idiom — a dedicated second pass over an already-typed tree, one
// function per rule, collecting diagnostics rather than halting on
// first failure — extended here with the AlternationPattern rejection
// the spec's own Open Question defers to this stage.
package check

import (
	"github.com/philang/phi/internal/ast"
	"github.com/philang/phi/internal/diagnostics"
	"github.com/philang/phi/internal/types"
)

// Checker walks a Module after name resolution and inference have run,
// reporting every structural violation it finds to sink.
type Checker struct {
	sink *diagnostics.Sink
}

func New(sink *diagnostics.Sink) *Checker {
	return &Checker{sink: sink}
}

// Check walks every item in mod and returns whether the module is free
// of checker-reported violations. Per the propagation policy, one bad
// item does not stop later items from being checked.
func (c *Checker) Check(mod *ast.Module) bool {
	before := c.sink.Len()
	for _, item := range mod.Items {
		c.checkDecl(item)
	}
	return c.sink.Len() == before
}

func (c *Checker) checkDecl(d ast.Decl) {
	switch decl := d.(type) {
	case *ast.FunDecl:
		c.checkFunLike(decl.ReturnType, decl.Body)
	case *ast.StructDecl:
		for _, m := range decl.Methods {
			c.checkFunLike(m.ReturnType, m.Body)
		}
	case *ast.EnumDecl:
		for _, m := range decl.Methods {
			c.checkFunLike(m.ReturnType, m.Body)
		}
	}
}

// checkFunLike walks one function or method body, tracking whether its
// declared return type is void (ReturnType == nil, §3 "ReturnType TypeExpr
// // nil means null/void") so every ReturnStmt inside can be checked for
// value-presence against it.
func (c *Checker) checkFunLike(returnType ast.TypeExpr, body *ast.BlockStmt) {
	if body == nil {
		return
	}
	sc := &stmtChecker{c: c, voidReturn: returnType == nil}
	sc.block(body)
}

// sameType compares two finalized types by identity: the arena interns
// every structural type, so after inference + defaulting two equal
// types are always the same pointer (types.Arena's own doc comment).
func sameType(a, b *types.Type) bool {
	if a == nil || b == nil {
		return true
	}
	return a == b
}
