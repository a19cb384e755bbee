package check

import (
	"testing"

	"github.com/philang/phi/internal/ast"
	"github.com/philang/phi/internal/diagnostics"
	"github.com/philang/phi/internal/token"
	"github.com/philang/phi/internal/types"
)

var pos = token.Position{Line: 1, Column: 1}

func builtinRef(name string) *ast.TypeRef {
	t := ast.NewTypeRef(pos, name, nil)
	t.Builtin = true
	return t
}

// TestCheckReturnWithValueInVoidFunction checks `fun f() { return 1 }`
// (no declared return type) is rejected.
func TestCheckReturnWithValueInVoidFunction(t *testing.T) {
	arena := types.NewArena()
	lit := ast.NewIntLiteral(pos, 1)
	lit.SetType(arena.Builtin(types.I32))

	fn := ast.NewFunDecl(pos, "f")
	fn.Body = ast.NewBlockStmt(pos, []ast.Stmt{ast.NewReturnStmt(pos, lit)})
	mod := &ast.Module{Items: []ast.Decl{fn}}

	sink := diagnostics.NewSink()
	ok := New(sink).Check(mod)
	if ok {
		t.Fatalf("expected a return-mismatch diagnostic")
	}
}

// TestCheckReturnMissingValue checks `fun f() -> i32 { return }` is
// rejected for omitting the value a non-void return requires.
func TestCheckReturnMissingValue(t *testing.T) {
	fn := ast.NewFunDecl(pos, "f")
	fn.ReturnType = builtinRef("i32")
	fn.Body = ast.NewBlockStmt(pos, []ast.Stmt{ast.NewReturnStmt(pos, nil)})
	mod := &ast.Module{Items: []ast.Decl{fn}}

	sink := diagnostics.NewSink()
	ok := New(sink).Check(mod)
	if ok {
		t.Fatalf("expected a return-mismatch diagnostic")
	}
}

// TestCheckReturnMatchingValueAccepted checks the well-typed case raises
// nothing.
func TestCheckReturnMatchingValueAccepted(t *testing.T) {
	arena := types.NewArena()
	lit := ast.NewIntLiteral(pos, 1)
	lit.SetType(arena.Builtin(types.I32))

	fn := ast.NewFunDecl(pos, "f")
	fn.ReturnType = builtinRef("i32")
	fn.Body = ast.NewBlockStmt(pos, []ast.Stmt{ast.NewReturnStmt(pos, lit)})
	mod := &ast.Module{Items: []ast.Decl{fn}}

	sink := diagnostics.NewSink()
	if !New(sink).Check(mod) {
		t.Fatalf("unexpected diagnostics: %v", sink.All())
	}
}

// TestCheckEmptyMatchRejected checks a match with zero arms is flagged
// non-exhaustive.
func TestCheckEmptyMatchRejected(t *testing.T) {
	arena := types.NewArena()
	scrutinee := ast.NewIntLiteral(pos, 1)
	scrutinee.SetType(arena.Builtin(types.I32))
	m := &ast.MatchExpr{Scrutinee: scrutinee}
	m.SetType(nil)

	fn := ast.NewFunDecl(pos, "f")
	fn.Body = ast.NewBlockStmt(pos, []ast.Stmt{ast.NewExprStmt(pos, m)})
	mod := &ast.Module{Items: []ast.Decl{fn}}

	sink := diagnostics.NewSink()
	ok := New(sink).Check(mod)
	if ok {
		t.Fatalf("expected a non-exhaustive diagnostic for an empty match")
	}
}

// TestCheckAlternationPatternRejected checks a match arm using `A | B`
// is flagged unsupported rather than silently accepted.
func TestCheckAlternationPatternRejected(t *testing.T) {
	arena := types.NewArena()
	scrutinee := ast.NewIntLiteral(pos, 1)
	scrutinee.SetType(arena.Builtin(types.I32))

	one := ast.NewIntLiteral(pos, 1)
	one.SetType(arena.Builtin(types.I32))
	two := ast.NewIntLiteral(pos, 2)
	two.SetType(arena.Builtin(types.I32))
	alt := &ast.AlternationPattern{Patterns: []ast.Pattern{
		ast.NewLiteralPattern(pos, one),
		ast.NewLiteralPattern(pos, two),
	}}
	result := ast.NewIntLiteral(pos, 0)
	result.SetType(arena.Builtin(types.I32))

	m := &ast.MatchExpr{Scrutinee: scrutinee, Arms: []*ast.MatchArm{
		{Pattern: alt, Result: result},
	}}
	m.SetType(arena.Builtin(types.I32))

	fn := ast.NewFunDecl(pos, "f")
	fn.Body = ast.NewBlockStmt(pos, []ast.Stmt{ast.NewExprStmt(pos, m)})
	mod := &ast.Module{Items: []ast.Decl{fn}}

	sink := diagnostics.NewSink()
	ok := New(sink).Check(mod)
	if ok {
		t.Fatalf("expected an unsupported-pattern diagnostic")
	}
	found := false
	for _, d := range sink.All() {
		if d.Kind == diagnostics.KindUnsupported {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a KindUnsupported diagnostic, got %v", sink.All())
	}
}

// TestCheckDuplicateStructFieldRejected checks a struct literal naming
// the same field twice is flagged even though each occurrence alone
// would type-check.
func TestCheckDuplicateStructFieldRejected(t *testing.T) {
	arena := types.NewArena()
	sd := ast.NewStructDecl(pos, "Point")
	fx := &ast.FieldDecl{Name: "x", Index: 0, TypeExpr: builtinRef("i32"), Parent: sd}
	sd.Fields = []*ast.FieldDecl{fx}

	v1 := ast.NewIntLiteral(pos, 1)
	v1.SetType(arena.Builtin(types.I32))
	v2 := ast.NewIntLiteral(pos, 2)
	v2.SetType(arena.Builtin(types.I32))
	init := &ast.AdtInit{Decl: sd, Fields: []ast.FieldInit{
		{Name: "x", Value: v1},
		{Name: "x", Value: v2},
	}}
	init.SetType(arena.Adt("Point", sd))

	fn := ast.NewFunDecl(pos, "f")
	fn.Body = ast.NewBlockStmt(pos, []ast.Stmt{ast.NewExprStmt(pos, init)})
	mod := &ast.Module{Items: []ast.Decl{fn}}

	sink := diagnostics.NewSink()
	ok := New(sink).Check(mod)
	if ok {
		t.Fatalf("expected a duplicate-field diagnostic")
	}
}

// TestCheckVarDeclAnnotationMismatchRejected checks an annotated local
// whose initializer carries a different finalized type is flagged
// directly by the checker, independent of whatever inference already
// did with the same pair.
func TestCheckVarDeclAnnotationMismatchRejected(t *testing.T) {
	arena := types.NewArena()
	init := ast.NewBoolLiteral(pos, true)
	init.SetType(arena.Builtin(types.Bool))

	d := ast.NewVarDecl(pos, "x", builtinRef("i32"), init)
	d.Resolved = arena.Builtin(types.I32)

	fn := ast.NewFunDecl(pos, "f")
	fn.Body = ast.NewBlockStmt(pos, []ast.Stmt{ast.NewVarDeclStmt(pos, d)})
	mod := &ast.Module{Items: []ast.Decl{fn}}

	sink := diagnostics.NewSink()
	ok := New(sink).Check(mod)
	if ok {
		t.Fatalf("expected a VarDecl annotation-mismatch diagnostic")
	}
}
