package infer

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

// TestInferLiteralDefaultsToI32 checks that `fun f() -> i32 { return 1 }`
// types the literal `1` as i32 after domain defaulting.
func TestInferLiteralDefaultsToI32(t *testing.T) {
	lit := ast.NewIntLiteral(pos, 1)
	fn := ast.NewFunDecl(pos, "f")
	fn.ReturnType = builtinRef("i32")
	fn.Body = ast.NewBlockStmt(pos, []ast.Stmt{ast.NewReturnStmt(pos, lit)})
	mod := &ast.Module{Items: []ast.Decl{fn}}

	arena := types.NewArena()
	sink := diagnostics.NewSink()
	New(arena, sink).Infer(mod)

	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.All())
	}
	got := lit.Type()
	if got == nil || got.Kind != types.KindBuiltin || got.Builtin != types.I32 {
		t.Fatalf("expected int literal to default to i32, got %v", got)
	}
}

// TestInferIdentityFunction checks `fun id<T>(x: T) -> T { return x }`
// infers without errors and gives the returned DeclRef a Generic type.
func TestInferIdentityFunction(t *testing.T) {
	tp := ast.NewTypeParamDecl(pos, "T")
	fn := ast.NewFunDecl(pos, "id")
	fn.TypeParams = []*ast.TypeParamDecl{tp}
	tref := ast.NewTypeRef(pos, "T", nil)
	tref.Decl = tp
	fn.Params = []*ast.ParamDecl{ast.NewParamDecl(pos, "x", tref)}
	retRef := ast.NewTypeRef(pos, "T", nil)
	retRef.Decl = tp
	fn.ReturnType = retRef

	ref := ast.NewDeclRef(pos, "x")
	ref.Decl = fn.Params[0]
	fn.Body = ast.NewBlockStmt(pos, []ast.Stmt{ast.NewReturnStmt(pos, ref)})
	mod := &ast.Module{Items: []ast.Decl{fn}}

	arena := types.NewArena()
	sink := diagnostics.NewSink()
	New(arena, sink).Infer(mod)

	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.All())
	}
	if ref.Type() == nil || ref.Type().Kind != types.KindGeneric {
		t.Fatalf("expected x to keep its rigid Generic type, got %v", ref.Type())
	}
}

// TestInferBinaryArithmeticUnifiesOperands checks `1 + 1.0` is rejected:
// Int and Float domains don't intersect.
func TestInferBinaryArithmeticUnifiesOperands(t *testing.T) {
	add := ast.NewBinaryExpr(pos, ast.OpAdd, ast.NewIntLiteral(pos, 1), ast.NewFloatLiteral(pos, 1.0))
	fn := ast.NewFunDecl(pos, "f")
	fn.Body = ast.NewBlockStmt(pos, []ast.Stmt{ast.NewExprStmt(pos, add)})
	mod := &ast.Module{Items: []ast.Decl{fn}}

	arena := types.NewArena()
	sink := diagnostics.NewSink()
	New(arena, sink).Infer(mod)

	if !sink.HasErrors() {
		t.Fatalf("expected a unify-domain error mixing int and float literals")
	}
}

// TestInferFieldAccess checks `struct Point{x:i32,y:i32}` field access
// types correctly and records the positional index.
func TestInferFieldAccess(t *testing.T) {
	sd := ast.NewStructDecl(pos, "Point")
	fx := &ast.FieldDecl{Name: "x", Index: 0, TypeExpr: builtinRef("i32"), Parent: sd}
	fy := &ast.FieldDecl{Name: "y", Index: 1, TypeExpr: builtinRef("i32"), Parent: sd}
	sd.Fields = []*ast.FieldDecl{fx, fy}

	tref := ast.NewTypeRef(pos, "Point", nil)
	tref.Decl = sd
	init := &ast.AdtInit{TypeRef: tref, Decl: sd, Fields: []ast.FieldInit{
		{Name: "x", Value: ast.NewIntLiteral(pos, 1)},
		{Name: "y", Value: ast.NewIntLiteral(pos, 2)},
	}}
	access := &ast.FieldAccess{Base: init, Field: "x"}

	fn := ast.NewFunDecl(pos, "f")
	fn.Body = ast.NewBlockStmt(pos, []ast.Stmt{ast.NewExprStmt(pos, access)})
	mod := &ast.Module{Items: []ast.Decl{fn, sd}}

	arena := types.NewArena()
	sink := diagnostics.NewSink()
	New(arena, sink).Infer(mod)

	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.All())
	}
	if access.Index != 0 {
		t.Fatalf("expected field access to record index 0, got %d", access.Index)
	}
}

// TestInferMissingFieldReported checks an incomplete struct literal
// without a default is reported.
func TestInferMissingFieldReported(t *testing.T) {
	sd := ast.NewStructDecl(pos, "Point")
	fx := &ast.FieldDecl{Name: "x", Index: 0, TypeExpr: builtinRef("i32"), Parent: sd}
	fy := &ast.FieldDecl{Name: "y", Index: 1, TypeExpr: builtinRef("i32"), Parent: sd}
	sd.Fields = []*ast.FieldDecl{fx, fy}

	tref := ast.NewTypeRef(pos, "Point", nil)
	tref.Decl = sd
	init := &ast.AdtInit{TypeRef: tref, Decl: sd, Fields: []ast.FieldInit{
		{Name: "x", Value: ast.NewIntLiteral(pos, 1)},
	}}

	fn := ast.NewFunDecl(pos, "f")
	fn.Body = ast.NewBlockStmt(pos, []ast.Stmt{ast.NewExprStmt(pos, init)})
	mod := &ast.Module{Items: []ast.Decl{fn, sd}}

	arena := types.NewArena()
	sink := diagnostics.NewSink()
	New(arena, sink).Infer(mod)

	if !sink.HasErrors() {
		t.Fatalf("expected a missing-field diagnostic")
	}
}

// TestInferTypeOfReturnsString checks typeOf(x) infers as string, not
// Null — codegen already lowers it to a string constant, and println's
// format-string dispatch needs the static type to agree.
func TestInferTypeOfReturnsString(t *testing.T) {
	arg := ast.NewIntLiteral(pos, 1)
	call := &ast.IntrinsicCall{Kind: ast.IntrinsicTypeOf, Args: []ast.Expr{arg}}

	fn := ast.NewFunDecl(pos, "f")
	fn.Body = ast.NewBlockStmt(pos, []ast.Stmt{ast.NewExprStmt(pos, call)})
	mod := &ast.Module{Items: []ast.Decl{fn}}

	arena := types.NewArena()
	sink := diagnostics.NewSink()
	New(arena, sink).Infer(mod)

	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.All())
	}
	got := call.Type()
	if got == nil || got.Kind != types.KindBuiltin || got.Builtin != types.String {
		t.Fatalf("expected typeOf to infer as string, got %v", got)
	}
}
