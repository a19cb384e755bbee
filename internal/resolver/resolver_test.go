package resolver

import (
	"testing"

	"github.com/philang/phi/internal/ast"
	"github.com/philang/phi/internal/diagnostics"
	"github.com/philang/phi/internal/token"
	"github.com/philang/phi/internal/types"
)

// buildIdentityFun constructs `fun id<T>(x: T) -> T { return x }`.
func buildIdentityFun() *ast.FunDecl {
	pos := token.Position{Line: 1, Column: 1}
	tp := ast.NewTypeParamDecl(pos, "T")
	fn := ast.NewFunDecl(pos, "id")
	fn.TypeParams = []*ast.TypeParamDecl{tp}
	fn.Params = []*ast.ParamDecl{ast.NewParamDecl(pos, "x", ast.NewTypeRef(pos, "T", nil))}
	fn.ReturnType = ast.NewTypeRef(pos, "T", nil)

	ref := ast.NewDeclRef(pos, "x")
	fn.Body = ast.NewBlockStmt(pos, []ast.Stmt{ast.NewReturnStmt(pos, ref)})
	return fn
}

func TestResolverBindsParamReference(t *testing.T) {
	fn := buildIdentityFun()
	mod := &ast.Module{Items: []ast.Decl{fn}}

	arena := types.NewArena()
	sink := diagnostics.NewSink()
	New(arena, sink).Resolve(mod)

	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.All())
	}

	retStmt := fn.Body.Stmts[0].(*ast.ReturnStmt)
	ref := retStmt.Value.(*ast.DeclRef)
	if ref.Decl == nil {
		t.Fatalf("expected DeclRef.Decl to be bound (P1)")
	}
	if ref.Decl.DeclName() != "x" {
		t.Fatalf("expected binding to param x, got %v", ref.Decl.DeclName())
	}

	paramTypeRef := fn.Params[0].TypeExpr.(*ast.TypeRef)
	if paramTypeRef.Decl != fn.TypeParams[0] {
		t.Fatalf("expected param type T to resolve to the function's own type parameter")
	}
}

func TestResolverRedefinitionAcrossTopLevel(t *testing.T) {
	pos := token.Position{Line: 1, Column: 1}
	f1 := ast.NewFunDecl(pos, "dup")
	f1.Body = ast.NewBlockStmt(pos, nil)
	f2 := ast.NewFunDecl(pos, "dup")
	f2.Body = ast.NewBlockStmt(pos, nil)
	mod := &ast.Module{Items: []ast.Decl{f1, f2}}

	arena := types.NewArena()
	sink := diagnostics.NewSink()
	New(arena, sink).Resolve(mod)

	if !sink.HasErrors() {
		t.Fatalf("expected a redefinition diagnostic")
	}
	found := false
	for _, d := range sink.All() {
		if d.Kind == diagnostics.KindRedefinition {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected KindRedefinition among diagnostics, got %v", sink.All())
	}
}

func TestResolverUnresolvedName(t *testing.T) {
	pos := token.Position{Line: 1, Column: 1}
	fn := ast.NewFunDecl(pos, "f")
	fn.Body = ast.NewBlockStmt(pos, []ast.Stmt{
		ast.NewReturnStmt(pos, ast.NewDeclRef(pos, "doesNotExist")),
	})
	mod := &ast.Module{Items: []ast.Decl{fn}}

	arena := types.NewArena()
	sink := diagnostics.NewSink()
	New(arena, sink).Resolve(mod)

	if !sink.HasErrors() {
		t.Fatalf("expected an unresolved-name diagnostic")
	}
}

func TestResolverBreakOutsideLoopIsError(t *testing.T) {
	pos := token.Position{Line: 1, Column: 1}
	fn := ast.NewFunDecl(pos, "f")
	fn.Body = ast.NewBlockStmt(pos, []ast.Stmt{&ast.BreakStmt{}})
	mod := &ast.Module{Items: []ast.Decl{fn}}

	arena := types.NewArena()
	sink := diagnostics.NewSink()
	New(arena, sink).Resolve(mod)

	if !sink.HasErrors() {
		t.Fatalf("expected break-outside-loop diagnostic")
	}
}

func TestResolverShadowingBuiltinTypeNameRejected(t *testing.T) {
	pos := token.Position{Line: 1, Column: 1}
	s := ast.NewStructDecl(pos, "i32")
	mod := &ast.Module{Items: []ast.Decl{s}}

	arena := types.NewArena()
	sink := diagnostics.NewSink()
	New(arena, sink).Resolve(mod)

	if !sink.HasErrors() {
		t.Fatalf("expected redefinition error shadowing builtin type i32")
	}
}
