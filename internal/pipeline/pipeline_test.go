package pipeline

import (
	"testing"

	"github.com/philang/phi/internal/ast"
	"github.com/philang/phi/internal/token"
)

var pos = token.Position{Line: 1, Column: 1}

func builtinRef(name string) *ast.TypeRef {
	return ast.NewTypeRef(pos, name, nil)
}

func identityModule() *ast.Module {
	tp := ast.NewTypeParamDecl(pos, "T")

	identity := ast.NewFunDecl(pos, "identity")
	identity.TypeParams = []*ast.TypeParamDecl{tp}
	identity.Params = []*ast.ParamDecl{ast.NewParamDecl(pos, "x", builtinRef("T"))}
	identity.ReturnType = builtinRef("T")
	identity.Body = ast.NewBlockStmt(pos, []ast.Stmt{
		ast.NewReturnStmt(pos, ast.NewDeclRef(pos, "x")),
	})

	call := &ast.FunCall{
		Callee: ast.NewDeclRef(pos, "identity"),
		Args:   []ast.Expr{ast.NewIntLiteral(pos, 41)},
	}
	printCall := &ast.FunCall{
		Callee: ast.NewDeclRef(pos, "println"),
		Args:   []ast.Expr{call},
	}

	mainFn := ast.NewFunDecl(pos, "main")
	mainFn.Body = ast.NewBlockStmt(pos, []ast.Stmt{ast.NewExprStmt(pos, printCall)})

	return &ast.Module{Items: []ast.Decl{identity, mainFn}}
}

func fullPipeline() *Pipeline {
	return New(
		&ResolverProcessor{},
		&InferProcessor{},
		&CheckProcessor{},
		&CodegenProcessor{},
	)
}

// TestRunResolvesInfersChecksAndGeneratesCleanModule checks that a raw,
// fully unresolved hand-built AST — no Decl/Resolved/Type field
// pre-filled, exactly what a parser would hand the pipeline — comes out
// the other end with an emitted LLVM module and zero diagnostics.
func TestRunResolvesInfersChecksAndGeneratesCleanModule(t *testing.T) {
	ctx := NewContext(identityModule(), nil)
	out := fullPipeline().Run(ctx)

	if len(out.Errors) != 0 {
		t.Fatalf("unexpected diagnostics: %v", out.Errors)
	}
	if out.Symbols == nil {
		t.Fatalf("expected ResolverProcessor to populate Symbols")
	}
	if out.LLVMModule == nil {
		t.Fatalf("expected CodegenProcessor to populate LLVMModule")
	}
	found := false
	for _, f := range out.LLVMModule.Funcs {
		if f.GlobalName == "identity_i32" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected identity_i32 to be monomorphized and emitted")
	}
}

// TestRunSkipsCodegenAfterResolutionError checks that a genuinely
// unresolved name short-circuits CodegenProcessor rather than handing it
// a tree codegen has no recovery path for.
func TestRunSkipsCodegenAfterResolutionError(t *testing.T) {
	mainFn := ast.NewFunDecl(pos, "main")
	mainFn.Body = ast.NewBlockStmt(pos, []ast.Stmt{
		ast.NewExprStmt(pos, ast.NewDeclRef(pos, "doesNotExist")),
	})
	mod := &ast.Module{Items: []ast.Decl{mainFn}}

	ctx := NewContext(mod, nil)
	out := fullPipeline().Run(ctx)

	if len(out.Errors) == 0 {
		t.Fatalf("expected an unresolved-name diagnostic")
	}
	if out.LLVMModule != nil {
		t.Fatalf("expected CodegenProcessor to be skipped after a resolution error")
	}
}

// TestRunAppliesTargetTripleOption checks Options.TargetTriple loaded
// without a YAML file (set directly, as LoadOptions would populate it)
// ends up on the emitted module.
func TestRunAppliesTargetTripleOption(t *testing.T) {
	mainFn := ast.NewFunDecl(pos, "main")
	mainFn.Body = ast.NewBlockStmt(pos, nil)
	mod := &ast.Module{Items: []ast.Decl{mainFn}}

	ctx := NewContext(mod, &Options{TargetTriple: "x86_64-unknown-linux-gnu"})
	out := fullPipeline().Run(ctx)

	if len(out.Errors) != 0 {
		t.Fatalf("unexpected diagnostics: %v", out.Errors)
	}
	if out.LLVMModule.TargetTriple != "x86_64-unknown-linux-gnu" {
		t.Fatalf("expected target triple to be applied, got %q", out.LLVMModule.TargetTriple)
	}
}
