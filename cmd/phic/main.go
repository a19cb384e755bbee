// Command phic is a minimal illustrative driver: it wires the whole
// resolver -> infer -> check -> codegen pipeline end to end against a
// hand-built sample AST, since this repo has no lexer/parser of its own
// (§6 External Interfaces). It is not the "driver" the spec describes
// as an external collaborator — it exists only to demonstrate the wiring.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/philang/phi/internal/ast"
	"github.com/philang/phi/internal/pipeline"
	"github.com/philang/phi/internal/token"
)

var pos = token.Position{Line: 1, Column: 1}

func builtinRef(name string) *ast.TypeRef {
	return ast.NewTypeRef(pos, name, nil)
}

// sampleModule builds:
//
//	fun identity<T>(x: T) -> T {
//	    return x
//	}
//
//	fun main() {
//	    println(identity(41))
//	}
//
// purely from raw, unresolved AST nodes — no Decl/Resolved/Type field is
// pre-filled, matching what a parser would hand the pipeline.
func sampleModule() *ast.Module {
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

func main() {
	configPath := flag.String("config", "", "optional YAML options sidecar (targetTriple)")
	flag.Parse()

	var opts *pipeline.Options
	if *configPath != "" {
		loaded, err := pipeline.LoadOptions(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "phic: loading %s: %v\n", *configPath, err)
			os.Exit(1)
		}
		opts = loaded
	}

	ctx := pipeline.NewContext(sampleModule(), opts)
	run := pipeline.New(
		&pipeline.ResolverProcessor{},
		&pipeline.InferProcessor{},
		&pipeline.CheckProcessor{},
		&pipeline.CodegenProcessor{},
	)
	ctx = run.Run(ctx)

	if len(ctx.Errors) > 0 {
		for _, d := range ctx.Errors {
			fmt.Fprintln(os.Stderr, d.Error())
		}
		os.Exit(1)
	}

	fmt.Print(ctx.LLVMModule.String())
}
