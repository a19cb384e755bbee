package codegen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/philang/phi/internal/ast"
	"github.com/philang/phi/internal/types"
)

// goldenCase is one table-driven sample program plus a substring its
// emitted .ll text must contain.
type goldenCase struct {
	name   string
	build  func(arena *types.Arena) *ast.Module
	expect string
}

func goldenCases() []goldenCase {
	return []goldenCase{
		{
			name: "plain_function",
			build: func(arena *types.Arena) *ast.Module {
				i32 := arena.Builtin(types.I32)
				a := ast.NewParamDecl(pos, "a", builtinRef("i32"))
				a.Resolved = i32
				aRef := ast.NewDeclRef(pos, "a")
				aRef.Decl = a
				aRef.SetType(i32)

				fn := ast.NewFunDecl(pos, "double")
				fn.Params = []*ast.ParamDecl{a}
				fn.ReturnType = builtinRef("i32")
				fn.Resolved = arena.Fun([]*types.Type{i32}, i32)
				sum := ast.NewBinaryExpr(pos, ast.OpAdd, aRef, aRef)
				sum.SetType(i32)
				fn.Body = ast.NewBlockStmt(pos, []ast.Stmt{ast.NewReturnStmt(pos, sum)})
				return &ast.Module{Items: []ast.Decl{fn}}
			},
			expect: "define i32 @double",
		},
		{
			name: "generic_instantiation",
			build: func(arena *types.Arena) *ast.Module {
				i32 := arena.Builtin(types.I32)
				tp := ast.NewTypeParamDecl(pos, "T")
				genericT := arena.Generic("T", tp)

				xParam := ast.NewParamDecl(pos, "x", builtinRef("T"))
				xParam.Resolved = genericT
				xRef := ast.NewDeclRef(pos, "x")
				xRef.Decl = xParam
				xRef.SetType(genericT)

				identity := ast.NewFunDecl(pos, "identity")
				identity.TypeParams = []*ast.TypeParamDecl{tp}
				identity.Params = []*ast.ParamDecl{xParam}
				identity.ReturnType = builtinRef("T")
				identity.Resolved = arena.Fun([]*types.Type{genericT}, genericT)
				identity.Body = ast.NewBlockStmt(pos, []ast.Stmt{ast.NewReturnStmt(pos, xRef)})

				arg := ast.NewIntLiteral(pos, 9)
				arg.SetType(i32)
				callee := ast.NewDeclRef(pos, "identity")
				call := &ast.FunCall{Callee: callee, Args: []ast.Expr{arg}, ResolvedFun: identity}
				call.SetType(i32)

				mainFn := ast.NewFunDecl(pos, "main")
				mainFn.Body = ast.NewBlockStmt(pos, []ast.Stmt{ast.NewExprStmt(pos, call)})
				return &ast.Module{Items: []ast.Decl{identity, mainFn}}
			},
			expect: "define i32 @identity_i32",
		},
	}
}

// TestGoldenCasesEmitExpectedIR runs every goldenCase side by side,
// each writing its emitted .ll text to its own uuid-named temp file so
// parallel subtests never collide over a shared filename, then reads it
// back and checks it against the in-memory string and the case's
// expected substring.
func TestGoldenCasesEmitExpectedIR(t *testing.T) {
	dir := t.TempDir()

	for _, tc := range goldenCases() {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			arena := types.NewArena()
			mod := tc.build(arena)
			out, diags := Generate(mod, arena)
			if len(diags) != 0 {
				t.Fatalf("unexpected diagnostics: %v", diags)
			}
			text := out.String()

			name := uuid.NewString() + ".ll"
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
				t.Fatalf("writing golden output: %v", err)
			}

			roundTripped, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading golden output: %v", err)
			}
			if string(roundTripped) != text {
				t.Fatalf("round-tripped .ll text does not match in-memory output")
			}
			if !strings.Contains(string(roundTripped), tc.expect) {
				t.Fatalf("expected emitted IR to contain %q, got:\n%s", tc.expect, roundTripped)
			}
		})
	}
}
