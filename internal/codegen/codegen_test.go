package codegen

import (
	"strings"
	"testing"

	"github.com/llir/llvm/ir"
	irtypes "github.com/llir/llvm/ir/types"

	"github.com/philang/phi/internal/ast"
	"github.com/philang/phi/internal/token"
	"github.com/philang/phi/internal/types"
)

var pos = token.Position{Line: 1, Column: 1}

func builtinRef(name string) *ast.TypeRef {
	t := ast.NewTypeRef(pos, name, nil)
	t.Builtin = true
	return t
}

func findFunc(mod *ir.Module, name string) *ir.Func {
	for _, f := range mod.Funcs {
		if f.GlobalName == name {
			return f
		}
	}
	return nil
}

func funcNames(mod *ir.Module) []string {
	names := make([]string, len(mod.Funcs))
	for i, f := range mod.Funcs {
		names[i] = f.GlobalName
	}
	return names
}

func findStructType(mod *ir.Module, name string) *irtypes.StructType {
	for _, td := range mod.TypeDefs {
		if st, ok := td.(*irtypes.StructType); ok && st.TypeName == name {
			return st
		}
	}
	return nil
}

// TestGenerateSimpleFunctionDeclaresSignature checks a concrete top-level
// `fun add(a: i32, b: i32) -> i32 { return a + b }` lowers to a declared
// LLVM function with two i32 parameters and no leftover diagnostics.
func TestGenerateSimpleFunctionDeclaresSignature(t *testing.T) {
	arena := types.NewArena()
	i32 := arena.Builtin(types.I32)

	a := ast.NewParamDecl(pos, "a", builtinRef("i32"))
	a.Resolved = i32
	b := ast.NewParamDecl(pos, "b", builtinRef("i32"))
	b.Resolved = i32

	aRef := ast.NewDeclRef(pos, "a")
	aRef.Decl = a
	aRef.SetType(i32)
	bRef := ast.NewDeclRef(pos, "b")
	bRef.Decl = b
	bRef.SetType(i32)
	sum := ast.NewBinaryExpr(pos, ast.OpAdd, aRef, bRef)
	sum.SetType(i32)

	fn := ast.NewFunDecl(pos, "add")
	fn.Params = []*ast.ParamDecl{a, b}
	fn.ReturnType = builtinRef("i32")
	fn.Resolved = arena.Fun([]*types.Type{i32, i32}, i32)
	fn.Body = ast.NewBlockStmt(pos, []ast.Stmt{ast.NewReturnStmt(pos, sum)})

	mod := &ast.Module{Items: []ast.Decl{fn}}

	out, diags := Generate(mod, arena)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	got := findFunc(out, "add")
	if got == nil {
		t.Fatalf("expected a declared function named %q, got %v", "add", funcNames(out))
	}
	if len(got.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(got.Params))
	}
}

// TestGenerateEntryPointRenamesMain checks a concrete `fun main() {}`
// ends up as `__builtin_main` alongside a real `main` entry point that
// calls it and returns i32 0.
func TestGenerateEntryPointRenamesMain(t *testing.T) {
	arena := types.NewArena()
	fn := ast.NewFunDecl(pos, "main")
	fn.Body = ast.NewBlockStmt(pos, nil)
	mod := &ast.Module{Items: []ast.Decl{fn}}

	out, diags := Generate(mod, arena)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if findFunc(out, "__builtin_main") == nil {
		t.Fatalf("expected the user's main renamed to __builtin_main, got %v", funcNames(out))
	}
	realMain := findFunc(out, "main")
	if realMain == nil {
		t.Fatalf("expected a real entry-point main, got %v", funcNames(out))
	}
	if realMain.Sig.RetType != irtypes.I32 {
		t.Fatalf("expected the entry point to return i32, got %v", realMain.Sig.RetType)
	}
}

// TestGenerateGenericFunctionInstantiationMangles checks that calling a
// generic `identity<T>(x: T) -> T` with a concrete i32 argument, without
// any separate discovery pass having walked main's body ahead of time,
// still produces a declared and emitted `identity_i32`.
func TestGenerateGenericFunctionInstantiationMangles(t *testing.T) {
	arena := types.NewArena()
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

	arg := ast.NewIntLiteral(pos, 5)
	arg.SetType(i32)

	callee := ast.NewDeclRef(pos, "identity")
	call := &ast.FunCall{Callee: callee, Args: []ast.Expr{arg}, ResolvedFun: identity}
	call.SetType(i32)

	mainFn := ast.NewFunDecl(pos, "main")
	mainFn.Body = ast.NewBlockStmt(pos, []ast.Stmt{ast.NewExprStmt(pos, call)})

	mod := &ast.Module{Items: []ast.Decl{identity, mainFn}}

	out, diags := Generate(mod, arena)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	inst := findFunc(out, "identity_i32")
	if inst == nil {
		t.Fatalf("expected a monomorphized identity_i32, got %v", funcNames(out))
	}
	if len(inst.Params) != 1 {
		t.Fatalf("expected 1 param, got %d", len(inst.Params))
	}
	if findFunc(out, "identity") != nil {
		t.Fatalf("the generic declaration itself should never be emitted directly")
	}
}

// TestGenerateGenericStructConstructionMonomorphizes checks constructing
// Box<i32>{value: 7} fills in a concrete Box_i32 struct body via the
// same adtType-triggered enqueue lowerAdtInit relies on, independent of
// identity_i32's call-site path.
func TestGenerateGenericStructConstructionMonomorphizes(t *testing.T) {
	arena := types.NewArena()
	i32 := arena.Builtin(types.I32)

	tp := ast.NewTypeParamDecl(pos, "T")
	genericT := arena.Generic("T", tp)

	sd := ast.NewStructDecl(pos, "Box")
	sd.TypeParams = []*ast.TypeParamDecl{tp}
	valueField := &ast.FieldDecl{Name: "value", Index: 0, TypeExpr: builtinRef("T"), Parent: sd, Resolved: genericT}
	sd.Fields = []*ast.FieldDecl{valueField}

	lit := ast.NewIntLiteral(pos, 7)
	lit.SetType(i32)

	init := &ast.AdtInit{Decl: sd, Fields: []ast.FieldInit{{Name: "value", Value: lit}}}
	init.SetType(arena.Applied(sd, []*types.Type{i32}))

	mainFn := ast.NewFunDecl(pos, "main")
	mainFn.Body = ast.NewBlockStmt(pos, []ast.Stmt{ast.NewExprStmt(pos, init)})

	mod := &ast.Module{Items: []ast.Decl{sd, mainFn}}

	out, diags := Generate(mod, arena)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	st := findStructType(out, "Box_i32")
	if st == nil {
		t.Fatalf("expected a monomorphized Box_i32 struct type")
	}
	if st.Opaque {
		t.Fatalf("expected Box_i32's body to be filled in, still opaque")
	}
	if len(st.Fields) != 1 || st.Fields[0] != irtypes.I32 {
		t.Fatalf("expected a single i32 field, got %v", st.Fields)
	}
}

// TestGeneratePrintlnSingleIntArgument checks println's call-site
// detection (no FunDecl anywhere upstream names it) does not fall
// through to an ordinary unresolved-callee call.
func TestGeneratePrintlnSingleIntArgument(t *testing.T) {
	arena := types.NewArena()
	i64 := arena.Builtin(types.I64)

	arg := ast.NewIntLiteral(pos, 42)
	arg.SetType(i64)

	callee := ast.NewDeclRef(pos, "println")
	call := &ast.FunCall{Callee: callee, Args: []ast.Expr{arg}}
	call.SetType(i64)

	mainFn := ast.NewFunDecl(pos, "main")
	mainFn.Body = ast.NewBlockStmt(pos, []ast.Stmt{ast.NewExprStmt(pos, call)})
	mod := &ast.Module{Items: []ast.Decl{mainFn}}

	out, diags := Generate(mod, arena)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	printfFn := findFunc(out, "printf")
	if printfFn == nil {
		t.Fatalf("expected printf to be declared, got %v", funcNames(out))
	}
	if !printfFn.Sig.Variadic {
		t.Fatalf("expected printf's signature to be variadic")
	}
}

// TestGenerateVoidMatchSkipsAllocaAndLoad checks a match used only for
// its control flow (arms with a body but no result expression, inferred
// type Null) does not allocate or load a "void" result, which LLVM
// rejects.
func TestGenerateVoidMatchSkipsAllocaAndLoad(t *testing.T) {
	arena := types.NewArena()
	i32 := arena.Builtin(types.I32)
	null := arena.Builtin(types.Null)

	scrutinee := ast.NewIntLiteral(pos, 1)
	scrutinee.SetType(i32)

	arm := &ast.MatchArm{
		Pattern: ast.NewWildcardPattern(pos),
		Body:    ast.NewBlockStmt(pos, nil),
	}
	match := &ast.MatchExpr{Scrutinee: scrutinee, Arms: []*ast.MatchArm{arm}}
	match.SetType(null)

	mainFn := ast.NewFunDecl(pos, "main")
	mainFn.Body = ast.NewBlockStmt(pos, []ast.Stmt{ast.NewExprStmt(pos, match)})
	mod := &ast.Module{Items: []ast.Decl{mainFn}}

	out, diags := Generate(mod, arena)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	text := out.String()
	if strings.Contains(text, "alloca void") || strings.Contains(text, "load void") {
		t.Fatalf("expected no void alloca/load, got:\n%s", text)
	}
}

// TestGeneratePrintlnTypeOfArgumentUsesStringFormat checks
// println(typeOf(x)) selects the "%s\n" format, not the default
// "%lld\n" — lowerPrintln dispatches on the argument's static type, and
// typeOf's result must be inferred as string (not Null) for this to
// pick the right format.
func TestGeneratePrintlnTypeOfArgumentUsesStringFormat(t *testing.T) {
	arena := types.NewArena()
	i32 := arena.Builtin(types.I32)
	str := arena.Builtin(types.String)

	innerArg := ast.NewIntLiteral(pos, 1)
	innerArg.SetType(i32)
	typeOfCall := &ast.IntrinsicCall{Kind: ast.IntrinsicTypeOf, Args: []ast.Expr{innerArg}}
	typeOfCall.SetType(str)

	callee := ast.NewDeclRef(pos, "println")
	call := &ast.FunCall{Callee: callee, Args: []ast.Expr{typeOfCall}}

	mainFn := ast.NewFunDecl(pos, "main")
	mainFn.Body = ast.NewBlockStmt(pos, []ast.Stmt{ast.NewExprStmt(pos, call)})
	mod := &ast.Module{Items: []ast.Decl{mainFn}}

	out, diags := Generate(mod, arena)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	text := out.String()
	if !strings.Contains(text, "%s") {
		t.Fatalf("expected the %%s format string to be emitted, got:\n%s", text)
	}
}

// TestMangleNoArgsReturnsBaseName checks a non-generic declaration's
// mangled name is just its own name, unsuffixed.
func TestMangleNoArgsReturnsBaseName(t *testing.T) {
	if got := mangle("add", nil); got != "add" {
		t.Fatalf("mangle(add, nil) = %q, want %q", got, "add")
	}
}

// TestMangleWithTypeArgSuffixesSanitizedName checks a generic
// instantiation's mangled name appends each type argument's sanitized
// string form.
func TestMangleWithTypeArgSuffixesSanitizedName(t *testing.T) {
	arena := types.NewArena()
	i32 := arena.Builtin(types.I32)
	if got := mangle("Box", []*types.Type{i32}); got != "Box_i32" {
		t.Fatalf("mangle(Box, [i32]) = %q, want %q", got, "Box_i32")
	}
}

// TestMangleMethodAppendsMethodName checks mangleMethod's
// `MangledParent_MethodName` shape, with and without the method's own
// type arguments.
func TestMangleMethodAppendsMethodName(t *testing.T) {
	if got := mangleMethod("Box_i32", "get", nil); got != "Box_i32_get" {
		t.Fatalf("mangleMethod(Box_i32, get, nil) = %q, want %q", got, "Box_i32_get")
	}
	arena := types.NewArena()
	f64 := arena.Builtin(types.F64)
	if got := mangleMethod("Box_i32", "convert", []*types.Type{f64}); got != "Box_i32_convert_f64" {
		t.Fatalf("mangleMethod(Box_i32, convert, [f64]) = %q, want %q", got, "Box_i32_convert_f64")
	}
}

// TestMatchGenericRecoversDirectBinding checks matchGeneric binds a bare
// Generic leaf to whatever concrete type occupies the same position.
func TestMatchGenericRecoversDirectBinding(t *testing.T) {
	arena := types.NewArena()
	tp := ast.NewTypeParamDecl(pos, "T")
	generic := arena.Generic("T", tp)
	concrete := arena.Builtin(types.I32)

	out := map[types.Decl]*types.Type{}
	matchGeneric(generic, concrete, out)
	if out[tp] != concrete {
		t.Fatalf("expected T bound to i32, got %v", out[tp])
	}
}

// TestMatchGenericRecoversBindingThroughApplied checks matchGeneric
// recurses through an Applied wrapper (e.g. Box<T> vs Box<i64>) to reach
// the nested Generic.
func TestMatchGenericRecoversBindingThroughApplied(t *testing.T) {
	arena := types.NewArena()
	tp := ast.NewTypeParamDecl(pos, "T")
	generic := arena.Generic("T", tp)
	sd := ast.NewStructDecl(pos, "Box")
	i64 := arena.Builtin(types.I64)

	declared := arena.Applied(sd, []*types.Type{generic})
	concrete := arena.Applied(sd, []*types.Type{i64})

	out := map[types.Decl]*types.Type{}
	matchGeneric(declared, concrete, out)
	if out[tp] != i64 {
		t.Fatalf("expected T bound to i64, got %v", out[tp])
	}
}

// TestMatchGenericFirstWriteWins checks a Generic reached twice through
// two argument positions keeps whichever binding it saw first, matching
// how resolveCallTypeArgs/lowerMethodCall rely on param-order priority
// over the call's own result type.
func TestMatchGenericFirstWriteWins(t *testing.T) {
	arena := types.NewArena()
	tp := ast.NewTypeParamDecl(pos, "T")
	generic := arena.Generic("T", tp)
	i32 := arena.Builtin(types.I32)
	i64 := arena.Builtin(types.I64)

	out := map[types.Decl]*types.Type{}
	matchGeneric(generic, i32, out)
	matchGeneric(generic, i64, out)
	if out[tp] != i32 {
		t.Fatalf("expected the first binding (i32) to win, got %v", out[tp])
	}
}
