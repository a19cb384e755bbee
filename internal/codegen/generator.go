// Package codegen implements Phi's four-phase monomorphizing code
// generator, lowering a fully resolved and inferred ast.Module to an
// LLVM IR module via github.com/llir/llvm. Grounded in shape on the
// teacher's bytecode vm.Compiler (Local/scope tracking, LoopContext
// stack for break/continue) with every `emit(OP_*, line)` replaced by a
// builder call against an *ir.Block, per SPEC_FULL.md §4.5.
package codegen

import (
	"github.com/llir/llvm/ir"
	irtypes "github.com/llir/llvm/ir/types"

	"github.com/philang/phi/internal/ast"
	"github.com/philang/phi/internal/diagnostics"
	"github.com/philang/phi/internal/types"
)

// Generator drives discovery, monomorphization, and emission over one
// module. It owns the LLVM module under construction and every
// bookkeeping table the four phases share.
type Generator struct {
	arena *types.Arena
	sink  *diagnostics.Sink
	mod   *ir.Module

	seen     map[string]bool               // mangled name -> already enqueued/emitted (P6)
	adtTypes map[string]*irtypes.StructType // mangled ADT name -> named LLVM struct (opaque, then body)
	funcs    map[string]*ir.Func            // mangled fun/method name -> declared signature

	worklist []*instRequest
	strConst map[string]*ir.Global // string-literal content -> deduplicated global
	strCount int                   // counter for fresh string-global names

	panicFn, assertFailFn, abortFn, printfFn, mallocFn *ir.Func

	cur *funcCtx // the function currently being lowered; nil outside Phase 4's body pass
}

// instKind distinguishes the four shapes an instantiation request can
// take; struct/enum/fun/method are tracked separately because each
// carries a different declaration shape and a different substitution
// domain (§4.5 Phase 1/2, and the method-level-generics supplement).
type instKind int

const (
	instFun instKind = iota
	instMethod
	instStruct
	instEnum
)

// instRequest is one `(decl, type-args)` pair drained by Phase 2.
// adtArgs carries the parent ADT's own type arguments separately from
// args (the decl's own type parameters), so a method can be
// instantiated once per call-site type-argument combination
// independent of how many times its parent ADT itself is instantiated.
type instRequest struct {
	kind       instKind
	mangled    string
	fun        *ast.FunDecl
	method     *ast.MethodDecl
	structDecl *ast.StructDecl
	enumDecl   *ast.EnumDecl
	args       []*types.Type
	adtArgs    []*types.Type
}

func newGenerator(arena *types.Arena) *Generator {
	return &Generator{
		arena:    arena,
		sink:     diagnostics.NewSink(),
		mod:      ir.NewModule(),
		seen:     make(map[string]bool),
		adtTypes: make(map[string]*irtypes.StructType),
		funcs:    make(map[string]*ir.Func),
		strConst: make(map[string]*ir.Global),
	}
}

// Generate is the single exported entry point: AST + arena in, an LLVM
// module and any diagnostics raised while lowering it (break/continue
// outside a loop, an unresolved decl that should have been impossible
// after the earlier stages) out. It never touches os or exec — file I/O
// and assembler invocation are the driver's job.
func Generate(prog *ast.Module, arena *types.Arena) (*ir.Module, []*diagnostics.Diagnostic) {
	g := newGenerator(arena)
	g.declareRuntime()
	g.discoverRoots(prog)
	g.drain()
	g.emitEntryPoint(prog)
	return g.mod, g.sink.All()
}
