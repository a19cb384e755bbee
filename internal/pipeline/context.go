// Package pipeline threads a single *Context through an ordered list of
// Processor stages, mirroring the teacher's internal/pipeline.PipelineContext
// / Processor pattern: each stage reads and mutates the same explicit state
// object rather than returning a new one, and the caller inspects
// ctx.Errors once the whole run completes (§9 DESIGN NOTES, "explicit state
// object" called for in place of ambient globals).
package pipeline

import (
	"github.com/llir/llvm/ir"

	"github.com/philang/phi/internal/ast"
	"github.com/philang/phi/internal/diagnostics"
	"github.com/philang/phi/internal/symbols"
	"github.com/philang/phi/internal/types"
)

// Context is the state object every Processor reads from and writes into.
// Unlike the teacher's PipelineContext (which carries a TokenStream because
// its pipeline starts from source text), Phi has no lexer/parser in this
// repo — a Context always starts with Module already populated by the
// caller, since Module is what a hand-built AST or a future parser produces.
//
// TypeMap and ResolutionMap are not separate fields here: inference and
// resolution write their findings directly onto each AST node's own
// Resolved/Decl/Type slots (SetType, Decl assignment) rather than keeping
// an external side-table, so there is nothing to expose on Context beyond
// the Module itself once a stage has run. This is a deliberate deviation
// from the teacher's analyzer.Analyzer{TypeMap, ResolutionMap} side-table
// shape, recorded as an Open Question resolution in DESIGN.md.
type Context struct {
	FilePath string
	Options  *Options

	Arena *types.Arena
	Sink  *diagnostics.Sink

	Module  *ast.Module
	Symbols *symbols.Table

	LLVMModule *ir.Module

	// Errors accumulates every diagnostic the stages that have run so far
	// reported, refreshed after each Processor returns.
	Errors []*diagnostics.Diagnostic
}

// NewContext builds a Context around mod, ready for the first Processor.
// The caller is responsible for producing mod (this repo has no parser);
// opts may be nil, in which case DefaultOptions() is used.
func NewContext(mod *ast.Module, opts *Options) *Context {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Context{
		Arena:   types.NewArena(),
		Sink:    diagnostics.NewSink(),
		Module:  mod,
		Options: opts,
	}
}

// refreshErrors snapshots the sink into ctx.Errors; called by each
// Processor after it runs so a caller can inspect ctx.Errors at any point
// without reaching into ctx.Sink directly.
func (ctx *Context) refreshErrors() {
	ctx.Errors = ctx.Sink.All()
}
