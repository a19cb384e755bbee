package pipeline

import (
	"github.com/philang/phi/internal/check"
	"github.com/philang/phi/internal/codegen"
	"github.com/philang/phi/internal/infer"
	"github.com/philang/phi/internal/resolver"
)

// ResolverProcessor runs name resolution over ctx.Module, populating
// every DeclRef.Decl and building the symbol table, grounded on the
// teacher's SemanticAnalyzerProcessor guard-and-delegate shape.
type ResolverProcessor struct{}

func (p *ResolverProcessor) Process(ctx *Context) *Context {
	if ctx.Module == nil {
		return ctx
	}
	r := resolver.New(ctx.Arena, ctx.Sink)
	ctx.Symbols = r.Resolve(ctx.Module)
	ctx.refreshErrors()
	return ctx
}

// InferProcessor runs Hindley-Milner inference, resolving every node's
// Type()/Resolved slot in place.
type InferProcessor struct{}

func (p *InferProcessor) Process(ctx *Context) *Context {
	if ctx.Module == nil || ctx.Sink.HasErrors() {
		return ctx
	}
	infer.New(ctx.Arena, ctx.Sink).Infer(ctx.Module)
	ctx.refreshErrors()
	return ctx
}

// CheckProcessor runs the post-inference structural checker.
type CheckProcessor struct{}

func (p *CheckProcessor) Process(ctx *Context) *Context {
	if ctx.Module == nil || ctx.Sink.HasErrors() {
		return ctx
	}
	check.New(ctx.Sink).Check(ctx.Module)
	ctx.refreshErrors()
	return ctx
}

// CodegenProcessor lowers ctx.Module to an LLVM module once every
// earlier stage reported no errors — monomorphizing codegen assumes a
// fully resolved, fully typed tree and has no recovery path of its own
// for an unresolved call site beyond the diagnostics.Internal guard in
// lower_call.go, so it is skipped entirely once the sink is already dirty.
type CodegenProcessor struct{}

func (p *CodegenProcessor) Process(ctx *Context) *Context {
	if ctx.Module == nil || ctx.Sink.HasErrors() {
		return ctx
	}
	mod, diags := codegen.Generate(ctx.Module, ctx.Arena)
	if ctx.Options != nil && ctx.Options.TargetTriple != "" {
		mod.TargetTriple = ctx.Options.TargetTriple
	}
	ctx.LLVMModule = mod
	for _, d := range diags {
		ctx.Sink.Add(d)
	}
	ctx.refreshErrors()
	return ctx
}
