// Package resolver implements Phi's two-pass name resolution: headers
// (declare names, resolve signature types) then bodies (bind every
// DeclRef and TypeRef to its declaration). Grounded on the teacher's
// walker-with-mode idiom (analyzer.walker{mode},
// declarations_instances_core.go's per-mode early return) collapsed from
// four passes to two, since Phi has no trait instances.
package resolver

import (
	"github.com/philang/phi/internal/ast"
	"github.com/philang/phi/internal/diagnostics"
	"github.com/philang/phi/internal/symbols"
	"github.com/philang/phi/internal/token"
	"github.com/philang/phi/internal/types"
)

// Resolver walks a Module twice, filling DeclRef.Decl and TypeRef.Decl
// in place. It owns the symbol table it builds and returns it from
// Resolve; the pipeline keeps it on its Context.
type Resolver struct {
	table *symbols.Table
	sink  *diagnostics.Sink
	arena *types.Arena
}

func New(arena *types.Arena, sink *diagnostics.Sink) *Resolver {
	return &Resolver{arena: arena, sink: sink}
}

// Resolve runs both passes over mod and returns the populated table.
func (r *Resolver) Resolve(mod *ast.Module) *symbols.Table {
	r.table = symbols.NewTable()
	r.table.SeedBuiltins()

	for _, item := range mod.Items {
		r.declareHeader(item)
	}
	for _, item := range mod.Items {
		r.resolveBody(item)
	}
	return r.table
}

func (r *Resolver) errorf(kind diagnostics.Kind, pos token.Position, format string, args ...interface{}) *diagnostics.Diagnostic {
	return r.sink.Addf(kind, pos, format, args...)
}

// declareHeader registers item's name and resolves the types appearing
// in its signature (Pass 1).
func (r *Resolver) declareHeader(item ast.Decl) {
	switch d := item.(type) {
	case *ast.FunDecl:
		r.defineOrReport(symbols.NsFunction, d.Name, d)
		g := r.enterTypeParamScope(d.TypeParams)
		for _, p := range d.Params {
			r.resolveTypeExpr(p.TypeExpr)
		}
		if d.ReturnType != nil {
			r.resolveTypeExpr(d.ReturnType)
		}
		g.Release()

	case *ast.StructDecl:
		r.defineOrReport(symbols.NsAdt, d.Name, d)
		g := r.enterTypeParamScope(d.TypeParams)
		for _, f := range d.Fields {
			r.resolveTypeExpr(f.TypeExpr)
		}
		for _, m := range d.Methods {
			r.declareMethodHeader(m, d.TypeParams)
		}
		g.Release()

	case *ast.EnumDecl:
		r.defineOrReport(symbols.NsAdt, d.Name, d)
		g := r.enterTypeParamScope(d.TypeParams)
		for _, v := range d.Variants {
			if v.Payload != nil {
				r.resolveTypeExpr(v.Payload)
			}
		}
		for _, m := range d.Methods {
			r.declareMethodHeader(m, d.TypeParams)
		}
		g.Release()
	}
}

func (r *Resolver) declareMethodHeader(m *ast.MethodDecl, parentParams []*ast.TypeParamDecl) {
	if m.IsStatic {
		r.defineOrReport(symbols.NsStaticMethod, m.Name, m)
	}
	g := r.enterTypeParamScope(append(append([]*ast.TypeParamDecl{}, parentParams...), m.TypeParams...))
	for _, p := range m.Params {
		r.resolveTypeExpr(p.TypeExpr)
	}
	if m.ReturnType != nil {
		r.resolveTypeExpr(m.ReturnType)
	}
	g.Release()
}

func (r *Resolver) defineOrReport(ns symbols.Namespace, name string, d symbols.Decl) {
	if err := r.table.Define(ns, name, d); err != nil {
		redef, _ := err.(*symbols.RedefinitionError)
		diag := r.errorf(diagnostics.KindRedefinition, d.Pos(), "%s %q already defined", ns, name)
		if redef != nil {
			diag.WithNote(redef.First.Pos(), "first defined here")
		}
	}
}

func (r *Resolver) enterTypeParamScope(params []*ast.TypeParamDecl) *symbols.ScopeGuard {
	g := r.table.Enter()
	for _, p := range params {
		r.defineOrReport(symbols.NsTypeParam, p.Name, p)
	}
	return g
}

// resolveTypeExpr walks a type expression, filling TypeRef.Decl (or
// marking Builtin) and recursing into composite forms.
func (r *Resolver) resolveTypeExpr(te ast.TypeExpr) {
	switch t := te.(type) {
	case *ast.TypeRef:
		if b, ok := types.LookupBuiltin(t.Name); ok {
			_ = b
			t.Builtin = true
		} else if sym, ok := r.table.Lookup(symbols.NsAdt, t.Name); ok {
			t.Decl = sym.Decl.(ast.Decl)
		} else if sym, ok := r.table.Lookup(symbols.NsTypeParam, t.Name); ok {
			t.Decl = sym.Decl.(ast.Decl)
		} else {
			pool := append(r.table.Names(symbols.NsAdt), append(r.table.Names(symbols.NsTypeParam), symbols.BuiltinTypeNames()...)...)
			d := r.errorf(diagnostics.KindUnresolvedType, t.Pos(), "unknown type %q", t.Name)
			if best, ok := symbols.Suggest(t.Name, pool); ok {
				d.WithNote(token.NoPos, "did you mean %q?", best)
			}
		}
		for _, a := range t.Args {
			r.resolveTypeExpr(a)
		}
	case *ast.PtrTypeExpr:
		r.resolveTypeExpr(t.Elem)
	case *ast.RefTypeExpr:
		r.resolveTypeExpr(t.Elem)
	case *ast.TupleTypeExpr:
		for _, e := range t.Elems {
			r.resolveTypeExpr(e)
		}
	case *ast.ArrayTypeExpr:
		r.resolveTypeExpr(t.Elem)
	case *ast.FunTypeExpr:
		for _, p := range t.Params {
			r.resolveTypeExpr(p)
		}
		r.resolveTypeExpr(t.Result)
	}
}
