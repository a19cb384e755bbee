package types

import (
	"fmt"
	"strings"
)

// Arena interns types so that structurally identical types share one
// pointer, making equality a pointer comparison everywhere downstream
// (unification, the TypeMap side-table, mangled-name caching).
type Arena struct {
	builtins map[Builtin]*Type
	adts     map[string]*Type
	applied  map[string]*Type
	tuples   map[string]*Type
	arrays   map[string]*Type
	ptrs     map[string]*Type
	refs     map[string]*Type
	funs     map[string]*Type
	generics map[string]*Type

	nextVarID int
}

func NewArena() *Arena {
	return &Arena{
		builtins: make(map[Builtin]*Type),
		adts:     make(map[string]*Type),
		applied:  make(map[string]*Type),
		tuples:   make(map[string]*Type),
		arrays:   make(map[string]*Type),
		ptrs:     make(map[string]*Type),
		refs:     make(map[string]*Type),
		funs:     make(map[string]*Type),
		generics: make(map[string]*Type),
	}
}

func (a *Arena) Builtin(b Builtin) *Type {
	if t, ok := a.builtins[b]; ok {
		return t
	}
	t := &Type{Kind: KindBuiltin, Builtin: b}
	a.builtins[b] = t
	return t
}

// Adt interns a named struct/enum reference. decl may be nil before name
// resolution fills it in; once filled, callers must keep using the same
// *Type (the map key is the name, not the decl, so re-Adt-ing with a
// decl set later still returns the original pointer — the decl field is
// mutated in place to preserve identity).
func (a *Arena) Adt(name string, decl Decl) *Type {
	if t, ok := a.adts[name]; ok {
		if decl != nil && t.Decl == nil {
			t.Decl = decl
		}
		return t
	}
	t := &Type{Kind: KindAdt, AdtName: name, Decl: decl}
	a.adts[name] = t
	return t
}

func (a *Arena) Applied(base Decl, args []*Type) *Type {
	key := appliedKey(base, args)
	if t, ok := a.applied[key]; ok {
		return t
	}
	t := &Type{Kind: KindApplied, Base: base, Args: args}
	a.applied[key] = t
	return t
}

func appliedKey(base Decl, args []*Type) string {
	var b strings.Builder
	b.WriteString(base.DeclName())
	for _, arg := range args {
		b.WriteByte('|')
		writeIdentity(&b, arg)
	}
	return b.String()
}

func (a *Arena) Tuple(elems []*Type) *Type {
	var b strings.Builder
	b.WriteString("tuple")
	for _, e := range elems {
		b.WriteByte('|')
		writeIdentity(&b, e)
	}
	key := b.String()
	if t, ok := a.tuples[key]; ok {
		return t
	}
	t := &Type{Kind: KindTuple, Elems: elems}
	a.tuples[key] = t
	return t
}

func (a *Arena) Array(elem *Type) *Type {
	var b strings.Builder
	writeIdentity(&b, elem)
	key := b.String()
	if t, ok := a.arrays[key]; ok {
		return t
	}
	t := &Type{Kind: KindArray, Elem: elem}
	a.arrays[key] = t
	return t
}

func (a *Arena) Ptr(pointee *Type) *Type {
	var b strings.Builder
	writeIdentity(&b, pointee)
	key := b.String()
	if t, ok := a.ptrs[key]; ok {
		return t
	}
	t := &Type{Kind: KindPtr, Pointee: pointee}
	a.ptrs[key] = t
	return t
}

func (a *Arena) Ref(pointee *Type) *Type {
	var b strings.Builder
	writeIdentity(&b, pointee)
	key := b.String()
	if t, ok := a.refs[key]; ok {
		return t
	}
	t := &Type{Kind: KindRef, Pointee: pointee}
	a.refs[key] = t
	return t
}

func (a *Arena) Fun(params []*Type, result *Type) *Type {
	var b strings.Builder
	b.WriteString("fun")
	for _, p := range params {
		b.WriteByte('|')
		writeIdentity(&b, p)
	}
	b.WriteString("->")
	writeIdentity(&b, result)
	key := b.String()
	if t, ok := a.funs[key]; ok {
		return t
	}
	t := &Type{Kind: KindFun, Params: params, Result: result}
	a.funs[key] = t
	return t
}

func (a *Arena) Generic(name string, decl Decl) *Type {
	key := fmt.Sprintf("%s#%p", name, decl)
	if t, ok := a.generics[key]; ok {
		return t
	}
	t := &Type{Kind: KindGeneric, GenericName: name, GenericDecl: decl}
	a.generics[key] = t
	return t
}

// Fresh returns a brand-new unification variable; Vars are never
// interned (each is a distinct identity by construction).
func (a *Arena) Fresh(domain Domain) *Type {
	a.nextVarID++
	return &Type{Kind: KindVar, VarID: a.nextVarID, VarDomain: domain}
}

// writeIdentity writes a stable identity token for an already-interned
// type. Since every sub-type reaching here has itself been produced by
// this arena, its pointer is already canonical; for Var nodes (never
// interned) identity is the VarID, which is what keeps two distinct
// fresh variables from colliding in a composite key even before either
// has been bound.
func writeIdentity(b *strings.Builder, t *Type) {
	if t.Kind == KindVar {
		fmt.Fprintf(b, "var%d", t.VarID)
		return
	}
	fmt.Fprintf(b, "%p", t)
}
