package infer

import "github.com/philang/phi/internal/types"

// substGenerics replaces every Generic-kind leaf in t whose decl appears
// in m with m's binding, mirroring typesystem.Apply's structural-copy
// shape but keyed on a type-parameter's declaration identity rather than
// a Var id — Phi's declared generics are rigid syntactic parameters, not
// Hindley-Milner-generalized lets, so they are carried as a distinct
// Kind (internal/types.KindGeneric) and get their own substitution walk
// here instead of typesystem.Subst/Apply.
func substGenerics(t *types.Type, m map[types.Decl]*types.Type) *types.Type {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case types.KindGeneric:
		if bound, ok := m[t.GenericDecl]; ok {
			return bound
		}
		return t
	case types.KindApplied:
		args := make([]*types.Type, len(t.Args))
		changed := false
		for i, a := range t.Args {
			args[i] = substGenerics(a, m)
			if args[i] != a {
				changed = true
			}
		}
		if !changed {
			return t
		}
		return &types.Type{Kind: types.KindApplied, Base: t.Base, Args: args}
	case types.KindTuple:
		elems := make([]*types.Type, len(t.Elems))
		changed := false
		for i, el := range t.Elems {
			elems[i] = substGenerics(el, m)
			if elems[i] != el {
				changed = true
			}
		}
		if !changed {
			return t
		}
		return &types.Type{Kind: types.KindTuple, Elems: elems}
	case types.KindArray:
		elem := substGenerics(t.Elem, m)
		if elem == t.Elem {
			return t
		}
		return &types.Type{Kind: types.KindArray, Elem: elem}
	case types.KindPtr:
		p := substGenerics(t.Pointee, m)
		if p == t.Pointee {
			return t
		}
		return &types.Type{Kind: types.KindPtr, Pointee: p}
	case types.KindRef:
		p := substGenerics(t.Pointee, m)
		if p == t.Pointee {
			return t
		}
		return &types.Type{Kind: types.KindRef, Pointee: p}
	case types.KindFun:
		params := make([]*types.Type, len(t.Params))
		changed := false
		for i, p := range t.Params {
			params[i] = substGenerics(p, m)
			if params[i] != p {
				changed = true
			}
		}
		result := substGenerics(t.Result, m)
		if result != t.Result {
			changed = true
		}
		if !changed {
			return t
		}
		return &types.Type{Kind: types.KindFun, Params: params, Result: result}
	default:
		return t
	}
}

// unwrapAdt follows Ptr/Ref indirection (auto-deref, per the spec's
// MethodCall rule) down to the underlying Adt/Applied type, returning its
// declaration and, if it was an Applied instantiation, the concrete
// arguments bound to the declaration's own type parameters.
func unwrapAdt(t *types.Type) (types.Decl, []*types.Type) {
	for t != nil && (t.Kind == types.KindPtr || t.Kind == types.KindRef) {
		t = t.Pointee
	}
	if t == nil {
		return nil, nil
	}
	switch t.Kind {
	case types.KindAdt:
		return t.Decl, nil
	case types.KindApplied:
		return t.Base, t.Args
	default:
		return nil, nil
	}
}
