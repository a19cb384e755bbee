// Package typesystem implements unification, substitution, and
// generalize/instantiate over internal/types's interned type graph.
// Grounded on the teacher's internal/typesystem/unify.go and types.go
// (Subst.Compose, Bind, OccursCheck), trimmed to Phi's closed type set:
// no row polymorphism, no trait constraints, no higher-kinded types, no
// union types.
package typesystem

import "github.com/philang/phi/internal/types"

// Subst maps Var identities to their bound Type. Composition follows the
// teacher's Compose: apply the new map to every image of the old map,
// then add the new map's bindings on top (new wins on key overlap).
type Subst map[int]*types.Type

func NewSubst() Subst {
	return make(Subst)
}

// Apply recursively substitutes bound Vars in t. Types produced here are
// NOT re-interned through an Arena — only fully concrete results need
// interned identity for downstream map-keying (e.g. in the codegen
// mangled-name cache), and Apply's callers re-intern where that matters.
func Apply(s Subst, t *types.Type) *types.Type {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case types.KindVar:
		if bound, ok := s[t.VarID]; ok {
			if bound == t {
				return t
			}
			return Apply(s, bound)
		}
		return t
	case types.KindApplied:
		args := make([]*types.Type, len(t.Args))
		changed := false
		for i, a := range t.Args {
			args[i] = Apply(s, a)
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
		for i, e := range t.Elems {
			elems[i] = Apply(s, e)
			if elems[i] != e {
				changed = true
			}
		}
		if !changed {
			return t
		}
		return &types.Type{Kind: types.KindTuple, Elems: elems}
	case types.KindArray:
		e := Apply(s, t.Elem)
		if e == t.Elem {
			return t
		}
		return &types.Type{Kind: types.KindArray, Elem: e}
	case types.KindPtr:
		p := Apply(s, t.Pointee)
		if p == t.Pointee {
			return t
		}
		return &types.Type{Kind: types.KindPtr, Pointee: p}
	case types.KindRef:
		p := Apply(s, t.Pointee)
		if p == t.Pointee {
			return t
		}
		return &types.Type{Kind: types.KindRef, Pointee: p}
	case types.KindFun:
		params := make([]*types.Type, len(t.Params))
		changed := false
		for i, p := range t.Params {
			params[i] = Apply(s, p)
			if params[i] != p {
				changed = true
			}
		}
		result := Apply(s, t.Result)
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

// Compose returns a Subst equivalent to applying s1 then s2 (s2 wins on
// conflict), matching the teacher's "σ₂ ∘ σ₁" convention.
func Compose(s2, s1 Subst) Subst {
	out := make(Subst, len(s1)+len(s2))
	for id, t := range s1 {
		out[id] = Apply(s2, t)
	}
	for id, t := range s2 {
		out[id] = t
	}
	return out
}

// FreeVars collects the Var identities occurring free in t.
func FreeVars(t *types.Type, out map[int]*types.Type) {
	if t == nil {
		return
	}
	switch t.Kind {
	case types.KindVar:
		out[t.VarID] = t
	case types.KindApplied:
		for _, a := range t.Args {
			FreeVars(a, out)
		}
	case types.KindTuple:
		for _, e := range t.Elems {
			FreeVars(e, out)
		}
	case types.KindArray:
		FreeVars(t.Elem, out)
	case types.KindPtr, types.KindRef:
		FreeVars(t.Pointee, out)
	case types.KindFun:
		for _, p := range t.Params {
			FreeVars(p, out)
		}
		FreeVars(t.Result, out)
	}
}
