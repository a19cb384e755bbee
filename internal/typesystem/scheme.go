package typesystem

import "github.com/philang/phi/internal/types"

// Scheme is a polytype ∀V̄. τ: a monotype closed over a set of
// universally quantified variable identities, obtained by Generalize
// and eliminated by Instantiate.
type Scheme struct {
	Vars []int
	Type *types.Type
}

// Generalize closes t over every free variable not already free in the
// enclosing environment env (Generalize(Γ, t) = ∀V̄. t, V̄ = ftv(t) \ ftv(Γ)).
func Generalize(env []*types.Type, t *types.Type) *Scheme {
	tfv := make(map[int]*types.Type)
	FreeVars(t, tfv)

	envfv := make(map[int]*types.Type)
	for _, e := range env {
		FreeVars(e, envfv)
	}
	for id := range envfv {
		delete(tfv, id)
	}

	vars := make([]int, 0, len(tfv))
	for id := range tfv {
		vars = append(vars, id)
	}
	return &Scheme{Vars: vars, Type: t}
}

// FreshFactory mints new unification variables, carrying the arena's
// identity counter (internal/types.Arena.Fresh).
type FreshFactory func(domain types.Domain) *types.Type

// Instantiate replaces every quantified variable in the scheme with a
// fresh variable that preserves the quantified variable's domain (P5).
func Instantiate(s *Scheme, fresh FreshFactory) *types.Type {
	if len(s.Vars) == 0 {
		return s.Type
	}
	sub := NewSubst()
	for _, id := range s.Vars {
		domain := domainOf(s.Type, id)
		sub[id] = fresh(domain)
	}
	return Apply(sub, s.Type)
}

// domainOf finds the quantified variable's own domain by searching for
// its occurrence inside the scheme body, so the fresh copy inherits it.
func domainOf(t *types.Type, id int) types.Domain {
	if t == nil {
		return types.DomainAny
	}
	switch t.Kind {
	case types.KindVar:
		if t.VarID == id {
			return t.VarDomain
		}
	case types.KindApplied:
		for _, a := range t.Args {
			if d := domainOf(a, id); d != types.DomainAny {
				return d
			}
		}
	case types.KindTuple:
		for _, e := range t.Elems {
			if d := domainOf(e, id); d != types.DomainAny {
				return d
			}
		}
	case types.KindArray:
		return domainOf(t.Elem, id)
	case types.KindPtr, types.KindRef:
		return domainOf(t.Pointee, id)
	case types.KindFun:
		for _, p := range t.Params {
			if d := domainOf(p, id); d != types.DomainAny {
				return d
			}
		}
		return domainOf(t.Result, id)
	}
	return types.DomainAny
}
