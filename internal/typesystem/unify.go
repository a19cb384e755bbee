package typesystem

import (
	"fmt"

	"github.com/philang/phi/internal/types"
)

// UnifyError reports two types that could not be made equal, carrying
// them stringified per the error handling design (Unify error: "cannot
// unify A with B", with an occurs-check subclass).
type UnifyError struct {
	A, B       *types.Type
	OccursVar  bool
	DomainFail bool
}

func (e *UnifyError) Error() string {
	if e.OccursVar {
		return fmt.Sprintf("occurs check failed: %s occurs in %s", e.A, e.B)
	}
	if e.DomainFail {
		return fmt.Sprintf("type %s violates constraint domain of %s", e.B, e.A)
	}
	return fmt.Sprintf("cannot unify %s with %s", e.A, e.B)
}

// Unify attempts to make a and b equal, returning the substitution
// discovered. The caller composes the result into its own running
// substitution.
//
// Rules, in order, mirror the spec's unification table: Var with
// anything (occurs-check, domain-admits-check, bind); two Vars (bind one
// to the other after intersecting domains); two Cons with the same name
// (zip args, unify pairwise); two Funs (arity-equal params + unify
// return); otherwise fail.
func Unify(a, b *types.Type) (Subst, error) {
	if a == b {
		return NewSubst(), nil
	}

	if a.Kind == types.KindVar && b.Kind == types.KindVar {
		return unifyVarVar(a, b)
	}
	if a.Kind == types.KindVar {
		return bind(a, b)
	}
	if b.Kind == types.KindVar {
		return bind(b, a)
	}

	if a.Kind != b.Kind {
		return nil, &UnifyError{A: a, B: b}
	}

	switch a.Kind {
	case types.KindBuiltin:
		if a.Builtin == b.Builtin {
			return NewSubst(), nil
		}
		return nil, &UnifyError{A: a, B: b}

	case types.KindAdt:
		if a.AdtName == b.AdtName {
			return NewSubst(), nil
		}
		return nil, &UnifyError{A: a, B: b}

	case types.KindApplied:
		if a.Base != b.Base || len(a.Args) != len(b.Args) {
			return nil, &UnifyError{A: a, B: b}
		}
		return unifySeq(a.Args, b.Args, a, b)

	case types.KindTuple:
		if len(a.Elems) != len(b.Elems) {
			return nil, &UnifyError{A: a, B: b}
		}
		return unifySeq(a.Elems, b.Elems, a, b)

	case types.KindArray:
		return Unify(a.Elem, b.Elem)

	case types.KindPtr:
		return Unify(a.Pointee, b.Pointee)

	case types.KindRef:
		return Unify(a.Pointee, b.Pointee)

	case types.KindFun:
		if len(a.Params) != len(b.Params) {
			return nil, &UnifyError{A: a, B: b}
		}
		s, err := unifySeq(a.Params, b.Params, a, b)
		if err != nil {
			return nil, err
		}
		s2, err := Unify(Apply(s, a.Result), Apply(s, b.Result))
		if err != nil {
			return nil, err
		}
		return Compose(s2, s), nil

	case types.KindGeneric:
		if a.GenericDecl == b.GenericDecl && a.GenericName == b.GenericName {
			return NewSubst(), nil
		}
		return nil, &UnifyError{A: a, B: b}

	default:
		return nil, &UnifyError{A: a, B: b}
	}
}

func unifySeq(as, bs []*types.Type, origA, origB *types.Type) (Subst, error) {
	s := NewSubst()
	for i := range as {
		ai := Apply(s, as[i])
		bi := Apply(s, bs[i])
		next, err := Unify(ai, bi)
		if err != nil {
			return nil, &UnifyError{A: origA, B: origB}
		}
		s = Compose(next, s)
	}
	return s, nil
}

func unifyVarVar(a, b *types.Type) (Subst, error) {
	if a.VarID == b.VarID {
		return NewSubst(), nil
	}
	d, ok := a.VarDomain.Intersect(b.VarDomain)
	if !ok {
		return nil, &UnifyError{A: a, B: b, DomainFail: true}
	}
	merged := &types.Type{Kind: types.KindVar, VarID: a.VarID, VarDomain: d}
	s := NewSubst()
	s[a.VarID] = merged
	s[b.VarID] = merged
	return s, nil
}

// bind binds the unification variable tv to type t, enforcing the
// occurs-check (P3) and the domain-admits-check before binding.
func bind(tv, t *types.Type) (Subst, error) {
	if t.Kind == types.KindVar && t.VarID == tv.VarID {
		return NewSubst(), nil
	}
	if OccursCheck(tv, t) {
		return nil, &UnifyError{A: tv, B: t, OccursVar: true}
	}
	if !domainAdmits(tv.VarDomain, t) {
		return nil, &UnifyError{A: tv, B: t, DomainFail: true}
	}
	s := NewSubst()
	s[tv.VarID] = t
	return s, nil
}

func domainAdmits(d types.Domain, t *types.Type) bool {
	switch d {
	case types.DomainAny:
		return true
	case types.DomainInt:
		return t.Kind == types.KindBuiltin && t.Builtin.IsInt()
	case types.DomainFloat:
		return t.Kind == types.KindBuiltin && t.Builtin.IsFloat()
	case types.DomainAdt:
		return t.Kind == types.KindAdt || t.Kind == types.KindApplied
	default:
		return true
	}
}

// OccursCheck reports whether tv occurs free within t (P3: no
// substitution binds V -> t where V in ftv(t)).
func OccursCheck(tv, t *types.Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind {
	case types.KindVar:
		return t.VarID == tv.VarID
	case types.KindApplied:
		for _, a := range t.Args {
			if OccursCheck(tv, a) {
				return true
			}
		}
		return false
	case types.KindTuple:
		for _, e := range t.Elems {
			if OccursCheck(tv, e) {
				return true
			}
		}
		return false
	case types.KindArray:
		return OccursCheck(tv, t.Elem)
	case types.KindPtr, types.KindRef:
		return OccursCheck(tv, t.Pointee)
	case types.KindFun:
		for _, p := range t.Params {
			if OccursCheck(tv, p) {
				return true
			}
		}
		return OccursCheck(tv, t.Result)
	default:
		return false
	}
}
