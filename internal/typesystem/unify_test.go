package typesystem

import (
	"testing"

	"github.com/philang/phi/internal/types"
)

func TestUnifyOccursCheck(t *testing.T) {
	arena := types.NewArena()
	v := arena.Fresh(types.DomainAny)
	self := arena.Array(v)
	if _, err := Unify(v, self); err == nil {
		t.Fatalf("expected occurs-check failure, got success")
	}
}

func TestUnifySymmetry(t *testing.T) {
	arena := types.NewArena()
	i32 := arena.Builtin(types.I32)
	v := arena.Fresh(types.DomainInt)

	_, err1 := Unify(v, i32)
	_, err2 := Unify(i32, v)
	if (err1 == nil) != (err2 == nil) {
		t.Fatalf("unify not symmetric: %v vs %v", err1, err2)
	}
}

func TestUnifyDomainFailure(t *testing.T) {
	arena := types.NewArena()
	str := arena.Builtin(types.String)
	v := arena.Fresh(types.DomainInt)
	if _, err := Unify(v, str); err == nil {
		t.Fatalf("expected domain mismatch to fail, string is not in Int domain")
	}
}

func TestUnifyBuiltinMismatch(t *testing.T) {
	arena := types.NewArena()
	i32 := arena.Builtin(types.I32)
	f32 := arena.Builtin(types.F32)
	if _, err := Unify(i32, f32); err == nil {
		t.Fatalf("expected i32/f32 mismatch to fail")
	}
}

func TestInstantiatePreservesDomain(t *testing.T) {
	arena := types.NewArena()
	v := arena.Fresh(types.DomainInt)
	scheme := &Scheme{Vars: []int{v.VarID}, Type: v}

	fresh := Instantiate(scheme, arena.Fresh)
	if fresh.Kind != types.KindVar {
		t.Fatalf("expected a fresh var, got %v", fresh)
	}
	if fresh.VarDomain != types.DomainInt {
		t.Fatalf("expected fresh var to preserve Int domain, got %v", fresh.VarDomain)
	}
	if fresh.VarID == v.VarID {
		t.Fatalf("expected a distinct identity from instantiation")
	}
}

func TestGeneralizeExcludesEnvFreeVars(t *testing.T) {
	arena := types.NewArena()
	v := arena.Fresh(types.DomainAny)
	fn := arena.Fun([]*types.Type{v}, v)

	scheme := Generalize(nil, fn)
	if len(scheme.Vars) != 1 || scheme.Vars[0] != v.VarID {
		t.Fatalf("expected fn's single free var to be generalized, got %v", scheme.Vars)
	}

	scheme2 := Generalize([]*types.Type{v}, fn)
	if len(scheme2.Vars) != 0 {
		t.Fatalf("expected var bound in env to not be generalized, got %v", scheme2.Vars)
	}
}
