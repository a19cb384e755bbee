package codegen

import "github.com/philang/phi/internal/types"

// substGeneric substitutes every Generic leaf in t per gmap, mirroring
// infer.substGenerics's structural walk — codegen needs its own copy
// since it substitutes while lowering an instantiation's declaration
// rather than while unifying a call site, and the two packages don't
// otherwise share a dependency.
func substGeneric(t *types.Type, gmap map[types.Decl]*types.Type) *types.Type {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case types.KindGeneric:
		if bound, ok := gmap[t.GenericDecl]; ok {
			return bound
		}
		return t
	case types.KindApplied:
		args := make([]*types.Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = substGeneric(a, gmap)
		}
		return &types.Type{Kind: types.KindApplied, Base: t.Base, Args: args}
	case types.KindTuple:
		elems := make([]*types.Type, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = substGeneric(e, gmap)
		}
		return &types.Type{Kind: types.KindTuple, Elems: elems}
	case types.KindArray:
		return &types.Type{Kind: types.KindArray, Elem: substGeneric(t.Elem, gmap)}
	case types.KindPtr:
		return &types.Type{Kind: types.KindPtr, Pointee: substGeneric(t.Pointee, gmap)}
	case types.KindRef:
		return &types.Type{Kind: types.KindRef, Pointee: substGeneric(t.Pointee, gmap)}
	case types.KindFun:
		params := make([]*types.Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = substGeneric(p, gmap)
		}
		return &types.Type{Kind: types.KindFun, Params: params, Result: substGeneric(t.Result, gmap)}
	default:
		return t
	}
}

// matchGeneric walks declared (which may still mention Generic leaves
// belonging to the enclosing function/method's own type parameters)
// against concrete, the corresponding finalized type recorded at one
// call site, recording each Generic's binding into out. This recovers
// the substitution a call site implies without needing its (possibly
// omitted, inference-filled) explicit type-argument list — the
// counterpart, for already-typed call sites, of infer.buildGenericMap's
// fresh-variable construction at the point of inference itself.
func matchGeneric(declared, concrete *types.Type, out map[types.Decl]*types.Type) {
	if declared == nil || concrete == nil {
		return
	}
	switch declared.Kind {
	case types.KindGeneric:
		if _, ok := out[declared.GenericDecl]; !ok {
			out[declared.GenericDecl] = concrete
		}
	case types.KindApplied:
		if concrete.Kind == types.KindApplied {
			for i, a := range declared.Args {
				if i < len(concrete.Args) {
					matchGeneric(a, concrete.Args[i], out)
				}
			}
		}
	case types.KindTuple:
		if concrete.Kind == types.KindTuple {
			for i, e := range declared.Elems {
				if i < len(concrete.Elems) {
					matchGeneric(e, concrete.Elems[i], out)
				}
			}
		}
	case types.KindArray:
		if concrete.Kind == types.KindArray {
			matchGeneric(declared.Elem, concrete.Elem, out)
		}
	case types.KindPtr, types.KindRef:
		if concrete.Kind == declared.Kind {
			matchGeneric(declared.Pointee, concrete.Pointee, out)
		}
	case types.KindFun:
		if concrete.Kind == types.KindFun {
			for i, p := range declared.Params {
				if i < len(concrete.Params) {
					matchGeneric(p, concrete.Params[i], out)
				}
			}
			matchGeneric(declared.Result, concrete.Result, out)
		}
	}
}
