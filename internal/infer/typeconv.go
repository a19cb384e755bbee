package infer

import (
	"github.com/philang/phi/internal/ast"
	"github.com/philang/phi/internal/types"
)

// typeExprToType converts a resolved ast.TypeExpr into the arena's Type
// representation. Name resolution has already filled TypeRef.Decl/
// Builtin; an unresolved TypeRef (resolver already reported it) falls
// back to a fresh Any variable so the enclosing item's inference can
// still proceed as far as possible.
func (e *Engine) typeExprToType(te ast.TypeExpr) *types.Type {
	if te == nil {
		return e.arena.Builtin(types.Null)
	}
	switch t := te.(type) {
	case *ast.TypeRef:
		if t.Builtin {
			b, _ := types.LookupBuiltin(t.Name)
			return e.arena.Builtin(b)
		}
		switch d := t.Decl.(type) {
		case *ast.TypeParamDecl:
			return e.arena.Generic(d.Name, d)
		case *ast.StructDecl:
			return e.adtOrApplied(d, d.Name, t.Args)
		case *ast.EnumDecl:
			return e.adtOrApplied(d, d.Name, t.Args)
		default:
			return e.fresh(types.DomainAny)
		}
	case *ast.PtrTypeExpr:
		return e.arena.Ptr(e.typeExprToType(t.Elem))
	case *ast.RefTypeExpr:
		return e.arena.Ref(e.typeExprToType(t.Elem))
	case *ast.TupleTypeExpr:
		elems := make([]*types.Type, len(t.Elems))
		for i, el := range t.Elems {
			elems[i] = e.typeExprToType(el)
		}
		return e.arena.Tuple(elems)
	case *ast.ArrayTypeExpr:
		return e.arena.Array(e.typeExprToType(t.Elem))
	case *ast.FunTypeExpr:
		params := make([]*types.Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = e.typeExprToType(p)
		}
		return e.arena.Fun(params, e.typeExprToType(t.Result))
	default:
		return e.fresh(types.DomainAny)
	}
}

func (e *Engine) adtOrApplied(decl types.Decl, name string, args []ast.TypeExpr) *types.Type {
	base := e.arena.Adt(name, decl)
	if len(args) == 0 {
		return base
	}
	targs := make([]*types.Type, len(args))
	for i, a := range args {
		targs[i] = e.typeExprToType(a)
	}
	return e.arena.Applied(decl, targs)
}

// declareHeaderTypes computes and fills Resolved on item's signature
// (and, for ADTs, its fields/variants and methods), so bodies can be
// inferred in any order and mutual recursion between top-level functions
// works without a fixpoint pass.
func (e *Engine) declareHeaderTypes(item ast.Decl) {
	switch d := item.(type) {
	case *ast.FunDecl:
		d.Resolved = e.funType(d.Params, d.ReturnType)

	case *ast.StructDecl:
		for _, f := range d.Fields {
			f.Resolved = e.typeExprToType(f.TypeExpr)
		}
		d.Resolved = e.arena.Adt(d.Name, d)
		for _, m := range d.Methods {
			e.declareMethodHeaderType(m)
		}

	case *ast.EnumDecl:
		for _, v := range d.Variants {
			if v.Payload != nil {
				v.Resolved = e.typeExprToType(v.Payload)
			}
		}
		d.Resolved = e.arena.Adt(d.Name, d)
		for _, m := range d.Methods {
			e.declareMethodHeaderType(m)
		}
	}
}

func (e *Engine) declareMethodHeaderType(m *ast.MethodDecl) {
	m.Resolved = e.funType(m.Params, m.ReturnType)
}

func (e *Engine) funType(params []*ast.ParamDecl, returnType ast.TypeExpr) *types.Type {
	ptypes := make([]*types.Type, len(params))
	for i, p := range params {
		p.Resolved = e.typeExprToType(p.TypeExpr)
		ptypes[i] = p.Resolved
	}
	return e.arena.Fun(ptypes, e.typeExprToType(returnType))
}
