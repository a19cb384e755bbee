package infer

import (
	"github.com/philang/phi/internal/ast"
	"github.com/philang/phi/internal/diagnostics"
	"github.com/philang/phi/internal/types"
	"github.com/philang/phi/internal/typesystem"
)

// exprInferrer adapts *Engine to ast.ExprVisitor, one rule per row of the
// spec's inference table, mirroring the resolver's exprWalker
// type-identity-alias idiom.
type exprInferrer Engine

func (w *exprInferrer) e() *Engine { return (*Engine)(w) }

func (w *exprInferrer) VisitIntLiteral(n *ast.IntLiteral) any {
	return w.e().fresh(types.DomainInt)
}

func (w *exprInferrer) VisitFloatLiteral(n *ast.FloatLiteral) any {
	return w.e().fresh(types.DomainFloat)
}

func (w *exprInferrer) VisitBoolLiteral(n *ast.BoolLiteral) any {
	return w.e().arena.Builtin(types.Bool)
}

func (w *exprInferrer) VisitCharLiteral(n *ast.CharLiteral) any {
	return w.e().arena.Builtin(types.Char)
}

func (w *exprInferrer) VisitStrLiteral(n *ast.StrLiteral) any {
	return w.e().arena.Builtin(types.String)
}

func (w *exprInferrer) VisitRangeExpr(n *ast.RangeExpr) any {
	e := w.e()
	a := e.inferExpr(n.Start)
	b := e.inferExpr(n.End)
	e.unify(n.Pos(), a, b)
	return e.arena.Builtin(types.RangeBuiltin)
}

func (w *exprInferrer) VisitTupleExpr(n *ast.TupleExpr) any {
	e := w.e()
	elems := make([]*types.Type, len(n.Elems))
	for i, el := range n.Elems {
		elems[i] = e.inferExpr(el)
	}
	return e.arena.Tuple(elems)
}

func (w *exprInferrer) VisitArrayExpr(n *ast.ArrayExpr) any {
	e := w.e()
	elem := e.fresh(types.DomainAny)
	for _, el := range n.Elems {
		e.unify(el.Pos(), elem, e.inferExpr(el))
	}
	return e.arena.Array(elem)
}

// VisitDeclRef returns the stored monotype of the bound declaration as
// is; no instantiation is applied, since locals are not generalized. A
// ParamDecl carries the type filled by the header pass (possibly
// Generic-containing), a VarDecl the type its VarDeclStmt gave it (which
// may still contain unification variables), and a BindingDecl the type
// its pattern gave it; SelfDecl's type is computed lazily on first use
// since the resolver leaves it nil.
func (w *exprInferrer) VisitDeclRef(n *ast.DeclRef) any {
	e := w.e()
	if n.Decl == nil {
		return e.fresh(types.DomainAny)
	}
	switch d := n.Decl.(type) {
	case *ast.ParamDecl:
		return d.Resolved
	case *ast.VarDecl:
		return d.Resolved
	case *ast.BindingDecl:
		return d.Resolved
	case *ast.SelfDecl:
		if d.Resolved == nil {
			d.Resolved = e.selfType(d.Method)
		}
		return d.Resolved
	default:
		return e.fresh(types.DomainAny)
	}
}

// selfType computes the implicit receiver's type from its method's
// parent declaration, wrapping in Ref per SelfByRef (Phi methods take
// self either by value or by reference, never by raw pointer).
func (e *Engine) selfType(m *ast.MethodDecl) *types.Type {
	var base *types.Type
	switch p := m.Parent.(type) {
	case *ast.StructDecl:
		base = p.Resolved
	case *ast.EnumDecl:
		base = p.Resolved
	default:
		return e.fresh(types.DomainAny)
	}
	if m.SelfByRef {
		return e.arena.Ref(base)
	}
	return base
}

func (w *exprInferrer) VisitFunCall(n *ast.FunCall) any {
	e := w.e()
	if n.ResolvedFun != nil {
		return e.inferDirectCall(n, n.ResolvedFun.TypeParams, n.ResolvedFun.Resolved)
	}
	calleeType := e.inferExpr(n.Callee)
	argTypes := make([]*types.Type, len(n.Args))
	for i, a := range n.Args {
		argTypes[i] = e.inferExpr(a)
	}
	result := e.fresh(types.DomainAny)
	e.unify(n.Pos(), calleeType, e.arena.Fun(argTypes, result))
	return result
}

// inferDirectCall handles a call to a statically-resolved FunDecl or
// MethodDecl, instantiating its own type parameters (explicit type
// arguments win; otherwise a fresh Any variable per parameter) before
// unifying each argument against the substituted parameter type.
func (e *Engine) inferDirectCall(n *ast.FunCall, typeParams []*ast.TypeParamDecl, funType *types.Type) *types.Type {
	gmap := e.buildGenericMap(typeParams, n.TypeArgs)
	inst := substGenerics(funType, gmap)
	if len(n.Args) != len(inst.Params) {
		e.errorf(diagnostics.KindArityMismatch, n.Pos(), "expected %d argument(s), got %d", len(inst.Params), len(n.Args))
		e.abort()
	}
	for i, a := range n.Args {
		e.unify(a.Pos(), inst.Params[i], e.inferExpr(a))
	}
	return inst.Result
}

func (e *Engine) buildGenericMap(params []*ast.TypeParamDecl, explicit []ast.TypeExpr) map[types.Decl]*types.Type {
	m := make(map[types.Decl]*types.Type, len(params))
	for i, tp := range params {
		if i < len(explicit) {
			m[tp] = e.typeExprToType(explicit[i])
		} else {
			m[tp] = e.fresh(types.DomainAny)
		}
	}
	return m
}

// VisitMethodCall resolves n.Method on the base expression's Adt,
// auto-dereferencing through Ref/Ptr, instantiates both the parent ADT's
// and the method's own type parameters, and unifies arguments against
// the substituted signature.
func (w *exprInferrer) VisitMethodCall(n *ast.MethodCall) any {
	e := w.e()
	baseType := e.inferExpr(n.Base)
	decl, adtArgs := unwrapAdt(typesystem.Apply(e.subst, baseType))
	var method *ast.MethodDecl
	var parentParams []*ast.TypeParamDecl
	var ok bool
	switch d := decl.(type) {
	case *ast.StructDecl:
		method, ok = d.MethodByName(n.Method)
		parentParams = d.TypeParams
	case *ast.EnumDecl:
		method, ok = d.MethodByName(n.Method)
		parentParams = d.TypeParams
	default:
		ok = false
	}
	if !ok || method == nil {
		e.errorf(diagnostics.KindUnresolvedName, n.Pos(), "no method %q on %s", n.Method, baseType.String())
		e.abort()
	}
	n.Resolved = method

	gmap := make(map[types.Decl]*types.Type, len(parentParams)+len(method.TypeParams))
	for i, tp := range parentParams {
		if i < len(adtArgs) {
			gmap[tp] = adtArgs[i]
		}
	}
	for k, v := range e.buildGenericMap(method.TypeParams, n.TypeArgs) {
		gmap[k] = v
	}
	inst := substGenerics(method.Resolved, gmap)
	if len(n.Args) != len(inst.Params) {
		e.errorf(diagnostics.KindArityMismatch, n.Pos(), "expected %d argument(s), got %d", len(inst.Params), len(n.Args))
		e.abort()
	}
	for i, a := range n.Args {
		e.unify(a.Pos(), inst.Params[i], e.inferExpr(a))
	}
	return inst.Result
}

func (w *exprInferrer) VisitBinaryExpr(n *ast.BinaryExpr) any {
	e := w.e()
	l := e.inferExpr(n.Left)
	r := e.inferExpr(n.Right)
	switch n.Op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		alpha := e.fresh(types.DomainAny)
		e.unify(n.Pos(), alpha, l)
		e.unify(n.Pos(), alpha, r)
		return alpha
	case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		e.unify(n.Pos(), l, r)
		return e.arena.Builtin(types.Bool)
	case ast.OpAnd, ast.OpOr:
		boolT := e.arena.Builtin(types.Bool)
		e.unify(n.Pos(), boolT, l)
		e.unify(n.Pos(), boolT, r)
		return boolT
	default:
		return e.fresh(types.DomainAny)
	}
}

func (w *exprInferrer) VisitUnaryExpr(n *ast.UnaryExpr) any {
	e := w.e()
	t := e.inferExpr(n.Operand)
	if n.Op == ast.OpNot {
		boolT := e.arena.Builtin(types.Bool)
		e.unify(n.Pos(), boolT, t)
		return boolT
	}
	return t
}

// VisitAdtInit requires an explicit TypeRef (resolved by the resolver to
// Decl); each provided field initializer is unified against the target
// field's type under the struct's own type-parameter substitution, and
// every unspecified field must carry a default initializer.
func (w *exprInferrer) VisitAdtInit(n *ast.AdtInit) any {
	e := w.e()
	if n.Decl == nil {
		e.errorf(diagnostics.KindInternal, n.Pos(), "struct literal has no resolved type")
		e.abort()
	}
	tr, _ := n.TypeRef.(*ast.TypeRef)
	var explicit []ast.TypeExpr
	if tr != nil {
		explicit = tr.Args
	}
	gmap := e.buildGenericMap(n.Decl.TypeParams, explicit)

	provided := make(map[string]bool, len(n.Fields))
	for _, fi := range n.Fields {
		fd, ok := n.Decl.FieldByName(fi.Name)
		if !ok {
			e.errorf(diagnostics.KindUnresolvedName, n.Pos(), "%q has no field %q", n.Decl.Name, fi.Name)
			continue
		}
		provided[fi.Name] = true
		target := substGenerics(fd.Resolved, gmap)
		e.unify(fi.Value.Pos(), target, e.inferExpr(fi.Value))
	}
	for _, fd := range n.Decl.Fields {
		if !provided[fd.Name] && fd.Initializer == nil {
			e.errorf(diagnostics.KindArityMismatch, n.Pos(), "missing field %q in %q literal (no default)", fd.Name, n.Decl.Name)
		}
	}
	if len(gmap) == 0 {
		return e.arena.Adt(n.Decl.Name, n.Decl)
	}
	args := make([]*types.Type, len(n.Decl.TypeParams))
	for i, tp := range n.Decl.TypeParams {
		args[i] = gmap[tp]
	}
	return e.arena.Applied(n.Decl, args)
}

// VisitEnumInit unifies the payload (if any) against the target
// variant's payload type under the enum's type-parameter substitution.
func (w *exprInferrer) VisitEnumInit(n *ast.EnumInit) any {
	e := w.e()
	if n.Decl == nil || n.Target == nil {
		e.errorf(diagnostics.KindInternal, n.Pos(), "enum literal has no resolved variant")
		e.abort()
	}
	tr, _ := n.TypeRef.(*ast.TypeRef)
	var explicit []ast.TypeExpr
	if tr != nil {
		explicit = tr.Args
	}
	gmap := e.buildGenericMap(n.Decl.TypeParams, explicit)

	if n.Target.Payload != nil {
		if n.Payload == nil {
			e.errorf(diagnostics.KindArityMismatch, n.Pos(), "variant %q requires a payload", n.Target.Name)
			e.abort()
		}
		target := substGenerics(n.Target.Resolved, gmap)
		e.unify(n.Payload.Pos(), target, e.inferExpr(n.Payload))
	} else if n.Payload != nil {
		e.errorf(diagnostics.KindArityMismatch, n.Pos(), "variant %q carries no payload", n.Target.Name)
	}

	if len(gmap) == 0 {
		return e.arena.Adt(n.Decl.Name, n.Decl)
	}
	args := make([]*types.Type, len(n.Decl.TypeParams))
	for i, tp := range n.Decl.TypeParams {
		args[i] = gmap[tp]
	}
	return e.arena.Applied(n.Decl, args)
}

// VisitFieldAccess requires base to resolve to a struct Adt with the
// named field, substituting the struct's own type-parameter bindings
// (recovered from an Applied base) into the field's declared type.
func (w *exprInferrer) VisitFieldAccess(n *ast.FieldAccess) any {
	e := w.e()
	baseType := e.inferExpr(n.Base)
	decl, adtArgs := unwrapAdt(typesystem.Apply(e.subst, baseType))
	sd, ok := decl.(*ast.StructDecl)
	if !ok {
		e.errorf(diagnostics.KindUnifyError, n.Pos(), "%s has no fields", baseType.String())
		e.abort()
	}
	fd, ok := sd.FieldByName(n.Field)
	if !ok {
		e.errorf(diagnostics.KindUnresolvedName, n.Pos(), "%q has no field %q", sd.Name, n.Field)
		e.abort()
	}
	n.Index = fd.Index
	if len(adtArgs) == 0 {
		return fd.Resolved
	}
	gmap := make(map[types.Decl]*types.Type, len(sd.TypeParams))
	for i, tp := range sd.TypeParams {
		if i < len(adtArgs) {
			gmap[tp] = adtArgs[i]
		}
	}
	return substGenerics(fd.Resolved, gmap)
}

func (w *exprInferrer) VisitTupleIndex(n *ast.TupleIndex) any {
	e := w.e()
	baseType := typesystem.Apply(e.subst, e.inferExpr(n.Base))
	if baseType.Kind != types.KindTuple || n.Index < 0 || n.Index >= len(baseType.Elems) {
		e.errorf(diagnostics.KindUnifyError, n.Pos(), "%s has no element %d", baseType.String(), n.Index)
		e.abort()
	}
	return baseType.Elems[n.Index]
}

func (w *exprInferrer) VisitArrayIndex(n *ast.ArrayIndex) any {
	e := w.e()
	baseType := typesystem.Apply(e.subst, e.inferExpr(n.Base))
	idxT := e.inferExpr(n.Index)
	e.unify(n.Index.Pos(), e.fresh(types.DomainInt), idxT)
	if baseType.Kind != types.KindArray {
		e.errorf(diagnostics.KindUnifyError, n.Pos(), "%s is not indexable", baseType.String())
		e.abort()
	}
	return baseType.Elem
}

// VisitMatchExpr infers the scrutinee, binds each arm's pattern against
// it, infers the arm body/result, and unifies every arm's result type
// into one overall match type.
func (w *exprInferrer) VisitMatchExpr(n *ast.MatchExpr) any {
	e := w.e()
	scrutinee := e.inferExpr(n.Scrutinee)
	result := e.fresh(types.DomainAny)
	for _, arm := range n.Arms {
		e.inferPattern(arm.Pattern, scrutinee)
		if arm.Body != nil {
			e.inferBlock(arm.Body)
		}
		if arm.Result != nil {
			e.unify(arm.Result.Pos(), result, e.inferExpr(arm.Result))
		} else {
			e.unify(n.Pos(), result, e.arena.Builtin(types.Null))
		}
	}
	return result
}

func (w *exprInferrer) VisitAssignExpr(n *ast.AssignExpr) any {
	e := w.e()
	target := e.inferExpr(n.Target)
	value := e.inferExpr(n.Value)
	if n.Op != ast.AssignPlain {
		alpha := e.fresh(types.DomainAny)
		e.unify(n.Pos(), alpha, target)
		e.unify(n.Pos(), alpha, value)
		return alpha
	}
	e.unify(n.Pos(), target, value)
	return target
}

func (w *exprInferrer) VisitIntrinsicCall(n *ast.IntrinsicCall) any {
	e := w.e()
	for _, a := range n.Args {
		e.inferExpr(a)
	}
	switch n.Kind {
	case ast.IntrinsicPanic, ast.IntrinsicUnreachable, ast.IntrinsicAssert:
		return e.arena.Builtin(types.Null)
	case ast.IntrinsicTypeOf:
		return e.arena.Builtin(types.String)
	default:
		return e.arena.Builtin(types.Null)
	}
}
