package codegen

import (
	"github.com/llir/llvm/ir"
	irtypes "github.com/llir/llvm/ir/types"

	"github.com/philang/phi/internal/ast"
	"github.com/philang/phi/internal/types"
)

// discoverRoots seeds the worklist with every concrete (non-generic)
// top-level declaration — Phase 1's reachability walk starts here, since
// a generic declaration with no call site yet supplying type arguments
// has nothing concrete to lower.
func (g *Generator) discoverRoots(mod *ast.Module) {
	for _, item := range mod.Items {
		switch d := item.(type) {
		case *ast.FunDecl:
			if len(d.TypeParams) == 0 {
				g.enqueueFun(d, nil)
			}
		case *ast.StructDecl:
			if len(d.TypeParams) == 0 {
				g.adtType(d, nil)
				for _, m := range d.Methods {
					if len(m.TypeParams) == 0 {
						g.enqueueMethod(m, nil, nil)
					}
				}
			}
		case *ast.EnumDecl:
			if len(d.TypeParams) == 0 {
				g.adtType(d, nil)
				for _, m := range d.Methods {
					if len(m.TypeParams) == 0 {
						g.enqueueMethod(m, nil, nil)
					}
				}
			}
		}
	}
}

// enqueueFun declares d's concrete signature immediately (so a call site
// discovered before d's body is lowered still has a callable value to
// reference) and queues the body for Phase 4's emission pass.
func (g *Generator) enqueueFun(d *ast.FunDecl, args []*types.Type) string {
	mangled := mangle(d.Name, args)
	if g.seen[mangled] {
		return mangled
	}
	g.seen[mangled] = true
	gmap := zipGmap(d.TypeParams, args)
	fn := g.declareFunSig(mangled, d.Params, d.ReturnType, d.Resolved, gmap)
	g.funcs[mangled] = fn
	g.worklist = append(g.worklist, &instRequest{kind: instFun, mangled: mangled, fun: d, args: args})
	return mangled
}

func (g *Generator) enqueueMethod(d *ast.MethodDecl, adtArgs, methodArgs []*types.Type) string {
	parentName := d.Parent.DeclName()
	mangledParent := mangle(parentName, adtArgs)
	mangled := mangleMethod(mangledParent, d.Name, methodArgs)
	if g.seen[mangled] {
		return mangled
	}
	g.seen[mangled] = true
	gmap := zipGmap(d.TypeParams, methodArgs)
	for k, v := range zipGmap(parentTypeParams(d.Parent), adtArgs) {
		gmap[k] = v
	}
	selfStruct := g.adtType(d.Parent, adtArgs)
	selfParam := ir.NewParam("self", irtypes.NewPointer(selfStruct))
	fn := g.declareFunSigWithSelf(mangled, selfParam, d.Params, d.ReturnType, d.Resolved, gmap)
	g.funcs[mangled] = fn
	g.worklist = append(g.worklist, &instRequest{
		kind: instMethod, mangled: mangled, method: d,
		args: methodArgs, adtArgs: adtArgs,
	})
	return mangled
}

// enqueueStruct and enqueueEnum fill in an ADT instantiation's body as
// soon as adtType has registered its opaque named struct, rather than
// leaving it on the worklist: the caller that triggered adtType (e.g.
// lowerAdtInit) emits a GEP into the struct right away, which needs its
// fields. A self-referential field still resolves to the registered
// opaque handle, so this does not recurse.
func (g *Generator) enqueueStruct(d *ast.StructDecl, args []*types.Type) {
	mangled := mangle(d.Name, args)
	if g.seen[mangled] {
		return
	}
	g.seen[mangled] = true
	g.monomorphizeStruct(&instRequest{kind: instStruct, mangled: mangled, structDecl: d, args: args})
}

func (g *Generator) enqueueEnum(d *ast.EnumDecl, args []*types.Type) {
	mangled := mangle(d.Name, args)
	if g.seen[mangled] {
		return
	}
	g.seen[mangled] = true
	g.monomorphizeEnum(&instRequest{kind: instEnum, mangled: mangled, enumDecl: d, args: args})
}

// resolveCallTypeArgs recovers a call's concrete type arguments by
// matching each parameter's declared type against the concrete type
// recorded at the corresponding argument expression, then the declared
// result type against the call's own type. An explicit TypeArgs list on
// the call is not consulted (the AST stores it as TypeExpr, not
// *types.Type).
func (g *Generator) resolveCallTypeArgs(typeParams []*ast.TypeParamDecl, params []*ast.ParamDecl, args []ast.Expr, funType *types.Type, concreteRet *types.Type) []*types.Type {
	out := map[types.Decl]*types.Type{}
	for i, p := range params {
		if i < len(args) {
			matchGeneric(p.Resolved, args[i].Type(), out)
		}
	}
	if funType != nil {
		matchGeneric(funType.Result, concreteRet, out)
	}
	result := make([]*types.Type, len(typeParams))
	for i, tp := range typeParams {
		if bound, ok := out[tp]; ok {
			result[i] = bound
		}
	}
	return result
}

func anyContainsGeneric(args []*types.Type) bool {
	for _, a := range args {
		if a == nil || a.ContainsGeneric() {
			return true
		}
	}
	return false
}
