package codegen

import (
	"github.com/llir/llvm/ir"
	irtypes "github.com/llir/llvm/ir/types"

	"github.com/philang/phi/internal/ast"
	"github.com/philang/phi/internal/types"
)

// drain implements Phase 2/4 fused: for every queued instantiation it
// builds that instantiation's substitution map, declares its concrete
// LLVM shape, and — for a function or method — lowers its body
// immediately, discovering (and so enqueuing) any further instantiation
// it references in turn. The worklist keeps growing while it drains, so
// a nested generic call discovered three levels deep still gets
// monomorphized (§4.5 Phase 2 step 3).
func (g *Generator) drain() {
	for len(g.worklist) > 0 {
		req := g.worklist[0]
		g.worklist = g.worklist[1:]
		switch req.kind {
		case instStruct:
			g.monomorphizeStruct(req)
		case instEnum:
			g.monomorphizeEnum(req)
		case instFun:
			g.monomorphizeFun(req)
		case instMethod:
			g.monomorphizeMethod(req)
		}
	}
}

func zipGmap(params []*ast.TypeParamDecl, args []*types.Type) map[types.Decl]*types.Type {
	gmap := make(map[types.Decl]*types.Type, len(params))
	for i, p := range params {
		if i < len(args) {
			gmap[p] = args[i]
		}
	}
	return gmap
}

func (g *Generator) monomorphizeStruct(req *instRequest) {
	sd := req.structDecl
	gmap := zipGmap(sd.TypeParams, req.args)
	fields := make([]irtypes.Type, len(sd.Fields))
	for i, f := range sd.Fields {
		fields[i] = g.llvmType(f.Resolved, gmap)
	}
	st := g.adtTypes[req.mangled]
	st.Fields = fields
	st.Opaque = false
}

func (g *Generator) monomorphizeEnum(req *instRequest) {
	ed := req.enumDecl
	gmap := zipGmap(ed.TypeParams, req.args)
	maxPayload := 0
	for _, v := range ed.Variants {
		if v.Resolved != nil {
			if sz := sizeOf(substGeneric(v.Resolved, gmap)); sz > maxPayload {
				maxPayload = sz
			}
		}
	}
	if maxPayload == 0 {
		maxPayload = 1
	}
	st := g.adtTypes[req.mangled]
	st.Fields = []irtypes.Type{irtypes.I32, irtypes.NewArray(uint64(maxPayload), irtypes.I8)}
	st.Opaque = false
}

// monomorphizeFun/Method fill the body of a signature enqueueFun/Method
// already declared (so earlier-discovered call sites have something to
// reference even before this request is drained).
func (g *Generator) monomorphizeFun(req *instRequest) {
	fd := req.fun
	gmap := zipGmap(fd.TypeParams, req.args)
	fn := g.funcs[req.mangled]
	g.emitFunBody(fn, fd.Params, nil, fd.Body, gmap)
}

func (g *Generator) monomorphizeMethod(req *instRequest) {
	md := req.method
	gmap := zipGmap(md.TypeParams, req.args)
	for k, v := range zipGmap(parentTypeParams(md.Parent), req.adtArgs) {
		gmap[k] = v
	}
	fn := g.funcs[req.mangled]
	g.emitFunBody(fn, md.Params, md.Self(), md.Body, gmap)
}

func parentTypeParams(parent ast.Decl) []*ast.TypeParamDecl {
	switch p := parent.(type) {
	case *ast.StructDecl:
		return p.TypeParams
	case *ast.EnumDecl:
		return p.TypeParams
	default:
		return nil
	}
}

func (g *Generator) declareFunSig(mangled string, params []*ast.ParamDecl, retExpr ast.TypeExpr, funType *types.Type, gmap map[types.Decl]*types.Type) *ir.Func {
	llParams := make([]*ir.Param, len(params))
	for i, p := range params {
		llParams[i] = ir.NewParam(p.Name, g.llvmType(p.Resolved, gmap))
	}
	retTy := irtypes.Type(irtypes.Void)
	if retExpr != nil && funType != nil {
		retTy = g.llvmType(funType.Result, gmap)
	}
	return g.mod.NewFunc(mangled, retTy, llParams...)
}

func (g *Generator) declareFunSigWithSelf(mangled string, self *ir.Param, params []*ast.ParamDecl, retExpr ast.TypeExpr, funType *types.Type, gmap map[types.Decl]*types.Type) *ir.Func {
	llParams := make([]*ir.Param, 0, len(params)+1)
	llParams = append(llParams, self)
	for _, p := range params {
		llParams = append(llParams, ir.NewParam(p.Name, g.llvmType(p.Resolved, gmap)))
	}
	retTy := irtypes.Type(irtypes.Void)
	if retExpr != nil && funType != nil {
		retTy = g.llvmType(funType.Result, gmap)
	}
	return g.mod.NewFunc(mangled, retTy, llParams...)
}
