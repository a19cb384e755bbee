package codegen

import (
	irtypes "github.com/llir/llvm/ir/types"

	"github.com/philang/phi/internal/ast"
	"github.com/philang/phi/internal/types"
)

// llvmType implements §4.5's type-mapping table. gmap substitutes any
// Generic leaf reached along the way — every caller of llvmType during
// Phase 2/4 is already operating inside one instantiation's
// substitution, so a type that still mentions a Generic here can only
// be one of that instantiation's own (by then bound) parameters.
func (g *Generator) llvmType(t *types.Type, gmap map[types.Decl]*types.Type) irtypes.Type {
	switch t.Kind {
	case types.KindBuiltin:
		return llvmBuiltin(t.Builtin)
	case types.KindAdt:
		return irtypes.NewPointer(g.adtType(t.Decl, nil))
	case types.KindApplied:
		return irtypes.NewPointer(g.adtType(t.Base, t.Args))
	case types.KindTuple:
		elems := make([]irtypes.Type, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = g.llvmType(e, gmap)
		}
		return irtypes.NewStruct(elems...)
	case types.KindArray:
		return irtypes.NewStruct(irtypes.NewPointer(g.llvmType(t.Elem, gmap)), irtypes.I64)
	case types.KindPtr, types.KindRef:
		return irtypes.NewPointer(g.llvmType(t.Pointee, gmap))
	case types.KindFun:
		params := make([]irtypes.Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = g.llvmType(p, gmap)
		}
		return irtypes.NewPointer(irtypes.NewFunc(g.llvmType(t.Result, gmap), params...))
	case types.KindGeneric:
		if bound, ok := gmap[t.GenericDecl]; ok {
			return g.llvmType(bound, gmap)
		}
		return irtypes.I64 // unresolved generic outside any instantiation: should never be reached post-monomorphization
	default:
		return irtypes.Void
	}
}

func llvmBuiltin(b types.Builtin) irtypes.Type {
	switch b {
	case types.I8, types.U8:
		return irtypes.I8
	case types.I16, types.U16:
		return irtypes.I16
	case types.I32, types.U32:
		return irtypes.I32
	case types.I64, types.U64:
		return irtypes.I64
	case types.F32:
		return irtypes.Float
	case types.F64:
		return irtypes.Double
	case types.Bool:
		return irtypes.I1
	case types.Char:
		return irtypes.I8
	case types.String:
		return irtypes.NewPointer(irtypes.I8)
	case types.RangeBuiltin:
		return irtypes.NewStruct(irtypes.I64, irtypes.I64)
	case types.Null:
		return irtypes.Void
	default:
		return irtypes.Void
	}
}

// adtType returns the named LLVM struct for decl applied to args. On
// first reference it registers the struct as opaque and only then has
// enqueueStruct/enqueueEnum set its body, so a self-referential field
// (struct Node{next: *Node}) names the already-registered, not-yet-
// completed type instead of recursing.
func (g *Generator) adtType(decl types.Decl, args []*types.Type) *irtypes.StructType {
	mangled := mangle(decl.DeclName(), args)
	if st, ok := g.adtTypes[mangled]; ok {
		return st
	}
	st := &irtypes.StructType{TypeName: mangled, Opaque: true}
	g.adtTypes[mangled] = st
	g.mod.TypeDefs = append(g.mod.TypeDefs, st)
	switch d := decl.(type) {
	case *ast.StructDecl:
		g.enqueueStruct(d, args)
	case *ast.EnumDecl:
		g.enqueueEnum(d, args)
	}
	return st
}

// sizeOf estimates a concrete type's in-memory byte size, used to size
// an enum's payload slot ([MAX_PAYLOAD x i8]) and the malloc call behind
// a struct or enum literal; pointers, strings and refs are a single
// machine word wide in this ABI, and an array's {ptr, i64} slice two.
func sizeOf(t *types.Type) int {
	switch t.Kind {
	case types.KindBuiltin:
		switch t.Builtin {
		case types.I8, types.U8, types.Bool, types.Char:
			return 1
		case types.I16, types.U16:
			return 2
		case types.I32, types.U32, types.F32:
			return 4
		case types.I64, types.U64, types.F64:
			return 8
		case types.String:
			return 8
		case types.RangeBuiltin:
			return 16
		default:
			return 0
		}
	case types.KindTuple:
		total := 0
		for _, e := range t.Elems {
			total += sizeOf(e)
		}
		return total
	case types.KindArray:
		return 16 // {ptr, i64}
	case types.KindPtr, types.KindRef:
		return 8
	case types.KindAdt:
		return sizeOfAdt(t.Decl, nil)
	case types.KindApplied:
		return sizeOfAdt(t.Base, t.Args)
	default:
		return 8
	}
}

func sizeOfAdt(decl types.Decl, args []*types.Type) int {
	sd, ok := decl.(*ast.StructDecl)
	if !ok {
		return 8
	}
	gmap := make(map[types.Decl]*types.Type, len(sd.TypeParams))
	for i, tp := range sd.TypeParams {
		if i < len(args) {
			gmap[tp] = args[i]
		}
	}
	total := 0
	for _, f := range sd.Fields {
		total += sizeOf(substGeneric(f.Resolved, gmap))
	}
	return total
}
