package codegen

import (
	"github.com/llir/llvm/ir"
	irconstant "github.com/llir/llvm/ir/constant"
	irtypes "github.com/llir/llvm/ir/types"
)

// declareRuntime declares the three C runtime functions the lowerings
// call: printf and abort for the intrinsics (§4.5 Intrinsics:
// panic/assert printf a message then call abort()) and println, and
// malloc for heapAlloc. All are left bodiless, marking them as external
// declarations the linker resolves against libc.
func (g *Generator) declareRuntime() {
	printfParam := ir.NewParam("", irtypes.NewPointer(irtypes.I8))
	g.printfFn = g.mod.NewFunc("printf", irtypes.I32, printfParam)
	g.printfFn.Sig.Variadic = true

	g.abortFn = g.mod.NewFunc("abort", irtypes.Void)

	g.mallocFn = g.mod.NewFunc("malloc", irtypes.NewPointer(irtypes.I8), ir.NewParam("", irtypes.I64))
}

// heapAlloc allocates n bytes via malloc and bitcasts the result to
// elemType*; every struct and enum literal is heap-allocated rather
// than stack-allocated since a struct literal's pointer can outlive the
// block it was constructed in (returned, stored into a field, etc).
func (g *Generator) heapAlloc(elemType irtypes.Type, sizeBytes int64) *ir.InstBitCast {
	size := irconstant.NewInt(irtypes.I64, sizeBytes)
	raw := g.cur.block.NewCall(g.mallocFn, size)
	return g.cur.block.NewBitCast(raw, irtypes.NewPointer(elemType))
}

// stringConstant interns a NUL-terminated string literal as a module
// global and returns an i8* pointer to its first byte, deduplicating
// identical literals.
func (g *Generator) stringConstant(s string) *ir.InstGetElementPtr {
	glob, ok := g.strConst[s]
	if !ok {
		data := irconstant.NewCharArrayFromString(s + "\x00")
		glob = g.mod.NewGlobalDef(g.freshGlobalName(), data)
		glob.Immutable = true
		g.strConst[s] = glob
	}
	zero := irconstant.NewInt(irtypes.I64, 0)
	return g.cur.block.NewGetElementPtr(glob.ContentType, glob, zero, zero)
}

func (g *Generator) freshGlobalName() string {
	g.strCount++
	return ".str." + itoa(g.strCount)
}
