package codegen

import (
	irconstant "github.com/llir/llvm/ir/constant"
	irtypes "github.com/llir/llvm/ir/types"

	"github.com/philang/phi/internal/ast"
)

// emitEntryPoint renames the user's `main` to `__builtin_main` and emits
// a real `main` returning i32 0 that calls it, matching the C ABI the
// linker and OS loader expect regardless of what return type (if any)
// the source-level main declares.
func (g *Generator) emitEntryPoint(prog *ast.Module) {
	userMain, ok := g.funcs["main"]
	if !ok {
		return
	}
	userMain.GlobalName = "__builtin_main"
	delete(g.funcs, "main")
	g.funcs["__builtin_main"] = userMain

	entry := g.mod.NewFunc("main", irtypes.I32)
	block := entry.NewBlock("entry")
	block.NewCall(userMain)
	block.NewRet(irconstant.NewInt(irtypes.I32, 0))
}
