package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"

	"github.com/philang/phi/internal/ast"
	"github.com/philang/phi/internal/types"
)

// loopCtx is the generalization of the teacher's LoopContext for a
// structured-control-flow target instead of a bytecode jump list:
// break/continue inside the loop body branch straight to one of these
// two blocks rather than patching a list of jump offsets afterward.
type loopCtx struct {
	continueTarget *ir.Block
	breakTarget    *ir.Block
}

// funcCtx is the per-function lowering state threaded through Phase 4's
// body-emission pass, generalizing vm.Compiler's locals/scope-depth
// bookkeeping to SSA: a local's storage is an alloca pointer kept live
// for the function's whole lifetime rather than a stack slot index.
type funcCtx struct {
	fn    *ir.Func
	block *ir.Block

	locals map[ast.ValueDecl]value.Value
	gmap   map[types.Decl]*types.Type

	loops   []loopCtx
	defers  []ast.Expr
	blockNo int
}

func newFuncCtx(fn *ir.Func, entry *ir.Block, gmap map[types.Decl]*types.Type) *funcCtx {
	return &funcCtx{
		fn:     fn,
		block:  entry,
		locals: make(map[ast.ValueDecl]value.Value),
		gmap:   gmap,
	}
}

func (f *funcCtx) freshBlock(label string) *ir.Block {
	f.blockNo++
	b := f.fn.NewBlock(label + "." + itoa(f.blockNo))
	return b
}

func (f *funcCtx) pushLoop(continueTarget, breakTarget *ir.Block) {
	f.loops = append(f.loops, loopCtx{continueTarget: continueTarget, breakTarget: breakTarget})
}

func (f *funcCtx) popLoop() {
	f.loops = f.loops[:len(f.loops)-1]
}

func (f *funcCtx) currentLoop() (loopCtx, bool) {
	if len(f.loops) == 0 {
		return loopCtx{}, false
	}
	return f.loops[len(f.loops)-1], true
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
