package symbols

// Scope holds one nesting level's six namespace maps and a parent
// pointer, mirroring the teacher's NewEnclosedSymbolTable/Outer()
// parent-chain, generalized to six disjoint maps per level instead of
// one shared, kind-tagged map.
type Scope struct {
	parent *Scope
	maps   [numNamespaces]map[string]*Symbol
	isFunc bool // true for a scope opened at function/method entry
	isLoop bool // true for a scope opened at loop-body entry
}

func newScope(parent *Scope) *Scope {
	s := &Scope{parent: parent}
	for i := range s.maps {
		s.maps[i] = make(map[string]*Symbol)
	}
	return s
}

// Table is the root of the scope stack plus the currently active leaf
// scope; Enter/Release push and pop scopes via a ScopeGuard.
type Table struct {
	root    *Scope
	current *Scope
	loopN   int // nesting depth of active loop scopes, for break/continue validity
	funcN   int // nesting depth of active function scopes, for return validity
}

// NewTable creates a table with one root (global) scope, pre-seeded by
// the caller with builtin type names before Pass 1 of name resolution
// runs (so `struct i32 {}` is rejected as a redefinition).
func NewTable() *Table {
	root := newScope(nil)
	return &Table{root: root, current: root}
}

// ScopeGuard is returned by Enter; its Release pops exactly the scope it
// opened. Call via defer so release is exhaustive on every exit path,
// including early error returns and panics (P9).
type ScopeGuard struct {
	table  *Table
	opened *Scope
}

// Enter pushes a new scope as a child of the current one and returns a
// guard whose Release restores the previous current scope.
func (t *Table) Enter() *ScopeGuard {
	s := newScope(t.current)
	t.current = s
	return &ScopeGuard{table: t, opened: s}
}

// EnterFunction is Enter plus marking the scope as a function boundary,
// so `return` validity checks can find the nearest enclosing one.
func (t *Table) EnterFunction() *ScopeGuard {
	g := t.Enter()
	g.opened.isFunc = true
	t.funcN++
	return g
}

// EnterLoop is Enter plus marking the scope as a loop boundary, so
// break/continue validity checks can find the nearest enclosing one.
func (t *Table) EnterLoop() *ScopeGuard {
	g := t.Enter()
	g.opened.isLoop = true
	t.loopN++
	return g
}

// Release pops the scope this guard opened. Releasing a guard that is
// not the innermost open scope is a programming error (scopes must
// nest); it panics rather than silently corrupting the stack, since that
// would violate the scoped-acquisition invariant (P9).
func (g *ScopeGuard) Release() {
	if g.table.current != g.opened {
		panic("symbols: ScopeGuard released out of order")
	}
	if g.opened.isLoop {
		g.table.loopN--
	}
	if g.opened.isFunc {
		g.table.funcN--
	}
	g.table.current = g.opened.parent
}

// InLoop reports whether a loop scope is currently active, the state
// break/continue validity checks consult.
func (t *Table) InLoop() bool {
	return t.loopN > 0
}

// InFunction reports whether a function scope is currently active, the
// state return validity checks consult.
func (t *Table) InFunction() bool {
	return t.funcN > 0
}
