package symbols

import (
	"testing"

	"github.com/philang/phi/internal/token"
)

type testDecl struct {
	name string
	pos  token.Position
}

func (d *testDecl) DeclName() string    { return d.name }
func (d *testDecl) Pos() token.Position { return d.pos }

func TestDefineAndLookup(t *testing.T) {
	tbl := NewTable()
	d := &testDecl{name: "x", pos: token.Position{Line: 1, Column: 1}}
	if err := tbl.Define(NsLocal, "x", d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sym, ok := tbl.Lookup(NsLocal, "x")
	if !ok || sym.Decl != d {
		t.Fatalf("expected to find x, got %v, %v", sym, ok)
	}
}

func TestRedefinitionAcrossScopes(t *testing.T) {
	tbl := NewTable()
	d1 := &testDecl{name: "x"}
	if err := tbl.Define(NsLocal, "x", d1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	g := tbl.Enter()
	defer g.Release()

	d2 := &testDecl{name: "x"}
	err := tbl.Define(NsLocal, "x", d2)
	if err == nil {
		t.Fatalf("expected redefinition error when shadowing across scopes")
	}
	redef, ok := err.(*RedefinitionError)
	if !ok || redef.First != d1 {
		t.Fatalf("expected RedefinitionError pointing at d1, got %v", err)
	}
}

func TestNamespacesAreDisjoint(t *testing.T) {
	tbl := NewTable()
	if err := tbl.Define(NsLocal, "Point", &testDecl{name: "Point"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Same name, different namespace: must succeed, namespaces are disjoint.
	if err := tbl.Define(NsAdt, "Point", &testDecl{name: "Point"}); err != nil {
		t.Fatalf("expected disjoint namespaces to allow same name, got %v", err)
	}
}

func TestScopeGuardReleaseRestoresParent(t *testing.T) {
	tbl := NewTable()
	root := tbl.current
	g := tbl.Enter()
	if tbl.current == root {
		t.Fatalf("Enter should have pushed a new scope")
	}
	g.Release()
	if tbl.current != root {
		t.Fatalf("Release should restore the parent scope")
	}
}

func TestScopeGuardOutOfOrderPanics(t *testing.T) {
	tbl := NewTable()
	g1 := tbl.Enter()
	g2 := tbl.Enter()
	_ = g2

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic releasing out of order")
		}
	}()
	g1.Release()
}

func TestLoopAndFunctionTracking(t *testing.T) {
	tbl := NewTable()
	if tbl.InLoop() || tbl.InFunction() {
		t.Fatalf("fresh table should not report loop/function scope")
	}
	fg := tbl.EnterFunction()
	if !tbl.InFunction() {
		t.Fatalf("expected InFunction true after EnterFunction")
	}
	lg := tbl.EnterLoop()
	if !tbl.InLoop() {
		t.Fatalf("expected InLoop true after EnterLoop")
	}
	lg.Release()
	if tbl.InLoop() {
		t.Fatalf("expected InLoop false after Release")
	}
	fg.Release()
	if tbl.InFunction() {
		t.Fatalf("expected InFunction false after Release")
	}
}

func TestSuggestWithinThreshold(t *testing.T) {
	pool := []string{"length", "size", "lenght"}
	best, ok := Suggest("length", []string{"lenght", "size"})
	if !ok || best != "lenght" {
		t.Fatalf("expected transposition-distance match 'lenght', got %v %v", best, ok)
	}
	_ = pool
}

func TestSuggestBeyondThreshold(t *testing.T) {
	_, ok := Suggest("x", []string{"somethingcompletelydifferent"})
	if ok {
		t.Fatalf("expected no suggestion beyond threshold")
	}
}

func TestSeedBuiltinsRejectsShadowing(t *testing.T) {
	tbl := NewTable()
	tbl.SeedBuiltins()
	err := tbl.Define(NsAdt, "i32", &testDecl{name: "i32"})
	if err == nil {
		t.Fatalf("expected redefinition error shadowing builtin type i32")
	}
}
