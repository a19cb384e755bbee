package check

import (
	"github.com/philang/phi/internal/ast"
	"github.com/philang/phi/internal/diagnostics"
)

// stmtChecker walks one function or method body, tracking whether its
// enclosing declaration's return type is void so each ReturnStmt can be
// checked for value-presence (§4.4's "return value presence matches
// return type").
type stmtChecker struct {
	c          *Checker
	voidReturn bool
}

func (s *stmtChecker) block(b *ast.BlockStmt) {
	for _, st := range b.Stmts {
		st.Accept(s)
	}
}

func (s *stmtChecker) expr(e ast.Expr) { (&exprChecker{c: s.c, voidReturn: s.voidReturn}).walk(e) }

func (s *stmtChecker) VisitBlockStmt(st *ast.BlockStmt) { s.block(st) }

// VisitVarDeclStmt rechecks an annotated local's initializer type
// directly against its annotation's finalized type, independent of
// inference's own unification of the two (§4.4: "VarDecl with
// annotation: initializer type equals annotation").
func (s *stmtChecker) VisitVarDeclStmt(st *ast.VarDeclStmt) {
	d := st.Decl
	if d.Initializer != nil {
		s.expr(d.Initializer)
	}
	if d.Annotation != nil && d.Initializer != nil {
		if !sameType(d.Resolved, d.Initializer.Type()) {
			s.c.sink.Addf(diagnostics.KindUnifyError, st.Pos(),
				"variable %q declared as %s but initialized with %s", d.Name, typeName(d.Resolved), typeName(d.Initializer.Type()))
		}
	}
}

func (s *stmtChecker) VisitExprStmt(st *ast.ExprStmt) { s.expr(st.Expr) }

// VisitReturnStmt is the core of the return-presence rule: a void
// function's return must carry no value, and a value-returning
// function's return must carry one.
func (s *stmtChecker) VisitReturnStmt(st *ast.ReturnStmt) {
	if st.Value != nil {
		s.expr(st.Value)
	}
	switch {
	case s.voidReturn && st.Value != nil:
		s.c.sink.Addf(diagnostics.KindReturnMismatch, st.Pos(),
			"return with value %s in a function with no return type", typeName(st.Value.Type()))
	case !s.voidReturn && st.Value == nil:
		s.c.sink.Addf(diagnostics.KindReturnMismatch, st.Pos(), "return with no value in a function with a return type")
	}
}

func (s *stmtChecker) VisitIfStmt(st *ast.IfStmt) {
	s.expr(st.Cond)
	s.block(st.Then)
	if st.Else != nil {
		st.Else.Accept(s)
	}
}

func (s *stmtChecker) VisitWhileStmt(st *ast.WhileStmt) {
	s.expr(st.Cond)
	s.block(st.Body)
}

func (s *stmtChecker) VisitForRangeStmt(st *ast.ForRangeStmt) {
	s.expr(st.Range)
	s.block(st.Body)
}

func (s *stmtChecker) VisitBreakStmt(*ast.BreakStmt)       {}
func (s *stmtChecker) VisitContinueStmt(*ast.ContinueStmt) {}

func (s *stmtChecker) VisitDeferStmt(st *ast.DeferStmt) { s.expr(st.Expr) }
