package check

import (
	"github.com/philang/phi/internal/ast"
	"github.com/philang/phi/internal/diagnostics"
	"github.com/philang/phi/internal/types"
)

// exprChecker walks every expression node, visiting children
// unconditionally (the checker's job is a full validating sweep, not a
// type-directed one) and flags the structural violations of §4.4 that
// are anchored to an expression rather than a statement. voidReturn is
// the enclosing function's, carried through so a match arm's body
// checks its returns against that function's return type.
type exprChecker struct {
	c          *Checker
	voidReturn bool
}

func (w *exprChecker) walk(e ast.Expr) {
	if e == nil {
		return
	}
	e.Accept(w)
}

func (w *exprChecker) VisitIntLiteral(*ast.IntLiteral) any     { return nil }
func (w *exprChecker) VisitFloatLiteral(*ast.FloatLiteral) any { return nil }
func (w *exprChecker) VisitBoolLiteral(*ast.BoolLiteral) any   { return nil }
func (w *exprChecker) VisitCharLiteral(*ast.CharLiteral) any   { return nil }
func (w *exprChecker) VisitStrLiteral(*ast.StrLiteral) any     { return nil }

func (w *exprChecker) VisitRangeExpr(n *ast.RangeExpr) any {
	w.walk(n.Start)
	w.walk(n.End)
	return nil
}

func (w *exprChecker) VisitTupleExpr(n *ast.TupleExpr) any {
	for _, e := range n.Elems {
		w.walk(e)
	}
	return nil
}

func (w *exprChecker) VisitArrayExpr(n *ast.ArrayExpr) any {
	for _, e := range n.Elems {
		w.walk(e)
	}
	return nil
}

func (w *exprChecker) VisitDeclRef(*ast.DeclRef) any { return nil }

func (w *exprChecker) VisitFunCall(n *ast.FunCall) any {
	w.walk(n.Callee)
	for _, a := range n.Args {
		w.walk(a)
	}
	return nil
}

func (w *exprChecker) VisitMethodCall(n *ast.MethodCall) any {
	w.walk(n.Base)
	for _, a := range n.Args {
		w.walk(a)
	}
	return nil
}

func (w *exprChecker) VisitBinaryExpr(n *ast.BinaryExpr) any {
	w.walk(n.Left)
	w.walk(n.Right)
	return nil
}

func (w *exprChecker) VisitUnaryExpr(n *ast.UnaryExpr) any {
	w.walk(n.Operand)
	return nil
}

// VisitAdtInit flags a struct literal that names the same field twice —
// a structural defect inference's field-by-field unification loop never
// notices, since it just overwrites `provided[name]` on the second
// occurrence instead of rejecting it.
func (w *exprChecker) VisitAdtInit(n *ast.AdtInit) any {
	seen := make(map[string]bool, len(n.Fields))
	for _, fi := range n.Fields {
		if seen[fi.Name] {
			w.c.sink.Addf(diagnostics.KindArityMismatch, n.Pos(), "field %q specified more than once in struct literal", fi.Name)
		}
		seen[fi.Name] = true
		w.walk(fi.Value)
	}
	return nil
}

func (w *exprChecker) VisitEnumInit(n *ast.EnumInit) any {
	w.walk(n.Payload)
	return nil
}

func (w *exprChecker) VisitFieldAccess(n *ast.FieldAccess) any {
	w.walk(n.Base)
	return nil
}

func (w *exprChecker) VisitTupleIndex(n *ast.TupleIndex) any {
	w.walk(n.Base)
	return nil
}

func (w *exprChecker) VisitArrayIndex(n *ast.ArrayIndex) any {
	w.walk(n.Base)
	w.walk(n.Index)
	return nil
}

// VisitMatchExpr enforces the structural rules §4.4 assigns to match
// expressions: at least one arm; a LiteralPattern's value must have the
// scrutinee's exact type; every arm's result must have the match's own
// result type; AlternationPattern is rejected outright (deferred here
// from both the resolver and the inferencer, per the spec's documented
// ambiguity about its intended semantics — "pattern alternation is not
// supported" rather than silently using only the first alternative).
func (w *exprChecker) VisitMatchExpr(n *ast.MatchExpr) any {
	w.walk(n.Scrutinee)
	if len(n.Arms) == 0 {
		w.c.sink.Addf(diagnostics.KindNonExhaustive, n.Pos(), "match has no arms")
	}
	scrutineeType := n.Scrutinee.Type()
	matchType := n.Type()
	for _, arm := range n.Arms {
		w.checkPattern(arm.Pattern, scrutineeType)
		if arm.Body != nil {
			(&stmtChecker{c: w.c, voidReturn: w.voidReturn}).block(arm.Body)
		}
		if arm.Result != nil {
			w.walk(arm.Result)
			if !sameType(matchType, arm.Result.Type()) {
				w.c.sink.Addf(diagnostics.KindUnifyError, arm.Result.Pos(),
					"match arm yields %s, expected %s", typeName(arm.Result.Type()), typeName(matchType))
			}
		}
	}
	return nil
}

// checkPattern validates one match-arm pattern against the scrutinee's
// finalized type. LiteralPattern must have exactly the scrutinee's
// type; VariantPattern must have resolved to a real variant with a
// binding count matching its payload arity (both already enforced
// during inference — rechecked here independently, since this pass
// does not trust inference's recover-and-continue abort to have left
// every field consistent); AlternationPattern is rejected outright.
func (w *exprChecker) checkPattern(p ast.Pattern, scrutineeType *types.Type) {
	switch pat := p.(type) {
	case *ast.WildcardPattern:
	case *ast.LiteralPattern:
		w.walk(pat.Value)
		if !sameType(scrutineeType, pat.Value.Type()) {
			w.c.sink.Addf(diagnostics.KindNonExhaustive, pat.Pos(),
				"pattern type %s does not match scrutinee type %s", typeName(pat.Value.Type()), typeName(scrutineeType))
		}
	case *ast.VariantPattern:
		if pat.Resolved == nil {
			return
		}
		if pat.Resolved.Payload == nil {
			if len(pat.Bindings) != 0 {
				w.c.sink.Addf(diagnostics.KindArityMismatch, pat.Pos(),
					"variant %q carries no payload, got %d binding(s)", pat.Resolved.Name, len(pat.Bindings))
			}
			return
		}
		ok := len(pat.Bindings) == 1
		if !ok && pat.Resolved.Resolved != nil && pat.Resolved.Resolved.Kind == types.KindTuple {
			ok = len(pat.Bindings) == len(pat.Resolved.Resolved.Elems)
		}
		if !ok {
			w.c.sink.Addf(diagnostics.KindArityMismatch, pat.Pos(),
				"variant %q payload arity mismatch: %d binding(s)", pat.Resolved.Name, len(pat.Bindings))
		}
	case *ast.AlternationPattern:
		w.c.sink.Addf(diagnostics.KindUnsupported, pat.Pos(), "pattern alternation is not supported")
		for _, sub := range pat.Patterns {
			w.checkPattern(sub, scrutineeType)
		}
	}
}

func (w *exprChecker) VisitAssignExpr(n *ast.AssignExpr) any {
	w.walk(n.Target)
	w.walk(n.Value)
	return nil
}

func (w *exprChecker) VisitIntrinsicCall(n *ast.IntrinsicCall) any {
	for _, a := range n.Args {
		w.walk(a)
	}
	return nil
}

func typeName(t *types.Type) string {
	if t == nil {
		return "void"
	}
	return t.String()
}
