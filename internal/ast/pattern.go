package ast

import "github.com/philang/phi/internal/token"

// WildcardPattern (`_`) matches everything, binds nothing.
type WildcardPattern struct {
	base
}

func NewWildcardPattern(pos token.Position) *WildcardPattern {
	return &WildcardPattern{base: base{pos}}
}

func (p *WildcardPattern) patternNode() {}

// LiteralPattern matches the scrutinee against a literal expression's
// value; the pattern's type must equal the scrutinee's type.
type LiteralPattern struct {
	base
	Value Expr
}

func NewLiteralPattern(pos token.Position, v Expr) *LiteralPattern {
	return &LiteralPattern{base: base{pos}, Value: v}
}

func (p *LiteralPattern) patternNode() {}

// VariantPattern matches an enum variant, binding its payload (if any)
// to BindingDecls created by the resolver; payload arity must match the
// variant's declared arity.
type VariantPattern struct {
	base
	VariantName string
	Bindings    []*BindingDecl
	Resolved    *VariantDecl
}

func NewVariantPattern(pos token.Position, name string, bindingNames []string) *VariantPattern {
	bindings := make([]*BindingDecl, len(bindingNames))
	for i, n := range bindingNames {
		bindings[i] = NewBindingDecl(pos, n)
	}
	return &VariantPattern{base: base{pos}, VariantName: name, Bindings: bindings}
}

func (p *VariantPattern) patternNode() {}

// AlternationPattern (`A | B -> ...`) is parsed but explicitly
// unimplemented: the checker rejects it with a dedicated diagnostic
// rather than silently matching only the first alternative, per the
// spec's own documented ambiguity about its intended semantics.
type AlternationPattern struct {
	base
	Patterns []Pattern
}

func (p *AlternationPattern) patternNode() {}

// MatchArm is one arm of a MatchExpr: a pattern, a body block, and a
// terminal result expression.
type MatchArm struct {
	Pattern Pattern
	Body    *BlockStmt
	Result  Expr
}
