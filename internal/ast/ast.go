// Package ast defines Phi's abstract syntax tree: declarations,
// expressions, statements, type expressions, and patterns. The lexer and
// parser that would construct one are out of scope; this package only
// specifies the shape the semantic core mutates in place as it resolves
// names, infers types, and lowers to IR.
//
// Node shape follows the teacher's ast.Node/Statement/Expression
// interface split and Accept(Visitor) double dispatch
// (funvibe-funxy/internal/ast/ast_core.go), with two separate visitor
// interfaces — one for expressions (which return a value) and one for
// statements (which don't) — per the design notes on dynamic dispatch.
package ast

import (
	"github.com/philang/phi/internal/token"
	"github.com/philang/phi/internal/types"
)

// Node is satisfied by every AST node: declarations, expressions,
// statements, type expressions, and patterns.
type Node interface {
	Pos() token.Position
}

// Decl is satisfied by every top-level or nested declaration: it has a
// stable address (the pointer itself) used as a map key downstream, and
// a display name.
type Decl interface {
	Node
	declNode()
	DeclName() string
}

// ValueDecl is a declaration a DeclRef may point to: a parameter or a
// local variable.
type ValueDecl interface {
	Decl
	valueDeclNode()
}

// Expr is satisfied by every expression node. Every expression carries
// an optional inferred type slot, filled by the inference engine and
// required to be concrete (no remaining Var) after defaulting (P2).
type Expr interface {
	Node
	exprNode()
	Accept(ExprVisitor) any
	Type() *types.Type
	SetType(*types.Type)
}

// Stmt is satisfied by every statement node.
type Stmt interface {
	Node
	stmtNode()
	Accept(StmtVisitor)
}

// TypeExpr is a parsed, not-yet-resolved type reference appearing in a
// signature, field type, or variant payload. Only TypeRef carries a
// Decl directly; composite forms (Ptr/Ref/Tuple/Array/Fun) wrap nested
// TypeExprs.
type TypeExpr interface {
	Node
	typeExprNode()
}

// Pattern is satisfied by every match-arm pattern node.
type Pattern interface {
	Node
	patternNode()
}

// base embeds a source position into every concrete node, avoiding
// repeating a Pos field and its accessor everywhere.
type base struct {
	position token.Position
}

func (b base) Pos() token.Position { return b.position }

// typedBase extends base with the inferred-type slot every Expr carries.
type typedBase struct {
	base
	typ *types.Type
}

func (t *typedBase) Type() *types.Type     { return t.typ }
func (t *typedBase) SetType(ty *types.Type) { t.typ = ty }
