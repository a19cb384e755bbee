package ast

import "github.com/philang/phi/internal/token"

// TypeRef is a named type reference appearing in source: a builtin name,
// an ADT name, or a type parameter name, with an optional generic
// argument list. Resolved by the name resolver to a Decl (StructDecl,
// EnumDecl, or TypeParamDecl) or, for a builtin, left with Decl nil and
// Builtin set.
type TypeRef struct {
	base
	Name    string
	Args    []TypeExpr
	Decl    Decl // non-nil after successful resolution to an ADT or type param
	Builtin bool // true if Name resolved to a primitive type
}

func NewTypeRef(pos token.Position, name string, args []TypeExpr) *TypeRef {
	return &TypeRef{base: base{pos}, Name: name, Args: args}
}

func (t *TypeRef) typeExprNode() {}

// PtrTypeExpr is `*T`.
type PtrTypeExpr struct {
	base
	Elem TypeExpr
}

func (t *PtrTypeExpr) typeExprNode() {}

// RefTypeExpr is `&T`.
type RefTypeExpr struct {
	base
	Elem TypeExpr
}

func (t *RefTypeExpr) typeExprNode() {}

// TupleTypeExpr is `(T1, T2, ...)`.
type TupleTypeExpr struct {
	base
	Elems []TypeExpr
}

func (t *TupleTypeExpr) typeExprNode() {}

// ArrayTypeExpr is `[T]`.
type ArrayTypeExpr struct {
	base
	Elem TypeExpr
}

func (t *ArrayTypeExpr) typeExprNode() {}

// FunTypeExpr is `(T1, ..., Tn) -> R`.
type FunTypeExpr struct {
	base
	Params []TypeExpr
	Result TypeExpr
}

func (t *FunTypeExpr) typeExprNode() {}
