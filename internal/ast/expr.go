package ast

import "github.com/philang/phi/internal/token"

// BinOp enumerates binary operators.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
)

// UnOp enumerates unary operators.
type UnOp int

const (
	OpNeg UnOp = iota
	OpNot
)

// AssignOp enumerates assignment forms; compound assignments desugar to
// their BinOp equivalent during codegen's l-value lowering.
type AssignOp int

const (
	AssignPlain AssignOp = iota
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
)

// IntrinsicKind enumerates the compiler intrinsics.
type IntrinsicKind int

const (
	IntrinsicPanic IntrinsicKind = iota
	IntrinsicAssert
	IntrinsicUnreachable
	IntrinsicTypeOf
)

// IntLiteral is an integer literal; its static type is a fresh Var with
// domain=Int until defaulted.
type IntLiteral struct {
	typedBase
	Value int64
}

func NewIntLiteral(pos token.Position, v int64) *IntLiteral {
	return &IntLiteral{typedBase: typedBase{base: base{pos}}, Value: v}
}

func (e *IntLiteral) exprNode()                { }
func (e *IntLiteral) Accept(v ExprVisitor) any { return v.VisitIntLiteral(e) }

// FloatLiteral is a floating literal; its static type is a fresh Var
// with domain=Float until defaulted.
type FloatLiteral struct {
	typedBase
	Value float64
}

func NewFloatLiteral(pos token.Position, v float64) *FloatLiteral {
	return &FloatLiteral{typedBase: typedBase{base: base{pos}}, Value: v}
}

func (e *FloatLiteral) exprNode()                { }
func (e *FloatLiteral) Accept(v ExprVisitor) any { return v.VisitFloatLiteral(e) }

// BoolLiteral is `true`/`false`.
type BoolLiteral struct {
	typedBase
	Value bool
}

func NewBoolLiteral(pos token.Position, v bool) *BoolLiteral {
	return &BoolLiteral{typedBase: typedBase{base: base{pos}}, Value: v}
}

func (e *BoolLiteral) exprNode()                { }
func (e *BoolLiteral) Accept(v ExprVisitor) any { return v.VisitBoolLiteral(e) }

// CharLiteral is a single character literal.
type CharLiteral struct {
	typedBase
	Value rune
}

func (e *CharLiteral) exprNode()                { }
func (e *CharLiteral) Accept(v ExprVisitor) any { return v.VisitCharLiteral(e) }

// StrLiteral is a string literal.
type StrLiteral struct {
	typedBase
	Value string
}

func NewStrLiteral(pos token.Position, v string) *StrLiteral {
	return &StrLiteral{typedBase: typedBase{base: base{pos}}, Value: v}
}

func (e *StrLiteral) exprNode()                { }
func (e *StrLiteral) Accept(v ExprVisitor) any { return v.VisitStrLiteral(e) }

// RangeExpr is `a..b` or `a..=b`.
type RangeExpr struct {
	typedBase
	Start, End Expr
	Inclusive  bool
}

func (e *RangeExpr) exprNode()                { }
func (e *RangeExpr) Accept(v ExprVisitor) any { return v.VisitRangeExpr(e) }

// TupleExpr is `(a, b, c)`.
type TupleExpr struct {
	typedBase
	Elems []Expr
}

func (e *TupleExpr) exprNode()                { }
func (e *TupleExpr) Accept(v ExprVisitor) any { return v.VisitTupleExpr(e) }

// ArrayExpr is `[a, b, c]`; lowers to a stack-allocated backing array
// plus a {ptr,len} slice with the enclosing function's lifetime.
type ArrayExpr struct {
	typedBase
	Elems []Expr
}

func (e *ArrayExpr) exprNode()                { }
func (e *ArrayExpr) Accept(v ExprVisitor) any { return v.VisitArrayExpr(e) }

// DeclRef is an identifier reference, bound by the name resolver to its
// VarDecl or ParamDecl (P1: non-null after resolution). If the name
// instead resolves to a top-level function, the resolver leaves Decl nil
// and the enclosing FunCall's ResolvedFun is set instead.
type DeclRef struct {
	typedBase
	Name string
	Decl ValueDecl
}

func NewDeclRef(pos token.Position, name string) *DeclRef {
	return &DeclRef{typedBase: typedBase{base: base{pos}}, Name: name}
}

func (e *DeclRef) exprNode()                { }
func (e *DeclRef) Accept(v ExprVisitor) any { return v.VisitDeclRef(e) }

// FunCall is `callee(args...)` with an optional explicit type-argument
// list. Callee is evaluated as a first-class function value unless
// ResolvedFun is set, in which case the call targets that top-level
// function or method directly.
type FunCall struct {
	typedBase
	Callee      Expr
	TypeArgs    []TypeExpr
	Args        []Expr
	ResolvedFun *FunDecl
}

func (e *FunCall) exprNode()                { }
func (e *FunCall) Accept(v ExprVisitor) any { return v.VisitFunCall(e) }

// MethodCall is `base.method(args...)`, resolved during type inference
// to a concrete MethodDecl on base's Adt (auto-dereferencing through
// Ref/Ptr) — name resolution alone cannot determine it since it depends
// on base's inferred type.
type MethodCall struct {
	typedBase
	Base     Expr
	Method   string
	TypeArgs []TypeExpr
	Args     []Expr
	Resolved *MethodDecl
}

func (e *MethodCall) exprNode()                { }
func (e *MethodCall) Accept(v ExprVisitor) any { return v.VisitMethodCall(e) }

// BinaryExpr is a binary operator application.
type BinaryExpr struct {
	typedBase
	Op          BinOp
	Left, Right Expr
}

func NewBinaryExpr(pos token.Position, op BinOp, l, r Expr) *BinaryExpr {
	return &BinaryExpr{typedBase: typedBase{base: base{pos}}, Op: op, Left: l, Right: r}
}

func (e *BinaryExpr) exprNode()                { }
func (e *BinaryExpr) Accept(v ExprVisitor) any { return v.VisitBinaryExpr(e) }

// UnaryExpr is a unary operator application.
type UnaryExpr struct {
	typedBase
	Op      UnOp
	Operand Expr
}

func (e *UnaryExpr) exprNode()                { }
func (e *UnaryExpr) Accept(v ExprVisitor) any { return v.VisitUnaryExpr(e) }

// FieldInit is one field initializer within an AdtInit.
type FieldInit struct {
	Name  string
	Value Expr
}

// AdtInit constructs a struct value (named) or, if TypeRef is nil, an
// anonymous construction inferred from context (e.g. the annotation on
// the enclosing VarDecl). Unspecified fields fall back to the struct's
// declared default initializer expression, re-lowered at this call site.
type AdtInit struct {
	typedBase
	TypeRef TypeExpr // nil for an anonymous literal
	Fields  []FieldInit
	Decl    *StructDecl // resolved target struct
}

func (e *AdtInit) exprNode()                { }
func (e *AdtInit) Accept(v ExprVisitor) any { return v.VisitAdtInit(e) }

// EnumInit constructs an enum value: `Enum::Variant(payload)` or
// `Enum::Variant` for a payload-less variant.
type EnumInit struct {
	typedBase
	TypeRef TypeExpr
	Variant string
	Payload Expr // nil if the variant carries no payload
	Decl    *EnumDecl
	Target  *VariantDecl
}

func (e *EnumInit) exprNode()                { }
func (e *EnumInit) Accept(v ExprVisitor) any { return v.VisitEnumInit(e) }

// FieldAccess is `base.field`, an l-value.
type FieldAccess struct {
	typedBase
	Base  Expr
	Field string
	Index int // resolved positional index into the struct
}

func (e *FieldAccess) exprNode()                { }
func (e *FieldAccess) Accept(v ExprVisitor) any { return v.VisitFieldAccess(e) }

// TupleIndex is `base.0`, an l-value.
type TupleIndex struct {
	typedBase
	Base  Expr
	Index int
}

func (e *TupleIndex) exprNode()                { }
func (e *TupleIndex) Accept(v ExprVisitor) any { return v.VisitTupleIndex(e) }

// ArrayIndex is `base[index]`, an l-value.
type ArrayIndex struct {
	typedBase
	Base  Expr
	Index Expr
}

func (e *ArrayIndex) exprNode()                { }
func (e *ArrayIndex) Accept(v ExprVisitor) any { return v.VisitArrayIndex(e) }

// MatchExpr is a pattern-matching expression: a scrutinee and an ordered
// list of arms, the first matching arm's result becomes the value.
type MatchExpr struct {
	typedBase
	Scrutinee Expr
	Arms      []*MatchArm
}

func (e *MatchExpr) exprNode()                { }
func (e *MatchExpr) Accept(v ExprVisitor) any { return v.VisitMatchExpr(e) }

// AssignExpr is `target = value` or a compound form; Target must be an
// l-value (DeclRef, FieldAccess, TupleIndex, or ArrayIndex).
type AssignExpr struct {
	typedBase
	Target Expr
	Op     AssignOp
	Value  Expr
}

func (e *AssignExpr) exprNode()                { }
func (e *AssignExpr) Accept(v ExprVisitor) any { return v.VisitAssignExpr(e) }

// IntrinsicCall is a call to a compiler intrinsic (panic, assert,
// unreachable, typeOf).
type IntrinsicCall struct {
	typedBase
	Kind IntrinsicKind
	Args []Expr
}

func (e *IntrinsicCall) exprNode()                { }
func (e *IntrinsicCall) Accept(v ExprVisitor) any { return v.VisitIntrinsicCall(e) }
