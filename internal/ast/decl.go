package ast

import (
	"github.com/philang/phi/internal/token"
	"github.com/philang/phi/internal/types"
)

// Module is the single translation unit the core consumes: an ordered
// list of top-level items.
type Module struct {
	Items []Decl
}

// TypeParamDecl is a generic type parameter bound in the scope
// enclosing its owner's signature.
type TypeParamDecl struct {
	base
	Name string
}

func NewTypeParamDecl(pos token.Position, name string) *TypeParamDecl {
	return &TypeParamDecl{base: base{pos}, Name: name}
}

func (d *TypeParamDecl) declNode()          {}
func (d *TypeParamDecl) DeclName() string   { return d.Name }

// ParamDecl is a function or method parameter: a local binding with a
// required type annotation.
type ParamDecl struct {
	base
	Name     string
	TypeExpr TypeExpr
	Resolved *types.Type
}

func NewParamDecl(pos token.Position, name string, te TypeExpr) *ParamDecl {
	return &ParamDecl{base: base{pos}, Name: name, TypeExpr: te}
}

func (d *ParamDecl) declNode()        {}
func (d *ParamDecl) valueDeclNode()   {}
func (d *ParamDecl) DeclName() string { return d.Name }

// VarDecl is a `let`-style local binding with an optional annotation and
// optional initializer.
type VarDecl struct {
	base
	Name        string
	Annotation  TypeExpr // nil if the type is inferred
	Initializer Expr     // nil only when Annotation is also absent is invalid upstream
	Resolved    *types.Type
}

func NewVarDecl(pos token.Position, name string, annotation TypeExpr, init Expr) *VarDecl {
	return &VarDecl{base: base{pos}, Name: name, Annotation: annotation, Initializer: init}
}

func (d *VarDecl) declNode()        {}
func (d *VarDecl) valueDeclNode()   {}
func (d *VarDecl) DeclName() string { return d.Name }

// FunDecl is a top-level function: params, return type, and a body.
type FunDecl struct {
	base
	Name       string
	TypeParams []*TypeParamDecl
	Params     []*ParamDecl
	ReturnType TypeExpr // nil means null/void
	Body       *BlockStmt
	Resolved   *types.Type // the Fun type, filled after inference
}

func NewFunDecl(pos token.Position, name string) *FunDecl {
	return &FunDecl{base: base{pos}, Name: name}
}

func (d *FunDecl) declNode()        {}
func (d *FunDecl) DeclName() string { return d.Name }

// MethodDecl is Fun-like but carries an implicit `self` and a back-pointer
// to its parent ADT, plus its own (possibly empty) type parameters —
// unioned with the parent's during monomorphization's substitution-map
// construction, per the first-class treatment of method-level generics.
type MethodDecl struct {
	base
	Name        string
	Parent      Decl // *StructDecl or *EnumDecl
	SelfByRef   bool // true if self is taken by reference/pointer
	TypeParams  []*TypeParamDecl
	Params      []*ParamDecl
	ReturnType  TypeExpr
	Body        *BlockStmt
	IsStatic    bool // static methods live in the NsStaticMethod namespace, have no self
	Resolved    *types.Type
}

func NewMethodDecl(pos token.Position, name string, parent Decl) *MethodDecl {
	return &MethodDecl{base: base{pos}, Name: name, Parent: parent}
}

func (d *MethodDecl) declNode()        {}
func (d *MethodDecl) DeclName() string { return d.Name }

// Self returns a ValueDecl representing this method's implicit receiver,
// created fresh per resolution pass so each has its own position; its
// type is filled by the resolver/inferencer from Parent's Adt type,
// wrapped in Ref or Ptr when SelfByRef is set.
func (d *MethodDecl) Self() *SelfDecl {
	return &SelfDecl{base: base{d.position}, Method: d}
}

// SelfDecl is the implicit `self` binding inside a method body.
type SelfDecl struct {
	base
	Method   *MethodDecl
	Resolved *types.Type
}

func (d *SelfDecl) declNode()        {}
func (d *SelfDecl) valueDeclNode()   {}
func (d *SelfDecl) DeclName() string { return "self" }

// FieldDecl is one struct field: name, positional index, type, and an
// optional default initializer expression — evaluated lazily per
// AdtInit call site, not once at declaration time.
type FieldDecl struct {
	base
	Name        string
	Index       int
	TypeExpr    TypeExpr
	Initializer Expr // nil if the field has no default
	Parent      *StructDecl
	Resolved    *types.Type
}

func (d *FieldDecl) declNode()        {}
func (d *FieldDecl) DeclName() string { return d.Name }

// StructDecl is a named record type: fields, methods, and type
// parameters.
type StructDecl struct {
	base
	Name       string
	TypeParams []*TypeParamDecl
	Fields     []*FieldDecl
	Methods    []*MethodDecl
	Resolved   *types.Type // the bare Adt type (before any Applied instantiation)
}

func NewStructDecl(pos token.Position, name string) *StructDecl {
	return &StructDecl{base: base{pos}, Name: name}
}

func (d *StructDecl) declNode()        {}
func (d *StructDecl) DeclName() string { return d.Name }

func (d *StructDecl) FieldByName(name string) (*FieldDecl, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

func (d *StructDecl) MethodByName(name string) (*MethodDecl, bool) {
	for _, m := range d.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// BindingDecl is a synthetic ValueDecl for a name bound by a
// VariantPattern's payload binding list; its type is filled in during
// inference from the matched variant's payload type.
type BindingDecl struct {
	base
	Name     string
	Resolved *types.Type
}

func NewBindingDecl(pos token.Position, name string) *BindingDecl {
	return &BindingDecl{base: base{pos}, Name: name}
}

func (d *BindingDecl) declNode()        {}
func (d *BindingDecl) valueDeclNode()   {}
func (d *BindingDecl) DeclName() string { return d.Name }

// VariantDecl is one enum variant: name, declaration-order index (the
// dense zero-based discriminant), and an optional payload type.
type VariantDecl struct {
	base
	Name     string
	Index    int
	Payload  TypeExpr // nil if the variant carries no payload
	Parent   *EnumDecl
	Resolved *types.Type
}

func (d *VariantDecl) declNode()        {}
func (d *VariantDecl) DeclName() string { return d.Name }

// EnumDecl is a named tagged union: variants, methods, and type
// parameters.
type EnumDecl struct {
	base
	Name       string
	TypeParams []*TypeParamDecl
	Variants   []*VariantDecl
	Methods    []*MethodDecl
	Resolved   *types.Type
}

func NewEnumDecl(pos token.Position, name string) *EnumDecl {
	return &EnumDecl{base: base{pos}, Name: name}
}

func (d *EnumDecl) declNode()        {}
func (d *EnumDecl) DeclName() string { return d.Name }

func (d *EnumDecl) VariantByName(name string) (*VariantDecl, bool) {
	for _, v := range d.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return nil, false
}

func (d *EnumDecl) MethodByName(name string) (*MethodDecl, bool) {
	for _, m := range d.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}
