// Package types implements Phi's interned type arena. Every distinct
// structural type gets one canonical *Type; equality between two types
// is always pointer equality after interning, per the data model's
// invariant that identity is stable and usable as a map key.
package types

import (
	"fmt"
	"strings"
)

// Domain restricts which concrete types a Var may unify with.
type Domain int

const (
	DomainAny Domain = iota
	DomainInt
	DomainFloat
	DomainAdt
)

func (d Domain) String() string {
	switch d {
	case DomainInt:
		return "Int"
	case DomainFloat:
		return "Float"
	case DomainAdt:
		return "Adt"
	default:
		return "Any"
	}
}

// Intersect narrows two domains, per the Var invariant that unifying two
// Vars intersects their domains; an empty intersection is reported by ok=false.
func (d Domain) Intersect(other Domain) (Domain, bool) {
	if d == DomainAny {
		return other, true
	}
	if other == DomainAny {
		return d, true
	}
	if d == other {
		return d, true
	}
	return DomainAny, false
}

// Builtin enumerates the primitive type names.
type Builtin int

const (
	I8 Builtin = iota
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	F32
	F64
	Bool
	Char
	String
	RangeBuiltin
	Null
)

var builtinNames = map[Builtin]string{
	I8: "i8", I16: "i16", I32: "i32", I64: "i64",
	U8: "u8", U16: "u16", U32: "u32", U64: "u64",
	F32: "f32", F64: "f64",
	Bool: "bool", Char: "char", String: "string",
	RangeBuiltin: "range", Null: "null",
}

var builtinByName = func() map[string]Builtin {
	m := make(map[string]Builtin, len(builtinNames))
	for k, v := range builtinNames {
		m[v] = k
	}
	return m
}()

func LookupBuiltin(name string) (Builtin, bool) {
	b, ok := builtinByName[name]
	return b, ok
}

func (b Builtin) IsSignedInt() bool {
	return b == I8 || b == I16 || b == I32 || b == I64
}

func (b Builtin) IsUnsignedInt() bool {
	return b == U8 || b == U16 || b == U32 || b == U64
}

func (b Builtin) IsInt() bool {
	return b.IsSignedInt() || b.IsUnsignedInt()
}

func (b Builtin) IsFloat() bool {
	return b == F32 || b == F64
}

// Decl is the minimal surface the types package needs from a
// declaration: a stable address and a display name. internal/ast's
// concrete declaration types satisfy this.
type Decl interface {
	DeclName() string
}

// Kind tags which case of the Type union a value holds.
type Kind int

const (
	KindBuiltin Kind = iota
	KindAdt
	KindApplied
	KindTuple
	KindArray
	KindPtr
	KindRef
	KindFun
	KindGeneric
	KindVar
)

// Type is the single node type for the interned type graph. Only one
// field group is meaningful per Kind; see the arena's constructors.
type Type struct {
	Kind Kind

	// Builtin
	Builtin Builtin

	// Adt — decl is non-nil only after name resolution (invariant).
	AdtName string
	Decl    Decl

	// Applied — generic instantiation of an Adt.
	Base Decl
	Args []*Type

	// Tuple
	Elems []*Type

	// Array — element type; runtime length is not part of the static type.
	Elem *Type

	// Ptr / Ref
	Pointee *Type

	// Fun
	Params []*Type
	Result *Type

	// Generic — a type parameter.
	GenericName string
	GenericDecl Decl

	// Var — unification variable.
	VarID     int
	VarDomain Domain
}

func (t *Type) String() string {
	switch t.Kind {
	case KindBuiltin:
		return builtinNames[t.Builtin]
	case KindAdt:
		return t.AdtName
	case KindApplied:
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = a.String()
		}
		return fmt.Sprintf("%s<%s>", t.Base.DeclName(), strings.Join(parts, ", "))
	case KindTuple:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = e.String()
		}
		return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
	case KindArray:
		return fmt.Sprintf("[%s]", t.Elem.String())
	case KindPtr:
		return fmt.Sprintf("*%s", t.Pointee.String())
	case KindRef:
		return fmt.Sprintf("&%s", t.Pointee.String())
	case KindFun:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.String()
		}
		return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), t.Result.String())
	case KindGeneric:
		return t.GenericName
	case KindVar:
		return fmt.Sprintf("?%d", t.VarID)
	default:
		return "<invalid type>"
	}
}

// IsConcrete reports whether t contains no Var anywhere in its structure,
// the post-defaulting invariant (P2) every AST node's type must satisfy.
func (t *Type) IsConcrete() bool {
	switch t.Kind {
	case KindVar:
		return false
	case KindApplied:
		for _, a := range t.Args {
			if !a.IsConcrete() {
				return false
			}
		}
		return true
	case KindTuple:
		for _, e := range t.Elems {
			if !e.IsConcrete() {
				return false
			}
		}
		return true
	case KindArray:
		return t.Elem.IsConcrete()
	case KindPtr, KindRef:
		return t.Pointee.IsConcrete()
	case KindFun:
		for _, p := range t.Params {
			if !p.IsConcrete() {
				return false
			}
		}
		return t.Result.IsConcrete()
	default:
		return true
	}
}

// ContainsGeneric reports whether t still refers to an unresolved type
// parameter, the condition that defers an instantiation from discovery
// (Phase 1: "do not record instantiations whose arguments still contain
// Generic types").
func (t *Type) ContainsGeneric() bool {
	switch t.Kind {
	case KindGeneric:
		return true
	case KindApplied:
		for _, a := range t.Args {
			if a.ContainsGeneric() {
				return true
			}
		}
		return false
	case KindTuple:
		for _, e := range t.Elems {
			if e.ContainsGeneric() {
				return true
			}
		}
		return false
	case KindArray:
		return t.Elem.ContainsGeneric()
	case KindPtr, KindRef:
		return t.Pointee.ContainsGeneric()
	case KindFun:
		for _, p := range t.Params {
			if p.ContainsGeneric() {
				return true
			}
		}
		return t.Result.ContainsGeneric()
	default:
		return false
	}
}
