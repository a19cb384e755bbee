// Package symbols implements the scope stack with six disjoint
// namespaces the name resolver binds into: locals, functions, static
// methods, ADTs, members, and type parameters. Grounded on the teacher's
// symbols.SymbolTable parent-chain (NewEnclosedSymbolTable/Outer),
// generalized from one shared namespace to six.
package symbols

import "github.com/philang/phi/internal/token"

// Namespace selects one of the six disjoint binding spaces a scope holds.
type Namespace int

const (
	NsLocal Namespace = iota
	NsFunction
	NsStaticMethod
	NsAdt
	NsMember
	NsTypeParam
	numNamespaces
)

func (n Namespace) String() string {
	switch n {
	case NsLocal:
		return "local"
	case NsFunction:
		return "function"
	case NsStaticMethod:
		return "static method"
	case NsAdt:
		return "type"
	case NsMember:
		return "member"
	case NsTypeParam:
		return "type parameter"
	default:
		return "symbol"
	}
}

// Decl is the minimal surface a bound declaration must expose: its name
// and where it was first declared, for "already defined here" notes.
type Decl interface {
	DeclName() string
	Pos() token.Position
}

// Symbol pairs a declaration with the namespace it lives in.
type Symbol struct {
	Name string
	NS   Namespace
	Decl Decl
}
