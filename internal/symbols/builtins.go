package symbols

import "github.com/philang/phi/internal/token"

// builtinDecl is a synthetic Decl for a primitive type name, so builtin
// names can occupy the ADT namespace (rejecting `struct i32 {}` as a
// redefinition) and participate in the type-name suggestion pool.
type builtinDecl struct {
	name string
}

func (b *builtinDecl) DeclName() string      { return b.name }
func (b *builtinDecl) Pos() token.Position   { return token.NoPos }

var builtinTypeNames = []string{
	"i8", "i16", "i32", "i64",
	"u8", "u16", "u32", "u64",
	"f32", "f64",
	"bool", "char", "string", "range", "null",
}

// BuiltinTypeNames exposes the suggestion pool for primitive type names,
// per the spec's "Primitive type names are part of the suggestion pool
// for types" rule.
func BuiltinTypeNames() []string {
	out := make([]string, len(builtinTypeNames))
	copy(out, builtinTypeNames)
	return out
}

// SeedBuiltins pre-populates the root scope's ADT namespace with every
// primitive type name, before Pass 1 of name resolution runs, so a user
// `struct i32 {}` fails as a Redefinition rather than silently shadowing
// the builtin.
func (t *Table) SeedBuiltins() {
	for _, name := range builtinTypeNames {
		t.root.maps[NsAdt][name] = &Symbol{Name: name, NS: NsAdt, Decl: &builtinDecl{name: name}}
	}
}
