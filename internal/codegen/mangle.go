package codegen

import (
	"strings"

	"github.com/philang/phi/internal/types"
)

// mangleTypeArg renders one concrete type argument for a mangled name,
// replacing every non-alphanumeric character with `_` per §6's mangling
// scheme.
func mangleTypeArg(t *types.Type) string {
	return sanitize(t.String())
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// mangle builds `BaseName_Arg1_Arg2...` for a generic declaration
// applied to concrete args; a non-generic declaration's mangled name is
// just its base name.
func mangle(base string, args []*types.Type) string {
	if len(args) == 0 {
		return base
	}
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, base)
	for _, a := range args {
		parts = append(parts, mangleTypeArg(a))
	}
	return strings.Join(parts, "_")
}

// mangleMethod builds `MangledParentName_MethodName`, further suffixed
// by the method's own type arguments if it carries independent
// generics (the first-class method-level-generics treatment: a method
// can be instantiated once per call-site type-argument combination
// independent of how many times its parent ADT is instantiated).
func mangleMethod(mangledParent, methodName string, methodArgs []*types.Type) string {
	base := mangledParent + "_" + methodName
	return mangle(base, methodArgs)
}
