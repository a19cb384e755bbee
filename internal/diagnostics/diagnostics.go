// Package diagnostics collects compiler-reported problems. Formatting
// (color, carets, source snippets) is out of scope; Diagnostic.Error
// renders one plain line, enough for tests and for an external formatter
// to wrap.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/philang/phi/internal/token"
)

// Kind classifies a diagnostic by the error-kind table of the error
// handling design: which stage raised it and what rule it enforces.
type Kind string

const (
	KindRedefinition      Kind = "redefinition"
	KindUnresolvedName    Kind = "unresolved-name"
	KindUnresolvedType    Kind = "unresolved-type"
	KindUnifyError        Kind = "unify-error"
	KindConstraintViolate Kind = "constraint-violation"
	KindArityMismatch     Kind = "arity-mismatch"
	KindNonExhaustive     Kind = "non-exhaustive-or-invalid-pattern"
	KindReturnMismatch    Kind = "return-mismatch"
	KindBreakOutsideLoop  Kind = "break-continue-outside-loop"
	KindUnsupported       Kind = "unsupported"
	KindInternal          Kind = "internal"
)

// Note annotates a diagnostic with a secondary location, used for
// "first defined here" / two-location errors (Redefinition, Unify).
type Note struct {
	Pos     token.Position
	Message string
}

// Diagnostic is a single reported problem.
type Diagnostic struct {
	Kind    Kind
	Pos     token.Position
	Message string
	Notes   []Note
}

func (d *Diagnostic) Error() string {
	var b strings.Builder
	if d.Pos.IsValid() {
		fmt.Fprintf(&b, "%s: error [%s]: %s", d.Pos, d.Kind, d.Message)
	} else {
		fmt.Fprintf(&b, "error [%s]: %s", d.Kind, d.Message)
	}
	for _, n := range d.Notes {
		if n.Pos.IsValid() {
			fmt.Fprintf(&b, "\n  note at %s: %s", n.Pos, n.Message)
		} else {
			fmt.Fprintf(&b, "\n  note: %s", n.Message)
		}
	}
	return b.String()
}

func New(kind Kind, pos token.Position, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

func (d *Diagnostic) WithNote(pos token.Position, format string, args ...interface{}) *Diagnostic {
	d.Notes = append(d.Notes, Note{Pos: pos, Message: fmt.Sprintf(format, args...)})
	return d
}

// Internal marks a "should never happen" compiler-bug diagnostic, per the
// propagation policy's distinction between user errors and fatal
// internal invariants. Callers that hit this condition may also choose
// to panic instead — Internal exists for sites that can still attempt
// recovery and continue collecting diagnostics from sibling items.
func Internal(pos token.Position, format string, args ...interface{}) *Diagnostic {
	return New(KindInternal, pos, format, args...)
}

// Sink accumulates diagnostics across a stage (or a whole run), per the
// propagation policy: collect and continue to the next item at the same
// level rather than abort on first error.
type Sink struct {
	diags []*Diagnostic
}

func NewSink() *Sink {
	return &Sink{}
}

func (s *Sink) Add(d *Diagnostic) {
	s.diags = append(s.diags, d)
}

func (s *Sink) Addf(kind Kind, pos token.Position, format string, args ...interface{}) *Diagnostic {
	d := New(kind, pos, format, args...)
	s.Add(d)
	return d
}

func (s *Sink) HasErrors() bool {
	return len(s.diags) > 0
}

func (s *Sink) All() []*Diagnostic {
	return s.diags
}

func (s *Sink) Len() int {
	return len(s.diags)
}
