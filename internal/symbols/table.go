package symbols

import "fmt"

// RedefinitionError reports that name already exists in ns in some live
// scope; First is the prior declaration, for the "already defined here"
// note the error handling design requires.
type RedefinitionError struct {
	Name  string
	NS    Namespace
	First Decl
}

func (e *RedefinitionError) Error() string {
	return fmt.Sprintf("%s %q already defined", e.NS, e.Name)
}

// Define inserts d under name in namespace ns in the current scope.
// Per the contract, insertion fails if the same name already exists in
// *any live scope* for that namespace — shadowing across scopes is
// disallowed by this language, so the search walks the whole parent
// chain, not just the current scope.
func (t *Table) Define(ns Namespace, name string, d Decl) error {
	if existing := t.lookupNS(ns, name); existing != nil {
		return &RedefinitionError{Name: name, NS: ns, First: existing.Decl}
	}
	t.current.maps[ns][name] = &Symbol{Name: name, NS: ns, Decl: d}
	return nil
}

// Lookup searches namespace ns from the innermost scope outward.
func (t *Table) Lookup(ns Namespace, name string) (*Symbol, bool) {
	sym := t.lookupNS(ns, name)
	if sym == nil {
		return nil, false
	}
	return sym, true
}

func (t *Table) lookupNS(ns Namespace, name string) *Symbol {
	for s := t.current; s != nil; s = s.parent {
		if sym, ok := s.maps[ns][name]; ok {
			return sym
		}
	}
	return nil
}

// Names returns every name bound in namespace ns across the whole
// visible chain, used to build the Damerau-Levenshtein suggestion pool.
func (t *Table) Names(ns Namespace) []string {
	seen := make(map[string]bool)
	var out []string
	for s := t.current; s != nil; s = s.parent {
		for name := range s.maps[ns] {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}

// Suggest returns the closest name to `name` within pool by
// Damerau-Levenshtein distance, if that distance is within the spec's
// threshold (≤ min(⌈len/3⌉, 4)); otherwise ok is false.
func Suggest(name string, pool []string) (best string, ok bool) {
	threshold := maxSuggestDistance(name)
	bestDist := threshold + 1
	for _, cand := range pool {
		d := damerauLevenshtein(name, cand)
		if d < bestDist {
			bestDist = d
			best = cand
		}
	}
	if bestDist <= threshold {
		return best, true
	}
	return "", false
}

func maxSuggestDistance(name string) int {
	n := len([]rune(name))
	limit := (n + 2) / 3 // ceil(n/3)
	if limit > 4 {
		limit = 4
	}
	return limit
}

// damerauLevenshtein extends the teacher's Levenshtein-only distance
// (mcgru-funxy/internal/analyzer/errors.go: levenshtein) with an
// adjacent-transposition case, per the spec's Damerau-Levenshtein
// suggestion rule.
func damerauLevenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)

	d := make([][]int, la+1)
	for i := range d {
		d[i] = make([]int, lb+1)
		d[i][0] = i
	}
	for j := 0; j <= lb; j++ {
		d[0][j] = j
	}

	for i := 1; i <= la; i++ {
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := d[i-1][j] + 1
			ins := d[i][j-1] + 1
			sub := d[i-1][j-1] + cost
			best := del
			if ins < best {
				best = ins
			}
			if sub < best {
				best = sub
			}
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				trans := d[i-2][j-2] + 1
				if trans < best {
					best = trans
				}
			}
			d[i][j] = best
		}
	}
	return d[la][lb]
}
