package domain

import (
	"slices"
	"strings"
)

// Literal is a predicate applied to arguments. Arguments are parameter names
// inside action schemas and object names inside problems.
type Literal struct {
	Predicate string
	Args      []string
}

// String renders the literal as an s-expression.
func (l Literal) String() string {
	if len(l.Args) == 0 {
		return "(" + l.Predicate + ")"
	}
	return "(" + l.Predicate + " " + strings.Join(l.Args, " ") + ")"
}

// CompareLiterals orders literals by predicate, then arguments element-wise,
// then argument count.
func CompareLiterals(a, b Literal) int {
	if c := strings.Compare(a.Predicate, b.Predicate); c != 0 {
		return c
	}
	return slices.Compare(a.Args, b.Args)
}

// LiteralSet is an ordered set of literals.
type LiteralSet []Literal

// NewLiteralSet returns the canonical set of the given literals: sorted and
// free of duplicates.
func NewLiteralSet(lits ...Literal) LiteralSet {
	if len(lits) == 0 {
		return nil
	}
	set := make(LiteralSet, len(lits))
	copy(set, lits)
	slices.SortFunc(set, CompareLiterals)
	return slices.CompactFunc(set, func(a, b Literal) bool {
		return CompareLiterals(a, b) == 0
	})
}

// Map rewrites every literal of the set, keeping positions.
// The first error aborts the rewrite.
func (s LiteralSet) Map(fn func(Literal) (Literal, error)) (LiteralSet, error) {
	if len(s) == 0 {
		return nil, nil
	}
	out := make(LiteralSet, 0, len(s))
	for _, lit := range s {
		mapped, err := fn(lit)
		if err != nil {
			return nil, err
		}
		out = append(out, mapped)
	}
	return out, nil
}
