package domain

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// Symbol is one entry of a SymbolTable.
type Symbol struct {
	Anon  string
	Real  string
	Scope Scope
}

// SymbolTable maps placeholders to the identifiers they replace.
// The anonymous-to-real direction is authoritative; reverse lookups are
// answered per scope, and per owner for parameter scopes.
type SymbolTable struct {
	symbols map[string]Symbol
	order   []string
	reverse map[Scope]map[string]string
}

// NewSymbolTable creates an empty SymbolTable.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		symbols: make(map[string]Symbol),
		reverse: make(map[Scope]map[string]string),
	}
}

// Add records that anon replaces original within scope.
func (t *SymbolTable) Add(scope Scope, anon, original string) error {
	if got := ScopeOf(anon); got != scope {
		return zerr.With(zerr.With(zerr.Wrap(ErrInvalidPlaceholder, "placeholder does not belong to scope"),
			"placeholder", anon), "scope", scope.String())
	}
	if existing, ok := t.symbols[anon]; ok {
		return zerr.With(zerr.With(zerr.Wrap(ErrDuplicateSymbol, "placeholder already assigned"),
			"placeholder", anon), "real", existing.Real)
	}

	key := reverseKey(scope, anon, original)
	byScope := t.reverse[scope]
	if byScope == nil {
		byScope = make(map[string]string)
		t.reverse[scope] = byScope
	}
	if prev, ok := byScope[key]; ok {
		return zerr.With(zerr.With(zerr.Wrap(ErrDuplicateSymbol, "identifier already has a placeholder"),
			"real", original), "placeholder", prev)
	}

	byScope[key] = anon
	t.symbols[anon] = Symbol{Anon: anon, Real: original, Scope: scope}
	t.order = append(t.order, anon)
	return nil
}

func reverseKey(scope Scope, anon, original string) string {
	if scope.IsParam() {
		return ParamOwner(anon) + "\x00" + original
	}
	return original
}

// Real returns the identifier replaced by anon.
func (t *SymbolTable) Real(anon string) (string, bool) {
	s, ok := t.symbols[anon]
	return s.Real, ok
}

// Anon returns the placeholder of original within a non-parameter scope.
func (t *SymbolTable) Anon(scope Scope, original string) (string, bool) {
	anon, ok := t.reverse[scope][original]
	return anon, ok
}

// AnonParam returns the placeholder of the parameter original owned by the
// predicate or action placeholder owner.
func (t *SymbolTable) AnonParam(scope Scope, owner, original string) (string, bool) {
	anon, ok := t.reverse[scope][owner+"\x00"+original]
	return anon, ok
}

// Len returns the number of symbols.
func (t *SymbolTable) Len() int {
	return len(t.order)
}

// Symbols returns every symbol in insertion order.
func (t *SymbolTable) Symbols() []Symbol {
	out := make([]Symbol, 0, len(t.order))
	for _, anon := range t.order {
		out = append(out, t.symbols[anon])
	}
	return out
}

// InScope returns the symbols of one scope in insertion order.
func (t *SymbolTable) InScope(scope Scope) []Symbol {
	var out []Symbol
	for _, anon := range t.order {
		if s := t.symbols[anon]; s.Scope == scope {
			out = append(out, s)
		}
	}
	return out
}

// Has reports whether a symbol of the given scope exists.
func (t *SymbolTable) Has(scope Scope) bool {
	return len(t.reverse[scope]) > 0
}

// Clone returns an independent copy of the table.
func (t *SymbolTable) Clone() *SymbolTable {
	c := NewSymbolTable()
	for _, anon := range t.order {
		s := t.symbols[anon]
		c.symbols[anon] = s
		c.order = append(c.order, anon)
		byScope := c.reverse[s.Scope]
		if byScope == nil {
			byScope = make(map[string]string)
			c.reverse[s.Scope] = byScope
		}
		byScope[reverseKey(s.Scope, s.Anon, s.Real)] = anon
	}
	return c
}

// Mapping returns the persisted anonymous-to-real view of the table.
func (t *SymbolTable) Mapping() map[string]string {
	m := make(map[string]string, len(t.symbols))
	for anon, s := range t.symbols {
		m[anon] = s.Real
	}
	return m
}

// SymbolTableFromMapping rebuilds a table from its persisted form. Scopes are
// recovered from the placeholder patterns; entries are inserted in scope order,
// then by numeric placeholder order.
func SymbolTableFromMapping(m map[string]string) (*SymbolTable, error) {
	syms := make([]Symbol, 0, len(m))
	for anon, original := range m {
		scope := ScopeOf(anon)
		if scope == ScopeUnknown {
			return nil, zerr.With(zerr.Wrap(ErrInvalidPlaceholder, "unrecognized placeholder"), "placeholder", anon)
		}
		syms = append(syms, Symbol{Anon: anon, Real: original, Scope: scope})
	}
	slices.SortFunc(syms, func(a, b Symbol) int {
		if c := cmp.Compare(a.Scope, b.Scope); c != 0 {
			return c
		}
		return naturalCompare(a.Anon, b.Anon)
	})

	t := NewSymbolTable()
	for _, s := range syms {
		if err := t.Add(s.Scope, s.Anon, s.Real); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// naturalCompare orders strings so that embedded numbers compare by value,
// placing pred_2 before pred_10.
func naturalCompare(a, b string) int {
	for a != "" && b != "" {
		da, ra := leadingDigits(a)
		db, rb := leadingDigits(b)
		if da != "" && db != "" {
			na, _ := strconv.Atoi(da)
			nb, _ := strconv.Atoi(db)
			if c := cmp.Compare(na, nb); c != 0 {
				return c
			}
			a, b = ra, rb
			continue
		}
		if c := cmp.Compare(a[0], b[0]); c != 0 {
			return c
		}
		a, b = a[1:], b[1:]
	}
	return cmp.Compare(len(a), len(b))
}

func leadingDigits(s string) (digits, rest string) {
	i := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i:]
}
