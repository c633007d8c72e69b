package pddl

import (
	"errors"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/masq/internal/core/domain"
	"go.trai.ch/masq/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Parser = (*Parser)(nil)

// Parser implements ports.Parser for typed STRIPS PDDL.
// Input is case-insensitive and is lower-cased before it reaches the model.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// unsupported lists formula heads outside typed STRIPS.
var unsupported = []string{
	"or", "imply", "exists", "forall", "when", "=", "either",
	"increase", "decrease", "assign", "scale-up", "scale-down",
	"preference",
}

// ParseDomain parses a domain definition.
func (p *Parser) ParseDomain(src []byte) (*domain.Domain, error) {
	d, err := parseDomain(src)
	if err != nil {
		return nil, errors.Join(domain.ErrDomainLoad, err)
	}
	return d, nil
}

// ParseProblem parses a problem instance.
func (p *Parser) ParseProblem(src []byte) (*domain.Problem, error) {
	prob, err := parseProblem(src)
	if err != nil {
		return nil, errors.Join(domain.ErrProblemLoad, err)
	}
	return prob, nil
}

func parseDomain(src []byte) (*domain.Domain, error) {
	root, err := read(src)
	if err != nil {
		return nil, err
	}
	name, sections, err := definition(root, "domain")
	if err != nil {
		return nil, err
	}

	d := &domain.Domain{Name: name}
	seen := make(map[string]bool)
	for _, sec := range sections {
		key := sec.head()
		if key != ":action" && seen[key] {
			return nil, duplicate(sec.line, "section", key)
		}
		seen[key] = true

		switch key {
		case ":requirements":
			if d.Requirements, err = requirements(sec); err != nil {
				return nil, err
			}
		case ":types":
			if d.Types, err = typeDecls(sec); err != nil {
				return nil, err
			}
		case ":predicates":
			if d.Predicates, err = predicates(sec); err != nil {
				return nil, err
			}
		case ":action":
			act, err := action(sec)
			if err != nil {
				return nil, err
			}
			if slices.ContainsFunc(d.Actions, func(a domain.Action) bool { return a.Name == act.Name }) {
				return nil, duplicate(sec.line, "action", act.Name)
			}
			d.Actions = append(d.Actions, act)
		default:
			return nil, unsupportedAt(sec.line, "domain section "+sec.list[0].String())
		}
	}
	return d, nil
}

func parseProblem(src []byte) (*domain.Problem, error) {
	root, err := read(src)
	if err != nil {
		return nil, err
	}
	name, sections, err := definition(root, "problem")
	if err != nil {
		return nil, err
	}

	p := &domain.Problem{Name: name}
	seen := make(map[string]bool)
	for _, sec := range sections {
		key := sec.head()
		if seen[key] {
			return nil, duplicate(sec.line, "section", key)
		}
		seen[key] = true

		switch key {
		case ":domain":
			if len(sec.list) != 2 || sec.list[1].isList {
				return nil, syntaxError(sec.line, "expected (:domain <name>)")
			}
			p.Domain = sec.list[1].atom
		case ":requirements":
			// Problems inherit requirements from their domain.
			if _, err := requirements(sec); err != nil {
				return nil, err
			}
		case ":objects":
			if p.Objects, err = objectGroups(sec); err != nil {
				return nil, err
			}
		case ":init":
			if p.Init, err = initState(sec); err != nil {
				return nil, err
			}
		case ":goal":
			if len(sec.list) != 2 {
				return nil, syntaxError(sec.line, "expected (:goal <condition>)")
			}
			var pos, neg []domain.Literal
			if err := condition(sec.list[1], &pos, &neg); err != nil {
				return nil, err
			}
			p.GoalPos, p.GoalNeg = domain.NewLiteralSet(pos...), domain.NewLiteralSet(neg...)
		default:
			return nil, unsupportedAt(sec.line, "problem section "+sec.list[0].String())
		}
	}

	if p.Domain == "" {
		return nil, syntaxError(root.line, "missing (:domain <name>)")
	}
	if !seen[":goal"] {
		return nil, syntaxError(root.line, "missing (:goal ...)")
	}
	return p, nil
}

// definition unpacks (define (<kind> <name>) <sections>...).
func definition(root *expr, kind string) (string, []*expr, error) {
	if root.head() != "define" || len(root.list) < 2 {
		return "", nil, syntaxError(root.line, "expected (define ...)")
	}
	header := root.list[1]
	if header.head() != kind || len(header.list) != 2 || header.list[1].isList {
		return "", nil, syntaxError(header.line, "expected ("+kind+" <name>)")
	}

	sections := root.list[2:]
	for _, sec := range sections {
		if !strings.HasPrefix(sec.head(), ":") {
			return "", nil, syntaxError(sec.line, "expected a section, got "+sec.String())
		}
	}
	return header.list[1].atom, sections, nil
}

func requirements(sec *expr) ([]string, error) {
	var reqs []string
	for _, item := range sec.list[1:] {
		if item.isList || !strings.HasPrefix(item.atom, ":") {
			return nil, syntaxError(item.line, "malformed requirement "+item.String())
		}
		if !slices.Contains(reqs, item.atom) {
			reqs = append(reqs, item.atom)
		}
	}
	slices.Sort(reqs)
	return reqs, nil
}

// typedList reads "a b - t c" style lists. Names without a type get the base type.
func typedList(items []*expr) ([]domain.TypedName, error) {
	var out []domain.TypedName
	var pending []string
	for i := 0; i < len(items); i++ {
		item := items[i]
		if item.isList {
			return nil, syntaxError(item.line, "unexpected list in typed list: "+item.String())
		}
		if item.atom != "-" {
			pending = append(pending, item.atom)
			continue
		}

		if i+1 >= len(items) {
			return nil, syntaxError(item.line, "missing type after '-'")
		}
		typ := items[i+1]
		if typ.isList {
			return nil, unsupportedAt(typ.line, "type expression "+typ.String())
		}
		if len(pending) == 0 {
			return nil, syntaxError(item.line, "type "+typ.atom+" has no names")
		}
		for _, name := range pending {
			out = append(out, domain.TypedName{Name: name, Type: typ.atom})
		}
		pending = pending[:0]
		i++
	}
	for _, name := range pending {
		out = append(out, domain.TypedName{Name: name, Type: domain.BaseType})
	}
	return out, nil
}

func typeDecls(sec *expr) ([]domain.TypeDecl, error) {
	names, err := typedList(sec.list[1:])
	if err != nil {
		return nil, err
	}

	var decls []domain.TypeDecl
	declared := make(map[string]bool)
	for _, n := range names {
		if strings.HasPrefix(n.Name, "?") {
			return nil, syntaxError(sec.line, "type name cannot be a variable: "+n.Name)
		}
		if n.Name == domain.BaseType {
			continue
		}
		if declared[n.Name] {
			return nil, duplicate(sec.line, "type", n.Name)
		}
		declared[n.Name] = true

		idx := slices.IndexFunc(decls, func(d domain.TypeDecl) bool { return d.Parent == n.Type })
		if idx < 0 {
			decls = append(decls, domain.TypeDecl{Parent: n.Type})
			idx = len(decls) - 1
		}
		decls[idx].Children = append(decls[idx].Children, n.Name)
	}
	return decls, nil
}

func parameters(line int, items []*expr) ([]domain.TypedName, error) {
	params, err := typedList(items)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(params))
	for _, p := range params {
		if !strings.HasPrefix(p.Name, "?") {
			return nil, syntaxError(line, "parameter must start with '?': "+p.Name)
		}
		if seen[p.Name] {
			return nil, duplicate(line, "parameter", p.Name)
		}
		seen[p.Name] = true
	}
	return params, nil
}

func predicates(sec *expr) ([]domain.Predicate, error) {
	var preds []domain.Predicate
	for _, item := range sec.list[1:] {
		name := item.head()
		if name == "" {
			return nil, syntaxError(item.line, "malformed predicate "+item.String())
		}
		if slices.ContainsFunc(preds, func(p domain.Predicate) bool { return p.Name == name }) {
			return nil, duplicate(item.line, "predicate", name)
		}
		params, err := parameters(item.line, item.list[1:])
		if err != nil {
			return nil, zerr.With(err, "predicate", name)
		}
		preds = append(preds, domain.Predicate{Name: name, Params: params})
	}
	return preds, nil
}

func action(sec *expr) (domain.Action, error) {
	if len(sec.list) < 2 || sec.list[1].isList {
		return domain.Action{}, syntaxError(sec.line, "expected (:action <name> ...)")
	}
	act := domain.Action{Name: sec.list[1].atom}

	fields := sec.list[2:]
	if len(fields)%2 != 0 {
		return domain.Action{}, syntaxError(sec.line, "action "+act.Name+" has a field without a value")
	}

	var pre, npre, add, del []domain.Literal
	for i := 0; i < len(fields); i += 2 {
		key, val := fields[i], fields[i+1]
		var err error
		switch key.atom {
		case ":parameters":
			if !val.isList {
				return domain.Action{}, syntaxError(val.line, "expected a parameter list")
			}
			act.Params, err = parameters(val.line, val.list)
		case ":precondition":
			err = condition(val, &pre, &npre)
		case ":effect":
			err = condition(val, &add, &del)
		default:
			err = unsupportedAt(key.line, "action field "+key.String())
		}
		if err != nil {
			return domain.Action{}, zerr.With(err, "action", act.Name)
		}
	}

	act.Precondition = domain.NewLiteralSet(pre...)
	act.NegPrecondition = domain.NewLiteralSet(npre...)
	act.AddEffects = domain.NewLiteralSet(add...)
	act.DelEffects = domain.NewLiteralSet(del...)
	return act, nil
}

// condition flattens a conjunction of literals into positive and negative parts.
func condition(e *expr, pos, neg *[]domain.Literal) error {
	if !e.isList {
		return syntaxError(e.line, "expected a condition, got "+e.atom)
	}
	if len(e.list) == 0 {
		return nil
	}

	switch head := e.head(); head {
	case "and":
		for _, sub := range e.list[1:] {
			if err := condition(sub, pos, neg); err != nil {
				return err
			}
		}
		return nil
	case "not":
		if len(e.list) != 2 {
			return syntaxError(e.line, "expected (not <literal>)")
		}
		lit, err := atom(e.list[1])
		if err != nil {
			return err
		}
		*neg = append(*neg, lit)
		return nil
	default:
		lit, err := atom(e)
		if err != nil {
			return err
		}
		*pos = append(*pos, lit)
		return nil
	}
}

// atom reads an atomic formula (predicate arg...).
func atom(e *expr) (domain.Literal, error) {
	name := e.head()
	if name == "" {
		return domain.Literal{}, syntaxError(e.line, "expected a literal, got "+e.String())
	}
	if name == "and" || name == "not" || slices.Contains(unsupported, name) {
		return domain.Literal{}, unsupportedAt(e.line, "formula "+e.String())
	}

	lit := domain.Literal{Predicate: name}
	for _, arg := range e.list[1:] {
		if arg.isList {
			return domain.Literal{}, unsupportedAt(arg.line, "nested term "+arg.String())
		}
		lit.Args = append(lit.Args, arg.atom)
	}
	return lit, nil
}

func objectGroups(sec *expr) ([]domain.ObjectGroup, error) {
	names, err := typedList(sec.list[1:])
	if err != nil {
		return nil, err
	}

	var groups []domain.ObjectGroup
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if strings.HasPrefix(n.Name, "?") {
			return nil, syntaxError(sec.line, "object name cannot be a variable: "+n.Name)
		}
		if seen[n.Name] {
			return nil, duplicate(sec.line, "object", n.Name)
		}
		seen[n.Name] = true

		idx := slices.IndexFunc(groups, func(g domain.ObjectGroup) bool { return g.Type == n.Type })
		if idx < 0 {
			groups = append(groups, domain.ObjectGroup{Type: n.Type})
			idx = len(groups) - 1
		}
		groups[idx].Names = append(groups[idx].Names, n.Name)
	}
	return groups, nil
}

func initState(sec *expr) (domain.LiteralSet, error) {
	lits := make([]domain.Literal, 0, len(sec.list)-1)
	for _, item := range sec.list[1:] {
		if item.head() == "not" {
			return nil, unsupportedAt(item.line, "negative initial fact "+item.String())
		}
		lit, err := atom(item)
		if err != nil {
			return nil, err
		}
		lits = append(lits, lit)
	}
	return domain.NewLiteralSet(lits...), nil
}

func unsupportedAt(line int, what string) error {
	return zerr.With(zerr.Wrap(domain.ErrUnsupportedConstruct, what), "line", strconv.Itoa(line))
}

func duplicate(line int, kind, name string) error {
	err := zerr.With(zerr.Wrap(domain.ErrDuplicateDeclaration, kind+" "+name+" declared twice"), "line", strconv.Itoa(line))
	return zerr.With(err, kind, name)
}
