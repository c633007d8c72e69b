// Package anonymizer replaces domain-specific identifiers of planning domains
// and problems with content-free placeholders, and restores them.
package anonymizer

import (
	"slices"

	"go.trai.ch/masq/internal/core/domain"
	"go.trai.ch/zerr"
)

// AnonymizeDomain renames every identifier of d and returns the anonymized
// model together with the symbol table that restores it. The input is not
// modified.
func AnonymizeDomain(d *domain.Domain) (*domain.Domain, *domain.SymbolTable, error) {
	table := domain.NewSymbolTable()
	if err := table.Add(domain.ScopeDomain, domain.DomainPlaceholder, d.Name); err != nil {
		return nil, nil, err
	}

	types, err := renameTypes(d, table)
	if err != nil {
		return nil, nil, err
	}

	out := &domain.Domain{
		Name:         domain.DomainPlaceholder,
		Requirements: slices.Clone(d.Requirements),
		Types:        make([]domain.TypeDecl, 0, len(d.Types)),
		Predicates:   make([]domain.Predicate, 0, len(d.Predicates)),
		Actions:      make([]domain.Action, 0, len(d.Actions)),
	}

	for _, decl := range d.Types {
		anonDecl := domain.TypeDecl{
			Parent:   types.lookup(decl.Parent),
			Children: make([]string, 0, len(decl.Children)),
		}
		for _, child := range decl.Children {
			anonDecl.Children = append(anonDecl.Children, types.lookup(child))
		}
		out.Types = append(out.Types, anonDecl)
	}

	predicates := make(map[string]string, len(d.Predicates))
	for i, pred := range d.Predicates {
		anon := domain.PredicatePlaceholder(i)
		if err := table.Add(domain.ScopePredicate, anon, pred.Name); err != nil {
			return nil, nil, zerr.With(err, "predicate", pred.Name)
		}
		predicates[pred.Name] = anon

		params, _, err := renameParams(table, domain.ScopePredicateParam, anon, pred.Params, types)
		if err != nil {
			return nil, nil, zerr.With(err, "predicate", pred.Name)
		}
		out.Predicates = append(out.Predicates, domain.Predicate{Name: anon, Params: params})
	}

	for i, act := range d.Actions {
		anonAct, err := renameAction(table, i, act, predicates, types)
		if err != nil {
			return nil, nil, zerr.With(err, "action", act.Name)
		}
		out.Actions = append(out.Actions, anonAct)
	}

	return out, table, nil
}

// typeNames resolves real type names to placeholders. The base type maps to itself.
type typeNames map[string]string

func (t typeNames) lookup(name string) string {
	if name == domain.BaseType {
		return domain.BaseType
	}
	return t[name]
}

func (t typeNames) resolve(name string) (string, error) {
	if name == domain.BaseType {
		return domain.BaseType, nil
	}
	anon, ok := t[name]
	if !ok {
		return "", unmapped(domain.ScopeType, name)
	}
	return anon, nil
}

// renameTypes assigns type_<i> to every non-base type in lexicographic order.
func renameTypes(d *domain.Domain, table *domain.SymbolTable) (typeNames, error) {
	names := d.TypeNames()
	slices.Sort(names)

	types := make(typeNames, len(names))
	i := 0
	for _, name := range names {
		if name == domain.BaseType {
			continue
		}
		anon := domain.TypePlaceholder(i)
		if err := table.Add(domain.ScopeType, anon, name); err != nil {
			return nil, err
		}
		types[name] = anon
		i++
	}
	return types, nil
}

// renameParams assigns ?<owner>_var<j> to each parameter and resolves its type.
// It returns the renamed parameters and the real-to-placeholder map of the owner.
func renameParams(
	table *domain.SymbolTable,
	scope domain.Scope,
	owner string,
	params []domain.TypedName,
	types typeNames,
) ([]domain.TypedName, map[string]string, error) {
	renamed := make([]domain.TypedName, 0, len(params))
	local := make(map[string]string, len(params))
	for j, p := range params {
		anonType, err := types.resolve(p.Type)
		if err != nil {
			return nil, nil, zerr.With(err, "parameter", p.Name)
		}
		anon := domain.ParamPlaceholder(owner, j)
		if err := table.Add(scope, anon, p.Name); err != nil {
			return nil, nil, err
		}
		local[p.Name] = anon
		renamed = append(renamed, domain.TypedName{Name: anon, Type: anonType})
	}
	return renamed, local, nil
}

func renameAction(
	table *domain.SymbolTable,
	i int,
	act domain.Action,
	predicates map[string]string,
	types typeNames,
) (domain.Action, error) {
	anon := domain.ActionPlaceholder(i)
	if err := table.Add(domain.ScopeAction, anon, act.Name); err != nil {
		return domain.Action{}, err
	}

	params, local, err := renameParams(table, domain.ScopeActionParam, anon, act.Params, types)
	if err != nil {
		return domain.Action{}, err
	}

	// Arguments resolve against this action's parameters only.
	rewrite := func(lit domain.Literal) (domain.Literal, error) {
		pred, ok := predicates[lit.Predicate]
		if !ok {
			return domain.Literal{}, unmapped(domain.ScopePredicate, lit.Predicate)
		}
		args := make([]string, 0, len(lit.Args))
		for _, arg := range lit.Args {
			a, ok := local[arg]
			if !ok {
				return domain.Literal{}, unmapped(domain.ScopeActionParam, arg)
			}
			args = append(args, a)
		}
		return domain.Literal{Predicate: pred, Args: args}, nil
	}

	out := domain.Action{Name: anon, Params: params}
	if out.Precondition, err = act.Precondition.Map(rewrite); err != nil {
		return domain.Action{}, err
	}
	if out.NegPrecondition, err = act.NegPrecondition.Map(rewrite); err != nil {
		return domain.Action{}, err
	}
	if out.AddEffects, err = act.AddEffects.Map(rewrite); err != nil {
		return domain.Action{}, err
	}
	if out.DelEffects, err = act.DelEffects.Map(rewrite); err != nil {
		return domain.Action{}, err
	}
	return out, nil
}

func unmapped(scope domain.Scope, symbol string) error {
	err := zerr.Wrap(domain.ErrUnmappedSymbol, "no placeholder for "+scope.String())
	return zerr.With(zerr.With(err, "symbol", symbol), "scope", scope.String())
}
