package anonymizer

import (
	"go.trai.ch/masq/internal/core/domain"
	"go.trai.ch/zerr"
)

// AnonymizeProblem renames every identifier of p using the persisted symbol
// table of its domain, extended with the problem name and its objects.
// The domain table is not modified; the returned table is a new one.
//
// Every identifier must resolve. A nil domain table fails with
// domain.ErrMissingDomainArtifact.
func AnonymizeProblem(p *domain.Problem, domainTable *domain.SymbolTable) (*domain.Problem, *domain.SymbolTable, error) {
	if domainTable == nil || !domainTable.Has(domain.ScopeDomain) {
		err := zerr.Wrap(domain.ErrMissingDomainArtifact, "cannot anonymize problem")
		return nil, nil, zerr.With(err, "domain", p.Domain)
	}

	anonDomain, ok := domainTable.Anon(domain.ScopeDomain, p.Domain)
	if !ok {
		return nil, nil, unmapped(domain.ScopeDomain, p.Domain)
	}

	table := domainTable.Clone()
	if err := table.Add(domain.ScopeProblem, domain.ProblemPlaceholder, p.Name); err != nil {
		return nil, nil, err
	}

	out := &domain.Problem{
		Name:    domain.ProblemPlaceholder,
		Domain:  anonDomain,
		Objects: make([]domain.ObjectGroup, 0, len(p.Objects)),
	}

	for _, group := range p.Objects {
		anonType := domain.BaseType
		if group.Type != domain.BaseType {
			anonType, ok = table.Anon(domain.ScopeType, group.Type)
			if !ok {
				return nil, nil, zerr.With(unmapped(domain.ScopeType, group.Type), "objects", len(group.Names))
			}
		}

		anonGroup := domain.ObjectGroup{Type: anonType, Names: make([]string, 0, len(group.Names))}
		for k, name := range group.Names {
			anon := domain.ObjectPlaceholder(anonType, k)
			if err := table.Add(domain.ScopeObject, anon, name); err != nil {
				return nil, nil, err
			}
			anonGroup.Names = append(anonGroup.Names, anon)
		}
		out.Objects = append(out.Objects, anonGroup)
	}

	rewrite := func(lit domain.Literal) (domain.Literal, error) {
		pred, ok := table.Anon(domain.ScopePredicate, lit.Predicate)
		if !ok {
			return domain.Literal{}, unmapped(domain.ScopePredicate, lit.Predicate)
		}
		args := make([]string, 0, len(lit.Args))
		for _, arg := range lit.Args {
			a, ok := table.Anon(domain.ScopeObject, arg)
			if !ok {
				return domain.Literal{}, unmapped(domain.ScopeObject, arg)
			}
			args = append(args, a)
		}
		return domain.Literal{Predicate: pred, Args: args}, nil
	}

	var err error
	if out.Init, err = p.Init.Map(rewrite); err != nil {
		return nil, nil, zerr.With(err, "section", "init")
	}
	if out.GoalPos, err = p.GoalPos.Map(rewrite); err != nil {
		return nil, nil, zerr.With(err, "section", "goal")
	}
	if out.GoalNeg, err = p.GoalNeg.Map(rewrite); err != nil {
		return nil, nil, zerr.With(err, "section", "goal")
	}

	return out, table, nil
}
