// Package emitter serializes the structural model into canonical PDDL text.
//
// The output is a pure function of the model: declarations keep their model
// order, literal sets keep their set order, and indentation is fixed at two
// spaces per level. Emitting an anonymized model and restoring it therefore
// yields exactly the text of emitting the real model.
package emitter

import (
	"slices"
	"strings"

	"go.trai.ch/masq/internal/core/domain"
)

const indent = "  "

// EmitDomain renders a domain definition.
func EmitDomain(d *domain.Domain) string {
	var b strings.Builder
	line := func(depth int, s string) {
		b.WriteString(strings.Repeat(indent, depth))
		b.WriteString(s)
		b.WriteByte('\n')
	}

	line(0, "(define (domain "+d.Name+")")

	if len(d.Requirements) > 0 {
		reqs := slices.Clone(d.Requirements)
		slices.Sort(reqs)
		line(1, "(:requirements "+strings.Join(reqs, " ")+")")
	}

	if hasTypes(d.Types) {
		line(1, "(:types")
		for _, decl := range d.Types {
			if len(decl.Children) == 0 {
				continue
			}
			line(2, strings.Join(decl.Children, " ")+" - "+decl.Parent)
		}
		line(1, ")")
	}

	line(1, "(:predicates")
	for _, pred := range d.Predicates {
		if len(pred.Params) == 0 {
			line(2, "("+pred.Name+")")
			continue
		}
		line(2, "("+pred.Name+" "+typedList(pred.Params)+")")
	}
	line(1, ")")

	for _, act := range d.Actions {
		line(1, "(:action "+act.Name)
		line(2, ":parameters ("+typedList(act.Params)+")")
		line(2, ":precondition "+EmitCondition(act.Precondition, act.NegPrecondition))
		line(2, ":effect "+EmitCondition(act.AddEffects, act.DelEffects))
		line(1, ")")
	}

	line(0, ")")
	return b.String()
}

// EmitProblem renders a problem instance.
func EmitProblem(p *domain.Problem) string {
	var b strings.Builder
	line := func(depth int, s string) {
		b.WriteString(strings.Repeat(indent, depth))
		b.WriteString(s)
		b.WriteByte('\n')
	}

	line(0, "(define (problem "+p.Name+")")
	line(1, "(:domain "+p.Domain+")")

	line(1, "(:objects")
	for _, group := range p.Objects {
		if len(group.Names) == 0 {
			continue
		}
		line(2, strings.Join(group.Names, " ")+" - "+group.Type)
	}
	line(1, ")")

	line(1, "(:init")
	for _, lit := range p.Init {
		line(2, lit.String())
	}
	line(1, ")")

	line(1, "(:goal "+EmitCondition(p.GoalPos, p.GoalNeg)+")")
	line(0, ")")
	return b.String()
}

// EmitCondition renders a conjunction of literals: positives first, then
// negatives wrapped in (not ...). No literal renders as (), a single literal
// unwrapped, and more than one inside (and ...).
func EmitCondition(pos, neg domain.LiteralSet) string {
	parts := make([]string, 0, len(pos)+len(neg))
	for _, lit := range pos {
		parts = append(parts, lit.String())
	}
	for _, lit := range neg {
		parts = append(parts, "(not "+lit.String()+")")
	}

	switch len(parts) {
	case 0:
		return "()"
	case 1:
		return parts[0]
	default:
		return "(and " + strings.Join(parts, " ") + ")"
	}
}

func typedList(params []domain.TypedName) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, p.Name+" - "+p.Type)
	}
	return strings.Join(parts, " ")
}

func hasTypes(decls []domain.TypeDecl) bool {
	for _, decl := range decls {
		if len(decl.Children) > 0 {
			return true
		}
	}
	return false
}
