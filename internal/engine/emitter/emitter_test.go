package emitter_test

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/masq/internal/core/domain"
	"go.trai.ch/masq/internal/engine/emitter"
)

func lit(pred string, args ...string) domain.Literal {
	return domain.Literal{Predicate: pred, Args: args}
}

func gripperDomain() *domain.Domain {
	return &domain.Domain{
		Name:         "gripper",
		Requirements: []string{":typing", ":strips"},
		Types: []domain.TypeDecl{
			{Parent: "object", Children: []string{"room", "ball", "gripper"}},
		},
		Predicates: []domain.Predicate{
			{Name: "at-robby", Params: []domain.TypedName{{Name: "?r", Type: "room"}}},
			{Name: "at", Params: []domain.TypedName{{Name: "?b", Type: "ball"}, {Name: "?r", Type: "room"}}},
			{Name: "free", Params: []domain.TypedName{{Name: "?g", Type: "gripper"}}},
		},
		Actions: []domain.Action{
			{
				Name:         "move",
				Params:       []domain.TypedName{{Name: "?from", Type: "room"}, {Name: "?to", Type: "room"}},
				Precondition: domain.NewLiteralSet(lit("at-robby", "?from")),
				AddEffects:   domain.NewLiteralSet(lit("at-robby", "?to")),
				DelEffects:   domain.NewLiteralSet(lit("at-robby", "?from")),
			},
			{
				Name: "pick",
				Params: []domain.TypedName{
					{Name: "?obj", Type: "ball"},
					{Name: "?room", Type: "room"},
					{Name: "?gripper", Type: "gripper"},
				},
				Precondition: domain.NewLiteralSet(
					lit("free", "?gripper"),
					lit("at", "?obj", "?room"),
					lit("at-robby", "?room"),
				),
				DelEffects: domain.NewLiteralSet(lit("free", "?gripper"), lit("at", "?obj", "?room")),
			},
		},
	}
}

func gripperProblem() *domain.Problem {
	return &domain.Problem{
		Name:   "gripper-2",
		Domain: "gripper",
		Objects: []domain.ObjectGroup{
			{Type: "room", Names: []string{"rooma", "roomb"}},
			{Type: "ball", Names: []string{"ball1"}},
			{Type: "gripper", Names: []string{"left"}},
		},
		Init: domain.NewLiteralSet(
			lit("at-robby", "rooma"),
			lit("free", "left"),
			lit("at", "ball1", "rooma"),
		),
		GoalPos: domain.NewLiteralSet(lit("at", "ball1", "roomb")),
		GoalNeg: domain.NewLiteralSet(lit("at-robby", "rooma")),
	}
}

func TestEmitDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		domain     *domain.Domain
		goldenName string
	}{
		{name: "typed", domain: gripperDomain(), goldenName: "domain_typed"},
		{
			name: "untyped",
			domain: &domain.Domain{
				Name: "switch",
				Predicates: []domain.Predicate{
					{Name: "on"},
					{Name: "wired", Params: []domain.TypedName{{Name: "?x", Type: "object"}}},
				},
				Actions: []domain.Action{
					{Name: "flip", AddEffects: domain.NewLiteralSet(lit("on"))},
				},
			},
			goldenName: "domain_untyped",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, []byte(emitter.EmitDomain(tt.domain)))
		})
	}
}

func TestEmitProblem(t *testing.T) {
	t.Parallel()

	g := goldie.New(t)
	g.Assert(t, "problem_typed", []byte(emitter.EmitProblem(gripperProblem())))
}

func TestEmitDomain_DoesNotReorderInput(t *testing.T) {
	t.Parallel()

	d := gripperDomain()
	_ = emitter.EmitDomain(d)
	assert.Equal(t, []string{":typing", ":strips"}, d.Requirements)
}

func TestEmitCondition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		pos  domain.LiteralSet
		neg  domain.LiteralSet
		want string
	}{
		{name: "empty", want: "()"},
		{name: "single positive", pos: domain.LiteralSet{lit("p", "a")}, want: "(p a)"},
		{name: "single negative", neg: domain.LiteralSet{lit("p")}, want: "(not (p))"},
		{
			name: "conjunction",
			pos:  domain.LiteralSet{lit("p", "a"), lit("q")},
			neg:  domain.LiteralSet{lit("r", "a", "b")},
			want: "(and (p a) (q) (not (r a b)))",
		},
		{
			name: "keeps set order",
			pos:  domain.LiteralSet{lit("z"), lit("a")},
			want: "(and (z) (a))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, emitter.EmitCondition(tt.pos, tt.neg))
		})
	}
}
