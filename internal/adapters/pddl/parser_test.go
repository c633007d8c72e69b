package pddl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/masq/internal/adapters/pddl"
	"go.trai.ch/masq/internal/core/domain"
	"go.trai.ch/zerr"
)

const gripperDomain = `
; Gripper, typed
(define (domain Gripper)
  (:requirements :typing :strips)
  (:types room ball gripper - object)
  (:predicates
    (at-robby ?r - room)
    (at ?b - ball ?r - room)
    (free ?g - gripper)
    (carry ?o - ball ?g - gripper))
  (:action move
    :parameters (?from ?to - room)
    :precondition (at-robby ?from)
    :effect (and (at-robby ?to) (not (at-robby ?from))))
  (:action pick
    :parameters (?obj - ball ?room - room ?gripper - gripper)
    :precondition (and (at ?obj ?room) (at-robby ?room) (free ?gripper))
    :effect (and (carry ?obj ?gripper)
                 (not (at ?obj ?room))
                 (not (free ?gripper)))))
`

const gripperProblem = `
(define (problem gripper-2)
  (:domain gripper)
  (:objects rooma roomb - room
            ball1 ball2 - ball
            left - gripper)
  (:init (at-robby rooma) (free left)
         (at ball2 rooma) (at ball1 rooma))
  (:goal (and (at ball1 roomb) (at ball2 roomb))))
`

func TestParser_ParseDomain(t *testing.T) {
	t.Parallel()

	d, err := pddl.NewParser().ParseDomain([]byte(gripperDomain))
	require.NoError(t, err)

	assert.Equal(t, "gripper", d.Name)
	assert.Equal(t, []string{":strips", ":typing"}, d.Requirements)
	assert.Equal(t, []domain.TypeDecl{
		{Parent: "object", Children: []string{"room", "ball", "gripper"}},
	}, d.Types)

	require.Len(t, d.Predicates, 4)
	assert.Equal(t, domain.Predicate{
		Name: "at",
		Params: []domain.TypedName{
			{Name: "?b", Type: "ball"},
			{Name: "?r", Type: "room"},
		},
	}, d.Predicates[1])

	require.Len(t, d.Actions, 2)
	move := d.Actions[0]
	assert.Equal(t, "move", move.Name)
	assert.Equal(t, []domain.TypedName{
		{Name: "?from", Type: "room"},
		{Name: "?to", Type: "room"},
	}, move.Params)
	assert.Equal(t, domain.LiteralSet{{Predicate: "at-robby", Args: []string{"?from"}}}, move.Precondition)
	assert.Nil(t, move.NegPrecondition)
	assert.Equal(t, domain.LiteralSet{{Predicate: "at-robby", Args: []string{"?to"}}}, move.AddEffects)
	assert.Equal(t, domain.LiteralSet{{Predicate: "at-robby", Args: []string{"?from"}}}, move.DelEffects)

	pick := d.Actions[1]
	assert.Equal(t, domain.LiteralSet{
		{Predicate: "at", Args: []string{"?obj", "?room"}},
		{Predicate: "at-robby", Args: []string{"?room"}},
		{Predicate: "free", Args: []string{"?gripper"}},
	}, pick.Precondition)
	assert.Equal(t, domain.LiteralSet{
		{Predicate: "at", Args: []string{"?obj", "?room"}},
		{Predicate: "free", Args: []string{"?gripper"}},
	}, pick.DelEffects)
}

func TestParser_ParseProblem(t *testing.T) {
	t.Parallel()

	p, err := pddl.NewParser().ParseProblem([]byte(gripperProblem))
	require.NoError(t, err)

	assert.Equal(t, "gripper-2", p.Name)
	assert.Equal(t, "gripper", p.Domain)
	assert.Equal(t, []domain.ObjectGroup{
		{Type: "room", Names: []string{"rooma", "roomb"}},
		{Type: "ball", Names: []string{"ball1", "ball2"}},
		{Type: "gripper", Names: []string{"left"}},
	}, p.Objects)
	assert.Equal(t, 5, p.ObjectCount())

	// Init is canonical regardless of source order.
	assert.Equal(t, domain.LiteralSet{
		{Predicate: "at", Args: []string{"ball1", "rooma"}},
		{Predicate: "at", Args: []string{"ball2", "rooma"}},
		{Predicate: "at-robby", Args: []string{"rooma"}},
		{Predicate: "free", Args: []string{"left"}},
	}, p.Init)
	assert.Len(t, p.GoalPos, 2)
	assert.Nil(t, p.GoalNeg)
}

func TestParser_TemporalKeywordsAsPredicateNames(t *testing.T) {
	t.Parallel()

	src := `(define (domain sky)
	  (:predicates (at ?p ?c) (over ?p ?c))
	  (:action fly
	    :parameters (?p ?from ?to)
	    :precondition (and (at ?p ?from) (over ?p ?from))
	    :effect (and (at ?p ?to) (not (at ?p ?from)))))`

	parser := pddl.NewParser()
	d, err := parser.ParseDomain([]byte(src))
	require.NoError(t, err)
	require.Len(t, d.Predicates, 2)
	assert.Equal(t, "at", d.Predicates[0].Name)
	assert.Equal(t, "over", d.Predicates[1].Name)
	assert.Equal(t, domain.LiteralSet{
		{Predicate: "at", Args: []string{"?p", "?from"}},
		{Predicate: "over", Args: []string{"?p", "?from"}},
	}, d.Actions[0].Precondition)

	p, err := parser.ParseProblem([]byte(`(define (problem trip) (:domain sky)
	  (:objects plane paris)
	  (:init (at plane paris) (over plane paris))
	  (:goal (not (over plane paris))))`))
	require.NoError(t, err)
	assert.Equal(t, domain.LiteralSet{
		{Predicate: "at", Args: []string{"plane", "paris"}},
		{Predicate: "over", Args: []string{"plane", "paris"}},
	}, p.Init)
	assert.Equal(t, domain.LiteralSet{{Predicate: "over", Args: []string{"plane", "paris"}}}, p.GoalNeg)
}

func TestParser_ObjectGroupsMergeByType(t *testing.T) {
	t.Parallel()

	src := `(define (problem p) (:domain d)
	  (:objects a - t b c d - u e - t f)
	  (:init)
	  (:goal (and)))`

	p, err := pddl.NewParser().ParseProblem([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, []domain.ObjectGroup{
		{Type: "t", Names: []string{"a", "e"}},
		{Type: "u", Names: []string{"b", "c", "d"}},
		{Type: "object", Names: []string{"f"}},
	}, p.Objects)
	assert.Nil(t, p.Init)
	assert.Nil(t, p.GoalPos)
}

func TestParser_UntypedDomain(t *testing.T) {
	t.Parallel()

	src := `(define (domain blocks)
	  (:predicates (clear ?x) (handempty))
	  (:action noop :parameters () :precondition () :effect (handempty)))`

	d, err := pddl.NewParser().ParseDomain([]byte(src))
	require.NoError(t, err)
	assert.Nil(t, d.Types)
	assert.Equal(t, []domain.TypedName{{Name: "?x", Type: "object"}}, d.Predicates[0].Params)
	assert.Empty(t, d.Predicates[1].Params)
	assert.Empty(t, d.Actions[0].Params)
	assert.Nil(t, d.Actions[0].Precondition)
	assert.Equal(t, domain.LiteralSet{{Predicate: "handempty"}}, d.Actions[0].AddEffects)
}

func TestParser_NestedTypes(t *testing.T) {
	t.Parallel()

	src := `(define (domain logistics)
	  (:types truck airplane - vehicle vehicle place - object city)
	  (:predicates))`

	d, err := pddl.NewParser().ParseDomain([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, []domain.TypeDecl{
		{Parent: "vehicle", Children: []string{"truck", "airplane"}},
		{Parent: "object", Children: []string{"vehicle", "place", "city"}},
	}, d.Types)
}

func TestParser_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		problem bool
		src     string
		want    error
	}{
		{name: "empty", src: "  ; nothing\n", want: domain.ErrSyntax},
		{name: "unclosed", src: "(define (domain d)", want: domain.ErrSyntax},
		{name: "stray close", src: ")", want: domain.ErrSyntax},
		{name: "trailing content", src: "(define (domain d)) (extra)", want: domain.ErrSyntax},
		{name: "not a define", src: "(domain d)", want: domain.ErrSyntax},
		{name: "kind mismatch", src: "(define (problem p))", want: domain.ErrSyntax},
		{
			name: "constants",
			src:  "(define (domain d) (:constants a b))",
			want: domain.ErrUnsupportedConstruct,
		},
		{
			name: "durative action",
			src:  "(define (domain d) (:predicates (p)) (:durative-action a :parameters () :duration (= ?duration 1) :condition (at start (p)) :effect (at end (p))))",
			want: domain.ErrUnsupportedConstruct,
		},
		{
			name: "either type",
			src:  "(define (domain d) (:predicates (p ?x - (either a b))))",
			want: domain.ErrUnsupportedConstruct,
		},
		{
			name: "disjunctive precondition",
			src:  "(define (domain d) (:predicates (p) (q)) (:action a :parameters () :precondition (or (p) (q)) :effect (p)))",
			want: domain.ErrUnsupportedConstruct,
		},
		{
			name: "conditional effect",
			src:  "(define (domain d) (:predicates (p) (q)) (:action a :parameters () :precondition () :effect (when (p) (q))))",
			want: domain.ErrUnsupportedConstruct,
		},
		{
			name: "duplicate predicate",
			src:  "(define (domain d) (:predicates (p) (p ?x)))",
			want: domain.ErrDuplicateDeclaration,
		},
		{
			name: "duplicate action",
			src:  "(define (domain d) (:predicates (p)) (:action a :effect (p)) (:action a :effect (p)))",
			want: domain.ErrDuplicateDeclaration,
		},
		{
			name: "duplicate parameter",
			src:  "(define (domain d) (:predicates (p ?x ?x)))",
			want: domain.ErrDuplicateDeclaration,
		},
		{
			name:    "negative init",
			problem: true,
			src:     "(define (problem p) (:domain d) (:init (not (q))) (:goal (q)))",
			want:    domain.ErrUnsupportedConstruct,
		},
		{
			name:    "duplicate object",
			problem: true,
			src:     "(define (problem p) (:domain d) (:objects a a) (:goal (q)))",
			want:    domain.ErrDuplicateDeclaration,
		},
		{
			name:    "missing domain reference",
			problem: true,
			src:     "(define (problem p) (:goal (q)))",
			want:    domain.ErrSyntax,
		},
		{
			name:    "missing goal",
			problem: true,
			src:     "(define (problem p) (:domain d))",
			want:    domain.ErrSyntax,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			parser := pddl.NewParser()
			var err error
			if tt.problem {
				_, err = parser.ParseProblem([]byte(tt.src))
				require.ErrorIs(t, err, domain.ErrProblemLoad)
			} else {
				_, err = parser.ParseDomain([]byte(tt.src))
				require.ErrorIs(t, err, domain.ErrDomainLoad)
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParser_ErrorCarriesLine(t *testing.T) {
	t.Parallel()

	src := "(define (domain d)\n  (:predicates (p))\n  (:functions (f)))"
	_, err := pddl.NewParser().ParseDomain([]byte(src))
	require.ErrorIs(t, err, domain.ErrUnsupportedConstruct)

	assert.Equal(t, "3", findMeta(err, "line"))
}

// findMeta walks the error tree and returns the first value recorded under key.
func findMeta(err error, key string) any {
	if err == nil {
		return nil
	}
	if z, ok := err.(*zerr.Error); ok {
		if v, ok := z.Metadata()[key]; ok {
			return v
		}
	}
	switch u := err.(type) {
	case interface{ Unwrap() []error }:
		for _, e := range u.Unwrap() {
			if v := findMeta(e, key); v != nil {
				return v
			}
		}
	case interface{ Unwrap() error }:
		return findMeta(u.Unwrap(), key)
	}
	return nil
}

func TestParser_CaseInsensitive(t *testing.T) {
	t.Parallel()

	upper, err := pddl.NewParser().ParseProblem([]byte(`(DEFINE (PROBLEM P1) (:DOMAIN D) (:OBJECTS A) (:INIT (ON A)) (:GOAL (NOT (ON A))))`))
	require.NoError(t, err)
	assert.Equal(t, "p1", upper.Name)
	assert.Equal(t, "d", upper.Domain)
	assert.Equal(t, domain.LiteralSet{{Predicate: "on", Args: []string{"a"}}}, upper.GoalNeg)
}
