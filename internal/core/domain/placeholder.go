package domain

import (
	"regexp"
	"strconv"
)

// Scope identifies the namespace a symbol belongs to.
type Scope int

const (
	// ScopeUnknown marks a token that matches no placeholder pattern.
	ScopeUnknown Scope = iota
	// ScopeDomain is the domain name.
	ScopeDomain
	// ScopeType holds type names.
	ScopeType
	// ScopePredicate holds predicate names.
	ScopePredicate
	// ScopePredicateParam holds predicate parameters, owned by one predicate.
	ScopePredicateParam
	// ScopeAction holds action names.
	ScopeAction
	// ScopeActionParam holds action parameters, owned by one action.
	ScopeActionParam
	// ScopeProblem is the problem name.
	ScopeProblem
	// ScopeObject holds problem objects.
	ScopeObject
)

var scopeNames = map[Scope]string{
	ScopeUnknown:        "unknown",
	ScopeDomain:         "domain",
	ScopeType:           "type",
	ScopePredicate:      "predicate",
	ScopePredicateParam: "predicate-parameter",
	ScopeAction:         "action",
	ScopeActionParam:    "action-parameter",
	ScopeProblem:        "problem",
	ScopeObject:         "object",
}

func (s Scope) String() string {
	if name, ok := scopeNames[s]; ok {
		return name
	}
	return "scope(" + strconv.Itoa(int(s)) + ")"
}

// IsParam reports whether symbols of the scope are owned by a predicate or action.
func (s Scope) IsParam() bool {
	return s == ScopePredicateParam || s == ScopeActionParam
}

const (
	// DomainPlaceholder replaces the domain name.
	DomainPlaceholder = "planning_domain"
	// ProblemPlaceholder replaces the problem name.
	ProblemPlaceholder = "planning_problem"
)

// IdentifierPattern is the token grammar shared by placeholder generation and
// lexical restoration: letters, digits, underscores and hyphens with an optional
// leading variable marker.
var IdentifierPattern = regexp.MustCompile(`\??[A-Za-z_][A-Za-z0-9_-]*`)

var (
	typePattern        = regexp.MustCompile(`^type_\d+$`)
	predicatePattern   = regexp.MustCompile(`^pred_\d+$`)
	predParamPattern   = regexp.MustCompile(`^\?(pred_\d+)_var\d+$`)
	actionPattern      = regexp.MustCompile(`^act_\d+$`)
	actionParamPattern = regexp.MustCompile(`^\?(act_\d+)_var\d+$`)
	objectPattern      = regexp.MustCompile(`^(?:type_\d+|` + BaseType + `)_obj_\d+$`)
)

// TypePlaceholder returns the placeholder of the i-th renamed type.
func TypePlaceholder(i int) string {
	return "type_" + strconv.Itoa(i)
}

// PredicatePlaceholder returns the placeholder of the i-th predicate.
func PredicatePlaceholder(i int) string {
	return "pred_" + strconv.Itoa(i)
}

// ActionPlaceholder returns the placeholder of the i-th action.
func ActionPlaceholder(i int) string {
	return "act_" + strconv.Itoa(i)
}

// ParamPlaceholder returns the placeholder of the j-th parameter of the
// predicate or action whose placeholder is owner.
func ParamPlaceholder(owner string, j int) string {
	return "?" + owner + "_var" + strconv.Itoa(j)
}

// ObjectPlaceholder returns the placeholder of the i-th object of the given
// anonymized type.
func ObjectPlaceholder(anonType string, i int) string {
	return anonType + "_obj_" + strconv.Itoa(i)
}

// ScopeOf classifies a placeholder by its naming pattern.
// Patterns are disjoint, so a placeholder belongs to at most one scope.
func ScopeOf(anon string) Scope {
	switch {
	case anon == DomainPlaceholder:
		return ScopeDomain
	case anon == ProblemPlaceholder:
		return ScopeProblem
	case typePattern.MatchString(anon):
		return ScopeType
	case predicatePattern.MatchString(anon):
		return ScopePredicate
	case predParamPattern.MatchString(anon):
		return ScopePredicateParam
	case actionPattern.MatchString(anon):
		return ScopeAction
	case actionParamPattern.MatchString(anon):
		return ScopeActionParam
	case objectPattern.MatchString(anon):
		return ScopeObject
	default:
		return ScopeUnknown
	}
}

// ParamOwner returns the owning predicate or action placeholder of a parameter
// placeholder, or "" if anon is not a parameter placeholder.
func ParamOwner(anon string) string {
	if m := predParamPattern.FindStringSubmatch(anon); m != nil {
		return m[1]
	}
	if m := actionParamPattern.FindStringSubmatch(anon); m != nil {
		return m[1]
	}
	return ""
}
