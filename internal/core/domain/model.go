package domain

// BaseType is the implicit root of every type hierarchy. It is never renamed.
const BaseType = "object"

// TypedName is a name annotated with its declared type.
// Untyped declarations carry BaseType.
type TypedName struct {
	Name string
	Type string
}

// TypeDecl groups the children declared under one parent type.
type TypeDecl struct {
	Parent   string
	Children []string
}

// Predicate is a predicate signature.
type Predicate struct {
	Name   string
	Params []TypedName
}

// Action is a STRIPS action schema with positive and negative preconditions
// and add/delete effects.
type Action struct {
	Name            string
	Params          []TypedName
	Precondition    LiteralSet
	NegPrecondition LiteralSet
	AddEffects      LiteralSet
	DelEffects      LiteralSet
}

// Domain is the structural model of a planning domain.
type Domain struct {
	Name         string
	Requirements []string
	Types        []TypeDecl
	Predicates   []Predicate
	Actions      []Action
}

// TypeNames returns every type mentioned in the hierarchy, parents and children,
// in first-appearance order.
func (d *Domain) TypeNames() []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, decl := range d.Types {
		add(decl.Parent)
		for _, child := range decl.Children {
			add(child)
		}
	}
	return names
}

// ObjectGroup holds the objects declared with one type, in declaration order.
type ObjectGroup struct {
	Type  string
	Names []string
}

// Problem is the structural model of a planning problem instance.
type Problem struct {
	Name    string
	Domain  string
	Objects []ObjectGroup
	Init    LiteralSet
	GoalPos LiteralSet
	GoalNeg LiteralSet
}

// ObjectCount returns the number of declared objects across all groups.
func (p *Problem) ObjectCount() int {
	n := 0
	for _, g := range p.Objects {
		n += len(g.Names)
	}
	return n
}
