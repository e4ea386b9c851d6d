// Package assertion decides whether a call site counts as an
// assertion. It combines a name-pattern heuristic, a built-in table
// of known assertion entry points, user-configured matchers, and a
// memoized analysis of helper methods declared in the same unit.
package assertion

import (
	"strings"

	"github.com/unbound-force/vouch/internal/semantic"
)

type criterionKind uint8

const (
	criterionAny criterionKind = iota
	criterionExact
	criterionPrefix
	criterionSubtype
)

// TypeCriterion is a predicate over a symbol's declaring type.
type TypeCriterion struct {
	kind criterionKind
	name string
}

// ExactType matches the fully qualified type name exactly.
func ExactType(qualified string) TypeCriterion {
	return TypeCriterion{kind: criterionExact, name: qualified}
}

// SubtypeOf matches the named type and any transitive subtype of it.
func SubtypeOf(qualified string) TypeCriterion {
	return TypeCriterion{kind: criterionSubtype, name: qualified}
}

// AnyType matches every declaring type.
func AnyType() TypeCriterion {
	return TypeCriterion{kind: criterionAny}
}

// Matches evaluates the criterion against a declaring type. An
// unknown declaring type (nil) fails every criterion except AnyType.
func (c TypeCriterion) Matches(t semantic.TypeRef) bool {
	switch c.kind {
	case criterionAny:
		return true
	case criterionExact:
		return t != nil && t.Name() == c.name
	case criterionSubtype:
		return t != nil && t.IsSubtypeOf(c.name)
	}
	return false
}

// NameCriterion is a predicate over a symbol's simple name.
type NameCriterion struct {
	kind criterionKind
	name string
}

// ExactName matches the simple name exactly.
func ExactName(name string) NameCriterion {
	return NameCriterion{kind: criterionExact, name: name}
}

// PrefixName matches any simple name starting with the prefix.
func PrefixName(prefix string) NameCriterion {
	return NameCriterion{kind: criterionPrefix, name: prefix}
}

// AnyName matches every simple name.
func AnyName() NameCriterion {
	return NameCriterion{kind: criterionAny}
}

// Matches evaluates the criterion against a simple name.
func (c NameCriterion) Matches(name string) bool {
	switch c.kind {
	case criterionAny:
		return true
	case criterionExact:
		return name == c.name
	case criterionPrefix:
		return strings.HasPrefix(name, c.name)
	}
	return false
}

// CallMatcher recognizes a call by declaring type and simple name.
// Parameter arity is never constrained.
type CallMatcher struct {
	Type TypeCriterion
	Name NameCriterion
}

// Matches reports whether the symbol satisfies both criteria.
func (m CallMatcher) Matches(sym semantic.Symbol) bool {
	if sym == nil {
		return false
	}
	return m.Type.Matches(sym.EnclosingType()) && m.Name.Matches(sym.Name())
}

// MatcherSet is a disjunction of call matchers. Order only affects
// short-circuit speed, never the result.
type MatcherSet []CallMatcher

// Matches reports whether any matcher in the set accepts the symbol.
func (s MatcherSet) Matches(sym semantic.Symbol) bool {
	for _, m := range s {
		if m.Matches(sym) {
			return true
		}
	}
	return false
}
