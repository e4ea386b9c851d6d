// Package check implements the missing-assertion rule: a scope-stack
// traversal over one analysis unit that classifies test methods and
// reports those that never perform an assertion.
package check

import (
	"strings"

	"github.com/unbound-force/vouch/internal/semantic"
)

const (
	// testMarker is the annotation that marks a test method.
	testMarker = "org.junit.Test"

	// legacyTestBase is the JUnit 3 base class; its "test"-prefixed
	// methods are tests by convention.
	legacyTestBase = "junit.framework.TestCase"

	legacyTestPrefix = "test"

	// expectedValueName is the annotation argument that exempts a
	// test: the framework asserts the expected failure itself.
	expectedValueName = "expected"
)

// IsTestFunction reports whether the declaration is a test method:
// either the symbol (or any ancestor it overrides) carries the test
// marker annotation, or its enclosing type extends the legacy test
// base class and its name starts with the conventional prefix.
//
// The override walk tracks visited symbols: malformed sources can
// declare cyclic hierarchies whose methods override each other.
func IsTestFunction(decl *semantic.Node) bool {
	sym := decl.Sym
	if sym == nil {
		return false
	}
	seen := make(map[semantic.Symbol]bool)
	for s := sym; s != nil && !seen[s]; s = s.Overridden() {
		seen[s] = true
		if _, ok := s.DecoratorValues(testMarker); ok {
			return true
		}
	}
	t := sym.EnclosingType()
	return t != nil &&
		t.IsSubtypeOf(legacyTestBase) &&
		strings.HasPrefix(sym.Name(), legacyTestPrefix)
}

// ExpectsAssertion reports whether the test declares an expected
// failure (e.g. @Test(expected = ...)), which exempts it from the
// assertion requirement.
func ExpectsAssertion(decl *semantic.Node) bool {
	if decl.Sym == nil {
		return false
	}
	values, ok := decl.Sym.DecoratorValues(testMarker)
	if !ok {
		return false
	}
	for _, v := range values {
		if v.Name == expectedValueName {
			return true
		}
	}
	return false
}
