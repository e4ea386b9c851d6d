package assertion

import (
	"regexp"

	"github.com/unbound-force/vouch/internal/semantic"
)

// namePattern is the anchored call-name heuristic: the whole simple
// name must start with one of the conventional assertion verbs.
var namePattern = regexp.MustCompile(`^(assert|verify|fail|should|check|expect).*$`)

type memoState uint8

const (
	memoUnknown memoState = iota
	memoInProgress
	memoAssertion
	memoNoAssertion
)

// Classifier decides whether call sites are assertions. It carries
// per-unit state (the local-method memo) and must not be shared
// across analysis units.
type Classifier struct {
	builtin MatcherSet
	custom  MatcherSet
	memo    map[semantic.Symbol]memoState
}

// NewClassifier returns a classifier for one analysis unit. custom
// is the pre-compiled user matcher set and may be nil.
func NewClassifier(custom MatcherSet) *Classifier {
	return &Classifier{
		builtin: Builtin,
		custom:  custom,
		memo:    make(map[semantic.Symbol]memoState),
	}
}

// IsAssertion reports whether one call shape verifies a condition.
// callName is the call site's simple name; it is empty for object
// constructions, where classification relies on the symbol alone.
// sym may be nil for unresolved callees.
func (c *Classifier) IsAssertion(callName string, sym semantic.Symbol) bool {
	if callName != "" && namePattern.MatchString(callName) {
		return true
	}
	if c.builtin.Matches(sym) || c.custom.Matches(sym) {
		return true
	}
	return c.hasLocalAssertion(sym)
}

// hasLocalAssertion reports whether the symbol's declaration body
// transitively contains an assertion, memoized per symbol.
//
// The memo is tri-state: a symbol whose computation is still in
// progress resolves re-entrant lookups to false instead of looping,
// so self- and mutually-recursive helpers terminate. The in-progress
// answer is not cached; the first computation records the final one.
func (c *Classifier) hasLocalAssertion(sym semantic.Symbol) bool {
	if sym == nil {
		return false
	}
	switch c.memo[sym] {
	case memoAssertion:
		return true
	case memoNoAssertion, memoInProgress:
		return false
	}

	c.memo[sym] = memoInProgress
	found := false
	if decl := sym.Declaration(); decl != nil {
		found = c.scanChildren(decl)
	}
	if found {
		c.memo[sym] = memoAssertion
	} else {
		c.memo[sym] = memoNoAssertion
	}
	return found
}

// scanChildren is the isolated body walk used for memo computation.
// It visits every invocation, reference, and construction at any
// depth — nested declarations do not start a new scope here; their
// calls count toward the symbol under computation — and stops at the
// first assertion.
func (c *Classifier) scanChildren(n *semantic.Node) bool {
	for _, child := range n.Children {
		if c.scanNode(child) {
			return true
		}
	}
	return false
}

func (c *Classifier) scanNode(n *semantic.Node) bool {
	switch n.Kind {
	case semantic.KindInvocation, semantic.KindReference:
		if c.IsAssertion(n.Name, n.Sym) {
			return true
		}
	case semantic.KindConstruction:
		if c.IsAssertion("", n.Sym) {
			return true
		}
	}
	return c.scanChildren(n)
}
