package check

import (
	"github.com/unbound-force/vouch/internal/assertion"
	"github.com/unbound-force/vouch/internal/semantic"
)

// frame is the per-declaration traversal state. hasAssertion starts
// false and is only ever flipped to true within a frame's lifetime.
type frame struct {
	isTest       bool
	hasAssertion bool
}

type engine struct {
	classifier *assertion.Classifier
	stack      []frame
	findings   []Finding
}

// Run analyzes one unit tree and returns its findings. Each call
// builds fresh per-unit state (scope stack and local-method memo);
// only the compiled custom matcher set is shared between units.
func Run(unit *semantic.Node, custom assertion.MatcherSet) []Finding {
	e := &engine{classifier: assertion.NewClassifier(custom)}
	e.push(false)
	e.walkChildren(unit)
	e.pop()
	return e.findings
}

func (e *engine) push(isTest bool) {
	e.stack = append(e.stack, frame{isTest: isTest})
}

func (e *engine) pop() frame {
	f := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]
	return f
}

func (e *engine) walkChildren(n *semantic.Node) {
	for _, child := range n.Children {
		e.walk(child)
	}
}

func (e *engine) walk(n *semantic.Node) {
	switch n.Kind {
	case semantic.KindFuncDecl:
		if n.Abstract {
			return
		}
		e.push(IsTestFunction(n))
		e.walkChildren(n)
		f := e.pop()
		if f.isTest && !ExpectsAssertion(n) && !f.hasAssertion {
			e.findings = append(e.findings, Finding{
				File:    n.NameLoc.File,
				Line:    n.NameLoc.Line,
				Col:     n.NameLoc.Col,
				Test:    n.Name,
				Message: MissingAssertionMessage,
			})
		}

	case semantic.KindInvocation, semantic.KindReference:
		e.note(n.Name, n.Sym)
		e.walkChildren(n)

	case semantic.KindConstruction:
		e.note("", n.Sym)
		e.walkChildren(n)

	default:
		e.walkChildren(n)
	}
}

// note classifies a call shape against the innermost frame. Evidence
// only ever lands in the top frame, so assertions inside nested
// declarations never satisfy an outer test.
func (e *engine) note(callName string, sym semantic.Symbol) {
	top := &e.stack[len(e.stack)-1]
	if !top.isTest || top.hasAssertion {
		return
	}
	if e.classifier.IsAssertion(callName, sym) {
		top.hasAssertion = true
	}
}
