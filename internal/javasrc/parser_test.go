package javasrc

import (
	"testing"

	"github.com/unbound-force/vouch/internal/assertion"
	"github.com/unbound-force/vouch/internal/check"
	"github.com/unbound-force/vouch/internal/semantic"
)

func parse(t *testing.T, src string) *semantic.Node {
	t.Helper()
	p := NewParser()
	defer p.Close()
	unit, err := p.Parse("Sample.java", []byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return unit
}

// findings parses the source and runs the missing-assertion check.
func findings(t *testing.T, src string, custom assertion.MatcherSet) []check.Finding {
	t.Helper()
	return check.Run(parse(t, src), custom)
}

func TestCheck_EmptyTestFlagged(t *testing.T) {
	src := `package com.example;

import org.junit.Test;

public class SampleTest {
    @Test
    public void shouldWork() {
    }
}
`
	got := findings(t, src, nil)
	if len(got) != 1 {
		t.Fatalf("expected 1 finding, got %d: %+v", len(got), got)
	}
	f := got[0]
	if f.Test != "shouldWork" {
		t.Errorf("expected finding for 'shouldWork', got %q", f.Test)
	}
	if f.File != "Sample.java" || f.Line != 7 || f.Col != 17 {
		t.Errorf("expected finding at Sample.java:7:17, got %s:%d:%d",
			f.File, f.Line, f.Col)
	}
	if f.Message != check.MissingAssertionMessage {
		t.Errorf("unexpected message: %q", f.Message)
	}
}

func TestCheck_AssertionByNameSatisfies(t *testing.T) {
	src := `package com.example;

import org.junit.Assert;
import org.junit.Test;

public class SampleTest {
    @Test
    public void shouldWork() {
        Assert.assertEquals(4, 2 + 2);
    }
}
`
	if got := findings(t, src, nil); len(got) != 0 {
		t.Fatalf("expected no findings, got %+v", got)
	}
}

func TestCheck_FullyQualifiedTestAnnotation(t *testing.T) {
	src := `package com.example;

public class SampleTest {
    @org.junit.Test
    public void shouldWork() {
    }
}
`
	got := findings(t, src, nil)
	if len(got) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(got))
	}
}

func TestCheck_UnimportedTestAnnotationIgnored(t *testing.T) {
	// Without an import, @Test resolves to com.example.Test, which is
	// not the JUnit marker.
	src := `package com.example;

public class SampleTest {
    @Test
    public void shouldWork() {
    }
}
`
	if got := findings(t, src, nil); len(got) != 0 {
		t.Fatalf("expected no findings for non-JUnit @Test, got %+v", got)
	}
}

func TestCheck_ExpectedFailureExempt(t *testing.T) {
	src := `package com.example;

import org.junit.Test;

public class SampleTest {
    @Test(expected = ArithmeticException.class)
    public void shouldThrow() {
        int unused = 1 / 0;
    }

    @Test(timeout = 1000)
    public void shouldFinish() {
    }
}
`
	got := findings(t, src, nil)
	if len(got) != 1 {
		t.Fatalf("expected 1 finding, got %d: %+v", len(got), got)
	}
	if got[0].Test != "shouldFinish" {
		t.Errorf("expected only 'shouldFinish' flagged, got %q", got[0].Test)
	}
}

func TestCheck_LocalHelperSatisfies(t *testing.T) {
	src := `package com.example;

import org.junit.Assert;
import org.junit.Test;

public class SampleTest {
    @Test
    public void shouldWork() {
        compareTotals(2, 2);
    }

    private void compareTotals(int a, int b) {
        Assert.assertEquals(a, b);
    }
}
`
	if got := findings(t, src, nil); len(got) != 0 {
		t.Fatalf("expected helper assertion to satisfy the test, got %+v", got)
	}
}

func TestCheck_TransitiveHelperSatisfies(t *testing.T) {
	src := `package com.example;

import org.junit.Assert;
import org.junit.Test;

public class SampleTest {
    @Test
    public void shouldWork() {
        outerHelper();
    }

    private void outerHelper() {
        innerHelper();
    }

    private void innerHelper() {
        Assert.assertTrue(true);
    }
}
`
	if got := findings(t, src, nil); len(got) != 0 {
		t.Fatalf("expected two-level helper chain to satisfy the test, got %+v", got)
	}
}

func TestCheck_RecursiveHelperDoesNotSatisfy(t *testing.T) {
	src := `package com.example;

import org.junit.Test;

public class SampleTest {
    @Test
    public void shouldWork() {
        spin(3);
    }

    private void spin(int n) {
        if (n > 0) {
            spin(n - 1);
        }
    }
}
`
	got := findings(t, src, nil)
	if len(got) != 1 {
		t.Fatalf("expected recursive non-asserting helper to leave the test flagged, got %+v", got)
	}
}

func TestCheck_UnresolvedCallDoesNotSatisfy(t *testing.T) {
	src := `package com.example;

import org.junit.Test;

public class SampleTest {
    @Test
    public void shouldWork() {
        doStuff();
    }
}
`
	got := findings(t, src, nil)
	if len(got) != 1 {
		t.Fatalf("expected unresolved non-assertion call to leave the test flagged, got %+v", got)
	}
}

func TestCheck_LegacyTestCase(t *testing.T) {
	src := `package com.example;

import junit.framework.TestCase;

public class LegacyTest extends TestCase {
    public void testSomething() {
    }

    public void setUp() {
    }
}
`
	got := findings(t, src, nil)
	if len(got) != 1 {
		t.Fatalf("expected 1 finding, got %d: %+v", len(got), got)
	}
	if got[0].Test != "testSomething" {
		t.Errorf("expected 'testSomething' flagged, got %q", got[0].Test)
	}
}

func TestCheck_AnonymousClassDoesNotLeakEvidence(t *testing.T) {
	src := `package com.example;

import org.junit.Assert;
import org.junit.Test;

public class SampleTest {
    @Test
    public void shouldWork() {
        Runnable r = new Runnable() {
            public void run() {
                Assert.assertTrue(true);
            }
        };
        r.run();
    }
}
`
	got := findings(t, src, nil)
	if len(got) != 1 {
		t.Fatalf("expected the outer test to be flagged, got %+v", got)
	}
	if got[0].Test != "shouldWork" {
		t.Errorf("expected 'shouldWork' flagged, got %q", got[0].Test)
	}
}

func TestCheck_AbstractTestSkipped(t *testing.T) {
	src := `package com.example;

import org.junit.Test;

public abstract class SampleTest {
    @Test
    public abstract void shouldWork();
}
`
	if got := findings(t, src, nil); len(got) != 0 {
		t.Fatalf("expected no findings for abstract declaration, got %+v", got)
	}
}

func TestCheck_CustomMatcherOnImportedType(t *testing.T) {
	custom := assertion.NewCustomMatchers("org.example.Checks#validate", nil).Set()

	src := `package com.example;

import org.example.Checks;
import org.junit.Test;

public class SampleTest {
    @Test
    public void shouldWork() {
        Checks checks = new Checks();
        checks.validate();
    }
}
`
	if got := findings(t, src, custom); len(got) != 0 {
		t.Fatalf("expected custom-matched call to satisfy the test, got %+v", got)
	}
}

func TestCheck_CustomMatcherOnStaticFQNCall(t *testing.T) {
	custom := assertion.NewCustomMatchers("org.example.Checks#validate", nil).Set()

	src := `package com.example;

import org.junit.Test;

public class SampleTest {
    @Test
    public void shouldWork() {
        org.example.Checks.validate();
    }
}
`
	if got := findings(t, src, custom); len(got) != 0 {
		t.Fatalf("expected fully qualified custom-matched call to satisfy the test, got %+v", got)
	}
}

func TestCheck_BuiltinSubtypeThroughUnitHierarchy(t *testing.T) {
	src := `package com.example;

import org.assertj.core.api.AbstractAssert;
import org.junit.Test;

public class SampleTest {
    @Test
    public void shouldWork() {
        SampleAssert a = SampleAssert.of();
        a.isPositive();
    }
}

class SampleAssert extends AbstractAssert {
    void isPositive() {
    }
}
`
	if got := findings(t, src, nil); len(got) != 0 {
		t.Fatalf("expected call on AssertJ subtype to satisfy the test, got %+v", got)
	}
}

func TestCheck_MethodReferenceSatisfies(t *testing.T) {
	src := `package com.example;

import org.junit.Assert;
import org.junit.Test;
import java.util.List;

public class SampleTest {
    @Test
    public void shouldWork(List<String> items) {
        items.forEach(Assert::assertNotNull);
    }
}
`
	if got := findings(t, src, nil); len(got) != 0 {
		t.Fatalf("expected asserting method reference to satisfy the test, got %+v", got)
	}
}

func TestCheck_FieldTypedReceiver(t *testing.T) {
	custom := assertion.NewCustomMatchers("org.example.Checks#validate", nil).Set()

	src := `package com.example;

import org.example.Checks;
import org.junit.Test;

public class SampleTest {
    private Checks checks;

    @Test
    public void shouldWork() {
        this.checks.validate();
    }
}
`
	if got := findings(t, src, custom); len(got) != 0 {
		t.Fatalf("expected call through a typed field to satisfy the test, got %+v", got)
	}
}

func TestCheck_OverriddenTestInheritsMarker(t *testing.T) {
	src := `package com.example;

import org.junit.Test;

class BaseTest {
    @Test
    public void shouldWork() {
    }
}

public class SampleTest extends BaseTest {
    public void shouldWork() {
    }
}
`
	got := findings(t, src, nil)
	if len(got) != 2 {
		t.Fatalf("expected both declarations flagged, got %d: %+v", len(got), got)
	}
}

func TestCheck_CyclicClassHierarchyTerminates(t *testing.T) {
	// Invalid Java, but parseable: two classes extending each other,
	// with same-named methods overriding in a cycle. The check must
	// terminate and still classify the annotated method.
	src := `package com.example;

import org.junit.Test;

class Alpha extends Beta {
    public void ping() {
    }

    @Test
    public void shouldWork() {
    }
}

class Beta extends Alpha {
    public void ping() {
    }
}
`
	got := findings(t, src, nil)
	if len(got) != 1 {
		t.Fatalf("expected 1 finding, got %d: %+v", len(got), got)
	}
	if got[0].Test != "shouldWork" {
		t.Errorf("expected 'shouldWork' flagged, got %q", got[0].Test)
	}
}

func TestParse_StructureOfUnit(t *testing.T) {
	src := `package com.example;

public class Sample {
    void run() {
    }
}
`
	unit := parse(t, src)
	if unit.Kind != semantic.KindFile {
		t.Fatalf("expected file root, got kind %d", unit.Kind)
	}

	var decl *semantic.Node
	var visit func(n *semantic.Node)
	visit = func(n *semantic.Node) {
		if n.Kind == semantic.KindFuncDecl && n.Name == "run" {
			decl = n
		}
		for _, c := range n.Children {
			visit(c)
		}
	}
	visit(unit)

	if decl == nil {
		t.Fatal("expected a declaration node for 'run'")
	}
	if decl.Sym == nil {
		t.Fatal("expected the declaration to carry a resolved symbol")
	}
	if got := decl.Sym.Name(); got != "run" {
		t.Errorf("symbol name = %q, want 'run'", got)
	}
	et := decl.Sym.EnclosingType()
	if et == nil || et.Name() != "com.example.Sample" {
		t.Errorf("unexpected enclosing type: %v", et)
	}
	if decl.Sym.Declaration() != decl {
		t.Error("expected symbol declaration to point back at the node")
	}
}
