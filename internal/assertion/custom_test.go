package assertion

import (
	"bytes"
	"strings"
	"testing"

	charmlog "github.com/charmbracelet/log"
)

func TestCustomMatchers_Compile(t *testing.T) {
	set := NewCustomMatchers("org.example.Checks#verifyAll,org.example.Checks#assert*", nil).Set()
	if len(set) != 2 {
		t.Fatalf("expected 2 compiled matchers, got %d", len(set))
	}

	owner := &fakeType{name: "org.example.Checks"}
	if !set.Matches(&fakeSymbol{name: "verifyAll", owner: owner}) {
		t.Error("expected exact entry to match")
	}
	if !set.Matches(&fakeSymbol{name: "assertLayout", owner: owner}) {
		t.Error("expected prefix entry to match")
	}
	if set.Matches(&fakeSymbol{name: "verifyAll", owner: &fakeType{name: "org.example.Other"}}) {
		t.Error("expected entry to be exact on the declaring type")
	}
}

func TestCustomMatchers_SubtypesDoNotMatch(t *testing.T) {
	// Custom entries bind the exact declaring type, unlike the
	// subtype-based builtin entries.
	set := NewCustomMatchers("org.example.Base#verifyAll", nil).Set()

	sub := &fakeType{
		name:   "org.example.Derived",
		supers: map[string]bool{"org.example.Base": true},
	}
	if set.Matches(&fakeSymbol{name: "verifyAll", owner: sub}) {
		t.Error("expected custom matcher not to match a subtype")
	}
}

func TestCustomMatchers_Empty(t *testing.T) {
	if set := NewCustomMatchers("", nil).Set(); set != nil {
		t.Errorf("expected empty config to compile to nil, got %d matchers", len(set))
	}
	if set := NewCustomMatchers("   ", nil).Set(); set != nil {
		t.Errorf("expected blank config to compile to nil, got %d matchers", len(set))
	}
}

func TestCustomMatchers_MalformedEntriesDropped(t *testing.T) {
	var buf bytes.Buffer
	logger := charmlog.NewWithOptions(&buf, charmlog.Options{ReportTimestamp: false})

	raw := "noSeparator,a#b#c,#method,Type#,org.example.Checks#verifyAll"
	set := NewCustomMatchers(raw, logger).Set()

	if len(set) != 1 {
		t.Fatalf("expected only the well-formed entry to compile, got %d matchers", len(set))
	}
	if !set.Matches(&fakeSymbol{name: "verifyAll", owner: &fakeType{name: "org.example.Checks"}}) {
		t.Error("expected surviving entry to match")
	}

	warnings := buf.String()
	if !strings.Contains(warnings, "malformed") {
		t.Errorf("expected a malformed-entry warning, got:\n%s", warnings)
	}
	for _, entry := range []string{"noSeparator", "a#b#c", "#method", "Type#"} {
		if !strings.Contains(warnings, entry) {
			t.Errorf("expected warning naming entry %q, got:\n%s", entry, warnings)
		}
	}
}

func TestCustomMatchers_EmptySegmentsWarned(t *testing.T) {
	// Empty entries between commas fail the two-part rule like any
	// other malformed entry and are warned about, not silently eaten.
	var buf bytes.Buffer
	logger := charmlog.NewWithOptions(&buf, charmlog.Options{ReportTimestamp: false})

	set := NewCustomMatchers(",org.example.Checks#verifyAll,", logger).Set()
	if len(set) != 1 {
		t.Fatalf("expected 1 matcher, got %d", len(set))
	}
	if !strings.Contains(buf.String(), "malformed") {
		t.Errorf("expected empty segments to be warned about, got:\n%s", buf.String())
	}
}

func TestCustomMatchers_WhitespaceTrimmed(t *testing.T) {
	set := NewCustomMatchers(" org.example.Checks # verifyAll ", nil).Set()
	if len(set) != 1 {
		t.Fatalf("expected 1 matcher, got %d", len(set))
	}
	if !set.Matches(&fakeSymbol{name: "verifyAll", owner: &fakeType{name: "org.example.Checks"}}) {
		t.Error("expected trimmed entry to match")
	}
}

func TestCustomMatchers_CompiledOnce(t *testing.T) {
	c := NewCustomMatchers("org.example.Checks#verifyAll", nil)
	first := c.Set()
	second := c.Set()
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected both calls to return the compiled set")
	}
	if &first[0] != &second[0] {
		t.Error("expected Set to return the same compiled backing array")
	}
}
