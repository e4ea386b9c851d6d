package javasrc

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/unbound-force/vouch/internal/semantic"
)

// ctorName is the simple name given to constructor symbols.
const ctorName = "<init>"

// unit holds the symbol tables for one parsed source file. All
// resolution is unit-local: declarations outside the file stay
// unresolved by design.
type unit struct {
	path string
	src  []byte

	pkg     string
	imports map[string]string // simple name -> fully qualified

	types      map[string]*typeInfo     // qualified name -> info
	typeByDecl map[uint]*typeInfo       // keyed by declaration start byte
	symByDecl  map[uint]*methodSymbol   // keyed by declaration start byte
	external   map[string]*methodSymbol // "Type#name" -> symbol
	refs       map[string]*typeRef
}

func newUnit(path string, src []byte) *unit {
	return &unit{
		path:       path,
		src:        src,
		imports:    make(map[string]string),
		types:      make(map[string]*typeInfo),
		typeByDecl: make(map[uint]*typeInfo),
		symByDecl:  make(map[uint]*methodSymbol),
		external:   make(map[string]*methodSymbol),
		refs:       make(map[string]*typeRef),
	}
}

// typeInfo describes one class, interface, or enum declared in the
// unit. supers holds qualified extends/implements edges; edges may
// name external types, which then act as hierarchy leaves.
type typeInfo struct {
	name    string
	supers  []string
	methods map[string][]*methodSymbol
	fields  map[string]string // field name -> qualified type
}

func newTypeInfo(name string) *typeInfo {
	return &typeInfo{
		name:    name,
		methods: make(map[string][]*methodSymbol),
		fields:  make(map[string]string),
	}
}

// typeRef implements semantic.TypeRef over the unit hierarchy.
type typeRef struct {
	name string
	unit *unit
}

func (t *typeRef) Name() string { return t.name }

// IsSubtypeOf walks the unit-local extends/implements edges. Types
// not declared in the unit only match reflexively.
func (t *typeRef) IsSubtypeOf(qualified string) bool {
	seen := make(map[string]bool)
	var walk func(name string) bool
	walk = func(name string) bool {
		if name == qualified {
			return true
		}
		if seen[name] {
			return false
		}
		seen[name] = true
		ti := t.unit.types[name]
		if ti == nil {
			return false
		}
		for _, s := range ti.supers {
			if walk(s) {
				return true
			}
		}
		return false
	}
	return walk(t.name)
}

// typeRefFor returns the canonical typeRef for a qualified name.
func (u *unit) typeRefFor(qualified string) *typeRef {
	if r, ok := u.refs[qualified]; ok {
		return r
	}
	r := &typeRef{name: qualified, unit: u}
	u.refs[qualified] = r
	return r
}

// methodSymbol implements semantic.Symbol for both unit-declared
// methods (decl set during the build pass) and external callees
// (decl nil, annotations nil).
type methodSymbol struct {
	name        string
	owner       string // qualified declaring type, "" when unknown
	unit        *unit
	decl        *semantic.Node
	annotations map[string][]semantic.DecoratorValue
}

func (m *methodSymbol) Name() string { return m.name }

func (m *methodSymbol) Declaration() *semantic.Node { return m.decl }

func (m *methodSymbol) EnclosingType() semantic.TypeRef {
	if m.owner == "" {
		return nil
	}
	return m.unit.typeRefFor(m.owner)
}

// Overridden returns the nearest same-named method in the owner's
// unit-local supertype chain.
func (m *methodSymbol) Overridden() semantic.Symbol {
	seen := map[string]bool{m.owner: true}
	queue := []string{}
	if ti := m.unit.types[m.owner]; ti != nil {
		queue = append(queue, ti.supers...)
	}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if seen[name] {
			continue
		}
		seen[name] = true
		ti := m.unit.types[name]
		if ti == nil {
			continue
		}
		if syms := ti.methods[m.name]; len(syms) > 0 {
			return syms[0]
		}
		queue = append(queue, ti.supers...)
	}
	return nil
}

func (m *methodSymbol) DecoratorValues(decorator string) ([]semantic.DecoratorValue, bool) {
	values, ok := m.annotations[decorator]
	return values, ok
}

// findMethod resolves a simple name against a declared type and its
// unit-local supertype chain.
func (u *unit) findMethod(qualified, name string) *methodSymbol {
	seen := make(map[string]bool)
	queue := []string{qualified}
	for len(queue) > 0 {
		q := queue[0]
		queue = queue[1:]
		if seen[q] {
			continue
		}
		seen[q] = true
		ti := u.types[q]
		if ti == nil {
			continue
		}
		if syms := ti.methods[name]; len(syms) > 0 {
			return syms[0]
		}
		queue = append(queue, ti.supers...)
	}
	return nil
}

// findMethodOrNil is findMethod with an interface-safe nil result.
func (u *unit) findMethodOrNil(qualified, name string) semantic.Symbol {
	if sym := u.findMethod(qualified, name); sym != nil {
		return sym
	}
	return nil
}

// externalSymbol returns the canonical symbol for a callee whose
// declaration is outside the unit but whose declaring type is known.
func (u *unit) externalSymbol(qualified, name string) *methodSymbol {
	key := qualified + "#" + name
	if s, ok := u.external[key]; ok {
		return s
	}
	s := &methodSymbol{name: name, owner: qualified, unit: u}
	u.external[key] = s
	return s
}

// symbolOnType resolves a call against a known declaring type:
// a unit-declared method when one exists, an external symbol
// otherwise.
func (u *unit) symbolOnType(qualified, name string) semantic.Symbol {
	if sym := u.findMethod(qualified, name); sym != nil {
		return sym
	}
	return u.externalSymbol(qualified, name)
}

// resolveTypeName maps a source-level type name to a qualified one:
// explicit imports win, already-dotted names pass through (with an
// import-resolved leading segment), anything else defaults to the
// unit's package.
func (u *unit) resolveTypeName(name string) string {
	if name == "" {
		return ""
	}
	if i := strings.IndexByte(name, '.'); i >= 0 {
		if q, ok := u.imports[name[:i]]; ok {
			return q + name[i:]
		}
		return name
	}
	if q, ok := u.imports[name]; ok {
		return q
	}
	if u.pkg == "" {
		return name
	}
	return u.pkg + "." + name
}

// qualify builds the qualified name of a type declared inside
// enclosing (or at the top level when enclosing is empty).
func (u *unit) qualify(enclosing, simple string) string {
	if enclosing != "" {
		return enclosing + "." + simple
	}
	if u.pkg == "" {
		return simple
	}
	return u.pkg + "." + simple
}

func (u *unit) text(n *sitter.Node) string {
	return string(u.src[n.StartByte():n.EndByte()])
}
