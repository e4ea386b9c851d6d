package javasrc

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/unbound-force/vouch/internal/semantic"
)

// collect is the first pass: it registers the package, imports, the
// unit-local type hierarchy, and every method/constructor symbol, so
// that the build pass can resolve calls in any order.
func (u *unit) collect(root *sitter.Node) {
	u.collectNode(root, "")
}

func (u *unit) collectNode(n *sitter.Node, enclosing string) {
	switch n.Kind() {
	case "package_declaration":
		u.collectPackage(n)
		return

	case "import_declaration":
		u.collectImport(n)
		return

	case "class_declaration", "interface_declaration", "enum_declaration", "annotation_type_declaration":
		u.collectType(n, enclosing)
		return

	case "method_declaration":
		name := n.ChildByFieldName("name")
		if name != nil {
			u.collectCallable(n, enclosing, u.text(name))
		}
		return

	case "constructor_declaration":
		u.collectCallable(n, enclosing, ctorName)
		return

	case "field_declaration":
		u.collectField(n, enclosing)
		// keep walking: field initializers may declare anonymous
		// classes

	case "object_creation_expression":
		if body := childOfKind(n, "class_body"); body != nil {
			u.collectAnonymous(n, body, enclosing)
			return
		}
	}

	for i := uint(0); i < n.ChildCount(); i++ {
		u.collectNode(n.Child(i), enclosing)
	}
}

func (u *unit) collectPackage(n *sitter.Node) {
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if k := child.Kind(); k == "scoped_identifier" || k == "identifier" {
			u.pkg = u.text(child)
			return
		}
	}
}

func (u *unit) collectImport(n *sitter.Node) {
	var path *sitter.Node
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		switch child.Kind() {
		case "static", "asterisk":
			// static and wildcard imports carry no type mapping the
			// resolver can use
			return
		case "scoped_identifier", "identifier":
			path = child
		}
	}
	if path == nil {
		return
	}
	qualified := u.text(path)
	simple := qualified
	for i := len(qualified) - 1; i >= 0; i-- {
		if qualified[i] == '.' {
			simple = qualified[i+1:]
			break
		}
	}
	u.imports[simple] = qualified
}

func (u *unit) collectType(n *sitter.Node, enclosing string) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	ti := newTypeInfo(u.qualify(enclosing, u.text(nameNode)))

	if sc := n.ChildByFieldName("superclass"); sc != nil {
		if t := typeNameIn(u, sc); t != "" {
			ti.supers = append(ti.supers, u.resolveTypeName(t))
		}
	}
	if ifs := n.ChildByFieldName("interfaces"); ifs != nil {
		u.collectTypeList(ifs, ti)
	}
	// interface "extends" clause has no field name
	if ext := childOfKind(n, "extends_interfaces"); ext != nil {
		u.collectTypeList(ext, ti)
	}

	u.types[ti.name] = ti
	u.typeByDecl[n.StartByte()] = ti

	if body := n.ChildByFieldName("body"); body != nil {
		for i := uint(0); i < body.ChildCount(); i++ {
			u.collectNode(body.Child(i), ti.name)
		}
	}
}

// collectTypeList pulls every type out of a super_interfaces /
// extends_interfaces clause.
func (u *unit) collectTypeList(n *sitter.Node, ti *typeInfo) {
	list := childOfKind(n, "type_list")
	if list == nil {
		list = n
	}
	for i := uint(0); i < list.ChildCount(); i++ {
		if t := typeNameOf(u, list.Child(i)); t != "" {
			ti.supers = append(ti.supers, u.resolveTypeName(t))
		}
	}
}

func (u *unit) collectCallable(n *sitter.Node, enclosing, name string) {
	sym := &methodSymbol{
		name:        name,
		owner:       enclosing,
		unit:        u,
		annotations: u.collectAnnotations(n),
	}
	if ti := u.types[enclosing]; ti != nil {
		ti.methods[name] = append(ti.methods[name], sym)
	}
	u.symByDecl[n.StartByte()] = sym

	// local and anonymous classes live inside method bodies
	if body := n.ChildByFieldName("body"); body != nil {
		u.collectNode(body, enclosing)
	}
}

func (u *unit) collectField(n *sitter.Node, enclosing string) {
	ti := u.types[enclosing]
	if ti == nil {
		return
	}
	typeNode := n.ChildByFieldName("type")
	if typeNode == nil {
		return
	}
	qualified := u.resolveTypeName(typeNameOf(u, typeNode))
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child.Kind() != "variable_declarator" {
			continue
		}
		if name := child.ChildByFieldName("name"); name != nil {
			ti.fields[u.text(name)] = qualified
		}
	}
}

// collectAnonymous registers the synthetic type for an anonymous
// class body. The synthetic name is unique per creation site and
// subtypes the constructed type.
func (u *unit) collectAnonymous(n, body *sitter.Node, enclosing string) {
	base := ""
	if typeNode := n.ChildByFieldName("type"); typeNode != nil {
		base = u.resolveTypeName(typeNameOf(u, typeNode))
	}
	ti := newTypeInfo(fmt.Sprintf("%s$%d", base, n.StartByte()))
	if base != "" {
		ti.supers = append(ti.supers, base)
	}
	u.types[ti.name] = ti
	u.typeByDecl[body.StartByte()] = ti

	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child.Kind() == "class_body" {
			for j := uint(0); j < child.ChildCount(); j++ {
				u.collectNode(child.Child(j), ti.name)
			}
			continue
		}
		u.collectNode(child, enclosing)
	}
}

// collectAnnotations reads the modifiers clause of a declaration
// into a decorator table keyed by qualified annotation name.
func (u *unit) collectAnnotations(n *sitter.Node) map[string][]semantic.DecoratorValue {
	modifiers := childOfKind(n, "modifiers")
	if modifiers == nil {
		return nil
	}
	var table map[string][]semantic.DecoratorValue
	add := func(name string, values []semantic.DecoratorValue) {
		if table == nil {
			table = make(map[string][]semantic.DecoratorValue)
		}
		table[u.resolveTypeName(name)] = values
	}

	for i := uint(0); i < modifiers.ChildCount(); i++ {
		child := modifiers.Child(i)
		switch child.Kind() {
		case "marker_annotation":
			if name := child.ChildByFieldName("name"); name != nil {
				add(u.text(name), nil)
			}
		case "annotation":
			name := child.ChildByFieldName("name")
			if name == nil {
				continue
			}
			add(u.text(name), u.collectAnnotationValues(child.ChildByFieldName("arguments")))
		}
	}
	return table
}

func (u *unit) collectAnnotationValues(args *sitter.Node) []semantic.DecoratorValue {
	if args == nil {
		return nil
	}
	var values []semantic.DecoratorValue
	for i := uint(0); i < args.ChildCount(); i++ {
		child := args.Child(i)
		switch child.Kind() {
		case "element_value_pair":
			key := child.ChildByFieldName("key")
			value := child.ChildByFieldName("value")
			if key != nil && value != nil {
				values = append(values, semantic.DecoratorValue{
					Name:  u.text(key),
					Value: u.text(value),
				})
			}
		case "(", ")", ",":
			// punctuation
		default:
			// single unnamed element, e.g. @SuppressWarnings("x")
			values = append(values, semantic.DecoratorValue{
				Name:  "value",
				Value: u.text(child),
			})
		}
	}
	return values
}

// childOfKind returns the first child with the given kind, or nil.
func childOfKind(n *sitter.Node, kind string) *sitter.Node {
	for i := uint(0); i < n.ChildCount(); i++ {
		if child := n.Child(i); child.Kind() == kind {
			return child
		}
	}
	return nil
}

// typeNameOf extracts the raw type name of a type node, stripping
// generic arguments. Returns "" for nodes that are not type names
// (primitives, arrays, wildcards).
func typeNameOf(u *unit, n *sitter.Node) string {
	switch n.Kind() {
	case "type_identifier", "scoped_type_identifier", "scoped_identifier", "identifier":
		return u.text(n)
	case "generic_type":
		for i := uint(0); i < n.ChildCount(); i++ {
			child := n.Child(i)
			if k := child.Kind(); k == "type_identifier" || k == "scoped_type_identifier" {
				return u.text(child)
			}
		}
	}
	return ""
}

// typeNameIn finds the first type name among a node's children
// (used for the superclass clause, whose type child is unnamed).
func typeNameIn(u *unit, n *sitter.Node) string {
	for i := uint(0); i < n.ChildCount(); i++ {
		if t := typeNameOf(u, n.Child(i)); t != "" {
			return t
		}
	}
	return ""
}
