// Package javasrc parses Java source files with tree-sitter and
// lowers them into the semantic model the rule engine consumes:
// resolved method and constructor symbols, a unit-local type
// hierarchy, and a tree restricted to the node kinds the engine
// distinguishes.
//
// Resolution is deliberately unit-local. Calls into types that are
// not declared in the file resolve to symbols without declarations
// (or not at all), which the engine treats as non-assertions.
package javasrc

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"

	"github.com/unbound-force/vouch/internal/semantic"
)

// Parser parses Java analysis units. It is not safe for concurrent
// use; create one parser per worker.
type Parser struct {
	inner *sitter.Parser
}

// NewParser returns a parser with the Java grammar loaded.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(sitter.NewLanguage(tree_sitter_java.Language()))
	return &Parser{inner: p}
}

// Close releases the underlying tree-sitter parser.
func (p *Parser) Close() {
	p.inner.Close()
}

// Parse parses one source file into a semantic unit tree.
func (p *Parser) Parse(path string, src []byte) (*semantic.Node, error) {
	tree := p.inner.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("parsing %s: %w", path, errParse)
	}
	defer tree.Close()

	u := newUnit(path, src)
	root := tree.RootNode()
	u.collect(root)

	b := &builder{u: u}
	return &semantic.Node{
		Kind:     semantic.KindFile,
		Children: b.buildChildren(root, &buildCtx{vars: &varScope{}}),
	}, nil
}

var errParse = errors.New("tree-sitter produced no syntax tree")

// identifierPath matches dotted identifier chains like
// "com.example.Helper".
var identifierPath = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*(\.[A-Za-z_$][A-Za-z0-9_$]*)*$`)

// buildCtx is the lexical context of the build pass.
type buildCtx struct {
	// class is the qualified name of the enclosing type, "" at the
	// top level.
	class string

	// vars chains the declared types of fields, parameters, and
	// local variables in scope.
	vars *varScope
}

type varScope struct {
	parent *varScope
	types  map[string]string
}

func (s *varScope) set(name, qualified string) {
	if name == "" || qualified == "" {
		return
	}
	if s.types == nil {
		s.types = make(map[string]string)
	}
	s.types[name] = qualified
}

func (s *varScope) lookup(name string) (string, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		if t, ok := scope.types[name]; ok {
			return t, true
		}
	}
	return "", false
}

// builder is the second pass: it lowers the tree-sitter tree into
// semantic nodes, resolving call sites against the collected tables.
type builder struct {
	u *unit
}

func (b *builder) buildChildren(n *sitter.Node, ctx *buildCtx) []*semantic.Node {
	var nodes []*semantic.Node
	for i := uint(0); i < n.ChildCount(); i++ {
		nodes = append(nodes, b.build(n.Child(i), ctx)...)
	}
	return nodes
}

func (b *builder) build(n *sitter.Node, ctx *buildCtx) []*semantic.Node {
	switch n.Kind() {
	case "class_declaration", "interface_declaration", "enum_declaration", "annotation_type_declaration":
		return b.buildType(n, ctx)
	case "method_declaration", "constructor_declaration":
		return b.buildCallable(n, ctx)
	case "local_variable_declaration":
		return b.buildLocalVars(n, ctx)
	case "method_invocation":
		return b.buildInvocation(n, ctx)
	case "method_reference":
		return b.buildReference(n, ctx)
	case "object_creation_expression":
		return b.buildConstruction(n, ctx)
	default:
		// structural node: splice children through
		return b.buildChildren(n, ctx)
	}
}

func (b *builder) buildType(n *sitter.Node, ctx *buildCtx) []*semantic.Node {
	ti := b.u.typeByDecl[n.StartByte()]
	body := n.ChildByFieldName("body")
	if ti == nil || body == nil {
		return b.buildChildren(n, ctx)
	}
	inner := &buildCtx{
		class: ti.name,
		vars:  &varScope{parent: ctx.vars, types: ti.fields},
	}
	return []*semantic.Node{{
		Kind:     semantic.KindOther,
		Children: b.buildChildren(body, inner),
	}}
}

func (b *builder) buildCallable(n *sitter.Node, ctx *buildCtx) []*semantic.Node {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	sym := b.u.symByDecl[n.StartByte()]
	body := n.ChildByFieldName("body")

	node := &semantic.Node{
		Kind:     semantic.KindFuncDecl,
		Name:     b.u.text(nameNode),
		NameLoc:  b.loc(nameNode),
		Abstract: body == nil,
	}
	if sym != nil {
		node.Sym = sym
		sym.decl = node
	}
	if body != nil {
		inner := &buildCtx{class: ctx.class, vars: b.paramScope(n, ctx.vars)}
		node.Children = b.buildChildren(body, inner)
	}
	return []*semantic.Node{node}
}

// paramScope records the declared types of the callable's
// parameters on top of the enclosing scope.
func (b *builder) paramScope(n *sitter.Node, parent *varScope) *varScope {
	scope := &varScope{parent: parent}
	params := n.ChildByFieldName("parameters")
	if params == nil {
		return scope
	}
	for i := uint(0); i < params.ChildCount(); i++ {
		param := params.Child(i)
		if param.Kind() != "formal_parameter" {
			continue
		}
		typeNode := param.ChildByFieldName("type")
		nameNode := param.ChildByFieldName("name")
		if typeNode == nil || nameNode == nil {
			continue
		}
		scope.set(b.u.text(nameNode), b.u.resolveTypeName(typeNameOf(b.u, typeNode)))
	}
	return scope
}

func (b *builder) buildLocalVars(n *sitter.Node, ctx *buildCtx) []*semantic.Node {
	qualified := ""
	if typeNode := n.ChildByFieldName("type"); typeNode != nil {
		qualified = b.u.resolveTypeName(typeNameOf(b.u, typeNode))
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child.Kind() != "variable_declarator" {
			continue
		}
		if nameNode := child.ChildByFieldName("name"); nameNode != nil {
			ctx.vars.set(b.u.text(nameNode), qualified)
		}
	}
	// initializer expressions may contain calls
	return b.buildChildren(n, ctx)
}

func (b *builder) buildInvocation(n *sitter.Node, ctx *buildCtx) []*semantic.Node {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return b.buildChildren(n, ctx)
	}
	name := b.u.text(nameNode)
	object := n.ChildByFieldName("object")

	node := &semantic.Node{
		Kind:    semantic.KindInvocation,
		Name:    name,
		NameLoc: b.loc(nameNode),
		Sym:     b.resolveCall(object, name, ctx),
	}
	if object != nil {
		node.Children = append(node.Children, b.build(object, ctx)...)
	}
	if args := n.ChildByFieldName("arguments"); args != nil {
		node.Children = append(node.Children, b.buildChildren(args, ctx)...)
	}
	return []*semantic.Node{node}
}

func (b *builder) buildReference(n *sitter.Node, ctx *buildCtx) []*semantic.Node {
	var qualifier, last *sitter.Node
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		switch child.Kind() {
		case "::", "type_arguments":
			continue
		}
		if qualifier == nil {
			qualifier = child
		}
		last = child
	}
	if last == nil || qualifier == nil {
		return nil
	}

	name := b.u.text(last)
	var sym semantic.Symbol
	if qualified, ok := b.receiverType(qualifier, ctx); ok {
		if last.Kind() == "identifier" {
			sym = b.u.symbolOnType(qualified, name)
		} else {
			// Type::new — a bound constructor reference
			sym = b.constructorSymbol(qualified)
		}
	}

	node := &semantic.Node{
		Kind:    semantic.KindReference,
		Name:    name,
		NameLoc: b.loc(last),
		Sym:     sym,
	}
	if qualifier != last {
		node.Children = b.build(qualifier, ctx)
	}
	return []*semantic.Node{node}
}

func (b *builder) buildConstruction(n *sitter.Node, ctx *buildCtx) []*semantic.Node {
	var sym semantic.Symbol
	if typeNode := n.ChildByFieldName("type"); typeNode != nil {
		if qualified := b.u.resolveTypeName(typeNameOf(b.u, typeNode)); qualified != "" {
			sym = b.constructorSymbol(qualified)
		}
	}

	node := &semantic.Node{
		Kind:    semantic.KindConstruction,
		NameLoc: b.loc(n),
		Sym:     sym,
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child.Kind() != "class_body" {
			node.Children = append(node.Children, b.build(child, ctx)...)
			continue
		}
		// anonymous class body: its methods open their own scopes
		inner := ctx
		if ti := b.u.typeByDecl[child.StartByte()]; ti != nil {
			inner = &buildCtx{
				class: ti.name,
				vars:  &varScope{parent: ctx.vars, types: ti.fields},
			}
		}
		node.Children = append(node.Children, b.buildChildren(child, inner)...)
	}
	return []*semantic.Node{node}
}

// constructorSymbol resolves the constructor of a qualified type:
// the unit-declared constructor when available (so helper analysis
// can scan its body), an external symbol otherwise.
func (b *builder) constructorSymbol(qualified string) semantic.Symbol {
	if ctor := b.u.findMethod(qualified, ctorName); ctor != nil {
		return ctor
	}
	return b.u.externalSymbol(qualified, ctorName)
}

// resolveCall resolves an invocation's callee. Unqualified and
// this-qualified calls search the enclosing class chain; qualified
// calls resolve the receiver to a type first. Anything that cannot
// be resolved returns nil.
func (b *builder) resolveCall(object *sitter.Node, name string, ctx *buildCtx) semantic.Symbol {
	if object == nil || object.Kind() == "this" {
		if ctx.class == "" {
			return nil
		}
		return b.u.findMethodOrNil(ctx.class, name)
	}
	if qualified, ok := b.receiverType(object, ctx); ok {
		return b.u.symbolOnType(qualified, name)
	}
	return nil
}

// receiverType resolves a call receiver to a qualified type name:
// a variable or field with a declared type, a unit-declared or
// imported type name, or a fully qualified dotted name.
func (b *builder) receiverType(object *sitter.Node, ctx *buildCtx) (string, bool) {
	switch object.Kind() {
	case "this":
		return ctx.class, ctx.class != ""
	case "identifier", "type_identifier":
		id := b.u.text(object)
		if t, ok := ctx.vars.lookup(id); ok {
			return t, true
		}
		return b.typeTarget(id)
	case "field_access", "scoped_identifier", "scoped_type_identifier":
		return b.dottedReceiver(b.u.text(object), ctx)
	}
	return "", false
}

func (b *builder) dottedReceiver(txt string, ctx *buildCtx) (string, bool) {
	txt = strings.TrimPrefix(txt, "this.")
	if !identifierPath.MatchString(txt) {
		return "", false
	}
	head, rest, dotted := strings.Cut(txt, ".")
	if t, ok := ctx.vars.lookup(head); ok {
		if !dotted {
			return t, true
		}
		// member access through a variable: type untracked
		return "", false
	}
	if !dotted {
		return b.typeTarget(head)
	}
	if q, ok := b.u.imports[head]; ok {
		return q + "." + rest, true
	}
	if q, ok := b.typeTarget(head); ok && b.u.types[q] != nil {
		return q + "." + rest, true
	}
	// treat the whole dotted path as fully qualified
	return txt, true
}

// typeTarget resolves a bare identifier used as a static receiver.
func (b *builder) typeTarget(id string) (string, bool) {
	if id == "" {
		return "", false
	}
	if q, ok := b.u.imports[id]; ok {
		return q, true
	}
	q := b.u.resolveTypeName(id)
	if b.u.types[q] != nil {
		return q, true
	}
	// capitalized receivers are assumed to name a same-package type
	if unicode.IsUpper(rune(id[0])) {
		return q, true
	}
	return "", false
}

func (b *builder) loc(n *sitter.Node) semantic.Location {
	p := n.StartPosition()
	return semantic.Location{
		File: b.u.path,
		Line: int(p.Row) + 1,
		Col:  int(p.Column) + 1,
	}
}
