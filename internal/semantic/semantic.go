// Package semantic defines the resolved syntax model shared by the
// Java front-end and the assertion rule engine: a closed set of node
// kinds plus the symbol- and type-resolution contracts the engine
// consumes.
package semantic

// NodeKind enumerates the node shapes the rule engine distinguishes.
// Everything else in a source file is folded into KindOther.
type NodeKind uint8

// Node kind constants.
const (
	// KindFile is the root node of one analysis unit.
	KindFile NodeKind = iota

	// KindFuncDecl is a method or constructor declaration.
	KindFuncDecl

	// KindInvocation is a method call expression.
	KindInvocation

	// KindReference is a bound method or constructor reference
	// used as a value (e.g. Assert::assertTrue).
	KindReference

	// KindConstruction is an object creation expression.
	KindConstruction

	// KindOther is any structural node that only carries children
	// (class bodies, statements, and so on).
	KindOther
)

// Location is a source position.
type Location struct {
	File string
	Line int
	Col  int
}

// DecoratorValue is one named argument of an annotation, e.g.
// expected = ArithmeticException.class.
type DecoratorValue struct {
	Name  string
	Value string
}

// TypeRef is a resolved reference to a declaring type.
type TypeRef interface {
	// Name returns the fully qualified type name.
	Name() string

	// IsSubtypeOf reports whether the type is the named type or a
	// transitive subtype of it. The test is reflexive.
	IsSubtypeOf(qualified string) bool
}

// Symbol is an opaque handle to a resolved method or constructor.
// Implementations must be comparable; the engine uses symbols as
// cache keys.
type Symbol interface {
	// Name returns the simple name. Constructors are named "<init>".
	Name() string

	// Declaration returns the declaration node, or nil when the
	// declaration is not part of the current analysis unit.
	Declaration() *Node

	// Overridden returns the symbol this one overrides, or nil.
	Overridden() Symbol

	// EnclosingType returns the declaring type, or nil when it
	// cannot be determined.
	EnclosingType() TypeRef

	// DecoratorValues returns the named arguments of the given
	// annotation and whether the annotation is present at all.
	DecoratorValues(decorator string) ([]DecoratorValue, bool)
}

// Node is one node of the resolved tree for an analysis unit.
type Node struct {
	Kind NodeKind

	// Name is the declared name for KindFuncDecl, or the call-site
	// simple name for KindInvocation and KindReference. Empty for
	// KindConstruction.
	Name string

	// NameLoc is the position of the name identifier; findings are
	// reported here.
	NameLoc Location

	// Sym is the resolved symbol, nil when resolution failed.
	Sym Symbol

	// Abstract marks bodiless declarations, which are never
	// classified or traversed.
	Abstract bool

	Children []*Node
}
