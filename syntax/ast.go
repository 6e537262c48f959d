// Package syntax defines the read-only syntax tree that a host compiler hands
// to the synthesis engine. The engine never parses source text; a front end
// (see package snapshot) builds these nodes and the engine only walks them.
//
// Nodes are pointers and are compared by identity: the semantic model
// answers questions about a specific *Expr, *Attribute or *Property.
package syntax

import (
	"go/token"
)

// Node is any node in the syntax tree.
type Node interface {
	Pos() token.Position
}

// Decl is a declaration that can appear in a file, namespace or type body.
type Decl interface {
	Node
	declNode()
}

// Tree is the complete input of one pass: every file of the compilation, in
// the order the host supplied them.
type Tree struct {
	Files []*File
}

func (t *Tree) Pos() token.Position {
	return token.Position{}
}

// File is a single compilation unit.
type File struct {
	Path  string
	Decls []Decl
}

func (f *File) Pos() token.Position {
	return token.Position{Filename: f.Path, Line: 1, Column: 1}
}

// Namespace is a namespace declaration. Name is the namespace's own name
// text, which may be dotted (e.g. "Shop.Models") but does not include the
// names of enclosing namespaces.
type Namespace struct {
	Name     string
	Decls    []Decl
	Position token.Position
}

func (n *Namespace) Pos() token.Position { return n.Position }
func (*Namespace) declNode()             {}

// Class is a class (or struct/record) declaration.
type Class struct {
	Name       string
	Attributes []*AttributeList
	Decls      []Decl
	Position   token.Position
}

func (c *Class) Pos() token.Position { return c.Position }
func (*Class) declNode()             {}

// Enum is an enum declaration.
type Enum struct {
	Name       string
	Attributes []*AttributeList
	Members    []*EnumMember
	Position   token.Position
}

func (e *Enum) Pos() token.Position { return e.Position }
func (*Enum) declNode()             {}

// EnumMember is one member of an enum. Value is nil when the member has no
// explicit value.
type EnumMember struct {
	Name       string
	Attributes []*AttributeList
	Value      *Expr
	Position   token.Position
}

func (m *EnumMember) Pos() token.Position { return m.Position }

// Field is a field declaration, which declares one or more variables of the
// same type.
type Field struct {
	Type       string
	Modifiers  []string
	Attributes []*AttributeList
	Vars       []*Variable
	Position   token.Position
}

func (f *Field) Pos() token.Position { return f.Position }
func (*Field) declNode()             {}

// Variable is a single declared variable of a field. Init is nil when the
// variable has no initializer.
type Variable struct {
	Name     string
	Init     *Expr
	Position token.Position
}

func (v *Variable) Pos() token.Position { return v.Position }

// Property is a property declaration. Type is the declared type's text.
type Property struct {
	Name       string
	Type       string
	Attributes []*AttributeList
	Position   token.Position
}

func (p *Property) Pos() token.Position { return p.Position }
func (*Property) declNode()             {}

// AttributeList is one bracketed group of attributes, e.g. "[A, B(1)]".
type AttributeList struct {
	Attributes []*Attribute
	Position   token.Position
}

func (l *AttributeList) Pos() token.Position { return l.Position }

// First returns the first attribute in the list or nil if it is empty.
func (l *AttributeList) First() *Attribute {
	if len(l.Attributes) == 0 {
		return nil
	}
	return l.Attributes[0]
}

// Attribute is a single annotation. Args is nil when the attribute has no
// argument list at all, which is distinct from an empty one ("A()").
type Attribute struct {
	Name     string
	Args     *ArgumentList
	Position token.Position
}

func (a *Attribute) Pos() token.Position { return a.Position }

// NumArgs returns the number of arguments, zero when there is no list.
func (a *Attribute) NumArgs() int {
	if a.Args == nil {
		return 0
	}
	return len(a.Args.Args)
}

// ArgumentList is the parenthesized argument list of an attribute.
type ArgumentList struct {
	Args     []*Argument
	Position token.Position
}

func (l *ArgumentList) Pos() token.Position { return l.Position }

// Argument is one attribute argument. Name is set for named arguments
// ("Name = expr") and empty for positional ones.
type Argument struct {
	Name     string
	Expr     *Expr
	Position token.Position
}

func (a *Argument) Pos() token.Position { return a.Position }

// Expr is an expression. Only its source text is known syntactically; the
// semantic model supplies anything else (such as a constant value).
type Expr struct {
	Text     string
	Position token.Position
}

func (e *Expr) Pos() token.Position { return e.Position }
