package processor

import (
	"github.com/jhump/annosynth/syntax"
)

// AttributeMirror is a view of an attribute instance that appears in source,
// combining its syntax with what the semantic model knows about it.
type AttributeMirror struct {
	// The attribute node in the syntax tree.
	Attr *syntax.Attribute
	// The whitespace-normalized name text, as written in source.
	Name string
	// The simple name of the attribute's resolved type. Empty if the model
	// could not resolve it.
	Type string
}

// Mirror returns a mirror of the given attribute, querying the context's
// model for its type.
func (c *Context) Mirror(a *syntax.Attribute) AttributeMirror {
	m := AttributeMirror{Attr: a, Name: syntax.NormalizeName(a.Name)}
	if t, ok := c.Model.AttributeType(a); ok {
		m.Type = t
	}
	return m
}

// HasArgumentList returns true if the attribute was written with an argument
// list, even an empty one.
func (m AttributeMirror) HasArgumentList() bool {
	return m.Attr.Args != nil
}

// NumArgs returns the number of arguments.
func (m AttributeMirror) NumArgs() int {
	return m.Attr.NumArgs()
}

// FirstArg returns the first argument, positional or named.
func (m AttributeMirror) FirstArg() (*syntax.Argument, bool) {
	if m.NumArgs() == 0 {
		return nil, false
	}
	return m.Attr.Args.Args[0], true
}

// NamedArg returns the first argument with the given name. Positional
// arguments never match.
func (m AttributeMirror) NamedArg(name string) (*syntax.Argument, bool) {
	if m.Attr.Args == nil {
		return nil, false
	}
	for _, a := range m.Attr.Args.Args {
		if a.Name != "" && syntax.NormalizeName(a.Name) == name {
			return a, true
		}
	}
	return nil, false
}

// ArgText returns the whitespace-normalized expression text of the given
// argument.
func ArgText(a *syntax.Argument) string {
	if a.Expr == nil {
		return ""
	}
	return syntax.NormalizeExpr(a.Expr.Text)
}
