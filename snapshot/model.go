package snapshot

import (
	"go/constant"
	"strings"

	"github.com/jhump/annosynth"
	"github.com/jhump/annosynth/syntax"
)

// Model is a semantic model whose answers were recorded ahead of time, either
// by decoding a snapshot or by calling its Set methods. It implements
// processor.Model.
//
// Questions that have no recorded answer fall back to syntactic rules that
// mirror the host's own resolution: attribute types get an "Attribute"
// suffix, property types are classified from their declared type text and
// namespaces are taken from the enclosing namespace declarations.
type Model struct {
	constants  map[*syntax.Expr]constant.Value
	attrTypes  map[*syntax.Attribute]string
	propTypes  map[*syntax.Property]annosynth.NumericType
	namespaces map[syntax.Decl]string
}

// NewModel returns a model for the given tree, with namespaces indexed from
// the tree's structure and no other recorded answers.
func NewModel(tree *syntax.Tree) *Model {
	m := &Model{
		constants:  map[*syntax.Expr]constant.Value{},
		attrTypes:  map[*syntax.Attribute]string{},
		propTypes:  map[*syntax.Property]annosynth.NumericType{},
		namespaces: map[syntax.Decl]string{},
	}
	if tree != nil {
		syntax.Inspect(tree, func(n syntax.Node, ancestors []syntax.Node) bool {
			switch n := n.(type) {
			case *syntax.AttributeList, *syntax.Expr:
				return false
			case syntax.Decl:
				m.namespaces[n] = syntax.EnclosingNamespace(ancestors)
			}
			return true
		})
	}
	return m
}

// SetConstant records the constant value of an expression.
func (m *Model) SetConstant(e *syntax.Expr, v constant.Value) {
	m.constants[e] = v
}

// SetAttributeType records the resolved type of an attribute. Qualified names
// are reduced to their last segment.
func (m *Model) SetAttributeType(a *syntax.Attribute, typeName string) {
	m.attrTypes[a] = simpleName(typeName)
}

// SetPropertyType records the resolved type of a property.
func (m *Model) SetPropertyType(p *syntax.Property, t annosynth.NumericType) {
	m.propTypes[p] = t
}

// SetNamespace records the containing namespace of a declaration.
func (m *Model) SetNamespace(d syntax.Decl, namespace string) {
	m.namespaces[d] = namespace
}

// ConstantValue implements processor.Model.
func (m *Model) ConstantValue(e *syntax.Expr) (constant.Value, bool) {
	v, ok := m.constants[e]
	if !ok || v == nil || v.Kind() == constant.Unknown {
		return nil, false
	}
	return v, true
}

// AttributeType implements processor.Model.
func (m *Model) AttributeType(a *syntax.Attribute) (string, bool) {
	if t, ok := m.attrTypes[a]; ok {
		return t, true
	}
	name := simpleName(a.Name)
	if name == "" {
		return "", false
	}
	if !strings.HasSuffix(name, "Attribute") {
		name += "Attribute"
	}
	return name, true
}

// PropertyType implements processor.Model.
func (m *Model) PropertyType(p *syntax.Property) annosynth.NumericType {
	if t, ok := m.propTypes[p]; ok {
		return t
	}
	return annosynth.ParseNumericType(p.Type)
}

// ContainingNamespace implements processor.Model.
func (m *Model) ContainingNamespace(d syntax.Decl) string {
	return m.namespaces[d]
}

func simpleName(name string) string {
	name = syntax.NormalizeName(name)
	if i := strings.LastIndexAny(name, ".:"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
