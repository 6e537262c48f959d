package processor

import (
	"go/token"

	"github.com/jhump/annosynth"
	"github.com/jhump/annosynth/syntax"
)

// Candidate is a declaration matched during discovery, before any semantic
// queries have been made about it.
type Candidate struct {
	Kind annosynth.Kind
	// Name is the declaration's identifier text.
	Name string
	// Namespace is the dotted name of all enclosing namespace declarations,
	// outermost first. It is empty for declarations outside of any namespace.
	Namespace string
	// Parent is the node that directly encloses the declaration.
	Parent syntax.Node
	// Marker is the matched marker annotation. It is nil for unconditional
	// markers.
	Marker *syntax.Attribute
	// Decl is the candidate declaration itself.
	Decl syntax.Decl
}

// Pos returns the location of the candidate declaration.
func (c Candidate) Pos() token.Position {
	return c.Decl.Pos()
}

// Discover walks the tree in pre-order and returns every declaration that
// the given marker matches, in the order encountered.
//
// A class or property qualifies only if it has exactly one attribute list and
// the first attribute in that list has a name that the marker matches (after
// whitespace normalization). Unconditional markers match every declaration of
// the target kind. Discover makes no semantic queries.
func Discover(tree *syntax.Tree, marker annosynth.Marker) []Candidate {
	var candidates []Candidate
	syntax.Inspect(tree, func(n syntax.Node, ancestors []syntax.Node) bool {
		var (
			target annosynth.DeclKind
			name   string
			attrs  []*syntax.AttributeList
		)
		switch n := n.(type) {
		case *syntax.AttributeList, *syntax.Expr:
			return false
		case *syntax.Class:
			target, name, attrs = annosynth.ClassDecl, n.Name, n.Attributes
		case *syntax.Enum:
			target, name, attrs = annosynth.EnumDecl, n.Name, n.Attributes
		case *syntax.Property:
			target, name, attrs = annosynth.PropertyDecl, n.Name, n.Attributes
		default:
			return true
		}
		if target != marker.Target {
			return true
		}

		c := Candidate{
			Kind:      marker.Kind,
			Name:      name,
			Namespace: syntax.EnclosingNamespace(ancestors),
			Decl:      n.(syntax.Decl),
		}
		if len(ancestors) > 0 {
			c.Parent = ancestors[len(ancestors)-1]
		}
		if !marker.Unconditional {
			c.Marker = matchMarker(marker, attrs)
			if c.Marker == nil {
				return true
			}
		}
		candidates = append(candidates, c)
		return true
	})
	return candidates
}

func matchMarker(marker annosynth.Marker, attrs []*syntax.AttributeList) *syntax.Attribute {
	if len(attrs) != 1 {
		return nil
	}
	first := attrs[0].First()
	if first == nil || !marker.Match(syntax.NormalizeName(first.Name)) {
		return nil
	}
	return first
}
