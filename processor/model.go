package processor

import (
	"go/constant"

	"github.com/jhump/annosynth"
	"github.com/jhump/annosynth/syntax"
)

// Model is the semantic query interface supplied by the host alongside the
// syntax tree. Processors never mutate the model or the tree.
type Model interface {
	// ConstantValue returns the compile-time constant value of the given
	// expression. The second result is false if the expression is not a
	// constant.
	ConstantValue(e *syntax.Expr) (constant.Value, bool)
	// AttributeType returns the simple name of the resolved type of the
	// given attribute, e.g. "XmlEnumAttribute". The second result is false
	// if the type could not be resolved.
	AttributeType(a *syntax.Attribute) (string, bool)
	// PropertyType classifies the resolved type of the given property.
	PropertyType(p *syntax.Property) annosynth.NumericType
	// ContainingNamespace returns the fully-qualified, dotted name of the
	// namespace that contains the given declaration, or an empty string for
	// the global namespace.
	ContainingNamespace(d syntax.Decl) string
}
