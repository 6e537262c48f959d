// Package annosynth describes the marker annotations recognized by the source
// synthesis engine. The annotation types themselves live in the host's code
// base; here they are only names that the discovery walker matches against.
//
// There are three kinds of generators:
//
//    [ClassToList]
//    public class Foo { const string A = "x"; }    // → N.GeneratedList.Foo
//
//    public enum Color { Red, [XmlEnum("R")] Blue } // → EnumToConstants.Color
//
//    [AmountValidation(ZeroValueChecker = "True")]
//    public decimal Amount { get; set; }           // → AmountValidation class
//
// The matching rules are a closed set, exposed through Markers so that the
// walker never hard-codes a name.
package annosynth

import (
	"fmt"
	"strings"
)

const (
	// ClassToList is the exact name of the class-list marker.
	ClassToList = "ClassToList"
	// ValidationSuffix is the suffix that identifies a validation marker.
	ValidationSuffix = "Validation"
	// ZeroValueChecker is the named marker argument that enables the zero
	// value rule of a generated validation class.
	ZeroValueChecker = "ZeroValueChecker"
	// ZeroValueCheckerEnabled is the literal text that turns the rule on.
	ZeroValueCheckerEnabled = `"True"`
	// EnumConstantsNamespace is the synthetic namespace into which every
	// enum's constants are merged. It is also the artifact's base name.
	EnumConstantsNamespace = "EnumToConstants"
)

// Kind is an enumeration of generator kinds.
type Kind int

const (
	// ClassList generators turn constant fields of marked classes into
	// read-only string sequences.
	ClassList Kind = iota
	// EnumConstants generators mirror every enum as a class of string
	// constants.
	EnumConstants
	// Validation generators produce a numeric validation attribute class for
	// each marked property.
	Validation
)

func (k Kind) String() string {
	switch k {
	case ClassList:
		return "classlist"
	case EnumConstants:
		return "enumconst"
	case Validation:
		return "validation"
	default:
		return fmt.Sprintf("?%d?", int(k))
	}
}

// DeclKind is the kind of declaration a marker may be attached to.
type DeclKind int

const (
	ClassDecl DeclKind = iota
	EnumDecl
	PropertyDecl
)

// Marker describes how declarations of one generator kind are recognized.
type Marker struct {
	Kind Kind
	// Target is the declaration kind the marker applies to.
	Target DeclKind
	// Unconditional markers match every declaration of the target kind;
	// Match is not consulted.
	Unconditional bool
	// Match reports whether a whitespace-normalized annotation name is this
	// marker.
	Match func(name string) bool
}

// Markers is the registry of all recognized markers, keyed by kind.
var Markers = map[Kind]Marker{
	ClassList: {
		Kind:   ClassList,
		Target: ClassDecl,
		Match:  func(name string) bool { return name == ClassToList },
	},
	EnumConstants: {
		Kind:          EnumConstants,
		Target:        EnumDecl,
		Unconditional: true,
	},
	Validation: {
		Kind:   Validation,
		Target: PropertyDecl,
		Match:  func(name string) bool { return strings.HasSuffix(name, ValidationSuffix) },
	},
}

// MarkerFor returns the registered marker for the given kind. It panics if
// the kind is unknown.
func MarkerFor(k Kind) Marker {
	m, ok := Markers[k]
	if !ok {
		panic(fmt.Sprintf("no marker registered for generator kind %v", k))
	}
	return m
}

// enumOverrideTypes are the resolved type names of annotations that override
// the output value of an enum member.
var enumOverrideTypes = map[string]struct{}{
	"XmlEnumAttribute": {},
	"XmlEnum":          {},
}

// IsEnumOverride returns true if the given resolved annotation type name
// supplies an explicit value for an enum member.
func IsEnumOverride(typeName string) bool {
	_, ok := enumOverrideTypes[typeName]
	return ok
}

// NumericType is the classification of a property type that validation
// generators support.
type NumericType int

const (
	// Unsupported is any type outside the supported numeric set.
	Unsupported NumericType = iota
	Decimal
	Int32
	Double
	Int64
)

func (t NumericType) String() string {
	switch t {
	case Unsupported:
		return "unsupported"
	case Decimal:
		return "decimal"
	case Int32:
		return "int32"
	case Double:
		return "double"
	case Int64:
		return "int64"
	default:
		return fmt.Sprintf("?%d?", int(t))
	}
}

// Keyword returns the C# keyword for the type, which is also the name used
// to call its TryParse method. It returns an empty string for Unsupported.
func (t NumericType) Keyword() string {
	switch t {
	case Decimal:
		return "decimal"
	case Int32:
		return "int"
	case Double:
		return "double"
	case Int64:
		return "long"
	default:
		return ""
	}
}

// ParseNumericType maps the text of a C# type reference, either a keyword or
// a (possibly qualified) System type name, to its classification.
func ParseNumericType(s string) NumericType {
	s = strings.TrimPrefix(strings.Join(strings.Fields(s), ""), "global::")
	s = strings.TrimPrefix(s, "System.")
	switch s {
	case "decimal", "Decimal":
		return Decimal
	case "int", "Int32":
		return Int32
	case "double", "Double":
		return Double
	case "long", "Int64":
		return Int64
	default:
		return Unsupported
	}
}
