// Package validation implements the numeric validation generator. Every
// property of type decimal, int, double or long that carries a single marker
// whose name ends in "Validation" gets a generated ValidationAttribute
// subclass named after the marker. The generated attribute rejects null and
// empty values and values that do not parse as the property's type. If the
// marker sets ZeroValueChecker = "True", values less than or equal to zero
// are rejected too.
//
// A marker written without any argument list is a special case, controlled
// by BareMarkerPolicy.
package validation

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/jhump/annosynth"
	"github.com/jhump/annosynth/processor"
	"github.com/jhump/annosynth/syntax"
)

// Name is the name under which the processor is registered.
const Name = "validation"

func init() {
	processor.RegisterProcessor(Name, NewProcessor(BareMarkerContinue))
}

// BareMarkerPolicy decides what happens after a candidate whose marker has no
// argument list at all.
type BareMarkerPolicy int

const (
	// BareMarkerContinue emits the baseline artifact (no zero value rule)
	// for the candidate and goes on with the next one.
	BareMarkerContinue BareMarkerPolicy = iota
	// BareMarkerAbortPass emits the baseline artifact for the candidate and
	// then ignores all remaining candidates of the pass.
	BareMarkerAbortPass
)

func (p BareMarkerPolicy) String() string {
	switch p {
	case BareMarkerContinue:
		return "continue"
	case BareMarkerAbortPass:
		return "abort"
	default:
		return fmt.Sprintf("?%d?", int(p))
	}
}

// ParseBareMarkerPolicy parses the String form of a policy.
func ParseBareMarkerPolicy(s string) (BareMarkerPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "continue":
		return BareMarkerContinue, nil
	case "abort":
		return BareMarkerAbortPass, nil
	default:
		return 0, fmt.Errorf("unknown bare marker policy %q (expecting continue or abort)", s)
	}
}

// Fact is a resolved validation candidate.
type Fact struct {
	// ClassName is the name of the generated attribute class.
	ClassName string
	// Namespace that contains the property, and the generated class.
	Namespace string
	Type      annosynth.NumericType
	// ZeroCheck enables the rule that rejects values <= 0.
	ZeroCheck bool
	// Bare is true if the marker had no argument list.
	Bare bool
	Pos  token.Position
}

// Rule returns the executable model of the check that is generated for f.
func (f Fact) Rule() Rule {
	return Rule{Type: f.Type, ZeroCheck: f.ZeroCheck}
}

// NewProcessor returns a validation processor that uses the given policy.
func NewProcessor(policy BareMarkerPolicy) processor.Processor {
	return func(ctx *processor.Context, sink processor.Sink) error {
		candidates := Discover(ctx.Tree)
		ctx.Logger.Debug("discovered candidates", "count", len(candidates))
		for _, f := range Resolve(ctx, candidates, policy) {
			a := Render(f)
			if err := sink.AddSource(a.Name, a.Text); err != nil {
				return err
			}
		}
		return nil
	}
}

// Discover returns every property whose single attribute list starts with a
// validation marker.
func Discover(tree *syntax.Tree) []processor.Candidate {
	return processor.Discover(tree, annosynth.MarkerFor(annosynth.Validation))
}

// Resolve computes one fact per candidate with a supported property type.
// Candidates of other types are skipped. After a candidate with a bare
// marker, the policy decides whether resolution continues.
func Resolve(ctx *processor.Context, candidates []processor.Candidate, policy BareMarkerPolicy) []Fact {
	var facts []Fact
	for i, c := range candidates {
		prop := c.Decl.(*syntax.Property)
		t := ctx.Model.PropertyType(prop)
		if t == annosynth.Unsupported {
			ctx.Logger.Debug("skipping property of unsupported type", "property", c.Name, "type", prop.Type, "pos", c.Pos())
			continue
		}

		mirror := ctx.Mirror(c.Marker)
		f := Fact{
			ClassName: className(mirror.Name),
			Namespace: ctx.Model.ContainingNamespace(c.Decl),
			Type:      t,
			Pos:       c.Pos(),
		}
		if !mirror.HasArgumentList() {
			f.Bare = true
			facts = append(facts, f)
			if policy == BareMarkerAbortPass {
				if rest := len(candidates) - i - 1; rest > 0 {
					ctx.Logger.Warn("bare validation marker ends the pass", "property", c.Name, "skipped", rest, "pos", c.Pos())
				}
				return facts
			}
			continue
		}
		if arg, ok := mirror.NamedArg(annosynth.ZeroValueChecker); ok {
			f.ZeroCheck = processor.ArgText(arg) == annosynth.ZeroValueCheckerEnabled
		}
		facts = append(facts, f)
	}
	return facts
}

// className reduces a possibly qualified marker name to its last segment.
func className(markerName string) string {
	if i := strings.LastIndexAny(markerName, ".:"); i >= 0 {
		return markerName[i+1:]
	}
	return markerName
}

// ArtifactName returns the name of the artifact for the given class.
func ArtifactName(className string) string {
	return className + ".cs"
}
