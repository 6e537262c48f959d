// Package classlist implements the class-list generator. Every class that
// carries the [ClassToList] marker contributes one read-only sequence of
// strings to a GeneratedList container in its namespace. The sequence holds
// the constant values of all fields declared anywhere in the class body, in
// declaration order.
package classlist

import (
	"fmt"
	"go/token"

	"github.com/jhump/annosynth"
	"github.com/jhump/annosynth/internal/csharp"
	"github.com/jhump/annosynth/processor"
	"github.com/jhump/annosynth/syntax"
)

// Name is the name under which the processor is registered.
const Name = "classlist"

// ContainerName is the name of the generated static class.
const ContainerName = "GeneratedList"

func init() {
	processor.RegisterProcessor(Name, Process)
}

// Fact is a resolved class-list candidate.
type Fact struct {
	// Name of the marked class, used as the name of the generated sequence.
	Name string
	// Namespace of the marked class.
	Namespace string
	// Values are the text forms of the class's constants, in declaration
	// order.
	Values []string
	Pos    token.Position
}

// Group is the set of facts that share a namespace. One artifact is rendered
// per group.
type Group struct {
	Namespace string
	Facts     []Fact
}

// Process is the class-list processor.
func Process(ctx *processor.Context, sink processor.Sink) error {
	candidates := Discover(ctx.Tree)
	ctx.Logger.Debug("discovered candidates", "count", len(candidates))
	facts, err := Resolve(ctx, candidates)
	if err != nil {
		return err
	}
	for _, g := range GroupByNamespace(facts) {
		a := Render(g)
		if err := sink.AddSource(a.Name, a.Text); err != nil {
			return err
		}
	}
	return nil
}

// Discover returns every class marked with [ClassToList].
func Discover(tree *syntax.Tree) []processor.Candidate {
	return processor.Discover(tree, annosynth.MarkerFor(annosynth.ClassList))
}

// Resolve computes the constant values of each candidate.
//
// A candidate must be declared directly inside a namespace, and every field
// variable with an initializer must have a constant value. Violations are
// returned as *processor.ErrorWithPosition and abort resolution; there is no
// per-candidate recovery.
func Resolve(ctx *processor.Context, candidates []processor.Candidate) ([]Fact, error) {
	facts := make([]Fact, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := c.Parent.(*syntax.Namespace); !ok {
			return nil, processor.NewErrorWithPosition(c.Pos(),
				fmt.Errorf("class %s: %w", c.Name, processor.ErrNotInNamespace))
		}
		values, err := constantValues(ctx, c.Name, c.Decl)
		if err != nil {
			return nil, err
		}
		facts = append(facts, Fact{
			Name:      syntax.NormalizeName(c.Name),
			Namespace: c.Namespace,
			Values:    values,
			Pos:       c.Pos(),
		})
	}
	return facts, nil
}

func constantValues(ctx *processor.Context, className string, decl syntax.Decl) ([]string, error) {
	values := []string{}
	var err error
	syntax.Inspect(decl, func(n syntax.Node, _ []syntax.Node) bool {
		if err != nil {
			return false
		}
		f, ok := n.(*syntax.Field)
		if !ok {
			return true
		}
		for _, v := range f.Vars {
			if v.Init == nil {
				continue
			}
			val, ok := ctx.Model.ConstantValue(v.Init)
			if !ok {
				err = processor.NewErrorWithPosition(v.Init.Pos(),
					fmt.Errorf("field %s of class %s: %w", v.Name, className, processor.ErrNoConstantValue))
				return false
			}
			text, textErr := processor.ConstantText(val)
			if textErr != nil {
				err = processor.NewErrorWithPosition(v.Init.Pos(),
					fmt.Errorf("field %s of class %s: %w", v.Name, className, textErr))
				return false
			}
			values = append(values, text)
		}
		return false
	})
	return values, err
}

// GroupByNamespace buckets facts by namespace. Groups are ordered by the
// first appearance of their namespace; facts keep their relative order.
func GroupByNamespace(facts []Fact) []Group {
	var groups []Group
	index := map[string]int{}
	for _, f := range facts {
		i, ok := index[f.Namespace]
		if !ok {
			i = len(groups)
			index[f.Namespace] = i
			groups = append(groups, Group{Namespace: f.Namespace})
		}
		groups[i].Facts = append(groups[i].Facts, f)
	}
	return groups
}

// ArtifactName returns the name of the artifact for the given namespace.
func ArtifactName(namespace string) string {
	return namespace + ".cs"
}

// Render renders the GeneratedList container for the given group. Values are
// emitted as escaped string literals.
func Render(g Group) processor.Artifact {
	var w csharp.Writer
	w.Line(csharp.Header)
	w.Line("using System.Collections.Generic;")
	w.Blank()
	opened := w.OpenNamespace(g.Namespace)
	w.Linef("public static partial class %s", ContainerName)
	w.Open()
	for _, f := range g.Facts {
		w.Linef("public static readonly IReadOnlyList<string> %s = %s;", f.Name, listInitializer(f.Values))
	}
	w.Close()
	if opened {
		w.Close()
	}
	return processor.Artifact{Name: ArtifactName(g.Namespace), Text: w.Bytes(), Generator: Name}
}

func listInitializer(values []string) string {
	if len(values) == 0 {
		return "new List<string>().AsReadOnly()"
	}
	s := "new List<string> { "
	for i, v := range values {
		if i > 0 {
			s += ", "
		}
		s += csharp.Quote(v)
	}
	return s + " }.AsReadOnly()"
}
