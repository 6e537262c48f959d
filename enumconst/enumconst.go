// Package enumconst implements the enum-constants generator. Every enum in
// the compilation, whatever its namespace, is mirrored as a static class of
// string constants in the single EnumToConstants namespace.
//
// A member's constant is its quoted identifier, unless the member carries an
// XmlEnum (or XmlEnumAttribute) annotation with at least one argument, in
// which case the text of that argument is used verbatim.
package enumconst

import (
	"github.com/jhump/annosynth"
	"github.com/jhump/annosynth/internal/csharp"
	"github.com/jhump/annosynth/processor"
	"github.com/jhump/annosynth/syntax"
)

// Name is the name under which the processor is registered.
const Name = "enumconst"

// ArtifactName is the name of the single generated artifact.
const ArtifactName = annosynth.EnumConstantsNamespace + ".cs"

func init() {
	processor.RegisterProcessor(Name, Process)
}

// Member is one enum member and the value of its generated constant, which
// is already valid source text (usually a string literal).
type Member struct {
	Name  string
	Value string
}

// Fact is a resolved enum.
type Fact struct {
	Name    string
	Members []Member
}

// Group is the merged set of all enums. There is only ever one.
type Group struct {
	Namespace string
	Facts     []Fact
}

// Process is the enum-constants processor.
func Process(ctx *processor.Context, sink processor.Sink) error {
	candidates := Discover(ctx.Tree)
	ctx.Logger.Debug("discovered candidates", "count", len(candidates))
	for _, g := range Merge(Resolve(ctx, candidates)) {
		a := Render(g)
		if err := sink.AddSource(a.Name, a.Text); err != nil {
			return err
		}
	}
	return nil
}

// Discover returns every enum declaration in the tree.
func Discover(tree *syntax.Tree) []processor.Candidate {
	return processor.Discover(tree, annosynth.MarkerFor(annosynth.EnumConstants))
}

// Resolve computes the member values of each enum. Since all enums end up in
// one namespace, only the first enum with a given name is kept; later ones
// are skipped. Within an enum, the first member with a given name wins.
func Resolve(ctx *processor.Context, candidates []processor.Candidate) []Fact {
	var facts []Fact
	seen := map[string]struct{}{}
	for _, c := range candidates {
		name := syntax.NormalizeName(c.Name)
		if _, ok := seen[name]; ok {
			ctx.Logger.Debug("skipping enum with duplicate name", "enum", name, "namespace", c.Namespace, "pos", c.Pos())
			continue
		}
		seen[name] = struct{}{}

		fact := Fact{Name: name}
		keys := map[string]struct{}{}
		for _, m := range c.Decl.(*syntax.Enum).Members {
			key := syntax.NormalizeName(m.Name)
			if _, ok := keys[key]; ok {
				continue
			}
			keys[key] = struct{}{}
			fact.Members = append(fact.Members, Member{Name: key, Value: memberValue(ctx, m)})
		}
		facts = append(facts, fact)
	}
	return facts
}

// memberValue looks at the first attribute of each of the member's attribute
// lists. The first one that has arguments and resolves to an override type
// supplies the value.
func memberValue(ctx *processor.Context, m *syntax.EnumMember) string {
	for _, list := range m.Attributes {
		first := list.First()
		if first == nil {
			continue
		}
		mirror := ctx.Mirror(first)
		if mirror.NumArgs() == 0 || !annosynth.IsEnumOverride(mirror.Type) {
			continue
		}
		arg, _ := mirror.FirstArg()
		return processor.ArgText(arg)
	}
	return csharp.Quote(syntax.NormalizeName(m.Name))
}

// Merge puts every fact into the one EnumToConstants group. It returns no
// groups if there are no facts.
func Merge(facts []Fact) []Group {
	if len(facts) == 0 {
		return nil
	}
	return []Group{{Namespace: annosynth.EnumConstantsNamespace, Facts: facts}}
}

// Render renders one static class per enum in the group.
func Render(g Group) processor.Artifact {
	var w csharp.Writer
	w.Line(csharp.Header)
	opened := w.OpenNamespace(g.Namespace)
	for i, f := range g.Facts {
		if i > 0 {
			w.Blank()
		}
		w.Linef("public static class %s", f.Name)
		w.Open()
		for _, m := range f.Members {
			w.Linef("public const string %s = %s;", m.Name, m.Value)
		}
		w.Close()
	}
	if opened {
		w.Close()
	}
	return processor.Artifact{Name: ArtifactName, Text: w.Bytes(), Generator: Name}
}
