package processor

import (
	"testing"

	"github.com/jhump/annosynth/snapshot"
	"github.com/jhump/annosynth/syntax"
)

func TestAttributeMirror(t *testing.T) {
	bare := &syntax.Attribute{Name: "Rules . AmountValidation"}
	empty := &syntax.Attribute{Name: "XmlEnum", Args: &syntax.ArgumentList{}}
	withArgs := &syntax.Attribute{Name: "XmlEnum", Args: &syntax.ArgumentList{Args: []*syntax.Argument{
		{Expr: &syntax.Expr{Text: ` "R" `}},
		{Name: "ZeroValueChecker", Expr: &syntax.Expr{Text: `"True"`}},
		{Name: " ZeroValueChecker ", Expr: &syntax.Expr{Text: `"False"`}},
	}}}
	tree := &syntax.Tree{}
	model := snapshot.NewModel(tree)
	model.SetAttributeType(empty, "System.Xml.Serialization.XmlEnumAttribute")
	ctx := NewContext(tree, model, nil)

	m := ctx.Mirror(bare)
	if m.Name != "Rules.AmountValidation" {
		t.Errorf("wrong name %q", m.Name)
	}
	if m.Type != "AmountValidationAttribute" {
		t.Errorf("wrong type %q", m.Type)
	}
	if m.HasArgumentList() || m.NumArgs() != 0 {
		t.Error("expecting no argument list")
	}
	if _, ok := m.FirstArg(); ok {
		t.Error("expecting no first argument")
	}
	if _, ok := m.NamedArg("ZeroValueChecker"); ok {
		t.Error("expecting no named argument")
	}

	m = ctx.Mirror(empty)
	if m.Type != "XmlEnumAttribute" {
		t.Errorf("wrong type %q", m.Type)
	}
	if !m.HasArgumentList() || m.NumArgs() != 0 {
		t.Error("expecting empty argument list")
	}

	m = ctx.Mirror(withArgs)
	if m.NumArgs() != 3 {
		t.Fatalf("expecting 3 args; got %d", m.NumArgs())
	}
	first, ok := m.FirstArg()
	if !ok || ArgText(first) != `"R"` {
		t.Errorf("wrong first argument: %v", first)
	}
	named, ok := m.NamedArg("ZeroValueChecker")
	if !ok || ArgText(named) != `"True"` {
		t.Errorf("expecting first matching named argument; got %v", named)
	}
	if ArgText(&syntax.Argument{}) != "" {
		t.Error("expecting empty text for argument without expression")
	}
}
