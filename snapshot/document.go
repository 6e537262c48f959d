package snapshot

import (
	"fmt"
	"go/constant"
	"go/token"
	"strings"

	"github.com/cockroachdb/apd/v3"

	"github.com/jhump/annosynth"
	"github.com/jhump/annosynth/internal/csharp"
	"github.com/jhump/annosynth/syntax"
)

// The document types mirror the serialized form. MessagePack reuses the json
// tags.

type document struct {
	Schema string    `json:"schema" yaml:"schema"`
	Files  []fileDoc `json:"files" yaml:"files"`
}

type fileDoc struct {
	Path  string    `json:"path" yaml:"path"`
	Decls []declDoc `json:"decls,omitempty" yaml:"decls,omitempty"`
}

// declDoc is a declaration. Exactly one of Namespace, Class, Enum, Field and
// Property is set; for fields it holds the declared type.
type declDoc struct {
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Class     string `json:"class,omitempty" yaml:"class,omitempty"`
	Enum      string `json:"enum,omitempty" yaml:"enum,omitempty"`
	Field     string `json:"field,omitempty" yaml:"field,omitempty"`
	Property  string `json:"property,omitempty" yaml:"property,omitempty"`

	// Type is the declared type text of a property.
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
	// Resolved is the resolved numeric type of a property, one of "decimal",
	// "int32", "double", "int64" or "unsupported".
	Resolved string `json:"resolved,omitempty" yaml:"resolved,omitempty"`
	// Namespace of a property, when it differs from the structural one.
	ContainingNamespace *string `json:"containingNamespace,omitempty" yaml:"containingNamespace,omitempty"`

	Modifiers  []string         `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Attributes [][]attributeDoc `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Decls      []declDoc        `json:"decls,omitempty" yaml:"decls,omitempty"`
	Members    []memberDoc      `json:"members,omitempty" yaml:"members,omitempty"`
	Vars       []varDoc         `json:"vars,omitempty" yaml:"vars,omitempty"`

	Line   int `json:"line,omitempty" yaml:"line,omitempty"`
	Column int `json:"col,omitempty" yaml:"col,omitempty"`
}

type memberDoc struct {
	Name       string           `json:"name" yaml:"name"`
	Attributes [][]attributeDoc `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Value      *exprDoc         `json:"value,omitempty" yaml:"value,omitempty"`
	Line       int              `json:"line,omitempty" yaml:"line,omitempty"`
	Column     int              `json:"col,omitempty" yaml:"col,omitempty"`
}

type varDoc struct {
	Name   string   `json:"name" yaml:"name"`
	Init   *exprDoc `json:"init,omitempty" yaml:"init,omitempty"`
	Line   int      `json:"line,omitempty" yaml:"line,omitempty"`
	Column int      `json:"col,omitempty" yaml:"col,omitempty"`
}

type attributeDoc struct {
	Name string `json:"name" yaml:"name"`
	// Type is the resolved type name; see Model.AttributeType for the
	// fallback when it is absent.
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
	// Args is nil when the attribute has no argument list at all.
	Args   *[]argDoc `json:"args,omitempty" yaml:"args,omitempty"`
	Line   int       `json:"line,omitempty" yaml:"line,omitempty"`
	Column int       `json:"col,omitempty" yaml:"col,omitempty"`
}

type argDoc struct {
	Name  string    `json:"name,omitempty" yaml:"name,omitempty"`
	Text  string    `json:"text" yaml:"text"`
	Const *constDoc `json:"const,omitempty" yaml:"const,omitempty"`
}

type exprDoc struct {
	Text   string    `json:"text" yaml:"text"`
	Const  *constDoc `json:"const,omitempty" yaml:"const,omitempty"`
	Line   int       `json:"line,omitempty" yaml:"line,omitempty"`
	Column int       `json:"col,omitempty" yaml:"col,omitempty"`
}

// constDoc is the constant value of an expression. Kind is one of "string",
// "char", "bool", "int", "float" or "decimal"; Value is its text.
type constDoc struct {
	Kind  string `json:"kind" yaml:"kind"`
	Value string `json:"value" yaml:"value"`
}

// builder converts a document into a tree and its model.
type builder struct {
	file  string
	model *Model
	// deferred answers, applied once the model exists
	constants  map[*syntax.Expr]constant.Value
	attrTypes  map[*syntax.Attribute]string
	propTypes  map[*syntax.Property]annosynth.NumericType
	namespaces map[syntax.Decl]string
}

func (d *document) build() (*syntax.Tree, *Model, error) {
	b := &builder{
		constants:  map[*syntax.Expr]constant.Value{},
		attrTypes:  map[*syntax.Attribute]string{},
		propTypes:  map[*syntax.Property]annosynth.NumericType{},
		namespaces: map[syntax.Decl]string{},
	}
	tree := &syntax.Tree{}
	for _, fd := range d.Files {
		b.file = fd.Path
		f := &syntax.File{Path: fd.Path}
		for i := range fd.Decls {
			decl, err := b.decl(&fd.Decls[i])
			if err != nil {
				return nil, nil, err
			}
			f.Decls = append(f.Decls, decl)
		}
		tree.Files = append(tree.Files, f)
	}

	m := NewModel(tree)
	for e, v := range b.constants {
		m.SetConstant(e, v)
	}
	for a, t := range b.attrTypes {
		m.SetAttributeType(a, t)
	}
	for p, t := range b.propTypes {
		m.SetPropertyType(p, t)
	}
	for decl, ns := range b.namespaces {
		m.SetNamespace(decl, ns)
	}
	return tree, m, nil
}

func (b *builder) pos(line, col int) token.Position {
	return token.Position{Filename: b.file, Line: line, Column: col}
}

func (b *builder) errorf(line, col int, format string, args ...interface{}) error {
	p := b.pos(line, col)
	return fmt.Errorf("%w: %s:%d:%d: %s", ErrMalformedDecl, p.Filename, p.Line, p.Column, fmt.Sprintf(format, args...))
}

func (b *builder) decl(d *declDoc) (syntax.Decl, error) {
	set := 0
	for _, s := range []string{d.Namespace, d.Class, d.Enum, d.Field, d.Property} {
		if s != "" {
			set++
		}
	}
	if set != 1 {
		return nil, b.errorf(d.Line, d.Column, "declaration must have exactly one of namespace, class, enum, field or property")
	}

	pos := b.pos(d.Line, d.Column)
	attrs, err := b.attributeLists(d.Attributes)
	if err != nil {
		return nil, err
	}

	switch {
	case d.Namespace != "":
		if !csharp.IsQualifiedName(syntax.NormalizeName(d.Namespace)) {
			return nil, b.errorf(d.Line, d.Column, "invalid namespace name %q", d.Namespace)
		}
		ns := &syntax.Namespace{Name: d.Namespace, Position: pos}
		ns.Decls, err = b.decls(d.Decls)
		return ns, err

	case d.Class != "":
		if !csharp.IsIdentifier(d.Class) {
			return nil, b.errorf(d.Line, d.Column, "invalid class name %q", d.Class)
		}
		c := &syntax.Class{Name: d.Class, Attributes: attrs, Position: pos}
		c.Decls, err = b.decls(d.Decls)
		return c, err

	case d.Enum != "":
		if !csharp.IsIdentifier(d.Enum) {
			return nil, b.errorf(d.Line, d.Column, "invalid enum name %q", d.Enum)
		}
		e := &syntax.Enum{Name: d.Enum, Attributes: attrs, Position: pos}
		for _, md := range d.Members {
			if !csharp.IsIdentifier(md.Name) {
				return nil, b.errorf(md.Line, md.Column, "invalid enum member name %q", md.Name)
			}
			memberAttrs, err := b.attributeLists(md.Attributes)
			if err != nil {
				return nil, err
			}
			value, err := b.expr(md.Value)
			if err != nil {
				return nil, err
			}
			e.Members = append(e.Members, &syntax.EnumMember{
				Name:       md.Name,
				Attributes: memberAttrs,
				Value:      value,
				Position:   b.pos(md.Line, md.Column),
			})
		}
		return e, nil

	case d.Field != "":
		f := &syntax.Field{Type: d.Field, Modifiers: d.Modifiers, Attributes: attrs, Position: pos}
		for _, vd := range d.Vars {
			if !csharp.IsIdentifier(vd.Name) {
				return nil, b.errorf(vd.Line, vd.Column, "invalid variable name %q", vd.Name)
			}
			init, err := b.expr(vd.Init)
			if err != nil {
				return nil, err
			}
			f.Vars = append(f.Vars, &syntax.Variable{Name: vd.Name, Init: init, Position: b.pos(vd.Line, vd.Column)})
		}
		return f, nil

	default:
		if !csharp.IsIdentifier(d.Property) {
			return nil, b.errorf(d.Line, d.Column, "invalid property name %q", d.Property)
		}
		p := &syntax.Property{Name: d.Property, Type: d.Type, Attributes: attrs, Position: pos}
		if d.Resolved != "" {
			t, err := parseResolved(d.Resolved)
			if err != nil {
				return nil, b.errorf(d.Line, d.Column, "%v", err)
			}
			b.propTypes[p] = t
		}
		if d.ContainingNamespace != nil {
			b.namespaces[p] = *d.ContainingNamespace
		}
		return p, nil
	}
}

func (b *builder) decls(docs []declDoc) ([]syntax.Decl, error) {
	var decls []syntax.Decl
	for i := range docs {
		d, err := b.decl(&docs[i])
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
	}
	return decls, nil
}

func (b *builder) attributeLists(lists [][]attributeDoc) ([]*syntax.AttributeList, error) {
	var out []*syntax.AttributeList
	for _, list := range lists {
		al := &syntax.AttributeList{}
		for _, ad := range list {
			if !csharp.IsQualifiedName(syntax.NormalizeName(ad.Name)) {
				return nil, b.errorf(ad.Line, ad.Column, "invalid attribute name %q", ad.Name)
			}
			a := &syntax.Attribute{Name: ad.Name, Position: b.pos(ad.Line, ad.Column)}
			if al.Position.Line == 0 {
				al.Position = a.Position
			}
			if ad.Type != "" {
				b.attrTypes[a] = ad.Type
			}
			if ad.Args != nil {
				a.Args = &syntax.ArgumentList{Position: a.Position}
				for _, arg := range *ad.Args {
					e, err := b.expr(&exprDoc{Text: arg.Text, Const: arg.Const, Line: ad.Line, Column: ad.Column})
					if err != nil {
						return nil, err
					}
					a.Args.Args = append(a.Args.Args, &syntax.Argument{Name: arg.Name, Expr: e, Position: e.Position})
				}
			}
			al.Attributes = append(al.Attributes, a)
		}
		out = append(out, al)
	}
	return out, nil
}

func (b *builder) expr(ed *exprDoc) (*syntax.Expr, error) {
	if ed == nil {
		return nil, nil
	}
	e := &syntax.Expr{Text: ed.Text, Position: b.pos(ed.Line, ed.Column)}
	if ed.Const != nil {
		v, err := ed.Const.value()
		if err != nil {
			return nil, b.errorf(ed.Line, ed.Column, "expression %s: %v", ed.Text, err)
		}
		b.constants[e] = v
	}
	return e, nil
}

func (c *constDoc) value() (constant.Value, error) {
	switch c.Kind {
	case "string", "char":
		return constant.MakeString(c.Value), nil
	case "bool":
		switch strings.ToLower(c.Value) {
		case "true":
			return constant.MakeBool(true), nil
		case "false":
			return constant.MakeBool(false), nil
		}
	case "int":
		lit := strings.TrimRight(c.Value, "uUlL")
		if v := constant.MakeFromLiteral(lit, token.INT, 0); v.Kind() == constant.Int {
			return v, nil
		}
	case "float":
		lit := strings.TrimRight(c.Value, "fFdD")
		if v := constant.MakeFromLiteral(lit, token.FLOAT, 0); v.Kind() == constant.Float || v.Kind() == constant.Int {
			return constant.ToFloat(v), nil
		}
	case "decimal":
		// decimals keep their scale when converted to text, so keep the
		// canonical text rather than a float
		d, _, err := apd.NewFromString(strings.TrimRight(c.Value, "mM"))
		if err == nil && d.Form == apd.Finite {
			return constant.MakeString(d.Text('f')), nil
		}
	default:
		return nil, fmt.Errorf("unknown constant kind %q", c.Kind)
	}
	return nil, fmt.Errorf("invalid %s constant %q", c.Kind, c.Value)
}

func parseResolved(s string) (annosynth.NumericType, error) {
	for _, t := range []annosynth.NumericType{annosynth.Unsupported, annosynth.Decimal, annosynth.Int32, annosynth.Double, annosynth.Int64} {
		if t.String() == s {
			return t, nil
		}
	}
	return annosynth.Unsupported, fmt.Errorf("unknown resolved type %q", s)
}
