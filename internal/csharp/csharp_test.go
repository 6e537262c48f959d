package csharp

import (
	"testing"
)

func TestQuote(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"x", `"x"`},
		{"", `""`},
		{`say "hi"`, `"say \"hi\""`},
		{`C:\temp`, `"C:\\temp"`},
		{"a,b", `"a,b"`},
		{"line\nbreak\ttab", `"line\nbreak\ttab"`},
		{"bell\x07", `"bell\a"`},
		{"esc\x1b", `"esc\u001b"`},
		{"päß ✓", `"päß ✓"`},
		{"sep\u2028", `"sep\u2028"`},
	}
	for _, c := range cases {
		if got := Quote(c.in); got != c.want {
			t.Errorf("Quote(%q) = %s; want %s", c.in, got, c.want)
		}
	}
}

func TestWriter(t *testing.T) {
	var w Writer
	w.Line(Header)
	opened := w.OpenNamespace("N")
	w.Line("class C")
	w.Open()
	w.Linef("int x = %d;", 1)
	w.Blank()
	w.Close()
	if opened {
		w.Close()
	}

	want := "// <auto-generated/>\n" +
		"namespace N\n" +
		"{\n" +
		"    class C\n" +
		"    {\n" +
		"        int x = 1;\n" +
		"\n" +
		"    }\n" +
		"}\n"
	if got := w.String(); got != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriterGlobalNamespace(t *testing.T) {
	var w Writer
	if w.OpenNamespace("") {
		t.Fatal("global namespace should not open a block")
	}
	w.Line("class C { }")
	if got, want := w.String(), "class C { }\n"; got != want {
		t.Errorf("got %q; want %q", got, want)
	}
}

func TestIsIdentifier(t *testing.T) {
	good := []string{"Foo", "_bar", "@class", "Amount2", "Größe", "snake_case"}
	bad := []string{"", "@", "2fast", "has space", "dash-ed", "a.b", `"q"`}
	for _, s := range good {
		if !IsIdentifier(s) {
			t.Errorf("expecting %q to be an identifier", s)
		}
	}
	for _, s := range bad {
		if IsIdentifier(s) {
			t.Errorf("expecting %q not to be an identifier", s)
		}
	}
}

func TestIsQualifiedName(t *testing.T) {
	good := []string{"N", "Shop.Models", "A.B.C"}
	bad := []string{"", ".A", "A.", "A..B", "A.2B"}
	for _, s := range good {
		if !IsQualifiedName(s) {
			t.Errorf("expecting %q to be a qualified name", s)
		}
	}
	for _, s := range bad {
		if IsQualifiedName(s) {
			t.Errorf("expecting %q not to be a qualified name", s)
		}
	}
}
