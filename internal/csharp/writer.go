// Package csharp contains the small amount of C# knowledge that the emitters
// need: an indenting text writer, string literal quoting and identifier
// checks.
package csharp

import (
	"bytes"
	"fmt"
	"strings"
)

// Indent is the text of one indentation level.
const Indent = "    "

// Header is the first line of every generated file.
const Header = "// <auto-generated/>"

// Writer accumulates generated source text. Lines are terminated with "\n"
// and indented with four spaces per level. The zero value is ready to use.
type Writer struct {
	buf   bytes.Buffer
	depth int
}

// Linef writes one indented line.
func (w *Writer) Linef(format string, args ...interface{}) {
	w.Line(fmt.Sprintf(format, args...))
}

// Line writes one indented line. An empty line gets no indentation.
func (w *Writer) Line(s string) {
	if s != "" {
		for i := 0; i < w.depth; i++ {
			w.buf.WriteString(Indent)
		}
		w.buf.WriteString(s)
	}
	w.buf.WriteByte('\n')
}

// Blank writes an empty line.
func (w *Writer) Blank() {
	w.buf.WriteByte('\n')
}

// Open writes an opening brace on its own line and indents what follows.
func (w *Writer) Open() {
	w.Line("{")
	w.depth++
}

// Close dedents and writes a closing brace on its own line.
func (w *Writer) Close() {
	if w.depth > 0 {
		w.depth--
	}
	w.Line("}")
}

// Bytes returns the text written so far.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// String returns the text written so far.
func (w *Writer) String() string {
	return w.buf.String()
}

// OpenNamespace writes a namespace declaration and opens its body. For the
// global namespace (an empty name) it writes nothing and returns false; the
// caller must only call Close for a true result.
func (w *Writer) OpenNamespace(name string) bool {
	if name == "" {
		return false
	}
	w.Linef("namespace %s", name)
	w.Open()
	return true
}

// Quote returns s as a regular C# string literal, escaping quotes,
// backslashes and control characters.
func Quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case 0:
			sb.WriteString(`\0`)
		case '\a':
			sb.WriteString(`\a`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\v':
			sb.WriteString(`\v`)
		case '\u0085', '\u2028', '\u2029':
			fmt.Fprintf(&sb, `\u%04x`, r)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&sb, `\u%04x`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
