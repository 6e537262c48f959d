package syntax

import (
	"strings"
	"unicode"
)

// NormalizeName returns the given name text with all whitespace removed, so
// that "Foo . ClassToList" and "Foo.ClassToList" compare equal.
func NormalizeName(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// NormalizeExpr returns the given expression text with leading and trailing
// whitespace removed and every other run of whitespace collapsed to a single
// space. Whitespace inside string and character literals (including verbatim
// "@" strings) is left alone.
func NormalizeExpr(s string) string {
	s = strings.TrimSpace(s)
	var sb strings.Builder
	sb.Grow(len(s))
	pendingSpace := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' || c == '\'':
			if pendingSpace {
				sb.WriteByte(' ')
				pendingSpace = false
			}
			verbatim := c == '"' && i > 0 && s[i-1] == '@'
			end := literalEnd(s, i, verbatim)
			sb.WriteString(s[i:end])
			i = end - 1
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v':
			pendingSpace = true
		default:
			if pendingSpace {
				sb.WriteByte(' ')
				pendingSpace = false
			}
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// literalEnd returns the index just past the literal that starts with the
// quote at s[start]. An unterminated literal runs to the end of s.
func literalEnd(s string, start int, verbatim bool) int {
	quote := s[start]
	for i := start + 1; i < len(s); i++ {
		switch {
		case verbatim && s[i] == '"':
			if i+1 < len(s) && s[i+1] == '"' {
				i++
				continue
			}
			return i + 1
		case !verbatim && s[i] == '\\':
			i++
		case s[i] == quote:
			return i + 1
		}
	}
	return len(s)
}
