package csharp

import (
	"unicode"
	"unicode/utf8"
)

// IsIdentifier returns true if s can be used as a simple C# identifier,
// optionally prefixed with "@" to escape a keyword.
func IsIdentifier(s string) bool {
	if len(s) > 0 && s[0] == '@' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(s)
	if first != '_' && !unicode.IsLetter(first) {
		return false
	}
	for _, r := range s {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) &&
			!unicode.Is(unicode.Mn, r) && !unicode.Is(unicode.Mc, r) &&
			!unicode.Is(unicode.Pc, r) {
			return false
		}
	}
	return true
}

// IsQualifiedName returns true if s is a dotted sequence of identifiers, such
// as a namespace name.
func IsQualifiedName(s string) bool {
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == '.' {
			if !IsIdentifier(s[start:i]) {
				return false
			}
			start = i + 1
		}
	}
	return true
}
