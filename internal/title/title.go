// Package title derives human-readable display titles from path segment names.
// Titles are purely structural: they come from directory and file-stem names,
// never from file content.
package title

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// overrides maps well-known generator directory names to fixed display titles.
// Exact, case-sensitive matches take precedence over the general formatting rule.
var overrides = map[string]string{
	"index":        "Overview",
	"src":          "Source",
	"types":        "Types",
	"core":         "Core",
	"interfaces":   "Interfaces",
	"classes":      "Classes",
	"type-aliases": "Type Aliases",
}

// Format converts a raw segment name to a display title. It is pure and total:
// every input maps to a string, the empty string included.
func Format(name string) string {
	if t, ok := overrides[name]; ok {
		return t
	}

	var b strings.Builder
	b.Grow(len(name) + 4)
	for i, r := range name {
		switch {
		case r == '-' || r == '_':
			b.WriteByte(' ')
		case i > 0 && unicode.IsUpper(r):
			b.WriteByte(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}

	words := strings.Fields(b.String())
	for i, word := range words {
		first, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(first)) + word[size:]
	}
	return strings.Join(words, " ")
}
