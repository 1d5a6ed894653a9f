// Package locale validates the locale identifiers that select destination
// copies. Identifiers stay opaque for path construction; validation only
// rejects tags that no site router would recognize.
package locale

import (
	"strings"

	"golang.org/x/text/language"

	"git.home.luguber.info/inful/docpub/internal/errors"
)

// Validate checks a list of locale identifiers. With strict enabled every
// identifier must parse as a BCP 47 language tag; otherwise only empty and
// path-unsafe identifiers are rejected. The input slice is returned unchanged
// on success so callers can chain.
func Validate(locales []string, strict bool) ([]string, error) {
	if len(locales) == 0 {
		return nil, errors.ValidationFailed("locales", "at least one locale is required")
	}
	seen := make(map[string]bool, len(locales))
	for _, l := range locales {
		if l == "" {
			return nil, errors.ValidationFailed("locales", "empty locale identifier")
		}
		if strings.ContainsAny(l, "/\\") || l == "." || l == ".." {
			return nil, errors.ValidationFailed("locales", "locale is not a valid path segment: "+l)
		}
		if seen[l] {
			return nil, errors.ValidationFailed("locales", "duplicate locale: "+l)
		}
		seen[l] = true
		if strict {
			if _, err := language.Parse(l); err != nil {
				return nil, errors.ValidationFailed("locales", "not a valid BCP 47 tag: "+l)
			}
		}
	}
	return locales, nil
}

// Canonical returns the canonical BCP 47 form of a locale identifier, or the
// identifier unchanged when it does not parse. Used for display only; path
// construction always uses the raw identifier.
func Canonical(l string) string {
	tag, err := language.Parse(l)
	if err != nil {
		return l
	}
	return tag.String()
}
