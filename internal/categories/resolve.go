package categories

import (
	"strings"

	"feedbackclassifier/internal/domain"
)

var defaultCategories = []string{"Academics", "Facilities", "Administration", "Others"}

// Default returns a fresh copy of the built-in category set.
func Default() domain.CategorySet {
	return append(domain.CategorySet(nil), defaultCategories...)
}

// Resolve parses a comma-separated category list. Blank tokens and
// duplicates are dropped; an empty result falls back to Default.
func Resolve(raw string) domain.CategorySet {
	set, _ := resolve(raw)
	return set
}

// ResolveWithSource is Resolve that also reports whether the default set
// was substituted.
func ResolveWithSource(raw string) (domain.CategorySet, bool) {
	return resolve(raw)
}

func resolve(raw string) (domain.CategorySet, bool) {
	seen := make(map[string]bool)
	var out domain.CategorySet
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true
		out = append(out, token)
	}
	if len(out) == 0 {
		return Default(), true
	}
	return out, false
}
