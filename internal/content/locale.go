package content

import (
	"strings"

	"github.com/goliatone/go-newsroom/internal/index"
)

// CandidateLocales lists the locale directories tried for a request, in
// order: the requested locale, its base language when the request is
// regional, then the default locale. Duplicates are dropped.
func CandidateLocales(requested, defaultLocale string) []string {
	var out []string
	seen := map[string]struct{}{}
	add := func(locale string) {
		locale = strings.TrimSpace(locale)
		if locale == "" {
			return
		}
		if _, ok := seen[locale]; ok {
			return
		}
		seen[locale] = struct{}{}
		out = append(out, locale)
	}

	add(requested)
	add(index.NormalizeLocale(requested))
	add(defaultLocale)
	return out
}

// ValidSlug reports whether slug can name a document file inside a locale directory.
func ValidSlug(slug string) bool {
	if strings.TrimSpace(slug) != slug || slug == "" {
		return false
	}
	if strings.HasPrefix(slug, ".") || strings.ContainsAny(slug, `/\`) || strings.Contains(slug, "..") {
		return false
	}
	return true
}
