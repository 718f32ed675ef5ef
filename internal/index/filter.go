package index

import (
	"strings"

	"github.com/goliatone/go-newsroom/pkg/interfaces"
)

// Filter applies the query predicates in a fixed order: audience, section,
// topics, then status. Locale is applied first when set. Absent predicates
// are skipped and the input order is preserved.
func Filter(records []interfaces.ArticleRecord, query interfaces.ArticleQuery) []interfaces.ArticleRecord {
	out := FilterByLocale(records, query.Locale)
	out = FilterByAudience(out, query.Audience)
	out = FilterBySection(out, query.Section)
	out = FilterByTopics(out, query.Topics, query.TopicMode)
	return FilterByStatus(out, query.Status)
}

// FilterByAudience keeps records tagged with audience.
func FilterByAudience(records []interfaces.ArticleRecord, audience string) []interfaces.ArticleRecord {
	audience = strings.TrimSpace(audience)
	if audience == "" {
		return clone(records)
	}
	return keep(records, func(r interfaces.ArticleRecord) bool {
		return r.HasAudience(audience)
	})
}

// FilterBySection keeps records whose section equals section.
func FilterBySection(records []interfaces.ArticleRecord, section string) []interfaces.ArticleRecord {
	section = strings.TrimSpace(section)
	if section == "" {
		return clone(records)
	}
	return keep(records, func(r interfaces.ArticleRecord) bool {
		return r.Section == section
	})
}

// FilterByTopics keeps records carrying any (or, in all mode, every) topic.
// An empty topic list leaves the collection unchanged.
func FilterByTopics(records []interfaces.ArticleRecord, topics []string, mode interfaces.TopicMatchMode) []interfaces.ArticleRecord {
	if len(topics) == 0 {
		return clone(records)
	}
	return keep(records, func(r interfaces.ArticleRecord) bool {
		have := make(map[string]struct{}, len(r.Topics))
		for _, topic := range r.Topics {
			have[topic] = struct{}{}
		}

		if mode == interfaces.TopicMatchAll {
			for _, topic := range topics {
				if _, ok := have[topic]; !ok {
					return false
				}
			}
			return true
		}

		for _, topic := range topics {
			if _, ok := have[topic]; ok {
				return true
			}
		}
		return false
	})
}

// FilterByStatus keeps records whose status equals status.
func FilterByStatus(records []interfaces.ArticleRecord, status interfaces.ArticleStatus) []interfaces.ArticleRecord {
	if status == "" {
		return clone(records)
	}
	return keep(records, func(r interfaces.ArticleRecord) bool {
		return r.Status == status
	})
}

// FilterByLocale keeps records whose locale shares the normalised language of locale.
func FilterByLocale(records []interfaces.ArticleRecord, locale string) []interfaces.ArticleRecord {
	lang := NormalizeLocale(locale)
	if lang == "" {
		return clone(records)
	}
	return keep(records, func(r interfaces.ArticleRecord) bool {
		return NormalizeLocale(r.Locale) == lang
	})
}

// NormalizeLocale lower-cases locale and keeps the language before any region
// suffix, so "pt-BR" becomes "pt".
func NormalizeLocale(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if idx := strings.IndexAny(locale, "-_"); idx >= 0 {
		locale = locale[:idx]
	}
	return locale
}

func keep(records []interfaces.ArticleRecord, pred func(interfaces.ArticleRecord) bool) []interfaces.ArticleRecord {
	out := make([]interfaces.ArticleRecord, 0, len(records))
	for _, record := range records {
		if pred(record) {
			out = append(out, record)
		}
	}
	return out
}

// clone deep-copies records so callers never share memory with the cached
// collection.
func clone(records []interfaces.ArticleRecord) []interfaces.ArticleRecord {
	out := make([]interfaces.ArticleRecord, len(records))
	for i, record := range records {
		out[i] = record.Clone()
	}
	return out
}
