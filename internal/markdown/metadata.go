package markdown

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-newsroom/pkg/interfaces"
)

const (
	keyTitle       = "title"
	keyDescription = "description"
	keySlug        = "slug"
	keyDate        = "date"
	keyAudiences   = "audiences"
	keyTopics      = "topics"
	keySection     = "section"
	keyHeroImage   = "heroImage"
	keyStatus      = "status"
)

var recognisedKeys = map[string]struct{}{
	keyTitle:       {},
	keyDescription: {},
	keySlug:        {},
	keyDate:        {},
	keyAudiences:   {},
	keyTopics:      {},
	keySection:     {},
	keyHeroImage:   {},
	keyStatus:      {},
}

// NormalizeMetadata turns a raw metadata map into a fully populated record.
// Missing or invalid fields are replaced by derived defaults and reported as
// warnings; the function never fails. Locale and Path are left for the caller.
func NormalizeMetadata(raw map[string]any, fallbackSlug string) interfaces.ArticleRecord {
	n := normalizer{raw: raw}

	record := interfaces.ArticleRecord{
		Audiences: []string{},
		Topics:    []string{},
	}

	record.Slug = n.text(keySlug)
	if record.Slug == "" {
		record.Slug = fallbackSlug
		n.warn(keySlug, "missing, derived from filename")
	} else if !slug.IsValid(record.Slug) {
		n.warn(keySlug, fmt.Sprintf("%q is not a canonical slug", record.Slug))
	}

	record.Title = n.text(keyTitle)
	if record.Title == "" {
		record.Title = record.Slug
		n.warn(keyTitle, "missing, defaulted to slug")
	}

	record.Description = n.text(keyDescription)
	record.Date = n.date()
	record.Audiences = n.tags(keyAudiences)
	record.Topics = n.tags(keyTopics)
	record.Section = n.text(keySection)
	record.HeroImage = n.text(keyHeroImage)
	record.Status = n.status()
	record.Fields = n.extra()
	record.Warnings = n.warnings

	return record
}

type normalizer struct {
	raw      map[string]any
	warnings []interfaces.MetadataWarning
}

func (n *normalizer) warn(field, message string) {
	n.warnings = append(n.warnings, interfaces.MetadataWarning{Field: field, Message: message})
}

func (n *normalizer) text(key string) string {
	value, ok := n.raw[key]
	if !ok || value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(v)
	default:
		n.warn(key, fmt.Sprintf("expected text, got %T", value))
		return ""
	}
}

func (n *normalizer) date() string {
	value, ok := n.raw[keyDate]
	if !ok || value == nil {
		n.warn(keyDate, "missing")
		return ""
	}

	var text string
	switch v := value.(type) {
	case time.Time:
		text = FormatDate(v)
	case string:
		text = strings.TrimSpace(v)
	default:
		text = fmt.Sprint(v)
	}

	if _, ok := ParseDate(text); !ok {
		n.warn(keyDate, fmt.Sprintf("%q is not a recognised date", text))
	}
	return text
}

func (n *normalizer) tags(key string) []string {
	value, ok := n.raw[key]
	if !ok || value == nil {
		return []string{}
	}

	var items []any
	switch v := value.(type) {
	case []any:
		items = v
	case []string:
		for _, s := range v {
			items = append(items, s)
		}
	default:
		n.warn(key, fmt.Sprintf("expected a list, got %T", value))
		return []string{}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			n.warn(key, fmt.Sprintf("dropped non-text entry %v", item))
			continue
		}
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (n *normalizer) status() interfaces.ArticleStatus {
	text := n.text(keyStatus)
	if text == "" {
		return ""
	}
	status := interfaces.ArticleStatus(strings.ToLower(text))
	if !status.IsKnown() {
		n.warn(keyStatus, fmt.Sprintf("%q is not one of draft, published, archived", text))
		return ""
	}
	return status
}

func (n *normalizer) extra() map[string]any {
	keys := make([]string, 0, len(n.raw))
	for key := range n.raw {
		if _, known := recognisedKeys[key]; !known {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return nil
	}
	sort.Strings(keys)

	out := make(map[string]any, len(keys))
	for _, key := range keys {
		out[key] = n.raw[key]
	}
	return out
}
