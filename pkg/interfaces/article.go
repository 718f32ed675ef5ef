package interfaces

import (
	"context"
	"slices"
)

// ArticleStatus is the publication state declared in a document's metadata block.
type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "draft"
	StatusPublished ArticleStatus = "published"
	StatusArchived  ArticleStatus = "archived"
)

// IsKnown reports whether the status is one of the supported publication states.
func (s ArticleStatus) IsKnown() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	default:
		return false
	}
}

// TopicMatchMode selects how topic filters combine.
type TopicMatchMode string

const (
	// TopicMatchAny keeps records carrying at least one requested topic.
	TopicMatchAny TopicMatchMode = "any"
	// TopicMatchAll keeps records carrying every requested topic.
	TopicMatchAll TopicMatchMode = "all"
)

// ArticleRecord is the normalised summary of one document found in the content root.
// Records are produced by a scan and never mutated afterwards.
type ArticleRecord struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Slug        string            `json:"slug"`
	Date        string            `json:"date"`
	Locale      string            `json:"locale"`
	Audiences   []string          `json:"audiences"`
	Topics      []string          `json:"topics"`
	Section     string            `json:"section,omitempty"`
	HeroImage   string            `json:"heroImage,omitempty"`
	Status      ArticleStatus     `json:"status,omitempty"`
	Path        string            `json:"path"`
	Fields      map[string]any    `json:"fields,omitempty"`
	Warnings    []MetadataWarning `json:"warnings,omitempty"`
}

// HasAudience reports whether the record is tagged with the audience.
func (r ArticleRecord) HasAudience(audience string) bool {
	for _, candidate := range r.Audiences {
		if candidate == audience {
			return true
		}
	}
	return false
}

// Clone returns a copy of the record that shares no slices or maps with it.
func (r ArticleRecord) Clone() ArticleRecord {
	out := r
	out.Audiences = slices.Clone(r.Audiences)
	out.Topics = slices.Clone(r.Topics)
	out.Warnings = slices.Clone(r.Warnings)
	if r.Fields != nil {
		out.Fields = cloneValue(r.Fields).(map[string]any)
	}
	return out
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return slices.Clone(v)
	default:
		return v
	}
}

// MetadataWarning describes a metadata field that was missing or invalid and
// therefore replaced by a derived default.
type MetadataWarning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (w MetadataWarning) String() string {
	if w.Field == "" {
		return w.Message
	}
	return w.Field + ": " + w.Message
}

// ArticleQuery combines the optional filters applied to an index listing.
// Empty fields disable the matching predicate.
type ArticleQuery struct {
	Locale    string         `json:"locale,omitempty"`
	Audience  string         `json:"audience,omitempty"`
	Section   string         `json:"section,omitempty"`
	Topics    []string       `json:"topics,omitempty"`
	TopicMode TopicMatchMode `json:"topicMode,omitempty"`
	Status    ArticleStatus  `json:"status,omitempty"`
}

// ArticleIndex exposes the scanned collection of article records.
type ArticleIndex interface {
	List(ctx context.Context) ([]ArticleRecord, error)
	Query(ctx context.Context, query ArticleQuery) ([]ArticleRecord, error)
	Invalidate(ctx context.Context, tag string) (bool, error)
}
