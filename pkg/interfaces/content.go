package interfaces

import (
	"context"
	"html/template"
	"time"
)

// ReadingTime is the estimate attached to a loaded article.
type ReadingTime struct {
	Text    string        `json:"text"`
	Minutes float64       `json:"minutes"`
	Time    time.Duration `json:"time"`
	Words   int           `json:"words"`
}

// Article is the resolved document returned by the content renderer.
type Article struct {
	Frontmatter map[string]any `json:"frontmatter"`
	Metadata    ArticleRecord  `json:"metadata"`
	ReadingTime ReadingTime    `json:"readingTime"`
	Body        string         `json:"body"`
	// Locale is the locale actually served, which differs from the requested
	// one when Fallback is true.
	Locale   string `json:"locale"`
	Fallback bool   `json:"fallback"`
}

// ContentRenderer resolves a slug for a locale and renders article bodies.
type ContentRenderer interface {
	Load(ctx context.Context, slug, locale string) (*Article, error)
	Render(ctx context.Context, article *Article) (template.HTML, error)
	RenderBody(ctx context.Context, body, locale string) (template.HTML, error)
}
