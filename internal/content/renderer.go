// Package content resolves article slugs to documents and renders their bodies.
package content

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"

	"github.com/goliatone/go-newsroom/internal/components"
	"github.com/goliatone/go-newsroom/internal/index"
	"github.com/goliatone/go-newsroom/internal/logging"
	"github.com/goliatone/go-newsroom/internal/markdown"
	"github.com/goliatone/go-newsroom/pkg/interfaces"
)

// DefaultLocale is the last locale tried when resolving an article.
const DefaultLocale = "en"

// BodyProcessor renders a document body with its custom elements.
type BodyProcessor interface {
	Process(ctx context.Context, body string, opts components.ProcessOptions) (template.HTML, error)
}

// Config controls locale fallback, reading speed, and body rendering.
type Config struct {
	DefaultLocale  string
	WordsPerMinute int
	// Markdown overrides the body processor's default parse options when set.
	Markdown *interfaces.ParseOptions
}

// Renderer implements interfaces.ContentRenderer over a content root.
type Renderer struct {
	fs     fs.FS
	body   BodyProcessor
	cfg    Config
	logger interfaces.Logger
}

// RendererOption customises renderer behaviour.
type RendererOption func(*Renderer)

// WithLogger attaches a logger used for resolution diagnostics.
func WithLogger(logger interfaces.Logger) RendererOption {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRenderer constructs a renderer over fsys, whose root is the content root.
func NewRenderer(fsys fs.FS, body BodyProcessor, cfg Config, opts ...RendererOption) *Renderer {
	if strings.TrimSpace(cfg.DefaultLocale) == "" {
		cfg.DefaultLocale = DefaultLocale
	}
	if cfg.WordsPerMinute <= 0 {
		cfg.WordsPerMinute = markdown.DefaultWordsPerMinute
	}
	r := &Renderer{
		fs:     fsys,
		body:   body,
		cfg:    cfg,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load resolves slug for locale. The first candidate locale holding a
// readable document wins. A broken metadata block does not fail the document:
// its fields are defaulted and reported in Metadata.Warnings, as in the index.
func (r *Renderer) Load(ctx context.Context, slug, locale string) (*interfaces.Article, error) {
	if !ValidSlug(slug) {
		return nil, notFoundError(slug, locale)
	}

	for i, candidate := range CandidateLocales(locale, r.cfg.DefaultLocale) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !ValidSlug(candidate) {
			continue
		}

		filePath, source, err := r.read(candidate, slug)
		logger := logging.WithArticleContext(r.logger, slug, candidate, filePath)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				logging.WithError(logger, err).Warn("content.load.read_failed")
			}
			continue
		}

		doc, err := markdown.BuildDocument(filePath, candidate, slug, source)
		if err != nil {
			logging.WithError(logger, err).Warn("content.load.metadata_invalid")
		}
		for _, warning := range doc.Record.Warnings {
			logging.WithFields(logger, map[string]any{
				"field":   warning.Field,
				"warning": warning.Message,
			}).Debug("content.load.metadata_defaulted")
		}

		article := &interfaces.Article{
			Frontmatter: doc.Frontmatter,
			Metadata:    doc.Record,
			ReadingTime: markdown.EstimateReadingTime(string(doc.Body), r.cfg.WordsPerMinute),
			Body:        string(doc.Body),
			Locale:      candidate,
			Fallback:    i > 0,
		}
		if article.Fallback {
			logging.WithFields(logger, map[string]any{"requested": locale}).Debug("content.load.fallback")
		}
		return article, nil
	}

	return nil, notFoundError(slug, locale)
}

// Render renders the body of a loaded article.
func (r *Renderer) Render(ctx context.Context, article *interfaces.Article) (template.HTML, error) {
	if article == nil {
		return "", fmt.Errorf("content: article is nil")
	}
	return r.RenderBody(ctx, article.Body, article.Locale)
}

// RenderBody renders markdown interleaved with custom elements.
func (r *Renderer) RenderBody(ctx context.Context, body, locale string) (template.HTML, error) {
	if r.body == nil {
		return "", fmt.Errorf("content: body processor not configured")
	}
	html, err := r.body.Process(ctx, body, components.ProcessOptions{
		Locale:   locale,
		Markdown: r.cfg.Markdown,
	})
	if err != nil {
		logging.WithError(logging.WithFields(r.logger, map[string]any{"locale": locale}), err).
			Error("content.render.failed")
		return "", err
	}
	return html, nil
}

// read returns the document for slug in a locale directory. An exact
// "<slug>.mdx" match is tried first, then any case variant of the extension.
func (r *Renderer) read(locale, slug string) (string, []byte, error) {
	if r.fs == nil {
		return "", nil, fs.ErrNotExist
	}
	filePath := path.Join(locale, slug+index.DocumentExtension)
	source, err := fs.ReadFile(r.fs, filePath)
	if err == nil || !errors.Is(err, fs.ErrNotExist) {
		return filePath, source, err
	}

	entries, dirErr := fs.ReadDir(r.fs, locale)
	if dirErr != nil {
		return filePath, nil, err
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.Type().IsRegular() && index.IsDocument(name) && index.SlugFromFilename(name) == slug {
			alt := path.Join(locale, name)
			source, err := fs.ReadFile(r.fs, alt)
			return alt, source, err
		}
	}
	return filePath, nil, err
}

var _ interfaces.ContentRenderer = (*Renderer)(nil)
