package components

import (
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/goliatone/go-newsroom/internal/components/parser"
	"github.com/goliatone/go-newsroom/internal/logging"
	"github.com/goliatone/go-newsroom/pkg/interfaces"
)

// ProcessOptions carries per-call rendering inputs.
type ProcessOptions struct {
	Locale    string
	Cache     interfaces.CacheProvider
	Sanitizer interfaces.ComponentSanitizer
	Markdown  *interfaces.ParseOptions
}

// Service renders document bodies: components are swapped for placeholders,
// the remaining markdown is rendered, then each component is rendered and
// substituted back.
type Service struct {
	registry         interfaces.ComponentRegistry
	renderer         interfaces.ComponentRenderer
	parser           interfaces.ComponentParser
	markdown         interfaces.MarkdownParser
	defaultSanitizer interfaces.ComponentSanitizer
	defaultCache     interfaces.CacheProvider
	logger           interfaces.Logger
}

// ServiceOption customises service behaviour.
type ServiceOption func(*Service)

// WithDefaultSanitizer overrides the fallback sanitizer used when none is supplied at call time.
func WithDefaultSanitizer(sanitizer interfaces.ComponentSanitizer) ServiceOption {
	return func(s *Service) {
		if sanitizer != nil {
			s.defaultSanitizer = sanitizer
		}
	}
}

// WithDefaultCache overrides the fallback cache provider used when none is supplied at call time.
func WithDefaultCache(cache interfaces.CacheProvider) ServiceOption {
	return func(s *Service) {
		if cache != nil {
			s.defaultCache = cache
		}
	}
}

// WithLogger attaches a logger used for structured diagnostics.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService constructs a body renderer from a registry, a component renderer
// and a markdown parser.
func NewService(registry interfaces.ComponentRegistry, renderer interfaces.ComponentRenderer, markdown interfaces.MarkdownParser, opts ...ServiceOption) *Service {
	service := &Service{
		registry:         registry,
		renderer:         renderer,
		parser:           parser.NewMDXParser(),
		markdown:         markdown,
		defaultSanitizer: NewSanitizer(),
		logger:           logging.NoOp(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Registry exposes the underlying component registry.
func (s *Service) Registry() interfaces.ComponentRegistry {
	return s.registry
}

// Process renders body into HTML.
func (s *Service) Process(ctx context.Context, body string, opts ProcessOptions) (template.HTML, error) {
	if s.renderer == nil || s.parser == nil || s.markdown == nil {
		return "", fmt.Errorf("components: service not initialised")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	logger := logging.WithFields(s.baseLogger(ctx), map[string]any{
		"operation": "components.process",
		"locale":    opts.Locale,
	})

	componentCtx := interfaces.ComponentContext{
		Context:   ctx,
		Locale:    opts.Locale,
		Cache:     opts.Cache,
		Sanitizer: opts.Sanitizer,
	}
	if componentCtx.Sanitizer == nil {
		componentCtx.Sanitizer = s.defaultSanitizer
	}
	if componentCtx.Cache == nil {
		componentCtx.Cache = s.defaultCache
	}

	transformed, parsed, err := s.parser.Extract(body)
	if err != nil {
		logging.WithError(logger, err).Error("components.service.parse_failed")
		return "", err
	}

	page, err := s.renderMarkdown(transformed, opts.Markdown, componentCtx.Sanitizer)
	if err != nil {
		logging.WithError(logger, err).Error("components.service.markdown_failed")
		return "", err
	}
	if len(parsed) == 0 {
		return template.HTML(page), nil
	}

	rendered := make([]string, len(parsed))
	for idx, component := range parsed {
		var inner template.HTML
		if strings.TrimSpace(component.Inner) != "" {
			innerHTML, err := s.renderMarkdown(component.Inner, opts.Markdown, componentCtx.Sanitizer)
			if err != nil {
				return "", err
			}
			inner = template.HTML(substitute(innerHTML, rendered[:idx]))
		}

		start := time.Now()
		output, err := s.renderer.Render(componentCtx, component.Name, component.Params, inner)
		entryFields := map[string]any{
			"component":   component.Name,
			"index":       idx,
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if err != nil {
			entryFields["error"] = err
			logging.WithFields(logger, entryFields).Error("components.service.render_failed")
			return "", err
		}
		logging.WithFields(logger, entryFields).Debug("components.service.render_succeeded")
		rendered[idx] = string(output)
	}

	logging.WithFields(logger, map[string]any{
		"components": len(parsed),
	}).Debug("components.service.process_completed")
	return template.HTML(substitute(page, rendered)), nil
}

// Render executes a single component and returns the HTML output.
func (s *Service) Render(ctx interfaces.ComponentContext, name string, params map[string]any, inner template.HTML) (template.HTML, error) {
	if s.renderer == nil {
		return "", fmt.Errorf("components: service not initialised")
	}
	if ctx.Context == nil {
		ctx.Context = context.Background()
	}
	if ctx.Sanitizer == nil {
		ctx.Sanitizer = s.defaultSanitizer
	}
	if ctx.Cache == nil {
		ctx.Cache = s.defaultCache
	}
	return s.renderer.Render(ctx, name, params, inner)
}

// renderMarkdown converts source to HTML. In safe mode raw HTML is rendered
// and the page must then pass the sanitizer, so wrapper elements and the
// placeholders inside them survive while scripts and handlers are rejected.
func (s *Service) renderMarkdown(source string, opts *interfaces.ParseOptions, sanitizer interfaces.ComponentSanitizer) (string, error) {
	if opts == nil {
		out, err := s.markdown.Parse([]byte(source))
		if err != nil {
			return "", err
		}
		return string(out), nil
	}

	parseOpts := *opts
	vetted := parseOpts.SafeMode && sanitizer != nil
	if vetted {
		parseOpts.SafeMode = false
	}
	out, err := s.markdown.ParseWithOptions([]byte(source), parseOpts)
	if err != nil {
		return "", err
	}
	if !vetted {
		return string(out), nil
	}
	return sanitizer.Sanitize(string(out))
}

// substitute replaces placeholders with rendered output. A placeholder that
// markdown wrapped in its own paragraph is replaced together with the wrapper.
func substitute(html string, rendered []string) string {
	if len(rendered) == 0 {
		return html
	}
	pairs := make([]string, 0, len(rendered)*4)
	for idx, output := range rendered {
		marker := parser.Placeholder(idx)
		pairs = append(pairs, "<p>"+marker+"</p>", output, marker, output)
	}
	return strings.NewReplacer(pairs...).Replace(html)
}

func (s *Service) baseLogger(ctx context.Context) interfaces.Logger {
	logger := s.logger
	if logger == nil {
		logger = logging.NoOp()
	}
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	return logger
}
