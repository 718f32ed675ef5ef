// Package newsroom indexes and renders a localized corpus of MDX news articles.
package newsroom

import (
	"io/fs"
	"os"

	"github.com/goliatone/go-newsroom/internal/cache"
	"github.com/goliatone/go-newsroom/internal/commands"
	revalidatecmd "github.com/goliatone/go-newsroom/internal/commands/revalidate"
	"github.com/goliatone/go-newsroom/internal/components"
	"github.com/goliatone/go-newsroom/internal/content"
	"github.com/goliatone/go-newsroom/internal/httpapi"
	"github.com/goliatone/go-newsroom/internal/index"
	"github.com/goliatone/go-newsroom/internal/logging"
	"github.com/goliatone/go-newsroom/internal/logging/gologger"
	"github.com/goliatone/go-newsroom/internal/markdown"
	"github.com/goliatone/go-newsroom/pkg/interfaces"
)

// ArticleRecord exports the index record.
type ArticleRecord = interfaces.ArticleRecord

// ArticleQuery exports the index filter set.
type ArticleQuery = interfaces.ArticleQuery

// Article exports the resolved document returned by the content renderer.
type Article = interfaces.Article

// CommandRegistry receives command handlers built by New.
type CommandRegistry = revalidatecmd.CommandRegistry

// Option overrides a dependency normally derived from Config.
type Option func(*options)

type options struct {
	fs       fs.FS
	provider interfaces.LoggerProvider
	store    interfaces.CacheProvider
	registry CommandRegistry
}

// WithFS reads documents from fsys instead of Config.ContentRoot.
func WithFS(fsys fs.FS) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithLoggerProvider replaces the provider built from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(o *options) {
		o.provider = provider
	}
}

// WithCache replaces the in-memory cache shared by the index and component renderer.
func WithCache(store interfaces.CacheProvider) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithCommandRegistry registers command handlers with reg.
func WithCommandRegistry(reg CommandRegistry) Option {
	return func(o *options) {
		o.registry = reg
	}
}

// Module is the top level runtime façade.
type Module struct {
	cfg        Config
	provider interfaces.LoggerProvider
	index    *index.Service
	content  *content.Renderer
	commands *revalidatecmd.HandlerSet
}

// New validates cfg and wires the index, the component pipeline, the content
// renderer, and the revalidation command.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	provider := o.provider
	if provider == nil {
		built, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
		if err != nil {
			return nil, err
		}
		provider = built
	}

	fsys := o.fs
	if fsys == nil {
		fsys = os.DirFS(cfg.ContentRoot)
	}

	store := o.store
	if store == nil {
		store = cache.NewMemory(cache.DefaultCleanupInterval)
	}

	idx := index.NewService(fsys, index.Config{
		Production: cfg.IsProduction(),
		Tag:        cfg.Index.Tag,
		TTL:        cfg.Cache.DefaultTTL,
	}, index.WithLogger(logging.IndexLogger(provider)), index.WithCache(store))

	registry, err := components.NewDefaultRegistry()
	if err != nil {
		return nil, err
	}
	sanitizer := components.NewSanitizer()
	rendererOpts := []components.RendererOption{
		components.WithRendererSanitizer(sanitizer),
	}
	serviceOpts := []components.ServiceOption{
		components.WithLogger(logging.ComponentsLogger(provider)),
		components.WithDefaultSanitizer(sanitizer),
	}
	if cfg.Cache.Components {
		rendererOpts = append(rendererOpts, components.WithRendererCache(store))
		serviceOpts = append(serviceOpts, components.WithDefaultCache(store))
	}
	body := components.NewService(
		registry,
		components.NewRenderer(registry, components.NewValidator(), rendererOpts...),
		markdown.NewGoldmarkParser(cfg.Markdown),
		serviceOpts...,
	)

	parseOpts := cfg.Markdown
	articles := content.NewRenderer(fsys, body, content.Config{
		DefaultLocale:  cfg.DefaultLocale,
		WordsPerMinute: cfg.ReadingWPM,
		Markdown:       &parseOpts,
	}, content.WithLogger(logging.ContentLogger(provider)))

	var revalidateOpts []revalidatecmd.Option
	if cfg.Index.RevalidateTimeout > 0 {
		revalidateOpts = append(revalidateOpts, revalidatecmd.WithRevalidateHandlerOptions(
			commands.WithTimeout[revalidatecmd.RevalidateIndexCommand](cfg.Index.RevalidateTimeout),
		))
	}
	handlers, err := revalidatecmd.RegisterRevalidateCommands(o.registry, idx, provider, revalidateOpts...)
	if err != nil {
		return nil, err
	}

	return &Module{
		cfg:      cfg,
		provider: provider,
		index:    idx,
		content:  articles,
		commands: handlers,
	}, nil
}

// Config returns the validated configuration.
func (m *Module) Config() Config {
	return m.cfg
}

// Index returns the content index.
func (m *Module) Index() interfaces.ArticleIndex {
	return m.index
}

// Content returns the article renderer.
func (m *Module) Content() interfaces.ContentRenderer {
	return m.content
}

// Revalidate returns the index revalidation handler.
func (m *Module) Revalidate() *revalidatecmd.RevalidateIndexHandler {
	return m.commands.RevalidateIndex
}

// LoggerProvider exposes the provider used for module loggers.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.provider
}

// HTTPServer builds the fiber application serving listings, articles, and the JSON API.
func (m *Module) HTTPServer(opts ...httpapi.Option) (*httpapi.Server, error) {
	serverOpts := append([]httpapi.Option{
		httpapi.WithLogger(logging.HTTPLogger(m.provider)),
	}, opts...)
	return httpapi.New(m.index, m.content, m.commands.RevalidateIndex, httpapi.Config{
		DefaultLocale:   m.cfg.DefaultLocale,
		Sections:        m.cfg.Sections,
		RevalidateToken: m.cfg.HTTP.RevalidateToken,
	}, serverOpts...)
}
