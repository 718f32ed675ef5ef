// Package httpapi exposes the news index and article renderer over HTTP.
package httpapi

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	revalidatecmd "github.com/goliatone/go-newsroom/internal/commands/revalidate"
	"github.com/goliatone/go-newsroom/internal/logging"
	"github.com/goliatone/go-newsroom/internal/runtimeconfig"
	"github.com/goliatone/go-newsroom/pkg/interfaces"
)

// RevalidateHeader carries the shared secret required by the revalidation hook.
const RevalidateHeader = "X-Revalidate-Token"

const englishLocale = "en"

// Revalidator dispatches index revalidation commands.
type Revalidator interface {
	Execute(ctx context.Context, msg revalidatecmd.RevalidateIndexCommand) error
}

// Config captures the routing settings of the HTTP surface.
type Config struct {
	AppName         string
	DefaultLocale   string
	Sections        runtimeconfig.Sections
	RevalidateToken string
}

// Option customises the server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Server wires the fiber application to the index, the article renderer and
// the revalidation command.
type Server struct {
	app        *fiber.App
	index      interfaces.ArticleIndex
	articles   interfaces.ContentRenderer
	revalidate Revalidator
	cfg        Config
	logger     interfaces.Logger
}

// New builds the fiber application and registers every route.
func New(index interfaces.ArticleIndex, articles interfaces.ContentRenderer, revalidate Revalidator, cfg Config, opts ...Option) (*Server, error) {
	if index == nil {
		return nil, errors.New("httpapi: index is nil")
	}
	if articles == nil {
		return nil, errors.New("httpapi: content renderer is nil")
	}
	if strings.TrimSpace(cfg.DefaultLocale) == "" {
		cfg.DefaultLocale = englishLocale
	}
	if strings.TrimSpace(cfg.AppName) == "" {
		cfg.AppName = "go-newsroom"
	}

	engine, err := newViewEngine()
	if err != nil {
		return nil, err
	}

	s := &Server{
		index:      index,
		articles:   articles,
		revalidate: revalidate,
		cfg:        cfg,
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	s.app = fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		DisableStartupMessage: true,
		PassLocalsToViews:     true,
		Views:                 engine,
		ViewsLayout:           layoutView,
		ErrorHandler:          s.handleError,
	})
	s.routes()
	return s, nil
}

// App exposes the underlying fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves HTTP on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	logging.WithFields(s.logger, map[string]any{"addr": addr}).Info("http.server.listening")
	return s.app.Listen(addr)
}

// Shutdown stops the listener, waiting for in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) routes() {
	s.app.Use(s.requestLogger)

	s.app.Get("/", s.home)
	s.app.Get("/healthz", s.health)

	api := s.app.Group("/api")
	api.Get("/news", s.apiListNews)
	api.Get("/news/:locale/:slug", s.apiArticle)
	api.Post("/revalidate", s.apiRevalidate)

	s.app.Get("/:locale/news", s.listNews)
	s.app.Get("/:locale/news/:slug", s.sectionOrArticle)
}
