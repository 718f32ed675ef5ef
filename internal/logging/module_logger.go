package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-newsroom/pkg/interfaces"
)

const (
	rootModule       = "newsroom"
	indexModule      = "newsroom.index"
	contentModule    = "newsroom.content"
	componentsModule = "newsroom.components"
	httpModule       = "newsroom.http"
	commandsModule   = "newsroom.commands"
)

const (
	fieldArticleSlug   = "slug"
	fieldArticleLocale = "locale"
	fieldArticlePath   = "path"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// IndexLogger returns the logger namespace reserved for the content index.
func IndexLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, indexModule)
}

// ContentLogger returns the logger namespace reserved for the content renderer.
func ContentLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, contentModule)
}

// ComponentsLogger returns the logger namespace reserved for custom element rendering.
func ComponentsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, componentsModule)
}

// HTTPLogger returns the logger namespace reserved for the HTTP surface.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// CommandsLogger returns the logger namespace reserved for command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// WithArticleContext enriches the logger with the article slug, locale and
// source path. Empty values are ignored.
func WithArticleContext(logger interfaces.Logger, slug, locale, path string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(slug); trimmed != "" {
		fields[fieldArticleSlug] = trimmed
	}
	if trimmed := strings.TrimSpace(locale); trimmed != "" {
		fields[fieldArticleLocale] = trimmed
	}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldArticlePath] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}

// NoOpProvider returns a provider whose loggers drop every entry.
func NoOpProvider() interfaces.LoggerProvider {
	return noopProvider{}
}

type noopProvider struct{}

func (noopProvider) GetLogger(string) interfaces.Logger {
	return NoOp()
}
