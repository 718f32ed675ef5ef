package gologger

import (
	"context"
	"fmt"
	"maps"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-newsroom/internal/logging"
	"github.com/goliatone/go-newsroom/pkg/interfaces"
)

// Config selects level, output format, source annotation and focus modules
// for the newsroom loggers.
type Config struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

var formats = map[string]func() glog.Option{
	"":        glog.WithLoggerTypeConsole,
	"console": glog.WithLoggerTypeConsole,
	"json":    glog.WithLoggerTypeJSON,
	"pretty":  glog.WithLoggerTypePretty,
}

var levels = map[string]string{
	"trace":   glog.Trace,
	"debug":   glog.Debug,
	"info":    glog.Info,
	"warn":    glog.Warn,
	"warning": glog.Warn,
	"error":   glog.Error,
	"fatal":   glog.Fatal,
}

// Provider hands out module loggers rooted at a single go-logger instance.
type Provider struct {
	root *glog.BaseLogger
}

var _ interfaces.LoggerProvider = (*Provider)(nil)

// NewProvider builds the root logger. Unknown formats are rejected; unknown
// levels fall back to the go-logger default.
func NewProvider(cfg Config) (*Provider, error) {
	format, ok := formats[strings.ToLower(strings.TrimSpace(cfg.Format))]
	if !ok {
		return nil, fmt.Errorf("logging: unsupported format %q", cfg.Format)
	}

	opts := []glog.Option{format(), glog.WithAddSource(cfg.AddSource)}
	if level, ok := levels[strings.ToLower(strings.TrimSpace(cfg.Level))]; ok {
		opts = append(opts, glog.WithLevel(level))
	}

	root := glog.NewLogger(opts...)
	var focus []string
	for _, name := range cfg.Focus {
		if name = strings.TrimSpace(name); name != "" {
			focus = append(focus, name)
		}
	}
	if len(focus) > 0 {
		root.Focus(focus...)
	}
	return &Provider{root: root}, nil
}

// GetLogger returns the child logger for a module; a blank name yields the root.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil || p.root == nil {
		return logging.NoOp()
	}
	if name = strings.TrimSpace(name); name == "" {
		return newEntry(p.root)
	}
	return newEntry(p.root.GetLogger(name))
}

// entry adapts a glog.Logger. Fields attached through the request context
// are folded in by WithContext because go-logger only keeps the context.
type entry struct {
	inner glog.Logger
}

var (
	_ interfaces.Logger       = (*entry)(nil)
	_ interfaces.FieldsLogger = (*entry)(nil)
)

func newEntry(inner glog.Logger) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return &entry{inner: inner}
}

func (e *entry) Trace(msg string, args ...any) { e.inner.Trace(msg, args...) }
func (e *entry) Debug(msg string, args ...any) { e.inner.Debug(msg, args...) }
func (e *entry) Info(msg string, args ...any)  { e.inner.Info(msg, args...) }
func (e *entry) Warn(msg string, args ...any)  { e.inner.Warn(msg, args...) }
func (e *entry) Error(msg string, args ...any) { e.inner.Error(msg, args...) }
func (e *entry) Fatal(msg string, args ...any) { e.inner.Fatal(msg, args...) }

func (e *entry) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return e
	}
	fl, ok := e.inner.(glog.FieldsLogger)
	if !ok {
		return e
	}
	return newEntry(fl.WithFields(maps.Clone(fields)))
}

func (e *entry) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return e
	}
	next := &entry{inner: e.inner.WithContext(ctx)}
	return next.WithFields(logging.ContextFields(ctx))
}
