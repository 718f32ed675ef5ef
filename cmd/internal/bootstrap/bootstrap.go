package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-newsroom"
	"github.com/goliatone/go-newsroom/pkg/interfaces"
)

// Options captures the flag values shared by the newsroom binaries.
type Options struct {
	ContentDir      string
	Environment     string
	DefaultLocale   string
	Locales         []string
	ReadingWPM      int
	Addr            string
	RevalidateToken string
	// RevalidateTimeout bounds POST /api/revalidate. Zero keeps the command default.
	RevalidateTimeout time.Duration
	LogProvider       string
	LogLevel          string
	LogFormat         string
	LoggerProvider    interfaces.LoggerProvider
}

// BuildModule applies opts over the default configuration and constructs the module.
func BuildModule(opts Options) (*newsroom.Module, error) {
	cfg := newsroom.DefaultConfig()

	if dir := strings.TrimSpace(opts.ContentDir); dir != "" {
		cfg.ContentRoot = dir
	}
	if env := strings.TrimSpace(opts.Environment); env != "" {
		cfg.Environment = env
	}
	if locale := strings.TrimSpace(opts.DefaultLocale); locale != "" {
		cfg.DefaultLocale = locale
	}
	if len(opts.Locales) > 0 {
		cfg.Locales = cloneStrings(opts.Locales)
	} else {
		cfg.Locales = []string{cfg.DefaultLocale}
	}
	if opts.ReadingWPM > 0 {
		cfg.ReadingWPM = opts.ReadingWPM
	}
	if addr := strings.TrimSpace(opts.Addr); addr != "" {
		cfg.HTTP.Addr = addr
	}
	cfg.HTTP.RevalidateToken = strings.TrimSpace(opts.RevalidateToken)
	cfg.Index.RevalidateTimeout = opts.RevalidateTimeout
	if provider := strings.TrimSpace(opts.LogProvider); provider != "" {
		cfg.Logging.Provider = provider
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Logging.Level = level
	}
	if format := strings.TrimSpace(opts.LogFormat); format != "" {
		cfg.Logging.Format = format
	}

	moduleOpts := []newsroom.Option{}
	if opts.LoggerProvider != nil {
		moduleOpts = append(moduleOpts, newsroom.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := newsroom.New(cfg, moduleOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise newsroom module: %w", err)
	}
	return module, nil
}

// SplitLocales parses a comma separated locale list into a trimmed slice.
func SplitLocales(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	locales := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			locales = append(locales, trimmed)
		}
	}
	return locales
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
