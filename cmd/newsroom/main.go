package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-newsroom/cmd/internal/bootstrap"
	"github.com/goliatone/go-newsroom/internal/logging"
)

func main() {
	var (
		contentDir        = flag.String("content-dir", "content", "Path to the content root (<root>/<locale>/<slug>.mdx)")
		environment       = flag.String("env", "development", "Runtime environment: development rescans on every request, production caches the index")
		defaultLocale     = flag.String("default-locale", "en", "Locale used when a document is missing in the requested locale")
		locales           = flag.String("locales", "", "Comma separated list of supported locales (defaults to the default locale)")
		readingWPM        = flag.Int("reading-wpm", 0, "Words per minute used for reading time estimates")
		addr              = flag.String("addr", ":3000", "HTTP listen address")
		revalidateToken   = flag.String("revalidate-token", os.Getenv("NEWSROOM_REVALIDATE_TOKEN"), "Shared secret required by POST /api/revalidate")
		revalidateTimeout = flag.Duration("revalidate-timeout", 0, "Upper bound for one index revalidation (0 keeps the default)")
		logLevel          = flag.String("log-level", "info", "Minimum log level")
		logFormat         = flag.String("log-format", "console", "go-logger output format: json, console or pretty")
	)
	flag.Parse()

	module, err := bootstrap.BuildModule(bootstrap.Options{
		ContentDir:        *contentDir,
		Environment:       *environment,
		DefaultLocale:     *defaultLocale,
		Locales:           bootstrap.SplitLocales(*locales),
		ReadingWPM:        *readingWPM,
		Addr:              *addr,
		RevalidateToken:   *revalidateToken,
		RevalidateTimeout: *revalidateTimeout,
		LogLevel:          *logLevel,
		LogFormat:         *logFormat,
	})
	if err != nil {
		log.Fatalf("bootstrap module: %v", err)
	}
	logger := logging.ModuleLogger(module.LoggerProvider(), "newsroom.cmd")

	server, err := module.HTTPServer()
	if err != nil {
		logging.WithError(logger, err).Fatal("cmd.http.build_failed")
		return
	}

	go func() {
		if err := server.Listen(module.Config().HTTP.Addr); err != nil {
			logging.WithError(logger, err).Error("cmd.http.listen_failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	sig := <-quit
	logging.WithFields(logger, map[string]any{"signal": sig.String()}).Info("cmd.shutdown.started")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.WithError(logger, err).Warn("cmd.shutdown.forced")
		return
	}
	logger.Info("cmd.shutdown.completed")
}
