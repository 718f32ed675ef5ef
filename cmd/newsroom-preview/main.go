package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goliatone/go-newsroom"
	"github.com/goliatone/go-newsroom/cmd/internal/bootstrap"
	"github.com/goliatone/go-newsroom/internal/logging"
)

var moduleBuilder = bootstrap.BuildModule

type previewOptions struct {
	Slug       string
	Locale     string
	RenderHTML bool
}

func main() {
	var (
		contentDir    = flag.String("content-dir", "content", "Path to the content root")
		defaultLocale = flag.String("default-locale", "en", "Default locale for fallback documents")
		slug          = flag.String("slug", "", "Slug of the article to preview")
		locale        = flag.String("locale", "en", "Requested locale")
		readingWPM    = flag.Int("reading-wpm", 0, "Words per minute used for reading time estimates")
		renderHTML    = flag.Bool("render-html", true, "Render the body into HTML as part of the preview")
	)
	flag.Parse()

	if *slug == "" {
		log.Fatalf("--slug is required")
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir:     *contentDir,
		DefaultLocale:  *defaultLocale,
		ReadingWPM:     *readingWPM,
		LoggerProvider: logging.NoOpProvider(),
	})
	if err != nil {
		log.Fatalf("bootstrap module: %v", err)
	}

	opts := previewOptions{Slug: *slug, Locale: *locale, RenderHTML: *renderHTML}
	if err := run(context.Background(), os.Stdout, module, opts); err != nil {
		log.Fatalf("preview: %v", err)
	}
}

func run(ctx context.Context, w io.Writer, module *newsroom.Module, opts previewOptions) error {
	article, err := module.Content().Load(ctx, opts.Slug, opts.Locale)
	if err != nil {
		return fmt.Errorf("load article: %w", err)
	}

	fmt.Fprintf(w, "Slug: %s\nLocale: %s", article.Metadata.Slug, article.Locale)
	if article.Fallback {
		fmt.Fprintf(w, " (fallback from %s)", opts.Locale)
	}
	fmt.Fprintf(w, "\nPath: %s\nReading time: %s (%d words)\n\n", article.Metadata.Path, article.ReadingTime.Text, article.ReadingTime.Words)

	if len(article.Frontmatter) > 0 {
		frontmatter, err := json.MarshalIndent(article.Frontmatter, "", "  ")
		if err == nil {
			fmt.Fprintf(w, "Frontmatter:\n%s\n\n", frontmatter)
		}
	}

	if len(article.Metadata.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warning := range article.Metadata.Warnings {
			fmt.Fprintf(w, "  - %s\n", warning)
		}
		fmt.Fprintln(w)
	}

	if !opts.RenderHTML {
		fmt.Fprintf(w, "Body:\n%s\n", article.Body)
		return nil
	}

	html, err := module.Content().Render(ctx, article)
	if err != nil {
		return fmt.Errorf("render article: %w", err)
	}
	fmt.Fprintf(w, "Rendered HTML:\n%s\n", html)
	return nil
}
