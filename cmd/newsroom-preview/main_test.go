package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-newsroom/cmd/internal/bootstrap"
	"github.com/goliatone/go-newsroom/internal/logging"
)

func testOptions() bootstrap.Options {
	return bootstrap.Options{
		ContentDir:     "testdata/content",
		LoggerProvider: logging.NoOpProvider(),
	}
}

func TestPreviewRendersArticle(t *testing.T) {
	module, err := moduleBuilder(testOptions())
	if err != nil {
		t.Fatalf("BuildModule: %v", err)
	}

	var out bytes.Buffer
	if err := run(context.Background(), &out, module, previewOptions{Slug: "welcome", Locale: "de", RenderHTML: true}); err != nil {
		t.Fatalf("run: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"Slug: welcome",
		"Locale: en (fallback from de)",
		"Reading time: 1 min read",
		`"title": "Welcome"`,
		"<strong>world</strong>",
		`class="alert alert--info"`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output:\n%s", want, got)
		}
	}
}

func TestPreviewListsWarningsAndRawBody(t *testing.T) {
	module, err := moduleBuilder(testOptions())
	if err != nil {
		t.Fatalf("BuildModule: %v", err)
	}

	var out bytes.Buffer
	if err := run(context.Background(), &out, module, previewOptions{Slug: "untitled", Locale: "fr"}); err != nil {
		t.Fatalf("run: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "Warnings:") || !strings.Contains(got, "title:") {
		t.Fatalf("expected title warning in output:\n%s", got)
	}
	if !strings.Contains(got, "Body:\n") || !strings.Contains(got, "Bonjour.") {
		t.Fatalf("expected raw body in output:\n%s", got)
	}
}

func TestPreviewMissingArticle(t *testing.T) {
	module, err := moduleBuilder(testOptions())
	if err != nil {
		t.Fatalf("BuildModule: %v", err)
	}

	err = run(context.Background(), &bytes.Buffer{}, module, previewOptions{Slug: "missing", Locale: "en"})
	if !goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		t.Fatalf("expected not found category, got %v", err)
	}
}
