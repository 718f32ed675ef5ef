package content

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-newsroom/internal/components"
	"github.com/goliatone/go-newsroom/internal/markdown"
	"github.com/goliatone/go-newsroom/pkg/interfaces"
)

func mdx(title, body string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte("---\ntitle: " + title + "\ndate: \"2024-05-01\"\n---\n" + body)}
}

func newTestRenderer(t *testing.T, fsys fstest.MapFS) *Renderer {
	t.Helper()
	registry, err := components.NewDefaultRegistry()
	if err != nil {
		t.Fatalf("NewDefaultRegistry: %v", err)
	}
	body := components.NewService(
		registry,
		components.NewRenderer(registry, components.NewValidator()),
		markdown.NewGoldmarkParser(interfaces.ParseOptions{}),
	)
	return NewRenderer(fsys, body, Config{})
}

func TestCandidateLocales(t *testing.T) {
	cases := []struct {
		requested string
		want      []string
	}{
		{"fr", []string{"fr", "en"}},
		{"pt-BR", []string{"pt-BR", "pt", "en"}},
		{"en", []string{"en"}},
		{"", []string{"en"}},
	}
	for _, tc := range cases {
		got := CandidateLocales(tc.requested, "en")
		if strings.Join(got, ",") != strings.Join(tc.want, ",") {
			t.Fatalf("CandidateLocales(%q) = %v, want %v", tc.requested, got, tc.want)
		}
	}
}

func TestLoadRequestedLocale(t *testing.T) {
	r := newTestRenderer(t, fstest.MapFS{
		"en/launch.mdx": mdx("Launch", "English body"),
		"fr/launch.mdx": mdx("Lancement", "Corps français"),
	})

	article, err := r.Load(context.Background(), "launch", "fr")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if article.Locale != "fr" || article.Fallback {
		t.Fatalf("expected fr without fallback, got %s %v", article.Locale, article.Fallback)
	}
	if article.Frontmatter["title"] != "Lancement" || article.Metadata.Title != "Lancement" {
		t.Fatalf("unexpected metadata %#v", article.Frontmatter)
	}
	if strings.TrimSpace(article.Body) != "Corps français" {
		t.Fatalf("unexpected body %q", article.Body)
	}
	if article.ReadingTime.Words != 2 || article.ReadingTime.Text != "1 min read" {
		t.Fatalf("unexpected reading time %+v", article.ReadingTime)
	}
}

func TestLoadFallsBackToDefaultLocale(t *testing.T) {
	r := newTestRenderer(t, fstest.MapFS{
		"en/launch.mdx": mdx("Launch", "English body"),
	})

	article, err := r.Load(context.Background(), "launch", "de")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if article.Locale != "en" || !article.Fallback {
		t.Fatalf("expected english fallback, got %s %v", article.Locale, article.Fallback)
	}
}

func TestLoadRegionalFallsBackToBaseLanguage(t *testing.T) {
	r := newTestRenderer(t, fstest.MapFS{
		"en/launch.mdx": mdx("Launch", "English"),
		"pt/launch.mdx": mdx("Lançamento", "Português"),
	})

	article, err := r.Load(context.Background(), "launch", "pt-BR")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if article.Locale != "pt" || !article.Fallback {
		t.Fatalf("expected base language, got %s %v", article.Locale, article.Fallback)
	}
}

func TestLoadUppercaseExtension(t *testing.T) {
	r := newTestRenderer(t, fstest.MapFS{
		"en/launch.MDX": mdx("Launch", "English"),
	})
	article, err := r.Load(context.Background(), "launch", "en")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if article.Metadata.Path != "en/launch.MDX" {
		t.Fatalf("unexpected path %q", article.Metadata.Path)
	}
}

func TestLoadNotFound(t *testing.T) {
	r := newTestRenderer(t, fstest.MapFS{
		"en/launch.mdx": mdx("Launch", "English"),
	})

	for _, slug := range []string{"missing", "", "../secret", "a/b", ".hidden"} {
		_, err := r.Load(context.Background(), slug, "fr")
		if !errors.Is(err, ErrArticleNotFound) {
			t.Fatalf("slug %q: expected ErrArticleNotFound, got %v", slug, err)
		}
		if !goerrors.IsCategory(err, goerrors.CategoryNotFound) {
			t.Fatalf("slug %q: expected not-found category, got %v", slug, err)
		}
	}
}

func TestLoadMalformedMetadataIsDefaulted(t *testing.T) {
	broken := &fstest.MapFile{Data: []byte("---\ntitle: [unclosed\n---\nBody text.")}

	r := newTestRenderer(t, fstest.MapFS{
		"fr/launch.mdx": broken,
		"en/launch.mdx": mdx("Launch", "English"),
	})
	article, err := r.Load(context.Background(), "launch", "fr")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if article.Locale != "fr" || article.Fallback {
		t.Fatalf("expected the requested document to resolve, got %s fallback=%v", article.Locale, article.Fallback)
	}
	if article.Metadata.Title != "launch" || len(article.Metadata.Warnings) == 0 {
		t.Fatalf("expected defaulted metadata with warnings, got %+v", article.Metadata)
	}

	r = newTestRenderer(t, fstest.MapFS{"en/broken.mdx": broken})
	article, err = r.Load(context.Background(), "broken", "en")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	html, err := r.Render(context.Background(), article)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(html), "Body text.") {
		t.Fatalf("expected body rendered, got %s", html)
	}
}

func TestRenderArticle(t *testing.T) {
	r := newTestRenderer(t, fstest.MapFS{
		"en/launch.mdx": mdx("Launch", "## Highlights\n\n<Alert title=\"Note\">Ships **today**.</Alert>\n"),
	})

	article, err := r.Load(context.Background(), "launch", "en")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	html, err := r.Render(context.Background(), article)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	got := string(html)
	if !strings.Contains(got, "Highlights</h2>") || !strings.Contains(got, "<strong>today</strong>") || !strings.Contains(got, "alert__title") {
		t.Fatalf("unexpected html %s", got)
	}

	if _, err := r.RenderBody(context.Background(), "<Unknown />", "en"); !errors.Is(err, components.ErrUnknownComponent) {
		t.Fatalf("expected unknown component error, got %v", err)
	}
	if _, err := r.Render(context.Background(), nil); err == nil {
		t.Fatalf("expected nil article error")
	}
}
