package newsroom_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-newsroom"
	revalidatecmd "github.com/goliatone/go-newsroom/internal/commands/revalidate"
	"github.com/goliatone/go-newsroom/internal/components"
	"github.com/goliatone/go-newsroom/internal/logging"
	"github.com/goliatone/go-newsroom/pkg/interfaces"
)

// recorder collects every entry written through its loggers as
// "<level> <message> key=value ..." lines.
type recorder struct {
	mu    sync.Mutex
	lines []string
}

func (r *recorder) GetLogger(name string) interfaces.Logger {
	return &recordedLogger{rec: r, fields: map[string]any{"logger": name}}
}

func (r *recorder) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return strings.Join(r.lines, "\n")
}

type recordedLogger struct {
	rec    *recorder
	fields map[string]any
}

func (l *recordedLogger) write(level, msg string) {
	keys := make([]string, 0, len(l.fields))
	for k := range l.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(level + " " + msg)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, l.fields[k])
	}
	l.rec.mu.Lock()
	l.rec.lines = append(l.rec.lines, b.String())
	l.rec.mu.Unlock()
}

func (l *recordedLogger) Trace(msg string, _ ...any) { l.write("TRACE", msg) }
func (l *recordedLogger) Debug(msg string, _ ...any) { l.write("DEBUG", msg) }
func (l *recordedLogger) Info(msg string, _ ...any)  { l.write("INFO", msg) }
func (l *recordedLogger) Warn(msg string, _ ...any)  { l.write("WARN", msg) }
func (l *recordedLogger) Error(msg string, _ ...any) { l.write("ERROR", msg) }
func (l *recordedLogger) Fatal(msg string, _ ...any) { l.write("FATAL", msg) }

func (l *recordedLogger) WithFields(fields map[string]any) interfaces.Logger {
	merged := make(map[string]any, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &recordedLogger{rec: l.rec, fields: merged}
}

func (l *recordedLogger) WithContext(ctx context.Context) interfaces.Logger {
	return l.WithFields(logging.ContextFields(ctx))
}

type recordingRegistry struct {
	handlers []any
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"en/launch.mdx": &fstest.MapFile{Data: []byte("---\ntitle: Launch\ndate: \"2024-05-01\"\nstatus: published\naudiences: [developers]\n---\n" +
			"Mainnet is live.\n\n<StatCards stats={[{stat: 4000, description: 'TPS'}]} />\n")},
		"en/untitled.mdx": &fstest.MapFile{Data: []byte("Body without metadata.\n")},
		"en/embed.mdx": &fstest.MapFile{Data: []byte("---\ntitle: Embed\ndate: \"2024-04-01\"\n---\n" +
			"See <a href=\"https://x.org\">the thread</a>.\n\n<div data-theme=\"dark\">\n  <Tweet id=\"12345\" />\n</div>\n")},
		"en/unsafe.mdx": &fstest.MapFile{Data: []byte("---\ntitle: Unsafe\ndate: \"2024-03-01\"\n---\n" +
			"<div onclick=\"steal()\">x</div>\n")},
	}
}

func newModule(t *testing.T, mutate func(*newsroom.Config), opts ...newsroom.Option) (*newsroom.Module, *recorder) {
	t.Helper()
	cfg := newsroom.DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	logs := &recorder{}
	opts = append([]newsroom.Option{
		newsroom.WithFS(testFS()),
		newsroom.WithLoggerProvider(logs),
	}, opts...)
	module, err := newsroom.New(cfg, opts...)
	if err != nil {
		t.Fatalf("newsroom.New: %v", err)
	}
	return module, logs
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := newsroom.DefaultConfig()
	cfg.ContentRoot = ""
	if _, err := newsroom.New(cfg); !errors.Is(err, newsroom.ErrContentRootRequired) {
		t.Fatalf("expected ErrContentRootRequired, got %v", err)
	}
}

func TestModuleIndexDefaultsMissingMetadata(t *testing.T) {
	module, logs := newModule(t, nil)

	records, err := module.Index().List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}
	if records[0].Slug != "launch" {
		t.Fatalf("expected newest record first, got %q", records[0].Slug)
	}
	untitled := records[3]
	if untitled.Title != "untitled" || len(untitled.Warnings) == 0 {
		t.Fatalf("expected defaulted record with warnings, got %+v", untitled)
	}
	if !strings.Contains(logs.String(), "index.scan.metadata_defaulted") {
		t.Fatalf("expected defaulted metadata to be logged, logs: %s", logs.String())
	}
}

func TestModuleRendersArticleWithComponents(t *testing.T) {
	module, _ := newModule(t, nil)
	ctx := context.Background()

	article, err := module.Content().Load(ctx, "launch", "es")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !article.Fallback || article.Locale != "en" {
		t.Fatalf("expected fallback to en, got %+v", article)
	}
	html, err := module.Content().Render(ctx, article)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(html), "<p>Mainnet is live.</p>") || !strings.Contains(string(html), `<div class="stat-card__stat">4000</div>`) {
		t.Fatalf("unexpected html %s", html)
	}

	_, err = module.Content().Load(ctx, "missing", "en")
	if !goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		t.Fatalf("expected not found category, got %v", err)
	}
}

func TestModuleRegistersRevalidateCommand(t *testing.T) {
	reg := &recordingRegistry{}
	module, _ := newModule(t, func(cfg *newsroom.Config) {
		cfg.Environment = newsroom.EnvironmentProduction
	}, newsroom.WithCommandRegistry(reg))

	if len(reg.handlers) != 1 {
		t.Fatalf("expected one registered handler, got %d", len(reg.handlers))
	}

	result := &revalidatecmd.RevalidateResult{}
	err := module.Revalidate().Execute(context.Background(), revalidatecmd.RevalidateIndexCommand{
		Tag:    module.Config().Index.Tag,
		Result: result,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !result.Revalidated {
		t.Fatal("expected configured tag to revalidate")
	}
}

func TestModuleHTTPServer(t *testing.T) {
	module, _ := newModule(t, nil)
	server, err := module.HTTPServer()
	if err != nil {
		t.Fatalf("HTTPServer: %v", err)
	}

	resp, err := server.App().Test(httptest.NewRequest(http.MethodGet, "/en/news/developers", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), ">Launch<") {
		t.Fatalf("unexpected response %d: %s", resp.StatusCode, body)
	}
}

func TestModuleBuildsDefaultLoggerProvider(t *testing.T) {
	cfg := newsroom.DefaultConfig()
	module, err := newsroom.New(cfg, newsroom.WithFS(testFS()))
	if err != nil {
		t.Fatalf("newsroom.New: %v", err)
	}
	if module.LoggerProvider() == nil {
		t.Fatal("expected a go-logger provider by default")
	}

	cfg.Logging.Format = "xml"
	if _, err := newsroom.New(cfg, newsroom.WithFS(testFS())); !errors.Is(err, newsroom.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}

func TestModuleSafeModeKeepsVettedMarkup(t *testing.T) {
	module, _ := newModule(t, nil)
	ctx := context.Background()

	article, err := module.Content().Load(ctx, "embed", "en")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	html, err := module.Content().Render(ctx, article)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	got := string(html)
	if !strings.Contains(got, `<a href="https://x.org">the thread</a>`) {
		t.Fatalf("expected inline anchor kept, got %s", got)
	}
	if !strings.Contains(got, `<div data-theme="dark">`) || !strings.Contains(got, `data-tweet-id="12345"`) {
		t.Fatalf("expected wrapped tweet kept, got %s", got)
	}

	unsafe, err := module.Content().Load(ctx, "unsafe", "en")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := module.Content().Render(ctx, unsafe); !errors.Is(err, components.ErrUnsafeMarkup) {
		t.Fatalf("expected ErrUnsafeMarkup, got %v", err)
	}
}

func TestModuleRevalidateTimeoutIsApplied(t *testing.T) {
	module, logs := newModule(t, func(cfg *newsroom.Config) {
		cfg.Index.RevalidateTimeout = 50 * time.Millisecond
	})

	err := module.Revalidate().Execute(context.Background(), revalidatecmd.RevalidateIndexCommand{Tag: module.Config().Index.Tag})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(logs.String(), "command.execute.success") {
		t.Fatalf("expected command success entry, logs: %s", logs.String())
	}
}

func TestModuleHTTPRequestIDReachesComponentLogs(t *testing.T) {
	module, logs := newModule(t, nil)
	server, err := module.HTTPServer()
	if err != nil {
		t.Fatalf("HTTPServer: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/en/news/launch", nil)
	req.Header.Set("X-Request-ID", "req-42")
	resp, err := server.App().Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}

	var found bool
	for _, line := range strings.Split(logs.String(), "\n") {
		if strings.Contains(line, "components.service.render_succeeded") && strings.Contains(line, "request_id=req-42") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected component log tagged with request id, logs: %s", logs.String())
	}
}
