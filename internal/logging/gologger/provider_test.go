package gologger

import (
	"context"
	"testing"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-newsroom/internal/logging"
)

func TestNewProviderFormats(t *testing.T) {
	for _, format := range []string{"", "console", "JSON", " pretty "} {
		p, err := NewProvider(Config{Level: "debug", Format: format})
		if err != nil {
			t.Fatalf("format %q: unexpected error: %v", format, err)
		}
		if logging.IndexLogger(p) == nil {
			t.Fatalf("format %q: expected module logger", format)
		}
	}
	if _, err := NewProvider(Config{Format: "xml"}); err == nil {
		t.Fatalf("expected xml format to be rejected")
	}
}

func TestNilProviderReturnsNoOp(t *testing.T) {
	var p *Provider
	if p.GetLogger("newsroom.index") == nil {
		t.Fatalf("expected no-op logger from nil provider")
	}
}

func TestEntryMergesRequestFieldsFromContext(t *testing.T) {
	rec := &recordingLogger{}
	ctx := logging.ContextWithFields(context.Background(), map[string]any{"request_id": "req-7"})

	logger := newEntry(rec).WithContext(ctx)
	logger.Info("components.process.completed")

	if len(rec.contexts) != 1 || rec.contexts[0] != ctx {
		t.Fatalf("expected context forwarded once, got %d", len(rec.contexts))
	}
	if len(rec.fields) != 1 || rec.fields[0]["request_id"] != "req-7" {
		t.Fatalf("expected request_id field, got %#v", rec.fields)
	}
	if len(rec.messages) != 1 || rec.messages[0] != "info components.process.completed" {
		t.Fatalf("unexpected messages %#v", rec.messages)
	}
}

func TestEntryWithoutContextFieldsAddsNothing(t *testing.T) {
	rec := &recordingLogger{}
	newEntry(rec).WithContext(context.Background()).Warn("index.scan.metadata_defaulted")

	if len(rec.fields) != 0 {
		t.Fatalf("expected no fields, got %#v", rec.fields)
	}
	if len(rec.messages) != 1 || rec.messages[0] != "warn index.scan.metadata_defaulted" {
		t.Fatalf("unexpected messages %#v", rec.messages)
	}
}

func TestEntryCopiesFields(t *testing.T) {
	rec := &recordingLogger{}
	fields := map[string]any{"slug": "alpha"}
	logging.WithFields(newEntry(rec), fields)
	fields["slug"] = "beta"

	if len(rec.fields) != 1 || rec.fields[0]["slug"] != "alpha" {
		t.Fatalf("expected copied fields, got %#v", rec.fields)
	}
}

type recordingLogger struct {
	messages []string
	fields   []map[string]any
	contexts []context.Context
}

var _ glog.FieldsLogger = (*recordingLogger)(nil)

func (r *recordingLogger) record(level, msg string) {
	r.messages = append(r.messages, level+" "+msg)
}

func (r *recordingLogger) Trace(msg string, _ ...any) { r.record("trace", msg) }
func (r *recordingLogger) Debug(msg string, _ ...any) { r.record("debug", msg) }
func (r *recordingLogger) Info(msg string, _ ...any)  { r.record("info", msg) }
func (r *recordingLogger) Warn(msg string, _ ...any)  { r.record("warn", msg) }
func (r *recordingLogger) Error(msg string, _ ...any) { r.record("error", msg) }
func (r *recordingLogger) Fatal(msg string, _ ...any) { r.record("fatal", msg) }

func (r *recordingLogger) WithContext(ctx context.Context) glog.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

func (r *recordingLogger) WithFields(fields map[string]any) glog.Logger {
	r.fields = append(r.fields, fields)
	return r
}
