package revalidatecmd

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-newsroom/internal/index"
	"github.com/goliatone/go-newsroom/internal/logging"
)

type trackingIndex struct {
	tags []string
	err  error
}

func (t *trackingIndex) Invalidate(_ context.Context, tag string) (bool, error) {
	t.tags = append(t.tags, tag)
	if t.err != nil {
		return false, t.err
	}
	return tag == index.DefaultTag, nil
}

type recordingRegistry struct {
	handlers []any
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

func TestRevalidateIndexCommandValidate(t *testing.T) {
	cases := []struct {
		name    string
		tag     string
		wantErr bool
	}{
		{name: "tag", tag: "news-index"},
		{name: "empty", tag: "", wantErr: true},
		{name: "blank", tag: "   ", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := RevalidateIndexCommand{Tag: tc.tag}.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected validation error for %q", tc.tag)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestRevalidateIndexHandlerInvalidates(t *testing.T) {
	tracking := &trackingIndex{}
	handler := NewRevalidateIndexHandler(tracking, logging.NoOp())

	result := &RevalidateResult{}
	if err := handler.Execute(context.Background(), RevalidateIndexCommand{Tag: " news-index ", Result: result}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(tracking.tags) != 1 || tracking.tags[0] != "news-index" {
		t.Fatalf("expected trimmed tag to reach the index, got %v", tracking.tags)
	}
	if !result.Revalidated || result.Tag != "news-index" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestRevalidateIndexHandlerUnknownTagIsNoOp(t *testing.T) {
	tracking := &trackingIndex{}
	handler := NewRevalidateIndexHandler(tracking, nil)

	result := &RevalidateResult{}
	if err := handler.Execute(context.Background(), RevalidateIndexCommand{Tag: "other", Result: result}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if result.Revalidated {
		t.Fatalf("expected unknown tag to report false")
	}
}

func TestRevalidateIndexHandlerValidationError(t *testing.T) {
	tracking := &trackingIndex{}
	handler := NewRevalidateIndexHandler(tracking, logging.NoOp())

	err := handler.Execute(context.Background(), RevalidateIndexCommand{})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if len(tracking.tags) != 0 {
		t.Fatalf("expected index untouched, got %v", tracking.tags)
	}
}

func TestRevalidateIndexHandlerWrapsIndexFailure(t *testing.T) {
	tracking := &trackingIndex{err: errors.New("boom")}
	handler := NewRevalidateIndexHandler(tracking, logging.NoOp())

	err := handler.Execute(context.Background(), RevalidateIndexCommand{Tag: "news-index"})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestRevalidateAgainstIndexService(t *testing.T) {
	fsys := fstest.MapFS{
		"en/alpha.mdx": &fstest.MapFile{Data: []byte("---\ntitle: Alpha\ndate: 2024-01-02\n---\nBody\n")},
	}
	svc := index.NewService(fsys, index.Config{Production: true})
	ctx := context.Background()

	if _, err := svc.List(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	fsys["en/beta.mdx"] = &fstest.MapFile{Data: []byte("---\ntitle: Beta\ndate: 2024-02-02\n---\nBody\n")}

	cached, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cached) != 1 {
		t.Fatalf("expected cached listing of 1, got %d", len(cached))
	}

	set, err := RegisterRevalidateCommands(nil, svc, nil)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := set.RevalidateIndex.Execute(ctx, RevalidateIndexCommand{Tag: svc.Tag()}); err != nil {
		t.Fatalf("execute: %v", err)
	}

	fresh, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(fresh) != 2 {
		t.Fatalf("expected rescan after revalidation, got %d records", len(fresh))
	}
}

func TestRegisterRevalidateCommands(t *testing.T) {
	reg := &recordingRegistry{}
	set, err := RegisterRevalidateCommands(reg, &trackingIndex{}, nil)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if set.RevalidateIndex == nil {
		t.Fatal("expected handler in set")
	}
	if len(reg.handlers) != 1 {
		t.Fatalf("expected one registered handler, got %d", len(reg.handlers))
	}

	if _, err := RegisterRevalidateCommands(reg, nil, nil); err == nil {
		t.Fatal("expected error for nil index")
	}
}
