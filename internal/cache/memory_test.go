package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryGetSetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemory(0)

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}

	if err := store.Set(ctx, "news-index", []string{"a"}, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	value, err := store.Get(ctx, "news-index")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got := value.([]string); len(got) != 1 || got[0] != "a" {
		t.Fatalf("unexpected cached value %#v", value)
	}

	if err := store.Delete(ctx, "news-index"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, "news-index"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected miss after delete, got %v", err)
	}
}

func TestMemoryExpiresEntriesWithTTL(t *testing.T) {
	ctx := context.Background()
	store := NewMemory(0)

	_ = store.Set(ctx, "component:abc", "<div></div>", time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	if _, err := store.Get(ctx, "component:abc"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected expired entry to miss, got %v", err)
	}
}

func TestMemoryClearDropsEveryEntry(t *testing.T) {
	ctx := context.Background()
	store := NewMemory(0)

	_ = store.Set(ctx, "component:1", "a", 0)
	_ = store.Set(ctx, "index:news-index", "b", time.Hour)
	if store.Len() != 2 {
		t.Fatalf("expected two entries, got %d", store.Len())
	}

	_ = store.Clear(ctx)
	if _, err := store.Get(ctx, "index:news-index"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected miss after Clear, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty cache after Clear, got %d", store.Len())
	}
}
