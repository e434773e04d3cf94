package otpcache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/albanyauto/vsm/internal/pkg/clock"
)

func TestMemoryPutGet(t *testing.T) {
	fc := clock.NewFixed(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	store := NewMemory(fc)
	ctx := context.Background()

	if err := store.Put(ctx, "alice@example.com", "0042", 5*time.Minute); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.Get(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "0042" {
		t.Fatalf("expected 0042, got %q", got)
	}
}

func TestMemoryGetAbsent(t *testing.T) {
	store := NewMemory(clock.NewFixed(time.Now()))

	if _, err := store.Get(context.Background(), "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryExpiry(t *testing.T) {
	fc := clock.NewFixed(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	store := NewMemory(fc)
	ctx := context.Background()

	if err := store.Put(ctx, "k", "123456", 5*time.Minute); err != nil {
		t.Fatalf("put: %v", err)
	}

	// Still live one second before the deadline.
	fc.Advance(5*time.Minute - time.Second)
	if _, err := store.Get(ctx, "k"); err != nil {
		t.Fatalf("get before expiry: %v", err)
	}

	// At the deadline the value is absent even without a sweep.
	fc.Advance(time.Second)
	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after expiry, got %v", err)
	}
}

func TestMemoryPutReplacesAndResetsExpiry(t *testing.T) {
	fc := clock.NewFixed(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	store := NewMemory(fc)
	ctx := context.Background()

	if err := store.Put(ctx, "k", "first", time.Minute); err != nil {
		t.Fatalf("put: %v", err)
	}

	fc.Advance(50 * time.Second)
	if err := store.Put(ctx, "k", "second", time.Minute); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	// Past the first entry's deadline, inside the second's.
	fc.Advance(30 * time.Second)
	got, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "second" {
		t.Fatalf("expected replaced value, got %q", got)
	}
}

func TestMemoryEvictIdempotent(t *testing.T) {
	store := NewMemory(clock.NewFixed(time.Now()))
	ctx := context.Background()

	if err := store.Put(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Evict(ctx, "k"); err != nil {
		t.Fatalf("evict: %v", err)
	}
	if err := store.Evict(ctx, "k"); err != nil {
		t.Fatalf("second evict: %v", err)
	}
	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after evict, got %v", err)
	}
}

func TestMemoryConcurrentDistinctKeys(t *testing.T) {
	store := NewMemory(clock.New())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("user-%d@example.com", i)
			value := fmt.Sprintf("%04d", i)
			if err := store.Put(ctx, key, value, time.Minute); err != nil {
				t.Errorf("put %s: %v", key, err)
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < 100; i++ {
		key := fmt.Sprintf("user-%d@example.com", i)
		got, err := store.Get(ctx, key)
		if err != nil {
			t.Fatalf("get %s: %v", key, err)
		}
		if want := fmt.Sprintf("%04d", i); got != want {
			t.Fatalf("key %s: expected %s, got %s", key, want, got)
		}
	}
}

func TestMemorySweepDropsExpired(t *testing.T) {
	fc := clock.NewFixed(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	store := NewMemory(fc)
	ctx := context.Background()

	if err := store.Put(ctx, "old", "1", time.Minute); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Put(ctx, "fresh", "2", time.Hour); err != nil {
		t.Fatalf("put: %v", err)
	}

	fc.Advance(2 * time.Minute)
	store.sweep()

	store.mu.Lock()
	_, oldThere := store.entries["old"]
	_, freshThere := store.entries["fresh"]
	store.mu.Unlock()

	if oldThere {
		t.Fatal("expired entry survived the sweep")
	}
	if !freshThere {
		t.Fatal("live entry was dropped by the sweep")
	}
}
