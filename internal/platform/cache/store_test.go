package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "cached", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	failing := func(context.Context) (any, error) {
		calls.Add(1)
		return nil, errors.New("load failed")
	}

	if _, err := store.GetOrLoad(context.Background(), "k", failing); err == nil {
		t.Fatalf("expected the loader error to surface")
	}
	if _, err := store.GetOrLoad(context.Background(), "k", failing); err == nil {
		t.Fatalf("expected the loader error to surface again")
	}

	if got := calls.Load(); got != 2 {
		t.Fatalf("a failed load must not populate the cache, calls=%d", got)
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)
	store.Set(ctx, "roster:list:team-1", "a")
	store.Set(ctx, "roster:member:team-1:3", "b")
	store.Set(ctx, "guest:list:m-1", "c")

	store.DeletePrefix(ctx, "roster:")

	if _, ok := store.Get(ctx, "roster:list:team-1"); ok {
		t.Fatalf("prefixed key must be dropped")
	}
	if _, ok := store.Get(ctx, "roster:member:team-1:3"); ok {
		t.Fatalf("prefixed key must be dropped")
	}
	if _, ok := store.Get(ctx, "guest:list:m-1"); !ok {
		t.Fatalf("unrelated key must survive")
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
