package query

import (
	"context"
	"fmt"
	"time"
)

// Snapshot is the observable state of a query.
type Snapshot[T any] struct {
	Status    Status
	Data      T
	Err       error
	Stale     bool
	UpdatedAt time.Time
}

// Query is a typed view over one cache key.
type Query[T any] struct {
	cache *Cache
	key   Key
}

// NewQuery registers fetch as the loader for key and returns a typed handle.
// Registering a key twice replaces the previous loader.
func NewQuery[T any](cache *Cache, key Key, fetch func(ctx context.Context) (T, error)) *Query[T] {
	cache.register(key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	return &Query[T]{cache: cache, key: key}
}

func (q *Query[T]) Key() Key { return q.key }

// Get returns the cached value, fetching it if the entry is idle, stale or
// failed.
func (q *Query[T]) Get(ctx context.Context) (T, error) {
	var zero T
	v, err := q.cache.load(ctx, q.key)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("query: %q holds %T, want %T", q.key, v, zero)
	}
	return t, nil
}

// Refetch invalidates the key and loads it again.
func (q *Query[T]) Refetch(ctx context.Context) (T, error) {
	if err := q.cache.Invalidate(ctx, q.key); err != nil {
		var zero T
		return zero, err
	}
	return q.Get(ctx)
}

// Peek returns the current state without fetching.
func (q *Query[T]) Peek() Snapshot[T] {
	s := q.cache.snapshot(q.key)
	out := Snapshot[T]{Status: s.status, Err: s.err, Stale: s.stale, UpdatedAt: s.updatedAt}
	if t, ok := s.data.(T); ok {
		out.Data = t
	}
	return out
}

// Subscribe marks the key as observed by an active view, so invalidation
// refetches it immediately. The returned func releases the subscription and
// is safe to call more than once.
func (q *Query[T]) Subscribe() (unsubscribe func()) {
	return q.cache.subscribe(q.key)
}
