package query

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/vidgen/internal/logging"
)

// Key names a cacheable resource, e.g. "admin-users".
type Key string

type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

type fetchFunc func(ctx context.Context) (any, error)

// errSuperseded is returned to waiters of a fetch whose result was discarded
// because the entry was invalidated while it was in flight.
var errSuperseded = errors.New("query: fetch superseded")

type entry struct {
	status      Status
	data        any
	err         error
	stale       bool
	updatedAt   time.Time
	subscribers int
	generation  uint64
	fetch       fetchFunc
}

type snapshot struct {
	status    Status
	data      any
	err       error
	stale     bool
	updatedAt time.Time
}

func (e *entry) snapshot() snapshot {
	return snapshot{status: e.status, data: e.data, err: e.err, stale: e.stale, updatedAt: e.updatedAt}
}

// Cache holds one entry per Key. The zero value is not usable; call NewCache.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]*entry
	group   singleflight.Group
	log     logging.Logger
	now     func() time.Time
}

func NewCache(log logging.Logger) *Cache {
	if log == nil {
		log = logging.Discard()
	}
	return &Cache{
		entries: make(map[Key]*entry),
		log:     log,
		now:     time.Now,
	}
}

// entryLocked returns the entry for key, creating an idle one if needed.
// c.mu must be held.
func (c *Cache) entryLocked(key Key) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	return e
}

func (c *Cache) register(key Key, fetch fetchFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entryLocked(key).fetch = fetch
}

func (c *Cache) snapshot(key Key) snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entryLocked(key).snapshot()
}

func (c *Cache) subscribe(key Key) func() {
	c.mu.Lock()
	c.entryLocked(key).subscribers++
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if e := c.entries[key]; e != nil && e.subscribers > 0 {
				e.subscribers--
			}
		})
	}
}

// load returns the cached value for key, fetching it when the entry is not a
// fresh success. Concurrent loads of the same key and generation share one
// fetch. The fetch itself is not cancelled with ctx; a caller that gives up
// early leaves the result to be stored for the next reader.
func (c *Cache) load(ctx context.Context, key Key) (any, error) {
	for {
		c.mu.Lock()
		e := c.entryLocked(key)
		if e.status == StatusSuccess && !e.stale {
			data := e.data
			c.mu.Unlock()
			c.log.Debug(ctx, "cache hit", "key", string(key))
			return data, nil
		}
		if e.fetch == nil {
			c.mu.Unlock()
			return nil, fmt.Errorf("query: no fetch function registered for %q", key)
		}
		e.status = StatusPending
		gen := e.generation
		fetch := e.fetch
		c.mu.Unlock()

		fetchCtx := context.WithoutCancel(ctx)
		ch := c.group.DoChan(fmt.Sprintf("%s#%d", key, gen), func() (any, error) {
			start := c.now()
			data, err := fetch(fetchCtx)

			c.mu.Lock()
			defer c.mu.Unlock()
			if e.generation != gen {
				c.log.Debug(fetchCtx, "discarding superseded response", "key", string(key), "generation", gen)
				return nil, errSuperseded
			}
			if err != nil {
				e.status = StatusError
				e.err = err
				c.log.Debug(fetchCtx, "fetch failed", "key", string(key), "error", err)
				return nil, err
			}
			e.status = StatusSuccess
			e.data = data
			e.err = nil
			e.stale = false
			e.updatedAt = c.now()
			c.log.Debug(fetchCtx, "fetched", "key", string(key), "duration", c.now().Sub(start))
			return data, nil
		})

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case r := <-ch:
			if errors.Is(r.Err, errSuperseded) {
				continue
			}
			return r.Val, r.Err
		}
	}
}

// Invalidate marks the given keys stale and refetches those with active
// subscribers. Keys without subscribers are refetched on their next read.
// Other keys are untouched. The returned error is the first refetch failure;
// every failure is also recorded on its entry.
func (c *Cache) Invalidate(ctx context.Context, keys ...Key) error {
	var active []Key

	c.mu.Lock()
	for _, k := range keys {
		e, ok := c.entries[k]
		if !ok {
			continue
		}
		e.generation++
		e.stale = true
		if e.subscribers > 0 && e.fetch != nil {
			e.status = StatusPending
			active = append(active, k)
		}
	}
	c.mu.Unlock()

	if len(active) == 0 {
		return nil
	}

	var g errgroup.Group
	for _, k := range active {
		g.Go(func() error {
			_, err := c.load(ctx, k)
			return err
		})
	}
	return g.Wait()
}

// Reset drops all cached data, e.g. when the session ends. Registered fetch
// functions and subscriptions are kept.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		e.generation++
		e.status = StatusIdle
		e.data = nil
		e.err = nil
		e.stale = false
		e.updatedAt = time.Time{}
	}
}
