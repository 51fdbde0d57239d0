package fetchcache

import (
	"context"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Loader produces a fresh value for a key.
type Loader[T any] func(ctx context.Context) (T, error)

// Result is the outcome of a fetch. Loading is only ever set by Peek.
type Result[T any] struct {
	Data      T
	Err       error
	Loading   bool
	FetchedAt time.Time
}

// ResultMsg carries a Result back into a bubbletea program.
type ResultMsg[T any] struct {
	Key    string
	Result Result[T]
}

type Option[T any] func(*Cache[T])

// WithDurable routes entries fetched with persist=true to s instead of the
// cache's own volatile store.
func WithDurable[T any](s Store[T]) Option[T] {
	return func(c *Cache[T]) { c.durable = s }
}

func WithLogger[T any](logger *zap.Logger) Option[T] {
	return func(c *Cache[T]) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithCapacity bounds the volatile store to n keys.
func WithCapacity[T any](n int) Option[T] {
	return func(c *Cache[T]) { c.capacity = n }
}

func WithClock[T any](now func() time.Time) Option[T] {
	return func(c *Cache[T]) { c.now = now }
}

// Cache fetches values through loaders and keeps them for a time-to-live.
// Concurrent loads of the same key share one loader call.
type Cache[T any] struct {
	group singleflight.Group

	mu       sync.Mutex
	volatile *LRUStore[T]
	durable  Store[T]
	inflight map[string]int
	capacity int

	now    func() time.Time
	logger *zap.Logger
}

func New[T any](opts ...Option[T]) *Cache[T] {
	c := &Cache[T]{
		inflight: make(map[string]int),
		capacity: DefaultCapacity,
		now:      time.Now,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.volatile = NewLRUStore[T](c.capacity)
	return c
}

// Fetch returns the cached value for key while it is fresh, otherwise runs
// load and caches its result for ttl. A ttl of zero or less disables
// caching. Failed loads are not cached.
func (c *Cache[T]) Fetch(ctx context.Context, key string, load Loader[T], ttl time.Duration, persist bool) Result[T] {
	if ttl > 0 {
		if e, ok := c.lookup(key, persist); ok {
			return Result[T]{Data: e.Value, FetchedAt: e.FetchedAt}
		}
	}
	return c.load(ctx, key, load, ttl, persist)
}

// Refetch bypasses the cache and always runs load. On failure the previous
// entry, if any, is left in place.
func (c *Cache[T]) Refetch(ctx context.Context, key string, load Loader[T], ttl time.Duration, persist bool) Result[T] {
	return c.load(ctx, key, load, ttl, persist)
}

// Cmd wraps Fetch, or Refetch when force is set, as a bubbletea command
// yielding a ResultMsg.
func (c *Cache[T]) Cmd(ctx context.Context, key string, load Loader[T], ttl time.Duration, persist, force bool) tea.Cmd {
	return func() tea.Msg {
		var r Result[T]
		if force {
			r = c.Refetch(ctx, key, load, ttl, persist)
		} else {
			r = c.Fetch(ctx, key, load, ttl, persist)
		}
		return ResultMsg[T]{Key: key, Result: r}
	}
}

// Peek reports the fresh cached value for key, if any, and whether a load is
// in flight. It never runs a loader.
func (c *Cache[T]) Peek(key string) Result[T] {
	var r Result[T]
	if e, ok := c.lookup(key, true); ok {
		r.Data, r.FetchedAt = e.Value, e.FetchedAt
	} else if e, ok := c.lookup(key, false); ok {
		r.Data, r.FetchedAt = e.Value, e.FetchedAt
	}
	r.Loading = c.pending(key) > 0
	return r
}

// Invalidate drops key from both stores.
func (c *Cache[T]) Invalidate(key string) {
	c.volatile.Delete(key)
	if c.durable != nil {
		c.durable.Delete(key)
	}
}

// Reset drops every volatile entry, as a page reload would. Entries in the
// durable store survive.
func (c *Cache[T]) Reset() {
	c.volatile.Purge()
}

func (c *Cache[T]) store(persist bool) Store[T] {
	if persist && c.durable != nil {
		return c.durable
	}
	return c.volatile
}

func (c *Cache[T]) lookup(key string, persist bool) (Entry[T], bool) {
	s := c.store(persist)
	e, ok := s.Get(key)
	if !ok {
		return Entry[T]{}, false
	}
	if !c.now().Before(e.ExpiresAt) {
		s.Delete(key)
		return Entry[T]{}, false
	}
	return e, true
}

func (c *Cache[T]) load(ctx context.Context, key string, load Loader[T], ttl time.Duration, persist bool) Result[T] {
	c.track(key, 1)
	defer c.track(key, -1)

	// The shared load must not die with whichever caller started it; each
	// caller stops waiting on its own context instead.
	ch := c.group.DoChan(key, func() (any, error) {
		return load(context.WithoutCancel(ctx))
	})
	var res singleflight.Result
	select {
	case <-ctx.Done():
		c.logger.Debug("fetch abandoned", zap.String("key", key), zap.Error(ctx.Err()))
		return Result[T]{Err: fmt.Errorf("fetch %s: %w", key, ctx.Err())}
	case res = <-ch:
	}
	v, err, shared := res.Val, res.Err, res.Shared
	if err != nil {
		c.logger.Debug("fetch failed", zap.String("key", key), zap.Error(err))
		return Result[T]{Err: fmt.Errorf("fetch %s: %w", key, err)}
	}
	val, _ := v.(T)
	now := c.now()
	if ttl > 0 {
		c.store(persist).Put(key, Entry[T]{Value: val, FetchedAt: now, ExpiresAt: now.Add(ttl)})
	}
	c.logger.Debug("fetched", zap.String("key", key), zap.Bool("shared", shared), zap.Duration("ttl", ttl))
	return Result[T]{Data: val, FetchedAt: now}
}

func (c *Cache[T]) track(key string, delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight[key] += delta
	if c.inflight[key] <= 0 {
		delete(c.inflight, key)
	}
}

func (c *Cache[T]) pending(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight[key]
}
