// Package cache memoizes rate tables per canonical query with a fixed TTL.
package cache

import (
	"context"
	"github.com/langowen/fxtrend/internal/entities"
	"golang.org/x/sync/singleflight"
	"log/slog"
	"sync"
	"time"
)

// DefaultTTL is the age at which an entry is loaded again.
const DefaultTTL = time.Hour

const (
	LookupHit       = "hit"
	LookupMiss      = "miss"
	LookupSharedHit = "shared_hit"
)

// Loader fetches and assembles the table of a query. Its error is cached.
type Loader func(ctx context.Context, q entities.Query) (*entities.RateTable, error)

// SharedStore is a second tier visible to every replica. Implementations are
// best effort: a failing store behaves like an empty one.
type SharedStore interface {
	Get(ctx context.Context, key string) (table *entities.RateTable, createdAt time.Time, ok bool)
	Set(ctx context.Context, key string, table *entities.RateTable, createdAt time.Time, ttl time.Duration)
}

type Observer interface {
	ObserveCacheLookup(result string)
}

type entry struct {
	table     *entities.RateTable
	err       error
	createdAt time.Time
}

// Cache is safe for concurrent use. Entries live in a sync.Map so unrelated
// keys never contend, and a singleflight group keeps at most one load in
// flight per key.
type Cache struct {
	load     Loader
	ttl      time.Duration
	clock    func() time.Time
	shared   SharedStore
	observer Observer

	entries sync.Map
	group   singleflight.Group
}

type Option func(c *Cache)

func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithClock(clock func() time.Time) Option {
	return func(c *Cache) {
		c.clock = clock
	}
}

func WithSharedStore(s SharedStore) Option {
	return func(c *Cache) {
		c.shared = s
	}
}

func WithObserver(o Observer) Option {
	return func(c *Cache) {
		c.observer = o
	}
}

func New(load Loader, opts ...Option) *Cache {
	if load == nil {
		panic("cache: nil loader")
	}

	c := &Cache{
		load:  load,
		ttl:   DefaultTTL,
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Get returns the table of q, loading it on a miss or once the entry is at
// least TTL old. Failed loads are cached for the same TTL.
func (c *Cache) Get(ctx context.Context, q entities.Query) (*entities.RateTable, error) {
	key := q.Key()

	if e, ok := c.fresh(key); ok {
		c.observe(LookupHit)
		return e.table, e.err
	}

	// The load outlives callers that give up; it is bounded by the fetcher's
	// own timeout.
	loadCtx := context.WithoutCancel(ctx)

	leader := false
	v, _, _ := c.group.Do(key, func() (any, error) {
		leader = true

		// A flight for this key may have finished between the lookup above
		// and joining the group.
		if e, ok := c.fresh(key); ok {
			c.observe(LookupHit)
			return e, nil
		}

		e := c.fill(loadCtx, key, q)
		c.entries.Store(key, e)

		return e, nil
	})

	// Callers that joined another caller's flight are served without a load.
	if !leader {
		c.observe(LookupHit)
	}

	e := v.(*entry)

	return e.table, e.err
}

// Sweep drops expired entries and reports how many were removed.
func (c *Cache) Sweep() int {
	now := c.clock()
	removed := 0

	c.entries.Range(func(key, value any) bool {
		if c.expired(value.(*entry), now) && c.entries.CompareAndDelete(key, value) {
			removed++
		}
		return true
	})

	return removed
}

// Run sweeps on every tick until ctx is done.
func (c *Cache) Run(ctx context.Context, interval time.Duration) {
	const op = "cache.Run"

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := c.Sweep(); n > 0 {
				slog.Debug("expired cache entries removed", "op", op, "count", n)
			}
		case <-ctx.Done():
			slog.Debug("cache janitor stopped", "op", op, "error", ctx.Err())
			return
		}
	}
}

func (c *Cache) Len() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (c *Cache) fresh(key string) (*entry, bool) {
	v, ok := c.entries.Load(key)
	if !ok {
		return nil, false
	}

	e := v.(*entry)
	if c.expired(e, c.clock()) {
		return nil, false
	}

	return e, true
}

func (c *Cache) fill(ctx context.Context, key string, q entities.Query) *entry {
	if c.shared != nil {
		if table, createdAt, ok := c.shared.Get(ctx, key); ok {
			// A writer whose clock runs ahead must not stretch the TTL here.
			if now := c.clock(); createdAt.After(now) {
				createdAt = now
			}
			if !c.expired(&entry{createdAt: createdAt}, c.clock()) {
				c.observe(LookupSharedHit)
				return &entry{table: table, createdAt: createdAt}
			}
		}
	}

	c.observe(LookupMiss)

	table, err := c.load(ctx, q)
	createdAt := c.clock()

	if err != nil {
		slog.Warn("rate table unavailable", "key", key, "error", err.Error())
		return &entry{err: err, createdAt: createdAt}
	}

	if c.shared != nil {
		c.shared.Set(ctx, key, table, createdAt, c.ttl)
	}

	return &entry{table: table, createdAt: createdAt}
}

func (c *Cache) expired(e *entry, now time.Time) bool {
	return now.Sub(e.createdAt) >= c.ttl
}

func (c *Cache) observe(result string) {
	if c.observer != nil {
		c.observer.ObserveCacheLookup(result)
	}
}
