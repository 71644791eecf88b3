// Package querycache keeps client copies of server data keyed by query,
// decides when they are stale, and keeps observed queries fresh by polling.
package querycache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Key identifies a cached query: a resource name plus an optional argument.
type Key struct {
	Resource string
	Arg      string
}

func (k Key) String() string {
	if k.Arg == "" {
		return k.Resource
	}
	return k.Resource + "/" + k.Arg
}

// Policy controls freshness of a query. Data younger than StaleTime is served
// without a fetch. A positive RefetchInterval polls while the query is observed.
type Policy struct {
	StaleTime       time.Duration
	RefetchInterval time.Duration
}

// Status is the lifecycle state of a cached query.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// Snapshot is a point-in-time view of a cached query. After a failed fetch
// Data still holds the last successful value.
type Snapshot struct {
	Key       Key
	Status    Status
	Data      any
	Err       error
	Fetching  bool
	UpdatedAt time.Time
}

// Fetcher loads the current server value of a query.
type Fetcher func(ctx context.Context) (any, error)

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides the time source used for staleness checks.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// Cache stores query results. Fetches run under the cache's own context, so
// a caller giving up on a read does not abort the request for other readers.
type Cache struct {
	ctx    context.Context
	cancel context.CancelFunc
	logger *slog.Logger
	now    func() time.Time
	group  singleflight.Group

	mu      sync.Mutex
	entries map[Key]*entry
}

type entry struct {
	key       Key
	policy    Policy
	fetch     Fetcher
	status    Status
	data      any
	err       error
	fetching  bool
	updatedAt time.Time
	// invalid is set by invalidation and cleared only by a fetch that started
	// after it, tracked through gen. written is the gen of the last stored
	// result; results of older fetches are dropped.
	invalid   bool
	gen       uint64
	written   uint64
	inflight  int
	observers map[*Subscription]struct{}
	poller    *poller
}

// New creates an empty cache. Cancelling ctx or calling Close stops all pollers.
func New(ctx context.Context, logger *slog.Logger, opts ...Option) *Cache {
	runCtx, cancel := context.WithCancel(ctx)
	c := &Cache{
		ctx:     runCtx,
		cancel:  cancel,
		logger:  logger,
		now:     time.Now,
		entries: make(map[Key]*entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close stops every poller and cancels in-flight fetches.
func (c *Cache) Close() {
	c.cancel()
	c.mu.Lock()
	var pollers []*poller
	for _, e := range c.entries {
		if e.poller != nil {
			pollers = append(pollers, e.poller)
			e.poller = nil
		}
	}
	c.mu.Unlock()
	for _, p := range pollers {
		p.Stop()
	}
}

// Peek returns the current snapshot of key without fetching.
func (c *Cache) Peek(key Key) (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return Snapshot{Key: key}, false
	}
	return e.snapshot(), true
}

// Observers returns the number of open subscriptions on key.
func (c *Cache) Observers(key Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		return len(e.observers)
	}
	return 0
}

func (c *Cache) read(ctx context.Context, key Key, policy Policy, fetch Fetcher) (any, error) {
	c.mu.Lock()
	e := c.ensure(key, policy, fetch)
	if c.fresh(e) {
		data := e.data
		c.mu.Unlock()
		return data, nil
	}
	c.mu.Unlock()
	return c.wait(ctx, c.start(key))
}

func (c *Cache) observe(key Key, policy Policy, fetch Fetcher) *Subscription {
	sub := &Subscription{key: key, cache: c, updates: make(chan Snapshot, 1)}

	c.mu.Lock()
	e := c.ensure(key, policy, fetch)
	if e.observers == nil {
		e.observers = make(map[*Subscription]struct{})
	}
	e.observers[sub] = struct{}{}
	sub.deliver(e.snapshot())
	revalidate := !c.fresh(e) && !e.fetching
	if len(e.observers) == 1 && e.policy.RefetchInterval > 0 && e.poller == nil {
		e.poller = newPoller(e.policy.RefetchInterval, func() { c.start(key) })
		e.poller.Start(c.ctx)
	}
	c.mu.Unlock()

	if revalidate {
		c.start(key)
	}
	return sub
}

func (c *Cache) unobserve(sub *Subscription) {
	c.mu.Lock()
	var p *poller
	if e, ok := c.entries[sub.key]; ok {
		delete(e.observers, sub)
		if len(e.observers) == 0 && e.poller != nil {
			p = e.poller
			e.poller = nil
		}
	}
	close(sub.updates)
	c.mu.Unlock()

	if p != nil {
		p.Stop()
	}
}

// Refetch re-issues the stored fetch of key, for example as a manual retry
// after an error. The result lands in the cache and its observers.
func (c *Cache) Refetch(ctx context.Context, key Key) error {
	c.mu.Lock()
	if _, ok := c.entries[key]; !ok {
		c.mu.Unlock()
		return fmt.Errorf("querycache: unknown query %s", key)
	}
	c.group.Forget(key.String())
	c.mu.Unlock()

	_, err := c.wait(ctx, c.start(key))
	return err
}

// Invalidate marks keys stale and refetches those currently observed. It
// waits for the refetches and returns the first failure.
func (c *Cache) Invalidate(ctx context.Context, keys ...Key) error {
	want := make(map[Key]struct{}, len(keys))
	for _, k := range keys {
		want[k] = struct{}{}
	}
	return c.invalidate(ctx, func(k Key) bool {
		_, ok := want[k]
		return ok
	})
}

// InvalidateResource invalidates every key of the given resources regardless of argument.
func (c *Cache) InvalidateResource(ctx context.Context, resources ...string) error {
	want := make(map[string]struct{}, len(resources))
	for _, r := range resources {
		want[r] = struct{}{}
	}
	return c.invalidate(ctx, func(k Key) bool {
		_, ok := want[k.Resource]
		return ok
	})
}

func (c *Cache) invalidate(ctx context.Context, match func(Key) bool) error {
	c.mu.Lock()
	var observed []Key
	for k, e := range c.entries {
		if !match(k) {
			continue
		}
		e.invalid = true
		e.gen++
		c.group.Forget(k.String())
		if len(e.observers) > 0 {
			observed = append(observed, k)
		}
	}
	c.mu.Unlock()

	var g errgroup.Group
	for _, k := range observed {
		ch := c.start(k)
		g.Go(func() error {
			_, err := c.wait(ctx, ch)
			return err
		})
	}
	return g.Wait()
}

func (c *Cache) patch(key Key, fn func(any) any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || e.status != StatusSuccess {
		return false
	}
	e.data = fn(e.data)
	e.invalid = true
	e.gen++
	c.notify(e)
	return true
}

// ensure must be called with mu held. The latest policy and fetcher win so
// that fetchers bound to a changed identity replace older ones.
func (c *Cache) ensure(key Key, policy Policy, fetch Fetcher) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{key: key}
		c.entries[key] = e
	}
	e.policy = policy
	e.fetch = fetch
	return e
}

func (c *Cache) fresh(e *entry) bool {
	return e.status == StatusSuccess && !e.invalid && c.now().Sub(e.updatedAt) < e.policy.StaleTime
}

func (c *Cache) start(key Key) <-chan singleflight.Result {
	return c.group.DoChan(key.String(), func() (any, error) {
		return c.run(key)
	})
}

func (c *Cache) wait(ctx context.Context, ch <-chan singleflight.Result) (any, error) {
	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Cache) run(key Key) (any, error) {
	c.mu.Lock()
	e := c.entries[key]
	fetch := e.fetch
	gen := e.gen
	e.inflight++
	e.fetching = true
	if e.status == StatusIdle {
		e.status = StatusLoading
	}
	c.notify(e)
	c.mu.Unlock()

	data, err := fetch(c.ctx)

	c.mu.Lock()
	e.inflight--
	e.fetching = e.inflight > 0
	switch {
	case gen < e.written:
		// A fetch started after an invalidation already stored newer data.
		data, err = e.data, e.err
	case err != nil:
		e.status = StatusError
		e.err = err
	default:
		e.status = StatusSuccess
		e.data = data
		e.err = nil
		e.updatedAt = c.now()
		e.written = gen
		e.invalid = e.gen != gen
	}
	c.notify(e)
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("query fetch failed", slog.String("query", key.String()), slog.String("error", err.Error()))
	}
	return data, err
}

// notify must be called with mu held.
func (c *Cache) notify(e *entry) {
	if len(e.observers) == 0 {
		return
	}
	snap := e.snapshot()
	for sub := range e.observers {
		sub.deliver(snap)
	}
}

func (e *entry) snapshot() Snapshot {
	return Snapshot{
		Key:       e.key,
		Status:    e.status,
		Data:      e.data,
		Err:       e.err,
		Fetching:  e.fetching,
		UpdatedAt: e.updatedAt,
	}
}
