package querycache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// backend is a server-side value that fetches read.
type backend struct {
	mu    sync.Mutex
	value string
	err   error
	calls atomic.Int32
}

func (b *backend) set(value string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.value, b.err = value, err
}

func (b *backend) fetch(context.Context) (string, error) {
	b.calls.Add(1)
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value, b.err
}

func newCache(t *testing.T, opts ...Option) *Cache {
	t.Helper()
	c := New(context.Background(), testLogger(), opts...)
	t.Cleanup(c.Close)
	return c
}

func query(b *backend, policy Policy) Query[string] {
	return Query[string]{Key: Key{Resource: "menu"}, Policy: policy, Fetch: b.fetch}
}

func waitFor(t *testing.T, sub *Subscription, cond func(Snapshot) bool) Snapshot {
	t.Helper()
	if snap := sub.Current(); cond(snap) {
		return snap
	}
	deadline := time.After(2 * time.Second)
	for {
		select {
		case snap, ok := <-sub.Updates():
			require.True(t, ok, "subscription closed")
			if cond(snap) {
				return snap
			}
			if current := sub.Current(); cond(current) {
				return current
			}
		case <-deadline:
			t.Fatalf("condition not met, last snapshot %+v", sub.Current())
		}
	}
}

func hasValue(v string) func(Snapshot) bool {
	return func(s Snapshot) bool {
		data, ok := Data[string](s)
		return s.Status == StatusSuccess && ok && data == v
	}
}

func TestReadServesFreshDataWithinStaleTime(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	c := newCache(t, WithClock(clock.Now))
	b := &backend{value: "v1"}
	q := query(b, Policy{StaleTime: 30 * time.Second})
	ctx := context.Background()

	got, err := Read(ctx, c, q)
	require.NoError(t, err)
	assert.Equal(t, "v1", got)

	b.set("v2", nil)
	clock.Advance(10 * time.Second)
	got, err = Read(ctx, c, q)
	require.NoError(t, err)
	assert.Equal(t, "v1", got)
	assert.EqualValues(t, 1, b.calls.Load())

	clock.Advance(25 * time.Second)
	got, err = Read(ctx, c, q)
	require.NoError(t, err)
	assert.Equal(t, "v2", got)
	assert.EqualValues(t, 2, b.calls.Load())
}

func TestZeroStaleTimeAlwaysFetches(t *testing.T) {
	c := newCache(t)
	b := &backend{value: "v"}
	q := query(b, Policy{})

	for i := 0; i < 3; i++ {
		_, err := Read(context.Background(), c, q)
		require.NoError(t, err)
	}
	assert.EqualValues(t, 3, b.calls.Load())
}

func TestConcurrentReadsShareOneFetch(t *testing.T) {
	c := newCache(t)
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	var calls atomic.Int32
	q := Query[string]{Key: Key{Resource: "orders/all"}, Fetch: func(context.Context) (string, error) {
		calls.Add(1)
		started <- struct{}{}
		<-release
		return "orders", nil
	}}

	var wg sync.WaitGroup
	results := make([]string, 5)
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], _ = Read(context.Background(), c, q)
	}()
	<-started
	for i := 1; i < len(results); i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Read(context.Background(), c, q)
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, calls.Load())
	for _, r := range results {
		assert.Equal(t, "orders", r)
	}
}

func TestReadHonoursCallerContext(t *testing.T) {
	c := newCache(t)
	release := make(chan struct{})
	defer close(release)
	q := Query[string]{Key: Key{Resource: "slow"}, Fetch: func(context.Context) (string, error) {
		<-release
		return "late", nil
	}}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := Read(ctx, c, q)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestErrorKeepsLastGoodData(t *testing.T) {
	c := newCache(t)
	b := &backend{value: "v1"}
	q := query(b, Policy{})
	ctx := context.Background()

	_, err := Read(ctx, c, q)
	require.NoError(t, err)

	boom := errors.New("unavailable")
	b.set("", boom)
	_, err = Read(ctx, c, q)
	require.ErrorIs(t, err, boom)

	snap, ok := c.Peek(q.Key)
	require.True(t, ok)
	assert.Equal(t, StatusError, snap.Status)
	assert.ErrorIs(t, snap.Err, boom)
	assert.Equal(t, "v1", snap.Data)

	b.set("v2", nil)
	require.NoError(t, c.Refetch(ctx, q.Key))
	snap, _ = c.Peek(q.Key)
	assert.Equal(t, StatusSuccess, snap.Status)
	assert.NoError(t, snap.Err)
	assert.Equal(t, "v2", snap.Data)
}

func TestRefetchUnknownKey(t *testing.T) {
	c := newCache(t)
	assert.Error(t, c.Refetch(context.Background(), Key{Resource: "nope"}))
}

func TestObserveDeliversInitialFetch(t *testing.T) {
	c := newCache(t)
	b := &backend{value: "v1"}
	sub := Observe(c, query(b, Policy{StaleTime: time.Minute}))
	defer sub.Close()

	first := <-sub.Updates()
	assert.Contains(t, []Status{StatusIdle, StatusLoading, StatusSuccess}, first.Status)
	waitFor(t, sub, hasValue("v1"))
	assert.Equal(t, 1, c.Observers(sub.Key()))
}

func TestPollingWhileObserved(t *testing.T) {
	c := newCache(t)
	b := &backend{value: "v1"}
	sub := Observe(c, query(b, Policy{RefetchInterval: 10 * time.Millisecond}))

	waitFor(t, sub, hasValue("v1"))
	b.set("v2", nil)
	waitFor(t, sub, hasValue("v2"))

	sub.Close()
	for range sub.Updates() {
	}

	time.Sleep(30 * time.Millisecond)
	settled := b.calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, b.calls.Load(), "poller must stop when the last observer leaves")
}

func TestPollerIsReferenceCounted(t *testing.T) {
	c := newCache(t)
	b := &backend{value: "v1"}
	q := query(b, Policy{RefetchInterval: 10 * time.Millisecond})

	first := Observe(c, q)
	second := Observe(c, q)
	assert.Equal(t, 2, c.Observers(q.Key))

	first.Close()
	first.Close()
	assert.Equal(t, 1, c.Observers(q.Key))

	b.set("v2", nil)
	waitFor(t, second, hasValue("v2"))

	second.Close()
	assert.Equal(t, 0, c.Observers(q.Key))
}

func TestInvalidateRefetchesObservedQueries(t *testing.T) {
	c := newCache(t)
	b := &backend{value: "pending"}
	q := Query[string]{Key: Key{Resource: "orders/id", Arg: "o1"}, Policy: Policy{StaleTime: time.Hour}, Fetch: b.fetch}
	sub := Observe(c, q)
	defer sub.Close()
	waitFor(t, sub, hasValue("pending"))

	b.set("preparing", nil)
	require.NoError(t, c.InvalidateResource(context.Background(), "orders/id"))

	snap, _ := c.Peek(q.Key)
	assert.Equal(t, "preparing", snap.Data)
	waitFor(t, sub, hasValue("preparing"))
}

func TestInvalidateMarksUnobservedStale(t *testing.T) {
	c := newCache(t)
	b := &backend{value: "v1"}
	q := query(b, Policy{StaleTime: time.Hour})
	ctx := context.Background()

	_, err := Read(ctx, c, q)
	require.NoError(t, err)
	b.set("v2", nil)

	require.NoError(t, c.Invalidate(ctx, q.Key))
	assert.EqualValues(t, 1, b.calls.Load(), "unobserved queries are not refetched eagerly")

	got, err := Read(ctx, c, q)
	require.NoError(t, err)
	assert.Equal(t, "v2", got)
	assert.EqualValues(t, 2, b.calls.Load())
}

func TestInvalidateDuringFetchKeepsEntryStale(t *testing.T) {
	c := newCache(t)
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	var calls atomic.Int32
	q := Query[string]{Key: Key{Resource: "orders/all"}, Policy: Policy{StaleTime: time.Hour}, Fetch: func(context.Context) (string, error) {
		if calls.Add(1) == 1 {
			started <- struct{}{}
			<-release
			return "before", nil
		}
		return "after", nil
	}}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = Read(context.Background(), c, q)
	}()
	<-started
	require.NoError(t, c.Invalidate(context.Background(), q.Key))
	close(release)
	<-done

	got, err := Read(context.Background(), c, q)
	require.NoError(t, err)
	assert.Equal(t, "after", got)
}

func TestLateFetchDoesNotOverwriteInvalidatedData(t *testing.T) {
	c := newCache(t)
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	var calls atomic.Int32
	q := Query[string]{Key: Key{Resource: "menu"}, Policy: Policy{StaleTime: time.Minute}, Fetch: func(context.Context) (string, error) {
		if calls.Add(1) == 1 {
			started <- struct{}{}
			<-release
			return "old", nil
		}
		return "new", nil
	}}

	sub := Observe(c, q)
	defer sub.Close()
	<-started

	require.NoError(t, c.Invalidate(context.Background(), q.Key))
	close(release)
	snap := waitFor(t, sub, func(s Snapshot) bool { return !s.Fetching })
	data, _ := Data[string](snap)
	assert.Equal(t, "new", data)

	got, err := Read(context.Background(), c, q)
	require.NoError(t, err)
	assert.Equal(t, "new", got)
	assert.Equal(t, int32(2), calls.Load())
}

func TestPatchMarksStale(t *testing.T) {
	c := newCache(t)
	b := &backend{value: "server"}
	q := query(b, Policy{StaleTime: time.Hour})
	ctx := context.Background()

	_, err := Read(ctx, c, q)
	require.NoError(t, err)

	assert.True(t, Patch(c, q.Key, func(s string) string { return s + "+local" }))
	snap, _ := c.Peek(q.Key)
	assert.Equal(t, "server+local", snap.Data)

	got, err := Read(ctx, c, q)
	require.NoError(t, err)
	assert.Equal(t, "server", got)

	assert.False(t, Patch(c, Key{Resource: "missing"}, func(s string) string { return s }))
}

func TestIndependentPollersConverge(t *testing.T) {
	b := &backend{value: "pending"}
	customer := newCache(t)
	courier := newCache(t)

	detail := Query[string]{Key: Key{Resource: "orders/id", Arg: "o1"}, Policy: Policy{RefetchInterval: 10 * time.Millisecond}, Fetch: b.fetch}
	list := Query[string]{Key: Key{Resource: "orders/all"}, Policy: Policy{RefetchInterval: 15 * time.Millisecond}, Fetch: b.fetch}

	customerSub := Observe(customer, detail)
	defer customerSub.Close()
	courierSub := Observe(courier, list)
	defer courierSub.Close()

	waitFor(t, customerSub, hasValue("pending"))
	waitFor(t, courierSub, hasValue("pending"))

	b.set("out_for_delivery", nil)
	waitFor(t, customerSub, hasValue("out_for_delivery"))
	waitFor(t, courierSub, hasValue("out_for_delivery"))
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "menu", Key{Resource: "menu"}.String())
	assert.Equal(t, "orders/id/o1", Key{Resource: "orders/id", Arg: "o1"}.String())
	assert.Equal(t, "loading", StatusLoading.String())
}
