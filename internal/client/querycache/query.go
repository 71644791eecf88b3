package querycache

import "context"

// Query binds a key and policy to a typed fetch function.
type Query[T any] struct {
	Key    Key
	Policy Policy
	Fetch  func(ctx context.Context) (T, error)
}

func (q Query[T]) fetcher() Fetcher {
	return func(ctx context.Context) (any, error) {
		return q.Fetch(ctx)
	}
}

// Read returns fresh cached data for q or fetches it. Concurrent reads of the
// same key share one fetch.
func Read[T any](ctx context.Context, c *Cache, q Query[T]) (T, error) {
	v, err := c.read(ctx, q.Key, q.Policy, q.fetcher())
	if err != nil {
		var zero T
		return zero, err
	}
	data, _ := v.(T)
	return data, nil
}

// Observe subscribes to q. The first subscription on a key starts its
// poller and stale data is revalidated immediately.
func Observe[T any](c *Cache, q Query[T]) *Subscription {
	return c.observe(q.Key, q.Policy, q.fetcher())
}

// Data extracts the typed payload of a snapshot.
func Data[T any](s Snapshot) (T, bool) {
	v, ok := s.Data.(T)
	return v, ok
}

// Patch applies a transient local update to cached data. The entry is marked
// stale so the next fetch replaces it with server truth.
func Patch[T any](c *Cache, key Key, fn func(T) T) bool {
	return c.patch(key, func(v any) any {
		data, _ := v.(T)
		return fn(data)
	})
}
