package querycache

import "sync"

// Subscription is one observer of a query. The query is polled while at
// least one subscription on it is open.
type Subscription struct {
	key     Key
	cache   *Cache
	updates chan Snapshot
	once    sync.Once
}

// Updates delivers snapshots as the query changes. Only the latest pending
// snapshot is kept; the channel is closed by Close.
func (s *Subscription) Updates() <-chan Snapshot {
	return s.updates
}

// Current returns the latest snapshot of the observed query.
func (s *Subscription) Current() Snapshot {
	snap, _ := s.cache.Peek(s.key)
	return snap
}

// Key returns the observed query key.
func (s *Subscription) Key() Key {
	return s.key
}

// Close releases the subscription. Closing twice is a no-op.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.cache.unobserve(s)
	})
}

// deliver replaces any undelivered snapshot with snap. Called with the cache lock held.
func (s *Subscription) deliver(snap Snapshot) {
	select {
	case s.updates <- snap:
		return
	default:
	}
	select {
	case <-s.updates:
	default:
	}
	select {
	case s.updates <- snap:
	default:
	}
}
