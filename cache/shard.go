package cache

import (
	"sync"

	"github.com/IvanBrykalov/evictcache/internal/util"
)

// shard is an independent partition of the value store with its own lock
// and map. It knows nothing about eviction: the policy owns ordering.
type shard[K comparable, V any] struct {
	// ---- guarded by mu ----
	mu sync.RWMutex
	m  map[K]V

	// keep neighbouring shards' locks on separate cache lines
	_ util.CacheLinePad
}

func newShard[K comparable, V any](sizeHint int) *shard[K, V] {
	return &shard[K, V]{m: make(map[K]V, sizeHint)}
}

// get returns the value for k and whether it is present.
func (s *shard[K, V]) get(k K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[k]
	return v, ok
}

// set inserts or replaces k→v and reports whether k was new.
func (s *shard[K, V]) set(k K, v V) (added bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.m[k]
	s.m[k] = v
	return !exists
}

// remove deletes k and returns the value it held.
func (s *shard[K, V]) remove(k K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[k]
	if ok {
		delete(s.m, k)
	}
	return v, ok
}

// reset drops every entry and returns how many there were.
func (s *shard[K, V]) reset() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.m)
	clear(s.m)
	return n
}
