package cache

import (
	"sync/atomic"

	"github.com/IvanBrykalov/evictcache/internal/util"
)

// store is the concurrent key→value mapping behind the facade. Keys are
// spread over a power-of-two number of shards; each shard has its own
// RWMutex, so callers never lock externally.
type store[K comparable, V any] struct {
	shards []*shard[K, V]
	hash   func(K) uint64
	n      atomic.Int64 // resident entries across all shards
}

func newStore[K comparable, V any](shards, capacity int, hash func(K) uint64) *store[K, V] {
	if hash == nil {
		hash = util.NewHasher[K]()
	}
	perShard := (capacity + shards - 1) / shards // split capacity evenly (ceil)
	st := &store[K, V]{
		shards: make([]*shard[K, V], shards),
		hash:   hash,
	}
	for i := range st.shards {
		st.shards[i] = newShard[K, V](perShard)
	}
	return st
}

// shardFor picks a shard by hashing the key.
func (st *store[K, V]) shardFor(k K) *shard[K, V] {
	return st.shards[util.ShardIndex(st.hash(k), len(st.shards))]
}

func (st *store[K, V]) Get(k K) (V, bool) { return st.shardFor(k).get(k) }

func (st *store[K, V]) Contains(k K) bool {
	_, ok := st.shardFor(k).get(k)
	return ok
}

func (st *store[K, V]) Set(k K, v V) {
	if st.shardFor(k).set(k, v) {
		st.n.Add(1)
	}
}

// Delete removes k and returns the value it held, if any.
func (st *store[K, V]) Delete(k K) (V, bool) {
	v, ok := st.shardFor(k).remove(k)
	if ok {
		st.n.Add(-1)
	}
	return v, ok
}

// Clear empties every shard. Concurrent writers may repopulate shards
// that were already cleared.
func (st *store[K, V]) Clear() {
	for _, s := range st.shards {
		if n := s.reset(); n > 0 {
			st.n.Add(-int64(n))
		}
	}
}

// Len returns the number of resident entries.
func (st *store[K, V]) Len() int { return int(st.n.Load()) }
