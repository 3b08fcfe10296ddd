// Package fifo implements the First-In-First-Out eviction policy.
package fifo

import (
	"container/list"
	"sync"

	"github.com/IvanBrykalov/evictcache/policy"
)

// Policy evicts keys in strict insertion order; reads never reorder.
//
// Re-inserting a key that is already tracked appends a second entry for
// it: duplicates are not collapsed and each one occupies a slot.
type Policy[K comparable] struct {
	mu    sync.Mutex
	queue *list.List // front = oldest; element.Value is K
	count map[K]int  // queue entries per key
	cap   int
}

// New returns a FIFO policy tracking at most capacity entries.
func New[K comparable](capacity int) (*Policy[K], error) {
	if err := policy.ValidateCapacity(capacity); err != nil {
		return nil, err
	}
	return &Policy[K]{queue: list.New(), count: make(map[K]int, capacity), cap: capacity}, nil
}

// OnPut appends key to the tail and pops the head if capacity is exceeded.
func (p *Policy[K]) OnPut(key K) (victim K, evicted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.queue.PushBack(key)
	p.count[key]++
	if p.queue.Len() > p.cap {
		victim = p.queue.Remove(p.queue.Front()).(K)
		if p.count[victim]--; p.count[victim] == 0 {
			delete(p.count, victim)
		}
		return victim, true
	}
	return victim, false
}

// OnAccess is a no-op: FIFO ignores read recency.
func (p *Policy[K]) OnAccess(K) {}

// Size returns the number of tracked entries (duplicates included).
func (p *Policy[K]) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queue.Len()
}

// Tracks reports whether at least one queue entry holds key.
func (p *Policy[K]) Tracks(key K) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count[key] > 0
}

// Capacity returns the configured capacity.
func (p *Policy[K]) Capacity() int { return p.cap }

var (
	_ policy.EvictionPolicy[string] = (*Policy[string])(nil)
	_ policy.Tracker[string]        = (*Policy[string])(nil)
)
