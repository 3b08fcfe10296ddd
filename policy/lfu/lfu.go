// Package lfu implements the Least-Frequently-Used eviction policy.
package lfu

import (
	"container/heap"
	"sync"

	"github.com/IvanBrykalov/evictcache/policy"
)

// entry is one tracked key in the min-heap.
type entry[K comparable] struct {
	key  K
	freq uint64
	seq  uint64 // insertion order, breaks frequency ties (oldest first)
	idx  int    // position in the heap
}

// minHeap orders entries by (freq, seq) so the root is always the victim.
type minHeap[K comparable] []*entry[K]

func (h minHeap[K]) Len() int { return len(h) }

func (h minHeap[K]) Less(i, j int) bool {
	if h[i].freq != h[j].freq {
		return h[i].freq < h[j].freq
	}
	return h[i].seq < h[j].seq
}

func (h minHeap[K]) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].idx = i
	h[j].idx = j
}

func (h *minHeap[K]) Push(x any) {
	e := x.(*entry[K])
	e.idx = len(*h)
	*h = append(*h, e)
}

func (h *minHeap[K]) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.idx = -1
	*h = old[:n-1]
	return e
}

// Policy evicts the key with the lowest access/insertion count. Among keys
// with equal counts the one inserted earliest goes first.
type Policy[K comparable] struct {
	mu    sync.Mutex
	h     minHeap[K]
	items map[K]*entry[K]
	seq   uint64
	cap   int
}

// New returns an LFU policy tracking at most capacity keys.
func New[K comparable](capacity int) (*Policy[K], error) {
	if err := policy.ValidateCapacity(capacity); err != nil {
		return nil, err
	}
	return &Policy[K]{
		h:     make(minHeap[K], 0, capacity),
		items: make(map[K]*entry[K], capacity),
		cap:   capacity,
	}, nil
}

// OnPut bumps the counter of a tracked key, or admits a new key with
// frequency 1 after evicting the least frequent key when full.
func (p *Policy[K]) OnPut(key K) (victim K, evicted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if e, ok := p.items[key]; ok {
		e.freq++
		heap.Fix(&p.h, e.idx)
		return victim, false
	}

	if len(p.h) >= p.cap {
		e := heap.Pop(&p.h).(*entry[K])
		delete(p.items, e.key)
		victim, evicted = e.key, true
	}

	p.seq++
	e := &entry[K]{key: key, freq: 1, seq: p.seq}
	heap.Push(&p.h, e)
	p.items[key] = e
	return victim, evicted
}

// OnAccess increments the counter of a tracked key.
func (p *Policy[K]) OnAccess(key K) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if e, ok := p.items[key]; ok {
		e.freq++
		heap.Fix(&p.h, e.idx)
	}
}

// Size returns the number of tracked keys.
func (p *Policy[K]) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.h)
}

// Capacity returns the configured capacity.
func (p *Policy[K]) Capacity() int { return p.cap }

// Tracks reports whether key is tracked.
func (p *Policy[K]) Tracks(key K) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.items[key]
	return ok
}

// Frequency returns the counter for key and whether it is tracked.
func (p *Policy[K]) Frequency(key K) (uint64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if e, ok := p.items[key]; ok {
		return e.freq, true
	}
	return 0, false
}

var (
	_ policy.EvictionPolicy[string] = (*Policy[string])(nil)
	_ policy.Tracker[string]        = (*Policy[string])(nil)
)
