// Package lru implements the LRU eviction policy.
package lru

import (
	"container/list"
	"sync"

	"github.com/IvanBrykalov/evictcache/policy"
)

// Policy is a classic "move-to-front" Least-Recently-Used policy over keys.
// The list front is MRU, the back is LRU.
type Policy[K comparable] struct {
	mu    sync.Mutex
	order *list.List // element.Value is K
	idx   map[K]*list.Element
	cap   int
}

// New returns an LRU policy tracking at most capacity keys.
func New[K comparable](capacity int) (*Policy[K], error) {
	if err := policy.ValidateCapacity(capacity); err != nil {
		return nil, err
	}
	return &Policy[K]{
		order: list.New(),
		idx:   make(map[K]*list.Element, capacity),
		cap:   capacity,
	}, nil
}

// OnPut moves key to MRU (inserting it if new). When that pushes the
// tracked size past capacity, the LRU key is dropped and returned.
func (p *Policy[K]) OnPut(key K) (victim K, evicted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if el, ok := p.idx[key]; ok {
		p.order.MoveToFront(el)
		return victim, false
	}
	p.idx[key] = p.order.PushFront(key)

	if p.order.Len() > p.cap {
		tail := p.order.Back()
		victim = p.order.Remove(tail).(K)
		delete(p.idx, victim)
		return victim, true
	}
	return victim, false
}

// OnAccess promotes a tracked key to MRU.
func (p *Policy[K]) OnAccess(key K) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if el, ok := p.idx[key]; ok {
		p.order.MoveToFront(el)
	}
}

// Size returns the number of tracked keys.
func (p *Policy[K]) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.order.Len()
}

// Tracks reports whether key is tracked.
func (p *Policy[K]) Tracks(key K) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.idx[key]
	return ok
}

// Capacity returns the configured capacity.
func (p *Policy[K]) Capacity() int { return p.cap }

// Keys returns tracked keys from MRU to LRU.
func (p *Policy[K]) Keys() []K {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]K, 0, p.order.Len())
	for el := p.order.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value.(K))
	}
	return out
}

var (
	_ policy.EvictionPolicy[string] = (*Policy[string])(nil)
	_ policy.Tracker[string]        = (*Policy[string])(nil)
)
