// Package twoq implements the 2Q eviction policy over keys.
package twoq

import (
	"container/list"
	"sync"

	"github.com/IvanBrykalov/evictcache/policy"
)

// Policy implements 2Q.
//
// Resident queues:
//   - A1in (probation): FIFO of first-time keys; MRU at Front()
//   - Am   (main)     : LRU of keys that were hit again; MRU at Front()
//
// Ghost A1out: keys recently evicted from A1in. A key found there on
// re-admission bypasses A1in and goes straight to Am.
type Policy[K comparable] struct {
	mu sync.Mutex

	cap      int // resident capacity (A1in + Am)
	capIn    int // A1in share
	capGhost int // A1out size

	inList *list.List
	inIdx  map[K]*list.Element

	amList *list.List
	amIdx  map[K]*list.Element

	ghostList *list.List
	ghostIdx  map[K]*list.Element
}

// New constructs a 2Q policy with the usual shares:
// A1in ≈ 25% of capacity, ghosts ≈ 50% of capacity (both at least 1).
func New[K comparable](capacity int) (*Policy[K], error) {
	return NewWithShares[K](capacity, capacity/4, capacity/2)
}

// NewWithShares constructs a 2Q policy with explicit A1in and ghost sizes.
// Non-positive shares are clamped to 1.
func NewWithShares[K comparable](capacity, capIn, capGhost int) (*Policy[K], error) {
	if err := policy.ValidateCapacity(capacity); err != nil {
		return nil, err
	}
	if capIn < 1 {
		capIn = 1
	}
	if capGhost < 1 {
		capGhost = 1
	}
	return &Policy[K]{
		cap:       capacity,
		capIn:     capIn,
		capGhost:  capGhost,
		inList:    list.New(),
		inIdx:     make(map[K]*list.Element),
		amList:    list.New(),
		amIdx:     make(map[K]*list.Element),
		ghostList: list.New(),
		ghostIdx:  make(map[K]*list.Element),
	}, nil
}

// OnPut admission rules:
//   - key in Am: move to MRU
//   - key in A1in: promote to Am (a second touch)
//   - key in ghosts: drop the ghost and admit directly into Am
//   - otherwise admit into A1in
//
// If the resident count now exceeds capacity one victim is returned.
func (q *Policy[K]) OnPut(key K) (victim K, evicted bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.touchLocked(key) {
		return victim, false
	}

	if ge, ok := q.ghostIdx[key]; ok {
		q.ghostList.Remove(ge)
		delete(q.ghostIdx, key)
		q.amIdx[key] = q.amList.PushFront(key)
	} else {
		q.inIdx[key] = q.inList.PushFront(key)
	}

	if q.inList.Len()+q.amList.Len() > q.cap {
		return q.evictLocked(key), true
	}
	return victim, false
}

// OnAccess promotes an A1in key to Am, or moves an Am key to MRU.
func (q *Policy[K]) OnAccess(key K) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.touchLocked(key)
}

// Size returns the number of resident (non-ghost) keys.
func (q *Policy[K]) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.inList.Len() + q.amList.Len()
}

// Tracks reports whether key is resident in A1in or Am. Ghosts don't count.
func (q *Policy[K]) Tracks(key K) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, in := q.inIdx[key]
	_, am := q.amIdx[key]
	return in || am
}

// Capacity returns the configured resident capacity.
func (q *Policy[K]) Capacity() int { return q.cap }

// touchLocked handles a hit on a resident key and reports whether key was resident.
func (q *Policy[K]) touchLocked(key K) bool {
	if el, ok := q.amIdx[key]; ok {
		q.amList.MoveToFront(el)
		return true
	}
	if el, ok := q.inIdx[key]; ok {
		q.inList.Remove(el)
		delete(q.inIdx, key)
		q.amIdx[key] = q.amList.PushFront(key)
		return true
	}
	return false
}

// evictLocked drops A1in's oldest key while A1in is over its share (or Am
// is empty), remembering it as a ghost; otherwise drops Am's LRU key.
// The key just admitted is never chosen: when it is the only candidate on
// one side, the other side gives up its tail. Callers only evict when the
// resident count exceeds capacity, so both sides can't be just admitted.
func (q *Policy[K]) evictLocked(admitted K) K {
	fromIn := q.inList.Len() > q.capIn || q.amList.Len() == 0
	switch {
	case !fromIn && q.amList.Back().Value.(K) == admitted:
		fromIn = true
	case fromIn && q.inList.Back().Value.(K) == admitted && q.amList.Len() > 0:
		fromIn = false
	}

	if fromIn {
		k := q.inList.Remove(q.inList.Back()).(K)
		delete(q.inIdx, k)
		q.rememberLocked(k)
		return k
	}
	k := q.amList.Remove(q.amList.Back()).(K)
	delete(q.amIdx, k)
	return k
}

// rememberLocked pushes k into ghosts, trimming the oldest ghosts.
func (q *Policy[K]) rememberLocked(k K) {
	if old, ok := q.ghostIdx[k]; ok {
		q.ghostList.Remove(old)
	}
	q.ghostIdx[k] = q.ghostList.PushFront(k)
	for q.ghostList.Len() > q.capGhost {
		tail := q.ghostList.Back()
		delete(q.ghostIdx, tail.Value.(K))
		q.ghostList.Remove(tail)
	}
}

var (
	_ policy.EvictionPolicy[string] = (*Policy[string])(nil)
	_ policy.Tracker[string]        = (*Policy[string])(nil)
)
