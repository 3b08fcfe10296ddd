package cache

import (
	"context"

	"github.com/IvanBrykalov/evictcache/policy"
)

// Loader fetches a value on a cache miss. found == false means "no value":
// nothing is stored and the miss is reported to the caller.
type Loader[K comparable, V any] func(ctx context.Context, key K) (v V, found bool, err error)

// AsyncLoader is the asynchronous form of Loader: it starts the fetch and
// returns a future for its result.
type AsyncLoader[K comparable, V any] func(ctx context.Context, key K) *Future[V]

// Cache is a capacity-bounded in-memory key/value cache whose evictions are
// decided by a pluggable policy. All methods are safe for concurrent use by
// multiple goroutines.
//
// Every method taking a key or value rejects nil ones (nil pointer, map,
// chan, func or interface) with ErrInvalidArgument before touching state.
type Cache[K comparable, V any] interface {
	// Get returns the value for key and a presence flag.
	// A hit is reported to the policy; a miss leaves the policy untouched.
	Get(key K) (V, bool, error)

	// GetOrLoad returns the cached value, or on miss calls loader
	// synchronously and stores what it found. A loader error is returned
	// as *LoadError and nothing is stored. Concurrent misses on the same
	// key each run the loader; the last Put wins.
	GetOrLoad(ctx context.Context, key K, loader Loader[K, V]) (V, bool, error)

	// GetAsync is the asynchronous GetOrLoad. A hit returns an already
	// resolved future. On miss the returned future completes after the
	// loader's future completes and any value has been stored; it is
	// rejected with ctx.Err() if ctx is done first.
	GetAsync(ctx context.Context, key K, loader AsyncLoader[K, V]) *Future[V]

	// Put stores key→value. The policy is consulted first; if it names a
	// victim, the victim is removed from the store before value is written.
	// If the victim is key itself and the policy no longer tracks it, the
	// write is skipped so the store never holds keys the policy forgot.
	Put(key K, value V) error

	// Remove deletes key from the store. The policy is not notified and may
	// keep tracking key until it is evicted or re-inserted.
	Remove(key K) error

	// Clear empties the store. Policy state is kept, as with Remove.
	Clear()

	// ContainsKey reports store membership without touching the policy.
	ContainsKey(key K) (bool, error)

	// Len returns the number of resident entries.
	Len() int

	// Capacity returns the policy capacity.
	Capacity() int

	// Policy returns the configured policy kind (Unspecified for a policy
	// supplied through NewWithPolicy without a kind).
	Policy() policy.Kind
}
