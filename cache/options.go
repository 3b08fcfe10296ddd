package cache

import (
	"log/slog"
	"time"

	"github.com/IvanBrykalov/evictcache/policy"
)

// LoadOutcome classifies a finished loader call.
type LoadOutcome int

const (
	// LoadStored: the loader produced a value and it was stored.
	LoadStored LoadOutcome = iota
	// LoadEmpty: the loader reported no value; nothing was stored.
	LoadEmpty
	// LoadFailed: the loader returned an error; nothing was stored.
	LoadFailed
)

func (o LoadOutcome) String() string {
	switch o {
	case LoadStored:
		return "stored"
	case LoadEmpty:
		return "empty"
	default:
		return "failed"
	}
}

// Metrics exposes cache-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
type Metrics interface {
	Hit()
	Miss()
	// Evict is called once per policy victim removed from the store.
	Evict()
	// Size reports the resident entry count after a write.
	Size(entries int)
	// Load reports the outcome and latency of a loader call.
	Load(outcome LoadOutcome, d time.Duration)
}

// Options configures the cache. Zero values are safe except for Policy and
// Capacity, which are required by New:
//   - Shards <= 0  => auto (≈ 2*GOMAXPROCS, never above capacity), power of two
//   - nil Hasher   => FNV-1a for strings/ints, hash/maphash otherwise
//   - nil Metrics  => NoopMetrics
//   - nil Logger   => discard
type Options[K comparable, V any] struct {
	// Policy selects the eviction strategy. Unspecified is rejected by New.
	Policy policy.Kind

	// Capacity is the entry count limit enforced by the policy.
	Capacity int

	// Shards defines the number of value-store shards. If 0, an automatic
	// value is chosen and rounded to the next power of two.
	Shards int

	// Hasher maps keys to shard hashes.
	Hasher func(K) uint64

	// OnEvict is called after a policy victim has left the store.
	// It runs on the goroutine that issued the Put, outside any lock.
	OnEvict func(k K, v V)

	// Observability
	Metrics Metrics
	Logger  *slog.Logger
}
