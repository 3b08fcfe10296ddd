package cache

import (
	"fmt"

	"github.com/IvanBrykalov/evictcache/internal/util"
	"github.com/IvanBrykalov/evictcache/policy"
	"github.com/IvanBrykalov/evictcache/policy/fifo"
	"github.com/IvanBrykalov/evictcache/policy/lfu"
	"github.com/IvanBrykalov/evictcache/policy/lru"
	"github.com/IvanBrykalov/evictcache/policy/twoq"
)

// NewPolicy constructs the eviction policy named by kind.
// It fails with ErrInvalidConfiguration for an unknown kind or capacity <= 0.
func NewPolicy[K comparable](kind policy.Kind, capacity int) (policy.EvictionPolicy[K], error) {
	switch kind {
	case policy.LRU:
		p, err := lru.New[K](capacity)
		if err != nil {
			return nil, err
		}
		return p, nil
	case policy.LFU:
		p, err := lfu.New[K](capacity)
		if err != nil {
			return nil, err
		}
		return p, nil
	case policy.FIFO:
		p, err := fifo.New[K](capacity)
		if err != nil {
			return nil, err
		}
		return p, nil
	case policy.TwoQ:
		p, err := twoq.New[K](capacity)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: unsupported policy %s", ErrInvalidConfiguration, kind)
	}
}

// Create builds a cache for the given policy kind and capacity with
// default options.
func Create[K comparable, V any](kind policy.Kind, capacity int) (Cache[K, V], error) {
	return New[K, V](Options[K, V]{Policy: kind, Capacity: capacity})
}

// New constructs a cache with the provided Options.
// Policy and Capacity are required; see Options for the other defaults.
func New[K comparable, V any](opt Options[K, V]) (Cache[K, V], error) {
	p, err := NewPolicy[K](opt.Policy, opt.Capacity)
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	return newCache(p, opt.Policy, opt), nil
}

// NewWithPolicy binds a caller-supplied policy instance. opt.Capacity is
// ignored in favour of p.Capacity(); opt.Policy is only reported by
// Cache.Policy.
func NewWithPolicy[K comparable, V any](p policy.EvictionPolicy[K], opt Options[K, V]) (Cache[K, V], error) {
	if p == nil {
		return nil, fmt.Errorf("cache: %w: nil policy", ErrInvalidConfiguration)
	}
	if err := policy.ValidateCapacity(p.Capacity()); err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	opt.Capacity = p.Capacity()
	return newCache(p, opt.Policy, opt), nil
}

func newCache[K comparable, V any](p policy.EvictionPolicy[K], kind policy.Kind, opt Options[K, V]) *cache[K, V] {
	// default Metrics
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	log := opt.Logger
	if log == nil {
		log = newNopLogger()
	}

	// number of shards -> power of two; small caches don't need many
	sh := util.ShardCount(opt.Shards)
	if opt.Shards <= 0 {
		if limit := int(util.NextPow2(uint64(opt.Capacity))); sh > limit {
			sh = limit
		}
	}

	track, _ := p.(policy.Tracker[K])

	return &cache[K, V]{
		pol:         p,
		track:       track,
		kind:        kind,
		store:       newStore[K, V](sh, opt.Capacity, opt.Hasher),
		opt:         opt,
		log:         log.With("policy", kind.String()),
		keyNillable: nillable[K](),
		valNillable: nillable[V](),
	}
}
