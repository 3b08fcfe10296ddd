package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/IvanBrykalov/evictcache/policy"
)

var errNilFuture = errors.New("async loader returned a nil future")

// cache couples one eviction policy with the sharded value store.
//
// The policy lock and the shard locks are separate domains and are never
// held together. Between "policy picked a victim" and "store deleted it"
// another goroutine may still observe the victim.
type cache[K comparable, V any] struct {
	pol   policy.EvictionPolicy[K]
	track policy.Tracker[K] // nil when pol can't report membership
	kind  policy.Kind
	store *store[K, V]
	opt   Options[K, V]
	log   *slog.Logger

	// computed once: whether K/V can hold nil at all
	keyNillable bool
	valNillable bool
}

// ---- Cache[K,V] implementation ----

// Get returns the value for key and a presence flag.
func (c *cache[K, V]) Get(key K) (V, bool, error) {
	var zero V
	if err := c.checkKey(key); err != nil {
		return zero, false, err
	}
	v, ok := c.store.Get(key)
	if !ok {
		c.opt.Metrics.Miss()
		return zero, false, nil
	}
	c.pol.OnAccess(key)
	c.opt.Metrics.Hit()
	return v, true, nil
}

// GetOrLoad returns the value for key; on miss it runs loader and stores
// a found value before returning it.
func (c *cache[K, V]) GetOrLoad(ctx context.Context, key K, loader Loader[K, V]) (V, bool, error) {
	var zero V
	if loader == nil {
		return zero, false, ErrNoLoader
	}
	if v, ok, err := c.Get(key); err != nil || ok {
		return v, ok, err
	}

	start := time.Now()
	v, found, err := loader(ctx, key)
	return c.finishLoad(key, v, found, err, start)
}

// GetAsync is the future-returning form of GetOrLoad.
func (c *cache[K, V]) GetAsync(ctx context.Context, key K, loader AsyncLoader[K, V]) *Future[V] {
	if loader == nil {
		return Rejected[V](ErrNoLoader)
	}
	v, ok, err := c.Get(key)
	if err != nil {
		return Rejected[V](err)
	}
	if ok {
		return Resolved(v, true)
	}

	start := time.Now()
	lf := loader(ctx, key)
	if lf == nil {
		_, _, err := c.finishLoad(key, v, false, errNilFuture, start)
		return Rejected[V](err)
	}

	out := NewFuture[V]()
	go func() {
		select {
		case <-lf.Done():
		case <-ctx.Done():
			c.log.Debug("cache: async load abandoned", "key", key, "err", ctx.Err())
			out.Reject(ctx.Err())
			return
		}
		lv, found, lerr := lf.Result()
		out.complete(c.finishLoad(key, lv, found, lerr, start))
	}()
	return out
}

// Put stores key→value, evicting the policy's victim first.
func (c *cache[K, V]) Put(key K, value V) error {
	if err := c.checkKey(key); err != nil {
		return err
	}
	if c.valNillable && isNil(value) {
		return fmt.Errorf("%w: nil value for key %v", ErrInvalidArgument, key)
	}

	if victim, evicted := c.pol.OnPut(key); evicted {
		old, present := c.store.Delete(victim)
		c.opt.Metrics.Evict()
		c.log.Debug("cache: evicted", "victim", victim, "for", key, "resident", present)
		if present && c.opt.OnEvict != nil {
			c.opt.OnEvict(victim, old)
		}
		// a policy that dropped the key it was just given would leave an
		// untracked entry behind; keep the store within the policy instead
		if victim == key && c.track != nil && !c.track.Tracks(key) {
			c.log.Debug("cache: policy rejected admission", "key", key)
			c.opt.Metrics.Size(c.store.Len())
			return nil
		}
	}
	c.store.Set(key, value)
	c.opt.Metrics.Size(c.store.Len())
	return nil
}

// Remove deletes key from the store only.
func (c *cache[K, V]) Remove(key K) error {
	if err := c.checkKey(key); err != nil {
		return err
	}
	c.store.Delete(key)
	return nil
}

// Clear empties the store only.
func (c *cache[K, V]) Clear() {
	c.store.Clear()
	c.opt.Metrics.Size(c.store.Len())
}

// ContainsKey reports store membership.
func (c *cache[K, V]) ContainsKey(key K) (bool, error) {
	if err := c.checkKey(key); err != nil {
		return false, err
	}
	return c.store.Contains(key), nil
}

func (c *cache[K, V]) Len() int            { return c.store.Len() }
func (c *cache[K, V]) Capacity() int       { return c.pol.Capacity() }
func (c *cache[K, V]) Policy() policy.Kind { return c.kind }

// ---- helpers ----

func (c *cache[K, V]) checkKey(key K) error {
	if c.keyNillable && isNil(key) {
		return fmt.Errorf("%w: nil key", ErrInvalidArgument)
	}
	return nil
}

// finishLoad stores a loader result and reports it to metrics and logs.
// Loader errors come back as *LoadError; nothing is stored for them.
func (c *cache[K, V]) finishLoad(key K, v V, found bool, err error, start time.Time) (V, bool, error) {
	var zero V
	if err != nil {
		c.opt.Metrics.Load(LoadFailed, time.Since(start))
		c.log.Debug("cache: loader failed", "key", key, "err", err)
		return zero, false, &LoadError{Key: key, Err: err}
	}
	if !found {
		c.opt.Metrics.Load(LoadEmpty, time.Since(start))
		return zero, false, nil
	}
	if err := c.Put(key, v); err != nil {
		c.opt.Metrics.Load(LoadFailed, time.Since(start))
		return zero, false, err
	}
	c.opt.Metrics.Load(LoadStored, time.Since(start))
	return v, true, nil
}
