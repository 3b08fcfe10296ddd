// Package cache provides a generic, capacity-bounded in-memory cache whose
// evictions are decided by a pluggable policy (LRU, LFU, FIFO or 2Q), with
// synchronous and asynchronous read-through loading.
//
// Design
//
//   - Policy: a policy.EvictionPolicy tracks keys only. Put asks it first;
//     when it names a victim, the victim leaves the value store before the
//     new value is written. Get reports hits to the policy, misses are not
//     tracked.
//
//   - Storage: values live in a sharded map. Each shard has its own RWMutex;
//     the shard count is a power of two chosen by a heuristic
//     (≈ 2*GOMAXPROCS, never above capacity) unless Options.Shards is set.
//
//   - Concurrency: every policy serializes its own state with a mutex. The
//     policy lock and the shard locks are never held together, and loaders
//     never run under a lock. A victim may briefly remain visible after the
//     policy dropped it.
//
//   - Remove/Clear only touch the store. The policy keeps tracking removed
//     keys until they are evicted or re-inserted.
//
//   - Loading: GetOrLoad and GetAsync call the loader on every miss. There is
//     no single-flight: concurrent misses for one key each load, and the last
//     Put wins.
//
//   - Errors: ErrInvalidConfiguration from constructors, ErrInvalidArgument
//     for nil keys/values/loaders, *LoadError (errors.Is ErrLoadFailure) for
//     loader failures.
//
//   - Observability: Options.Metrics receives Hit/Miss/Evict/Size/Load
//     signals (NoopMetrics by default; see metrics/prom), Options.Logger
//     receives debug records (silent by default), Options.OnEvict is called
//     for every evicted resident entry.
//
// Basic usage
//
//	c, err := cache.Create[string, []byte](policy.LRU, 10_000)
//	if err != nil {
//	    return err
//	}
//	_ = c.Put("a", []byte("1"))
//	if v, ok, _ := c.Get("a"); ok {
//	    _ = v // use value
//	}
//	_ = c.Remove("a")
//
// Read-through
//
//	v, found, err := c.GetOrLoad(ctx, "user:42", func(ctx context.Context, k string) ([]byte, bool, error) {
//	    return db.Lookup(ctx, k) // e.g. fetch from DB
//	})
//
// Asynchronous read-through
//
//	f := c.GetAsync(ctx, "user:42", func(ctx context.Context, k string) *cache.Future[[]byte] {
//	    return cache.Go(ctx, func(ctx context.Context) ([]byte, bool, error) {
//	        return db.Lookup(ctx, k)
//	    })
//	})
//	v, found, err := f.Await(ctx)
//
// Exporting metrics (Prometheus adapter)
//
//	m := prom.New(nil, "evictcache", "demo", nil) // implements Metrics
//	c, err := cache.New[string, []byte](cache.Options[string, []byte]{
//	    Policy:   policy.LFU,
//	    Capacity: 10_000,
//	    Metrics:  m,
//	})
package cache
