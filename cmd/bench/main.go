// Command bench runs a synthetic workload against the cache and exposes optional pprof/Prometheus endpoints.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/IvanBrykalov/evictcache/cache"
	pmet "github.com/IvanBrykalov/evictcache/metrics/prom"
	"github.com/IvanBrykalov/evictcache/policy"
)

// counters shared by all workers
type stats struct {
	total, reads, writes, hits, misses, loadErrs atomic.Uint64
}

func main() {
	// ---- Flags ----
	kind := policy.LRU
	logLevel := slog.LevelInfo
	flag.TextVar(&kind, "policy", policy.LRU, "eviction policy: lru | lfu | fifo | 2q")
	flag.TextVar(&logLevel, "log-level", slog.LevelInfo, "log level: debug | info | warn | error")
	var (
		capacity = flag.Int("cap", 100_000, "cache capacity (entries)")
		shards   = flag.Int("shards", 0, "number of shards (0=auto)")

		workers  = flag.Int("workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
		duration = flag.Duration("duration", 10*time.Second, "benchmark duration")
		readPct  = flag.Int("reads", 80, "read percentage [0..100]")
		loadMode = flag.String("loader", "none", "read path: none (Get) | sync (GetOrLoad) | async (GetAsync)")
		loadLat  = flag.Duration("load-latency", 0, "simulated loader latency")

		keys    = flag.Int("keys", 1_000_000, "keyspace size")
		zipfS   = flag.Float64("zipf_s", 1.1, "Zipf s > 1 (skew)")
		zipfV   = flag.Float64("zipf_v", 1.0, "Zipf v")
		seed    = flag.Int64("seed", time.Now().UnixNano(), "random seed")
		preload = flag.Int("preload", 0, "preload entries (0 = cap/2)")

		pprofAddr   = flag.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
		metricsAddr = flag.String("http", ":8080", "serve Prometheus metrics at addr; empty = disabled")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	switch *loadMode {
	case "none", "sync", "async":
	default:
		log.Error("unknown loader mode", "loader", *loadMode)
		os.Exit(2)
	}
	if *keys < 1 {
		log.Error("keyspace must be positive", "keys", *keys)
		os.Exit(2)
	}
	// rand.NewZipf returns nil outside s > 1, v >= 1
	if *zipfS <= 1 || *zipfV < 1 {
		log.Error("invalid zipf parameters", "zipf_s", *zipfS, "zipf_v", *zipfV)
		os.Exit(2)
	}

	// ---- pprof server (on DefaultServeMux) ----
	if *pprofAddr != "" {
		go serve(log, "pprof", *pprofAddr)
	}

	// ---- Prometheus metrics (on DefaultServeMux) ----
	metrics := pmet.New(nil, "evictcache", "bench", nil)
	if *metricsAddr != "" {
		http.Handle("/metrics", promhttp.Handler())
		go serve(log, "metrics", *metricsAddr)
	}

	// ---- Build cache ----
	c, err := cache.New[string, string](cache.Options[string, string]{
		Policy:   kind,
		Capacity: *capacity,
		Shards:   *shards,
		Metrics:  metrics,
		Logger:   log.With("component", "cache"),
	})
	if err != nil {
		log.Error("build cache", "err", err)
		os.Exit(2)
	}

	// ---- Preload half capacity to get a realistic hit-rate ----
	pl := *preload
	if pl == 0 {
		pl = *capacity / 2
	}
	for i := 0; i < pl; i++ {
		_ = c.Put("k:"+strconv.Itoa(i), "v"+strconv.Itoa(i))
	}

	// ---- Snapshot flags for goroutines ----
	readPctVal := *readPct
	keysMax := uint64(*keys - 1)
	seedBase := *seed
	zipfSVal := *zipfS
	zipfVVal := *zipfV
	workersN := *workers
	if workersN <= 0 {
		workersN = 1
	}
	latency := *loadLat
	mode := *loadMode

	syncLoader := func(ctx context.Context, k string) (string, bool, error) {
		if latency > 0 {
			select {
			case <-time.After(latency):
			case <-ctx.Done():
				return "", false, ctx.Err()
			}
		}
		return "loaded:" + k, true, nil
	}
	asyncLoader := func(ctx context.Context, k string) *cache.Future[string] {
		return cache.Go(ctx, func(ctx context.Context) (string, bool, error) {
			return syncLoader(ctx, k)
		})
	}

	// ---- Load generation ----
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *duration)
	defer cancel()

	var st stats
	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workersN; w++ {
		g.Go(func() error {
			// Each worker gets its own RNG + Zipf (rand.Rand is NOT goroutine-safe).
			localR := rand.New(rand.NewSource(seedBase + int64(w)*9973))
			localZipf := rand.NewZipf(localR, zipfSVal, zipfVVal, keysMax)

			keyByZipf := func() string {
				return "k:" + strconv.FormatUint(localZipf.Uint64(), 10)
			}

			for gctx.Err() == nil {
				st.total.Add(1)
				if int(localR.Int31n(100)) >= readPctVal {
					st.writes.Add(1)
					if err := c.Put(keyByZipf(), "v"+strconv.Itoa(localR.Int())); err != nil {
						return err
					}
					continue
				}

				st.reads.Add(1)
				var (
					ok  bool
					err error
				)
				switch mode {
				case "sync":
					_, ok, err = c.GetOrLoad(gctx, keyByZipf(), syncLoader)
				case "async":
					_, ok, err = c.GetAsync(gctx, keyByZipf(), asyncLoader).Await(gctx)
				default:
					_, ok, err = c.Get(keyByZipf())
				}
				switch {
				case err == nil && ok:
					st.hits.Add(1)
				case err == nil:
					st.misses.Add(1)
				case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
					return nil
				default:
					st.loadErrs.Add(1)
					log.Debug("read failed", "err", err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("workload aborted", "err", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	// ---- Report ----
	ops := st.total.Load()
	readsN := st.reads.Load()
	hitsN := st.hits.Load()

	hitRate := 0.0
	if readsN > 0 {
		hitRate = float64(hitsN) / float64(readsN) * 100
	}

	fmt.Printf("policy=%s cap=%d shards=%d workers=%d keys=%d loader=%s dur=%v seed=%d\n",
		kind, *capacity, *shards, workersN, *keys, mode, elapsed, seedBase)
	fmt.Printf("ops=%d (%.0f ops/s)  reads=%d  writes=%d\n",
		ops, float64(ops)/elapsed.Seconds(), readsN, st.writes.Load())
	fmt.Printf("hits=%d  misses=%d  errors=%d  hit-rate=%.2f%%\n",
		hitsN, st.misses.Load(), st.loadErrs.Load(), hitRate)
	fmt.Printf("Len()=%d\n", c.Len())
}

func serve(log *slog.Logger, name, addr string) {
	log.Info("serving", "endpoint", name, "addr", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Error("http server stopped", "endpoint", name, "err", err)
	}
}
