package cache

import (
	"context"
	"math/rand"
	"runtime"
	"strconv"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/IvanBrykalov/evictcache/policy"
)

// A mixed workload of concurrent Put/Get/GetOrLoad/Remove on random keys,
// once per policy. Should pass under `-race` without detector reports.
func TestRace_Mixed(t *testing.T) {
	for _, kind := range policy.Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			t.Parallel()

			c, err := New[string, []byte](Options[string, []byte]{
				Policy:   kind,
				Capacity: 1_024,
				Shards:   16,
			})
			if err != nil {
				t.Fatal(err)
			}
			loader := func(_ context.Context, k string) ([]byte, bool, error) {
				return []byte(k), true, nil
			}

			workers := 4 * runtime.GOMAXPROCS(0)
			keyspace := 8_192
			deadline := time.Now().Add(500 * time.Millisecond)

			var g errgroup.Group
			for w := 0; w < workers; w++ {
				g.Go(func() error {
					r := rand.New(rand.NewSource(int64(w)*9973 + 1))
					for time.Now().Before(deadline) {
						k := "k:" + strconv.Itoa(r.Intn(keyspace))
						switch n := r.Intn(100); {
						case n < 5: // ~5% Remove
							if err := c.Remove(k); err != nil {
								return err
							}
						case n < 10: // ~5% GetOrLoad
							if _, _, err := c.GetOrLoad(context.Background(), k, loader); err != nil {
								return err
							}
						case n < 30: // ~20% Put
							if err := c.Put(k, []byte(k)); err != nil {
								return err
							}
						default: // ~70% Get
							if _, _, err := c.Get(k); err != nil {
								return err
							}
						}
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				t.Fatal(err)
			}
		})
	}
}

// Concurrent GetAsync calls on overlapping keys all resolve with the
// loaded value.
func TestRace_GetAsync(t *testing.T) {
	t.Parallel()

	c, err := Create[int, int](policy.LFU, 64)
	if err != nil {
		t.Fatal(err)
	}
	loader := func(ctx context.Context, k int) *Future[int] {
		return Go(ctx, func(context.Context) (int, bool, error) {
			return k * 10, true, nil
		})
	}

	ctx := context.Background()
	var g errgroup.Group
	for i := 0; i < 200; i++ {
		g.Go(func() error {
			k := i % 32
			v, ok, err := c.GetAsync(ctx, k, loader).Await(ctx)
			if err != nil {
				return err
			}
			if !ok || v != k*10 {
				t.Errorf("key %d: got %d ok=%v", k, v, ok)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}
