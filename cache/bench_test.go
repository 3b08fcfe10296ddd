package cache

import (
	"math/rand"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/IvanBrykalov/evictcache/policy"
)

// benchmarkMix exercises a read/write mix against a warm cache.
// RunParallel spawns GOMAXPROCS goroutines; string keys include
// strconv/concat costs.
func benchmarkMix(b *testing.B, kind policy.Kind, readsPct int) {
	c, err := Create[string, string](kind, 50_000)
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < 25_000; i++ {
		_ = c.Put("k:"+strconv.Itoa(i), "v")
	}

	b.ReportAllocs()
	b.ResetTimer()

	var seed int64 = 1
	keyMask := (1 << 16) - 1 // hot keyspace larger than capacity

	b.RunParallel(func(pb *testing.PB) {
		r := rand.New(rand.NewSource(atomic.AddInt64(&seed, 1)))
		i := 0
		for pb.Next() {
			k := "k:" + strconv.Itoa(i&keyMask)
			if r.Intn(100) < readsPct {
				_, _, _ = c.Get(k)
			} else {
				_ = c.Put(k, "v")
			}
			i++
		}
	})
}

func BenchmarkCache_90r10w(b *testing.B) {
	for _, kind := range policy.Kinds() {
		b.Run(kind.String(), func(b *testing.B) { benchmarkMix(b, kind, 90) })
	}
}

func BenchmarkCache_50r50w(b *testing.B) {
	for _, kind := range policy.Kinds() {
		b.Run(kind.String(), func(b *testing.B) { benchmarkMix(b, kind, 50) })
	}
}

// benchmarkMixInt is the same workload with int keys: no strconv noise,
// and the FNV fast path in the hasher.
func benchmarkMixInt(b *testing.B, readsPct int) {
	c, err := Create[int, int](policy.LRU, 50_000)
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < 25_000; i++ {
		_ = c.Put(i, 1)
	}

	b.ReportAllocs()
	b.ResetTimer()

	var seed int64 = 1
	keyMask := (1 << 16) - 1

	b.RunParallel(func(pb *testing.PB) {
		r := rand.New(rand.NewSource(atomic.AddInt64(&seed, 1)))
		i := 0
		for pb.Next() {
			k := i & keyMask
			if r.Intn(100) < readsPct {
				_, _, _ = c.Get(k)
			} else {
				_ = c.Put(k, 1)
			}
			i++
		}
	})
}

func BenchmarkCache_IntKeys_90r10w(b *testing.B) { benchmarkMixInt(b, 90) }
func BenchmarkCache_IntKeys_50r50w(b *testing.B) { benchmarkMixInt(b, 50) }
