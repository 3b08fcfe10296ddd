package util

import (
	"math/bits"
	"runtime"
)

// MaxShards caps the number of shards a store may use.
const MaxShards = 256

// ReasonableShardCount picks a practical default shard count based on CPU
// parallelism. Heuristic: nextPow2(2*GOMAXPROCS), clamped to [1..MaxShards].
func ReasonableShardCount() int {
	p := runtime.GOMAXPROCS(0)
	if p < 1 {
		p = 1
	}
	return clampShards(int(NextPow2(uint64(p * 2))))
}

// ShardCount resolves a requested shard count: <= 0 selects
// ReasonableShardCount, anything else is rounded up to a power of two
// and clamped to MaxShards.
func ShardCount(requested int) int {
	if requested <= 0 {
		return ReasonableShardCount()
	}
	return clampShards(int(NextPow2(uint64(requested))))
}

func clampShards(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxShards {
		return MaxShards
	}
	return n
}

// ShardIndex maps a 64-bit hash to a shard index.
// Assumes shard count is a power of two for the fast mask path,
// but remains correct for arbitrary shard counts (uses modulo).
func ShardIndex(hash uint64, shards int) int {
	if shards <= 1 {
		return 0
	}
	// Fast path if shard count is power of two.
	if IsPowerOfTwo(uint64(shards)) {
		return int(hash & uint64(shards-1))
	}
	return int(hash % uint64(shards))
}

// IsPowerOfTwo reports whether x is a power of two (> 0).
func IsPowerOfTwo(x uint64) bool { return x != 0 && x&(x-1) == 0 }

// NextPow2 returns the smallest power of two >= x, with NextPow2(0) == 1.
// Values above 1<<63 are clamped to 1<<63.
func NextPow2(x uint64) uint64 {
	switch {
	case x <= 1:
		return 1
	case x > 1<<63:
		return 1 << 63
	}
	return 1 << bits.Len64(x-1)
}
