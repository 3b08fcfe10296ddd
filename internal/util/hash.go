// Package util contains internal helpers (hashing, sharding, padding).
//revive:disable:var-naming  // allow 'util' as an internal helpers package name
package util

import (
	"hash/maphash"
)

// Hasher maps a key to a 64-bit hash used for shard selection.
type Hasher[K comparable] func(K) uint64

// NewHasher returns the default key hasher: 64-bit FNV-1a for strings,
// byte arrays and integer widths, and hash/maphash (with a per-hasher
// random seed) for every other comparable type.
func NewHasher[K comparable]() Hasher[K] {
	seed := maphash.MakeSeed()
	return func(k K) uint64 {
		if h, ok := Fnv64a(k); ok {
			return h
		}
		return maphash.Comparable(seed, k)
	}
}

// Fnv64a hashes common key types using 64-bit FNV-1a.
// Supported: string, [16|32|64]byte, all int/uint widths, uintptr.
// ok is false for other types.
func Fnv64a[K comparable](k K) (h uint64, ok bool) {
	switch v := any(k).(type) {
	case string:
		return fnv64aFromString(v), true
	case [16]byte:
		return fnv64aFromBytes(v[:]), true
	case [32]byte:
		return fnv64aFromBytes(v[:]), true
	case [64]byte:
		return fnv64aFromBytes(v[:]), true

	// Integer-like keys: hash little-endian bytes of the value.
	case uint8:
		return fnv64aFromUint64(uint64(v)), true
	case uint16:
		return fnv64aFromUint64(uint64(v)), true
	case uint32:
		return fnv64aFromUint64(uint64(v)), true
	case uint64:
		return fnv64aFromUint64(v), true
	case uint:
		return fnv64aFromUint64(uint64(v)), true
	case uintptr:
		return fnv64aFromUint64(uint64(v)), true
	case int8:
		return fnv64aFromUint64(uint64(uint8(v))), true
	case int16:
		return fnv64aFromUint64(uint64(uint16(v))), true
	case int32:
		return fnv64aFromUint64(uint64(uint32(v))), true
	case int64:
		return fnv64aFromUint64(uint64(v)), true
	case int:
		return fnv64aFromUint64(uint64(v)), true
	default:
		return 0, false
	}
}

const (
	fnvOffset64 = 1469598103934665603
	fnvPrime64  = 1099511628211
)

func fnv64aFromString(s string) uint64 {
	h := uint64(fnvOffset64)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= fnvPrime64
	}
	return h
}

func fnv64aFromBytes(b []byte) uint64 {
	h := uint64(fnvOffset64)
	for _, c := range b {
		h ^= uint64(c)
		h *= fnvPrime64
	}
	return h
}

func fnv64aFromUint64(u uint64) uint64 {
	// Hash the 8 little-endian bytes of u without allocating.
	h := uint64(fnvOffset64)
	for i := 0; i < 8; i++ {
		h ^= uint64(byte(u))
		h *= fnvPrime64
		u >>= 8
	}
	return h
}
