// Package policy defines the eviction policy contract shared by the cache
// facade and the concrete strategies (fifo, lru, lfu, twoq).
package policy

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfiguration is returned when a policy or cache is constructed
// with a non-positive capacity or an unknown policy kind.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// EvictionPolicy tracks keys (never values) and decides which key leaves
// the cache when capacity is exceeded.
//
// Implementations serialize their own state behind a per-instance mutex,
// so all methods are safe for concurrent use. The policy lock is never
// held while the caller touches its value store.
type EvictionPolicy[K comparable] interface {
	// OnPut records an insertion (or re-insertion) of key. If the tracked
	// count would exceed Capacity, exactly one victim is chosen, removed
	// from tracking and returned with evicted == true.
	OnPut(key K) (victim K, evicted bool)

	// OnAccess records a read of key. Unknown keys are ignored.
	OnAccess(key K)

	// Size returns the number of tracked entries.
	Size() int

	// Capacity returns the fixed capacity given at construction.
	Capacity() int
}

// Tracker is implemented by policies that can report whether a key is
// currently tracked. The cache uses it to refuse a write when the policy
// evicted the very key being put and no longer tracks it.
type Tracker[K comparable] interface {
	Tracks(key K) bool
}

// ValidateCapacity returns ErrInvalidConfiguration for capacity <= 0.
func ValidateCapacity(capacity int) error {
	if capacity <= 0 {
		return fmt.Errorf("%w: capacity must be > 0, got %d", ErrInvalidConfiguration, capacity)
	}
	return nil
}

// Kind names an eviction strategy.
type Kind int

const (
	// Unspecified is the zero Kind; constructing a cache with it fails.
	Unspecified Kind = iota
	// LRU evicts the least recently used key.
	LRU
	// LFU evicts the least frequently used key (oldest first on ties).
	LFU
	// FIFO evicts the oldest inserted key and ignores reads.
	FIFO
	// TwoQ is the 2Q policy: a probation FIFO, a main LRU and a ghost queue.
	TwoQ
)

var kindNames = map[Kind]string{
	LRU:  "lru",
	LFU:  "lfu",
	FIFO: "fifo",
	TwoQ: "2q",
}

// Kinds lists every supported Kind in declaration order.
func Kinds() []Kind { return []Kind{LRU, LFU, FIFO, TwoQ} }

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	if k == Unspecified {
		return "unspecified"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k names a supported strategy.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseKind maps a case-insensitive name ("lru", "lfu", "fifo", "2q") to a Kind.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "twoq" {
		name = "2q"
	}
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return Unspecified, fmt.Errorf("%w: unknown policy %q", ErrInvalidConfiguration, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: unknown policy %s", ErrInvalidConfiguration, k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, so a Kind can be used
// with flag.TextVar and text-based config decoders.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
