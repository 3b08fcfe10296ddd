package lfu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanBrykalov/evictcache/policy"
)

func TestLFU_NewRejectsBadCapacity(t *testing.T) {
	t.Parallel()

	_, err := New[string](-1)
	assert.ErrorIs(t, err, policy.ErrInvalidConfiguration)
}

// put A,B,C; access A twice, B once; put D -> evicts C.
func TestLFU_EvictsLeastFrequent(t *testing.T) {
	t.Parallel()

	p, err := New[string](3)
	require.NoError(t, err)

	p.OnPut("A")
	p.OnPut("B")
	p.OnPut("C")
	p.OnAccess("A") // A=2
	p.OnAccess("A") // A=3
	p.OnAccess("B") // B=2

	v, ev := p.OnPut("D")
	assert.True(t, ev)
	assert.Equal(t, "C", v)

	f, ok := p.Frequency("D")
	assert.True(t, ok)
	assert.Equal(t, uint64(1), f)
	assert.Equal(t, 3, p.Size())

	// D (1) is now the least frequent.
	v, ev = p.OnPut("E")
	assert.True(t, ev)
	assert.Equal(t, "D", v)
}

// Equal frequencies are broken by insertion order.
func TestLFU_TieBreakOldestFirst(t *testing.T) {
	t.Parallel()

	p, _ := New[int](3)
	p.OnPut(1)
	p.OnPut(2)
	p.OnPut(3)

	for _, want := range []int{1, 2, 3} {
		v, ev := p.OnPut(want + 10)
		require.True(t, ev)
		assert.Equal(t, want, v)
		p.OnAccess(want + 10) // keep the newcomer above the remaining first-round keys
	}
}

// Re-inserting a tracked key increments its counter and never evicts.
func TestLFU_RePutIncrements(t *testing.T) {
	t.Parallel()

	p, _ := New[string](2)
	p.OnPut("A")
	p.OnPut("B")

	_, ev := p.OnPut("A")
	assert.False(t, ev)
	f, _ := p.Frequency("A")
	assert.Equal(t, uint64(2), f)

	v, ev := p.OnPut("C")
	assert.True(t, ev)
	assert.Equal(t, "B", v)
}

func TestLFU_OnAccessUnknownIsNoOp(t *testing.T) {
	t.Parallel()

	p, _ := New[string](2)
	p.OnAccess("nope")
	assert.Equal(t, 0, p.Size())
	_, ok := p.Frequency("nope")
	assert.False(t, ok)
}
