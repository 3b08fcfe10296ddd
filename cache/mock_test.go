package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockPolicy records every policy call the facade makes.
type mockPolicy struct {
	mock.Mock
}

func (m *mockPolicy) OnPut(key string) (string, bool) {
	args := m.Called(key)
	return args.String(0), args.Bool(1)
}

func (m *mockPolicy) OnAccess(key string) { m.Called(key) }

func (m *mockPolicy) Size() int     { return m.Called().Int(0) }
func (m *mockPolicy) Capacity() int { return m.Called().Int(0) }

func newMocked(t *testing.T, opt Options[string, int]) (*mockPolicy, Cache[string, int]) {
	t.Helper()
	p := new(mockPolicy)
	p.On("Capacity").Return(2)
	c, err := NewWithPolicy[string, int](p, opt)
	require.NoError(t, err)
	return p, c
}

func TestFacade_MissDoesNotTouchPolicy(t *testing.T) {
	p, c := newMocked(t, Options[string, int]{})

	_, ok, err := c.Get("absent")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = c.ContainsKey("absent")
	require.NoError(t, err)
	assert.False(t, ok)

	p.AssertNotCalled(t, "OnAccess", mock.Anything)
	p.AssertNotCalled(t, "OnPut", mock.Anything)
}

func TestFacade_HitReportsAccess(t *testing.T) {
	p, c := newMocked(t, Options[string, int]{})
	p.On("OnPut", "a").Return("", false).Once()
	p.On("OnAccess", "a").Return().Once()

	require.NoError(t, c.Put("a", 1))
	v, ok, err := c.Get("a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	p.AssertExpectations(t)
}

func TestFacade_EvictsVictimBeforeWrite(t *testing.T) {
	var evicted []string
	p, c := newMocked(t, Options[string, int]{
		OnEvict: func(k string, _ int) { evicted = append(evicted, k) },
	})
	p.On("OnPut", "a").Return("", false).Once()
	p.On("OnPut", "b").Return("a", true).Once()
	p.On("OnPut", "c").Return("ghost", true).Once() // victim not resident

	require.NoError(t, c.Put("a", 1))
	require.NoError(t, c.Put("b", 2))
	require.NoError(t, c.Put("c", 3))

	ok, _ := c.ContainsKey("a")
	assert.False(t, ok, "victim must leave the store")
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"a"}, evicted, "OnEvict only fires for resident victims")
	p.AssertExpectations(t)
}

// A victim equal to the key being put is evicted and then written back.
func TestFacade_SelfVictim(t *testing.T) {
	p, c := newMocked(t, Options[string, int]{})
	p.On("OnPut", "a").Return("", false).Once()
	p.On("OnPut", "a").Return("a", true).Once()

	require.NoError(t, c.Put("a", 1))
	require.NoError(t, c.Put("a", 2))

	v, ok := c.(*cache[string, int]).store.Get("a") // bypass policy
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	p.AssertExpectations(t)
}

func TestFacade_RemoveAndEmptyLoadSkipPolicy(t *testing.T) {
	p, c := newMocked(t, Options[string, int]{})
	p.On("OnPut", "a").Return("", false).Once()

	require.NoError(t, c.Put("a", 1))
	require.NoError(t, c.Remove("a"))
	c.Clear()

	_, ok, err := c.GetOrLoad(context.Background(), "b", func(context.Context, string) (int, bool, error) {
		return 0, false, nil
	})
	require.NoError(t, err)
	assert.False(t, ok)

	p.AssertNumberOfCalls(t, "OnPut", 1)
	p.AssertNotCalled(t, "OnAccess", mock.Anything)
}

// trackingMock also reports membership.
type trackingMock struct {
	mockPolicy
}

func (m *trackingMock) Tracks(key string) bool { return m.Called(key).Bool(0) }

// A policy that evicts the key it was just given and forgets it gets no
// write: the store never holds an entry the policy doesn't track.
func TestFacade_SelfVictimNotTrackedIsNotWritten(t *testing.T) {
	p := new(trackingMock)
	p.On("Capacity").Return(1)
	p.On("OnPut", "a").Return("", false).Once()
	p.On("OnPut", "b").Return("b", true).Once()
	p.On("Tracks", "b").Return(false).Once()

	c, err := NewWithPolicy[string, int](p, Options[string, int]{})
	require.NoError(t, err)

	require.NoError(t, c.Put("a", 1))
	require.NoError(t, c.Put("b", 2))

	ok, _ := c.ContainsKey("b")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())
	p.AssertExpectations(t)
}
