package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_AddGetRemove(t *testing.T) {
	s := NewStore[string](10, time.Hour)

	_, ok := s.Get("a")
	assert.False(t, ok)

	s.Add("a", "first")
	s.Add("a", "second")
	v, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, "second", v)
	assert.Equal(t, 1, s.Len())

	s.Remove("a")
	_, ok = s.Get("a")
	assert.False(t, ok)
}

func TestStore_EvictsOldest(t *testing.T) {
	s := NewStore[int](2, time.Hour)
	s.Add("a", 1)
	s.Add("b", 2)
	s.Add("c", 3)

	_, ok := s.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 2, s.Len())
}

func TestStore_Expires(t *testing.T) {
	s := NewStore[int](10, 20*time.Millisecond)
	s.Add("a", 1)

	assert.Eventually(t, func() bool {
		_, ok := s.Get("a")
		return !ok
	}, time.Second, 10*time.Millisecond)
}
