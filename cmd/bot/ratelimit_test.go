package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUserLimiter(t *testing.T) {
	l := newUserLimiter(time.Hour, 2)

	require.True(t, l.Allow("a"))
	require.True(t, l.Allow("a"))
	require.False(t, l.Allow("a"))

	// Other users have their own bucket.
	require.True(t, l.Allow("b"))
}

func TestUserLimiter_EvictsIdleUsers(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newUserLimiter(time.Second, 2)
	l.now = func() time.Time { return now }

	require.True(t, l.Allow("a"))
	require.True(t, l.Allow("b"))
	require.Equal(t, 2, l.size())

	// "b" stays active while "a" goes idle.
	now = now.Add(time.Second)
	require.True(t, l.Allow("b"))
	now = now.Add(1500 * time.Millisecond)
	require.True(t, l.Allow("b"))

	require.Equal(t, 1, l.size())

	// The limit still applies to active users.
	require.True(t, l.Allow("b"))
	require.False(t, l.Allow("b"))
	require.Equal(t, 1, l.size())
}
