package dataaccess

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModuleRoles(t *testing.T) {
	c := newTestConnector(t)
	ctx := context.Background()

	roles, err := c.GetModuleRoles(ctx)
	require.NoError(t, err)
	require.Nil(t, roles)

	for _, r := range []int64{300, 100, 200} {
		require.NoError(t, c.AddModuleRole(ctx, r))
	}

	roles, err = c.GetModuleRoles(ctx)
	require.NoError(t, err)
	require.Equal(t, []int64{100, 200, 300}, roles)

	ok, err := c.IsModuleRole(ctx, 200)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, c.RemoveModuleRole(ctx, 200))

	ok, err = c.IsModuleRole(ctx, 200)
	require.NoError(t, err)
	require.False(t, ok)

	// Removing an unknown role is not an error.
	require.NoError(t, c.RemoveModuleRole(ctx, 999))

	roles, err = c.GetModuleRoles(ctx)
	require.NoError(t, err)
	require.Equal(t, []int64{100, 300}, roles)
}
