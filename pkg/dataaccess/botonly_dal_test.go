package dataaccess

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBotOnly(t *testing.T) {
	c := newTestConnector(t)
	ctx := context.Background()

	only, err := c.IsBotOnly(ctx, 10)
	require.NoError(t, err)
	require.False(t, only, "channels without a row are not bot-only")

	require.NoError(t, c.ActivateBotOnly(ctx, 10))
	only, err = c.IsBotOnly(ctx, 10)
	require.NoError(t, err)
	require.True(t, only)

	// Activating twice is an upsert, not a duplicate key.
	require.NoError(t, c.ActivateBotOnly(ctx, 10))

	only, err = c.IsBotOnly(ctx, 11)
	require.NoError(t, err)
	require.False(t, only)

	require.NoError(t, c.DeactivateBotOnly(ctx, 10))
	only, err = c.IsBotOnly(ctx, 10)
	require.NoError(t, err)
	require.False(t, only)

	// Deactivating an unknown channel stores it as not bot-only.
	require.NoError(t, c.DeactivateBotOnly(ctx, 12))
	only, err = c.IsBotOnly(ctx, 12)
	require.NoError(t, err)
	require.False(t, only)
}
