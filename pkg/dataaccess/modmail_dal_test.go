package dataaccess

import (
	"context"
	"testing"
	"time"

	"github.com/Jacobbrewer1/sam/pkg/entities"
	"github.com/stretchr/testify/require"
)

func TestAddModmail(t *testing.T) {
	c := newTestConnector(t)
	ctx := context.Background()
	submitted := time.Date(2021, time.January, 5, 10, 0, 0, 0, time.UTC)

	status, err := c.GetModmailStatus(ctx, 1)
	require.NoError(t, err)
	require.Nil(t, status, "unknown modmail must be absent, not open")

	require.NoError(t, c.AddModmail(ctx, 1, "student#1234", submitted))

	status, err = c.GetModmailStatus(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, status)
	require.Equal(t, entities.ModmailStatusOpen, *status)

	m, err := c.GetModmail(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(1), m.MessageID)
	require.Equal(t, "student#1234", m.Author)
	require.True(t, submitted.Equal(m.Timestamp.Time()))
	require.Equal(t, entities.ModmailStatusOpen, m.Status)

	m, err = c.GetModmail(ctx, 2)
	require.NoError(t, err)
	require.Nil(t, m)
}

func TestAddModmail_Duplicate(t *testing.T) {
	c := newTestConnector(t)
	ctx := context.Background()
	submitted := time.Date(2021, time.January, 5, 10, 0, 0, 0, time.UTC)

	require.NoError(t, c.AddModmail(ctx, 1, "student#1234", submitted))
	require.NoError(t, c.ChangeModmailStatus(ctx, 1, entities.ModmailStatusInProgress))

	err := c.AddModmail(ctx, 1, "someone#0001", submitted.Add(time.Hour))
	require.Error(t, err)
	require.True(t, IsConstraintViolation(err))

	// The original row is unchanged.
	m, err := c.GetModmail(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "student#1234", m.Author)
	require.Equal(t, entities.ModmailStatusInProgress, m.Status)
	require.True(t, submitted.Equal(m.Timestamp.Time()))
}

func TestChangeModmailStatus(t *testing.T) {
	c := newTestConnector(t)
	ctx := context.Background()

	require.NoError(t, c.AddModmail(ctx, 1, "student#1234", time.Now()))

	// Applying the same status twice leaves the same state as applying it once.
	for i := 0; i < 2; i++ {
		require.NoError(t, c.ChangeModmailStatus(ctx, 1, entities.ModmailStatusClosed))

		status, err := c.GetModmailStatus(ctx, 1)
		require.NoError(t, err)
		require.Equal(t, entities.ModmailStatusClosed, *status)
	}

	// The store does not validate transitions.
	require.NoError(t, c.ChangeModmailStatus(ctx, 1, entities.ModmailStatusInProgress))
	status, err := c.GetModmailStatus(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, entities.ModmailStatusInProgress, *status)

	// Unknown modmails are ignored.
	require.NoError(t, c.ChangeModmailStatus(ctx, 404, entities.ModmailStatusClosed))
	status, err = c.GetModmailStatus(ctx, 404)
	require.NoError(t, err)
	require.Nil(t, status)

	// Statuses outside the enumeration are never written.
	require.Error(t, c.ChangeModmailStatus(ctx, 1, entities.ModmailStatus(9)))
}

func TestGetAllModmailWithStatus(t *testing.T) {
	c := newTestConnector(t)
	ctx := context.Background()
	base := time.Date(2021, time.January, 5, 10, 0, 0, 0, time.UTC)

	modmails, err := c.GetAllModmailWithStatus(ctx, entities.ModmailStatusOpen)
	require.NoError(t, err)
	require.Nil(t, modmails)

	require.NoError(t, c.AddModmail(ctx, 3, "c#0003", base.Add(2*time.Minute)))
	require.NoError(t, c.AddModmail(ctx, 1, "a#0001", base))
	require.NoError(t, c.AddModmail(ctx, 2, "b#0002", base.Add(time.Minute)))
	require.NoError(t, c.ChangeModmailStatus(ctx, 2, entities.ModmailStatusClosed))

	modmails, err = c.GetAllModmailWithStatus(ctx, entities.ModmailStatusOpen)
	require.NoError(t, err)
	require.Len(t, modmails, 2)
	require.Equal(t, int64(1), modmails[0].MessageID)
	require.Equal(t, int64(3), modmails[1].MessageID)

	modmails, err = c.GetAllModmailWithStatus(ctx, entities.ModmailStatusClosed)
	require.NoError(t, err)
	require.Len(t, modmails, 1)
	require.Equal(t, "b#0002", modmails[0].Author)

	modmails, err = c.GetAllModmailWithStatus(ctx, entities.ModmailStatusInProgress)
	require.NoError(t, err)
	require.Nil(t, modmails)
}
