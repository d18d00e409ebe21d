package dataaccess

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func countGroupRows(t *testing.T, c *connector, userID int64, course string) (offers, requests int) {
	t.Helper()

	db := rawDB(t, c)
	require.NoError(t, db.Get(&offers, "SELECT COUNT(*) FROM GroupOffer WHERE UserId = ? AND Course = ?", userID, course))
	require.NoError(t, db.Get(&requests, "SELECT COUNT(*) FROM GroupRequest WHERE UserId = ? AND Course = ?", userID, course))
	return offers, requests
}

func TestAddGroupOfferAndRequests(t *testing.T) {
	c := newTestConnector(t)
	ctx := context.Background()

	require.NoError(t, c.AddGroupOfferAndRequests(ctx, 1, "algo", 1, []int{2, 3}))

	offers, requests := countGroupRows(t, c, 1, "algo")
	require.Equal(t, 1, offers)
	require.Equal(t, 2, requests)

	exchanges, err := c.GetGroupExchangeForUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, exchanges, 2)
	for i, want := range []int{2, 3} {
		require.Equal(t, int64(1), exchanges[i].UserID)
		require.Equal(t, "algo", exchanges[i].Course)
		require.Equal(t, 1, exchanges[i].OfferedGroup)
		require.Equal(t, want, exchanges[i].RequestedGroup)
		require.False(t, exchanges[i].MessageID.Valid)
	}

	// A second offer for the same course is rejected.
	err = c.AddGroupOfferAndRequests(ctx, 1, "algo", 4, []int{5})
	require.Error(t, err)
	require.True(t, IsConstraintViolation(err))

	offers, requests = countGroupRows(t, c, 1, "algo")
	require.Equal(t, 1, offers)
	require.Equal(t, 2, requests)
}

func TestAddGroupOfferAndRequests_Atomic(t *testing.T) {
	c := newTestConnector(t)
	ctx := context.Background()

	// The duplicate request fails after the offer and the first request have been inserted.
	err := c.AddGroupOfferAndRequests(ctx, 1, "algo", 1, []int{2, 2})
	require.Error(t, err)

	offers, requests := countGroupRows(t, c, 1, "algo")
	require.Zero(t, offers)
	require.Zero(t, requests)

	exchanges, err := c.GetGroupExchangeForUser(ctx, 1)
	require.NoError(t, err)
	require.Nil(t, exchanges)

	// A cancelled context fails before anything is written.
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	require.Error(t, c.AddGroupOfferAndRequests(cancelled, 1, "algo", 1, []int{2}))

	offers, requests = countGroupRows(t, c, 1, "algo")
	require.Zero(t, offers)
	require.Zero(t, requests)
}

func TestGroupExchangeMessage(t *testing.T) {
	c := newTestConnector(t)
	ctx := context.Background()

	msg, err := c.GetGroupExchangeMessage(ctx, 1, "algo")
	require.NoError(t, err)
	require.Nil(t, msg)

	require.NoError(t, c.AddGroupOfferAndRequests(ctx, 1, "algo", 1, []int{2, 3}))

	// The placeholder state has no message yet.
	msg, err = c.GetGroupExchangeMessage(ctx, 1, "algo")
	require.NoError(t, err)
	require.Nil(t, msg)

	require.NoError(t, c.UpdateGroupExchangeMessageID(ctx, 1, "algo", 5555))

	msg, err = c.GetGroupExchangeMessage(ctx, 1, "algo")
	require.NoError(t, err)
	require.NotNil(t, msg)
	require.Equal(t, int64(5555), *msg)

	exchanges, err := c.GetGroupExchangeForUser(ctx, 1)
	require.NoError(t, err)
	for _, e := range exchanges {
		require.True(t, e.MessageID.Valid)
		require.Equal(t, int64(5555), e.MessageID.Int64)
	}

	msg, err = c.GetGroupExchangeMessage(ctx, 1, "other")
	require.NoError(t, err)
	require.Nil(t, msg)
}

func TestRemoveGroupExchangeOffer(t *testing.T) {
	c := newTestConnector(t)
	ctx := context.Background()

	require.NoError(t, c.AddGroupOfferAndRequests(ctx, 1, "algo", 1, []int{2, 3}))
	require.NoError(t, c.AddGroupOfferAndRequests(ctx, 1, "ds", 4, []int{5}))
	require.NoError(t, c.UpdateGroupExchangeMessageID(ctx, 1, "algo", 5555))

	require.NoError(t, c.RemoveGroupExchangeOffer(ctx, 1, "algo"))

	offers, requests := countGroupRows(t, c, 1, "algo")
	require.Zero(t, offers)
	require.Zero(t, requests)

	msg, err := c.GetGroupExchangeMessage(ctx, 1, "algo")
	require.NoError(t, err)
	require.Nil(t, msg)

	// The other course is untouched.
	exchanges, err := c.GetGroupExchangeForUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, exchanges, 1)
	require.Equal(t, "ds", exchanges[0].Course)

	// Removing again is a no-op.
	require.NoError(t, c.RemoveGroupExchangeOffer(ctx, 1, "algo"))

	// The offer can be created again after removal.
	require.NoError(t, c.AddGroupOfferAndRequests(ctx, 1, "algo", 2, []int{1}))
}

func TestAddGroupOfferAndRequests_NoRequestedGroups(t *testing.T) {
	c := newTestConnector(t)
	ctx := context.Background()

	for _, requested := range [][]int{nil, {}} {
		err := c.AddGroupOfferAndRequests(ctx, 1, "algo", 1, requested)
		require.ErrorIs(t, err, ErrNoRequestedGroups)

		// Nothing is stored, so the user can still make a valid offer.
		offers, requests := countGroupRows(t, c, 1, "algo")
		require.Zero(t, offers)
		require.Zero(t, requests)
	}

	require.NoError(t, c.AddGroupOfferAndRequests(ctx, 1, "algo", 1, []int{2}))
	require.NoError(t, c.UpdateGroupExchangeMessageID(ctx, 1, "algo", 99))

	msgID, err := c.GetGroupExchangeMessage(ctx, 1, "algo")
	require.NoError(t, err)
	require.NotNil(t, msgID)
	require.Equal(t, int64(99), *msgID)
}
