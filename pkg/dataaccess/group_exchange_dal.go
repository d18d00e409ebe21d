package dataaccess

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Jacobbrewer1/sam/pkg/entities"
	"github.com/jmoiron/sqlx"
)

const groupExchangeDalName = "group_exchange_dal"

// ErrNoRequestedGroups is returned when an offer is added without any requested group. Such an offer could never be
// matched, listed or announced.
var ErrNoRequestedGroups = errors.New("at least one requested group is required")

const (
	insertGroupOfferSql = `
INSERT INTO GroupOffer (UserId, Course, OfferedGroup)
VALUES (?, ?, ?)`

	insertGroupRequestSql = `
INSERT INTO GroupRequest (UserId, Course, RequestedGroup, MessageId)
VALUES (?, ?, ?, NULL)`

	updateGroupMessageIdSql = `
UPDATE GroupRequest
   SET MessageId = ?
 WHERE UserId = ? AND Course = ?`

	getGroupExchangeMessageSql = `
SELECT MessageId
  FROM GroupRequest
 WHERE UserId = ? AND Course = ? AND MessageId IS NOT NULL
 LIMIT 1`

	removeGroupExchangeRequestsSql = `DELETE FROM GroupRequest WHERE UserId = ? AND Course = ?`
	removeGroupExchangeOfferSql    = `DELETE FROM GroupOffer WHERE UserId = ? AND Course = ?`

	getGroupExchangeForUserSql = `
SELECT o.UserId, o.Course, o.OfferedGroup, r.RequestedGroup, r.MessageId
  FROM GroupOffer o
  JOIN GroupRequest r ON r.UserId = o.UserId AND r.Course = o.Course
 WHERE o.UserId = ?
 ORDER BY o.Course, r.RequestedGroup`
)

type IGroupExchangeDal interface {
	// AddGroupOfferAndRequests stores the offer of a user and one request per requested group. Either all rows are
	// stored or none. The message ID of the requests is unset until UpdateGroupExchangeMessageID is called.
	AddGroupOfferAndRequests(ctx context.Context, userID int64, course string, offeredGroup int, requestedGroups []int) error

	// UpdateGroupExchangeMessageID records the announcement message for the offer of a user. The message can only be
	// sent after the offer has been stored, so this is the second step of creating an offer.
	UpdateGroupExchangeMessageID(ctx context.Context, userID int64, course string, messageID int64) error

	// GetGroupExchangeMessage returns the announcement message ID of an offer, nil if there is none.
	GetGroupExchangeMessage(ctx context.Context, userID int64, course string) (*int64, error)

	// RemoveGroupExchangeOffer removes the offer and all requests of a user for a course together.
	RemoveGroupExchangeOffer(ctx context.Context, userID int64, course string) error

	// GetGroupExchangeForUser returns every offer and request of a user, nil if there are none.
	GetGroupExchangeForUser(ctx context.Context, userID int64) ([]*entities.GroupExchange, error)

	// GetCandidatesForGroupExchange returns the users who offer one of the requested groups and request the offered
	// group in the same course, nil if there are none.
	GetCandidatesForGroupExchange(ctx context.Context, authorID int64, course string, offeredGroup int, requestedGroups []int) ([]*entities.Candidate, error)
}

func (c *connector) AddGroupOfferAndRequests(ctx context.Context, userID int64, course string, offeredGroup int, requestedGroups []int) error {
	return c.withTx(ctx, groupExchangeDalName, "add_group_offer_and_requests", func(tx *sqlx.Tx) error {
		if len(requestedGroups) == 0 {
			return ErrNoRequestedGroups
		}

		// Insert the offer first, the requests reference it.
		if _, err := tx.ExecContext(ctx, insertGroupOfferSql, userID, course, offeredGroup); err != nil {
			return fmt.Errorf("error inserting group offer: %w", err)
		}

		// Insert one request per group.
		for _, group := range requestedGroups {
			if _, err := tx.ExecContext(ctx, insertGroupRequestSql, userID, course, group); err != nil {
				return fmt.Errorf("error inserting group request %d: %w", group, err)
			}
		}
		return nil
	})
}

func (c *connector) UpdateGroupExchangeMessageID(ctx context.Context, userID int64, course string, messageID int64) error {
	return c.withTx(ctx, groupExchangeDalName, "update_group_exchange_message_id", func(tx *sqlx.Tx) error {
		// Every request of the offer carries the message ID.
		if _, err := tx.ExecContext(ctx, updateGroupMessageIdSql, messageID, userID, course); err != nil {
			return fmt.Errorf("error updating group exchange message: %w", err)
		}
		return nil
	})
}

func (c *connector) GetGroupExchangeMessage(ctx context.Context, userID int64, course string) (*int64, error) {
	var messageID *int64
	err := c.withRead(ctx, groupExchangeDalName, "get_group_exchange_message", func(db *sqlx.DB) error {
		var id sql.NullInt64
		err := db.GetContext(ctx, &id, getGroupExchangeMessageSql, userID, course)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil
		case err != nil:
			return fmt.Errorf("error getting group exchange message: %w", err)
		}

		if id.Valid {
			messageID = &id.Int64
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return messageID, nil
}

func (c *connector) RemoveGroupExchangeOffer(ctx context.Context, userID int64, course string) error {
	return c.withTx(ctx, groupExchangeDalName, "remove_group_exchange_offer", func(tx *sqlx.Tx) error {
		// Remove the requests before the offer they reference.
		if _, err := tx.ExecContext(ctx, removeGroupExchangeRequestsSql, userID, course); err != nil {
			return fmt.Errorf("error removing group requests: %w", err)
		}

		if _, err := tx.ExecContext(ctx, removeGroupExchangeOfferSql, userID, course); err != nil {
			return fmt.Errorf("error removing group offer: %w", err)
		}
		return nil
	})
}

func (c *connector) GetGroupExchangeForUser(ctx context.Context, userID int64) ([]*entities.GroupExchange, error) {
	var exchanges []*entities.GroupExchange
	err := c.withRead(ctx, groupExchangeDalName, "get_group_exchange_for_user", func(db *sqlx.DB) error {
		if err := db.SelectContext(ctx, &exchanges, getGroupExchangeForUserSql, userID); err != nil {
			return fmt.Errorf("error getting group exchanges: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(exchanges) == 0 {
		return nil, nil
	}
	return exchanges, nil
}
