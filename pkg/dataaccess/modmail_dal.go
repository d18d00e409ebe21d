package dataaccess

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Jacobbrewer1/sam/pkg/custom"
	"github.com/Jacobbrewer1/sam/pkg/entities"
	"github.com/jmoiron/sqlx"
)

const modmailDalName = "modmail_dal"

const (
	insertModmailSql = `
INSERT INTO Modmail (MessageId, Author, Timestamp, Status)
VALUES (?, ?, ?, ?)`

	getModmailStatusSql = `SELECT Status FROM Modmail WHERE MessageId = ?`

	getModmailSql = `
SELECT MessageId, Author, Timestamp, Status
  FROM Modmail
 WHERE MessageId = ?`

	changeModmailStatusSql = `UPDATE Modmail SET Status = ? WHERE MessageId = ?`

	getAllModmailWithStatusSql = `
SELECT MessageId, Author, Timestamp, Status
  FROM Modmail
 WHERE Status = ?
 ORDER BY Timestamp`
)

type IModmailDal interface {
	// AddModmail stores a newly submitted modmail with the status open. Adding a message ID twice fails with a
	// constraint violation.
	AddModmail(ctx context.Context, msgID int64, author string, timestamp time.Time) error

	// GetModmailStatus returns the status of a modmail, nil if the message is unknown.
	GetModmailStatus(ctx context.Context, msgID int64) (*entities.ModmailStatus, error)

	// GetModmail returns a modmail, nil if the message is unknown.
	GetModmail(ctx context.Context, msgID int64) (*entities.Modmail, error)

	// ChangeModmailStatus overwrites the status of a modmail. The transition is not checked.
	ChangeModmailStatus(ctx context.Context, msgID int64, status entities.ModmailStatus) error

	// GetAllModmailWithStatus returns every modmail with the status, nil if there are none.
	GetAllModmailWithStatus(ctx context.Context, status entities.ModmailStatus) ([]*entities.Modmail, error)
}

func (c *connector) AddModmail(ctx context.Context, msgID int64, author string, timestamp time.Time) error {
	return c.withTx(ctx, modmailDalName, "add_modmail", func(tx *sqlx.Tx) error {
		// Save the modmail. New modmails are always open.
		_, err := tx.ExecContext(ctx, insertModmailSql, msgID, author, custom.Datetime(timestamp), entities.ModmailStatusOpen)
		if err != nil {
			return fmt.Errorf("error inserting modmail: %w", err)
		}
		return nil
	})
}

func (c *connector) GetModmailStatus(ctx context.Context, msgID int64) (*entities.ModmailStatus, error) {
	var status *entities.ModmailStatus
	err := c.withRead(ctx, modmailDalName, "get_modmail_status", func(db *sqlx.DB) error {
		// Get the status.
		s := new(entities.ModmailStatus)
		err := db.GetContext(ctx, s, getModmailStatusSql, msgID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil
		case err != nil:
			return fmt.Errorf("error getting modmail status: %w", err)
		}
		status = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return status, nil
}

func (c *connector) GetModmail(ctx context.Context, msgID int64) (*entities.Modmail, error) {
	var modmail *entities.Modmail
	err := c.withRead(ctx, modmailDalName, "get_modmail", func(db *sqlx.DB) error {
		m := new(entities.Modmail)
		err := db.GetContext(ctx, m, getModmailSql, msgID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil
		case err != nil:
			return fmt.Errorf("error getting modmail: %w", err)
		}
		modmail = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return modmail, nil
}

func (c *connector) ChangeModmailStatus(ctx context.Context, msgID int64, status entities.ModmailStatus) error {
	return c.withTx(ctx, modmailDalName, "change_modmail_status", func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, changeModmailStatusSql, status, msgID)
		if err != nil {
			return fmt.Errorf("error changing modmail status: %w", err)
		}

		// The status is overwritten as is, an unknown modmail is only logged.
		if n, _ := res.RowsAffected(); n == 0 {
			c.logger(modmailDalName).Debug("No modmail found to change the status of",
				slog.Int64("message_id", msgID),
				slog.String("status", status.String()),
			)
		}
		return nil
	})
}

func (c *connector) GetAllModmailWithStatus(ctx context.Context, status entities.ModmailStatus) ([]*entities.Modmail, error) {
	var modmails []*entities.Modmail
	err := c.withRead(ctx, modmailDalName, "get_all_modmail_with_status", func(db *sqlx.DB) error {
		if err := db.SelectContext(ctx, &modmails, getAllModmailWithStatusSql, status); err != nil {
			return fmt.Errorf("error getting modmails: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(modmails) == 0 {
		return nil, nil
	}
	return modmails, nil
}
