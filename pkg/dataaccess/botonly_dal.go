package dataaccess

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Jacobbrewer1/sam/pkg/entities"
	"github.com/jmoiron/sqlx"
)

const botOnlyDalName = "botonly_dal"

const (
	isChannelBotOnlySql = `SELECT ChannelId, Active FROM BotOnlyChannel WHERE ChannelId = ?`

	setBotOnlySql = `
INSERT INTO BotOnlyChannel (ChannelId, Active)
VALUES (?, ?)
ON CONFLICT (ChannelId) DO UPDATE SET Active = excluded.Active`
)

type IBotOnlyDal interface {
	// IsBotOnly reports whether bot-only mode is enabled for the channel. Unknown channels are not bot-only.
	IsBotOnly(ctx context.Context, channelID int64) (bool, error)

	// ActivateBotOnly enables bot-only mode for the channel.
	ActivateBotOnly(ctx context.Context, channelID int64) error

	// DeactivateBotOnly disables bot-only mode for the channel.
	DeactivateBotOnly(ctx context.Context, channelID int64) error
}

func (c *connector) IsBotOnly(ctx context.Context, channelID int64) (bool, error) {
	channel := new(entities.BotOnlyChannel)
	err := c.withRead(ctx, botOnlyDalName, "is_botonly", func(db *sqlx.DB) error {
		// Get the channel. A channel without a row is not bot-only.
		err := db.GetContext(ctx, channel, isChannelBotOnlySql, channelID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil
		case err != nil:
			return fmt.Errorf("error getting bot-only channel: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return channel.Active, nil
}

func (c *connector) ActivateBotOnly(ctx context.Context, channelID int64) error {
	return c.setBotOnly(ctx, "activate_botonly", channelID, true)
}

func (c *connector) DeactivateBotOnly(ctx context.Context, channelID int64) error {
	return c.setBotOnly(ctx, "deactivate_botonly", channelID, false)
}

func (c *connector) setBotOnly(ctx context.Context, query string, channelID int64, active bool) error {
	return c.withTx(ctx, botOnlyDalName, query, func(tx *sqlx.Tx) error {
		// Upsert the channel.
		if _, err := tx.ExecContext(ctx, setBotOnlySql, channelID, active); err != nil {
			return fmt.Errorf("error setting bot-only channel: %w", err)
		}
		return nil
	})
}
