package entities

// BotOnlyChannel is a channel in which only the bot may post.
type BotOnlyChannel struct {
	// ChannelID is the ID of the channel.
	ChannelID int64 `json:"channel_id" db:"ChannelId"`

	// Active is whether bot-only mode is enabled.
	Active bool `json:"active" db:"Active"`
}
