package messages

const (
	// ErrUserErrorProcessing is shown when a command failed for a reason the user cannot fix.
	ErrUserErrorProcessing = "Something went wrong while processing your request. Please try again later."

	// ErrNotAdministrator is shown when a user without the administrator permission uses an admin command.
	ErrNotAdministrator = "You must be an administrator to use this command."

	// ErrRateLimited is shown when a user sends commands too quickly.
	ErrRateLimited = "You are doing that too often. Please wait a moment and try again."

	// ErrModmailDisabled is shown when a user writes to the bot but no modmail channel is configured.
	ErrModmailDisabled = "Modmail is currently not available."

	// ErrModmailUnknown is shown when a status button is used on a message that is not a modmail.
	ErrModmailUnknown = "This message is not a known modmail."

	// ErrGroupExchangeExists is shown when a user already has an offer for the course.
	ErrGroupExchangeExists = "You already have an offer for this course. Remove it first with `/groupexchange remove`."

	// ErrGroupExchangeMissing is shown when a user has no offer for the course.
	ErrGroupExchangeMissing = "You have no offer for this course."

	// ModmailReceived confirms a submitted modmail to its author.
	ModmailReceived = "Your message has been forwarded to the moderators. We will get back to you as soon as possible."

	// BotOnlyActivated confirms bot-only mode has been enabled.
	BotOnlyActivated = "Bot-only mode has been enabled for this channel. Messages of other users will be deleted."

	// BotOnlyDeactivated confirms bot-only mode has been disabled.
	BotOnlyDeactivated = "Bot-only mode has been disabled for this channel."
)
