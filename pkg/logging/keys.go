package logging

const (
	// KeyApp is the key for the application name.
	KeyApp = "app"

	// KeyError is the key for errors.
	KeyError = "err"

	// KeyDal is the key for the data access layer name.
	KeyDal = "dal"

	// KeyQuery is the key for a query or statement.
	KeyQuery = "query"

	// KeyChannel is the key for a channel ID.
	KeyChannel = "channel_id"

	// KeyUser is the key for a user ID.
	KeyUser = "user_id"
)
