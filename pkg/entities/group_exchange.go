package entities

import "database/sql"

// GroupOffer is the group a user holds in a course and is willing to trade away.
type GroupOffer struct {
	// UserID is the ID of the offering user.
	UserID int64 `json:"user_id" db:"UserId"`

	// Course is the course the offer is for.
	Course string `json:"course" db:"Course"`

	// OfferedGroup is the group the user offers.
	OfferedGroup int `json:"offered_group" db:"OfferedGroup"`
}

// GroupRequest is one of the groups a user would accept in trade.
type GroupRequest struct {
	// UserID is the ID of the requesting user.
	UserID int64 `json:"user_id" db:"UserId"`

	// Course is the course the request is for.
	Course string `json:"course" db:"Course"`

	// RequestedGroup is the group the user would accept.
	RequestedGroup int `json:"requested_group" db:"RequestedGroup"`

	// MessageID is the ID of the announcement message. It is null until the message has been sent.
	MessageID sql.NullInt64 `json:"message_id" db:"MessageId"`
}

// GroupExchange is an offer joined with one of its requests.
type GroupExchange struct {
	UserID         int64         `json:"user_id" db:"UserId"`
	Course         string        `json:"course" db:"Course"`
	OfferedGroup   int           `json:"offered_group" db:"OfferedGroup"`
	RequestedGroup int           `json:"requested_group" db:"RequestedGroup"`
	MessageID      sql.NullInt64 `json:"message_id" db:"MessageId"`
}

// Candidate is a user whose offer and requests match another user's requests and offer.
type Candidate struct {
	// UserID is the ID of the candidate.
	UserID int64 `json:"user_id" db:"UserId"`

	// MessageID is the ID of the candidate's announcement message.
	MessageID sql.NullInt64 `json:"message_id" db:"MessageId"`
}

// HasMessage reports whether the candidate's announcement message has been recorded yet.
func (c *Candidate) HasMessage() bool {
	return c != nil && c.MessageID.Valid
}
