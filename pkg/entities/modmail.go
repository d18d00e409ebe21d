package entities

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/Jacobbrewer1/sam/pkg/custom"
)

// ErrInvalidModmailStatus is returned when a stored value does not map to a known modmail status.
var ErrInvalidModmailStatus = errors.New("invalid modmail status")

// ModmailStatus is the status of a modmail. It is persisted as an integer.
type ModmailStatus int

const (
	// ModmailStatusOpen is the status of a newly submitted modmail.
	ModmailStatusOpen ModmailStatus = iota

	// ModmailStatusInProgress is the status of a modmail a moderator is working on.
	ModmailStatusInProgress

	// ModmailStatusClosed is the status of a finished modmail.
	ModmailStatusClosed
)

// ModmailStatuses are all known statuses in their persisted order.
var ModmailStatuses = []ModmailStatus{
	ModmailStatusOpen,
	ModmailStatusInProgress,
	ModmailStatusClosed,
}

// ParseModmailStatus converts a stored value into a modmail status.
func ParseModmailStatus(v int64) (ModmailStatus, error) {
	s := ModmailStatus(v)
	if !s.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidModmailStatus, v)
	}
	return s, nil
}

// ParseModmailStatusName converts the name of a status (as returned by String) into a modmail status.
func ParseModmailStatusName(name string) (ModmailStatus, error) {
	for _, s := range ModmailStatuses {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidModmailStatus, name)
}

// Valid reports whether the status is one of the known statuses.
func (s ModmailStatus) Valid() bool {
	return s >= ModmailStatusOpen && s <= ModmailStatusClosed
}

// Int64 returns the persisted value of the status.
func (s ModmailStatus) Int64() int64 {
	return int64(s)
}

// String implements the fmt.Stringer interface.
func (s ModmailStatus) String() string {
	switch s {
	case ModmailStatusOpen:
		return "open"
	case ModmailStatusInProgress:
		return "in_progress"
	case ModmailStatusClosed:
		return "closed"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Scan implements the sql.Scanner interface.
func (s *ModmailStatus) Scan(src any) error {
	v, ok := src.(int64)
	if !ok {
		return fmt.Errorf("invalid scan, type %T not supported for %T", src, s)
	}

	parsed, err := ParseModmailStatus(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Value implements the driver.Valuer interface.
func (s ModmailStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidModmailStatus, int(s))
	}
	return s.Int64(), nil
}

// CanTransition reports whether a modmail may move from one status to another.
// A modmail moves forward from open to closed and a closed modmail can be reopened.
// Setting the current status again is allowed.
func CanTransition(from, to ModmailStatus) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}

	switch from {
	case ModmailStatusOpen:
		return true
	case ModmailStatusInProgress:
		return to != ModmailStatusOpen
	case ModmailStatusClosed:
		return to == ModmailStatusClosed || to == ModmailStatusOpen
	}
	return false
}

// Modmail is a support ticket submitted by a user.
type Modmail struct {
	// MessageID is the ID of the message that represents the modmail.
	MessageID int64 `json:"message_id" db:"MessageId"`

	// Author is the username with the discriminator of the author.
	Author string `json:"author" db:"Author"`

	// Timestamp is the moment the modmail has been submitted.
	Timestamp custom.Datetime `json:"timestamp" db:"Timestamp"`

	// Status is the current status of the modmail.
	Status ModmailStatus `json:"status" db:"Status"`
}
