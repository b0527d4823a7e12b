package services

import "errors"

// Domain errors surfaced by services; handlers map them onto HTTP statuses.
var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrBlocked         = errors.New("interaction blocked between these users")
	ErrAlreadyBlocked  = errors.New("user is already blocked")
	ErrSelfTarget      = errors.New("cannot target yourself")
	ErrNotCheckedIn    = errors.New("no active check-in")
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmptyMessage    = errors.New("message is empty")
	ErrMessageTooLong  = errors.New("message exceeds the maximum length")
	ErrNotParticipant  = errors.New("not a participant of this conversation")
)
