package services

import "errors"

// Sentinel errors returned by giveaway operations. Validation errors are
// reported to the command layer and never partially mutate state;
// ErrAlreadyClosed is a normal no-op outcome, not a failure.
var (
	ErrInvalidDuration    = errors.New("invalid duration expression")
	ErrInvalidPhrase      = errors.New("required phrase must not be blank")
	ErrInvalidWinnerCount = errors.New("winner count outside configured bounds")
	ErrDuplicateKey       = errors.New("giveaway already registered for message")
	ErrNotFound           = errors.New("giveaway not found")
	ErrAlreadyClosed      = errors.New("giveaway already closed")
	ErrNoEligible         = errors.New("no eligible entrants")
)
