package service

import "errors"

// The engine's closed error taxonomy. Every service method fails with one
// of these (or an opaque storage error); the API layer maps them to HTTP
// statuses. Validation runs in a strict order so the first violated rule
// is the one reported.
var (
	// Matchmaker
	ErrInvalidBand = errors.New("invalid band")
	ErrNoAvatar    = errors.New("no avatar found")

	// Combat resolver
	ErrInvalidMatch       = errors.New("match not found or not active")
	ErrNotParticipant     = errors.New("not a participant in this match")
	ErrNotYourTurn        = errors.New("not your turn")
	ErrAbilityNotUnlocked = errors.New("ability not unlocked")
	ErrAbilityNotFound    = errors.New("ability not found")

	// Timeout arbiter
	ErrCannotClaimOwnTurn     = errors.New("cannot claim timeout on your own turn")
	ErrTimeoutNotYetClaimable = errors.New("timeout not yet claimable")

	// Transient: the caller lost a concurrent update race. Surfaced only
	// after the automatic retry also loses.
	ErrConcurrencyConflict = errors.New("lost a concurrent update race")
)
