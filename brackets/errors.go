package brackets

import "errors"

var (
	// ErrMalformedIdentifier: a match id string is not three dot-joined
	// positive integers.
	ErrMalformedIdentifier = errors.New("malformed match identifier")

	// ErrUnknownMatchSlot: a live match row references an id outside the
	// built skeleton. Indicates the recorded round count or player count
	// disagrees with the actual match rows.
	ErrUnknownMatchSlot = errors.New("match id is not part of the bracket skeleton")
)
