package services

import "errors"

// Общие ошибки сервисного слоя, используемые в маппинге HTTP.
var (
	// ErrTournamentNotFound: the requested tournament does not exist.
	ErrTournamentNotFound = errors.New("tournament not found")

	// ErrStoreUnavailable: a transient store failure. One-shot requests turn
	// it into a 500; streaming consumers retry on the next tick.
	ErrStoreUnavailable = errors.New("tournament store unavailable")
)
