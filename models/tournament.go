package models

import "time"

// TournamentStatus mirrors the tournament_status ENUM the orchestrator bot
// writes. The projection only ever reads it.
type TournamentStatus string

const (
	StatusPending  TournamentStatus = "pending"
	StatusStarted  TournamentStatus = "started"
	StatusPaused   TournamentStatus = "paused"
	StatusInactive TournamentStatus = "inactive"
)

// Tournament is the read-only view of a tournament row. Only the fields the
// projection needs are mapped.
type Tournament struct {
	ID           int              `json:"tournamentId" db:"tournament_id"`
	Name         string           `json:"name" db:"name"`
	GuildID      string           `json:"-" db:"guild_id"`
	RoundsTotal  int              `json:"roundsTotal" db:"rounds"`
	CurrentRound int              `json:"currentRound" db:"current_round"`
	CreatedAt    time.Time        `json:"createdAt" db:"created_at"`
	StartTime    *time.Time       `json:"startTime,omitempty" db:"start_time"`
	Status       TournamentStatus `json:"status" db:"status"`
	Map          *string          `json:"map,omitempty" db:"map"`
	WinsRequired int              `json:"winsRequired" db:"wins_required"`
}
