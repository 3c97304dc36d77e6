package models

// PlayerType marks what occupies a slot of a match row: a real player, a
// dummy (bye) or a pending slot waiting for an earlier match to resolve.
type PlayerType string

const (
	PlayerTypePlayer  PlayerType = "player"
	PlayerTypeDummy   PlayerType = "dummy"
	PlayerTypePending PlayerType = "pending"
)

// Match is one live match row written by the tournament orchestrator.
// MatchID carries the "T.R.S" identity; Winner holds the winning player's
// discord id once decided. Start/End are unix seconds.
type Match struct {
	MatchID string  `json:"match_id" db:"match_id"`
	Winner  *string `json:"winner,omitempty" db:"winner"`
	Score   *string `json:"score,omitempty" db:"score"`
	Start   *int64  `json:"start,omitempty" db:"start"`
	End     *int64  `json:"end,omitempty" db:"end"`

	// Players come from the match_players join table, ordered by discord_id
	// so slot order is stable between fetches.
	Players []MatchPlayer `json:"players,omitempty" db:"-"`
}

type MatchPlayer struct {
	MatchID   string     `json:"match_id" db:"match_id"`
	DiscordID string     `json:"discord_id" db:"discord_id"`
	Type      PlayerType `json:"player_type" db:"player_type"`
	Ready     bool       `json:"ready" db:"ready"`
}
