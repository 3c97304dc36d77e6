package models

// PlayerDisplay is what the bracket needs to render a participant: a display
// name and the numeric icon id the game assigns to the player's profile.
type PlayerDisplay struct {
	DiscordID  string `json:"discord_id" db:"discord_id"`
	PlayerName string `json:"player_name" db:"player_name"`
	Icon       int    `json:"icon" db:"icon"`
}
