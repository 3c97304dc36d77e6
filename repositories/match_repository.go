package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/bracket-live/models"
)

// MatchRepository reads the live match rows and their join-table players.
// The match id is a "T.R.S" string; the tournament/round/sequence parts are
// extracted in SQL with SPLIT_PART, which is how the writing side queries
// the same table.
type MatchRepository interface {
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Match, error)
	GetPlayers(ctx context.Context, matchID string) ([]models.MatchPlayer, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Match, error) {
	query := `
		SELECT match_id, winner, score, start, "end"
		FROM matches
		WHERE SPLIT_PART(match_id, '.', 1)::int = $1
		ORDER BY SPLIT_PART(match_id, '.', 2)::int,
		         SPLIT_PART(match_id, '.', 3)::int`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	var matches []*models.Match
	for rows.Next() {
		m := &models.Match{}
		if err := rows.Scan(&m.MatchID, &m.Winner, &m.Score, &m.Start, &m.End); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate match rows: %w", err)
	}

	for _, m := range matches {
		players, err := r.GetPlayers(ctx, m.MatchID)
		if err != nil {
			return nil, err
		}
		m.Players = players
	}
	return matches, nil
}

func (r *postgresMatchRepository) GetPlayers(ctx context.Context, matchID string) ([]models.MatchPlayer, error) {
	// ORDER BY discord_id keeps participant order stable between fetches.
	query := `
		SELECT match_id, discord_id, player_type, ready
		FROM match_players
		WHERE match_id = $1
		ORDER BY discord_id`

	rows, err := r.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for match %s: %w", matchID, err)
	}
	defer rows.Close()

	var players []models.MatchPlayer
	for rows.Next() {
		var p models.MatchPlayer
		if err := rows.Scan(&p.MatchID, &p.DiscordID, &p.Type, &p.Ready); err != nil {
			return nil, fmt.Errorf("failed to scan match player row: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate match player rows: %w", err)
	}
	return players, nil
}
