package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/bracket-live/models"
)

var ErrTournamentNotFound = errors.New("tournament not found")

// TournamentRepository reads tournament records the orchestrator bot owns.
// Everything here is read-only from this service's perspective.
type TournamentRepository interface {
	GetMeta(ctx context.Context, tournamentID int) (*models.Tournament, error)
	CountPlayers(ctx context.Context, tournamentID int) (int, error)
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) GetMeta(ctx context.Context, tournamentID int) (*models.Tournament, error) {
	query := `
		SELECT tournament_id, name, guild_id, rounds, current_round,
		       created_at, start_time, status, map, wins_required
		FROM tournaments
		WHERE tournament_id = $1`

	t := &models.Tournament{}
	var createdAt int64
	var startTime sql.NullInt64

	err := r.db.QueryRowContext(ctx, query, tournamentID).Scan(
		&t.ID,
		&t.Name,
		&t.GuildID,
		&t.RoundsTotal,
		&t.CurrentRound,
		&createdAt,
		&startTime,
		&t.Status,
		&t.Map,
		&t.WinsRequired,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to scan tournament %d: %w", tournamentID, err)
	}

	// The bot stores timestamps as unix seconds.
	t.CreatedAt = time.Unix(createdAt, 0).UTC()
	if startTime.Valid {
		st := time.Unix(startTime.Int64, 0).UTC()
		t.StartTime = &st
	}
	return t, nil
}

func (r *postgresTournamentRepository) CountPlayers(ctx context.Context, tournamentID int) (int, error) {
	query := `SELECT COUNT(*) FROM tournament_players WHERE tournament_id = $1`

	var count int
	if err := r.db.QueryRowContext(ctx, query, tournamentID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count players for tournament %d: %w", tournamentID, err)
	}
	return count, nil
}
