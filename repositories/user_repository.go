package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/bracket-live/models"
	"github.com/lib/pq"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository resolves player display data (name, icon id) by discord id.
type UserRepository interface {
	GetDisplay(ctx context.Context, discordID string) (*models.PlayerDisplay, error)
	ListDisplays(ctx context.Context, discordIDs []string) (map[string]models.PlayerDisplay, error)
}

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) GetDisplay(ctx context.Context, discordID string) (*models.PlayerDisplay, error) {
	query := `
		SELECT discord_id, player_name, icon
		FROM users
		WHERE discord_id = $1`

	d := &models.PlayerDisplay{}
	err := r.db.QueryRowContext(ctx, query, discordID).Scan(&d.DiscordID, &d.PlayerName, &d.Icon)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user %s: %w", discordID, err)
	}
	return d, nil
}

func (r *postgresUserRepository) ListDisplays(ctx context.Context, discordIDs []string) (map[string]models.PlayerDisplay, error) {
	displays := make(map[string]models.PlayerDisplay, len(discordIDs))
	if len(discordIDs) == 0 {
		return displays, nil
	}

	query := `
		SELECT discord_id, player_name, icon
		FROM users
		WHERE discord_id = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(discordIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list user displays: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d models.PlayerDisplay
		if err := rows.Scan(&d.DiscordID, &d.PlayerName, &d.Icon); err != nil {
			return nil, fmt.Errorf("failed to scan user display row: %w", err)
		}
		displays[d.DiscordID] = d
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user display rows: %w", err)
	}
	return displays, nil
}
