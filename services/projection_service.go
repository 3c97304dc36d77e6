package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/bracket-live/brackets"
	"github.com/Dosada05/bracket-live/models"
	"github.com/Dosada05/bracket-live/repositories"
	"golang.org/x/sync/errgroup"
)

// ProjectionResult is one full bracket snapshot: the tournament meta plus the
// merged slot list in round-major, sequence-minor order. For a pending or
// empty tournament Matches is an empty list and the caller renders a
// "not started" message off the status.
type ProjectionResult struct {
	Tournament *models.Tournament    `json:"tournament"`
	Matches    []*models.BracketSlot `json:"matches"`
}

// ProjectionService merges the live match rows of a tournament onto its
// cached bracket skeleton and returns the result as a fresh snapshot.
type ProjectionService interface {
	Meta(ctx context.Context, tournamentID int) (*models.Tournament, error)
	Project(ctx context.Context, tournamentID int) (*ProjectionResult, error)
}

type projectionService struct {
	tournamentRepo repositories.TournamentRepository
	matchRepo      repositories.MatchRepository
	userRepo       repositories.UserRepository
	cache          *brackets.Cache
	icons          IconResolver
	logger         *slog.Logger
}

func NewProjectionService(
	tournamentRepo repositories.TournamentRepository,
	matchRepo repositories.MatchRepository,
	userRepo repositories.UserRepository,
	cache *brackets.Cache,
	icons IconResolver,
	logger *slog.Logger,
) ProjectionService {
	return &projectionService{
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		userRepo:       userRepo,
		cache:          cache,
		icons:          icons,
		logger:         logger,
	}
}

func (s *projectionService) Meta(ctx context.Context, tournamentID int) (*models.Tournament, error) {
	meta, err := s.tournamentRepo.GetMeta(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return meta, nil
}

func (s *projectionService) Project(ctx context.Context, tournamentID int) (*ProjectionResult, error) {
	meta, err := s.Meta(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	// A pending tournament has no bracket yet; do not build (and cache) a
	// skeleton before registration closes and the shape is final.
	if meta.Status == models.StatusPending {
		return &ProjectionResult{Tournament: meta, Matches: []*models.BracketSlot{}}, nil
	}

	var (
		entry *brackets.Entry
		rows  []*models.Match
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entry, err = s.cache.GetOrBuild(gCtx, tournamentID, func(ctx context.Context) (brackets.BuildParams, error) {
			count, err := s.tournamentRepo.CountPlayers(ctx, tournamentID)
			if err != nil {
				return brackets.BuildParams{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
			}
			return brackets.BuildParams{RoundsTotal: meta.RoundsTotal, PlayerCount: count}, nil
		})
		return err
	})
	g.Go(func() error {
		var err error
		rows, err = s.matchRepo.ListByTournament(gCtx, tournamentID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if entry.Len() == 0 {
		return &ProjectionResult{Tournament: meta, Matches: []*models.BracketSlot{}}, nil
	}

	displays, err := s.resolveDisplays(ctx, rows)
	if err != nil {
		return nil, err
	}

	slots := entry.SkeletonCopy()
	skipped, err := brackets.MergeResults(slots, entry.Lookup, brackets.MergeInput{
		Rows:     rows,
		Displays: displays,
		IconURL: func(icon int) string {
			return s.icons.Resolve(ctx, icon)
		},
	})
	if err != nil {
		// An id outside the skeleton means the stored round count or player
		// count disagrees with the live rows; hiding that would mask data
		// corruption.
		return nil, err
	}
	for _, id := range skipped {
		s.logger.Warn("dropped match row with malformed id",
			slog.Int("tournament_id", tournamentID), slog.String("match_id", id))
	}

	return &ProjectionResult{Tournament: meta, Matches: slots}, nil
}

func (s *projectionService) resolveDisplays(ctx context.Context, rows []*models.Match) (map[string]models.PlayerDisplay, error) {
	seen := make(map[string]struct{})
	var ids []string
	for _, row := range rows {
		for _, p := range row.Players {
			if _, ok := seen[p.DiscordID]; ok {
				continue
			}
			seen[p.DiscordID] = struct{}{}
			ids = append(ids, p.DiscordID)
		}
	}

	displays, err := s.userRepo.ListDisplays(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return displays, nil
}
