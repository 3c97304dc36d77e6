package services

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Dosada05/bracket-live/brackets"
)

// RoomPrefix turns a tournament id into its websocket room id and back.
const RoomPrefix = "tournament_"

func RoomID(tournamentID int) string {
	return RoomPrefix + strconv.Itoa(tournamentID)
}

// SnapshotBroadcaster projects every tournament that has websocket viewers on
// a fixed interval and pushes the full snapshot into its room. There is no
// diffing; every tick carries the complete bracket state.
type SnapshotBroadcaster struct {
	hub        *brackets.Hub
	projection ProjectionService
	interval   time.Duration
	logger     *slog.Logger
}

func NewSnapshotBroadcaster(hub *brackets.Hub, projection ProjectionService, interval time.Duration, logger *slog.Logger) *SnapshotBroadcaster {
	return &SnapshotBroadcaster{
		hub:        hub,
		projection: projection,
		interval:   interval,
		logger:     logger,
	}
}

// Run blocks until ctx is cancelled. A failed projection for one room is
// logged and reported to that room; it never stops the loop or affects other
// rooms.
func (b *SnapshotBroadcaster) Run(ctx context.Context) {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.tick(ctx)
		}
	}
}

func (b *SnapshotBroadcaster) tick(ctx context.Context) {
	for _, room := range b.hub.Rooms() {
		tournamentID, ok := parseRoomID(room)
		if !ok {
			b.logger.Warn("skipping room with unexpected id", slog.String("room", room))
			continue
		}

		tickCtx, cancel := context.WithTimeout(ctx, b.interval)
		result, err := b.projection.Project(tickCtx, tournamentID)
		cancel()
		if err != nil {
			b.logger.Error("snapshot projection failed",
				slog.String("room", room), slog.Any("error", err))
			b.hub.BroadcastToRoom(room, brackets.WebSocketMessage{
				Type:    "ERROR",
				Payload: map[string]string{"error": publicError(err)},
				RoomID:  room,
			})
			continue
		}

		b.hub.BroadcastToRoom(room, brackets.WebSocketMessage{
			Type:    "BRACKET_SNAPSHOT",
			Payload: result,
			RoomID:  room,
		})
	}
}

func parseRoomID(room string) (int, bool) {
	raw, found := strings.CutPrefix(room, RoomPrefix)
	if !found {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// publicError keeps stream error payloads stable instead of leaking driver
// internals.
func publicError(err error) string {
	switch {
	case errors.Is(err, ErrTournamentNotFound):
		return ErrTournamentNotFound.Error()
	case errors.Is(err, brackets.ErrUnknownMatchSlot):
		return "bracket shape does not match live match data"
	default:
		return ErrStoreUnavailable.Error()
	}
}
