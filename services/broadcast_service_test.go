package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Dosada05/bracket-live/brackets"
	"github.com/Dosada05/bracket-live/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProjectionService struct {
	result *ProjectionResult
	err    error
}

func (s *stubProjectionService) Meta(ctx context.Context, tournamentID int) (*models.Tournament, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result.Tournament, nil
}

func (s *stubProjectionService) Project(ctx context.Context, tournamentID int) (*ProjectionResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func roomClient(t *testing.T, hub *brackets.Hub, room string) *brackets.Client {
	t.Helper()
	client := &brackets.Client{
		Hub:  hub,
		Send: make(chan []byte, 8),
		Room: room,
		ID:   "viewer-1",
	}
	hub.Register <- client
	require.Eventually(t, func() bool {
		return len(hub.Rooms()) == 1
	}, time.Second, 5*time.Millisecond, "client joins the room")
	return client
}

func receiveMessage(t *testing.T, client *brackets.Client) brackets.WebSocketMessage {
	t.Helper()
	select {
	case raw := <-client.Send:
		var msg brackets.WebSocketMessage
		require.NoError(t, json.Unmarshal(raw, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message broadcast to the room")
		return brackets.WebSocketMessage{}
	}
}

func TestTickBroadcastsSnapshotToRoom(t *testing.T) {
	hub := brackets.NewHub(discardLogger())
	go hub.Run()
	client := roomClient(t, hub, RoomID(42))

	svc := &stubProjectionService{result: &ProjectionResult{
		Tournament: &models.Tournament{ID: 42, Name: "Weekly", RoundsTotal: 2, Status: models.StatusStarted},
		Matches:    []*models.BracketSlot{},
	}}
	b := NewSnapshotBroadcaster(hub, svc, 50*time.Millisecond, discardLogger())

	b.tick(context.Background())

	msg := receiveMessage(t, client)
	assert.Equal(t, "BRACKET_SNAPSHOT", msg.Type)
	assert.Equal(t, RoomID(42), msg.RoomID)

	payload, ok := msg.Payload.(map[string]interface{})
	require.True(t, ok)
	tournament, ok := payload["tournament"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Weekly", tournament["name"])
}

func TestTickBroadcastsErrorOnProjectionFailure(t *testing.T) {
	hub := brackets.NewHub(discardLogger())
	go hub.Run()
	client := roomClient(t, hub, RoomID(42))

	b := NewSnapshotBroadcaster(hub, &stubProjectionService{err: ErrStoreUnavailable},
		50*time.Millisecond, discardLogger())

	b.tick(context.Background())

	msg := receiveMessage(t, client)
	assert.Equal(t, "ERROR", msg.Type)

	payload, ok := msg.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, ErrStoreUnavailable.Error(), payload["error"])
}

func TestRoomIDRoundTrip(t *testing.T) {
	id, ok := parseRoomID(RoomID(42))
	assert.True(t, ok)
	assert.Equal(t, 42, id)
}

func TestParseRoomIDRejectsGarbage(t *testing.T) {
	for _, room := range []string{"", "42", "tournament_", "tournament_abc", "tournament_-1", "match_42"} {
		_, ok := parseRoomID(room)
		assert.False(t, ok, "room %q", room)
	}
}

func TestPublicErrorStableMessages(t *testing.T) {
	assert.Equal(t, "tournament not found", publicError(ErrTournamentNotFound))
	assert.Equal(t, "bracket shape does not match live match data",
		publicError(brackets.ErrUnknownMatchSlot))
	assert.Equal(t, "tournament store unavailable", publicError(errors.New("pq: timeout")))
}
