package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/bracket-live/brackets"
	"github.com/Dosada05/bracket-live/services"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The bracket widget is embedded on third-party pages; CORS policy
		// is enforced at the router level instead.
		return true
	},
}

type WebSocketHandler struct {
	hub        *brackets.Hub
	projection services.ProjectionService
	logger     *slog.Logger
}

func NewWebSocketHandler(hub *brackets.Hub, projection services.ProjectionService, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:        hub,
		projection: projection,
		logger:     logger,
	}
}

// ServeWs обрабатывает GET /ws/tournaments/{tournamentID}: verifies the
// tournament exists, upgrades the connection and joins the tournament room.
// Snapshots arrive from the broadcaster; the client never sends anything.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if _, err := h.projection.Meta(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote an HTTP error to the client.
		h.logger.Warn("websocket upgrade failed",
			slog.Int("tournament_id", id), slog.Any("error", err))
		return
	}

	client := &brackets.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: services.RoomID(id),
		ID:   uuid.NewString(),
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
