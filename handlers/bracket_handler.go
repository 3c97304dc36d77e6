package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Dosada05/bracket-live/brackets"
	"github.com/Dosada05/bracket-live/services"
	"github.com/google/uuid"
)

type BracketHandler struct {
	projection services.ProjectionService
	interval   time.Duration
	logger     *slog.Logger
}

func NewBracketHandler(projection services.ProjectionService, interval time.Duration, logger *slog.Logger) *BracketHandler {
	return &BracketHandler{
		projection: projection,
		interval:   interval,
		logger:     logger,
	}
}

// GetMetaHandler обрабатывает GET /tournaments/{tournamentID}
func (h *BracketHandler) GetMetaHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	meta, err := h.projection.Meta(r.Context(), id)
	if err != nil {
		h.logError(r, err)
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": meta}, nil); err != nil {
		h.logError(r, err)
	}
}

// GetHandler обрабатывает GET /bracket/{tournamentID} — one-shot snapshot.
func (h *BracketHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.projection.Project(r.Context(), id)
	if err != nil {
		h.logError(r, err)
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
		h.logError(r, err)
	}
}

// StreamHandler обрабатывает GET /bracket/{tournamentID}/stream — SSE feed.
// Every tick pushes the complete current bracket as one data event. Per-tick
// failures become named error events and the stream stays open; an unknown
// tournament is fatal and closes the stream.
func (h *BracketHandler) StreamHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		serverErrorResponse(w, r, "streaming is not supported by this connection")
		return
	}

	subscriberID := uuid.NewString()
	h.logger.Info("bracket stream opened",
		slog.Int("tournament_id", id), slog.String("subscriber_id", subscriberID))

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	// First snapshot immediately, then one per tick.
	for {
		if fatal := h.streamTick(w, r, flusher, id, subscriberID); fatal {
			return
		}
		select {
		case <-r.Context().Done():
			h.logger.Info("bracket stream closed by client",
				slog.Int("tournament_id", id), slog.String("subscriber_id", subscriberID))
			return
		case <-ticker.C:
		}
	}
}

func (h *BracketHandler) streamTick(w http.ResponseWriter, r *http.Request, flusher http.Flusher, id int, subscriberID string) (fatal bool) {
	result, err := h.projection.Project(r.Context(), id)
	if err != nil {
		h.logError(r, err)

		fatal = errors.Is(err, services.ErrTournamentNotFound)
		writeSSEError(w, streamErrorMessage(err))
		flusher.Flush()
		if fatal {
			h.logger.Info("bracket stream closed on fatal error",
				slog.Int("tournament_id", id), slog.String("subscriber_id", subscriberID))
		}
		return fatal
	}

	payload, err := json.Marshal(result)
	if err != nil {
		h.logError(r, err)
		writeSSEError(w, "failed to encode bracket snapshot")
		flusher.Flush()
		return false
	}

	fmt.Fprintf(w, "data: %s\n\n", payload)
	flusher.Flush()
	return false
}

func writeSSEError(w http.ResponseWriter, message string) {
	payload, _ := json.Marshal(map[string]string{"error": message})
	fmt.Fprintf(w, "event: error\ndata: %s\n\n", payload)
}

func streamErrorMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrTournamentNotFound):
		return services.ErrTournamentNotFound.Error()
	case errors.Is(err, brackets.ErrUnknownMatchSlot):
		return "bracket shape does not match live match data"
	default:
		return services.ErrStoreUnavailable.Error()
	}
}

func (h *BracketHandler) logError(r *http.Request, err error) {
	h.logger.Error("bracket request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err))
}
