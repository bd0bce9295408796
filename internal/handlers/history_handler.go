package handlers

import (
	"context"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/imaginai/internal/models"
)

// HistoryLoader interface for reading the generation history
type HistoryLoader interface {
	LoadAll(ctx context.Context) []models.HistoryEntry
}

// HistoryHandler handles generation history requests
type HistoryHandler struct {
	history  HistoryLoader
	sessions SessionChecker
	logger   arbor.ILogger
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(history HistoryLoader, sessions SessionChecker, logger arbor.ILogger) *HistoryHandler {
	return &HistoryHandler{
		history:  history,
		sessions: sessions,
		logger:   logger,
	}
}

// ListHistoryHandler handles GET /api/history. Entries come back most
// recent first.
func (h *HistoryHandler) ListHistoryHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	if !RequireSession(w, r, h.sessions) {
		return
	}

	entries := h.history.LoadAll(r.Context())

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(entries),
		"history": entries,
	})
}
