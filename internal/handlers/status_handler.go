package handlers

import (
	"context"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/imaginai/internal/common"
	"github.com/ternarybob/imaginai/internal/interfaces"
)

// SlotLister enumerates stored slots for the status report
type SlotLister interface {
	List(ctx context.Context) ([]interfaces.Slot, error)
}

// StatusHandler handles HTTP requests for application status
type StatusHandler struct {
	slots  SlotLister
	logger arbor.ILogger
}

// NewStatusHandler creates a new StatusHandler
func NewStatusHandler(slots SlotLister, logger arbor.ILogger) *StatusHandler {
	return &StatusHandler{
		slots:  slots,
		logger: logger,
	}
}

// GetStatusHandler handles GET /api/status - reports version info and a
// summary of the stored slots. Slot values never appear in the response;
// the credential slot holds a password.
func (h *StatusHandler) GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	slots, err := h.slots.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list storage slots")
		WriteError(w, http.StatusInternalServerError, "Failed to read storage status")
		return
	}

	summaries := make([]map[string]interface{}, len(slots))
	for i, slot := range slots {
		summaries[i] = map[string]interface{}{
			"name":       slot.Name,
			"created_at": slot.CreatedAt,
			"updated_at": slot.UpdatedAt,
		}
	}

	h.logger.Debug().Int("count", len(slots)).Msg("Reported storage status")
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": common.GetVersion(),
		"storage": map[string]interface{}{
			"slot_count": len(slots),
			"slots":      summaries,
		},
	})
}
