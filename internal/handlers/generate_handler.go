package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/imaginai/internal/models"
)

// ImageGenerator interface for the external generation client
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (*models.GeneratedImage, error)
}

// HistoryRecorder interface for persisting completed generations
type HistoryRecorder interface {
	Record(ctx context.Context, image models.GeneratedImage) (*models.HistoryEntry, error)
}

// EventBroadcaster interface for pushing generation events via WebSocket
type EventBroadcaster interface {
	BroadcastEvent(eventType string, payload interface{})
}

// GenerateHandler handles image generation requests
type GenerateHandler struct {
	generator ImageGenerator
	history   HistoryRecorder
	sessions  SessionChecker
	wsHandler EventBroadcaster
	inFlight  atomic.Bool
	logger    arbor.ILogger
}

// NewGenerateHandler creates a new generation handler
func NewGenerateHandler(gen ImageGenerator, history HistoryRecorder, sessions SessionChecker, wsHandler EventBroadcaster, logger arbor.ILogger) *GenerateHandler {
	return &GenerateHandler{
		generator: gen,
		history:   history,
		sessions:  sessions,
		wsHandler: wsHandler,
		logger:    logger,
	}
}

// generateRequest is the body for POST /api/generate
type generateRequest struct {
	Prompt string `json:"prompt"`
}

// GenerateImageHandler handles POST /api/generate. One generation at a
// time: a second request while one is in flight gets 409.
func (h *GenerateHandler) GenerateImageHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	if !RequireSession(w, r, h.sessions) {
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse generation request")
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Reject blank prompts before any events go out: an empty
	// submission never enters a generation cycle.
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		WriteError(w, http.StatusBadRequest, "Prompt must not be empty")
		return
	}

	if !h.inFlight.CompareAndSwap(false, true) {
		WriteError(w, http.StatusConflict, "A generation is already in progress")
		return
	}
	defer h.inFlight.Store(false)

	h.broadcast("generation_started", map[string]string{"prompt": prompt})

	image, err := h.generator.Generate(r.Context(), prompt)
	if err != nil {
		h.logger.Error().Err(err).Str("prompt", prompt).Msg("Image generation failed")
		h.broadcast("generation_failed", map[string]string{"reason": err.Error()})
		WriteError(w, http.StatusBadGateway, "Image generation failed")
		return
	}

	entry, err := h.history.Record(r.Context(), *image)
	if err != nil {
		// The image is still usable; the history write is best-effort
		h.logger.Warn().Err(err).Msg("Failed to record generation in history")
	}

	h.logger.Info().Str("prompt", image.Prompt).Msg("Image generated")
	if entry != nil {
		h.broadcast("generation_completed", entry)
	} else {
		h.broadcast("generation_completed", image)
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"image":  image,
	})
}

func (h *GenerateHandler) broadcast(eventType string, payload interface{}) {
	if h.wsHandler != nil {
		h.wsHandler.BroadcastEvent(eventType, payload)
	}
}
