package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/imaginai/internal/models"
)

// CommunityLister interface for the showcase gallery
type CommunityLister interface {
	List() []models.CommunityImage
}

// CommunityHandler handles community gallery requests
type CommunityHandler struct {
	community CommunityLister
	sessions  SessionChecker
	logger    arbor.ILogger
}

// NewCommunityHandler creates a new community handler
func NewCommunityHandler(community CommunityLister, sessions SessionChecker, logger arbor.ILogger) *CommunityHandler {
	return &CommunityHandler{
		community: community,
		sessions:  sessions,
		logger:    logger,
	}
}

// ListCommunityHandler handles GET /api/community
func (h *CommunityHandler) ListCommunityHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	if !RequireSession(w, r, h.sessions) {
		return
	}

	images := h.community.List()

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count":  len(images),
		"images": images,
	})
}
