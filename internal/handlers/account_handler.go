package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ternarybob/arbor"
)

// AccountService interface for credential and session operations
type AccountService interface {
	Signup(ctx context.Context, username, password string)
	Login(ctx context.Context, username, password string) bool
	Logout(ctx context.Context)
	IsAuthenticated(ctx context.Context) bool
}

// AccountHandler handles signup, login, logout and session requests
type AccountHandler struct {
	accounts AccountService
	logger   arbor.ILogger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accounts AccountService, logger arbor.ILogger) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		logger:   logger,
	}
}

// credentialsRequest is the body shared by signup and login
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignupHandler handles POST /api/signup
func (h *AccountHandler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse signup request")
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.accounts.Signup(r.Context(), req.Username, req.Password)

	h.logger.Info().Str("username", req.Username).Msg("Account registered")

	WriteSuccess(w, "Account created successfully")
}

// LoginHandler handles POST /api/login
func (h *AccountHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse login request")
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !h.accounts.Login(r.Context(), req.Username, req.Password) {
		h.logger.Warn().Str("username", req.Username).Msg("Login rejected")
		WriteError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	h.logger.Info().Str("username", req.Username).Msg("Login successful")

	WriteSuccess(w, "Logged in successfully")
}

// LogoutHandler handles POST /api/logout
func (h *AccountHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	h.accounts.Logout(r.Context())

	WriteSuccess(w, "Logged out")
}

// SessionHandler handles GET /api/session
func (h *AccountHandler) SessionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"authenticated": h.accounts.IsAuthenticated(r.Context()),
	})
}
