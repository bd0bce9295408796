package handlers

import (
	"context"
	"encoding/json"
	"net/http"
)

// RequireMethod validates that the HTTP request uses the specified method.
// Returns true if the method matches, false otherwise (and writes error response).
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// WriteJSON writes a JSON response with the specified status code and data.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a standard success JSON response.
func WriteSuccess(w http.ResponseWriter, message string) error {
	return WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": message,
	})
}

// WriteError writes a standard error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, map[string]string{
		"status": "error",
		"error":  message,
	})
}

// SessionChecker interface for services that can report session state.
type SessionChecker interface {
	IsAuthenticated(ctx context.Context) bool
}

// RequireSession checks that an active session exists.
// Returns true if authenticated, false otherwise (and writes error response).
func RequireSession(w http.ResponseWriter, r *http.Request, sessions SessionChecker) bool {
	if !sessions.IsAuthenticated(r.Context()) {
		WriteError(w, http.StatusUnauthorized, "Not authenticated. Please log in first.")
		return false
	}
	return true
}
