// -----------------------------------------------------------------------
// Last Modified: Monday, 1st September 2025 11:14:37 am
// Modified By: Bob McAllan
// -----------------------------------------------------------------------

package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// UI Page routes (HTML templates)
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/login", s.app.PageHandler.ServePage("login.html", "login"))
	mux.HandleFunc("/signup", s.app.PageHandler.ServePage("signup.html", "signup"))
	mux.HandleFunc("/dashboard", s.app.PageHandler.ServeProtectedPage("dashboard.html", "dashboard"))
	mux.HandleFunc("/history", s.app.PageHandler.ServeProtectedPage("history.html", "history"))
	mux.HandleFunc("/community", s.app.PageHandler.ServeProtectedPage("community.html", "community"))

	// Static files (CSS, JS, images)
	mux.HandleFunc("/static/", s.app.PageHandler.StaticFileHandler)

	// WebSocket route
	mux.HandleFunc("/ws", s.app.WSHandler.HandleWebSocket)

	// API routes - Accounts and sessions
	mux.HandleFunc("/api/signup", s.app.AccountHandler.SignupHandler)   // POST - register credentials
	mux.HandleFunc("/api/login", s.app.AccountHandler.LoginHandler)     // POST - validate and open session
	mux.HandleFunc("/api/logout", s.app.AccountHandler.LogoutHandler)   // POST - drop session flag
	mux.HandleFunc("/api/session", s.app.AccountHandler.SessionHandler) // GET - session status

	// API routes - Image generation
	mux.HandleFunc("/api/generate", s.app.GenerateHandler.GenerateImageHandler)

	// API routes - History and community gallery
	mux.HandleFunc("/api/history", s.app.HistoryHandler.ListHistoryHandler)
	mux.HandleFunc("/api/community", s.app.CommunityHandler.ListCommunityHandler)

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)
	mux.HandleFunc("/api/status", s.app.StatusHandler.GetStatusHandler)
	mux.HandleFunc("/api/shutdown", s.ShutdownHandler) // Graceful shutdown endpoint (dev mode)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}

// handleIndex serves the landing page at "/" only; the ServeMux root
// pattern otherwise swallows every unmatched path.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.app.PageHandler.ServePage("index.html", "home")(w, r)
}
