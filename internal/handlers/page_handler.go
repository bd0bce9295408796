package handlers

import (
	"html/template"
	"net/http"
	"os"
	"path/filepath"

	"github.com/ternarybob/arbor"
)

type PageHandler struct {
	logger      arbor.ILogger
	templates   *template.Template
	pagesDir    string
	sessions    SessionChecker
	clientDebug bool
}

func NewPageHandler(sessions SessionChecker, logger arbor.ILogger, pagesDir string, clientDebug bool) *PageHandler {
	// Find pages directory (in bin/ after build)
	if pagesDir == "" {
		pagesDir = findPagesDir()
	}

	// Parse all HTML templates
	templates := template.Must(template.ParseGlob(filepath.Join(pagesDir, "*.html")))

	return &PageHandler{
		logger:      logger,
		templates:   templates,
		pagesDir:    pagesDir,
		sessions:    sessions,
		clientDebug: clientDebug,
	}
}

// findPagesDir locates the pages directory
func findPagesDir() string {
	// Check common locations
	dirs := []string{
		"./pages",     // Running from project root
		"../pages",    // Running from bin/
		"../../pages", // Running from deeper location
		".",           // Current directory (for deployed bin/)
	}

	for _, dir := range dirs {
		if _, err := os.Stat(dir); err == nil {
			abs, _ := filepath.Abs(dir)
			return abs
		}
	}

	return "."
}

// ServePage creates a handler function for serving a specific page template
func (h *PageHandler) ServePage(templateName string, pageName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := map[string]interface{}{
			"Page":          pageName,
			"ClientDebug":   h.clientDebug,
			"Authenticated": h.sessions.IsAuthenticated(r.Context()),
		}

		if err := h.templates.ExecuteTemplate(w, templateName, data); err != nil {
			h.logger.Error().
				Err(err).
				Str("template", templateName).
				Msg("Failed to render page")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
	}
}

// ServeProtectedPage serves a page only when a session is active;
// unauthenticated visitors are redirected to the login page.
func (h *PageHandler) ServeProtectedPage(templateName string, pageName string) http.HandlerFunc {
	serve := h.ServePage(templateName, pageName)
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.sessions.IsAuthenticated(r.Context()) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		serve(w, r)
	}
}

// StaticFileHandler serves static files (CSS, JS, images)
func (h *PageHandler) StaticFileHandler(w http.ResponseWriter, r *http.Request) {
	staticDir := filepath.Join(h.pagesDir, "static")

	// Remove /static prefix from URL path
	path := r.URL.Path[len("/static/"):]
	fullPath := filepath.Join(staticDir, path)

	// Security check - prevent directory traversal
	if !filepath.HasPrefix(fullPath, staticDir) {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, fullPath)
}
