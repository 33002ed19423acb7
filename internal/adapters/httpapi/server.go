// Package httpapi exposes the scoring engine over HTTP and serves the
// static browser UI. The API surface is deliberately small: one check
// endpoint, one health endpoint.
package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phishguard/phishguard/internal/application"
)

// Server mounts the scoring API routes.
type Server struct {
	scans     *application.ScanService
	publicDir string
}

// New creates the HTTP adapter around the scan service. publicDir may be
// empty, in which case no static files are served.
func New(scans *application.ScanService, publicDir string) *Server {
	return &Server{scans: scans, publicDir: publicDir}
}

// Routes returns the chi router with all endpoints mounted.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/check", s.handleCheck)
	r.Get("/healthz", s.handleHealth)

	if s.publicDir != "" {
		if _, err := os.Stat(s.publicDir); err == nil {
			r.Handle("/*", http.FileServer(http.Dir(s.publicDir)))
		} else {
			log.Printf("public dir %s not found, static UI disabled", s.publicDir)
		}
	}
	return r
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		writeError(w, http.StatusBadRequest, "url parameter is required")
		return
	}

	result, err := s.scans.Check(r.Context(), rawURL)
	if err != nil {
		if errors.Is(err, application.ErrUnparsableURL) {
			writeError(w, http.StatusBadRequest, "could not parse URL")
			return
		}
		writeError(w, http.StatusInternalServerError, "scoring failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	// The UI may be hosted elsewhere during development.
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
