package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ghdrive/internal/config"
	"ghdrive/internal/services"
)

// PublicHandler serves share links. These routes carry no shared secret; the
// unguessable share id is the only access control.
type PublicHandler struct {
	cfg    *config.Config
	shares *services.ShareService
	files  *services.FileService
}

// NewPublicHandler creates a new public handler.
func NewPublicHandler(cfg *config.Config, shares *services.ShareService, files *services.FileService) *PublicHandler {
	return &PublicHandler{cfg: cfg, shares: shares, files: files}
}

// ShareAccess resolves GET /s/{id} and streams the shared file.
func (h *PublicHandler) ShareAccess(w http.ResponseWriter, r *http.Request) {
	if !h.cfg.GitHubConfigured() {
		http.Error(w, "Configuration error: GH_OWNER and GH_TOKEN must be set", http.StatusInternalServerError)
		return
	}

	id := chi.URLParam(r, "id")
	record, err := h.shares.Resolve(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrShareNotFound):
			http.Error(w, "This share link does not exist", http.StatusNotFound)
		case errors.Is(err, services.ErrShareInactive):
			http.Error(w, "This share link has been deactivated", http.StatusForbidden)
		case errors.Is(err, services.ErrShareExpired):
			http.Error(w, "This share link has expired", http.StatusGone)
		default:
			http.Error(w, "Failed to resolve share link", http.StatusInternalServerError)
		}
		return
	}

	// Past this point any upstream trouble is reported as 502 so public
	// callers never see the backing host's own statuses.
	file, err := h.files.Open(r.Context(), record.FullPath)
	if err != nil {
		http.Error(w, "The shared file is unavailable", http.StatusBadGateway)
		return
	}

	resp, err := h.files.Stream(r.Context(), file.DownloadURL)
	if err != nil {
		http.Error(w, "The shared file is unavailable", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	proxyResponse(w, resp)
}

// proxyResponse forwards an upstream response verbatim: status, headers, and
// an unbuffered body copy.
func proxyResponse(w http.ResponseWriter, resp *http.Response) {
	for key, values := range resp.Header {
		for _, v := range values {
			w.Header().Add(key, v)
		}
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		// Headers are already written; nothing to report to the client.
		log.Printf("Warning: interrupted while proxying content: %v", err)
	}
}
