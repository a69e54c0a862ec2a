package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"ghdrive/internal/gh"
	"ghdrive/internal/models"
	"ghdrive/internal/services"
)

// APIHandler handles the JSON management API.
type APIHandler struct {
	shares *services.ShareService
	files  *services.FileService
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(shares *services.ShareService, files *services.FileService) *APIHandler {
	return &APIHandler{shares: shares, files: files}
}

// CreateShareRequest is the payload for POST /api/share/create.
type CreateShareRequest struct {
	FullPath string `json:"fullPath"`
	Unit     string `json:"unit"`
	Value    int    `json:"value"`
}

// ToggleShareRequest is the payload for POST /api/share/toggle.
type ToggleShareRequest struct {
	ID     string `json:"id"`
	Active bool   `json:"active"`
}

// DeleteShareRequest is the payload for POST /api/share/delete.
type DeleteShareRequest struct {
	ID string `json:"id"`
}

// UpdateFileRequest is the payload for POST /api/file/update.
type UpdateFileRequest struct {
	Repo    string `json:"repo"`
	Path    string `json:"path"`
	SHA     string `json:"sha"`
	Content string `json:"content"`
}

// APIResponse is the envelope for all management API answers.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	URL     string `json:"url,omitempty"`
}

// CreateShare creates a share link and returns its public URL.
func (h *APIHandler) CreateShare(w http.ResponseWriter, r *http.Request) {
	var req CreateShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	record, err := h.shares.Create(r.Context(), req.FullPath, req.Unit, req.Value)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPath) {
			respondError(w, "A file path is required", http.StatusBadRequest)
			return
		}
		if errors.Is(err, models.ErrInvalidDuration) {
			respondError(w, "Invalid share duration", http.StatusBadRequest)
			return
		}
		respondError(w, "Failed to create share link: "+err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, APIResponse{
		Success: true,
		URL:     requestOrigin(r) + "/s/" + record.ID,
	}, http.StatusOK)
}

// ToggleShare flips a share link's active flag.
func (h *APIHandler) ToggleShare(w http.ResponseWriter, r *http.Request) {
	var req ToggleShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.shares.Toggle(r.Context(), req.ID, req.Active); err != nil {
		if errors.Is(err, services.ErrShareNotFound) {
			respondError(w, "Share link not found", http.StatusNotFound)
			return
		}
		respondError(w, "Failed to update share link: "+err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, APIResponse{Success: true}, http.StatusOK)
}

// DeleteShare removes a share link. Deleting an unknown id still succeeds.
func (h *APIHandler) DeleteShare(w http.ResponseWriter, r *http.Request) {
	var req DeleteShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.shares.Delete(r.Context(), req.ID); err != nil {
		respondError(w, "Failed to delete share link: "+err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, APIResponse{Success: true}, http.StatusOK)
}

// UpdateFile writes edited content back to the repository under optimistic
// concurrency control. A stale version token comes back as a structured
// failure carrying the upstream's message; the client decides whether to
// re-fetch and retry.
func (h *APIHandler) UpdateFile(w http.ResponseWriter, r *http.Request) {
	var req UpdateFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	err := h.files.Update(r.Context(), req.Repo, req.Path, req.SHA, req.Content)
	if err != nil {
		var conflict *services.ConflictError
		if errors.As(err, &conflict) {
			respondError(w, conflict.Message, http.StatusBadRequest)
			return
		}
		if errors.Is(err, services.ErrRemoteNotFound) {
			respondError(w, "File not found", http.StatusNotFound)
			return
		}
		var upstream *gh.UpstreamError
		if errors.As(err, &upstream) {
			respondError(w, upstream.Message, upstream.StatusCode)
			return
		}
		respondError(w, "Failed to update file: "+err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, APIResponse{Success: true}, http.StatusOK)
}

// Helper functions

// requestOrigin rebuilds the external origin of the request for share URLs.
func requestOrigin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}

func respondJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, APIResponse{Success: false, Message: message}, status)
}
