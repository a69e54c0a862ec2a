package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"ghdrive/internal/gh"
	"ghdrive/internal/models"
)

var (
	ErrRemoteNotFound = errors.New("remote resource not found")
	ErrNotAFile       = errors.New("path does not address a file")
)

// ConflictError reports a rejected conditional write: the supplied version
// token no longer matched the file's current content. The message comes from
// the upstream host so the caller can show why the write was refused.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// ContentClient is the slice of the GitHub client the file service needs.
type ContentClient interface {
	Contents(ctx context.Context, repo, path string) (*gh.File, []gh.Entry, error)
	ListRepositories(ctx context.Context) ([]gh.Repository, error)
	UpdateFile(ctx context.Context, repo, path, sha, content string) error
	StreamFile(ctx context.Context, downloadURL string) (*http.Response, error)
}

// FileService resolves virtual paths against the remote repository host and
// coordinates optimistic-concurrency file writes.
type FileService struct {
	client ContentClient
}

// NewFileService creates a file service on top of a content client.
func NewFileService(client ContentClient) *FileService {
	return &FileService{client: client}
}

// ListRepositories returns the repositories at the root of the virtual path
// space, most recently updated first.
func (s *FileService) ListRepositories(ctx context.Context) ([]gh.Repository, error) {
	return s.client.ListRepositories(ctx)
}

// Browse resolves a path inside a repository. Exactly one result is non-nil:
// directory entries (directories first, each group name-sorted) or a single
// file's metadata. A missing remote resource maps to ErrRemoteNotFound; any
// other upstream failure passes through with its status.
func (s *FileService) Browse(ctx context.Context, repo, relPath string) (*gh.File, []gh.Entry, error) {
	file, entries, err := s.client.Contents(ctx, repo, relPath)
	if err != nil {
		if gh.IsNotFound(err) {
			return nil, nil, ErrRemoteNotFound
		}
		return nil, nil, err
	}

	if entries != nil {
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].IsDir() != entries[j].IsDir() {
				return entries[i].IsDir()
			}
			return entries[i].Name < entries[j].Name
		})
		return nil, entries, nil
	}

	return file, nil, nil
}

// Open resolves a full virtual path ("<repo>/<path>") that must address a
// single file. Used when serving share links.
func (s *FileService) Open(ctx context.Context, fullPath string) (*gh.File, error) {
	repo, relPath := models.SplitVirtualPath(fullPath)
	if repo == "" {
		return nil, ErrRemoteNotFound
	}

	file, _, err := s.Browse(ctx, repo, relPath)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, ErrNotAFile
	}
	return file, nil
}

// Stream fetches the raw bytes behind a file's content reference.
func (s *FileService) Stream(ctx context.Context, downloadURL string) (*http.Response, error) {
	return s.client.StreamFile(ctx, downloadURL)
}

// Update writes new content to a file under optimistic concurrency control.
// The sha is the version token read with the content; if any other write has
// landed since, the upstream rejects the request and the rejection surfaces
// as a ConflictError. No retry is attempted here.
func (s *FileService) Update(ctx context.Context, repo, relPath, sha, content string) error {
	err := s.client.UpdateFile(ctx, repo, relPath, sha, content)
	if err == nil {
		return nil
	}

	var ue *gh.UpstreamError
	if errors.As(err, &ue) {
		switch ue.StatusCode {
		case http.StatusConflict, http.StatusUnprocessableEntity:
			return &ConflictError{Message: ue.Message}
		case http.StatusNotFound:
			return ErrRemoteNotFound
		}
	}
	return fmt.Errorf("failed to update file: %w", err)
}
