// Package gh is the client for the GitHub repository that backs the virtual
// filesystem: metadata reads, directory listings, raw blob streaming, and the
// conditional content write used for edits.
package gh

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v57/github"

	"ghdrive/internal/codec"
)

// userAgent identifies this service on every upstream call.
const userAgent = "ghdrive-file-manager"

// commitMessage is used for all content writes.
const commitMessage = "Update via Web Manager"

// UpstreamError carries a non-2xx answer from the GitHub API, preserving the
// upstream status code so handlers can forward it.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("github api error: %d %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue) && ue.StatusCode == http.StatusNotFound
}

// Entry is one item of a directory listing.
type Entry struct {
	Name string
	Path string
	Type string // "file" or "dir"
	Size int
	SHA  string
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool { return e.Type == "dir" }

// File is the metadata of a single file, including the SHA version token
// required for conditional writes and the reference used to stream its bytes.
type File struct {
	Name        string
	Path        string
	Size        int
	SHA         string
	DownloadURL string

	// Content is the raw payload from the contents API, Encoding how it is
	// encoded ("base64" for regular blobs).
	Content  string
	Encoding string
}

// Text returns the file's decoded text content.
func (f *File) Text() (string, error) {
	if f.Encoding == "base64" {
		return codec.Decode(f.Content)
	}
	return f.Content, nil
}

// Repository is one repository visible to the configured identity.
type Repository struct {
	Name      string
	Private   bool
	UpdatedAt time.Time
}

// Client talks to the GitHub API on behalf of a single owner/token identity.
type Client struct {
	owner string
	token string
	api   *github.Client
	http  *http.Client
}

// NewClient builds a client for the given owner authenticated with token.
func NewClient(owner, token string) *Client {
	api := github.NewClient(nil).WithAuthToken(token)
	api.UserAgent = userAgent

	return &Client{
		owner: owner,
		token: token,
		api:   api,
		http:  &http.Client{},
	}
}

// SetBaseURL points the client at an alternate API endpoint. Used by tests.
func (c *Client) SetBaseURL(raw string) error {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	c.api.BaseURL = u
	return nil
}

// Contents fetches the contents API entry for a path inside a repository.
// Exactly one of the results is non-nil: a directory listing or a single
// file's metadata. An empty path addresses the repository root.
func (c *Client) Contents(ctx context.Context, repo, path string) (*File, []Entry, error) {
	fileContent, dirContent, _, err := c.api.Repositories.GetContents(ctx, c.owner, repo, path, nil)
	if err != nil {
		return nil, nil, upstreamErr(err)
	}

	if dirContent != nil {
		entries := make([]Entry, 0, len(dirContent))
		for _, item := range dirContent {
			entries = append(entries, Entry{
				Name: item.GetName(),
				Path: item.GetPath(),
				Type: item.GetType(),
				Size: item.GetSize(),
				SHA:  item.GetSHA(),
			})
		}
		return nil, entries, nil
	}

	if fileContent == nil {
		return nil, nil, &UpstreamError{StatusCode: http.StatusInternalServerError, Message: "unexpected contents response"}
	}

	file := &File{
		Name:        fileContent.GetName(),
		Path:        fileContent.GetPath(),
		Size:        fileContent.GetSize(),
		SHA:         fileContent.GetSHA(),
		DownloadURL: fileContent.GetDownloadURL(),
		Encoding:    fileContent.GetEncoding(),
	}
	// Keep the raw payload; Text runs it through the codec on demand.
	if fileContent.Content != nil {
		file.Content = *fileContent.Content
	}
	return file, nil, nil
}

// ListRepositories returns all repositories owned by the configured identity,
// most recently updated first.
func (c *Client) ListRepositories(ctx context.Context) ([]Repository, error) {
	opts := &github.RepositoryListOptions{
		Visibility:  "all",
		Affiliation: "owner",
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	list, _, err := c.api.Repositories.List(ctx, "", opts)
	if err != nil {
		return nil, upstreamErr(err)
	}

	repos := make([]Repository, 0, len(list))
	for _, r := range list {
		repos = append(repos, Repository{
			Name:      r.GetName(),
			Private:   r.GetPrivate(),
			UpdatedAt: r.GetUpdatedAt().Time,
		})
	}
	return repos, nil
}

// UpdateFile submits a conditional content write. The sha must be the file's
// current version token; the upstream rejects the write if it no longer
// matches, and the rejection surfaces as an UpstreamError with the upstream's
// status and message.
func (c *Client) UpdateFile(ctx context.Context, repo, path, sha, content string) error {
	opts := &github.RepositoryContentFileOptions{
		Message: github.String(commitMessage),
		Content: []byte(content),
		SHA:     github.String(sha),
	}

	_, _, err := c.api.Repositories.UpdateFile(ctx, c.owner, repo, path, opts)
	if err != nil {
		return upstreamErr(err)
	}
	return nil
}

// StreamFile fetches the raw bytes behind a content-fetch reference. The
// response body is not buffered; the caller is responsible for copying it out
// and closing it. Non-2xx responses are returned as-is so their status can be
// forwarded.
func (c *Client) StreamFile(ctx context.Context, downloadURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build content request: %w", err)
	}
	req.Header.Set("Authorization", "token "+c.token)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch file content: %w", err)
	}
	return resp, nil
}

// upstreamErr converts a go-github error into an UpstreamError, keeping the
// upstream status code and message when available.
func upstreamErr(err error) error {
	var ger *github.ErrorResponse
	if errors.As(err, &ger) && ger.Response != nil {
		return &UpstreamError{StatusCode: ger.Response.StatusCode, Message: ger.Message}
	}
	return fmt.Errorf("github api request failed: %w", err)
}
