package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghdrive/internal/config"
	"ghdrive/internal/gh"
	"ghdrive/internal/services"
	"ghdrive/internal/store"
)

// fakeContent is a canned-response content client shared by handler tests.
type fakeContent struct {
	file    *gh.File
	entries []gh.Entry
	repos   []gh.Repository
	err     error

	updateErr error
	streamed  string // body served by StreamFile
}

func (c *fakeContent) Contents(ctx context.Context, repo, path string) (*gh.File, []gh.Entry, error) {
	return c.file, c.entries, c.err
}

func (c *fakeContent) ListRepositories(ctx context.Context) ([]gh.Repository, error) {
	return c.repos, c.err
}

func (c *fakeContent) UpdateFile(ctx context.Context, repo, path, sha, content string) error {
	return c.updateErr
}

func (c *fakeContent) StreamFile(ctx context.Context, downloadURL string) (*http.Response, error) {
	if c.err != nil {
		return nil, c.err
	}
	header := http.Header{}
	header.Set("Content-Type", "text/plain")
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(c.streamed)),
	}, nil
}

type testEnv struct {
	store   store.Store
	content *fakeContent
	shares  *services.ShareService
	router  chi.Router
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := store.NewBadgerStore(filepath.Join(t.TempDir(), "shares.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cfg := &config.Config{Owner: "octocat", Token: "test-token"}
	content := &fakeContent{}
	shareService := services.NewShareService(st)
	fileService := services.NewFileService(content)

	api := NewAPIHandler(shareService, fileService)
	public := NewPublicHandler(cfg, shareService, fileService)
	web := NewWebHandler(cfg, fileService, shareService)

	r := chi.NewRouter()
	r.Get("/s/{id}", public.ShareAccess)
	r.Post("/api/share/create", api.CreateShare)
	r.Post("/api/share/toggle", api.ToggleShare)
	r.Post("/api/share/delete", api.DeleteShare)
	r.Post("/api/file/update", api.UpdateFile)
	r.Get("/admin/shares", web.AdminShares)
	r.Get("/", web.Index)
	r.Get("/*", web.Browse)

	return &testEnv{store: st, content: content, shares: shareService, router: r}
}

func (e *testEnv) do(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeAPIResponse(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestCreateShare(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do("POST", "/api/share/create", `{"fullPath":"myrepo/notes.txt","unit":"day","value":3}`)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeAPIResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Contains(t, resp.URL, "http://example.com/s/")

	id := resp.URL[strings.LastIndex(resp.URL, "/")+1:]
	record, err := env.store.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "myrepo/notes.txt", record.FullPath)
	require.NotNil(t, record.ExpireAt)
	assert.Equal(t, record.CreatedAt+3*86400000, *record.ExpireAt)
}

func TestCreateShareRejectsBadDuration(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do("POST", "/api/share/create", `{"fullPath":"myrepo/notes.txt","unit":"decade","value":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, decodeAPIResponse(t, rec).Success)
}

func TestToggleShare(t *testing.T) {
	env := newTestEnv(t)

	record, err := env.shares.Create(context.Background(), "myrepo/notes.txt", "forever", 1)
	require.NoError(t, err)

	rec := env.do("POST", "/api/share/toggle", `{"id":"`+record.ID+`","active":false}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeAPIResponse(t, rec).Success)

	got, err := env.store.Get(context.Background(), record.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
}

func TestToggleMissingShare(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do("POST", "/api/share/toggle", `{"id":"missing1","active":true}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, decodeAPIResponse(t, rec).Success)

	records, err := env.store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDeleteShareIsIdempotent(t *testing.T) {
	env := newTestEnv(t)

	record, err := env.shares.Create(context.Background(), "myrepo/notes.txt", "forever", 1)
	require.NoError(t, err)

	rec := env.do("POST", "/api/share/delete", `{"id":"`+record.ID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeAPIResponse(t, rec).Success)

	// Deleting again (or any unknown id) still reports success.
	rec = env.do("POST", "/api/share/delete", `{"id":"`+record.ID+`"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeAPIResponse(t, rec).Success)
}

func TestUpdateFile(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do("POST", "/api/file/update", `{"repo":"myrepo","path":"notes.txt","sha":"v1","content":"hello"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeAPIResponse(t, rec).Success)
}

func TestUpdateFileConflict(t *testing.T) {
	env := newTestEnv(t)
	env.content.updateErr = &gh.UpstreamError{
		StatusCode: http.StatusConflict,
		Message:    "notes.txt is at v2 but expected v1",
	}

	rec := env.do("POST", "/api/file/update", `{"repo":"myrepo","path":"notes.txt","sha":"v1","content":"hello"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeAPIResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "notes.txt is at v2 but expected v1", resp.Message)
}

func TestUpdateFileMissing(t *testing.T) {
	env := newTestEnv(t)
	env.content.updateErr = &gh.UpstreamError{StatusCode: http.StatusNotFound, Message: "Not Found"}

	rec := env.do("POST", "/api/file/update", `{"repo":"myrepo","path":"gone.txt","sha":"v1","content":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
