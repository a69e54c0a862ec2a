package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"ghdrive/internal/config"
	"ghdrive/internal/gh"
	"ghdrive/internal/models"
	"ghdrive/internal/services"
)

// WebHandler renders the browser UI: repository and directory listings, the
// file editor, and the share management page.
type WebHandler struct {
	cfg    *config.Config
	files  *services.FileService
	shares *services.ShareService
}

// NewWebHandler creates a new web handler.
func NewWebHandler(cfg *config.Config, files *services.FileService, shares *services.ShareService) *WebHandler {
	return &WebHandler{cfg: cfg, files: files, shares: shares}
}

// tokenQuery is appended to every generated link so navigation keeps the
// caller authenticated.
func (h *WebHandler) tokenQuery() string {
	if h.cfg.AccessToken == "" {
		return ""
	}
	return "?token=" + url.QueryEscape(h.cfg.AccessToken)
}

type repoView struct {
	Name    string
	Href    string
	Updated string
	Private bool
}

type crumbView struct {
	Name string
	Href string
}

type entryView struct {
	Name     string
	Href     string
	EditHref string
	FullPath string
	IsDir    bool
}

type shareView struct {
	ID       string
	FileName string
	Href     string
	Expires  string
	Visits   int64
	Active   bool
	Usable   bool
}

// Index renders the repository listing at the root of the virtual path space.
func (h *WebHandler) Index(w http.ResponseWriter, r *http.Request) {
	if !h.configured(w) {
		return
	}

	repos, err := h.files.ListRepositories(r.Context())
	if err != nil {
		h.remoteError(w, err)
		return
	}

	tq := h.tokenQuery()
	views := make([]repoView, 0, len(repos))
	for _, repo := range repos {
		views = append(views, repoView{
			Name:    repo.Name,
			Href:    "/" + repo.Name + tq,
			Updated: repo.UpdatedAt.Format("2006-01-02"),
			Private: repo.Private,
		})
	}

	data := struct {
		Repos      []repoView
		SharesHref string
	}{views, "/admin/shares" + tq}

	h.render(w, reposTmpl, "repos", data)
}

// Browse handles every path below a repository: directory listings, raw file
// proxying, and the editor when ?edit=true is present.
func (h *WebHandler) Browse(w http.ResponseWriter, r *http.Request) {
	if !h.configured(w) {
		return
	}

	path := strings.TrimSuffix(chi.URLParam(r, "*"), "/")
	repo, relPath := models.SplitVirtualPath(path)
	if repo == "" {
		http.Redirect(w, r, "/"+h.tokenQuery(), http.StatusFound)
		return
	}

	if r.URL.Query().Get("edit") == "true" {
		h.editor(w, r, repo, relPath)
		return
	}

	file, entries, err := h.files.Browse(r.Context(), repo, relPath)
	if err != nil {
		h.remoteError(w, err)
		return
	}

	if file != nil {
		resp, err := h.files.Stream(r.Context(), file.DownloadURL)
		if err != nil {
			http.Error(w, "Failed to fetch file content", http.StatusBadGateway)
			return
		}
		defer resp.Body.Close()
		proxyResponse(w, resp)
		return
	}

	h.listing(w, repo, relPath, entries)
}

func (h *WebHandler) listing(w http.ResponseWriter, repo, relPath string, entries []gh.Entry) {
	tq := h.tokenQuery()
	editSep := "?"
	if tq != "" {
		editSep = "&"
	}

	var crumbs []crumbView
	accum := "/" + repo
	crumbs = append(crumbs, crumbView{Name: repo, Href: accum + tq})
	if relPath != "" {
		for _, part := range strings.Split(relPath, "/") {
			accum += "/" + part
			crumbs = append(crumbs, crumbView{Name: part, Href: accum + tq})
		}
	}

	// One level up from the repository root is the repository index.
	parent := "/"
	if relPath != "" {
		if idx := strings.LastIndex(relPath, "/"); idx >= 0 {
			parent = "/" + repo + "/" + relPath[:idx]
		} else {
			parent = "/" + repo
		}
	}

	views := make([]entryView, 0, len(entries))
	for _, e := range entries {
		href := "/" + repo + "/" + e.Path + tq
		views = append(views, entryView{
			Name:     e.Name,
			Href:     href,
			EditHref: href + editSep + "edit=true",
			FullPath: repo + "/" + e.Path,
			IsDir:    e.IsDir(),
		})
	}

	data := struct {
		Repo        string
		HomeHref    string
		SharesHref  string
		ParentHref  string
		Breadcrumbs []crumbView
		Entries     []entryView
		TokenQuery  string
	}{repo, "/" + tq, "/admin/shares" + tq, parent + tq, crumbs, views, tq}

	h.render(w, listingTmpl, "listing", data)
}

func (h *WebHandler) editor(w http.ResponseWriter, r *http.Request, repo, relPath string) {
	file, _, err := h.files.Browse(r.Context(), repo, relPath)
	if err != nil {
		h.remoteError(w, err)
		return
	}
	if file == nil {
		http.Error(w, "Only files can be edited", http.StatusBadRequest)
		return
	}

	content, err := file.Text()
	if err != nil {
		http.Error(w, "Failed to decode file content", http.StatusInternalServerError)
		return
	}

	data := struct {
		Name       string
		Repo       string
		Path       string
		SHA        string
		Content    string
		TokenQuery string
	}{file.Name, repo, relPath, file.SHA, content, h.tokenQuery()}

	h.render(w, editorTmpl, "editor", data)
}

// AdminShares renders the share management page.
func (h *WebHandler) AdminShares(w http.ResponseWriter, r *http.Request) {
	records, err := h.shares.List(r.Context())
	if err != nil {
		http.Error(w, "Failed to load share links", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	views := make([]shareView, 0, len(records))
	for _, rec := range records {
		expires := "Forever"
		if rec.ExpireAt != nil {
			expires = time.UnixMilli(*rec.ExpireAt).Format("2006-01-02 15:04")
		}
		views = append(views, shareView{
			ID:       rec.ID,
			FileName: rec.FileName(),
			Href:     "/s/" + rec.ID,
			Expires:  expires,
			Visits:   rec.Visits,
			Active:   rec.Active,
			Usable:   rec.IsResolvable(now),
		})
	}

	data := struct {
		HomeHref   string
		Shares     []shareView
		TokenQuery string
	}{"/" + h.tokenQuery(), views, h.tokenQuery()}

	h.render(w, sharesTmpl, "shares", data)
}

// configured reports whether the upstream identity is set, answering with a
// configuration error when it is not.
func (h *WebHandler) configured(w http.ResponseWriter) bool {
	if h.cfg.GitHubConfigured() {
		return true
	}
	http.Error(w, "Configuration error: GH_OWNER and GH_TOKEN must be set", http.StatusInternalServerError)
	return false
}

// remoteError maps content resolution failures onto responses: a missing
// remote resource is 404, any other upstream status is forwarded verbatim.
func (h *WebHandler) remoteError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrRemoteNotFound) {
		http.Error(w, "404 file not found", http.StatusNotFound)
		return
	}
	var upstream *gh.UpstreamError
	if errors.As(err, &upstream) {
		http.Error(w, "GitHub API Error: "+upstream.Message, upstream.StatusCode)
		return
	}
	http.Error(w, "Failed to reach GitHub", http.StatusBadGateway)
}

func (h *WebHandler) render(w http.ResponseWriter, tmpl *template.Template, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("Warning: failed to render %s: %v", name, err)
	}
}
