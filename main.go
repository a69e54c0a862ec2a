package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"ghdrive/internal/config"
	"ghdrive/internal/gh"
	"ghdrive/internal/handlers"
	mw "ghdrive/internal/middleware"
	"ghdrive/internal/services"
	"ghdrive/internal/store"
)

func main() {
	cfg := config.Load()

	if !cfg.GitHubConfigured() {
		log.Println("Warning: GH_OWNER and GH_TOKEN are not set; repository browsing will be unavailable")
	}
	if cfg.AccessToken == "" {
		log.Println("Warning: ACCESS_TOKEN is not set; the instance is open to anyone")
	}

	// Ensure the database directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	shareStore, err := store.NewBadgerStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open share database: %v", err)
	}
	defer shareStore.Close()

	// Initialize services
	client := gh.NewClient(cfg.Owner, cfg.Token)
	shareService := services.NewShareService(shareStore)
	fileService := services.NewFileService(client)

	// Initialize handlers
	apiHandler := handlers.NewAPIHandler(shareService, fileService)
	publicHandler := handlers.NewPublicHandler(cfg, shareService, fileService)
	webHandler := handlers.NewWebHandler(cfg, fileService, shareService)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Compress(5))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Public share routes (no access token required; the share id is the
	// only credential)
	r.Get("/s/{id}", publicHandler.ShareAccess)

	auth := mw.NewAuth(cfg.AccessToken)

	// Management API (protected)
	r.Group(func(r chi.Router) {
		r.Use(auth.API)

		r.Post("/api/share/create", apiHandler.CreateShare)
		r.Post("/api/share/toggle", apiHandler.ToggleShare)
		r.Post("/api/share/delete", apiHandler.DeleteShare)
		r.Post("/api/file/update", apiHandler.UpdateFile)
	})

	// Browser routes (protected, catch-all must be last)
	r.Group(func(r chi.Router) {
		r.Use(auth.Web)

		r.Get("/admin/shares", webHandler.AdminShares)
		r.Get("/", webHandler.Index)
		r.Get("/*", webHandler.Browse)
	})

	// Start server
	log.Printf("Starting server on port %s", cfg.Port)
	log.Printf("Web UI: http://localhost:%s/", cfg.Port)

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
