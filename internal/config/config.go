package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the server. It is built once in
// main and passed explicitly to every component that needs it.
type Config struct {
	// Port is the HTTP listen port.
	Port string

	// DBPath is the on-disk location of the share record database.
	DBPath string

	// Owner is the GitHub account whose repositories are exposed.
	Owner string

	// Token is the GitHub API token used for all upstream calls.
	Token string

	// AccessToken is the shared secret protecting the browser and API
	// surface. Empty means the instance is open.
	AccessToken string
}

// Load reads configuration from a .env file (if present) and the process
// environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg := &Config{
		Port:        os.Getenv("PORT"),
		DBPath:      os.Getenv("DB_PATH"),
		Owner:       os.Getenv("GH_OWNER"),
		Token:       os.Getenv("GH_TOKEN"),
		AccessToken: os.Getenv("ACCESS_TOKEN"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "./data/shares.db"
	}

	return cfg
}

// GitHubConfigured reports whether the upstream GitHub identity is usable.
// Handlers refuse to serve repository content without it.
func (c *Config) GitHubConfigured() bool {
	return c.Owner != "" && c.Token != ""
}
