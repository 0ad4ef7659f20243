/*
Package configs is responsible for loading and parsing the application's configuration settings.

It configures both binaries by reading operating system environment variables:
the frontend server's listen port and asset directory, the backend base URLs
the client talks to, and the location of the persisted session record.
*/
package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// AppConfig contains all configuration parameters required for the application to run.
// All configuration values are loaded from environment variables.
type AppConfig struct {
	// General Settings
	Environment string

	// Frontend Server Settings
	Port           int
	FrontendDir    string
	AllowedOrigins []string

	// Backend Endpoints
	APIBaseURL string
	WSURL      string

	// Client Settings
	SessionFile string
}

// LoadConfig reads and parses the application configuration from environment variables.
// It provides default values for each configuration item and performs necessary
// type conversions and validation.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	// --- General Settings ---
	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	// --- Frontend Server Settings ---
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "3000"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT environment variable: %w", err)
	}
	cfg.Port = port

	if cfg.Port < 1024 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", cfg.Port, 1024, 65535)
	}

	cfg.FrontendDir = os.Getenv("FRONTEND_DIR")
	if cfg.FrontendDir == "" {
		cfg.FrontendDir = "web"
	}

	originsStr := os.Getenv("ALLOWED_ORIGINS")
	if originsStr != "" {
		origins := strings.Split(originsStr, ",")
		for _, origin := range origins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	} else {
		cfg.AllowedOrigins = []string{}
	}

	// --- Backend Endpoints ---
	cfg.APIBaseURL = os.Getenv("API_BASE_URL")
	if cfg.APIBaseURL == "" {
		if cfg.Environment == "development" {
			cfg.APIBaseURL = "http://localhost:8080"
		} else {
			return nil, fmt.Errorf("API_BASE_URL environment variable is required in %s environment", cfg.Environment)
		}
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	cfg.WSURL = os.Getenv("WS_URL")
	if cfg.WSURL == "" {
		if cfg.Environment == "development" {
			cfg.WSURL = "ws://localhost:8080/ws"
		} else {
			return nil, fmt.Errorf("WS_URL environment variable is required in %s environment", cfg.Environment)
		}
	}

	// --- Client Settings ---
	cfg.SessionFile = os.Getenv("SESSION_FILE")
	if cfg.SessionFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory for session file: %w", err)
		}
		cfg.SessionFile = filepath.Join(home, ".chatfront", "session.json")
	}

	return cfg, nil
}
