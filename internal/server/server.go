/*
Package server provides the HTTP routing for the static frontend server.

The server only hands out the client entry pages and their assets: "/" and
the catch-all serve the main page, "/auth" serves the login page, and
anything that matches a real file under the frontend directory is served
as-is. CORS, request logging, and IP rate limiting are applied the same way
as on any other outward-facing surface.
*/
package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"chatfront/internal/configs"
	"chatfront/internal/pkg/limiter"
	"chatfront/internal/pkg/logx"
	"chatfront/internal/pkg/resp"
)

const (
	// PageRate limits page and asset requests per IP.
	PageRate = 20

	// PageBurst is the per-IP burst allowance.
	PageBurst = 40
)

// Router sets up the routing table for the frontend server: health endpoint,
// entry pages, static assets, and the catch-all back to the main page.
func Router(cfg *configs.AppConfig) http.Handler {
	pageLimiter := limiter.NewIPRateLimiter(rate.Limit(PageRate), PageBurst)

	r := chi.NewRouter()

	corsAllowedOrigins := []string{}
	if cfg.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(cfg.AllowedOrigins) > 0 {
		corsAllowedOrigins = cfg.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "chatfront frontend server",
		}
		resp.RespondSuccess(w, r, data)
	})

	pages := pageLimiter.Middleware(http.HandlerFunc(servePages(cfg.FrontendDir)))
	r.Get("/*", pages.ServeHTTP)

	return r
}

// servePages serves "/" and "/auth" entry pages, real files from the
// frontend directory, and falls back to the main page for anything else so
// client-side routes always land on the app.
func servePages(frontendDir string) http.HandlerFunc {
	indexPath := filepath.Join(frontendDir, "index.html")
	authPath := filepath.Join(frontendDir, "auth.html")

	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			http.ServeFile(w, r, indexPath)
			return
		case "/auth":
			http.ServeFile(w, r, authPath)
			return
		}

		name := strings.TrimPrefix(filepath.Clean(r.URL.Path), "/")
		if name != "" && !strings.Contains(name, "..") {
			candidate := filepath.Join(frontendDir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				http.ServeFile(w, r, candidate)
				return
			}
		}

		// Catch-all: unknown paths get the main page.
		http.ServeFile(w, r, indexPath)
	}
}
