/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the frontend

ROUTE GROUPS:
  /api/books/*      Book inventory
  /api/sellers/*    Sellers
  /api/stock/*      Stock movements
  /api/sales/*      Single and batch sales
  /api/export/*     TSV reports
  /*                Static files (frontend), fallback page otherwise

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/books", func(r chi.Router) {
			r.Get("/", h.ListBooks)
			r.Post("/", h.CreateBook)
			r.Delete("/", h.DeleteBooks)
			r.Post("/import", h.ImportBooks)
			r.Get("/{id}", h.GetBook)
			r.Put("/{id}", h.UpdateBook)
		})

		r.Route("/sellers", func(r chi.Router) {
			r.Get("/", h.ListSellers)
			r.Post("/", h.CreateSeller)
		})

		r.Route("/stock", func(r chi.Router) {
			r.Post("/incoming", h.RecordIncoming)
		})
		r.Get("/movements", h.ListMovements)

		r.Route("/sales", func(r chi.Router) {
			r.Get("/", h.ListSales)
			r.Post("/", h.Sell)
			r.Post("/batch", h.SellBatch)
		})

		r.Route("/export", func(r chi.Router) {
			r.Get("/books", h.ExportBooks)
			r.Get("/sales", h.ExportSales)
		})
	})

	// Serve static files (frontend) when a build exists, else a fallback page.
	staticDir := "./web/dist"
	if _, err := os.Stat(staticDir); os.IsNotExist(err) {
		exe, _ := os.Executable()
		staticDir = filepath.Join(filepath.Dir(exe), "web", "dist")
	}

	if _, err := os.Stat(staticDir); err == nil {
		fileServer := http.FileServer(http.Dir(staticDir))
		r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
			fullPath := filepath.Join(staticDir, r.URL.Path)
			if _, err := os.Stat(fullPath); os.IsNotExist(err) {
				// SPA routing: serve index.html
				http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
				return
			}
			fileServer.ServeHTTP(w, r)
		})
	} else {
		r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Book Ledger</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Book Ledger API</h1>
<p>The frontend is not built. The API is available under <code>/api</code>.</p>
<h2>API Endpoints</h2>
<ul>
<li><a href="/api/books">/api/books</a> - Book inventory</li>
<li><a href="/api/sellers">/api/sellers</a> - Sellers</li>
<li><a href="/api/sales">/api/sales</a> - Sales history</li>
<li><a href="/api/movements">/api/movements</a> - Stock movements</li>
<li><a href="/api/export/books">/api/export/books</a> - TSV inventory report</li>
<li><a href="/api/export/sales">/api/export/sales</a> - TSV sales report</li>
</ul>
</body>
</html>`))
		})
	}

	return r
}
