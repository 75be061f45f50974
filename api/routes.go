package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the API surface: public reads, token-protected writes,
// auth endpoints, and the admin panel SPA when a build is present.
func setupRoutes(r chi.Router, handlers *routeHandlers, auth authMiddleware, spaDir string) {
	r.Route("/api/blogs", func(r chi.Router) {
		// Public read endpoints
		r.Get("/", handlers.blogPostHandler.getAllBlogPosts())
		r.Get("/slug/{slug}", handlers.blogPostHandler.getBlogPostBySlug())
		r.Get("/{id}", handlers.blogPostHandler.getBlogPost())
		r.Get("/{id}/preview", handlers.blogPostHandler.previewBlogPost())

		// Write endpoints require a bearer token
		r.Group(func(r chi.Router) {
			r.Use(auth.authenticate)
			r.Post("/", handlers.blogPostHandler.createBlogPost())
			r.Put("/{id}", handlers.blogPostHandler.updateBlogPost())
			r.Delete("/{id}", handlers.blogPostHandler.deleteBlogPost())
		})
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", handlers.authHandler.register())
		r.Post("/login", handlers.authHandler.login())
		r.Group(func(r chi.Router) {
			r.Use(auth.authenticate)
			r.Get("/verify", handlers.authHandler.verify())
		})
	})

	r.Get("/api/status", handlers.statusHandler.getStatus())

	if spaDir != "" {
		if _, err := os.Stat(spaDir); err == nil {
			serveSPA(r, spaDir)
		}
	}
}

// serveSPA serves the admin panel build, falling back to index.html for
// client-routed paths.
func serveSPA(r chi.Router, dir string) {
	fileServer := http.FileServer(http.Dir(dir))

	r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
		path := filepath.Join(dir, filepath.Clean("/"+req.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, req)
			return
		}
		http.ServeFile(w, req, filepath.Join(dir, "index.html"))
	})
}
