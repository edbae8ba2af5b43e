// internal/api/router.go
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mockinterview/backend/internal/metrics"
)

// NewRouter wires every route behind the shared middleware chain.
func NewRouter(h *Handler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
	}))
	r.Use(middleware.RequestID, middleware.RealIP, Logging(h.logger), middleware.Recoverer, metrics.Middleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", h.startSession)
			r.Get("/unfinished", h.getUnfinished)
			r.Route("/current", func(r chi.Router) {
				r.Get("/", h.getCurrentSession)
				r.Put("/", h.selectSession)
				r.Put("/draft", h.setDraft)
				r.Post("/answers", h.submitAnswer)
				r.Post("/pause", h.pauseSession)
				r.Post("/resume", h.resumeSession)
				r.Post("/toggle-pause", h.togglePause)
			})
		})

		r.Get("/candidates", h.listCandidates)
		r.Get("/candidates/{id}", h.getCandidate)
		r.Get("/questions", h.listQuestionPools)
		r.Get("/export", h.exportState)
	})

	return r
}
