package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mockinterview/backend/internal/dashboard"
)

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /candidates?q=&sort=score|date
func (h *Handler) listCandidates(w http.ResponseWriter, r *http.Request) {
	q := dashboard.Query{
		Search: r.URL.Query().Get("q"),
		SortBy: dashboard.SortBy(r.URL.Query().Get("sort")),
	}
	if err := validate.Struct(q); err != nil {
		respondError(w, http.StatusBadRequest, "sort must be score or date")
		return
	}
	respondJSON(w, http.StatusOK, dashboard.List(h.svc.Snapshot(), q))
}

// GET /candidates/{id}
func (h *Handler) getCandidate(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Candidate(chi.URLParam(r, "id"))
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, dashboard.DetailOf(c))
}
