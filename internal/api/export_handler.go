package api

import (
	"fmt"
	"net/http"

	"github.com/mockinterview/backend/internal/store"
)

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /export
//
// The body is the persisted state blob, so it can be loaded back as is.
func (h *Handler) exportState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.json", store.DefaultStateKey))
	respondJSON(w, http.StatusOK, h.svc.Snapshot())
}
