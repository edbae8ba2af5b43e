package api

import (
	"net/http"

	"github.com/mockinterview/backend/internal/domain/questionbank"
)

// ── Request / Response types ────────────────────────────────────────────────

type PoolResponse struct {
	Difficulty  questionbank.Difficulty `json:"difficulty"`
	DurationSec int                     `json:"duration_sec"`
	PerSession  int                     `json:"per_session"`
	Questions   []questionbank.Entry    `json:"questions"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /questions
func (h *Handler) listQuestionPools(w http.ResponseWriter, r *http.Request) {
	pools := make([]PoolResponse, 0, len(questionbank.Difficulties))
	for _, d := range questionbank.Difficulties {
		pools = append(pools, PoolResponse{
			Difficulty:  d,
			DurationSec: int(questionbank.DurationFor(d).Seconds()),
			PerSession:  questionbank.PerDifficulty,
			Questions:   h.bank.Pool(d),
		})
	}
	respondJSON(w, http.StatusOK, pools)
}
