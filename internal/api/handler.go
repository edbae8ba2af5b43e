// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mockinterview/backend/internal/domain/questionbank"
	"github.com/mockinterview/backend/internal/service"
)

const defaultMaxResumeBytes = 5 << 20

var validate = validator.New()

// Handler holds all dependencies needed by HTTP handlers.
type Handler struct {
	svc            *service.InterviewService
	bank           *questionbank.Bank
	maxResumeBytes int64
	logger         *zap.Logger
}

// NewHandler creates a Handler with the given dependencies. A non-positive
// maxResumeBytes uses 5 MiB.
func NewHandler(svc *service.InterviewService, bank *questionbank.Bank, maxResumeBytes int64, logger *zap.Logger) *Handler {
	if maxResumeBytes <= 0 {
		maxResumeBytes = defaultMaxResumeBytes
	}
	if bank == nil {
		bank = questionbank.Default()
	}
	return &Handler{
		svc:            svc,
		bank:           bank,
		maxResumeBytes: maxResumeBytes,
		logger:         logger,
	}
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// decodeAndValidate decodes a JSON body into v and runs its validate tags.
// It writes a 400 and returns false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	if err := validate.Struct(v); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// handleServiceError maps service errors to HTTP responses. Returns true if
// an error was handled (caller should return).
func (h *Handler) handleServiceError(w http.ResponseWriter, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, service.ErrNoActiveSession):
		respondError(w, http.StatusNotFound, "no active session")
	case errors.Is(err, service.ErrUnknownCandidate):
		respondError(w, http.StatusNotFound, "candidate not found")
	case errors.Is(err, service.ErrSessionCompleted):
		respondError(w, http.StatusConflict, "interview already completed")
	default:
		h.logger.Error("service error", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}
