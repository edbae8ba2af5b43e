package api

import (
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/mockinterview/backend/internal/dashboard"
	"github.com/mockinterview/backend/internal/resume"
	"github.com/mockinterview/backend/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type TextRequest struct {
	Text string `json:"text" validate:"max=20000"`
}

type SelectSessionRequest struct {
	ID *string `json:"id" validate:"omitempty,min=1"`
}

// SessionResponse is the active session plus its timer rendered as mm:ss.
type SessionResponse struct {
	service.SessionView
	Remaining *string `json:"remaining"`
}

type UnfinishedResponse struct {
	ID   string  `json:"id"`
	Name *string `json:"name"`
}

func newSessionResponse(v service.SessionView) SessionResponse {
	resp := SessionResponse{SessionView: v}
	if v.RemainingSec != nil {
		s := dashboard.FormatSeconds(*v.RemainingSec)
		resp.Remaining = &s
	}
	return resp
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /sessions
func (h *Handler) startSession(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxResumeBytes+(1<<20))
	if err := r.ParseMultipartForm(h.maxResumeBytes); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			respondError(w, http.StatusRequestEntityTooLarge, "resume is too large")
			return
		}
		respondError(w, http.StatusBadRequest, "expected a multipart form with a resume file")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("resume")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Please select a PDF or DOCX file.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxResumeBytes+1))
	if err != nil {
		respondError(w, http.StatusBadRequest, "could not read resume")
		return
	}
	if int64(len(data)) > h.maxResumeBytes {
		respondError(w, http.StatusRequestEntityTooLarge, "resume is too large")
		return
	}

	f := resume.File{
		Name:      header.Filename,
		MediaType: header.Header.Get("Content-Type"),
		Data:      data,
	}
	if !resume.Uploadable(f) {
		respondError(w, http.StatusUnsupportedMediaType, "Invalid file type. Only PDF or DOCX is supported.")
		return
	}

	if _, err := h.svc.StartSession(r.Context(), f); h.handleServiceError(w, err) {
		return
	}
	view, err := h.svc.Active()
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusCreated, newSessionResponse(view))
}

// GET /sessions/current
func (h *Handler) getCurrentSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Active()
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, newSessionResponse(view))
}

// PUT /sessions/current
func (h *Handler) selectSession(w http.ResponseWriter, r *http.Request) {
	var req SelectSessionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if h.handleServiceError(w, h.svc.Select(r.Context(), req.ID)) {
		return
	}
	if req.ID == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.getCurrentSession(w, r)
}

// PUT /sessions/current/draft
func (h *Handler) setDraft(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if h.handleServiceError(w, h.svc.SetDraft(r.Context(), req.Text)) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /sessions/current/answers
func (h *Handler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if _, err := h.svc.SubmitAnswer(r.Context(), req.Text); h.handleServiceError(w, err) {
		return
	}
	h.getCurrentSession(w, r)
}

// POST /sessions/current/pause
func (h *Handler) pauseSession(w http.ResponseWriter, r *http.Request) {
	if _, err := h.svc.Pause(r.Context()); h.handleServiceError(w, err) {
		return
	}
	h.getCurrentSession(w, r)
}

// POST /sessions/current/resume
func (h *Handler) resumeSession(w http.ResponseWriter, r *http.Request) {
	if _, err := h.svc.Resume(r.Context()); h.handleServiceError(w, err) {
		return
	}
	h.getCurrentSession(w, r)
}

// POST /sessions/current/toggle-pause
func (h *Handler) togglePause(w http.ResponseWriter, r *http.Request) {
	if _, err := h.svc.TogglePause(r.Context()); h.handleServiceError(w, err) {
		return
	}
	h.getCurrentSession(w, r)
}

// GET /sessions/unfinished
func (h *Handler) getUnfinished(w http.ResponseWriter, r *http.Request) {
	c, ok := h.svc.Unfinished()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.logger.Debug("offering unfinished interview", zap.String("candidate_id", c.ID))
	respondJSON(w, http.StatusOK, UnfinishedResponse{ID: c.ID, Name: c.Name})
}
