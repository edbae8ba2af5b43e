// internal/service/interview.go
package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mockinterview/backend/internal/domain/interview"
	"github.com/mockinterview/backend/internal/domain/questionbank"
	"github.com/mockinterview/backend/internal/grader"
	"github.com/mockinterview/backend/internal/metrics"
	"github.com/mockinterview/backend/internal/resume"
	"github.com/mockinterview/backend/internal/worker"
)

var (
	ErrNoActiveSession  = errors.New("no active session")
	ErrUnknownCandidate = errors.New("unknown candidate")
	ErrSessionCompleted = errors.New("session already completed")
)

// StateStore persists the whole state. Save must not block for long; it
// runs on the save queue.
type StateStore interface {
	Load(ctx context.Context) interview.State
	Save(ctx context.Context, st interview.State)
}

// ContactExtractor reads contact details from a resume.
type ContactExtractor interface {
	Extract(ctx context.Context, f resume.File) interview.Contact
}

type Deps struct {
	Store     StateStore
	Bank      *questionbank.Bank
	Grader    grader.Grader
	Extractor ContactExtractor
	Now       func() time.Time
	Logger    *zap.Logger
}

// timerKey identifies one arming of the question timer. A new question or
// a resume re-arms it.
type timerKey struct {
	index int
	start time.Time
}

// InterviewService owns the interview state. Every intent is applied under
// one lock, in arrival order, and every resulting state is queued for
// saving in the same order.
type InterviewService struct {
	store     StateStore
	bank      *questionbank.Bank
	grader    grader.Grader
	extractor ContactExtractor
	now       func() time.Time
	logger    *zap.Logger
	saves     *worker.Pool[time.Duration]

	mu     sync.Mutex
	state  interview.State
	drafts map[string]string
	warned map[string]timerKey
}

// NewInterviewService loads the persisted state and starts the save queue.
func NewInterviewService(ctx context.Context, d Deps) *InterviewService {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Bank == nil {
		d.Bank = questionbank.Default()
	}
	if d.Grader == nil {
		d.Grader = grader.KeywordGrader{}
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Extractor == nil {
		d.Extractor = resume.NewExtractor(d.Logger)
	}

	s := &InterviewService{
		store:     d.Store,
		bank:      d.Bank,
		grader:    d.Grader,
		extractor: d.Extractor,
		now:       d.Now,
		logger:    d.Logger,
		state:     interview.Empty(),
		drafts:    make(map[string]string),
		warned:    make(map[string]timerKey),
	}
	if s.store != nil {
		s.state = s.store.Load(ctx)
	}
	s.saves = worker.NewPool(ctx, 1, 64, func(r worker.Result[time.Duration]) {
		s.logger.Debug("state saved", zap.String("reason", r.JobID), zap.Duration("took", r.Output))
	})
	return s
}

// Close waits for queued saves.
func (s *InterviewService) Close() {
	s.saves.Close()
}

// ── Intents ─────────────────────────────────────────────────────────────

// StartSession opens a new interview for the uploaded resume and greets
// the candidate.
func (s *InterviewService) StartSession(ctx context.Context, f resume.File) (interview.Candidate, error) {
	contact := s.extractor.Extract(ctx, f)
	questions := s.bank.Generate()

	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.dispatch(interview.StartSession{
		Contact:   contact,
		Resume:    resume.Metadata(f),
		Questions: questions,
	})
	id := events[0].CandidateID
	s.dispatch(interview.Welcome{CandidateID: id})

	c, _ := s.state.Find(id)
	s.logger.Info("session started",
		zap.String("candidate_id", id),
		zap.String("resume", f.Name),
		zap.String("stage", string(c.Stage())),
	)
	return c.Clone(), nil
}

// SubmitAnswer sends the candidate's input for the active session.
func (s *InterviewService) SubmitAnswer(ctx context.Context, text string) (interview.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.activeLocked()
	if err != nil {
		return interview.Candidate{}, err
	}
	if c.Status == interview.StatusCompleted {
		return c.Clone(), ErrSessionCompleted
	}
	id := c.ID
	delete(s.drafts, id)
	s.dispatch(interview.SubmitAnswer{Text: text})

	c, _ = s.state.Find(id)
	return c.Clone(), nil
}

// SetDraft buffers the text typed so far. It is what gets auto-submitted
// when the question timer runs out.
func (s *InterviewService) SetDraft(ctx context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.activeLocked()
	if err != nil {
		return err
	}
	s.drafts[c.ID] = text
	return nil
}

func (s *InterviewService) Pause(ctx context.Context) (interview.Candidate, error) {
	return s.onActive(interview.Pause{})
}

func (s *InterviewService) Resume(ctx context.Context) (interview.Candidate, error) {
	return s.onActive(interview.Resume{})
}

// TogglePause pauses a running question or resumes a paused one.
func (s *InterviewService) TogglePause(ctx context.Context) (interview.Candidate, error) {
	s.mu.Lock()
	paused := false
	if c, err := s.activeLocked(); err == nil {
		paused = c.Interview.Paused
	}
	s.mu.Unlock()

	if paused {
		return s.Resume(ctx)
	}
	return s.Pause(ctx)
}

// Select makes the candidate with the given id current. A nil id clears
// the selection.
func (s *InterviewService) Select(ctx context.Context, id *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != nil {
		if _, ok := s.state.Find(*id); !ok {
			return ErrUnknownCandidate
		}
	}
	s.dispatch(interview.SelectSession{ID: id})
	return nil
}

func (s *InterviewService) onActive(cmd interview.Command) (interview.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.activeLocked()
	if err != nil {
		return interview.Candidate{}, err
	}
	id := c.ID
	s.dispatch(cmd)

	c, _ = s.state.Find(id)
	return c.Clone(), nil
}

// ── Queries ─────────────────────────────────────────────────────────────

// SessionView is the active session as the candidate sees it.
type SessionView struct {
	Candidate    interview.Candidate    `json:"candidate"`
	Stage        interview.Stage        `json:"stage"`
	Question     *questionbank.Question `json:"question"`
	QuestionNo   int                    `json:"questionNo"`
	RemainingSec *int                   `json:"remainingSec"`
	LowTime      bool                   `json:"lowTime"`
	Draft        string                 `json:"draft"`
}

func (s *InterviewService) Snapshot() interview.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *InterviewService) Active() (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.activeLocked()
	if err != nil {
		return SessionView{}, err
	}
	now := s.now()
	view := SessionView{
		Candidate:    c.Clone(),
		Stage:        c.Stage(),
		RemainingSec: c.Interview.Remaining(now),
		LowTime:      c.Interview.LowTime(now),
		Draft:        s.drafts[c.ID],
	}
	if q := c.CurrentQuestion(); q != nil && view.Stage == interview.StageAnswering {
		qc := q.Clone()
		view.Question = &qc
		view.QuestionNo = c.Interview.CurrentIndex + 1
	}
	return view, nil
}

// Unfinished returns the interview to offer for resuming. It is only
// offered while no session is selected.
func (s *InterviewService) Unfinished() (interview.Candidate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.CurrentSessionID != nil {
		return interview.Candidate{}, false
	}
	c, ok := s.state.Unfinished()
	if !ok {
		return interview.Candidate{}, false
	}
	return c.Clone(), true
}

func (s *InterviewService) Candidate(id string) (interview.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.state.Find(id)
	if !ok {
		return interview.Candidate{}, ErrUnknownCandidate
	}
	return c.Clone(), nil
}

// ── Internals ───────────────────────────────────────────────────────────

func (s *InterviewService) activeLocked() (*interview.Candidate, error) {
	c, ok := s.state.Active()
	if !ok {
		return nil, ErrNoActiveSession
	}
	return c, nil
}

// dispatch applies cmd and queues the resulting state for saving. The
// caller holds s.mu.
func (s *InterviewService) dispatch(cmd interview.Command) []interview.Event {
	next, events := s.state.Apply(cmd, interview.Env{
		Now:    s.now(),
		Grader: s.grader,
	})
	s.state = next
	s.observe(events)
	reason := "update"
	if len(events) > 0 {
		reason = string(events[len(events)-1].Kind)
	}
	s.persist(reason)
	return events
}

func (s *InterviewService) persist(reason string) {
	if s.store == nil {
		return
	}
	snapshot := s.state.Clone()
	ok := s.saves.Submit(reason, func(ctx context.Context) time.Duration {
		start := time.Now()
		s.store.Save(ctx, snapshot)
		return time.Since(start)
	})
	if !ok {
		s.logger.Warn("save queue full, state not saved", zap.String("reason", reason))
		metrics.PersistFailures.WithLabelValues("queue").Inc()
	}
}

func (s *InterviewService) observe(events []interview.Event) {
	for _, e := range events {
		log := s.logger.With(zap.String("candidate_id", e.CandidateID))
		switch e.Kind {
		case interview.EventSessionStarted:
			metrics.SessionsStarted.Inc()
		case interview.EventInputRejected:
			metrics.InputRejected.WithLabelValues(e.Field).Inc()
			log.Debug("contact input rejected", zap.String("field", e.Field))
		case interview.EventFieldCollected:
			log.Debug("contact field collected", zap.String("field", e.Field))
		case interview.EventQuestionStarted:
			log.Debug("question started", zap.Int("index", e.Index), zap.String("difficulty", string(e.Difficulty)))
		case interview.EventAnswerRecorded:
			metrics.AnswersRecorded.WithLabelValues(string(e.Difficulty), boolLabel(e.Auto)).Inc()
			metrics.AnswerScore.WithLabelValues(string(e.Difficulty)).Observe(float64(e.Score))
			log.Info("answer recorded",
				zap.Int("index", e.Index),
				zap.Int("score", e.Score),
				zap.Bool("auto", e.Auto),
			)
		case interview.EventCompleted:
			metrics.SessionsCompleted.Inc()
			metrics.FinalScore.Observe(float64(e.Score))
			log.Info("interview completed", zap.Int("final_score", e.Score))
			delete(s.drafts, e.CandidateID)
			delete(s.warned, e.CandidateID)
		default:
			log.Debug("session event", zap.String("kind", string(e.Kind)), zap.Int("index", e.Index))
		}
	}
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func trimmedDraft(drafts map[string]string, id string) string {
	return strings.TrimSpace(drafts[id])
}
