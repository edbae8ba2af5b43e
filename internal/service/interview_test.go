package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mockinterview/backend/internal/domain/interview"
	"github.com/mockinterview/backend/internal/domain/questionbank"
	"github.com/mockinterview/backend/internal/resume"
	"github.com/mockinterview/backend/internal/service"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type memStore struct {
	mu      sync.Mutex
	initial interview.State
	saves   []interview.State
}

func (m *memStore) Load(context.Context) interview.State {
	return m.initial.Clone()
}

func (m *memStore) Save(_ context.Context, st interview.State) {
	m.mu.Lock()
	m.saves = append(m.saves, st)
	m.mu.Unlock()
}

func (m *memStore) last(t *testing.T) interview.State {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.saves)
	return m.saves[len(m.saves)-1]
}

type stubExtractor struct {
	contact interview.Contact
}

func (s stubExtractor) Extract(context.Context, resume.File) interview.Contact {
	return s.contact
}

func str(s string) *string { return &s }

var fullContact = interview.Contact{
	Name:  str("Grace Hopper"),
	Email: str("grace@navy.mil"),
	Phone: str("+1 202 555 0147"),
}

type harness struct {
	svc   *service.InterviewService
	clock *clock
	store *memStore
}

func newHarness(t *testing.T, contact interview.Contact) *harness {
	t.Helper()
	h := &harness{
		clock: &clock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)},
		store: &memStore{initial: interview.Empty()},
	}
	h.svc = service.NewInterviewService(context.Background(), service.Deps{
		Store:     h.store,
		Bank:      questionbank.Default().WithPicker(func(int) int { return 0 }),
		Extractor: stubExtractor{contact: contact},
		Now:       h.clock.Now,
		Logger:    zaptest.NewLogger(t),
	})
	t.Cleanup(h.svc.Close)
	return h
}

func (h *harness) start(t *testing.T) interview.Candidate {
	t.Helper()
	c, err := h.svc.StartSession(context.Background(), resume.File{Name: "cv.pdf", MediaType: "application/pdf", Data: []byte("x")})
	require.NoError(t, err)
	return c
}

func TestStartSession_ReadyCandidateStartsAnswering(t *testing.T) {
	h := newHarness(t, fullContact)

	c := h.start(t)

	assert.Equal(t, interview.StageAnswering, c.Stage())
	assert.Len(t, c.Interview.Questions, questionbank.SessionSize)
	assert.Equal(t, &interview.ResumeMeta{Name: "cv.pdf", Type: "application/pdf", Size: 1}, c.Resume)
	require.NotEmpty(t, c.Chat)
	assert.Contains(t, c.Chat[0].Text, "Grace Hopper")

	view, err := h.svc.Active()
	require.NoError(t, err)
	assert.Equal(t, 1, view.QuestionNo)
	require.NotNil(t, view.Question)
	assert.Equal(t, questionbank.Easy, view.Question.Difficulty)
	require.NotNil(t, view.RemainingSec)
	assert.Equal(t, 20, *view.RemainingSec)
	assert.False(t, view.LowTime)
}

func TestStartSession_CollectsMissingFields(t *testing.T) {
	h := newHarness(t, interview.Contact{Email: str("grace@navy.mil")})
	ctx := context.Background()

	c := h.start(t)
	assert.Equal(t, interview.StageCollectingName, c.Stage())

	c, err := h.svc.SubmitAnswer(ctx, "Grace Hopper")
	require.NoError(t, err)
	assert.Equal(t, interview.StageCollectingPhone, c.Stage())

	c, err = h.svc.SubmitAnswer(ctx, "12")
	require.NoError(t, err)
	assert.Equal(t, interview.StageCollectingPhone, c.Stage(), "invalid phone is asked again")

	c, err = h.svc.SubmitAnswer(ctx, "+1 202 555 0147")
	require.NoError(t, err)
	assert.Equal(t, interview.StageAnswering, c.Stage())
}

func TestIntents_RequireActiveSession(t *testing.T) {
	h := newHarness(t, fullContact)
	ctx := context.Background()

	_, err := h.svc.SubmitAnswer(ctx, "hello")
	assert.ErrorIs(t, err, service.ErrNoActiveSession)
	assert.ErrorIs(t, h.svc.SetDraft(ctx, "x"), service.ErrNoActiveSession)
	_, err = h.svc.Pause(ctx)
	assert.ErrorIs(t, err, service.ErrNoActiveSession)
	_, err = h.svc.Resume(ctx)
	assert.ErrorIs(t, err, service.ErrNoActiveSession)
	_, err = h.svc.Active()
	assert.ErrorIs(t, err, service.ErrNoActiveSession)
}

func TestTick_WarnsOnceThenAutoSubmitsDraft(t *testing.T) {
	h := newHarness(t, fullContact)
	ctx := context.Background()
	h.start(t)
	require.NoError(t, h.svc.SetDraft(ctx, "  closures capture scope  "))

	h.clock.Advance(10 * time.Second)
	assert.Empty(t, h.svc.Tick(ctx))

	h.clock.Advance(5 * time.Second)
	notices := h.svc.Tick(ctx)
	require.Len(t, notices, 1)
	assert.Equal(t, service.NoticeLowTime, notices[0].Kind)
	assert.Equal(t, 5, notices[0].RemainingSec)

	h.clock.Advance(1 * time.Second)
	assert.Empty(t, h.svc.Tick(ctx), "warning is raised once per question")

	h.clock.Advance(4 * time.Second)
	notices = h.svc.Tick(ctx)
	require.Len(t, notices, 1)
	assert.Equal(t, service.NoticeAutoSubmitted, notices[0].Kind)
	assert.Equal(t, 0, notices[0].Index)

	c, err := h.svc.Candidate(notices[0].CandidateID)
	require.NoError(t, err)
	ans := c.Interview.Questions[0].Answer
	require.NotNil(t, ans)
	assert.Equal(t, "closures capture scope", ans.Text)
	assert.True(t, ans.AutoSubmitted)
	assert.Equal(t, 20, ans.TimeSpentSec)
	assert.Equal(t, 1, c.Interview.CurrentIndex)

	view, err := h.svc.Active()
	require.NoError(t, err)
	assert.Empty(t, view.Draft, "draft is consumed")
}

func TestTick_NextQuestionCanWarnAgain(t *testing.T) {
	h := newHarness(t, fullContact)
	ctx := context.Background()
	h.start(t)

	h.clock.Advance(15 * time.Second)
	require.Len(t, h.svc.Tick(ctx), 1)
	_, err := h.svc.SubmitAnswer(ctx, "answer")
	require.NoError(t, err)

	h.clock.Advance(15 * time.Second)
	notices := h.svc.Tick(ctx)
	require.Len(t, notices, 1)
	assert.Equal(t, 1, notices[0].Index)
}

func TestTick_ResumeRearmsWarning(t *testing.T) {
	h := newHarness(t, fullContact)
	ctx := context.Background()
	h.start(t)

	h.clock.Advance(16 * time.Second)
	require.Len(t, h.svc.Tick(ctx), 1)

	c, err := h.svc.TogglePause(ctx)
	require.NoError(t, err)
	assert.True(t, c.Interview.Paused)
	h.clock.Advance(time.Minute)
	assert.Empty(t, h.svc.Tick(ctx), "paused clock does not tick")

	c, err = h.svc.TogglePause(ctx)
	require.NoError(t, err)
	assert.False(t, c.Interview.Paused)
	notices := h.svc.Tick(ctx)
	require.Len(t, notices, 1)
	assert.Equal(t, service.NoticeLowTime, notices[0].Kind)
	assert.Equal(t, 4, notices[0].RemainingSec)
}

func TestTick_IdleWhileCollecting(t *testing.T) {
	h := newHarness(t, interview.Contact{})
	h.start(t)

	h.clock.Advance(time.Hour)

	assert.Empty(t, h.svc.Tick(context.Background()))
}

func TestSubmitAnswer_CompletedSession(t *testing.T) {
	h := newHarness(t, fullContact)
	ctx := context.Background()
	h.start(t)

	var c interview.Candidate
	var err error
	for i := 0; i < questionbank.SessionSize; i++ {
		c, err = h.svc.SubmitAnswer(ctx, "some answer")
		require.NoError(t, err)
	}
	assert.Equal(t, interview.StatusCompleted, c.Status)
	require.NotNil(t, c.FinalScore)

	_, err = h.svc.SubmitAnswer(ctx, "one more")
	assert.ErrorIs(t, err, service.ErrSessionCompleted)
	assert.Empty(t, h.svc.Tick(ctx))
}

func TestSelect_AndUnfinished(t *testing.T) {
	h := newHarness(t, fullContact)
	ctx := context.Background()
	c := h.start(t)

	_, ok := h.svc.Unfinished()
	assert.False(t, ok, "not offered while a session is selected")

	assert.ErrorIs(t, h.svc.Select(ctx, str("missing")), service.ErrUnknownCandidate)

	require.NoError(t, h.svc.Select(ctx, nil))
	got, ok := h.svc.Unfinished()
	require.True(t, ok)
	assert.Equal(t, c.ID, got.ID)

	require.NoError(t, h.svc.Select(ctx, &c.ID))
	view, err := h.svc.Active()
	require.NoError(t, err)
	assert.Equal(t, c.ID, view.Candidate.ID)
}

func TestSnapshot_IsACopy(t *testing.T) {
	h := newHarness(t, fullContact)
	h.start(t)

	snap := h.svc.Snapshot()
	snap.Candidates[0].Chat = nil
	snap.Candidates[0].Interview.Questions[0].Text = "mutated"

	again := h.svc.Snapshot()
	assert.NotEmpty(t, again.Candidates[0].Chat)
	assert.NotEqual(t, "mutated", again.Candidates[0].Interview.Questions[0].Text)
}

func TestPersistence_SavesEveryTransitionInOrder(t *testing.T) {
	h := newHarness(t, fullContact)
	ctx := context.Background()
	h.start(t)
	_, err := h.svc.SubmitAnswer(ctx, "first")
	require.NoError(t, err)

	want := h.svc.Snapshot()
	h.svc.Close()

	assert.Equal(t, want, h.store.last(t))
}

func TestPersistence_LoadsPreviousState(t *testing.T) {
	first := newHarness(t, fullContact)
	c := first.start(t)
	first.svc.Close()

	store := &memStore{initial: first.store.last(t)}
	svc := service.NewInterviewService(context.Background(), service.Deps{
		Store:  store,
		Now:    first.clock.Now,
		Logger: zaptest.NewLogger(t),
	})
	defer svc.Close()

	got, err := svc.Candidate(c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
	_, err = svc.Active()
	require.NoError(t, err)
}
