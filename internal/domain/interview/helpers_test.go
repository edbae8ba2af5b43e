package interview_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mockinterview/backend/internal/domain/interview"
	"github.com/mockinterview/backend/internal/domain/questionbank"
	"github.com/mockinterview/backend/internal/grader"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	t      *testing.T
	now    time.Time
	seq    int
	grader grader.Grader
	state  interview.State
}

func newFixture(t *testing.T) *fixture {
	return &fixture{t: t, now: t0, state: interview.Empty()}
}

func (f *fixture) env() interview.Env {
	env := interview.Env{
		Now: f.now,
		NewID: func() string {
			f.seq++
			return fmt.Sprintf("id-%d", f.seq)
		},
	}
	if f.grader != nil {
		env.Grader = f.grader
	}
	return env
}

func (f *fixture) apply(cmd interview.Command) []interview.Event {
	next, events := f.state.Apply(cmd, f.env())
	f.state = next
	return events
}

func (f *fixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func (f *fixture) active() *interview.Candidate {
	c, ok := f.state.Active()
	require.True(f.t, ok, "no active session")
	return c
}

func (f *fixture) lastMessage() interview.ChatMessage {
	chat := f.active().Chat
	require.NotEmpty(f.t, chat)
	return chat[len(chat)-1]
}

// start opens a session with deterministic questions (first two entries of
// every pool) and the given contact fields, then greets the candidate.
func (f *fixture) start(name, email, phone *string) *interview.Candidate {
	questions := questionbank.Default().WithPicker(func(int) int { return 0 }).Generate()
	f.apply(interview.StartSession{
		Contact:   interview.Contact{Name: name, Email: email, Phone: phone},
		Resume:    &interview.ResumeMeta{Name: "resume.pdf", Type: "application/pdf", Size: 1024},
		Questions: questions,
	})
	f.apply(interview.Welcome{CandidateID: f.active().ID})
	return f.active()
}

func (f *fixture) startReady() *interview.Candidate {
	return f.start(str("Ada Lovelace"), str("ada@example.com"), str("+44 20 7946 0958"))
}

func (f *fixture) submit(text string) []interview.Event {
	return f.apply(interview.SubmitAnswer{Text: text})
}

func (f *fixture) autoSubmit(text string) []interview.Event {
	return f.apply(interview.SubmitAnswer{Text: text, Auto: true})
}

func (f *fixture) remaining() *int {
	return f.active().Interview.Remaining(f.now)
}

func str(s string) *string { return &s }

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func kinds(events []interview.Event) []interview.EventKind {
	out := make([]interview.EventKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

type fixedGrader struct{ score int }

func (g fixedGrader) Score(questionbank.Question, string) int { return g.score }

func (g fixedGrader) Summarize(_ *string, total int, _ []questionbank.Question) string {
	return fmt.Sprintf("total %d", total)
}
