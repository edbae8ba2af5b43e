// Package interview holds the interview session state machine: the whole
// application state as a single value, changed only through typed commands.
package interview

import (
	"slices"
	"time"

	"github.com/mockinterview/backend/internal/domain/questionbank"
)

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

type Role string

const (
	RoleAssistant Role = "assistant"
	RoleUser      Role = "user"
)

// ChatMessage is append-only; slice order is chronological order.
type ChatMessage struct {
	ID   string    `json:"id"`
	Role Role      `json:"role"`
	Text string    `json:"text"`
	TS   time.Time `json:"ts"`
}

// ResumeMeta describes the uploaded resume. The content itself is not kept.
type ResumeMeta struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// Contact is the best-effort identity pulled from a resume.
type Contact struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// InterviewState is owned by its Candidate. Exactly one of Paused and
// QuestionStartTS decides how much time remains on the current question.
type InterviewState struct {
	StartedAt    time.Time               `json:"startedAt"`
	FinishedAt   *time.Time              `json:"finishedAt"`
	CurrentIndex int                     `json:"currentIndex"`
	Questions    []questionbank.Question `json:"questions"`

	QuestionStartTS     *time.Time `json:"questionStartTs"`
	QuestionDurationSec *int       `json:"questionDurationSec"`
	Paused              bool       `json:"paused"`
	PausedRemainingSec  *int       `json:"pausedRemainingSec"`
}

// Candidate is one interview's full record.
type Candidate struct {
	ID         string         `json:"id"`
	Name       *string        `json:"name"`
	Email      *string        `json:"email"`
	Phone      *string        `json:"phone"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	Status     Status         `json:"status"`
	FinalScore *int           `json:"finalScore"`
	Summary    *string        `json:"summary"`
	Chat       []ChatMessage  `json:"chat"`
	Interview  InterviewState `json:"interview"`
	Resume     *ResumeMeta    `json:"resume,omitempty"`
}

// Stage is derived from the record, never stored.
type Stage string

const (
	StageCollectingName  Stage = "collecting-name"
	StageCollectingEmail Stage = "collecting-email"
	StageCollectingPhone Stage = "collecting-phone"
	StageAnswering       Stage = "answering"
	StageCompleted       Stage = "completed"
)

// Stage reports where the candidate is in the interview. Contact fields are
// always requested name first, then email, then phone.
func (c *Candidate) Stage() Stage {
	switch {
	case c.Status == StatusCompleted || c.Interview.FinishedAt != nil:
		return StageCompleted
	case missing(c.Name):
		return StageCollectingName
	case missing(c.Email):
		return StageCollectingEmail
	case missing(c.Phone):
		return StageCollectingPhone
	case c.Interview.CurrentIndex >= len(c.Interview.Questions):
		return StageCompleted
	}
	return StageAnswering
}

// CurrentQuestion returns the question being asked, or nil.
func (c *Candidate) CurrentQuestion() *questionbank.Question {
	i := c.Interview.CurrentIndex
	if i < 0 || i >= len(c.Interview.Questions) {
		return nil
	}
	return &c.Interview.Questions[i]
}

// Clone returns a deep copy.
func (c Candidate) Clone() Candidate {
	out := c
	out.Name = clonePtr(c.Name)
	out.Email = clonePtr(c.Email)
	out.Phone = clonePtr(c.Phone)
	out.FinalScore = clonePtr(c.FinalScore)
	out.Summary = clonePtr(c.Summary)
	out.Resume = clonePtr(c.Resume)
	out.Chat = slices.Clone(c.Chat)

	itv := c.Interview
	itv.FinishedAt = clonePtr(c.Interview.FinishedAt)
	itv.QuestionStartTS = clonePtr(c.Interview.QuestionStartTS)
	itv.QuestionDurationSec = clonePtr(c.Interview.QuestionDurationSec)
	itv.PausedRemainingSec = clonePtr(c.Interview.PausedRemainingSec)
	itv.Questions = slices.Clone(c.Interview.Questions)
	for i, q := range itv.Questions {
		itv.Questions[i] = q.Clone()
	}
	out.Interview = itv
	return out
}

func missing(s *string) bool {
	return s == nil || *s == ""
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func ptr[T any](v T) *T {
	return &v
}
