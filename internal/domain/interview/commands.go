package interview

import (
	"time"

	"github.com/mockinterview/backend/internal/domain/questionbank"
	"github.com/mockinterview/backend/internal/grader"
	"github.com/mockinterview/backend/internal/id"
)

// Command is an intent applied to the State.
type Command interface {
	command()
}

// StartSession creates a new in-progress candidate and makes it current.
type StartSession struct {
	Contact   Contact
	Resume    *ResumeMeta
	Questions []questionbank.Question
}

// Welcome greets the candidate of a freshly started session and asks for the
// first missing contact field, or starts the first question.
type Welcome struct {
	CandidateID string
}

// SubmitAnswer handles the candidate's input for the current session: a
// contact field while those are missing, otherwise the answer to the
// current question. Auto marks a submission forced by the timer.
type SubmitAnswer struct {
	Text string
	Auto bool
}

type Pause struct{}

type Resume struct{}

// SelectSession changes the current session. A nil ID clears it.
type SelectSession struct {
	ID *string
}

func (StartSession) command()  {}
func (Welcome) command()       {}
func (SubmitAnswer) command()  {}
func (Pause) command()         {}
func (Resume) command()        {}
func (SelectSession) command() {}

// Env carries everything a transition needs from the outside world.
type Env struct {
	Now    time.Time
	NewID  func() string
	Grader grader.Grader
}

func (e Env) withDefaults() Env {
	if e.NewID == nil {
		e.NewID = id.GenerateID
	}
	if e.Grader == nil {
		e.Grader = grader.KeywordGrader{}
	}
	if e.Now.IsZero() {
		e.Now = time.Now()
	}
	return e
}

type EventKind string

const (
	EventSessionStarted  EventKind = "session_started"
	EventFieldCollected  EventKind = "field_collected"
	EventInputRejected   EventKind = "input_rejected"
	EventQuestionStarted EventKind = "question_started"
	EventAnswerRecorded  EventKind = "answer_recorded"
	EventCompleted       EventKind = "completed"
	EventPaused          EventKind = "paused"
	EventResumed         EventKind = "resumed"
	EventSelected        EventKind = "selected"
)

// Event describes something a transition did. Transitions that change
// nothing produce no events.
type Event struct {
	Kind        EventKind
	CandidateID string
	Field       string
	Index       int
	Difficulty  questionbank.Difficulty
	Score       int
	Auto        bool
}
