package interview

import (
	"fmt"
	"strings"
	"time"

	"github.com/mockinterview/backend/internal/domain/questionbank"
)

const (
	msgGreeting       = "Hi%s! Welcome to the mock interview for a Full Stack (React/Node) role."
	msgAskName        = "Before we begin, please enter your full name."
	msgAskEmail       = "Please provide your email address."
	msgAskPhone       = "Please provide your phone number."
	msgBadEmail       = "That doesn't look like a valid email. Please try again."
	msgBadPhone       = "Please enter a valid phone number (with country/area code if applicable)."
	msgStart          = "Let's start the interview!"
	msgComplete       = "Interview complete. Final Score: %d/60. Summary: %s"
	msgPerfectSuffix  = " 🎉 Congratulations on a perfect score!"
	msgGreatJobSuffix = " Great job!"

	perfectScore  = 60
	greatJobScore = 45
)

// Apply runs cmd against s and returns the resulting state together with
// what happened. s itself is left untouched. Commands that do not apply to
// the current state return an unchanged copy and no events.
func (s State) Apply(cmd Command, env Env) (State, []Event) {
	env = env.withDefaults()
	t := &transition{state: s.Clone(), env: env}

	switch c := cmd.(type) {
	case StartSession:
		t.startSession(c)
	case Welcome:
		t.withCandidate(c.CandidateID, t.welcome)
	case SubmitAnswer:
		t.withActive(func(cand *Candidate) { t.submit(cand, c) })
	case Pause:
		t.withActive(t.pause)
	case Resume:
		t.withActive(t.resume)
	case SelectSession:
		t.selectSession(c)
	}
	return t.state, t.events
}

type transition struct {
	state  State
	env    Env
	events []Event
}

func (t *transition) emit(e Event) {
	t.events = append(t.events, e)
}

func (t *transition) withCandidate(id string, fn func(*Candidate)) {
	if c, ok := t.state.Find(id); ok {
		fn(c)
	}
}

func (t *transition) withActive(fn func(*Candidate)) {
	if c, ok := t.state.Active(); ok {
		fn(c)
	}
}

func (t *transition) startSession(cmd StartSession) {
	now := t.env.Now
	c := Candidate{
		ID:        t.env.NewID(),
		Name:      nonEmpty(cmd.Contact.Name),
		Email:     nonEmpty(cmd.Contact.Email),
		Phone:     nonEmpty(cmd.Contact.Phone),
		CreatedAt: now,
		UpdatedAt: now,
		Status:    StatusInProgress,
		Chat:      []ChatMessage{},
		Resume:    clonePtr(cmd.Resume),
		Interview: InterviewState{
			StartedAt: now,
			Paused:    true,
			Questions: make([]questionbank.Question, 0, len(cmd.Questions)),
		},
	}
	for _, q := range cmd.Questions {
		c.Interview.Questions = append(c.Interview.Questions, q.Clone())
	}

	t.state.Candidates = append([]Candidate{c}, t.state.Candidates...)
	t.state.CurrentSessionID = ptr(c.ID)
	t.emit(Event{Kind: EventSessionStarted, CandidateID: c.ID})
}

func (t *transition) welcome(c *Candidate) {
	if c.Status != StatusInProgress || len(c.Chat) > 0 {
		return
	}
	greetName := ""
	if !missing(c.Name) {
		greetName = " " + *c.Name
	}
	t.say(c, RoleAssistant, fmt.Sprintf(msgGreeting, greetName))
	t.promptNext(c)
}

// promptNext asks for the first missing contact field, or starts the
// interview once all of them are known.
func (t *transition) promptNext(c *Candidate) {
	switch c.Stage() {
	case StageCollectingName:
		t.say(c, RoleAssistant, msgAskName)
	case StageCollectingEmail:
		t.say(c, RoleAssistant, msgAskEmail)
	case StageCollectingPhone:
		t.say(c, RoleAssistant, msgAskPhone)
	case StageAnswering:
		t.say(c, RoleAssistant, msgStart)
		t.startQuestion(c)
	}
}

func (t *transition) startQuestion(c *Candidate) {
	q := c.CurrentQuestion()
	if q == nil {
		return
	}
	t.say(c, RoleAssistant, QuestionPrompt(q.Difficulty, q.Text))

	itv := &c.Interview
	itv.QuestionStartTS = ptr(t.env.Now)
	itv.QuestionDurationSec = ptr(durationSec(q.Difficulty))
	itv.Paused = false
	itv.PausedRemainingSec = nil
	t.emit(Event{Kind: EventQuestionStarted, CandidateID: c.ID, Index: itv.CurrentIndex, Difficulty: q.Difficulty})
}

func (t *transition) submit(c *Candidate, cmd SubmitAnswer) {
	message := strings.TrimSpace(cmd.Text)

	switch stage := c.Stage(); stage {
	case StageCollectingName, StageCollectingEmail, StageCollectingPhone:
		if cmd.Auto || message == "" {
			return
		}
		t.collect(c, stage, message)
	case StageAnswering:
		t.answer(c, message, cmd.Auto)
	}
}

func (t *transition) collect(c *Candidate, stage Stage, message string) {
	t.say(c, RoleUser, message)

	switch stage {
	case StageCollectingName:
		c.Name = ptr(message)
	case StageCollectingEmail:
		if !ValidEmail(message) {
			t.say(c, RoleAssistant, msgBadEmail)
			t.emit(Event{Kind: EventInputRejected, CandidateID: c.ID, Field: "email"})
			return
		}
		c.Email = ptr(message)
	case StageCollectingPhone:
		if !ValidPhone(message) {
			t.say(c, RoleAssistant, msgBadPhone)
			t.emit(Event{Kind: EventInputRejected, CandidateID: c.ID, Field: "phone"})
			return
		}
		c.Phone = ptr(message)
	}
	t.emit(Event{Kind: EventFieldCollected, CandidateID: c.ID, Field: fieldName(stage)})
	t.promptNext(c)
}

func (t *transition) answer(c *Candidate, message string, auto bool) {
	itv := &c.Interview
	q := c.CurrentQuestion()
	if q == nil || q.Answer != nil {
		return
	}
	now := t.env.Now

	if !auto && message != "" {
		t.say(c, RoleUser, message)
	}

	q.Answer = &questionbank.Answer{Text: message, TimeSpentSec: itv.Elapsed(now), AutoSubmitted: auto}
	score := t.env.Grader.Score(*q, message)
	q.Score = ptr(score)
	c.UpdatedAt = now
	t.emit(Event{
		Kind:        EventAnswerRecorded,
		CandidateID: c.ID,
		Index:       itv.CurrentIndex,
		Difficulty:  q.Difficulty,
		Score:       score,
		Auto:        auto,
	})

	if itv.CurrentIndex+1 >= len(itv.Questions) {
		t.finish(c)
		return
	}
	itv.CurrentIndex++
	t.startQuestion(c)
}

func (t *transition) finish(c *Candidate) {
	now := t.env.Now
	itv := &c.Interview

	total := 0
	for _, q := range itv.Questions {
		total += q.ScoreOrZero()
	}
	summary := t.env.Grader.Summarize(c.Name, total, itv.Questions)

	text := fmt.Sprintf(msgComplete, total, summary)
	switch {
	case total == perfectScore:
		text += msgPerfectSuffix
	case total >= greatJobScore:
		text += msgGreatJobSuffix
	}
	t.say(c, RoleAssistant, text)

	c.Status = StatusCompleted
	c.FinalScore = ptr(total)
	c.Summary = ptr(summary)
	c.UpdatedAt = now
	itv.CurrentIndex = len(itv.Questions)
	itv.FinishedAt = ptr(now)
	itv.Paused = true
	t.emit(Event{Kind: EventCompleted, CandidateID: c.ID, Score: total})
}

func (t *transition) pause(c *Candidate) {
	itv := &c.Interview
	if !itv.Running() {
		return
	}
	itv.PausedRemainingSec = itv.Remaining(t.env.Now)
	itv.Paused = true
	c.UpdatedAt = t.env.Now
	t.emit(Event{Kind: EventPaused, CandidateID: c.ID, Index: itv.CurrentIndex})
}

func (t *transition) resume(c *Candidate) {
	itv := &c.Interview
	if itv.FinishedAt != nil || !itv.Paused || itv.QuestionDurationSec == nil {
		return
	}
	if itv.PausedRemainingSec != nil {
		itv.QuestionDurationSec = ptr(*itv.PausedRemainingSec)
	}
	itv.QuestionStartTS = ptr(t.env.Now)
	itv.PausedRemainingSec = nil
	itv.Paused = false
	c.UpdatedAt = t.env.Now
	t.emit(Event{Kind: EventResumed, CandidateID: c.ID, Index: itv.CurrentIndex})
}

func (t *transition) selectSession(cmd SelectSession) {
	if cmd.ID != nil {
		if _, ok := t.state.Find(*cmd.ID); !ok {
			return
		}
	}
	t.state.CurrentSessionID = clonePtr(cmd.ID)
	ev := Event{Kind: EventSelected}
	if cmd.ID != nil {
		ev.CandidateID = *cmd.ID
	}
	t.emit(ev)
}

func (t *transition) say(c *Candidate, role Role, text string) {
	c.Chat = append(c.Chat, ChatMessage{
		ID:   t.env.NewID(),
		Role: role,
		Text: text,
		TS:   t.env.Now,
	})
	c.UpdatedAt = t.env.Now
}

// QuestionPrompt is the chat text that asks a question.
func QuestionPrompt(d questionbank.Difficulty, text string) string {
	return fmt.Sprintf("(%s) %s", strings.ToUpper(string(d)), text)
}

func durationSec(d questionbank.Difficulty) int {
	return int(questionbank.DurationFor(d) / time.Second)
}

func fieldName(s Stage) string {
	return strings.TrimPrefix(string(s), "collecting-")
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
