package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/mockinterview/backend/internal/domain/interview"
	"github.com/mockinterview/backend/internal/metrics"
)

type NoticeKind string

const (
	NoticeLowTime       NoticeKind = "low_time"
	NoticeAutoSubmitted NoticeKind = "auto_submitted"
)

// Notice is something the candidate should be told about outside the
// chat.
type Notice struct {
	Kind         NoticeKind `json:"kind"`
	CandidateID  string     `json:"candidateId"`
	Index        int        `json:"index"`
	RemainingSec int        `json:"remainingSec"`
}

// Tick checks the active session's question timer. It warns once per timer
// arming when time runs low and submits the buffered draft when it runs
// out. Only the selected session is watched; a session left unselected
// keeps its clock and is caught up when reselected.
func (s *InterviewService) Tick(ctx context.Context) []Notice {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.activeLocked()
	if err != nil || c.Stage() != interview.StageAnswering || !c.Interview.Running() {
		return nil
	}

	now := s.now()
	rem := c.Interview.Remaining(now)
	if rem == nil {
		return nil
	}
	id, index := c.ID, c.Interview.CurrentIndex

	if *rem > 0 {
		if !c.Interview.LowTime(now) {
			return nil
		}
		key := timerKey{index: index, start: *c.Interview.QuestionStartTS}
		if s.warned[id] == key {
			return nil
		}
		s.warned[id] = key
		metrics.LowTimeWarnings.Inc()
		return []Notice{{Kind: NoticeLowTime, CandidateID: id, Index: index, RemainingSec: *rem}}
	}

	draft := trimmedDraft(s.drafts, id)
	delete(s.drafts, id)
	s.dispatch(interview.SubmitAnswer{Text: draft, Auto: true})
	s.logger.Info("question timed out, answer auto-submitted",
		zap.String("candidate_id", id),
		zap.Int("index", index),
		zap.Int("draft_len", len(draft)),
	)
	return []Notice{{Kind: NoticeAutoSubmitted, CandidateID: id, Index: index}}
}
