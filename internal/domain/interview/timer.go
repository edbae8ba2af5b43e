package interview

import "time"

// LowTimeSec is the remaining time at or below which the candidate is
// warned.
const LowTimeSec = 5

// Remaining returns the seconds left on the current question at now, or nil
// when the interview is finished or no question timer was ever armed.
// It is computed from the stored start and duration on every call, so it
// stays correct however long the process was suspended.
func (s InterviewState) Remaining(now time.Time) *int {
	if s.FinishedAt != nil {
		return nil
	}
	if s.Paused {
		if s.PausedRemainingSec != nil {
			return ptr(*s.PausedRemainingSec)
		}
		return clonePtr(s.QuestionDurationSec)
	}
	if s.QuestionStartTS == nil || s.QuestionDurationSec == nil {
		return nil
	}
	return ptr(max(0, *s.QuestionDurationSec-elapsedSeconds(*s.QuestionStartTS, now)))
}

// Elapsed is the time spent on the current question, capped at its
// duration. It is 0 when the timer was never armed.
func (s InterviewState) Elapsed(now time.Time) int {
	if s.QuestionStartTS == nil || s.QuestionDurationSec == nil {
		return 0
	}
	return min(*s.QuestionDurationSec, elapsedSeconds(*s.QuestionStartTS, now))
}

// Running reports whether the question clock is ticking.
func (s InterviewState) Running() bool {
	return s.FinishedAt == nil && !s.Paused && s.QuestionStartTS != nil && s.QuestionDurationSec != nil
}

// LowTime reports whether a running question is about to expire.
func (s InterviewState) LowTime(now time.Time) bool {
	if !s.Running() {
		return false
	}
	rem := s.Remaining(now)
	return rem != nil && *rem > 0 && *rem <= LowTimeSec
}

func elapsedSeconds(start, now time.Time) int {
	return max(0, int(now.Sub(start)/time.Second))
}
