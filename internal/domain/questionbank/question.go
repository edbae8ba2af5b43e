package questionbank

import "slices"

// Answer is what the candidate submitted for a question.
type Answer struct {
	Text          string `json:"text"`
	TimeSpentSec  int    `json:"timeSpentSec"`
	AutoSubmitted bool   `json:"autoSubmitted"`
}

// Question is a drawn pool entry. Answer and Score are attached once, after
// the candidate responds.
type Question struct {
	ID         string     `json:"id"`
	Difficulty Difficulty `json:"difficulty"`
	Text       string     `json:"text"`
	Keywords   []string   `json:"keywords"`
	Answer     *Answer    `json:"answer,omitempty"`
	Score      *int       `json:"score,omitempty"`
}

// Clone returns a deep copy.
func (q Question) Clone() Question {
	c := q
	c.Keywords = slices.Clone(q.Keywords)
	if q.Answer != nil {
		a := *q.Answer
		c.Answer = &a
	}
	if q.Score != nil {
		s := *q.Score
		c.Score = &s
	}
	return c
}

// ScoreOrZero returns the attached score, or 0 when none is attached.
func (q Question) ScoreOrZero() int {
	if q.Score == nil {
		return 0
	}
	return *q.Score
}
