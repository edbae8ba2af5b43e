// Package dashboard builds the interviewer's view of all candidates.
package dashboard

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/ecodeclub/ekit/slice"

	"github.com/mockinterview/backend/internal/domain/interview"
	"github.com/mockinterview/backend/internal/domain/questionbank"
)

type SortBy string

const (
	SortByScore SortBy = "score"
	SortByDate  SortBy = "date"
)

// Query filters and orders the candidate list. Search matches name, email
// or phone case-insensitively.
type Query struct {
	Search string `validate:"max=200"`
	SortBy SortBy `validate:"omitempty,oneof=score date"`
}

type Row struct {
	ID         string           `json:"id"`
	Name       *string          `json:"name"`
	Email      *string          `json:"email"`
	Phone      *string          `json:"phone"`
	Status     interview.Status `json:"status"`
	FinalScore *int             `json:"finalScore"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

// List returns the matching candidates, highest score first by default.
// Unscored candidates sort after every scored one; ties keep state order.
func List(st interview.State, q Query) []Row {
	candidates := st.Candidates
	if term := strings.ToLower(strings.TrimSpace(q.Search)); term != "" {
		candidates = slices.DeleteFunc(slices.Clone(candidates), func(c interview.Candidate) bool {
			return !matches(c, term)
		})
	}

	rows := slice.Map(candidates, func(_ int, c interview.Candidate) Row {
		return Row{
			ID:         c.ID,
			Name:       c.Name,
			Email:      c.Email,
			Phone:      c.Phone,
			Status:     c.Status,
			FinalScore: c.FinalScore,
			UpdatedAt:  c.UpdatedAt,
		}
	})

	if q.SortBy == SortByDate {
		slices.SortStableFunc(rows, func(a, b Row) int {
			return b.UpdatedAt.Compare(a.UpdatedAt)
		})
	} else {
		slices.SortStableFunc(rows, func(a, b Row) int {
			return cmp.Compare(scoreOrUnset(b.FinalScore), scoreOrUnset(a.FinalScore))
		})
	}
	return rows
}

func matches(c interview.Candidate, term string) bool {
	for _, f := range []*string{c.Name, c.Email, c.Phone} {
		if f != nil && strings.Contains(strings.ToLower(*f), term) {
			return true
		}
	}
	return false
}

func scoreOrUnset(s *int) int {
	if s == nil {
		return -1
	}
	return *s
}

// QA is one asked question with its outcome.
type QA struct {
	Number       int                     `json:"number"`
	Difficulty   questionbank.Difficulty `json:"difficulty"`
	Question     string                  `json:"question"`
	Answer       *string                 `json:"answer"`
	TimeSpentSec *int                    `json:"timeSpentSec"`
	Auto         bool                    `json:"autoSubmitted"`
	Score        *int                    `json:"score"`
}

type Detail struct {
	Row
	Summary    *string                        `json:"summary"`
	Resume     *interview.ResumeMeta          `json:"resume,omitempty"`
	Questions  []QA                           `json:"questions"`
	Breakdown  []questionbank.DifficultyStats `json:"breakdown"`
	Transcript []interview.ChatMessage        `json:"transcript"`
}

// DetailOf expands one candidate for review.
func DetailOf(c interview.Candidate) Detail {
	c = c.Clone()
	return Detail{
		Row: Row{
			ID:         c.ID,
			Name:       c.Name,
			Email:      c.Email,
			Phone:      c.Phone,
			Status:     c.Status,
			FinalScore: c.FinalScore,
			UpdatedAt:  c.UpdatedAt,
		},
		Summary: c.Summary,
		Resume:  c.Resume,
		Questions: slice.Map(c.Interview.Questions, func(i int, q questionbank.Question) QA {
			qa := QA{
				Number:     i + 1,
				Difficulty: q.Difficulty,
				Question:   q.Text,
				Score:      q.Score,
			}
			if q.Answer != nil {
				qa.Answer = &q.Answer.Text
				qa.TimeSpentSec = &q.Answer.TimeSpentSec
				qa.Auto = q.Answer.AutoSubmitted
			}
			return qa
		}),
		Breakdown:  questionbank.Breakdown(c.Interview.Questions),
		Transcript: c.Chat,
	}
}

// FormatSeconds renders a duration in seconds as mm:ss. Negative values
// render as 00:00.
func FormatSeconds(sec int) string {
	sec = max(0, sec)
	return fmt.Sprintf("%02d:%02d", sec/60, sec%60)
}
