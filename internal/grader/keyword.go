package grader

import (
	"fmt"
	"strings"

	"github.com/mockinterview/backend/internal/domain/questionbank"
)

const (
	pointsPerKeyword = 2
	maxKeywordPoints = 8
	wordsPerBonus    = 25
	maxLengthBonus   = 2

	strengthThreshold = 8
	weaknessThreshold = 4

	maxStrengths  = 3
	maxWeaknesses = 2

	fallbackName       = "The candidate"
	fallbackStrengths  = "solid fundamentals"
	fallbackWeaknesses = "no major gaps identified"
)

// KeywordGrader grades by counting the question's keywords in the answer,
// plus a small bonus for longer answers.
type KeywordGrader struct{}

var _ Grader = KeywordGrader{}

func (KeywordGrader) Score(q questionbank.Question, answer string) int {
	text := strings.ToLower(answer)
	if strings.TrimSpace(text) == "" {
		return 0
	}

	hits := make(map[string]struct{})
	for _, k := range q.Keywords {
		k = strings.ToLower(k)
		if strings.Contains(text, k) {
			hits[k] = struct{}{}
		}
	}

	score := min(len(hits)*pointsPerKeyword, maxKeywordPoints)
	score += min(len(strings.Fields(text))/wordsPerBonus, maxLengthBonus)
	return max(0, min(questionbank.MaxScore, score))
}

func (KeywordGrader) Summarize(name *string, total int, questions []questionbank.Question) string {
	var strengths, weaknesses orderedSet
	for _, q := range questions {
		if len(q.Keywords) == 0 {
			continue
		}
		s := q.ScoreOrZero()
		if s >= strengthThreshold {
			strengths.add(q.Keywords[0])
		}
		if s <= weaknessThreshold {
			weaknesses.add(q.Keywords[0])
		}
	}

	nm := fallbackName
	if name != nil && *name != "" {
		nm = *name
	}
	return fmt.Sprintf("%s scored %d/60. Strengths: %s. Areas to improve: %s.",
		nm, total,
		strengths.join(maxStrengths, fallbackStrengths),
		weaknesses.join(maxWeaknesses, fallbackWeaknesses),
	)
}

// orderedSet keeps first-insertion order.
type orderedSet struct {
	items []string
	seen  map[string]struct{}
}

func (s *orderedSet) add(v string) {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}

func (s *orderedSet) join(limit int, fallback string) string {
	items := s.items
	if len(items) > limit {
		items = items[:limit]
	}
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}
