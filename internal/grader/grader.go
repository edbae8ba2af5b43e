package grader

import "github.com/mockinterview/backend/internal/domain/questionbank"

// Grader scores answers and writes the end-of-interview summary.
// Implementations must be pure: the same input always yields the same output.
type Grader interface {
	// Score returns an integer in [0, 10].
	Score(q questionbank.Question, answer string) int
	// Summarize describes a finished interview. name may be nil.
	Summarize(name *string, total int, questions []questionbank.Question) string
}
