package questionbank

// MaxScore is the highest score a single question can receive.
const MaxScore = 10

// DifficultyStats aggregates the scored questions of one difficulty.
type DifficultyStats struct {
	Difficulty Difficulty `json:"difficulty"`
	Answered   int        `json:"answered"`
	Score      int        `json:"score"`
	MaxScore   int        `json:"max_score"`
}

// Breakdown returns per-difficulty totals in ask order. Difficulties with no
// questions are omitted.
func Breakdown(questions []Question) []DifficultyStats {
	byDifficulty := make(map[Difficulty]*DifficultyStats)
	for _, q := range questions {
		st, ok := byDifficulty[q.Difficulty]
		if !ok {
			st = &DifficultyStats{Difficulty: q.Difficulty}
			byDifficulty[q.Difficulty] = st
		}
		st.MaxScore += MaxScore
		if q.Answer != nil {
			st.Answered++
		}
		st.Score += q.ScoreOrZero()
	}

	out := make([]DifficultyStats, 0, len(byDifficulty))
	for _, d := range Difficulties {
		if st, ok := byDifficulty[d]; ok {
			out = append(out, *st)
		}
	}
	return out
}
