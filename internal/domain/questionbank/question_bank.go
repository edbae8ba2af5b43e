package questionbank

import (
	_ "embed"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mockinterview/backend/internal/id"
)

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Difficulties lists the difficulties in the order questions are asked.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// PerDifficulty is how many questions each session draws from every pool.
const PerDifficulty = 2

// SessionSize is the number of questions in every interview.
const SessionSize = PerDifficulty * 3

//go:embed pools.yaml
var poolsYAML []byte

// Entry is a pool item a Question is drawn from.
type Entry struct {
	Text     string   `yaml:"text" json:"text"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// Picker returns an index in [0, n).
type Picker func(n int) int

// Bank holds the fixed question pools.
type Bank struct {
	Easy   []Entry `yaml:"easy"`
	Medium []Entry `yaml:"medium"`
	Hard   []Entry `yaml:"hard"`

	pick Picker
}

var defaultPools = sync.OnceValues(func() (Bank, error) {
	var b Bank
	if err := yaml.Unmarshal(poolsYAML, &b); err != nil {
		return Bank{}, fmt.Errorf("decode question pools: %w", err)
	}
	for _, d := range Difficulties {
		if n := len(b.Pool(d)); n < PerDifficulty {
			return Bank{}, fmt.Errorf("pool %s has %d entries, need %d", d, n, PerDifficulty)
		}
	}
	return b, nil
})

// Default returns the built-in bank with a random picker.
func Default() *Bank {
	b, err := defaultPools()
	if err != nil {
		panic("questionbank: " + err.Error())
	}
	return New(b.Easy, b.Medium, b.Hard)
}

// New builds a bank from the given pools. Pools are copied.
func New(easy, medium, hard []Entry) *Bank {
	return &Bank{
		Easy:   copyEntries(easy),
		Medium: copyEntries(medium),
		Hard:   copyEntries(hard),
		pick:   rand.IntN,
	}
}

// WithPicker replaces the random source used by Generate.
func (b *Bank) WithPicker(p Picker) *Bank {
	b.pick = p
	return b
}

func (b *Bank) Pool(d Difficulty) []Entry {
	switch d {
	case Easy:
		return b.Easy
	case Medium:
		return b.Medium
	case Hard:
		return b.Hard
	}
	return nil
}

// Generate draws PerDifficulty questions without replacement from every
// pool, easy first and hard last. Each question gets a fresh id.
func (b *Bank) Generate() []Question {
	questions := make([]Question, 0, SessionSize)
	for _, d := range Difficulties {
		for _, e := range pickN(b.Pool(d), PerDifficulty, b.pick) {
			questions = append(questions, Question{
				ID:         id.GenerateID(),
				Difficulty: d,
				Text:       e.Text,
				Keywords:   append([]string(nil), e.Keywords...),
			})
		}
	}
	return questions
}

func pickN(pool []Entry, n int, pick Picker) []Entry {
	remaining := copyEntries(pool)
	out := make([]Entry, 0, n)
	for len(out) < n && len(remaining) > 0 {
		i := pick(len(remaining))
		out = append(out, remaining[i])
		remaining = append(remaining[:i], remaining[i+1:]...)
	}
	return out
}

func copyEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = Entry{Text: e.Text, Keywords: append([]string(nil), e.Keywords...)}
	}
	return out
}

// DurationFor is the time allotted to a question of the given difficulty.
func DurationFor(d Difficulty) time.Duration {
	switch d {
	case Easy:
		return 20 * time.Second
	case Medium:
		return 60 * time.Second
	}
	return 120 * time.Second
}
