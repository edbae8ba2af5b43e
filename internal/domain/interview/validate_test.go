package interview_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mockinterview/backend/internal/domain/interview"
)

func TestValidEmail(t *testing.T) {
	valid := []string{"ada@example.com", "A.B+c@Mail.Example.ORG", "reach me at bob@ex.io"}
	invalid := []string{"", "ada", "ada@example", "@example.com", "ada@.c"}

	for _, s := range valid {
		assert.True(t, interview.ValidEmail(s), s)
	}
	for _, s := range invalid {
		assert.False(t, interview.ValidEmail(s), s)
	}
}

func TestValidPhone(t *testing.T) {
	valid := []string{"+1 (555) 123-4567", "020 7946 0958", "555123456", "+447946095800"}
	invalid := []string{"", "12345678", "555-1234", "phone", "1-2-3-4-5-6-7-8"}

	for _, s := range valid {
		assert.True(t, interview.ValidPhone(s), s)
	}
	for _, s := range invalid {
		assert.False(t, interview.ValidPhone(s), s)
	}
}

func TestFindPhone_SkipsShortRuns(t *testing.T) {
	assert.Equal(t, "+1 555 123 4567", interview.FindPhone("ext 1234 5678 or +1 555 123 4567"))
}
