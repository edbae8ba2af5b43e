package simulation_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mockinterview/backend/internal/domain/interview"
	"github.com/mockinterview/backend/internal/service"
	"github.com/mockinterview/backend/internal/simulation"
)

func TestRun_DefaultScript(t *testing.T) {
	var out bytes.Buffer

	res, err := simulation.Run(context.Background(), simulation.DefaultScript(), simulation.Options{
		Logger: zaptest.NewLogger(t),
		Out:    &out,
		Start:  time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	c := res.Candidate
	assert.Equal(t, interview.StatusCompleted, c.Status)
	require.NotNil(t, c.Name)
	assert.Equal(t, "Grace Hopper", *c.Name)
	require.NotNil(t, c.Phone)
	assert.Equal(t, "+1 202 555 0147", *c.Phone)

	qs := c.Interview.Questions
	require.Len(t, qs, 6)
	require.NotNil(t, qs[2].Answer)
	assert.True(t, qs[2].Answer.AutoSubmitted)
	assert.Equal(t, 60, qs[2].Answer.TimeSpentSec)
	for i, q := range qs {
		require.NotNil(t, q.Score, "question %d unscored", i+1)
	}
	require.NotNil(t, c.FinalScore)
	assert.Greater(t, *c.FinalScore, 0)

	kinds := map[service.NoticeKind]int{}
	for _, n := range res.Notices {
		kinds[n.Kind]++
	}
	assert.Equal(t, 1, kinds[service.NoticeAutoSubmitted])
	assert.GreaterOrEqual(t, kinds[service.NoticeLowTime], 1)

	assert.Contains(t, out.String(), "Please enter a valid phone number")
	assert.Contains(t, out.String(), "Interview complete. Final Score:")
}

func TestRun_IncompleteContact(t *testing.T) {
	sc := simulation.DefaultScript()
	sc.Contact = []string{"555"}

	_, err := simulation.Run(context.Background(), sc, simulation.Options{Logger: zaptest.NewLogger(t)})

	assert.ErrorContains(t, err, "collecting-phone")
}
