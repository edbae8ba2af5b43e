package watch_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mockinterview/backend/internal/service"
	"github.com/mockinterview/backend/internal/watch"
)

type fakeTicker struct {
	calls   atomic.Int32
	notices []service.Notice
}

func (f *fakeTicker) Tick(context.Context) []service.Notice {
	f.calls.Add(1)
	return f.notices
}

func TestRunOnce_ForwardsNotices(t *testing.T) {
	ticker := &fakeTicker{notices: []service.Notice{
		{Kind: service.NoticeLowTime, CandidateID: "c1", RemainingSec: 5},
		{Kind: service.NoticeAutoSubmitted, CandidateID: "c1", Index: 2},
	}}
	var got []service.Notice
	w := watch.New(ticker, time.Second, func(n service.Notice) { got = append(got, n) }, zaptest.NewLogger(t))

	out := w.RunOnce(context.Background())

	assert.Equal(t, ticker.notices, out)
	assert.Equal(t, ticker.notices, got)
}

func TestRunOnce_CancelledContext(t *testing.T) {
	ticker := &fakeTicker{}
	w := watch.New(ticker, time.Second, nil, zaptest.NewLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Nil(t, w.RunOnce(ctx))
	assert.Zero(t, ticker.calls.Load())
}

func TestStart_RejectsBadInterval(t *testing.T) {
	w := watch.New(&fakeTicker{}, 0, nil, zaptest.NewLogger(t))

	assert.Error(t, w.Start(context.Background()))
}

func TestStart_TicksOnSchedule(t *testing.T) {
	ticker := &fakeTicker{notices: []service.Notice{{Kind: service.NoticeLowTime}}}
	var mu sync.Mutex
	seen := 0
	w := watch.New(ticker, time.Second, func(service.Notice) {
		mu.Lock()
		seen++
		mu.Unlock()
	}, zaptest.NewLogger(t))

	require.NoError(t, w.Start(context.Background()))
	assert.Eventually(t, func() bool { return ticker.calls.Load() >= 1 }, 5*time.Second, 50*time.Millisecond)
	w.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.GreaterOrEqual(t, seen, 1)
}

func TestLogSink(t *testing.T) {
	sink := watch.LogSink(zaptest.NewLogger(t))

	assert.NotPanics(t, func() { sink(service.Notice{Kind: service.NoticeLowTime, CandidateID: "c1"}) })
}
