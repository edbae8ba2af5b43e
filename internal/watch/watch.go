// Package watch drives the question timer from a background schedule so a
// question expires even when nobody is polling the session.
package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mockinterview/backend/internal/service"
)

type Ticker interface {
	Tick(ctx context.Context) []service.Notice
}

// Sink receives every notice a tick produces.
type Sink func(service.Notice)

type Watcher struct {
	ticker   Ticker
	interval time.Duration
	sink     Sink
	logger   *zap.Logger
	cron     *cron.Cron
}

func New(t Ticker, interval time.Duration, sink Sink, logger *zap.Logger) *Watcher {
	return &Watcher{
		ticker:   t,
		interval: interval,
		sink:     sink,
		logger:   logger,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
}

// LogSink logs notices.
func LogSink(logger *zap.Logger) Sink {
	return func(n service.Notice) {
		logger.Info("timer notice",
			zap.String("kind", string(n.Kind)),
			zap.String("candidate_id", n.CandidateID),
			zap.Int("index", n.Index),
			zap.Int("remaining_sec", n.RemainingSec),
		)
	}
}

// Start schedules the tick. Ticks run with ctx until Stop.
func (w *Watcher) Start(ctx context.Context) error {
	if w.interval <= 0 {
		return fmt.Errorf("watch: interval must be positive, got %s", w.interval)
	}
	spec := "@every " + w.interval.String()
	if _, err := w.cron.AddFunc(spec, func() { w.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("watch: schedule %q: %w", spec, err)
	}
	w.logger.Info("expiry watcher started", zap.Duration("interval", w.interval))
	w.cron.Start()
	return nil
}

// Stop unschedules the tick and waits for a running one to return.
func (w *Watcher) Stop() {
	<-w.cron.Stop().Done()
	w.logger.Info("expiry watcher stopped")
}

// RunOnce performs a single tick and hands its notices to the sink.
func (w *Watcher) RunOnce(ctx context.Context) []service.Notice {
	if ctx.Err() != nil {
		return nil
	}
	notices := w.ticker.Tick(ctx)
	if w.sink != nil {
		for _, n := range notices {
			w.sink(n)
		}
	}
	return notices
}
