package store

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/mockinterview/backend/internal/domain/interview"
	"github.com/mockinterview/backend/internal/metrics"
)

const DefaultStateKey = "interview-data-v1"

// Persister loads and saves the whole interview state as one JSON blob.
// Neither direction ever fails the caller: a missing or unreadable blob
// loads as the empty state and a failed save is only logged.
type Persister struct {
	kv     KV
	key    string
	logger *zap.Logger
}

func NewPersister(kv KV, key string, logger *zap.Logger) *Persister {
	if key == "" {
		key = DefaultStateKey
	}
	return &Persister{kv: kv, key: key, logger: logger}
}

func (p *Persister) Key() string {
	return p.key
}

func (p *Persister) Load(ctx context.Context) interview.State {
	raw, err := p.kv.Get(ctx, p.key)
	if errors.Is(err, ErrNotFound) {
		return interview.Empty()
	}
	if err != nil {
		p.logger.Warn("state load failed", zap.String("key", p.key), zap.Error(err))
		metrics.PersistFailures.WithLabelValues("load").Inc()
		return interview.Empty()
	}

	var st interview.State
	if err := json.Unmarshal(raw, &st); err != nil {
		p.logger.Warn("stored state is unreadable, starting empty", zap.String("key", p.key), zap.Error(err))
		metrics.PersistFailures.WithLabelValues("decode").Inc()
		return interview.Empty()
	}
	if st.Candidates == nil {
		st.Candidates = []interview.Candidate{}
	}
	return st
}

func (p *Persister) Save(ctx context.Context, st interview.State) {
	raw, err := json.Marshal(st)
	if err != nil {
		p.logger.Warn("state encode failed", zap.Error(err))
		metrics.PersistFailures.WithLabelValues("encode").Inc()
		return
	}
	if err := p.kv.Set(ctx, p.key, raw); err != nil {
		p.logger.Warn("state save failed", zap.String("key", p.key), zap.Error(err))
		metrics.PersistFailures.WithLabelValues("save").Inc()
	}
}
