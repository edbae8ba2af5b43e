package store

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("not found")
)

// KV is a string-keyed blob store. The interview state is saved whole
// under one key, so nothing richer is needed.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
