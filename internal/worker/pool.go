// worker/pool.go
package worker

import (
	"context"
	"sync"
)

type Job[T any] func(ctx context.Context) T

type Result[T any] struct {
	JobID  string
	Output T
}

// Pool runs submitted jobs on a fixed number of goroutines. With a single
// worker, jobs complete in submission order.
type Pool[T any] struct {
	ctx      context.Context
	jobs     chan jobWrapper[T]
	onResult func(Result[T])

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

type jobWrapper[T any] struct {
	id string
	fn Job[T]
}

// NewPool starts workerCount workers. onResult may be nil.
func NewPool[T any](ctx context.Context, workerCount, bufferSize int, onResult func(Result[T])) *Pool[T] {
	if workerCount < 1 {
		workerCount = 1
	}
	p := &Pool[T]{
		ctx:      context.WithoutCancel(ctx),
		jobs:     make(chan jobWrapper[T], bufferSize),
		onResult: onResult,
	}

	p.wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go p.worker()
	}

	return p
}

func (p *Pool[T]) worker() {
	defer p.wg.Done()
	for job := range p.jobs {
		output := job.fn(p.ctx)
		if p.onResult != nil {
			p.onResult(Result[T]{
				JobID:  job.id,
				Output: output,
			})
		}
	}
}

// Submit queues fn without blocking. It reports false when the buffer is
// full or the pool is closed.
func (p *Pool[T]) Submit(id string, fn Job[T]) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	select {
	case p.jobs <- jobWrapper[T]{id: id, fn: fn}:
		return true
	default:
		return false
	}
}

// Close stops accepting jobs and waits for queued ones to finish.
func (p *Pool[T]) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.jobs)
	}
	p.mu.Unlock()
	p.wg.Wait()
}
