package workpool

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"
)

// Pool bounds how many callers run a class of work concurrently. Pools are
// constructed once at bootstrap and injected; there is no implicit global
// executor.
type Pool struct {
	name string
	sem  *semaphore.Weighted
}

func New(name string, size int) *Pool {
	if size <= 0 {
		size = 1
	}
	return &Pool{
		name: name,
		sem:  semaphore.NewWeighted(int64(size)),
	}
}

// Run blocks until a slot is free, then executes fn on the calling
// goroutine. Acquisition respects ctx cancellation.
func (p *Pool) Run(ctx context.Context, fn func() error) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("acquire %s slot: %w", p.name, err)
	}
	defer p.sem.Release(1)
	return fn()
}
