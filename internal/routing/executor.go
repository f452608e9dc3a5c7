package routing

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Executor runs tasks asynchronously. Submit must not block the caller
// beyond queuing the task.
type Executor interface {
	Submit(task func())
}

// GoExecutor runs every task on its own goroutine
type GoExecutor struct{}

// Submit starts task immediately
func (GoExecutor) Submit(task func()) { go task() }

// Pool runs at most a fixed number of tasks at a time. Tasks beyond the
// limit wait for a free slot.
type Pool struct {
	sem     *semaphore.Weighted
	workers int
}

// NewPool creates a pool running at most workers tasks concurrently
func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{sem: semaphore.NewWeighted(int64(workers)), workers: workers}
}

// Submit queues task and returns without waiting for a slot
func (p *Pool) Submit(task func()) {
	go func() {
		// Acquire only fails when its context is done.
		_ = p.sem.Acquire(context.Background(), 1)
		defer p.sem.Release(1)
		task()
	}()
}

// Workers returns the concurrency limit
func (p *Pool) Workers() int { return p.workers }
