// Package worker runs CPU-bound computations on a fixed number of slots and
// hands results back through non-blocking, poll-once task handles.
package worker

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Pool bounds how many computations run at once. Spawning never blocks: work
// beyond the bound waits for a slot on its own goroutine.
type Pool struct {
	size      int
	sem       *semaphore.Weighted
	wg        sync.WaitGroup
	queued    atomic.Int64
	running   atomic.Int64
	completed atomic.Int64
	panicked  atomic.Int64
	logger    *slog.Logger
}

type Stats struct {
	Size      int   `json:"size"`
	Queued    int64 `json:"queued"`
	Running   int64 `json:"running"`
	Completed int64 `json:"completed"`
	Panicked  int64 `json:"panicked"`
}

func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{
		size:   size,
		sem:    semaphore.NewWeighted(int64(size)),
		logger: slog.With("component", "worker_pool"),
	}
}

func (p *Pool) Size() int {
	return p.size
}

func (p *Pool) Stats() Stats {
	return Stats{
		Size:      p.size,
		Queued:    p.queued.Load(),
		Running:   p.running.Load(),
		Completed: p.completed.Load(),
		Panicked:  p.panicked.Load(),
	}
}

// Wait blocks until every spawned computation has finished. Results stay
// available to their tasks.
func (p *Pool) Wait() {
	p.wg.Wait()
}

func (p *Pool) submit(fn func()) {
	p.wg.Add(1)
	p.queued.Add(1)

	go func() {
		defer p.wg.Done()

		// Acquire with a background context only fails on a weight above size.
		_ = p.sem.Acquire(context.Background(), 1)
		p.queued.Add(-1)
		p.running.Add(1)

		defer func() {
			p.running.Add(-1)
			p.completed.Add(1)
			p.sem.Release(1)
		}()

		fn()
	}()
}

func (p *Pool) recovered(r any) {
	p.panicked.Add(1)
	p.logger.Error("Task panicked, delivering zero value",
		"panic", r,
		"stack", string(debug.Stack()),
	)
}
