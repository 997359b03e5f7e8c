// Package worker provides the concurrency primitives shared by scraping and
// indexing: a bounded worker pool and per-domain rate limiting.
package worker

import (
	"context"
	"sync"
)

// Job is a unit of work.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of one job.
type Result interface {
	GetError() error
}

// Pool runs jobs on a fixed number of workers. Results stream out as they
// complete; the producer submits and closes while a consumer drains
// Results, so the pool never needs to buffer a whole batch.
type Pool struct {
	workers   int
	jobs      chan Job
	results   chan Result
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewPool creates a pool with the given number of workers.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	return &Pool{
		workers: workers,
		jobs:    make(chan Job, workers),
		results: make(chan Result, workers),
	}
}

// Start launches the workers. Jobs execute under ctx, so cancelling it
// interrupts in-flight work, not just pending submissions. Start must be
// called before Submit.
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job. It blocks until a worker can take it or the pool is
// shut down.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
	case p.jobs <- job:
	}
}

// Close signals that no more jobs will be submitted. Results closes once
// the in-flight jobs finish.
func (p *Pool) Close() {
	close(p.jobs)
	go func() {
		p.wg.Wait()
		p.closeResults()
	}()
}

// Results returns the stream of completed job results. It is closed after
// Close once all workers drain.
func (p *Pool) Results() <-chan Result {
	return p.results
}

// Shutdown aborts the pool without waiting for queued jobs.
func (p *Pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
