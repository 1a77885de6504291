// Package parallel runs independent surface conversions on a fixed set of
// goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a pool of goroutines for converting independent surfaces.
//
// Work items share one queue. Each item must own the memory it writes;
// the pool gives no ordering between items.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	// workers is the number of worker goroutines.
	workers int

	// queue feeds work to the workers.
	queue chan func()

	// done signals workers to stop.
	done chan struct{}

	// wg waits for all workers to finish.
	wg sync.WaitGroup

	// running indicates whether the pool is accepting work.
	running atomic.Bool
}

// NewWorkerPool creates a new worker pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// The pool starts immediately and workers begin waiting for work.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &WorkerPool{
		workers: workers,
		queue:   make(chan func(), workers*2),
		done:    make(chan struct{}),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}

	return p
}

// worker is the main loop for each worker goroutine.
func (p *WorkerPool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.done:
			// Drain remaining work before exiting
			for {
				select {
				case work := <-p.queue:
					work()
				default:
					return
				}
			}
		case work := <-p.queue:
			work()
		}
	}
}

// ForEach calls fn(i) for every i in [0, n) on the pool's workers and waits
// for all calls to return. If the pool is already closed, the calls run
// on the calling goroutine. ForEach must not race with Close.
func (p *WorkerPool) ForEach(n int, fn func(i int)) {
	if n <= 0 || fn == nil {
		return
	}

	var wg sync.WaitGroup
	wg.Add(n)

	for i := range n {
		work := func() {
			defer wg.Done()
			fn(i)
		}

		if !p.running.Load() {
			work()
			continue
		}

		select {
		case p.queue <- work:
		case <-p.done:
			work()
		}
	}

	wg.Wait()
}

// Close gracefully shuts down the pool.
// Queued work still runs; Close waits for it.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning returns true if the pool is still accepting work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
