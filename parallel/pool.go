package parallel

import (
	"runtime"
	"sync"
)

type (
	WorkerFunc func(func())
	WaitFunc   func()
	CancelFunc func()
)

// Pool runs submitted functions on a fixed set of goroutines. With a single
// worker everything runs inline on the caller's goroutine.
//
// Wait blocks until every function handed to Do so far has returned and may be
// called any number of times. Close stops the workers; Do must not be called
// after Close.
type Pool struct {
	tasks   sync.WaitGroup
	workers sync.WaitGroup
	size    int
	Do      WorkerFunc
	Wait    WaitFunc
	Close   CancelFunc
}

func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		size: numWorkers,
		Do: func(f func()) {
			f()
		},
		Wait:  func() {},
		Close: func() {},
	}

	if numWorkers > 1 {
		workChan := make(chan func(), numWorkers)

		for range numWorkers {
			pool.workers.Go(func() {
				for f := range workChan {
					f()
				}
			})
		}

		pool.Do = func(f func()) {
			pool.tasks.Add(1)
			workChan <- func() {
				defer pool.tasks.Done()
				f()
			}
		}

		pool.Wait = pool.tasks.Wait
		pool.Close = sync.OnceFunc(func() {
			close(workChan)
			pool.workers.Wait()
		})
	}

	return pool
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return p.size
}

// Range splits [0, n) into contiguous bands of at most chunk items, hands each
// band to fn through the pool and returns once all of them are done. A chunk
// below 1 picks a size giving every worker a few bands.
func (p *Pool) Range(n, chunk int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	if chunk < 1 {
		chunk = max(1, n/(p.size*4))
	}

	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		p.Do(func() {
			fn(lo, hi)
		})
	}
	p.Wait()
}
