// Package workerpool runs CPU-bound jobs, such as password hashing during
// seeding, on a fixed number of goroutines.
//
//	err := workerpool.Each(ctx, len(users), runtime.NumCPU(), func(i int) error {
//	    users[i].Password, err = hasher.Hash(plain[i])
//	    return err
//	})
package workerpool

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrPoolFull is returned by Submit when every worker is busy and the
// queue is at capacity.
var ErrPoolFull = errors.New("workerpool: pool is full")

// ErrPoolClosed is returned by Submit after Shutdown.
var ErrPoolClosed = errors.New("workerpool: pool is closed")

// Pool is a bounded goroutine pool.
type Pool struct {
	tasks   chan func()
	wg      sync.WaitGroup
	once    sync.Once
	closeCh chan struct{}
}

// New starts size workers. The queue holds twice that many tasks.
func New(size int) *Pool {
	if size <= 0 {
		size = 1
	}

	p := &Pool{
		tasks:   make(chan func(), size*2),
		closeCh: make(chan struct{}),
	}
	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Submit enqueues task without blocking.
func (p *Pool) Submit(task func()) error {
	select {
	case <-p.closeCh:
		return ErrPoolClosed
	default:
	}

	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrPoolFull
	}
}

// SubmitWait blocks until task is queued, the pool closes or ctx ends.
func (p *Pool) SubmitWait(ctx context.Context, task func()) error {
	select {
	case <-p.closeCh:
		return ErrPoolClosed
	case <-ctx.Done():
		return ctx.Err()
	case p.tasks <- task:
		return nil
	}
}

// Shutdown stops accepting tasks and waits for queued ones to finish.
// It is safe to call more than once.
func (p *Pool) Shutdown() {
	p.once.Do(func() {
		close(p.closeCh)
		close(p.tasks)
		p.wg.Wait()
	})
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		safeRun(task)
	}
}

func safeRun(task func()) {
	defer func() { recover() }() //nolint:errcheck
	task()
}

// Each calls fn(i) for every i in [0, n) using size workers and returns
// all failures joined. A panic in fn is reported as an error.
func Each(ctx context.Context, n, size int, fn func(i int) error) error {
	if n == 0 {
		return nil
	}
	pool := New(min(size, n))
	defer pool.Shutdown()

	var (
		mu   sync.Mutex
		errs []error
		wg   sync.WaitGroup
	)
	fail := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	for i := 0; i < n; i++ {
		wg.Add(1)
		err := pool.SubmitWait(ctx, func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					fail(fmt.Errorf("workerpool: job %d panicked: %v", i, r))
				}
			}()
			if err := fn(i); err != nil {
				fail(err)
			}
		})
		if err != nil {
			wg.Done()
			fail(err)
			break
		}
	}

	wg.Wait()
	return errors.Join(errs...)
}
