// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// pool.go - Bounded fan-out over independent computations

package tasks

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// Pool runs independent indexed jobs with bounded concurrency. Jobs
// write their results into caller-owned indexed slots, so result order
// never depends on goroutine scheduling.
type Pool struct {
	workers int
}

// NewPool creates a pool with the given worker count. A count of zero
// or less selects GOMAXPROCS.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{workers: workers}
}

// Workers returns the configured concurrency limit.
func (p *Pool) Workers() int {
	return p.workers
}

// ForEach runs fn(i) for every i in [0, n) across the pool's workers
// and waits for all started jobs to finish. The first job error stops
// further submissions and is returned; a canceled context does the
// same. Panics inside jobs are captured and reported as errors rather
// than taking down the process.
func (p *Pool) ForEach(ctx context.Context, n int, fn func(i int) error) error {
	if n <= 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	workers := p.workers
	if workers > n {
		workers = n
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	setErr := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}
	failed := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return firstErr != nil
	}

	jobs := make(chan int)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := runJob(fn, i); err != nil {
					setErr(err)
				}
			}
		}()
	}

feed:
	for i := 0; i < n; i++ {
		if failed() {
			break
		}
		select {
		case jobs <- i:
		case <-ctx.Done():
			setErr(ctx.Err())
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	return firstErr
}

// runJob invokes fn with panic capture so one bad job cannot crash the
// whole pool.
func runJob(fn func(int) error, i int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job %d panicked: %v", i, r)
		}
	}()
	return fn(i)
}
