// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tasks provides a bounded worker pool for CPU-heavy fan-out.
//
// This package implements the concurrency layer behind the linear
// attack: independent indexed jobs spread over a fixed number of
// workers, with jobs writing into caller-owned slots so result order
// never depends on scheduling.
//
// # Key Types
//
//   - Pool: Fixed-size worker pool over indexed jobs
//
// # Usage
//
// Run one job per key guess:
//
//	pool := tasks.NewPool(0) // 0 selects GOMAXPROCS
//	results := make([]float64, 16)
//	err := pool.ForEach(ctx, len(results), func(i int) error {
//	    results[i] = score(i)
//	    return nil
//	})
//
// The first job error or a canceled context stops further submissions;
// started jobs always run to completion before ForEach returns.
package tasks
