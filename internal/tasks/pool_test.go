// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tasks

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolForEachRunsEveryJob(t *testing.T) {
	pool := NewPool(4)

	results := make([]int, 64)
	err := pool.ForEach(context.Background(), len(results), func(i int) error {
		results[i] = i * i
		return nil
	})
	require.NoError(t, err)

	for i, got := range results {
		assert.Equal(t, i*i, got, "slot %d", i)
	}
}

func TestPoolForEachZeroJobs(t *testing.T) {
	pool := NewPool(4)
	err := pool.ForEach(context.Background(), 0, func(i int) error {
		t.Fatal("no job should run")
		return nil
	})
	require.NoError(t, err)
}

func TestPoolForEachPropagatesError(t *testing.T) {
	pool := NewPool(2)
	boom := errors.New("boom")

	var ran atomic.Int32
	err := pool.ForEach(context.Background(), 1000, func(i int) error {
		ran.Add(1)
		if i == 3 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
	assert.Less(t, int(ran.Load()), 1000, "error should stop further submissions")
}

func TestPoolForEachCapturesPanic(t *testing.T) {
	pool := NewPool(2)
	err := pool.ForEach(context.Background(), 8, func(i int) error {
		if i == 5 {
			panic("job blew up")
		}
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panicked")
}

func TestPoolForEachHonorsCancellation(t *testing.T) {
	pool := NewPool(1)
	ctx, cancel := context.WithCancel(context.Background())

	var ran atomic.Int32
	err := pool.ForEach(ctx, 1<<20, func(i int) error {
		if ran.Add(1) == 10 {
			cancel()
		}
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Less(t, int(ran.Load()), 1<<20)
}

func TestPoolForEachRejectsDoneContext(t *testing.T) {
	pool := NewPool(4)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := pool.ForEach(ctx, 16, func(i int) error {
		t.Error("no job should run after cancellation")
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewPoolDefaultsWorkers(t *testing.T) {
	assert.Greater(t, NewPool(0).Workers(), 0)
	assert.Equal(t, 3, NewPool(3).Workers())
}
