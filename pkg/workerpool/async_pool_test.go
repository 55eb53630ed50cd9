// Copyright 2024 Wordmill Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package workerpool

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestAsyncPoolBasic(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	errg, ctx := errgroup.WithContext(ctx)

	pool := NewDefaultAsyncPool(4)
	errg.Go(func() error {
		return pool.Run(ctx)
	})

	var sum int32
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		finalI := i
		err := pool.Go(ctx, func() {
			time.Sleep(time.Millisecond * time.Duration(rand.Int()%100))
			atomic.AddInt32(&sum, int32(finalI+1))
			wg.Done()
		})
		require.NoError(t, err)
	}

	wg.Wait()
	require.Equal(t, int32(5050), atomic.LoadInt32(&sum))

	cancel()
	err := errg.Wait()
	require.ErrorContains(t, err, "context canceled")
}

func TestAsyncPoolGoBeforeRun(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	pool := NewDefaultAsyncPool(2)

	// Submission retries while the pool is not running, so a late Run
	// still picks the task up.
	done := make(chan struct{})
	errg, runCtx := errgroup.WithContext(ctx)
	errg.Go(func() error {
		return pool.Run(runCtx)
	})
	errg.Go(func() error {
		return pool.Go(ctx, func() {
			close(done)
		})
	})

	select {
	case <-done:
	case <-ctx.Done():
		t.Fatal("task was never run")
	}

	cancel()
	_ = errg.Wait()
}

func TestAsyncPoolCancelledSubmission(t *testing.T) {
	t.Parallel()

	pool := NewDefaultAsyncPool(2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The pool never ran; submission must fail instead of hanging.
	err := pool.Go(ctx, func() {})
	require.Error(t, err)
}
