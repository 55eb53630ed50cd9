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

package async

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wordmill/wordmill/pkg/errors"
	"github.com/wordmill/wordmill/pkg/workerpool"
	"golang.org/x/sync/errgroup"
)

func startPool(t *testing.T) (workerpool.AsyncPool, context.CancelFunc, *errgroup.Group) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	pool := workerpool.NewDefaultAsyncPool(2)
	errg, runCtx := errgroup.WithContext(ctx)
	errg.Go(func() error {
		return pool.Run(runCtx)
	})
	return pool, cancel, errg
}

func TestInitializerSuccess(t *testing.T) {
	t.Parallel()

	pool, cancel, errg := startPool(t)
	defer func() {
		cancel()
		_ = errg.Wait()
	}()

	ini := NewInitializer()
	started := make(chan struct{})
	release := make(chan struct{})
	runs := 0
	initFunc := func(ctx context.Context) error {
		runs++
		close(started)
		<-release
		return nil
	}

	done, err := ini.TryInitialize(context.Background(), initFunc, pool)
	require.NoError(t, err)
	require.False(t, done)
	<-started

	// Repeated polls while the task runs stay pending and never resubmit.
	done, err = ini.TryInitialize(context.Background(), initFunc, pool)
	require.NoError(t, err)
	require.False(t, done)

	close(release)
	require.Eventually(t, func() bool {
		done, err := ini.TryInitialize(context.Background(), initFunc, pool)
		return done && err == nil
	}, time.Second*5, time.Millisecond*10)
	require.Equal(t, 1, runs)
}

func TestInitializerFailure(t *testing.T) {
	t.Parallel()

	pool, cancel, errg := startPool(t)
	defer func() {
		cancel()
		_ = errg.Wait()
	}()

	ini := NewInitializer()
	initFunc := func(ctx context.Context) error {
		return errors.New("bring-up failed")
	}

	_, _ = ini.TryInitialize(context.Background(), initFunc, pool)
	require.Eventually(t, func() bool {
		done, err := ini.TryInitialize(context.Background(), initFunc, pool)
		return !done && err != nil
	}, time.Second*5, time.Millisecond*10)
}

func TestInitializerTerminate(t *testing.T) {
	t.Parallel()

	pool, cancel, errg := startPool(t)
	defer func() {
		cancel()
		_ = errg.Wait()
	}()

	ini := NewInitializer()
	started := make(chan struct{})
	initFunc := func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	}

	done, err := ini.TryInitialize(context.Background(), initFunc, pool)
	require.NoError(t, err)
	require.False(t, done)
	<-started

	// Terminate cancels the task and resets, so a fresh cycle can start.
	ini.Terminate()
	done, err = ini.TryInitialize(context.Background(), func(ctx context.Context) error {
		return nil
	}, pool)
	require.False(t, done)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		done, err := ini.TryInitialize(context.Background(), nil, pool)
		return done && err == nil
	}, time.Second*5, time.Millisecond*10)
}
