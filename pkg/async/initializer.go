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
	"sync"

	"github.com/pingcap/log"
	"github.com/wordmill/wordmill/pkg/errors"
	"github.com/wordmill/wordmill/pkg/workerpool"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Initializer runs a one-shot initialization task on a worker pool and
// exposes a polling contract over it: callers keep invoking TryInitialize
// and observe pending, done, or failed.
type Initializer struct {
	// state related fields
	initialized  *atomic.Bool
	initializing *atomic.Bool
	initError    *atomic.Error

	// func to cancel the in-flight initialization
	cancelInitialize context.CancelFunc
	initialWaitGroup sync.WaitGroup
}

// NewInitializer creates a new Initializer.
func NewInitializer() *Initializer {
	return &Initializer{
		initialized:  atomic.NewBool(false),
		initializing: atomic.NewBool(false),
		initError:    atomic.NewError(nil),
	}
}

// TryInitialize polls the one-shot task.
// The first call submits initFunc to the pool; every call reports the
// current state: (true, nil) once initFunc succeeded, (false, nil) while it
// is still running, and (false, err) if it failed or could not be
// submitted. initFunc runs at most once. It's not thread-safe.
func (i *Initializer) TryInitialize(ctx context.Context,
	initFunc func(ctx context.Context) error,
	pool workerpool.AsyncPool,
) (bool, error) {
	if i.initialized.Load() {
		return true, nil
	}
	if i.initializing.CompareAndSwap(false, true) {
		initialCtx, cancelInitialize := context.WithCancel(ctx)
		i.initialWaitGroup.Add(1)
		i.cancelInitialize = cancelInitialize
		log.Info("submit one-shot initializer task to the worker pool")
		err := pool.Go(initialCtx, func() {
			defer i.initialWaitGroup.Done()
			if err := initFunc(initialCtx); err != nil {
				i.initError.Store(errors.Trace(err))
			} else {
				i.initialized.Store(true)
			}
		})
		if err != nil {
			log.Error("failed to submit one-shot initializer task to the worker pool", zap.Error(err))
			i.initialWaitGroup.Done()
			return false, errors.Trace(err)
		}
	}
	if err := i.initError.Load(); err != nil {
		return false, errors.Trace(err)
	}
	return i.initialized.Load(), nil
}

// Terminate cancels the initialization if it is in flight and waits for it
// to finish, then resets the state so the Initializer can be reused.
// It's not thread-safe.
func (i *Initializer) Terminate() {
	if i.initializing.Load() {
		if i.cancelInitialize != nil {
			i.cancelInitialize()
		}
		i.initialWaitGroup.Wait()
	}
	i.initializing.Store(false)
	i.initialized.Store(false)
	i.initError.Store(nil)
}
