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
	"sync"
	"sync/atomic"

	cerror "github.com/wordmill/wordmill/pkg/errors"
	"github.com/wordmill/wordmill/pkg/retry"
	"golang.org/x/sync/errgroup"
)

const (
	submitBackoffBaseInMs = 1
	submitMaxTries        = 25
	workerInputChSize     = 12800
)

type defaultAsyncPoolImpl struct {
	workers      []*asyncWorker
	nextWorkerID int32
	isRunning    int32
	runningLock  sync.RWMutex
}

// NewDefaultAsyncPool creates a new AsyncPool that uses the default
// implementation.
func NewDefaultAsyncPool(numWorkers int) AsyncPool {
	return &defaultAsyncPoolImpl{
		workers: make([]*asyncWorker, numWorkers),
	}
}

func (p *defaultAsyncPoolImpl) Go(ctx context.Context, f func()) error {
	if p.doGo(ctx, f) == nil {
		return nil
	}

	// The pool may be between runs. Retry the submission for a while
	// before giving up.
	err := retry.Do(ctx, func() error {
		return cerror.Trace(p.doGo(ctx, f))
	}, retry.WithBackoffBaseDelay(submitBackoffBaseInMs),
		retry.WithMaxTries(submitMaxTries),
		retry.WithIsRetryableErr(func(err error) bool {
			return cerror.IsRetryableError(err) && cerror.ErrAsyncPoolExited.Equal(err)
		}))
	return cerror.Trace(err)
}

func (p *defaultAsyncPoolImpl) doGo(ctx context.Context, f func()) error {
	p.runningLock.RLock()
	defer p.runningLock.RUnlock()

	if atomic.LoadInt32(&p.isRunning) == 0 {
		return cerror.ErrAsyncPoolExited.GenWithStackByArgs()
	}

	task := &asyncTask{f: f}
	worker := p.workers[int(atomic.AddInt32(&p.nextWorkerID, 1))%len(p.workers)]

	worker.chLock.RLock()
	defer worker.chLock.RUnlock()

	if atomic.LoadInt32(&worker.isClosed) == 1 {
		return cerror.ErrAsyncPoolExited.GenWithStackByArgs()
	}

	select {
	case <-ctx.Done():
		return cerror.Trace(ctx.Err())
	case worker.inputCh <- task:
	}

	return nil
}

func (p *defaultAsyncPoolImpl) Run(ctx context.Context) error {
	p.prepare()
	errg := errgroup.Group{}

	p.runningLock.Lock()
	atomic.StoreInt32(&p.isRunning, 1)
	p.runningLock.Unlock()

	defer func() {
		p.runningLock.Lock()
		atomic.StoreInt32(&p.isRunning, 0)
		p.runningLock.Unlock()
	}()

	errCh := make(chan error, len(p.workers))
	defer close(errCh)

	for _, worker := range p.workers {
		workerFinal := worker
		errg.Go(func() error {
			err := workerFinal.run()
			if err != nil && cerror.ErrAsyncPoolExited.NotEqual(cerror.Cause(err)) {
				errCh <- err
			}
			return nil
		})
	}

	errg.Go(func() error {
		var err error
		select {
		case <-ctx.Done():
			err = ctx.Err()
		case err = <-errCh:
		}

		for _, worker := range p.workers {
			worker.close()
		}

		return err
	})

	return cerror.Trace(errg.Wait())
}

func (p *defaultAsyncPoolImpl) prepare() {
	for i := range p.workers {
		p.workers[i] = newAsyncWorker()
	}
}

type asyncTask struct {
	f func()
}

type asyncWorker struct {
	inputCh  chan *asyncTask
	isClosed int32
	chLock   sync.RWMutex
}

func newAsyncWorker() *asyncWorker {
	return &asyncWorker{inputCh: make(chan *asyncTask, workerInputChSize)}
}

func (w *asyncWorker) run() error {
	for {
		task := <-w.inputCh
		if task == nil {
			return cerror.ErrAsyncPoolExited.GenWithStackByArgs()
		}
		task.f()
	}
}

func (w *asyncWorker) close() {
	if atomic.SwapInt32(&w.isClosed, 1) == 1 {
		return
	}

	w.chLock.Lock()
	defer w.chLock.Unlock()

	close(w.inputCh)
}
