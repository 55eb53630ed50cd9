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

package retry

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/wordmill/wordmill/pkg/errors"
)

// Do runs the operation, retrying on failure with exponential backoff and
// full jitter until it succeeds, becomes non-retryable, runs out of tries,
// or the context ends.
func Do(ctx context.Context, operation func() error, opts ...Option) error {
	retryOption := setOptions(opts...)
	return run(ctx, operation, retryOption)
}

func setOptions(opts ...Option) *retryOptions {
	retryOption := newRetryOptions()
	for _, opt := range opts {
		opt(retryOption)
	}
	return retryOption
}

func run(ctx context.Context, op func() error, retryOption *retryOptions) error {
	if err := ctx.Err(); err != nil {
		return errors.Trace(err)
	}

	var t *time.Timer
	var start time.Time
	try := uint64(0)
	backOff := time.Duration(0)
	for {
		err := op()
		if err == nil {
			return nil
		}

		if !retryOption.isRetryable(err) {
			return err
		}

		try++
		if try >= retryOption.maxTries {
			return errors.Annotatef(err, "retry exceeds max tries %d", retryOption.maxTries)
		}
		if retryOption.totalRetryDuration > 0 {
			if start.IsZero() {
				start = time.Now()
			} else if float64(time.Since(start).Milliseconds()) >= retryOption.totalRetryDuration {
				return errors.Annotatef(err, "retry exceeds total duration")
			}
		}

		backOff = getBackoffInMs(retryOption.backoffBaseInMs, retryOption.backoffCapInMs, float64(try))
		if t == nil {
			t = time.NewTimer(backOff)
			defer t.Stop()
		} else {
			t.Reset(backOff)
		}

		select {
		case <-ctx.Done():
			return errors.Trace(ctx.Err())
		case <-t.C:
		}
	}
}

// getBackoffInMs returns the duration to wait before the next try,
// capped exponential backoff with full jitter.
func getBackoffInMs(backoffBaseInMs, backoffCapInMs, try float64) time.Duration {
	temp := int64(math.Min(backoffCapInMs, backoffBaseInMs*math.Exp2(try)) / 2)
	if temp <= 0 {
		temp = 1
	}
	sleep := temp + rand.Int63n(temp)
	backOff := math.Min(backoffCapInMs, float64(rand.Int63n(sleep*3))+backoffBaseInMs)
	return time.Duration(backOff) * time.Millisecond
}
