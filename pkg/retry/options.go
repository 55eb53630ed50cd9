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

const (
	// defaultBackoffBaseInMs is the initial backoff duration, in millisecond
	defaultBackoffBaseInMs = 10.0
	// defaultBackoffCapInMs is the max amount of backoff, in millisecond
	defaultBackoffCapInMs = 100.0
	defaultMaxTries       = 3
)

// Option configures a retry loop.
type Option func(*retryOptions)

// IsRetryableErr checks the error is safe to retry or not, eg. "context.Canceled" better not retry
type IsRetryableErr func(error) bool

type retryOptions struct {
	totalRetryDuration float64
	maxTries           uint64
	backoffBaseInMs    float64
	backoffCapInMs     float64
	isRetryable        IsRetryableErr
}

func newRetryOptions() *retryOptions {
	return &retryOptions{
		maxTries:        defaultMaxTries,
		backoffBaseInMs: defaultBackoffBaseInMs,
		backoffCapInMs:  defaultBackoffCapInMs,
		isRetryable:     func(error) bool { return true },
	}
}

// WithBackoffBaseDelay configures the initial delay, if delayInMs <= 0 it takes no effect
func WithBackoffBaseDelay(delayInMs int64) Option {
	return func(o *retryOptions) {
		if delayInMs > 0 {
			o.backoffBaseInMs = float64(delayInMs)
		}
	}
}

// WithBackoffMaxDelay configures the maximum delay, if delayInMs <= 0 it takes no effect
func WithBackoffMaxDelay(delayInMs int64) Option {
	return func(o *retryOptions) {
		if delayInMs > 0 {
			o.backoffCapInMs = float64(delayInMs)
		}
	}
}

// WithMaxTries configures maximum tries, if tries is 0 it takes no effect
func WithMaxTries(tries uint64) Option {
	return func(o *retryOptions) {
		if tries > 0 {
			o.maxTries = tries
		}
	}
}

// WithTotalRetryDuration configures the total retry duration, if d <= 0 it takes no effect
func WithTotalRetryDuration(d int64) Option {
	return func(o *retryOptions) {
		if d > 0 {
			o.totalRetryDuration = float64(d)
		}
	}
}

// WithIsRetryableErr configures the error should retry or not, if not set, retry by default
func WithIsRetryableErr(f IsRetryableErr) Option {
	return func(o *retryOptions) {
		if f != nil {
			o.isRetryable = f
		}
	}
}
