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

package errors

import (
	"context"

	"github.com/pingcap/errors"
)

// WrapError wraps an internal error into a normalized error. It returns
// nil if the internal error is nil.
func WrapError(rfcError *errors.Error, err error, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return rfcError.Wrap(err).GenWithStackByArgs(args...)
}

// IsRetryableError checks whether an operation that produced err is worth
// retrying. Context cancellation and deadline expiry are terminal.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}
	switch errors.Cause(err) {
	case context.Canceled, context.DeadlineExceeded:
		return false
	}
	return true
}

// Re-exports so callers only import this package.
var (
	New         = errors.New
	Errorf      = errors.Errorf
	Annotate    = errors.Annotate
	Annotatef   = errors.Annotatef
	Trace       = errors.Trace
	Cause       = errors.Cause
	Unwrap      = errors.Unwrap
	WithMessage = errors.WithMessage
)
