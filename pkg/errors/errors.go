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
	"github.com/pingcap/errors"
)

// errors
var (
	// tokenizer related errors
	ErrTokenizeFileRead = errors.Normalize(
		"read token source file %s",
		errors.RFCCodeText("WM:ErrTokenizeFileRead"),
	)

	// worker pool related errors
	ErrAsyncPoolExited = errors.Normalize(
		"the async worker pool has exited. Report a bug if seen externally",
		errors.RFCCodeText("WM:ErrAsyncPoolExited"),
	)

	// beat store related errors
	ErrStoreNewClientFail = errors.Normalize(
		"create beat store client fail",
		errors.RFCCodeText("WM:ErrStoreNewClientFail"),
	)
	ErrStoreInitializeFail = errors.Normalize(
		"initialize beat store schema fail",
		errors.RFCCodeText("WM:ErrStoreInitializeFail"),
	)
	ErrStoreClosed = errors.Normalize(
		"beat store is closed",
		errors.RFCCodeText("WM:ErrStoreClosed"),
	)

	// server related errors
	ErrInvalidServerOption = errors.Normalize(
		"invalid server option, %s",
		errors.RFCCodeText("WM:ErrInvalidServerOption"),
	)
	ErrBeatBufferAtLimit = errors.Normalize(
		"the beat buffer is at its configured limit of %d entries",
		errors.RFCCodeText("WM:ErrBeatBufferAtLimit"),
	)
	ErrServerNotReady = errors.Normalize(
		"the server is still initializing",
		errors.RFCCodeText("WM:ErrServerNotReady"),
	)
)
