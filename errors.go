/*
 *
 * Copyright 2025 gRPC authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 */

package shmstream

import (
	"errors"
	"fmt"

	"github.com/MusicScience37/shm-stream-go/ring"
	"github.com/MusicScience37/shm-stream-go/shm"
)

// Code is the four-valued error code surfaced at the external boundary,
// following grpc-go's style (see internal/transport/shm) of keeping
// sentinel errors as the primary Go-idiomatic signal while still giving
// C-ABI-style callers (or callers translating this package's errors
// into another boundary) a stable numeric code and exact message string
// to switch on.
type Code int

const (
	// CodeSuccess is never itself returned as an error; it exists only
	// so the numeric space matches spec's four-valued enum.
	CodeSuccess Code = 0
	// CodeInvalidArgument covers out-of-range buffer sizes and empty
	// names. A commit of more bytes than were reserved is not reported
	// through a Code: it panics.
	CodeInvalidArgument Code = 1
	// CodeFailedToOpen covers the OS refusing to create or open the
	// backing region.
	CodeFailedToOpen Code = 2
	// CodeInternal covers any other unclassified OS-layer failure.
	CodeInternal Code = 3
)

// ErrorString returns the exact message string for code, or
// "Invalid error code." for any value outside the four defined codes.
func ErrorString(code Code) string {
	switch code {
	case CodeSuccess:
		return "Success."
	case CodeInvalidArgument:
		return "Invalid argument."
	case CodeFailedToOpen:
		return "Failed to create or open a stream."
	case CodeInternal:
		return "Internal error."
	default:
		return "Invalid error code."
	}
}

// StreamError is the error type every fallible operation in this
// package returns. It carries the external-boundary Code alongside the
// underlying Go error it was classified from.
type StreamError struct {
	Code Code
	Err  error
}

func (e *StreamError) Error() string {
	if e.Err == nil {
		return ErrorString(e.Code)
	}
	return fmt.Sprintf("%s %v", ErrorString(e.Code), e.Err)
}

// Unwrap exposes the underlying error for errors.Is/errors.As.
func (e *StreamError) Unwrap() error { return e.Err }

// Sentinel errors usable with errors.Is against any StreamError this
// package returns.
var (
	ErrInvalidArgument = errors.New("shmstream: invalid argument")
	ErrFailedToOpen    = errors.New("shmstream: failed to create or open a stream")
	ErrInternal        = errors.New("shmstream: internal error")
)

// classify wraps an error from package shm or package ring into a
// *StreamError carrying the matching Code, defaulting to CodeInternal
// for anything unrecognized.
func classify(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, shm.ErrInvalidArgument), errors.Is(err, ring.ErrInvalidArgument):
		return &StreamError{Code: CodeInvalidArgument, Err: fmt.Errorf("%w: %v", ErrInvalidArgument, err)}
	case errors.Is(err, shm.ErrFailedToOpen):
		return &StreamError{Code: CodeFailedToOpen, Err: fmt.Errorf("%w: %v", ErrFailedToOpen, err)}
	default:
		return &StreamError{Code: CodeInternal, Err: fmt.Errorf("%w: %v", ErrInternal, err)}
	}
}
