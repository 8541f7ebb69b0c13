/*
 * Copyright 2024 gRPC authors.
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
 */

// Package shmtest provides helpers shared across this module's package
// tests: unique stream names and bounded-wait assertions. Ported from
// grpc-go's internal/transport/shm/test_helpers.go
// (createTestSegment/createTestSegmentWithName), generalized from a
// fixed two-ring segment shape to this module's single-region-per-stream
// shape.
package shmtest

import (
	"fmt"
	"testing"
	"time"
)

// UniqueName returns a stream name derived from the running test's name
// and the current time, so parallel test runs never collide on the same
// backing shared-memory region. Mirrors grpc-go's
// internal/transport/shm test helpers'
// fmt.Sprintf("test-ring-basics-%d", time.Now().UnixNano()) idiom.
func UniqueName(t *testing.T) string {
	t.Helper()
	return fmt.Sprintf("%s-%d", t.Name(), time.Now().UnixNano())
}

// MustNotBlock runs fn in a goroutine and fails t if it has not
// returned within d. Used to assert that a call expected to be
// non-blocking (or to unblock promptly once a peer acts) actually does.
func MustNotBlock(t *testing.T, d time.Duration, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		fn()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(d):
		t.Fatalf("operation did not complete within %s", d)
	}
}
