//go:build !linux || !(amd64 || arm64)

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

package futex

import (
	"context"
	"sync/atomic"
	"time"
)

// This build has no native futex syscall (grpc-go's
// internal/transport/shm/shm_futex_stub.go simply returns ErrUnsupported
// here). Since the ring package's blocking flavor has no fallback of
// its own, an outright unsupported wait would make
// BlockingWriter/BlockingReader unusable on these platforms; instead
// this emulates the same wait/notify contract with short-interval
// polling. WakeAll is a no-op: there is nothing to signal, waiters will
// observe the new value on their next poll tick.
const pollInterval = 500 * time.Microsecond

// Wait blocks while the value at addr equals expected, polling at
// pollInterval, then returns the value observed when it stopped.
func Wait(addr *uint32, expected uint32) uint32 {
	for {
		if v := atomic.LoadUint32(addr); v != expected {
			return v
		}
		time.Sleep(pollInterval)
	}
}

// WaitContext is Wait with deadline/cancellation support.
func WaitContext(ctx context.Context, addr *uint32, expected uint32) (uint32, error) {
	t := time.NewTicker(pollInterval)
	defer t.Stop()
	for {
		if v := atomic.LoadUint32(addr); v != expected {
			return v, nil
		}
		select {
		case <-ctx.Done():
			return 0, context.Cause(ctx)
		case <-t.C:
		}
	}
}

// WakeAll is a no-op on this build: there are no parked waiters to
// signal, only pollers that will observe the new value within
// pollInterval regardless.
func WakeAll(addr *uint32) (int, error) {
	return 0, nil
}
