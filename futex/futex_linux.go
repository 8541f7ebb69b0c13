//go:build linux && (amd64 || arm64)

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
	"syscall"
	"unsafe"
)

// Linux futex operations, without FUTEX_PRIVATE_FLAG: the addresses this
// package is handed may live in a MAP_SHARED region that a peer process
// (or another mapping in this process) reaches at a different virtual
// address, and only shared futexes are keyed by the underlying page so
// that a wake through one mapping reaches a waiter on another. Ported
// from grpc-go's internal/transport/shm/shm_futex_linux.go.
const (
	futexWaitShared = 0 // FUTEX_WAIT
	futexWakeShared = 1 // FUTEX_WAKE
)

// pollInterval bounds how long a single FUTEX_WAIT syscall blocks when a
// context is in play, so that ctx cancellation is noticed promptly
// without spinning.
const pollInterval = 20 * 1e6 // 20ms in nanoseconds

// Wait blocks while the value at addr equals expected, then returns the
// value observed when it stopped blocking. A spurious wakeup (the value
// still equals expected) simply re-enters the syscall; callers do not
// need to loop themselves.
func Wait(addr *uint32, expected uint32) uint32 {
	for {
		v := atomic.LoadUint32(addr)
		if v != expected {
			return v
		}
		futexWait(addr, expected)
	}
}

// WaitContext is Wait with deadline/cancellation support. It returns
// context.Cause(ctx) (ctx.Err() if no cause was set) once ctx is done,
// provided the value still equals expected at that point.
func WaitContext(ctx context.Context, addr *uint32, expected uint32) (uint32, error) {
	for {
		v := atomic.LoadUint32(addr)
		if v != expected {
			return v, nil
		}
		if err := ctx.Err(); err != nil {
			return 0, context.Cause(ctx)
		}
		futexWaitTimeout(addr, expected, pollInterval)
	}
}

// WakeAll wakes every waiter currently parked on addr. It never fails in
// practice; the only possible error is a kernel-reported EINVAL from a
// misaligned address, which cannot happen given this package's callers.
func WakeAll(addr *uint32) (int, error) {
	return futexWake(addr, int(^uint32(0)>>1))
}

func futexWait(addr *uint32, val uint32) {
	syscall.Syscall6(
		syscall.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		futexWaitShared,
		uintptr(val),
		0,
		0,
		0,
	)
}

func futexWaitTimeout(addr *uint32, val uint32, timeoutNs int64) {
	var ts syscall.Timespec
	ts.Sec = timeoutNs / 1e9
	ts.Nsec = timeoutNs % 1e9
	syscall.Syscall6(
		syscall.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		futexWaitShared,
		uintptr(val),
		uintptr(unsafe.Pointer(&ts)),
		0,
		0,
	)
}

func futexWake(addr *uint32, n int) (int, error) {
	r1, _, errno := syscall.RawSyscall6(
		syscall.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		futexWakeShared,
		uintptr(n),
		0,
		0,
		0,
	)
	if errno != 0 {
		return 0, errno
	}
	return int(r1), nil
}
