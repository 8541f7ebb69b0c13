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

package ring

import "sync/atomic"

// LightWriter is the non-blocking producer half of the ring: it hands out
// a contiguous writable slice and commits a prefix of it. All operations
// are lock-free and, when the platform's 32-bit atomics are lock-free,
// wait-free. Ported from
// original_source/include/shm_stream/details/light_bytes_queue.h
// (light_bytes_queue_writer), with grpc-go's
// internal/transport/shm/ringbuf.go (Ring/ReserveWrite/CommitWrite)
// supplying the Go method-naming convention.
//
// Exactly one goroutine may call methods on a LightWriter at a time.
type LightWriter struct {
	peerRead  *uint32 // reader-owned index, read-only from here
	selfWrite *uint32 // writer-owned index, published on Commit

	buf      []byte
	size     uint32
	w        uint32 // cached next-write index
	reserved uint32
}

// NewLightWriter constructs a writer view over indices and a mutable
// buffer span. It does not reset indices: they may already be in use by
// a live peer from a prior attach.
func NewLightWriter(indices IndexPair, buffer []byte) (*LightWriter, error) {
	size := uint32(len(buffer))
	if err := validateBufferSize(size); err != nil {
		return nil, err
	}
	return &LightWriter{
		peerRead:  indices.Reader(),
		selfWrite: indices.Writer(),
		buf:       buffer,
		size:      size,
		w:         atomic.LoadUint32(indices.Writer()),
	}, nil
}

// IsAlwaysLockFree reports whether the 32-bit atomics backing the ring
// are always lock-free on this build target. Restored from the
// original's is_always_lock_free() static query; on every platform the Go
// toolchain supports, 32-bit atomics are lock-free, so this always
// returns true; it is kept as a method rather than a package-level
// constant for parity with the source it was ported from.
func (w *LightWriter) IsAlwaysLockFree() bool { return true }

// Available returns a snapshot of the free capacity, in bytes. The
// snapshot carries no data dependency and is only used to size a
// prospective reservation.
func (w *LightWriter) Available() uint32 {
	r := atomic.LoadUint32(w.peerRead)
	return w.freeFrom(r)
}

func (w *LightWriter) freeFrom(r uint32) uint32 {
	if r <= w.w {
		r += w.size
	}
	return r - w.w - 1
}

// TryReserve hands out up to want bytes of contiguous, writer-owned
// buffer space starting at the current write position. It never blocks
// and never fails: under contention or when the ring is full it returns
// a shorter or empty slice. The returned slice is only valid until the
// next call to Commit.
//
// want may legally exceed the slice's eventual length: the ring is
// circular and reservations never wrap, so a reservation can be shorter
// than Available() even when the two halves are not racing.
func (w *LightWriter) TryReserve(want uint32) []byte {
	r := atomic.LoadUint32(w.peerRead)
	contiguous := w.reservableSize(r)
	n := want
	if contiguous < n {
		n = contiguous
	}
	w.reserved = n
	return w.buf[w.w : w.w+n]
}

// TryReserveMax is TryReserve(MaxSize()), matching the original's default
// argument for "reserve as much as possible".
func (w *LightWriter) TryReserveMax() []byte {
	return w.TryReserve(MaxSize())
}

func (w *LightWriter) reservableSize(r uint32) uint32 {
	switch {
	case w.w < r:
		return r - w.w - 1
	case r == 0:
		// Reserve one fewer byte here so a post-commit w never equals r,
		// which would be indistinguishable from "empty".
		return w.size - w.w - 1
	default:
		return w.size - w.w
	}
}

// Commit publishes the first n bytes of the outstanding reservation as
// ready for the reader to observe. Commit(0) is a no-op that leaves the
// reservation outstanding. n must not exceed the length returned by the
// preceding TryReserve; violating this is a programmer error.
func (w *LightWriter) Commit(n uint32) {
	if n == 0 {
		return
	}
	if n > w.reserved {
		panic("ring: commit exceeds reserved size")
	}
	w.w += n
	if w.w == w.size {
		w.w = 0
	}
	atomic.StoreUint32(w.selfWrite, w.w)
	w.reserved = 0
}

// LightReader is the non-blocking consumer half of the ring. Ported from
// light_bytes_queue_reader in the same header as LightWriter.
//
// Exactly one goroutine may call methods on a LightReader at a time.
type LightReader struct {
	peerWrite *uint32
	selfRead  *uint32

	buf      []byte
	size     uint32
	r        uint32
	reserved uint32
}

// NewLightReader constructs a reader view symmetric to NewLightWriter.
func NewLightReader(indices IndexPair, buffer []byte) (*LightReader, error) {
	size := uint32(len(buffer))
	if err := validateBufferSize(size); err != nil {
		return nil, err
	}
	return &LightReader{
		peerWrite: indices.Writer(),
		selfRead:  indices.Reader(),
		buf:       buffer,
		size:      size,
		r:         atomic.LoadUint32(indices.Reader()),
	}, nil
}

// IsAlwaysLockFree mirrors LightWriter.IsAlwaysLockFree.
func (r *LightReader) IsAlwaysLockFree() bool { return true }

// Available returns a snapshot of the number of bytes ready to read.
func (r *LightReader) Available() uint32 {
	w := atomic.LoadUint32(r.peerWrite)
	if w < r.r {
		w += r.size
	}
	return w - r.r
}

// TryReserve hands out up to want bytes of contiguous, reader-owned
// buffer space starting at the current read position. Never blocks,
// never fails.
func (r *LightReader) TryReserve(want uint32) []byte {
	w := atomic.LoadUint32(r.peerWrite)
	contiguous := r.reservableSize(w)
	n := want
	if contiguous < n {
		n = contiguous
	}
	r.reserved = n
	return r.buf[r.r : r.r+n]
}

// TryReserveMax is TryReserve(MaxSize()).
func (r *LightReader) TryReserveMax() []byte {
	return r.TryReserve(MaxSize())
}

func (r *LightReader) reservableSize(w uint32) uint32 {
	if r.r <= w {
		return w - r.r
	}
	return r.size - r.r
}

// Commit releases the first n bytes of the outstanding reservation back
// to the writer. Commit(0) is a no-op that leaves the reservation
// outstanding. n must not exceed the length returned by the preceding
// TryReserve.
func (r *LightReader) Commit(n uint32) {
	if n == 0 {
		return
	}
	if n > r.reserved {
		panic("ring: commit exceeds reserved size")
	}
	r.r += n
	if r.r == r.size {
		r.r = 0
	}
	atomic.StoreUint32(r.selfRead, r.r)
	r.reserved = 0
}
