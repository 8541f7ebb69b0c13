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

// cacheLineSize is the assumed platform cache line size; see the
// "False sharing" design note: a tunable was considered and rejected as
// complexity without benefit.
const cacheLineSize = 64

// Header is the fixed-layout prefix of the shared region: two
// cache-line-isolated atomic indices plus the immutable buffer size,
// exactly three cache lines wide. Layout is bit-exact (see HeaderSize)
// so that a writer process and a reader process mapping the
// same bytes agree on offsets without any negotiation beyond the name.
//
// The indices are plain uint32 fields accessed exclusively through
// sync/atomic's package-level functions rather than atomic.Uint32,
// because the futex-equivalent wait/notify primitive in package futex
// needs a bare *uint32 address into shared memory (see grpc-go's
// internal/transport/shm/shm_futex_linux.go, whose SYS_FUTEX calls have
// the same requirement).
//
// Header must only ever be reached through an unsafe.Pointer cast over a
// mapped byte slice (see shm.Segment); it is never heap-allocated by this
// package.
type Header struct {
	w          uint32
	_          [cacheLineSize - 4]byte
	r          uint32
	_          [cacheLineSize - 4]byte
	bufferSize uint32
	_          [cacheLineSize - 4]byte
}

// HeaderSize is the fixed size in bytes of Header, i.e. three cache
// lines. The buffer area in shared memory begins immediately after.
const HeaderSize = 3 * cacheLineSize

// InitHeader zero-initializes the indices and publishes bufferSize. Only
// the process that creates a fresh region should call this; attaching
// processes must never call it, since doing so would clobber indices a
// peer may already be using (see the "Creation does not re-zero indices
// on attach" design note).
func InitHeader(h *Header, bufferSize uint32) {
	atomic.StoreUint32(&h.w, 0)
	atomic.StoreUint32(&h.r, 0)
	h.bufferSize = bufferSize
}

// BufferSize returns the buffer size recorded at creation time. It is
// immutable after creation and therefore read without synchronization
// beyond what the mapping itself provides.
func (h *Header) BufferSize() uint32 {
	return h.bufferSize
}

// IndexPair is the writer/reader-visible view of a Header's two atomic
// indices, ported from
// original_source/include/shm_stream/details/atomic_index_pair.h
// (atomic_index_pair_view), which separates the pair of atomics from the
// struct that owns their storage so that writer- and reader-side ring
// halves can each hold their own narrow view.
type IndexPair struct {
	w *uint32
	r *uint32
}

// NewIndexPair returns a view over a Header's indices.
func NewIndexPair(h *Header) IndexPair {
	return IndexPair{w: &h.w, r: &h.r}
}

// Writer returns the address of the writer-owned index.
func (p IndexPair) Writer() *uint32 { return p.w }

// Reader returns the address of the reader-owned index.
func (p IndexPair) Reader() *uint32 { return p.r }
