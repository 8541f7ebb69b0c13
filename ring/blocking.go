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

import (
	"context"
	"sync/atomic"

	"github.com/MusicScience37/shm-stream-go/futex"
)

// BlockingWriter adds blocking wait, stop, and sentinel propagation on
// top of the light writer's try-reserve/commit. Ported from
// original_source/include/shm_stream/details/blocking_bytes_queue.h
// (blocking_bytes_queue_writer); the event-loop shape (load, compare,
// futex-wait, re-check) is carried from grpc-go's
// internal/transport/shm/ring.go (WriteBlocking), adapted to wait
// directly on the peer's index word instead of a dedicated data/space
// sequence counter, per the sentinel design note: "do not introduce a
// separate stop flag".
//
// Exactly one goroutine may call the writer-only methods (Available,
// Wait, WaitContext, TryReserve, WaitReserve, Commit) at a time; Stop and
// IsStopped are safe from any goroutine, concurrently with everything
// else.
type BlockingWriter struct {
	peerRead  *uint32
	selfWrite *uint32

	buf      []byte
	size     uint32
	w        uint32
	reserved uint32
}

// NewBlockingWriter constructs a writer view over indices and a mutable
// buffer span, symmetric to NewLightWriter. If the writer's cached index
// is observed as Stop (a prior session stopped the region and this
// process is re-attaching), the cache starts at 0; the first real
// operation will re-observe Stop from the peer and behave accordingly.
func NewBlockingWriter(indices IndexPair, buffer []byte) (*BlockingWriter, error) {
	size := uint32(len(buffer))
	if err := validateBufferSize(size); err != nil {
		return nil, err
	}
	w := atomic.LoadUint32(indices.Writer())
	if w == Stop {
		w = 0
	}
	return &BlockingWriter{
		peerRead:  indices.Reader(),
		selfWrite: indices.Writer(),
		buf:       buffer,
		size:      size,
		w:         w,
	}, nil
}

// Available is Available from the light protocol, except that an
// observed Stop on the peer index reports zero free capacity.
func (w *BlockingWriter) Available() uint32 {
	return w.availableFrom(atomic.LoadUint32(w.peerRead))
}

func (w *BlockingWriter) availableFrom(r uint32) uint32 {
	if r == Stop {
		return 0
	}
	if r <= w.w {
		r += w.size
	}
	return r - w.w - 1
}

// Wait blocks until the reader has freed at least one byte or the region
// is stopped, then returns the newly available capacity (zero if
// stopped).
//
// The park condition is "the reader has not moved past my current write
// position plus one", i.e. zero free capacity given w's own cached write
// index. When that cached index sits at the last legal slot (size-1),
// the naive unexpected value w_local+1 would equal size, a value the
// reader's index never takes, which would make Wait return immediately
// even on a full ring; waitLoopImpl wraps that value back to 0 to avoid
// exactly this, matching the explicit guard in the source this was
// ported from.
func (w *BlockingWriter) Wait() uint32 {
	n, _ := w.waitLoopImpl(context.Background(), false)
	return n
}

// WaitContext is Wait with deadline/cancellation support: it returns
// context.Cause(ctx) (ctx.Err() if no cause was set) if ctx is done
// before the peer commits or stops. This has no counterpart in the
// original C++ library but mirrors grpc-go's
// internal/transport/shm/ring.go (WriteBlockingContext).
func (w *BlockingWriter) WaitContext(ctx context.Context) (uint32, error) {
	return w.waitLoopImpl(ctx, true)
}

func (w *BlockingWriter) waitLoopImpl(ctx context.Context, wantErr bool) (uint32, error) {
	unexpected := w.w + 1
	if unexpected == w.size {
		unexpected = 0
	}

	r := atomic.LoadUint32(w.peerRead)
	for r == unexpected {
		if wantErr {
			nr, err := futex.WaitContext(ctx, w.peerRead, unexpected)
			if err != nil {
				return 0, err
			}
			r = nr
		} else {
			r = futex.Wait(w.peerRead, unexpected)
		}
	}
	return w.availableFrom(r), nil
}

// Stop atomically marks the region as permanently stopped and wakes any
// blocked peer on either index. Safe from any goroutine, concurrently
// with any other operation on either half, and idempotent.
func (w *BlockingWriter) Stop() {
	atomic.StoreUint32(w.peerRead, Stop)
	futex.WakeAll(w.peerRead)
	atomic.StoreUint32(w.selfWrite, Stop)
	futex.WakeAll(w.selfWrite)
}

// IsStopped reports whether either index currently holds Stop.
func (w *BlockingWriter) IsStopped() bool {
	return atomic.LoadUint32(w.peerRead) == Stop || atomic.LoadUint32(w.selfWrite) == Stop
}

// TryReserve is TryReserve from the light protocol, except that an
// observed Stop on the peer index yields an empty slice.
func (w *BlockingWriter) TryReserve(want uint32) []byte {
	r := atomic.LoadUint32(w.peerRead)
	if r == Stop {
		w.reserved = 0
		return w.buf[w.w:w.w]
	}
	contiguous := w.reservableSize(r)
	n := want
	if contiguous < n {
		n = contiguous
	}
	w.reserved = n
	return w.buf[w.w : w.w+n]
}

// TryReserveMax is TryReserve(MaxSize()).
func (w *BlockingWriter) TryReserveMax() []byte {
	return w.TryReserve(MaxSize())
}

func (w *BlockingWriter) reservableSize(r uint32) uint32 {
	switch {
	case w.w < r:
		return r - w.w - 1
	case r == 0:
		return w.size - w.w - 1
	default:
		return w.size - w.w
	}
}

// WaitReserve is Wait followed by TryReserve(want); if the region is
// stopped it returns an empty slice without blocking further.
func (w *BlockingWriter) WaitReserve(want uint32) []byte {
	w.Wait()
	return w.TryReserve(want)
}

// WaitReserveMax is WaitReserve(MaxSize()).
func (w *BlockingWriter) WaitReserveMax() []byte {
	return w.WaitReserve(MaxSize())
}

// Commit is Commit from the light protocol, except that publication uses
// an atomic exchange so a concurrent Stop is never silently overwritten:
// if the previous value of the writer's own index was Stop, Commit
// re-applies Stop to both indices before returning. After publishing, it
// wakes any goroutine blocked in the reader's Wait.
func (w *BlockingWriter) Commit(n uint32) {
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
	old := atomic.SwapUint32(w.selfWrite, w.w)
	if old == Stop {
		w.Stop()
	}
	futex.WakeAll(w.selfWrite)
	w.reserved = 0
}

// BlockingReader is the consumer counterpart of BlockingWriter, ported
// from blocking_bytes_queue_reader in the same header.
type BlockingReader struct {
	peerWrite *uint32
	selfRead  *uint32

	buf      []byte
	size     uint32
	r        uint32
	reserved uint32
}

// NewBlockingReader constructs a reader view symmetric to
// NewBlockingWriter.
func NewBlockingReader(indices IndexPair, buffer []byte) (*BlockingReader, error) {
	size := uint32(len(buffer))
	if err := validateBufferSize(size); err != nil {
		return nil, err
	}
	r := atomic.LoadUint32(indices.Reader())
	if r == Stop {
		r = 0
	}
	return &BlockingReader{
		peerWrite: indices.Writer(),
		selfRead:  indices.Reader(),
		buf:       buffer,
		size:      size,
		r:         r,
	}, nil
}

// Available is Available from the light protocol, except that an
// observed Stop on the peer index reports zero bytes available.
func (r *BlockingReader) Available() uint32 {
	return r.availableFrom(atomic.LoadUint32(r.peerWrite))
}

func (r *BlockingReader) availableFrom(w uint32) uint32 {
	if w == Stop {
		return 0
	}
	if w < r.r {
		w += r.size
	}
	return w - r.r
}

// Wait blocks until the writer has published at least one byte or the
// region is stopped, then returns the newly available byte count (zero
// if stopped). The park condition is "the writer has not moved past my
// current read position", i.e. the writer's index still equals what this
// reader last observed.
func (r *BlockingReader) Wait() uint32 {
	n, _ := r.waitLoopImpl(context.Background(), false)
	return n
}

// WaitContext is Wait with deadline/cancellation support.
func (r *BlockingReader) WaitContext(ctx context.Context) (uint32, error) {
	return r.waitLoopImpl(ctx, true)
}

func (r *BlockingReader) waitLoopImpl(ctx context.Context, wantErr bool) (uint32, error) {
	unexpected := r.r

	w := atomic.LoadUint32(r.peerWrite)
	for w == unexpected {
		if wantErr {
			nw, err := futex.WaitContext(ctx, r.peerWrite, unexpected)
			if err != nil {
				return 0, err
			}
			w = nw
		} else {
			w = futex.Wait(r.peerWrite, unexpected)
		}
	}
	return r.availableFrom(w), nil
}

// Stop is Stop from the writer side; either half may call it.
func (r *BlockingReader) Stop() {
	atomic.StoreUint32(r.selfRead, Stop)
	futex.WakeAll(r.selfRead)
	atomic.StoreUint32(r.peerWrite, Stop)
	futex.WakeAll(r.peerWrite)
}

// IsStopped reports whether either index currently holds Stop.
func (r *BlockingReader) IsStopped() bool {
	return atomic.LoadUint32(r.selfRead) == Stop || atomic.LoadUint32(r.peerWrite) == Stop
}

// TryReserve is TryReserve from the light protocol, except that an
// observed Stop on the peer index yields an empty slice.
func (r *BlockingReader) TryReserve(want uint32) []byte {
	w := atomic.LoadUint32(r.peerWrite)
	if w == Stop {
		r.reserved = 0
		return r.buf[r.r:r.r]
	}
	contiguous := r.reservableSize(w)
	n := want
	if contiguous < n {
		n = contiguous
	}
	r.reserved = n
	return r.buf[r.r : r.r+n]
}

// TryReserveMax is TryReserve(MaxSize()).
func (r *BlockingReader) TryReserveMax() []byte {
	return r.TryReserve(MaxSize())
}

func (r *BlockingReader) reservableSize(w uint32) uint32 {
	if r.r <= w {
		return w - r.r
	}
	return r.size - r.r
}

// WaitReserve is Wait followed by TryReserve(want); if the region is
// stopped it returns an empty slice without blocking further.
func (r *BlockingReader) WaitReserve(want uint32) []byte {
	r.Wait()
	return r.TryReserve(want)
}

// WaitReserveMax is WaitReserve(MaxSize()).
func (r *BlockingReader) WaitReserveMax() []byte {
	return r.WaitReserve(MaxSize())
}

// Commit is Commit from the light protocol, except that publication uses
// an atomic exchange so a concurrent Stop is never silently overwritten,
// and it wakes any goroutine blocked in the writer's Wait.
func (r *BlockingReader) Commit(n uint32) {
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
	old := atomic.SwapUint32(r.selfRead, r.r)
	if old == Stop {
		r.Stop()
	}
	futex.WakeAll(r.selfRead)
	r.reserved = 0
}
