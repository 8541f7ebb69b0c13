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

package ring

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func newBlockingPair(t *testing.T, bufferSize uint32) (*BlockingWriter, *BlockingReader) {
	t.Helper()
	buf := make([]byte, bufferSize)
	var h Header
	InitHeader(&h, bufferSize)
	idx := NewIndexPair(&h)

	w, err := NewBlockingWriter(idx, buf)
	if err != nil {
		t.Fatalf("NewBlockingWriter: %v", err)
	}
	r, err := NewBlockingReader(idx, buf)
	if err != nil {
		t.Fatalf("NewBlockingReader: %v", err)
	}
	return w, r
}

func TestBlockingOpenReportsCapacity(t *testing.T) {
	// Scenario 1.
	w, r := newBlockingPair(t, 10)

	if got := w.Available(); got != 9 {
		t.Fatalf("writer.Available() = %d, want 9", got)
	}
	if w.IsStopped() || r.IsStopped() {
		t.Fatal("freshly opened region reports stopped")
	}
}

func TestBlockingWaitWakesOnCommit(t *testing.T) {
	// Scenario 4.
	w, r := newBlockingPair(t, 10)

	resultCh := make(chan []byte, 1)
	go func() {
		rs := r.WaitReserveMax()
		out := make([]byte, len(rs))
		copy(out, rs)
		r.Commit(uint32(len(rs)))
		resultCh <- out
	}()

	time.Sleep(20 * time.Millisecond)

	s := w.TryReserve(3)
	copy(s, []byte{1, 2, 3})
	w.Commit(3)

	select {
	case got := <-resultCh:
		if !bytes.Equal(got, []byte{1, 2, 3}) {
			t.Fatalf("reader observed %v, want [1 2 3]", got)
		}
	case <-time.After(time.Second):
		t.Fatal("reader did not wake within 1s of commit")
	}
}

func TestBlockingStopWakesWaiter(t *testing.T) {
	// Scenario 5.
	w, r := newBlockingPair(t, 10)

	resultCh := make(chan []byte, 1)
	go func() {
		rs := r.WaitReserveMax()
		resultCh <- rs
	}()

	time.Sleep(20 * time.Millisecond)
	w.Stop()

	select {
	case got := <-resultCh:
		if len(got) != 0 {
			t.Fatalf("reader got %v after stop, want empty", got)
		}
	case <-time.After(time.Second):
		t.Fatal("reader did not wake within 1s of stop")
	}

	if !r.IsStopped() || !w.IsStopped() {
		t.Fatal("IsStopped() should be true on both halves after stop")
	}
}

func TestBlockingFullBehavesCorrectly(t *testing.T) {
	// Scenario 6.
	w, r := newBlockingPair(t, 4)

	s := w.TryReserveMax()
	if len(s) != 3 {
		t.Fatalf("TryReserveMax length = %d, want 3", len(s))
	}
	w.Commit(3)

	if got := w.Available(); got != 0 {
		t.Fatalf("writer.Available() = %d, want 0", got)
	}
	if got := w.TryReserve(1); len(got) != 0 {
		t.Fatalf("TryReserve(1) on full ring returned %d bytes, want 0", len(got))
	}

	waitDone := make(chan uint32, 1)
	go func() {
		waitDone <- w.Wait()
	}()

	time.Sleep(20 * time.Millisecond)
	if rs := r.TryReserve(1); len(rs) != 1 {
		t.Fatalf("reader TryReserve(1) length = %d, want 1", len(rs))
	}
	r.Commit(1)

	select {
	case got := <-waitDone:
		if got != 1 {
			t.Fatalf("w.Wait() returned %d, want 1", got)
		}
	case <-time.After(time.Second):
		t.Fatal("writer Wait() did not return within 1s of reader commit")
	}
}

func TestBlockingStopIsIdempotent(t *testing.T) {
	// L3.
	w, r := newBlockingPair(t, 10)

	w.Stop()
	w.Stop()
	r.Stop()

	if !w.IsStopped() || !r.IsStopped() {
		t.Fatal("expected both halves stopped")
	}
	if got := w.Available(); got != 0 {
		t.Fatalf("Available() after stop = %d, want 0", got)
	}
	if got := w.Wait(); got != 0 {
		t.Fatalf("Wait() after stop = %d, want 0", got)
	}
}

func TestBlockingOperationsAfterStopAreEmpty(t *testing.T) {
	// P3.
	w, r := newBlockingPair(t, 10)
	w.Stop()

	if got := w.Available(); got != 0 {
		t.Errorf("writer.Available() after stop = %d, want 0", got)
	}
	if got := r.Available(); got != 0 {
		t.Errorf("reader.Available() after stop = %d, want 0", got)
	}
	if got := w.TryReserve(5); len(got) != 0 {
		t.Errorf("writer.TryReserve after stop returned %d bytes, want 0", len(got))
	}
	if got := r.TryReserve(5); len(got) != 0 {
		t.Errorf("reader.TryReserve after stop returned %d bytes, want 0", len(got))
	}
	if got := w.WaitReserve(5); len(got) != 0 {
		t.Errorf("writer.WaitReserve after stop returned %d bytes, want 0", len(got))
	}
	if !w.IsStopped() || !r.IsStopped() {
		t.Error("IsStopped() must remain true forever after stop")
	}
}

func TestBlockingWaitContextRespectsCancellation(t *testing.T) {
	// P4, context-aware variant.
	w, _ := newBlockingPair(t, 4)
	w.TryReserve(3)
	w.Commit(3) // fill it (3 == buffer_size-1)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := w.WaitContext(ctx)
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("expected WaitContext to return an error on a full ring with a short deadline")
	}
	if elapsed > time.Second {
		t.Fatalf("WaitContext took too long to respect cancellation: %v", elapsed)
	}
}

func TestBlockingWriterWaitAtEndOfBufferStillBlocksWhenFull(t *testing.T) {
	// Regression test for the open question in the design notes: the
	// "unexpected" value w_local+1 wraps to 0 via an explicit mod
	// buffer_size, exactly like the original source's
	// "if (unexpected == size_) { unexpected = 0; }" guard. Without that
	// wrap, w_local == buffer_size-1 would make wait() return
	// immediately even on a full ring; with it, wait() correctly blocks
	// because a fresh/fully-drained r is 0, which now matches the
	// wrapped unexpected value.
	w, r := newBlockingPair(t, 4)

	s := w.TryReserveMax()
	w.Commit(uint32(len(s))) // w_local now at buffer_size-1 == 3, ring full (r==0)

	done := make(chan uint32, 1)
	go func() { done <- w.Wait() }()

	select {
	case <-done:
		t.Fatal("Wait() returned without the reader freeing any space")
	case <-time.After(100 * time.Millisecond):
		// Expected: still blocked.
	}

	rs := r.TryReserve(1)
	if len(rs) != 1 {
		t.Fatalf("reader TryReserve(1) length = %d, want 1", len(rs))
	}
	r.Commit(1)

	select {
	case got := <-done:
		if got != 1 {
			t.Fatalf("Wait() returned %d, want 1", got)
		}
	case <-time.After(time.Second):
		t.Fatal("Wait() did not return within 1s of reader commit")
	}
}

func TestBlockingCommitZeroIsNoop(t *testing.T) {
	// L4.
	w, _ := newBlockingPair(t, 10)

	before := w.Available()
	s := w.TryReserve(4)
	w.Commit(0)
	after := w.Available()
	if before != after {
		t.Fatalf("Available changed across Commit(0): before=%d after=%d", before, after)
	}
	w.Commit(uint32(len(s)))
}
