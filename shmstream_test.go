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
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/MusicScience37/shm-stream-go/internal/shmtest"
	"github.com/MusicScience37/shm-stream-go/shm"
)

func TestLightHandlesOpenAndExchangeBytes(t *testing.T) {
	// Scenario 2, driven through the public handle types.
	name := shmtest.UniqueName(t)
	t.Cleanup(func() { shm.Remove(shm.Light, name) })

	var w LightWriter
	outcome, err := w.Open(name, 10)
	if err != nil {
		t.Fatalf("writer Open: %v", err)
	}
	if outcome != shm.Created {
		t.Fatalf("writer outcome = %v, want Created", outcome)
	}
	defer w.Close()

	var r LightReader
	outcome, err = r.Open(name, 10)
	if err != nil {
		t.Fatalf("reader Open: %v", err)
	}
	if outcome != shm.Attached {
		t.Fatalf("reader outcome = %v, want Attached", outcome)
	}
	defer r.Close()

	slice := w.TryReserve(5)
	copy(slice, []byte("hello"))
	w.Commit(5)

	rs := r.TryReserveMax()
	if !bytes.Equal(rs, []byte("hello")) {
		t.Fatalf("reader got %q, want %q", rs, "hello")
	}
	r.Commit(uint32(len(rs)))
}

func TestBlockingHandlesWaitWakesOnCommit(t *testing.T) {
	// Scenario 4, driven through the public handle types.
	name := shmtest.UniqueName(t)
	t.Cleanup(func() { shm.Remove(shm.Blocking, name) })

	var w BlockingWriter
	if _, err := w.Open(name, 10); err != nil {
		t.Fatalf("writer Open: %v", err)
	}
	defer w.Close()

	var r BlockingReader
	if _, err := r.Open(name, 10); err != nil {
		t.Fatalf("reader Open: %v", err)
	}
	defer r.Close()

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

func TestBlockingHandlesStopWakesWaiter(t *testing.T) {
	// Scenario 5, driven through the public handle types.
	name := shmtest.UniqueName(t)
	t.Cleanup(func() { shm.Remove(shm.Blocking, name) })

	var w BlockingWriter
	if _, err := w.Open(name, 10); err != nil {
		t.Fatalf("writer Open: %v", err)
	}
	defer w.Close()

	var r BlockingReader
	if _, err := r.Open(name, 10); err != nil {
		t.Fatalf("reader Open: %v", err)
	}
	defer r.Close()

	done := make(chan []byte, 1)
	go func() { done <- r.WaitReserveMax() }()

	time.Sleep(20 * time.Millisecond)
	w.Stop()

	select {
	case got := <-done:
		if len(got) != 0 {
			t.Fatalf("reader got %v after stop, want empty", got)
		}
	case <-time.After(time.Second):
		t.Fatal("reader did not wake within 1s of stop")
	}
	if !r.IsStopped() || !w.IsStopped() {
		t.Fatal("IsStopped() should be true on both handles after stop")
	}
}

func TestHandleCloseIsIdempotent(t *testing.T) {
	// L2, at the handle level, for both flavors.
	lightName := shmtest.UniqueName(t)
	t.Cleanup(func() { shm.Remove(shm.Light, lightName) })

	var lw LightWriter
	if _, err := lw.Open(lightName, 16); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := lw.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := lw.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if lw.IsOpened() {
		t.Fatal("IsOpened() true after Close")
	}

	blockingName := shmtest.UniqueName(t)
	t.Cleanup(func() { shm.Remove(shm.Blocking, blockingName) })

	var bw BlockingWriter
	if _, err := bw.Open(blockingName, 16); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := bw.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := bw.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestClosedHandleOperationsAreSafeNoops(t *testing.T) {
	var w LightWriter // never opened
	if got := w.Available(); got != 0 {
		t.Errorf("Available() on never-opened handle = %d, want 0", got)
	}
	if got := w.TryReserve(5); len(got) != 0 {
		t.Errorf("TryReserve on never-opened handle returned %d bytes, want 0", len(got))
	}
	w.Commit(0) // must not panic
	if err := w.Close(); err != nil {
		t.Errorf("Close on never-opened handle: %v", err)
	}

	var bw BlockingWriter // never opened
	var waitResult uint32
	shmtest.MustNotBlock(t, time.Second, func() {
		waitResult = bw.Wait()
	})
	if waitResult != 0 {
		t.Errorf("Wait() on never-opened handle = %d, want 0", waitResult)
	}
	if bw.IsStopped() {
		t.Error("IsStopped() on never-opened handle = true, want false")
	}
	bw.Stop() // must not panic
}

func TestOpenRejectsInvalidBufferSize(t *testing.T) {
	name := shmtest.UniqueName(t)

	var w LightWriter
	_, err := w.Open(name, 1)
	if err == nil {
		t.Fatal("expected error for buffer_size=1")
	}
	var se *StreamError
	if !errors.As(err, &se) {
		t.Fatalf("error is not a *StreamError: %v", err)
	}
	if se.Code != CodeInvalidArgument {
		t.Fatalf("Code = %v, want CodeInvalidArgument", se.Code)
	}
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatal("errors.Is(err, ErrInvalidArgument) = false")
	}
}

func TestErrorStringMatchesExactSpecWording(t *testing.T) {
	cases := map[Code]string{
		CodeSuccess:         "Success.",
		CodeInvalidArgument: "Invalid argument.",
		CodeFailedToOpen:    "Failed to create or open a stream.",
		CodeInternal:        "Internal error.",
		Code(99):            "Invalid error code.",
	}
	for code, want := range cases {
		if got := ErrorString(code); got != want {
			t.Errorf("ErrorString(%d) = %q, want %q", code, got, want)
		}
	}
}
