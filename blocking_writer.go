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
	"context"

	"github.com/MusicScience37/shm-stream-go/ring"
	"github.com/MusicScience37/shm-stream-go/shm"
)

// BlockingWriter is the move-only producer handle for the blocking
// flavor: everything LightWriter offers plus Wait/WaitReserve/Stop/
// IsStopped.
type BlockingWriter struct {
	seg  *shm.Segment
	half *ring.BlockingWriter
}

// Open runs the shared-placement algorithm under the blocking namespace.
func (w *BlockingWriter) Open(name string, bufferSize uint32) (shm.Outcome, error) {
	w.Close()

	seg, outcome, err := shm.CreateOrAttach(shm.Blocking, name, bufferSize)
	if err != nil {
		return 0, classify(err)
	}
	half, err := ring.NewBlockingWriter(seg.IndexPair(), seg.Buffer())
	if err != nil {
		seg.Close()
		return 0, classify(err)
	}
	w.seg = seg
	w.half = half
	return outcome, nil
}

// Close releases the mapping; idempotent (L2).
func (w *BlockingWriter) Close() error {
	if w.seg == nil {
		return nil
	}
	err := w.seg.Close()
	w.seg = nil
	w.half = nil
	if err != nil {
		return classify(err)
	}
	return nil
}

// IsOpened reflects the presence of the mapping.
func (w *BlockingWriter) IsOpened() bool { return w.seg != nil }

// Available returns the free capacity snapshot; 0 if not opened or
// stopped.
func (w *BlockingWriter) Available() uint32 {
	if w.half == nil {
		return 0
	}
	return w.half.Available()
}

// Wait blocks until space frees up or the stream stops; 0 if not
// opened.
func (w *BlockingWriter) Wait() uint32 {
	if w.half == nil {
		return 0
	}
	return w.half.Wait()
}

// WaitContext is Wait with deadline/cancellation support.
func (w *BlockingWriter) WaitContext(ctx context.Context) (uint32, error) {
	if w.half == nil {
		return 0, nil
	}
	return w.half.WaitContext(ctx)
}

// TryReserve is ring.BlockingWriter.TryReserve, or an empty slice if not
// opened.
func (w *BlockingWriter) TryReserve(want uint32) []byte {
	if w.half == nil {
		return nil
	}
	return w.half.TryReserve(want)
}

// TryReserveMax is TryReserve(ring.MaxSize()).
func (w *BlockingWriter) TryReserveMax() []byte {
	if w.half == nil {
		return nil
	}
	return w.half.TryReserveMax()
}

// WaitReserve is Wait then TryReserve(want).
func (w *BlockingWriter) WaitReserve(want uint32) []byte {
	if w.half == nil {
		return nil
	}
	return w.half.WaitReserve(want)
}

// WaitReserveMax is WaitReserve(ring.MaxSize()).
func (w *BlockingWriter) WaitReserveMax() []byte {
	if w.half == nil {
		return nil
	}
	return w.half.WaitReserveMax()
}

// Commit is ring.BlockingWriter.Commit, a no-op if not opened.
func (w *BlockingWriter) Commit(n uint32) {
	if w.half == nil {
		return
	}
	w.half.Commit(n)
}

// Stop permanently stops the stream, waking any blocked peer. A no-op
// if not opened.
func (w *BlockingWriter) Stop() {
	if w.half == nil {
		return
	}
	w.half.Stop()
}

// IsStopped reports whether the stream has been stopped; false if not
// opened.
func (w *BlockingWriter) IsStopped() bool {
	if w.half == nil {
		return false
	}
	return w.half.IsStopped()
}
