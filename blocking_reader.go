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

// BlockingReader is the move-only consumer handle symmetric to
// BlockingWriter.
type BlockingReader struct {
	seg  *shm.Segment
	half *ring.BlockingReader
}

// Open runs the shared-placement algorithm under the blocking namespace.
func (r *BlockingReader) Open(name string, bufferSize uint32) (shm.Outcome, error) {
	r.Close()

	seg, outcome, err := shm.CreateOrAttach(shm.Blocking, name, bufferSize)
	if err != nil {
		return 0, classify(err)
	}
	half, err := ring.NewBlockingReader(seg.IndexPair(), seg.Buffer())
	if err != nil {
		seg.Close()
		return 0, classify(err)
	}
	r.seg = seg
	r.half = half
	return outcome, nil
}

// Close releases the mapping; idempotent (L2).
func (r *BlockingReader) Close() error {
	if r.seg == nil {
		return nil
	}
	err := r.seg.Close()
	r.seg = nil
	r.half = nil
	if err != nil {
		return classify(err)
	}
	return nil
}

// IsOpened reflects the presence of the mapping.
func (r *BlockingReader) IsOpened() bool { return r.seg != nil }

// Available returns the readable byte count; 0 if not opened or
// stopped.
func (r *BlockingReader) Available() uint32 {
	if r.half == nil {
		return 0
	}
	return r.half.Available()
}

// Wait blocks until data arrives or the stream stops; 0 if not opened.
func (r *BlockingReader) Wait() uint32 {
	if r.half == nil {
		return 0
	}
	return r.half.Wait()
}

// WaitContext is Wait with deadline/cancellation support.
func (r *BlockingReader) WaitContext(ctx context.Context) (uint32, error) {
	if r.half == nil {
		return 0, nil
	}
	return r.half.WaitContext(ctx)
}

// TryReserve is ring.BlockingReader.TryReserve, or an empty slice if not
// opened.
func (r *BlockingReader) TryReserve(want uint32) []byte {
	if r.half == nil {
		return nil
	}
	return r.half.TryReserve(want)
}

// TryReserveMax is TryReserve(ring.MaxSize()).
func (r *BlockingReader) TryReserveMax() []byte {
	if r.half == nil {
		return nil
	}
	return r.half.TryReserveMax()
}

// WaitReserve is Wait then TryReserve(want).
func (r *BlockingReader) WaitReserve(want uint32) []byte {
	if r.half == nil {
		return nil
	}
	return r.half.WaitReserve(want)
}

// WaitReserveMax is WaitReserve(ring.MaxSize()).
func (r *BlockingReader) WaitReserveMax() []byte {
	if r.half == nil {
		return nil
	}
	return r.half.WaitReserveMax()
}

// Commit is ring.BlockingReader.Commit, a no-op if not opened.
func (r *BlockingReader) Commit(n uint32) {
	if r.half == nil {
		return
	}
	r.half.Commit(n)
}

// Stop permanently stops the stream, waking any blocked peer. A no-op
// if not opened.
func (r *BlockingReader) Stop() {
	if r.half == nil {
		return
	}
	r.half.Stop()
}

// IsStopped reports whether the stream has been stopped; false if not
// opened.
func (r *BlockingReader) IsStopped() bool {
	if r.half == nil {
		return false
	}
	return r.half.IsStopped()
}
