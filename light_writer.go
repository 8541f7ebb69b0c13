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
	"github.com/MusicScience37/shm-stream-go/ring"
	"github.com/MusicScience37/shm-stream-go/shm"
)

// LightWriter is the move-only producer handle for the non-blocking
// flavor. The zero value is a closed handle; call Open before using any
// other method.
type LightWriter struct {
	seg  *shm.Segment
	half *ring.LightWriter
}

// Open runs the shared-placement open-or-create algorithm under the
// light namespace and constructs a ring.LightWriter over the result. If
// the handle is already open, it is closed first (idempotently
// reopening under a possibly different name). Fails with
// CodeInvalidArgument, CodeFailedToOpen, or CodeInternal.
func (w *LightWriter) Open(name string, bufferSize uint32) (shm.Outcome, error) {
	w.Close()

	seg, outcome, err := shm.CreateOrAttach(shm.Light, name, bufferSize)
	if err != nil {
		return 0, classify(err)
	}
	half, err := ring.NewLightWriter(seg.IndexPair(), seg.Buffer())
	if err != nil {
		seg.Close()
		return 0, classify(err)
	}
	w.seg = seg
	w.half = half
	return outcome, nil
}

// Close releases the mapping. Calling it k>=1 times is equivalent to
// calling it once (L2).
func (w *LightWriter) Close() error {
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
func (w *LightWriter) IsOpened() bool { return w.seg != nil }

// Available returns the free capacity snapshot, or 0 if not opened.
func (w *LightWriter) Available() uint32 {
	if w.half == nil {
		return 0
	}
	return w.half.Available()
}

// TryReserve is ring.LightWriter.TryReserve, or an empty slice if not
// opened.
func (w *LightWriter) TryReserve(want uint32) []byte {
	if w.half == nil {
		return nil
	}
	return w.half.TryReserve(want)
}

// TryReserveMax is TryReserve(ring.MaxSize()).
func (w *LightWriter) TryReserveMax() []byte {
	if w.half == nil {
		return nil
	}
	return w.half.TryReserveMax()
}

// Commit is ring.LightWriter.Commit, a no-op if not opened.
func (w *LightWriter) Commit(n uint32) {
	if w.half == nil {
		return
	}
	w.half.Commit(n)
}
