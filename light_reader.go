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

// LightReader is the move-only consumer handle symmetric to LightWriter.
type LightReader struct {
	seg  *shm.Segment
	half *ring.LightReader
}

// Open is LightWriter.Open, constructing a ring.LightReader instead.
func (r *LightReader) Open(name string, bufferSize uint32) (shm.Outcome, error) {
	r.Close()

	seg, outcome, err := shm.CreateOrAttach(shm.Light, name, bufferSize)
	if err != nil {
		return 0, classify(err)
	}
	half, err := ring.NewLightReader(seg.IndexPair(), seg.Buffer())
	if err != nil {
		seg.Close()
		return 0, classify(err)
	}
	r.seg = seg
	r.half = half
	return outcome, nil
}

// Close is LightWriter.Close.
func (r *LightReader) Close() error {
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
func (r *LightReader) IsOpened() bool { return r.seg != nil }

// Available returns the readable byte count, or 0 if not opened.
func (r *LightReader) Available() uint32 {
	if r.half == nil {
		return 0
	}
	return r.half.Available()
}

// TryReserve is ring.LightReader.TryReserve, or an empty slice if not
// opened.
func (r *LightReader) TryReserve(want uint32) []byte {
	if r.half == nil {
		return nil
	}
	return r.half.TryReserve(want)
}

// TryReserveMax is TryReserve(ring.MaxSize()).
func (r *LightReader) TryReserveMax() []byte {
	if r.half == nil {
		return nil
	}
	return r.half.TryReserveMax()
}

// Commit is ring.LightReader.Commit, a no-op if not opened.
func (r *LightReader) Commit(n uint32) {
	if r.half == nil {
		return
	}
	r.half.Commit(n)
}
