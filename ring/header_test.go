/*
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
 */

package ring

import (
	"testing"
	"unsafe"
)

func TestHeaderSizeIsThreeCacheLines(t *testing.T) {
	if got := unsafe.Sizeof(Header{}); got != HeaderSize {
		t.Errorf("unsafe.Sizeof(Header{}) = %d, want %d", got, HeaderSize)
	}
	if HeaderSize != 192 {
		t.Errorf("HeaderSize = %d, want 192", HeaderSize)
	}
}

func TestHeaderFieldOffsets(t *testing.T) {
	var h Header
	tests := []struct {
		name   string
		offset uintptr
		want   uintptr
	}{
		{"w", unsafe.Offsetof(h.w), 0},
		{"r", unsafe.Offsetof(h.r), 64},
		{"bufferSize", unsafe.Offsetof(h.bufferSize), 128},
	}
	for _, tt := range tests {
		if tt.offset != tt.want {
			t.Errorf("offset of %s = %d, want %d", tt.name, tt.offset, tt.want)
		}
	}
}

func TestStopSentinelOutsideLegalRange(t *testing.T) {
	if Stop < MaxSize() {
		t.Errorf("Stop = %d must not collide with any legal index < MaxSize() = %d", Stop, MaxSize())
	}
}

func TestInitHeaderZeroesIndices(t *testing.T) {
	var h Header
	h.w, h.r = 7, 9 // simulate reused memory
	InitHeader(&h, 64)

	if h.BufferSize() != 64 {
		t.Errorf("BufferSize() = %d, want 64", h.BufferSize())
	}
	idx := NewIndexPair(&h)
	if *idx.Writer() != 0 || *idx.Reader() != 0 {
		t.Errorf("InitHeader did not zero indices: w=%d r=%d", *idx.Writer(), *idx.Reader())
	}
}
