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

package shm

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"unsafe"

	"github.com/MusicScience37/shm-stream-go/ring"
)

// Outcome distinguishes which branch of the open-or-create algorithm a
// call to CreateOrAttach took. Restores the redesign note's explicit
// enum in place of the original's implicit create-vs-open exception
// paths.
type Outcome int

const (
	// Created means this call initialized a fresh region.
	Created Outcome = iota
	// Attached means this call mapped a region created by an earlier
	// call, possibly in another process.
	Attached
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case Attached:
		return "attached"
	default:
		return "unknown"
	}
}

// Segment is a handle's mapping: the backing file, the mapped bytes, and
// a *ring.Header placement-constructed over the first HeaderSize bytes
// of that mapping. It has no notion of writer/reader; both halves of a
// stream map the same region, each through its own Segment obtained from
// a separate CreateOrAttach call.
type Segment struct {
	path string
	file *os.File
	mem  []byte

	closeOnce sync.Once
	closeErr  error

	header *ring.Header
	buffer []byte
}

// CreateOrAttach runs the open-or-create algorithm: acquire the named
// mutex for (flavor, name), attempt to open the existing region, falling
// back to creating it if none exists, then release the mutex. Ported
// from the algorithm in original_source's no_wait_stream.cpp/
// blocking_stream_internal.cpp (boost::interprocess::named_mutex guarding
// shared_memory_object{open_only|create_only}) and from grpc-go's
// internal/transport/shm/shm_segment.go (CreateSegment/OpenSegment).
//
// If a region already exists under name, its stored buffer size wins
// silently even when it disagrees with bufferSize; the actual size is
// available via Segment.BufferSize.
func CreateOrAttach(flavor Flavor, name string, bufferSize uint32) (*Segment, Outcome, error) {
	if name == "" {
		return nil, 0, fmt.Errorf("%w: empty stream name", ErrInvalidArgument)
	}

	mu, err := openNamedMutex(lockPath(flavor, name))
	if err != nil {
		return nil, 0, err
	}
	if err := mu.Lock(); err != nil {
		return nil, 0, err
	}
	defer mu.Unlock()

	path := dataPath(flavor, name)

	seg, outcome, err := attach(path)
	if err == nil {
		logger().Debug("attached shared memory region",
			zapFlavor(flavor), zapName(name), zapOutcome(outcome))
		return seg, outcome, nil
	}
	if !errors.Is(err, ErrFailedToOpen) {
		return nil, 0, err
	}

	seg, outcome, err = create(path, bufferSize)
	if err != nil {
		return nil, 0, err
	}
	logger().Debug("created shared memory region",
		zapFlavor(flavor), zapName(name), zapOutcome(outcome))
	return seg, outcome, nil
}

func attach(path string) (*Segment, Outcome, error) {
	file, size, err := openRegionFile(path)
	if err != nil {
		return nil, 0, err
	}
	if size < int64(ring.HeaderSize) {
		file.Close()
		return nil, 0, fmt.Errorf("%w: region %s smaller than header", ErrInternal, path)
	}

	mem, err := mmapFile(file, int(size))
	if err != nil {
		file.Close()
		return nil, 0, err
	}

	header := (*ring.Header)(unsafe.Pointer(&mem[0]))
	bufSize := header.BufferSize()
	if int64(ring.HeaderSize)+int64(bufSize) > size {
		munmapImpl(mem)
		file.Close()
		return nil, 0, fmt.Errorf("%w: region %s header claims size larger than file", ErrInternal, path)
	}

	seg := &Segment{
		path:   path,
		file:   file,
		mem:    mem,
		header: header,
		buffer: mem[ring.HeaderSize : ring.HeaderSize+bufSize],
	}
	return seg, Attached, nil
}

func create(path string, bufferSize uint32) (*Segment, Outcome, error) {
	if bufferSize < ring.MinSize() || bufferSize > ring.MaxSize() {
		return nil, 0, fmt.Errorf("%w: buffer size %d outside [%d, %d]",
			ErrInvalidArgument, bufferSize, ring.MinSize(), ring.MaxSize())
	}
	total := int64(ring.HeaderSize) + int64(bufferSize)

	file, err := createRegionFile(path, total)
	if err != nil {
		// Another process may have won the create race between our
		// failed attach and here; retry as an attach once.
		if errors.Is(err, ErrFailedToOpen) {
			if seg, outcome, attachErr := attach(path); attachErr == nil {
				return seg, outcome, nil
			}
		}
		return nil, 0, err
	}

	mem, err := mmapFile(file, int(total))
	if err != nil {
		file.Close()
		os.Remove(path)
		return nil, 0, err
	}

	header := (*ring.Header)(unsafe.Pointer(&mem[0]))
	ring.InitHeader(header, bufferSize)

	seg := &Segment{
		path:   path,
		file:   file,
		mem:    mem,
		header: header,
		buffer: mem[ring.HeaderSize : ring.HeaderSize+bufferSize],
	}
	return seg, Created, nil
}

// IndexPair returns the view over this segment's header indices.
func (s *Segment) IndexPair() ring.IndexPair {
	return ring.NewIndexPair(s.header)
}

// Header returns the segment's placement-constructed header, for
// diagnostics (ring.TakeSnapshot) that need direct access rather than
// the narrower IndexPair view.
func (s *Segment) Header() *ring.Header {
	return s.header
}

// Buffer returns the mutable byte span backing the ring. It is exactly
// BufferSize() bytes long.
func (s *Segment) Buffer() []byte {
	return s.buffer
}

// BufferSize returns the buffer size actually recorded in the mapped
// header, which may differ from what this process requested if it
// attached to a pre-existing region.
func (s *Segment) BufferSize() uint32 {
	return s.header.BufferSize()
}

// Close unmaps the region and closes the backing file descriptor. It
// does not remove the region from disk; only Remove does that. Safe to
// call multiple times (L2).
func (s *Segment) Close() error {
	s.closeOnce.Do(func() {
		err := munmapImpl(s.mem)
		if cerr := s.file.Close(); err == nil {
			err = cerr
		}
		s.closeErr = err
	})
	return s.closeErr
}

// Remove implements the remove algorithm of spec §4.3: acquire the named
// mutex, best-effort delete the region (ignoring a not-exist failure,
// since the region may never have been created), then release and
// delete the mutex itself. Must not be called while any handle for name
// is still open.
func Remove(flavor Flavor, name string) error {
	lp := lockPath(flavor, name)
	mu, err := openNamedMutex(lp)
	if err != nil {
		return err
	}
	if err := mu.Lock(); err != nil {
		return err
	}

	if err := removeRegionFile(dataPath(flavor, name)); err != nil && !os.IsNotExist(err) {
		mu.Unlock()
		return fmt.Errorf("%w: remove region: %v", ErrInternal, err)
	}

	logger().Debug("removed shared memory region", zapFlavor(flavor), zapName(name))

	if err := mu.Unlock(); err != nil {
		return err
	}
	return removeNamedMutex(lp)
}
