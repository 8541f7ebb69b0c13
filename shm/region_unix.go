//go:build linux && (amd64 || arm64)

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
	"fmt"
	"os"
	"syscall"
)

// createRegionFile creates a fresh backing file of exactly totalSize
// bytes with exclusive-create semantics, ported from CreateSegment in
// grpc-go's internal/transport/shm/shm_mmap_unix.go.
func createRegionFile(path string, totalSize int64) (*os.File, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0600)
	if err != nil {
		return nil, fmt.Errorf("%w: create region file %s: %v", ErrFailedToOpen, path, err)
	}
	if err := file.Truncate(totalSize); err != nil {
		file.Close()
		os.Remove(path)
		return nil, fmt.Errorf("%w: resize region file %s: %v", ErrInternal, path, err)
	}
	return file, nil
}

// openRegionFile opens an existing backing file for read/write and
// reports its current size, ported from OpenSegment.
func openRegionFile(path string) (*os.File, int64, error) {
	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: open region file %s: %v", ErrFailedToOpen, path, err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, 0, fmt.Errorf("%w: stat region file %s: %v", ErrInternal, path, err)
	}
	return file, info.Size(), nil
}

// mmapFile maps the first size bytes of file read/write, shared across
// processes.
func mmapFile(file *os.File, size int) ([]byte, error) {
	mem, err := syscall.Mmap(int(file.Fd()), 0, size, syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap: %v", ErrInternal, err)
	}
	return mem, nil
}

func munmapImpl(mem []byte) error {
	if len(mem) == 0 {
		return nil
	}
	if err := syscall.Munmap(mem); err != nil {
		return fmt.Errorf("%w: munmap: %v", ErrInternal, err)
	}
	return nil
}

func removeRegionFile(path string) error {
	return os.Remove(path)
}
