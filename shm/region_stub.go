//go:build !linux || !(amd64 || arm64)

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
)

func createRegionFile(path string, totalSize int64) (*os.File, error) {
	return nil, fmt.Errorf("%w: shared memory regions unsupported on this platform", ErrFailedToOpen)
}

func openRegionFile(path string) (*os.File, int64, error) {
	return nil, 0, fmt.Errorf("%w: shared memory regions unsupported on this platform", ErrFailedToOpen)
}

func mmapFile(file *os.File, size int) ([]byte, error) {
	return nil, fmt.Errorf("%w: mmap unsupported on this platform", ErrInternal)
}

func munmapImpl(mem []byte) error { return nil }

func removeRegionFile(path string) error { return os.Remove(path) }
