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

import "fmt"

// This build has no flock(2)/mmap support wired up (see mutex_unix.go
// and region_unix.go), mirroring grpc-go's own platform restriction on
// internal/transport/shm/shm_mmap_unix.go and shm_futex_linux.go.
type namedMutex struct {
	path string
}

func openNamedMutex(path string) (*namedMutex, error) {
	return nil, fmt.Errorf("%w: shared memory regions unsupported on this platform", ErrFailedToOpen)
}

func (m *namedMutex) Lock() error   { return nil }
func (m *namedMutex) Unlock() error { return nil }

func removeNamedMutex(path string) error { return nil }
