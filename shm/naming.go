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
	"os"
	"path/filepath"
)

// Flavor selects which of the two disjoint naming namespaces a region
// belongs to, matching spec's requirement that light and blocking
// streams sharing a name never collide.
type Flavor int

const (
	// Light is the non-blocking try-reserve/commit flavor.
	Light Flavor = iota
	// Blocking is the flavor with Wait/Stop support.
	Blocking
)

func (f Flavor) String() string {
	switch f {
	case Light:
		return "light"
	case Blocking:
		return "blocking"
	default:
		return "unknown"
	}
}

// dataPrefix and lockPrefix reproduce the original library's naming
// scheme (no_wait_stream_shm_name/no_wait_stream_mutex_name in
// no_wait_stream.cpp, blocking_stream_shm_name/blocking_stream_mutex_name
// in c_interface/blocking_stream_internal.cpp) verbatim, so that a name
// chosen for this module matches what the original C++ build of the same
// library would derive for the same stream name.
func (f Flavor) dataPrefix() string {
	switch f {
	case Light:
		return "shm_stream_no_wait_stream_data_"
	case Blocking:
		return "shm_stream_blocking_stream_data_"
	default:
		return "shm_stream_unknown_stream_data_"
	}
}

func (f Flavor) lockPrefix() string {
	switch f {
	case Light:
		return "shm_stream_no_wait_stream_lock_"
	case Blocking:
		return "shm_stream_blocking_stream_lock_"
	default:
		return "shm_stream_unknown_stream_lock_"
	}
}

// baseDir is where named regions and their lock files live. /dev/shm is
// preferred, matching generateSegmentPath in grpc-go's
// internal/transport/shm/shm_mmap_unix.go; a directory outside tmpfs
// still works correctly (it's just backed by disk instead of RAM), so
// os.TempDir() is an acceptable fallback rather than a hard failure.
func baseDir() string {
	if isDevShmAvailable() {
		return "/dev/shm"
	}
	return os.TempDir()
}

func isDevShmAvailable() bool {
	info, err := os.Stat("/dev/shm")
	if err != nil {
		return false
	}
	return info.IsDir()
}

// dataPath and lockPath are the on-disk paths backing SHM_NAME and
// LOCK_NAME for a given flavor and stream name.
func dataPath(flavor Flavor, name string) string {
	return filepath.Join(baseDir(), flavor.dataPrefix()+name)
}

func lockPath(flavor Flavor, name string) string {
	return filepath.Join(baseDir(), flavor.lockPrefix()+name) + ".lock"
}
