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

// Package shm names, creates, maps, reattaches, and removes the shared
// memory regions carrying a ring.Header and its buffer. It has no
// knowledge of the light/blocking distinction beyond keeping their
// namespaces disjoint; callers build a ring.IndexPair view over the
// Segment it returns and pick the ring flavor themselves.
//
// Grounded on the CreateSegment/OpenSegment pair in grpc-go's
// internal/transport/shm/shm_mmap_unix.go, generalized from grpc-go's
// two-ring duplex segment to this package's single ring.Header layout,
// and on original_source/src/shm_stream/no_wait_stream.cpp and
// src/shm_stream/c_interface/blocking_stream_internal.cpp for the naming
// scheme and the lock-then-open-or-create algorithm (there implemented
// with boost::interprocess::named_mutex and shared_memory_object; here
// with flock(2) on a lock file and a plain mmap'd regular file, since
// Go has no widely-used ecosystem POSIX-shm wrapper to reach for
// instead).
package shm
