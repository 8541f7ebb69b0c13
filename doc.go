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

// Package shmstream provides byte-oriented, single-producer/
// single-consumer streams between two processes on the same host,
// backed by a shared memory region. Two handle families are offered:
// LightWriter/LightReader for the non-blocking try-reserve/commit
// flavor, and BlockingWriter/BlockingReader for the flavor that adds
// Wait/WaitReserve/Stop/IsStopped.
//
// A handle is move-only: its zero value is only useful via Open, and
// Close releases everything the handle owns so that a copy made after
// Close is a harmless set of no-ops rather than an alias onto live
// shared state. Open/Close/Remove are the only operations that can
// fail; every steady-state data-motion operation is infallible by
// design, matching the ring and shm packages underneath.
package shmstream
