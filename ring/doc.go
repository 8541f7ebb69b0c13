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

// Package ring implements the single-producer/single-consumer byte ring
// protocol shared by the light and blocking stream flavors: a pair of
// wrap-around indices plus a contiguous byte buffer, accessed through
// non-blocking try-reserve/commit on both flavors and, for the blocking
// flavor, an address-based wait/notify pair and a cooperative stop signal.
//
// Indices live in shared memory and are never assumed to be owned by this
// package; callers place an IndexPair over a mapped region (see the shm
// package) and construct a LightWriter/LightReader or
// BlockingWriter/BlockingReader view over it.
package ring
