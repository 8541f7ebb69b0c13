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

// Package futex provides an address-based wait/notify primitive over a
// plain *uint32, the same contract as a Linux futex or a Windows
// WaitOnAddress: a waiter blocks only while the observed value still
// equals the value it last rejected, and a waker need not know how many
// waiters, if any, are parked.
//
// This is the primitive package ring's blocking flavor builds its Wait
// and Stop behavior on top of; it has no knowledge of rings, headers, or
// shared memory, only of addresses and expected values.
package futex
