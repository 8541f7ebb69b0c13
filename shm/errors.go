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

import "errors"

// ErrInvalidArgument mirrors ring.ErrInvalidArgument for an empty stream
// name and for a buffer size this package rejects when creating a
// region.
var ErrInvalidArgument = errors.New("shm: invalid argument")

// ErrFailedToOpen is returned when the OS refuses to create or open the
// backing region (permission, invalid name, ...).
var ErrFailedToOpen = errors.New("shm: failed to create or open region")

// ErrInternal covers any other unclassified failure from the OS layer,
// e.g. a lock acquisition or mmap call failing for a reason other than
// the region simply not existing yet.
var ErrInternal = errors.New("shm: internal error")
