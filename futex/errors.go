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

package futex

import "errors"

// ErrUnsupported names the condition of a platform with neither a native
// futex syscall nor the portable polling fallback. No function in this
// package returns it: the portable fallback in futex_portable.go covers
// every target the Linux syscall path does not.
var ErrUnsupported = errors.New("futex: operation not supported on this platform")
