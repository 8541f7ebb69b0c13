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

// namedMutex is the inter-process mutex LOCK_NAME refers to, standing in
// for the original library's boost::interprocess::named_mutex. It is
// backed by flock(2) on a regular file rather than a System V or POSIX
// named semaphore, since the Go standard library exposes flock directly
// and none of the retrieval pack reaches for a semaphore wrapper.
type namedMutex struct {
	path string
	file *os.File
}

// openNamedMutex opens (creating if necessary) the lock file at path. It
// does not itself acquire the lock.
func openNamedMutex(path string) (*namedMutex, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, fmt.Errorf("%w: open lock file %s: %v", ErrFailedToOpen, path, err)
	}
	return &namedMutex{path: path, file: f}, nil
}

// Lock blocks until the exclusive lock is acquired.
func (m *namedMutex) Lock() error {
	if err := syscall.Flock(int(m.file.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("%w: flock %s: %v", ErrInternal, m.path, err)
	}
	return nil
}

// Unlock releases the lock and closes the file descriptor it was held
// on. The lock file itself is left in place; only Remove deletes it.
func (m *namedMutex) Unlock() error {
	err := syscall.Flock(int(m.file.Fd()), syscall.LOCK_UN)
	closeErr := m.file.Close()
	if err != nil {
		return fmt.Errorf("%w: funlock %s: %v", ErrInternal, m.path, err)
	}
	return closeErr
}

// removeNamedMutex deletes the lock file. Remove returns its error to
// the caller.
func removeNamedMutex(path string) error {
	return os.Remove(path)
}
