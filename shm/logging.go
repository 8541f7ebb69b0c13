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
	"sync"

	"go.uber.org/zap"
)

var (
	loggerMu sync.RWMutex
	pkgLog   *zap.Logger
)

// SetLogger installs a package-level diagnostic logger used at segment
// create/attach/remove points. Passing nil (the default) silences
// logging entirely. Never called from the ring's data-path hot loop,
// matching grpc-go's internal/transport/shm/ring.go, which avoids
// logging inside WriteBlocking/ReadBlocking.
func SetLogger(l *zap.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	pkgLog = l
}

func logger() *zap.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	if pkgLog == nil {
		return zap.NewNop()
	}
	return pkgLog
}

func zapFlavor(f Flavor) zap.Field  { return zap.String("flavor", f.String()) }
func zapName(name string) zap.Field { return zap.String("name", name) }
func zapOutcome(o Outcome) zap.Field {
	return zap.String("outcome", o.String())
}
