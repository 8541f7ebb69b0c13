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

// Command shmcat is a diagnostic tool for inspecting and exercising
// named shared-memory streams. It has three modes: open a region and
// print its snapshot, remove a region, or diagnose a duplex pair of
// blocking regions for a stalled state. Ported in spirit from grpc-go's
// cmd/debug-capacity (a single-purpose segment-capacity probe),
// generalized into a small flag-driven tool the way this module's
// public packages are meant to be driven from outside tests.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/MusicScience37/shm-stream-go/ring"
	"github.com/MusicScience37/shm-stream-go/shm"
)

func main() {
	var (
		name      = flag.String("name", "", "stream name")
		flavor    = flag.String("flavor", "blocking", "stream flavor: light or blocking")
		size      = flag.Uint("size", 4096, "buffer size in bytes, used only when creating")
		remove    = flag.Bool("remove", false, "remove the named region and exit")
		diagnose  = flag.String("diagnose-pair", "", "comma-separated names of two blocking regions to diagnose as a duplex pair")
		threshold = flag.Float64("threshold", 95.0, "used-capacity percent threshold for -diagnose-pair")
	)
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	shm.SetLogger(logger)

	fl, err := parseFlavor(*flavor)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	switch {
	case *diagnose != "":
		if err := runDiagnose(*diagnose, *threshold); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case *remove:
		if err := runRemove(fl, *name); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	default:
		if err := runOpen(fl, *name, uint32(*size)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

func parseFlavor(s string) (shm.Flavor, error) {
	switch s {
	case "light":
		return shm.Light, nil
	case "blocking":
		return shm.Blocking, nil
	default:
		return 0, fmt.Errorf("unknown flavor %q: must be light or blocking", s)
	}
}

func runOpen(fl shm.Flavor, name string, size uint32) error {
	if name == "" {
		return fmt.Errorf("-name is required")
	}
	seg, outcome, err := shm.CreateOrAttach(fl, name, size)
	if err != nil {
		return fmt.Errorf("open %s/%s: %w", fl, name, err)
	}
	defer seg.Close()

	snap := ring.TakeSnapshot(seg.Header())
	fmt.Printf("name=%s flavor=%s outcome=%s buffer_size=%d used=%d (%.1f%%) stopped=%v\n",
		name, fl, outcome, snap.BufferSize, snap.Used, snap.UsedPercent(), snap.Stopped)
	return nil
}

func runRemove(fl shm.Flavor, name string) error {
	if name == "" {
		return fmt.Errorf("-name is required")
	}
	if err := shm.Remove(fl, name); err != nil {
		return fmt.Errorf("remove %s/%s: %w", fl, name, err)
	}
	fmt.Printf("removed %s/%s\n", fl, name)
	return nil
}

func runDiagnose(pair string, threshold float64) error {
	names := splitPair(pair)
	if len(names) != 2 {
		return fmt.Errorf("-diagnose-pair expects exactly two comma-separated names, got %q", pair)
	}

	segA, _, err := shm.CreateOrAttach(shm.Blocking, names[0], ring.MinSize())
	if err != nil {
		return fmt.Errorf("open %s: %w", names[0], err)
	}
	defer segA.Close()

	segB, _, err := shm.CreateOrAttach(shm.Blocking, names[1], ring.MinSize())
	if err != nil {
		return fmt.Errorf("open %s: %w", names[1], err)
	}
	defer segB.Close()

	stalled, report := ring.DiagnoseStalledPair(segA.Header(), segB.Header(), threshold)
	fmt.Print(report)
	if stalled {
		os.Exit(3)
	}
	return nil
}

func splitPair(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ',' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}
