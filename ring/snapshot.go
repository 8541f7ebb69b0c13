package ring

import (
	"fmt"
	"sync/atomic"
)

// Snapshot is a point-in-time, non-authoritative view of a region's
// indices for diagnostics. Adapted from grpc-go's
// internal/transport/shm/ring.go (RingState/DebugState), which reads a
// monotonic 64-bit write/read pair; here the indices wrap, so Used and
// UsedPercent are derived the same way Available() is rather than by
// plain subtraction.
type Snapshot struct {
	BufferSize uint32
	W          uint32
	R          uint32
	Used       uint32
	Stopped    bool
}

// UsedPercent returns Used as a percentage of the usable capacity
// (BufferSize - 1).
func (s Snapshot) UsedPercent() float64 {
	if s.BufferSize <= 1 {
		return 0
	}
	return float64(s.Used) / float64(s.BufferSize-1) * 100
}

// TakeSnapshot reads both indices of h for diagnostics. It is not part
// of the ring protocol itself: no caller needs it to move bytes, and it
// is safe to call from any goroutine at any time, including
// concurrently with live writer/reader operations (the values it
// reports may already be stale by the time the caller inspects them).
func TakeSnapshot(h *Header) Snapshot {
	w := atomic.LoadUint32(&h.w)
	r := atomic.LoadUint32(&h.r)
	size := h.BufferSize()

	if w == Stop || r == Stop {
		return Snapshot{BufferSize: size, W: w, R: r, Stopped: true}
	}

	used := w - r
	if w < r {
		used = size - (r - w)
	}
	return Snapshot{BufferSize: size, W: w, R: r, Used: used}
}

// DiagnoseStalledPair inspects a duplex pair of regions (one per
// direction, as a request/response channel pair would use) and reports
// whether both are so full that neither side can make progress without
// draining the other first. Ported from grpc-go's
// internal/transport/shm/ring.go (DiagnoseDuelingBuffers), generalized
// from its hardcoded 95% threshold parameter-free form to an explicit
// threshold so callers of this library (rather than just its one CLI)
// can tune sensitivity.
func DiagnoseStalledPair(aToB, bToA *Header, thresholdPercent float64) (bool, string) {
	a := TakeSnapshot(aToB)
	b := TakeSnapshot(bToA)

	stalled := a.UsedPercent() >= thresholdPercent && b.UsedPercent() >= thresholdPercent

	header := "Ring pair state:\n"
	if stalled {
		header = "STALLED PAIR DETECTED:\n"
	}

	report := header
	report += fmt.Sprintf("A->B: used=%d/%d (%.1f%%) w=%d r=%d stopped=%v\n",
		a.Used, a.BufferSize, a.UsedPercent(), a.W, a.R, a.Stopped)
	report += fmt.Sprintf("B->A: used=%d/%d (%.1f%%) w=%d r=%d stopped=%v\n",
		b.Used, b.BufferSize, b.UsedPercent(), b.W, b.R, b.Stopped)

	if stalled {
		report += "Both directions are near full: neither side can commit further without the peer draining first.\n"
	}
	return stalled, report
}
