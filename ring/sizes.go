package ring

import "math"

// Stop is the reserved index value that, once stored into either the
// writer's or the reader's index, permanently marks a region as stopped.
// It is chosen so that it can never collide with a legal index: legal
// indices span [0, MaxSize()-1], which is strictly below Stop.
const Stop uint32 = math.MaxUint32 - 1

// MaxSize returns the largest legal buffer length. Mirrors the original
// library's max_size() static query (see
// original_source/include/shm_stream/details/light_bytes_queue.h) rather
// than a bare constant, so callers that select a buffer size
// programmatically keep the same call shape as the source this was ported
// from.
func MaxSize() uint32 {
	return math.MaxUint32 / 2
}

// MinSize returns the smallest legal buffer length (usable capacity of 1
// byte).
func MinSize() uint32 {
	return 2
}

func validateBufferSize(size uint32) error {
	if size < MinSize() || size > MaxSize() {
		return errInvalidBufferSize(size)
	}
	return nil
}
