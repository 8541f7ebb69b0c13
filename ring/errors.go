package ring

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned by the New* constructors when the
// requested buffer size falls outside [MinSize(), MaxSize()]. It is the
// only error any type in this package ever returns; every steady-state
// operation (Available, TryReserve, Commit, Wait, Stop, ...) is
// infallible by design, per the data-motion contract.
var ErrInvalidArgument = errors.New("ring: invalid argument")

func errInvalidBufferSize(size uint32) error {
	return fmt.Errorf("%w: buffer size %d outside [%d, %d]",
		ErrInvalidArgument, size, MinSize(), MaxSize())
}
