package wire

import (
	"fmt"
)

// PID is the particle ID
type PID uint64

// Halo is the range of particle IDs belonging to one halo, End is exclusive
type Halo struct {
	// Start is the first pid index of the halo
	Start uint64

	// End is the pid index just after the last one of the halo
	End uint64
}

// Width returns number of pids in halo
func (h Halo) Width() uint64 {
	return h.End - h.Start
}

// Validate verifies that halo range is not reversed
func (h Halo) Validate() error {
	if h.End < h.Start {
		return fmt.Errorf("halo end %d is before start %d", h.End, h.Start)
	}
	return nil
}
