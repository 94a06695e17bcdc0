// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package tributary

import "fmt"

// Participant is the 1-based index of a single key share. Zero is never a
// valid participant.
type Participant uint16

// Range is the half-open interval [Start, End) of participant indices owned by
// one validator.
type Range struct {
	Start Participant
	End   Participant
}

// Len returns the number of indices in the range.
func (r Range) Len() uint16 {
	return uint16(r.End - r.Start)
}

// Contains returns true if i lies within the range.
func (r Range) Contains(i Participant) bool {
	return r.Start <= i && i < r.End
}

// Before returns true if r lies entirely before other.
func (r Range) Before(other Range) bool {
	return r.End <= other.Start
}

// shift moves the range down by n indices.
func (r Range) shift(n uint16) Range {
	return Range{
		Start: r.Start - Participant(n),
		End:   r.End - Participant(n),
	}
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}
