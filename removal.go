// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package tributary

import (
	"sort"

	"github.com/luxfi/math/set"
)

// Removal is a Spec viewed with some validators excluded. Removed validators
// own no participants and every later range is shifted down by the weight
// removed before it, so live participants stay dense from 1.
//
// A Removal is immutable and safe for concurrent use.
type Removal struct {
	spec    *Spec
	removed Bits

	// shifts[i] is the weight removed before validators[i]; shifts[len] is
	// the total weight removed.
	shifts []uint16
	// live holds the positions of the remaining validators, in order.
	live []int
}

func newRemoval(spec *Spec, removed []PublicKey) *Removal {
	keys := set.NewSet[PublicKey](len(removed))
	keys.Add(removed...)

	r := &Removal{
		spec:    spec,
		removed: NewBits(len(spec.validators)),
		shifts:  make([]uint16, len(spec.validators)+1),
		live:    make([]int, 0, len(spec.validators)),
	}

	var shift uint16
	for i, v := range spec.validators {
		r.shifts[i] = shift
		if keys.Contains(v.Key) {
			r.removed.Add(i)
			shift += v.Weight
			continue
		}
		r.live = append(r.live, i)
	}
	r.shifts[len(spec.validators)] = shift
	return r
}

// Spec returns the directory this removal applies to.
func (r *Removal) Spec() *Spec {
	return r.spec
}

// Removed returns true if key is a validator excluded by this removal.
func (r *Removal) Removed(key PublicKey) bool {
	pos, ok := r.spec.positions[key]
	return ok && r.removed.Contains(pos)
}

// RemovedPositions returns the construction-order positions of the removed
// validators.
func (r *Removal) RemovedPositions() Bits {
	return append(Bits(nil), r.removed...)
}

// Live returns the remaining validators in construction order.
func (r *Removal) Live() []Validator {
	validators := make([]Validator, 0, len(r.live))
	for _, pos := range r.live {
		validators = append(validators, r.spec.validators[pos])
	}
	return validators
}

// TotalWeight returns the weight of the remaining validators.
func (r *Removal) TotalWeight() uint16 {
	return r.spec.N() - r.shifts[len(r.spec.validators)]
}

func (r *Removal) rangeAt(pos int) Range {
	return r.spec.originalRange(pos).shift(r.shifts[pos])
}

// IndexRange returns the shifted range of key. Removed and unknown keys own
// no range.
func (r *Removal) IndexRange(key PublicKey) (Range, bool) {
	pos, ok := r.spec.positions[key]
	if !ok || r.removed.Contains(pos) {
		return Range{}, false
	}
	return r.rangeAt(pos), true
}

// ValidatorForIndex returns the remaining validator whose shifted range
// contains i.
func (r *Removal) ValidatorForIndex(i Participant) (PublicKey, bool) {
	if i == 0 || uint16(i) > r.TotalWeight() {
		return PublicKey{}, false
	}

	// Shifted ranges of live validators are dense and ascending, so the owner
	// is the first whose end lies past i.
	j := sort.Search(len(r.live), func(j int) bool {
		return r.rangeAt(r.live[j]).End > i
	})
	if j == len(r.live) {
		return PublicKey{}, false
	}
	pos := r.live[j]
	if !r.rangeAt(pos).Contains(i) {
		return PublicKey{}, false
	}
	return r.spec.validators[pos].Key, true
}
