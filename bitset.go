// Copyright (C) 2019-2025, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package tributary

import (
	"fmt"
	"math/bits"
)

// Bits marks validator positions within a Spec. Position i is the i-th
// validator in construction order.
type Bits []byte

// NewBits returns a set sized for n positions
func NewBits(n int) Bits {
	return make(Bits, (n+7)/8)
}

// Add marks position i, growing the set if needed
func (b *Bits) Add(i int) {
	if i < 0 {
		return
	}
	byteIndex := i / 8
	for len(*b) <= byteIndex {
		*b = append(*b, 0)
	}
	(*b)[byteIndex] |= 1 << uint(i%8) //nolint:gosec // i%8 is always 0-7
}

// Contains returns true if position i is marked
func (b Bits) Contains(i int) bool {
	if i < 0 {
		return false
	}
	byteIndex := i / 8
	if byteIndex >= len(b) {
		return false
	}
	return b[byteIndex]&(1<<uint(i%8)) != 0 //nolint:gosec // i%8 is always 0-7
}

// Len returns the number of marked positions
func (b Bits) Len() int {
	count := 0
	for _, octet := range b {
		count += bits.OnesCount8(octet)
	}
	return count
}

// Positions returns the marked positions in ascending order
func (b Bits) Positions() []int {
	positions := make([]int, 0, b.Len())
	for i := 0; i < len(b)*8; i++ {
		if b.Contains(i) {
			positions = append(positions, i)
		}
	}
	return positions
}

func (b Bits) String() string {
	return fmt.Sprintf("%v", b.Positions())
}
