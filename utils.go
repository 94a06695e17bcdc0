// Copyright (C) 2019-2025, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package tributary

import (
	"errors"
	"math"
)

// AddUint16 adds two uint16 values and returns an error if overflow
func AddUint16(a, b uint16) (uint16, error) {
	if a > math.MaxUint16-b {
		return 0, errors.New("addition would overflow")
	}
	return a + b, nil
}
