// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package tributary

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyValidatorSet  = errors.New("empty validator set")
	ErrZeroWeight         = errors.New("validator has zero weight")
	ErrDuplicateValidator = errors.New("duplicate validator public key")
	ErrWeightOverflow     = errors.New("total weight overflows participant index")
	ErrInvalidPublicKey   = errors.New("invalid point for validator")
	ErrInvalidEncoding    = errors.New("invalid spec encoding")
	ErrUnknownNetwork     = errors.New("unknown network")
	ErrGenesisMismatch    = errors.New("genesis mismatch")
	ErrMissingField       = errors.New("missing required field")
)

// DecodeError reports where in a persisted spec decoding failed.
type DecodeError struct {
	Offset int
	Field  string
	Err    error
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s at offset %d (%s): %v", ErrInvalidEncoding, e.Offset, e.Field, e.Err)
}

// Unwrap lets errors.Is match both ErrInvalidEncoding and the cause.
func (e *DecodeError) Unwrap() []error {
	return []error{ErrInvalidEncoding, e.Err}
}
