// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package tributary

import (
	"bytes"
	"fmt"

	"github.com/gtank/ristretto255"
	"github.com/luxfi/geth/common/hexutil"
)

// PublicKeyLen is the length of a compressed Ristretto255 point
const PublicKeyLen = 32

// PublicKey is the canonical compressed encoding of a validator's Ristretto255
// key. Canonical encodings are unique, so byte equality is point equality.
//
// A PublicKey converted directly from bytes is not checked; New rejects keys
// that don't decode, and ParsePublicKey validates untrusted input.
type PublicKey [PublicKeyLen]byte

// ParsePublicKey validates b as a compressed Ristretto255 point.
func ParsePublicKey(b []byte) (PublicKey, error) {
	var key PublicKey
	if len(b) != PublicKeyLen {
		return key, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidPublicKey, PublicKeyLen, len(b))
	}
	if err := ristretto255.NewElement().Decode(b); err != nil {
		return key, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	copy(key[:], b)
	return key, nil
}

// PublicKeyFromElement encodes a group element as a PublicKey.
func PublicKeyFromElement(e *ristretto255.Element) PublicKey {
	var key PublicKey
	copy(key[:], e.Encode(nil))
	return key
}

// Element decodes the key back into its group element.
func (k PublicKey) Element() (*ristretto255.Element, error) {
	e := ristretto255.NewElement()
	if err := e.Decode(k[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return e, nil
}

// Bytes returns a copy of the compressed encoding
func (k PublicKey) Bytes() []byte {
	return bytes.Clone(k[:])
}

// Compare orders keys by their encoding.
func (k PublicKey) Compare(other PublicKey) int {
	return bytes.Compare(k[:], other[:])
}

func (k PublicKey) String() string {
	return hexutil.Encode(k[:])
}

func (k PublicKey) MarshalText() ([]byte, error) {
	return hexutil.Bytes(k[:]).MarshalText()
}

func (k *PublicKey) UnmarshalText(text []byte) error {
	var raw hexutil.Bytes
	if err := raw.UnmarshalText(text); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	parsed, err := ParsePublicKey(raw)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Validator is a key together with the number of key shares it controls.
type Validator struct {
	Key    PublicKey `json:"key"`
	Weight uint16    `json:"weight"`
}
