// Copyright (C) 2019-2025, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package tributary

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// seraiBlock, startTime, session, network, validator count
	headerLen = 32 + 8 + 4 + 1 + 2
	// key, weight
	validatorLen = PublicKeyLen + 2
)

var (
	errTruncated     = errors.New("unexpected end of input")
	errTrailingBytes = errors.New("trailing bytes")
)

// Bytes returns the persisted form of the spec. All integers are
// little-endian:
//
//	serai_block [32] | start_time u64 | session u32 | network u8 |
//	count u16 | count * (key [32] | weight u16)
func (s *Spec) Bytes() []byte {
	b := make([]byte, 0, headerLen+len(s.validators)*validatorLen)
	b = append(b, s.seraiBlock[:]...)
	b = binary.LittleEndian.AppendUint64(b, s.startTime)
	b = binary.LittleEndian.AppendUint32(b, uint32(s.set.Session))
	b = append(b, s.set.Network.Encode()...)
	// New bounds the count by the total weight, which fits a uint16.
	b = binary.LittleEndian.AppendUint16(b, uint16(len(s.validators)))
	for _, v := range s.validators {
		b = append(b, v.Key[:]...)
		b = binary.LittleEndian.AppendUint16(b, v.Weight)
	}
	return b
}

// MarshalBinary implements encoding.BinaryMarshaler
func (s *Spec) MarshalBinary() ([]byte, error) {
	return s.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler
func (s *Spec) UnmarshalBinary(b []byte) error {
	parsed, err := Parse(b)
	if err != nil {
		return err
	}
	*s = *parsed
	// base points back at its spec, so rebuild it for the receiver.
	s.base = newRemoval(s, nil)
	return nil
}

type reader struct {
	b   []byte
	off int
}

func (r *reader) next(n int, field string) ([]byte, error) {
	if len(r.b)-r.off < n {
		return nil, &DecodeError{Offset: r.off, Field: field, Err: errTruncated}
	}
	out := r.b[r.off : r.off+n]
	r.off += n
	return out, nil
}

// Parse decodes a spec from its persisted form. The result is validated
// exactly as New validates its inputs.
func Parse(b []byte) (*Spec, error) {
	r := &reader{b: b}

	raw, err := r.next(32, "serai_block")
	if err != nil {
		return nil, err
	}
	var seraiBlock [32]byte
	copy(seraiBlock[:], raw)

	if raw, err = r.next(8, "start_time"); err != nil {
		return nil, err
	}
	startTime := binary.LittleEndian.Uint64(raw)

	if raw, err = r.next(4, "session"); err != nil {
		return nil, err
	}
	session := Session(binary.LittleEndian.Uint32(raw))

	offset := r.off
	if raw, err = r.next(1, "network"); err != nil {
		return nil, err
	}
	network := NetworkID(raw[0])
	if !network.Valid() {
		return nil, &DecodeError{Offset: offset, Field: "network", Err: fmt.Errorf("%w: %d", ErrUnknownNetwork, raw[0])}
	}

	if raw, err = r.next(2, "count"); err != nil {
		return nil, err
	}
	count := int(binary.LittleEndian.Uint16(raw))

	validators := make([]Validator, 0, min(count, (len(b)-r.off)/validatorLen))
	for i := 0; i < count; i++ {
		offset := r.off
		field := fmt.Sprintf("validator %d key", i)
		if raw, err = r.next(PublicKeyLen, field); err != nil {
			return nil, err
		}
		key, err := ParsePublicKey(raw)
		if err != nil {
			return nil, &DecodeError{Offset: offset, Field: field, Err: err}
		}

		if raw, err = r.next(2, fmt.Sprintf("validator %d weight", i)); err != nil {
			return nil, err
		}
		validators = append(validators, Validator{
			Key:    key,
			Weight: binary.LittleEndian.Uint16(raw),
		})
	}

	if r.off != len(b) {
		return nil, &DecodeError{Offset: r.off, Field: "end", Err: errTrailingBytes}
	}

	spec, err := New(seraiBlock, startTime, ValidatorSet{Session: session, Network: network}, validators)
	if err != nil {
		return nil, &DecodeError{Offset: headerLen, Field: "validators", Err: err}
	}
	return spec, nil
}
