// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package tributary

import (
	"encoding/json"
	"fmt"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/ids"
)

// Fields are pointers so a missing field is told apart from a zero one.
type specJSON struct {
	SeraiBlock *common.Hash `json:"seraiBlock"`
	StartTime  *uint64      `json:"startTime"`
	Session    *uint32      `json:"session"`
	Network    *NetworkID   `json:"network"`
	Validators []Validator  `json:"validators"`
	Genesis    *common.Hash `json:"genesis,omitempty"`
}

// GenesisHash returns the genesis as a common.Hash (for EVM compatibility)
func GenesisHash(genesis ids.ID) common.Hash {
	return common.BytesToHash(genesis[:])
}

// MarshalJSON implements json.Marshaler. The derived genesis is included for
// reference.
func (s *Spec) MarshalJSON() ([]byte, error) {
	var (
		seraiBlock = common.Hash(s.seraiBlock)
		session    = uint32(s.set.Session)
		genesis    = GenesisHash(s.genesis)
	)
	return json.Marshal(specJSON{
		SeraiBlock: &seraiBlock,
		StartTime:  &s.startTime,
		Session:    &session,
		Network:    &s.set.Network,
		Validators: s.validators,
		Genesis:    &genesis,
	})
}

// UnmarshalJSON implements json.Unmarshaler. If a genesis is present it must
// match the one derived from the other fields.
func (s *Spec) UnmarshalJSON(b []byte) error {
	var raw specJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch {
	case raw.SeraiBlock == nil:
		return fmt.Errorf("%w: seraiBlock", ErrMissingField)
	case raw.StartTime == nil:
		return fmt.Errorf("%w: startTime", ErrMissingField)
	case raw.Session == nil:
		return fmt.Errorf("%w: session", ErrMissingField)
	case raw.Network == nil:
		return fmt.Errorf("%w: network", ErrMissingField)
	case raw.Validators == nil:
		return fmt.Errorf("%w: validators", ErrMissingField)
	}

	parsed, err := New(
		*raw.SeraiBlock,
		*raw.StartTime,
		ValidatorSet{Session: Session(*raw.Session), Network: *raw.Network},
		raw.Validators,
	)
	if err != nil {
		return err
	}
	if raw.Genesis != nil {
		if derived := GenesisHash(parsed.genesis); *raw.Genesis != derived {
			return fmt.Errorf("%w: expected %s, derived %s", ErrGenesisMismatch, raw.Genesis.Hex(), derived.Hex())
		}
	}

	*s = *parsed
	s.base = newRemoval(s, nil)
	return nil
}
