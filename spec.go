// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package tributary is the validator-set directory of a Tributary, the
// per-session chain a validator set uses to coordinate threshold signing.
// It derives the Tributary's genesis and maps weighted validators to the
// participant indices they own, with or without some validators removed.
package tributary

import (
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/luxfi/ids"
	"github.com/luxfi/math/set"

	"github.com/luxfi/tributary/transcript"
)

var (
	genesisName     = []byte("Serai Tributary Genesis")
	genesisLabel    = []byte("genesis")
	seraiBlockLabel = []byte("serai_block")
	sessionLabel    = []byte("session")
	networkLabel    = []byte("network")
)

// Spec is the validator-set directory of a single Tributary. It is immutable
// once built and safe for concurrent use.
//
// Validators own contiguous participant ranges assigned by a left-to-right
// scan of their weights, so the first validator owns [1, 1+w0), the next
// [1+w0, 1+w0+w1) and so on up to the total weight.
//
// The zero value is not usable; build a Spec with New, Parse or
// json.Unmarshal.
type Spec struct {
	seraiBlock [32]byte
	startTime  uint64
	set        ValidatorSet
	validators []Validator

	// starts[i] is the first participant of validators[i]; starts[len] is
	// one past the last participant.
	starts    []Participant
	positions map[PublicKey]int
	genesis   ids.ID

	// layout with nothing removed
	base *Removal
}

// New builds the directory for validatorSet from the block it was formed at
// and its participants, in the order set formation produced them.
func New(
	seraiBlock [32]byte,
	startTime uint64,
	validatorSet ValidatorSet,
	validators []Validator,
) (*Spec, error) {
	if len(validators) == 0 {
		return nil, ErrEmptyValidatorSet
	}
	if !validatorSet.Network.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNetwork, uint8(validatorSet.Network))
	}

	s := &Spec{
		seraiBlock: seraiBlock,
		startTime:  startTime,
		set:        validatorSet,
		validators: slices.Clone(validators),
		starts:     make([]Participant, len(validators)+1),
		positions:  make(map[PublicKey]int, len(validators)),
	}

	var total uint16
	for i, v := range s.validators {
		if _, err := ParsePublicKey(v.Key[:]); err != nil {
			return nil, fmt.Errorf("validator %d: %w", i, err)
		}
		if v.Weight == 0 {
			return nil, fmt.Errorf("%w: validator %d (%s)", ErrZeroWeight, i, v.Key)
		}
		if prev, ok := s.positions[v.Key]; ok {
			return nil, fmt.Errorf("%w: %s at %d and %d", ErrDuplicateValidator, v.Key, prev, i)
		}
		s.positions[v.Key] = i

		s.starts[i] = Participant(total + 1)
		newTotal, err := AddUint16(total, v.Weight)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrWeightOverflow, err)
		}
		total = newTotal
	}
	// The exclusive end of the last range must itself be representable.
	end, err := AddUint16(total, 1)
	if err != nil {
		return nil, fmt.Errorf("%w: total weight %d", ErrWeightOverflow, total)
	}
	s.starts[len(s.validators)] = Participant(end)

	s.genesis = s.deriveGenesis()
	s.base = newRemoval(s, nil)
	return s, nil
}

func (s *Spec) deriveGenesis() ids.ID {
	t := transcript.New(genesisName)
	// Binds the Tributary to a specific Serai chain
	t.AppendMessage(seraiBlockLabel, s.seraiBlock[:])
	t.AppendMessage(sessionLabel, binary.LittleEndian.AppendUint32(nil, uint32(s.set.Session)))
	t.AppendMessage(networkLabel, s.set.Network.Encode())

	var genesis ids.ID
	copy(genesis[:], t.Challenge(genesisLabel))
	return genesis
}

// Genesis returns the identifier of this Tributary.
func (s *Spec) Genesis() ids.ID {
	return s.genesis
}

// Set returns the validator set this Tributary serves.
func (s *Spec) Set() ValidatorSet {
	return s.set
}

// SeraiBlock returns the hash of the block the set was formed at.
func (s *Spec) SeraiBlock() [32]byte {
	return s.seraiBlock
}

// StartTime returns the unix time, in seconds, the Tributary starts at.
func (s *Spec) StartTime() uint64 {
	return s.startTime
}

// Validators returns the validators in construction order
func (s *Spec) Validators() []Validator {
	return slices.Clone(s.validators)
}

// Len returns the number of validators
func (s *Spec) Len() int {
	return len(s.validators)
}

// Contains returns true if key is one of the validators, removed or not.
func (s *Spec) Contains(key PublicKey) bool {
	_, ok := s.positions[key]
	return ok
}

// N returns the total weight of every validator.
func (s *Spec) N() uint16 {
	return uint16(s.starts[len(s.validators)] - 1)
}

// Threshold returns the number of key shares needed to act for the set. It
// is fixed by the total weight at formation and ignores removals.
func (s *Spec) Threshold() uint16 {
	return uint16((2*uint32(s.N()))/3 + 1)
}

// originalRange returns the range of the validator at pos with nothing removed.
func (s *Spec) originalRange(pos int) Range {
	return Range{Start: s.starts[pos], End: s.starts[pos+1]}
}

// Removal resolves removed against this directory. Keys which aren't
// validators, and repeated keys, are ignored.
func (s *Spec) Removal(removed []PublicKey) *Removal {
	if len(removed) == 0 {
		return s.base
	}
	return newRemoval(s, removed)
}

// TotalWeight returns the weight of every validator not in removed.
func (s *Spec) TotalWeight(removed []PublicKey) uint16 {
	return s.Removal(removed).TotalWeight()
}

// IndexRange returns the participants owned by key once removed validators
// are excluded. Remaining ranges are shifted down over the gaps left by
// removed validators, keeping their relative order.
func (s *Spec) IndexRange(removed []PublicKey, key PublicKey) (Range, bool) {
	return s.Removal(removed).IndexRange(key)
}

// ValidatorForIndex returns the live validator owning participant i.
func (s *Spec) ValidatorForIndex(removed []PublicKey, i Participant) (PublicKey, bool) {
	return s.Removal(removed).ValidatorForIndex(i)
}

// SignedWeight returns how many distinct live participants are in
// participants.
func (s *Spec) SignedWeight(removed []PublicKey, participants []Participant) uint16 {
	r := s.Removal(removed)
	total := r.TotalWeight()

	seen := set.NewSet[Participant](len(participants))
	for _, i := range participants {
		if i == 0 || uint16(i) > total {
			continue
		}
		seen.Add(i)
	}
	return uint16(seen.Len())
}

// MeetsThreshold returns true if participants hold at least Threshold live
// key shares.
func (s *Spec) MeetsThreshold(removed []PublicKey, participants []Participant) bool {
	return s.SignedWeight(removed, participants) >= s.Threshold()
}

// Equal returns true if both directories were built from the same inputs.
func (s *Spec) Equal(other *Spec) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.seraiBlock == other.seraiBlock &&
		s.startTime == other.startTime &&
		s.set == other.set &&
		slices.Equal(s.validators, other.validators)
}
