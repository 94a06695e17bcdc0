// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package transcript implements a domain-separated Fiat-Shamir style
// transcript over BLAKE2b-512.
//
// Every member is framed as kind || u64 little-endian length || bytes, so no
// two distinct sequences of appends produce the same hash input.
package transcript

import (
	"encoding"
	"encoding/binary"
	"hash"

	"golang.org/x/crypto/blake2b"
)

// ChallengeLen is the length of a challenge in bytes
const ChallengeLen = blake2b.Size

type member byte

const (
	memberName member = iota
	memberDomain
	memberLabel
	memberValue
	memberChallenge
	memberContinued
	memberChallenged
)

// Transcript accumulates labelled messages and produces challenges bound to
// everything appended so far. The zero value is not usable; call New.
type Transcript struct {
	h hash.Hash
}

func newHash() hash.Hash {
	// New512 only fails for keys longer than 64 bytes.
	h, _ := blake2b.New512(nil)
	return h
}

// New starts a transcript with the given name
func New(name []byte) *Transcript {
	t := &Transcript{h: newHash()}
	t.append(memberName, name)
	return t
}

func (t *Transcript) append(kind member, value []byte) {
	var length [8]byte
	binary.LittleEndian.PutUint64(length[:], uint64(len(value)))

	t.h.Write([]byte{byte(kind)})
	t.h.Write(length[:])
	t.h.Write(value)
}

// fork returns a copy of the running digest.
func (t *Transcript) fork() hash.Hash {
	state, err := t.h.(encoding.BinaryMarshaler).MarshalBinary()
	if err != nil {
		panic(err)
	}
	h := newHash()
	if err := h.(encoding.BinaryUnmarshaler).UnmarshalBinary(state); err != nil {
		panic(err)
	}
	return h
}

// DomainSeparate applies a domain separator
func (t *Transcript) DomainSeparate(label []byte) {
	t.append(memberDomain, label)
}

// AppendMessage appends a labelled message
func (t *Transcript) AppendMessage(label, message []byte) {
	t.append(memberLabel, label)
	t.append(memberValue, message)
}

// Challenge returns a ChallengeLen-byte challenge and advances the
// transcript, so the same label never yields the same challenge twice. The
// challenged branch and the continuing state are forked with distinct markers.
func (t *Transcript) Challenge(label []byte) []byte {
	t.append(memberChallenge, label)

	challenged := t.fork()
	challenged.Write([]byte{byte(memberChallenged)})

	t.h.Write([]byte{byte(memberContinued)})
	return challenged.Sum(nil)
}

// RNGSeed returns a 32-byte seed taken from a challenge.
func (t *Transcript) RNGSeed(label []byte) [32]byte {
	var seed [32]byte
	copy(seed[:], t.Challenge(label))
	return seed
}

// Clone returns an independent copy of the transcript
func (t *Transcript) Clone() *Transcript {
	return &Transcript{h: t.fork()}
}
