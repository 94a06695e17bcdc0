// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package transcript

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"
)

func frame(kind member, value []byte) []byte {
	b := []byte{byte(kind)}
	b = binary.LittleEndian.AppendUint64(b, uint64(len(value)))
	return append(b, value...)
}

func TestChallengeFraming(t *testing.T) {
	require := require.New(t)

	tr := New([]byte("name"))
	tr.DomainSeparate([]byte("domain"))
	tr.AppendMessage([]byte("label"), []byte("message"))
	challenge := tr.Challenge([]byte("challenge"))

	var input []byte
	input = append(input, frame(memberName, []byte("name"))...)
	input = append(input, frame(memberDomain, []byte("domain"))...)
	input = append(input, frame(memberLabel, []byte("label"))...)
	input = append(input, frame(memberValue, []byte("message"))...)
	input = append(input, frame(memberChallenge, []byte("challenge"))...)
	input = append(input, byte(memberChallenged))
	expected := blake2b.Sum512(input)

	require.Len(challenge, ChallengeLen)
	require.Equal(expected[:], challenge)
}

func TestChallengeDeterministic(t *testing.T) {
	build := func(msg string) []byte {
		tr := New([]byte("test"))
		tr.AppendMessage([]byte("msg"), []byte(msg))
		return tr.Challenge([]byte("c"))
	}

	require.Equal(t, build("a"), build("a"))
	require.NotEqual(t, build("a"), build("b"))
}

func TestChallengeAdvances(t *testing.T) {
	require := require.New(t)

	tr := New([]byte("test"))
	first := tr.Challenge([]byte("c"))
	second := tr.Challenge([]byte("c"))
	require.NotEqual(first, second)
}

func TestFramingSeparatesMembers(t *testing.T) {
	// Moving bytes between label and message must change the challenge.
	a := New([]byte("test"))
	a.AppendMessage([]byte("ab"), []byte("c"))

	b := New([]byte("test"))
	b.AppendMessage([]byte("a"), []byte("bc"))

	require.NotEqual(t, a.Challenge([]byte("x")), b.Challenge([]byte("x")))
}

func TestCloneIsIndependent(t *testing.T) {
	require := require.New(t)

	tr := New([]byte("test"))
	tr.AppendMessage([]byte("msg"), []byte("shared"))

	clone := tr.Clone()
	clone.AppendMessage([]byte("msg"), []byte("extra"))

	fresh := New([]byte("test"))
	fresh.AppendMessage([]byte("msg"), []byte("shared"))

	require.Equal(fresh.Challenge([]byte("c")), tr.Challenge([]byte("c")))
}

func TestRNGSeed(t *testing.T) {
	a := New([]byte("seed"))
	b := New([]byte("seed"))

	challenge := a.Challenge([]byte("rng"))
	seed := b.RNGSeed([]byte("rng"))
	require.Equal(t, challenge[:32], seed[:])
}

func TestChallengeContinuesState(t *testing.T) {
	require := require.New(t)

	tr := New([]byte("name"))
	_ = tr.Challenge([]byte("first"))
	tr.AppendMessage([]byte("label"), []byte("message"))
	second := tr.Challenge([]byte("second"))

	var input []byte
	input = append(input, frame(memberName, []byte("name"))...)
	input = append(input, frame(memberChallenge, []byte("first"))...)
	input = append(input, byte(memberContinued))
	input = append(input, frame(memberLabel, []byte("label"))...)
	input = append(input, frame(memberValue, []byte("message"))...)
	input = append(input, frame(memberChallenge, []byte("second"))...)
	input = append(input, byte(memberChallenged))
	expected := blake2b.Sum512(input)

	require.Equal(expected[:], second)
}
