// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package tributary

import (
	"testing"

	"github.com/gtank/ristretto255"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"
)

// testKey deterministically maps seed to a valid key.
func testKey(seed string) PublicKey {
	uniform := blake2b.Sum512([]byte(seed))
	return PublicKeyFromElement(ristretto255.NewElement().FromUniformBytes(uniform[:]))
}

func testBlock(seed string) [32]byte {
	return blake2b.Sum256([]byte(seed))
}

var testSet = ValidatorSet{Session: 0, Network: Bitcoin}

func newTestSpec(t *testing.T, validators ...Validator) *Spec {
	t.Helper()

	spec, err := New(testBlock("block"), 1_700_000_000, testSet, validators)
	require.NoError(t, err)
	return spec
}

// weighted returns validators named v0, v1, ... with the given weights.
func weighted(weights ...uint16) []Validator {
	validators := make([]Validator, len(weights))
	for i, weight := range weights {
		validators[i] = Validator{
			Key:    testKey(string(rune('a' + i))),
			Weight: weight,
		}
	}
	return validators
}

// subsets returns every subset of validators' keys.
func subsets(validators []Validator) [][]PublicKey {
	all := make([][]PublicKey, 0, 1<<len(validators))
	for mask := 0; mask < 1<<len(validators); mask++ {
		var keys []PublicKey
		for i, v := range validators {
			if mask&(1<<i) != 0 {
				keys = append(keys, v.Key)
			}
		}
		all = append(all, keys)
	}
	return all
}
