// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package tributary

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpecJSONRoundTrip(t *testing.T) {
	require := require.New(t)

	spec := newTestSpec(t, weighted(2, 1, 3)...)
	b, err := json.Marshal(spec)
	require.NoError(err)
	require.Contains(string(b), `"network":"bitcoin"`)
	require.Contains(string(b), GenesisHash(spec.Genesis()).Hex())

	var decoded Spec
	require.NoError(json.Unmarshal(b, &decoded))
	require.True(spec.Equal(&decoded))
	require.Equal(spec.Genesis(), decoded.Genesis())
}

func TestSpecJSONWithoutGenesis(t *testing.T) {
	require := require.New(t)

	key := testKey("a")
	input := `{
		"seraiBlock": "0x0000000000000000000000000000000000000000000000000000000000000001",
		"startTime": 10,
		"session": 2,
		"network": "Ethereum",
		"validators": [{"key": "` + key.String() + `", "weight": 4}]
	}`

	var spec Spec
	require.NoError(json.Unmarshal([]byte(input), &spec))
	require.Equal(ValidatorSet{Session: 2, Network: Ethereum}, spec.Set())
	require.Equal(uint64(10), spec.StartTime())
	require.Equal(uint16(4), spec.N())
	require.Equal(byte(1), spec.SeraiBlock()[31])
}

func TestSpecJSONErrors(t *testing.T) {
	spec := newTestSpec(t, weighted(2, 1)...)
	b, err := json.Marshal(spec)
	require.NoError(t, err)
	valid := string(b)

	tests := []struct {
		name        string
		input       string
		expectedErr error
	}{
		{
			name:        "genesis mismatch",
			input:       strings.Replace(valid, `"session":0`, `"session":1`, 1),
			expectedErr: ErrGenesisMismatch,
		},
		{
			name:        "unknown network",
			input:       strings.Replace(valid, `"bitcoin"`, `"dogecoin"`, 1),
			expectedErr: ErrUnknownNetwork,
		},
		{
			name:        "invalid key",
			input:       strings.Replace(valid, spec.Validators()[0].Key.String(), "0x"+strings.Repeat("ff", PublicKeyLen), 1),
			expectedErr: ErrInvalidPublicKey,
		},
		{
			name:        "zero weight",
			input:       strings.Replace(valid, `"weight":2`, `"weight":0`, 1),
			expectedErr: ErrZeroWeight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var decoded Spec
			err := json.Unmarshal([]byte(tt.input), &decoded)
			require.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestSpecJSONMissingField(t *testing.T) {
	spec := newTestSpec(t, weighted(2, 1)...)
	b, err := json.Marshal(spec)
	require.NoError(t, err)

	for _, field := range []string{"seraiBlock", "startTime", "session", "network", "validators"} {
		t.Run(field, func(t *testing.T) {
			require := require.New(t)

			var fields map[string]json.RawMessage
			require.NoError(json.Unmarshal(b, &fields))
			delete(fields, field)
			// Without the genesis nothing else would catch a defaulted field.
			delete(fields, "genesis")
			input, err := json.Marshal(fields)
			require.NoError(err)

			var decoded Spec
			err = json.Unmarshal(input, &decoded)
			require.ErrorIs(err, ErrMissingField)
			require.Contains(err.Error(), field)
		})
	}
}

func TestPublicKeyText(t *testing.T) {
	require := require.New(t)

	key := testKey("key")
	text, err := key.MarshalText()
	require.NoError(err)
	require.True(strings.HasPrefix(string(text), "0x"))

	var parsed PublicKey
	require.NoError(parsed.UnmarshalText(text))
	require.Equal(key, parsed)
	require.Equal(0, key.Compare(parsed))

	require.ErrorIs(parsed.UnmarshalText([]byte("0x1234")), ErrInvalidPublicKey)
	require.ErrorIs(parsed.UnmarshalText([]byte("not hex")), ErrInvalidPublicKey)

	element, err := key.Element()
	require.NoError(err)
	require.Equal(key, PublicKeyFromElement(element))

	var invalid PublicKey
	for i := range invalid {
		invalid[i] = 0xff
	}
	_, err = invalid.Element()
	require.ErrorIs(err, ErrInvalidPublicKey)
}
