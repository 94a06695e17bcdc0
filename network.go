// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package tributary

import (
	"fmt"
	"strings"
)

// NetworkID identifies the network a validator set is responsible for. Its
// canonical encoding is the single-byte variant index.
type NetworkID uint8

const (
	Serai NetworkID = iota
	Bitcoin
	Ethereum
	Monero
)

var networkNames = [...]string{
	Serai:    "serai",
	Bitcoin:  "bitcoin",
	Ethereum: "ethereum",
	Monero:   "monero",
}

// Valid reports whether n is a known network.
func (n NetworkID) Valid() bool {
	return int(n) < len(networkNames)
}

// Encode returns the canonical encoding of the network.
func (n NetworkID) Encode() []byte {
	return []byte{byte(n)}
}

func (n NetworkID) String() string {
	if !n.Valid() {
		return fmt.Sprintf("network(%d)", uint8(n))
	}
	return networkNames[n]
}

// ParseNetworkID returns the network with the given name, case-insensitively.
func ParseNetworkID(name string) (NetworkID, error) {
	for i, known := range networkNames {
		if strings.EqualFold(name, known) {
			return NetworkID(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownNetwork, name)
}

func (n NetworkID) MarshalText() ([]byte, error) {
	if !n.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNetwork, uint8(n))
	}
	return []byte(networkNames[n]), nil
}

func (n *NetworkID) UnmarshalText(text []byte) error {
	parsed, err := ParseNetworkID(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// Session is the epoch during which a fixed validator set serves a network.
type Session uint32

// ValidatorSet identifies a specific validator set during a specific session.
type ValidatorSet struct {
	Session Session
	Network NetworkID
}

func (s ValidatorSet) String() string {
	return fmt.Sprintf("%s/%d", s.Network, s.Session)
}
