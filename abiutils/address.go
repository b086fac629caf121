// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package abiutils

import (
	"encoding/hex"
	"fmt"
)

// AddressLength is the byte length of an account address.
const AddressLength = 20

// Address is a 160-bit account address.
type Address [AddressLength]byte

// BytesToAddress returns the address with value b. If b is longer than
// AddressLength, it is cropped from the left.
func BytesToAddress(b []byte) Address {
	var a Address
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
	return a
}

// HexToAddress parses a 0x-prefixed (or bare) 40 digit hex string.
func HexToAddress(s string) (Address, error) {
	raw, err := FromHex(s)
	if err != nil {
		return Address{}, err
	}
	if len(raw) != AddressLength {
		return Address{}, fmt.Errorf("%w: address must be %d bytes, got %d", ErrInvalidByteLength, AddressLength, len(raw))
	}
	return BytesToAddress(raw), nil
}

// Hex returns the EIP-55 mixed-case checksum representation of the address.
func (a Address) Hex() string {
	buf := make([]byte, AddressLength*2+2)
	copy(buf[:2], "0x")
	hex.Encode(buf[2:], a[:])

	digest := Keccak256(buf[2:])
	for i := 2; i < len(buf); i++ {
		hashByte := digest[(i-2)/2]
		if i%2 == 0 {
			hashByte = hashByte >> 4
		} else {
			hashByte &= 0xf
		}
		if buf[i] > '9' && hashByte > 7 {
			buf[i] -= 32
		}
	}
	return string(buf)
}

func (a Address) String() string {
	return a.Hex()
}

// MarshalText encodes the address as checksummed hex.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.Hex()), nil
}

// UnmarshalText parses a hex encoded address.
func (a *Address) UnmarshalText(input []byte) error {
	parsed, err := HexToAddress(string(input))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
