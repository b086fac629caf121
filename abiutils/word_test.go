// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package abiutils

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func wordHex(w [WordSize]byte) string {
	return hex.EncodeToString(w[:])
}

func mustBig(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 0)
	if !ok {
		panic("invalid big int " + s)
	}
	return v
}

func TestEncodeIntWord(t *testing.T) {
	var testMatrix = []struct {
		value    string
		bits     int
		expected string
		overflow bool
	}{
		{"0", 8, "0000000000000000000000000000000000000000000000000000000000000000", false},
		{"-1", 8, "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", false},
		{"-1", 256, "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", false},
		{"-437829473", 256, "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffe5e7409f", false},
		{"127", 8, "000000000000000000000000000000000000000000000000000000000000007f", false},
		{"-128", 8, "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff80", false},
		{"128", 8, "", true},
		{"-129", 8, "", true},
		{"-57896044618658097711785492504343953926634992332820282019728792003956564819968", 256, "8000000000000000000000000000000000000000000000000000000000000000", false},
		{"57896044618658097711785492504343953926634992332820282019728792003956564819968", 256, "", true},
	}

	for _, test := range testMatrix {
		word, err := EncodeIntWord(mustBig(test.value), test.bits)
		if test.overflow {
			require.ErrorIs(t, err, ErrNumericOverflow, test.value)
			continue
		}
		require.NoError(t, err, test.value)
		require.Equal(t, test.expected, wordHex(word), test.value)

		decoded, err := DecodeIntWord(word[:], test.bits)
		require.NoError(t, err)
		require.Equal(t, 0, mustBig(test.value).Cmp(decoded), test.value)
	}
}

func TestEncodeUintWord(t *testing.T) {
	var testMatrix = []struct {
		value    string
		bits     int
		expected string
		overflow bool
	}{
		{"0", 8, "0000000000000000000000000000000000000000000000000000000000000000", false},
		{"255", 8, "00000000000000000000000000000000000000000000000000000000000000ff", false},
		{"256", 8, "", true},
		{"300", 8, "", true},
		{"-1", 256, "", true},
		{"0x123", 256, "0000000000000000000000000000000000000000000000000000000000000123", false},
		{"115792089237316195423570985008687907853269984665640564039457584007913129639935", 256, "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", false},
		{"115792089237316195423570985008687907853269984665640564039457584007913129639936", 256, "", true},
	}

	for _, test := range testMatrix {
		word, err := EncodeUintWord(mustBig(test.value), test.bits)
		if test.overflow {
			require.ErrorIs(t, err, ErrNumericOverflow, test.value)
			continue
		}
		require.NoError(t, err, test.value)
		require.Equal(t, test.expected, wordHex(word), test.value)

		decoded, err := DecodeUintWord(word[:], test.bits)
		require.NoError(t, err)
		require.Equal(t, 0, mustBig(test.value).Cmp(decoded), test.value)
	}
}

func TestDecodeWordRange(t *testing.T) {
	word := EncodeLengthWord(300)
	_, err := DecodeUintWord(word[:], 8)
	require.ErrorIs(t, err, ErrInvalidEncoding)

	v, err := DecodeUintWord(word[:], 16)
	require.NoError(t, err)
	require.Equal(t, int64(300), v.Int64())

	// 0xff is not a sign extended int8
	word = EncodeLengthWord(0xff)
	_, err = DecodeIntWord(word[:], 8)
	require.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestDecodeLengthWord(t *testing.T) {
	word := EncodeLengthWord(1234)
	n, ok := DecodeLengthWord(word[:])
	require.True(t, ok)
	require.Equal(t, 1234, n)

	var huge [WordSize]byte
	huge[0] = 1
	_, ok = DecodeLengthWord(huge[:])
	require.False(t, ok)
}

func TestPadding(t *testing.T) {
	require.Equal(t, 0, PaddedLength(0))
	require.Equal(t, 32, PaddedLength(1))
	require.Equal(t, 32, PaddedLength(32))
	require.Equal(t, 64, PaddedLength(33))

	require.Equal(t, []byte{0, 0, 1, 2}, LeftPadBytes([]byte{1, 2}, 4))
	require.Equal(t, []byte{1, 2, 0, 0}, RightPadBytes([]byte{1, 2}, 4))
	require.Equal(t, []byte{1, 2, 3}, RightPadBytes([]byte{1, 2, 3}, 2))
}
