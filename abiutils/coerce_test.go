// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package abiutils

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

type namedUint uint16

func TestCoerceToBigInt(t *testing.T) {
	var testMatrix = []struct {
		input    any
		expected string
	}{
		{int(-5), "-5"},
		{int8(-128), "-128"},
		{uint8(255), "255"},
		{namedUint(1337), "1337"},
		{uint64(18446744073709551615), "18446744073709551615"},
		{big.NewInt(42), "42"},
		{*big.NewInt(43), "43"},
		{uint256.NewInt(44), "44"},
		{json.Number("123456789012345678901234567890"), "123456789012345678901234567890"},
		{"0x10", "16"},
		{"-0x10", "-16"},
		{" 99 ", "99"},
	}

	for _, test := range testMatrix {
		v, err := CoerceToBigInt(test.input)
		require.NoError(t, err, "%T", test.input)
		require.Equal(t, test.expected, v.String())
	}

	for _, input := range []any{"", "0x", "abc", 1.5, nil, (*big.Int)(nil), true} {
		_, err := CoerceToBigInt(input)
		require.ErrorIs(t, err, ErrInvalidValue, "%#v", input)
	}
}

func TestCoerceToBigIntCopies(t *testing.T) {
	original := big.NewInt(7)
	v, err := CoerceToBigInt(original)
	require.NoError(t, err)
	v.SetInt64(8)
	require.Equal(t, int64(7), original.Int64())
}

func TestCoerceToBytes(t *testing.T) {
	var testMatrix = []struct {
		input    any
		expected []byte
	}{
		{[]byte{1, 2}, []byte{1, 2}},
		{"0x0102", []byte{1, 2}},
		{"0102", []byte{1, 2}},
		{"0x", []byte{}},
		{[4]byte{1, 2, 3, 4}, []byte{1, 2, 3, 4}},
	}

	for _, test := range testMatrix {
		v, err := CoerceToBytes(test.input)
		require.NoError(t, err)
		require.Equal(t, test.expected, v)
	}

	_, err := CoerceToBytes("0x123")
	require.ErrorIs(t, err, ErrInvalidByteLength)

	_, err = CoerceToBytes("0xzz")
	require.ErrorIs(t, err, ErrInvalidValue)

	_, err = CoerceToBytes(42)
	require.ErrorIs(t, err, ErrInvalidValue)
}

func TestCoerceToAddress(t *testing.T) {
	expected, err := HexToAddress("0x0000000000000000000000000000000000000100")
	require.NoError(t, err)

	for _, input := range []any{expected, &expected, [20]byte(expected), expected[:], "0x0000000000000000000000000000000000000100", 256, big.NewInt(256)} {
		addr, err := CoerceToAddress(input)
		require.NoError(t, err, "%T", input)
		require.Equal(t, expected, addr)
	}

	_, err = CoerceToAddress(new(big.Int).Lsh(big.NewInt(1), 160))
	require.ErrorIs(t, err, ErrNumericOverflow)

	_, err = CoerceToAddress(-1)
	require.ErrorIs(t, err, ErrNumericOverflow)

	_, err = CoerceToAddress([]byte{1, 2, 3})
	require.ErrorIs(t, err, ErrInvalidByteLength)

	_, err = CoerceToAddress(true)
	require.ErrorIs(t, err, ErrInvalidValue)
}

func TestCoerceToStringAndBool(t *testing.T) {
	type label string

	s, err := CoerceToString(label("five"))
	require.NoError(t, err)
	require.Equal(t, "five", s)

	s, err = CoerceToString([]byte("raw"))
	require.NoError(t, err)
	require.Equal(t, "raw", s)

	_, err = CoerceToString(big.NewInt(1))
	require.ErrorIs(t, err, ErrInvalidValue)

	b, err := CoerceToBool(true)
	require.NoError(t, err)
	require.True(t, b)

	_, err = CoerceToBool(1)
	require.ErrorIs(t, err, ErrInvalidValue)
}
