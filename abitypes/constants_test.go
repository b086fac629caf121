// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package abitypes

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pk910/dynamic-abi/abiutils"
)

func TestParseSignatureWithConstants(t *testing.T) {
	constants := map[string]any{
		"MAX_OWNERS": 3,
		"DEPTH":      uint64(4),
		"HALF":       0.5,
	}

	var testMatrix = []struct {
		input     string
		signature string
	}{
		{"setOwners(address[MAX_OWNERS] owners)", "setOwners(address[3])"},
		{"verify(bytes32[DEPTH * 2] proof, bytes32 root)", "verify(bytes32[8],bytes32)"},
		{"grid(uint8[DEPTH][MAX_OWNERS][])", "grid(uint8[4][3][])"},
		{"pairs((uint256,bool)[MAX_OWNERS - 1])", "pairs((uint256,bool)[2])"},
		{"plain(uint256[2],uint256[])", "plain(uint256[2],uint256[])"},
	}

	for _, test := range testMatrix {
		method, err := ParseSignatureWithConstants(test.input, constants)
		require.NoError(t, err, test.input)
		require.Equal(t, test.signature, method.Signature(), test.input)
	}

	for _, input := range []string{
		"f(uint256[UNKNOWN])",
		"f(uint256[HALF])",
		"f(uint256[DEPTH - 4])",
		"f(uint256[DEPTH +])",
		"f(uint256['x'])",
	} {
		_, err := ParseSignatureWithConstants(input, constants)
		require.ErrorIs(t, err, abiutils.ErrMalformedType, input)
	}

	_, err := ParseSignature("setOwners(address[MAX_OWNERS])")
	require.ErrorIs(t, err, abiutils.ErrMalformedType)
}
