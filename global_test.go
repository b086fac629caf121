// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package dynabi_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	dynabi "github.com/pk910/dynamic-abi"
	"github.com/pk910/dynamic-abi/abiutils"
)

func TestGlobalCodec(t *testing.T) {
	defaultCodec := dynabi.GetGlobalCodec()
	require.NotNil(t, defaultCodec)
	require.Same(t, defaultCodec, dynabi.GetGlobalCodec())

	strict := dynabi.NewCodec(dynabi.WithStrictDecode())
	dynabi.SetGlobalCodec(strict)
	defer dynabi.SetGlobalCodec(defaultCodec)

	require.Same(t, strict, dynabi.GetGlobalCodec())

	method := mustParseSignature(t, "b(bytes)")
	data, err := dynabi.EncodeFunctionCall(method, "0x01")
	require.NoError(t, err)

	_, err = dynabi.DecodeFunctionInput(method, append(data, 0))
	require.ErrorIs(t, err, abiutils.ErrInvalidEncoding)
}

func TestSetGlobalConstants(t *testing.T) {
	defaultCodec := dynabi.GetGlobalCodec()
	defer dynabi.SetGlobalCodec(defaultCodec)

	dynabi.SetGlobalConstants(map[string]any{"N": 2})
	data, err := dynabi.Encode("pair(uint256[N])", []int{1, 2})
	require.NoError(t, err)
	require.Len(t, data, 4+2*abiutils.WordSize)
}
