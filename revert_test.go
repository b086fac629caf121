// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package dynabi_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	dynabi "github.com/pk910/dynamic-abi"
	"github.com/pk910/dynamic-abi/abitypes"
	"github.com/pk910/dynamic-abi/abiutils"
)

func TestDecodeRevert(t *testing.T) {
	var testMatrix = []struct {
		name    string
		data    []byte
		panic   bool
		message string
		code    int64
	}{
		{
			"error_string",
			fromHex("0x08c379a00000000000000000000000000000000000000000000000000000000000000020000000000000000000000000000000000000000000000000000000000000001a4e6f7420656e6f7567682045746865722070726f76696465642e000000000000"),
			false, "Not enough Ether provided.", 0,
		},
		{
			"panic_overflow",
			fromHex("0x4e487b710000000000000000000000000000000000000000000000000000000000000011"),
			true, "arithmetic underflow or overflow", 0x11,
		},
		{
			"panic_unknown",
			fromHex("0x4e487b7100000000000000000000000000000000000000000000000000000000000000ee"),
			true, "unknown panic code", 0xee,
		},
	}

	for _, test := range testMatrix {
		t.Run(test.name, func(t *testing.T) {
			reason, err := dynabi.DecodeRevert(test.data)
			require.NoError(t, err)
			require.Equal(t, test.panic, reason.Panic)
			require.Equal(t, test.message, reason.Message)
			if test.panic {
				require.Equal(t, 0, big.NewInt(test.code).Cmp(reason.Code))
			}
		})
	}

	_, err := dynabi.DecodeRevert(fromHex("0xcf479181"))
	require.ErrorIs(t, err, abiutils.ErrSelectorMismatch)

	_, err = dynabi.DecodeRevert(fromHex("0x08c3"))
	require.ErrorIs(t, err, abiutils.ErrTruncatedBuffer)
}

func TestDecodeCustomError(t *testing.T) {
	abi, err := abitypes.ParseABI([]byte(`[
		{"type":"error","name":"InsufficientBalance","inputs":[{"name":"available","type":"uint256"},{"name":"required","type":"uint256"}]}
	]`))
	require.NoError(t, err)

	data := fromHex("0xcf479181000000000000000000000000000000000000000000000000000000000000000a0000000000000000000000000000000000000000000000000000000000000014")

	method, values, err := dynabi.NewCodec().DecodeCustomError(abi, data)
	require.NoError(t, err)
	require.Equal(t, "InsufficientBalance(uint256,uint256)", method.Signature())
	requireValues(t, []any{big.NewInt(10), big.NewInt(20)}, values)
}
