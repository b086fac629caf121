// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package abitypes

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pk910/dynamic-abi/abiutils"
)

const tokenABIJSON = `[
	{"type": "constructor", "inputs": [{"name": "supply", "type": "uint256"}], "stateMutability": "nonpayable"},
	{"type": "function", "name": "transfer", "inputs": [{"name": "to", "type": "address"}, {"name": "amount", "type": "uint256"}], "outputs": [{"name": "", "type": "bool"}], "stateMutability": "nonpayable"},
	{"type": "function", "name": "foo", "inputs": [{"name": "x", "type": "uint256"}], "outputs": []},
	{"type": "function", "name": "foo", "inputs": [{"name": "data", "type": "bytes"}], "outputs": []},
	{"type": "event", "name": "Transfer", "anonymous": false, "inputs": [{"name": "from", "type": "address", "indexed": true}]},
	{"type": "error", "name": "InsufficientBalance", "inputs": [{"name": "available", "type": "uint256"}, {"name": "required", "type": "uint256"}]},
	{"type": "fallback", "stateMutability": "payable"},
	{"name": "legacy", "inputs": [{"name": "order", "type": "tuple", "internalType": "struct Order", "components": [{"name": "maker", "type": "address"}, {"name": "amount", "type": "uint256"}]}], "outputs": []}
]`

const tokenABIYAML = `
- type: constructor
  inputs:
    - {name: supply, type: uint256}
- type: function
  name: transfer
  stateMutability: nonpayable
  inputs:
    - {name: to, type: address}
    - {name: amount, type: uint256}
  outputs:
    - {name: "", type: bool}
- type: function
  name: foo
  inputs:
    - {name: x, type: uint256}
- type: function
  name: foo
  inputs:
    - {name: data, type: bytes}
- type: event
  name: Transfer
  inputs:
    - {name: from, type: address, indexed: true}
- type: error
  name: InsufficientBalance
  inputs:
    - {name: available, type: uint256}
    - {name: required, type: uint256}
- name: legacy
  inputs:
    - name: order
      type: tuple
      components:
        - {name: maker, type: address}
        - {name: amount, type: uint256}
`

func TestParseABI(t *testing.T) {
	jsonABI, err := ParseABI([]byte(tokenABIJSON))
	require.NoError(t, err)

	yamlABI, err := ParseABIYAML([]byte(tokenABIYAML))
	require.NoError(t, err)

	for _, abi := range []*ABI{jsonABI, yamlABI} {
		require.NotNil(t, abi.Constructor)
		require.Equal(t, "(uint256)", abi.Constructor.InputType().String())

		require.Len(t, abi.Methods, 4)
		require.Equal(t, "transfer(address,uint256)", abi.Methods[0].Signature())
		require.Equal(t, "nonpayable", abi.Methods[0].StateMutability)
		require.Equal(t, "(bool)", abi.Methods[0].OutputType().String())
		require.Equal(t, "legacy((address,uint256))", abi.Methods[3].Signature())

		require.Len(t, abi.Errors, 1)
		require.Equal(t, "InsufficientBalance(uint256,uint256)", abi.Errors[0].Signature())
	}

	require.Equal(t, "struct Order", jsonABI.Methods[3].Inputs[0].InternalType)
}

func TestABILookup(t *testing.T) {
	abi, err := ParseABI([]byte(tokenABIJSON))
	require.NoError(t, err)

	require.Equal(t, "foo(uint256)", abi.MethodByName("foo").Signature())
	require.Equal(t, "foo(bytes)", abi.MethodByName("foo(bytes)").Signature())
	require.Nil(t, abi.MethodByName("bar"))
	require.Nil(t, abi.MethodByName("foo(bool)"))

	calldata := []byte{0xa9, 0x05, 0x9c, 0xbb, 0x00}
	require.Equal(t, "transfer", abi.MethodBySelector(calldata).Name)
	require.Nil(t, abi.MethodBySelector(calldata[:3]))
	require.Nil(t, abi.MethodBySelector([]byte{0, 0, 0, 0}))

	revertData := []byte{0xcf, 0x47, 0x91, 0x81}
	require.Equal(t, "InsufficientBalance", abi.ErrorBySelector(revertData).Name)
	require.Nil(t, abi.ErrorBySelector(calldata))
}

func TestParseABIErrors(t *testing.T) {
	var testMatrix = []struct {
		doc  string
		path string
	}{
		{`[{"type": "function", "name": "bad", "inputs": [{"name": "x", "type": "uint7"}]}]`, "bad.x"},
		{`[{"type": "constructor", "inputs": [{"name": "", "type": "bytes0"}]}]`, "constructor#0.arg0"},
		{`[{"type": "error", "name": "Oops", "inputs": [{"name": "t", "type": "tuple"}]}]`, "Oops.t"},
		{`[{"type": "function", "name": "out", "inputs": [], "outputs": [{"name": "r", "type": "foo"}]}]`, "out.r"},
	}

	for _, test := range testMatrix {
		_, err := ParseABI([]byte(test.doc))
		require.ErrorIs(t, err, abiutils.ErrMalformedType, test.doc)

		var codecErr *abiutils.Error
		require.ErrorAs(t, err, &codecErr)
		require.Equal(t, test.path, codecErr.Path, test.doc)
	}

	_, err := ParseABI([]byte(`{"type": "function"}`))
	require.Error(t, err)

	_, err = ParseABIYAML([]byte("- type: [function"))
	require.Error(t, err)
}
