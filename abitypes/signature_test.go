// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package abitypes

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pk910/dynamic-abi/abiutils"
)

func TestParseSignature(t *testing.T) {
	var testMatrix = []struct {
		input     string
		signature string
		selector  string
		inputs    []string
		outputs   int
	}{
		{"f()", "f()", "26121ff0", []string{}, 0},
		{"transfer(address,uint256)", "transfer(address,uint256)", "a9059cbb", []string{"", ""}, 0},
		{"transfer(address to, uint256 amount)", "transfer(address,uint256)", "a9059cbb", []string{"to", "amount"}, 0},
		{"  transfer ( address to , uint amount ) ", "transfer(address,uint256)", "a9059cbb", []string{"to", "amount"}, 0},
		{"foo(uint)", "foo(uint256)", "2fbebd38", []string{""}, 0},
		{"foo(bytes memory data)", "foo(bytes)", "30c8d1da", []string{"data"}, 0},
		{"balanceOf(address)(uint256)", "balanceOf(address)", "70a08231", []string{""}, 1},
		{"balanceOf(address owner) returns (uint256 balance)", "balanceOf(address)", "70a08231", []string{"owner"}, 1},
		{"balanceOf(address owner) external view returns (uint256)", "balanceOf(address)", "70a08231", []string{"owner"}, 1},
		{"fillOrder((address maker,uint256 amount,bytes data) order,uint256,bytes)", "fillOrder((address,uint256,bytes),uint256,bytes)", "ef374bac", []string{"order", "", ""}, 0},
		{"fillOrder(tuple(address,uint256,bytes) order, uint256 fill, bytes sig)", "fillOrder((address,uint256,bytes),uint256,bytes)", "ef374bac", []string{"order", "fill", "sig"}, 0},
	}

	for _, test := range testMatrix {
		method, err := ParseSignature(test.input)
		require.NoError(t, err, test.input)
		require.Equal(t, test.signature, method.Signature(), test.input)

		selector := method.Selector()
		require.Equal(t, test.selector, hex.EncodeToString(selector[:]), test.input)

		names := make([]string, len(method.Inputs))
		for i, arg := range method.Inputs {
			names[i] = arg.Name
		}
		require.Equal(t, test.inputs, names, test.input)
		require.Len(t, method.Outputs, test.outputs, test.input)
	}
}

func TestParseSignatureDetails(t *testing.T) {
	method, err := ParseSignature("f(tuple(uint256 id,string label)[2][] entries)")
	require.NoError(t, err)
	require.Equal(t, "f((uint256,string)[2][])", method.Signature())
	require.Equal(t, "tuple[2][]", method.Inputs[0].Type)
	require.Equal(t, "label", method.Inputs[0].Components[1].Name)

	method, err = ParseSignature("Transfer(address indexed from, address indexed to, uint256 value)")
	require.NoError(t, err)
	require.True(t, method.Inputs[0].Indexed)
	require.True(t, method.Inputs[1].Indexed)
	require.False(t, method.Inputs[2].Indexed)
	require.Equal(t, "value", method.Inputs[2].Name)

	method, err = ParseSignature("deposit() external payable")
	require.NoError(t, err)
	require.Equal(t, "payable", method.StateMutability)

	method, err = ParseSignature("balanceOf(address) view returns (uint256)")
	require.NoError(t, err)
	require.Equal(t, "view", method.StateMutability)
	require.Equal(t, "balanceOf(address) returns (uint256)", method.String())
	require.Equal(t, "(uint256)", method.OutputType().String())
}

func TestParseSignatureMalformed(t *testing.T) {
	var testMatrix = []struct {
		input string
		path  string
	}{
		{"", ""},
		{"(uint256)", ""},
		{"1f(uint256)", ""},
		{"f", ""},
		{"f(uint256", ""},
		{"f(uint256,)", ""},
		{"f(,uint256)", ""},
		{"f(uint256 a b)", ""},
		{"f(uint256[)", ""},
		{"f(uint256[x])", ""},
		{"f(tuple)", ""},
		{"f(uint256) extra", ""},
		{"f(uint256)(", ""},
		{"f(uint7)", "arg0"},
		{"f(uint256 a, bytes33 b)", "b"},
		{"f((uint256,uint7 x) pair)", "pair.x"},
		{"f() returns (foo)", "arg0"},
	}

	for _, test := range testMatrix {
		_, err := ParseSignature(test.input)
		require.ErrorIs(t, err, abiutils.ErrMalformedType, "signature %q", test.input)

		var codecErr *abiutils.Error
		require.ErrorAs(t, err, &codecErr)
		require.Equal(t, test.path, codecErr.Path, "signature %q", test.input)
	}
}

func TestNewMethod(t *testing.T) {
	method, err := NewMethod("InsufficientBalance", []TypeDescriptor{
		{Name: "available", Type: "uint256"},
		{Name: "required", Type: "uint256"},
	}, nil)
	require.NoError(t, err)
	require.Equal(t, "InsufficientBalance(uint256,uint256)", method.Signature())
	require.Equal(t, "InsufficientBalance(uint256,uint256)", method.String())

	selector := method.Selector()
	require.Equal(t, "cf479181", hex.EncodeToString(selector[:]))
	require.Equal(t, 64, method.InputType().MembersSize())
	require.Empty(t, method.OutputType().Components)
}
