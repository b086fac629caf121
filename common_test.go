// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package dynabi_test

import (
	"encoding/hex"
	"math/big"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	dynabi "github.com/pk910/dynamic-abi"
	"github.com/pk910/dynamic-abi/abitypes"
	"github.com/pk910/dynamic-abi/abiutils"
)

func fromHex(hexStr string) []byte {
	if strings.HasPrefix(hexStr, "0x") {
		hexStr = hexStr[2:]
	}
	bytes, err := hex.DecodeString(hexStr)
	if err != nil {
		panic(err)
	}
	return bytes
}

func mustParseSignature(t *testing.T, signature string) *abitypes.Method {
	t.Helper()
	method, err := abitypes.ParseSignature(signature)
	require.NoError(t, err)
	return method
}

// normalize converts decoded values into comparable plain values.
func normalize(value any) any {
	switch v := value.(type) {
	case *big.Int:
		return v.String()
	case abiutils.Address:
		return strings.ToLower(v.Hex())
	case []byte:
		return abiutils.ToHex(v)
	case dynabi.Positional:
		return normalize([]any(v))
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = normalize(e)
		}
		return out
	}
	return value
}

func requireValues(t *testing.T, expected, actual []any) {
	t.Helper()
	require.Equal(t, normalize(expected), normalize(actual))
}

type calldataVector struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Signature   string `yaml:"signature"`
	Values      []any  `yaml:"values"`
	Calldata    string `yaml:"calldata"`
}

func loadVectors(t *testing.T) []calldataVector {
	t.Helper()

	data, err := os.ReadFile("testdata/vectors.yaml")
	require.NoError(t, err)

	var doc struct {
		Vectors []calldataVector `yaml:"vectors"`
	}
	require.NoError(t, yaml.Unmarshal(data, &doc))
	require.NotEmpty(t, doc.Vectors)

	return doc.Vectors
}
