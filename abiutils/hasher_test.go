// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package abiutils

import (
	"encoding/hex"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeccak256(t *testing.T) {
	digest := Keccak256()
	require.Equal(t, "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", hex.EncodeToString(digest[:]))

	require.Equal(t, Keccak256([]byte("baz(uint32,bool)")), Keccak256([]byte("baz("), []byte("uint32,bool)")))
}

func TestSelector(t *testing.T) {
	var testMatrix = []struct {
		signature string
		expected  string
	}{
		{"transfer(address,uint256)", "a9059cbb"},
		{"baz(uint32,bool)", "cdcd77c0"},
		{"Error(string)", "08c379a0"},
		{"Panic(uint256)", "4e487b71"},
	}

	for _, test := range testMatrix {
		selector := Selector(test.signature)
		require.Equal(t, test.expected, hex.EncodeToString(selector[:]), test.signature)
	}
}

func TestKeccak256Concurrent(t *testing.T) {
	expected := Selector("transfer(address,uint256)")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if Selector("transfer(address,uint256)") != expected {
					t.Error("selector mismatch")
					return
				}
			}
		}()
	}
	wg.Wait()
}
