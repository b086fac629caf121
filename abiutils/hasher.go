// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package abiutils

import (
	"hash"
	"sync"

	"golang.org/x/crypto/sha3"
)

// keccakState wraps sha3.state. In addition to the usual hash methods, it also supports
// Read to get a variable amount of data from the hash state. Read is faster than Sum
// because it doesn't copy the internal state, but also modifies the internal state.
type keccakState interface {
	hash.Hash
	Read([]byte) (int, error)
}

// hasherPool manages reusable legacy Keccak-256 states
type hasherPool struct {
	pool sync.Pool
}

var defaultHasherPool = &hasherPool{
	pool: sync.Pool{
		New: func() any {
			return sha3.NewLegacyKeccak256().(keccakState)
		},
	},
}

func (p *hasherPool) Get() keccakState {
	h := p.pool.Get().(keccakState)
	h.Reset()
	return h
}

func (p *hasherPool) Put(h keccakState) {
	p.pool.Put(h)
}

// Keccak256 returns the legacy Keccak-256 digest of the concatenated inputs.
func Keccak256(data ...[]byte) [32]byte {
	h := defaultHasherPool.Get()
	defer defaultHasherPool.Put(h)

	for _, d := range data {
		h.Write(d)
	}

	var digest [32]byte
	h.Read(digest[:])
	return digest
}

// Selector derives the 4-byte function selector of a canonical signature.
func Selector(signature string) [SelectorLength]byte {
	digest := Keccak256([]byte(signature))

	var selector [SelectorLength]byte
	copy(selector[:], digest[:SelectorLength])
	return selector
}
