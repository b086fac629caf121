// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package abiutils

import (
	"math/big"

	"github.com/holiman/uint256"
)

const (
	WordSize       = 32 // every ABI slot is one 32-byte word
	SelectorLength = 4  // leading function selector bytes in calldata
)

var big1 = big.NewInt(1)

// PaddedLength rounds n up to the next multiple of the word size.
func PaddedLength(n int) int {
	return (n + WordSize - 1) / WordSize * WordSize
}

// LeftPadBytes returns a copy of b zero-padded on the left to size bytes.
func LeftPadBytes(b []byte, size int) []byte {
	if len(b) >= size {
		return b
	}
	padded := make([]byte, size)
	copy(padded[size-len(b):], b)
	return padded
}

// RightPadBytes returns a copy of b zero-padded on the right to size bytes.
func RightPadBytes(b []byte, size int) []byte {
	if len(b) >= size {
		return b
	}
	padded := make([]byte, size)
	copy(padded, b)
	return padded
}

// ---- Word encoders ----

// EncodeUintWord encodes v as an unsigned big-endian word after checking
// 0 <= v < 2^bits.
func EncodeUintWord(v *big.Int, bits int) ([WordSize]byte, error) {
	if v.Sign() < 0 {
		return [WordSize]byte{}, NewError(PhaseEncode, ErrNumericOverflow).Detail("negative value %v for uint%d", v, bits).Build()
	}
	if v.BitLen() > bits {
		return [WordSize]byte{}, NewError(PhaseEncode, ErrNumericOverflow).Detail("value %v exceeds uint%d", v, bits).Build()
	}

	word, _ := uint256.FromBig(v)
	return word.Bytes32(), nil
}

// EncodeIntWord encodes v as a signed word after checking
// -2^(bits-1) <= v < 2^(bits-1). Negative values are always widened to the
// full 256-bit two's complement, independent of bits.
func EncodeIntWord(v *big.Int, bits int) ([WordSize]byte, error) {
	if !IntInRange(v, bits) {
		return [WordSize]byte{}, NewError(PhaseEncode, ErrNumericOverflow).Detail("value %v exceeds int%d", v, bits).Build()
	}

	if v.Sign() >= 0 {
		word, _ := uint256.FromBig(v)
		return word.Bytes32(), nil
	}

	abs, _ := uint256.FromBig(new(big.Int).Neg(v))
	word := new(uint256.Int).Not(abs)
	word.AddUint64(word, 1)
	return word.Bytes32(), nil
}

// EncodeLengthWord encodes a length or offset value.
func EncodeLengthWord(n int) [WordSize]byte {
	return uint256.NewInt(uint64(n)).Bytes32()
}

// IntInRange reports whether v is representable as a signed integer of the given bit width.
func IntInRange(v *big.Int, bits int) bool {
	if v.Sign() >= 0 {
		return v.BitLen() <= bits-1
	}
	limit := new(big.Int).Lsh(big1, uint(bits-1))
	return new(big.Int).Neg(v).Cmp(limit) <= 0
}

// ---- Word decoders ----

// DecodeUintWord decodes an unsigned word and verifies it fits into bits.
func DecodeUintWord(word []byte, bits int) (*big.Int, error) {
	value := new(uint256.Int).SetBytes32(word[:WordSize])
	if value.BitLen() > bits {
		return nil, NewError(PhaseDecode, ErrInvalidEncoding).Detail("word exceeds uint%d", bits).Build()
	}
	return value.ToBig(), nil
}

// DecodeIntWord decodes a two's complement word and verifies the value is a
// correctly sign-extended intN.
func DecodeIntWord(word []byte, bits int) (*big.Int, error) {
	value := new(uint256.Int).SetBytes32(word[:WordSize])

	var result *big.Int
	if word[0]&0x80 == 0 {
		result = value.ToBig()
	} else {
		abs := new(uint256.Int).Not(value)
		abs.AddUint64(abs, 1)
		result = abs.ToBig()
		result.Neg(result)
	}

	if !IntInRange(result, bits) {
		return nil, NewError(PhaseDecode, ErrInvalidEncoding).Detail("word is not a valid int%d", bits).Build()
	}
	return result, nil
}

// DecodeLengthWord decodes a length or offset word. Values that do not fit
// into an int are reported as not ok.
func DecodeLengthWord(word []byte) (int, bool) {
	value := new(uint256.Int).SetBytes32(word[:WordSize])
	if !value.IsUint64() {
		return 0, false
	}
	n := value.Uint64()
	if n > uint64(maxInt) {
		return 0, false
	}
	return int(n), true
}

const maxInt = int(^uint(0) >> 1)

// IsZero reports whether all bytes in b are zero.
func IsZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
