// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package dynabi

import (
	"fmt"

	"github.com/pk910/dynamic-abi/abitypes"
	"github.com/pk910/dynamic-abi/abiutils"
)

// assignElementary encodes value into the word or payload of an elementary node.
func assignElementary(n *node, value any) error {
	typ := n.typ

	switch typ.AbiType {
	case abitypes.AbiAddressType:
		addr, err := abiutils.CoerceToAddress(value)
		if err != nil {
			return err
		}
		n.word = [abiutils.WordSize]byte{}
		copy(n.word[abiutils.WordSize-abiutils.AddressLength:], addr[:])

	case abitypes.AbiBoolType:
		b, err := abiutils.CoerceToBool(value)
		if err != nil {
			return err
		}
		n.word = [abiutils.WordSize]byte{}
		if b {
			n.word[abiutils.WordSize-1] = 1
		}

	case abitypes.AbiIntType:
		v, err := abiutils.CoerceToBigInt(value)
		if err != nil {
			return err
		}
		n.word, err = abiutils.EncodeIntWord(v, typ.Size)
		if err != nil {
			return err
		}

	case abitypes.AbiUintType:
		v, err := abiutils.CoerceToBigInt(value)
		if err != nil {
			return err
		}
		n.word, err = abiutils.EncodeUintWord(v, typ.Size)
		if err != nil {
			return err
		}

	case abitypes.AbiFixedBytesType:
		raw, err := abiutils.CoerceToBytes(value)
		if err != nil {
			return err
		}
		if len(raw) > typ.Size {
			return fmt.Errorf("%w: %d bytes exceed bytes%d", abiutils.ErrValueTooLarge, len(raw), typ.Size)
		}
		n.word = [abiutils.WordSize]byte{}
		copy(n.word[:], raw)

	case abitypes.AbiBytesType:
		raw, err := abiutils.CoerceToBytes(value)
		if err != nil {
			return err
		}
		n.payload = encodePayload(raw)

	case abitypes.AbiStringType:
		s, err := abiutils.CoerceToString(value)
		if err != nil {
			return err
		}
		n.payload = encodePayload([]byte(s))

	default:
		return fmt.Errorf("%w: %s is not an elementary type", abiutils.ErrMalformedType, typ.AbiType)
	}

	return nil
}

// encodePayload frames dynamic content as length word followed by the content
// right-padded to a word boundary.
func encodePayload(content []byte) []byte {
	padded := abiutils.PaddedLength(len(content))
	enc := abiutils.NewBufferEncoder(make([]byte, 0, abiutils.WordSize+padded))
	enc.EncodeWord(abiutils.EncodeLengthWord(len(content)))
	enc.EncodeBytes(content)
	enc.EncodeZeroPadding(padded - len(content))
	return enc.GetBuffer()
}

// decodeElementaryWord decodes the static word of an elementary type and
// rejects words that are not in canonical form.
func decodeElementaryWord(typ *abitypes.Type, word []byte) (any, error) {
	switch typ.AbiType {
	case abitypes.AbiAddressType:
		if !abiutils.IsZero(word[:abiutils.WordSize-abiutils.AddressLength]) {
			return nil, invalidEncoding("address word has non-zero padding")
		}
		return abiutils.BytesToAddress(word[abiutils.WordSize-abiutils.AddressLength:]), nil

	case abitypes.AbiBoolType:
		last := word[abiutils.WordSize-1]
		if !abiutils.IsZero(word[:abiutils.WordSize-1]) || last > 1 {
			return nil, invalidEncoding("bool word is neither 0 nor 1")
		}
		return last == 1, nil

	case abitypes.AbiIntType:
		return abiutils.DecodeIntWord(word, typ.Size)

	case abitypes.AbiUintType:
		return abiutils.DecodeUintWord(word, typ.Size)

	case abitypes.AbiFixedBytesType:
		if !abiutils.IsZero(word[typ.Size:abiutils.WordSize]) {
			return nil, invalidEncoding(fmt.Sprintf("bytes%d word has non-zero padding", typ.Size))
		}
		value := make([]byte, typ.Size)
		copy(value, word[:typ.Size])
		return value, nil
	}

	return nil, abiutils.NewError(abiutils.PhaseDecode, abiutils.ErrMalformedType).
		Detail("%s is not a static elementary type", typ.AbiType).
		Build()
}

// decodePayload decodes the length prefixed content of bytes and string values at abs.
func decodePayload(dec *abiutils.BufferDecoder, typ *abitypes.Type, abs int) (any, error) {
	length, err := dec.DecodeOffsetAt(abs)
	if err != nil {
		return nil, err
	}

	content, err := dec.DecodeBytesAt(abs+abiutils.WordSize, length)
	if err != nil {
		return nil, err
	}

	if typ.AbiType == abitypes.AbiStringType {
		return string(content), nil
	}

	value := make([]byte, length)
	copy(value, content)
	return value, nil
}

func invalidEncoding(detail string) error {
	return abiutils.NewError(abiutils.PhaseDecode, abiutils.ErrInvalidEncoding).Detail("%s", detail).Build()
}
