// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package abiutils

import (
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/holiman/uint256"
)

var byteType = reflect.TypeOf(byte(0))

// CoerceToBigInt converts the supported Go integer representations to a big.Int.
//
// Supported inputs: all Go integer kinds (including named types), *big.Int,
// big.Int, *uint256.Int, uint256.Int, json.Number and decimal or 0x-prefixed
// hex strings with an optional leading '-'.
func CoerceToBigInt(value any) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		if v == nil {
			return nil, fmt.Errorf("%w: nil *big.Int", ErrInvalidValue)
		}
		return new(big.Int).Set(v), nil
	case big.Int:
		return new(big.Int).Set(&v), nil
	case *uint256.Int:
		if v == nil {
			return nil, fmt.Errorf("%w: nil *uint256.Int", ErrInvalidValue)
		}
		return v.ToBig(), nil
	case uint256.Int:
		return v.ToBig(), nil
	case json.Number:
		return parseBigInt(string(v))
	case string:
		return parseBigInt(v)
	case int:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return new(big.Int).SetUint64(rv.Uint()), nil
	case reflect.String:
		return parseBigInt(rv.String())
	}

	return nil, fmt.Errorf("%w: cannot use %T as integer", ErrInvalidValue, value)
}

func parseBigInt(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}

	base := 10
	if Has0xPrefix(s) {
		base = 16
		s = s[2:]
	}

	if s == "" {
		return nil, fmt.Errorf("%w: empty integer string", ErrInvalidValue)
	}

	result, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, fmt.Errorf("%w: invalid integer string %q", ErrInvalidValue, s)
	}
	if negative {
		result.Neg(result)
	}
	return result, nil
}

// CoerceToBytes converts []byte, byte arrays and hex strings to a byte slice.
func CoerceToBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return FromHex(v)
	case Address:
		return v[:], nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Array:
		if rv.Type().Elem() != byteType {
			break
		}
		out := make([]byte, rv.Len())
		reflect.Copy(reflect.ValueOf(out), rv)
		return out, nil
	case reflect.Slice:
		if rv.Type().Elem() != byteType {
			break
		}
		return rv.Bytes(), nil
	case reflect.String:
		return FromHex(rv.String())
	}

	return nil, fmt.Errorf("%w: cannot use %T as bytes", ErrInvalidValue, value)
}

// CoerceToAddress converts the supported address representations to an Address.
//
// Hex strings and 20-byte slices/arrays are taken as-is; integer values are
// treated as 160-bit unsigned numbers.
func CoerceToAddress(value any) (Address, error) {
	switch v := value.(type) {
	case Address:
		return v, nil
	case *Address:
		if v == nil {
			return Address{}, fmt.Errorf("%w: nil *Address", ErrInvalidValue)
		}
		return *v, nil
	case [AddressLength]byte:
		return Address(v), nil
	case []byte:
		if len(v) != AddressLength {
			return Address{}, fmt.Errorf("%w: address must be %d bytes, got %d", ErrInvalidByteLength, AddressLength, len(v))
		}
		return BytesToAddress(v), nil
	case string:
		return HexToAddress(v)
	}

	number, err := CoerceToBigInt(value)
	if err != nil {
		return Address{}, fmt.Errorf("%w: cannot use %T as address", ErrInvalidValue, value)
	}
	if number.Sign() < 0 || number.BitLen() > AddressLength*8 {
		return Address{}, fmt.Errorf("%w: value %v exceeds 160 bits", ErrNumericOverflow, number)
	}
	return BytesToAddress(number.Bytes()), nil
}

// CoerceToString converts string-like values.
func CoerceToString(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.String {
		return rv.String(), nil
	}
	return "", fmt.Errorf("%w: cannot use %T as string", ErrInvalidValue, value)
}

// CoerceToBool converts bool-like values.
func CoerceToBool(value any) (bool, error) {
	if v, ok := value.(bool); ok {
		return v, nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Bool {
		return rv.Bool(), nil
	}
	return false, fmt.Errorf("%w: cannot use %T as bool", ErrInvalidValue, value)
}
