// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package abitypes

import (
	"errors"
	"regexp"
	"strconv"

	"github.com/pk910/dynamic-abi/abiutils"
)

// MaxFixedArrayLength bounds the declared length of fixed arrays.
const MaxFixedArrayLength = 1 << 20

// MaxTypeNodes bounds the number of values a type expands to, counting tuple
// components and fixed array elements at every nesting level.
const MaxTypeNodes = 1 << 21

// grammarRule matches one kind of type string. Every type string must be
// matched by exactly one rule.
type grammarRule struct {
	name    string
	pattern *regexp.Regexp
	build   func(match []string, components []TypeDescriptor) (*Type, error)
}

var grammarRules []grammarRule

func init() {
	grammarRules = []grammarRule{
		{
			name:    "address",
			pattern: regexp.MustCompile(`^address$`),
			build: func(_ []string, _ []TypeDescriptor) (*Type, error) {
				return &Type{AbiType: AbiAddressType, Size: abiutils.AddressLength * 8}, nil
			},
		},
		{
			name:    "bool",
			pattern: regexp.MustCompile(`^bool$`),
			build: func(_ []string, _ []TypeDescriptor) (*Type, error) {
				return &Type{AbiType: AbiBoolType}, nil
			},
		},
		{
			name:    "integer",
			pattern: regexp.MustCompile(`^(u?)int([0-9]*)$`),
			build:   buildIntegerType,
		},
		{
			name:    "fixed-bytes",
			pattern: regexp.MustCompile(`^(?:byte|bytes([0-9]+))$`),
			build:   buildFixedBytesType,
		},
		{
			name:    "bytes",
			pattern: regexp.MustCompile(`^bytes$`),
			build: func(_ []string, _ []TypeDescriptor) (*Type, error) {
				return &Type{AbiType: AbiBytesType}, nil
			},
		},
		{
			name:    "string",
			pattern: regexp.MustCompile(`^string$`),
			build: func(_ []string, _ []TypeDescriptor) (*Type, error) {
				return &Type{AbiType: AbiStringType}, nil
			},
		},
		{
			name:    "tuple",
			pattern: regexp.MustCompile(`^tuple$`),
			build:   buildTupleType,
		},
		{
			name:    "array",
			pattern: regexp.MustCompile(`^(.+)\[([0-9]*)\]$`),
			build:   buildArrayType,
		},
	}
}

// NewType parses a type string. Tuple component types are taken from
// components; they are never encoded in the type string itself.
func NewType(typeStr string, components []TypeDescriptor) (*Type, error) {
	var (
		matchedRule *grammarRule
		match       []string
		matchCount  int
	)

	for i := range grammarRules {
		if m := grammarRules[i].pattern.FindStringSubmatch(typeStr); m != nil {
			if matchedRule == nil {
				matchedRule = &grammarRules[i]
				match = m
			}
			matchCount++
		}
	}

	if matchCount != 1 {
		return nil, abiutils.NewError(abiutils.PhaseParse, abiutils.ErrMalformedType).
			Type(typeStr).
			Detail("type matches %d grammar rules, expected exactly one", matchCount).
			Build()
	}

	typ, err := matchedRule.build(match, components)
	if err != nil {
		var codecErr *abiutils.Error
		if errors.As(err, &codecErr) && codecErr.Type == "" {
			codecErr.Type = typeStr
		}
		return nil, err
	}

	typ.finalize()
	if err := checkNodeCount(typ); err != nil {
		return nil, err
	}
	return typ, nil
}

func checkNodeCount(typ *Type) error {
	if typ.NodeCount <= MaxTypeNodes {
		return nil
	}
	return abiutils.NewError(abiutils.PhaseParse, abiutils.ErrMalformedType).
		Type(typ.String()).
		Detail("type expands to %d values, limit is %d", typ.NodeCount, MaxTypeNodes).
		Build()
}

func buildIntegerType(match []string, _ []TypeDescriptor) (*Type, error) {
	typ := &Type{AbiType: AbiIntType, Size: 256}
	if match[1] == "u" {
		typ.AbiType = AbiUintType
	}

	if match[2] != "" {
		bits, err := parseDecimal(match[2])
		if err != nil || bits < 8 || bits > 256 || bits%8 != 0 {
			return nil, malformed("integer width %q must be a multiple of 8 between 8 and 256", match[2])
		}
		typ.Size = bits
	}

	return typ, nil
}

func buildFixedBytesType(match []string, _ []TypeDescriptor) (*Type, error) {
	typ := &Type{AbiType: AbiFixedBytesType, Size: 1}

	if match[1] != "" {
		size, err := parseDecimal(match[1])
		if err != nil || size < 1 || size > abiutils.WordSize {
			return nil, malformed("fixed bytes width %q must be between 1 and 32", match[1])
		}
		typ.Size = size
	}

	return typ, nil
}

func buildTupleType(_ []string, components []TypeDescriptor) (*Type, error) {
	if components == nil {
		return nil, malformed("tuple without components")
	}

	typ := &Type{
		AbiType:        AbiTupleType,
		Components:     make([]*Type, len(components)),
		ComponentNames: make([]string, len(components)),
	}

	for i := range components {
		component, err := NewType(components[i].Type, components[i].Components)
		if err != nil {
			return nil, abiutils.PrefixPath(err, abiutils.PhaseParse, ArgumentName(components[i].Name, i))
		}
		typ.Components[i] = component
		typ.ComponentNames[i] = components[i].Name
	}

	return typ, nil
}

func buildArrayType(match []string, components []TypeDescriptor) (*Type, error) {
	elemType, err := NewType(match[1], components)
	if err != nil {
		return nil, err
	}

	if match[2] == "" {
		return &Type{AbiType: AbiDynamicArrayType, ElemType: elemType}, nil
	}

	length, err := parseDecimal(match[2])
	if err != nil || length < 1 || length > MaxFixedArrayLength {
		return nil, malformed("array length %q must be a decimal number between 1 and %d", match[2], MaxFixedArrayLength)
	}

	return &Type{AbiType: AbiFixedArrayType, ElemType: elemType, Length: length}, nil
}

// parseDecimal parses a decimal number without sign and leading zeros.
func parseDecimal(s string) (int, error) {
	if len(s) > 1 && s[0] == '0' {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(s)
}

func malformed(detail string, args ...any) error {
	return abiutils.NewError(abiutils.PhaseParse, abiutils.ErrMalformedType).Detail(detail, args...).Build()
}
