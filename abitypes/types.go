// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package abitypes

import (
	"strconv"
	"strings"

	"github.com/pk910/dynamic-abi/abiutils"
)

type AbiType uint8

const (
	AbiUnspecifiedType AbiType = iota

	// elementary types
	AbiAddressType
	AbiBoolType
	AbiIntType
	AbiUintType
	AbiFixedBytesType
	AbiBytesType
	AbiStringType

	// composite types
	AbiTupleType
	AbiFixedArrayType
	AbiDynamicArrayType
)

func (t AbiType) String() string {
	switch t {
	case AbiAddressType:
		return "address"
	case AbiBoolType:
		return "bool"
	case AbiIntType:
		return "int"
	case AbiUintType:
		return "uint"
	case AbiFixedBytesType:
		return "fixed-bytes"
	case AbiBytesType:
		return "bytes"
	case AbiStringType:
		return "string"
	case AbiTupleType:
		return "tuple"
	case AbiFixedArrayType:
		return "fixed-array"
	case AbiDynamicArrayType:
		return "dynamic-array"
	default:
		return "unspecified"
	}
}

// TypeFlag is a flag indicating whether a type has a specific ABI type feature
type TypeFlag uint8

const (
	TypeFlagIsDynamic   TypeFlag = 1 << iota // Whether the type is a dynamic type (or has nested dynamic types)
	TypeFlagIsComposite                      // Whether the type has child types (tuple or array)
)

// Type is the parsed, immutable representation of an ABI type.
type Type struct {
	AbiType        AbiType  `json:"type"`                 // ABI kind of the type
	Size           int      `json:"size,omitempty"`       // Bit width for int/uint, byte width for fixed bytes
	Length         int      `json:"length,omitempty"`     // Length of fixed arrays
	ElemType       *Type    `json:"elem,omitempty"`       // Element type for arrays
	Components     []*Type  `json:"components,omitempty"` // Component types for tuples
	ComponentNames []string `json:"names,omitempty"`      // Declared component names for tuples
	HeadSize       int      `json:"head_size"`            // Bytes occupied in the head of the enclosing composite
	NodeCount      int      `json:"nodes"`                // Values a static expansion creates, dynamic array elements excluded
	TypeFlags      TypeFlag `json:"flags"`
	canonical      string
}

// IsDynamic reports whether the encoded size of the type depends on its value.
func (t *Type) IsDynamic() bool {
	return t.TypeFlags&TypeFlagIsDynamic != 0
}

// IsComposite reports whether the type is a tuple or an array.
func (t *Type) IsComposite() bool {
	return t.TypeFlags&TypeFlagIsComposite != 0
}

// String returns the canonical type string used in signatures, e.g.
// "uint256", "(address,bytes)[]" or "bytes32[2]".
func (t *Type) String() string {
	return t.canonical
}

// finalize computes the flags, head size and canonical string of t from its
// already finalized children.
func (t *Type) finalize() {
	switch t.AbiType {
	case AbiAddressType:
		t.canonical = "address"
	case AbiBoolType:
		t.canonical = "bool"
	case AbiIntType:
		t.canonical = "int" + strconv.Itoa(t.Size)
	case AbiUintType:
		t.canonical = "uint" + strconv.Itoa(t.Size)
	case AbiFixedBytesType:
		t.canonical = "bytes" + strconv.Itoa(t.Size)
	case AbiBytesType:
		t.canonical = "bytes"
		t.TypeFlags |= TypeFlagIsDynamic
	case AbiStringType:
		t.canonical = "string"
		t.TypeFlags |= TypeFlagIsDynamic
	case AbiTupleType:
		t.TypeFlags |= TypeFlagIsComposite
		parts := make([]string, len(t.Components))
		for i, c := range t.Components {
			parts[i] = c.canonical
			if c.IsDynamic() {
				t.TypeFlags |= TypeFlagIsDynamic
			}
		}
		t.canonical = "(" + strings.Join(parts, ",") + ")"
	case AbiFixedArrayType:
		t.TypeFlags |= TypeFlagIsComposite
		if t.ElemType.IsDynamic() {
			t.TypeFlags |= TypeFlagIsDynamic
		}
		t.canonical = t.ElemType.canonical + "[" + strconv.Itoa(t.Length) + "]"
	case AbiDynamicArrayType:
		t.TypeFlags |= TypeFlagIsComposite | TypeFlagIsDynamic
		t.canonical = t.ElemType.canonical + "[]"
	}

	switch {
	case t.IsDynamic():
		t.HeadSize = abiutils.WordSize
	case t.AbiType == AbiTupleType:
		t.HeadSize = 0
		for _, c := range t.Components {
			t.HeadSize += c.HeadSize
		}
	case t.AbiType == AbiFixedArrayType:
		t.HeadSize = t.Length * t.ElemType.HeadSize
	default:
		t.HeadSize = abiutils.WordSize
	}

	t.NodeCount = 1
	switch t.AbiType {
	case AbiTupleType:
		for _, c := range t.Components {
			t.NodeCount += c.NodeCount
		}
	case AbiFixedArrayType:
		t.NodeCount += t.Length * t.ElemType.NodeCount
	}
}

// MembersSize returns the number of head bytes the members of a composite
// occupy, independent of whether the composite itself is dynamic. For
// elementary types it equals HeadSize.
func (t *Type) MembersSize() int {
	switch t.AbiType {
	case AbiTupleType:
		size := 0
		for _, c := range t.Components {
			size += c.HeadSize
		}
		return size
	case AbiFixedArrayType:
		return t.Length * t.ElemType.HeadSize
	default:
		return t.HeadSize
	}
}

// NewTupleType builds a tuple type from already parsed component types.
// It is used for argument lists, which are encoded exactly like a tuple.
func NewTupleType(components []*Type, names []string) *Type {
	t := &Type{
		AbiType:        AbiTupleType,
		Components:     components,
		ComponentNames: names,
	}
	t.finalize()
	return t
}
