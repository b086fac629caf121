// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package abitypes

import (
	"github.com/pk910/dynamic-abi/abiutils"
)

// Method describes a contract function, constructor or custom error with its
// parsed argument lists.
type Method struct {
	Name            string
	Inputs          []TypeDescriptor
	Outputs         []TypeDescriptor
	StateMutability string

	inputType  *Type
	outputType *Type
	signature  string
	selector   [abiutils.SelectorLength]byte
}

// NewMethod parses the input and output descriptors of a method and derives
// its canonical signature and selector.
func NewMethod(name string, inputs, outputs []TypeDescriptor) (*Method, error) {
	inputType, err := ParseArguments(inputs)
	if err != nil {
		return nil, err
	}

	outputType, err := ParseArguments(outputs)
	if err != nil {
		return nil, err
	}

	m := &Method{
		Name:       name,
		Inputs:     inputs,
		Outputs:    outputs,
		inputType:  inputType,
		outputType: outputType,
	}
	m.signature = name + inputType.String()
	m.selector = abiutils.Selector(m.signature)

	return m, nil
}

// Signature returns the canonical signature, e.g. "transfer(address,uint256)".
func (m *Method) Signature() string {
	return m.signature
}

// Selector returns the first 4 bytes of the Keccak-256 hash of the signature.
func (m *Method) Selector() [abiutils.SelectorLength]byte {
	return m.selector
}

// InputType returns the argument list as a tuple type.
func (m *Method) InputType() *Type {
	return m.inputType
}

// OutputType returns the return value list as a tuple type.
func (m *Method) OutputType() *Type {
	return m.outputType
}

func (m *Method) String() string {
	s := m.signature
	if len(m.Outputs) > 0 {
		s += " returns " + m.outputType.String()
	}
	return s
}
