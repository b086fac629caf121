// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package abitypes

import (
	"strconv"

	"github.com/pk910/dynamic-abi/abiutils"
)

// TypeDescriptor is the declared name and type of a parameter, mirroring the
// parameter objects of the ABI JSON schema.
type TypeDescriptor struct {
	Name         string           `json:"name" yaml:"name"`
	Type         string           `json:"type" yaml:"type"`
	InternalType string           `json:"internalType,omitempty" yaml:"internalType,omitempty"`
	Indexed      bool             `json:"indexed,omitempty" yaml:"indexed,omitempty"`
	Components   []TypeDescriptor `json:"components,omitempty" yaml:"components,omitempty"`
}

// ParseType parses the descriptor into its Type.
func (d *TypeDescriptor) ParseType() (*Type, error) {
	typ, err := NewType(d.Type, d.Components)
	if err != nil {
		return nil, abiutils.PrefixPath(err, abiutils.PhaseParse, d.Name)
	}
	return typ, nil
}

// ParseArguments parses an argument list into one tuple type whose components
// are the arguments in declaration order.
func ParseArguments(args []TypeDescriptor) (*Type, error) {
	components := make([]*Type, len(args))
	names := make([]string, len(args))

	for i := range args {
		typ, err := NewType(args[i].Type, args[i].Components)
		if err != nil {
			return nil, abiutils.PrefixPath(err, abiutils.PhaseParse, ArgumentName(args[i].Name, i))
		}
		components[i] = typ
		names[i] = args[i].Name
	}

	tuple := NewTupleType(components, names)
	if err := checkNodeCount(tuple); err != nil {
		return nil, err
	}
	return tuple, nil
}

// Signature returns the canonical type list "(t1,t2,...)" of an argument list.
func Signature(args []TypeDescriptor) (string, error) {
	tuple, err := ParseArguments(args)
	if err != nil {
		return "", err
	}
	return tuple.String(), nil
}

// ArgumentName returns the path segment used for the i-th argument in errors
// and logs: its declared name, or "arg<i>" for unnamed arguments.
func ArgumentName(name string, index int) string {
	if name != "" {
		return name
	}
	return "arg" + strconv.Itoa(index)
}
