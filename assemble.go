// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package dynabi

import (
	"github.com/pk910/dynamic-abi/abitypes"
	"github.com/pk910/dynamic-abi/abiutils"
)

// assembleCalldata writes prefix (the selector, if any) followed by the
// params and data sections in placement order.
func assembleCalldata(a *arena, root nodeIndex, emitted []nodeIndex, size int, prefix []byte) ([]byte, error) {
	if err := checkPlacements(a, root); err != nil {
		return nil, err
	}

	buf := make([]byte, 0, len(prefix)+size)
	enc := abiutils.NewBufferEncoder(buf)
	enc.EncodeBytes(prefix)

	for _, idx := range emitted {
		n := a.get(idx)

		if pos := enc.GetPosition() - len(prefix); pos != n.placement.Absolute() {
			return nil, abiutils.NewError(abiutils.PhaseEncode, abiutils.ErrMissingPlacement).
				Path(n.path).
				Detail("placement %d does not continue the buffer at %d", n.placement.Absolute(), pos).
				Build()
		}

		switch {
		case n.pointer:
			enc.EncodeWord(n.word)
		case n.typ.AbiType == abitypes.AbiDynamicArrayType:
			enc.EncodeWord(abiutils.EncodeLengthWord(n.length))
		case n.typ.AbiType == abitypes.AbiBytesType || n.typ.AbiType == abitypes.AbiStringType:
			enc.EncodeBytes(n.payload)
		default:
			enc.EncodeWord(n.word)
		}
	}

	return enc.GetBuffer(), nil
}

// checkPlacements verifies that every node reachable from root has been placed.
func checkPlacements(a *arena, root nodeIndex) error {
	stack := []nodeIndex{root}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := a.get(idx)
		if !n.placed {
			return abiutils.NewError(abiutils.PhaseEncode, abiutils.ErrMissingPlacement).
				Path(n.path).
				Type(n.typeName()).
				Build()
		}
		stack = append(stack, n.children...)
	}
	return nil
}
