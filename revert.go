// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package dynabi

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/pk910/dynamic-abi/abitypes"
	"github.com/pk910/dynamic-abi/abiutils"
)

var (
	revertErrorMethod = mustMethod("Error(string)")
	revertPanicMethod = mustMethod("Panic(uint256)")
)

var panicReasons = map[uint64]string{
	0x00: "generic panic",
	0x01: "assert(false)",
	0x11: "arithmetic underflow or overflow",
	0x12: "division or modulo by zero",
	0x21: "enum overflow",
	0x22: "invalid encoded storage byte array accessed",
	0x31: "out-of-bounds array access; popping on an empty array",
	0x32: "out-of-bounds access of an array or bytesN",
	0x41: "out of memory",
	0x51: "uninitialized function",
}

func mustMethod(signature string) *abitypes.Method {
	method, err := abitypes.ParseSignature(signature)
	if err != nil {
		panic(err)
	}
	return method
}

// RevertReason is a decoded standard revert payload.
type RevertReason struct {
	Panic   bool
	Message string   // Error(string) message or panic description
	Code    *big.Int // Panic(uint256) code
}

func (r *RevertReason) String() string {
	if r.Panic {
		return fmt.Sprintf("panic 0x%x: %s", r.Code, r.Message)
	}
	return r.Message
}

// DecodeRevert decodes revert data of the form Error(string) or Panic(uint256).
func (c *Codec) DecodeRevert(data []byte) (*RevertReason, error) {
	if len(data) < abiutils.SelectorLength {
		return nil, abiutils.NewError(abiutils.PhaseDecode, abiutils.ErrTruncatedBuffer).
			Detail("revert data shorter than selector (%d bytes)", len(data)).
			Build()
	}

	errorSelector := revertErrorMethod.Selector()
	panicSelector := revertPanicMethod.Selector()

	switch {
	case bytes.Equal(data[:abiutils.SelectorLength], errorSelector[:]):
		values, err := c.DecodeFunctionInput(revertErrorMethod, data)
		if err != nil {
			return nil, err
		}
		return &RevertReason{Message: values[0].(string)}, nil

	case bytes.Equal(data[:abiutils.SelectorLength], panicSelector[:]):
		values, err := c.DecodeFunctionInput(revertPanicMethod, data)
		if err != nil {
			return nil, err
		}
		code := values[0].(*big.Int)
		reason := &RevertReason{Panic: true, Code: code, Message: "unknown panic code"}
		if code.IsUint64() {
			if msg, ok := panicReasons[code.Uint64()]; ok {
				reason.Message = msg
			}
		}
		return reason, nil
	}

	return nil, abiutils.NewError(abiutils.PhaseDecode, abiutils.ErrSelectorMismatch).
		Detail("revert selector %x is neither Error(string) nor Panic(uint256)", data[:abiutils.SelectorLength]).
		Build()
}

// DecodeCustomError looks up the custom error of abi matching the selector of
// revert data and decodes its arguments.
func (c *Codec) DecodeCustomError(abi *abitypes.ABI, data []byte) (*abitypes.Method, []any, error) {
	method := abi.ErrorBySelector(data)
	if method == nil {
		return nil, nil, abiutils.NewError(abiutils.PhaseDecode, abiutils.ErrSelectorMismatch).
			Detail("no custom error for revert selector %x", data[:min(len(data), abiutils.SelectorLength)]).
			Build()
	}

	values, err := c.DecodeFunctionInput(method, data)
	if err != nil {
		return nil, nil, err
	}
	return method, values, nil
}

// DecodeRevert decodes standard revert data with the global codec.
func DecodeRevert(data []byte) (*RevertReason, error) {
	return GetGlobalCodec().DecodeRevert(data)
}
