// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

// Package dynabi encodes and decodes Ethereum contract calldata following the
// contract ABI specification.
//
// Argument lists are described at runtime by type descriptors (as found in
// ABI JSON documents) or by human-readable signatures, so no generated
// bindings are needed:
//
//	data, err := dynabi.Encode("transfer(address,uint256)", "0x1234...", big.NewInt(100))
//
//	method, err := abitypes.ParseSignature("fillOrder((address maker,uint256 amount,bytes data) order,uint256,bytes)")
//	data, err = dynabi.EncodeFunctionCall(method, dynabi.Keyed{...}, 7, []byte{0xaa})
//	values, err := dynabi.DecodeFunctionInput(method, data)
//
// Each call builds its own node tree and discards it on return, so a Codec can
// be shared between goroutines.
package dynabi

import (
	"bytes"

	"go.uber.org/zap"

	"github.com/pk910/dynamic-abi/abitypes"
	"github.com/pk910/dynamic-abi/abiutils"
)

// Codec encodes and decodes argument lists. It only holds configuration.
type Codec struct {
	logger       *zap.Logger
	verbose      bool
	strictDecode bool
	constants    map[string]any
}

// NewCodec creates a codec with the given options.
func NewCodec(options ...CodecOption) *Codec {
	opts := &CodecOptions{}
	for _, option := range options {
		option(opts)
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Codec{
		logger:       logger,
		verbose:      opts.Verbose,
		strictDecode: opts.StrictDecode,
		constants:    opts.Constants,
	}
}

// EncodeFunctionCall encodes calldata for method: the selector followed by
// the encoded arguments.
func (c *Codec) EncodeFunctionCall(method *abitypes.Method, values ...any) ([]byte, error) {
	selector := method.Selector()
	data, err := c.encode(method.InputType(), selector[:], values)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("encoded function call",
		zap.String("method", method.Signature()),
		zap.Int("size", len(data)),
	)
	return data, nil
}

// Encode parses a function signature and encodes calldata for it.
func (c *Codec) Encode(signature string, values ...any) ([]byte, error) {
	method, err := abitypes.ParseSignatureWithConstants(signature, c.constants)
	if err != nil {
		return nil, err
	}
	return c.EncodeFunctionCall(method, values...)
}

// EncodeArguments encodes an argument list without selector, as used for
// constructor arguments and return data.
func (c *Codec) EncodeArguments(args []abitypes.TypeDescriptor, values ...any) ([]byte, error) {
	root, err := abitypes.ParseArguments(args)
	if err != nil {
		return nil, err
	}
	return c.encode(root, nil, values)
}

// DecodeFunctionInput verifies the selector of calldata and decodes the
// arguments of method.
func (c *Codec) DecodeFunctionInput(method *abitypes.Method, data []byte) ([]any, error) {
	if len(data) < abiutils.SelectorLength {
		return nil, abiutils.NewError(abiutils.PhaseDecode, abiutils.ErrTruncatedBuffer).
			Detail("calldata shorter than selector (%d bytes)", len(data)).
			Build()
	}

	selector := method.Selector()
	if !bytes.Equal(data[:abiutils.SelectorLength], selector[:]) {
		return nil, abiutils.NewError(abiutils.PhaseDecode, abiutils.ErrSelectorMismatch).
			Detail("calldata selector %x does not match %s (%x)", data[:abiutils.SelectorLength], method.Signature(), selector).
			Build()
	}

	return c.decode(method.InputType(), data[abiutils.SelectorLength:])
}

// DecodeFunctionResult decodes the return data of method.
func (c *Codec) DecodeFunctionResult(method *abitypes.Method, data []byte) ([]any, error) {
	return c.decode(method.OutputType(), data)
}

// Decode decodes an argument list without selector described by args.
func (c *Codec) Decode(args []abitypes.TypeDescriptor, data []byte) ([]any, error) {
	root, err := abitypes.ParseArguments(args)
	if err != nil {
		return nil, err
	}
	return c.decode(root, data)
}

// DecodeCall looks up the function called by calldata in abi and decodes its arguments.
func (c *Codec) DecodeCall(abi *abitypes.ABI, data []byte) (*abitypes.Method, []any, error) {
	method := abi.MethodBySelector(data)
	if method == nil {
		return nil, nil, abiutils.NewError(abiutils.PhaseDecode, abiutils.ErrSelectorMismatch).
			Detail("no function for calldata selector %x", data[:min(len(data), abiutils.SelectorLength)]).
			Build()
	}

	values, err := c.DecodeFunctionInput(method, data)
	if err != nil {
		return nil, nil, err
	}
	return method, values, nil
}

// encode assigns values to the argument list root, plans the layout and
// assembles the buffer behind prefix.
func (c *Codec) encode(root *abitypes.Type, prefix []byte, values []any) ([]byte, error) {
	if len(values) != len(root.Components) {
		return nil, abiutils.NewError(abiutils.PhaseEncode, abiutils.ErrArgumentCount).
			Type(root.String()).
			Detail("expected %d arguments, got %d", len(root.Components), len(values)).
			Build()
	}

	b := &builder{arena: newArena(len(values) * 4)}
	rootIdx := b.build(root, noNode, "")
	if err := b.assign(rootIdx, Positional(values)); err != nil {
		return nil, err
	}

	planner := newLayoutPlanner(b.arena, rootIdx, c.logger, c.verbose)
	size, err := planner.plan(rootIdx)
	if err != nil {
		return nil, err
	}

	return assembleCalldata(b.arena, rootIdx, planner.emitted, size, prefix)
}

func (c *Codec) decode(root *abitypes.Type, data []byte) ([]any, error) {
	d := newDecoder(data, root, c.logger, c.verbose)
	values, err := d.decodeArguments(root)
	if err != nil {
		return nil, err
	}

	if c.strictDecode {
		encoded, err := c.encode(root, nil, values)
		if err != nil {
			return nil, err
		}
		if !bytes.Equal(encoded, data) {
			return nil, abiutils.NewError(abiutils.PhaseDecode, abiutils.ErrInvalidEncoding).
				Type(root.String()).
				Detail("input is not canonically encoded (%d bytes, canonical %d bytes)", len(data), len(encoded)).
				Build()
		}
	}

	return values, nil
}

// Selector returns the 4-byte selector of a function signature. The
// signature is normalized first, so parameter names and whitespace are allowed.
func Selector(signature string) ([abiutils.SelectorLength]byte, error) {
	method, err := abitypes.ParseSignature(signature)
	if err != nil {
		return [abiutils.SelectorLength]byte{}, err
	}
	return method.Selector(), nil
}

// EncodeFunctionCall encodes calldata with the global codec.
func EncodeFunctionCall(method *abitypes.Method, values ...any) ([]byte, error) {
	return GetGlobalCodec().EncodeFunctionCall(method, values...)
}

// Encode encodes calldata for a function signature with the global codec.
func Encode(signature string, values ...any) ([]byte, error) {
	return GetGlobalCodec().Encode(signature, values...)
}

// EncodeArguments encodes an argument list with the global codec.
func EncodeArguments(args []abitypes.TypeDescriptor, values ...any) ([]byte, error) {
	return GetGlobalCodec().EncodeArguments(args, values...)
}

// DecodeFunctionInput decodes calldata with the global codec.
func DecodeFunctionInput(method *abitypes.Method, data []byte) ([]any, error) {
	return GetGlobalCodec().DecodeFunctionInput(method, data)
}

// DecodeFunctionResult decodes return data with the global codec.
func DecodeFunctionResult(method *abitypes.Method, data []byte) ([]any, error) {
	return GetGlobalCodec().DecodeFunctionResult(method, data)
}

// Decode decodes an argument list with the global codec.
func Decode(args []abitypes.TypeDescriptor, data []byte) ([]any, error) {
	return GetGlobalCodec().Decode(args, data)
}

// DecodeCall decodes calldata of any function in abi with the global codec.
func DecodeCall(abi *abitypes.ABI, data []byte) (*abitypes.Method, []any, error) {
	return GetGlobalCodec().DecodeCall(abi, data)
}
