// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package dynabi

import (
	"go.uber.org/zap"

	"github.com/pk910/dynamic-abi/abitypes"
	"github.com/pk910/dynamic-abi/abiutils"
)

// MaxDecodeNodes bounds the number of nodes one decode call may create.
const MaxDecodeNodes = abitypes.MaxTypeNodes

// decoder reconstructs the node tree of an encoded argument list.
//
// Every word of the input is read at most once when decoding a well formed
// encoding, so the decoder tracks the remaining words it may read. Offsets that
// alias an already decoded region exhaust it.
type decoder struct {
	arena      *arena
	dec        *abiutils.BufferDecoder
	paramsSize int
	readBudget int
	logger     *zap.Logger
	verbose    bool
}

func newDecoder(data []byte, root *abitypes.Type, logger *zap.Logger, verbose bool) *decoder {
	return &decoder{
		arena:      newArena(len(root.Components) * 2),
		dec:        abiutils.NewBufferDecoder(data),
		paramsSize: root.MembersSize(),
		readBudget: (len(data) + abiutils.WordSize - 1) / abiutils.WordSize,
		logger:     logger,
		verbose:    verbose,
	}
}

// decodeArguments decodes the argument list described by the tuple type root
// and returns the values in declaration order.
func (d *decoder) decodeArguments(root *abitypes.Type) ([]any, error) {
	if d.dec.GetLength() < d.paramsSize {
		return nil, abiutils.NewError(abiutils.PhaseDecode, abiutils.ErrTruncatedBuffer).
			Detail("params section needs %d bytes, got %d", d.paramsSize, d.dec.GetLength()).
			Build()
	}

	idx, err := d.decodeAt(root, 0, noNode, "")
	if err != nil {
		return nil, err
	}

	return d.collect(idx).(Positional), nil
}

// decodeAt decodes a value of typ whose encoding starts at abs.
func (d *decoder) decodeAt(typ *abitypes.Type, abs int, parent nodeIndex, path string) (nodeIndex, error) {
	if len(d.arena.nodes) >= MaxDecodeNodes {
		return noNode, abiutils.NewError(abiutils.PhaseDecode, abiutils.ErrInvalidEncoding).
			Path(path).
			Type(typ.String()).
			Detail("decoded value exceeds %d nodes", MaxDecodeNodes).
			Build()
	}

	idx := d.arena.add(typ, parent, path)
	if err := d.arena.place(idx, abs, d.paramsSize); err != nil {
		return noNode, err
	}

	if d.verbose {
		d.logger.Debug("decoding node",
			zap.String("path", path),
			zap.String("type", typ.String()),
			zap.Int("abs", abs),
		)
	}

	var err error
	switch typ.AbiType {
	case abitypes.AbiTupleType:
		err = d.decodeTuple(idx, typ, abs, path)
	case abitypes.AbiFixedArrayType:
		err = d.decodeElements(idx, typ.ElemType, typ.Length, abs, path)
	case abitypes.AbiDynamicArrayType:
		err = d.decodeDynamicArray(idx, typ, abs, path)
	case abitypes.AbiBytesType, abitypes.AbiStringType:
		var value any
		value, err = decodePayload(d.dec, typ, abs)
		if err == nil {
			err = d.consume(1 + payloadWords(value))
		}
		d.arena.get(idx).value = value
	default:
		var word []byte
		word, err = d.dec.DecodeWordAt(abs)
		if err == nil {
			err = d.consume(1)
		}
		if err == nil {
			var value any
			value, err = decodeElementaryWord(typ, word)
			d.arena.get(idx).value = value
		}
	}

	if err != nil {
		return noNode, abiutils.Wrap(err, abiutils.PhaseDecode, path, typ.String())
	}
	return idx, nil
}

// decodeChild decodes the child whose head starts at headPos. Dynamic children
// are reached through the offset stored at headPos, relative to base.
func (d *decoder) decodeChild(typ *abitypes.Type, headPos, base int, parent nodeIndex, path string) (nodeIndex, error) {
	if !typ.IsDynamic() {
		return d.decodeAt(typ, headPos, parent, path)
	}

	offset, err := d.dec.DecodeOffsetAt(headPos)
	if err == nil {
		err = d.consume(1)
	}
	if err != nil {
		return noNode, abiutils.Wrap(err, abiutils.PhaseDecode, path, typ.String())
	}

	target := base + offset
	if target >= d.dec.GetLength() {
		return noNode, abiutils.NewError(abiutils.PhaseDecode, abiutils.ErrTruncatedBuffer).
			Path(path).
			Type(typ.String()).
			Detail("offset %d points past the buffer end (%d bytes)", target, d.dec.GetLength()).
			Build()
	}

	return d.decodeAt(typ, target, parent, path)
}

func (d *decoder) decodeTuple(idx nodeIndex, typ *abitypes.Type, abs int, path string) error {
	children := make([]nodeIndex, len(typ.Components))
	headPos := abs

	for i, component := range typ.Components {
		child, err := d.decodeChild(component, headPos, abs, idx, componentPath(path, typ, i))
		if err != nil {
			return err
		}
		children[i] = child
		headPos += component.HeadSize
	}

	d.arena.get(idx).children = children
	return nil
}

// decodeElements decodes count consecutive elements whose heads start at start.
func (d *decoder) decodeElements(idx nodeIndex, elemType *abitypes.Type, count int, start int, path string) error {
	children := make([]nodeIndex, count)
	headPos := start

	for i := range children {
		child, err := d.decodeChild(elemType, headPos, start, idx, abiutils.IndexPath(path, i))
		if err != nil {
			return err
		}
		children[i] = child
		headPos += elemType.HeadSize
	}

	n := d.arena.get(idx)
	n.children = children
	n.length = count
	return nil
}

func (d *decoder) decodeDynamicArray(idx nodeIndex, typ *abitypes.Type, abs int, path string) error {
	length, err := d.dec.DecodeOffsetAt(abs)
	if err != nil {
		return err
	}
	if err := d.consume(1); err != nil {
		return err
	}

	start := abs + abiutils.WordSize
	remaining := d.dec.GetLength() - start
	if typ.ElemType.HeadSize > 0 && length > remaining/typ.ElemType.HeadSize {
		return abiutils.NewError(abiutils.PhaseDecode, abiutils.ErrTruncatedBuffer).
			Detail("array length %d needs %d head bytes, %d remaining", length, length*typ.ElemType.HeadSize, remaining).
			Build()
	}

	// zero sized elements occupy no input, so only the node limit bounds them
	if available := MaxDecodeNodes - len(d.arena.nodes); length > available/typ.ElemType.NodeCount {
		return abiutils.NewError(abiutils.PhaseDecode, abiutils.ErrInvalidEncoding).
			Detail("array length %d exceeds the node limit of %d", length, MaxDecodeNodes).
			Build()
	}

	return d.decodeElements(idx, typ.ElemType, length, start, path)
}

// consume charges words against the read budget of the input.
func (d *decoder) consume(words int) error {
	d.readBudget -= words
	if d.readBudget < 0 {
		return abiutils.NewError(abiutils.PhaseDecode, abiutils.ErrInvalidEncoding).
			Detail("offsets reference already decoded regions of the %d byte input", d.dec.GetLength()).
			Build()
	}
	return nil
}

func payloadWords(value any) int {
	var size int
	switch v := value.(type) {
	case string:
		size = len(v)
	case []byte:
		size = len(v)
	}
	return (size + abiutils.WordSize - 1) / abiutils.WordSize
}

// collect converts a decoded node tree into Go values.
func (d *decoder) collect(idx nodeIndex) any {
	n := d.arena.get(idx)

	switch n.typ.AbiType {
	case abitypes.AbiTupleType:
		values := make(Positional, len(n.children))
		for i, child := range n.children {
			values[i] = d.collect(child)
		}
		return values
	case abitypes.AbiFixedArrayType, abitypes.AbiDynamicArrayType:
		values := make([]any, len(n.children))
		for i, child := range n.children {
			values[i] = d.collect(child)
		}
		return values
	}

	return n.value
}
