// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package abiutils

// BufferDecoder provides bounds-checked random access reads of words and
// payloads from an ABI encoded buffer.
type BufferDecoder struct {
	buffer    []byte
	bufferLen int
}

func NewBufferDecoder(buffer []byte) *BufferDecoder {
	return &BufferDecoder{
		buffer:    buffer,
		bufferLen: len(buffer),
	}
}

func (d *BufferDecoder) GetLength() int {
	return d.bufferLen
}

// DecodeWordAt returns the 32-byte word starting at pos.
func (d *BufferDecoder) DecodeWordAt(pos int) ([]byte, error) {
	return d.DecodeBytesAt(pos, WordSize)
}

// DecodeBytesAt returns n bytes starting at pos.
func (d *BufferDecoder) DecodeBytesAt(pos int, n int) ([]byte, error) {
	if pos < 0 || n < 0 || pos > d.bufferLen || d.bufferLen-pos < n {
		return nil, NewError(PhaseDecode, ErrTruncatedBuffer).Detail("need %d bytes at offset %d, buffer has %d", n, pos, d.bufferLen).Build()
	}
	return d.buffer[pos : pos+n], nil
}

// DecodeOffsetAt reads a length or offset word at pos.
func (d *BufferDecoder) DecodeOffsetAt(pos int) (int, error) {
	word, err := d.DecodeWordAt(pos)
	if err != nil {
		return 0, err
	}
	value, ok := DecodeLengthWord(word)
	if !ok || value > d.bufferLen {
		return 0, NewError(PhaseDecode, ErrTruncatedBuffer).Detail("offset/length word at %d points past the buffer end (%d bytes)", pos, d.bufferLen).Build()
	}
	return value, nil
}
