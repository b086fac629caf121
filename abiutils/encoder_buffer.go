// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package abiutils

// BufferEncoder writes words and raw payloads into a preallocated buffer.
type BufferEncoder struct {
	buffer []byte
	pos    int
}

// NewBufferEncoder creates a new BufferEncoder using the provided buffer.
// The buffer should have sufficient capacity for the expected output.
func NewBufferEncoder(buffer []byte) *BufferEncoder {
	return &BufferEncoder{
		buffer: buffer,
		pos:    len(buffer),
	}
}

func (e *BufferEncoder) GetPosition() int {
	return e.pos
}

func (e *BufferEncoder) GetBuffer() []byte {
	return e.buffer[:e.pos]
}

func (e *BufferEncoder) EncodeBytes(v []byte) {
	e.buffer = append(e.buffer[:e.pos], v...)
	e.pos += len(v)
}

func (e *BufferEncoder) EncodeWord(v [WordSize]byte) {
	e.EncodeBytes(v[:])
}

func (e *BufferEncoder) EncodeZeroPadding(n int) {
	if n > 0 {
		e.EncodeBytes(make([]byte, n))
	}
}
