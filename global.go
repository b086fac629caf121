// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package dynabi

import "sync"

var (
	globalCodec   *Codec
	globalCodecMu sync.Mutex
)

// GetGlobalCodec returns the codec used by the package level functions.
func GetGlobalCodec() *Codec {
	globalCodecMu.Lock()
	defer globalCodecMu.Unlock()

	if globalCodec == nil {
		globalCodec = NewCodec()
	}
	return globalCodec
}

// SetGlobalCodec replaces the codec used by the package level functions.
func SetGlobalCodec(codec *Codec) {
	globalCodecMu.Lock()
	defer globalCodecMu.Unlock()

	globalCodec = codec
}

// SetGlobalConstants replaces the global codec with a default codec resolving
// fixed array length expressions against constants.
func SetGlobalConstants(constants map[string]any) {
	SetGlobalCodec(NewCodec(WithConstants(constants)))
}
