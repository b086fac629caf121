// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package dynabi

import "go.uber.org/zap"

type CodecOption func(*CodecOptions)

type CodecOptions struct {
	Logger       *zap.Logger
	Verbose      bool
	StrictDecode bool
	Constants    map[string]any
}

// WithLogger sets the logger used for debug output. The default logger discards everything.
func WithLogger(logger *zap.Logger) CodecOption {
	return func(opts *CodecOptions) {
		opts.Logger = logger
	}
}

// WithVerbose enables per-node debug logging of placements and decoded positions.
func WithVerbose() CodecOption {
	return func(opts *CodecOptions) {
		opts.Verbose = true
	}
}

// WithStrictDecode makes decoding re-encode the decoded values and reject
// input that is not byte-identical to the canonical encoding, e.g. calldata
// with trailing garbage or reordered tail payloads.
func WithStrictDecode() CodecOption {
	return func(opts *CodecOptions) {
		opts.StrictDecode = true
	}
}

// WithConstants sets the named constants available to fixed array length
// expressions in signatures passed to Codec.Encode, e.g. "address[MAX_OWNERS]".
func WithConstants(constants map[string]any) CodecOption {
	return func(opts *CodecOptions) {
		opts.Constants = constants
	}
}
