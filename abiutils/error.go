// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package abiutils

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformedType       = fmt.Errorf("malformed type")
	ErrNumericOverflow     = fmt.Errorf("numeric overflow")
	ErrValueTooLarge       = fmt.Errorf("value too large")
	ErrInvalidByteLength   = fmt.Errorf("invalid byte length")
	ErrArrayLengthMismatch = fmt.Errorf("array length mismatch")
	ErrUnknownTupleKey     = fmt.Errorf("unknown tuple key")
	ErrMissingTupleKey     = fmt.Errorf("missing tuple key")
	ErrSelectorMismatch    = fmt.Errorf("selector mismatch")
	ErrTruncatedBuffer     = fmt.Errorf("truncated buffer")
	ErrInvalidValue        = fmt.Errorf("invalid value")
	ErrInvalidEncoding     = fmt.Errorf("invalid encoding")
	ErrArgumentCount       = fmt.Errorf("argument count mismatch")
	ErrMissingPlacement    = fmt.Errorf("node without placement")
	ErrDuplicatePlacement  = fmt.Errorf("node placed twice")
)

// Phase indicates in which codec stage an error occurred.
type Phase string

const (
	PhaseParse  Phase = "parse"  // type grammar / signature parsing
	PhaseEncode Phase = "encode" // value assignment and layout
	PhaseDecode Phase = "decode" // calldata to values
)

// Error is the structured error returned by all codec operations.
//
// Kind is always one of the sentinel errors above, so callers can match with
// errors.Is(err, abiutils.ErrNumericOverflow). Path holds the dotted parameter
// path of the offending value (e.g. "order.makerAssetAmount" or "items[2]").
type Error struct {
	Cause  error
	Kind   error
	Phase  Phase
	Path   string
	Type   string
	Detail string
}

func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	if e.Kind != nil {
		b.WriteString(e.Kind.Error())
	} else {
		b.WriteString("error")
	}

	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}

	if e.Type != "" {
		b.WriteString(" (")
		b.WriteString(e.Type)
		b.WriteByte(')')
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap exposes both the error kind and the underlying cause to errors.Is/As.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// ErrorBuilder provides structured error construction.
type ErrorBuilder struct {
	err Error
}

// NewError starts building an error of the given phase and kind.
func NewError(phase Phase, kind error) *ErrorBuilder {
	return &ErrorBuilder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the parameter path.
func (b *ErrorBuilder) Path(path string) *ErrorBuilder {
	b.err.Path = path
	return b
}

// Type sets the canonical ABI type of the offending parameter.
func (b *ErrorBuilder) Type(t string) *ErrorBuilder {
	b.err.Type = t
	return b
}

// Cause sets the underlying error.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message.
func (b *ErrorBuilder) Detail(msg string, args ...any) *ErrorBuilder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

func (b *ErrorBuilder) Build() *Error {
	return &b.err
}

var errorKinds = []error{
	ErrMalformedType,
	ErrNumericOverflow,
	ErrValueTooLarge,
	ErrInvalidByteLength,
	ErrArrayLengthMismatch,
	ErrUnknownTupleKey,
	ErrMissingTupleKey,
	ErrSelectorMismatch,
	ErrTruncatedBuffer,
	ErrInvalidEncoding,
	ErrArgumentCount,
	ErrMissingPlacement,
	ErrDuplicatePlacement,
	ErrInvalidValue,
}

// Wrap attributes err to a parameter. Codec errors without a path get path
// and typ filled in; plain errors are converted into a codec error whose kind
// is the first sentinel they wrap (ErrInvalidValue if none).
func Wrap(err error, phase Phase, path string, typ string) error {
	if err == nil {
		return nil
	}

	var codecErr *Error
	if errors.As(err, &codecErr) {
		if codecErr.Path == "" {
			codecErr.Path = path
		}
		if codecErr.Type == "" {
			codecErr.Type = typ
		}
		return codecErr
	}

	kind := ErrInvalidValue
	for _, k := range errorKinds {
		if errors.Is(err, k) {
			kind = k
			break
		}
	}

	return NewError(phase, kind).Path(path).Type(typ).Detail("%s", err.Error()).Build()
}

// PrefixPath prepends a path segment to the path of a codec error. Errors of
// other types are converted with Wrap first.
func PrefixPath(err error, phase Phase, prefix string) error {
	if err == nil {
		return nil
	}

	var codecErr *Error
	if !errors.As(err, &codecErr) {
		return Wrap(err, phase, prefix, "")
	}

	switch {
	case codecErr.Path == "":
		codecErr.Path = prefix
	case strings.HasPrefix(codecErr.Path, "["):
		codecErr.Path = prefix + codecErr.Path
	default:
		codecErr.Path = JoinPath(prefix, codecErr.Path)
	}
	return codecErr
}

// JoinPath appends a named field to a dotted parameter path.
func JoinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	if name == "" {
		return parent
	}
	return parent + "." + name
}

// IndexPath appends an element index to a parameter path.
func IndexPath(parent string, index int) string {
	return fmt.Sprintf("%s[%d]", parent, index)
}
