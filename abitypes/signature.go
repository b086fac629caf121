// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package abitypes

import (
	"strconv"
	"strings"

	"github.com/pk910/dynamic-abi/abiutils"
)

// ParseSignature parses a human-readable function signature into a Method.
//
// Accepted forms:
//
//	transfer(address,uint256)
//	transfer(address to, uint256 amount)
//	fillOrder((address,uint256,bytes) order, uint256, bytes)
//	balanceOf(address) returns (uint256)
//	balanceOf(address)(uint256)
//	balanceOf(address owner) external view returns (uint256 balance)
//
// Inline tuples may carry array suffixes, e.g. "(uint256,string)[2][]", and may
// optionally be written with a leading "tuple" keyword. Data location keywords
// (memory, calldata, storage) and "indexed" after a type are ignored.
func ParseSignature(signature string) (*Method, error) {
	return ParseSignatureWithConstants(signature, nil)
}

// ParseSignatureWithConstants parses a signature whose fixed array lengths may
// be expressions over named constants, e.g. "setOwners(address[MAX_OWNERS])"
// or "verify(bytes32[DEPTH * 2] proof)".
func ParseSignatureWithConstants(signature string, constants map[string]any) (*Method, error) {
	p := &signatureParser{input: signature, constants: constants}

	p.skipSpace()
	name := p.identifier()
	if name == "" {
		return nil, p.fail("expected function name")
	}

	inputs, err := p.parameterList()
	if err != nil {
		return nil, err
	}

	var (
		outputs         []TypeDescriptor
		stateMutability string
	)
	p.skipSpace()
	for p.functionModifier(&stateMutability) {
		p.skipSpace()
	}
	if p.keyword("returns") {
		p.skipSpace()
	}
	if p.peek() == '(' {
		outputs, err = p.parameterList()
		if err != nil {
			return nil, err
		}
	}

	p.skipSpace()
	if !p.eof() {
		return nil, p.fail("unexpected trailing input")
	}

	method, err := NewMethod(name, inputs, outputs)
	if err != nil {
		return nil, err
	}
	method.StateMutability = stateMutability
	return method, nil
}

type signatureParser struct {
	input     string
	pos       int
	constants map[string]any
}

var (
	ignoredModifiers  = []string{"memory", "calldata", "storage", "indexed", "payable"}
	functionModifiers = []string{"external", "public", "view", "pure", "nonpayable", "payable"}
)

func (p *signatureParser) fail(detail string) error {
	return abiutils.NewError(abiutils.PhaseParse, abiutils.ErrMalformedType).
		Type(p.input).
		Detail("%s at position %d", detail, p.pos).
		Build()
}

func (p *signatureParser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *signatureParser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.input[p.pos]
}

func (p *signatureParser) skipSpace() {
	for !p.eof() && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t' || p.input[p.pos] == '\n') {
		p.pos++
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// identifier consumes an identifier and returns it, or "" if there is none.
func (p *signatureParser) identifier() string {
	if p.eof() || !isIdentStart(p.input[p.pos]) {
		return ""
	}
	start := p.pos
	for !p.eof() && isIdentChar(p.input[p.pos]) {
		p.pos++
	}
	return p.input[start:p.pos]
}

// keyword consumes word if it follows as a whole identifier.
func (p *signatureParser) keyword(word string) bool {
	if !strings.HasPrefix(p.input[p.pos:], word) {
		return false
	}
	end := p.pos + len(word)
	if end < len(p.input) && isIdentChar(p.input[end]) {
		return false
	}
	p.pos = end
	return true
}

// functionModifier consumes a visibility or state mutability keyword.
func (p *signatureParser) functionModifier(stateMutability *string) bool {
	for _, word := range functionModifiers {
		if !p.keyword(word) {
			continue
		}
		if word != "external" && word != "public" {
			*stateMutability = word
		}
		return true
	}
	return false
}

// parameterList parses "(param, param, ...)".
func (p *signatureParser) parameterList() ([]TypeDescriptor, error) {
	p.skipSpace()
	if p.peek() != '(' {
		return nil, p.fail("expected '('")
	}
	p.pos++

	params := []TypeDescriptor{}
	p.skipSpace()
	if p.peek() == ')' {
		p.pos++
		return params, nil
	}

	for {
		param, err := p.parameter()
		if err != nil {
			return nil, err
		}
		params = append(params, param)

		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case ')':
			p.pos++
			return params, nil
		default:
			return nil, p.fail("expected ',' or ')'")
		}
	}
}

// parameter parses "type [modifiers] [name]".
func (p *signatureParser) parameter() (TypeDescriptor, error) {
	var param TypeDescriptor

	p.skipSpace()
	if p.keyword("tuple") {
		p.skipSpace()
		if p.peek() != '(' {
			// plain "tuple" without inline components is not expressible here
			return param, p.fail("expected '(' after tuple")
		}
	}

	if p.peek() == '(' {
		components, err := p.parameterList()
		if err != nil {
			return param, err
		}
		param.Type = "tuple"
		param.Components = components
	} else {
		param.Type = p.identifier()
		if param.Type == "" {
			return param, p.fail("expected type")
		}
	}

	suffix, err := p.arraySuffix()
	if err != nil {
		return param, err
	}
	param.Type += suffix

	for {
		p.skipSpace()
		ident := p.identifier()
		if ident == "" {
			break
		}
		if isIgnoredModifier(ident) {
			if ident == "indexed" {
				param.Indexed = true
			}
			continue
		}
		if param.Name != "" {
			p.pos -= len(ident)
			return param, p.fail("unexpected identifier")
		}
		param.Name = ident
	}

	return param, nil
}

// arraySuffix consumes any number of "[]" / "[k]" suffixes and returns them
// with constant expressions replaced by their value.
func (p *signatureParser) arraySuffix() (string, error) {
	var suffix strings.Builder
	for p.peek() == '[' {
		end := strings.IndexByte(p.input[p.pos:], ']')
		if end < 0 {
			return "", p.fail("unterminated array suffix")
		}

		length := strings.TrimSpace(p.input[p.pos+1 : p.pos+end])
		if !isDecimal(length) {
			if p.constants == nil {
				return "", p.fail("invalid array length")
			}
			value, err := evaluateLength(length, p.constants)
			if err != nil {
				return "", p.fail(err.Error())
			}
			length = strconv.Itoa(value)
		}

		suffix.WriteByte('[')
		suffix.WriteString(length)
		suffix.WriteByte(']')
		p.pos += end + 1
	}
	return suffix.String(), nil
}

func isDecimal(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func isIgnoredModifier(ident string) bool {
	for _, m := range ignoredModifiers {
		if ident == m {
			return true
		}
	}
	return false
}
