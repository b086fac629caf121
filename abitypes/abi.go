// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package abitypes

import (
	"bytes"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/pk910/dynamic-abi/abiutils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ABI is a parsed contract interface document.
//
// Only the entries relevant for calldata are kept: functions, the constructor
// and custom errors. Events, fallback and receive entries are skipped.
type ABI struct {
	Constructor *Method
	Methods     []*Method
	Errors      []*Method
}

// abiEntry is one element of the ABI JSON array.
type abiEntry struct {
	Type            string           `json:"type" yaml:"type"`
	Name            string           `json:"name" yaml:"name"`
	Inputs          []TypeDescriptor `json:"inputs" yaml:"inputs"`
	Outputs         []TypeDescriptor `json:"outputs" yaml:"outputs"`
	StateMutability string           `json:"stateMutability,omitempty" yaml:"stateMutability,omitempty"`
	Anonymous       bool             `json:"anonymous,omitempty" yaml:"anonymous,omitempty"`
}

// ParseABI parses a standard ABI JSON document.
func ParseABI(data []byte) (*ABI, error) {
	var entries []abiEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse abi json: %w", err)
	}
	return newABI(entries)
}

// ParseABIYAML parses an ABI document using the JSON schema written as YAML.
func ParseABIYAML(data []byte) (*ABI, error) {
	var entries []abiEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse abi yaml: %w", err)
	}
	return newABI(entries)
}

func newABI(entries []abiEntry) (*ABI, error) {
	abi := &ABI{}

	for i := range entries {
		entry := &entries[i]

		var (
			method *Method
			err    error
		)

		switch entry.Type {
		case "function", "":
			method, err = NewMethod(entry.Name, entry.Inputs, entry.Outputs)
			if err == nil {
				abi.Methods = append(abi.Methods, method)
			}
		case "constructor":
			method, err = NewMethod("", entry.Inputs, nil)
			if err == nil {
				abi.Constructor = method
			}
		case "error":
			method, err = NewMethod(entry.Name, entry.Inputs, nil)
			if err == nil {
				abi.Errors = append(abi.Errors, method)
			}
		default:
			continue
		}

		if err != nil {
			return nil, abiutils.PrefixPath(err, abiutils.PhaseParse, entryName(entry, i))
		}
		method.StateMutability = entry.StateMutability
	}

	return abi, nil
}

func entryName(entry *abiEntry, index int) string {
	if entry.Name != "" {
		return entry.Name
	}
	return fmt.Sprintf("%s#%d", entry.Type, index)
}

// MethodByName looks up a function by its name or its canonical signature.
// For overloaded functions the name lookup returns the first declaration.
func (a *ABI) MethodByName(name string) *Method {
	bySignature := strings.Contains(name, "(")
	for _, m := range a.Methods {
		if bySignature && m.Signature() == name {
			return m
		}
		if !bySignature && m.Name == name {
			return m
		}
	}
	return nil
}

// MethodBySelector looks up the function whose selector matches the first
// 4 bytes of calldata.
func (a *ABI) MethodBySelector(calldata []byte) *Method {
	return findBySelector(a.Methods, calldata)
}

// ErrorBySelector looks up the custom error whose selector matches the first
// 4 bytes of revert data.
func (a *ABI) ErrorBySelector(data []byte) *Method {
	return findBySelector(a.Errors, data)
}

func findBySelector(methods []*Method, data []byte) *Method {
	if len(data) < abiutils.SelectorLength {
		return nil
	}
	for _, m := range methods {
		selector := m.Selector()
		if bytes.Equal(selector[:], data[:abiutils.SelectorLength]) {
			return m
		}
	}
	return nil
}
