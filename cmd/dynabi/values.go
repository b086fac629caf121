// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package main

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/urfave/cli/v2"

	dynabi "github.com/pk910/dynamic-abi"
	"github.com/pk910/dynamic-abi/abitypes"
	"github.com/pk910/dynamic-abi/abiutils"
)

var json = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	UseNumber:              true,
	ValidateJsonRawMessage: true,
}.Froze()

// parseValues parses a JSON array of argument values. Numbers are kept as
// json.Number so integers beyond float64 precision survive; objects become
// keyed tuple values.
func parseValues(input string) ([]any, error) {
	var values []any
	if err := json.Unmarshal([]byte(input), &values); err != nil {
		return nil, fmt.Errorf("arguments must be a JSON array: %w", err)
	}
	return values, nil
}

// parseConstants parses the NAME=VALUE pairs of the --const flag.
func parseConstants(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	constants := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid constant %q, expected NAME=VALUE", pair)
		}

		number, err := strconv.ParseUint(strings.TrimSpace(value), 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for constant %s: %w", name, err)
		}
		constants[name] = number
	}
	return constants, nil
}

// argumentsToJSON converts decoded argument values into JSON friendly values.
func argumentsToJSON(args []abitypes.TypeDescriptor, values []any, keyed bool) any {
	root, err := abitypes.ParseArguments(args)
	if err != nil {
		return values
	}
	return valueToJSON(root, dynabi.Positional(values), keyed)
}

func valueToJSON(typ *abitypes.Type, value any, keyed bool) any {
	switch typ.AbiType {
	case abitypes.AbiTupleType:
		components := value.(dynabi.Positional)
		if keyed && hasComponentNames(typ) {
			obj := make(map[string]any, len(components))
			for i, component := range components {
				obj[abitypes.ArgumentName(typ.ComponentNames[i], i)] = valueToJSON(typ.Components[i], component, keyed)
			}
			return obj
		}
		list := make([]any, len(components))
		for i, component := range components {
			list[i] = valueToJSON(typ.Components[i], component, keyed)
		}
		return list

	case abitypes.AbiFixedArrayType, abitypes.AbiDynamicArrayType:
		elements := value.([]any)
		list := make([]any, len(elements))
		for i, element := range elements {
			list[i] = valueToJSON(typ.ElemType, element, keyed)
		}
		return list
	}

	switch v := value.(type) {
	case []byte:
		return abiutils.ToHex(v)
	case abiutils.Address:
		return v.Hex()
	}
	return value
}

func hasComponentNames(typ *abitypes.Type) bool {
	for _, name := range typ.ComponentNames {
		if name != "" {
			return true
		}
	}
	return false
}

func writeJSON(c *cli.Context, value any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(value); err != nil {
		return err
	}
	_, err := c.App.Writer.Write(buf.Bytes())
	return err
}
