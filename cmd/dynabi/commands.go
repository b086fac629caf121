// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	dynabi "github.com/pk910/dynamic-abi"
	"github.com/pk910/dynamic-abi/abitypes"
	"github.com/pk910/dynamic-abi/abiutils"
)

func runSelector(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("expected exactly one signature argument", 1)
	}

	method, err := parseSignature(c, c.Args().First())
	if err != nil {
		return err
	}

	selector := method.Selector()
	fmt.Fprintf(c.App.Writer, "%s %s\n", abiutils.ToHex(selector[:]), method.Signature())
	return nil
}

func runEncode(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("expected exactly one JSON array argument", 1)
	}

	codec, err := newCodec(c)
	if err != nil {
		return err
	}

	method, err := resolveMethod(c)
	if err != nil {
		return err
	}

	values, err := parseValues(c.Args().First())
	if err != nil {
		return err
	}

	var data []byte
	if c.Bool(noSelectorFlag.Name) {
		data, err = codec.EncodeArguments(method.Inputs, values...)
	} else {
		data, err = codec.EncodeFunctionCall(method, values...)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, abiutils.ToHex(data))
	return nil
}

func runDecode(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("expected exactly one hex argument", 1)
	}

	codec, err := newCodec(c)
	if err != nil {
		return err
	}

	data, err := abiutils.FromHex(strings.TrimSpace(c.Args().First()))
	if err != nil {
		return err
	}

	var (
		method *abitypes.Method
		values []any
	)

	switch {
	case c.IsSet(sigFlag.Name) || c.IsSet(methodFlag.Name):
		method, err = resolveMethod(c)
		if err != nil {
			return err
		}
		if c.Bool(outputFlag.Name) {
			values, err = codec.DecodeFunctionResult(method, data)
		} else {
			values, err = codec.DecodeFunctionInput(method, data)
		}
	case c.Path(abiFlag.Name) != "":
		abi, loadErr := loadABI(c.Path(abiFlag.Name))
		if loadErr != nil {
			return loadErr
		}
		method, values, err = codec.DecodeCall(abi, data)
	default:
		return cli.Exit("either --sig, --method or --abi is required", 1)
	}
	if err != nil {
		return err
	}

	args := method.Inputs
	if c.Bool(outputFlag.Name) {
		args = method.Outputs
	}

	return writeJSON(c, argumentsToJSON(args, values, c.Bool(keyedFlag.Name)))
}

func runRevert(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("expected exactly one hex argument", 1)
	}

	codec, err := newCodec(c)
	if err != nil {
		return err
	}

	data, err := abiutils.FromHex(strings.TrimSpace(c.Args().First()))
	if err != nil {
		return err
	}

	reason, err := codec.DecodeRevert(data)
	if err == nil {
		fmt.Fprintln(c.App.Writer, reason.String())
		return nil
	}

	if c.Path(abiFlag.Name) == "" {
		return err
	}

	abi, loadErr := loadABI(c.Path(abiFlag.Name))
	if loadErr != nil {
		return loadErr
	}

	method, values, err := codec.DecodeCustomError(abi, data)
	if err != nil {
		return err
	}

	return writeJSON(c, map[string]any{
		"error": method.Signature(),
		"args":  argumentsToJSON(method.Inputs, values, c.Bool(keyedFlag.Name)),
	})
}

func newCodec(c *cli.Context) (*dynabi.Codec, error) {
	verbose := c.Bool(verboseFlag.Name)

	logger, err := newLogger(verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	options := []dynabi.CodecOption{dynabi.WithLogger(logger)}
	if verbose {
		options = append(options, dynabi.WithVerbose())
	}
	return dynabi.NewCodec(options...), nil
}

// resolveMethod returns the method given by --sig or by --method in the --abi document.
func resolveMethod(c *cli.Context) (*abitypes.Method, error) {
	if sig := c.String(sigFlag.Name); sig != "" {
		return parseSignature(c, sig)
	}

	name := c.String(methodFlag.Name)
	abiPath := c.Path(abiFlag.Name)
	if name == "" || abiPath == "" {
		return nil, cli.Exit("either --sig or --abi with --method is required", 1)
	}

	abi, err := loadABI(abiPath)
	if err != nil {
		return nil, err
	}

	method := abi.MethodByName(name)
	if method == nil {
		return nil, fmt.Errorf("method %q not found in %s", name, abiPath)
	}
	return method, nil
}

func parseSignature(c *cli.Context, signature string) (*abitypes.Method, error) {
	constants, err := parseConstants(c.StringSlice(constFlag.Name))
	if err != nil {
		return nil, err
	}
	return abitypes.ParseSignatureWithConstants(signature, constants)
}

func loadABI(path string) (*abitypes.ABI, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read abi: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return abitypes.ParseABIYAML(data)
	default:
		return abitypes.ParseABI(data)
	}
}
