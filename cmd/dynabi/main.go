// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	verboseFlag = cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "Log every node placement",
		EnvVars: []string{"DYNABI_VERBOSE"},
	}
	abiFlag = cli.PathFlag{
		Name:    "abi",
		Usage:   "ABI document (.json, .yaml or .yml) to look up methods in",
		EnvVars: []string{"DYNABI_ABI"},
	}
	constFlag = cli.StringSliceFlag{
		Name:  "const",
		Usage: "Named constant NAME=VALUE for fixed array lengths in signatures, e.g. address[MAX_OWNERS]",
	}
	sigFlag = cli.StringFlag{
		Name:  "sig",
		Usage: `Function signature, e.g. "transfer(address to,uint256 amount) returns (bool)"`,
	}
	methodFlag = cli.StringFlag{
		Name:  "method",
		Usage: "Function name or canonical signature in the --abi document",
	}
	outputFlag = cli.BoolFlag{
		Name:  "output",
		Usage: "Decode return data of the method instead of calldata",
	}
	keyedFlag = cli.BoolFlag{
		Name:  "keyed",
		Usage: "Print named tuples and arguments as JSON objects",
	}
	noSelectorFlag = cli.BoolFlag{
		Name:  "no-selector",
		Usage: "Encode the arguments without the function selector",
	}
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "dynabi"
	app.Usage = "Ethereum contract ABI calldata codec"
	app.UsageText = app.Name + ` [global flags] command [flags] [arguments]`

	app.Flags = []cli.Flag{
		&verboseFlag,
		&abiFlag,
		&constFlag,
	}

	app.Commands = []*cli.Command{
		{
			Action:    runSelector,
			Name:      "selector",
			Usage:     "Print the canonical signature and 4-byte selector of a function",
			ArgsUsage: "<signature>",
		},
		{
			Action:    runEncode,
			Name:      "encode",
			Usage:     "Encode calldata from a JSON array of argument values",
			ArgsUsage: "<json-array>",
			Flags: []cli.Flag{
				&sigFlag,
				&methodFlag,
				&noSelectorFlag,
			},
		},
		{
			Action:    runDecode,
			Name:      "decode",
			Usage:     "Decode hex calldata or return data into JSON",
			ArgsUsage: "<hex>",
			Flags: []cli.Flag{
				&sigFlag,
				&methodFlag,
				&outputFlag,
				&keyedFlag,
			},
		},
		{
			Action:    runRevert,
			Name:      "revert",
			Usage:     "Decode revert data (Error(string), Panic(uint256) or custom errors of --abi)",
			ArgsUsage: "<hex>",
			Flags: []cli.Flag{
				&keyedFlag,
			},
		},
	}

	return app
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
