// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package abitypes

import (
	"fmt"
	"math"

	"github.com/casbin/govaluate"
)

// evaluateLength resolves a fixed array length expression against constants.
// The result must be a whole number between 1 and MaxFixedArrayLength.
func evaluateLength(expr string, constants map[string]any) (int, error) {
	expression, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return 0, fmt.Errorf("invalid array length expression %q: %v", expr, err)
	}

	result, err := expression.Evaluate(constants)
	if err != nil {
		return 0, fmt.Errorf("cannot evaluate array length %q: %v", expr, err)
	}

	value, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("array length %q is not a number", expr)
	}
	if value != math.Trunc(value) || value < 1 || value > MaxFixedArrayLength {
		return 0, fmt.Errorf("array length %q evaluates to %v, expected a whole number between 1 and %d", expr, value, MaxFixedArrayLength)
	}

	return int(value), nil
}
