// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package dynabi

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/pk910/dynamic-abi/abitypes"
	"github.com/pk910/dynamic-abi/abiutils"
)

// TupleInput is the value of a tuple: either Positional or Keyed.
type TupleInput interface {
	tupleInput()
}

// Positional assigns tuple components by index. Decoded tuples are returned as Positional.
type Positional []any

// Keyed assigns tuple components by their declared names.
type Keyed map[string]any

func (Positional) tupleInput() {}
func (Keyed) tupleInput()      {}

// toTupleInput decides once how a tuple value is interpreted. Slices and
// arrays are positional, maps with string keys are keyed.
func toTupleInput(value any) (TupleInput, error) {
	switch v := value.(type) {
	case Positional:
		return v, nil
	case Keyed:
		return v, nil
	case []any:
		return Positional(v), nil
	case map[string]any:
		return Keyed(v), nil
	case nil:
		return nil, fmt.Errorf("%w: nil tuple value", abiutils.ErrInvalidValue)
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		values := make(Positional, rv.Len())
		for i := range values {
			values[i] = rv.Index(i).Interface()
		}
		return values, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		values := make(Keyed, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			values[iter.Key().String()] = iter.Value().Interface()
		}
		return values, nil
	}

	return nil, fmt.Errorf("%w: cannot use %T as tuple", abiutils.ErrInvalidValue, value)
}

// toElements converts an array value to its elements.
func toElements(value any) ([]any, error) {
	switch v := value.(type) {
	case []any:
		return v, nil
	case Positional:
		return v, nil
	case nil:
		return nil, fmt.Errorf("%w: nil array value", abiutils.ErrInvalidValue)
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: cannot use %T as array", abiutils.ErrInvalidValue, value)
	}

	elements := make([]any, rv.Len())
	for i := range elements {
		elements[i] = rv.Index(i).Interface()
	}
	return elements, nil
}

// builder constructs the node tree of an argument list and assigns values.
type builder struct {
	arena *arena
}

// build creates the node for typ. Tuple components are created eagerly; array
// elements are created on assignment, once the value length is known to fit.
func (b *builder) build(typ *abitypes.Type, parent nodeIndex, path string) nodeIndex {
	idx := b.arena.add(typ, parent, path)

	if typ.AbiType == abitypes.AbiTupleType {
		children := make([]nodeIndex, len(typ.Components))
		for i, component := range typ.Components {
			children[i] = b.build(component, idx, componentPath(path, typ, i))
		}
		b.arena.get(idx).children = children
	}

	return idx
}

func componentPath(parent string, tuple *abitypes.Type, i int) string {
	return abiutils.JoinPath(parent, abitypes.ArgumentName(tuple.ComponentNames[i], i))
}

// assign sets the value of a node and all its descendants. Errors are
// attributed to the path of the innermost offending node.
func (b *builder) assign(idx nodeIndex, value any) error {
	n := b.arena.get(idx)
	typ := n.typ
	path := n.path

	var err error
	switch typ.AbiType {
	case abitypes.AbiTupleType:
		err = b.assignTuple(idx, value)
	case abitypes.AbiFixedArrayType:
		err = b.assignFixedArray(idx, value)
	case abitypes.AbiDynamicArrayType:
		err = b.assignDynamicArray(idx, value)
	default:
		err = assignElementary(n, value)
	}

	if err != nil {
		return abiutils.Wrap(err, abiutils.PhaseEncode, path, typ.String())
	}
	return nil
}

func (b *builder) assignTuple(idx nodeIndex, value any) error {
	input, err := toTupleInput(value)
	if err != nil {
		return err
	}

	n := b.arena.get(idx)
	children := n.children
	names := n.typ.ComponentNames

	switch v := input.(type) {
	case Positional:
		if len(v) != len(children) {
			return fmt.Errorf("%w: tuple has %d components, got %d values", abiutils.ErrArrayLengthMismatch, len(children), len(v))
		}
		for i, child := range children {
			if err := b.assign(child, v[i]); err != nil {
				return err
			}
		}

	case Keyed:
		positions := make(map[string]int, len(names))
		for i, name := range names {
			if name == "" {
				continue
			}
			if _, dup := positions[name]; dup {
				return fmt.Errorf("%w: component name %q is ambiguous", abiutils.ErrUnknownTupleKey, name)
			}
			positions[name] = i
		}

		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if _, ok := positions[key]; !ok {
				return abiutils.NewError(abiutils.PhaseEncode, abiutils.ErrUnknownTupleKey).
					Path(abiutils.JoinPath(n.path, key)).
					Detail("tuple %s has no component %q", n.typ.String(), key).
					Build()
			}
		}

		for i, child := range children {
			fieldValue, ok := v[names[i]]
			if !ok || names[i] == "" {
				return abiutils.NewError(abiutils.PhaseEncode, abiutils.ErrMissingTupleKey).
					Path(b.arena.get(child).path).
					Detail("no value for component %d", i).
					Build()
			}
			if err := b.assign(child, fieldValue); err != nil {
				return err
			}
		}
	}

	return nil
}

func (b *builder) assignFixedArray(idx nodeIndex, value any) error {
	elements, err := toElements(value)
	if err != nil {
		return err
	}

	length := b.arena.get(idx).typ.Length
	if len(elements) != length {
		return fmt.Errorf("%w: expected %d elements, got %d", abiutils.ErrArrayLengthMismatch, length, len(elements))
	}

	return b.assignElements(idx, elements)
}

func (b *builder) assignDynamicArray(idx nodeIndex, value any) error {
	elements, err := toElements(value)
	if err != nil {
		return err
	}

	return b.assignElements(idx, elements)
}

// assignElements creates the element nodes of an array and assigns them.
func (b *builder) assignElements(idx nodeIndex, elements []any) error {
	n := b.arena.get(idx)
	elemType := n.typ.ElemType
	path := n.path

	children := make([]nodeIndex, len(elements))
	for i := range elements {
		children[i] = b.build(elemType, idx, abiutils.IndexPath(path, i))
	}

	n = b.arena.get(idx)
	n.children = children
	n.length = len(elements)

	for i, child := range children {
		if err := b.assign(child, elements[i]); err != nil {
			return err
		}
	}
	return nil
}
