// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package dynabi

import (
	"github.com/pk910/dynamic-abi/abitypes"
	"github.com/pk910/dynamic-abi/abiutils"
)

// nodeIndex references a node in the arena of one codec call.
type nodeIndex int

const noNode nodeIndex = -1

// Section identifies the region of the calldata a node is placed in.
type Section uint8

const (
	SectionParams Section = iota // head words of the top-level argument list
	SectionData                  // tail payloads
)

func (s Section) String() string {
	if s == SectionParams {
		return "params"
	}
	return "data"
}

// Placement is the position of a node in the encoded argument list (after the
// selector). It is assigned exactly once per call.
type Placement struct {
	Section     Section
	SectionBase int // offset of the section start
	Offset      int // offset within the section
}

// Absolute returns the offset of the placement from the start of the params section.
func (p Placement) Absolute() int {
	return p.SectionBase + p.Offset
}

// node is one value position of the argument tree. Value nodes carry the ABI
// type of their position; pointer nodes are synthetic words referencing the
// tail placement of a dynamic value node.
type node struct {
	typ      *abitypes.Type
	pointer  bool
	parent   nodeIndex
	children []nodeIndex
	target   nodeIndex // pointer target
	path     string

	word    [abiutils.WordSize]byte // static elementary value or pointer offset
	payload []byte                  // length prefixed content of bytes and string
	length  int                     // element count of arrays
	value   any                     // decoded value of elementary nodes

	placement Placement
	placed    bool
}

// arena holds all nodes created during one encode or decode call.
type arena struct {
	nodes []node
}

func newArena(capacity int) *arena {
	return &arena{
		nodes: make([]node, 0, capacity),
	}
}

func (a *arena) get(idx nodeIndex) *node {
	return &a.nodes[idx]
}

// add appends a value node and returns its index. Pointers into the node slice
// are invalidated by add.
func (a *arena) add(typ *abitypes.Type, parent nodeIndex, path string) nodeIndex {
	a.nodes = append(a.nodes, node{
		typ:    typ,
		parent: parent,
		target: noNode,
		path:   path,
	})
	return nodeIndex(len(a.nodes) - 1)
}

// addPointer appends a pointer node for the dynamic node target.
func (a *arena) addPointer(target nodeIndex) nodeIndex {
	t := a.get(target)
	a.nodes = append(a.nodes, node{
		pointer: true,
		parent:  t.parent,
		target:  target,
		path:    t.path,
	})
	return nodeIndex(len(a.nodes) - 1)
}

// place assigns the placement of a node. paramsSize is the size of the head of
// the top-level argument list; everything behind it belongs to the data section.
func (a *arena) place(idx nodeIndex, abs int, paramsSize int) error {
	n := a.get(idx)
	if n.placed {
		return abiutils.NewError(abiutils.PhaseEncode, abiutils.ErrDuplicatePlacement).
			Path(n.path).
			Detail("already at %d, requested %d", n.placement.Absolute(), abs).
			Build()
	}

	if abs < paramsSize {
		n.placement = Placement{Section: SectionParams, SectionBase: 0, Offset: abs}
	} else {
		n.placement = Placement{Section: SectionData, SectionBase: paramsSize, Offset: abs - paramsSize}
	}
	n.placed = true
	return nil
}

// headerSize returns the number of bytes in front of the first member of a
// composite: the length word for dynamic arrays, nothing otherwise.
func headerSize(typ *abitypes.Type) int {
	if typ.AbiType == abitypes.AbiDynamicArrayType {
		return abiutils.WordSize
	}
	return 0
}

// typeName returns the canonical type of a node for error attribution.
func (n *node) typeName() string {
	if n.pointer || n.typ == nil {
		return ""
	}
	return n.typ.String()
}
