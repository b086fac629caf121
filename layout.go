// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package dynabi

import (
	"go.uber.org/zap"

	"github.com/pk910/dynamic-abi/abitypes"
	"github.com/pk910/dynamic-abi/abiutils"
)

type layoutStep uint8

const (
	stepExpand  layoutStep = iota // composite: place and queue header, members and dependencies
	stepWord                      // static elementary value or pointer word
	stepHeader                    // length word of a dynamic array
	stepPayload                   // length prefixed bytes or string content
)

type layoutItem struct {
	step layoutStep
	idx  nodeIndex
}

// layoutPlanner assigns a placement to every node of an assigned argument tree.
//
// The worklist is seeded with the root tuple. Expanding a composite puts its
// items at the front of the worklist in this order: the length word of dynamic
// arrays, its members (static children flattened in place, pointer words for
// dynamic children) and finally its dynamic children themselves in declaration
// order. Words and payloads are placed at the running cursor.
type layoutPlanner struct {
	arena      *arena
	paramsSize int
	cursor     int
	emitted    []nodeIndex
	pointers   []nodeIndex
	logger     *zap.Logger
	verbose    bool
}

func newLayoutPlanner(a *arena, root nodeIndex, logger *zap.Logger, verbose bool) *layoutPlanner {
	return &layoutPlanner{
		arena:      a,
		paramsSize: a.get(root).typ.MembersSize(),
		emitted:    make([]nodeIndex, 0, len(a.nodes)),
		logger:     logger,
		verbose:    verbose,
	}
}

// plan runs the layout and returns the total size of the encoded argument list.
func (p *layoutPlanner) plan(root nodeIndex) (int, error) {
	// the worklist is a stack: its front is the end of the slice
	worklist := []layoutItem{{step: stepExpand, idx: root}}

	for len(worklist) > 0 {
		item := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		switch item.step {
		case stepExpand:
			if err := p.placeAt(item.idx, p.cursor); err != nil {
				return 0, err
			}
			worklist = p.pushFront(worklist, p.expand(item.idx))

		case stepWord:
			if err := p.emit(item.idx, abiutils.WordSize); err != nil {
				return 0, err
			}

		case stepHeader:
			// the array itself was placed on expansion, at the position of its length word
			p.emitted = append(p.emitted, item.idx)
			p.cursor += abiutils.WordSize

		case stepPayload:
			if err := p.emit(item.idx, len(p.arena.get(item.idx).payload)); err != nil {
				return 0, err
			}
		}
	}

	if err := p.resolvePointers(); err != nil {
		return 0, err
	}

	return p.cursor, nil
}

// expand returns the items of a composite in placement order.
func (p *layoutPlanner) expand(idx nodeIndex) []layoutItem {
	n := p.arena.get(idx)
	children := n.children

	items := make([]layoutItem, 0, len(children)*2+1)
	if n.typ.AbiType == abitypes.AbiDynamicArrayType {
		items = append(items, layoutItem{step: stepHeader, idx: idx})
	}

	var deps []nodeIndex
	for _, child := range children {
		childType := p.arena.get(child).typ
		switch {
		case childType.IsDynamic():
			ptr := p.arena.addPointer(child)
			p.pointers = append(p.pointers, ptr)
			items = append(items, layoutItem{step: stepWord, idx: ptr})
			deps = append(deps, child)
		case childType.IsComposite():
			items = append(items, layoutItem{step: stepExpand, idx: child})
		default:
			items = append(items, layoutItem{step: stepWord, idx: child})
		}
	}

	for _, dep := range deps {
		items = append(items, itemFor(p.arena.get(dep).typ, dep))
	}

	return items
}

func itemFor(typ *abitypes.Type, idx nodeIndex) layoutItem {
	switch {
	case typ.IsComposite():
		return layoutItem{step: stepExpand, idx: idx}
	case typ.IsDynamic():
		return layoutItem{step: stepPayload, idx: idx}
	default:
		return layoutItem{step: stepWord, idx: idx}
	}
}

// pushFront puts items at the front of the worklist, keeping their order.
func (p *layoutPlanner) pushFront(worklist []layoutItem, items []layoutItem) []layoutItem {
	for i := len(items) - 1; i >= 0; i-- {
		worklist = append(worklist, items[i])
	}
	return worklist
}

// emit places a node that materializes size bytes at the cursor.
func (p *layoutPlanner) emit(idx nodeIndex, size int) error {
	if err := p.placeAt(idx, p.cursor); err != nil {
		return err
	}
	p.emitted = append(p.emitted, idx)
	p.cursor += size
	return nil
}

func (p *layoutPlanner) placeAt(idx nodeIndex, abs int) error {
	if err := p.arena.place(idx, abs, p.paramsSize); err != nil {
		return err
	}

	if p.verbose {
		n := p.arena.get(idx)
		p.logger.Debug("placed node",
			zap.String("path", n.path),
			zap.String("type", n.typeName()),
			zap.Bool("pointer", n.pointer),
			zap.Stringer("section", n.placement.Section),
			zap.Int("offset", n.placement.Offset),
			zap.Int("abs", abs),
		)
	}
	return nil
}

// resolvePointers computes the offset word of every pointer. The offset is
// relative to the first member of the composite directly containing the target.
func (p *layoutPlanner) resolvePointers() error {
	for _, ptr := range p.pointers {
		n := p.arena.get(ptr)
		target := p.arena.get(n.target)
		owner := p.arena.get(target.parent)

		if !target.placed || !owner.placed {
			return abiutils.NewError(abiutils.PhaseEncode, abiutils.ErrMissingPlacement).
				Path(n.path).
				Detail("pointer target or owner not placed").
				Build()
		}

		base := owner.placement.Absolute() + headerSize(owner.typ)
		n.word = abiutils.EncodeLengthWord(target.placement.Absolute() - base)

		if p.verbose {
			p.logger.Debug("resolved pointer",
				zap.String("path", n.path),
				zap.Int("target", target.placement.Absolute()),
				zap.Int("base", base),
			)
		}
	}
	return nil
}
