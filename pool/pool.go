/**
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2026 attrcore contributors
 */

// Package pool implements the fixed-block allocator that backs the
// attribute-interning RB-tree. It owns a single growable array of
// 32-bit words and hands out word-aligned blocks sized to hold one
// tree Node, tracked by an intrusive free list threaded through the
// blocks themselves.
package pool

import (
	"github.com/pkg/errors"
)

// NodeWords is the size, in 32-bit words, of one pool block. It must
// match the field layout tree packages build on top of this pool:
// {COLOR=0, LEFT=1, RIGHT=2, FLAGS=3, FG=4, BG=5, REF=6}.
const NodeWords = 7

// Nil is the reserved word-index meaning "no block" / "no child".
// It is never allocated.
const Nil WordIndex = 0

// WordIndex addresses a block's first word within the pool's backing
// array. It is always a non-zero multiple of NodeWords once
// allocated.
type WordIndex uint32

// ErrOutOfMemory is returned by Allocate when the pool has reached
// MaxNodes and its free list is empty.
var ErrOutOfMemory = errors.New("pool: out of memory")

// Allocator is a fixed-block allocator over a growable []uint32. It
// has no notion of keys or ordering; rbtree.Tree is the only
// intended caller of Allocate/Free/Data.
type Allocator struct {
	data     []uint32
	free     WordIndex
	maxNodes int
}

// New creates an Allocator with room for initialNodes blocks,
// growing (by doubling) up to maxNodes blocks. If initialNodes
// exceeds maxNodes, it is clamped down to maxNodes. initialNodes is
// clamped to at least 1 so index 0 is always reserved as Nil without
// being part of a usable block.
func New(initialNodes, maxNodes int) *Allocator {
	if maxNodes < 1 {
		maxNodes = 1
	}
	if initialNodes > maxNodes {
		initialNodes = maxNodes
	}
	if initialNodes < 1 {
		initialNodes = 1
	}

	a := &Allocator{
		maxNodes: maxNodes,
	}
	a.grow(initialNodes)
	return a
}

// grow extends the backing array so it can hold n additional blocks
// (on top of whatever blocks already exist, including the reserved
// first block at word 0), threading them onto the free list.
func (a *Allocator) grow(n int) {
	oldWords := len(a.data)
	if oldWords == 0 {
		// Reserve the first block (words 0..NodeWords-1) so word 0 is
		// Nil and every usable block starts at a multiple of NodeWords.
		oldWords = NodeWords
	}
	newWords := oldWords + n*NodeWords

	grown := make([]uint32, newWords)
	copy(grown, a.data)
	a.data = grown

	// Thread the newly created blocks onto the free list, in
	// ascending order, with the current head appended at the tail so
	// the new blocks are handed out before any older free blocks
	// (LIFO would work equally well; ascending keeps the indices easy
	// to reason about in tests).
	tail := a.free
	for i := newWords - NodeWords; i >= oldWords; i -= NodeWords {
		idx := WordIndex(i)
		a.data[idx] = uint32(tail)
		tail = idx
	}
	a.free = tail
}

// capacityNodes returns how many blocks (excluding the reserved first
// block) the backing array currently has room for.
func (a *Allocator) capacityNodes() int {
	if len(a.data) == 0 {
		return 0
	}
	return (len(a.data) - 1) / NodeWords
}

// Allocate returns a zeroed block's word-index, growing the backing
// array (doubling, bounded by maxNodes) if the free list is empty.
func (a *Allocator) Allocate() (WordIndex, error) {
	if a.free == Nil {
		cur := a.capacityNodes()
		if cur >= a.maxNodes {
			return Nil, ErrOutOfMemory
		}
		next := cur * 2
		if next <= cur {
			next = cur + 1
		}
		if next > a.maxNodes {
			next = a.maxNodes
		}
		a.grow(next - cur)
		if a.free == Nil {
			return Nil, ErrOutOfMemory
		}
	}

	idx := a.free
	a.free = WordIndex(a.data[idx])

	block := a.data[idx : idx+NodeWords]
	for i := range block {
		block[i] = 0
	}

	return idx, nil
}

// Free pushes idx back onto the free list. The caller (rbtree.Tree)
// must guarantee idx was previously returned by Allocate and has not
// already been freed; violating this corrupts the free list.
func (a *Allocator) Free(idx WordIndex) {
	a.data[idx] = uint32(a.free)
	a.free = idx
}

// Data returns the raw backing array. The slice is invalidated by
// the next Allocate call that grows the pool; callers must not
// retain it across such a call.
func (a *Allocator) Data() []uint32 {
	return a.data
}

// MaxNodes returns the configured hard cap on block count.
func (a *Allocator) MaxNodes() int {
	return a.maxNodes
}

// CapNodes returns the current block capacity (allocated + free).
func (a *Allocator) CapNodes() int {
	return a.capacityNodes()
}

// Reset discards all allocations and restores the pool to its
// just-constructed state at its current capacity. Any word-index
// held by a caller after Reset is invalid.
func (a *Allocator) Reset() {
	n := a.capacityNodes()
	a.data = nil
	a.free = Nil
	a.grow(n)
}
