/**
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2026 attrcore contributors
 */

// Package attrstore implements attribute interning: turning an
// attr.Attributes value into a stable 32-bit identifier, and back.
// Non-RGB attributes are encoded inline (tag bit clear) and never
// touch the pool or tree. RGB attributes are reference-counted nodes
// in an rbtree.Tree, addressed by a tagged word-index.
package attrstore

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/vtcore/attrcore/attr"
	"github.com/vtcore/attrcore/pool"
	"github.com/vtcore/attrcore/rbtree"
)

// Storage owns one pool and its attribute-interning tree. Callers
// typically keep one Storage per terminal/grid instance.
type Storage struct {
	id   string
	pool *pool.Allocator
	tree *rbtree.Tree
}

// New creates a Storage with the given initial and maximum pool node
// counts (see pool.New). Each Storage is tagged with a random
// instance ID, surfaced through ID(), so log lines and error messages
// from multiple concurrent instances can be told apart.
func New(initialNodes, maxNodes int) (*Storage, error) {
	p := pool.New(initialNodes, maxNodes)
	tree, err := rbtree.New(p)
	if err != nil {
		return nil, errors.Wrap(err, "attrstore: allocating fake-root sentinel")
	}
	return &Storage{id: uuid.New().String(), pool: p, tree: tree}, nil
}

// ID returns this Storage's instance identifier.
func (s *Storage) ID() string {
	return s.id
}

// Size returns the number of distinct RGB attribute values currently
// interned (inline attributes are not counted; there is nothing to
// count).
func (s *Storage) Size() int {
	return s.tree.Size()
}

// Ref returns the stable identifier for a's current (flags, fg, bg),
// incrementing its reference count if it is a pool-pointer
// identifier. Non-RGB attributes are returned as an inline
// identifier without touching the pool.
//
// The fast path checks a's own memo first (attr.Attributes.
// UpdateAddress). Because Unref can free a node and Insert can hand
// that same word-index to an unrelated attribute, a memo hit is only
// a candidate: the node at that index must still hold (flags, fg,
// bg) and carry a live reference count before it is trusted. A miss
// on either check falls through to the slow path exactly as if there
// had been no memo at all.
func (s *Storage) Ref(a *attr.Attributes) (uint32, error) {
	flags, fg, bg := a.Raw()

	if !a.HasRGB() {
		return flags, nil
	}

	if id := a.UpdateAddress(); id != 0 {
		idx := pool.WordIndex(id &^ attr.TagBit)
		if s.tree.Ref(idx) > 0 &&
			s.tree.FlagsOf(idx) == flags && s.tree.FgOf(idx) == fg && s.tree.BgOf(idx) == bg {
			s.tree.IncRef(idx)
			return id, nil
		}
	}

	idx, err := s.tree.Insert(flags, fg, bg)
	if err != nil {
		return 0, errors.Wrapf(err, "attrstore[%s]: interning rgb attribute", s.id)
	}
	s.tree.IncRef(idx)

	id := attr.TagBit | uint32(idx)
	a.Memoize(id)
	return id, nil
}

// Unref releases one reference to id. Inline identifiers are a
// no-op. A pool-pointer identifier whose reference count reaches
// zero is removed from the tree and its node freed.
func (s *Storage) Unref(id uint32) {
	if id&attr.TagBit == 0 {
		return
	}

	idx := pool.WordIndex(id &^ attr.TagBit)
	if s.tree.DecRef(idx) > 0 {
		return
	}

	flags := s.tree.FlagsOf(idx)
	fg := s.tree.FgOf(idx)
	bg := s.tree.BgOf(idx)
	s.tree.Remove(flags, fg, bg)
}

// FromAddress decodes id into out, overwriting out's (flags, fg, bg)
// and memoizing id against the decoded value so a subsequent Ref on
// out is a memo hit.
func (s *Storage) FromAddress(id uint32, out *attr.Attributes) {
	if id&attr.TagBit == 0 {
		out.LoadFrom(id, 0, 0, id)
		return
	}

	idx := pool.WordIndex(id &^ attr.TagBit)
	out.LoadFrom(s.tree.FlagsOf(idx), s.tree.FgOf(idx), s.tree.BgOf(idx), id)
}

// Reset discards every interned RGB attribute and frees their pool
// nodes, keeping the pool's current capacity. Any identifier minted
// before Reset is no longer valid.
func (s *Storage) Reset() error {
	s.pool.Reset()
	tree, err := rbtree.New(s.pool)
	if err != nil {
		return errors.Wrapf(err, "attrstore[%s]: re-allocating fake-root sentinel after reset", s.id)
	}
	s.tree = tree
	return nil
}

// Check verifies the interning tree's red-black invariants. It is
// test-harness-only, mirroring rbtree.Tree.Check.
func (s *Storage) Check() error {
	return s.tree.Check()
}
