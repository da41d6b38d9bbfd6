/**
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2026 attrcore contributors
 */

// Package rbtree implements the iterative, top-down red-black tree
// that interns (flags, fg, bg) attribute triples. Nodes are stored
// as 7-word records in a pool.Allocator; this package never
// allocates node memory itself — it only asks the pool for blocks
// and writes typed fields into them at fixed offsets.
//
// The algorithm is the classic top-down 2-3-4 insertion and
// top-down push-down deletion, both built around a single
// pre-allocated "fake root" so the real root never needs special
// casing during rotations.
package rbtree

import "github.com/vtcore/attrcore/pool"

// Field offsets within a 7-word pool block. These must match
// pool.NodeWords and are part of the wire contract between this
// package and pool.Allocator.
const (
	fColor = 0
	fLeft  = 1
	fRight = 2
	fFlags = 3
	fFg    = 4
	fBg    = 5
	fRef   = 6
)

const (
	black uint32 = 0
	red   uint32 = 1
)

// Tree is a red-black tree keyed on (flags, fg, bg), stored entirely
// inside a pool.Allocator.
type Tree struct {
	p    *pool.Allocator
	root pool.WordIndex
	head pool.WordIndex // pre-allocated fake root, reused by Insert/Remove
	size int
}

// New creates a Tree backed by p, allocating the one-time fake root
// sentinel. It fails only if the pool cannot produce that first
// block.
func New(p *pool.Allocator) (*Tree, error) {
	head, err := p.Allocate()
	if err != nil {
		return nil, err
	}

	t := &Tree{p: p, head: head, root: pool.Nil}
	t.setColor(head, black)
	t.setLeft(head, pool.Nil)
	t.setRight(head, pool.Nil)
	return t, nil
}

// Size returns the number of live (non-sentinel) nodes.
func (t *Tree) Size() int {
	return t.size
}

// Compare is the tree's three-way key ordering: lexicographic on
// (flags, fg, bg).
func Compare(aFlags, aFg, aBg, bFlags, bFg, bBg uint32) int {
	switch {
	case aFlags < bFlags:
		return -1
	case aFlags > bFlags:
		return 1
	}
	switch {
	case aFg < bFg:
		return -1
	case aFg > bFg:
		return 1
	}
	switch {
	case aBg < bBg:
		return -1
	case aBg > bBg:
		return 1
	}
	return 0
}

// --- field accessors -------------------------------------------------

func (t *Tree) color(idx pool.WordIndex) uint32 {
	if idx == pool.Nil {
		return black
	}
	return t.p.Data()[int(idx)+fColor]
}

func (t *Tree) setColor(idx pool.WordIndex, c uint32) {
	t.p.Data()[int(idx)+fColor] = c
}

func (t *Tree) isRed(idx pool.WordIndex) bool {
	return idx != pool.Nil && t.color(idx) == red
}

func (t *Tree) left(idx pool.WordIndex) pool.WordIndex {
	if idx == pool.Nil {
		return pool.Nil
	}
	return pool.WordIndex(t.p.Data()[int(idx)+fLeft])
}

func (t *Tree) right(idx pool.WordIndex) pool.WordIndex {
	if idx == pool.Nil {
		return pool.Nil
	}
	return pool.WordIndex(t.p.Data()[int(idx)+fRight])
}

func (t *Tree) setLeft(idx, v pool.WordIndex) {
	t.p.Data()[int(idx)+fLeft] = uint32(v)
}

func (t *Tree) setRight(idx, v pool.WordIndex) {
	t.p.Data()[int(idx)+fRight] = uint32(v)
}

// link returns idx's child in direction dir (0 = left, 1 = right).
func (t *Tree) link(idx pool.WordIndex, dir int) pool.WordIndex {
	if dir == 0 {
		return t.left(idx)
	}
	return t.right(idx)
}

func (t *Tree) setLink(idx pool.WordIndex, dir int, v pool.WordIndex) {
	if dir == 0 {
		t.setLeft(idx, v)
	} else {
		t.setRight(idx, v)
	}
}

// FlagsOf, FgOf, BgOf, Ref read a live node's key/payload fields.
func (t *Tree) FlagsOf(idx pool.WordIndex) uint32 { return t.p.Data()[int(idx)+fFlags] }
func (t *Tree) FgOf(idx pool.WordIndex) uint32    { return t.p.Data()[int(idx)+fFg] }
func (t *Tree) BgOf(idx pool.WordIndex) uint32    { return t.p.Data()[int(idx)+fBg] }
func (t *Tree) Ref(idx pool.WordIndex) uint32      { return t.p.Data()[int(idx)+fRef] }

func (t *Tree) setFlags(idx pool.WordIndex, v uint32) { t.p.Data()[int(idx)+fFlags] = v }
func (t *Tree) setFg(idx pool.WordIndex, v uint32)    { t.p.Data()[int(idx)+fFg] = v }
func (t *Tree) setBg(idx pool.WordIndex, v uint32)    { t.p.Data()[int(idx)+fBg] = v }
func (t *Tree) setRef(idx pool.WordIndex, v uint32)   { t.p.Data()[int(idx)+fRef] = v }

// IncRef bumps idx's reference count and returns the new value.
func (t *Tree) IncRef(idx pool.WordIndex) uint32 {
	v := t.Ref(idx) + 1
	t.setRef(idx, v)
	return v
}

// DecRef drops idx's reference count (floored at 0) and returns the
// new value.
func (t *Tree) DecRef(idx pool.WordIndex) uint32 {
	v := t.Ref(idx)
	if v > 0 {
		v--
		t.setRef(idx, v)
	}
	return v
}

func (t *Tree) initNode(idx pool.WordIndex, flags, fg, bg, color uint32) {
	t.setColor(idx, color)
	t.setLeft(idx, pool.Nil)
	t.setRight(idx, pool.Nil)
	t.setFlags(idx, flags)
	t.setFg(idx, fg)
	t.setBg(idx, bg)
	t.setRef(idx, 0)
}

// rotateSingle performs a single rotation that brings root's
// dir-opposite child up to replace root, per the standard
// red-black single-rotation shape.
func (t *Tree) rotateSingle(root pool.WordIndex, dir int) pool.WordIndex {
	save := t.link(root, 1-dir)
	t.setLink(root, 1-dir, t.link(save, dir))
	t.setLink(save, dir, root)
	t.setColor(root, red)
	t.setColor(save, black)
	return save
}

// rotateDouble performs the zig-zag double rotation.
func (t *Tree) rotateDouble(root pool.WordIndex, dir int) pool.WordIndex {
	t.setLink(root, 1-dir, t.rotateSingle(t.link(root, 1-dir), 1-dir))
	return t.rotateSingle(root, dir)
}

// Find returns the word-index of the node with this exact key, or
// pool.Nil if absent.
func (t *Tree) Find(flags, fg, bg uint32) pool.WordIndex {
	cur := t.root
	for cur != pool.Nil {
		c := Compare(flags, fg, bg, t.FlagsOf(cur), t.FgOf(cur), t.BgOf(cur))
		if c == 0 {
			return cur
		}
		if c < 0 {
			cur = t.left(cur)
		} else {
			cur = t.right(cur)
		}
	}
	return pool.Nil
}

// Insert returns the word-index of a node with this key, creating
// one (REF initialized to 0) if none existed. Size is incremented
// only on creation. Top-down iterative insertion with color flips
// and single/double rotations driven off the fake root in t.head.
func (t *Tree) Insert(flags, fg, bg uint32) (pool.WordIndex, error) {
	if t.root == pool.Nil {
		idx, err := t.p.Allocate()
		if err != nil {
			return pool.Nil, err
		}
		t.initNode(idx, flags, fg, bg, black)
		t.root = idx
		t.size++
		return idx, nil
	}

	head := t.head
	t.setColor(head, black)
	t.setLeft(head, pool.Nil)
	t.setRight(head, t.root)

	ggp := head
	var g, p pool.WordIndex = pool.Nil, pool.Nil
	q := t.root
	dir, last := 0, 0

	var allocErr error

	for {
		if q == pool.Nil {
			var newIdx pool.WordIndex
			newIdx, allocErr = t.p.Allocate()
			if allocErr != nil {
				break
			}
			t.initNode(newIdx, flags, fg, bg, red)
			t.setLink(p, dir, newIdx)
			q = newIdx
			t.size++
		} else if t.isRed(t.left(q)) && t.isRed(t.right(q)) {
			t.setColor(q, red)
			t.setColor(t.left(q), black)
			t.setColor(t.right(q), black)
		}

		if t.isRed(q) && t.isRed(p) {
			dir2 := 0
			if t.right(ggp) == g {
				dir2 = 1
			}
			if q == t.link(p, last) {
				t.setLink(ggp, dir2, t.rotateSingle(g, 1-last))
			} else {
				t.setLink(ggp, dir2, t.rotateDouble(g, 1-last))
			}
		}

		c := Compare(flags, fg, bg, t.FlagsOf(q), t.FgOf(q), t.BgOf(q))
		if c == 0 {
			break
		}

		last = dir
		if c > 0 {
			dir = 1
		} else {
			dir = 0
		}

		if g != pool.Nil {
			ggp = g
		}
		g = p
		p = q
		q = t.link(q, dir)
	}

	t.root = t.right(head)
	if t.root != pool.Nil {
		t.setColor(t.root, black)
	}

	if allocErr != nil {
		return pool.Nil, allocErr
	}

	return q, nil
}

// Remove deletes the node with this key, if present, and reports
// whether a removal occurred. Top-down push-down deletion: red
// nodes are pushed toward the leaf being removed via rotations and
// color flips on the way down; when the key is found, its payload
// is copied from the node ultimately reached (the in-order successor
// reached by continuing to descend right-then-left) and that spare
// node is unlinked instead. REF is not preserved across this move —
// safe because Remove is only ever called once REF has reached 0.
func (t *Tree) Remove(flags, fg, bg uint32) bool {
	if t.root == pool.Nil {
		return false
	}

	head := t.head
	t.setColor(head, black)
	t.setLeft(head, pool.Nil)
	t.setRight(head, t.root)

	var g, p pool.WordIndex = pool.Nil, pool.Nil
	q := head
	f := pool.Nil
	dir := 1

	for t.link(q, dir) != pool.Nil {
		last := dir

		g, p = p, q
		q = t.link(q, dir)

		qc := Compare(t.FlagsOf(q), t.FgOf(q), t.BgOf(q), flags, fg, bg)
		if qc <= 0 {
			dir = 1
		} else {
			dir = 0
		}

		if qc == 0 {
			f = q
		}

		if !t.isRed(q) && !t.isRed(t.link(q, dir)) {
			if t.isRed(t.link(q, 1-dir)) {
				np := t.rotateSingle(q, dir)
				t.setLink(p, last, np)
				p = np
			} else {
				s := t.link(p, 1-last)
				if s != pool.Nil {
					if !t.isRed(t.link(s, 1-last)) && !t.isRed(t.link(s, last)) {
						t.setColor(p, black)
						t.setColor(s, red)
						t.setColor(q, red)
					} else {
						dir2 := 0
						if t.right(g) == p {
							dir2 = 1
						}
						if t.isRed(t.link(s, last)) {
							t.setLink(g, dir2, t.rotateDouble(p, last))
						} else if t.isRed(t.link(s, 1-last)) {
							t.setLink(g, dir2, t.rotateSingle(p, last))
						}
						np := t.link(g, dir2)
						t.setColor(q, red)
						t.setColor(np, red)
						t.setColor(t.left(np), black)
						t.setColor(t.right(np), black)
					}
				}
			}
		}
	}

	removed := false
	if f != pool.Nil {
		t.setFlags(f, t.FlagsOf(q))
		t.setFg(f, t.FgOf(q))
		t.setBg(f, t.BgOf(q))

		childSlot := 0
		if t.left(q) == pool.Nil {
			childSlot = 1
		}
		child := t.link(q, childSlot)

		pDir := 0
		if t.right(p) == q {
			pDir = 1
		}
		t.setLink(p, pDir, child)

		t.p.Free(q)
		t.size--
		removed = true
	}

	t.root = t.right(head)
	if t.root != pool.Nil {
		t.setColor(t.root, black)
	}

	return removed
}

// Iterator returns a snapshot, in-order (or reverse-in-order)
// traversal of live word-indices. Behavior is undefined if the tree
// is mutated before the snapshot is consumed; since the core is
// single-threaded cooperative, this simply means "don't mutate mid-
// iteration."
func (t *Tree) Iterator(reverse bool) []pool.WordIndex {
	first, second := 0, 1
	if reverse {
		first, second = 1, 0
	}

	var out []pool.WordIndex
	var stack []pool.WordIndex
	cur := t.root
	for cur != pool.Nil || len(stack) > 0 {
		for cur != pool.Nil {
			stack = append(stack, cur)
			cur = t.link(cur, first)
		}
		cur = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, cur)
		cur = t.link(cur, second)
	}
	return out
}

// Check walks the tree and reports whether it satisfies the
// red-black invariants (no red-red edge, equal black height on
// every path, strictly ascending in-order keys) and that Size
// matches the number of reachable nodes. It is a diagnostic entry
// point, not called on any hot path.
func (t *Tree) Check() error {
	n, blackHeight, err := t.checkNode(t.root, -1)
	if err != nil {
		return err
	}
	if n != t.size {
		return errSizeMismatch(n, t.size)
	}
	_ = blackHeight

	prev, havePrev := uint32(0), false
	var prevFg, prevBg uint32
	for _, idx := range t.Iterator(false) {
		if havePrev {
			c := Compare(prev, prevFg, prevBg, t.FlagsOf(idx), t.FgOf(idx), t.BgOf(idx))
			if c >= 0 {
				return errNotAscending
			}
		}
		prev, prevFg, prevBg = t.FlagsOf(idx), t.FgOf(idx), t.BgOf(idx)
		havePrev = true
	}
	return nil
}
