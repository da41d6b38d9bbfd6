/**
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2026 attrcore contributors
 */

package rbtree

import (
	"fmt"

	"github.com/vtcore/attrcore/pool"
)

var errNotAscending = fmt.Errorf("rbtree: in-order traversal is not strictly ascending")

func errSizeMismatch(counted, reported int) error {
	return fmt.Errorf("rbtree: size mismatch: counted %d reachable nodes, Size() reports %d", counted, reported)
}

func errRedRed(idx uint32) error {
	return fmt.Errorf("rbtree: red node %d has a red child", idx)
}

func errBlackHeight(idx uint32, left, right int) error {
	return fmt.Errorf("rbtree: node %d has unequal black heights on its subtrees (%d vs %d)", idx, left, right)
}

// checkNode walks idx's subtree, verifying the red-black invariants,
// and returns the count of reachable nodes plus the subtree's black
// height (counting the nil leaf as one black unit, as is
// conventional for this invariant).
func (t *Tree) checkNode(idx pool.WordIndex, _ int) (int, int, error) {
	if idx == pool.Nil {
		return 0, 1, nil
	}

	if t.isRed(idx) {
		if t.isRed(t.left(idx)) || t.isRed(t.right(idx)) {
			return 0, 0, errRedRed(uint32(idx))
		}
	}

	leftCount, leftBH, err := t.checkNode(t.left(idx), 0)
	if err != nil {
		return 0, 0, err
	}
	rightCount, rightBH, err := t.checkNode(t.right(idx), 0)
	if err != nil {
		return 0, 0, err
	}
	if leftBH != rightBH {
		return 0, 0, errBlackHeight(uint32(idx), leftBH, rightBH)
	}

	bh := leftBH
	if !t.isRed(idx) {
		bh++
	}

	return leftCount + rightCount + 1, bh, nil
}
