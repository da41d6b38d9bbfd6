/**
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2026 attrcore contributors
 */

package rbtree

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtcore/attrcore/pool"
)

func newTree(t *testing.T, maxNodes int) *Tree {
	t.Helper()
	tree, err := New(pool.New(4, maxNodes))
	require.NoError(t, err)
	return tree
}

func TestInsertFindsExistingKeyInsteadOfDuplicating(t *testing.T) {
	tree := newTree(t, 64)

	idx, err := tree.Insert(1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, tree.Size())

	idx2, err := tree.Insert(1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, idx, idx2)
	assert.Equal(t, 1, tree.Size())
}

func TestRemoveReportsWhetherKeyWasPresent(t *testing.T) {
	tree := newTree(t, 64)

	_, err := tree.Insert(5, 5, 5)
	require.NoError(t, err)

	assert.True(t, tree.Remove(5, 5, 5))
	assert.Equal(t, 0, tree.Size())
	assert.False(t, tree.Remove(5, 5, 5))
}

func TestIteratorVisitsKeysInAscendingOrder(t *testing.T) {
	tree := newTree(t, 64)

	keys := [][3]uint32{{3, 0, 0}, {1, 0, 0}, {2, 0, 0}, {1, 5, 0}, {1, 0, 9}}
	for _, k := range keys {
		_, err := tree.Insert(k[0], k[1], k[2])
		require.NoError(t, err)
	}

	var prevFlags, prevFg, prevBg uint32
	first := true
	for _, idx := range tree.Iterator(false) {
		flags, fg, bg := tree.FlagsOf(idx), tree.FgOf(idx), tree.BgOf(idx)
		if !first {
			assert.Equal(t, -1, Compare(prevFlags, prevFg, prevBg, flags, fg, bg))
		}
		prevFlags, prevFg, prevBg = flags, fg, bg
		first = false
	}
	require.False(t, first, "expected a non-empty traversal")
}

func TestCheckPassesOnEmptyTree(t *testing.T) {
	tree := newTree(t, 64)
	assert.NoError(t, tree.Check())
}

// TestRandomInsertRemoveMaintainsInvariants drives the tree through a
// large seeded sequence of random inserts and removes, checking the
// red-black invariants after every single operation rather than only
// at the end. Keys are drawn from a small range so inserts of an
// already-present key are frequent and exercise Insert's "found
// existing" edge, not just the happy path of always-novel keys.
// Removes always target a key currently in the tree.
func TestRandomInsertRemoveMaintainsInvariants(t *testing.T) {
	const ops = 1000
	const keyRange = 64

	rng := rand.New(rand.NewSource(1))
	tree := newTree(t, 2048) // comfortably above the full key space (64*4*4)

	live := make(map[[3]uint32]bool)

	for i := 0; i < ops; i++ {
		flags := uint32(rng.Intn(keyRange))
		fg := uint32(rng.Intn(4))
		bg := uint32(rng.Intn(4))
		key := [3]uint32{flags, fg, bg}

		if rng.Intn(2) == 0 || len(live) == 0 {
			_, err := tree.Insert(flags, fg, bg)
			require.NoErrorf(t, err, "op %d: insert(%v)", i, key)
			live[key] = true
		} else {
			// Remove a key known to be present so deletion's
			// rebalancing path gets real work to do.
			for k := range live {
				key = k
				break
			}
			tree.Remove(key[0], key[1], key[2])
			delete(live, key)
		}

		require.NoErrorf(t, tree.Check(), "op %d: invariants broken after %v", i, key)
		require.Equalf(t, len(live), tree.Size(), "op %d: size drifted from model", i)
	}

	for key := range live {
		assert.True(t, tree.Remove(key[0], key[1], key[2]))
	}
	assert.Equal(t, 0, tree.Size())
	assert.NoError(t, tree.Check())
}
