/**
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2026 attrcore contributors
 */

package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateReturnsDistinctAlignedIndices(t *testing.T) {
	a := New(4, 64)

	seen := make(map[WordIndex]bool)
	for i := 0; i < 4; i++ {
		idx, err := a.Allocate()
		require.NoError(t, err)
		assert.NotEqual(t, Nil, idx)
		assert.Zero(t, uint32(idx)%NodeWords, "index %d must be a multiple of NodeWords", idx)
		assert.False(t, seen[idx], "index %d reused while still live", idx)
		seen[idx] = true
	}
}

func TestAllocateZeroesOnReuse(t *testing.T) {
	a := New(1, 4)

	idx, err := a.Allocate()
	require.NoError(t, err)

	data := a.Data()
	for i := 0; i < NodeWords; i++ {
		data[int(idx)+i] = 0xdeadbeef
	}

	a.Free(idx)

	idx2, err := a.Allocate()
	require.NoError(t, err)
	assert.Equal(t, idx, idx2)

	data = a.Data()
	for i := 0; i < NodeWords; i++ {
		assert.Zero(t, data[int(idx2)+i])
	}
}

func TestAllocateGrowsAndPreservesLiveIndices(t *testing.T) {
	a := New(1, 64)

	idx1, err := a.Allocate()
	require.NoError(t, err)

	data := a.Data()
	data[int(idx1)+3] = 42 // sentinel payload in a field slot

	// Force growth by allocating past initial capacity.
	var last WordIndex
	for i := 0; i < 10; i++ {
		last, err = a.Allocate()
		require.NoError(t, err)
	}
	assert.NotEqual(t, Nil, last)

	// idx1's payload must have survived the backing-array swap.
	assert.Equal(t, uint32(42), a.Data()[int(idx1)+3])
}

func TestAllocateFailsAtMaxNodes(t *testing.T) {
	a := New(1, 2)

	_, err := a.Allocate()
	require.NoError(t, err)
	_, err = a.Allocate()
	require.NoError(t, err)

	_, err = a.Allocate()
	assert.ErrorIs(t, err, ErrOutOfMemory)
}

func TestFreeThenAllocateReusesBlock(t *testing.T) {
	a := New(1, 8)

	idx, err := a.Allocate()
	require.NoError(t, err)

	a.Free(idx)

	idx2, err := a.Allocate()
	require.NoError(t, err)
	assert.Equal(t, idx, idx2)
}

func TestResetFreesBlocksButKeepsCapacity(t *testing.T) {
	a := New(2, 8)

	_, err := a.Allocate()
	require.NoError(t, err)
	_, err = a.Allocate()
	require.NoError(t, err)

	capBefore := a.CapNodes()
	a.Reset()

	assert.Equal(t, capBefore, a.CapNodes())

	idx, err := a.Allocate()
	require.NoError(t, err)
	assert.NotEqual(t, Nil, idx)
}

func TestNewClampsInitialToMax(t *testing.T) {
	a := New(100, 4)
	assert.Equal(t, 4, a.MaxNodes())
	assert.LessOrEqual(t, a.CapNodes(), 4)
}
