/**
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2026 attrcore contributors
 */

package sgr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtcore/attrcore/attr"
	"github.com/vtcore/attrcore/attrstore"
)

// sliceGrid is a slice-of-rows implementation of Grid for tests; each
// row's length is its column count.
type sliceGrid struct {
	cols  int
	cells [][]Cell
}

func (g *sliceGrid) Rows() int           { return len(g.cells) }
func (g *sliceGrid) Cols(row int) int    { return len(g.cells[row]) }
func (g *sliceGrid) Cell(row, col int) Cell { return g.cells[row][col] }

func refBoldUnderlineP16(t *testing.T, s *attrstore.Storage, idx uint32) uint32 {
	t.Helper()
	var a attr.Attributes
	a.SetBold(true)
	a.SetUnderline(true)
	a.SetFgMode(attr.ModeP16)
	a.SetFg(idx)
	id, err := s.Ref(&a)
	require.NoError(t, err)
	return id
}

func TestSingleCellBoldUnderlineP16(t *testing.T) {
	s, err := attrstore.New(4, 64)
	require.NoError(t, err)

	id := refBoldUnderlineP16(t, s, 4)
	g := &sliceGrid{cells: [][]Cell{{{Glyph: "x", Width: 1, ID: id}}}}

	var sb strings.Builder
	Write(&sb, g, s)

	assert.Equal(t, "\x1b[1;4;34mx", sb.String())
}

func TestBoldOffTransitionEmitsOnlyResetCode(t *testing.T) {
	s, err := attrstore.New(4, 64)
	require.NoError(t, err)

	var a1 attr.Attributes
	a1.SetBold(true)
	a1.SetFgMode(attr.ModeP256)
	a1.SetFg(196)
	id1, err := s.Ref(&a1)
	require.NoError(t, err)

	var a2 attr.Attributes
	a2.SetFgMode(attr.ModeP256)
	a2.SetFg(196)
	id2, err := s.Ref(&a2)
	require.NoError(t, err)

	g := &sliceGrid{cells: [][]Cell{{
		{Glyph: "a", Width: 1, ID: id1},
		{Glyph: "b", Width: 1, ID: id2},
	}}}

	var sb strings.Builder
	Write(&sb, g, s)

	assert.Equal(t, "\x1b[1;38;5;196ma\x1b[22mb", sb.String())
}

func TestRGBForeground(t *testing.T) {
	s, err := attrstore.New(4, 64)
	require.NoError(t, err)

	var a attr.Attributes
	a.SetFgMode(attr.ModeRGB)
	a.SetFg(attr.ToRGB(0x12, 0x34, 0x56))
	id, err := s.Ref(&a)
	require.NoError(t, err)

	g := &sliceGrid{cells: [][]Cell{{{Glyph: "z", Width: 1, ID: id}}}}

	var sb strings.Builder
	Write(&sb, g, s)

	assert.Contains(t, sb.String(), "\x1b[38;2;18;52;86m")
}

func TestEmptyCellSerializesAsSpace(t *testing.T) {
	s, err := attrstore.New(4, 64)
	require.NoError(t, err)

	var a attr.Attributes // default, inline
	id, err := s.Ref(&a)
	require.NoError(t, err)

	g := &sliceGrid{cells: [][]Cell{{{Glyph: "", Width: 1, ID: id}}}}

	var sb strings.Builder
	Write(&sb, g, s)

	assert.Equal(t, " ", sb.String())
}

func TestRowsJoinedByCRLF(t *testing.T) {
	s, err := attrstore.New(4, 64)
	require.NoError(t, err)

	var a attr.Attributes
	id, err := s.Ref(&a)
	require.NoError(t, err)

	g := &sliceGrid{cells: [][]Cell{
		{{Glyph: "a", Width: 1, ID: id}},
		{{Glyph: "b", Width: 1, ID: id}},
	}}

	var sb strings.Builder
	Write(&sb, g, s)

	assert.Equal(t, "a\r\nb", sb.String())
}

func TestWidthZeroCellGuaranteesForwardProgress(t *testing.T) {
	s, err := attrstore.New(4, 64)
	require.NoError(t, err)

	var a attr.Attributes
	id, err := s.Ref(&a)
	require.NoError(t, err)

	g := &sliceGrid{cells: [][]Cell{{
		{Glyph: "a", Width: 1, ID: id},
		{Glyph: "", Width: 0, ID: id},
		{Glyph: "b", Width: 1, ID: id},
	}}}

	var sb strings.Builder
	Write(&sb, g, s)

	assert.Equal(t, "a b", sb.String())
}

func TestBackgroundTransitionsAreSymmetric(t *testing.T) {
	s, err := attrstore.New(4, 64)
	require.NoError(t, err)

	var a1 attr.Attributes
	a1.SetBgMode(attr.ModeP16)
	a1.SetBg(9) // bright -> 100 + 1
	id1, err := s.Ref(&a1)
	require.NoError(t, err)

	var a2 attr.Attributes // back to default bg
	id2, err := s.Ref(&a2)
	require.NoError(t, err)

	g := &sliceGrid{cells: [][]Cell{{
		{Glyph: "a", Width: 1, ID: id1},
		{Glyph: "b", Width: 1, ID: id2},
	}}}

	var sb strings.Builder
	Write(&sb, g, s)

	assert.Equal(t, "\x1b[101ma\x1b[49mb", sb.String())
}
