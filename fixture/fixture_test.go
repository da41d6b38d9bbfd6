/**
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2026 attrcore contributors
 */

package fixture

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtcore/attrcore/attrstore"
	"github.com/vtcore/attrcore/sgr"
)

const sample = `
rows:
  - cells:
      - glyph: "H"
        bold: true
        fg: {mode: p16, value: 4}
      - glyph: "i"
`

func TestLoadParsesRowsAndCells(t *testing.T) {
	doc, err := Load([]byte(sample))
	require.NoError(t, err)
	require.Len(t, doc.Rows, 1)
	require.Len(t, doc.Rows[0].Cells, 2)
	assert.Equal(t, "H", doc.Rows[0].Cells[0].Glyph)
	assert.True(t, doc.Rows[0].Cells[0].Bold)
}

func TestBuildInternsAttributesAndWritesSGR(t *testing.T) {
	doc, err := Load([]byte(sample))
	require.NoError(t, err)

	store, err := attrstore.New(4, 64)
	require.NoError(t, err)

	grid, err := doc.Build(store)
	require.NoError(t, err)
	assert.Equal(t, 1, grid.Rows())
	assert.Equal(t, 2, grid.Cols(0))

	var sb strings.Builder
	sgr.Write(&sb, grid, store)
	assert.Equal(t, "\x1b[1;34mH\x1b[22;39mi", sb.String())

	grid.Release(store)
}

func TestCombiningCellHasZeroWidth(t *testing.T) {
	doc, err := Load([]byte(`
rows:
  - cells:
      - glyph: "a"
      - glyph: "́"
        combining: true
`))
	require.NoError(t, err)

	store, err := attrstore.New(4, 64)
	require.NoError(t, err)

	grid, err := doc.Build(store)
	require.NoError(t, err)
	assert.Equal(t, 1, grid.Cell(0, 0).Width)
	assert.Equal(t, 0, grid.Cell(0, 1).Width)
}

func TestUnknownColorModeErrors(t *testing.T) {
	doc, err := Load([]byte(`
rows:
  - cells:
      - glyph: "x"
        fg: {mode: "octarine"}
`))
	require.NoError(t, err)

	store, err := attrstore.New(4, 64)
	require.NoError(t, err)

	_, err = doc.Build(store)
	assert.Error(t, err)
}
