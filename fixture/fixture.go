/**
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2026 attrcore contributors
 */

// Package fixture describes a cell stream as YAML so tests and the
// render/replay CLI commands can exercise the core against hand-
// written scenarios instead of synthesizing cells in Go. A fixture
// is unmarshaled into a Document, then Build turns it into a
// sgr.Grid backed by freshly ref'd attributes in a given
// attrstore.Storage.
package fixture

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/vtcore/attrcore/attr"
	"github.com/vtcore/attrcore/attrstore"
	"github.com/vtcore/attrcore/sgr"
)

// ColorSpec describes one channel's color in a fixture file.
type ColorSpec struct {
	Mode  string `yaml:"mode"` // "default", "p16", "p256", "rgb"
	Value uint32 `yaml:"value,omitempty"`
	R     uint8  `yaml:"r,omitempty"`
	G     uint8  `yaml:"g,omitempty"`
	B     uint8  `yaml:"b,omitempty"`
}

func (c *ColorSpec) apply(set func(attr.ColorMode), setVal func(uint32)) error {
	if c == nil {
		return nil
	}
	switch c.Mode {
	case "", "default":
		set(attr.ModeDefault)
	case "p16":
		set(attr.ModeP16)
		setVal(c.Value)
	case "p256":
		set(attr.ModeP256)
		setVal(c.Value)
	case "rgb":
		set(attr.ModeRGB)
		setVal(attr.ToRGB(c.R, c.G, c.B))
	default:
		return errors.Errorf("fixture: unknown color mode %q", c.Mode)
	}
	return nil
}

// CellSpec describes one cell: its glyph, display width, flags, and
// fg/bg colors.
type CellSpec struct {
	Glyph     string `yaml:"glyph"`
	Width     int    `yaml:"width,omitempty"`
	Combining bool   `yaml:"combining,omitempty"`

	Bold      bool `yaml:"bold,omitempty"`
	Dim       bool `yaml:"dim,omitempty"`
	Italic    bool `yaml:"italic,omitempty"`
	Underline bool `yaml:"underline,omitempty"`
	Blink     bool `yaml:"blink,omitempty"`
	Inverse   bool `yaml:"inverse,omitempty"`
	Invisible bool `yaml:"invisible,omitempty"`

	Fg *ColorSpec `yaml:"fg,omitempty"`
	Bg *ColorSpec `yaml:"bg,omitempty"`
}

func (cs *CellSpec) width() int {
	switch {
	case cs.Combining:
		return 0
	case cs.Width != 0:
		return cs.Width
	default:
		return 1
	}
}

func (cs *CellSpec) attributes() (*attr.Attributes, error) {
	var a attr.Attributes
	a.SetBold(cs.Bold)
	a.SetDim(cs.Dim)
	a.SetItalic(cs.Italic)
	a.SetUnderline(cs.Underline)
	a.SetBlink(cs.Blink)
	a.SetInverse(cs.Inverse)
	a.SetInvisible(cs.Invisible)

	if err := cs.Fg.apply(a.SetFgMode, a.SetFg); err != nil {
		return nil, errors.Wrap(err, "fixture: fg")
	}
	if err := cs.Bg.apply(a.SetBgMode, a.SetBg); err != nil {
		return nil, errors.Wrap(err, "fixture: bg")
	}
	return &a, nil
}

// RowSpec is one row of cells.
type RowSpec struct {
	Cells []CellSpec `yaml:"cells"`
}

// Document is the top-level shape of a fixture file: a sequence of
// rows, each a sequence of cells.
type Document struct {
	Rows []RowSpec `yaml:"rows"`
}

// Load parses a fixture file's contents.
func Load(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "fixture: parsing document")
	}
	return &doc, nil
}

// Grid is a sgr.Grid built from a Document: every cell's attributes
// have been ref'd into a Storage and must be Release()d when the
// caller is done with it.
type Grid struct {
	rows [][]sgr.Cell
}

func (g *Grid) Rows() int        { return len(g.rows) }
func (g *Grid) Cols(row int) int { return len(g.rows[row]) }
func (g *Grid) Cell(row, col int) sgr.Cell {
	return g.rows[row][col]
}

// Release unrefs every cell's attribute identifier, returning the
// Storage to the state it was in before Build.
func (g *Grid) Release(store *attrstore.Storage) {
	for _, row := range g.rows {
		for _, cell := range row {
			store.Unref(cell.ID)
		}
	}
}

// Build interns each cell's attributes into store and returns the
// resulting Grid.
func (d *Document) Build(store *attrstore.Storage) (*Grid, error) {
	g := &Grid{rows: make([][]sgr.Cell, len(d.Rows))}

	for i, row := range d.Rows {
		cells := make([]sgr.Cell, len(row.Cells))
		for j, cs := range row.Cells {
			a, err := cs.attributes()
			if err != nil {
				return nil, errors.Wrapf(err, "fixture: row %d cell %d", i, j)
			}

			id, err := store.Ref(a)
			if err != nil {
				return nil, errors.Wrapf(err, "fixture: row %d cell %d: interning attributes", i, j)
			}

			cells[j] = sgr.Cell{Glyph: cs.Glyph, Width: cs.width(), ID: id}
		}
		g.rows[i] = cells
	}

	return g, nil
}
