/**
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2026 attrcore contributors
 */

// Package sgr serializes a grid of cells into SGR-escaped text,
// emitting the minimal set of parameters needed to transition from
// one cell's attributes to the next.
package sgr

import (
	"strconv"
	"strings"

	"github.com/vtcore/attrcore/attr"
	"github.com/vtcore/attrcore/attrstore"
)

// Cell is the minimal external view of a buffer cell the serializer
// needs: a glyph, its display width, and an attribute identifier.
type Cell struct {
	Glyph string // empty means "no glyph"; serialized as a single space
	Width int    // 0 (combining), 1, or 2+
	ID    uint32 // attribute identifier (tagged per the attr package)
}

// Grid is the cell source the serializer walks. No scrollback, no
// cursor, no resize — exactly the "iterate cells and read attribute
// identifiers" surface the core needs.
type Grid interface {
	Rows() int
	Cols(row int) int
	Cell(row, col int) Cell
}

// flag is one of the seven single-bit SGR attributes, in emission
// order.
type flag struct {
	name string
	set  int
	get  func(*attr.Attributes) bool
	reset int
}

var flags = []flag{
	{"bold", 1, (*attr.Attributes).Bold, 22},
	{"dim", 2, (*attr.Attributes).Dim, 22},
	{"italic", 3, (*attr.Attributes).Italic, 23},
	{"underline", 4, (*attr.Attributes).Underline, 24},
	{"blink", 5, (*attr.Attributes).Blink, 25},
	{"inverse", 7, (*attr.Attributes).Inverse, 27},
	{"invisible", 8, (*attr.Attributes).Invisible, 28},
}

// transition appends the SGR parameters needed to move from old to
// next into params, in flags-then-fg-then-bg order.
func transition(old, next *attr.Attributes) []string {
	var params []string

	for _, f := range flags {
		was, now := f.get(old), f.get(next)
		if was == now {
			continue
		}
		if now {
			params = append(params, strconv.Itoa(f.set))
		} else {
			params = append(params, strconv.Itoa(f.reset))
		}
	}

	if old.FgMode() != next.FgMode() || old.Fg() != next.Fg() {
		params = append(params, fgParams(next)...)
	}
	if old.BgMode() != next.BgMode() || old.Bg() != next.Bg() {
		params = append(params, bgParams(next)...)
	}

	return params
}

func fgParams(a *attr.Attributes) []string {
	switch a.FgMode() {
	case attr.ModeDefault:
		return []string{"39"}
	case attr.ModeP16:
		idx := a.Fg()
		base := 30
		if idx&8 != 0 {
			base = 90
		}
		return []string{strconv.Itoa(base + int(idx&7))}
	case attr.ModeP256:
		return []string{"38", "5", strconv.FormatUint(uint64(a.Fg()), 10)}
	case attr.ModeRGB:
		r, g, b := attr.FromRGB(a.Fg())
		return []string{"38", "2", strconv.Itoa(int(r)), strconv.Itoa(int(g)), strconv.Itoa(int(b))}
	}
	return nil
}

func bgParams(a *attr.Attributes) []string {
	switch a.BgMode() {
	case attr.ModeDefault:
		return []string{"49"}
	case attr.ModeP16:
		idx := a.Bg()
		base := 40
		if idx&8 != 0 {
			base = 100
		}
		return []string{strconv.Itoa(base + int(idx&7))}
	case attr.ModeP256:
		return []string{"48", "5", strconv.FormatUint(uint64(a.Bg()), 10)}
	case attr.ModeRGB:
		r, g, b := attr.FromRGB(a.Bg())
		return []string{"48", "2", strconv.Itoa(int(r)), strconv.Itoa(int(g)), strconv.Itoa(int(b))}
	}
	return nil
}

// Write walks g in row-major order and writes its SGR-escaped text
// representation to sb, reconstructing each cell's Attributes via
// store.FromAddress. The initial "previous" attribute is the
// synthetic all-default, all-clear value, so the first non-default
// cell always triggers a transition.
func Write(sb *strings.Builder, g Grid, store *attrstore.Storage) {
	// old starts as the synthetic all-default, all-clear cell, so the
	// first non-default cell always triggers a transition.
	var old, cur attr.Attributes

	for row := 0; row < g.Rows(); row++ {
		col := 0
		cols := g.Cols(row)
		for col < cols {
			cell := g.Cell(row, col)
			store.FromAddress(cell.ID, &cur)

			if transitionDiffers(&old, &cur) {
				params := transition(&old, &cur)
				if len(params) > 0 {
					sb.WriteString("\x1b[")
					sb.WriteString(strings.Join(params, ";"))
					sb.WriteString("m")
				}
				old = cur
			}

			if cell.Glyph == "" {
				sb.WriteString(" ")
			} else {
				sb.WriteString(cell.Glyph)
			}

			advance := cell.Width
			if advance == 0 {
				advance = 1
			}
			col += advance
		}
		if row != g.Rows()-1 {
			sb.WriteString("\r\n")
		}
	}
}

func transitionDiffers(old, next *attr.Attributes) bool {
	of, ofg, obg := old.Raw()
	nf, nfg, nbg := next.Raw()
	return of != nf || ofg != nfg || obg != nbg
}
