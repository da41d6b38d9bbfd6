/**
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2026 attrcore contributors
 */

package main

import (
	"strings"

	"github.com/armon/circbuf"
	"github.com/djherbis/buffer"
	"github.com/djherbis/nio"
	"github.com/spf13/cobra"

	"github.com/vtcore/attrcore/fixture"
	"github.com/vtcore/attrcore/sgr"
)

// singleRow adapts one row of a fixture.Grid into its own one-row
// sgr.Grid, so replay can serialize and emit a fixture incrementally
// instead of building the whole output string up front.
type singleRow struct {
	g   *fixture.Grid
	row int
}

func (s singleRow) Rows() int           { return 1 }
func (s singleRow) Cols(int) int        { return s.g.Cols(s.row) }
func (s singleRow) Cell(_, col int) sgr.Cell { return s.g.Cell(s.row, col) }

var replayCmd = &cobra.Command{
	Use:   "replay <fixture.yaml>",
	Short: "Stream a fixture's rows through a buffered pipe, reporting progress and tailing recent output",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, grid, err := openFixture(args[0])
		if err != nil {
			return err
		}
		defer grid.Release(store)

		tail, err := circbuf.NewBuffer(int64(flagTail))
		if err != nil {
			return err
		}

		r, w := nio.Pipe(buffer.New(64 * 1024))
		prog := log.NewProgress("replay", int64(grid.Rows()))

		done := make(chan struct{})
		go func() {
			defer w.Close()
			defer close(done)
			for row := 0; row < grid.Rows(); row++ {
				var sb strings.Builder
				sgr.Write(&sb, singleRow{grid, row}, store)
				sb.WriteString("\r\n")
				if _, err := w.Write([]byte(sb.String())); err != nil {
					return
				}
				prog.Increment(1)
			}
		}()

		buf := make([]byte, 4096)
		for {
			n, readErr := r.Read(buf)
			if n > 0 {
				_, _ = tail.Write(buf[:n])
			}
			if readErr != nil {
				break
			}
		}
		<-done
		prog.Finish(true)

		log.Infof("tail of last %d bytes:\n%s", flagTail, tail.Bytes())
		return nil
	},
}
