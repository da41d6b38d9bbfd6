/**
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2026 attrcore contributors
 */

package main

import (
	"fmt"
	"os"

	"github.com/cloudfoundry/bytefmt"
	"github.com/sisatech/tablewriter"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <fixture.yaml>",
	Short: "Print the interned attribute count and pool memory usage for a fixture",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, grid, err := openFixture(args[0])
		if err != nil {
			return err
		}
		defer grid.Release(store)

		cells := 0
		for row := 0; row < grid.Rows(); row++ {
			cells += grid.Cols(row)
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"metric", "value"})
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		table.SetBorder(false)
		table.Append([]string{"rows", fmt.Sprintf("%d", grid.Rows())})
		table.Append([]string{"cells", fmt.Sprintf("%d", cells)})
		table.Append([]string{"interned rgb attributes", fmt.Sprintf("%d", store.Size())})
		table.Append([]string{"interning tree instance", store.ID()})
		table.Render()

		log.Infof("stats: %d cells across %d rows, %s of interned rgb attributes",
			cells, grid.Rows(), bytefmt.ByteSize(uint64(store.Size())*7*4))

		return nil
	},
}
