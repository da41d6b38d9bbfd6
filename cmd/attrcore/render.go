/**
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2026 attrcore contributors
 */

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vtcore/attrcore/sgr"
)

var renderCmd = &cobra.Command{
	Use:   "render <fixture.yaml>",
	Short: "Serialize a fixture's cells to SGR-escaped text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, grid, err := openFixture(args[0])
		if err != nil {
			return err
		}
		defer grid.Release(store)

		var sb strings.Builder
		sgr.Write(&sb, grid, store)
		fmt.Println(sb.String())
		return nil
	},
}
