/**
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2026 attrcore contributors
 */

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "View CLI version information",
	Args:  cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			panic(err)
		}
		switch format {
		case "json", "", "plain":
			return nil
		default:
			return fmt.Errorf("invalid format %q", format)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			panic(err)
		}
		switch format {
		case "json":
			fmt.Printf("{\n\t\"version\": %q,\n\t\"ref\": %q,\n\t\"released\": %q\n}\n", release, commit, date)
		default:
			fmt.Printf("Version: %s\nRef: %s\nReleased: %s\n", release, commit, date)
		}
	},
}

func init() {
	versionCmd.Flags().String("format", "", "specify output format (json, plain)")
}
