/**
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2026 attrcore contributors
 */

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vtcore/attrcore/elog"
)

var log elog.View

var (
	flagJSON    bool
	flagVerbose bool
	flagDebug   bool
	flagPreset  string
	flagTail    int
)

var rootCmd = &cobra.Command{
	Use:   "attrcore",
	Short: "Inspect and replay terminal cell-attribute fixtures",
	Long: `attrcore exercises the cell-attribute interning core (pool
allocator, red-black interning tree, SGR serializer) against fixture
files describing a grid of cells.`,
}

func commandInit() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "d", false, "enable debug output")
	rootCmd.PersistentFlags().BoolVarP(&flagJSON, "json", "j", false, "enable json output")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "named pool preset from ~/.attrcore/conf.toml (or the built-in small/large)")

	viper.SetEnvPrefix("attrcore")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("preset", rootCmd.PersistentFlags().Lookup("preset"))

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		log = elog.New(flagDebug, flagVerbose, flagJSON, flagJSON)
		// ATTRCORE_PRESET in the environment wins over an unset --preset.
		if flagPreset == "" {
			flagPreset = viper.GetString("preset")
		}
		return nil
	}

	replayCmd.Flags().IntVar(&flagTail, "tail", 4096, "bytes of trailing output to retain and print via a circular buffer")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(replayCmd)
}
