// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var concurrency int

var rootCmd = &cobra.Command{
	Use:   "streamstats [command] (flags)",
	Short: "streaming statistics tool",
	Long:  ``,
}

func main() {
	log.SetFlags(0)

	cobra.EnableCommandSorting = false
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().IntVarP(
		&concurrency, "concurrency", "c", 1, "number of concurrent workers")

	if err := rootCmd.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
