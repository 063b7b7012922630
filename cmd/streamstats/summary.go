// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/streamstats"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var summaryCmd = &cobra.Command{
	Use:   "summary [file ...]",
	Short: "compute summary statistics over numeric input",
	Long: `
Reads whitespace-separated numeric values from the given files (or stdin if
none are given), splits them across workers, and merges the per-worker
accumulators into a single summary.
`,
	RunE: runSummary,
}

// summary bundles one accumulator of each kind over the same samples. Its
// Merge folds all of them, so a slice of per-worker summaries reduces with
// streamstats.MergeAll.
type summary struct {
	moments *streamstats.OnlineStats
	bounds  *streamstats.MinMax[float64]
	order   *streamstats.Unsorted[float64]
	freq    *streamstats.Frequencies[float64]
}

func newSummary() *summary {
	return &summary{
		moments: streamstats.NewOnlineStats(),
		bounds:  streamstats.NewMinMax[float64](),
		order:   streamstats.NewUnsorted[float64](),
		freq:    streamstats.NewFrequencies[float64](),
	}
}

func (s *summary) add(v float64) {
	s.moments.Add(v)
	s.bounds.Add(v)
	s.order.Add(v)
	s.freq.Add(v)
}

// Merge implements streamstats.Commute.
func (s *summary) Merge(other *summary) {
	s.moments.Merge(other.moments)
	s.bounds.Merge(other.bounds)
	s.order.Merge(other.order)
	s.freq.Merge(other.freq)
}

func runSummary(cmd *cobra.Command, args []string) error {
	tokens, err := readTokens(args)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return errors.New("no input values")
	}

	workers := concurrency
	if workers < 1 {
		workers = 1
	}
	if workers > len(tokens) {
		workers = len(tokens)
	}

	// One accumulator set per worker; each worker parses and folds its own
	// shard, and the partial results are merged below.
	accs := make([]*summary, workers)
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		i := i
		lo := i * len(tokens) / workers
		hi := (i + 1) * len(tokens) / workers
		g.Go(func() error {
			acc := newSummary()
			for _, tok := range tokens[lo:hi] {
				v, err := strconv.ParseFloat(tok, 64)
				if err != nil {
					return errors.Wrapf(err, "parsing %q", tok)
				}
				acc.add(v)
			}
			accs[i] = acc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	total, ok := streamstats.MergeAll(accs...)
	if !ok {
		return errors.New("no input values")
	}

	fmt.Printf("count: %d\n", total.moments.Count())
	fmt.Printf("cardinality: %d\n", total.order.Cardinality())
	fmt.Printf("range: %s\n", total.bounds)
	fmt.Printf("mean: %s\n", total.moments)
	if m, ok := total.order.Median(); ok {
		fmt.Printf("median: %s\n", formatValue(m))
	}
	if v, ok := total.order.Mode(); ok {
		fmt.Printf("mode: %s\n", formatValue(v))
	} else {
		fmt.Println("mode: none")
	}
	return nil
}

func readTokens(paths []string) ([]string, error) {
	if len(paths) == 0 {
		return scanTokens(bufio.NewScanner(os.Stdin))
	}
	var tokens []string
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		t, err := scanTokens(bufio.NewScanner(f))
		_ = f.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", path)
		}
		tokens = append(tokens, t...)
	}
	return tokens, nil
}

func scanTokens(s *bufio.Scanner) ([]string, error) {
	s.Split(bufio.ScanWords)
	var tokens []string
	for s.Scan() {
		tokens = append(tokens, s.Text())
	}
	return tokens, s.Err()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
