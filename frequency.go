// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package streamstats

import (
	"slices"

	"github.com/cockroachdb/streamstats/internal/invariants"
	"github.com/cockroachdb/swiss"
)

// Frequencies is an accumulator of exact occurrence counts per distinct
// value.
//
// The sum of all counts equals the number of samples added; every stored
// count is at least 1.
type Frequencies[T comparable] struct {
	counts swiss.Map[T, uint64]
}

// defaultFrequenciesCapacity is the initial capacity used by
// NewFrequencies. Use NewFrequenciesWithCapacity when the expected
// cardinality is known to be large.
const defaultFrequenciesCapacity = 16

// NewFrequencies returns an empty frequency table.
func NewFrequencies[T comparable]() *Frequencies[T] {
	return NewFrequenciesWithCapacity[T](defaultFrequenciesCapacity)
}

// NewFrequenciesWithCapacity returns an empty frequency table pre-sized for
// the expected number of distinct values.
func NewFrequenciesWithCapacity[T comparable](expectedCardinality int) *Frequencies[T] {
	f := &Frequencies[T]{}
	f.counts.Init(expectedCardinality)
	return f
}

// FrequenciesFromSlice returns a frequency table of the given samples.
func FrequenciesFromSlice[T comparable](samples []T) *Frequencies[T] {
	f := NewFrequencies[T]()
	f.AddAll(samples...)
	return f
}

// Add records one occurrence of v.
func (f *Frequencies[T]) Add(v T) {
	n, _ := f.counts.Get(v)
	f.counts.Put(v, n+1)
}

// AddAll records one occurrence of each sample.
func (f *Frequencies[T]) AddAll(samples ...T) {
	for _, v := range samples {
		f.Add(v)
	}
}

// Count returns the number of occurrences of v, or 0 if v was never added.
func (f *Frequencies[T]) Count(v T) uint64 {
	n, _ := f.counts.Get(v)
	return n
}

// Cardinality returns the number of distinct values added.
func (f *Frequencies[T]) Cardinality() uint64 {
	return uint64(f.counts.Len())
}

// ValueCount pairs a value with its occurrence count.
type ValueCount[T any] struct {
	Value T
	Count uint64
}

// MostFrequent returns all distinct values and their counts, most frequent
// first. Values with equal counts appear in an arbitrary (but stable within
// one call) order; callers must not rely on the tie order.
func (f *Frequencies[T]) MostFrequent() []ValueCount[T] {
	counts := f.collect()
	slices.SortStableFunc(counts, func(a, b ValueCount[T]) int {
		switch {
		case a.Count > b.Count:
			return -1
		case a.Count < b.Count:
			return 1
		}
		return 0
	})
	return counts
}

// LeastFrequent returns all distinct values and their counts, least frequent
// first. The tie order is arbitrary, as for MostFrequent.
func (f *Frequencies[T]) LeastFrequent() []ValueCount[T] {
	counts := f.MostFrequent()
	slices.Reverse(counts)
	return counts
}

// Mode returns the value with the strictly highest occurrence count. It
// returns false if the table is empty or if the two highest counts are equal
// (no unique mode).
//
// Note that this differs from Sorted.Mode/Unsorted.Mode for a single
// distinct value observed once: Frequencies reports it as the mode, the
// sorted-walk accumulators do not.
func (f *Frequencies[T]) Mode() (T, bool) {
	counts := f.MostFrequent()
	if len(counts) == 0 || (len(counts) >= 2 && counts[0].Count == counts[1].Count) {
		var none T
		return none, false
	}
	return counts[0].Value, true
}

// Merge folds the counts of other into f, summing the counts of values
// present in both. It consumes other.
func (f *Frequencies[T]) Merge(other *Frequencies[T]) {
	if invariants.Enabled && f == other {
		panic("merge of a frequency table with itself")
	}
	other.counts.All(func(v T, n uint64) bool {
		prev, _ := f.counts.Get(v)
		f.counts.Put(v, prev+n)
		return true
	})
}

func (f *Frequencies[T]) collect() []ValueCount[T] {
	counts := make([]ValueCount[T], 0, f.counts.Len())
	f.counts.All(func(v T, n uint64) bool {
		counts = append(counts, ValueCount[T]{Value: v, Count: n})
		return true
	})
	return counts
}
