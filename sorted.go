// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package streamstats

import (
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/streamstats/internal/invariants"
)

// Sorted is an accumulator of a multiset of totally ordered samples,
// answering exact median and mode queries.
//
// Samples are held in a binary heap: insertion is O(log n), and each query
// materializes a full sort of the current contents, O(n log n). Nothing is
// maintained incrementally between queries; Unsorted amortizes the sort
// across queries instead.
type Sorted[T Real] struct {
	heap minHeap[T]
}

// NewSorted returns an empty multiset.
func NewSorted[T Real]() *Sorted[T] {
	return &Sorted[T]{}
}

// SortedFromSlice returns a multiset of the given samples.
func SortedFromSlice[T Real](samples []T) *Sorted[T] {
	s := NewSorted[T]()
	s.AddAll(samples...)
	return s
}

// Add inserts a sample into the multiset.
func (s *Sorted[T]) Add(v T) {
	s.heap.push(v)
}

// AddAll inserts each sample in turn.
func (s *Sorted[T]) AddAll(samples ...T) {
	for _, v := range samples {
		s.heap.push(v)
	}
}

// Len returns the number of samples in the multiset.
func (s *Sorted[T]) Len() int {
	return s.heap.len()
}

// Reset empties the multiset.
func (s *Sorted[T]) Reset() {
	s.heap.clear()
}

// Median returns the exact median: the middle element of the sorted samples,
// or the arithmetic mean of the two middle elements for an even count.
// Querying an empty multiset is a contract violation and panics.
func (s *Sorted[T]) Median() float64 {
	m, ok := medianOnSorted(s.heap.sorted(), func(v T) float64 { return float64(v) })
	if !ok {
		panic(errors.AssertionFailedf("median of an empty multiset"))
	}
	return m
}

// Mode returns the value occupying the longest run of the sorted samples. It
// returns false if the multiset is empty or if no single value strictly
// dominates: any run tying the longest run seen so far invalidates the mode
// until a strictly longer run appears. In particular a value must occur at
// least twice to be a mode, so a multiset of distinct values has none.
func (s *Sorted[T]) Mode() (T, bool) {
	return modeOnSorted(s.heap.sorted(), func(a, b T) bool { return a == b })
}

// Merge folds other into s as a multiset union: every sample of other,
// duplicates included, is inserted into s. It consumes other.
func (s *Sorted[T]) Merge(other *Sorted[T]) {
	if invariants.Enabled && s == other {
		panic("merge of a sorted multiset with itself")
	}
	for _, v := range other.heap.items {
		s.heap.push(v)
	}
}

// medianOnSorted returns the midpoint of an ascending sequence, or false if
// the sequence is empty.
func medianOnSorted[E any](sorted []E, toFloat func(E) float64) (float64, bool) {
	n := len(sorted)
	switch {
	case n == 0:
		return 0, false
	case n%2 == 0:
		return (toFloat(sorted[n/2-1]) + toFloat(sorted[n/2])) / 2, true
	default:
		return toFloat(sorted[n/2]), true
	}
}

// modeOnSorted walks an ascending sequence tracking the current run and the
// best run so far. A run strictly longer than the best replaces it; a run
// tying the best clears the mode until a strictly longer run appears.
// Returns false if no value ends up strictly dominating.
func modeOnSorted[E any](sorted []E, eq func(a, b E) bool) (E, bool) {
	var mode, next E
	var hasMode, hasNext bool
	var modeCount, nextCount int
	for _, x := range sorted {
		switch {
		case hasMode && eq(mode, x):
			modeCount++
		case hasNext && eq(next, x):
			nextCount++
		default:
			next, hasNext = x, true
			nextCount = 0
		}
		if nextCount > modeCount {
			mode, hasMode = next, true
			modeCount = nextCount
			hasNext = false
			nextCount = 0
		} else if nextCount == modeCount {
			// A run tying the best invalidates the mode, but the best length
			// is retained: a later run must strictly exceed it to become the
			// mode, so three equal-length runs still yield no mode.
			hasMode = false
		}
	}
	if !hasMode {
		var none E
		return none, false
	}
	return mode, true
}

// minHeap is a binary min-heap of ordered values.
type minHeap[T Real] struct {
	items []T
}

func (h *minHeap[T]) len() int {
	return len(h.items)
}

func (h *minHeap[T]) clear() {
	h.items = h.items[:0]
}

// push inserts v and restores the heap property by sifting it up.
func (h *minHeap[T]) push(v T) {
	h.items = append(h.items, v)
	i := len(h.items) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if !(h.items[i] < h.items[parent]) {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

// sorted returns the heap contents in ascending order, leaving the heap
// itself untouched.
func (h *minHeap[T]) sorted() []T {
	out := slices.Clone(h.items)
	slices.Sort(out)
	return out
}
