// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package streamstats

import (
	"slices"

	"github.com/cockroachdb/streamstats/internal/invariants"
)

// Unsorted is an accumulator of a multiset of samples whose ordering may be
// partial (notably float64, where NaN compares unordered against
// everything), answering exact median, mode and cardinality queries.
//
// Samples are buffered in insertion order and sorted lazily: the first query
// after an Add or Merge sorts the buffer, and subsequent queries reuse that
// order until the next mutation. Sorting uses a total order derived from the
// element order by placing unordered elements (NaN) after every ordered
// value and treating them as mutually equal, so a deterministic full sort is
// always possible.
type Unsorted[T Real] struct {
	data   []partial[T]
	sorted bool
}

// defaultUnsortedCapacity is the initial buffer capacity used by
// NewUnsorted. Use NewUnsortedWithCapacity when the expected sample count is
// known to be large.
const defaultUnsortedCapacity = 16

// NewUnsorted returns an empty multiset.
func NewUnsorted[T Real]() *Unsorted[T] {
	return NewUnsortedWithCapacity[T](defaultUnsortedCapacity)
}

// NewUnsortedWithCapacity returns an empty multiset pre-sized for the
// expected number of samples.
func NewUnsortedWithCapacity[T Real](expectedLen int) *Unsorted[T] {
	return &Unsorted[T]{
		data:   make([]partial[T], 0, expectedLen),
		sorted: true,
	}
}

// UnsortedFromSlice returns a multiset of the given samples.
func UnsortedFromSlice[T Real](samples []T) *Unsorted[T] {
	u := NewUnsortedWithCapacity[T](len(samples))
	u.AddAll(samples...)
	return u
}

// Add appends a sample, invalidating any cached sort.
func (u *Unsorted[T]) Add(v T) {
	u.sorted = false
	u.data = append(u.data, partial[T]{v})
}

// AddAll appends each sample in turn.
func (u *Unsorted[T]) AddAll(samples ...T) {
	u.sorted = false
	for _, v := range samples {
		u.data = append(u.data, partial[T]{v})
	}
}

// Len returns the number of samples in the multiset.
func (u *Unsorted[T]) Len() int {
	return len(u.data)
}

// Cardinality returns the number of distinct samples. Unordered elements
// (NaN) count as a single distinct value. Like all queries, this may sort
// the buffer.
func (u *Unsorted[T]) Cardinality() uint64 {
	u.sort()
	var distinct uint64
	for i := range u.data {
		if i == 0 || !u.data[i-1].equal(u.data[i]) {
			distinct++
		}
	}
	return distinct
}

// Median returns the exact median of the sorted samples, or false if the
// multiset is empty. Even counts yield the arithmetic mean of the two middle
// elements.
func (u *Unsorted[T]) Median() (float64, bool) {
	u.sort()
	return medianOnSorted(u.data, func(p partial[T]) float64 { return float64(p.v) })
}

// Mode returns the value occupying the longest run of the sorted samples,
// with the same run-tie semantics as Sorted.Mode: false if the multiset is
// empty or no value strictly dominates.
func (u *Unsorted[T]) Mode() (T, bool) {
	u.sort()
	p, ok := modeOnSorted(u.data, partial[T].equal)
	return p.v, ok
}

// Merge folds other into u as a multiset union, invalidating any cached
// sort. It consumes other.
func (u *Unsorted[T]) Merge(other *Unsorted[T]) {
	if invariants.Enabled && u == other {
		panic("merge of an unsorted multiset with itself")
	}
	u.sorted = false
	u.data = append(u.data, other.data...)
}

// sort establishes the cached sort if the buffer is dirty.
func (u *Unsorted[T]) sort() {
	if u.sorted {
		return
	}
	slices.SortFunc(u.data, partial[T].compare)
	u.sorted = true
	if invariants.Enabled {
		for i := 1; i < len(u.data); i++ {
			if u.data[i].less(u.data[i-1]) {
				panic("unsorted buffer not in order after sort")
			}
		}
	}
}

// partial adapts a partially ordered element to a total order: unordered
// elements (NaN) sort after every ordered value and compare equal to each
// other; everything else keeps its natural order. Two ordered elements are
// equal only if literally equal.
type partial[T Real] struct {
	v T
}

// isNaN reports whether the wrapped value is unordered. Only float NaN
// compares unequal to itself.
func (p partial[T]) isNaN() bool {
	return p.v != p.v
}

func (p partial[T]) less(o partial[T]) bool {
	if p.isNaN() {
		return false
	}
	if o.isNaN() {
		return true
	}
	return p.v < o.v
}

func (p partial[T]) equal(o partial[T]) bool {
	return p.v == o.v || (p.isNaN() && o.isNaN())
}

func (p partial[T]) compare(o partial[T]) int {
	switch {
	case p.less(o):
		return -1
	case o.less(p):
		return 1
	default:
		return 0
	}
}

// Median returns the exact median of a stream of partially ordered samples,
// or false if the stream is empty. O(n log n) time, O(n) space.
func Median[T Real](samples []T) (float64, bool) {
	return UnsortedFromSlice(samples).Median()
}

// Mode returns the exact mode of a stream of partially ordered samples,
// under the sorted-walk run-tie semantics of Unsorted.Mode. O(n log n) time,
// O(n) space.
func Mode[T Real](samples []T) (T, bool) {
	return UnsortedFromSlice(samples).Mode()
}
