// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package streamstats provides accumulators for exact descriptive statistics
// (frequency counts, min/max, mean/variance, median, mode) over streams of
// values.
//
// Every accumulator implements a commutative merge: two accumulators built
// over disjoint portions of a stream can be combined into one that is
// observationally identical to an accumulator that processed the whole
// stream, regardless of how the stream was partitioned or in which order the
// partial results are combined. Counts, frequencies, median and mode are
// merge-order-independent exactly; mean and variance are independent up to
// floating point rounding.
//
// This makes the accumulators suitable for parallel aggregation: build one
// accumulator per worker, then fold the results with MergeAll. The package
// itself contains no concurrency; accumulators are not safe for concurrent
// mutation and callers must keep one accumulator per worker.
package streamstats

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/constraints"
)

// Commute describes accumulator types with an associative merge operation.
//
// Merge folds the state of other into the receiver. It consumes other: the
// caller must not continue to use other as an independent accumulator
// afterwards. Merging accumulators built over disjoint sample sets yields an
// accumulator equivalent to one built over the union (as a multiset) of the
// sets.
//
// For all accumulator types in this package, a freshly constructed (empty)
// accumulator is an identity element: merging it into another accumulator
// leaves the latter unchanged.
type Commute[A any] interface {
	Merge(other A)
}

// Real constrains the element types usable with the components that convert
// elements to float64 (OnlineStats helpers, Sorted, Unsorted).
type Real interface {
	constraints.Integer | constraints.Float
}

// MergeAll folds a sequence of same-kind accumulators into one, merging left
// to right into the first element. It returns false if the sequence is
// empty; no result is fabricated in that case.
//
// All accumulators in the sequence are consumed. The observable result does
// not depend on how the samples were distributed among the inputs.
func MergeAll[A Commute[A]](accs ...A) (A, bool) {
	if len(accs) == 0 {
		var none A
		return none, false
	}
	acc := accs[0]
	for _, other := range accs[1:] {
		acc.Merge(other)
	}
	return acc, true
}

// MergeSlices merges src into dst element-wise. The slices are positional:
// dst[i] absorbs src[i]. Mismatched lengths are a contract violation and
// panic; the merge is never truncated or padded.
func MergeSlices[A Commute[A]](dst, src []A) {
	if len(dst) != len(src) {
		panic(errors.AssertionFailedf(
			"mismatched accumulator slice lengths: %d vs %d", len(dst), len(src)))
	}
	for i := range dst {
		dst[i].Merge(src[i])
	}
}
