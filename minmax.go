// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package streamstats

import (
	"cmp"

	"github.com/cockroachdb/redact"
	"github.com/cockroachdb/streamstats/internal/invariants"
)

// MinMax is an accumulator of the minimum and maximum observed sample, along
// with the sample count.
//
// Updates use strict comparisons, so for floating point element types a NaN
// sample never displaces an existing bound (NaN compares unordered against
// everything). A NaN as the very first sample does become both bounds, as
// there is nothing to compare it against.
type MinMax[T cmp.Ordered] struct {
	count     uint64
	min, max  T
	hasBounds bool
}

// NewMinMax returns an empty MinMax accumulator.
func NewMinMax[T cmp.Ordered]() *MinMax[T] {
	return &MinMax[T]{}
}

// MinMaxFromSlice returns a MinMax accumulator of the given samples.
func MinMaxFromSlice[T cmp.Ordered](samples []T) *MinMax[T] {
	m := NewMinMax[T]()
	m.AddAll(samples...)
	return m
}

// Add records a sample, replacing the stored minimum (maximum) if the sample
// compares strictly less (greater).
func (m *MinMax[T]) Add(sample T) {
	m.count++
	if !m.hasBounds {
		m.min, m.max = sample, sample
		m.hasBounds = true
		return
	}
	if sample < m.min {
		m.min = sample
	}
	if sample > m.max {
		m.max = sample
	}
}

// AddAll records each sample in turn.
func (m *MinMax[T]) AddAll(samples ...T) {
	for _, v := range samples {
		m.Add(v)
	}
}

// Min returns the minimum observed sample. It returns false iff no samples
// have been observed.
func (m *MinMax[T]) Min() (T, bool) {
	return m.min, m.hasBounds
}

// Max returns the maximum observed sample. It returns false iff no samples
// have been observed.
func (m *MinMax[T]) Max() (T, bool) {
	return m.max, m.hasBounds
}

// Count returns the number of samples observed.
func (m *MinMax[T]) Count() uint64 {
	return m.count
}

// Merge folds other into m: counts sum, and each bound is replaced only if
// the incoming bound compares strictly beyond it. It consumes other.
func (m *MinMax[T]) Merge(other *MinMax[T]) {
	if invariants.Enabled && m == other {
		panic("merge of a min-max accumulator with itself")
	}
	m.count += other.count
	if !other.hasBounds {
		return
	}
	if !m.hasBounds {
		m.min, m.max = other.min, other.max
		m.hasBounds = true
		return
	}
	if other.min < m.min {
		m.min = other.min
	}
	if other.max > m.max {
		m.max = other.max
	}
}

// String returns "[min, max]", or "N/A" if no samples have been observed.
func (m *MinMax[T]) String() string {
	return redact.StringWithoutMarkers(m)
}

// SafeFormat implements redact.SafeFormatter.
func (m *MinMax[T]) SafeFormat(w redact.SafePrinter, _ rune) {
	if !m.hasBounds {
		w.SafeString("N/A")
		return
	}
	w.Printf("[%v, %v]", m.min, m.max)
}
