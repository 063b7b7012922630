// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package streamstats

import (
	"math"

	"github.com/cockroachdb/redact"
	"github.com/cockroachdb/streamstats/internal/invariants"
)

// OnlineStats is a single-pass accumulator of the mean, population variance
// and standard deviation of a stream, in constant space.
//
// Add uses the Welford update, which avoids the catastrophic cancellation of
// the naive sum-of-squares formula. Merge uses the parallel combination
// formula, so the mean and variance of a merged pair match those of a single
// accumulator over the combined stream up to floating point rounding.
type OnlineStats struct {
	count    uint64
	mean     float64
	variance float64
}

// NewOnlineStats returns an empty accumulator with count, mean and variance
// all zero.
func NewOnlineStats() *OnlineStats {
	return &OnlineStats{}
}

// OnlineStatsFromSlice returns an accumulator of the given samples.
func OnlineStatsFromSlice[T Real](samples []T) *OnlineStats {
	s := NewOnlineStats()
	for _, v := range samples {
		s.Add(float64(v))
	}
	return s
}

// Add records a sample, updating the running mean and variance.
func (s *OnlineStats) Add(sample float64) {
	// The update order matters: the variance update needs both the old and
	// the new mean.
	oldMean := s.mean
	prevQ := s.variance * float64(s.count)

	s.count++
	s.mean += (sample - oldMean) / float64(s.count)
	s.variance = (prevQ + (sample-oldMean)*(sample-s.mean)) / float64(s.count)
}

// AddAll records each sample in turn.
func (s *OnlineStats) AddAll(samples ...float64) {
	for _, v := range samples {
		s.Add(v)
	}
}

// AddNull increments the sample count without contributing a value to the
// mean or variance. It represents an observed-but-missing value, keeping the
// population size accurate.
func (s *OnlineStats) AddNull() {
	s.count++
}

// Count returns the population size, including null samples.
func (s *OnlineStats) Count() uint64 {
	return s.count
}

// Mean returns the current mean.
func (s *OnlineStats) Mean() float64 {
	return s.mean
}

// Variance returns the current population variance.
func (s *OnlineStats) Variance() float64 {
	return s.variance
}

// StdDev returns the current population standard deviation.
func (s *OnlineStats) StdDev() float64 {
	return math.Sqrt(s.variance)
}

// Reset restores s to the empty state.
func (s *OnlineStats) Reset() {
	*s = OnlineStats{}
}

// Merge folds other into s using the parallel combination formula:
//
//	mean' = (n1*m1 + n2*m2) / (n1+n2)
//	var'  = (n1*v1 + n2*v2) / (n1+n2) + n1*n2*(m1-m2)^2 / (n1+n2)^2
//
// A zero-count operand is an identity and short-circuits, so merging empty
// accumulators never divides by zero. Merge consumes other.
func (s *OnlineStats) Merge(other *OnlineStats) {
	if invariants.Enabled && s == other {
		panic("merge of an online stats accumulator with itself")
	}
	if other.count == 0 {
		return
	}
	if s.count == 0 {
		*s = *other
		return
	}
	n1, n2 := float64(s.count), float64(other.count)
	meanDiffSq := (s.mean - other.mean) * (s.mean - other.mean)

	s.count += other.count
	s.mean = (n1*s.mean + n2*other.mean) / (n1 + n2)
	s.variance = (n1*s.variance+n2*other.variance)/(n1+n2) +
		n1*n2*meanDiffSq/((n1+n2)*(n1+n2))
}

// String returns "mean +/- stddev" with 10 significant digits.
func (s *OnlineStats) String() string {
	return redact.StringWithoutMarkers(s)
}

// SafeFormat implements redact.SafeFormatter.
func (s *OnlineStats) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("%.10g +/- %.10g", s.Mean(), s.StdDev())
}

// Mean returns the mean of the samples in constant space.
func Mean[T Real](samples []T) float64 {
	return OnlineStatsFromSlice(samples).Mean()
}

// Variance returns the population variance of the samples in constant space.
func Variance[T Real](samples []T) float64 {
	return OnlineStatsFromSlice(samples).Variance()
}

// StdDev returns the population standard deviation of the samples in
// constant space.
func StdDev[T Real](samples []T) float64 {
	return OnlineStatsFromSlice(samples).StdDev()
}
