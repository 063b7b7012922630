// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package streamstats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnsortedMedian(t *testing.T) {
	_, ok := UnsortedFromSlice[int](nil).Median()
	require.False(t, ok)

	median, ok := UnsortedFromSlice([]int{3, 5, 7, 9}).Median()
	require.True(t, ok)
	require.Equal(t, 6.0, median)

	median, ok = UnsortedFromSlice([]int{3, 5, 7}).Median()
	require.True(t, ok)
	require.Equal(t, 5.0, median)

	median, ok = UnsortedFromSlice([]float64{1.0, 2.5, 3.0}).Median()
	require.True(t, ok)
	require.Equal(t, 2.5, median)
}

func TestUnsortedMode(t *testing.T) {
	_, ok := UnsortedFromSlice[float64](nil).Mode()
	require.False(t, ok)

	_, ok = UnsortedFromSlice([]float64{3, 5, 7, 9}).Mode()
	require.False(t, ok)

	mode, ok := UnsortedFromSlice([]float64{3, 3, 3, 4}).Mode()
	require.True(t, ok)
	require.Equal(t, 3.0, mode)

	_, ok = UnsortedFromSlice([]float64{1, 1, 2, 3, 3}).Mode()
	require.False(t, ok)

	_, ok = UnsortedFromSlice([]float64{1, 1, 2, 2, 3, 3}).Mode()
	require.False(t, ok)

	mode, ok = UnsortedFromSlice([]float64{1, 1, 2, 2, 3, 3, 3}).Mode()
	require.True(t, ok)
	require.Equal(t, 3.0, mode)
}

func TestUnsortedNaN(t *testing.T) {
	nan := math.NaN()

	// NaN sorts after every ordered value, so it never lands in the middle.
	median, ok := UnsortedFromSlice([]float64{nan, 3, 5, 7}).Median()
	require.True(t, ok)
	require.Equal(t, 6.0, median)

	// All NaNs compare equal to each other: three NaNs form the longest run
	// and a single distinct value.
	u := UnsortedFromSlice([]float64{nan, 1, nan, nan})
	require.Equal(t, uint64(2), u.Cardinality())
	mode, ok := u.Mode()
	require.True(t, ok)
	require.True(t, math.IsNaN(mode))

	u = UnsortedFromSlice([]float64{nan, nan, nan})
	require.Equal(t, uint64(1), u.Cardinality())
	median, ok = u.Median()
	require.True(t, ok)
	require.True(t, math.IsNaN(median))
}

func TestUnsortedCardinality(t *testing.T) {
	require.Equal(t, uint64(0), NewUnsorted[int]().Cardinality())

	u := NewUnsorted[int]()
	u.AddAll(1, 2, 2, 3, 1, 1)
	require.Equal(t, uint64(3), u.Cardinality())
	require.Equal(t, 6, u.Len())
}

// TestUnsortedLazySort exercises the clean/dirty contract: every mutation
// invalidates the cached sort, and every query after a mutation must reflect
// the current contents.
func TestUnsortedLazySort(t *testing.T) {
	u := UnsortedFromSlice([]float64{3, 5, 7})
	median, ok := u.Median()
	require.True(t, ok)
	require.Equal(t, 5.0, median)

	// A stale cache would still answer 5 here.
	u.Add(1)
	median, ok = u.Median()
	require.True(t, ok)
	require.Equal(t, 4.0, median)

	u.Merge(UnsortedFromSlice([]float64{9, 9, 9}))
	median, ok = u.Median()
	require.True(t, ok)
	require.Equal(t, 7.0, median)
	mode, ok := u.Mode()
	require.True(t, ok)
	require.Equal(t, 9.0, mode)

	// Back-to-back queries reuse the cached sort.
	require.Equal(t, uint64(5), u.Cardinality())
	require.Equal(t, uint64(5), u.Cardinality())
}

func TestUnsortedCapacityHint(t *testing.T) {
	u := NewUnsortedWithCapacity[float64](1 << 12)
	u.AddAll(2, 1, 3)
	median, ok := u.Median()
	require.True(t, ok)
	require.Equal(t, 2.0, median)
}

func TestMedianModeHelpers(t *testing.T) {
	median, ok := Median([]float64{3, 5, 7, 9})
	require.True(t, ok)
	require.Equal(t, 6.0, median)

	median, ok = Median([]int{3, 5, 7})
	require.True(t, ok)
	require.Equal(t, 5.0, median)

	_, ok = Mode([]float64{1.0, 1.0, 2.0, 3.0, 3.0})
	require.False(t, ok)

	mode, ok := Mode([]float64{3.0, 3.0, 3.0, 4.0})
	require.True(t, ok)
	require.Equal(t, 3.0, mode)
}
