// Copyright 2024 Lei Ni (nilei81@gmail.com) and other contributors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package itree

import (
	"math"
	"sort"
	"testing"

	"github.com/lni/goutils/random"
	"github.com/stretchr/testify/require"
)

var allModes = []Options{
	{LeftClosed: true, RightClosed: false},
	{LeftClosed: false, RightClosed: true},
	{LeftClosed: true, RightClosed: true},
	{LeftClosed: false, RightClosed: false},
}

func testIndices(n int) []int64 {
	result := make([]int64, n)
	for i := range result {
		result[i] = int64(i)
	}
	return result
}

func bruteQuery[T Element](left []T, right []T,
	opts Options, point T) []int64 {
	var result []int64
	for i := 0; i < len(left); i++ {
		lm := left[i] < point
		if opts.LeftClosed {
			lm = left[i] <= point
		}
		rm := point < right[i]
		if opts.RightClosed {
			rm = point <= right[i]
		}
		if lm && rm {
			result = append(result, int64(i))
		}
	}
	return result
}

func sortedCopy(values []int64) []int64 {
	result := append([]int64{}, values...)
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

func TestSmallInputMakesALeafNode(t *testing.T) {
	opts := Options{LeafSize: 100, LeftClosed: true}
	left := []int64{1, 5, 3}
	right := []int64{2, 9, 4}
	n := New(left, right, testIndices(3), opts)
	require.True(t, n.IsLeaf())
	require.Equal(t, 3, n.Len())
	require.Equal(t, 1, n.Height())
}

func TestLeafQueryReportsMatchesInStorageOrder(t *testing.T) {
	opts := Options{LeafSize: 100, LeftClosed: true, RightClosed: true}
	left := []int64{5, 1, 3}
	right := []int64{9, 8, 4}
	n := New(left, right, testIndices(3), opts)
	result := n.Query(nil, 6)
	require.Equal(t, []int64{0, 1}, result)
}

func TestPartitionedNodeOwnsAllElements(t *testing.T) {
	opts := Options{LeafSize: 1, RightClosed: true}
	left := []int64{1, 3, 8}
	right := []int64{4, 6, 10}
	n := New(left, right, testIndices(3), opts)
	require.False(t, n.IsLeaf())
	require.Equal(t, 3, n.Len())
	owned := n.left.Len() + n.right.Len() + len(n.centerLeftIndices)
	require.Equal(t, 3, owned)
	require.Equal(t, len(n.centerLeftIndices), len(n.centerRightIndices))
}

func TestCenterArraysAreSorted(t *testing.T) {
	opts := Options{LeafSize: 1, LeftClosed: true}
	left := []int64{0, 2, 1, 4, 3, 0, 2}
	right := []int64{9, 6, 8, 5, 7, 4, 11}
	n := New(left, right, testIndices(7), opts)
	require.False(t, n.IsLeaf())
	require.True(t, sort.SliceIsSorted(n.centerLeftValues,
		func(i, j int) bool {
			return n.centerLeftValues[i] < n.centerLeftValues[j]
		}))
	require.True(t, sort.SliceIsSorted(n.centerRightValues,
		func(i, j int) bool {
			return n.centerRightValues[i] < n.centerRightValues[j]
		}))
}

func TestEmptyInputMakesAnEmptyLeaf(t *testing.T) {
	opts := Options{LeafSize: 10, LeftClosed: true}
	n := New([]float64{}, []float64{}, []int64{}, opts)
	require.True(t, n.IsLeaf())
	require.Equal(t, 0, n.Len())
	require.Empty(t, n.Query(nil, 1.0))
}

func TestAllCenterIntervalsTerminate(t *testing.T) {
	// identical intervals can not be moved out of the center set, the
	// node must still terminate with two empty children
	opts := Options{LeafSize: 1, RightClosed: true}
	left := []int64{0, 0, 0, 0, 0}
	right := []int64{10, 10, 10, 10, 10}
	n := New(left, right, testIndices(5), opts)
	require.False(t, n.IsLeaf())
	require.Equal(t, 0, n.left.Len())
	require.Equal(t, 0, n.right.Len())
	require.Equal(t, 5, len(n.centerLeftIndices))
	// the pivot is contained by every center interval
	result := n.Query(nil, n.pivot)
	require.Equal(t, 5, len(result))
}

func TestNoSplitProgressMakesAnOversizedLeaf(t *testing.T) {
	// the int64 midpoints truncate to a pivot of 0, exactly the shared
	// open left bound, so classification moves every interval into the
	// right subset and no further split progress is possible
	for idx, opts := range []Options{
		{LeafSize: 1, RightClosed: true},
		{LeafSize: 1},
	} {
		left := []int64{0, 0, 0}
		right := []int64{1, 1, 1}
		n := New(left, right, testIndices(3), opts)
		require.True(t, n.IsLeaf(), "opts %d", idx)
		require.Equal(t, 3, n.Len(), "opts %d", idx)
		for point := int64(-1); point <= 2; point++ {
			result := sortedCopy(n.Query(nil, point))
			expected := sortedCopy(bruteQuery(left, right, opts, point))
			require.Equal(t, expected, result,
				"opts %d, point %d", idx, point)
		}
	}
}

func TestNoSplitProgressOnTheLeftSide(t *testing.T) {
	// truncation toward zero puts the pivot of the [-1, 0) intervals on
	// their shared open right bound
	opts := Options{LeafSize: 1, LeftClosed: true}
	left := []int64{-1, -1}
	right := []int64{0, 0}
	n := New(left, right, testIndices(2), opts)
	require.True(t, n.IsLeaf())
	require.Equal(t, 2, n.Len())
	for point := int64(-2); point <= 1; point++ {
		result := sortedCopy(n.Query(nil, point))
		expected := sortedCopy(bruteQuery(left, right, opts, point))
		require.Equal(t, expected, result, "point %d", point)
	}
}

func TestQueryAtPivotReturnsAllCenterIntervals(t *testing.T) {
	opts := Options{LeafSize: 1, RightClosed: true}
	left := []int64{1, 3, 8}
	right := []int64{4, 6, 10}
	n := New(left, right, testIndices(3), opts)
	require.False(t, n.IsLeaf())
	result := sortedCopy(n.Query(nil, n.pivot))
	expected := sortedCopy(bruteQuery(left, right, opts, n.pivot))
	require.Equal(t, expected, result)
}

func TestNaNPointMatchesNothing(t *testing.T) {
	for _, opts := range allModes {
		opts.LeafSize = 1
		left := []float64{1, 3, 8}
		right := []float64{4, 6, 10}
		n := New(left, right, testIndices(3), opts)
		require.Empty(t, n.Query(nil, math.NaN()))
		opts.LeafSize = 100
		leaf := New(left, right, testIndices(3), opts)
		require.Empty(t, leaf.Query(nil, math.NaN()))
	}
}

func TestNaNRightBoundNeverMatches(t *testing.T) {
	// a NaN right bound fails every comparison, the interval is indexed
	// but can not contain any point
	for _, opts := range allModes {
		opts.LeafSize = 100
		left := []float64{1, 2}
		right := []float64{10, math.NaN()}
		n := New(left, right, testIndices(2), opts)
		result := n.Query(nil, 5)
		require.Equal(t, []int64{0}, result)
	}
}

func TestInfiniteMidpointPivotFallback(t *testing.T) {
	opts := Options{LeafSize: 2, LeftClosed: true}
	inf := math.Inf(1)
	left := []float64{inf, inf, 1}
	right := []float64{inf, inf, 2}
	n := New(left, right, testIndices(3), opts)
	require.False(t, n.IsLeaf())
	// the fallback pivot stays within the overall span
	require.False(t, math.IsInf(float64(n.pivot), 0))
	for _, point := range []float64{0, 1, 1.5, 2, 3, inf} {
		result := sortedCopy(n.Query(nil, point))
		expected := sortedCopy(bruteQuery(left, right, opts, point))
		require.Equal(t, expected, result, "point %f", point)
	}
}

func TestQueryMatchesBruteForceInt64(t *testing.T) {
	for _, opts := range allModes {
		for _, leafSize := range []int{1, 2, 3, 10, 100} {
			opts.LeafSize = leafSize
			count := 200
			left := make([]int64, count)
			right := make([]int64, count)
			for i := 0; i < count; i++ {
				l := int64(random.LockGuardedRand.Uint64() % 1000)
				left[i] = l
				right[i] = l + int64(random.LockGuardedRand.Uint64()%100)
			}
			n := New(left, right, testIndices(count), opts)
			for point := int64(-10); point < 1110; point += 7 {
				result := sortedCopy(n.Query(nil, point))
				expected := sortedCopy(bruteQuery(left, right, opts, point))
				require.Equal(t, expected, result,
					"opts %+v, point %d", opts, point)
			}
		}
	}
}

func TestQueryMatchesBruteForceFloat64(t *testing.T) {
	for _, opts := range allModes {
		for _, leafSize := range []int{1, 7, 100} {
			opts.LeafSize = leafSize
			count := 150
			left := make([]float64, count)
			right := make([]float64, count)
			for i := 0; i < count; i++ {
				l := float64(random.LockGuardedRand.Uint64()%1000) / 3.0
				left[i] = l
				right[i] = l + float64(random.LockGuardedRand.Uint64()%300)/7.0
			}
			n := New(left, right, testIndices(count), opts)
			points := append([]float64{}, left...)
			points = append(points, right...)
			for i := 0; i < 100; i++ {
				points = append(points,
					float64(random.LockGuardedRand.Uint64()%4000)/10.0-20.0)
			}
			for _, point := range points {
				result := sortedCopy(n.Query(nil, point))
				expected := sortedCopy(bruteQuery(left, right, opts, point))
				require.Equal(t, expected, result,
					"opts %+v, point %f", opts, point)
			}
		}
	}
}

func TestQueryMatchesBruteForceUint64(t *testing.T) {
	opts := Options{LeafSize: 2, RightClosed: true}
	left := []uint64{0, 5, 5, 20, math.MaxUint64 - 10}
	right := []uint64{10, 15, 8, 30, math.MaxUint64}
	n := New(left, right, testIndices(5), opts)
	points := []uint64{0, 5, 8, 10, 12, 15, 25, 31,
		math.MaxUint64 - 5, math.MaxUint64}
	for _, point := range points {
		result := sortedCopy(n.Query(nil, point))
		expected := sortedCopy(bruteQuery(left, right, opts, point))
		require.Equal(t, expected, result, "point %d", point)
	}
}

func TestArgsortReturnsSortingPermutation(t *testing.T) {
	values := []float64{3, 1, 2, 1, 5}
	sorter := Argsort(values)
	require.Equal(t, []int64{1, 3, 2, 0, 4}, sorter)
}

func TestMedian(t *testing.T) {
	tests := []struct {
		values   []float64
		expected float64
	}{
		{[]float64{1}, 1},
		{[]float64{2, 1}, 1.5},
		{[]float64{3, 1, 2}, 2},
		{[]float64{4, 1, 3, 2}, 2.5},
	}
	for idx, tt := range tests {
		require.Equal(t, tt.expected, median(tt.values), "test %d", idx)
	}
}
