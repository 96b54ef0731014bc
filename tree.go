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

/*
Package intervals provides an immutable index over a set of numeric
intervals that answers point containment queries in better than linear
time.

A Tree is built once from two parallel slices of interval bounds and is
queried many times afterwards, there is no way to add or remove intervals
from an existing tree. Whether an interval contains its own endpoints is
selected per tree by the Inclusive mode, e.g. with intervals.Right the
interval (l, r] contains the point p iff l < p <= r.

Query results are positions into the indexed bound slices, allowing
callers to map them back onto whatever higher level records the intervals
were derived from.
*/
package intervals

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"

	"github.com/lni/intervals/internal/itree"
	"github.com/lni/intervals/logger"
)

var plog = logger.GetLogger("intervals")

// DefaultLeafSize is the subtree size below which tree nodes hold their
// intervals in raw form and answer queries by linear scan.
const DefaultLeafSize = 100

// Element is the set of numeric types a Tree can index.
type Element = itree.Element

type options struct {
	leafSize   int
	useMetrics bool
}

// Option configures a Tree.
type Option func(*options)

// WithLeafSize sets the subtree size below which partitioning stops and
// queries fall back to linear scans. It tunes traversal shape only, query
// results are not affected.
func WithLeafSize(size int) Option {
	return func(o *options) {
		o.leafSize = size
	}
}

// WithMetrics enables the collection of performance metrics.
func WithMetrics() Option {
	return func(o *options) {
		o.useMetrics = true
	}
}

// Tree is an immutable centered interval tree over intervals of element
// type T. All methods are safe for concurrent use once New has returned.
type Tree[T Element] struct {
	root       *itree.Node[T]
	left       []T
	right      []T
	inclusive  Inclusive
	leafSize   int
	droppedNaN int
	metrics    *treeMetrics

	leftSorterOnce  sync.Once
	leftSorter      []int64
	rightSorterOnce sync.Once
	rightSorter     []int64
	overlappingOnce sync.Once
	overlapping     bool
	monotonicOnce   sync.Once
	monotonic       bool
}

// New builds a Tree over the intervals (left[i], right[i]). Intervals
// with a NaN left bound are dropped from the index, their count is
// reported by DroppedNaN. The input slices are copied, later changes to
// them do not affect the tree.
func New[T Element](left []T, right []T,
	inclusive Inclusive, opts ...Option) (*Tree[T], error) {
	if len(left) != len(right) {
		return nil, errors.Wrapf(ErrLengthMismatch,
			"len(left) %d, len(right) %d", len(left), len(right))
	}
	if !inclusive.valid() {
		return nil, errors.Wrapf(ErrInvalidInclusive, "%d", inclusive)
	}
	o := options{leafSize: DefaultLeafSize}
	for _, opt := range opts {
		opt(&o)
	}
	if o.leafSize < 1 {
		return nil, errors.Wrapf(ErrInvalidLeafSize, "%d", o.leafSize)
	}
	t := &Tree[T]{
		inclusive: inclusive,
		leafSize:  o.leafSize,
		metrics:   newTreeMetrics(o.useMetrics),
	}
	t.left = make([]T, 0, len(left))
	t.right = make([]T, 0, len(left))
	indices := make([]int64, 0, len(left))
	for i := 0; i < len(left); i++ {
		// NaN is the only value that does not compare equal to itself.
		// only the left bounds are screened, a NaN right bound is kept
		// and the interval never matches any point.
		if left[i] != left[i] {
			t.droppedNaN++
			continue
		}
		t.left = append(t.left, left[i])
		t.right = append(t.right, right[i])
		indices = append(indices, int64(i))
	}
	if t.droppedNaN > 0 {
		plog.Warningf("dropped %d intervals with a NaN left bound",
			t.droppedNaN)
		t.metrics.nanDropped(t.droppedNaN)
	}
	t.root = itree.New(t.left, t.right, indices, itree.Options{
		LeafSize:    o.leafSize,
		LeftClosed:  inclusive.leftClosed(),
		RightClosed: inclusive.rightClosed(),
	})
	t.metrics.treeBuilt()
	return t, nil
}

// Len returns the number of indexed intervals, excluding dropped ones.
func (t *Tree[T]) Len() int {
	return t.root.Len()
}

// Inclusive returns the boundary mode of the tree.
func (t *Tree[T]) Inclusive() Inclusive {
	return t.inclusive
}

// LeafSize returns the leaf size the tree was built with.
func (t *Tree[T]) LeafSize() int {
	return t.leafSize
}

// DroppedNaN returns the number of input intervals dropped at
// construction because their left bound was NaN.
func (t *Tree[T]) DroppedNaN() int {
	return t.droppedNaN
}

// Left returns the indexed left bounds. The returned slice is owned by
// the tree and must not be modified.
func (t *Tree[T]) Left() []T {
	return t.left
}

// Right returns the indexed right bounds. The returned slice is owned by
// the tree and must not be modified.
func (t *Tree[T]) Right() []T {
	return t.right
}

func (t *Tree[T]) String() string {
	return fmt.Sprintf("intervals.Tree[%T](%d intervals, inclusive=%s, leafSize=%d)",
		*new(T), t.Len(), t.inclusive, t.leafSize)
}

// query appends the positions of all intervals containing point to
// result and returns the extended slice.
func (t *Tree[T]) query(result []int64, point T) []int64 {
	t.metrics.pointQueried()
	return t.root.Query(result, point)
}

// GetIndexer returns for each target the position of the unique interval
// containing it, -1 when no interval contains it. It fails with
// ErrAmbiguousIndexer at the first target contained by more than one
// interval, the remaining targets are not processed.
func (t *Tree[T]) GetIndexer(targets []T) ([]int64, error) {
	result := make([]int64, len(targets))
	var matches []int64
	for i, point := range targets {
		matches = t.query(matches[:0], point)
		switch len(matches) {
		case 0:
			result[i] = -1
		case 1:
			result[i] = matches[0]
		default:
			t.metrics.ambiguousIndexer()
			return nil, errors.Wrapf(ErrAmbiguousIndexer,
				"target at index %d", i)
		}
	}
	return result, nil
}

// GetIndexerNonUnique returns the positions of every interval containing
// each target, flattened across targets in traversal order. A target
// contained by no interval contributes a single -1 entry, its index in
// targets is additionally recorded in the returned missing slice.
func (t *Tree[T]) GetIndexerNonUnique(targets []T) ([]int64, []int64) {
	indexer := make([]int64, 0, len(targets))
	missing := make([]int64, 0)
	var matches []int64
	for i, point := range targets {
		matches = t.query(matches[:0], point)
		if len(matches) == 0 {
			indexer = append(indexer, -1)
			missing = append(missing, int64(i))
			continue
		}
		indexer = append(indexer, matches...)
	}
	return indexer, missing
}

// LeftSorter returns the permutation that sorts the indexed left bounds
// ascending. It is computed on first use and memoized.
func (t *Tree[T]) LeftSorter() []int64 {
	t.leftSorterOnce.Do(func() {
		t.leftSorter = itree.Argsort(t.left)
	})
	return t.leftSorter
}

// RightSorter returns the permutation that sorts the indexed right
// bounds ascending. It is computed on first use and memoized.
func (t *Tree[T]) RightSorter() []int64 {
	t.rightSorterOnce.Do(func() {
		t.rightSorter = itree.Argsort(t.right)
	})
	return t.rightSorter
}

// IsOverlapping returns whether any two indexed intervals overlap each
// other under the tree's boundary mode. It is computed on first use and
// memoized.
func (t *Tree[T]) IsOverlapping() bool {
	t.overlappingOnce.Do(func() {
		sorter := t.LeftSorter()
		// intervals sharing an endpoint only overlap when both of the
		// endpoints involved are closed
		closed := t.inclusive == Both
		for i := 1; i < len(sorter); i++ {
			cur := t.left[sorter[i]]
			prev := t.right[sorter[i-1]]
			if cur < prev || (closed && cur == prev) {
				t.overlapping = true
				return
			}
		}
	})
	return t.overlapping
}

// IsMonotonicIncreasing returns whether the indexed intervals appear in
// non-decreasing lexicographic (right, left) order in their original
// positional order. It is false whenever intervals were dropped for NaN
// left bounds. It is computed on first use and memoized.
func (t *Tree[T]) IsMonotonicIncreasing() bool {
	t.monotonicOnce.Do(func() {
		if t.droppedNaN > 0 {
			return
		}
		for i := 1; i < len(t.right); i++ {
			if t.right[i] < t.right[i-1] ||
				(t.right[i] == t.right[i-1] && t.left[i] < t.left[i-1]) {
				return
			}
		}
		t.monotonic = true
	})
	return t.monotonic
}

// Fingerprint returns a digest of the indexed bounds and the boundary
// mode. Two trees indexing the same bounds under the same mode have the
// same fingerprint regardless of their leaf size.
func (t *Tree[T]) Fingerprint() uint64 {
	h := xxhash.New()
	var buf [8]byte
	buf[0] = byte(t.inclusive)
	_, _ = h.Write(buf[:1])
	for i := 0; i < len(t.left); i++ {
		binary.LittleEndian.PutUint64(buf[:], elementBits(t.left[i]))
		_, _ = h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], elementBits(t.right[i]))
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}

// elementBits returns a 64 bit image of v that preserves distinctness
// within a single element type.
func elementBits[T Element](v T) uint64 {
	if isFloatType[T]() {
		return math.Float64bits(float64(v))
	}
	return uint64(int64(v))
}

func isFloatType[T Element]() bool {
	var v T
	switch reflect.TypeOf(v).Kind() {
	case reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
