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

package intervals

import (
	"math"

	"github.com/cockroachdb/errors"
)

// Index is the element type erased form of a Tree, produced by NewIndex.
// Query targets are float64 values, they are converted to the element
// type of the underlying tree before being looked up. A target outside
// the representable range of the element type matches no interval,
// fractional targets looked up against integer trees are truncated
// towards zero.
type Index interface {
	GetIndexer(targets []float64) ([]int64, error)
	GetIndexerNonUnique(targets []float64) ([]int64, []int64)
	IsOverlapping() bool
	IsMonotonicIncreasing() bool
	Len() int
	Inclusive() Inclusive
	DroppedNaN() int
	Fingerprint() uint64
	String() string
}

// NewIndex builds an Index over bound slices of dynamically selected
// element type. Both left and right must be one of []int64, []uint64 or
// []float64, anything else fails with ErrUnsupportedDType. When the two
// slices are of different element types both are widened to float64, the
// common numeric type.
func NewIndex(left interface{}, right interface{},
	inclusive Inclusive, opts ...Option) (Index, error) {
	switch lv := left.(type) {
	case []int64:
		switch rv := right.(type) {
		case []int64:
			t, err := New(lv, rv, inclusive, opts...)
			if err != nil {
				return nil, err
			}
			return typedIndex[int64]{tree: t, convert: toInt64}, nil
		case []uint64, []float64:
			return newFloat64Index(toFloat64(lv), widenToFloat64(rv),
				inclusive, opts...)
		}
	case []uint64:
		switch rv := right.(type) {
		case []uint64:
			t, err := New(lv, rv, inclusive, opts...)
			if err != nil {
				return nil, err
			}
			return typedIndex[uint64]{tree: t, convert: toUint64}, nil
		case []int64, []float64:
			return newFloat64Index(toFloat64(lv), widenToFloat64(rv),
				inclusive, opts...)
		}
	case []float64:
		switch rv := right.(type) {
		case []int64, []uint64, []float64:
			return newFloat64Index(lv, widenToFloat64(rv),
				inclusive, opts...)
		}
	}
	return nil, errors.Wrapf(ErrUnsupportedDType,
		"left %T, right %T", left, right)
}

func newFloat64Index(left []float64, right []float64,
	inclusive Inclusive, opts ...Option) (Index, error) {
	t, err := New(left, right, inclusive, opts...)
	if err != nil {
		return nil, err
	}
	return typedIndex[float64]{tree: t, convert: toFloat64Element}, nil
}

// typedIndex adapts a Tree[T] to the Index interface. convert maps a
// float64 target to the element type, reporting false for values with no
// in range representation, such targets match no interval.
type typedIndex[T Element] struct {
	tree    *Tree[T]
	convert func(float64) (T, bool)
}

func (x typedIndex[T]) GetIndexer(targets []float64) ([]int64, error) {
	result := make([]int64, len(targets))
	var matches []int64
	for i, target := range targets {
		point, ok := x.convert(target)
		if !ok {
			result[i] = -1
			continue
		}
		matches = x.tree.query(matches[:0], point)
		switch len(matches) {
		case 0:
			result[i] = -1
		case 1:
			result[i] = matches[0]
		default:
			x.tree.metrics.ambiguousIndexer()
			return nil, errors.Wrapf(ErrAmbiguousIndexer,
				"target at index %d", i)
		}
	}
	return result, nil
}

func (x typedIndex[T]) GetIndexerNonUnique(
	targets []float64) ([]int64, []int64) {
	indexer := make([]int64, 0, len(targets))
	missing := make([]int64, 0)
	var matches []int64
	for i, target := range targets {
		if point, ok := x.convert(target); ok {
			matches = x.tree.query(matches[:0], point)
		} else {
			matches = matches[:0]
		}
		if len(matches) == 0 {
			indexer = append(indexer, -1)
			missing = append(missing, int64(i))
			continue
		}
		indexer = append(indexer, matches...)
	}
	return indexer, missing
}

func (x typedIndex[T]) IsOverlapping() bool {
	return x.tree.IsOverlapping()
}

func (x typedIndex[T]) IsMonotonicIncreasing() bool {
	return x.tree.IsMonotonicIncreasing()
}

func (x typedIndex[T]) Len() int {
	return x.tree.Len()
}

func (x typedIndex[T]) Inclusive() Inclusive {
	return x.tree.Inclusive()
}

func (x typedIndex[T]) DroppedNaN() int {
	return x.tree.DroppedNaN()
}

func (x typedIndex[T]) Fingerprint() uint64 {
	return x.tree.Fingerprint()
}

func (x typedIndex[T]) String() string {
	return x.tree.String()
}

func toInt64(v float64) (int64, bool) {
	if v != v || v < math.MinInt64 || v >= math.MaxInt64 {
		return 0, false
	}
	return int64(v), true
}

func toUint64(v float64) (uint64, bool) {
	if v != v || v < 0 || v >= math.MaxUint64 {
		return 0, false
	}
	return uint64(v), true
}

func toFloat64Element(v float64) (float64, bool) {
	return v, true
}

func toFloat64[T Element](values []T) []float64 {
	result := make([]float64, len(values))
	for i, v := range values {
		result[i] = float64(v)
	}
	return result
}

func widenToFloat64(values interface{}) []float64 {
	switch v := values.(type) {
	case []int64:
		return toFloat64(v)
	case []uint64:
		return toFloat64(v)
	case []float64:
		return v
	}
	panic("unreachable")
}
