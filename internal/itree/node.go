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

// Package itree implements the centered interval tree used to answer point
// containment queries over a fixed set of numeric intervals.
package itree

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Element is the set of numeric types an interval tree can index.
type Element interface {
	constraints.Integer | constraints.Float
}

// Options configures how a tree is built. LeftClosed and RightClosed
// select whether the corresponding endpoint comparison is inclusive,
// LeafSize is the subtree size below which partitioning stops.
type Options struct {
	LeafSize    int
	LeftClosed  bool
	RightClosed bool
}

// Node is a node of a centered interval tree. A node is either a leaf
// holding its intervals in raw form, answered by linear scan, or an
// internal node holding a pivot, two child nodes and the intervals that
// straddle the pivot sorted by both of their bounds. Nodes are immutable
// once built.
type Node[T Element] struct {
	leftClosed  bool
	rightClosed bool
	isLeaf      bool
	nElements   int
	// leaf fields
	leftValues  []T
	rightValues []T
	indices     []int64
	// internal node fields
	pivot              T
	left               *Node[T]
	right              *Node[T]
	centerLeftValues   []T
	centerLeftIndices  []int64
	centerRightValues  []T
	centerRightIndices []int64
	// extrema of the entire subtree, used to prune queries
	minLeft  T
	maxRight T
}

// New builds a tree over the specified intervals. left, right and indices
// must have the same length, left must not contain NaN values. The input
// slices are owned by the returned tree.
func New[T Element](left []T, right []T, indices []int64, opts Options) *Node[T] {
	n := &Node[T]{
		leftClosed:  opts.LeftClosed,
		rightClosed: opts.RightClosed,
		nElements:   len(left),
	}
	if len(left) > 0 {
		n.minLeft = minValue(left)
		n.maxRight = maxValue(right)
	}
	if n.nElements <= opts.LeafSize {
		n.isLeaf = true
		n.leftValues = left
		n.rightValues = right
		n.indices = indices
		return n
	}
	n.pivot = pivotValue(left, right)
	var leftSet, rightSet, centerSet []int
	for i := 0; i < len(left); i++ {
		if n.entirelyLeft(right[i]) {
			leftSet = append(leftSet, i)
		} else if n.entirelyRight(left[i]) {
			rightSet = append(rightSet, i)
		} else {
			centerSet = append(centerSet, i)
		}
	}
	// an integer pivot truncated onto a shared open bound can leave every
	// interval in a single subset, in which case splitting can make no
	// further progress and the node keeps its intervals in raw form
	if len(leftSet) == len(left) || len(rightSet) == len(left) {
		n.isLeaf = true
		n.leftValues = left
		n.rightValues = right
		n.indices = indices
		return n
	}
	n.left = New(gather(left, leftSet),
		gather(right, leftSet), gather(indices, leftSet), opts)
	n.right = New(gather(left, rightSet),
		gather(right, rightSet), gather(indices, rightSet), opts)
	n.centerLeftValues = gather(left, centerSet)
	n.centerLeftIndices = gather(indices, centerSet)
	sortByValue(n.centerLeftValues, n.centerLeftIndices)
	n.centerRightValues = gather(right, centerSet)
	n.centerRightIndices = gather(indices, centerSet)
	sortByValue(n.centerRightValues, n.centerRightIndices)
	return n
}

// Len returns the number of intervals owned by the subtree.
func (n *Node[T]) Len() int {
	return n.nElements
}

// IsLeaf returns whether the node is a terminal leaf node.
func (n *Node[T]) IsLeaf() bool {
	return n.isLeaf
}

// Height returns the height of the subtree, 1 for a leaf.
func (n *Node[T]) Height() int {
	if n.isLeaf {
		return 1
	}
	h := n.left.Height()
	if rh := n.right.Height(); rh > h {
		h = rh
	}
	return h + 1
}

// Query appends to result the index of every interval in the subtree that
// contains point and returns the extended slice. Matches are appended in
// traversal order.
func (n *Node[T]) Query(result []int64, point T) []int64 {
	if n.isLeaf {
		for i := 0; i < len(n.leftValues); i++ {
			if n.leftOp(n.leftValues[i], point) &&
				n.rightOp(point, n.rightValues[i]) {
				result = append(result, n.indices[i])
			}
		}
		return result
	}
	switch {
	case point < n.pivot:
		// the center values are sorted by their left bound, everything
		// after the first non-matching bound is also a non-match
		for i := 0; i < len(n.centerLeftValues); i++ {
			if !n.leftOp(n.centerLeftValues[i], point) {
				break
			}
			result = append(result, n.centerLeftIndices[i])
		}
		if n.rightOp(point, n.left.maxRight) {
			result = n.left.Query(result, point)
		}
	case point > n.pivot:
		for i := len(n.centerRightValues) - 1; i >= 0; i-- {
			if !n.rightOp(point, n.centerRightValues[i]) {
				break
			}
			result = append(result, n.centerRightIndices[i])
		}
		if n.leftOp(n.right.minLeft, point) {
			result = n.right.Query(result, point)
		}
	case point == n.pivot:
		// every center interval straddles the pivot while the child
		// subtrees can not contain it. the equality case is explicit so
		// that a NaN point falls through without matching anything.
		result = append(result, n.centerLeftIndices...)
	}
	return result
}

func (n *Node[T]) leftOp(a T, b T) bool {
	if n.leftClosed {
		return a <= b
	}
	return a < b
}

func (n *Node[T]) rightOp(a T, b T) bool {
	if n.rightClosed {
		return a <= b
	}
	return a < b
}

// entirelyLeft returns whether an interval with the specified right bound
// lies entirely on the left side of the pivot, i.e. no point on the pivot
// or beyond can be contained by it.
func (n *Node[T]) entirelyLeft(right T) bool {
	if n.rightClosed {
		return right < n.pivot
	}
	return right <= n.pivot
}

func (n *Node[T]) entirelyRight(left T) bool {
	if n.leftClosed {
		return n.pivot < left
	}
	return n.pivot <= left
}

// pivotValue returns the median of the interval midpoints. Midpoints are
// evaluated as l/2+r/2 in float64 to avoid overflowing T. When the median
// is not finite it falls back to a value within the overall span so that
// partitioning can still make progress.
func pivotValue[T Element](left []T, right []T) T {
	mids := make([]float64, len(left))
	for i := 0; i < len(left); i++ {
		mids[i] = float64(left[i])/2 + float64(right[i])/2
	}
	m := median(mids)
	if !math.IsInf(m, 0) {
		return T(m)
	}
	var pivot T
	if pivot > maxValue(right) {
		pivot = maxValue(left)
	} else if pivot < minValue(left) {
		pivot = minValue(right)
	}
	return pivot
}

func minValue[T Element](values []T) T {
	v := values[0]
	for _, cur := range values[1:] {
		if cur < v {
			v = cur
		}
	}
	return v
}

func maxValue[T Element](values []T) T {
	v := values[0]
	for _, cur := range values[1:] {
		if cur > v {
			v = cur
		}
	}
	return v
}

func gather[T any](values []T, set []int) []T {
	result := make([]T, 0, len(set))
	for _, i := range set {
		result = append(result, values[i])
	}
	return result
}
