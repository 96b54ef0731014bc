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
	"sort"
)

type pairs[T Element] struct {
	values  []T
	indices []int64
}

func (p pairs[T]) Len() int {
	return len(p.values)
}

func (p pairs[T]) Less(i int, j int) bool {
	return p.values[i] < p.values[j]
}

func (p pairs[T]) Swap(i int, j int) {
	p.values[i], p.values[j] = p.values[j], p.values[i]
	p.indices[i], p.indices[j] = p.indices[j], p.indices[i]
}

// sortByValue sorts values ascending in place, applying the same
// permutation to indices.
func sortByValue[T Element](values []T, indices []int64) {
	sort.Sort(pairs[T]{values: values, indices: indices})
}

// Argsort returns the permutation that would sort values ascending. Equal
// values keep their relative order.
func Argsort[T Element](values []T) []int64 {
	result := make([]int64, len(values))
	for i := range result {
		result[i] = int64(i)
	}
	sort.SliceStable(result, func(i int, j int) bool {
		return values[result[i]] < values[result[j]]
	})
	return result
}

// median returns the median of values, averaging the two middle elements
// for even lengths. values is reordered in place.
func median(values []float64) float64 {
	sort.Float64s(values)
	mid := len(values) / 2
	if len(values)%2 == 1 {
		return values[mid]
	}
	return values[mid-1]/2 + values[mid]/2
}
