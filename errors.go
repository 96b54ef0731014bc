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
	"github.com/cockroachdb/errors"
)

var (
	// ErrInvalidInclusive indicates that the specified inclusive option is
	// not one of left, right, both or neither.
	ErrInvalidInclusive = errors.New("invalid option for inclusive")
	// ErrAmbiguousIndexer indicates that a query point passed to the unique
	// indexer overlaps more than one interval.
	ErrAmbiguousIndexer = errors.New("indexer does not intersect a unique set of intervals")
	// ErrLengthMismatch indicates that the left and right bound slices have
	// different lengths.
	ErrLengthMismatch = errors.New("left and right must have the same length")
	// ErrInvalidLeafSize indicates a non-positive leaf size option.
	ErrInvalidLeafSize = errors.New("leaf size must be positive")
	// ErrUnsupportedDType indicates that the bound slices passed to NewIndex
	// are not of a supported element type.
	ErrUnsupportedDType = errors.New("unsupported element type")
)
