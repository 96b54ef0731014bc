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

// Inclusive selects which endpoints of the indexed intervals are treated
// as inclusive. The selected mode applies to every interval in a tree.
type Inclusive uint8

const (
	// Left makes intervals closed on the left side, [l, r).
	Left Inclusive = iota
	// Right makes intervals closed on the right side, (l, r].
	Right
	// Both makes intervals closed on both sides, [l, r].
	Both
	// Neither makes intervals open on both sides, (l, r).
	Neither
)

// ParseInclusive returns the Inclusive value named by s.
func ParseInclusive(s string) (Inclusive, error) {
	switch s {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	case "both":
		return Both, nil
	case "neither":
		return Neither, nil
	}
	return 0, errors.Wrapf(ErrInvalidInclusive, "%q", s)
}

func (i Inclusive) String() string {
	switch i {
	case Left:
		return "left"
	case Right:
		return "right"
	case Both:
		return "both"
	case Neither:
		return "neither"
	}
	return "unknown"
}

func (i Inclusive) valid() bool {
	return i <= Neither
}

// leftClosed returns whether the left endpoint comparison is inclusive.
func (i Inclusive) leftClosed() bool {
	return i == Left || i == Both
}

func (i Inclusive) rightClosed() bool {
	return i == Right || i == Both
}
