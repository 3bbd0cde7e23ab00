// Copyright 2025 Naren Yellavula
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


package ordering

import (
	"cmp"
	"strconv"
	"strings"
)

func parseInt(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	return n, err == nil
}

// magnitude is |n| without overflow at math.MinInt64.
func magnitude(n int64) uint64 {
	if n < 0 {
		return uint64(-(n + 1)) + 1
	}
	return uint64(n)
}

// compareMixed orders numeric keys with numeric, places every numeric key
// before every non-numeric one, and orders non-numeric keys bytewise.
func compareMixed(a, b string, numeric func(x, y int64) int) int {
	x, aok := parseInt(a)
	y, bok := parseInt(b)
	switch {
	case aok && bok:
		return numeric(x, y)
	case aok:
		return -1
	case bok:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// NumericOrder compares keys as signed 64-bit integers. "7", "07" and
// "+7" are the same key.
type NumericOrder struct{}

func (NumericOrder) Name() string {
	return "numeric"
}

func (NumericOrder) Compare(a, b string) int {
	return compareMixed(a, b, cmp.Compare[int64])
}

func (NumericOrder) Describe() string {
	return "signed integers; other keys follow, bytewise"
}

func (NumericOrder) Priority() int {
	return 1
}

// AbsOrder compares integer keys by absolute value; -n sorts just before n.
type AbsOrder struct{}

func (AbsOrder) Name() string {
	return "abs"
}

func (AbsOrder) Compare(a, b string) int {
	return compareMixed(a, b, func(x, y int64) int {
		if c := cmp.Compare(magnitude(x), magnitude(y)); c != 0 {
			return c
		}
		return cmp.Compare(x, y)
	})
}

func (AbsOrder) Describe() string {
	return "integers by absolute value, negative first on ties; other keys follow"
}

func (AbsOrder) Priority() int {
	return 2
}
