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
	"errors"
	"math"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrdersSortKeys(t *testing.T) {
	keys := []string{"10", "-3", "b", "2", "A", "3", "a", "-20", "007"}

	testCases := []struct {
		order Order
		want  []string
	}{
		{NaturalOrder{}, []string{"-20", "-3", "007", "10", "2", "3", "A", "a", "b"}},
		{NumericOrder{}, []string{"-20", "-3", "2", "3", "007", "10", "A", "a", "b"}},
		{AbsOrder{}, []string{"2", "-3", "3", "007", "10", "-20", "A", "a", "b"}},
		{FoldOrder{}, []string{"-20", "-3", "007", "10", "2", "3", "A", "a", "b"}},
		{ReverseOrder{}, []string{"b", "a", "A", "3", "2", "10", "007", "-3", "-20"}},
	}

	for _, tc := range testCases {
		t.Run(tc.order.Name(), func(t *testing.T) {
			got := slices.Clone(keys)
			slices.SortFunc(got, tc.order.Compare)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestOrderEquivalentSpellings(t *testing.T) {
	testCases := []struct {
		name  string
		order Order
		a, b  string
		equal bool
	}{
		{"numeric leading zeros", NumericOrder{}, "7", "007", true},
		{"numeric plus sign", NumericOrder{}, "+7", "7", true},
		{"numeric different values", NumericOrder{}, "7", "8", false},
		{"abs keeps sign apart", AbsOrder{}, "-7", "7", false},
		{"abs negative zero", AbsOrder{}, "-0", "0", true},
		{"fold keeps case apart", FoldOrder{}, "Go", "go", false},
		{"natural is exact", NaturalOrder{}, "7", "007", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.equal, tc.order.Compare(tc.a, tc.b) == 0)
		})
	}
}

func TestAbsOrderExtremes(t *testing.T) {
	minKey := strconv.FormatInt(math.MinInt64, 10)
	maxKey := strconv.FormatInt(math.MaxInt64, 10)

	order := AbsOrder{}
	assert.Positive(t, order.Compare(minKey, maxKey))
	assert.Negative(t, order.Compare(maxKey, minKey))
	assert.Equal(t, uint64(math.MaxInt64)+1, magnitude(math.MinInt64))
}

func TestOrdersAreAntisymmetric(t *testing.T) {
	keys := []string{"", "0", "-1", "1", "x", "X", "+1", "01", "99999999999999999999"}
	for _, order := range All() {
		for _, a := range keys {
			for _, b := range keys {
				ab, ba := order.Compare(a, b), order.Compare(b, a)
				require.Equal(t, ab < 0, ba > 0, "%s: %q vs %q", order.Name(), a, b)
				require.Equal(t, ab == 0, ba == 0, "%s: %q vs %q", order.Name(), a, b)
			}
		}
	}
}

func TestRegistryLookup(t *testing.T) {
	for _, name := range []string{"natural", "numeric", "abs", "fold", "reverse", "NUMERIC"} {
		order, err := Lookup(name)
		require.NoError(t, err, name)
		assert.True(t, strings.EqualFold(name, order.Name()))
	}

	order, err := Lookup("")
	require.NoError(t, err)
	assert.Equal(t, "natural", order.Name())

	_, err = Lookup("random")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownOrder))
	assert.Contains(t, err.Error(), "natural, numeric, abs, fold, reverse")
}

type lengthOrder struct{}

func (lengthOrder) Name() string            { return "natural" }
func (lengthOrder) Compare(a, b string) int { return len(a) - len(b) }
func (lengthOrder) Describe() string        { return "by length" }
func (lengthOrder) Priority() int           { return 9 }

func TestRegistryRegisterReplacesByName(t *testing.T) {
	r := NewRegistry()
	r.Register(lengthOrder{})

	assert.Equal(t, []string{"numeric", "abs", "fold", "reverse", "natural"}, r.Names())
	order, err := r.Lookup("natural")
	require.NoError(t, err)
	assert.Equal(t, "by length", order.Describe())

	// the package registry is untouched
	assert.Equal(t, []string{"natural", "numeric", "abs", "fold", "reverse"}, Names())
}
