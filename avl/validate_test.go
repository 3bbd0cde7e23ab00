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


package avl

import (
	"cmp"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateReportsBrokenNodes(t *testing.T) {
	testCases := []struct {
		name      string
		root      *Node[int]
		invariant Invariant
		key       int
		message   string
	}{
		{
			name:      "stale size",
			root:      &Node[int]{key: 2, height: 2, size: 5, left: newLeaf(1), right: newLeaf(3)},
			invariant: InvariantSize,
			key:       2,
			message:   "invalid size for key 2: size 5, left size 1, right size 1",
		},
		{
			name:      "stale height",
			root:      &Node[int]{key: 2, height: 3, size: 3, left: newLeaf(1), right: newLeaf(3)},
			invariant: InvariantHeight,
			key:       2,
			message:   "invalid height for key 2: height 3, left height 1, right height 1",
		},
		{
			name:      "left heavy chain",
			root:      newNode(3, newNode(2, newLeaf(1), nil), nil),
			invariant: InvariantBalance,
			key:       3,
			message:   "invalid balance for key 3: balance factor -2",
		},
		{
			name:      "right heavy chain",
			root:      newNode(1, nil, newNode(2, nil, newLeaf(3))),
			invariant: InvariantBalance,
			key:       1,
			message:   "invalid balance for key 1: balance factor 2",
		},
		{
			name:      "left child too large",
			root:      newNode(2, newLeaf(5), newLeaf(3)),
			invariant: InvariantLeftOrder,
			key:       2,
			message:   "invalid left-order for key 2: left subtree holds key 5",
		},
		{
			name:      "right child too small",
			root:      newNode(2, newLeaf(1), newLeaf(0)),
			invariant: InvariantRightOrder,
			key:       2,
			message:   "invalid right-order for key 2: right subtree holds key 0",
		},
		{
			name:      "duplicate in left subtree",
			root:      newNode(2, newLeaf(2), nil),
			invariant: InvariantLeftOrder,
			key:       2,
		},
		{
			name: "grandchild beyond ancestor",
			root: newNode(5,
				newNode(2, newLeaf(1), newLeaf(7)),
				newNode(8, nil, newLeaf(9))),
			invariant: InvariantLeftOrder,
			key:       5,
			message:   "invalid left-order for key 5: left subtree holds key 7",
		},
		{
			name: "stale size deep in the tree",
			root: newNode(4,
				newNode(2, newLeaf(1), &Node[int]{key: 3, height: 1, size: 2}),
				newLeaf(5)),
			invariant: InvariantSize,
			key:       3,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tree := &Tree[int]{root: tc.root, cmp: cmp.Compare[int]}

			err := tree.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInvariant))

			var invErr *InvariantError
			require.True(t, errors.As(err, &invErr))
			assert.Equal(t, tc.invariant, invErr.Invariant)
			assert.Equal(t, tc.key, invErr.Key)
			if tc.message != "" {
				assert.EqualError(t, err, tc.message)
			}
		})
	}
}

func TestValidateUsesTreeOrder(t *testing.T) {
	// 3 > 1 naturally, but the tree is ordered descending.
	descending := func(a, b int) int { return cmp.Compare(b, a) }
	root := newNode(2, newLeaf(3), newLeaf(1))

	assert.NoError(t, (&Tree[int]{root: root, cmp: descending}).Validate())
	assert.Error(t, (&Tree[int]{root: root, cmp: cmp.Compare[int]}).Validate())
}

func TestInvariantString(t *testing.T) {
	assert.Equal(t, "size", InvariantSize.String())
	assert.Equal(t, "balance", InvariantBalance.String())
	assert.Equal(t, "invariant(42)", Invariant(42).String())
}
