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
	"errors"
	"fmt"
)

// ErrInvalidInvariant is matched by every *InvariantError.
var ErrInvalidInvariant = errors.New("invalid tree invariant")

// Invariant names a structural property of the tree.
type Invariant int

const (
	InvariantSize Invariant = iota + 1
	InvariantHeight
	InvariantLeftOrder
	InvariantRightOrder
	InvariantBalance
)

func (i Invariant) String() string {
	switch i {
	case InvariantSize:
		return "size"
	case InvariantHeight:
		return "height"
	case InvariantLeftOrder:
		return "left-order"
	case InvariantRightOrder:
		return "right-order"
	case InvariantBalance:
		return "balance"
	default:
		return fmt.Sprintf("invariant(%d)", int(i))
	}
}

// InvariantError reports the node at which validation failed.
type InvariantError struct {
	Key       any
	Invariant Invariant
	Detail    string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invalid %s for key %v: %s", e.Invariant, e.Key, e.Detail)
}

func (e *InvariantError) Is(target error) bool {
	return target == ErrInvalidInvariant
}

// validate checks the subtree rooted at n. lower and upper are the nearest
// ancestors that n must order after and before respectively.
func (n *Node[K]) validate(cmp func(K, K) int, lower, upper *Node[K]) error {
	if n == nil {
		return nil
	}

	leftSize, rightSize := n.left.Size(), n.right.Size()
	if n.size != 1+leftSize+rightSize {
		return &InvariantError{
			Key:       n.key,
			Invariant: InvariantSize,
			Detail:    fmt.Sprintf("size %d, left size %d, right size %d", n.size, leftSize, rightSize),
		}
	}

	leftHeight, rightHeight := n.left.Height(), n.right.Height()
	if n.height != 1+max(leftHeight, rightHeight) {
		return &InvariantError{
			Key:       n.key,
			Invariant: InvariantHeight,
			Detail:    fmt.Sprintf("height %d, left height %d, right height %d", n.height, leftHeight, rightHeight),
		}
	}

	if bf := rightHeight - leftHeight; bf < -1 || bf > 1 {
		return &InvariantError{
			Key:       n.key,
			Invariant: InvariantBalance,
			Detail:    fmt.Sprintf("balance factor %d", bf),
		}
	}

	// upper has n in its left subtree, lower has it in its right subtree.
	if upper != nil && cmp(n.key, upper.key) >= 0 {
		return &InvariantError{
			Key:       upper.key,
			Invariant: InvariantLeftOrder,
			Detail:    fmt.Sprintf("left subtree holds key %v", n.key),
		}
	}
	if lower != nil && cmp(n.key, lower.key) <= 0 {
		return &InvariantError{
			Key:       lower.key,
			Invariant: InvariantRightOrder,
			Detail:    fmt.Sprintf("right subtree holds key %v", n.key),
		}
	}

	if err := n.left.validate(cmp, lower, n); err != nil {
		return err
	}
	return n.right.validate(cmp, n, upper)
}
