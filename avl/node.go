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

// Node is an immutable tree node. Height and size are cached when the node
// is built and describe the subtree rooted at the node.
type Node[K any] struct {
	key    K
	height int // leaf = 1, absent child = 0
	size   int
	left   *Node[K]
	right  *Node[K]
}

// newNode is the only way nodes are created. Children must be final.
func newNode[K any](key K, left, right *Node[K]) *Node[K] {
	lh, rh := left.Height(), right.Height()
	return &Node[K]{
		key:    key,
		height: 1 + max(lh, rh),
		size:   1 + left.Size() + right.Size(),
		left:   left,
		right:  right,
	}
}

func newLeaf[K any](key K) *Node[K] {
	return &Node[K]{key: key, height: 1, size: 1}
}

// Key returns the key stored in the node.
func (n *Node[K]) Key() K {
	return n.key
}

// Left returns the left child, or nil.
func (n *Node[K]) Left() *Node[K] {
	if n == nil {
		return nil
	}
	return n.left
}

// Right returns the right child, or nil.
func (n *Node[K]) Right() *Node[K] {
	if n == nil {
		return nil
	}
	return n.right
}

// Height of the subtree; 0 for a nil node.
func (n *Node[K]) Height() int {
	if n == nil {
		return 0
	}
	return n.height
}

// Size is the number of keys in the subtree; 0 for a nil node.
func (n *Node[K]) Size() int {
	if n == nil {
		return 0
	}
	return n.size
}

// BalanceFactor is height(right) - height(left). Positive means the right
// subtree is taller.
func (n *Node[K]) BalanceFactor() int {
	if n == nil {
		return 0
	}
	return n.right.Height() - n.left.Height()
}

// contains walks down from n without recursion.
func (n *Node[K]) contains(key K, cmp func(K, K) int) bool {
	current := n
	for current != nil {
		c := cmp(key, current.key)
		switch {
		case c == 0:
			return true
		case c < 0:
			current = current.left
		default:
			current = current.right
		}
	}
	return false
}

func (n *Node[K]) first() *Node[K] {
	if n == nil {
		return nil
	}
	for n.left != nil {
		n = n.left
	}
	return n
}

func (n *Node[K]) last() *Node[K] {
	if n == nil {
		return nil
	}
	for n.right != nil {
		n = n.right
	}
	return n
}

// ascend emits the subtree in order. It returns false once yield asks to
// stop so callers can unwind.
func (n *Node[K]) ascend(yield func(K) bool) bool {
	if n == nil {
		return true
	}
	return n.left.ascend(yield) && yield(n.key) && n.right.ascend(yield)
}

func (n *Node[K]) descend(yield func(K) bool) bool {
	if n == nil {
		return true
	}
	return n.right.descend(yield) && yield(n.key) && n.left.descend(yield)
}

// rangeOf emits keys in [start, end] and skips subtrees that cannot hold
// any of them.
func (n *Node[K]) rangeOf(start, end K, cmp func(K, K) int, yield func(K) bool) bool {
	if n == nil {
		return true
	}
	afterStart := cmp(start, n.key) <= 0
	beforeEnd := cmp(end, n.key) >= 0
	if afterStart && !n.left.rangeOf(start, end, cmp, yield) {
		return false
	}
	if afterStart && beforeEnd && !yield(n.key) {
		return false
	}
	if beforeEnd {
		return n.right.rangeOf(start, end, cmp, yield)
	}
	return true
}

// at selects the i-th smallest key using the cached sizes.
func (n *Node[K]) at(i int) *Node[K] {
	for n != nil {
		nl := n.left.Size()
		switch {
		case i < nl:
			n = n.left
		case i > nl:
			i -= nl + 1
			n = n.right
		default:
			return n
		}
	}
	return nil
}

// rank returns the number of keys ordered before key and whether key
// itself is present.
func (n *Node[K]) rank(key K, cmp func(K, K) int) (int, bool) {
	index := 0
	for n != nil {
		c := cmp(key, n.key)
		switch {
		case c < 0:
			n = n.left
		case c > 0:
			index += n.left.Size() + 1
			n = n.right
		default:
			return index + n.left.Size(), true
		}
	}
	return index, false
}
