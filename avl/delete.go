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

// delete returns the root of the subtree without key. When key is not in
// the subtree the receiver itself is returned and nothing is allocated.
func (n *Node[K]) delete(key K, cmp func(K, K) int) *Node[K] {
	c := cmp(key, n.key)
	switch {
	case c < 0:
		if n.left == nil {
			return n
		}
		newLeft := n.left.delete(key, cmp)
		if newLeft == n.left {
			return n
		}
		return rebalance(newNode(n.key, newLeft, n.right))
	case c > 0:
		if n.right == nil {
			return n
		}
		newRight := n.right.delete(key, cmp)
		if newRight == n.right {
			return n
		}
		return rebalance(newNode(n.key, n.left, newRight))
	}

	// Found it.
	switch {
	case n.left == nil && n.right == nil:
		return nil
	case n.left == nil:
		return n.right
	case n.right == nil:
		return n.left
	}

	// Two children: the replacement key moves up from whichever subtree
	// holds it, and that subtree loses its copy.
	replacement := n.findDeletionReplacement()
	if n.BalanceFactor() >= 0 {
		newRight := n.right.delete(replacement, cmp)
		return rebalance(newNode(replacement, n.left, newRight))
	}
	newLeft := n.left.delete(replacement, cmp)
	return rebalance(newNode(replacement, newLeft, n.right))
}

// findDeletionReplacement picks the key that takes over a two-child node:
// the in-order successor when the right subtree is at least as tall,
// otherwise the in-order predecessor. Taking it from the taller side
// usually leaves the node balanced.
func (n *Node[K]) findDeletionReplacement() K {
	if n.BalanceFactor() >= 0 {
		return n.right.first().key
	}
	return n.left.last().key
}
