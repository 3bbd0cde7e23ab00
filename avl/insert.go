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

// insert returns the root of a new subtree holding key. Nodes off the
// path to the insertion point are reused as they are.
func (n *Node[K]) insert(key K, cmp func(K, K) int) *Node[K] {
	c := cmp(key, n.key)
	switch {
	case c < 0:
		var newLeft *Node[K]
		if n.left != nil {
			newLeft = n.left.insert(key, cmp)
		} else {
			newLeft = newLeaf(key)
		}
		return rebalance(newNode(n.key, newLeft, n.right))
	case c > 0:
		var newRight *Node[K]
		if n.right != nil {
			newRight = n.right.insert(key, cmp)
		} else {
			newRight = newLeaf(key)
		}
		return rebalance(newNode(n.key, n.left, newRight))
	default:
		// Duplicate: the new key replaces the stored one, children stay.
		return newNode(key, n.left, n.right)
	}
}
