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

// rebalance restores |balance factor| <= 1 at a freshly rebuilt node whose
// children are already balanced. It must run at every level on the way back
// up, for inserts and deletes alike: a delete can need a rotation at more
// than one ancestor.
func rebalance[K any](node *Node[K]) *Node[K] {
	balanceFactor := node.BalanceFactor()

	// Left-heavy
	if balanceFactor < -1 {
		if node.left.BalanceFactor() > 0 {
			// Left-Right case
			node = newNode(node.key, rotateLeft(node.left), node.right)
		}
		return rotateRight(node)
	}

	// Right-heavy
	if balanceFactor > 1 {
		if node.right.BalanceFactor() < 0 {
			// Right-Left case
			node = newNode(node.key, node.left, rotateRight(node.right))
		}
		return rotateLeft(node)
	}

	return node
}

// rotateLeft turns (n a (p b c)) into (p (n a b) c). Only new nodes are
// built; a, b and c are shared with the input.
//
//	   [n]                (p)
//	  /   \              /   \
//	 a    (p)    ->    [n]    c
//	     /   \        /   \
//	    b     c      a     b
func rotateLeft[K any](n *Node[K]) *Node[K] {
	pivot := n.right
	newSelf := newNode(n.key, n.left, pivot.left)
	return newNode(pivot.key, newSelf, pivot.right)
}

// rotateRight turns (n (p a b) c) into (p a (n b c)).
//
//	     [n]            (p)
//	    /   \          /   \
//	  (p)    c   ->   a    [n]
//	 /   \                /   \
//	a     b              b     c
func rotateRight[K any](n *Node[K]) *Node[K] {
	pivot := n.left
	newSelf := newNode(n.key, pivot.right, n.right)
	return newNode(pivot.key, pivot.left, newSelf)
}
