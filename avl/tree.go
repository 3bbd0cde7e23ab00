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

// Package avl implements a persistent AVL tree.
//
// Nodes are never modified once built. Insert and Delete return a new Tree
// and leave the receiver untouched; the two versions share every subtree
// the edit did not reach. Any number of goroutines may read any versions at
// the same time without locking.
package avl

import (
	"cmp"
	"iter"
	"slices"
)

// CompareFunc orders keys: negative when a < b, zero when equal, positive
// when a > b. It must be a strict total order.
type CompareFunc[K any] func(a, b K) int

// Tree is one immutable version of an ordered set of keys. Create trees
// with New or NewFunc; a nil *Tree reads as an empty tree but cannot be
// inserted into.
type Tree[K any] struct {
	root *Node[K]
	cmp  CompareFunc[K]
}

// New returns an empty tree using the natural ordering of K.
func New[K cmp.Ordered]() *Tree[K] {
	return &Tree[K]{cmp: cmp.Compare[K]}
}

// NewFunc returns an empty tree ordered by compare. The function is carried
// unchanged into every tree derived from this one.
func NewFunc[K any](compare CompareFunc[K]) *Tree[K] {
	if compare == nil {
		panic("avl: nil compare function")
	}
	return &Tree[K]{cmp: compare}
}

// FromSlice builds a natural-order tree holding keys.
func FromSlice[K cmp.Ordered](keys []K) *Tree[K] {
	return New[K]().InsertAll(keys...)
}

func (t *Tree[K]) derive(root *Node[K]) *Tree[K] {
	return &Tree[K]{root: root, cmp: t.cmp}
}

// Root returns the root node, or nil for an empty tree.
func (t *Tree[K]) Root() *Node[K] {
	if t == nil {
		return nil
	}
	return t.root
}

// Compare exposes the ordering the tree was created with.
func (t *Tree[K]) Compare() CompareFunc[K] {
	if t == nil {
		return nil
	}
	return t.cmp
}

// IsEmpty is true when the tree holds no keys.
func (t *Tree[K]) IsEmpty() bool {
	return t.Root() == nil
}

// Size is the number of keys in the tree.
func (t *Tree[K]) Size() int {
	return t.Root().Size()
}

// Height of the tree; 0 when empty.
func (t *Tree[K]) Height() int {
	return t.Root().Height()
}

// Contains reports whether a key equal to key under the tree's order is
// present.
func (t *Tree[K]) Contains(key K) bool {
	if t.IsEmpty() {
		return false
	}
	return t.root.contains(key, t.cmp)
}

// Insert returns a tree that also holds key. If an equal key is already
// present it is replaced by key and the size does not change.
func (t *Tree[K]) Insert(key K) *Tree[K] {
	if t.IsEmpty() {
		return t.derive(newLeaf(key))
	}
	return t.derive(t.root.insert(key, t.cmp))
}

// InsertAll inserts keys in order and returns the final version.
func (t *Tree[K]) InsertAll(keys ...K) *Tree[K] {
	result := t
	for _, key := range keys {
		result = result.Insert(key)
	}
	return result
}

// Delete returns a tree without key. If key is absent the receiver itself
// is returned.
func (t *Tree[K]) Delete(key K) *Tree[K] {
	if t.IsEmpty() {
		return t
	}
	newRoot := t.root.delete(key, t.cmp)
	if newRoot == t.root {
		return t
	}
	return t.derive(newRoot)
}

// Min returns the smallest key; ok is false when the tree is empty.
func (t *Tree[K]) Min() (key K, ok bool) {
	n := t.Root().first()
	if n == nil {
		return key, false
	}
	return n.key, true
}

// Max returns the largest key; ok is false when the tree is empty.
func (t *Tree[K]) Max() (key K, ok bool) {
	n := t.Root().last()
	if n == nil {
		return key, false
	}
	return n.key, true
}

// All yields the keys in ascending order.
func (t *Tree[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		t.Root().ascend(yield)
	}
}

// Backward yields the keys in descending order.
func (t *Tree[K]) Backward() iter.Seq[K] {
	return func(yield func(K) bool) {
		t.Root().descend(yield)
	}
}

// Ascending returns all keys in ascending order.
func (t *Tree[K]) Ascending() []K {
	result := make([]K, 0, t.Size())
	return slices.AppendSeq(result, t.All())
}

// Descending returns all keys in descending order.
func (t *Tree[K]) Descending() []K {
	result := make([]K, 0, t.Size())
	return slices.AppendSeq(result, t.Backward())
}

// RangeSeq yields, in ascending order, the keys k with start <= k <= end.
// Nothing is yielded when start orders after end.
func (t *Tree[K]) RangeSeq(start, end K) iter.Seq[K] {
	return func(yield func(K) bool) {
		if t.IsEmpty() || t.cmp(start, end) > 0 {
			return
		}
		t.root.rangeOf(start, end, t.cmp, yield)
	}
}

// Range returns the keys k with start <= k <= end in ascending order.
func (t *Tree[K]) Range(start, end K) []K {
	return slices.AppendSeq([]K{}, t.RangeSeq(start, end))
}

// At returns the key at zero-based position i of the ascending order.
func (t *Tree[K]) At(i int) (key K, ok bool) {
	if i < 0 || i >= t.Size() {
		return key, false
	}
	return t.root.at(i).key, true
}

// Rank returns the number of keys ordering before key, and whether key is
// present. For a present key this is its position in Ascending.
func (t *Tree[K]) Rank(key K) (int, bool) {
	if t.IsEmpty() {
		return 0, false
	}
	return t.root.rank(key, t.cmp)
}

// Equal reports whether both trees hold the same keys, compared with t's
// ordering. Shape is ignored.
func (t *Tree[K]) Equal(other *Tree[K]) bool {
	if t.Root() == other.Root() {
		return true
	}
	if t.Size() != other.Size() {
		return false
	}
	next, stop := iter.Pull(other.All())
	defer stop()
	for key := range t.All() {
		o, ok := next()
		if !ok || t.cmp(key, o) != 0 {
			return false
		}
	}
	return true
}

// Validate checks size, height, order and balance at every node and
// returns an *InvariantError for the first violation found.
func (t *Tree[K]) Validate() error {
	if t.IsEmpty() {
		return nil
	}
	return t.root.validate(t.cmp, nil, nil)
}
