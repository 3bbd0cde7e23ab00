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
	"fmt"
	"io"
	"strings"
)

type branch int

const (
	branchRoot branch = iota
	branchLeft
	branchRight
)

// Print writes a sideways ASCII diagram of the tree to w, right subtree on
// top, one node per line with its balance factor and subtree size. It
// returns the depth of the tree.
func (t *Tree[K]) Print(w io.Writer) int {
	return printNode(w, t.Root(), "", branchRoot)
}

// String renders the same diagram as Print.
func (t *Tree[K]) String() string {
	var sb strings.Builder
	t.Print(&sb)
	return sb.String()
}

func printNode[K any](w io.Writer, n *Node[K], prefix string, br branch) int {
	if n == nil {
		return 0
	}
	rd := 0
	if n.right != nil {
		pad := "       "
		if br == branchLeft {
			pad = "|      "
		}
		rd = printNode(w, n.right, prefix+pad, branchRight)
	}
	switch br {
	case branchRoot:
		fmt.Fprintf(w, "%s|------+ ", prefix)
	case branchLeft:
		fmt.Fprintf(w, "%s\\------+ ", prefix)
	case branchRight:
		fmt.Fprintf(w, "%s/------+ ", prefix)
	}
	fmt.Fprintf(w, "%v %+d/%d\n", n.key, n.BalanceFactor(), n.size)
	ld := 0
	if n.left != nil {
		pad := "       "
		if br == branchRight {
			pad = "|      "
		}
		ld = printNode(w, n.left, prefix+pad, branchLeft)
	}
	return 1 + max(ld, rd)
}
