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

import "strings"

// FoldOrder compares keys case-insensitively. Keys that differ only in case
// remain distinct and fall back to bytewise order, so "Go" sorts before
// "go" and both are kept.
type FoldOrder struct{}

func (FoldOrder) Name() string {
	return "fold"
}

func (FoldOrder) Compare(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func (FoldOrder) Describe() string {
	return "case-insensitive, ties broken bytewise"
}

func (FoldOrder) Priority() int {
	return 3
}
