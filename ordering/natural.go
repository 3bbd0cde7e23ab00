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

// NaturalOrder compares keys bytewise
type NaturalOrder struct{}

func (NaturalOrder) Name() string {
	return "natural"
}

func (NaturalOrder) Compare(a, b string) int {
	return strings.Compare(a, b)
}

func (NaturalOrder) Describe() string {
	return "bytewise string order"
}

func (NaturalOrder) Priority() int {
	return 0
}

// ReverseOrder is NaturalOrder backwards
type ReverseOrder struct{}

func (ReverseOrder) Name() string {
	return "reverse"
}

func (ReverseOrder) Compare(a, b string) int {
	return strings.Compare(b, a)
}

func (ReverseOrder) Describe() string {
	return "bytewise string order, largest first"
}

func (ReverseOrder) Priority() int {
	return 4
}
