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


// Package ordering provides the key orders an orchard tree can be built
// with. Keys are strings as typed by the user; each Order decides how they
// compare and therefore which spellings name the same key.
package ordering

// Order defines the interface for a total order over keys
type Order interface {
	Name() string
	Compare(a, b string) int
	Describe() string
	Priority() int // Lower number = listed first
}

