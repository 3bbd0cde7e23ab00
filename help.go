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


package main

import (
	"fmt"
	"runtime"
	"strings"

	markdown "github.com/MichaelMure/go-term-markdown"
	"github.com/carlmjohnson/versioninfo"

	"github.com/eliottgray/orchard/ordering"
)

func usageMarkdown() string {
	var orders strings.Builder
	for _, o := range ordering.All() {
		fmt.Fprintf(&orders, "* **%s**: %s\n", o.Name(), o.Describe())
	}

	return fmt.Sprintf(`
 **Orchard %s**

Build, query and edit persistent AVL trees from the terminal. Every edit
makes a new version of the tree; earlier versions stay intact and share
every branch the edit did not touch.

Built with Go %s

# 1. Commands
* **load FILE...** build a tree from key files (one key per line, # for comments)
* **query KEY...** check keys against a tree loaded with --input
* **range START END** list keys between two bounds
* **print** draw the tree with balance factors and subtree sizes
* **script [FILE]** run session commands from a file or stdin
* **explore** interactive session with a live diagram
* **stress** randomized insert/delete run with invariant checks

# 2. Session commands
* insert KEY... / delete KEY...
* contains KEY, rank KEY, at INDEX
* range START END, min, max, size, height, list [desc]
* print, validate
* undo, redo, versions

Quote keys that contain spaces: insert "New York"

# 3. Orders
%s
Keys equal under the chosen order are the same key: inserting one
replaces the other.

# 4. Explore keys
* **enter** run the command
* **tab** switch focus between input and versions
* **ctrl+y** copy the keys of the current version
* **f1** toggle this guide

# License
Licensed under the Apache License, Version 2.0
`, versioninfo.Short(), runtime.Version(), orders.String())
}

func getHelpMessage() string {
	result := markdown.Render(usageMarkdown(), 80, 3)
	return string(result)
}
