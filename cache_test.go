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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eliottgray/orchard/avl"
)

func TestCacheRenderingAndGetRendering(t *testing.T) {
	c := NewRenderCache(30 * time.Minute)

	_, ok := GetRendering(c, 7)
	assert.False(t, ok)

	CacheRendering(c, 7, "diagram")

	got, ok := GetRendering(c, 7)
	require.True(t, ok)
	assert.Equal(t, "diagram", got)
}

func TestGetOrRenderCachesByVersion(t *testing.T) {
	c := NewRenderCache(30 * time.Minute)
	tree := avl.FromSlice([]string{"b", "a", "c"})

	v := Version{ID: 1, Tree: tree}
	first := GetOrRender(c, v)
	assert.Equal(t, tree.String(), first)

	// a cached entry wins over re-rendering
	CacheRendering(c, 1, "stale")
	assert.Equal(t, "stale", GetOrRender(c, v))

	empty := Version{ID: 2, Tree: avl.New[string]()}
	assert.Equal(t, "(empty tree)\n", GetOrRender(c, empty))
}

func TestRenderCacheExpiration(t *testing.T) {
	// Create a cache with a very short expiration time to test expiry behavior.
	c := NewRenderCache(100 * time.Millisecond)
	CacheRendering(c, 3, "short lived")

	_, ok := GetRendering(c, 3)
	require.True(t, ok)

	// Wait longer than the expiration duration.
	time.Sleep(150 * time.Millisecond)

	_, ok = GetRendering(c, 3)
	assert.False(t, ok)
}
