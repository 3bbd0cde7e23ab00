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
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	// Clean up expired renderings every 5 minutes
	renderCacheCleanup = 5 * time.Minute
)

// NewRenderCache creates a cache for tree diagrams. Versions never change,
// so an entry is only dropped when it expires.
func NewRenderCache(expiration time.Duration) *cache.Cache {
	return cache.New(expiration, renderCacheCleanup)
}

func renderKey(versionID int) string {
	return strconv.Itoa(versionID)
}

func CacheRendering(c *cache.Cache, versionID int, diagram string) {
	c.Set(renderKey(versionID), diagram, cache.DefaultExpiration)
}

func GetRendering(c *cache.Cache, versionID int) (string, bool) {
	val, ok := c.Get(renderKey(versionID))
	if !ok {
		return "", false
	}
	return val.(string), true
}

// GetOrRender returns the cached diagram of v, rendering and caching it on
// a miss.
func GetOrRender(c *cache.Cache, v Version) string {
	if diagram, ok := GetRendering(c, v.ID); ok {
		return diagram
	}
	diagram := v.Tree.String()
	if diagram == "" {
		diagram = "(empty tree)\n"
	}
	CacheRendering(c, v.ID, diagram)
	return diagram
}
