// Copyright 2021 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package function

import (
	"container/list"
	"context"
	"sync"

	"github.com/matrixorigin/mopattern/pkg/container/array"
	"github.com/matrixorigin/mopattern/pkg/logutil/logutil2"
	v2 "github.com/matrixorigin/mopattern/pkg/util/metric/v2"
	"github.com/matrixorigin/mopattern/pkg/vectorize/regular"
)

// PatternCache keeps the most recently used patterns compiled from row
// values. It is safe for concurrent use. Patterns are keyed by engine,
// array limits and expression.
type PatternCache struct {
	sync.Mutex
	capacity int
	lru      *list.List
	entries  map[cacheKey]*list.Element
}

type cacheKey struct {
	engine regular.Engine
	limits array.Limits
	expr   string
}

type cacheEntry struct {
	key     cacheKey
	pattern regular.Pattern
}

// NewPatternCache returns a cache holding at most capacity patterns. A
// non-positive capacity disables caching.
func NewPatternCache(capacity int) *PatternCache {
	return &PatternCache{
		capacity: capacity,
		lru:      list.New(),
		entries:  make(map[cacheKey]*list.Element),
	}
}

func (c *PatternCache) Len() int {
	c.Lock()
	defer c.Unlock()
	return c.lru.Len()
}

// Get returns the compiled expr, compiling it on a miss. Compilation
// happens outside the lock, two concurrent misses may both compile.
func (c *PatternCache) Get(ctx context.Context, expr string, o *Options) (regular.Pattern, error) {
	key := cacheKey{engine: o.Engine, limits: o.Limits, expr: expr}
	c.Lock()
	if e, ok := c.entries[key]; ok {
		c.lru.MoveToFront(e)
		c.Unlock()
		v2.PatternCacheHitCounter.Inc()
		return e.Value.(*cacheEntry).pattern, nil
	}
	c.Unlock()
	v2.PatternCacheMissCounter.Inc()

	p, err := compilePattern(ctx, expr, o)
	if err != nil {
		return nil, err
	}
	if c.capacity <= 0 {
		return p, nil
	}

	c.Lock()
	defer c.Unlock()
	if e, ok := c.entries[key]; ok {
		c.lru.MoveToFront(e)
		return e.Value.(*cacheEntry).pattern, nil
	}
	c.entries[key] = c.lru.PushFront(&cacheEntry{key: key, pattern: p})
	for c.lru.Len() > c.capacity {
		oldest := c.lru.Back()
		entry := c.lru.Remove(oldest).(*cacheEntry)
		delete(c.entries, entry.key)
		logutil2.Debugf(ctx, "pattern cache evicts %q", entry.key.expr)
	}
	return p, nil
}

// resolve returns the pattern for expr, compiling it directly when c is nil.
func (c *PatternCache) resolve(ctx context.Context, expr string, o *Options) (regular.Pattern, error) {
	if c == nil {
		return compilePattern(ctx, expr, o)
	}
	return c.Get(ctx, expr, o)
}
