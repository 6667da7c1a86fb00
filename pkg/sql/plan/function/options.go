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
	"github.com/matrixorigin/mopattern/pkg/container/array"
	"github.com/matrixorigin/mopattern/pkg/container/types"
	"github.com/matrixorigin/mopattern/pkg/vectorize/regular"
)

// Options of a pattern function.
type Options struct {
	Engine      regular.Engine
	Limits      array.Limits
	ResultOrder types.SortOrder
	// Cache serves patterns that are not literals. Without a cache such
	// patterns are compiled for every row.
	Cache *PatternCache
	// StrictUTF8 fails substring offsets crossing bytes that cannot start
	// a character instead of counting them as one character.
	StrictUTF8 bool
}

type Option func(*Options)

func defaultOptions() Options {
	return Options{
		Engine:      regular.EngineStd,
		Limits:      array.DefaultLimits(),
		ResultOrder: types.Ascending,
	}
}

func WithEngine(e regular.Engine) Option {
	return func(o *Options) {
		o.Engine = e
	}
}

func WithArrayLimits(limits array.Limits) Option {
	return func(o *Options) {
		o.Limits = limits
	}
}

// WithResultOrder encodes the result in order, ascending by default.
func WithResultOrder(order types.SortOrder) Option {
	return func(o *Options) {
		o.ResultOrder = order
	}
}

func WithPatternCache(c *PatternCache) Option {
	return func(o *Options) {
		o.Cache = c
	}
}

func WithStrictUTF8(strict bool) Option {
	return func(o *Options) {
		o.StrictUTF8 = strict
	}
}

func (o *Options) compileOptions() []regular.Option {
	return []regular.Option{regular.WithEngine(o.Engine), regular.WithArrayLimits(o.Limits)}
}
