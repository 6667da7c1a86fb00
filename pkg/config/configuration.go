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

package config

import (
	"context"
	"math"
	"runtime"

	"github.com/BurntSushi/toml"

	"github.com/matrixorigin/mopattern/pkg/common/moerr"
	"github.com/matrixorigin/mopattern/pkg/container/array"
	"github.com/matrixorigin/mopattern/pkg/logutil"
	"github.com/matrixorigin/mopattern/pkg/vectorize/regular"
)

var (
	// defaultEngine is the pattern back-end used when none is configured.
	defaultEngine = string(regular.EngineStd)

	// defaultPatternCacheSize bounds the cache of patterns compiled at evaluation time.
	defaultPatternCacheSize = 128

	// defaultPartitionRows is the row count of one batch partition.
	defaultPartitionRows = 1024

	// defaultWorkers is the size of the batch evaluation pool.
	defaultWorkers = runtime.NumCPU()
)

// RegexpParameters of the pattern engine
type RegexpParameters struct {
	//default is 'std'. one of std, coregex, re2.
	Engine string `toml:"engine"`

	//default is 128. the number of non-literal patterns kept compiled.
	PatternCacheSize int `toml:"patternCacheSize"`
}

// ArrayParameters bounds the element builder used by split.
type ArrayParameters struct {
	//default is 1 << 20. the maximum number of elements of one array.
	MaxElements int `toml:"maxElements"`

	//default is 10485760. the maximum size of one element.
	MaxElementSize int `toml:"maxElementSize"`

	//default is 1 << 30. the maximum size of the data section.
	MaxTotalSize int `toml:"maxTotalSize"`
}

// BatchParameters of the batch evaluator
type BatchParameters struct {
	//default is 1024. the rows evaluated by one task.
	PartitionRows int `toml:"partitionRows"`

	//default is the number of cpus. the size of the worker pool.
	Workers int `toml:"workers"`
}

// Parameters is the whole configuration of the runtime.
type Parameters struct {
	Regexp RegexpParameters  `toml:"regexp"`
	Array  ArrayParameters   `toml:"array"`
	Batch  BatchParameters   `toml:"batch"`
	Log    logutil.LogConfig `toml:"log"`
}

// NewParameters returns the parameters with every default filled.
func NewParameters() *Parameters {
	p := &Parameters{}
	p.SetDefaultValues()
	return p
}

// SetDefaultValues fills the zero fields.
func (p *Parameters) SetDefaultValues() {
	if p.Regexp.Engine == "" {
		p.Regexp.Engine = defaultEngine
	}
	if p.Regexp.PatternCacheSize == 0 {
		p.Regexp.PatternCacheSize = defaultPatternCacheSize
	}

	limits := array.DefaultLimits()
	if p.Array.MaxElements == 0 {
		p.Array.MaxElements = limits.MaxElements
	}
	if p.Array.MaxElementSize == 0 {
		p.Array.MaxElementSize = limits.MaxElementSize
	}
	if p.Array.MaxTotalSize == 0 {
		p.Array.MaxTotalSize = limits.MaxTotalSize
	}

	if p.Batch.PartitionRows == 0 {
		p.Batch.PartitionRows = defaultPartitionRows
	}
	if p.Batch.Workers == 0 {
		p.Batch.Workers = defaultWorkers
	}

	if p.Log.Level == "" {
		p.Log.Level = "info"
	}
	if p.Log.Format == "" {
		p.Log.Format = "console"
	}
	if p.Log.MaxSize == 0 {
		p.Log.MaxSize = 512
	}
}

// Validate checks the parameters after the defaults were applied.
func (p *Parameters) Validate(ctx context.Context) error {
	if _, err := regular.ParseEngine(p.Regexp.Engine); err != nil {
		return moerr.NewBadConfig(ctx, "regexp.engine %q", p.Regexp.Engine)
	}
	if p.Regexp.PatternCacheSize < 0 {
		return moerr.NewBadConfig(ctx, "regexp.patternCacheSize %d", p.Regexp.PatternCacheSize)
	}
	if p.Array.MaxElements <= 0 || p.Array.MaxElements > math.MaxUint32 {
		return moerr.NewBadConfig(ctx, "array.maxElements %d", p.Array.MaxElements)
	}
	if p.Array.MaxElementSize <= 0 {
		return moerr.NewBadConfig(ctx, "array.maxElementSize %d", p.Array.MaxElementSize)
	}
	if p.Array.MaxTotalSize <= 0 || p.Array.MaxTotalSize > math.MaxUint32 {
		return moerr.NewBadConfig(ctx, "array.maxTotalSize %d", p.Array.MaxTotalSize)
	}
	if p.Batch.PartitionRows <= 0 {
		return moerr.NewBadConfig(ctx, "batch.partitionRows %d", p.Batch.PartitionRows)
	}
	if p.Batch.Workers <= 0 {
		return moerr.NewBadConfig(ctx, "batch.workers %d", p.Batch.Workers)
	}
	if p.Log.Format != "console" && p.Log.Format != "json" {
		return moerr.NewBadConfig(ctx, "log.format %q", p.Log.Format)
	}
	return nil
}

// EngineName returns the configured back-end, it must be called after Validate.
func (p *Parameters) EngineName() regular.Engine {
	e, _ := regular.ParseEngine(p.Regexp.Engine)
	return e
}

// ArrayLimits converts the array section to builder limits.
func (p *Parameters) ArrayLimits() array.Limits {
	return array.Limits{
		MaxElements:    p.Array.MaxElements,
		MaxElementSize: p.Array.MaxElementSize,
		MaxTotalSize:   p.Array.MaxTotalSize,
	}
}

// LoadConfigFromFile decodes the toml file into p, fills the defaults and
// validates the result.
func LoadConfigFromFile(ctx context.Context, path string, p *Parameters) error {
	md, err := toml.DecodeFile(path, p)
	if err != nil {
		return moerr.NewBadConfig(ctx, "decode %s: %v", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		logutil.Warnf("unknown configuration keys in %s: %v", path, undecoded)
	}
	p.SetDefaultValues()
	return p.Validate(ctx)
}
