// Copyright 2022 Matrix Origin
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

package regular

import (
	"regexp/syntax"
	"unicode/utf8"

	"github.com/matrixorigin/mopattern/pkg/common/moerr"
	"github.com/matrixorigin/mopattern/pkg/container/array"
	"github.com/matrixorigin/mopattern/pkg/container/types"
)

// Pattern is a compiled regular expression evaluated over ascending
// encoded spans. A Pattern is immutable and safe for concurrent use.
type Pattern interface {
	// String returns the source text.
	String() string
	Engine() Engine
	// Matches reports whether one match consumes the whole span.
	Matches(src types.Span) bool
	// ReplaceAll replaces every match with repl.
	ReplaceAll(src, repl types.Span) (types.Span, error)
	// Substr returns the first match at or after character charOffset.
	Substr(src types.Span, charOffset int) (types.Span, bool, error)
	// Instr returns the character index of the occurrence-th match at or
	// after charOffset, its end when returnEnd is set.
	Instr(src types.Span, charOffset, occurrence int, returnEnd bool) (int, bool, error)
	// Split returns the serialized array of the fields between matches.
	Split(src types.Span) ([]byte, error)
	// FindRegions returns the non-overlapping matches, left to right.
	FindRegions(src types.Span) []Region
}

// Region is a match as absolute half-open offsets into the source buffer.
type Region struct {
	Begin int
	End   int
}

func (r Region) Len() int {
	return r.End - r.Begin
}

type options struct {
	engine Engine
	limits array.Limits
}

type Option func(*options)

// WithEngine selects the back-end, EngineStd by default.
func WithEngine(e Engine) Option {
	return func(o *options) {
		o.engine = e
	}
}

// WithArrayLimits bounds the arrays built by Split.
func WithArrayLimits(limits array.Limits) Option {
	return func(o *options) {
		o.limits = limits
	}
}

type pattern struct {
	text   string
	engine Engine
	limits array.Limits
	search searcher
	full   searcher
}

var _ Pattern = (*pattern)(nil)

// Compile compiles text with the selected back-end. Invalid syntax fails
// with ErrInvalidPattern.
func Compile(text string, opts ...Option) (Pattern, error) {
	o := options{
		engine: EngineStd,
		limits: array.DefaultLimits(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	compile, ok := compilers[o.engine]
	if !ok {
		return nil, moerr.NewInvalidArgNoCtx("regexp engine", o.engine)
	}
	search, err := compile(text)
	if err != nil {
		return nil, moerr.NewInvalidPatternNoCtx(text, err)
	}
	// Anchor the parsed tree, not the text, so an unterminated \Q cannot
	// swallow the closing group.
	parsed, err := syntax.Parse(text, syntax.Perl)
	if err != nil {
		return nil, moerr.NewInvalidPatternNoCtx(text, err)
	}
	full, err := compile(`^(?:` + parsed.String() + `)$`)
	if err != nil {
		return nil, moerr.NewInvalidPatternNoCtx(text, err)
	}
	return &pattern{
		text:   text,
		engine: o.engine,
		limits: o.limits,
		search: search,
		full:   full,
	}, nil
}

// MustCompile is Compile panicking on error, for tests and constants.
func MustCompile(text string, opts ...Option) Pattern {
	p, err := Compile(text, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *pattern) String() string {
	return p.text
}

func (p *pattern) Engine() Engine {
	return p.engine
}

func (p *pattern) Matches(src types.Span) bool {
	return p.full.Match(src.Bytes())
}

func (p *pattern) FindRegions(src types.Span) []Region {
	b := src.Bytes()
	return normalize(b, p.search.FindAllIndex(b, -1), src.Offset())
}

// normalize turns back-end match indexes over b into ordered,
// non-overlapping regions rebased by base. An empty match touching the
// end of the previous match, or falling inside a utf8 character, is
// dropped so every back-end resumes one whole character later.
func normalize(b []byte, locs [][]int, base int) []Region {
	if len(locs) == 0 {
		return nil
	}
	regions := make([]Region, 0, len(locs))
	prevEnd := -1
	for _, loc := range locs {
		begin, end := loc[0], loc[1]
		if begin < prevEnd {
			continue
		}
		if begin == end {
			if begin == prevEnd {
				continue
			}
			if begin < len(b) && !utf8.RuneStart(b[begin]) {
				continue
			}
		}
		regions = append(regions, Region{Begin: base + begin, End: base + end})
		prevEnd = end
	}
	return regions
}

// findFrom returns the first region of src starting at or after the
// absolute offset from. The search treats from as the start of the text.
func (p *pattern) findFrom(src types.Span, from int) (Region, bool) {
	rest := src.Slice(from, src.End())
	loc := p.search.FindIndex(rest.Bytes())
	if loc == nil {
		return Region{}, false
	}
	return Region{Begin: from + loc[0], End: from + loc[1]}, true
}
