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
	"context"

	"github.com/matrixorigin/mopattern/pkg/common/moerr"
	"github.com/matrixorigin/mopattern/pkg/container/types"
	"github.com/matrixorigin/mopattern/pkg/encoding"
	v2 "github.com/matrixorigin/mopattern/pkg/util/metric/v2"
	"github.com/matrixorigin/mopattern/pkg/vectorize/regular"
)

const (
	REGEXP_REPLACE = "regexp_replace"
	REGEXP_SUBSTR  = "regexp_substr"
	REGEXP_INSTR   = "regexp_instr"
	REGEXP_SPLIT   = "regexp_split"
	REGEXP_LIKE    = "regexp_like"
	LIKE           = "like"
	ILIKE          = "ilike"
)

// Function is a pattern function bound to its argument expressions.
type Function interface {
	Expression
	Name() string
	Children() []Expression
	// Rehydrate compiles the literal pattern of a decoded function. It
	// must run before the first evaluation and is a no-op afterwards.
	Rehydrate(ctx context.Context) error
	MarshalBinary() ([]byte, error)
}

// header holds the plain fields of a function, the only state carried
// across serialization.
type header struct {
	name            string
	engine          regular.Engine
	pattern         patternState
	dynamic         bool
	hasReplacement  bool
	escape          rune
	caseInsensitive bool
	resultOrder     types.SortOrder
	strictUTF8      bool
}

// evalFunc computes one row given the ascending source and the pattern.
type evalFunc func(ctx context.Context, row Row, src types.Span, p regular.Pattern) (types.Span, bool, error)

type base struct {
	header
	children  []Expression
	opts      Options
	translate func(string) (string, error)
	eval      evalFunc
}

func (b *base) Name() string {
	return b.name
}

func (b *base) Children() []Expression {
	return b.children
}

func (b *base) SortOrder() types.SortOrder {
	return b.resultOrder
}

func (b *base) Rehydrate(ctx context.Context) error {
	state, err := b.pattern.compile(ctx, b.translate, &b.opts)
	if err != nil {
		return err
	}
	b.pattern = state
	return nil
}

func (b *base) MarshalBinary() ([]byte, error) {
	return marshalHeader(&b.header), nil
}

func (b *base) Evaluate(ctx context.Context, row Row) (types.Span, bool, error) {
	v, ok, err := b.evaluate(ctx, row)
	switch {
	case err != nil && moerr.IsNotEvaluable(err):
		v2.FunctionEvalCounter(b.name, "null").Inc()
		return types.Span{}, false, nil
	case err != nil:
		v2.FunctionEvalCounter(b.name, "error").Inc()
		return types.Span{}, false, err
	case !ok:
		v2.FunctionEvalCounter(b.name, "null").Inc()
		return types.Span{}, false, nil
	}
	v2.FunctionEvalCounter(b.name, "ok").Inc()
	return encoding.Coerce(v, types.Ascending, b.resultOrder), true, nil
}

func (b *base) evaluate(ctx context.Context, row Row) (types.Span, bool, error) {
	p, ok, err := b.resolvePattern(ctx, row)
	if err != nil || !ok {
		return types.Span{}, false, err
	}
	src, ok, err := evalAscending(ctx, b.children[0], row)
	if err != nil || !ok {
		return types.Span{}, false, err
	}
	return b.eval(ctx, row, src, p)
}

// resolvePattern returns the literal pattern, or compiles the pattern
// argument of row when it is not a literal.
func (b *base) resolvePattern(ctx context.Context, row Row) (regular.Pattern, bool, error) {
	if !b.dynamic {
		switch b.pattern.kind {
		case patternAbsent:
			return nil, false, nil
		case patternUncompiled:
			return nil, false, moerr.NewInvalidState(ctx, "pattern of %s is not compiled", b.name)
		}
		return b.pattern.pattern, true, nil
	}
	text, ok, err := evalAscending(ctx, b.children[1], row)
	if err != nil || !ok {
		return nil, false, err
	}
	expr, err := b.translate(text.String())
	if err != nil {
		return nil, false, err
	}
	p, err := b.opts.Cache.resolve(ctx, expr, &b.opts)
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}

// bind fills the header fields shared by every function from the
// children and the options. The pattern is always the second child.
func (b *base) bind(name string, children []Expression, o Options) {
	b.name = name
	b.children = children
	b.opts = o
	b.engine = o.Engine
	b.resultOrder = o.ResultOrder
	b.strictUTF8 = o.StrictUTF8
	if b.translate == nil {
		b.translate = identity
	}
	lit, ok := children[1].(*Literal)
	switch {
	case !ok:
		b.dynamic = true
	case lit.IsNull():
		b.pattern = absentPattern()
	default:
		b.pattern = uncompiledPattern(lit.Value().String())
	}
}

// restore replaces the header with a decoded one, keeping the options
// in line with it.
func (b *base) restore(ctx context.Context, h *header) error {
	if h.hasReplacement && len(b.children) < 3 {
		return moerr.NewInvalidInput(ctx, "%s carries a replacement without its argument", h.name)
	}
	b.header = *h
	b.opts.Engine = h.engine
	b.opts.ResultOrder = h.resultOrder
	b.opts.StrictUTF8 = h.strictUTF8
	return nil
}

func checkArity(ctx context.Context, name string, children []Expression, lo, hi int) error {
	if len(children) < lo || len(children) > hi {
		return moerr.NewInvalidArg(ctx, name+" argument count", len(children))
	}
	for i, c := range children {
		if c == nil {
			return moerr.NewInvalidArg(ctx, name+" argument", i)
		}
	}
	return nil
}

func buildOptions(opts []Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type constructor func(ctx context.Context, children []Expression, o Options) (*base, error)

var constructors = map[string]constructor{
	REGEXP_REPLACE: newRegexpReplace,
	REGEXP_SUBSTR:  newRegexpSubstr,
	REGEXP_INSTR:   newRegexpInstr,
	REGEXP_SPLIT:   newRegexpSplit,
	REGEXP_LIKE:    newRegexpLike,
	LIKE:           newLike,
	ILIKE:          newILike,
}

// NewFunction builds the function name over children and compiles its
// literal pattern.
func NewFunction(ctx context.Context, name string, children []Expression, opts ...Option) (Function, error) {
	build, ok := constructors[name]
	if !ok {
		return nil, moerr.NewNotSupported(ctx, "function %s", name)
	}
	b, err := build(ctx, children, buildOptions(opts))
	if err != nil {
		return nil, err
	}
	if err = b.Rehydrate(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

// DecodeFunction rebuilds a function from MarshalBinary output and its
// children, then compiles the pattern. Options other than the cache and
// the array limits are taken from data.
func DecodeFunction(ctx context.Context, data []byte, children []Expression, opts ...Option) (Function, error) {
	h, err := unmarshalHeader(ctx, data)
	if err != nil {
		return nil, err
	}
	b, err := decodeFunction(ctx, h, children, opts...)
	if err != nil {
		return nil, err
	}
	if err = b.Rehydrate(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

// decodeFunction returns the function of h in the uncompiled state.
func decodeFunction(ctx context.Context, h *header, children []Expression, opts ...Option) (*base, error) {
	build, ok := constructors[h.name]
	if !ok {
		return nil, moerr.NewInvalidInput(ctx, "unknown function %s", h.name)
	}
	o := buildOptions(opts)
	o.Engine = h.engine
	o.ResultOrder = h.resultOrder
	o.StrictUTF8 = h.strictUTF8
	b, err := build(ctx, children, o)
	if err != nil {
		return nil, err
	}
	if err = b.restore(ctx, h); err != nil {
		return nil, err
	}
	return b, nil
}

func NewRegexpReplace(ctx context.Context, children []Expression, opts ...Option) (Function, error) {
	return NewFunction(ctx, REGEXP_REPLACE, children, opts...)
}

func NewRegexpSubstr(ctx context.Context, children []Expression, opts ...Option) (Function, error) {
	return NewFunction(ctx, REGEXP_SUBSTR, children, opts...)
}

func NewRegexpInstr(ctx context.Context, children []Expression, opts ...Option) (Function, error) {
	return NewFunction(ctx, REGEXP_INSTR, children, opts...)
}

func NewRegexpSplit(ctx context.Context, children []Expression, opts ...Option) (Function, error) {
	return NewFunction(ctx, REGEXP_SPLIT, children, opts...)
}

func NewRegexpLike(ctx context.Context, children []Expression, opts ...Option) (Function, error) {
	return NewFunction(ctx, REGEXP_LIKE, children, opts...)
}

func NewLike(ctx context.Context, children []Expression, opts ...Option) (Function, error) {
	return NewFunction(ctx, LIKE, children, opts...)
}

func NewILike(ctx context.Context, children []Expression, opts ...Option) (Function, error) {
	return NewFunction(ctx, ILIKE, children, opts...)
}
