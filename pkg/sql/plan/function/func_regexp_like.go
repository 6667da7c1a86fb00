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
	"unicode/utf8"

	"github.com/matrixorigin/mopattern/pkg/common/moerr"
	"github.com/matrixorigin/mopattern/pkg/container/types"
	"github.com/matrixorigin/mopattern/pkg/vectorize/regular"
)

// REGEXP_LIKE(src, pattern)
func newRegexpLike(ctx context.Context, children []Expression, o Options) (*base, error) {
	if err := checkArity(ctx, REGEXP_LIKE, children, 2, 2); err != nil {
		return nil, err
	}
	b := &base{}
	b.bind(REGEXP_LIKE, children, o)
	b.eval = matches
	return b, nil
}

// LIKE(src, pattern[, escape])
func newLike(ctx context.Context, children []Expression, o Options) (*base, error) {
	return newLikeFunction(ctx, LIKE, children, o, false)
}

// ILIKE(src, pattern[, escape])
func newILike(ctx context.Context, children []Expression, o Options) (*base, error) {
	return newLikeFunction(ctx, ILIKE, children, o, true)
}

func newLikeFunction(ctx context.Context, name string, children []Expression, o Options, caseInsensitive bool) (*base, error) {
	if err := checkArity(ctx, name, children, 2, 3); err != nil {
		return nil, err
	}
	escape, err := likeEscape(ctx, children)
	if err != nil {
		return nil, err
	}
	b := &base{}
	b.translate = func(text string) (string, error) {
		return regular.LikeToRegexp(text, b.escape, b.caseInsensitive)
	}
	b.bind(name, children, o)
	b.escape = escape
	b.caseInsensitive = caseInsensitive
	b.eval = matches
	return b, nil
}

// likeEscape reads the escape literal. A null escape keeps the default
// and an empty one disables escaping.
func likeEscape(ctx context.Context, children []Expression) (rune, error) {
	if len(children) < 3 {
		return regular.DefaultLikeEscape, nil
	}
	lit, ok := children[2].(*Literal)
	if !ok {
		return 0, moerr.NewInvalidArg(ctx, "like escape", "not a constant")
	}
	if lit.IsNull() {
		return regular.DefaultLikeEscape, nil
	}
	v := lit.Value().Bytes()
	if len(v) == 0 {
		return 0, nil
	}
	r, size := utf8.DecodeRune(v)
	if r == utf8.RuneError || size != len(v) {
		return 0, moerr.NewInvalidArg(ctx, "like escape", string(v))
	}
	return r, nil
}

func matches(_ context.Context, _ Row, src types.Span, p regular.Pattern) (types.Span, bool, error) {
	if p.Matches(src) {
		return types.SpanOf(types.TrueBytes), true, nil
	}
	return types.SpanOf(types.FalseBytes), true, nil
}
