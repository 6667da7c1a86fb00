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

	"github.com/matrixorigin/mopattern/pkg/container/types"
	"github.com/matrixorigin/mopattern/pkg/vectorize/regular"
)

// REGEXP_REPLACE(src, pattern[, replacement])
func newRegexpReplace(ctx context.Context, children []Expression, o Options) (*base, error) {
	if err := checkArity(ctx, REGEXP_REPLACE, children, 2, 3); err != nil {
		return nil, err
	}
	b := &base{}
	b.bind(REGEXP_REPLACE, children, o)
	b.hasReplacement = len(children) == 3
	if b.hasReplacement {
		if lit, ok := children[2].(*Literal); ok && lit.IsNull() {
			b.hasReplacement = false
		}
	}
	b.eval = b.regexpReplace
	return b, nil
}

// regexpReplace deletes every match when there is no replacement.
func (b *base) regexpReplace(ctx context.Context, row Row, src types.Span, p regular.Pattern) (types.Span, bool, error) {
	var repl types.Span
	if b.hasReplacement {
		v, ok, err := evalAscending(ctx, b.children[2], row)
		if err != nil || !ok {
			return types.Span{}, false, err
		}
		repl = v
	}
	out, err := p.ReplaceAll(src, repl)
	if err != nil {
		return types.Span{}, false, err
	}
	return out, true, nil
}
