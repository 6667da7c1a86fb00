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
	"github.com/matrixorigin/mopattern/pkg/vectorize/regular"
)

// REGEXP_INSTR(src, pattern[, position[, occurrence[, return_option]]])
func newRegexpInstr(ctx context.Context, children []Expression, o Options) (*base, error) {
	if err := checkArity(ctx, REGEXP_INSTR, children, 2, 5); err != nil {
		return nil, err
	}
	b := &base{}
	b.bind(REGEXP_INSTR, children, o)
	b.eval = b.regexpInstr
	return b, nil
}

// regexpInstr returns the 1-based position of the match, 0 when there is
// none. return_option 1 asks for the position following the match.
func (b *base) regexpInstr(ctx context.Context, row Row, src types.Span, p regular.Pattern) (types.Span, bool, error) {
	pos, ok, err := b.intArg(ctx, row, 2, 1)
	if err != nil || !ok {
		return types.Span{}, false, err
	}
	occurrence, ok, err := b.intArg(ctx, row, 3, 1)
	if err != nil || !ok {
		return types.Span{}, false, err
	}
	option, ok, err := b.intArg(ctx, row, 4, 0)
	if err != nil || !ok {
		return types.Span{}, false, err
	}
	if pos < 1 || occurrence < 1 || (option != 0 && option != 1) {
		return types.Span{}, false, moerr.NewInvalidInput(ctx, "regexp_instr have invalid input")
	}
	idx, found, err := p.Instr(src, int(pos-1), int(occurrence), option == 1)
	if err != nil {
		return types.Span{}, false, err
	}
	if !found {
		return types.SpanOf(types.EncodeInt64(0)), true, nil
	}
	return types.SpanOf(types.EncodeInt64(int64(idx) + 1)), true, nil
}

// intArg evaluates child i as an int64, def when the child is missing.
func (b *base) intArg(ctx context.Context, row Row, i int, def int64) (int64, bool, error) {
	if len(b.children) <= i {
		return def, true, nil
	}
	return evalInt64(ctx, b.children[i], row)
}
