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
	"github.com/matrixorigin/mopattern/pkg/vectorize/lengthutf8"
	"github.com/matrixorigin/mopattern/pkg/vectorize/regular"
)

// REGEXP_SUBSTR(src, pattern[, position])
func newRegexpSubstr(ctx context.Context, children []Expression, o Options) (*base, error) {
	if err := checkArity(ctx, REGEXP_SUBSTR, children, 2, 3); err != nil {
		return nil, err
	}
	b := &base{}
	b.bind(REGEXP_SUBSTR, children, o)
	b.eval = b.regexpSubstr
	return b, nil
}

// regexpSubstr returns an empty value when nothing matches.
func (b *base) regexpSubstr(ctx context.Context, row Row, src types.Span, p regular.Pattern) (types.Span, bool, error) {
	idx, ok, err := b.charIndex(ctx, row, src, 2)
	if err != nil || !ok {
		return types.Span{}, false, err
	}
	if b.strictUTF8 {
		if _, ok, err = lengthutf8.CharToByteOffsetStrict(ctx, src, types.Ascending, idx); err != nil || !ok {
			return types.Span{}, false, err
		}
	}
	v, found, err := p.Substr(src, idx)
	if err != nil {
		return types.Span{}, false, err
	}
	if !found {
		return types.Span{}, true, nil
	}
	return v, true, nil
}

// charIndex resolves the 1-based SQL position held by child i into a
// character index of src. 0 means the first character and a negative
// position counts from the end. A missing child means the first
// character.
func (b *base) charIndex(ctx context.Context, row Row, src types.Span, i int) (int, bool, error) {
	if len(b.children) <= i {
		return 0, true, nil
	}
	pos, ok, err := evalInt64(ctx, b.children[i], row)
	if err != nil || !ok {
		return 0, false, err
	}
	switch {
	case pos > 0:
		return int(pos - 1), true, nil
	case pos == 0:
		return 0, true, nil
	}
	idx := int64(lengthutf8.StrLength(src, types.Ascending)) + pos
	if idx < 0 {
		return 0, false, nil
	}
	return int(idx), true, nil
}
