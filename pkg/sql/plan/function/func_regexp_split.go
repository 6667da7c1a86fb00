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
	v2 "github.com/matrixorigin/mopattern/pkg/util/metric/v2"
	"github.com/matrixorigin/mopattern/pkg/vectorize/regular"
)

// REGEXP_SPLIT(src, pattern)
func newRegexpSplit(ctx context.Context, children []Expression, o Options) (*base, error) {
	if err := checkArity(ctx, REGEXP_SPLIT, children, 2, 2); err != nil {
		return nil, err
	}
	b := &base{}
	b.bind(REGEXP_SPLIT, children, o)
	b.eval = b.regexpSplit
	return b, nil
}

// regexpSplit returns the encoded array of fields. Exceeding the array
// limits fails the row.
func (b *base) regexpSplit(_ context.Context, _ Row, src types.Span, p regular.Pattern) (types.Span, bool, error) {
	out, err := p.Split(src)
	if err != nil {
		if moerr.IsMoErrCode(err, moerr.ErrCapacityExceeded) {
			v2.ArrayOverflowCounter.Inc()
		}
		return types.Span{}, false, err
	}
	return types.SpanOf(out), true, nil
}
