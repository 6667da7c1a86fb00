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
	"github.com/matrixorigin/mopattern/pkg/common/moerr"
	"github.com/matrixorigin/mopattern/pkg/container/array"
	"github.com/matrixorigin/mopattern/pkg/container/types"
)

// Split cuts src at every match and serializes the fields with the array
// builder. A match starting at the cursor yields an empty field, and a
// match ending at the end of src yields a trailing empty field, so
//
//	split("12ONE34TWO56THREE78", "[0-9]+") = ["", "ONE", "TWO", "THREE", ""]
//
// Any refused element fails the whole split with ErrCapacityExceeded.
func (p *pattern) Split(src types.Span) ([]byte, error) {
	b := array.NewBuilder(p.limits)
	buf, cur, end := src.Buffer(), src.Offset(), src.End()
	for _, r := range p.FindRegions(src) {
		if !b.Append(buf, cur, r.Begin-cur) {
			return nil, moerr.NewCapacityExceededNoCtx("split field %d", b.Len())
		}
		cur = r.End
		if cur == end {
			break
		}
	}
	if !b.Append(buf, cur, end-cur) {
		return nil, moerr.NewCapacityExceededNoCtx("split field %d", b.Len())
	}
	return b.Finish()
}
