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
	"github.com/matrixorigin/mopattern/pkg/container/types"
	"github.com/matrixorigin/mopattern/pkg/vectorize/lengthutf8"
)

// Substr returns a view over the first match starting at or after the
// character charOffset, 0 based. A character offset that does not resolve
// fails with ErrNotEvaluable. Without a match the result is empty and false.
func (p *pattern) Substr(src types.Span, charOffset int) (types.Span, bool, error) {
	from, ok := lengthutf8.CharToByteOffset(src, types.Ascending, charOffset)
	if !ok {
		return types.Span{}, false, moerr.NewNotEvaluableNoCtx("character offset %d of a %d byte value", charOffset, src.Len())
	}
	r, ok := p.findFrom(src, from)
	if !ok {
		return types.Span{}, false, nil
	}
	return src.Slice(r.Begin, r.End), true, nil
}
