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

// Instr returns the character index, relative to src, where the
// occurrence-th match after charOffset begins, or ends when returnEnd is
// set. Both offsets and the result are 0 based.
func (p *pattern) Instr(src types.Span, charOffset, occurrence int, returnEnd bool) (int, bool, error) {
	if occurrence < 1 {
		return 0, false, moerr.NewInvalidArgNoCtx("regexp_instr occurrence", occurrence)
	}
	from, ok := lengthutf8.CharToByteOffset(src, types.Ascending, charOffset)
	if !ok {
		return 0, false, moerr.NewNotEvaluableNoCtx("character offset %d of a %d byte value", charOffset, src.Len())
	}
	regions := p.FindRegions(src.Slice(from, src.End()))
	if len(regions) < occurrence {
		return 0, false, nil
	}
	r := regions[occurrence-1]
	pos := r.Begin
	if returnEnd {
		pos = r.End
	}
	idx, ok := lengthutf8.ByteToCharOffset(src, types.Ascending, pos)
	if !ok {
		return 0, false, moerr.NewInternalErrorNoCtx("match boundary %d inside a character", pos)
	}
	return idx, true, nil
}
