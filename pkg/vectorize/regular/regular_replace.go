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
)

// ReplaceAll copies src into one new buffer with every match replaced by
// repl. Without any match src itself is returned.
func (p *pattern) ReplaceAll(src, repl types.Span) (types.Span, error) {
	regions := p.FindRegions(src)
	if len(regions) == 0 {
		return src, nil
	}

	size := src.Len()
	for _, r := range regions {
		size += repl.Len() - r.Len()
	}
	if size > p.limits.MaxTotalSize {
		return types.Span{}, moerr.NewCapacityExceededNoCtx("replaced value of %d bytes", size)
	}

	buf, with := src.Buffer(), repl.Bytes()
	out := make([]byte, size)
	cur, pos := src.Offset(), 0
	for _, r := range regions {
		pos += copy(out[pos:], buf[cur:r.Begin])
		pos += copy(out[pos:], with)
		cur = r.End
	}
	copy(out[pos:], buf[cur:src.End()])
	return types.SpanOf(out), nil
}
