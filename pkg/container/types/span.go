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

package types

import (
	"bytes"
	"fmt"

	"github.com/matrixorigin/mopattern/pkg/common/moerr"
)

// Span is a read-only view [off, off+n) of buf. A Span never owns its
// buffer, never mutates it and is rebound only by building a new value.
type Span struct {
	buf []byte
	off int
	n   int
}

// NewSpan returns the view of n bytes of buf starting at off.
func NewSpan(buf []byte, off, n int) (Span, error) {
	if off < 0 || n < 0 || off+n > len(buf) {
		return Span{}, moerr.NewInvalidArgNoCtx("span", fmt.Sprintf("[%d, %d) of %d bytes", off, off+n, len(buf)))
	}
	return Span{buf: buf, off: off, n: n}, nil
}

// SpanOf returns the view of the whole buf.
func SpanOf(buf []byte) Span {
	return Span{buf: buf, n: len(buf)}
}

// StringSpan returns a span over a copy of s.
func StringSpan(s string) Span {
	return SpanOf([]byte(s))
}

func (s Span) Buffer() []byte {
	return s.buf
}

func (s Span) Offset() int {
	return s.off
}

func (s Span) Len() int {
	return s.n
}

// End is the absolute offset one past the last byte.
func (s Span) End() int {
	return s.off + s.n
}

func (s Span) IsEmpty() bool {
	return s.n == 0
}

// Bytes returns the viewed bytes without copying. Callers must not write
// into the result.
func (s Span) Bytes() []byte {
	if s.buf == nil {
		return nil
	}
	return s.buf[s.off:s.End():s.End()]
}

// Slice returns the sub view [begin, end) expressed in absolute offsets
// of the underlying buffer. It panics when the range leaves the span.
func (s Span) Slice(begin, end int) Span {
	if begin < s.off || end > s.End() || begin > end {
		panic(moerr.NewInternalErrorNoCtx("slice [%d, %d) out of span [%d, %d)", begin, end, s.off, s.End()))
	}
	return Span{buf: s.buf, off: begin, n: end - begin}
}

// Clone returns a span over a private copy of the viewed bytes.
func (s Span) Clone() Span {
	data := make([]byte, s.n)
	copy(data, s.Bytes())
	return SpanOf(data)
}

// Equal compares the viewed bytes.
func (s Span) Equal(o Span) bool {
	return bytes.Equal(s.Bytes(), o.Bytes())
}

func (s Span) String() string {
	return string(s.Bytes())
}
