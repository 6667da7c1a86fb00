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

// Package array builds and reads the serialized form of a sequence of
// variable-length byte elements.
//
// Layout, little-endian:
//
//	byte 0       format version
//	bytes 1..4   uint32 element count N
//	N+1 uint32   offsets into the data section, offset[0] = 0 and
//	             offset[N] = len(data)
//	data         concatenated element bytes
package array

import (
	"encoding/binary"
	"math"

	"github.com/matrixorigin/mopattern/pkg/common/moerr"
	"github.com/matrixorigin/mopattern/pkg/container/types"
)

const (
	Version byte = 1

	// MaxStringSize is the largest element accepted by default.
	MaxStringSize = 10485760

	headerSize = 5
	offsetSize = 4
)

// Limits bounds what a Builder accepts.
type Limits struct {
	MaxElements    int
	MaxElementSize int
	MaxTotalSize   int
}

func DefaultLimits() Limits {
	return Limits{
		MaxElements:    1 << 20,
		MaxElementSize: MaxStringSize,
		MaxTotalSize:   1 << 30,
	}
}

// Builder accumulates elements. Once an Append is refused the builder is
// unusable and every later call fails.
type Builder struct {
	limits   Limits
	offsets  []uint32
	data     []byte
	broken   bool
	finished bool
}

// NewBuilder returns an empty builder. Offsets are 32-bit, so MaxTotalSize
// and MaxElements are capped at math.MaxUint32.
func NewBuilder(limits Limits) *Builder {
	if limits.MaxTotalSize > math.MaxUint32 {
		limits.MaxTotalSize = math.MaxUint32
	}
	if limits.MaxElements > math.MaxUint32 {
		limits.MaxElements = math.MaxUint32
	}
	return &Builder{
		limits:  limits,
		offsets: []uint32{0},
	}
}

// Len returns the number of appended elements.
func (b *Builder) Len() int {
	return len(b.offsets) - 1
}

// Append copies buf[off:off+n] as the next element. It returns false when
// the bounds are invalid or a limit would be exceeded.
func (b *Builder) Append(buf []byte, off, n int) bool {
	if b.broken || b.finished {
		b.broken = true
		return false
	}
	if off < 0 || n < 0 || off+n > len(buf) ||
		b.Len()+1 > b.limits.MaxElements ||
		n > b.limits.MaxElementSize ||
		len(b.data)+n > b.limits.MaxTotalSize {
		b.broken = true
		return false
	}
	b.data = append(b.data, buf[off:off+n]...)
	b.offsets = append(b.offsets, uint32(len(b.data)))
	return true
}

// AppendSpan appends the bytes viewed by s.
func (b *Builder) AppendSpan(s types.Span) bool {
	return b.Append(s.Buffer(), s.Offset(), s.Len())
}

// Finish serializes the elements. It may be called once.
func (b *Builder) Finish() ([]byte, error) {
	if b.finished {
		return nil, moerr.NewInvalidStateNoCtx("array builder already finished")
	}
	b.finished = true
	if b.broken {
		return nil, moerr.NewCapacityExceededNoCtx("array builder refused an element")
	}
	n := b.Len()
	out := make([]byte, headerSize+len(b.offsets)*offsetSize+len(b.data))
	out[0] = Version
	binary.LittleEndian.PutUint32(out[1:], uint32(n))
	pos := headerSize
	for _, o := range b.offsets {
		binary.LittleEndian.PutUint32(out[pos:], o)
		pos += offsetSize
	}
	copy(out[pos:], b.data)
	return out, nil
}

// Array is a decoded view over a serialized element sequence.
type Array struct {
	buf     []byte
	n       int
	dataOff int
}

// Decode validates buf and returns a zero-copy view over it.
func Decode(buf []byte) (*Array, error) {
	if len(buf) < headerSize+offsetSize {
		return nil, moerr.NewInvalidInputNoCtx("array of %d bytes is too short", len(buf))
	}
	if buf[0] != Version {
		return nil, moerr.NewInvalidInputNoCtx("array version %d", buf[0])
	}
	n := int(binary.LittleEndian.Uint32(buf[1:]))
	tableEnd := headerSize + (n+1)*offsetSize
	if n < 0 || tableEnd < 0 || tableEnd > len(buf) {
		return nil, moerr.NewInvalidInputNoCtx("array offset table of %d elements exceeds %d bytes", n, len(buf))
	}
	a := &Array{buf: buf, n: n, dataOff: tableEnd}
	dataLen := len(buf) - tableEnd
	prev := 0
	for i := 0; i <= n; i++ {
		o := a.offset(i)
		if (i == 0 && o != 0) || o < prev || o > dataLen {
			return nil, moerr.NewInvalidInputNoCtx("array offset %d of element %d", o, i)
		}
		prev = o
	}
	if prev != dataLen {
		return nil, moerr.NewInvalidInputNoCtx("array data section of %d bytes, last offset %d", dataLen, prev)
	}
	return a, nil
}

func (a *Array) offset(i int) int {
	return int(binary.LittleEndian.Uint32(a.buf[headerSize+i*offsetSize:]))
}

func (a *Array) Len() int {
	return a.n
}

// Get returns the i-th element as a span over the serialized buffer.
func (a *Array) Get(i int) types.Span {
	begin, end := a.offset(i), a.offset(i+1)
	return types.SpanOf(a.buf).Slice(a.dataOff+begin, a.dataOff+end)
}

func (a *Array) Strings() []string {
	rs := make([]string, a.n)
	for i := range rs {
		rs[i] = a.Get(i).String()
	}
	return rs
}
