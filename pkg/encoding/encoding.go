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

// Package encoding converts byte spans between the ascending and the
// descending sort-order encodings.
package encoding

import (
	"github.com/matrixorigin/mopattern/pkg/container/types"
)

// Invert writes the bitwise complement of src into dst and returns the
// written prefix of dst. dst must hold at least len(src) bytes and may
// alias src.
func Invert(dst, src []byte) []byte {
	dst = dst[:len(src)]
	for i, b := range src {
		dst[i] = ^b
	}
	return dst
}

// Normalize returns s in ascending encoding. Ascending spans are returned
// as is, descending spans are complemented into a fresh buffer.
func Normalize(s types.Span, o types.SortOrder) types.Span {
	return Coerce(s, o, types.Ascending)
}

// Coerce converts s encoded in from into the to encoding.
func Coerce(s types.Span, from, to types.SortOrder) types.Span {
	if from == to {
		return s
	}
	return types.SpanOf(Invert(make([]byte, s.Len()), s.Bytes()))
}

// CoerceBytes is Coerce over a plain byte slice.
func CoerceBytes(b []byte, from, to types.SortOrder) []byte {
	if from == to {
		return b
	}
	return Invert(make([]byte, len(b)), b)
}

// ByteAt returns the ascending value of the byte at absolute offset i of
// s encoded in o.
func ByteAt(s types.Span, o types.SortOrder, i int) byte {
	b := s.Buffer()[i]
	if o == types.Descending {
		return ^b
	}
	return b
}
