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

package lengthutf8

import (
	"context"
	"unicode/utf8"

	"github.com/matrixorigin/mopattern/pkg/common/moerr"
	"github.com/matrixorigin/mopattern/pkg/container/types"
	"github.com/matrixorigin/mopattern/pkg/encoding"
)

// charWidth returns the byte length announced by the utf8 lead byte b, or
// 0 when b cannot start a character.
func charWidth(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b < 0xC0:
		return 0
	case b < 0xE0:
		return 2
	case b < 0xF0:
		return 3
	case b < 0xF8:
		return 4
	default:
		return 0
	}
}

// scan walks the characters of s and stops once stop returns true for the
// index and absolute offset of the current character. It returns the
// position where it stopped, or the character count and span end when
// stop never fired.
func scan(ctx context.Context, s types.Span, o types.SortOrder, strict bool,
	stop func(idx, pos int) bool) (int, int, error) {
	idx, pos, end := 0, s.Offset(), s.End()
	for pos < end {
		if stop(idx, pos) {
			return idx, pos, nil
		}
		w := charWidth(encoding.ByteAt(s, o, pos))
		if w == 0 {
			if strict {
				return idx, pos, moerr.NewUndecodableByte(ctx, encoding.ByteAt(s, o, pos), pos-s.Offset())
			}
			w = 1
		}
		pos += w
		if pos > end {
			pos = end
		}
		idx++
	}
	return idx, end, nil
}

// CharToByteOffset returns the absolute byte offset of the character with
// index charIndex of s encoded in o. An index equal to the character count
// resolves to the end of s. Negative indexes and indexes past the end are
// not resolvable. Bytes that cannot start a character count as one
// character.
func CharToByteOffset(s types.Span, o types.SortOrder, charIndex int) (int, bool) {
	pos, ok, _ := charToByteOffset(context.TODO(), s, o, charIndex, false)
	return pos, ok
}

// CharToByteOffsetStrict is CharToByteOffset failing with ErrUndecodableByte
// on a byte that cannot start a character.
func CharToByteOffsetStrict(ctx context.Context, s types.Span, o types.SortOrder, charIndex int) (int, bool, error) {
	return charToByteOffset(ctx, s, o, charIndex, true)
}

func charToByteOffset(ctx context.Context, s types.Span, o types.SortOrder, charIndex int, strict bool) (int, bool, error) {
	if charIndex < 0 {
		return 0, false, nil
	}
	if charIndex == 0 {
		return s.Offset(), true, nil
	}
	idx, pos, err := scan(ctx, s, o, strict, func(idx, _ int) bool { return idx == charIndex })
	if err != nil {
		return 0, false, err
	}
	if idx != charIndex {
		return 0, false, nil
	}
	return pos, true, nil
}

// ByteToCharOffset returns the character index starting at the absolute
// byte offset. It fails when the offset is outside s or inside a character.
func ByteToCharOffset(s types.Span, o types.SortOrder, byteOffset int) (int, bool) {
	if byteOffset < s.Offset() || byteOffset > s.End() {
		return 0, false
	}
	idx, pos, _ := scan(context.TODO(), s, o, false, func(_, pos int) bool { return pos >= byteOffset })
	if pos != byteOffset {
		return 0, false
	}
	return idx, true
}

// StrLength returns the number of characters of s encoded in o.
func StrLength(s types.Span, o types.SortOrder) int {
	n, _, _ := scan(context.TODO(), s, o, false, func(int, int) bool { return false })
	return n
}

// StrLengthUTF8 fills rs with the character counts of xs.
func StrLengthUTF8(xs []string, rs []uint64) []uint64 {
	for i, x := range xs {
		rs[i] = uint64(utf8.RuneCountInString(x))
	}
	return rs
}
