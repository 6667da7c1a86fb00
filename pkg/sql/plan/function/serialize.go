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

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/matrixorigin/mopattern/pkg/common/moerr"
	"github.com/matrixorigin/mopattern/pkg/container/types"
	"github.com/matrixorigin/mopattern/pkg/vectorize/regular"
)

// Field numbers of the serialized header. Compiled patterns are never
// written, field 3 is present iff the pattern literal is not null.
const (
	fieldName            protowire.Number = 1
	fieldEngine          protowire.Number = 2
	fieldPattern         protowire.Number = 3
	fieldDynamic         protowire.Number = 4
	fieldHasReplacement  protowire.Number = 5
	fieldEscape          protowire.Number = 6
	fieldCaseInsensitive protowire.Number = 7
	fieldResultOrder     protowire.Number = 8
	fieldStrictUTF8      protowire.Number = 9
)

func marshalHeader(h *header) []byte {
	var buf []byte
	buf = protowire.AppendTag(buf, fieldName, protowire.BytesType)
	buf = protowire.AppendString(buf, h.name)
	buf = protowire.AppendTag(buf, fieldEngine, protowire.BytesType)
	buf = protowire.AppendString(buf, string(h.engine))
	if !h.dynamic && h.pattern.kind != patternAbsent {
		buf = protowire.AppendTag(buf, fieldPattern, protowire.BytesType)
		buf = protowire.AppendString(buf, h.pattern.text)
	}
	buf = appendBool(buf, fieldDynamic, h.dynamic)
	buf = appendBool(buf, fieldHasReplacement, h.hasReplacement)
	buf = protowire.AppendTag(buf, fieldEscape, protowire.VarintType)
	buf = protowire.AppendVarint(buf, uint64(h.escape))
	buf = appendBool(buf, fieldCaseInsensitive, h.caseInsensitive)
	buf = protowire.AppendTag(buf, fieldResultOrder, protowire.VarintType)
	buf = protowire.AppendVarint(buf, uint64(h.resultOrder))
	buf = appendBool(buf, fieldStrictUTF8, h.strictUTF8)
	return buf
}

func appendBool(buf []byte, num protowire.Number, v bool) []byte {
	buf = protowire.AppendTag(buf, num, protowire.VarintType)
	return protowire.AppendVarint(buf, protowire.EncodeBool(v))
}

// unmarshalHeader decodes a header in the uncompiled state. Unknown
// fields are skipped.
func unmarshalHeader(ctx context.Context, data []byte) (*header, error) {
	h := &header{pattern: absentPattern()}
	var (
		pattern    string
		hasPattern bool
	)
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, decodeError(ctx, protowire.ParseError(n))
		}
		data = data[n:]
		switch {
		case typ == protowire.BytesType && (num == fieldName || num == fieldEngine || num == fieldPattern):
			v, m := protowire.ConsumeString(data)
			if m < 0 {
				return nil, decodeError(ctx, protowire.ParseError(m))
			}
			data = data[m:]
			switch num {
			case fieldName:
				h.name = v
			case fieldEngine:
				h.engine = regular.Engine(v)
			default:
				pattern, hasPattern = v, true
			}
		case typ == protowire.VarintType && num >= fieldDynamic && num <= fieldStrictUTF8:
			v, m := protowire.ConsumeVarint(data)
			if m < 0 {
				return nil, decodeError(ctx, protowire.ParseError(m))
			}
			data = data[m:]
			switch num {
			case fieldDynamic:
				h.dynamic = protowire.DecodeBool(v)
			case fieldHasReplacement:
				h.hasReplacement = protowire.DecodeBool(v)
			case fieldEscape:
				h.escape = rune(v)
			case fieldCaseInsensitive:
				h.caseInsensitive = protowire.DecodeBool(v)
			case fieldResultOrder:
				h.resultOrder = types.SortOrder(v)
			case fieldStrictUTF8:
				h.strictUTF8 = protowire.DecodeBool(v)
			}
		default:
			m := protowire.ConsumeFieldValue(num, typ, data)
			if m < 0 {
				return nil, decodeError(ctx, protowire.ParseError(m))
			}
			data = data[m:]
		}
	}
	if h.name == "" {
		return nil, moerr.NewInvalidInput(ctx, "serialized function without a name")
	}
	engine, err := regular.ParseEngine(string(h.engine))
	if err != nil {
		return nil, moerr.NewInvalidInput(ctx, "serialized function with engine %q", h.engine)
	}
	h.engine = engine
	if !h.resultOrder.Valid() {
		return nil, moerr.NewInvalidInput(ctx, "serialized function with result order %d", h.resultOrder)
	}
	if hasPattern && !h.dynamic {
		h.pattern = uncompiledPattern(pattern)
	}
	return h, nil
}

func decodeError(ctx context.Context, err error) error {
	return moerr.NewInvalidInput(ctx, "malformed function: %v", err)
}
