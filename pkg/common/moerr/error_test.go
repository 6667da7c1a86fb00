// Copyright 2021 - 2022 Matrix Origin
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

package moerr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMoErrCode(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		err      error
		code     uint16
		expected bool
	}{
		{
			name:     "nil error is ok",
			err:      nil,
			code:     Ok,
			expected: true,
		},
		{
			name:     "nil error is not an error code",
			err:      nil,
			code:     ErrInternal,
			expected: false,
		},
		{
			name:     "ErrInvalidPattern",
			err:      NewInvalidPattern(ctx, "a(", errors.New("missing closing )")),
			code:     ErrInvalidPattern,
			expected: true,
		},
		{
			name:     "ErrNotEvaluable",
			err:      NewNotEvaluable(ctx, "null pattern"),
			code:     ErrNotEvaluable,
			expected: true,
		},
		{
			name:     "wrapped ErrCapacityExceeded",
			err:      fmt.Errorf("split: %w", NewCapacityExceeded(ctx, "too many elements")),
			code:     ErrCapacityExceeded,
			expected: true,
		},
		{
			name:     "go error",
			err:      io.EOF,
			code:     ErrInternal,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsMoErrCode(tt.err, tt.code))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	ctx := context.Background()

	err := NewInvalidPattern(ctx, "a(", errors.New("missing closing )"))
	require.Equal(t, `invalid regular expression "a(": missing closing )`, err.Error())
	require.Equal(t, ER_REGEXP_PATTERN_SYNTAX, err.MySQLCode())
	require.Equal(t, "42000", err.SqlState())

	err = NewUndecodableByte(ctx, 0xff, 3)
	require.Equal(t, "undecodable byte 0xff at offset 3", err.Error())
	require.False(t, err.Succeeded())

	err = NewInvalidArg(ctx, "offset", -5)
	require.Equal(t, "invalid argument offset, bad value -5", err.Error())
}

func TestStatementDetail(t *testing.T) {
	ctx := context.WithValue(context.Background(), StatementIDKey{}, "q-42")
	err := NewNotEvaluable(ctx, "source argument is null")
	require.Equal(t, "statement q-42", err.Detail())
	require.Equal(t, "not evaluable: source argument is null: statement q-42", err.Display())
	require.True(t, IsNotEvaluable(err))

	err = NewNotEvaluableNoCtx("source argument is null")
	require.Empty(t, err.Detail())
	require.Equal(t, err.Error(), err.Display())
}

func TestConvertGoError(t *testing.T) {
	ctx := context.Background()
	require.Nil(t, ConvertGoError(ctx, nil))

	me := NewInvalidInputNoCtx("bad")
	require.Same(t, me, ConvertGoError(ctx, me))

	require.True(t, IsMoErrCode(ConvertGoError(ctx, io.ErrUnexpectedEOF), ErrInvalidInput))
	require.True(t, IsMoErrCode(ConvertGoError(ctx, errors.New("boom")), ErrInternal))
}

func TestDowncastError(t *testing.T) {
	me := NewBadConfigNoCtx("engine %s", "pcre")
	require.Same(t, me, DowncastError(me))
	require.Equal(t, ErrInternal, DowncastError(errors.New("x")).ErrorCode())
}

func TestConvertPanicError(t *testing.T) {
	ctx := context.Background()
	me := NewInternalErrorNoCtx("inner")
	require.Same(t, me, ConvertPanicError(ctx, me))
	require.Equal(t, "internal error: panic oops", ConvertPanicError(ctx, "oops").Error())
}

func TestUnknownCodePanics(t *testing.T) {
	require.Panics(t, func() {
		_ = newError(context.Background(), 12345)
	})
}
