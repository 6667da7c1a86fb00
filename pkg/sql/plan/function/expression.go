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

	"github.com/matrixorigin/mopattern/pkg/common/moerr"
	"github.com/matrixorigin/mopattern/pkg/container/types"
	"github.com/matrixorigin/mopattern/pkg/encoding"
)

// Row is the row an expression is evaluated against.
type Row interface {
	// Column returns the value of column i, false when it is null.
	Column(i int) (types.Span, bool, error)
}

// Expression produces one encoded value per row. A false result means the
// value could not be produced for this row, which callers must propagate
// instead of substituting a default.
type Expression interface {
	Evaluate(ctx context.Context, row Row) (types.Span, bool, error)
	SortOrder() types.SortOrder
}

// Literal is a constant, possibly null.
type Literal struct {
	value types.Span
	null  bool
	order types.SortOrder
}

var _ Expression = (*Literal)(nil)

// NewLiteral returns the constant v encoded in order.
func NewLiteral(v []byte, order types.SortOrder) *Literal {
	return &Literal{value: types.SpanOf(v), order: order}
}

func NewStringLiteral(s string) *Literal {
	return NewLiteral([]byte(s), types.Ascending)
}

func NewInt64Literal(v int64) *Literal {
	return NewLiteral(types.EncodeInt64(v), types.Ascending)
}

func NewNullLiteral() *Literal {
	return &Literal{null: true}
}

func (l *Literal) Evaluate(_ context.Context, _ Row) (types.Span, bool, error) {
	if l.null {
		return types.Span{}, false, nil
	}
	return l.value, true, nil
}

func (l *Literal) SortOrder() types.SortOrder {
	return l.order
}

func (l *Literal) IsNull() bool {
	return l.null
}

// Value returns the ascending bytes of the constant.
func (l *Literal) Value() types.Span {
	return encoding.Normalize(l.value, l.order)
}

// ColumnRef reads one column of the row.
type ColumnRef struct {
	Index int
	Order types.SortOrder
}

var _ Expression = (*ColumnRef)(nil)

func NewColumnRef(index int, order types.SortOrder) *ColumnRef {
	return &ColumnRef{Index: index, Order: order}
}

func (c *ColumnRef) Evaluate(_ context.Context, row Row) (types.Span, bool, error) {
	if row == nil {
		return types.Span{}, false, nil
	}
	return row.Column(c.Index)
}

func (c *ColumnRef) SortOrder() types.SortOrder {
	return c.Order
}

// Tuple is an in-memory Row.
type Tuple struct {
	values []types.Span
	nulls  []bool
}

var _ Row = (*Tuple)(nil)

func NewTuple(values ...types.Span) *Tuple {
	return &Tuple{
		values: values,
		nulls:  make([]bool, len(values)),
	}
}

// StringTuple returns a tuple of ascending string columns.
func StringTuple(values ...string) *Tuple {
	spans := make([]types.Span, len(values))
	for i, v := range values {
		spans[i] = types.StringSpan(v)
	}
	return NewTuple(spans...)
}

func (t *Tuple) SetNull(i int) *Tuple {
	t.nulls[i] = true
	return t
}

func (t *Tuple) Len() int {
	return len(t.values)
}

func (t *Tuple) Column(i int) (types.Span, bool, error) {
	if i < 0 || i >= len(t.values) {
		return types.Span{}, false, moerr.NewInvalidArgNoCtx("column index", i)
	}
	if t.nulls[i] {
		return types.Span{}, false, nil
	}
	return t.values[i], true, nil
}

// evalAscending evaluates e and normalizes the value to ascending.
func evalAscending(ctx context.Context, e Expression, row Row) (types.Span, bool, error) {
	v, ok, err := e.Evaluate(ctx, row)
	if err != nil || !ok {
		return types.Span{}, false, err
	}
	return encoding.Normalize(v, e.SortOrder()), true, nil
}

func evalInt64(ctx context.Context, e Expression, row Row) (int64, bool, error) {
	v, ok, err := evalAscending(ctx, e, row)
	if err != nil || !ok {
		return 0, false, err
	}
	n, err := types.DecodeInt64(v.Bytes())
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}
