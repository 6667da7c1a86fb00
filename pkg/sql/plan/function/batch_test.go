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
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/lni/goutils/leaktest"
	"github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/mopattern/pkg/common/moerr"
	"github.com/matrixorigin/mopattern/pkg/container/nulls"
	"github.com/matrixorigin/mopattern/pkg/container/types"
)

func batchRows(n int) []Row {
	rows := make([]Row, n)
	for i := range rows {
		if i%10 == 3 {
			rows[i] = StringTuple("").SetNull(0)
			continue
		}
		rows[i] = StringTuple(fmt.Sprintf("row%d", i))
	}
	return rows
}

func TestEvalBatch(t *testing.T) {
	defer leaktest.AfterTest(t)()
	ctx := context.Background()
	fn, err := NewRegexpReplace(ctx, []Expression{src(), NewStringLiteral("[0-9]+"), NewStringLiteral("#")})
	require.NoError(t, err)

	rows := batchRows(1000)
	res, err := EvalBatch(ctx, fn, rows, BatchOptions{PartitionRows: 64, Workers: 4})
	require.NoError(t, err)
	require.Len(t, res.Values, len(rows))
	require.Equal(t, 100, nulls.Length(res.Nulls))
	for i := range rows {
		if i%10 == 3 {
			require.True(t, nulls.Contains(res.Nulls, uint64(i)))
			continue
		}
		require.False(t, nulls.Contains(res.Nulls, uint64(i)))
		require.Equal(t, "row#", res.Values[i].String())
	}
}

func TestEvalBatchEmpty(t *testing.T) {
	defer leaktest.AfterTest(t)()
	res, err := EvalBatch(context.Background(), NewStringLiteral("x"), nil, BatchOptions{})
	require.NoError(t, err)
	require.Empty(t, res.Values)
	require.False(t, nulls.Any(res.Nulls))
}

func TestEvalBatchSharedPool(t *testing.T) {
	defer leaktest.AfterTest(t)()
	pool, err := ants.NewPool(2)
	require.NoError(t, err)
	defer pool.Release()

	ctx := context.Background()
	fn, err := NewRegexpLike(ctx, []Expression{src(), NewStringLiteral("row[0-9]*")})
	require.NoError(t, err)
	rows := batchRows(100)
	for i := 0; i < 3; i++ {
		res, err := EvalBatch(ctx, fn, rows, BatchOptions{PartitionRows: 7, Pool: pool})
		require.NoError(t, err)
		require.Equal(t, 10, nulls.Length(res.Nulls))
		require.True(t, types.DecodeBool(res.Values[0].Bytes()))
	}
}

func TestEvalBatchError(t *testing.T) {
	defer leaktest.AfterTest(t)()
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e := NewMockExpression(ctrl)
	e.EXPECT().Evaluate(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, row Row) (types.Span, bool, error) {
			v, _, _ := row.Column(0)
			if v.String() == "row500" {
				return types.Span{}, false, moerr.NewInvalidInput(ctx, "bad row")
			}
			return v, true, nil
		}).AnyTimes()

	res, err := EvalBatch(ctx, e, batchRows(1000), BatchOptions{PartitionRows: 10, Workers: 4})
	require.Nil(t, res)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidInput))
}

func TestEvalBatchPanic(t *testing.T) {
	defer leaktest.AfterTest(t)()
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e := NewMockExpression(ctrl)
	e.EXPECT().Evaluate(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, Row) (types.Span, bool, error) {
			panic("evaluator bug")
		}).AnyTimes()

	_, err := EvalBatch(ctx, e, batchRows(10), BatchOptions{Workers: 1})
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInternal))
}

func TestEvalBatchCanceled(t *testing.T) {
	defer leaktest.AfterTest(t)()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fn, err := NewRegexpLike(ctx, []Expression{src(), NewStringLiteral("a")})
	require.NoError(t, err)
	_, err = EvalBatch(ctx, fn, batchRows(10), BatchOptions{})
	require.ErrorIs(t, err, context.Canceled)
}
