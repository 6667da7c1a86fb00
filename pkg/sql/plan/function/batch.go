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
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/matrixorigin/mopattern/pkg/common/moerr"
	"github.com/matrixorigin/mopattern/pkg/container/nulls"
	"github.com/matrixorigin/mopattern/pkg/container/types"
	"github.com/matrixorigin/mopattern/pkg/logutil/logutil2"
	v2 "github.com/matrixorigin/mopattern/pkg/util/metric/v2"
)

const defaultPartitionRows = 1024

type BatchOptions struct {
	// PartitionRows is the number of rows evaluated by one task.
	PartitionRows int
	// Workers bounds the pool created for the batch when Pool is nil.
	Workers int
	// Pool is a shared pool, it is not released by EvalBatch.
	Pool *ants.Pool
}

// BatchResult holds one value per row. Rows whose value could not be
// produced are in Nulls and have an empty value.
type BatchResult struct {
	Values []types.Span
	Nulls  *nulls.Nulls
}

// EvalBatch evaluates e over rows, partitions running concurrently. The
// first error stops the remaining partitions and is returned alone.
func EvalBatch(ctx context.Context, e Expression, rows []Row, opts BatchOptions) (*BatchResult, error) {
	start := time.Now()
	defer func() {
		v2.BatchEvalDurationHistogram.Observe(time.Since(start).Seconds())
	}()

	res := &BatchResult{
		Values: make([]types.Span, len(rows)),
		Nulls:  nulls.New(),
	}
	if len(rows) == 0 {
		return res, nil
	}
	partRows := opts.PartitionRows
	if partRows <= 0 {
		partRows = defaultPartitionRows
	}
	pool := opts.Pool
	if pool == nil {
		workers := opts.Workers
		if workers <= 0 {
			workers = runtime.NumCPU()
		}
		var err error
		if pool, err = ants.NewPool(workers); err != nil {
			return nil, moerr.ConvertGoError(ctx, err)
		}
		defer pool.Release()
	}

	cctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	parts := (len(rows) + partRows - 1) / partRows
	partNulls := make([]*nulls.Nulls, parts)
	for p := 0; p < parts; p++ {
		begin := p * partRows
		end := begin + partRows
		if end > len(rows) {
			end = len(rows)
		}
		np := nulls.New()
		partNulls[p] = np
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					fail(moerr.ConvertPanicError(cctx, r))
				}
			}()
			for i := begin; i < end; i++ {
				if cctx.Err() != nil {
					return
				}
				v, ok, err := e.Evaluate(cctx, rows[i])
				if err != nil {
					logutil2.Debugf(cctx, "batch row %d failed: %v", i, err)
					fail(err)
					return
				}
				if !ok {
					nulls.Add(np, uint64(i))
					continue
				}
				res.Values[i] = v
			}
		})
		if err != nil {
			wg.Done()
			fail(moerr.ConvertGoError(ctx, err))
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, np := range partNulls {
		if nulls.Any(np) {
			nulls.Or(res.Nulls, np, res.Nulls)
		}
	}
	return res, nil
}
