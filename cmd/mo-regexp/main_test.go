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

package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/mopattern/pkg/common/moerr"
	"github.com/matrixorigin/mopattern/pkg/config"
	"github.com/matrixorigin/mopattern/pkg/container/types"
	"github.com/matrixorigin/mopattern/pkg/encoding"
)

func stubFlags(t *testing.T, o, p, r string, off int64, d bool) {
	stubs := gostub.Stub(&op, &o)
	stubs.Stub(&pattern, &p)
	stubs.Stub(&replace, &r)
	stubs.Stub(&offset, &off)
	stubs.Stub(&desc, &d)
	t.Cleanup(stubs.Reset)
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	input := "ab12cd34ef\n12ONE34TWO\nxyz\n"
	tests := []struct {
		op, pattern, replace string
		offset               int64
		want                 string
	}{
		{op: "match", pattern: "[a-z]+", want: "false\nfalse\ntrue\n"},
		{op: "like", pattern: "%O%", want: "false\ntrue\nfalse\n"},
		{op: "replace", pattern: "[0-9]+", replace: "-", want: "ab-cd-ef\n-ONE-TWO\nxyz\n"},
		{op: "substr", pattern: "[A-Z]+", offset: 1, want: "\nONE\n\n"},
		{op: "instr", pattern: "[0-9]", offset: 2, want: "3\n2\n0\n"},
		{op: "split", pattern: "[0-9]+", want: `["ab" "cd" "ef"]` + "\n" + `["" "ONE" "TWO"]` + "\n" + `["xyz"]` + "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			stubFlags(t, tt.op, tt.pattern, tt.replace, tt.offset, false)
			var out bytes.Buffer
			require.NoError(t, run(ctx, config.NewParameters(), strings.NewReader(input), &out))
			require.Equal(t, tt.want, out.String())
		})
	}
}

func TestRunDescending(t *testing.T) {
	stubFlags(t, "replace", "[0-9]", "", 1, true)
	line := hex.EncodeToString(encoding.CoerceBytes([]byte("a1b2"), types.Ascending, types.Descending))
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), config.NewParameters(), strings.NewReader(line+"\n"), &out))
	require.Equal(t, "ab\n", out.String())

	out.Reset()
	err := run(context.Background(), config.NewParameters(), strings.NewReader("zz\n"), &out)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidInput))
}

func TestRunUnknownOp(t *testing.T) {
	stubFlags(t, "count", "a", "", 1, false)
	err := run(context.Background(), config.NewParameters(), strings.NewReader("a\n"), &bytes.Buffer{})
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidArg))
}
