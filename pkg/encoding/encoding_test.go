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

package encoding

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/mopattern/pkg/container/types"
)

func TestNormalizeAscending(t *testing.T) {
	buf := []byte("--abc--")
	s, err := types.NewSpan(buf, 2, 3)
	require.NoError(t, err)
	n := Normalize(s, types.Ascending)
	require.Equal(t, s, n)
	require.Equal(t, &buf[0], &n.Buffer()[0])
}

func TestNormalizeDescending(t *testing.T) {
	src := []byte{0xff ^ 'a', 0xff ^ 'b', 0xff ^ 'c'}
	buf := append([]byte{0x00, 0x00}, src...)
	s, err := types.NewSpan(buf, 2, 3)
	require.NoError(t, err)

	n := Normalize(s, types.Descending)
	require.Equal(t, "abc", n.String())
	require.Equal(t, 0, n.Offset())
	// the input is never touched
	require.Equal(t, src, buf[2:])
}

func TestDoubleComplement(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		data := make([]byte, r.Intn(64))
		r.Read(data)
		s := types.SpanOf(data)
		desc := Coerce(s, types.Ascending, types.Descending)
		back := Coerce(desc, types.Descending, types.Ascending)
		if !bytes.Equal(data, back.Bytes()) {
			t.Fatalf("double complement changed %x into %x", data, back.Bytes())
		}
		for j := range data {
			require.Equal(t, data[j], ByteAt(desc, types.Descending, j))
		}
	}
}

func TestInvertInPlace(t *testing.T) {
	b := []byte{0x00, 0x0f, 0xff}
	Invert(b, b)
	require.Equal(t, []byte{0xff, 0xf0, 0x00}, b)
	require.Equal(t, []byte{0x00, 0x0f, 0xff}, CoerceBytes(b, types.Descending, types.Ascending))
	require.Equal(t, []byte{0xff, 0xf0, 0x00}, b)
}

func TestDescendingOrdersReversed(t *testing.T) {
	a := CoerceBytes([]byte("apple"), types.Ascending, types.Descending)
	b := CoerceBytes([]byte("banana"), types.Ascending, types.Descending)
	require.Equal(t, 1, bytes.Compare(a, b))
}
