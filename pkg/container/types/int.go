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

package types

import (
	"encoding/binary"

	"github.com/matrixorigin/mopattern/pkg/common/moerr"
)

// Int64Size is the encoded size of an int64.
const Int64Size = 8

const signBit = uint64(1) << 63

// EncodeInt64 returns the ascending, byte comparable encoding of v:
// big-endian with the sign bit flipped.
func EncodeInt64(v int64) []byte {
	b := make([]byte, Int64Size)
	binary.BigEndian.PutUint64(b, uint64(v)^signBit)
	return b
}

// DecodeInt64 decodes an ascending int64.
func DecodeInt64(b []byte) (int64, error) {
	if len(b) != Int64Size {
		return 0, moerr.NewInvalidInputNoCtx("int64 of %d bytes", len(b))
	}
	return int64(binary.BigEndian.Uint64(b) ^ signBit), nil
}
