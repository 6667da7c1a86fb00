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

import "fmt"

// SortOrder is the byte encoding of a value. Descending bytes are the
// bitwise complement of the ascending ones.
type SortOrder uint8

const (
	Ascending SortOrder = iota
	Descending
)

var (
	// TrueBytes and FalseBytes are the ascending encoding of a boolean.
	TrueBytes  = []byte{1}
	FalseBytes = []byte{0}
)

func (o SortOrder) String() string {
	switch o {
	case Ascending:
		return "ASC"
	case Descending:
		return "DESC"
	default:
		return fmt.Sprintf("SortOrder(%d)", uint8(o))
	}
}

// Valid reports whether o is one of the known orders.
func (o SortOrder) Valid() bool {
	return o == Ascending || o == Descending
}

// EncodeBool returns the ascending encoding of v.
func EncodeBool(v bool) []byte {
	if v {
		return TrueBytes
	}
	return FalseBytes
}

// DecodeBool decodes an ascending boolean.
func DecodeBool(v []byte) bool {
	return len(v) == 1 && v[0] == 1
}
