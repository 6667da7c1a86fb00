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

package array

import (
	"math"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/matrixorigin/mopattern/pkg/common/moerr"
	"github.com/matrixorigin/mopattern/pkg/container/types"
)

func build(limits Limits, elems ...string) ([]byte, error) {
	b := NewBuilder(limits)
	for _, e := range elems {
		buf := []byte("##" + e)
		if !b.Append(buf, 2, len(e)) {
			break
		}
	}
	return b.Finish()
}

func TestBuilder(t *testing.T) {
	convey.Convey("build and decode elements", t, func() {
		buf, err := build(DefaultLimits(), "", "ONE", "", "TWO", "中国")
		convey.So(err, convey.ShouldBeNil)
		convey.So(buf[0], convey.ShouldEqual, Version)

		a, err := Decode(buf)
		convey.So(err, convey.ShouldBeNil)
		convey.So(a.Len(), convey.ShouldEqual, 5)
		convey.So(a.Strings(), convey.ShouldResemble, []string{"", "ONE", "", "TWO", "中国"})
		convey.So(&a.Get(1).Buffer()[0], convey.ShouldEqual, &buf[0])
		convey.So(a.Get(0).IsEmpty(), convey.ShouldBeTrue)
	})

	convey.Convey("zero elements", t, func() {
		buf, err := build(DefaultLimits())
		convey.So(err, convey.ShouldBeNil)
		convey.So(len(buf), convey.ShouldEqual, headerSize+offsetSize)
		a, err := Decode(buf)
		convey.So(err, convey.ShouldBeNil)
		convey.So(a.Len(), convey.ShouldEqual, 0)
		convey.So(a.Strings(), convey.ShouldResemble, []string{})
	})

	convey.Convey("append span", t, func() {
		b := NewBuilder(DefaultLimits())
		s, _ := types.NewSpan([]byte("xxabcxx"), 2, 3)
		convey.So(b.AppendSpan(s), convey.ShouldBeTrue)
		buf, err := b.Finish()
		convey.So(err, convey.ShouldBeNil)
		a, _ := Decode(buf)
		convey.So(a.Strings(), convey.ShouldResemble, []string{"abc"})
	})
}

func TestBuilderLimits(t *testing.T) {
	convey.Convey("too many elements", t, func() {
		_, err := build(Limits{MaxElements: 2, MaxElementSize: 10, MaxTotalSize: 100}, "a", "b", "c")
		convey.So(moerr.IsMoErrCode(err, moerr.ErrCapacityExceeded), convey.ShouldBeTrue)
	})

	convey.Convey("element too large", t, func() {
		_, err := build(Limits{MaxElements: 10, MaxElementSize: 2, MaxTotalSize: 100}, "ab", "abc")
		convey.So(moerr.IsMoErrCode(err, moerr.ErrCapacityExceeded), convey.ShouldBeTrue)
	})

	convey.Convey("total too large", t, func() {
		_, err := build(Limits{MaxElements: 10, MaxElementSize: 10, MaxTotalSize: 5}, "abc", "abc")
		convey.So(moerr.IsMoErrCode(err, moerr.ErrCapacityExceeded), convey.ShouldBeTrue)
	})

	convey.Convey("limits beyond 32-bit offsets are capped", t, func() {
		b := NewBuilder(Limits{MaxElements: math.MaxUint32 + 10, MaxElementSize: 10, MaxTotalSize: math.MaxUint32 + 1})
		convey.So(b.limits.MaxTotalSize, convey.ShouldEqual, math.MaxUint32)
		convey.So(b.limits.MaxElements, convey.ShouldEqual, math.MaxUint32)
		convey.So(b.Append([]byte("ab"), 0, 2), convey.ShouldBeTrue)
	})

	convey.Convey("a refused append breaks the builder", t, func() {
		b := NewBuilder(Limits{MaxElements: 10, MaxElementSize: 1, MaxTotalSize: 10})
		convey.So(b.Append([]byte("ab"), 0, 2), convey.ShouldBeFalse)
		convey.So(b.Append([]byte("a"), 0, 1), convey.ShouldBeFalse)
		convey.So(b.Len(), convey.ShouldEqual, 0)
	})

	convey.Convey("invalid bounds", t, func() {
		b := NewBuilder(DefaultLimits())
		convey.So(b.Append([]byte("ab"), 1, 2), convey.ShouldBeFalse)
		_, err := b.Finish()
		convey.So(moerr.IsMoErrCode(err, moerr.ErrCapacityExceeded), convey.ShouldBeTrue)
	})

	convey.Convey("finish twice", t, func() {
		b := NewBuilder(DefaultLimits())
		_, err := b.Finish()
		convey.So(err, convey.ShouldBeNil)
		_, err = b.Finish()
		convey.So(moerr.IsMoErrCode(err, moerr.ErrInvalidState), convey.ShouldBeTrue)
		convey.So(b.Append([]byte("a"), 0, 1), convey.ShouldBeFalse)
	})
}

func TestDecodeMalformed(t *testing.T) {
	valid, err := build(DefaultLimits(), "ab", "c")
	if err != nil {
		t.Fatal(err)
	}
	corrupt := func(f func(b []byte) []byte) []byte {
		b := append([]byte(nil), valid...)
		return f(b)
	}
	cases := map[string][]byte{
		"short":     {Version, 0, 0},
		"version":   corrupt(func(b []byte) []byte { b[0] = 9; return b }),
		"count":     corrupt(func(b []byte) []byte { b[1] = 200; return b }),
		"firstOff":  corrupt(func(b []byte) []byte { b[headerSize] = 1; return b }),
		"truncated": corrupt(func(b []byte) []byte { return b[:len(b)-1] }),
		"trailing":  corrupt(func(b []byte) []byte { return append(b, 'x') }),
		"order":     corrupt(func(b []byte) []byte { b[headerSize+offsetSize] = 3; b[headerSize+2*offsetSize] = 2; return b }),
	}
	convey.Convey("malformed input is rejected", t, func() {
		for name, buf := range cases {
			_, err := Decode(buf)
			convey.So(moerr.IsMoErrCode(err, moerr.ErrInvalidInput), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldNotBeEmpty)
			if !moerr.IsMoErrCode(err, moerr.ErrInvalidInput) {
				t.Errorf("case %s: %v", name, err)
			}
		}
	})
}
