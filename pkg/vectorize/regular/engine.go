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

package regular

import (
	"regexp"
	"regexp/syntax"
	"strings"
	"unicode/utf8"

	"github.com/coregx/coregex"
	re2 "github.com/wasilibs/go-re2"

	"github.com/matrixorigin/mopattern/pkg/common/moerr"
)

// Engine names a regular expression back-end.
type Engine string

const (
	// EngineStd is the go standard library, the default.
	EngineStd Engine = "std"
	// EngineCoregex is github.com/coregx/coregex.
	EngineCoregex Engine = "coregex"
	// EngineRE2 is RE2 compiled to wasm, github.com/wasilibs/go-re2.
	EngineRE2 Engine = "re2"
)

var engines = []Engine{EngineStd, EngineCoregex, EngineRE2}

// Engines returns every known back-end.
func Engines() []Engine {
	return append([]Engine(nil), engines...)
}

// ParseEngine resolves a configured engine name, case insensitive.
// The empty name is the default engine.
func ParseEngine(name string) (Engine, error) {
	if name == "" {
		return EngineStd, nil
	}
	e := Engine(strings.ToLower(name))
	for _, known := range engines {
		if e == known {
			return e, nil
		}
	}
	return "", moerr.NewInvalidArgNoCtx("regexp engine", name)
}

// searcher is the part of a compiled expression the pattern needs. All
// three back-ends expose it with the standard library signatures.
type searcher interface {
	Match(b []byte) bool
	FindIndex(b []byte) []int
	FindAllIndex(b []byte, n int) [][]int
}

var (
	_ searcher = (*regexp.Regexp)(nil)
	_ searcher = (*coregex.Regex)(nil)
	_ searcher = (*re2.Regexp)(nil)
)

type compileFunc func(expr string) (searcher, error)

var compilers = map[Engine]compileFunc{
	EngineStd:     compileStd,
	EngineCoregex: compileCoregex,
	EngineRE2:     compileRE2,
}

func compileStd(expr string) (searcher, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	return re, nil
}

func compileRE2(expr string) (searcher, error) {
	re, err := re2.Compile(expr)
	if err != nil {
		return nil, err
	}
	return re, nil
}

// compileCoregex returns the coregex searcher. coregex steps through the
// input one byte at a time, so patterns that can consume a multi-byte rune
// through a wildcard or class are compiled by the standard library. It also
// resumes a search by slicing the input, so FindAllIndex for patterns whose
// result depends on the bytes before the resume point goes to the standard
// library too.
func compileCoregex(expr string) (searcher, error) {
	parsed, err := syntax.Parse(expr, syntax.Perl)
	if err != nil {
		return nil, err
	}
	if matchesMultiByte(parsed) {
		return compileStd(expr)
	}
	re, err := coregex.Compile(expr)
	if err != nil {
		return nil, err
	}
	if !dependsOnPrefix(parsed) {
		return re, nil
	}
	std, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &coregexSearcher{Regex: re, all: std}, nil
}

type coregexSearcher struct {
	*coregex.Regex
	all *regexp.Regexp
}

func (s *coregexSearcher) FindAllIndex(b []byte, n int) [][]int {
	return s.all.FindAllIndex(b, n)
}

// dependsOnPrefix reports whether re contains an assertion that looks at
// the input before the current position.
func dependsOnPrefix(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpBeginLine, syntax.OpBeginText, syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return true
	}
	for _, sub := range re.Sub {
		if dependsOnPrefix(sub) {
			return true
		}
	}
	return false
}

// matchesMultiByte reports whether re can match a non-ASCII rune by any
// means other than spelling out its bytes: a dot, a class reaching past
// ASCII, or a case folded literal.
func matchesMultiByte(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpAnyChar, syntax.OpAnyCharNotNL:
		return true
	case syntax.OpCharClass:
		for i := 1; i < len(re.Rune); i += 2 {
			if re.Rune[i] >= utf8.RuneSelf {
				return true
			}
		}
	case syntax.OpLiteral:
		if re.Flags&syntax.FoldCase != 0 {
			return true
		}
	}
	for _, sub := range re.Sub {
		if matchesMultiByte(sub) {
			return true
		}
	}
	return false
}
