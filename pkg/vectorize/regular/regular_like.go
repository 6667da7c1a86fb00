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
	"strings"

	"github.com/matrixorigin/mopattern/pkg/common/moerr"
)

// DefaultLikeEscape is the escape character of LIKE without ESCAPE clause.
const DefaultLikeEscape = '\\'

// LikeToRegexp translates a SQL LIKE pattern into an expression meant for
// full matching. '%' matches any run of characters, '_' exactly one, and
// the character after escape is literal. A zero escape disables escaping.
func LikeToRegexp(like string, escape rune, caseInsensitive bool) (string, error) {
	var b strings.Builder
	b.WriteString("(?s)")
	if caseInsensitive {
		b.WriteString("(?i)")
	}
	runes := []rune(like)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if escape != 0 && r == escape {
			i++
			if i >= len(runes) {
				return "", moerr.NewInvalidArgNoCtx("like pattern ending with escape", like)
			}
			b.WriteString(regexp.QuoteMeta(string(runes[i])))
			continue
		}
		switch r {
		case '%':
			b.WriteString(".*")
		case '_':
			b.WriteByte('.')
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return b.String(), nil
}

// CompileLike compiles a LIKE pattern, the result must be used with Matches.
func CompileLike(like string, escape rune, caseInsensitive bool, opts ...Option) (Pattern, error) {
	expr, err := LikeToRegexp(like, escape, caseInsensitive)
	if err != nil {
		return nil, err
	}
	return Compile(expr, opts...)
}
