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
	"time"

	"github.com/matrixorigin/mopattern/pkg/logutil/logutil2"
	v2 "github.com/matrixorigin/mopattern/pkg/util/metric/v2"
	"github.com/matrixorigin/mopattern/pkg/vectorize/regular"
)

type patternKind uint8

const (
	// patternAbsent the pattern literal is null, nothing is evaluable.
	patternAbsent patternKind = iota
	// patternUncompiled only the source text is known, see Rehydrate.
	patternUncompiled
	patternCompiled
)

func (k patternKind) String() string {
	switch k {
	case patternAbsent:
		return "absent"
	case patternUncompiled:
		return "uncompiled"
	case patternCompiled:
		return "compiled"
	default:
		return "unknown"
	}
}

// patternState is the literal pattern of a function. The compiled form is
// never serialized and must be rebuilt from text.
type patternState struct {
	kind    patternKind
	text    string
	pattern regular.Pattern
}

func absentPattern() patternState {
	return patternState{kind: patternAbsent}
}

func uncompiledPattern(text string) patternState {
	return patternState{kind: patternUncompiled, text: text}
}

// compile moves an uncompiled state to compiled, other states are kept.
func (s patternState) compile(ctx context.Context, translate func(string) (string, error), o *Options) (patternState, error) {
	if s.kind != patternUncompiled {
		return s, nil
	}
	expr, err := translate(s.text)
	if err != nil {
		return s, err
	}
	p, err := compilePattern(ctx, expr, o)
	if err != nil {
		return s, err
	}
	return patternState{kind: patternCompiled, text: s.text, pattern: p}, nil
}

func identity(text string) (string, error) {
	return text, nil
}

// compilePattern compiles expr with the engine of o and records the
// outcome in the metrics.
func compilePattern(ctx context.Context, expr string, o *Options) (regular.Pattern, error) {
	start := time.Now()
	p, err := regular.Compile(expr, o.compileOptions()...)
	v2.PatternCompileDurationHistogram.WithLabelValues(string(o.Engine)).Observe(time.Since(start).Seconds())
	if err != nil {
		v2.PatternCompileCounter(string(o.Engine), "error").Inc()
		logutil2.Debugf(ctx, "compile pattern %q with engine %s failed: %v", expr, o.Engine, err)
		return nil, err
	}
	v2.PatternCompileCounter(string(o.Engine), "ok").Inc()
	return p, nil
}
