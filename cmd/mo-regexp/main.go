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
	"bufio"
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matrixorigin/mopattern/pkg/common/moerr"
	"github.com/matrixorigin/mopattern/pkg/config"
	"github.com/matrixorigin/mopattern/pkg/container/array"
	"github.com/matrixorigin/mopattern/pkg/container/nulls"
	"github.com/matrixorigin/mopattern/pkg/container/types"
	"github.com/matrixorigin/mopattern/pkg/logutil"
	"github.com/matrixorigin/mopattern/pkg/sql/plan/function"
	"github.com/matrixorigin/mopattern/pkg/vectorize/regular"
)

var (
	configFile = flag.String("config", "", "toml configuration, defaults are used when empty")
	op         = flag.String("op", "match", "one of match, replace, substr, instr, split, like")
	pattern    = flag.String("pattern", "", "regular expression, or like pattern for -op like")
	replace    = flag.String("replace", "", "replacement of -op replace")
	offset     = flag.Int64("offset", 1, "1-based character position of -op substr and instr")
	desc       = flag.Bool("desc", false, "input lines are hex encoded descending values")
	engine     = flag.String("engine", "", "pattern engine, overrides the configuration")
)

func main() {
	flag.Parse()

	ctx := context.Background()
	cfg, err := parseConfig(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logutil.SetupMOLogger(&cfg.Log)

	if err := run(ctx, cfg, os.Stdin, os.Stdout); err != nil {
		logutil.Errorf("mo-regexp failed: %v", err)
		os.Exit(1)
	}
}

func parseConfig(ctx context.Context) (*config.Parameters, error) {
	cfg := config.NewParameters()
	if *configFile != "" {
		if err := config.LoadConfigFromFile(ctx, *configFile, cfg); err != nil {
			return nil, err
		}
	}
	if *engine != "" {
		cfg.Regexp.Engine = *engine
	}
	if err := cfg.Validate(ctx); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Parameters, in io.Reader, out io.Writer) error {
	order := types.Ascending
	if *desc {
		order = types.Descending
	}
	fn, err := buildFunction(ctx, cfg, order)
	if err != nil {
		return err
	}
	rows, err := readRows(in, order)
	if err != nil {
		return err
	}
	res, err := function.EvalBatch(ctx, fn, rows, function.BatchOptions{
		PartitionRows: cfg.Batch.PartitionRows,
		Workers:       cfg.Batch.Workers,
	})
	if err != nil {
		return err
	}

	w := bufio.NewWriter(out)
	for i, v := range res.Values {
		if nulls.Contains(res.Nulls, uint64(i)) {
			fmt.Fprintln(w, "NULL")
			continue
		}
		line, err := format(v)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, line)
	}
	return w.Flush()
}

func buildFunction(ctx context.Context, cfg *config.Parameters, order types.SortOrder) (function.Function, error) {
	opts := []function.Option{
		function.WithEngine(cfg.EngineName()),
		function.WithArrayLimits(cfg.ArrayLimits()),
		function.WithPatternCache(function.NewPatternCache(cfg.Regexp.PatternCacheSize)),
	}
	children := []function.Expression{
		function.NewColumnRef(0, order),
		function.NewStringLiteral(*pattern),
	}
	switch *op {
	case "match":
		return function.NewRegexpLike(ctx, children, opts...)
	case "like":
		return function.NewLike(ctx, children, opts...)
	case "replace":
		children = append(children, function.NewStringLiteral(*replace))
		return function.NewRegexpReplace(ctx, children, opts...)
	case "substr":
		children = append(children, function.NewInt64Literal(*offset))
		return function.NewRegexpSubstr(ctx, children, opts...)
	case "instr":
		children = append(children, function.NewInt64Literal(*offset))
		return function.NewRegexpInstr(ctx, children, opts...)
	case "split":
		return function.NewRegexpSplit(ctx, children, opts...)
	}
	return nil, moerr.NewInvalidArg(ctx, "op", *op)
}

func readRows(in io.Reader, order types.SortOrder) ([]function.Row, error) {
	var rows []function.Row
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), array.MaxStringSize)
	for scanner.Scan() {
		line := scanner.Text()
		if order == types.Ascending {
			rows = append(rows, function.StringTuple(line))
			continue
		}
		b, err := hex.DecodeString(strings.TrimSpace(line))
		if err != nil {
			return nil, moerr.NewInvalidInputNoCtx("line %d is not hex: %v", len(rows)+1, err)
		}
		rows = append(rows, function.NewTuple(types.SpanOf(b)))
	}
	return rows, scanner.Err()
}

// format renders a result of the selected op. Results are ascending.
func format(v types.Span) (string, error) {
	switch *op {
	case "match", "like":
		return fmt.Sprint(types.DecodeBool(v.Bytes())), nil
	case "instr":
		n, err := types.DecodeInt64(v.Bytes())
		if err != nil {
			return "", err
		}
		return fmt.Sprint(n), nil
	case "split":
		arr, err := array.Decode(v.Bytes())
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%q", arr.Strings()), nil
	}
	return v.String(), nil
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] < input\nengines: %v\n", os.Args[0], regular.Engines())
		flag.PrintDefaults()
	}
}
