// Copyright 2023 Matrix Origin
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

package v2

import "github.com/prometheus/client_golang/prometheus"

var (
	patternCompileCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mo",
			Subsystem: "regexp",
			Name:      "compile_total",
			Help:      "Total number of pattern compilations.",
		}, []string{"engine", "result"})

	PatternCompileDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mo",
			Subsystem: "regexp",
			Name:      "compile_duration_seconds",
			Help:      "Bucketed histogram of pattern compile duration.",
			Buckets:   getDurationBuckets(),
		}, []string{"engine"})

	functionEvalCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mo",
			Subsystem: "regexp",
			Name:      "function_eval_total",
			Help:      "Total number of pattern function evaluations.",
		}, []string{"name", "outcome"})

	patternCacheCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mo",
			Subsystem: "regexp",
			Name:      "pattern_cache_total",
			Help:      "Total number of pattern cache lookups.",
		}, []string{"type"})
	PatternCacheHitCounter  = patternCacheCounter.WithLabelValues("hit")
	PatternCacheMissCounter = patternCacheCounter.WithLabelValues("miss")

	ArrayOverflowCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mo",
			Subsystem: "regexp",
			Name:      "array_overflow_total",
			Help:      "Total number of split results refused by the array builder.",
		})

	BatchEvalDurationHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "mo",
			Subsystem: "regexp",
			Name:      "batch_eval_duration_seconds",
			Help:      "Bucketed histogram of batch evaluation duration.",
			Buckets:   getDurationBuckets(),
		})
)

// PatternCompileCounter returns the counter of compilations with engine
// and result ("ok" or "error").
func PatternCompileCounter(engine, result string) prometheus.Counter {
	return patternCompileCounter.WithLabelValues(engine, result)
}

// FunctionEvalCounter returns the counter of evaluations of the function
// name ending with outcome: "ok", "null" or "error".
func FunctionEvalCounter(name, outcome string) prometheus.Counter {
	return functionEvalCounter.WithLabelValues(name, outcome)
}
