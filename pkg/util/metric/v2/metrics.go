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

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	registry = prometheus.NewRegistry()
)

func init() {
	initRegexpMetrics()
}

func initRegexpMetrics() {
	registry.MustRegister(patternCompileCounter)
	registry.MustRegister(PatternCompileDurationHistogram)
	registry.MustRegister(functionEvalCounter)
	registry.MustRegister(patternCacheCounter)
	registry.MustRegister(ArrayOverflowCounter)
	registry.MustRegister(BatchEvalDurationHistogram)
}

// GetPrometheusRegistry returns the registry holding every metric of this
// package.
func GetPrometheusRegistry() prometheus.Registerer {
	return registry
}

// GetPrometheusGatherer returns the gatherer of the registry.
func GetPrometheusGatherer() prometheus.Gatherer {
	return registry
}

func getDurationBuckets() []float64 {
	return append(prometheus.ExponentialBuckets(0.000001, 2, 20), 1, 5, 10)
}
