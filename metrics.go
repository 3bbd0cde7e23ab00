// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// stressMetrics lives on its own registry: a stress run prints its metrics
// once at the end instead of serving them.
type stressMetrics struct {
	registry *prometheus.Registry

	operations  *prometheus.CounterVec
	opDuration  *prometheus.HistogramVec
	validations prometheus.Counter
	treeSize    prometheus.Gauge
	treeHeight  prometheus.Gauge
}

func newStressMetrics() *stressMetrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &stressMetrics{
		registry: reg,
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "orchard_stress_operations_total",
			Help: "Tree edits applied during the stress run",
		}, []string{"op", "result"}),
		opDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "orchard_stress_operation_duration_seconds",
			Help:    "A histogram of single insert and delete latencies",
			Buckets: prometheus.ExponentialBuckets(0.0000001, 4, 12),
		}, []string{"op"}),
		validations: factory.NewCounter(prometheus.CounterOpts{
			Name: "orchard_stress_validations_total",
			Help: "Full invariant checks run against the live tree",
		}),
		treeSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "orchard_stress_tree_size",
			Help: "Number of keys in the latest version",
		}),
		treeHeight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "orchard_stress_tree_height",
			Help: "Height of the latest version",
		}),
	}
}

// WriteText writes every gathered metric family in the Prometheus text
// exposition format.
func (m *stressMetrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("failed to encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
