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
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eliottgray/orchard/avl"
	"github.com/eliottgray/orchard/ordering"
)

func TestRunStress(t *testing.T) {
	cfg := StressConfig{Size: 3000, CheckEvery: 250, Seed: 7}

	res, err := runStress(context.Background(), cfg, ordering.NaturalOrder{}, newStressMetrics(), nil, discardLogger())
	require.NoError(t, err)

	assert.Equal(t, uint64(7), res.Seed)
	assert.Equal(t, 3000, res.Operations)
	assert.Equal(t, 3000, res.Inserted+res.Replaced+res.Deleted+res.Absent)
	assert.Equal(t, 12, res.Validations)
	assert.Equal(t, res.Inserted-res.Deleted, res.FinalSize)
	assert.Positive(t, res.Deleted)
	assert.Positive(t, res.Replaced)
}

func TestRunStressIsReproducible(t *testing.T) {
	cfg := StressConfig{Size: 2000, CheckEvery: 500, Seed: 99}

	first, err := runStress(context.Background(), cfg, ordering.NaturalOrder{}, newStressMetrics(), nil, discardLogger())
	require.NoError(t, err)
	second, err := runStress(context.Background(), cfg, ordering.NaturalOrder{}, newStressMetrics(), nil, discardLogger())
	require.NoError(t, err)

	first.Elapsed, second.Elapsed = 0, 0
	assert.Equal(t, first, second)
}

func TestRunStressEveryOrder(t *testing.T) {
	for _, order := range ordering.All() {
		t.Run(order.Name(), func(t *testing.T) {
			cfg := StressConfig{Size: 1500, CheckEvery: 100, Seed: 3}
			res, err := runStress(context.Background(), cfg, order, newStressMetrics(), nil, discardLogger())
			require.NoError(t, err)
			assert.Equal(t, 15, res.Validations)
		})
	}
}

func TestRunStressMetrics(t *testing.T) {
	metrics := newStressMetrics()
	cfg := StressConfig{Size: 600, CheckEvery: 200, Seed: 11}

	res, err := runStress(context.Background(), cfg, ordering.NumericOrder{}, metrics, nil, discardLogger())
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, metrics.WriteText(&out))
	text := out.String()

	assert.Contains(t, text, "# TYPE orchard_stress_operations_total counter")
	assert.Contains(t, text, `orchard_stress_operations_total{op="insert",result="added"}`)
	assert.Contains(t, text, "orchard_stress_validations_total 3")
	assert.Contains(t, text, "orchard_stress_operation_duration_seconds_bucket")
	assert.Contains(t, text, "orchard_stress_tree_size ")
	assert.Positive(t, res.FinalHeight)
}

func TestRunStressStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := StressConfig{Size: 5000, CheckEvery: 1000, Seed: 1}
	res, err := runStress(ctx, cfg, ordering.NaturalOrder{}, newStressMetrics(), nil, discardLogger())
	require.ErrorIs(t, err, context.Canceled)
	assert.Less(t, res.Operations, cfg.Size)
}

func TestVerifySnapshotDetectsChanges(t *testing.T) {
	tree := avl.FromSlice([]string{"a", "b"})

	assert.NoError(t, verifySnapshot(stressSnapshot{after: 1, tree: tree, keys: []string{"a", "b"}}))
	assert.Error(t, verifySnapshot(stressSnapshot{after: 1, tree: tree, keys: []string{"a"}}))
}
