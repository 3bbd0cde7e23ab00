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
	"context"
	"fmt"
	"log/slog"
	"maps"
	"math/rand/v2"
	"runtime"
	"slices"
	"strconv"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/eliottgray/orchard/avl"
	"github.com/eliottgray/orchard/ordering"
)

type stressResult struct {
	Seed        uint64
	Operations  int
	Inserted    int
	Replaced    int
	Deleted     int
	Absent      int
	Validations int
	FinalSize   int
	FinalHeight int
	Elapsed     time.Duration
}

// stressSnapshot is a version kept to prove later edits left it alone.
type stressSnapshot struct {
	after int
	tree  *avl.Tree[string]
	keys  []string
}

func sortedModel(model map[string]struct{}, order ordering.Order) []string {
	keys := slices.Collect(maps.Keys(model))
	slices.SortFunc(keys, order.Compare)
	return keys
}

func verifySnapshot(snap stressSnapshot) error {
	if err := snap.tree.Validate(); err != nil {
		return fmt.Errorf("version after %d operations: %w", snap.after, err)
	}
	if got := snap.tree.Ascending(); !slices.Equal(got, snap.keys) {
		return fmt.Errorf("version after %d operations changed: holds %d keys, recorded %d", snap.after, len(got), len(snap.keys))
	}
	return nil
}

// runStress applies cfg.Size random inserts and deletes, checking the tree
// against a map after every edit and validating it every cfg.CheckEvery
// edits. Each validated version is kept and checked again at the end.
func runStress(ctx context.Context, cfg StressConfig, order ordering.Order, metrics *stressMetrics, bar *progressbar.ProgressBar, logger *slog.Logger) (stressResult, error) {
	res := stressResult{Seed: cfg.Seed}
	if res.Seed == 0 {
		res.Seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(res.Seed, res.Seed^0x9e3779b97f4a7c15))
	keySpace := max(cfg.Size/2, 1)
	checkEvery := max(cfg.CheckEvery, 1)

	logger.Info("stress run starting", "operations", cfg.Size, "check_every", checkEvery, "seed", res.Seed, "order", order.Name())

	tree := avl.NewFunc(order.Compare)
	model := make(map[string]struct{})
	var snapshots []stressSnapshot
	start := time.Now()

	for i := 1; i <= cfg.Size; i++ {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}

		key := strconv.Itoa(rng.IntN(keySpace))
		_, present := model[key]

		if rng.IntN(3) < 2 {
			t0 := time.Now()
			tree = tree.Insert(key)
			metrics.opDuration.WithLabelValues("insert").Observe(time.Since(t0).Seconds())

			if present {
				res.Replaced++
				metrics.operations.WithLabelValues("insert", "replaced").Inc()
			} else {
				res.Inserted++
				model[key] = struct{}{}
				metrics.operations.WithLabelValues("insert", "added").Inc()
			}
		} else {
			t0 := time.Now()
			next := tree.Delete(key)
			metrics.opDuration.WithLabelValues("delete").Observe(time.Since(t0).Seconds())

			switch {
			case present && next == tree:
				return res, fmt.Errorf("operation %d: delete %s left the tree unchanged", i, key)
			case !present && next != tree:
				return res, fmt.Errorf("operation %d: delete of absent %s built a new tree", i, key)
			case present:
				res.Deleted++
				delete(model, key)
				metrics.operations.WithLabelValues("delete", "removed").Inc()
			default:
				res.Absent++
				metrics.operations.WithLabelValues("delete", "absent").Inc()
			}
			tree = next
		}
		res.Operations++

		if tree.Size() != len(model) {
			return res, fmt.Errorf("operation %d: tree holds %d keys, expected %d", i, tree.Size(), len(model))
		}
		if bar != nil {
			bar.Add(1)
		}

		if i%checkEvery == 0 || i == cfg.Size {
			if err := tree.Validate(); err != nil {
				return res, fmt.Errorf("after %d operations: %w", i, err)
			}
			res.Validations++
			metrics.validations.Inc()
			metrics.treeSize.Set(float64(tree.Size()))
			metrics.treeHeight.Set(float64(tree.Height()))
			snapshots = append(snapshots, stressSnapshot{after: i, tree: tree, keys: sortedModel(model, order)})

			logger.Debug("checkpoint", "operations", i, "size", tree.Size(), "height", tree.Height())
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, snap := range snapshots {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return verifySnapshot(snap)
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}

	res.FinalSize = tree.Size()
	res.FinalHeight = tree.Height()
	res.Elapsed = time.Since(start)

	logger.Info("stress run finished", "operations", res.Operations, "size", res.FinalSize, "height", res.FinalHeight, "elapsed", res.Elapsed)
	return res, nil
}
