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
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/carlmjohnson/versioninfo"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/eliottgray/orchard/avl"
	"github.com/eliottgray/orchard/ordering"
)

// app carries what every command needs once flags and config are resolved.
type app struct {
	configPath string
	orderName  string
	logLevel   string
	inputs     []string

	config *Config
	order  ordering.Order
	logger *slog.Logger
}

// setup loads the config file and applies flag overrides on top of it.
func (a *app) setup(cmd *cobra.Command) error {
	config, err := LoadConfig(a.configPath)
	a.config = config

	if cmd.Flags().Changed("order") {
		a.config.Tree.Order = a.orderName
	}
	if cmd.Flags().Changed("log-level") {
		a.config.Log.Level = a.logLevel
	}

	logger, lerr := newLogger(os.Stderr, a.config.Log)
	if lerr != nil {
		return lerr
	}
	a.logger = logger
	if err != nil {
		a.logger.Warn("using default settings", "err", err)
	}

	order, err := ordering.Lookup(a.config.Tree.Order)
	if err != nil {
		return err
	}
	a.order = order
	return nil
}

func (a *app) newTree() *avl.Tree[string] {
	return avl.NewFunc(a.order.Compare)
}

// loadInputs builds a tree from the --input files, or from stdin when
// allowStdin is set and no files were given.
func (a *app) loadInputs(allowStdin bool) (*avl.Tree[string], error) {
	if len(a.inputs) == 0 && !allowStdin {
		return a.newTree(), nil
	}
	tree, stats, err := loadKeyFiles(a.inputs, a.order.Compare, false, a.logger)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("input loaded", "added", stats.Added, "replaced", stats.Replaced, "repeated", stats.Repeated)
	return tree, nil
}

func (a *app) newSession(tree *avl.Tree[string]) *Session {
	ttl := time.Duration(a.config.UI.RenderCacheMinutes) * time.Minute
	return NewSession(a.order, tree, a.config.Tree.HistoryDepth, NewRenderCache(ttl), a.logger)
}

// runScript executes session commands line by line, writing each result to
// out. With keepGoing, failed commands are reported and skipped.
func runScript(session *Session, r io.Reader, name string, out, errOut io.Writer, keepGoing bool) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		result, err := session.Execute(line)
		if err != nil {
			if !keepGoing {
				return fmt.Errorf("%s:%d: %w", name, lineNo, err)
			}
			fmt.Fprintf(errOut, "%s%s:%d: %v%s\n", Error, name, lineNo, err, Reset)
			continue
		}
		if result != "" {
			fmt.Fprintln(out, result)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	return nil
}

func main() {
	InitializeColors()

	banner := fmt.Sprintf(`
🌳 orchard: persistent AVL trees at the command line [Version: %s%s%s]
`, Green, versioninfo.Short(), Reset)

	a := &app{}

	var cmdLoad = &cobra.Command{
		Use:   "load [FILE...]",
		Short: "Build a tree from key files and report on it",
		Long:  fmt.Sprintf("%s\n%s", banner, "Load reads one key per line from each FILE (or stdin) into a single tree"),
		RunE: func(cmd *cobra.Command, args []string) error {
			showProgress, _ := cmd.Flags().GetBool("progress")
			tree, stats, err := loadKeyFiles(args, a.order.Compare, showProgress, a.logger)
			if err != nil {
				return err
			}

			if listing, _ := cmd.Flags().GetBool("list"); listing {
				keys := tree.Ascending()
				if desc, _ := cmd.Flags().GetBool("desc"); desc {
					keys = tree.Descending()
				}
				fmt.Println(strings.Join(keys, "\n"))
			}

			fmt.Printf("%s%d keys%s (%s order), height %d\n", Green, tree.Size(), Reset, a.order.Name(), tree.Height())
			fmt.Printf("  lines %d, skipped %d, added %d, replaced %d, repeated %d in %s\n",
				stats.Lines, stats.Skipped, stats.Added, stats.Replaced, stats.Repeated, stats.Elapsed.Round(time.Microsecond))
			if low, ok := tree.Min(); ok {
				high, _ := tree.Max()
				fmt.Printf("  min %q, max %q\n", low, high)
			}

			if check, _ := cmd.Flags().GetBool("validate"); check {
				if err := tree.Validate(); err != nil {
					return err
				}
				fmt.Printf("  %s✓ invariants hold%s\n", Green, Reset)
			}
			return nil
		},
	}
	cmdLoad.Flags().Bool("progress", false, "show a progress bar while loading")
	cmdLoad.Flags().Bool("list", false, "print every key")
	cmdLoad.Flags().Bool("desc", false, "with --list, print keys in descending order")
	cmdLoad.Flags().Bool("validate", false, "check every tree invariant after loading")

	var cmdQuery = &cobra.Command{
		Use:   "query KEY...",
		Short: "Check whether keys are present",
		Long:  fmt.Sprintf("%s\n%s", banner, "Query loads the --input files (or stdin) and reports each KEY"),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := a.loadInputs(true)
			if err != nil {
				return err
			}
			for _, key := range args {
				rank, found := tree.Rank(key)
				if found {
					fmt.Printf("%s%s%s\tpresent\trank %d\n", Green, key, Reset, rank)
				} else {
					fmt.Printf("%s%s%s\tabsent\twould be rank %d\n", Warning, key, Reset, rank)
				}
			}
			return nil
		},
	}

	var cmdRange = &cobra.Command{
		Use:   "range START END",
		Short: "List keys between two bounds, inclusive",
		Long:  fmt.Sprintf("%s\n%s", banner, "Range loads the --input files (or stdin) and prints START <= key <= END in order"),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := a.loadInputs(true)
			if err != nil {
				return err
			}
			for key := range tree.RangeSeq(args[0], args[1]) {
				fmt.Println(key)
			}
			return nil
		},
	}

	var cmdPrint = &cobra.Command{
		Use:   "print",
		Short: "Draw the tree built from the input",
		Long:  fmt.Sprintf("%s\n%s", banner, "Print draws the tree sideways, right subtree on top, with each node's balance factor and subtree size"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := a.loadInputs(true)
			if err != nil {
				return err
			}
			depth := tree.Print(os.Stdout)
			a.logger.Debug("printed tree", "depth", depth)
			return nil
		},
	}

	var cmdScript = &cobra.Command{
		Use:   "script [FILE...]",
		Short: "Run session commands from files or stdin",
		Long:  fmt.Sprintf("%s\n%s", banner, "Script runs one session command per line, starting from the --input keys. Run `help` inside a script for the command list"),
		RunE: func(cmd *cobra.Command, args []string) error {
			keepGoing, _ := cmd.Flags().GetBool("keep-going")
			tree, err := a.loadInputs(false)
			if err != nil {
				return err
			}
			session := a.newSession(tree)

			if len(args) == 0 {
				return runScript(session, os.Stdin, "stdin", os.Stdout, os.Stderr, keepGoing)
			}
			for _, path := range args {
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("failed to open script: %w", err)
				}
				err = runScript(session, f, path, os.Stdout, os.Stderr, keepGoing)
				f.Close()
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmdScript.Flags().Bool("keep-going", false, "report failing commands and continue")

	var cmdExplore = &cobra.Command{
		Use:   "explore",
		Short: "Interactive session with a live tree diagram",
		Long:  fmt.Sprintf("%s\n%s", banner, "Explore opens a terminal UI to edit the tree, browse its versions and undo changes"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := a.loadInputs(false)
			if err != nil {
				return err
			}
			return runExplore(a.newSession(tree))
		},
	}

	var cmdStress = &cobra.Command{
		Use:   "stress",
		Short: "Randomized insert/delete run with invariant checks",
		Long:  fmt.Sprintf("%s\n%s", banner, "Stress applies random edits, cross-checks every version against a map and validates the tree periodically"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.config.Stress
			if cmd.Flags().Changed("size") {
				cfg.Size, _ = cmd.Flags().GetInt("size")
			}
			if cmd.Flags().Changed("check-every") {
				cfg.CheckEvery, _ = cmd.Flags().GetInt("check-every")
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed, _ = cmd.Flags().GetUint64("seed")
			}
			if cfg.Size < 1 {
				return fmt.Errorf("stress size must be positive, got %d", cfg.Size)
			}

			var bar *progressbar.ProgressBar
			if showProgress, _ := cmd.Flags().GetBool("progress"); showProgress {
				bar = progressbar.NewOptions(cfg.Size,
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionSetDescription("🧪 Stressing tree..."),
					progressbar.OptionSetWidth(50),
					progressbar.OptionShowCount(),
					progressbar.OptionOnCompletion(func() {
						fmt.Fprintln(os.Stderr)
					}),
				)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			metrics := newStressMetrics()
			res, err := runStress(ctx, cfg, a.order, metrics, bar, a.logger)
			if bar != nil {
				bar.Finish()
			}
			if err != nil {
				return fmt.Errorf("stress run with seed %d failed: %w", res.Seed, err)
			}

			fmt.Printf("%s✓ %d operations%s in %s (seed %d, %s order)\n", Green, res.Operations, Reset, res.Elapsed.Round(time.Millisecond), res.Seed, a.order.Name())
			fmt.Printf("  inserted %d, replaced %d, deleted %d, absent %d\n", res.Inserted, res.Replaced, res.Deleted, res.Absent)
			fmt.Printf("  %d validations, final size %d, height %d\n", res.Validations, res.FinalSize, res.FinalHeight)

			if showMetrics, _ := cmd.Flags().GetBool("metrics"); showMetrics {
				fmt.Println()
				return metrics.WriteText(os.Stdout)
			}
			return nil
		},
	}
	cmdStress.Flags().Int("size", 0, "number of random operations (default from config)")
	cmdStress.Flags().Int("check-every", 0, "validate after this many operations (default from config)")
	cmdStress.Flags().Uint64("seed", 0, "random seed, 0 for time based (default from config)")
	cmdStress.Flags().Bool("progress", false, "show a progress bar")
	cmdStress.Flags().Bool("metrics", false, "print run metrics in Prometheus text format")

	var cmdSettings = &cobra.Command{
		Use:   "settings",
		Short: "Show the effective configuration",
		Long:  fmt.Sprintf("%s\n%s", banner, "Settings prints the configuration and creates ~/.orchard.yaml when missing"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return displaySettings(os.Stdout, a.configPath, a.config)
		},
	}

	var cmdUsage = &cobra.Command{
		Use:   "usage",
		Short: "Print Orchard usage guide",
		Long:  fmt.Sprintf("%s\n%s", banner, "Usage displays the orchard CLI usage guide"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(getHelpMessage())
			return nil
		},
	}

	var cmdVersion = &cobra.Command{
		Use:   "version",
		Short: "Print Orchard version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(versioninfo.Short())
			return nil
		},
	}

	var rootCmd = &cobra.Command{
		Use:          "orchard",
		Version:      versioninfo.Short(),
		Long:         banner,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ~/.orchard.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.orderName, "order", "", "key order: "+strings.Join(ordering.Names(), ", "))
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringSliceVarP(&a.inputs, "input", "i", nil, "key files to start from (- for stdin)")

	rootCmd.AddCommand(cmdLoad, cmdQuery, cmdRange, cmdPrint, cmdScript, cmdExplore, cmdStress, cmdSettings, cmdUsage, cmdVersion)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
