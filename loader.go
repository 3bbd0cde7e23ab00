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
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/willf/bloom"

	"github.com/eliottgray/orchard/avl"
)

const (
	// Sized for typical key files; the filter degrades gracefully past it
	loaderExpectedKeys  = 1 << 20
	loaderFalsePositive = 0.01
	maxKeyLength        = 1 << 16
)

// LoadStats summarises one or more loads into the same tree.
type LoadStats struct {
	Lines    int           // lines read, including skipped ones
	Skipped  int           // blank and comment lines
	Added    int           // keys that grew the tree
	Replaced int           // keys equal under the order but spelled differently
	Repeated int           // exact repeats of a key already stored
	Elapsed  time.Duration // time spent reading and inserting
}

// Loader builds a tree from line-oriented input. A bloom filter of the
// spellings seen so far lets exact repeats skip the insert, which would
// otherwise rebuild a whole path only to store the same string again.
type Loader struct {
	tree   *avl.Tree[string]
	seen   *bloom.BloomFilter
	stats  LoadStats
	bar    *progressbar.ProgressBar
	logger *slog.Logger
}

// NewLoader starts from tree, which may already hold keys.
func NewLoader(tree *avl.Tree[string], showProgress bool, logger *slog.Logger) *Loader {
	l := &Loader{
		tree:   tree,
		seen:   bloom.NewWithEstimates(loaderExpectedKeys, loaderFalsePositive),
		logger: logger,
	}
	for key := range tree.All() {
		l.seen.AddString(key)
	}

	if showProgress {
		l.bar = progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("🌱 Loading keys..."),
			progressbar.OptionSetWidth(50),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "█",
				SaucerHead:    "█",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintf(os.Stderr, "\n✅ Loading completed!\n")
			}),
		)
	}
	return l
}

// Add inserts one key.
func (l *Loader) Add(key string) {
	if l.seen.TestString(key) && l.storedExactly(key) {
		l.stats.Repeated++
		return
	}
	l.seen.AddString(key)

	before := l.tree.Size()
	l.tree = l.tree.Insert(key)
	if l.tree.Size() > before {
		l.stats.Added++
	} else {
		l.stats.Replaced++
	}
}

// storedExactly confirms a bloom hit: the tree must hold this very
// spelling, not just an equal key.
func (l *Loader) storedExactly(key string) bool {
	rank, found := l.tree.Rank(key)
	if !found {
		return false
	}
	stored, _ := l.tree.At(rank)
	return stored == key
}

// ReadFrom reads one key per line. Surrounding whitespace is trimmed, and
// blank lines and lines starting with # are skipped.
func (l *Loader) ReadFrom(r io.Reader, name string) error {
	start := time.Now()
	defer func() { l.stats.Elapsed += time.Since(start) }()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxKeyLength)
	count := 0
	for scanner.Scan() {
		l.stats.Lines++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			l.stats.Skipped++
			continue
		}
		l.Add(line)
		count++

		if l.bar != nil {
			l.bar.Add(1)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	l.logger.Debug("loaded keys", "source", name, "keys", count, "size", l.tree.Size())
	return nil
}

// LoadFile reads path, or standard input when path is "-".
func (l *Loader) LoadFile(path string) error {
	if path == "-" {
		return l.ReadFrom(os.Stdin, "stdin")
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open key file: %w", err)
	}
	defer f.Close()
	return l.ReadFrom(f, path)
}

// Finish completes the progress bar, if any.
func (l *Loader) Finish() {
	if l.bar != nil {
		l.bar.Finish()
	}
}

func (l *Loader) Tree() *avl.Tree[string] {
	return l.tree
}

func (l *Loader) Stats() LoadStats {
	return l.stats
}

// loadKeyFiles builds a tree from paths using the given comparison. With no
// paths it reads standard input.
func loadKeyFiles(paths []string, compare avl.CompareFunc[string], showProgress bool, logger *slog.Logger) (*avl.Tree[string], LoadStats, error) {
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	loader := NewLoader(avl.NewFunc(compare), showProgress, logger)
	defer loader.Finish()

	for _, path := range paths {
		if err := loader.LoadFile(path); err != nil {
			return nil, loader.Stats(), err
		}
	}
	return loader.Tree(), loader.Stats(), nil
}
