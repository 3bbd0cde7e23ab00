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
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/eliottgray/orchard/ordering"
)

const configFileName = ".orchard.yaml"

type TreeConfig struct {
	Order        string `yaml:"order"`
	HistoryDepth int    `yaml:"history_depth"`
}

type StressConfig struct {
	Size       int    `yaml:"size"`
	CheckEvery int    `yaml:"check_every"`
	Seed       uint64 `yaml:"seed"`
}

type UIConfig struct {
	RenderCacheMinutes int `yaml:"render_cache_minutes"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Config struct {
	Tree   TreeConfig   `yaml:"tree"`
	Stress StressConfig `yaml:"stress"`
	UI     UIConfig     `yaml:"ui"`
	Log    LogConfig    `yaml:"log"`
}

func defaultConfig() Config {
	return Config{
		Tree: TreeConfig{
			Order:        "natural",
			HistoryDepth: 256,
		},
		Stress: StressConfig{
			Size:       100000,
			CheckEvery: 10000,
		},
		UI: UIConfig{
			RenderCacheMinutes: 30,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// normalize replaces out-of-range values with their defaults.
func (c *Config) normalize() {
	def := defaultConfig()
	if c.Tree.Order == "" {
		c.Tree.Order = def.Tree.Order
	}
	if c.Tree.HistoryDepth < 1 {
		c.Tree.HistoryDepth = def.Tree.HistoryDepth
	}
	if c.Stress.Size < 1 {
		c.Stress.Size = def.Stress.Size
	}
	if c.Stress.CheckEvery < 1 {
		c.Stress.CheckEvery = def.Stress.CheckEvery
	}
	if c.UI.RenderCacheMinutes < 1 {
		c.UI.RenderCacheMinutes = def.UI.RenderCacheMinutes
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = def.Log.Format
	}
}

func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, configFileName), nil
}

// LoadConfig reads the config file at path, or ~/.orchard.yaml when path
// is empty. A missing file yields the defaults. A file that cannot be read
// or parsed also yields the defaults, together with the error so the caller
// can report it.
func LoadConfig(path string) (*Config, error) {
	config := defaultConfig()

	if path == "" {
		p, err := getConfigPath()
		if err != nil {
			return &config, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &config, nil
	}
	if err != nil {
		return &config, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		fallback := defaultConfig()
		return &fallback, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	config.normalize()

	return &config, nil
}

func createDefaultConfigFile(path string) error {
	config := defaultConfig()
	data, err := yaml.Marshal(&config)
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// displaySettings prints the effective configuration, creating the default
// file first when there is none.
func displaySettings(w io.Writer, path string, config *Config) error {
	if path == "" {
		p, err := getConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}

	configExists := true
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		configExists = false
		fmt.Fprintf(w, "📝 Configuration file not found. Creating default configuration...\n\n")

		if err := createDefaultConfigFile(path); err != nil {
			return err
		}
		fmt.Fprintf(w, "✅ Created default configuration at: %s\n\n", path)
	}

	fmt.Fprintf(w, "🔧 Orchard Configuration Settings\n")
	fmt.Fprintf(w, "═══════════════════════════════════\n\n")

	if configExists {
		fmt.Fprintf(w, "📍 Config file: %s\n", path)
	} else {
		fmt.Fprintf(w, "📍 Config file: %s (newly created)\n", path)
	}

	fmt.Fprintf(w, "📊 Current settings:\n\n")

	fmt.Fprintf(w, "🌳 %sTree:%s\n", Green, Reset)
	fmt.Fprintf(w, "  • %sorder%s: %s\n", Green, Reset, config.Tree.Order)
	if order, err := ordering.Lookup(config.Tree.Order); err == nil {
		fmt.Fprintf(w, "    %s\n", order.Describe())
	} else {
		fmt.Fprintf(w, "    %s%v%s\n", Warning, err, Reset)
	}
	fmt.Fprintf(w, "  • %shistory_depth%s: %d\n", Green, Reset, config.Tree.HistoryDepth)
	fmt.Fprintf(w, "    Versions kept for undo in script and explore sessions\n\n")

	fmt.Fprintf(w, "🧪 %sStress:%s\n", Green, Reset)
	fmt.Fprintf(w, "  • %ssize%s: %d\n", Green, Reset, config.Stress.Size)
	fmt.Fprintf(w, "  • %scheck_every%s: %d\n", Green, Reset, config.Stress.CheckEvery)
	seed := fmt.Sprint(config.Stress.Seed)
	if config.Stress.Seed == 0 {
		seed = "0 (time based)"
	}
	fmt.Fprintf(w, "  • %sseed%s: %s\n\n", Green, Reset, seed)

	fmt.Fprintf(w, "🖥  %sUI:%s\n", Green, Reset)
	fmt.Fprintf(w, "  • %srender_cache_minutes%s: %d\n\n", Green, Reset, config.UI.RenderCacheMinutes)

	fmt.Fprintf(w, "📜 %sLog:%s\n", Green, Reset)
	fmt.Fprintf(w, "  • %slevel%s: %s\n", Green, Reset, config.Log.Level)
	fmt.Fprintf(w, "  • %sformat%s: %s\n\n", Green, Reset, config.Log.Format)

	fmt.Fprintf(w, "💡 Available orders:\n")
	for _, order := range ordering.All() {
		fmt.Fprintf(w, "   %-8s %s\n", order.Name(), order.Describe())
	}

	return nil
}
