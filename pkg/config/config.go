// Copyright 2026 Teradata
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

// Package config loads the bobbin engine configuration.
// Priority: CLI flags > config file > env vars > defaults.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultConfigFileName is the config file name without extension.
const DefaultConfigFileName = "bobbin"

// Config holds all configuration for the bobbin tool engine.
type Config struct {
	// DataDir is computed from BOBBIN_DATA_DIR or ~/.bobbin, never from
	// the config file.
	DataDir string `mapstructure:"-"`

	Engine   EngineConfig   `mapstructure:"engine"`
	Provider ProviderConfig `mapstructure:"provider"`
	Memory   MemoryConfig   `mapstructure:"memory"`
	Tools    ToolsConfig    `mapstructure:"tools"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// EngineConfig bounds the execute-analyze loop.
type EngineConfig struct {
	// MaxIterations caps execution rounds per workflow.
	MaxIterations int `mapstructure:"max_iterations"`

	// MaxFollowUps caps chained calls proposed per round.
	MaxFollowUps int `mapstructure:"max_follow_ups"`
}

// ProviderConfig selects the tool-calling convention batches are
// validated against.
type ProviderConfig struct {
	// ID names the convention (openai, anthropic, ollama, ...).
	ID string `mapstructure:"id"`
}

// MemoryConfig configures the memory store.
type MemoryConfig struct {
	// Path to the SQLite database file. ":memory:" keeps memories
	// in-process only.
	Path string `mapstructure:"path"`

	// SearchLimit is the default result cap for memory searches.
	SearchLimit int `mapstructure:"search_limit"`
}

// ToolsConfig configures builtin tools.
type ToolsConfig struct {
	// FileReadBaseDir sandboxes file_read. Empty uses the data directory.
	FileReadBaseDir string `mapstructure:"file_read_base_dir"`

	// Timezone is the default timezone for get_datetime.
	Timezone string `mapstructure:"timezone"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	// Level is debug, info, warn or error.
	Level string `mapstructure:"level"`

	// File redirects log output when set; empty logs to stderr.
	File string `mapstructure:"file"`
}

// Load reads configuration from the given file, or from
// $BOBBIN_DATA_DIR/bobbin.yaml and the working directory when cfgFile is
// empty. Missing config files are not an error; defaults and environment
// variables still apply.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(DefaultConfigFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(GetDataDir())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
		}
	}

	v.SetEnvPrefix("BOBBIN")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.DataDir = GetDataDir()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("engine.max_iterations", 3)
	v.SetDefault("engine.max_follow_ups", 3)

	v.SetDefault("provider.id", "anthropic")

	v.SetDefault("memory.path", filepath.Join(GetDataDir(), "bobbin.db"))
	v.SetDefault("memory.search_limit", 10)

	v.SetDefault("tools.file_read_base_dir", "")
	v.SetDefault("tools.timezone", "UTC")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "")
}

// Validate checks the configuration for values the engine cannot run with.
func (c *Config) Validate() error {
	if c.Engine.MaxIterations < 1 {
		return fmt.Errorf("engine.max_iterations must be at least 1, got %d", c.Engine.MaxIterations)
	}
	if c.Engine.MaxFollowUps < 0 {
		return fmt.Errorf("engine.max_follow_ups must not be negative, got %d", c.Engine.MaxFollowUps)
	}
	if c.Memory.SearchLimit < 1 {
		return fmt.Errorf("memory.search_limit must be at least 1, got %d", c.Memory.SearchLimit)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}
