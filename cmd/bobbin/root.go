// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/teradata-labs/bobbin/internal/version"
	"github.com/teradata-labs/bobbin/pkg/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:     "bobbin",
	Short:   "Bobbin - Multi-tool agentic execution engine",
	Long:    `Bobbin validates LLM-proposed tool calls per provider convention, executes them concurrently against a tool backend, chains bounded follow-up calls, and formats aggregate results for model re-injection.`,
	Version: version.Get(),
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $BOBBIN_DATA_DIR/bobbin.yaml)")
	rootCmd.PersistentFlags().String("provider", "", "tool-calling convention to validate against (openai, anthropic, mistral, ollama, ...)")
	rootCmd.PersistentFlags().Int("max-iterations", 0, "max execution rounds per workflow")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
}

// initConfig loads configuration and applies flag overrides.
func initConfig() {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if v, _ := rootCmd.PersistentFlags().GetString("provider"); v != "" {
		loaded.Provider.ID = v
	}
	if v, _ := rootCmd.PersistentFlags().GetInt("max-iterations"); v > 0 {
		loaded.Engine.MaxIterations = v
	}
	if v, _ := rootCmd.PersistentFlags().GetString("log-level"); v != "" {
		loaded.Logging.Level = v
	}

	cfg = loaded
}

// buildLogger creates the production logger from config. Stack traces only
// for ERROR level.
func buildLogger() (*zap.Logger, error) {
	zapConfig := zap.NewProductionConfig()

	logLevel := zap.InfoLevel
	if cfg.Logging.Level != "" {
		if err := logLevel.UnmarshalText([]byte(cfg.Logging.Level)); err != nil {
			log.Printf("Invalid log level %q, using INFO: %v", cfg.Logging.Level, err)
		}
	}
	zapConfig.Level = zap.NewAtomicLevelAt(logLevel)

	if cfg.Logging.File != "" {
		zapConfig.OutputPaths = []string{cfg.Logging.File}
		zapConfig.ErrorOutputPaths = []string{cfg.Logging.File}
	}

	return zapConfig.Build(zap.AddStacktrace(zap.ErrorLevel))
}
