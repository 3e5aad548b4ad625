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
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/teradata-labs/bobbin/pkg/providers"
	"github.com/teradata-labs/bobbin/pkg/shuttle"
	"github.com/teradata-labs/bobbin/pkg/shuttle/builtin"
	"github.com/teradata-labs/bobbin/pkg/storage"
	"github.com/teradata-labs/bobbin/pkg/types"
	"github.com/teradata-labs/bobbin/pkg/validation"
	"github.com/teradata-labs/bobbin/pkg/weft"
)

var runJSONOutput bool

var runCmd = &cobra.Command{
	Use:   "run [batch.json]",
	Short: "Execute a batch of tool calls",
	Long: `Execute a batch of tool calls through the full workflow: validation,
concurrent execution, follow-up chaining and result formatting.

The batch is a JSON array of tool calls read from the given file, or from
stdin when no file is given:

  [{"id": "1", "name": "web_search", "arguments": {"query": "golang"}}]`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func init() {
	runCmd.Flags().BoolVar(&runJSONOutput, "json", false, "print the full workflow trace as JSON")
	rootCmd.AddCommand(runCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	logger, err := buildLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	calls, err := readBatch(args)
	if err != nil {
		return err
	}

	engine, registry, cleanup, err := buildEngine(logger)
	if err != nil {
		return err
	}
	defer cleanup()

	trace := engine.ExecuteWorkflow(context.Background(), calls, cfg.Provider.ID, registry.Descriptors())

	if runJSONOutput {
		out, err := json.MarshalIndent(trace, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode trace: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	formatter := weft.NewFormatter(logger)
	fmt.Println(formatter.Aggregate(trace.Results))
	return nil
}

func readBatch(args []string) ([]types.ToolCall, error) {
	var data []byte
	var err error
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to read batch file: %w", err)
		}
	} else {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read batch from stdin: %w", err)
		}
	}

	var calls []types.ToolCall
	if err := json.Unmarshal(data, &calls); err != nil {
		return nil, fmt.Errorf("failed to parse batch: %w", err)
	}
	return calls, nil
}

// buildEngine wires the registry, backend, validator and orchestrator from
// the loaded config. The returned cleanup closes the memory store.
func buildEngine(logger *zap.Logger) (*weft.Orchestrator, *shuttle.Registry, func(), error) {
	store, err := storage.NewMemoryStore(storage.MemoryStoreConfig{Path: cfg.Memory.Path})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open memory store: %w", err)
	}
	cleanup := func() { _ = store.Close() }

	fileBaseDir := cfg.Tools.FileReadBaseDir
	if fileBaseDir == "" {
		fileBaseDir = cfg.DataDir
	}

	registry := shuttle.NewRegistry()
	registry.Register(builtin.NewMemoryStoreTool(store))
	registry.Register(builtin.NewMemorySearchTool(store))
	registry.Register(builtin.NewDateTimeTool())
	registry.Register(builtin.NewFileReadTool(fileBaseDir))

	backend := shuttle.NewLocalBackend(registry, logger)

	validator := validation.NewValidator(validation.Config{
		Conventions: providers.Defaults(),
		Schemas:     registry.Schemas(),
		Logger:      logger,
	})

	executor, err := weft.NewExecutor(weft.ExecutorConfig{
		Backend:   backend,
		Validator: validator,
		Logger:    logger,
	})
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}

	orchestrator, err := weft.NewOrchestrator(weft.OrchestratorConfig{
		Executor:      executor,
		Analyzer:      weft.NewChainAnalyzer(cfg.Engine.MaxFollowUps, logger),
		Formatter:     weft.NewFormatter(logger),
		MaxIterations: cfg.Engine.MaxIterations,
		Logger:        logger,
	})
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}

	return orchestrator, registry, cleanup, nil
}
