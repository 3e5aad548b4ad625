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

package weft

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teradata-labs/bobbin/pkg/types"
)

// WorkflowState tracks where an orchestration run currently is.
type WorkflowState string

const (
	StateIdle      WorkflowState = "idle"
	StateExecuting WorkflowState = "executing"
	StateAnalyzing WorkflowState = "analyzing"
	StateDone      WorkflowState = "done"
)

// DefaultMaxIterations bounds the number of execution rounds per workflow.
const DefaultMaxIterations = 3

// Orchestrator drives the execute-analyze loop: run a batch, let the chain
// analyzer propose follow-ups, run those, until no follow-ups remain or
// the iteration cap is reached. Each ExecuteWorkflow call owns its own
// trace; the orchestrator itself holds no per-run state and is safe for
// concurrent use.
type Orchestrator struct {
	executor      *Executor
	analyzer      *ChainAnalyzer
	formatter     *Formatter
	maxIterations int
	logger        *zap.Logger
}

// OrchestratorConfig configures an Orchestrator. Executor is required.
// A nil Analyzer disables chaining entirely; a nil Formatter gets a
// default one. MaxIterations <= 0 selects the default cap.
type OrchestratorConfig struct {
	Executor      *Executor
	Analyzer      *ChainAnalyzer
	Formatter     *Formatter
	MaxIterations int
	Logger        *zap.Logger
}

// NewOrchestrator creates an orchestrator.
func NewOrchestrator(cfg OrchestratorConfig) (*Orchestrator, error) {
	if cfg.Executor == nil {
		return nil, fmt.Errorf("executor is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	formatter := cfg.Formatter
	if formatter == nil {
		formatter = NewFormatter(logger)
	}
	maxIterations := cfg.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	return &Orchestrator{
		executor:      cfg.Executor,
		analyzer:      cfg.Analyzer,
		formatter:     formatter,
		maxIterations: maxIterations,
		logger:        logger,
	}, nil
}

// ExecuteWorkflow runs the initial batch plus any chained follow-up rounds
// and returns the complete trace. Results across all rounds are flattened
// in execution order, and the summary is built over that flattened list.
// An empty initial batch yields an empty trace with state transitions
// skipped straight to done.
func (o *Orchestrator) ExecuteWorkflow(ctx context.Context, calls []types.ToolCall, providerID string, availableTools []types.ToolDescriptor) *types.WorkflowTrace {
	trace := &types.WorkflowTrace{
		ID:       "workflow-" + uuid.NewString()[:8],
		Workflow: []types.Iteration{},
		Results:  []types.ToolResult{},
	}

	logger := o.logger.With(zap.String("workflow_id", trace.ID))
	state := StateIdle

	pending := calls
	for round := 1; round <= o.maxIterations && len(pending) > 0; round++ {
		state = StateExecuting
		logger.Info("Workflow round starting",
			zap.Int("round", round),
			zap.Int("calls", len(pending)),
			zap.String("state", string(state)))

		results := o.executor.ExecuteParallel(ctx, pending, providerID)

		iteration := types.Iteration{
			Round:   round,
			Calls:   pending,
			Results: results,
		}
		trace.Results = append(trace.Results, results...)
		pending = nil

		if o.analyzer != nil && round < o.maxIterations {
			state = StateAnalyzing
			logger.Debug("Analyzing round results",
				zap.Int("round", round),
				zap.String("state", string(state)))
			chained := o.analyzer.Analyze(results, availableTools)
			iteration.Chained = chained
			pending = chained
		}

		trace.Workflow = append(trace.Workflow, iteration)
	}

	state = StateDone
	trace.Summary = o.formatter.SummarizeForModel(trace.Results)

	logger.Info("Workflow complete",
		zap.Int("rounds", len(trace.Workflow)),
		zap.Int("results", len(trace.Results)),
		zap.Int("succeeded", trace.SuccessCount()),
		zap.Int("failed", trace.FailureCount()),
		zap.String("state", string(state)))
	return trace
}

// MaxIterations returns the configured round cap.
func (o *Orchestrator) MaxIterations() int {
	return o.maxIterations
}
