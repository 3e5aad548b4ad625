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
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/teradata-labs/bobbin/pkg/shuttle"
	"github.com/teradata-labs/bobbin/pkg/types"
	"github.com/teradata-labs/bobbin/pkg/validation"
)

// Executor runs batches of tool calls against a backend. The optimized
// path hands the whole batch to the backend in one request; if that path
// fails systemically the executor falls back to per-call concurrent
// execution so one broken transport never loses the whole batch.
//
// Every call settles: the returned slice always has one result per input
// call, in submission order, regardless of individual failures.
type Executor struct {
	backend   shuttle.Backend
	validator *validation.Validator
	logger    *zap.Logger

	stats ExecutorStats
}

// ExecutorStats holds cumulative counters. Read via Stats.
type ExecutorStats struct {
	BatchesExecuted  int64
	CallsExecuted    int64
	CallsFailed      int64
	FallbacksTaken   int64
	ValidationErrors int64
}

// ExecutorConfig configures an Executor. Backend is required; Validator
// and Logger are optional.
type ExecutorConfig struct {
	Backend   shuttle.Backend
	Validator *validation.Validator
	Logger    *zap.Logger
}

// NewExecutor creates an executor.
func NewExecutor(cfg ExecutorConfig) (*Executor, error) {
	if cfg.Backend == nil {
		return nil, fmt.Errorf("backend is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{
		backend:   cfg.Backend,
		validator: cfg.Validator,
		logger:    logger,
	}, nil
}

// ExecuteParallel runs every call in the batch and returns one result per
// call, in submission order. Validation violations are logged as warnings
// but never gate execution; the backend's own error reporting decides the
// per-call outcome.
func (e *Executor) ExecuteParallel(ctx context.Context, calls []types.ToolCall, providerID string) []types.ToolResult {
	if len(calls) == 0 {
		return []types.ToolResult{}
	}

	atomic.AddInt64(&e.stats.BatchesExecuted, 1)
	atomic.AddInt64(&e.stats.CallsExecuted, int64(len(calls)))

	if e.validator != nil {
		vr := e.validator.ValidateForProvider(calls, providerID)
		if !vr.Valid {
			atomic.AddInt64(&e.stats.ValidationErrors, int64(len(vr.Errors)))
		}
	}

	e.logger.Info("Executing tool batch",
		zap.Int("calls", len(calls)),
		zap.String("provider", providerID))

	results, err := e.executeOptimized(ctx, calls)
	if err != nil {
		atomic.AddInt64(&e.stats.FallbacksTaken, 1)
		e.logger.Warn("Optimized execution failed, falling back to legacy path",
			zap.Error(err))
		results = e.executeLegacy(ctx, calls)
	}

	for _, r := range results {
		if !r.Success {
			atomic.AddInt64(&e.stats.CallsFailed, 1)
		}
	}
	return results
}

// Stats returns a snapshot of the cumulative counters.
func (e *Executor) Stats() ExecutorStats {
	return ExecutorStats{
		BatchesExecuted:  atomic.LoadInt64(&e.stats.BatchesExecuted),
		CallsExecuted:    atomic.LoadInt64(&e.stats.CallsExecuted),
		CallsFailed:      atomic.LoadInt64(&e.stats.CallsFailed),
		FallbacksTaken:   atomic.LoadInt64(&e.stats.FallbacksTaken),
		ValidationErrors: atomic.LoadInt64(&e.stats.ValidationErrors),
	}
}

// executeOptimized sends the whole batch to the backend. A returned error
// means the batch itself could not run; individual call failures come back
// inside the results and are not errors here.
func (e *Executor) executeOptimized(ctx context.Context, calls []types.ToolCall) ([]types.ToolResult, error) {
	requests := make([]shuttle.CallRequest, len(calls))
	for i, call := range calls {
		args, err := call.Args()
		if err != nil {
			args = map[string]interface{}{}
		}
		requests[i] = shuttle.CallRequest{
			ID:   call.ID,
			Name: call.Name,
			Args: args,
		}
	}

	raw, err := e.backend.CallToolsOptimized(ctx, requests)
	if err != nil {
		return nil, err
	}
	if len(raw) != len(calls) {
		return nil, fmt.Errorf("backend returned %d results for %d calls", len(raw), len(calls))
	}

	results := make([]types.ToolResult, len(calls))
	for i, cr := range raw {
		results[i] = e.convertResult(calls[i], cr)
	}
	return results, nil
}

// convertResult turns a backend call result into a settled tool result.
// Failures are categorized so the message carries both the category's
// framing and the raw backend error text.
func (e *Executor) convertResult(call types.ToolCall, cr shuttle.CallResult) types.ToolResult {
	result := types.ToolResult{
		ID:            call.ID,
		Name:          call.Name,
		Success:       cr.Success,
		ExecutionTime: cr.ExecutionTimeMs,
	}
	if cr.Success {
		result.Result = serializeResult(cr.Result)
		return result
	}

	args, _ := call.Args()
	category, message := CategorizeError(call.Name, cr.Error, args)
	result.Result = message
	e.logger.Warn("Tool call failed",
		zap.String("tool", call.Name),
		zap.String("category", string(category)),
		zap.String("error", cr.Error))
	return result
}

// executeLegacy runs each call concurrently against the single-call
// backend path. Panics in a goroutine settle that call as a failure
// rather than crashing the batch.
func (e *Executor) executeLegacy(ctx context.Context, calls []types.ToolCall) []types.ToolResult {
	results := make([]types.ToolResult, len(calls))
	var wg sync.WaitGroup

	for i, call := range calls {
		wg.Add(1)
		go func(idx int, tc types.ToolCall) {
			defer wg.Done()
			results[idx] = e.executeOne(ctx, tc)
		}(i, call)
	}

	wg.Wait()
	return results
}

// executeOne runs a single call and always settles it.
func (e *Executor) executeOne(ctx context.Context, call types.ToolCall) (result types.ToolResult) {
	start := time.Now()
	result = types.ToolResult{ID: call.ID, Name: call.Name}

	defer func() {
		result.ExecutionTime = time.Since(start).Milliseconds()
		if r := recover(); r != nil {
			result.Success = false
			result.Result = fmt.Sprintf("Tool execution failed unexpectedly: %v", r)
			e.logger.Error("Tool call panicked",
				zap.String("tool", call.Name),
				zap.Any("panic", r))
		}
	}()

	args, err := call.Args()
	if err != nil {
		args = map[string]interface{}{}
	}

	value, err := e.backend.CallTool(ctx, call.Name, args)
	if err != nil {
		category, message := CategorizeError(call.Name, err.Error(), args)
		result.Success = false
		result.Result = fmt.Sprintf("Legacy parallel execution failed: %s", message)
		e.logger.Warn("Legacy tool call failed",
			zap.String("tool", call.Name),
			zap.String("category", string(category)))
		return result
	}

	result.Success = true
	result.Result = serializeResult(value)
	return result
}

// serializeResult renders a tool's return value as a string payload.
// Strings pass through; everything else is JSON-encoded.
func serializeResult(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
