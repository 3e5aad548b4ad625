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
package shuttle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// LocalBackend is an in-process Backend over a tool Registry. It gives
// the engine a runnable tool bus without an external process; MCP or
// RPC backends satisfy the same interface.
type LocalBackend struct {
	registry *Registry
	logger   *zap.Logger
}

// NewLocalBackend creates a backend over the given registry.
func NewLocalBackend(registry *Registry, logger *zap.Logger) *LocalBackend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalBackend{
		registry: registry,
		logger:   logger,
	}
}

// CallToolsOptimized executes the whole batch concurrently in one call.
// Individual tool failures are reported per-result and never abort
// siblings; the error return is reserved for backend-level faults.
func (b *LocalBackend) CallToolsOptimized(ctx context.Context, calls []CallRequest) ([]CallResult, error) {
	if b.registry == nil {
		return nil, fmt.Errorf("tool registry not configured")
	}
	if len(calls) == 0 {
		return []CallResult{}, nil
	}

	results := make([]CallResult, len(calls))
	var wg sync.WaitGroup

	for idx, call := range calls {
		wg.Add(1)
		go func(i int, req CallRequest) {
			defer wg.Done()
			results[i] = b.callOne(ctx, req)
		}(idx, call)
	}
	wg.Wait()

	return results, nil
}

// CallTool executes a single tool, returning its payload or an error.
func (b *LocalBackend) CallTool(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	tool, ok := b.registry.Get(name)
	if !ok {
		return nil, fmt.Errorf("tool not found: %s", name)
	}
	return tool.Execute(ctx, args)
}

// callOne runs one request with its own timing and panic isolation so a
// misbehaving tool cannot take down the batch goroutines.
func (b *LocalBackend) callOne(ctx context.Context, req CallRequest) (res CallResult) {
	res = CallResult{ID: req.ID, Name: req.Name}
	start := time.Now()

	defer func() {
		res.ExecutionTimeMs = time.Since(start).Milliseconds()
		if r := recover(); r != nil {
			res.Success = false
			res.Result = nil
			res.Error = fmt.Sprintf("tool panicked: %v", r)
			b.logger.Error("Tool panicked during execution",
				zap.String("tool", req.Name),
				zap.Any("panic", r))
		}
	}()

	tool, ok := b.registry.Get(req.Name)
	if !ok {
		res.Error = fmt.Sprintf("tool not found: %s", req.Name)
		return res
	}

	payload, err := tool.Execute(ctx, req.Args)
	if err != nil {
		res.Error = err.Error()
		b.logger.Debug("Tool execution failed",
			zap.String("tool", req.Name),
			zap.Error(err))
		return res
	}

	res.Success = true
	res.Result = payload
	return res
}
