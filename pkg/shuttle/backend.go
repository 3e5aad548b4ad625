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

import "context"

// CallRequest is one tool invocation submitted to a backend.
type CallRequest struct {
	// ID echoes the originating tool call's id (may be empty).
	ID string `json:"id,omitempty"`

	// Name is the tool to invoke.
	Name string `json:"name"`

	// Args are the tool parameters.
	Args map[string]interface{} `json:"args,omitempty"`
}

// CallResult is the backend's record of one completed invocation.
type CallResult struct {
	// ID echoes the request id.
	ID string `json:"id,omitempty"`

	// Name is the tool that was invoked.
	Name string `json:"name"`

	// Success indicates whether the tool completed without error.
	Success bool `json:"success"`

	// Result holds the tool's result payload (nil on failure).
	Result interface{} `json:"result,omitempty"`

	// Error holds the raw error text when Success is false.
	Error string `json:"error,omitempty"`

	// ExecutionTimeMs is the wall-clock duration of this invocation.
	ExecutionTimeMs int64 `json:"execution_time_ms"`
}

// Backend is the contract the execution engine consumes. Implementations
// run named tools; the engine never cares how (in-process registry, MCP
// server, separate worker process).
type Backend interface {
	// CallToolsOptimized executes a whole batch in one round-trip.
	// It must never return an error for an individual tool failure;
	// failures are reported per-result. An error return means the
	// backend itself was unavailable and the caller should fall back
	// to per-call execution.
	//
	// The returned slice has the same length and order as calls.
	CallToolsOptimized(ctx context.Context, calls []CallRequest) ([]CallResult, error)

	// CallTool executes a single tool, returning its payload or an
	// error. This is the legacy per-call primitive.
	CallTool(ctx context.Context, name string, args map[string]interface{}) (interface{}, error)
}
