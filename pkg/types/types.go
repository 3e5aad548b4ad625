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

// Package types contains the shared data model for the bobbin tool engine.
// This package breaks import cycles by providing common types that the
// validation, shuttle and weft packages all depend on.
package types

import "encoding/json"

// ToolCall represents a tool invocation proposed by an LLM.
type ToolCall struct {
	// ID is the provider-assigned call identifier. Required by OpenAI- and
	// Mistral-style calling conventions, optional for Anthropic- and
	// Ollama-style ones.
	ID string `json:"id,omitempty"`

	// Name is the tool name.
	Name string `json:"name"`

	// Arguments contains the tool parameters in native-object form.
	Arguments map[string]interface{} `json:"arguments,omitempty"`

	// RawArguments holds the JSON-encoded string form of the arguments.
	// Some provider conventions (Ollama-style) deliver arguments as an
	// encoded string rather than a native object. Non-empty RawArguments
	// with nil Arguments means the call arrived in string form.
	RawArguments string `json:"raw_arguments,omitempty"`
}

// ArgumentsAreString reports whether the call's arguments arrived as a
// JSON-encoded string rather than a native object.
func (c *ToolCall) ArgumentsAreString() bool {
	return c.Arguments == nil && c.RawArguments != ""
}

// Args returns the call arguments as a native map, decoding the string form
// when necessary. Returns an empty map for a call with no arguments.
func (c *ToolCall) Args() (map[string]interface{}, error) {
	if c.Arguments != nil {
		return c.Arguments, nil
	}
	if c.RawArguments == "" {
		return map[string]interface{}{}, nil
	}
	var args map[string]interface{}
	if err := json.Unmarshal([]byte(c.RawArguments), &args); err != nil {
		return nil, err
	}
	return args, nil
}

// ToolResult represents the outcome of a single tool call. Results are
// created by the executor at call completion and are immutable thereafter.
type ToolResult struct {
	// ID echoes the originating call's ID (may be empty).
	ID string `json:"id,omitempty"`

	// Name is the tool name.
	Name string `json:"name"`

	// Result holds the serialized result payload. On success this is the
	// JSON-encoded tool output; on failure it carries a categorized,
	// human-readable error message rather than raw exception text.
	Result string `json:"result"`

	// Success indicates whether the call completed without error.
	Success bool `json:"success"`

	// ExecutionTime is the wall-clock duration of this call in
	// milliseconds, measured independently of its batch siblings.
	ExecutionTime int64 `json:"execution_time_ms"`
}

// ToolDescriptor describes a tool available to the model during a turn.
type ToolDescriptor struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ValidationResult is the outcome of validating a batch of tool calls
// against a provider convention. Errors are accumulated in call order;
// a batch with zero errors is valid. Validation informs but does not
// block execution.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Iteration records one execution round of an agentic workflow.
type Iteration struct {
	// Round is the 1-based iteration number.
	Round int `json:"round"`

	// Calls are the tool calls issued this round.
	Calls []ToolCall `json:"calls"`

	// Results are the per-call outcomes, ordered as submitted.
	Results []ToolResult `json:"results"`

	// Chained are the follow-up calls the analyzer proposed from this
	// round's results (possibly truncated by the iteration cap).
	Chained []ToolCall `json:"chained,omitempty"`
}

// WorkflowTrace is the full record of an agentic workflow invocation.
// It is owned exclusively by the orchestrator call that created it and is
// never persisted.
type WorkflowTrace struct {
	// ID identifies the workflow invocation (for log correlation).
	ID string `json:"id"`

	// Workflow holds the per-round records in execution order.
	Workflow []Iteration `json:"workflow"`

	// Results is the flattened result list across all rounds, ordered by
	// round and by submission order within each round.
	Results []ToolResult `json:"results"`

	// Summary is the model-consumable synthesis of Results.
	Summary string `json:"summary"`
}

// SuccessCount returns the number of successful results in the trace.
func (t *WorkflowTrace) SuccessCount() int {
	n := 0
	for _, r := range t.Results {
		if r.Success {
			n++
		}
	}
	return n
}

// FailureCount returns the number of failed results in the trace.
func (t *WorkflowTrace) FailureCount() int {
	return len(t.Results) - t.SuccessCount()
}
