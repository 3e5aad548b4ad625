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
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolCall_Args_NativeMap(t *testing.T) {
	call := &ToolCall{
		Name:      "web_search",
		Arguments: map[string]interface{}{"query": "golang"},
	}

	args, err := call.Args()
	require.NoError(t, err)
	assert.Equal(t, "golang", args["query"])
	assert.False(t, call.ArgumentsAreString())
}

func TestToolCall_Args_RawJSON(t *testing.T) {
	call := &ToolCall{
		Name:         "web_search",
		RawArguments: `{"query":"golang","limit":5}`,
	}

	require.True(t, call.ArgumentsAreString())

	args, err := call.Args()
	require.NoError(t, err)
	assert.Equal(t, "golang", args["query"])
	assert.Equal(t, float64(5), args["limit"])
}

func TestToolCall_Args_InvalidJSON(t *testing.T) {
	call := &ToolCall{
		Name:         "web_search",
		RawArguments: `{"query":`,
	}

	_, err := call.Args()
	assert.Error(t, err)
}

func TestToolCall_Args_Empty(t *testing.T) {
	call := &ToolCall{Name: "datetime"}

	args, err := call.Args()
	require.NoError(t, err)
	assert.Empty(t, args)
}

func TestWorkflowTrace_Counts(t *testing.T) {
	trace := &WorkflowTrace{
		Results: []ToolResult{
			{Name: "a", Success: true},
			{Name: "b", Success: false},
			{Name: "c", Success: true},
		},
	}

	assert.Equal(t, 2, trace.SuccessCount())
	assert.Equal(t, 1, trace.FailureCount())
}
