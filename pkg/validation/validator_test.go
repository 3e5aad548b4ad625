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
package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teradata-labs/bobbin/pkg/shuttle"
	"github.com/teradata-labs/bobbin/pkg/types"
)

func TestValidateForProvider_OpenAIMissingID(t *testing.T) {
	v := NewValidator(Config{})

	result := v.ValidateForProvider([]types.ToolCall{
		{Name: "x", Arguments: map[string]interface{}{}},
	}, "openai")

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "OpenAI tool call missing required id: x", result.Errors[0])
}

func TestValidateForProvider_MistralMissingID(t *testing.T) {
	v := NewValidator(Config{})

	result := v.ValidateForProvider([]types.ToolCall{
		{Name: "lookup", Arguments: map[string]interface{}{}},
	}, "mistral")

	assert.False(t, result.Valid)
	assert.Equal(t, "Mistral tool call missing required id: lookup", result.Errors[0])
}

func TestValidateForProvider_AnthropicNoIDRequired(t *testing.T) {
	v := NewValidator(Config{})

	result := v.ValidateForProvider([]types.ToolCall{
		{Name: "web_search", Arguments: map[string]interface{}{"query": "go"}},
	}, "anthropic")

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateForProvider_StringArgumentsRejected(t *testing.T) {
	v := NewValidator(Config{})

	result := v.ValidateForProvider([]types.ToolCall{
		{ID: "call_1", Name: "web_search", RawArguments: `{"query":"go"}`},
	}, "openai")

	assert.False(t, result.Valid)
	assert.Equal(t, "OpenAI tool call arguments must be object: web_search", result.Errors[0])
}

func TestValidateForProvider_OllamaStringArguments(t *testing.T) {
	v := NewValidator(Config{})

	// Well-formed JSON string is fine for Ollama-style providers.
	result := v.ValidateForProvider([]types.ToolCall{
		{Name: "web_search", RawArguments: `{"query":"go"}`},
	}, "ollama")
	assert.True(t, result.Valid)

	// Malformed JSON is not.
	result = v.ValidateForProvider([]types.ToolCall{
		{Name: "web_search", RawArguments: `{"query":`},
	}, "ollama")
	assert.False(t, result.Valid)
	assert.Equal(t, "Ollama tool call has invalid JSON arguments: web_search", result.Errors[0])
}

func TestValidateForProvider_NameRules(t *testing.T) {
	v := NewValidator(Config{})

	longName := strings.Repeat("a", 65)
	result := v.ValidateForProvider([]types.ToolCall{
		{ID: "1", Name: longName, Arguments: map[string]interface{}{}},
		{ID: "2", Name: "bad name!", Arguments: map[string]interface{}{}},
		{ID: "3", Name: "", Arguments: map[string]interface{}{}},
	}, "openai")

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0], "Tool name too long (65 > 64)")
	assert.Contains(t, result.Errors[1], "invalid characters")
	assert.Contains(t, result.Errors[2], "missing name")
}

func TestValidateForProvider_NoLengthCapForOllama(t *testing.T) {
	v := NewValidator(Config{})

	result := v.ValidateForProvider([]types.ToolCall{
		{Name: strings.Repeat("a", 100), Arguments: map[string]interface{}{}},
	}, "ollama")

	assert.True(t, result.Valid)
}

func TestValidateForProvider_AccumulatesAllViolations(t *testing.T) {
	v := NewValidator(Config{})

	// One call can violate several rules; all are reported.
	result := v.ValidateForProvider([]types.ToolCall{
		{Name: "bad name!", RawArguments: `{"q":1}`},
	}, "openai")

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0], "missing required id")
	assert.Contains(t, result.Errors[1], "must be object")
	assert.Contains(t, result.Errors[2], "invalid characters")
}

func TestValidateForProvider_SchemaCheck(t *testing.T) {
	schemas := map[string]*shuttle.JSONSchema{
		"memory_store": shuttle.NewObjectSchema("store", map[string]*shuttle.JSONSchema{
			"title": shuttle.NewStringSchema("title"),
		}, []string{"title"}),
	}
	v := NewValidator(Config{Schemas: schemas})

	result := v.ValidateForProvider([]types.ToolCall{
		{Name: "memory_store", Arguments: map[string]interface{}{"content": "no title"}},
	}, "anthropic")

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "do not match schema for memory_store")

	result = v.ValidateForProvider([]types.ToolCall{
		{Name: "memory_store", Arguments: map[string]interface{}{"title": "ok"}},
	}, "anthropic")
	assert.True(t, result.Valid)
}

func TestValidateForProvider_EmptyBatch(t *testing.T) {
	v := NewValidator(Config{})

	result := v.ValidateForProvider(nil, "openai")
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}
