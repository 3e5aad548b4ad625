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
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestLocalBackend_CallToolsOptimized_OrderPreserved(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&MockTool{MockName: "alpha", MockExecute: func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		time.Sleep(20 * time.Millisecond)
		return "slow", nil
	}})
	reg.Register(&MockTool{MockName: "beta", MockExecute: func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		return "fast", nil
	}})

	backend := NewLocalBackend(reg, zaptest.NewLogger(t))

	results, err := backend.CallToolsOptimized(context.Background(), []CallRequest{
		{ID: "1", Name: "alpha"},
		{ID: "2", Name: "beta"},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Submission order, not completion order.
	assert.Equal(t, "alpha", results[0].Name)
	assert.Equal(t, "slow", results[0].Result)
	assert.Equal(t, "beta", results[1].Name)
	assert.True(t, results[0].Success)
	assert.True(t, results[1].Success)
}

func TestLocalBackend_CallToolsOptimized_FailureIsolation(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&MockTool{MockName: "ok"})
	reg.Register(&MockTool{MockName: "broken", MockExecute: func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		return nil, errors.New("backing service down")
	}})

	backend := NewLocalBackend(reg, zaptest.NewLogger(t))

	results, err := backend.CallToolsOptimized(context.Background(), []CallRequest{
		{Name: "ok"},
		{Name: "broken"},
		{Name: "ok"},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.Contains(t, results[1].Error, "backing service down")
	assert.True(t, results[2].Success)
}

func TestLocalBackend_CallToolsOptimized_UnknownTool(t *testing.T) {
	backend := NewLocalBackend(NewRegistry(), zaptest.NewLogger(t))

	results, err := backend.CallToolsOptimized(context.Background(), []CallRequest{
		{Name: "nope"},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Error, "tool not found")
}

func TestLocalBackend_CallToolsOptimized_PanicRecovered(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&MockTool{MockName: "boom", MockExecute: func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		panic("unexpected")
	}})
	reg.Register(&MockTool{MockName: "ok"})

	backend := NewLocalBackend(reg, zaptest.NewLogger(t))

	results, err := backend.CallToolsOptimized(context.Background(), []CallRequest{
		{Name: "boom"},
		{Name: "ok"},
	})
	require.NoError(t, err)
	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Error, "tool panicked")
	assert.True(t, results[1].Success)
}

func TestLocalBackend_CallToolsOptimized_Empty(t *testing.T) {
	backend := NewLocalBackend(NewRegistry(), zaptest.NewLogger(t))

	results, err := backend.CallToolsOptimized(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestLocalBackend_CallTool(t *testing.T) {
	reg := NewRegistry()
	tool := &MockTool{MockName: "echo", MockExecute: func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		return params["msg"], nil
	}}
	reg.Register(tool)

	backend := NewLocalBackend(reg, zaptest.NewLogger(t))

	out, err := backend.CallTool(context.Background(), "echo", map[string]interface{}{"msg": "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", out)
	assert.Equal(t, 1, tool.Executions())

	_, err = backend.CallTool(context.Background(), "missing", nil)
	assert.Error(t, err)
}

func TestRegistry_Descriptors(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&MockTool{MockName: "zeta", MockDescription: "last"})
	reg.Register(&MockTool{MockName: "alpha", MockDescription: "first"})

	descs := reg.Descriptors()
	require.Len(t, descs, 2)
	assert.Equal(t, "alpha", descs[0].Name)
	assert.Equal(t, "zeta", descs[1].Name)
	assert.Equal(t, "first", descs[0].Description)
}
