// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package weft

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/teradata-labs/bobbin/pkg/types"
)

func descriptors(names ...string) []types.ToolDescriptor {
	descs := make([]types.ToolDescriptor, 0, len(names))
	for _, name := range names {
		descs = append(descs, types.ToolDescriptor{Name: name})
	}
	return descs
}

func searchHit(query string) string {
	return fmt.Sprintf(`{"query":%q,"results":[{"title":"Go Concurrency Patterns","url":"https://example.com/conc","content":"pipelines and cancellation"}]}`, query)
}

func TestChainAnalyzer_SearchProposesMemoryStore(t *testing.T) {
	a := NewChainAnalyzer(0, zaptest.NewLogger(t))

	results := []types.ToolResult{
		{ID: "1", Name: "web_search", Result: searchHit("go concurrency"), Success: true},
	}
	followUps := a.Analyze(results, descriptors("web_search", "memory_store"))

	require.Len(t, followUps, 1)
	call := followUps[0]
	assert.Equal(t, "memory_store", call.Name)
	assert.Equal(t, "chain_0_memory_store", call.ID)
	assert.Equal(t, "Search findings: go concurrency", call.Arguments["title"])
	assert.Contains(t, call.Arguments["content"], "Go Concurrency Patterns")
	assert.Contains(t, call.Arguments["content"], "https://example.com/conc")
}

func TestChainAnalyzer_MemoryProposesSearch(t *testing.T) {
	a := NewChainAnalyzer(0, zaptest.NewLogger(t))

	payload := `{"count":1,"memories":[{"id":"m1","title":"kubernetes upgrades","content":"cluster notes"}]}`
	results := []types.ToolResult{
		{ID: "1", Name: "memory_search", Result: payload, Success: true},
	}
	followUps := a.Analyze(results, descriptors("web_search", "memory_search"))

	require.Len(t, followUps, 1)
	call := followUps[0]
	assert.Equal(t, "web_search", call.Name)
	assert.Equal(t, "chain_0_web_search", call.ID)
	assert.Equal(t, "kubernetes upgrades", call.Arguments["query"])
}

func TestChainAnalyzer_NeverProposesUnavailableTools(t *testing.T) {
	a := NewChainAnalyzer(0, zaptest.NewLogger(t))

	results := []types.ToolResult{
		{ID: "1", Name: "web_search", Result: searchHit("x"), Success: true},
	}
	followUps := a.Analyze(results, descriptors("web_search"))
	assert.Empty(t, followUps)

	payload := `{"memories":[{"id":"m1","title":"topic"}]}`
	followUps = a.Analyze([]types.ToolResult{
		{ID: "1", Name: "memory_search", Result: payload, Success: true},
	}, descriptors("memory_search"))
	assert.Empty(t, followUps)
}

func TestChainAnalyzer_FanOutBounded(t *testing.T) {
	a := NewChainAnalyzer(2, zaptest.NewLogger(t))

	var results []types.ToolResult
	for i := 0; i < 5; i++ {
		results = append(results, types.ToolResult{
			ID:      fmt.Sprintf("%d", i),
			Name:    "web_search",
			Result:  searchHit(fmt.Sprintf("query %d", i)),
			Success: true,
		})
	}

	followUps := a.Analyze(results, descriptors("web_search", "memory_store"))
	assert.Len(t, followUps, 2)
}

func TestChainAnalyzer_SkipsFailuresAndEmptyHits(t *testing.T) {
	a := NewChainAnalyzer(0, zaptest.NewLogger(t))

	results := []types.ToolResult{
		{ID: "1", Name: "web_search", Result: "Connection error executing 'web_search': dial tcp", Success: false},
		{ID: "2", Name: "web_search", Result: `{"query":"x","results":[]}`, Success: true},
		{ID: "3", Name: "memory_search", Result: `{"memories":[]}`, Success: true},
	}

	followUps := a.Analyze(results, descriptors("web_search", "memory_store", "memory_search"))
	assert.Empty(t, followUps)
}

func TestChainAnalyzer_NonChainableKindsIgnored(t *testing.T) {
	a := NewChainAnalyzer(0, zaptest.NewLogger(t))

	results := []types.ToolResult{
		{ID: "1", Name: "get_datetime", Result: `{"datetime":"2026-08-31T10:00:00Z"}`, Success: true},
		{ID: "2", Name: "calculator", Result: `{"answer":42}`, Success: true},
	}

	followUps := a.Analyze(results, descriptors("memory_store", "web_search", "get_datetime", "calculator"))
	assert.Empty(t, followUps)
}
