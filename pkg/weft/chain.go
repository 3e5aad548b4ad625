// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package weft

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/teradata-labs/bobbin/pkg/types"
)

// ChainAnalyzer inspects a round of tool results and proposes bounded
// follow-up calls. Search results suggest storing a memory of what was
// found; memory hits suggest searching for fresh detail on the stored
// topic. Proposals only ever name tools the caller declared available.
type ChainAnalyzer struct {
	maxFollowUps int
	logger       *zap.Logger
}

// DefaultMaxFollowUps bounds fan-out per analysis round.
const DefaultMaxFollowUps = 3

// NewChainAnalyzer creates an analyzer. maxFollowUps <= 0 selects the
// default bound.
func NewChainAnalyzer(maxFollowUps int, logger *zap.Logger) *ChainAnalyzer {
	if maxFollowUps <= 0 {
		maxFollowUps = DefaultMaxFollowUps
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChainAnalyzer{maxFollowUps: maxFollowUps, logger: logger}
}

// Analyze returns follow-up calls derived from the round's successful
// results, capped at the analyzer's fan-out bound. availableTools is the
// set of tools the caller can actually execute; proposals for tools
// outside that set are never produced.
func (a *ChainAnalyzer) Analyze(results []types.ToolResult, availableTools []types.ToolDescriptor) []types.ToolCall {
	available := make(map[string]bool, len(availableTools))
	for _, desc := range availableTools {
		available[desc.Name] = true
	}

	var followUps []types.ToolCall
	for i, r := range results {
		if len(followUps) >= a.maxFollowUps {
			break
		}
		if !r.Success {
			continue
		}

		var call *types.ToolCall
		switch IdentifyToolKind(r.Name) {
		case KindSearch:
			call = a.proposeMemoryStore(i, r, available)
		case KindMemory:
			call = a.proposeSearch(i, r, available)
		}
		if call != nil {
			followUps = append(followUps, *call)
		}
	}

	if len(followUps) > 0 {
		a.logger.Info("Proposing follow-up tool calls",
			zap.Int("count", len(followUps)))
	}
	return followUps
}

// proposeMemoryStore derives a memory_store call from a search result
// that actually carried hits.
func (a *ChainAnalyzer) proposeMemoryStore(index int, r types.ToolResult, available map[string]bool) *types.ToolCall {
	if !available["memory_store"] {
		return nil
	}

	obj := decodeObject(r.Result)
	if obj == nil {
		return nil
	}
	items, ok := obj["results"].([]interface{})
	if !ok || len(items) == 0 {
		return nil
	}

	query, _ := obj["query"].(string)
	title := fmt.Sprintf("Search findings: %s", query)
	if query == "" {
		title = fmt.Sprintf("Search findings from %s", r.Name)
	}

	var lines []string
	for i, item := range items {
		if i >= maxSearchItems {
			break
		}
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		t, _ := entry["title"].(string)
		u, _ := entry["url"].(string)
		if u != "" {
			lines = append(lines, fmt.Sprintf("%s (%s)", t, u))
		} else if t != "" {
			lines = append(lines, t)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	return &types.ToolCall{
		ID:   fmt.Sprintf("chain_%d_memory_store", index),
		Name: "memory_store",
		Arguments: map[string]interface{}{
			"title":   title,
			"content": strings.Join(lines, "\n"),
		},
	}
}

// proposeSearch derives a search call from a memory listing, using the
// first memory's title as the query. The first available search-kind tool
// is chosen.
func (a *ChainAnalyzer) proposeSearch(index int, r types.ToolResult, available map[string]bool) *types.ToolCall {
	obj := decodeObject(r.Result)
	if obj == nil {
		return nil
	}
	items, ok := obj["memories"].([]interface{})
	if !ok || len(items) == 0 {
		return nil
	}
	first, ok := items[0].(map[string]interface{})
	if !ok {
		return nil
	}
	title, _ := first["title"].(string)
	if title == "" {
		return nil
	}

	searchTool := ""
	for name := range available {
		if IdentifyToolKind(name) == KindSearch {
			if searchTool == "" || name < searchTool {
				searchTool = name
			}
		}
	}
	if searchTool == "" {
		return nil
	}

	return &types.ToolCall{
		ID:   fmt.Sprintf("chain_%d_%s", index, searchTool),
		Name: searchTool,
		Arguments: map[string]interface{}{
			"query": title,
		},
	}
}

func decodeObject(serialized string) map[string]interface{} {
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(serialized), &obj); err != nil {
		return nil
	}
	return obj
}
