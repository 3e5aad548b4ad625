// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package builtin provides the tools the chat client ships with. They run
// in-process against local collaborators (memory store, filesystem, clock)
// and exist so the engine has a real tool bus without any external server.
package builtin

import (
	"context"
	"fmt"

	"github.com/teradata-labs/bobbin/pkg/shuttle"
	"github.com/teradata-labs/bobbin/pkg/storage"
)

// MemoryStoreTool saves findings into the in-process memory store.
type MemoryStoreTool struct {
	store *storage.MemoryStore
}

// NewMemoryStoreTool creates a memory_store tool over the given store.
func NewMemoryStoreTool(store *storage.MemoryStore) *MemoryStoreTool {
	return &MemoryStoreTool{store: store}
}

func (t *MemoryStoreTool) Name() string {
	return "memory_store"
}

func (t *MemoryStoreTool) Description() string {
	return "Saves a titled note into conversation memory so later turns can recall it."
}

func (t *MemoryStoreTool) InputSchema() *shuttle.JSONSchema {
	return shuttle.NewObjectSchema(
		"Parameters for storing a memory",
		map[string]*shuttle.JSONSchema{
			"title":   shuttle.NewStringSchema("Short title for the memory (required)"),
			"content": shuttle.NewStringSchema("Memory content to store"),
		},
		[]string{"title"},
	)
}

func (t *MemoryStoreTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	title, _ := params["title"].(string)
	if title == "" {
		return nil, fmt.Errorf("invalid arguments: title is required")
	}
	content, _ := params["content"].(string)

	id, err := t.store.Store(ctx, title, content)
	if err != nil {
		return nil, fmt.Errorf("memory store failed: %w", err)
	}

	return map[string]interface{}{
		"id":    id,
		"title": title,
	}, nil
}

// MemorySearchTool retrieves notes from the in-process memory store.
type MemorySearchTool struct {
	store *storage.MemoryStore
}

// NewMemorySearchTool creates a memory_search tool over the given store.
func NewMemorySearchTool(store *storage.MemoryStore) *MemorySearchTool {
	return &MemorySearchTool{store: store}
}

func (t *MemorySearchTool) Name() string {
	return "memory_search"
}

func (t *MemorySearchTool) Description() string {
	return "Searches conversation memory by keyword and returns matching notes."
}

func (t *MemorySearchTool) InputSchema() *shuttle.JSONSchema {
	return shuttle.NewObjectSchema(
		"Parameters for searching memories",
		map[string]*shuttle.JSONSchema{
			"query": shuttle.NewStringSchema("Keyword to search for (empty returns the most recent notes)"),
			"limit": shuttle.NewNumberSchema("Maximum notes to return (default: 10)"),
		},
		nil,
	)
}

func (t *MemorySearchTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	query, _ := params["query"].(string)
	limit := 10
	if v, ok := params["limit"].(float64); ok && v > 0 {
		limit = int(v)
	}

	entries, err := t.store.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("memory search failed: %w", err)
	}

	memories := make([]map[string]interface{}, 0, len(entries))
	for _, e := range entries {
		memories = append(memories, map[string]interface{}{
			"id":      e.ID,
			"title":   e.Title,
			"content": e.Content,
		})
	}

	return map[string]interface{}{
		"memories": memories,
		"count":    len(memories),
	}, nil
}
