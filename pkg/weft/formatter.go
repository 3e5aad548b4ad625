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

// ToolKind classifies a tool result for formatting. The classification is
// a name-substring heuristic, but dispatch over the resulting enum is an
// exhaustive switch so every kind has a formatter.
type ToolKind int

const (
	KindGeneric ToolKind = iota
	KindSearch
	KindMemory
	KindFile
	KindAPI
	KindDateTime
	KindWeather
)

// String returns the kind's name.
func (k ToolKind) String() string {
	switch k {
	case KindSearch:
		return "search"
	case KindMemory:
		return "memory"
	case KindFile:
		return "file"
	case KindAPI:
		return "api"
	case KindDateTime:
		return "datetime"
	case KindWeather:
		return "weather"
	default:
		return "generic"
	}
}

// IdentifyToolKind classifies a tool by case-insensitive name substring.
// Earlier cases win: memory is checked before search so "memory_search"
// classifies as a memory tool.
func IdentifyToolKind(name string) ToolKind {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "memory"):
		return KindMemory
	case strings.Contains(lower, "search"), strings.Contains(lower, "web"):
		return KindSearch
	case strings.Contains(lower, "file"), strings.Contains(lower, "read"), strings.Contains(lower, "write"):
		return KindFile
	case strings.Contains(lower, "api"), strings.Contains(lower, "http"), strings.Contains(lower, "fetch"):
		return KindAPI
	case strings.Contains(lower, "datetime"), strings.Contains(lower, "date"), strings.Contains(lower, "time"):
		return KindDateTime
	case strings.Contains(lower, "weather"):
		return KindWeather
	default:
		return KindGeneric
	}
}

const (
	// maxSearchItems limits search result listings.
	maxSearchItems = 5

	// maxSnippetLen truncates search snippets and memory content.
	maxSnippetLen = 150

	// maxFileContentLen truncates file payloads in formatted output.
	maxFileContentLen = 500
)

// Formatter renders tool results into text. It produces two variants over
// the same input: a compact block for re-injection into model context and
// a verbose aggregate for humans. Formatting never fails; payloads that
// don't parse as JSON degrade to plain text.
type Formatter struct {
	tokens *TokenCounter
	logger *zap.Logger
}

// NewFormatter creates a formatter.
func NewFormatter(logger *zap.Logger) *Formatter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Formatter{
		tokens: NewTokenCounter(),
		logger: logger,
	}
}

// SummarizeForModel renders a compact, delimited summary of the batch:
// successful results formatted per tool kind, then a terse list of failed
// tool names with their error strings.
func (f *Formatter) SummarizeForModel(results []types.ToolResult) string {
	var b strings.Builder
	b.WriteString("=== TOOL RESULTS ===\n")

	if len(results) == 0 {
		b.WriteString("No tools were executed.\n")
	}

	for _, r := range results {
		if !r.Success {
			continue
		}
		b.WriteString(fmt.Sprintf("[%s]\n", r.Name))
		b.WriteString(f.formatPayload(r))
		b.WriteString("\n")
	}

	var failed []types.ToolResult
	for _, r := range results {
		if !r.Success {
			failed = append(failed, r)
		}
	}
	if len(failed) > 0 {
		b.WriteString("Failed tools:\n")
		for _, r := range failed {
			b.WriteString(fmt.Sprintf("- %s: %s\n", r.Name, r.Result))
		}
	}

	b.WriteString("=== END TOOL RESULTS ===")

	summary := b.String()
	f.logger.Debug("Built model summary",
		zap.Int("results", len(results)),
		zap.Int("estimated_tokens", f.tokens.CountTokens(summary)))
	return summary
}

// Aggregate renders the verbose, human-readable report: a count header
// with the success rate, then a per-tool section with execution time and
// the fully formatted payload.
func (f *Formatter) Aggregate(results []types.ToolResult) string {
	succeeded := 0
	for _, r := range results {
		if r.Success {
			succeeded++
		}
	}
	failed := len(results) - succeeded
	rate := 0.0
	if len(results) > 0 {
		rate = float64(succeeded) / float64(len(results)) * 100
	}

	var b strings.Builder
	b.WriteString("Tool Execution Summary\n")
	b.WriteString(fmt.Sprintf("Executed: %d | Succeeded: %d | Failed: %d | Success Rate: %.1f%%\n",
		len(results), succeeded, failed, rate))

	for _, r := range results {
		b.WriteString(fmt.Sprintf("\n--- %s (%dms) ---\n", r.Name, r.ExecutionTime))
		if r.Success {
			b.WriteString(f.formatPayload(r))
			b.WriteString("\n")
		} else {
			b.WriteString(fmt.Sprintf("FAILED: %s\n", r.Result))
		}
	}

	return b.String()
}

// EstimateTokens returns the token estimate for a rendered summary.
func (f *Formatter) EstimateTokens(text string) int {
	return f.tokens.CountTokens(text)
}

// formatPayload dispatches on the result's tool kind. Exhaustive over
// ToolKind; unknown payload shapes fall through to the generic formatter.
func (f *Formatter) formatPayload(r types.ToolResult) string {
	payload, ok := decodePayload(r.Result)
	if !ok {
		// Unparsable payload: degrade to stripped-quote plain text.
		return strings.Trim(r.Result, `"`)
	}

	switch IdentifyToolKind(r.Name) {
	case KindSearch:
		return formatSearch(payload, r.Result)
	case KindMemory:
		return formatMemory(payload, r.Result)
	case KindFile:
		return formatFile(payload, r.Result)
	case KindAPI:
		return formatAPI(payload, r.Result)
	case KindDateTime:
		return formatDateTime(payload, r.Result)
	case KindWeather:
		return formatWeather(payload, r.Result)
	case KindGeneric:
		return formatGeneric(payload, r.Result)
	default:
		return formatGeneric(payload, r.Result)
	}
}

// decodePayload parses a serialized result. Returns false when the text
// is not JSON at all.
func decodePayload(serialized string) (interface{}, bool) {
	var payload interface{}
	if err := json.Unmarshal([]byte(serialized), &payload); err != nil {
		return nil, false
	}
	return payload, true
}

func asObject(payload interface{}) (map[string]interface{}, bool) {
	obj, ok := payload.(map[string]interface{})
	return obj, ok
}

func formatSearch(payload interface{}, raw string) string {
	obj, ok := asObject(payload)
	if !ok {
		return formatGeneric(payload, raw)
	}
	items, ok := obj["results"].([]interface{})
	if !ok || len(items) == 0 {
		return formatGeneric(payload, raw)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Search results (%d):\n", len(items)))
	for i, item := range items {
		if i >= maxSearchItems {
			b.WriteString(fmt.Sprintf("... and %d more\n", len(items)-maxSearchItems))
			break
		}
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		title, _ := entry["title"].(string)
		url, _ := entry["url"].(string)
		snippet, _ := entry["content"].(string)
		if snippet == "" {
			snippet, _ = entry["snippet"].(string)
		}
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, title))
		if url != "" {
			b.WriteString(fmt.Sprintf("   %s\n", url))
		}
		if snippet != "" {
			b.WriteString(fmt.Sprintf("   %s\n", truncate(snippet, maxSnippetLen)))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatMemory(payload interface{}, raw string) string {
	obj, ok := asObject(payload)
	if !ok {
		return formatGeneric(payload, raw)
	}

	// A single id means a save confirmation, not a listing.
	if id, ok := obj["id"].(string); ok {
		title, _ := obj["title"].(string)
		if title != "" {
			return fmt.Sprintf("Memory saved: %q (id: %s)", title, id)
		}
		return fmt.Sprintf("Memory saved (id: %s)", id)
	}

	items, ok := obj["memories"].([]interface{})
	if !ok || len(items) == 0 {
		return "No memories found."
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Memories (%d):\n", len(items)))
	for _, item := range items {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		title, _ := entry["title"].(string)
		content, _ := entry["content"].(string)
		b.WriteString(fmt.Sprintf("- %s: %s\n", title, truncate(content, maxSnippetLen)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatFile(payload interface{}, raw string) string {
	obj, ok := asObject(payload)
	if !ok {
		return formatGeneric(payload, raw)
	}
	content, ok := obj["content"].(string)
	if !ok {
		return formatGeneric(payload, raw)
	}

	path, _ := obj["path"].(string)
	truncated := content
	marker := ""
	if len(content) > maxFileContentLen {
		truncated = content[:maxFileContentLen]
		marker = "\n... [truncated]"
	}
	header := ""
	if path != "" {
		header = path + ":\n"
	}
	return fmt.Sprintf("%s```\n%s%s\n```", header, truncated, marker)
}

func formatAPI(payload interface{}, raw string) string {
	obj, ok := asObject(payload)
	if !ok {
		return formatGeneric(payload, raw)
	}

	var b strings.Builder
	if status, ok := obj["status"]; ok {
		b.WriteString(fmt.Sprintf("Status: %v\n", status))
	}
	body, hasBody := obj["body"]
	if !hasBody {
		body = obj
	}
	pretty, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		return raw
	}
	b.Write(pretty)
	return b.String()
}

func formatDateTime(payload interface{}, raw string) string {
	obj, ok := asObject(payload)
	if !ok {
		return formatGeneric(payload, raw)
	}
	if dt, ok := obj["datetime"].(string); ok {
		if tz, ok := obj["timezone"].(string); ok {
			return fmt.Sprintf("Current time: %s (%s)", dt, tz)
		}
		return fmt.Sprintf("Current time: %s", dt)
	}
	return formatGeneric(payload, raw)
}

func formatWeather(payload interface{}, raw string) string {
	obj, ok := asObject(payload)
	if !ok {
		return formatGeneric(payload, raw)
	}

	location, _ := obj["location"].(string)
	conditions, _ := obj["conditions"].(string)
	if temp, ok := obj["temperature"]; ok && conditions != "" {
		if location != "" {
			return fmt.Sprintf("Weather in %s: %v°, %s", location, temp, conditions)
		}
		return fmt.Sprintf("Weather: %v°, %s", temp, conditions)
	}
	return formatGeneric(payload, raw)
}

func formatGeneric(payload interface{}, raw string) string {
	switch v := payload.(type) {
	case map[string]interface{}, []interface{}:
		pretty, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return raw
		}
		return string(pretty)
	case string:
		return v
	default:
		return strings.Trim(raw, `"`)
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
