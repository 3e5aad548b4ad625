// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package weft

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorizeError_Categories(t *testing.T) {
	tests := []struct {
		name     string
		rawError string
		want     ErrorCategory
	}{
		{"connection refused", "dial tcp 127.0.0.1:8080: connection refused", CategoryNetwork},
		{"dns failure", "lookup search.internal: no such host", CategoryNetwork},
		{"tool missing", "tool not found: web_search", CategoryToolUnavailable},
		{"unauthorized", "401 unauthorized: token expired", CategoryAuthentication},
		{"permission", "permission denied", CategoryAuthentication},
		{"rate limit", "429 too many requests", CategoryRateLimit},
		{"bad args", "missing required field 'query'", CategoryInvalidArguments},
		{"service down", "Primary search service unavailable", CategoryServiceUnavailable},
		{"overloaded", "backend overloaded, try again", CategoryServiceUnavailable},
		{"bad json", "unexpected end of JSON input", CategoryMalformedResponse},
		{"timeout", "context deadline exceeded", CategoryTimeout},
		{"unmatched", "something very strange happened", CategoryGeneric},
		{"empty", "", CategoryGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := CategorizeError("some_tool", tt.rawError, nil)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategorizeError_PreservesRawText(t *testing.T) {
	raw := "Primary search service unavailable"
	category, message := CategorizeError("web_search", raw, nil)

	assert.Equal(t, CategoryServiceUnavailable, category)
	assert.Contains(t, message, "web_search")
	assert.Contains(t, message, raw)
}

func TestCategorizeError_FirstMatchWins(t *testing.T) {
	// Carries both a network phrase and a timeout phrase; network rules
	// come first.
	category, _ := CategorizeError("api_fetch", "connection reset by peer after timeout", nil)
	assert.Equal(t, CategoryNetwork, category)
}

func TestCategorizeError_InvalidArgumentsEchoesArgs(t *testing.T) {
	args := map[string]interface{}{"query": 42}
	_, message := CategorizeError("web_search", "invalid arguments: query must be a string", args)

	assert.Contains(t, message, "web_search")
	assert.Contains(t, message, "query")
	assert.Contains(t, message, "42")
}
